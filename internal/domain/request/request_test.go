package request

import (
	"errors"
	"strings"
	"testing"
)

func TestParams_Values_Defaults(t *testing.T) {
	v := DefaultParams().Values()

	want := map[string]string{
		"output_type": "2",
		"testmode":    "0",
		"db":          "999",
		"numres":      "6",
	}
	for k, w := range want {
		if got := v.Get(k); got != w {
			t.Errorf("%s = %q, want %q", k, got, w)
		}
	}
	for _, k := range []string{"api_key", "dbmask", "dbmaski", "url"} {
		if v.Has(k) {
			t.Errorf("%s should be omitted", k)
		}
	}
}

func TestParams_Values_AllSet(t *testing.T) {
	p := Params{
		APIKey:        "secret",
		DBMask:        1 << 40,
		DBMaskDisable: 8,
		DB:            5,
		ResultsLimit:  16,
		TestMode:      true,
	}
	v := p.Values()
	if v.Get("api_key") != "secret" {
		t.Errorf("api_key = %q", v.Get("api_key"))
	}
	if v.Get("dbmask") != "1099511627776" {
		t.Errorf("dbmask = %q", v.Get("dbmask"))
	}
	if v.Get("dbmaski") != "8" || v.Get("db") != "5" || v.Get("numres") != "16" || v.Get("testmode") != "1" {
		t.Errorf("values = %v", v)
	}
}

func TestNewURL(t *testing.T) {
	r, err := NewURL(DefaultParams(), "https://example.com/a.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.IsUpload() {
		t.Error("URL request reported as upload")
	}
	if r.Values().Get("url") != "https://example.com/a.png" {
		t.Errorf("url = %q", r.Values().Get("url"))
	}

	if _, err := NewURL(DefaultParams(), ""); !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
}

func TestNewUpload(t *testing.T) {
	r, err := NewUpload(DefaultParams(), "", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsUpload() || r.FileName() != "image" {
		t.Errorf("upload = %v %q", r.IsUpload(), r.FileName())
	}
	if r.Values().Has("url") {
		t.Error("upload must not carry url param")
	}

	if _, err := NewUpload(DefaultParams(), "a.png", nil); !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
}

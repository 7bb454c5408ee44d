package lookup

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/saucenao/internal/domain/result"
	"github.com/kailas-cloud/saucenao/internal/domain/source"
)

func testHeader() *result.Header {
	return &result.Header{
		UserID:            "12345",
		AccountType:       "1",
		ShortLimit:        "4",
		LongLimit:         "100",
		ShortRemaining:    3,
		LongRemaining:     97,
		Status:            0,
		ResultsRequested:  6,
		SearchDepth:       "128",
		MinimumSimilarity: 55.5,
	}
}

func TestNewResults(t *testing.T) {
	src := source.Classify(result.Raw{Header: result.RawHeader{IndexID: 5, Similarity: 91}})
	r := NewResults(testHeader(), []source.Source{src})

	acc := r.Account()
	if acc.UserID != "12345" || acc.ShortLimit != 4 || acc.LongLimit != 100 {
		t.Errorf("Account() = %+v", acc)
	}
	if acc.ShortRemaining != 3 || acc.LongRemaining != 97 {
		t.Errorf("remaining = %d/%d", acc.ShortRemaining, acc.LongRemaining)
	}
	if r.SearchDepth() != 128 || r.ResultsRequested() != 6 || r.MinimumSimilarity() != 55.5 {
		t.Errorf("metadata = %d %d %v", r.SearchDepth(), r.ResultsRequested(), r.MinimumSimilarity())
	}
	if r.Len() != 1 || r.At(0) != src {
		t.Errorf("Len() = %d", r.Len())
	}
	if !r.OK() {
		t.Error("OK() = false with one source")
	}
}

func TestResults_OKFalseWhenEmpty(t *testing.T) {
	r := NewResults(testHeader(), nil)
	if r.OK() {
		t.Error("OK() = true with no sources")
	}
	if r.Len() != 0 || len(r.All()) != 0 {
		t.Error("expected no sources")
	}
}

func TestResults_AllIsCopy(t *testing.T) {
	a := source.Classify(result.Raw{Header: result.RawHeader{IndexID: 9, Similarity: 80}})
	b := source.Classify(result.Raw{Header: result.RawHeader{IndexID: 5, Similarity: 70}})
	r := NewResults(testHeader(), []source.Source{a, b})

	all := r.All()
	all[0], all[1] = all[1], all[0]
	if r.At(0) != a {
		t.Error("All() must not expose the internal order")
	}
}

func TestAccount_Tier(t *testing.T) {
	tests := []struct {
		typ  string
		want Tier
	}{
		{"0", TierUnregistered},
		{"1", TierFree},
		{"2", TierEnhanced},
		{"", TierUnknown},
		{"9", TierUnknown},
	}
	for _, tc := range tests {
		if got := (Account{Type: tc.typ}).Tier(); got != tc.want {
			t.Errorf("Tier(%q) = %q, want %q", tc.typ, got, tc.want)
		}
	}
}

func TestNewDiagnostic(t *testing.T) {
	ok := NewDiagnostic(testHeader(), nil)
	if !ok.Success || ok.Err != nil || ok.Account.Tier() != TierFree {
		t.Errorf("success diagnostic = %+v", ok)
	}

	boom := errors.New("boom")
	failed := NewDiagnostic(nil, boom)
	if failed.Success || !errors.Is(failed.Err, boom) {
		t.Errorf("failed diagnostic = %+v", failed)
	}
	if failed.Account != (Account{}) {
		t.Errorf("Account = %+v, want zero", failed.Account)
	}
}

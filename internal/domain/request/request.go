// Package request describes an outbound search.php call.
package request

import (
	"errors"
	"io"
	"net/url"
	"strconv"
)

// Parameter defaults.
const (
	OutputTypeJSON      = 2
	DefaultDB           = 999
	DefaultResultsLimit = 6
)

// ErrNoImage signals a request without an image URL or upload.
var ErrNoImage = errors.New("image url or file is required")

// Params are the query parameters shared by every lookup of a client.
type Params struct {
	APIKey        string
	DBMask        int64
	DBMaskDisable int64
	DB            int
	ResultsLimit  int
	TestMode      bool
}

// DefaultParams returns params searching all indexes for 6 results.
func DefaultParams() Params {
	return Params{DB: DefaultDB, ResultsLimit: DefaultResultsLimit}
}

// Values encodes the params. Zero masks and an empty key are omitted.
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.APIKey != "" {
		v.Set("api_key", p.APIKey)
	}
	if p.DBMask != 0 {
		v.Set("dbmask", strconv.FormatInt(p.DBMask, 10))
	}
	if p.DBMaskDisable != 0 {
		v.Set("dbmaski", strconv.FormatInt(p.DBMaskDisable, 10))
	}
	v.Set("output_type", strconv.Itoa(OutputTypeJSON))
	testMode := "0"
	if p.TestMode {
		testMode = "1"
	}
	v.Set("testmode", testMode)
	v.Set("db", strconv.Itoa(p.DB))
	v.Set("numres", strconv.Itoa(p.ResultsLimit))
	return v
}

// Request is a single lookup, either by remote URL or by upload.
type Request struct {
	params   Params
	imageURL string
	fileName string
	file     io.Reader
}

// NewURL creates a lookup of a remote image.
func NewURL(p Params, imageURL string) (Request, error) {
	if imageURL == "" {
		return Request{}, ErrNoImage
	}
	return Request{params: p, imageURL: imageURL}, nil
}

// NewUpload creates a lookup of uploaded image content.
func NewUpload(p Params, fileName string, file io.Reader) (Request, error) {
	if file == nil {
		return Request{}, ErrNoImage
	}
	if fileName == "" {
		fileName = "image"
	}
	return Request{params: p, fileName: fileName, file: file}, nil
}

// Params returns the shared query parameters.
func (r *Request) Params() Params { return r.params }

// ImageURL returns the remote image URL, empty for uploads.
func (r *Request) ImageURL() string { return r.imageURL }

// FileName returns the upload file name, empty for URL lookups.
func (r *Request) FileName() string { return r.fileName }

// File returns the upload content, nil for URL lookups.
func (r *Request) File() io.Reader { return r.file }

// IsUpload reports whether the request carries file content.
func (r *Request) IsUpload() bool { return r.file != nil }

// Values returns the query parameters including the image URL, if any.
func (r *Request) Values() url.Values {
	v := r.params.Values()
	if r.imageURL != "" {
		v.Set("url", r.imageURL)
	}
	return v
}

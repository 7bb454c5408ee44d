package domain

import (
	"errors"
	"fmt"
)

// ErrSauceNAO is the umbrella for every failure reported by the SauceNAO API.
var ErrSauceNAO = errors.New("saucenao")

var (
	// ErrShortLimit signals the 30 second search limit was hit.
	ErrShortLimit = kind("short limit reached")
	// ErrDailyLimit signals the daily search limit was hit.
	ErrDailyLimit = kind("daily limit reached")
	// ErrTooManyFailedRequests signals the account is locked out after repeated failed searches.
	ErrTooManyFailedRequests = kind("too many failed search attempts")
	// ErrInvalidAPIKey signals a missing, invalid or wrong API key.
	ErrInvalidAPIKey = kind("invalid or wrong api key")
	// ErrFileSizeLimit signals the uploaded image exceeds the size limit.
	ErrFileSizeLimit = kind("file size limit exceeded")
	// ErrInvalidImage signals the image could not be read or fetched.
	ErrInvalidImage = kind("invalid image")
	// ErrBanned signals the account or IP has no API access.
	ErrBanned = kind("banned")
	// ErrUnknownStatus signals a status the client does not recognise.
	ErrUnknownStatus = kind("unknown status")
)

func kind(msg string) error {
	return fmt.Errorf("%w: %s", ErrSauceNAO, msg)
}

// StatusError carries the raw status of a rejected lookup.
// It unwraps to one of the kind sentinels above.
type StatusError struct {
	Kind       error
	HTTPStatus int
	APIStatus  int
	Message    string
}

func (e *StatusError) Error() string {
	s := fmt.Sprintf("%s (http %d, status %d)", e.Kind.Error(), e.HTTPStatus, e.APIStatus)
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}

func (e *StatusError) Unwrap() error { return e.Kind }

// NewStatusError creates a StatusError of the given kind.
func NewStatusError(k error, httpStatus, apiStatus int, message string) error {
	return &StatusError{Kind: k, HTTPStatus: httpStatus, APIStatus: apiStatus, Message: message}
}

package saucenao

import (
	"github.com/kailas-cloud/saucenao/internal/domain"
	"github.com/kailas-cloud/saucenao/internal/domain/request"
)

// Sentinel errors re-exported from the domain layer.
// Every API error kind wraps ErrSauceNAO; use errors.Is() to check.
var (
	ErrSauceNAO              = domain.ErrSauceNAO
	ErrShortLimit            = domain.ErrShortLimit
	ErrDailyLimit            = domain.ErrDailyLimit
	ErrTooManyFailedRequests = domain.ErrTooManyFailedRequests
	ErrInvalidAPIKey         = domain.ErrInvalidAPIKey
	ErrFileSizeLimit         = domain.ErrFileSizeLimit
	ErrInvalidImage          = domain.ErrInvalidImage
	ErrBanned                = domain.ErrBanned
	ErrUnknownStatus         = domain.ErrUnknownStatus

	// ErrNoImage is returned for an empty image URL or a nil reader.
	ErrNoImage = request.ErrNoImage
)

// StatusError carries the HTTP code, API status and server message of a
// rejected lookup. Use errors.As() to extract it.
type StatusError = domain.StatusError

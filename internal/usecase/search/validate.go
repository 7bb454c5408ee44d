package search

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/kailas-cloud/saucenao/internal/domain"
	"github.com/kailas-cloud/saucenao/internal/domain/result"
)

const shortLimitMarker = "searches every 30 seconds"

// API status codes embedded in the response header.
const (
	statusOK                = 0
	statusBanned            = -1
	statusTooManyFailed     = -2
	statusImageUploadFailed = -3
	statusImageFetchFailed  = -4
	statusFileTooLarge      = -5
	statusImageRejected     = -6
)

// Policy adjusts how ambiguous provider states are treated.
type Policy struct {
	// Strict turns partial outages and unrecognised client errors into failures.
	Strict bool
	// APIKeySet reports whether the request carried an api key.
	APIKeySet bool
}

// Validate maps the transport status and the embedded API status to an
// outcome. A nil error means the response is accepted; warning is non-empty
// when it should be logged, including alongside a strict-mode failure.
// Every returned error is a *domain.StatusError.
func Validate(statusCode int, body *result.Response, p Policy) (warning string, err error) {
	var h result.Header
	if body != nil {
		h = body.Header
	}
	apiStatus, msg := int(h.Status), string(h.Message)

	switch statusCode {
	case http.StatusOK:
		if body == nil {
			return "", domain.NewStatusError(domain.ErrUnknownStatus, statusCode, 0, "malformed response body")
		}
		return validateOK(body, p)
	case http.StatusTooManyRequests:
		switch {
		case apiStatus == statusTooManyFailed:
			return "", domain.NewStatusError(domain.ErrTooManyFailedRequests, statusCode, apiStatus, msg)
		case strings.Contains(msg, shortLimitMarker):
			return "", domain.NewStatusError(domain.ErrShortLimit, statusCode, apiStatus, msg)
		default:
			return "", domain.NewStatusError(domain.ErrDailyLimit, statusCode, apiStatus, msg)
		}
	case http.StatusForbidden:
		return "", domain.NewStatusError(domain.ErrInvalidAPIKey, statusCode, apiStatus, msg)
	case http.StatusRequestEntityTooLarge:
		return "", domain.NewStatusError(domain.ErrFileSizeLimit, statusCode, apiStatus, msg)
	default:
		return "", domain.NewStatusError(domain.ErrUnknownStatus, statusCode, apiStatus, msg)
	}
}

func validateOK(body *result.Response, p Policy) (string, error) {
	h := body.Header
	apiStatus, msg := int(h.Status), string(h.Message)

	if p.Strict && p.APIKeySet && h.AccountType == "" {
		return "", domain.NewStatusError(domain.ErrInvalidAPIKey, http.StatusOK, apiStatus, msg)
	}

	switch {
	case apiStatus == statusOK:
		return "", nil
	case apiStatus > 0:
		// Server side: one or more indexes are offline.
		warning := fmt.Sprintf("partial index outage (status %d): %s", apiStatus, msg)
		if p.Strict {
			return warning, domain.NewStatusError(domain.ErrUnknownStatus, http.StatusOK, apiStatus, msg)
		}
		return warning, nil
	case apiStatus == statusBanned:
		return "", domain.NewStatusError(domain.ErrBanned, http.StatusOK, apiStatus, msg)
	case apiStatus == statusImageUploadFailed,
		apiStatus == statusImageFetchFailed,
		apiStatus == statusImageRejected:
		return "", domain.NewStatusError(domain.ErrInvalidImage, http.StatusOK, apiStatus, msg)
	case apiStatus == statusFileTooLarge:
		return "", domain.NewStatusError(domain.ErrFileSizeLimit, http.StatusOK, apiStatus, msg)
	default:
		if p.Strict || len(body.Results) == 0 {
			return "", domain.NewStatusError(domain.ErrUnknownStatus, http.StatusOK, apiStatus, msg)
		}
		return fmt.Sprintf("unrecognised client status %d, returning partial results: %s", apiStatus, msg), nil
	}
}

// Package lookup holds the outcome of a SauceNAO search.
package lookup

import (
	"slices"

	"github.com/kailas-cloud/saucenao/internal/domain/result"
	"github.com/kailas-cloud/saucenao/internal/domain/source"
)

// Tier is the human label of an account type.
type Tier string

// Account tiers.
const (
	TierUnregistered Tier = "unregistered"
	TierFree         Tier = "free"
	TierEnhanced     Tier = "enhanced"
	TierUnknown      Tier = "unknown"
)

// Account is the quota snapshot echoed in every response header.
type Account struct {
	UserID         string
	Type           string
	ShortLimit     int
	LongLimit      int
	ShortRemaining int
	LongRemaining  int
}

// AccountFromHeader extracts the account snapshot from a response header.
func AccountFromHeader(h *result.Header) Account {
	if h == nil {
		return Account{}
	}
	return Account{
		UserID:         string(h.UserID),
		Type:           string(h.AccountType),
		ShortLimit:     parseInt(h.ShortLimit),
		LongLimit:      parseInt(h.LongLimit),
		ShortRemaining: int(h.ShortRemaining),
		LongRemaining:  int(h.LongRemaining),
	}
}

// Tier maps the numeric account type to its label.
func (a Account) Tier() Tier {
	switch a.Type {
	case "0":
		return TierUnregistered
	case "1":
		return TierFree
	case "2":
		return TierEnhanced
	default:
		return TierUnknown
	}
}

// Results is a successful lookup: account metadata plus ranked sources.
// The order of sources is final.
type Results struct {
	account           Account
	status            int
	resultsRequested  int
	searchDepth       int
	minimumSimilarity float64
	sources           []source.Source
}

// NewResults creates Results from a response header and already ranked sources.
func NewResults(h *result.Header, sources []source.Source) Results {
	r := Results{
		account: AccountFromHeader(h),
		sources: sources,
	}
	if h != nil {
		r.status = int(h.Status)
		r.resultsRequested = int(h.ResultsRequested)
		r.searchDepth = parseInt(h.SearchDepth)
		r.minimumSimilarity = float64(h.MinimumSimilarity)
	}
	return r
}

// Account returns the account snapshot.
func (r *Results) Account() Account { return r.account }

// Status returns the API status code (0, or positive on partial index outage).
func (r *Results) Status() int { return r.status }

// ResultsRequested returns the result count the server honoured.
func (r *Results) ResultsRequested() int { return r.resultsRequested }

// SearchDepth returns the server search depth.
func (r *Results) SearchDepth() int { return r.searchDepth }

// MinimumSimilarity returns the similarity floor echoed by the server.
func (r *Results) MinimumSimilarity() float64 { return r.minimumSimilarity }

// Len returns the number of sources.
func (r *Results) Len() int { return len(r.sources) }

// At returns the i-th source. It panics when i is out of range.
func (r *Results) At(i int) source.Source { return r.sources[i] }

// All returns the sources in ranked order.
func (r *Results) All() []source.Source { return slices.Clone(r.sources) }

// OK reports whether at least one source is present.
func (r *Results) OK() bool { return len(r.sources) > 0 }

// Diagnostic is the outcome of a test lookup. It never carries a panic-worthy
// state: a failed probe sets Err and leaves whatever account data was returned.
type Diagnostic struct {
	Success bool
	Err     error
	Account Account
	Status  int
}

// NewDiagnostic creates a Diagnostic from an optional header and the lookup error.
func NewDiagnostic(h *result.Header, err error) Diagnostic {
	d := Diagnostic{
		Success: err == nil,
		Err:     err,
		Account: AccountFromHeader(h),
	}
	if h != nil {
		d.Status = int(h.Status)
	}
	return d
}

func parseInt(s result.String) int {
	var n result.Int
	_ = n.UnmarshalJSON([]byte(s))
	return int(n)
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPClient holds the outbound request collectors.
type HTTPClient struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
}

// NewHTTPClient creates unregistered outbound request collectors.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "saucenao",
				Name:      "http_client_request_duration_seconds",
				Help:      "Outbound HTTP request duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"host", "method", "status"},
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "saucenao",
				Name:      "http_client_requests_total",
				Help:      "Total number of outbound HTTP requests",
			},
			[]string{"host", "method", "status"},
		),
	}
}

// Register registers the collectors on reg, reusing ones already there.
func (m *HTTPClient) Register(reg prometheus.Registerer) error {
	if err := RegisterOrReuse(reg, &m.RequestDuration); err != nil {
		return err
	}
	return RegisterOrReuse(reg, &m.RequestsTotal)
}

// InstrumentTransport records duration and count of every request sent
// through next. A nil next means http.DefaultTransport.
func (m *HTTPClient) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(r)

		status := "error"
		if err == nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		host := normalizeHost(r.URL.Host)

		m.RequestDuration.WithLabelValues(host, r.Method, status).Observe(time.Since(start).Seconds())
		m.RequestsTotal.WithLabelValues(host, r.Method, status).Inc()
		return resp, err //nolint:wrapcheck // RoundTripper must return errors unchanged
	})
}

// normalizeHost keeps the label set bounded for empty hosts.
func normalizeHost(host string) string {
	if host == "" {
		return "unknown"
	}
	return host
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

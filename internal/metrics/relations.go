package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Relations holds the id mapping lookup and relation cache collectors.
type Relations struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	CacheTotal      *prometheus.CounterVec
}

// NewRelations creates unregistered relation collectors.
func NewRelations() *Relations {
	return &Relations{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "saucenao",
				Name:      "relation_requests_total",
				Help:      "Total number of id mapping service requests",
			},
			[]string{"status"}, // "found" / "empty" / "error"
		),
		RequestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "saucenao",
				Name:      "relation_request_duration_seconds",
				Help:      "Id mapping service request duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		CacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "saucenao",
				Name:      "relation_cache_total",
				Help:      "Relation cache hits and misses",
			},
			[]string{"result"}, // "hit" / "miss"
		),
	}
}

// Register registers the collectors on reg. Collectors already present on
// reg replace the fresh ones, so clients sharing a registerer share counters.
func (m *Relations) Register(reg prometheus.Registerer) error {
	if err := RegisterOrReuse(reg, &m.RequestsTotal); err != nil {
		return err
	}
	if err := RegisterOrReuse(reg, &m.RequestDuration); err != nil {
		return err
	}
	return RegisterOrReuse(reg, &m.CacheTotal)
}

// RegisterOrReuse registers a collector or reuses an existing one.
func RegisterOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("saucenao: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("saucenao: register metric: %w", err)
	}
	return nil
}

package saucenao

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/saucenao/internal/logger"
	"github.com/kailas-cloud/saucenao/internal/metrics"
)

// SDK operation names used as the "operation" label.
const (
	opFromURL    = "from_url"
	opFromFile   = "from_file"
	opFromReader = "from_reader"
	opTest       = "test"
)

// ContextWithLogger returns a copy of ctx carrying logger. Lookups and
// relation resolution run with that context log through it instead of the
// client logger.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return logpkg.ContextWithLogger(ctx, logger)
}

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saucenao",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by type and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "saucenao",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"operation"}),
	}
	if err := metrics.RegisterOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := metrics.RegisterOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// observer provides logging and metrics for SDK operations.
type observer struct {
	logger  *zap.Logger
	metrics *sdkMetrics
}

func newObserver(logger *zap.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, statusLabel(err)).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if err != nil {
		o.logger.Warn("Operation failed",
			zap.String("op", op),
			zap.Duration("duration", dur),
			zap.Error(err),
		)
		return
	}
	o.logger.Debug("Operation completed",
		zap.String("op", op),
		zap.Duration("duration", dur),
	)
}

// statusLabel keeps the status label set small: ok, one value per API error
// kind, or "error" for transport and input failures.
func statusLabel(err error) string {
	if err == nil {
		return "ok"
	}
	for _, k := range []struct {
		err   error
		label string
	}{
		{ErrShortLimit, "short_limit"},
		{ErrDailyLimit, "daily_limit"},
		{ErrTooManyFailedRequests, "too_many_failed"},
		{ErrInvalidAPIKey, "invalid_api_key"},
		{ErrFileSizeLimit, "file_size_limit"},
		{ErrInvalidImage, "invalid_image"},
		{ErrBanned, "banned"},
		{ErrUnknownStatus, "unknown_status"},
	} {
		if errors.Is(err, k.err) {
			return k.label
		}
	}
	return "error"
}

// Package service runs shipping operations against the carrier and keeps the
// local shipment records in step with the results.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/tournevent/aramexbridge/internal/events"
	"github.com/tournevent/aramexbridge/internal/store"
	"github.com/tournevent/aramexbridge/internal/telemetry"
	"github.com/tournevent/aramexbridge/pkg/shipper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit     = 50
	defaultTrackConcurrency = 4
	referenceLayout         = "20060102_150405"
)

// Result is the outcome of one operation. Failures never surface as returned
// errors; Err keeps the classified cause for callers that need it.
type Result[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Warning string `json:"warning,omitempty"`
	Err     error  `json:"-"`
}

func (r *Result[T]) warn(msg string) {
	if r.Warning == "" {
		r.Warning = msg
		return
	}
	r.Warning += "; " + msg
}

// Service orchestrates carrier operations.
type Service struct {
	carrier          shipper.Shipper
	store            store.Store
	publisher        events.Publisher
	logger           *otelzap.Logger
	metrics          *telemetry.Metrics
	now              func() time.Time
	trackConcurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the lifecycle event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the clock used for references and tracking timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTrackConcurrency bounds the number of concurrent TrackMany lookups.
func WithTrackConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.trackConcurrency = n
		}
	}
}

// New creates a Service. A nil store falls back to an in-memory store.
func New(carrier shipper.Shipper, st store.Store, logger *otelzap.Logger, opts ...Option) *Service {
	if st == nil {
		st = store.NewMemoryStore()
	}
	s := &Service{
		carrier:          carrier,
		store:            st,
		publisher:        events.NopPublisher{},
		logger:           logger,
		now:              time.Now,
		trackConcurrency: defaultTrackConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// observe writes the per-invocation log entry and metrics.
func (s *Service) observe(ctx context.Context, operation, key string, start time.Time, success bool, message string, err error) {
	status := "success"
	if !success {
		status = "error"
	}

	s.logger.Ctx(ctx).Info("shipping operation",
		zap.String("operation", operation),
		zap.String("key", key),
		zap.String("status", status),
		zap.String("message", message),
	)
	failed := err != nil && !errors.Is(err, shipper.ErrValidation) && !errors.Is(err, shipper.ErrInvalidInput)
	if failed {
		s.logger.Ctx(ctx).Error("shipping operation failed",
			zap.String("operation", operation),
			zap.String("key", key),
			zap.Error(err),
		)
	}

	if s.metrics == nil {
		return
	}
	s.metrics.RecordRequest(operation, s.carrier.Name(), status, time.Since(start).Seconds())
	if failed {
		s.metrics.RecordError(s.carrier.Name(), errorType(err))
	}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, shipper.ErrValidation):
		return "validation"
	case errors.Is(err, shipper.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, shipper.ErrBuild):
		return "build"
	case errors.Is(err, shipper.ErrNetwork):
		return "network"
	case errors.Is(err, shipper.ErrCarrierAPI):
		return "carrier_api"
	case errors.Is(err, shipper.ErrPersistence):
		return "persistence"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "context"
	default:
		return "unknown"
	}
}

func (s *Service) reference(prefix string) string {
	return prefix + s.now().Format(referenceLayout)
}

// publish sends an event and reports whether it was delivered.
func (s *Service) publish(ctx context.Context, e events.Event) bool {
	err := s.publisher.Publish(ctx, e)
	if s.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		s.metrics.RecordEvent(e.Type, status)
	}
	if err != nil {
		s.logger.Ctx(ctx).Warn("failed to publish event",
			zap.String("type", e.Type),
			zap.String("shipment_id", e.ShipmentID),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (s *Service) persistenceFailed(ctx context.Context, operation, key string, err error) {
	if s.metrics != nil {
		s.metrics.RecordPersistenceError()
	}
	s.logger.Ctx(ctx).Warn("failed to update shipment record",
		zap.String("operation", operation),
		zap.String("key", key),
		zap.Error(err),
	)
}

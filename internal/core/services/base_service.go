package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/property_billing_app/internal/middleware"
	"github.com/SscSPs/property_billing_app/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics *metrics.Metrics
	Clock   func() time.Time
}

// Option configures the BaseService embedded by every service.
type Option func(*BaseService)

// WithMetrics sets the collectors a service reports to. A nil Metrics is a no-op.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *BaseService) {
		s.Clock = now
	}
}

func newBaseService(opts []Option) BaseService {
	var s BaseService
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// requestValidator checks request DTOs with the same `binding` tags gin uses, so callers
// that bypass the HTTP layer get identical validation.
var requestValidator = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	return v
}()

// BaseService provides common functionality for all services
type BaseService struct {
	now   func() time.Time
	newID func() string
}

func newBaseService() BaseService {
	return BaseService{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// ValidateRequest runs the binding rules of a request DTO.
func (s *BaseService) ValidateRequest(req any) error {
	if err := requestValidator.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

func requireID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s is required", apperrors.ErrValidation, kind)
	}
	return nil
}

// ServiceOption configures the fields shared by every service. It is mainly used by tests
// to pin the clock and the id generator.
type ServiceOption func(*BaseService)

// WithClock overrides the service clock.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.now = now
	}
}

// WithIDGenerator overrides how new ids are produced.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *BaseService) {
		s.newID = newID
	}
}

func (s *BaseService) apply(opts []ServiceOption) {
	for _, opt := range opts {
		opt(s)
	}
}

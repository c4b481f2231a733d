// Package platformerrors classifies failures by kind and layer so handlers can map them
// to HTTP responses without inspecting driver or provider errors.
package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type requestIDKey struct{}

// ContextWithRequestID stores the request id so errors built downstream can carry it.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ErrorType is the failure category.
type ErrorType string

const (
	ErrorTypeNotFound      ErrorType = "NOT_FOUND"
	ErrorTypeValidation    ErrorType = "VALIDATION"
	ErrorTypeConflict      ErrorType = "CONFLICT"
	ErrorTypeUnauthorized  ErrorType = "UNAUTHORIZED"
	ErrorTypeInternal      ErrorType = "INTERNAL"
	ErrorTypeExternal      ErrorType = "EXTERNAL"
	ErrorTypeDatabaseError ErrorType = "DATABASE_ERROR"
	ErrorTypeTimeout       ErrorType = "TIMEOUT"
)

// Layer names where the error was raised.
type Layer string

const (
	LayerRepository     Layer = "repository"
	LayerDomain         Layer = "domain"
	LayerHandler        Layer = "handler"
	LayerInfrastructure Layer = "infrastructure"
)

// kind is how an ErrorType surfaces: HTTP status, API type string and log severity.
type kind struct {
	status  int
	apiType string
	level   zerolog.Level
}

var kinds = map[ErrorType]kind{
	ErrorTypeNotFound:      {http.StatusNotFound, "not_found_error", zerolog.WarnLevel},
	ErrorTypeValidation:    {http.StatusBadRequest, "validation_error", zerolog.WarnLevel},
	ErrorTypeConflict:      {http.StatusConflict, "conflict_error", zerolog.WarnLevel},
	ErrorTypeUnauthorized:  {http.StatusUnauthorized, "unauthorized_error", zerolog.WarnLevel},
	ErrorTypeExternal:      {http.StatusBadGateway, "external_error", zerolog.ErrorLevel},
	ErrorTypeTimeout:       {http.StatusGatewayTimeout, "timeout_error", zerolog.ErrorLevel},
	ErrorTypeDatabaseError: {http.StatusInternalServerError, "internal_error", zerolog.ErrorLevel},
	ErrorTypeInternal:      {http.StatusInternalServerError, "internal_error", zerolog.ErrorLevel},
}

func kindOf(t ErrorType) kind {
	if k, ok := kinds[t]; ok {
		return k
	}
	return kinds[ErrorTypeInternal]
}

// PlatformError is a classified error. UUID survives re-wrapping across layers so one
// failure can be followed through the logs.
type PlatformError struct {
	UUID      string
	Type      ErrorType
	Layer     Layer
	Message   string
	Err       error
	RequestID string
	Timestamp time.Time
}

func (e *PlatformError) Error() string {
	msg := fmt.Sprintf("%s/%s: %s", e.Layer, e.Type, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + " (" + e.UUID + ")"
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// NewError builds a PlatformError. An empty id gets a fresh uuid.
func NewError(ctx context.Context, layer Layer, errorType ErrorType, message string, err error, id string) *PlatformError {
	if id == "" {
		id = uuid.NewString()
	}
	return &PlatformError{
		UUID:      id,
		Type:      errorType,
		Layer:     layer,
		Message:   message,
		Err:       err,
		RequestID: RequestIDFromContext(ctx),
		Timestamp: time.Now().UTC(),
	}
}

// AsError re-raises err at layer. A wrapped PlatformError keeps its type and id; context
// expiry becomes TIMEOUT and everything else INTERNAL.
func AsError(ctx context.Context, layer Layer, err error, message string) *PlatformError {
	if err == nil {
		return nil
	}
	if inner := GetPlatformError(err); inner != nil {
		return NewError(ctx, layer, inner.Type, message+": "+inner.Message, err, inner.UUID)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewError(ctx, layer, ErrorTypeTimeout, message, err, "")
	}
	return NewError(ctx, layer, ErrorTypeInternal, message, err, "")
}

func ErrorTypeToHTTPStatus(errorType ErrorType) int {
	return kindOf(errorType).status
}

func IsErrorType(err error, errorType ErrorType) bool {
	pe := GetPlatformError(err)
	return pe != nil && pe.Type == errorType
}

// GetPlatformError returns the outermost PlatformError in the chain, or nil.
func GetPlatformError(err error) *PlatformError {
	var pe *PlatformError
	if err != nil && errors.As(err, &pe) {
		return pe
	}
	return nil
}

// LogError writes err at the severity of its type: client mistakes at warn, the rest at error.
func LogError(logger *zerolog.Logger, err *PlatformError) {
	if logger == nil || err == nil {
		return
	}
	event := logger.WithLevel(kindOf(err.Type).level).
		Str("error_uuid", err.UUID).
		Str("error_type", string(err.Type)).
		Str("layer", string(err.Layer))
	if err.RequestID != "" {
		event = event.Str("request_id", err.RequestID)
	}
	if err.Err != nil {
		event = event.Err(err.Err)
	}
	event.Msg(err.Message)
}

package platformerrors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorCarriesRequestID(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-42")

	err := NewError(ctx, LayerDomain, ErrorTypeValidation, "content is required", nil, "")

	assert.Equal(t, "req-42", err.RequestID)
	assert.NotEmpty(t, err.UUID)
	assert.Equal(t, ErrorTypeValidation, err.Type)
}

func TestAsErrorPreservesTypeAndUUID(t *testing.T) {
	ctx := context.Background()
	inner := NewError(ctx, LayerRepository, ErrorTypeNotFound, "journal entry not found", nil, "fixed-uuid")

	wrapped := AsError(ctx, LayerDomain, inner, "add followup")

	assert.Equal(t, ErrorTypeNotFound, wrapped.Type)
	assert.Equal(t, "fixed-uuid", wrapped.UUID)
	assert.Equal(t, "add followup: journal entry not found", wrapped.Message)
	assert.True(t, IsErrorType(fmt.Errorf("outer: %w", wrapped), ErrorTypeNotFound))
}

func TestAsErrorClassifiesDeadline(t *testing.T) {
	err := AsError(context.Background(), LayerInfrastructure, context.DeadlineExceeded, "embed")

	assert.Equal(t, ErrorTypeTimeout, err.Type)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Nil(t, AsError(context.Background(), LayerDomain, nil, "noop"))
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	cases := map[ErrorType]int{
		ErrorTypeNotFound:      http.StatusNotFound,
		ErrorTypeValidation:    http.StatusBadRequest,
		ErrorTypeConflict:      http.StatusConflict,
		ErrorTypeExternal:      http.StatusBadGateway,
		ErrorTypeTimeout:       http.StatusGatewayTimeout,
		ErrorTypeDatabaseError: http.StatusInternalServerError,
	}
	for errorType, status := range cases {
		assert.Equal(t, status, ErrorTypeToHTTPStatus(errorType), errorType)
	}
}

func TestWriteErrorFormatsPlatformError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(c, NewError(c.Request.Context(), LayerHandler, ErrorTypeConflict, "session has ended", nil, "code-1"))

	require.Equal(t, http.StatusConflict, w.Code)
	var body HTTPErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "conflict_error", body.Error.Type)
	assert.Equal(t, "code-1", body.Error.Code)
	assert.Equal(t, "session has ended", body.Error.Message)
}

func TestWriteErrorHidesPlainErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(c, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestWriteErrorLogsPlainErrorsOnRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	reqLog := zerolog.New(&buf)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))

	WriteError(c, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "unhandled error")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestLogErrorLevelFollowsType(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	LogError(&logger, NewError(context.Background(), LayerDomain, ErrorTypeConflict, "followup already synthesized", nil, "id-1"))
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"error_uuid":"id-1"`)

	buf.Reset()
	LogError(&logger, NewError(context.Background(), LayerRepository, ErrorTypeDatabaseError, "insert failed", errors.New("boom"), ""))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "boom")

	LogError(nil, NewError(context.Background(), LayerDomain, ErrorTypeInternal, "ignored", nil, ""))
}

func TestWriteHelpersUseMappedTypes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request = c.Request.WithContext(ContextWithRequestID(c.Request.Context(), "req-7"))

	WriteUnauthorized(c, "missing bearer token")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body HTTPErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized_error", body.Error.Type)
	assert.Equal(t, "req-7", body.Error.RequestID)
}

package platformerrors

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// HTTPErrorResponse represents the standard error response format.
type HTTPErrorResponse struct {
	Error *HTTPErrorDetail `json:"error"`
}

// HTTPErrorDetail contains error details for HTTP responses.
type HTTPErrorDetail struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteHTTPError logs err and answers with its mapped status. Code carries the error uuid.
func WriteHTTPError(c *gin.Context, err *PlatformError) {
	if err == nil {
		WriteInternalError(c, "unknown error")
		return
	}

	LogError(requestLogger(c), err)

	c.AbortWithStatusJSON(ErrorTypeToHTTPStatus(err.Type), HTTPErrorResponse{
		Error: &HTTPErrorDetail{
			Message:   err.Message,
			Type:      kindOf(err.Type).apiType,
			Code:      err.UUID,
			RequestID: err.RequestID,
		},
	})
}

// WriteError answers with err's platform classification. Unclassified errors are logged and
// hidden behind a generic 500.
func WriteError(c *gin.Context, err error) {
	if err == nil {
		WriteInternalError(c, "unknown error")
		return
	}

	if platformErr := GetPlatformError(err); platformErr != nil {
		WriteHTTPError(c, platformErr)
		return
	}

	requestLogger(c).Error().Err(err).Msg("unhandled error")
	WriteInternalError(c, "internal server error")
}

func WriteValidationError(c *gin.Context, message string) {
	abort(c, ErrorTypeValidation, message)
}

func WriteUnauthorized(c *gin.Context, message string) {
	abort(c, ErrorTypeUnauthorized, message)
}

func WriteInternalError(c *gin.Context, message string) {
	abort(c, ErrorTypeInternal, message)
}

// abort answers with a bare message for failures raised before any PlatformError exists.
func abort(c *gin.Context, errorType ErrorType, message string) {
	k := kindOf(errorType)
	c.AbortWithStatusJSON(k.status, HTTPErrorResponse{
		Error: &HTTPErrorDetail{
			Message:   message,
			Type:      k.apiType,
			RequestID: RequestIDFromContext(c.Request.Context()),
		},
	})
}

// requestLogger prefers the request-scoped logger attached by the request id middleware.
func requestLogger(c *gin.Context) *zerolog.Logger {
	if l := log.Ctx(c.Request.Context()); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

package handlers

import (
	stderrors "errors"
	"net/http"

	"ledgerview/internal/errors"
	"ledgerview/internal/upstream"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// All handlers must use the following standardized error response functions:
//
// 1. SendError - For client errors and business logic errors (4xx responses)
// 2. SendUpstreamError - For finance backend call failures (maps timeouts,
//    unreachability, and backend rejections onto the UPSTREAM_* codes)
// 3. SendSystemError - For system/internal errors (500 responses)
//
// DO NOT USE:
//    - echo.NewHTTPError() - Use SendError or SendSystemError instead
//    - Direct c.JSON() for errors - Use the helper functions
//    - return err without wrapping - Use SendSystemError to protect internal details

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, _ := errors.WrapSystemError(err, traceID)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// SendUpstreamError maps a finance backend call failure onto the
// standardized error codes. Backend rejections surface the backend's own
// detail message; transport failures surface as gateway-level codes.
func SendUpstreamError(c echo.Context, err error) error {
	if stderrors.Is(err, upstream.ErrTimeout) {
		return SendError(c, errors.UpstreamTimeout)
	}
	if stderrors.Is(err, upstream.ErrUnavailable) {
		return SendError(c, errors.UpstreamUnavailable)
	}

	var decodeErr *upstream.DecodeError
	if stderrors.As(err, &decodeErr) {
		return SendError(c, errors.UpstreamBadPayload)
	}

	var statusErr *upstream.StatusError
	if stderrors.As(err, &statusErr) {
		switch {
		case statusErr.IsAuthError():
			return SendError(c, errors.AuthUpstreamRejected, errors.WithDetails(statusErr.Detail))
		case statusErr.StatusCode == http.StatusNotFound:
			return SendError(c, errors.AccountNotFound, errors.WithDetails(statusErr.Detail))
		default:
			return SendError(c, errors.UpstreamRejected, errors.WithDetails(statusErr.Detail))
		}
	}

	return SendSystemError(c, err)
}

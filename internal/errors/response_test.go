package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ResponseTestSuite defines the test suite for error responses
type ResponseTestSuite struct {
	suite.Suite
}

// TestResponseTestSuite runs the test suite
func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

// TestNewErrorResponse tests creating a basic error response
func (s *ResponseTestSuite) TestNewErrorResponse() {
	response := NewErrorResponse(UploadBatchNotFound, "trace-123")

	s.Equal("UPLOAD_005", response.Error.Code)
	s.Equal("Upload batch not found", response.Error.Message)
	s.Equal("trace-123", response.Error.TraceID)
	s.Empty(response.Error.Details)
}

// TestNewErrorResponse_WithDetails tests the details option
func (s *ResponseTestSuite) TestNewErrorResponse_WithDetails() {
	response := NewErrorResponse(UploadBatchRejected, "trace-123",
		WithDetails("row 0: amount: must be a number", "row 2: currency: is required"))

	s.Len(response.Error.Details, 2)
	s.Contains(response.Error.Details[0], "row 0")
}

// TestNewErrorResponse_WithMessage tests the message override option
func (s *ResponseTestSuite) TestNewErrorResponse_WithMessage() {
	response := NewErrorResponse(ValidationGeneral, "trace-123",
		WithMessage("CSV file must include a currency column"))

	s.Equal("VALIDATION_001", response.Error.Code)
	s.Equal("CSV file must include a currency column", response.Error.Message)
}

// TestNewValidationError tests building field-level validation errors
func (s *ResponseTestSuite) TestNewValidationError() {
	response := NewValidationError(map[string]string{
		"amount": "must be a non-zero number",
	}, "trace-456")

	s.Equal("VALIDATION_001", response.Error.Code)
	s.Require().Len(response.Error.Details, 1)
	s.Equal("amount: must be a non-zero number", response.Error.Details[0])
}

// TestWrapSystemError tests that internals never reach the client payload
func (s *ResponseTestSuite) TestWrapSystemError() {
	internal := stderrors.New("pq: connection refused on 10.0.0.5")

	response, err := WrapSystemError(internal, "trace-789")

	s.Equal(internal, err)
	s.Equal("SYSTEM_001", response.Error.Code)
	s.NotContains(response.Error.Message, "10.0.0.5")
	s.Empty(response.Error.Details)
}

// TestGetHTTPStatusForResponse tests status derivation from the response
func (s *ResponseTestSuite) TestGetHTTPStatusForResponse() {
	s.Equal(404, NewErrorResponse(UploadBatchNotFound, "t").GetHTTPStatus())
	s.Equal(409, NewErrorResponse(UploadBatchNotPending, "t").GetHTTPStatus())
	s.Equal(502, NewErrorResponse(UpstreamUnavailable, "t").GetHTTPStatus())
}

// TestIsClientError tests the 4xx/5xx classification helpers
func (s *ResponseTestSuite) TestIsClientError() {
	s.True(NewErrorResponse(ValidationGeneral, "t").IsClientError())
	s.False(NewErrorResponse(ValidationGeneral, "t").IsServerError())
	s.True(NewErrorResponse(SystemInternalError, "t").IsServerError())
}

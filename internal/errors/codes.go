package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken       ErrorCode = "AUTH_001"
	AuthInvalidTokenFormat ErrorCode = "AUTH_002"
	AuthUpstreamRejected   ErrorCode = "AUTH_003"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationZeroAmount    ErrorCode = "VALIDATION_004"
	ValidationInvalidSort   ErrorCode = "VALIDATION_005"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound  ErrorCode = "ACCOUNT_001"
	AccountInvalidID ErrorCode = "ACCOUNT_002"
)

// Upload pipeline error codes (UPLOAD_*)
const (
	UploadNotCSV          ErrorCode = "UPLOAD_001"
	UploadEmptyFile       ErrorCode = "UPLOAD_002"
	UploadSchemaMismatch  ErrorCode = "UPLOAD_003"
	UploadBatchRejected   ErrorCode = "UPLOAD_004"
	UploadBatchNotFound   ErrorCode = "UPLOAD_005"
	UploadBatchNotPending ErrorCode = "UPLOAD_006"
	UploadPartialFailure  ErrorCode = "UPLOAD_007"
)

// Upstream backend error codes (UPSTREAM_*)
const (
	UpstreamUnavailable ErrorCode = "UPSTREAM_001"
	UpstreamTimeout     ErrorCode = "UPSTREAM_002"
	UpstreamRejected    ErrorCode = "UPSTREAM_003"
	UpstreamBadPayload  ErrorCode = "UPSTREAM_004"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemLedgerError        ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthMissingToken:       "Authorization token is required",
	AuthInvalidTokenFormat: "Invalid authorization token format",
	AuthUpstreamRejected:   "Authentication was rejected by the finance service",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationZeroAmount:    "Amount must be a non-zero number",
	ValidationInvalidSort:   "Invalid sort field or direction",

	// Account errors
	AccountNotFound:  "Bank account not found",
	AccountInvalidID: "Invalid account ID format",

	// Upload pipeline errors
	UploadNotCSV:          "Only .csv files can be uploaded",
	UploadEmptyFile:       "No transactions found in file",
	UploadSchemaMismatch:  "CSV file must include amount, description, category, and currency columns",
	UploadBatchRejected:   "Upload batch failed validation",
	UploadBatchNotFound:   "Upload batch not found",
	UploadBatchNotPending: "Upload batch has already been submitted",
	UploadPartialFailure:  "Upload stopped before all transactions were created",

	// Upstream backend errors
	UpstreamUnavailable: "Finance service is unreachable. Please try again",
	UpstreamTimeout:     "Finance service timed out. Please try again",
	UpstreamRejected:    "Finance service rejected the request",
	UpstreamBadPayload:  "Finance service returned an unreadable response",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemLedgerError:        "Upload ledger is unavailable",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}

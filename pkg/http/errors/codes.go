package errors

// Machine-readable values of ErrorResponse.Error.
const (
	// auth
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeInvalidToken = "invalid_token"
	ErrCodeLoginFailed  = "login_failed"

	// input
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeMissingFile    = "missing_file"
	ErrCodeInvalidCSV     = "invalid_csv"
	ErrCodeUploadTooLarge = "upload_too_large"

	ErrCodeNotFound      = "not_found"
	ErrCodeInternalError = "internal_error"
)

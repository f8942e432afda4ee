package handlers

const (
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 1 << 20

	ErrInvalidRequestBody  = "Invalid request body"
	ErrStorageUnavailable  = "Progress storage is unavailable"
	ErrInternalServerError = "Internal server error"
	ErrTooManyRequests     = "Too many requests"
	ErrNotFound            = "Not found"
)

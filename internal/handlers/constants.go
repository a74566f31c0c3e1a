package handlers

const (
	maxBodyBytes = 1 << 20

	AdminKeyHeader = "X-Admin-Key"

	ErrInvalidJSON         = "Invalid JSON body"
	ErrUnauthorized        = "Unauthorized"
	ErrTooManyRequests     = "Too many requests"
	ErrInternalServerError = "Internal server error"
)

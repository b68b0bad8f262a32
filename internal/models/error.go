package models

// Error message constants shared across handlers.
const (
	ErrBadRequest   = "Bad Request"
	ErrUnauthorized = "Unauthorized"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

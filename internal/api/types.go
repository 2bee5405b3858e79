// Package api defines the JSON bodies shared by the HTTP handlers.
package api

// Error categories returned in ErrorResponse.Error. Clients switch on these values.
const (
	ErrCodeValidation         = "validation_failed"
	ErrCodeEmailTaken         = "email_taken"
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeNotFound           = "not_found"
	ErrCodeInternal           = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// TokenResponse is returned by signup and signin.
type TokenResponse struct {
	Token string `json:"token"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Package apierror defines the error envelopes every 4xx/5xx response uses.
// Handlers build these instead of writing raw strings, so clients always see
// the same shape and internal details (SQL, stack traces) never leak out.
package apierror

// APIError is the single-message envelope.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func (e *APIError) Error() string { return e.Detail }

// ValidationError carries one message per offending field.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validación", Fields: fields}
}

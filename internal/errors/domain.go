// Package errors defines the application's error taxonomy. Handlers map
// DomainError codes onto HTTP statuses; services return them directly or
// wrap repository errors into them.
package errors

// Error taxonomy codes
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeUpstream   = "UPSTREAM_ERROR"
	CodeNotFound   = "NOT_FOUND"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Validation builds a 400-class error with a descriptive message.
func Validation(message string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: message}
}

// Upstream builds an error for a failed provider or database call.
func Upstream(message string) *DomainError {
	return &DomainError{Code: CodeUpstream, Message: message}
}

// NotFound builds an error for an absent record.
func NotFound(message string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: message}
}

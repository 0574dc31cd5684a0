package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithCause returns a copy of the error carrying the underlying cause. The
// sentinel itself is never mutated.
func (e *DomainError) WithCause(err error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrMissingProjectName = NewDomainError(ErrCodeValidation, "project_name is required")
	ErrMissingQuestion    = NewDomainError(ErrCodeValidation, "q is required")
	ErrMissingPDFName     = NewDomainError(ErrCodeValidation, "pdf_name is required")
	ErrTooManyFiles       = NewDomainError(ErrCodeValidation, "maximum 2 PDFs allowed")
	ErrNotAPDF            = NewDomainError(ErrCodeValidation, "file is not a PDF")
)

// Extraction errors
var (
	ErrInvalidPDF = NewDomainError(ErrCodeValidation, "could not decode PDF")
)

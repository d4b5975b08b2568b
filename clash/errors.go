package clash

import (
	"errors"
	"fmt"
)

// ErrorType classifies errors returned by the client.
type ErrorType string

const (
	// ErrorTypeValidation indicates an invalid argument or request.
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeConfiguration indicates missing or unusable configuration.
	ErrorTypeConfiguration ErrorType = "configuration"

	// ErrorTypeNetwork indicates the request could not be sent.
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeParsing indicates a response body could not be decoded.
	ErrorTypeParsing ErrorType = "parsing"
)

// Error is a structured client error.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an error of the given type.
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithCause records the underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext attaches a key/value detail.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

var (
	// ErrNilRequest is returned when Load is called without a request.
	ErrNilRequest = NewError(ErrorTypeValidation, "request is required")

	// ErrNoConfig is returned when a client is built without a configuration provider.
	ErrNoConfig = NewError(ErrorTypeConfiguration, "no configuration provider")
)

func isType(err error, t ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool { return isType(err, ErrorTypeValidation) }

// IsConfigurationError reports whether err is a configuration error.
func IsConfigurationError(err error) bool { return isType(err, ErrorTypeConfiguration) }

// IsNetworkError reports whether err is a network error.
func IsNetworkError(err error) bool { return isType(err, ErrorTypeNetwork) }

// IsParsingError reports whether err is a parsing error.
func IsParsingError(err error) bool { return isType(err, ErrorTypeParsing) }

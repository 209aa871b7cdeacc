package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes run-ending errors.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// EnumerationFailed indicates the site list could not be read.
	EnumerationFailed
	// WriteFailed indicates the report could not be written.
	WriteFailed
	// InvalidConfig indicates the configuration file was rejected.
	InvalidConfig
)

func (k Kind) String() string {
	switch k {
	case EnumerationFailed:
		return "enumeration failed"
	case WriteFailed:
		return "write failed"
	case InvalidConfig:
		return "invalid config"
	default:
		return "unknown"
	}
}

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New wraps cause with a kind and message.
func New(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the Kind of the first AppError in err's chain.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}

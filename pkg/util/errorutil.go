package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies application errors internally. Everything except validation
// collapses to the same generic message on the wire.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindPersistence  Kind = "persistence"
	KindNotification Kind = "notification"
	KindInternal     Kind = "internal"
)

// GenericMessage is the only detail non-validation failures leak to callers.
const GenericMessage = "Internal server error. Please try again."

// DomainError standardizes application errors.
type DomainError struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// ExternalMessage is what the HTTP response may carry.
func (e *DomainError) ExternalMessage() string {
	if e.Kind == KindValidation {
		return e.Message
	}
	return GenericMessage
}

// NewValidationError reports user input violations; the message is shown as-is.
func NewValidationError(message string) error {
	return &DomainError{
		Kind:       KindValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewPersistenceError wraps storage failures.
func NewPersistenceError(message string, err error) error {
	return &DomainError{
		Kind:       KindPersistence,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewNotificationError wraps mail delivery failures. Never surfaced to callers.
func NewNotificationError(err error) error {
	return &DomainError{
		Kind:       KindNotification,
		Message:    "could not send notification",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewInternalError wraps unexpected failures.
func NewInternalError(err error) error {
	return &DomainError{
		Kind:       KindInternal,
		Message:    "unexpected error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewMethodNotAllowed rejects unsupported HTTP methods.
func NewMethodNotAllowed() error {
	return &DomainError{
		Kind:       KindValidation,
		Message:    "method not allowed, use POST",
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

// ToDomainError coerces any error into a DomainError, treating unknown values
// as internal failures.
func ToDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Kind:       KindInternal,
		Message:    "unexpected error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

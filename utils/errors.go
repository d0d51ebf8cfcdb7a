package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures surfaced by the content and media layers so the
// HTTP layer can map them to status codes without string matching.
type ErrorKind string

const (
	KindMissingRequiredField ErrorKind = "missing_required_field"
	KindInvalidEnumValue     ErrorKind = "invalid_enum_value"
	KindUnsupportedFormat    ErrorKind = "unsupported_format"
	KindPayloadTooLarge      ErrorKind = "payload_too_large"
	KindInvalidImage         ErrorKind = "invalid_image"
	KindStorageWriteFailed   ErrorKind = "storage_write_failed"
	KindNotFound             ErrorKind = "not_found"
)

// AppError is a typed failure with an optional wrapped cause.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError builds a typed error without a cause.
func NewAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// WrapAppError builds a typed error around an underlying cause.
func WrapAppError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the ErrorKind from err, or empty string if err is not an AppError.
func KindOf(err error) ErrorKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error kind to the HTTP status the API responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindMissingRequiredField, KindInvalidEnumValue:
		return http.StatusBadRequest
	case KindUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindInvalidImage:
		return http.StatusUnprocessableEntity
	case KindStorageWriteFailed:
		return http.StatusBadGateway
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

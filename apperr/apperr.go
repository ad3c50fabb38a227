// Package apperr defines the error taxonomy shared across the blog writer:
// InputError for malformed user input, UpstreamError for failures returned by
// external APIs, and FormatError for generated text that cannot be normalized.
package apperr

import (
	"errors"
	"fmt"
)

// InputError reports a malformed or missing request field. Callers handle it
// locally by defaulting or re-prompting; the server maps it to HTTP 400.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewInput builds an InputError for one field.
func NewInput(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

// UpstreamError carries a failure from the generation, image, document-store,
// or CMS API. Message holds the upstream error text verbatim; it is surfaced
// to the user unmodified and never retried here.
type UpstreamError struct {
	Service string // "openai", "images", "notion", "wordpress"
	Status  int    // HTTP status when the upstream supplied one, else 0
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Service, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Cause }

// Upstream wraps err as an UpstreamError, keeping err.Error() as the verbatim
// message when no explicit message is available.
func Upstream(service string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Message: err.Error(), Cause: err}
}

// UpstreamStatus builds an UpstreamError from a decoded API error payload.
func UpstreamStatus(service string, status int, message string) *UpstreamError {
	return &UpstreamError{Service: service, Status: status, Message: message}
}

// FormatError reports generated text whose structure could not be normalized.
// Callers fall back to pass-through formatting instead of failing the request.
type FormatError struct {
	Reason string
	Cause  error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

func (e *FormatError) Unwrap() error { return e.Cause }

// AsInput reports whether err is (or wraps) an InputError.
func AsInput(err error) (*InputError, bool) {
	var e *InputError
	ok := errors.As(err, &e)
	return e, ok
}

// AsUpstream reports whether err is (or wraps) an UpstreamError.
func AsUpstream(err error) (*UpstreamError, bool) {
	var e *UpstreamError
	ok := errors.As(err, &e)
	return e, ok
}

// AsFormat reports whether err is (or wraps) a FormatError.
func AsFormat(err error) (*FormatError, bool) {
	var e *FormatError
	ok := errors.As(err, &e)
	return e, ok
}

// Package errors defines the error taxonomy shared by painel's services and handlers.
//
// An AppError's Message is always safe to put in a toast; its Cause is for
// logs only. Handlers map codes to HTTP statuses, the API client maps
// backend statuses to codes.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode is the category of an AppError.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "not_found"
	ErrCodeValidation   ErrorCode = "validation"   // bad user input, optionally tied to a form field
	ErrCodeUnauthorized ErrorCode = "unauthorized" // backend rejected credentials or the session
	ErrCodeForbidden    ErrorCode = "forbidden"    // role does not allow the action
	ErrCodeUpstream     ErrorCode = "upstream"     // backend failed or answered garbage
	ErrCodeInternal     ErrorCode = "internal"
	ErrCodeTimeout      ErrorCode = "timeout"
	ErrCodeCanceled     ErrorCode = "canceled"
)

// AppError carries a code, a user-facing message and an optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Field   string // form field for validation errors
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// ValidationField is a validation error the settings form can attach to field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: ErrCodeForbidden, Message: message}
}

func Upstream(message string) *AppError {
	return &AppError{Code: ErrCodeUpstream, Message: message}
}

// Wrap attaches code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// FromContext turns context deadline and cancellation into timeout and
// canceled errors; anything else is returned as is.
func FromContext(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrCodeTimeout, "Tempo limite excedido")
	}
	if errors.Is(err, context.Canceled) {
		return Wrap(err, ErrCodeCanceled, "Requisição cancelada")
	}
	return err
}

func as(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// HasCode reports whether the first AppError in err's chain has code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := as(err)
	return ok && appErr.Code == code
}

func IsValidation(err error) bool   { return HasCode(err, ErrCodeValidation) }
func IsUnauthorized(err error) bool { return HasCode(err, ErrCodeUnauthorized) }
func IsUpstream(err error) bool     { return HasCode(err, ErrCodeUpstream) }
func IsTimeout(err error) bool      { return HasCode(err, ErrCodeTimeout) }

// GetCode returns the code of the first AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	if appErr, ok := as(err); ok {
		return appErr.Code
	}
	return ""
}

// GetField returns the form field of a validation error, or "".
func GetField(err error) string {
	if appErr, ok := as(err); ok {
		return appErr.Field
	}
	return ""
}

// UserMessage returns the AppError's message, or fallback when err carries none.
// Causes are never exposed.
func UserMessage(err error, fallback string) string {
	if appErr, ok := as(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

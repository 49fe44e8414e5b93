// Package apperror defines the application's typed errors and their mapping to
// HTTP status codes, so handlers can translate service failures uniformly.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Type categorizes an application error.
type Type int

const (
	Unknown Type = iota
	// Validation is malformed or missing input.
	Validation
	// Conflict is a uniqueness violation (duplicate username/email, etc).
	Conflict
	// Auth is an authentication failure. The message is intentionally generic.
	Auth
	// Token is an invalid or expired reset token. Tamper and expiry are not
	// distinguished.
	Token
	// NotFound is an unknown identifier on read/update/delete.
	NotFound
	// Database is a persistence-layer failure.
	Database
	// ExternalService is a failure of an upstream dependency (LLM, mail, ES).
	ExternalService
)

// Error is the application error type. Message is user-facing; Err carries the
// underlying cause for logs and is never serialized to clients.
type Error struct {
	Type    Type
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode maps the error type to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.Type {
	case Validation, Token:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Auth:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case ExternalService:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func New(t Type, message string, err error) *Error {
	return &Error{Type: t, Message: message, Err: err}
}

func NewValidation(message string, err error) *Error { return New(Validation, message, err) }
func NewConflict(message string, err error) *Error   { return New(Conflict, message, err) }
func NewAuth(message string, err error) *Error       { return New(Auth, message, err) }
func NewToken(message string, err error) *Error      { return New(Token, message, err) }
func NewNotFound(message string, err error) *Error   { return New(NotFound, message, err) }
func NewDatabase(message string, err error) *Error   { return New(Database, message, err) }
func NewExternal(message string, err error) *Error   { return New(ExternalService, message, err) }

// From extracts an *Error from err's chain, if present.
func From(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func is(err error, t Type) bool {
	ae, ok := From(err)
	return ok && ae.Type == t
}

func IsValidation(err error) bool { return is(err, Validation) }
func IsConflict(err error) bool   { return is(err, Conflict) }
func IsAuth(err error) bool       { return is(err, Auth) }
func IsToken(err error) bool      { return is(err, Token) }
func IsNotFound(err error) bool   { return is(err, NotFound) }

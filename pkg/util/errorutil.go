package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes rendered at the HTTP boundary.
const (
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeDuplicateEmail      = "DUPLICATE_EMAIL"
	CodeInvalidRole         = "INVALID_ROLE"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeTokenInvalid        = "TOKEN_INVALID"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeAccessDenied        = "ACCESS_DENIED"
	CodeNotFound            = "NOT_FOUND"
	CodeProviderUnsupported = "PROVIDER_UNSUPPORTED"
	CodeInternal            = "INTERNAL_ERROR"
)

// AccessDeniedMessage is the fixed message for forbidden responses.
const AccessDeniedMessage = "Access Denied: You do not have permission to access this resource."

// Sentinel errors, matched with errors.Is by code.
var (
	ErrInvalidCredentials  = NewDomainError(CodeInvalidCredentials, "Bad credentials", http.StatusUnauthorized, nil)
	ErrDuplicateEmail      = NewDomainError(CodeDuplicateEmail, "Email is already taken!", http.StatusBadRequest, nil)
	ErrInvalidRole         = NewDomainError(CodeInvalidRole, "Error: Invalid role specified.", http.StatusBadRequest, nil)
	ErrTokenExpired        = NewDomainError(CodeTokenExpired, "token expired", http.StatusUnauthorized, nil)
	ErrTokenInvalid        = NewDomainError(CodeTokenInvalid, "invalid token", http.StatusUnauthorized, nil)
	ErrAccessDenied        = NewDomainError(CodeAccessDenied, AccessDeniedMessage, http.StatusForbidden, nil)
	ErrProviderUnsupported = NewDomainError(CodeProviderUnsupported, "social login provider is not supported", http.StatusBadRequest, nil)
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
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

// Is reports whether target is a DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Wrap returns a copy of e that carries err as its cause.
func (e *DomainError) Wrap(err error) *DomainError {
	clone := *e
	clone.Err = err
	return &clone
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewInternalError(err).(*DomainError)
}

// PublicMessage returns the message safe to render for the error. Internal
// errors only carry their cause when exposeInternal is set.
func (e *DomainError) PublicMessage(exposeInternal bool) string {
	if e.HTTPStatus >= http.StatusInternalServerError && exposeInternal && e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation  ErrKind = "validation"   // 400
	KindAuth        ErrKind = "auth"         // 401
	KindNotFound    ErrKind = "not_found"    // 404
	KindConflict    ErrKind = "conflict"     // 400 (duplicate unique field, reported with field detail)
	KindRateLimited ErrKind = "rate_limited" // 429
	KindInternal    ErrKind = "internal"     // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking internals)
// - Fields: per-field violation lists; validation always reports ALL broken rules
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Fields  map[string][]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// KindOf returns the kind of a domain error, or KindInternal for foreign errors.
func KindOf(err error) ErrKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	e := New(KindValidation, "missing_field", "missing required field")
	e.Fields = map[string][]string{field: {"This field is required."}}
	return e
}

// ErrValidationFields reports every violated rule, keyed by field.
func ErrValidationFields(msg string, fields map[string][]string) *Error {
	e := New(KindValidation, "invalid_input", msg)
	e.Fields = fields
	return e
}

func ErrRefreshTokenRequired() *Error {
	return New(KindValidation, "refresh_token_required", "refresh token is required")
}

func ErrRefreshTokenMalformed() *Error {
	return New(KindValidation, "refresh_token_malformed", "refresh token could not be parsed")
}

// ----------------------
// Auth errors (401)
// ----------------------

// Use for login failures to avoid user enumeration.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "invalid email or password")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "invalid token")
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "token is expired")
}

func ErrRefreshTokenInvalid() *Error {
	return New(KindAuth, "refresh_token_invalid", "invalid or expired refresh token")
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrPageNotFound(page int) *Error {
	e := New(KindNotFound, "invalid_page", "invalid page")
	e.Fields = map[string][]string{"page": {fmt.Sprintf("Page %d contains no results.", page)}}
	return e
}

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "user not found")
}

// ----------------------
// Conflict (reported as 400 with field detail)
// ----------------------

func ErrEmailAlreadyExists() *Error {
	e := New(KindConflict, "email_already_exists", "invalid registration data")
	e.Fields = map[string][]string{"email": {"A user with this email already exists."}}
	return e
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrRateLimited(scope string) *Error {
	e := New(KindRateLimited, "rate_limited", "too many requests, please try again in a few minutes")
	e.Fields = map[string][]string{"scope": {scope}}
	return e
}

// ----------------------
// Internal (5xx)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInternal, "db_unavailable", "database error occurred", cause)
}

func ErrBlacklistUnavailable(cause error) *Error {
	return Wrap(KindInternal, "blacklist_unavailable", "token store unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}

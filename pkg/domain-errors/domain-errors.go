package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in business logic terms, not HTTP terms.
type Code string

const (
	// Identifier composition failures.
	CodeInvalidBankCode       Code = "invalid_bank_code"
	CodeInvalidAccountNumber  Code = "invalid_account_number"
	CodeInvalidPrefix         Code = "invalid_prefix"
	CodeInvalidIBANLength     Code = "invalid_iban_length"
	CodeMissingPrimaryAccount Code = "missing_primary_account"

	// Transport-level failures.
	CodeBadRequest      Code = "bad_request"
	CodeValidation      Code = "validation_failed"
	CodePayloadTooLarge Code = "payload_too_large"
	CodeInternal        Code = "internal_error"
)

// Error wraps domain or infrastructure failures with a stable code.
// Field and Value identify the offending input so callers can report
// exactly which rule was violated on which field.
type Error struct {
	Code    Code
	Field   string
	Value   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// NewField creates a domain error that records the offending field and value.
func NewField(code Code, field, value, msg string) error {
	return &Error{Code: code, Field: field, Value: value, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Field: existing.Field, Value: existing.Value, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

package core

import (
	"fmt"
	"strings"
)

// FieldError is used to indicate an error with a specific input field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports invalid user input; recoverable by correcting it.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	// Field-only errors still need a printable message.
	msgs := make([]string, 0, len(err.Fields))
	for _, fld := range err.Fields {
		msgs = append(msgs, fld.Field+": "+fld.Error)
	}
	return strings.Join(msgs, "; ")
}

// AuthenticationError reports a credential mismatch during login. The message
// never distinguishes an unknown user from a wrong password.
type AuthenticationError struct {
	msg string
}

func NewAuthenticationError(msg string) error {
	return &AuthenticationError{msg: msg}
}

func (err AuthenticationError) Error() string {
	return err.msg
}

// APIError reports a non-2xx backend response. Message is the raw response
// body, or a generic "HTTP <status>" line when the body is empty.
type APIError struct {
	StatusCode int
	Message    string
}

func NewAPIError(status int, body string) error {
	if body == "" {
		body = fmt.Sprintf("HTTP %d", status)
	}
	return &APIError{StatusCode: status, Message: body}
}

func (err APIError) Error() string {
	return err.Message
}

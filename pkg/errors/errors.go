// Package errors provides structured error types for statesearch.
//
// The search engine itself never returns errors for ordinary outcomes: an
// exhausted frontier is a result status. Errors in this package come from the
// outer layers (problem files, CLI flags, the HTTP API, caches and stores),
// where callers need a stable machine-readable code next to a message.
//
// # Error Codes
//
// Codes follow a prefix convention:
//   - INVALID_*: the request or input could not be accepted
//   - NOT_FOUND: a stored run or cache entry does not exist
//   - UNSOLVABLE: the problem is well formed but has no solution
//   - TIMEOUT: the search was stopped by its deadline
//   - LIMIT_EXCEEDED: the search was stopped by its expansion budget
//   - INTERNAL_ERROR: anything unexpected
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidStrategy) {
//	    // ask the user again
//	}
//
//	err = errors.Wrap(errors.ErrCodeInternal, dbErr, "save run %s", id)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidBoard       Code = "INVALID_BOARD"
	ErrCodeInvalidStrategy    Code = "INVALID_STRATEGY"
	ErrCodeInvalidDomain      Code = "INVALID_DOMAIN"
	ErrCodeInvalidProblemFile Code = "INVALID_PROBLEM_FILE"

	// Problem errors
	ErrCodeUnsolvable Code = "UNSOLVABLE"

	// Lookup errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Execution errors
	ErrCodeTimeout       Code = "TIMEOUT"
	ErrCodeLimitExceeded Code = "LIMIT_EXCEEDED"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from err, or "" if err carries none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix. Errors that are
// not *Error are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err's code to a response status: validation failures and
// unsolvable problems are 400, missing runs 404, exhausted budgets 422,
// timeouts 504 and everything else 500.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidBoard, ErrCodeInvalidStrategy,
		ErrCodeInvalidDomain, ErrCodeInvalidProblemFile, ErrCodeUnsolvable:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeLimitExceeded:
		return http.StatusUnprocessableEntity
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

package expr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes expression errors.
type ErrorCode string

const (
	// ErrCodeInvalidConstruction indicates a constructor was given invalid
	// input (empty parameter name, empty template fragment list).
	ErrCodeInvalidConstruction ErrorCode = "INVALID_CONSTRUCTION"

	// ErrCodeNoParent indicates a parent was requested on an expression
	// with no parent segment.
	ErrCodeNoParent ErrorCode = "NO_PARENT"

	// ErrCodeMissingParam indicates resolution encountered parameter names
	// absent from the bindings.
	ErrCodeMissingParam ErrorCode = "MISSING_PARAM"

	// ErrCodeInvalidFormat indicates a template format spec is malformed
	// or does not apply to the bound value's kind.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Error represents a failure of an expression operation.
//
// All errors are synchronous failures of the call that triggered them.
// There is no retry policy: these are programmer-error or caller-supplied-
// data errors, never transient faults.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Params lists the parameter names involved, when applicable.
	// For MISSING_PARAM it holds every absent name, sorted.
	Params []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Params) > 0 {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, strings.Join(e.Params, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidConstruction returns true for construction-time input errors.
// Uses errors.As to handle wrapped errors.
func IsInvalidConstruction(err error) bool {
	return hasCode(err, ErrCodeInvalidConstruction)
}

// IsNoParent returns true if the error is a missing-parent error.
func IsNoParent(err error) bool {
	return hasCode(err, ErrCodeNoParent)
}

// IsMissingParam returns true if the error reports unbound parameters.
func IsMissingParam(err error) bool {
	return hasCode(err, ErrCodeMissingParam)
}

// IsInvalidFormat returns true if the error reports a bad format spec.
func IsInvalidFormat(err error) bool {
	return hasCode(err, ErrCodeInvalidFormat)
}

func hasCode(err error, code ErrorCode) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code == code
	}
	return false
}

// NewMissingParamError creates an Error naming the unbound parameters.
func NewMissingParamError(names ...string) *Error {
	return &Error{
		Code:    ErrCodeMissingParam,
		Message: "missing bindings for required params",
		Params:  names,
	}
}

func newConstructionError(message string) *Error {
	return &Error{Code: ErrCodeInvalidConstruction, Message: message}
}

func newNoParentError(detail string) *Error {
	return &Error{
		Code:    ErrCodeNoParent,
		Message: fmt.Sprintf("expression has no parent segment: %s", detail),
	}
}

func newFormatError(spec, message string) *Error {
	return &Error{
		Code:    ErrCodeInvalidFormat,
		Message: fmt.Sprintf("format spec %q: %s", spec, message),
	}
}

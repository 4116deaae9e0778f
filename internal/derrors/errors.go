// Package derrors provides custom error types for tabctx.
// Completion lookups distinguish programmer errors (precondition, invalid
// state) from runtime lookup failures so callers can decide how loudly to fail.
package derrors

import (
	"errors"
	"fmt"
)

// TabctxError is the base interface for all tabctx errors
type TabctxError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all tabctx errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// PreconditionError is raised when a caller asks for a parameter slot that
// cannot satisfy the request (index out of bounds or incompatible type).
type PreconditionError struct {
	baseError
	Index int
}

// NewPreconditionError creates a new precondition error
func NewPreconditionError(index int, message string) *PreconditionError {
	return &PreconditionError{
		baseError: baseError{
			code:    "PRECONDITION",
			message: message,
		},
		Index: index,
	}
}

// InvalidStateError is raised when no declared parameter can satisfy a
// requested type.
type InvalidStateError struct {
	baseError
	Type string
}

// NewInvalidStateError creates a new invalid state error
func NewInvalidStateError(typeName string, message string) *InvalidStateError {
	return &InvalidStateError{
		baseError: baseError{
			code:    "INVALID_STATE",
			message: message,
		},
		Type: typeName,
	}
}

// LookupError signals that the resolved contexts of a command did not
// contain the parameter a completion asked for.
type LookupError struct {
	baseError
	Parameter string
	Index     int
}

// NewLookupError creates a new completion lookup error
func NewLookupError(parameter string, index int, message string, cause error) *LookupError {
	return &LookupError{
		baseError: baseError{
			code:    "COMPLETION_LOOKUP",
			message: message,
			cause:   cause,
		},
		Parameter: parameter,
		Index:     index,
	}
}

// ResolutionError represents a token that could not be converted into its
// parameter's declared type
type ResolutionError struct {
	baseError
	Parameter string
	Token     string
}

// NewResolutionError creates a new resolution error
func NewResolutionError(parameter, token string, message string, cause error) *ResolutionError {
	return &ResolutionError{
		baseError: baseError{
			code:    "RESOLUTION_ERROR",
			message: message,
			cause:   cause,
		},
		Parameter: parameter,
		Token:     token,
	}
}

// ConfigurationError represents errors in command definition files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
		},
		Resource: resource,
	}
}

// AlreadyExistsError represents errors when a resource already exists
type AlreadyExistsError struct {
	baseError
	Resource string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource string, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			code:    "ALREADY_EXISTS",
			message: message,
		},
		Resource: resource,
	}
}

// IsPrecondition reports whether err wraps a PreconditionError
func IsPrecondition(err error) bool {
	var target *PreconditionError
	return errors.As(err, &target)
}

// IsInvalidState reports whether err wraps an InvalidStateError
func IsInvalidState(err error) bool {
	var target *InvalidStateError
	return errors.As(err, &target)
}

// IsLookup reports whether err wraps a LookupError
func IsLookup(err error) bool {
	var target *LookupError
	return errors.As(err, &target)
}

// IsResolution reports whether err wraps a ResolutionError
func IsResolution(err error) bool {
	var target *ResolutionError
	return errors.As(err, &target)
}

// IsProgrammerError reports whether err is a precondition or invalid state
// error, i.e. a mismatch between completion code and command declarations.
func IsProgrammerError(err error) bool {
	return IsPrecondition(err) || IsInvalidState(err)
}

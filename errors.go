// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"errors"
	"fmt"
)

// Error categories. Use [errors.Is] against these to classify
// an error returned by this package.
var (
	// ErrInvalidKeyPart is returned when a key segment is empty or contains
	// a whitespace, the assignment operator or the separator.
	ErrInvalidKeyPart = errors.New("invalid key part")
	// ErrInvalidKeyForm is returned when a full key starts/ends with the
	// separator or contains an empty segment.
	ErrInvalidKeyForm = errors.New("invalid key form")
	// ErrNotAMapping is returned by a bulk load with a non map input.
	ErrNotAMapping = errors.New("not a mapping")
	// ErrInvalidNestedKey is returned by a bulk load when a nested key
	// is not a string or is malformed.
	ErrInvalidNestedKey = errors.New("invalid nested key")
	// ErrMissingAssignment is returned when a manual property has no '='.
	ErrMissingAssignment = errors.New("missing assignment")
	// ErrInvalidIntegerLiteral is returned when a "$#" manual value is not an integer.
	ErrInvalidIntegerLiteral = errors.New("invalid integer literal")
	// ErrTypeMismatch is returned when a value (or default) has an unexpected kind.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrMissingRequiredProperty is returned when a required property is absent.
	ErrMissingRequiredProperty = errors.New("missing required property")
	// ErrValidationFailed is returned in strict mode when a validator rejects a value.
	ErrValidationFailed = errors.New("validation failed")
	// ErrInvalidArgument is returned for malformed arguments (facade prefix, sources...).
	ErrInvalidArgument = errors.New("invalid argument")
)

// PropertyError is the error returned for contract violations.
// Its message is meant to be shown as is to the end user.
type PropertyError struct {
	category error  // one of the Err* sentinels.
	msg      string // user facing message.
	cause    error  // underlying error, if any.
}

func newPropertyError(category error, cause error, format string, args ...any) *PropertyError {
	return &PropertyError{
		category: category,
		msg:      fmt.Sprintf(format, args...),
		cause:    cause,
	}
}

// Error returns the message of the error.
func (e *PropertyError) Error() string {
	return e.msg
}

// Is reports whether target is the category of this error.
func (e *PropertyError) Is(target error) bool {
	return target == e.category
}

// Unwrap returns the underlying cause, if any.
func (e *PropertyError) Unwrap() error {
	return e.cause
}

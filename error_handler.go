// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/actforgood/xerr"
)

// ErrorHandler gets called by loaders and configuration sources with
// a user facing message for environment/data failures (missing file,
// malformed content, ...). The cause is the underlying error, if there is one.
type ErrorHandler func(message string, cause error)

// DefaultErrorHandler prints the message to standard output.
// It is used whenever no ErrorHandler is provided.
func DefaultErrorHandler(message string, _ error) {
	printErrorMessage(os.Stdout, message)
}

func printErrorMessage(w io.Writer, message string) {
	_, _ = fmt.Fprintln(w, message)
}

// errorHandlerOrDefault returns DefaultErrorHandler if handler is nil.
func errorHandlerOrDefault(handler ErrorHandler) ErrorHandler {
	if handler == nil {
		return DefaultErrorHandler
	}

	return handler
}

// ErrorCollector is an ErrorHandler provider which accumulates
// all reported errors.
//
// Usage example:
//
//	collector := xprops.NewErrorCollector()
//	if loader.Process(props, collector.Handle) {
//		return collector.Err()
//	}
type ErrorCollector struct {
	messages []string
	mErr     *xerr.MultiError
}

// NewErrorCollector instantiates a new, empty, ErrorCollector.
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{}
}

// Handle records a reported error. It matches the ErrorHandler signature.
func (collector *ErrorCollector) Handle(message string, cause error) {
	collector.messages = append(collector.messages, message)
	err := errors.New(message)
	if cause != nil {
		err = fmt.Errorf("%s: %w", message, cause)
	}
	collector.mErr = collector.mErr.Add(err)
}

// Messages returns the reported messages, in order.
func (collector *ErrorCollector) Messages() []string {
	messages := make([]string, len(collector.messages))
	copy(messages, collector.messages)

	return messages
}

// Err returns all reported errors, aggregated, or nil if nothing was reported.
func (collector *ErrorCollector) Err() error {
	return collector.mErr.ErrOrNil()
}

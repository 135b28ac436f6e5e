// Package shelltypes defines the shared types for datashell.
// This file contains the span-attributed error type reported to users.
package shelltypes

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ShellError.
type ErrorKind int

const (
	// ErrorMissingArgument means a mandatory positional argument was not supplied
	ErrorMissingArgument ErrorKind = iota
	// ErrorUnrecognizedFlag means a flag the command does not know was supplied
	ErrorUnrecognizedFlag
	// ErrorWrongArgumentType means a positional argument had the wrong value kind
	ErrorWrongArgumentType
	// ErrorFetchFailure means content could not be fetched
	ErrorFetchFailure
	// ErrorParseFailure means content could not be parsed in the requested format
	ErrorParseFailure
	// ErrorUnknownCommand means no command is registered under the name
	ErrorUnknownCommand
	// ErrorSyntax means the input line could not be parsed
	ErrorSyntax
	// ErrorUnexpectedArgument means more positional arguments were given than the command accepts
	ErrorUnexpectedArgument
)

var errorKindNames = map[ErrorKind]string{
	ErrorMissingArgument:    "MissingArgument",
	ErrorUnrecognizedFlag:   "UnrecognizedFlag",
	ErrorWrongArgumentType:  "WrongArgumentType",
	ErrorFetchFailure:       "FetchFailure",
	ErrorParseFailure:       "ParseFailure",
	ErrorUnknownCommand:     "UnknownCommand",
	ErrorSyntax:             "Syntax",
	ErrorUnexpectedArgument: "UnexpectedArgument",
}

// String returns the kind name.
func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ShellError is a user-facing error with a short label and the span it refers to.
type ShellError struct {
	Kind    ErrorKind
	Message string
	Label   string
	Span    Span
	Cause   error
}

// NewLabeledError creates a ShellError of the given kind.
func NewLabeledError(kind ErrorKind, message, label string, span Span) *ShellError {
	return &ShellError{Kind: kind, Message: message, Label: label, Span: span}
}

// WithCause attaches the underlying error.
func (e *ShellError) WithCause(cause error) *ShellError {
	e.Cause = cause
	return e
}

// Error implements the error interface.
func (e *ShellError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *ShellError) Unwrap() error {
	return e.Cause
}

// AsShellError extracts a ShellError from an error chain.
func AsShellError(err error) (*ShellError, bool) {
	var shellErr *ShellError
	if errors.As(err, &shellErr) {
		return shellErr, true
	}
	return nil, false
}

// IsErrorKind reports whether err is a ShellError of the given kind.
func IsErrorKind(err error, kind ErrorKind) bool {
	shellErr, ok := AsShellError(err)
	return ok && shellErr.Kind == kind
}

// Package errors provides structured error types for licscan.
//
// Codes mirror the failure classes of a scan:
//   - SETUP_FAILURE: the input manifest is missing or the external toolchain failed
//   - PARSE_FAILURE: a tool output or catalog could not be decoded
//   - LOOKUP_INCONSISTENCY: the dependency tree references a package it never declared
//   - RECORD_FAILURE: a single catalog record could not be turned into a report row
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSetupFailure, "cannot find %s", "pubspec.yaml")
//	if errors.Is(err, errors.ErrCodeSetupFailure) {
//	    // abort the run
//	}
//
//	err := errors.Wrap(errors.ErrCodeParseFailure, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Scan stage failures
	ErrCodeSetupFailure        Code = "SETUP_FAILURE"
	ErrCodeParseFailure        Code = "PARSE_FAILURE"
	ErrCodeLookupInconsistency Code = "LOOKUP_INCONSISTENCY"
	ErrCodeRecordFailure       Code = "RECORD_FAILURE"

	// Input errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// Only the outermost *Error in the chain is consulted.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Degrades reports whether a scan survives err with a partial report.
// Parse, lookup and per-record failures degrade; anything else, including
// errors without a code, aborts the scan.
func Degrades(err error) bool {
	switch GetCode(err) {
	case ErrCodeParseFailure, ErrCodeLookupInconsistency, ErrCodeRecordFailure:
		return true
	default:
		return false
	}
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Package errors defines the stable error code system for pointings.
package errors

import (
	"errors"
	"fmt"
	"io"
)

// Code is a stable error code string.
type Code string

// Error codes. Stable public contract for scripting against the CLI.
const (
	EUsage    Code = "E_USAGE"
	EInternal Code = "E_INTERNAL"

	// Configuration error codes
	EDirList    Code = "E_DIR_LIST"    // directory-list file missing or malformed
	EIgnoreList Code = "E_IGNORE_LIST" // ignore-list file missing or malformed
	EToolConfig Code = "E_TOOL_CONFIG" // tool config file missing or invalid

	// Scan error codes
	EWalkFailed   Code = "E_WALK_FAILED"   // survey tree could not be walked
	EToolFailed   Code = "E_TOOL_FAILED"   // external metadata tool failed (strict mode)
	EReportWrite  Code = "E_REPORT_WRITE"  // report or failure file could not be written
	EScratchSetup Code = "E_SCRATCH_SETUP" // per-file scratch directory could not be created
)

// PointingsError is the standard error type for pointings errors.
type PointingsError struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
}

// Error returns the stable error format: "CODE: message".
func (e *PointingsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *PointingsError) Unwrap() error {
	return e.Cause
}

// New creates a new PointingsError with the given code and message.
func New(code Code, msg string) error {
	return &PointingsError{Code: code, Msg: msg}
}

// NewWithDetails creates a new PointingsError with code, message, and details.
// Details map is defensively copied (nil if empty).
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &PointingsError{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new PointingsError wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &PointingsError{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new PointingsError wrapping an underlying error with details.
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &PointingsError{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// GetCode extracts the error code from an error, or empty string if not a PointingsError.
func GetCode(err error) Code {
	var pe *PointingsError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// AsPointingsError returns (*PointingsError, true) if err is or wraps a PointingsError.
func AsPointingsError(err error) (*PointingsError, bool) {
	var pe *PointingsError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// copyDetails returns a defensive copy of the details map, or nil if empty/nil.
func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns the appropriate exit code for an error.
// Returns 0 if err is nil, 2 for E_USAGE, 1 for all other errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if GetCode(err) == EUsage {
		return 2
	}
	return 1
}

// Print writes the error to w in the stable stderr format:
//
//	error_code: <CODE>
//	<message>
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	var pe *PointingsError
	if errors.As(err, &pe) {
		_, _ = fmt.Fprintf(w, "error_code: %s\n", pe.Code)
		_, _ = fmt.Fprintln(w, pe.Msg)
	} else {
		_, _ = fmt.Fprintln(w, err.Error())
	}
}

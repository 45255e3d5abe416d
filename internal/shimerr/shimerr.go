// Package shimerr defines the error returned to the launcher when resolution
// cannot continue. The error carries either a message or a process exit code
// so the launcher can pick its own exit status.
package shimerr

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
)

// Kind distinguishes message errors from exit-code errors.
type Kind int

const (
	// KindMessage carries a human-readable message.
	KindMessage Kind = iota
	// KindCode carries the exit code of a child process.
	KindCode
)

// Error is the fatal error type surfaced by the resolution engine.
type Error struct {
	Kind    Kind
	Message string
	Code    int
	Err     error
}

// Message returns an Error carrying msg and wrapping cause (which may be nil).
func Message(msg string, cause error) *Error {
	return &Error{Kind: KindMessage, Message: msg, Err: cause}
}

// Code returns an Error carrying a child exit code.
func Code(code int) *Error {
	return &Error{Kind: KindCode, Code: code}
}

func (e *Error) Error() string {
	if e.Kind == KindCode {
		return fmt.Sprintf(messages.ShimErrExitCodeFmt, e.Code)
	}
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FromRun maps the error of a finished child process onto an Error.
// A nil error stays nil. A non-zero exit becomes KindCode (1 when the platform
// reports no code, for example when the child was killed by a signal).
// Anything else means the child never ran and becomes KindMessage.
func FromRun(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code <= 0 {
			code = 1
		}
		return &Error{Kind: KindCode, Code: code, Err: err}
	}
	var shimErr *Error
	if errors.As(err, &shimErr) {
		return err
	}
	return Message(err.Error(), err)
}

// ExitCode returns the process exit status a launcher should use for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var shimErr *Error
	if errors.As(err, &shimErr) && shimErr.Kind == KindCode && shimErr.Code > 0 {
		return shimErr.Code
	}
	return 1
}

package clierr

import (
	"errors"
	"fmt"
)

// Exit codes for the commitlens CLI. 1 stays the generic failure code.
const (
	CodeInvalidInput = 2
	CodeConfig       = 3
)

type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is an error carrying an explicit process exit code. It
// supports wrapping via Unwrap so errors.Is/As work as expected.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

// Unwrap enables errors.Is/As to traverse the underlying cause.
func (e *ExitError) Unwrap() error { return e.cause }

// Wrap creates an ExitError around an underlying cause.
func Wrap(code int, msg string, cause error) error {
	if code <= 0 {
		code = 1
	}
	return &ExitError{code: code, msg: msg, cause: cause}
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
// Keeps main() dumb and avoids duplicating errors.As logic everywhere.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}

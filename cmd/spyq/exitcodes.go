package main

import "fmt"

// Exit codes for the spyq CLI.
const (
	ExitOK               = 0 // Success.
	ExitInvalidArgs      = 1 // Invalid arguments or bad path.
	ExitViolationsFound  = 2 // Validation found error-severity violations.
	ExitGenerationFailed = 3 // No valid code produced.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitViolationsFound:
			msg = "spyq: validation found problems"
		case ExitGenerationFailed:
			msg = "spyq: generation failed"
		default:
			msg = "spyq: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

package cmd

import "errors"

// Process exit codes
const (
	ExitOK       = 0
	ExitFindings = 1
	ExitError    = 2
)

// ExitCode maps a command error onto the process exit code: findings and
// schema violations are 1, any other failure is 2.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrLintFailed), errors.Is(err, ErrSchemaInvalid):
		return ExitFindings
	default:
		return ExitError
	}
}

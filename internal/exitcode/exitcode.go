package exitcode

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/felixgeelhaar/promptplay/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution, including a user quit
	Success = 0

	// GeneralError covers missing input, unconfigured providers and failed calls
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, unknown command)
	UsageError = 2

	// Interrupted indicates the process was stopped by SIGINT/SIGTERM
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError prints err to stderr and exits with the matching code.
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	code := DetermineExitCode(err)
	if code != Interrupted {
		Report(os.Stderr, err)
	}
	Exit(code)
}

// Report writes err in the form shown to users.
func Report(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if stderrors.Is(err, context.Canceled) {
		return Interrupted
	}

	if _, ok := errors.As(err); ok {
		return GeneralError
	}

	// cobra reports usage problems as plain errors
	errMsg := strings.ToLower(err.Error())
	for _, marker := range []string{"unknown flag", "unknown shorthand flag", "unknown command", "invalid argument", "required flag", "flag needs an argument", "accepts at most", "if any flags in the group"} {
		if strings.Contains(errMsg, marker) {
			return UsageError
		}
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}

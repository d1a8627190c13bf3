package cli

import (
	"errors"
	"fmt"
	"io"
)

// PreflightError is a failure the user can fix before retrying.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	return e.Message
}

func printError(out io.Writer, err error) {
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Error: %s\n", preflight.Message)
	if preflight.Hint != "" {
		fmt.Fprintf(out, "Hint: %s\n", preflight.Hint)
	}
	if preflight.NextStep != "" {
		fmt.Fprintf(out, "Next: %s\n", preflight.NextStep)
	}
}

package cli

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// stdioIsTerminal reports whether both stdin and stdout are attached to a
// terminal. Tests replace it.
var stdioIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// IsNonInteractive reports whether prompts and the TUI must be skipped:
// --non-interactive, STUDYMIND_NON_INTERACTIVE, or no terminal on stdio.
func IsNonInteractive() bool {
	if nonInteractive || envFlag("STUDYMIND_NON_INTERACTIVE") {
		return true
	}
	return !stdioIsTerminal()
}

// envFlag reports whether the variable name is switched on. Values that do
// not parse as a bool, including the empty string, count as on; "0" and
// "false" turn it off.
func envFlag(name string) bool {
	value, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	on, err := strconv.ParseBool(strings.TrimSpace(value))
	return err != nil || on
}

package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ShouldUseColor reports whether stdout should receive ANSI escapes.
// Precedence: NO_COLOR (any non-empty value disables, per
// https://no-color.org), then CLICOLOR_FORCE (non-empty, non-zero forces
// color even without a TTY), then CLICOLOR=0 (disables), then whether stdout
// is a terminal.
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if v := strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")); v != "" && v != "0" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

package ui

import (
	"io"
	"os"
	"runtime"

	"golang.org/x/term"
)

type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w is attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// UnicodeTerminal reports whether w can render emoji. Piped output, TERM=dumb
// and legacy Windows consoles get ASCII.
func UnicodeTerminal(w io.Writer) bool {
	if os.Getenv("TERM") == "dumb" || !IsTerminal(w) {
		return false
	}
	if runtime.GOOS == "windows" {
		// Windows Terminal sets WT_SESSION; conhost does not.
		return os.Getenv("WT_SESSION") != ""
	}
	return true
}

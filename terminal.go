package prettyprint

import (
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// DefaultTermWidth is used when the terminal width cannot be determined.
const DefaultTermWidth = 80

// WidthFunc reports the current terminal width in columns.
type WidthFunc func() int

// TerminalWidth returns the width of the terminal attached to stdout. It falls
// back to $COLUMNS and then DefaultTermWidth.
func TerminalWidth() int {
	return terminalWidth(os.Stdout, DefaultTermWidth)
}

func terminalWidth(f *os.File, fallback int) int {
	if f != nil {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				return w
			}
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// DetectTrueColor returns true if the environment advertises 24-bit color.
func DetectTrueColor() bool {
	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return true
	}
	return false
}

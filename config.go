package prettyprint

import (
	"fmt"
	"strings"
)

// DefaultThemeName is the theme used when none is set.
const DefaultThemeName = "monokai"

// WrappingMode controls how long lines are handled.
type WrappingMode uint8

const (
	// WrapNever leaves long lines untouched.
	WrapNever WrappingMode = iota
	// WrapCharacter hard-wraps lines at the terminal width.
	WrapCharacter
)

func (m WrappingMode) String() string {
	if m == WrapCharacter {
		return "character"
	}
	return "never"
}

// ParseWrappingMode parses never, character or auto. auto maps to character.
func ParseWrappingMode(s string) (WrappingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "never", "none", "":
		return WrapNever, nil
	case "character", "auto":
		return WrapCharacter, nil
	}
	return WrapNever, fmt.Errorf("wrapping mode %q: expected auto|never|character", s)
}

// PagingMode controls whether output should be sent to a pager.
type PagingMode uint8

const (
	// PagingNever writes directly to the output.
	PagingNever PagingMode = iota
	// PagingAlways always pipes through the pager.
	PagingAlways
	// PagingQuitIfOneScreen pages only when output exceeds one screen.
	PagingQuitIfOneScreen
)

func (m PagingMode) String() string {
	switch m {
	case PagingAlways:
		return "always"
	case PagingQuitIfOneScreen:
		return "auto"
	}
	return "never"
}

// ParsePagingMode parses never, always or auto.
func ParsePagingMode(s string) (PagingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "never", "":
		return PagingNever, nil
	case "always":
		return PagingAlways, nil
	case "auto":
		return PagingQuitIfOneScreen, nil
	}
	return PagingNever, fmt.Errorf("paging mode %q: expected auto|never|always", s)
}

// PagingConfig is carried in every Config but only consumed by engines that
// manage a pager.
type PagingConfig struct {
	Mode  PagingMode
	Pager string
}

// Config is the resolved presentation settings for one Print call. Engines
// receive it by value and must treat it as read-only.
type Config struct {
	Theme            string
	Language         string
	TabWidth         int
	ColoredOutput    bool
	TrueColor        bool
	WrappingMode     WrappingMode
	UseItalicText    bool
	Paging           PagingConfig
	SyntaxMapping    SyntaxMapping
	VisibleLines     VisibleLines
	HighlightedLines HighlightedLineRanges
	TermWidth        int
	StyleComponents  StyleComponents
}

// DefaultConfig returns the documented defaults: colored true-color output,
// no filters, no highlights, no style components, no tab expansion, no
// wrapping, the default theme and no paging.
func DefaultConfig() Config {
	return Config{
		Theme:         DefaultThemeName,
		ColoredOutput: true,
		TrueColor:     true,
		SyntaxMapping: NewSyntaxMapping(),
		VisibleLines:  ShowAllLines(),
	}
}

// clone returns a copy sharing no mutable state with c.
func (c Config) clone() Config {
	out := c
	out.SyntaxMapping = c.SyntaxMapping.clone()
	out.StyleComponents = append(StyleComponents(nil), c.StyleComponents...)
	return out
}

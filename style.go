package prettyprint

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStyleComponent reports an unrecognized style component name.
var ErrUnknownStyleComponent = errors.New("unknown style component")

// StyleComponent is a visual element of the output layout. The declaration
// order is the canonical output order.
type StyleComponent uint8

const (
	// Grid draws rules around the header and between the panel and text.
	Grid StyleComponent = iota
	// Header prints the input name above its content.
	Header
	// LineNumbers prints line numbers in the panel.
	LineNumbers
	// Snip marks gaps between visible line ranges.
	Snip
	// Changes prints VCS modification markers in the panel.
	Changes
)

var styleComponentNames = [...]string{
	Grid:        "grid",
	Header:      "header",
	LineNumbers: "numbers",
	Snip:        "snip",
	Changes:     "changes",
}

func (c StyleComponent) String() string {
	if int(c) < len(styleComponentNames) {
		return styleComponentNames[c]
	}
	return fmt.Sprintf("StyleComponent(%d)", uint8(c))
}

// StyleComponents is an ordered list of enabled style components.
type StyleComponents []StyleComponent

// Has reports whether c is enabled.
func (s StyleComponents) Has(c StyleComponent) bool {
	for _, x := range s {
		if x == c {
			return true
		}
	}
	return false
}

func (s StyleComponents) String() string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.String()
	}
	return strings.Join(names, ",")
}

// ActiveStyleComponents holds one toggle per style component.
type ActiveStyleComponents struct {
	Header                 bool
	VCSModificationMarkers bool
	Grid                   bool
	LineNumbers            bool
	Snip                   bool
}

// Components returns the enabled components in canonical order.
func (a ActiveStyleComponents) Components() StyleComponents {
	out := make(StyleComponents, 0, 5)
	if a.Grid {
		out = append(out, Grid)
	}
	if a.Header {
		out = append(out, Header)
	}
	if a.LineNumbers {
		out = append(out, LineNumbers)
	}
	if a.Snip {
		out = append(out, Snip)
	}
	if a.VCSModificationMarkers {
		out = append(out, Changes)
	}
	return out
}

func (a *ActiveStyleComponents) set(c StyleComponent, on bool) {
	switch c {
	case Grid:
		a.Grid = on
	case Header:
		a.Header = on
	case LineNumbers:
		a.LineNumbers = on
	case Snip:
		a.Snip = on
	case Changes:
		a.VCSModificationMarkers = on
	}
}

func fullStyle() ActiveStyleComponents {
	return ActiveStyleComponents{
		Header:                 true,
		VCSModificationMarkers: true,
		Grid:                   true,
		LineNumbers:            true,
		Snip:                   true,
	}
}

// ParseStyleComponents parses a comma separated list of component names and
// presets (full, default, auto, plain).
func ParseStyleComponents(s string) (ActiveStyleComponents, error) {
	var active ActiveStyleComponents
	for _, raw := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch name {
		case "":
		case "full", "default", "auto":
			active = fullStyle()
		case "plain":
			active = ActiveStyleComponents{}
		case "grid":
			active.set(Grid, true)
		case "header":
			active.set(Header, true)
		case "numbers":
			active.set(LineNumbers, true)
		case "snip":
			active.set(Snip, true)
		case "changes":
			active.set(Changes, true)
		default:
			return ActiveStyleComponents{}, fmt.Errorf("%w: %q", ErrUnknownStyleComponent, raw)
		}
	}
	return active, nil
}

package prettyprint

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidLineRange reports a line range expression that cannot be parsed.
var ErrInvalidLineRange = errors.New("invalid line range")

// LineRange is an inclusive interval of 1-based line numbers.
type LineRange struct {
	From int
	To   int
}

// NewLineRange returns the range from..to, swapping reversed bounds.
func NewLineRange(from, to int) LineRange {
	if from > to {
		from, to = to, from
	}
	return LineRange{From: from, To: to}
}

// Contains reports whether line falls inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.From && line <= r.To
}

func (r LineRange) String() string {
	switch {
	case r.From == r.To:
		return strconv.Itoa(r.From)
	case r.To == math.MaxInt:
		return strconv.Itoa(r.From) + ":"
	}
	return strconv.Itoa(r.From) + ":" + strconv.Itoa(r.To)
}

// ParseLineRange parses N, N:M, :M, N:, N:+K and N:-K. N:-K selects K lines
// of context on each side of N, starting no earlier than line 1.
func ParseLineRange(s string) (LineRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LineRange{}, fmt.Errorf("%w: empty", ErrInvalidLineRange)
	}
	from, to, found := strings.Cut(s, ":")
	if !found {
		n, err := parseLineNumber(s)
		if err != nil {
			return LineRange{}, err
		}
		return LineRange{From: n, To: n}, nil
	}
	if from == "" && to == "" {
		return LineRange{}, fmt.Errorf("%w: %q", ErrInvalidLineRange, s)
	}
	r := LineRange{From: 1, To: math.MaxInt}
	if from != "" {
		n, err := parseLineNumber(from)
		if err != nil {
			return LineRange{}, err
		}
		r.From = n
	}
	switch {
	case to == "":
	case strings.HasPrefix(to, "+"):
		if from == "" {
			return LineRange{}, fmt.Errorf("%w: %q: relative end needs a start", ErrInvalidLineRange, s)
		}
		k, err := parseOffset(s, to[1:])
		if err != nil {
			return LineRange{}, err
		}
		r.To = addClamped(r.From, k)
	case strings.HasPrefix(to, "-"):
		if from == "" {
			return LineRange{}, fmt.Errorf("%w: %q: context needs a line", ErrInvalidLineRange, s)
		}
		k, err := parseOffset(s, to[1:])
		if err != nil {
			return LineRange{}, err
		}
		center := r.From
		r.From = max(1, center-k)
		r.To = addClamped(center, k)
	default:
		n, err := parseLineNumber(to)
		if err != nil {
			return LineRange{}, err
		}
		r.To = n
	}
	if r.From > r.To {
		return LineRange{}, fmt.Errorf("%w: %q: start after end", ErrInvalidLineRange, s)
	}
	return r, nil
}

func parseOffset(expr, s string) (int, error) {
	k, err := strconv.Atoi(s)
	if err != nil || k < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLineRange, expr)
	}
	return k, nil
}

// addClamped returns n+k, saturating at math.MaxInt.
func addClamped(n, k int) int {
	if k > math.MaxInt-n {
		return math.MaxInt
	}
	return n + k
}

func parseLineNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a line number", ErrInvalidLineRange, s)
	}
	return n, nil
}

// LineRanges is the union of a set of line ranges. The zero value contains no
// lines.
type LineRanges struct {
	merged []LineRange
}

// NewLineRanges merges ranges into one set. Overlapping and adjacent ranges
// are coalesced; the order of ranges does not matter.
func NewLineRanges(ranges ...LineRange) LineRanges {
	if len(ranges) == 0 {
		return LineRanges{}
	}
	sorted := make([]LineRange, len(ranges))
	for i, r := range ranges {
		sorted[i] = NewLineRange(r.From, r.To)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})
	merged := sorted[:1]
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.From-1 <= last.To {
			if r.To > last.To {
				last.To = r.To
			}
			continue
		}
		merged = append(merged, r)
	}
	return LineRanges{merged: merged}
}

// ParseLineRanges parses each expression with ParseLineRange and merges them.
func ParseLineRanges(exprs []string) (LineRanges, error) {
	ranges := make([]LineRange, 0, len(exprs))
	for _, expr := range exprs {
		r, err := ParseLineRange(expr)
		if err != nil {
			return LineRanges{}, err
		}
		ranges = append(ranges, r)
	}
	return NewLineRanges(ranges...), nil
}

// AllLines returns a set containing every line.
func AllLines() LineRanges {
	return LineRanges{merged: []LineRange{{From: 1, To: math.MaxInt}}}
}

// Contains reports whether line is inside any range of the set.
func (lr LineRanges) Contains(line int) bool {
	i := sort.Search(len(lr.merged), func(i int) bool {
		return lr.merged[i].To >= line
	})
	return i < len(lr.merged) && lr.merged[i].From <= line
}

// Ranges returns the merged, sorted ranges.
func (lr LineRanges) Ranges() []LineRange {
	return append([]LineRange(nil), lr.merged...)
}

// Empty reports whether the set contains no lines.
func (lr LineRanges) Empty() bool { return len(lr.merged) == 0 }

// HighlightedLineRanges marks lines that are rendered highlighted.
type HighlightedLineRanges struct {
	LineRanges
}

// VisibleLines filters which lines are printed. The zero value shows every
// line.
type VisibleLines struct {
	ranges   LineRanges
	filtered bool
}

// ShowAllLines returns a VisibleLines that does not filter.
func ShowAllLines() VisibleLines { return VisibleLines{} }

// VisibleRanges restricts output to the lines in ranges.
func VisibleRanges(ranges LineRanges) VisibleLines {
	return VisibleLines{ranges: ranges, filtered: true}
}

// Contains reports whether line should be printed.
func (v VisibleLines) Contains(line int) bool {
	if !v.filtered {
		return true
	}
	return v.ranges.Contains(line)
}

// Filtered reports whether a line filter is active.
func (v VisibleLines) Filtered() bool { return v.filtered }

// Ranges returns the visible ranges. It is empty when no filter is active.
func (v VisibleLines) Ranges() LineRanges { return v.ranges }

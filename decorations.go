package prettyprint

import (
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"

	"pkt.systems/prettyprint/internal/vcs"
)

const (
	reverseVideo = "\x1b[7m"
	resetStyle   = "\x1b[0m"
	snipText     = " 8< "
	minNumberCol = 4
)

// decorator lays out the panel, header, grid and snip markers around the
// highlighted lines of one input.
type decorator struct {
	w       io.Writer
	cfg     Config
	changes vcs.LineChanges
	width   int
	numCol  int
	panel   int
}

func newDecorator(w io.Writer, cfg Config, changes vcs.LineChanges, lineCount int) *decorator {
	d := &decorator{w: w, cfg: cfg, changes: changes, width: cfg.TermWidth}
	if d.width <= 0 {
		d.width = DefaultTermWidth
	}
	d.numCol = minNumberCol
	if n := len(strconv.Itoa(lineCount)); n > d.numCol {
		d.numCol = n
	}
	d.panel = ansi.PrintableRuneWidth(d.panelFor(0))
	return d
}

func (d *decorator) has(c StyleComponent) bool {
	return d.cfg.StyleComponents.Has(c)
}

// panelFor renders the left panel for line n. n == 0 renders a blank panel
// of the same width.
func (d *decorator) panelFor(n int) string {
	var b strings.Builder
	if d.has(Changes) {
		marker := " "
		if n > 0 {
			if c, ok := d.changes[n]; ok {
				marker = c.Marker()
			}
		}
		b.WriteString(marker)
		b.WriteByte(' ')
	}
	if d.has(LineNumbers) {
		num := ""
		if n > 0 {
			num = strconv.Itoa(n)
		}
		b.WriteString(strings.Repeat(" ", d.numCol-len(num)))
		b.WriteString(num)
		b.WriteByte(' ')
	}
	if d.has(Grid) && b.Len() > 0 {
		b.WriteString("│ ")
	}
	return b.String()
}

// rule draws a horizontal line, joining the panel grid column with join.
func (d *decorator) rule(join string) string {
	if d.panel < 2 || !(d.has(LineNumbers) || d.has(Changes)) {
		return strings.Repeat("─", d.width)
	}
	left := d.panel - 2
	right := d.width - left - 1
	if right < 0 {
		right = 0
	}
	return strings.Repeat("─", left) + join + strings.Repeat("─", right)
}

func (d *decorator) writeLine(s string) error {
	_, err := io.WriteString(d.w, s+"\n")
	return err
}

func (d *decorator) header(label string, index int) error {
	if !d.has(Header) {
		if d.has(Grid) {
			return d.writeLine(d.rule("┬"))
		}
		return nil
	}
	if index > 0 && !d.has(Grid) {
		if err := d.writeLine(""); err != nil {
			return err
		}
	}
	title := "File: " + label
	if d.has(Grid) {
		if err := d.writeLine(d.rule("┬")); err != nil {
			return err
		}
		prefix := ""
		if d.has(LineNumbers) || d.has(Changes) {
			prefix = strings.Repeat(" ", d.panel-2) + "│ "
		}
		title = truncateWithEllipsis(title, d.width-ansi.PrintableRuneWidth(prefix))
		if err := d.writeLine(prefix + title); err != nil {
			return err
		}
		return d.writeLine(d.rule("┼"))
	}
	return d.writeLine(truncateWithEllipsis(title, d.width))
}

func (d *decorator) footer() error {
	if d.has(Grid) {
		return d.writeLine(d.rule("┴"))
	}
	return nil
}

func (d *decorator) snip() error {
	textWidth := d.width - d.panel
	if textWidth < len(snipText)+2 {
		return d.writeLine(d.panelFor(0) + strings.TrimSpace(snipText))
	}
	left := (textWidth - len(snipText)) / 2
	right := textWidth - len(snipText) - left
	return d.writeLine(d.panelFor(0) + strings.Repeat("─", left) + snipText + strings.Repeat("─", right))
}

// lines writes every visible line, marking highlighted ones and inserting
// snip markers at gaps between visible ranges.
func (d *decorator) lines(lines []string) error {
	prev := 0
	for i, line := range lines {
		n := i + 1
		if !d.cfg.VisibleLines.Contains(n) {
			continue
		}
		if d.has(Snip) && prev > 0 && n != prev+1 {
			if err := d.snip(); err != nil {
				return err
			}
		}
		prev = n
		if d.cfg.ColoredOutput && d.cfg.HighlightedLines.Contains(n) {
			line = highlightLine(line)
		}
		if err := d.line(n, line); err != nil {
			return err
		}
	}
	return nil
}

func (d *decorator) line(n int, content string) error {
	textWidth := d.width - d.panel
	if d.cfg.WrappingMode != WrapCharacter || textWidth <= 0 || ansi.PrintableRuneWidth(content) <= textWidth {
		return d.writeLine(d.panelFor(n) + content)
	}
	parts := strings.Split(wrap.String(content, textWidth), "\n")
	carried := ""
	for i, part := range parts {
		panel := d.panelFor(0)
		if i == 0 {
			panel = d.panelFor(n)
		}
		text := part
		if d.cfg.ColoredOutput {
			if i > 0 {
				panel = resetStyle + panel
				text = carried + text
			}
			carried = sgrState(carried, part)
			if i < len(parts)-1 && carried != "" {
				text += resetStyle
			}
		}
		if err := d.writeLine(panel + text); err != nil {
			return err
		}
	}
	return nil
}

// sgrState returns the SGR sequences still in effect after s, given the
// sequences active before it. A reset clears the state.
func sgrState(active, s string) string {
	for {
		i := strings.Index(s, "\x1b[")
		if i < 0 {
			return active
		}
		s = s[i+2:]
		end := strings.IndexFunc(s, func(r rune) bool { return r >= 0x40 && r <= 0x7e })
		if end < 0 {
			return active
		}
		params, final := s[:end], s[end]
		s = s[end+1:]
		if final != 'm' {
			continue
		}
		if params == "" || params == "0" {
			active = ""
			continue
		}
		active += "\x1b[" + params + "m"
	}
}

// highlightLine renders line in reverse video, re-applying it after every
// reset emitted by the formatter.
func highlightLine(line string) string {
	return reverseVideo + strings.ReplaceAll(line, resetStyle, resetStyle+reverseVideo) + resetStyle
}

// expandTabs replaces tabs with spaces up to the next multiple of width.
func expandTabs(text string, width int) string {
	if width <= 0 || !strings.Contains(text, "\t") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	col := 0
	for _, r := range text {
		switch r {
		case '\t':
			pad := width - col%width
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// truncateWithEllipsis cuts text to limit display columns, ending in "…"
// when anything was removed.
func truncateWithEllipsis(text string, limit int) string {
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	return truncate.StringWithTail(text, uint(limit), "…")
}

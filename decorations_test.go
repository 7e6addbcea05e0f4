package prettyprint

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"

	"pkt.systems/prettyprint/internal/vcs"
)

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "a       b", expandTabs("a\tb", 8))
	assert.Equal(t, "  x\n  y", expandTabs("\tx\n\ty", 2))
	assert.Equal(t, "a\tb", expandTabs("a\tb", 0))
	assert.Equal(t, "é   x", expandTabs("é\tx", 4))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", truncateWithEllipsis("short", 10))
	assert.Equal(t, "File: l…", truncateWithEllipsis("File: long-name.go", 8))
	assert.Equal(t, "…", truncateWithEllipsis("abc", 1))
	assert.Equal(t, "", truncateWithEllipsis("abc", 0))
	assert.Equal(t, "exactly10!", truncateWithEllipsis("exactly10!", 10))

	wide := truncateWithEllipsis("File: 日本語.go", 10)
	assert.Equal(t, "File: 日…", wide)
	assert.LessOrEqual(t, ansi.PrintableRuneWidth(wide), 10)
}

func TestHighlightLineReappliesReverse(t *testing.T) {
	got := highlightLine("\x1b[31mred\x1b[0m plain")
	assert.Equal(t, "\x1b[7m\x1b[31mred\x1b[0m\x1b[7m plain\x1b[0m", got)
}

func TestPanelWithChangeMarkers(t *testing.T) {
	cfg := plainConfig(40, LineNumbers, Changes)
	changes := vcs.LineChanges{2: vcs.Modified, 3: vcs.Added}
	var buf bytes.Buffer
	d := newDecorator(&buf, cfg, changes, 3)
	assert.NoError(t, d.lines([]string{"a", "b", "c"}))
	assert.Equal(t, "     1 a\n~    2 b\n+    3 c\n", buf.String())
}

func TestNumberColumnGrows(t *testing.T) {
	cfg := plainConfig(40, LineNumbers)
	d := newDecorator(&bytes.Buffer{}, cfg, nil, 123456)
	assert.Equal(t, 6, d.numCol)
	assert.Equal(t, "  1234 ", d.panelFor(1234))
}

func TestWrappedContinuationResetsStyle(t *testing.T) {
	cfg := plainConfig(15, LineNumbers)
	cfg.ColoredOutput = true
	cfg.WrappingMode = WrapCharacter

	var buf bytes.Buffer
	d := newDecorator(&buf, cfg, nil, 1)
	assert.NoError(t, d.line(1, "\x1b[31mabcdefghijklmno\x1b[0m"))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if assert.Len(t, lines, 2) {
		assert.True(t, strings.HasSuffix(lines[0], resetStyle), "%q", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], resetStyle+"     \x1b[31mklmno"), "%q", lines[1])
	}

	buf.Reset()
	assert.NoError(t, d.line(1, highlightLine("\x1b[31mabcdefghijklmno\x1b[0m")))
	lines = strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if assert.Len(t, lines, 2) {
		assert.True(t, strings.HasPrefix(lines[1], resetStyle+"     "+reverseVideo), "%q", lines[1])
	}
}

func TestSGRState(t *testing.T) {
	assert.Equal(t, "\x1b[31m", sgrState("", "\x1b[31mred"))
	assert.Equal(t, "", sgrState("\x1b[7m", "x\x1b[0m"))
	assert.Equal(t, "\x1b[7m\x1b[1m", sgrState("\x1b[7m", "\x1b[1mbold\x1b[2K"))
	assert.Equal(t, "", sgrState("", "plain"))
}

package prettyprint

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainConfig(width int, components ...StyleComponent) Config {
	cfg := DefaultConfig()
	cfg.ColoredOutput = false
	cfg.TermWidth = width
	var active ActiveStyleComponents
	for _, c := range components {
		active.set(c, true)
	}
	cfg.StyleComponents = active.Components()
	return cfg
}

func render(t *testing.T, cfg Config, inputs ...Input) (string, string, bool) {
	t.Helper()
	var out, errOut bytes.Buffer
	c := &Controller{Output: &out, ErrOutput: &errOut}
	ok, err := c.Run(inputs, cfg, NewAssets())
	require.NoError(t, err)
	return out.String(), errOut.String(), ok
}

func TestControllerPlain(t *testing.T) {
	out, errOut, ok := render(t, plainConfig(80), ReaderInput(strings.NewReader("one\ntwo")))
	assert.True(t, ok)
	assert.Empty(t, errOut)
	assert.Equal(t, "one\ntwo\n", out)
}

func TestControllerNoInputs(t *testing.T) {
	c := &Controller{Output: &bytes.Buffer{}}
	ok, err := c.Run(nil, Config{Theme: "no-such-theme"}, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestControllerGridHeaderNumbers(t *testing.T) {
	cfg := plainConfig(40, Grid, Header, LineNumbers)
	out, _, ok := render(t, cfg, ReaderInput(strings.NewReader("a\nb\n")).WithName("demo.txt"))
	require.True(t, ok)

	rule := func(join string) string {
		return strings.Repeat("─", 5) + join + strings.Repeat("─", 34)
	}
	want := strings.Join([]string{
		rule("┬"),
		"     │ File: demo.txt",
		rule("┼"),
		"   1 │ a",
		"   2 │ b",
		rule("┴"),
	}, "\n") + "\n"
	assert.Equal(t, want, out)
}

func TestControllerHeaderSeparatesInputs(t *testing.T) {
	cfg := plainConfig(80, Header)
	out, _, ok := render(t, cfg,
		ReaderInput(strings.NewReader("x\n")).WithName("one"),
		ReaderInput(strings.NewReader("y\n")),
	)
	require.True(t, ok)
	assert.Equal(t, "File: one\nx\n\nFile: READER\ny\n", out)
}

func TestControllerVisibleLinesWithSnip(t *testing.T) {
	cfg := plainConfig(20, LineNumbers, Snip)
	cfg.VisibleLines = VisibleRanges(NewLineRanges(NewLineRange(1, 2), NewLineRange(5, 6)))
	out, _, ok := render(t, cfg, ReaderInput(strings.NewReader("a\nb\nc\nd\ne\nf\ng\n")))
	require.True(t, ok)

	want := strings.Join([]string{
		"   1 a",
		"   2 b",
		"     " + strings.Repeat("─", 5) + " 8< " + strings.Repeat("─", 6),
		"   5 e",
		"   6 f",
	}, "\n") + "\n"
	assert.Equal(t, want, out)
}

func TestControllerVisibleLinesWithoutSnip(t *testing.T) {
	cfg := plainConfig(20)
	cfg.VisibleLines = VisibleRanges(NewLineRanges(NewLineRange(2, 2), NewLineRange(4, 4)))
	out, _, _ := render(t, cfg, ReaderInput(strings.NewReader("a\nb\nc\nd\n")))
	assert.Equal(t, "b\nd\n", out)
}

func TestControllerHighlightedLines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TermWidth = 80
	cfg.Language = "go"
	cfg.HighlightedLines = HighlightedLineRanges{NewLineRanges(NewLineRange(2, 2))}
	out, _, ok := render(t, cfg, ReaderInput(strings.NewReader("package main\nfunc main() {}\n")))
	require.True(t, ok)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], reverseVideo)
	assert.True(t, strings.HasPrefix(lines[1], reverseVideo), "%q", lines[1])
	assert.Contains(t, lines[1], "\x1b[38;2;")
}

func TestControllerHighlightOutsideVisibleLines(t *testing.T) {
	var src strings.Builder
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&src, "row-%02d\n", i)
	}
	cfg := DefaultConfig()
	cfg.TermWidth = 80
	cfg.Language = "text"
	cfg.VisibleLines = VisibleRanges(NewLineRanges(NewLineRange(10, 20)))
	cfg.HighlightedLines = HighlightedLineRanges{NewLineRanges(NewLineRange(5, 15))}
	out, _, ok := render(t, cfg, ReaderInput(strings.NewReader(src.String())))
	require.True(t, ok)

	assert.NotContains(t, out, "row-05")
	assert.NotContains(t, out, "row-21")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 11)
	assert.Contains(t, lines[2], "row-12")
	assert.True(t, strings.HasPrefix(lines[2], reverseVideo), "%q", lines[2])
	assert.Contains(t, lines[7], "row-17")
	assert.NotContains(t, lines[7], reverseVideo)
}

func TestControllerHighlightIgnoredWithoutColor(t *testing.T) {
	cfg := plainConfig(80)
	cfg.HighlightedLines = HighlightedLineRanges{NewLineRanges(NewLineRange(1, 1))}
	out, _, _ := render(t, cfg, ReaderInput(strings.NewReader("x\n")))
	assert.Equal(t, "x\n", out)
}

func TestControllerSkipsBinary(t *testing.T) {
	out, errOut, ok := render(t, plainConfig(80),
		ReaderInput(bytes.NewReader([]byte("bin\x00ary"))).WithName("blob.bin"),
		ReaderInput(strings.NewReader("text\n")),
	)
	assert.True(t, ok)
	assert.Equal(t, "text\n", out)
	assert.Contains(t, errOut, "Binary content from blob.bin")
}

func TestControllerReplacesInvalidUTF8(t *testing.T) {
	out, _, ok := render(t, plainConfig(80), ReaderInput(bytes.NewReader([]byte("a\xffb\n"))))
	assert.True(t, ok)
	assert.Equal(t, "a\uFFFDb\n", out)
}

func TestControllerMissingFileContinues(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("fine\n"), 0o644))

	out, errOut, ok := render(t, plainConfig(80),
		OrdinaryFileInput(filepath.Join(dir, "missing.txt")),
		OrdinaryFileInput(good),
	)
	assert.False(t, ok)
	assert.Equal(t, "fine\n", out)
	assert.Contains(t, errOut, "[prettyprint error]: ")
	assert.Contains(t, errOut, "missing.txt")
}

func TestControllerReadsStdin(t *testing.T) {
	var out bytes.Buffer
	c := &Controller{Output: &out, Stdin: strings.NewReader("from stdin\n")}
	ok, err := c.Run([]Input{StdinInput()}, plainConfig(80), nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "from stdin\n", out.String())
}

func TestControllerConfigErrors(t *testing.T) {
	in := []Input{ReaderInput(strings.NewReader("x"))}
	c := &Controller{Output: &bytes.Buffer{}, ErrOutput: &bytes.Buffer{}}

	cfg := plainConfig(80)
	cfg.Theme = "no-such-theme"
	_, err := c.Run(in, cfg, nil)
	assert.ErrorIs(t, err, ErrUnknownTheme)

	cfg = plainConfig(80)
	cfg.Language = "klingon-script"
	_, err = c.Run(in, cfg, nil)
	assert.ErrorIs(t, err, ErrUnknownSyntax)

	cfg = plainConfig(80)
	cfg.SyntaxMapping.Insert("[broken", "go")
	_, err = c.Run(in, cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidSyntaxMapping)

	cfg = plainConfig(80)
	cfg.SyntaxMapping.Insert("*.conf", "ini").Insert("*.cfg", "no-such-language")
	ok, err := c.Run(in, cfg, nil)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnknownSyntax)
}

func TestControllerExpandsTabs(t *testing.T) {
	cfg := plainConfig(80)
	cfg.TabWidth = 4
	out, _, _ := render(t, cfg, ReaderInput(strings.NewReader("\tx\nab\ty\n")))
	assert.Equal(t, "    x\nab  y\n", out)

	cfg.TabWidth = 0
	out, _, _ = render(t, cfg, ReaderInput(strings.NewReader("\tx\n")))
	assert.Equal(t, "\tx\n", out)
}

func TestControllerWrapsLongLines(t *testing.T) {
	cfg := plainConfig(10)
	cfg.WrappingMode = WrapCharacter
	out, _, _ := render(t, cfg, ReaderInput(strings.NewReader("abcdefghijklmnop\n")))
	assert.Equal(t, "abcdefghij\nklmnop\n", out)

	cfg.WrappingMode = WrapNever
	out, _, _ = render(t, cfg, ReaderInput(strings.NewReader("abcdefghijklmnop\n")))
	assert.Equal(t, "abcdefghijklmnop\n", out)
}

func TestPickFormatter(t *testing.T) {
	cfg := DefaultConfig()
	assert.NotNil(t, pickFormatter(cfg))
	cfg.ColoredOutput = false
	assert.Nil(t, pickFormatter(cfg))
}

package prettyprint

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"

	"pkt.systems/prettyprint/internal/vcs"
)

// Controller is the default Engine. It highlights each input with chroma and
// writes the decorated result to Output. Failures of single inputs are
// reported to ErrOutput and do not stop the remaining inputs.
type Controller struct {
	Output    io.Writer
	ErrOutput io.Writer
	Stdin     io.Reader
	Logger    *slog.Logger
}

// Run renders inputs in order. It returns an error only for problems that
// affect every input (unknown theme or language, malformed syntax mapping,
// failed writes) and false when any single input failed.
func (c *Controller) Run(inputs []Input, cfg Config, assets *Assets) (bool, error) {
	if len(inputs) == 0 {
		return true, nil
	}
	if assets == nil {
		assets = NewAssets()
	}
	style, err := assets.Theme(cfg.Theme)
	if err != nil {
		return false, fmt.Errorf("render: %w", err)
	}
	if !cfg.UseItalicText {
		if style, err = withoutItalics(style); err != nil {
			return false, fmt.Errorf("render: theme %q: %w", cfg.Theme, err)
		}
	}
	if cfg.Language != "" {
		if _, err := assets.SyntaxByName(cfg.Language); err != nil {
			return false, fmt.Errorf("render: %w", err)
		}
	}
	if err := cfg.SyntaxMapping.Validate(); err != nil {
		return false, fmt.Errorf("render: %w", err)
	}
	for _, lang := range cfg.SyntaxMapping.Languages() {
		if _, err := assets.SyntaxByName(lang); err != nil {
			return false, fmt.Errorf("render: syntax mapping: %w", err)
		}
	}
	formatter := pickFormatter(cfg)
	logger := c.logger()
	out := c.output()

	ok := true
	var buf bytes.Buffer
	for i, in := range inputs {
		buf.Reset()
		if err := c.renderInput(&buf, in, i, cfg, assets, style, formatter); err != nil {
			ok = false
			logger.Warn("input failed", "input", in.label(), "err", err)
			fmt.Fprintf(c.errOutput(), "[prettyprint error]: %s: %v\n", in.label(), err)
			continue
		}
		if _, err := out.Write(buf.Bytes()); err != nil {
			return false, fmt.Errorf("render: write: %w", err)
		}
	}
	return ok, nil
}

func (c *Controller) renderInput(w io.Writer, in Input, index int, cfg Config, assets *Assets, style *chroma.Style, formatter chroma.Formatter) error {
	rc, err := in.Open(c.Stdin)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	switch err := ValidateInput(data); {
	case errors.Is(err, ErrBinaryInput):
		c.logger().Info("skipping binary input", "input", in.label())
		fmt.Fprintf(c.errOutput(), "[prettyprint warning]: Binary content from %s will not be printed.\n", in.label())
		return nil
	case errors.Is(err, ErrInvalidUTF8):
		data = []byte(strings.ToValidUTF8(string(data), "\uFFFD"))
	}

	name, _ := in.Name()
	lexer := assets.lexerFor(cfg, name, data)
	lines, err := highlightLines(lexer, style, formatter, expandTabs(string(data), cfg.TabWidth))
	if err != nil {
		return err
	}

	var changes vcs.LineChanges
	if cfg.StyleComponents.Has(Changes) && in.Kind() == InputOrdinaryFile {
		changes, err = vcs.Changes(in.Path(), data)
		if err != nil {
			c.logger().Debug("no vcs changes", "input", in.label(), "err", err)
		}
	}

	d := newDecorator(w, cfg, changes, len(lines))
	if err := d.header(in.label(), index); err != nil {
		return err
	}
	if err := d.lines(lines); err != nil {
		return err
	}
	return d.footer()
}

// pickFormatter returns nil when output is not colored.
func pickFormatter(cfg Config) chroma.Formatter {
	if !cfg.ColoredOutput {
		return nil
	}
	name := "terminal256"
	if cfg.TrueColor {
		name = "terminal16m"
	}
	return formatters.Get(name)
}

// highlightLines tokenises text and formats each line separately, without its
// trailing newline.
func highlightLines(lexer chroma.Lexer, style *chroma.Style, formatter chroma.Formatter, text string) ([]string, error) {
	if formatter == nil {
		return splitLines(text), nil
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise: %w", err)
	}
	tokenLines := chroma.SplitTokensIntoLines(it.Tokens())
	want := len(splitLines(text))
	out := make([]string, 0, want)
	var buf bytes.Buffer
	for _, line := range tokenLines {
		if len(out) == want {
			break
		}
		trimmed := make([]chroma.Token, 0, len(line))
		for _, tok := range line {
			tok.Value = strings.TrimRight(tok.Value, "\r\n")
			if tok.Value != "" {
				trimmed = append(trimmed, tok)
			}
		}
		buf.Reset()
		if err := formatter.Format(&buf, style, chroma.Literator(trimmed...)); err != nil {
			return nil, fmt.Errorf("format: %w", err)
		}
		out = append(out, buf.String())
	}
	for len(out) < want {
		out = append(out, "")
	}
	return out, nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func (c *Controller) output() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}

func (c *Controller) errOutput() io.Writer {
	if c.ErrOutput == nil {
		return os.Stderr
	}
	return c.ErrOutput
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

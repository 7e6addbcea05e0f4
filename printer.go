package prettyprint

import (
	"bytes"
	"io"
	"log/slog"
)

// Engine renders a batch of inputs with a resolved Config. It reports false
// when at least one input failed but rendering otherwise completed, and an
// error when rendering had to stop.
type Engine interface {
	Run(inputs []Input, cfg Config, assets *Assets) (bool, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(inputs []Input, cfg Config, assets *Assets) (bool, error)

// Run calls f.
func (f EngineFunc) Run(inputs []Input, cfg Config, assets *Assets) (bool, error) {
	return f(inputs, cfg, assets)
}

// PrettyPrinter accumulates inputs and options for Print. It is not safe for
// concurrent use.
type PrettyPrinter struct {
	inputs []Input
	config Config
	assets *Assets
	engine Engine

	widthFunc        WidthFunc
	logger           *slog.Logger
	highlightedLines []LineRange
	termWidth        int
	termWidthSet     bool
	active           ActiveStyleComponents
}

// New returns a PrettyPrinter with DefaultConfig settings.
func New(opts ...Option) *PrettyPrinter {
	o := printerOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.assets == nil {
		o.assets = NewAssets()
	}
	if o.engine == nil {
		o.engine = &Controller{Logger: o.logger}
	}
	if o.widthFunc == nil {
		o.widthFunc = TerminalWidth
	}
	return &PrettyPrinter{
		config:    DefaultConfig(),
		assets:    o.assets,
		engine:    o.engine,
		widthFunc: o.widthFunc,
		logger:    o.logger,
	}
}

// Input adds an arbitrary Input.
func (p *PrettyPrinter) Input(in Input) *PrettyPrinter {
	p.inputs = append(p.inputs, in)
	return p
}

// InputFile adds a file to print. The file is not opened until Print.
func (p *PrettyPrinter) InputFile(path string) *PrettyPrinter {
	return p.Input(OrdinaryFileInput(path))
}

// InputFiles adds several files in order.
func (p *PrettyPrinter) InputFiles(paths ...string) *PrettyPrinter {
	for _, path := range paths {
		p.Input(OrdinaryFileInput(path))
	}
	return p
}

// InputStdin adds standard input.
func (p *PrettyPrinter) InputStdin() *PrettyPrinter {
	return p.Input(StdinInput())
}

// InputStdinWithName adds standard input with a display name.
func (p *PrettyPrinter) InputStdinWithName(name string) *PrettyPrinter {
	return p.Input(StdinInput().WithName(name))
}

// InputFromBytes adds content as an input. The slice is not copied and must
// not be modified until Print returns.
func (p *PrettyPrinter) InputFromBytes(content []byte) *PrettyPrinter {
	return p.InputFromReader(bytes.NewReader(content))
}

// InputFromBytesWithName adds content as an input with a display name. The
// slice is not copied.
func (p *PrettyPrinter) InputFromBytesWithName(content []byte, name string) *PrettyPrinter {
	return p.InputFromReaderWithName(bytes.NewReader(content), name)
}

// InputFromReader adds a reader. The printer takes ownership of r.
func (p *PrettyPrinter) InputFromReader(r io.Reader) *PrettyPrinter {
	return p.Input(ReaderInput(r))
}

// InputFromReaderWithName adds a reader with a display name.
func (p *PrettyPrinter) InputFromReaderWithName(r io.Reader, name string) *PrettyPrinter {
	return p.Input(ReaderInput(r).WithName(name))
}

// PendingInputs returns the number of inputs registered since the last Print.
func (p *PrettyPrinter) PendingInputs() int { return len(p.inputs) }

// Language forces a syntax for all inputs (default: detect).
func (p *PrettyPrinter) Language(language string) *PrettyPrinter {
	p.config.Language = language
	return p
}

// TermWidth overrides the terminal width (default: detect).
func (p *PrettyPrinter) TermWidth(width int) *PrettyPrinter {
	p.termWidth = width
	p.termWidthSet = true
	return p
}

// TabWidth sets the tab expansion width. Zero or less disables expansion.
func (p *PrettyPrinter) TabWidth(width int) *PrettyPrinter {
	if width < 0 {
		width = 0
	}
	p.config.TabWidth = width
	return p
}

// ColoredOutput toggles colorized output (default: true).
func (p *PrettyPrinter) ColoredOutput(yes bool) *PrettyPrinter {
	p.config.ColoredOutput = yes
	return p
}

// TrueColor toggles 24-bit colors (default: true).
func (p *PrettyPrinter) TrueColor(yes bool) *PrettyPrinter {
	p.config.TrueColor = yes
	return p
}

// Header toggles the file name header.
func (p *PrettyPrinter) Header(yes bool) *PrettyPrinter {
	p.active.Header = yes
	return p
}

// LineNumbers toggles line numbers.
func (p *PrettyPrinter) LineNumbers(yes bool) *PrettyPrinter {
	p.active.LineNumbers = yes
	return p
}

// Grid toggles the grid separating the panel from the text.
func (p *PrettyPrinter) Grid(yes bool) *PrettyPrinter {
	p.active.Grid = yes
	return p
}

// VCSModificationMarkers toggles git change markers.
func (p *PrettyPrinter) VCSModificationMarkers(yes bool) *PrettyPrinter {
	p.active.VCSModificationMarkers = yes
	return p
}

// Snip toggles markers between visible line ranges (default: off).
func (p *PrettyPrinter) Snip(yes bool) *PrettyPrinter {
	p.active.Snip = yes
	return p
}

// StyleComponents replaces all five component toggles at once.
func (p *PrettyPrinter) StyleComponents(active ActiveStyleComponents) *PrettyPrinter {
	p.active = active
	return p
}

// WrappingMode sets the wrapping mode (default: WrapNever).
func (p *PrettyPrinter) WrappingMode(mode WrappingMode) *PrettyPrinter {
	p.config.WrappingMode = mode
	return p
}

// UseItalics toggles italic text (default: off).
func (p *PrettyPrinter) UseItalics(yes bool) *PrettyPrinter {
	p.config.UseItalicText = yes
	return p
}

// PagingMode sets the paging mode (default: PagingNever).
func (p *PrettyPrinter) PagingMode(mode PagingMode) *PrettyPrinter {
	p.config.Paging.Mode = mode
	return p
}

// Pager sets the pager command.
func (p *PrettyPrinter) Pager(cmd string) *PrettyPrinter {
	p.config.Paging.Pager = cmd
	return p
}

// LineRanges restricts output to the given lines (default: all).
func (p *PrettyPrinter) LineRanges(ranges LineRanges) *PrettyPrinter {
	p.config.VisibleLines = VisibleRanges(ranges)
	return p
}

// Highlight marks a line as highlighted. Calls accumulate.
func (p *PrettyPrinter) Highlight(line int) *PrettyPrinter {
	return p.HighlightRange(line, line)
}

// HighlightRange marks the lines from..to as highlighted. Calls accumulate.
func (p *PrettyPrinter) HighlightRange(from, to int) *PrettyPrinter {
	p.highlightedLines = append(p.highlightedLines, NewLineRange(from, to))
	return p
}

// ClearHighlights drops all accumulated highlight requests.
func (p *PrettyPrinter) ClearHighlights() *PrettyPrinter {
	p.highlightedLines = nil
	return p
}

// Theme sets the theme name. Unknown names are rejected by Print.
func (p *PrettyPrinter) Theme(theme string) *PrettyPrinter {
	p.config.Theme = theme
	return p
}

// SyntaxMapping sets custom file name to syntax mappings.
func (p *PrettyPrinter) SyntaxMapping(mapping SyntaxMapping) *PrettyPrinter {
	p.config.SyntaxMapping = mapping.clone()
	return p
}

// Themes lists the available theme names.
func (p *PrettyPrinter) Themes() []string {
	return p.assets.Themes()
}

// Syntaxes lists the available syntax definitions.
func (p *PrettyPrinter) Syntaxes() []SyntaxInfo {
	return p.assets.Syntaxes()
}

// Print renders every pending input and consumes them; a later Print without
// new inputs renders nothing and reports success. Highlight requests are not
// consumed: they apply to every later batch until ClearHighlights is called.
// Engine results are returned unchanged.
func (p *PrettyPrinter) Print() (bool, error) {
	cfg := p.resolveConfig()
	inputs := p.inputs
	p.inputs = nil
	p.logger.Debug("print",
		"inputs", len(inputs),
		"theme", cfg.Theme,
		"term_width", cfg.TermWidth,
		"style", cfg.StyleComponents.String(),
	)
	return p.engine.Run(inputs, cfg, p.assets)
}

// resolveConfig builds the snapshot handed to the engine.
func (p *PrettyPrinter) resolveConfig() Config {
	cfg := p.config.clone()
	cfg.HighlightedLines = HighlightedLineRanges{NewLineRanges(p.highlightedLines...)}
	cfg.TermWidth = p.resolveTermWidth()
	cfg.StyleComponents = p.active.Components()
	return cfg
}

func (p *PrettyPrinter) resolveTermWidth() int {
	if p.termWidthSet {
		return p.termWidth
	}
	if w := p.widthFunc(); w > 0 {
		return w
	}
	return DefaultTermWidth
}

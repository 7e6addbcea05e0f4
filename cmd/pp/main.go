package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"pkt.systems/prettyprint"
	"pkt.systems/prettyprint/internal/config"
	"pkt.systems/version"
)

func init() {
	version.SetDefaultModule("pkt.systems/prettyprint")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	language      string
	theme         string
	style         string
	numbers       bool
	lineRanges    []string
	highlights    []string
	tabs          int
	wrap          string
	width         int
	color         string
	italic        bool
	trueColor     bool
	paging        string
	pager         string
	mapSyntax     []string
	fileNames     []string
	configPath    string
	listThemes    bool
	listLanguages bool
	debug         bool
	showVersion   bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := options{trueColor: prettyprint.DetectTrueColor()}
	flags := pflag.NewFlagSet("pp", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.language, "language", "l", "", "Language of the input (default: detect)")
	flags.StringVar(&opts.theme, "theme", prettyprint.DefaultThemeName, "Theme name")
	flags.StringVar(&opts.style, "style", "full", "Comma separated style components: full|plain|grid|header|numbers|snip|changes")
	flags.BoolVarP(&opts.numbers, "number", "n", false, "Only show line numbers (same as --style=numbers)")
	flags.StringArrayVarP(&opts.lineRanges, "line-range", "r", nil, "Only print lines N:M (repeatable)")
	flags.StringArrayVarP(&opts.highlights, "highlight-line", "H", nil, "Highlight lines N:M (repeatable)")
	flags.IntVar(&opts.tabs, "tabs", 4, "Tab width (0 keeps tabs)")
	flags.StringVar(&opts.wrap, "wrap", "auto", "Text wrapping: auto|never|character")
	flags.IntVar(&opts.width, "terminal-width", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVar(&opts.color, "color", "auto", "Colored output: auto|always|never")
	flags.BoolVar(&opts.italic, "italic-text", false, "Use italics")
	flags.StringVar(&opts.paging, "paging", "never", "Paging mode: auto|never|always")
	flags.StringVar(&opts.pager, "pager", "", "Pager command")
	flags.StringArrayVarP(&opts.mapSyntax, "map-syntax", "m", nil, "Map a glob to a language, glob:language (repeatable)")
	flags.StringArrayVar(&opts.fileNames, "file-name", nil, "Display name for the input at the same position (repeatable)")
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: $"+config.EnvPath+" or XDG config dir)")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&opts.listLanguages, "list-languages", false, "List supported languages")
	flags.BoolVar(&opts.debug, "debug", false, "Log debug output to stderr")
	flags.BoolVar(&opts.showVersion, "version", false, "Print version")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: pp [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nIf no input is provided, text is read from stdin. Use - for stdin explicitly.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	level := slog.LevelWarn
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := applyConfigFile(flags, &opts, logger); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	pp := prettyprint.New(
		prettyprint.WithLogger(logger),
		prettyprint.WithEngine(&prettyprint.Controller{
			Output:    stdout,
			ErrOutput: stderr,
			Stdin:     stdin,
			Logger:    logger,
		}),
	)

	if opts.listThemes {
		for _, name := range pp.Themes() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}
	if opts.listLanguages {
		for _, s := range pp.Syntaxes() {
			fmt.Fprintf(stdout, "%s:%s\n", s.Name, strings.Join(slices.Concat(s.Aliases, s.Filenames), ","))
		}
		return 0
	}

	if err := configure(pp, flags, opts, stdout); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}
	if err := addInputs(pp, flags.Args(), opts.fileNames); err != nil {
		fmt.Fprintf(stderr, "input: %v\n", err)
		return 2
	}

	ok, err := pp.Print()
	if err != nil {
		fmt.Fprintf(stderr, "[prettyprint error]: %v\n", err)
		return 1
	}
	if !ok {
		return 1
	}
	return 0
}

// applyConfigFile fills options that were not set on the command line from
// the config file.
func applyConfigFile(flags *pflag.FlagSet, opts *options, logger *slog.Logger) error {
	var (
		cfg config.FileConfig
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.LoadGlobal()
		if errors.Is(err, config.ErrNoConfig) {
			return nil
		}
	}
	if err != nil {
		return err
	}
	logger.Debug("loaded config file", "path", defaultIf(opts.configPath, config.Path()))

	setString := func(name string, dst *string, v *string) {
		if v != nil && !flags.Changed(name) {
			*dst = *v
		}
	}
	setString("language", &opts.language, cfg.Language)
	setString("theme", &opts.theme, cfg.Theme)
	setString("style", &opts.style, cfg.Style)
	setString("wrap", &opts.wrap, cfg.Wrap)
	setString("color", &opts.color, cfg.Color)
	setString("paging", &opts.paging, cfg.Paging)
	setString("pager", &opts.pager, cfg.Pager)
	if cfg.Tabs != nil && !flags.Changed("tabs") {
		opts.tabs = *cfg.Tabs
	}
	if cfg.TerminalWidth != nil && !flags.Changed("terminal-width") {
		opts.width = *cfg.TerminalWidth
	}
	if cfg.ItalicText != nil && !flags.Changed("italic-text") {
		opts.italic = *cfg.ItalicText
	}
	if cfg.TrueColor != nil {
		opts.trueColor = *cfg.TrueColor
	}
	opts.mapSyntax = append(append([]string(nil), cfg.MapSyntax...), opts.mapSyntax...)
	return nil
}

func configure(pp *prettyprint.PrettyPrinter, flags *pflag.FlagSet, opts options, stdout io.Writer) error {
	style := opts.style
	if opts.numbers && !flags.Changed("style") {
		style = "numbers"
	}
	active, err := prettyprint.ParseStyleComponents(style)
	if err != nil {
		return fmt.Errorf("invalid --style: %w", err)
	}
	wrapping, err := prettyprint.ParseWrappingMode(opts.wrap)
	if err != nil {
		return fmt.Errorf("invalid --wrap: %w", err)
	}
	paging, err := prettyprint.ParsePagingMode(opts.paging)
	if err != nil {
		return fmt.Errorf("invalid --paging: %w", err)
	}
	colored, err := resolveColor(opts.color, stdout)
	if err != nil {
		return fmt.Errorf("invalid --color %q: %w", opts.color, err)
	}

	mapping := prettyprint.NewSyntaxMapping()
	for _, rule := range opts.mapSyntax {
		pattern, lang, err := prettyprint.ParseSyntaxMappingRule(rule)
		if err != nil {
			return fmt.Errorf("invalid --map-syntax: %w", err)
		}
		mapping.Insert(pattern, lang)
	}

	pp.Language(opts.language).
		Theme(opts.theme).
		StyleComponents(active).
		TabWidth(opts.tabs).
		WrappingMode(wrapping).
		ColoredOutput(colored).
		TrueColor(opts.trueColor).
		UseItalics(opts.italic).
		PagingMode(paging).
		Pager(opts.pager).
		SyntaxMapping(mapping)
	if opts.width > 0 {
		pp.TermWidth(opts.width)
	}

	if len(opts.lineRanges) > 0 {
		ranges, err := prettyprint.ParseLineRanges(opts.lineRanges)
		if err != nil {
			return fmt.Errorf("invalid --line-range: %w", err)
		}
		pp.LineRanges(ranges)
	}
	for _, expr := range opts.highlights {
		r, err := prettyprint.ParseLineRange(expr)
		if err != nil {
			return fmt.Errorf("invalid --highlight-line: %w", err)
		}
		pp.HighlightRange(r.From, r.To)
	}
	return nil
}

func resolveColor(mode string, stdout io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return prettyprint.IsTerminal(stdout) && os.Getenv("NO_COLOR") == "", nil
	case "always", "on", "true", "1", "yes":
		return true, nil
	case "never", "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|always|never")
	}
}

// addInputs registers each argument in order: "-" is stdin, http(s) URLs are
// fetched lazily, anything else is a file path.
func addInputs(pp *prettyprint.PrettyPrinter, args, names []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, raw := range args {
		in, err := makeInput(raw)
		if err != nil {
			return err
		}
		if i < len(names) && names[i] != "" {
			in = in.WithName(names[i])
		}
		pp.Input(in)
	}
	return nil
}

func makeInput(raw string) (prettyprint.Input, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return prettyprint.Input{}, fmt.Errorf("empty input argument")
	}
	if raw == "-" {
		return prettyprint.StdinInput(), nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return prettyprint.HTTPInput(context.Background(), raw, nil)
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return prettyprint.OrdinaryFileInput(path), nil
		}
	}
	return prettyprint.OrdinaryFileInput(raw), nil
}

func defaultIf(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

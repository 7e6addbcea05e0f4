package prettyprint

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	enry "github.com/go-enry/go-enry/v2"
)

var (
	// ErrUnknownTheme reports a theme name missing from the catalog.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrUnknownSyntax reports a language name missing from the catalog.
	ErrUnknownSyntax = errors.New("unknown syntax")
)

// SyntaxInfo describes one syntax definition in the catalog.
type SyntaxInfo struct {
	Name      string
	Aliases   []string
	Filenames []string
	MimeTypes []string
}

// Assets is the read-only catalog of themes and syntaxes, backed by the
// styles and lexers bundled with chroma.
type Assets struct{}

// NewAssets returns the bundled catalog.
func NewAssets() *Assets {
	return &Assets{}
}

// Themes returns the sorted names of available themes.
func (a *Assets) Themes() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

// Syntaxes returns the available syntax definitions sorted by name.
func (a *Assets) Syntaxes() []SyntaxInfo {
	all := lexers.GlobalLexerRegistry.Lexers
	out := make([]SyntaxInfo, 0, len(all))
	for _, l := range all {
		cfg := l.Config()
		if cfg == nil {
			continue
		}
		out = append(out, SyntaxInfo{
			Name:      cfg.Name,
			Aliases:   append([]string(nil), cfg.Aliases...),
			Filenames: append([]string(nil), cfg.Filenames...),
			MimeTypes: append([]string(nil), cfg.MimeTypes...),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Theme returns the named theme. An empty name selects DefaultThemeName.
func (a *Assets) Theme(name string) (*chroma.Style, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.EqualFold(trimmed, "default") {
		trimmed = DefaultThemeName
	}
	if style, ok := styles.Registry[trimmed]; ok {
		return style, nil
	}
	if style, ok := styles.Registry[strings.ToLower(trimmed)]; ok {
		return style, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// SyntaxByName returns the lexer for a language name, alias or extension.
func (a *Assets) SyntaxByName(name string) (chroma.Lexer, error) {
	if l := lexers.Get(strings.TrimSpace(name)); l != nil {
		return l, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSyntax, name)
}

// DetectSyntax guesses the lexer for content that could not be matched by
// name. It returns nil when nothing matches.
func (a *Assets) DetectSyntax(filename string, content []byte) chroma.Lexer {
	if lang := enry.GetLanguage(filepath.Base(filename), content); lang != "" {
		if l := lexers.Get(strings.ToLower(lang)); l != nil {
			return l
		}
	}
	if len(content) == 0 {
		return nil
	}
	return lexers.Analyse(string(content))
}

// lexerFor picks the lexer for one input: language override, syntax mapping,
// file name, then content detection.
func (a *Assets) lexerFor(cfg Config, name string, content []byte) chroma.Lexer {
	if cfg.Language != "" {
		if l, err := a.SyntaxByName(cfg.Language); err == nil {
			return l
		}
	}
	if name != "" {
		if lang, ok := cfg.SyntaxMapping.Lookup(name); ok {
			if l, err := a.SyntaxByName(lang); err == nil {
				return l
			}
		}
		if l := lexers.Match(filepath.Base(name)); l != nil {
			return l
		}
	}
	if l := a.DetectSyntax(name, content); l != nil {
		return l
	}
	return lexers.Fallback
}

// withoutItalics returns style with every italic entry disabled.
func withoutItalics(style *chroma.Style) (*chroma.Style, error) {
	b := style.Builder()
	for _, t := range style.Types() {
		entry := style.Get(t)
		if entry.Italic == chroma.Yes {
			entry.Italic = chroma.No
			b.AddEntry(t, entry)
		}
	}
	return b.Build()
}

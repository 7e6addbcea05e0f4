package prettyprint

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidSyntaxMapping reports a malformed syntax mapping rule.
var ErrInvalidSyntaxMapping = errors.New("invalid syntax mapping")

type syntaxRule struct {
	pattern  string
	language string
}

// SyntaxMapping maps file name globs to language names. Rules added later take
// precedence over earlier ones.
type SyntaxMapping struct {
	rules []syntaxRule
}

// NewSyntaxMapping returns an empty mapping.
func NewSyntaxMapping() SyntaxMapping {
	return SyntaxMapping{}
}

// Insert adds a rule. Patterns are not validated here; see Validate.
func (m *SyntaxMapping) Insert(pattern, language string) *SyntaxMapping {
	m.rules = append(m.rules, syntaxRule{pattern: pattern, language: language})
	return m
}

// ParseSyntaxMappingRule splits a "glob:language" rule.
func ParseSyntaxMappingRule(s string) (pattern, language string, err error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 || i == len(s)-1 {
		return "", "", fmt.Errorf("%w: %q: expected glob:language", ErrInvalidSyntaxMapping, s)
	}
	return s[:i], s[i+1:], nil
}

// Len returns the number of rules.
func (m SyntaxMapping) Len() int { return len(m.rules) }

// Validate checks every rule for a usable glob and a language name.
func (m SyntaxMapping) Validate() error {
	for _, r := range m.rules {
		if strings.TrimSpace(r.language) == "" {
			return fmt.Errorf("%w: %q has no language", ErrInvalidSyntaxMapping, r.pattern)
		}
		if r.pattern == "" || !doublestar.ValidatePattern(r.pattern) {
			return fmt.Errorf("%w: bad pattern %q", ErrInvalidSyntaxMapping, r.pattern)
		}
	}
	return nil
}

// Languages returns the language of every rule in insertion order.
func (m SyntaxMapping) Languages() []string {
	out := make([]string, len(m.rules))
	for i, r := range m.rules {
		out[i] = r.language
	}
	return out
}

// Lookup returns the language for path. Patterns without a separator match
// the base name; others match the slash-separated path.
func (m SyntaxMapping) Lookup(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for i := len(m.rules) - 1; i >= 0; i-- {
		r := m.rules[i]
		target := slashed
		if !strings.Contains(r.pattern, "/") {
			target = base
		}
		if ok, err := doublestar.Match(r.pattern, target); err == nil && ok {
			return r.language, true
		}
	}
	return "", false
}

func (m SyntaxMapping) clone() SyntaxMapping {
	return SyntaxMapping{rules: append([]syntaxRule(nil), m.rules...)}
}

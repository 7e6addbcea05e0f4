package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "config.yml", `theme: dracula
style: numbers,grid
tabs: 4
wrap: character
italic_text: true
terminal_width: 100
map_syntax:
  - "*.conf:ini"
  - "Jenkinsfile:groovy"
`)
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	require.NotNil(t, cfg.Theme)
	assert.Equal(t, "dracula", *cfg.Theme)
	require.NotNil(t, cfg.Style)
	assert.Equal(t, "numbers,grid", *cfg.Style)
	require.NotNil(t, cfg.Tabs)
	assert.Equal(t, 4, *cfg.Tabs)
	require.NotNil(t, cfg.Wrap)
	assert.Equal(t, "character", *cfg.Wrap)
	require.NotNil(t, cfg.ItalicText)
	assert.True(t, *cfg.ItalicText)
	require.NotNil(t, cfg.TerminalWidth)
	assert.Equal(t, 100, *cfg.TerminalWidth)
	assert.Equal(t, []string{"*.conf:ini", "Jenkinsfile:groovy"}, cfg.MapSyntax)
	assert.Nil(t, cfg.Language)
	assert.Nil(t, cfg.TrueColor)
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "config.yml", "tabs: [not, an, int]\n")
	_, err := LoadFile(p)
	require.Error(t, err)
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, filepath.Join("prettyprint", "config.yml"), "theme: nord\n")
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg.Theme)
	assert.Equal(t, "nord", *cfg.Theme)
}

func TestLoadGlobal_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "custom.yml", "pager: less -R\n")
	t.Setenv(EnvPath, p)
	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg.Pager)
	assert.Equal(t, "less -R", *cfg.Pager)
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	_, err := LoadGlobal()
	require.ErrorIs(t, err, ErrNoConfig)
}

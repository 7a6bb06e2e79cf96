package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
extension = ".cx"
color = "never"

[tokens]
format = "yaml"
`)
	cfg, err := Parse(data, FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, ".cx", cfg.Extension)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "warn", cfg.LogLevel, "unset keys keep defaults")
	assert.Equal(t, "yaml", cfg.Tokens.Format)
}

func TestParseYAML(t *testing.T) {
	data := []byte("log_level: debug\ntokens:\n  format: text\n")
	cfg, err := Parse(data, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.Tokens.Format)
	assert.Equal(t, ".crx", cfg.Extension)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"color", `color = "rainbow"`},
		{"extension", `extension = "crx"`},
		{"log level", `log_level = "chatty"`},
		{"tokens format", "[tokens]\nformat = \"xml\""},
		{"syntax", `color = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatTOML)
			assert.Error(t, err)
		})
	}
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("crux.TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	f, err = FormatOf("dir/crux.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatOf("crux.json")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadAndDiscover(t *testing.T) {
	dir := t.TempDir()
	_, ok := Discover(dir)
	assert.False(t, ok)

	path := filepath.Join(dir, "crux.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: always\n"), 0o644))

	found, ok := Discover(dir)
	require.True(t, ok)
	assert.Equal(t, path, found)

	cfg, err := Load(found)
	require.NoError(t, err)
	assert.Equal(t, "always", cfg.Color)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "crux.toml"), []byte(`color = "never"`), 0o644))
	found, ok = Discover(dir)
	require.True(t, ok)
	assert.Equal(t, "crux.toml", filepath.Base(found), "toml wins over yaml")
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Color = "never"
	data, err := cfg.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `color = "never"`)

	back, err := Parse(data, FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

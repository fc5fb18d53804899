package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable the loader reads and moves into an empty
// directory so no stray cineai.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	dir := t.TempDir()
	t.Chdir(dir)
	ResetConfig()
	return dir
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, "gemini-3-flash-preview", cfg.Model)
	assert.Equal(t, "pt-BR", cfg.Locale)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.False(t, cfg.Verbose)

	ui := cfg.GetUIConfig()
	assert.Equal(t, 8765, ui.Port)
	assert.False(t, ui.AutoOpen)
	assert.False(t, ui.Watch)
	assert.Equal(t, 3, ui.Skeletons)
	assert.NotEmpty(t, ui.SessionSecret)

	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_DiscoversFileInWorkingDir(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "cineai.yml", `
locale: en
model: gemini-custom
ui:
  port: 9000
  skeletons: 5
`)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "gemini-custom", cfg.Model)
	assert.Equal(t, 9000, cfg.GetUIConfig().Port)
	assert.Equal(t, 5, cfg.GetUIConfig().Skeletons)
	assert.Equal(t, filepath.Join(".", "cineai.yml"), GetConfigFileUsed())
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	isolate(t)
	other := t.TempDir()
	path := writeConfig(t, other, "custom.yaml", "log_format: json\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "cineai.yaml", "locale: pt-BR\nui:\n  port: 9000\n")

	t.Setenv("CINEAI_LOCALE", "en")
	t.Setenv("CINEAI_UI_PORT", "9100")
	t.Setenv("CINEAI_UI_AUTO_OPEN", "true")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 9100, cfg.GetUIConfig().Port)
	assert.True(t, cfg.GetUIConfig().AutoOpen)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "cineai.yaml", "output: json\n")
	t.Setenv("CINEAI_OUTPUT", "yaml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "output format")
	flags.String("log-format", "", "log format")
	require.NoError(t, flags.Set("output", "markdown"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat, "flag beats env and file")
	assert.Equal(t, "text", cfg.LogFormat, "unset flag does not override the default")
}

func TestLoadConfig_APIKeyResolution(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "prefixed variable",
			env:  map[string]string{"CINEAI_API_KEY": "k1", "GEMINI_API_KEY": "k2", "API_KEY": "k3"},
			want: "k1",
		},
		{
			name: "gemini variable",
			env:  map[string]string{"GEMINI_API_KEY": "k2", "API_KEY": "k3"},
			want: "k2",
		},
		{
			name: "generic variable",
			env:  map[string]string{"API_KEY": "k3"},
			want: "k3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig("", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.APIKey)
		})
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		errSubstr string
	}{
		{name: "locale", yaml: "locale: not a locale!\n", errSubstr: "unsupported locale"},
		{name: "log format", yaml: "log_format: xml\n", errSubstr: "invalid log_format"},
		{name: "output", yaml: "output: csv\n", errSubstr: "invalid output"},
		{name: "port", yaml: "ui:\n  port: 70000\n", errSubstr: "invalid ui.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeConfig(t, dir, "cineai.yaml", tt.yaml)

			_, err := LoadConfig("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{Locale: "en", LogFormat: "json", OutputFormat: "yaml", UI: DefaultUIConfig()}
	assert.NoError(t, cfg.Validate())

	cfg.OutputFormat = ""
	assert.NoError(t, cfg.Validate(), "empty output means auto")
}

func TestGetUIConfig_FillsZeroValues(t *testing.T) {
	cfg := &Config{UI: &UIConfig{Watch: true}}

	ui := cfg.GetUIConfig()
	assert.Equal(t, 8765, ui.Port)
	assert.Equal(t, 3, ui.Skeletons)
	assert.NotEmpty(t, ui.SessionSecret)
	assert.True(t, ui.Watch)
}

func TestRedactKey(t *testing.T) {
	assert.Equal(t, "(not set)", RedactKey(""))
	assert.Equal(t, "****", RedactKey("abc"))
	assert.Equal(t, "****wxyz", RedactKey("AIzaSyD-secret-wxyz"))
	assert.NotContains(t, RedactKey("AIzaSyD-secret-wxyz"), "secret")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "json", false)

	logger.Debug("hidden")
	logger.Info("shown", "tools", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, float64(3), rec["tools"])

	buf.Reset()
	NewLogger(&buf, "text", true).Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "falls back to a discard logger")

	logger := NewLogger(&bytes.Buffer{}, "text", false)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

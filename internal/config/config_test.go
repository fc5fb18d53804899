package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		gemini     string
		apiKey     string
		want       string
	}{
		{name: "configured wins", configured: "cfg", gemini: "g", apiKey: "a", want: "cfg"},
		{name: "gemini variable", gemini: "g", apiKey: "a", want: "g"},
		{name: "generic variable", apiKey: "a", want: "a"},
		{name: "nothing set", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", tt.gemini)
			t.Setenv("API_KEY", tt.apiKey)
			assert.Equal(t, tt.want, ResolveAPIKey(tt.configured))
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, FindConfigFile(dir))

	alt := filepath.Join(dir, ConfigFileNameAlt)
	require.NoError(t, os.WriteFile(alt, []byte("locale: en\n"), 0600))
	assert.Equal(t, alt, FindConfigFile(dir))

	primary := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(primary, []byte("locale: en\n"), 0600))
	assert.Equal(t, primary, FindConfigFile(dir), "yaml takes precedence over yml")
}

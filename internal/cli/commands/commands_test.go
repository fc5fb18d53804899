package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/cineai/internal/cli/config"
)

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.Equal(t, []string{"ui"}, cmd.Aliases)

	flags := []string{"port", "open", "no-browser", "watch", "skeletons"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewFetchCommand(t *testing.T) {
	cmd := NewFetchCommand()

	assert.Equal(t, "fetch", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("timeout"))
}

func TestResolveServeSettings(t *testing.T) {
	base := &config.Config{UI: &config.UIConfig{
		Port:          9000,
		AutoOpen:      true,
		Watch:         true,
		Skeletons:     4,
		SessionSecret: "from-config",
	}}

	tests := []struct {
		name string
		args []string
		want serveSettings
	}{
		{
			name: "config values without flags",
			want: serveSettings{Port: 9000, AutoOpen: true, Watch: true, Skeletons: 4, Secret: "from-config"},
		},
		{
			name: "flags override config",
			args: []string{"--port", "3000", "--no-browser", "--watch=false", "--skeletons", "6"},
			want: serveSettings{Port: 3000, AutoOpen: false, Watch: false, Skeletons: 6, Secret: "from-config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &ServeOptions{}
			cmd := newServeCommand(opts)
			require.NoError(t, cmd.ParseFlags(tt.args))

			cfgCopy := *base
			uiCopy := *base.UI
			cfgCopy.UI = &uiCopy
			got := resolveServeSettings(cmd, &CommandContext{Cfg: &cfgCopy}, opts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveServeSettings_OpenFlag(t *testing.T) {
	opts := &ServeOptions{Open: true}
	cmd := NewServeCommand()

	got := resolveServeSettings(cmd, &CommandContext{Cfg: &config.Config{}}, opts)
	assert.True(t, got.AutoOpen)
	assert.Equal(t, 8765, got.Port)
	assert.Equal(t, 3, got.Skeletons)
}

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/fractal"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 50, cfg.Iterations)
	assert.Equal(t, "hsv", cfg.ColorModel)
	assert.Equal(t, 4.0, cfg.Scale)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 400, cfg.Window.Height)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
iterations = 200
color_model = "hcl"

[window]
width = 1200
show_fps = true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Iterations)
	assert.Equal(t, "hcl", cfg.ColorModel)
	assert.Equal(t, 1200, cfg.Window.Width)
	assert.True(t, cfg.Window.ShowFPS)

	// Unset keys keep their defaults.
	assert.Equal(t, 400, cfg.Window.Height)
	assert.Equal(t, "fractal", cfg.Window.Title)
	assert.Equal(t, 240, cfg.Bench.Frames)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", `iterations = `, "parsing"},
		{"unknown key", `iterationz = 10`, "unknown keys iterationz"},
		{"unknown nested key", "[window]\ndepth = 3", "window.depth"},
		{"bad model", `color_model = "cmyk"`, "unknown model"},
		{"zero iterations", `iterations = 0`, "iterations must be at least 1"},
		{"negative scale", `scale = -1.0`, "scale must be positive"},
		{"tiny window", "[window]\nwidth = 1", "window must be at least"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 75
	cfg.ColorModel = "hsl"
	cfg.Workers = 1
	cfg.Scale = 2

	opts, err := cfg.Options()
	require.NoError(t, err)

	app := fractal.NewApp(20, 10, opts...)
	defer app.Close()

	assert.Equal(t, 75, app.MaxIterations())
	assert.Equal(t, 2.0, app.View().Scale)
}

func TestConfigOptionsBadModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColorModel = "rgb"
	_, err := cfg.Options()
	assert.Error(t, err)
}

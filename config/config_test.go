package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {

	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, Backend_SDL, cfg.Window.Backend)
}

func TestLoad(t *testing.T) {

	path := writeConfig(t, `
[window]
title = "demo"
width = 800
height = 600
backend = "glfw"
debug_context = true

[render]
clear_color = [0.0, 0.5, 1.0, 1.0]
debug_output = true

[log]
level = "debug"

[assets]
mesh = "./res/models/monkey.obj"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, int32(800), cfg.Window.Width)
	assert.Equal(t, int32(600), cfg.Window.Height)
	assert.Equal(t, Backend_GLFW, cfg.Window.Backend)
	assert.True(t, cfg.Window.DebugContext)
	assert.Equal(t, [4]float32{0, 0.5, 1, 1}, cfg.Render.ClearColor)
	assert.True(t, cfg.Render.DebugOutput)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "./res/models/monkey.obj", cfg.Assets.Mesh)

	// Keys not in the file keep their defaults
	assert.True(t, cfg.Window.VSync)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, Default().Assets.Shader, cfg.Assets.Shader)
}

func TestLoadMissingFile(t *testing.T) {

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadFiles(t *testing.T) {

	tests := map[string]string{
		"syntax":        "[window\nwidth = 3",
		"unknown key":   "[window]\nfullscreen = true",
		"zero width":    "[window]\nwidth = 0",
		"backend":       "[window]\nbackend = \"vulkan\"",
		"clear color":   "[render]\nclear_color = [2.0, 0.0, 0.0, 1.0]",
		"log level":     "[log]\nlevel = \"loud\"",
		"wrong type":    "[window]\nheight = \"tall\"",
		"negative size": "[window]\nheight = -5",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, contents))
			assert.Error(t, err)
			assert.NotErrorIs(t, err, os.ErrNotExist)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestValidate(t *testing.T) {

	cfg := Default()
	cfg.Window.Height = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Render.ClearColor[3] = -0.1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Window.Backend = "GLFW"
	assert.Error(t, cfg.Validate())
}

// Package config holds the engine settings read from a TOML file at startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
)

type Backend string

const (
	Backend_SDL  Backend = "sdl"
	Backend_GLFW Backend = "glfw"
)

type Window struct {
	Title   string  `toml:"title"`
	Width   int32   `toml:"width"`
	Height  int32   `toml:"height"`
	Backend Backend `toml:"backend"`
	VSync   bool    `toml:"vsync"`
	// DebugContext asks the backend for a GL debug context, which is
	// usually needed for Render.DebugOutput to report anything.
	DebugContext bool `toml:"debug_context"`
}

type Render struct {
	ClearColor  [4]float32 `toml:"clear_color"`
	DebugOutput bool       `toml:"debug_output"`
}

type Log struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type Assets struct {
	// Mesh is imported with assimp. The demo falls back to a cube when empty.
	Mesh   string `toml:"mesh"`
	Shader string `toml:"shader"`
}

type Config struct {
	Window Window `toml:"window"`
	Render Render `toml:"render"`
	Log    Log    `toml:"log"`
	Assets Assets `toml:"assets"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:   "tel",
			Width:   1280,
			Height:  720,
			Backend: Backend_SDL,
			VSync:   true,
		},
		Render: Render{
			ClearColor: [4]float32{0.3, 0.3, 0.5, 1},
		},
		Log: Log{
			Level:       "info",
			Development: true,
		},
		Assets: Assets{
			Shader: "./res/shaders/main.glsl",
		},
	}
}

// Load decodes the file at path over the defaults, so keys missing from the file keep their
// default value. A missing file is not fatal: the defaults are returned along with an
// error wrapping os.ErrNotExist.
func Load(path string) (Config, error) {

	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), fmt.Errorf("config file '%s' not found, using defaults: %w", path, err)
		}
		return Default(), fmt.Errorf("failed to decode config file '%s': %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("unknown keys in config file '%s': %v", path, undecoded)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config file '%s': %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	switch c.Window.Backend {
	case Backend_SDL, Backend_GLFW:
	default:
		return fmt.Errorf("unknown window backend '%s', expected '%s' or '%s'", c.Window.Backend, Backend_SDL, Backend_GLFW)
	}

	for i, v := range c.Render.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear color component %d is %f, must be in [0,1]", i, v)
		}
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("bad log level: %w", err)
	}

	return nil
}

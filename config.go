package wriggle

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// WindowConfig describes the initial viewport.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Settings are the live controls: simulation speed, particle count and the
// selected creature.
type Settings struct {
	// Speed multiplies particle and creature motion.
	Speed float64 `toml:"speed"`
	// Count is both the pointer-down burst size and the input to the
	// held-pointer spawn rate (linear around FieldConfig.BaselineCount).
	Count  int  `toml:"count"`
	Entity Kind `toml:"entity"`
}

// Limits for the live controls.
const (
	MinSpeed = 0.1
	MaxSpeed = 5.0
	MinCount = 0
	MaxCount = 250
)

// Config is the complete configuration of a scene and the program hosting
// it. Zero fields in a loaded file keep their defaults only when the key is
// absent; an explicit zero is taken as written.
type Config struct {
	Window    WindowConfig    `toml:"window"`
	Settings  Settings        `toml:"settings"`
	Particles FieldConfig     `toml:"particles"`
	Creatures CreatureConfigs `toml:"creatures"`
	Log       LogConfig       `toml:"log"`

	ShowFPS       bool   `toml:"show_fps"`
	Debug         bool   `toml:"debug"`
	ScreenshotDir string `toml:"screenshot_dir"`
	// Seed fixes the random source. 0 picks a random seed.
	Seed uint64 `toml:"seed"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Window:        WindowConfig{Title: "wriggle", Width: 1024, Height: 720},
		Settings:      Settings{Speed: 1, Count: 50, Entity: KindSnake},
		Particles:     DefaultFieldConfig(),
		Creatures:     DefaultCreatureConfigs(),
		ShowFPS:       true,
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig reads a TOML file over DefaultConfig. An empty path returns
// the defaults. Keys the config does not know are reported as an error so
// typos do not pass silently.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

// ParseConfig decodes TOML text over DefaultConfig.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg.normalized(), nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
}

// WriteConfig encodes cfg as TOML.
func WriteConfig(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// normalized clamps live controls into range.
func (c Config) normalized() Config {
	c.Settings.Speed = clampSpeed(c.Settings.Speed)
	c.Settings.Count = clampCount(c.Settings.Count)
	if c.Window.Width <= 0 {
		c.Window.Width = 1024
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 720
	}
	return c
}

func clampSpeed(v float64) float64 {
	return max(MinSpeed, min(MaxSpeed, v))
}

func clampCount(v int) int {
	return max(MinCount, min(MaxCount, v))
}

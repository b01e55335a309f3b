package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the contents of kiln.toml.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Game    GameConfig    `toml:"game"`
	Physics PhysicsConfig `toml:"physics"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
}

type GameConfig struct {
	Resources string        `toml:"resources"` // directory, or a .zip archive
	Main      string        `toml:"main"`      // document loaded at startup
	TickRate  time.Duration `toml:"tick_rate"`
}

type PhysicsConfig struct {
	Gravity      float64 `toml:"gravity"`
	Ground       bool    `toml:"ground"` // collide with the plane y = 0
	Acceleration float64 `toml:"acceleration"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

type DebugConfig struct {
	Imgui bool `toml:"imgui"`
}

// TicksPerSecond converts the tick rate into a frequency, at least 1.
func (g GameConfig) TicksPerSecond() int {
	if g.TickRate <= 0 {
		return 60
	}
	tps := int(time.Second / g.TickRate)
	if tps < 1 {
		return 1
	}
	return tps
}

// Load reads a toml file over the defaults. Keys missing from the file keep their default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "kiln",
			Width:     1024,
			Height:    768,
			Resizable: true,
		},
		Game: GameConfig{
			Resources: "resources",
			Main:      "main",
			TickRate:  time.Second / 60,
		},
		Physics: PhysicsConfig{
			Gravity:      -9.8,
			Ground:       true,
			Acceleration: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Package config loads skinvm settings from TOML with environment overrides
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/skinvm/audio"
	"github.com/lixenwraith/skinvm/loader"
	"github.com/lixenwraith/skinvm/skin"
)

// Config is the full configuration file
type Config struct {
	Log    LogConfig    `toml:"log"`
	Skin   SkinConfig   `toml:"skin"`
	Render RenderConfig `toml:"render"`
	Audio  AudioConfig  `toml:"audio"`
}

// LogConfig selects the logrus level
type LogConfig struct {
	Level string `toml:"level"`
}

// SkinConfig controls object construction
type SkinConfig struct {
	UnknownAttributes string `toml:"unknown_attributes"` // warn, ignore or error
	LegacyZeroSize    bool   `toml:"legacy_zero_size"`
	DefaultSize       int    `toml:"default_size"`
}

// RenderConfig sizes the terminal cell grid in skin pixels
type RenderConfig struct {
	CellWidth  int `toml:"cell_width"`
	CellHeight int `toml:"cell_height"`
}

// AudioConfig mirrors audio.Config with TOML-friendly types
type AudioConfig struct {
	Enabled    bool     `toml:"enabled"`
	SampleRate int      `toml:"sample_rate"`
	Buffer     Duration `toml:"buffer"`
	Volume     int      `toml:"volume"`
	Balance    int      `toml:"balance"`
	Preamp     int      `toml:"preamp"`
}

// Load reads $XDG_CONFIG_HOME/skinvm/config.toml (or ~/.config/skinvm/config.toml)
// If no file exists, returns DefaultConfig()
func Load() (*Config, error) {
	home, _ := os.UserHomeDir()
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(home, ".config")
	}
	return LoadFromFile(filepath.Join(dir, "skinvm", "config.toml"))
}

// LoadFromFile reads configuration from path; a missing file yields the defaults
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader decodes TOML over the defaults, then applies environment overrides
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	a := audio.DefaultConfig()
	return &Config{
		Log: LogConfig{Level: "info"},
		Skin: SkinConfig{
			UnknownAttributes: "warn",
			DefaultSize:       skin.DefaultSize,
		},
		Render: RenderConfig{CellWidth: 4, CellHeight: 8},
		Audio: AudioConfig{
			Enabled:    a.Enabled,
			SampleRate: a.SampleRate,
			Buffer:     Duration{a.Buffer},
			Volume:     a.Volume,
			Balance:    a.Balance,
			Preamp:     a.Preamp,
		},
	}
}

// applyEnvOverrides checks SKINVM_* environment variables
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SKINVM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SKINVM_UNKNOWN_ATTRIBUTES"); v != "" {
		cfg.Skin.UnknownAttributes = v
	}
	if v := os.Getenv("SKINVM_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Audio.Enabled = b
		}
	}
	if v := os.Getenv("SKINVM_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Audio.Volume = min(max(n, 0), 100)
		}
	}
}

// Validate rejects values the components cannot use
func (c *Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("skin.unknown_attributes: %w", err)
	}
	if c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0 {
		return fmt.Errorf("render: cell size must be positive, got %dx%d", c.Render.CellWidth, c.Render.CellHeight)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	return nil
}

// Policy returns the unknown attribute policy
func (c *Config) Policy() (loader.Policy, error) {
	return loader.ParsePolicy(c.Skin.UnknownAttributes)
}

// SkinOptions returns the object construction options
func (c *Config) SkinOptions() skin.Options {
	return skin.Options{DefaultSize: c.Skin.DefaultSize, LegacyZeroSize: c.Skin.LegacyZeroSize}
}

// AudioEngine returns the audio service configuration
func (c *Config) AudioEngine() audio.Config {
	buf := c.Audio.Buffer.Duration
	if buf <= 0 {
		buf = 100 * time.Millisecond
	}
	return audio.Config{
		Enabled:    c.Audio.Enabled,
		SampleRate: c.Audio.SampleRate,
		Buffer:     buf,
		Volume:     c.Audio.Volume,
		Balance:    c.Audio.Balance,
		Preamp:     c.Audio.Preamp,
	}
}

package config

import (
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/soillab/internal/labtest"
)

const (
	DefaultScene      = "bts"
	DefaultQuality    = "medium"
	DefaultFormat     = "gif"
	DefaultTheme      = "dark"
	DefaultBackground = "#000000"
	DefaultLogLevel   = "info"
	DefaultWatermark  = labtest.DefaultWatermark
)

// Config selects a scene and how it is rendered. Zero Width, Height and FPS
// take their values from the quality preset.
type Config struct {
	Scene      string  `yaml:"scene"`
	Quality    string  `yaml:"quality"`
	FPS        float64 `yaml:"fps,omitempty"`
	Width      int     `yaml:"width,omitempty"`
	Height     int     `yaml:"height,omitempty"`
	Format     string  `yaml:"format"`
	Out        string  `yaml:"out,omitempty"`
	Workers    int     `yaml:"workers"`
	Theme      string  `yaml:"theme"`
	Background string  `yaml:"background"`
	LogLevel   string  `yaml:"log_level"`
	Watermark  string  `yaml:"watermark"`
	// Rate names an easing that replaces every animation's own; empty keeps
	// them.
	Rate       string  `yaml:"rate,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:      DefaultScene,
		Quality:    DefaultQuality,
		Format:     DefaultFormat,
		Workers:    runtime.NumCPU(),
		Theme:      DefaultTheme,
		Background: DefaultBackground,
		LogLevel:   DefaultLogLevel,
		Watermark:  DefaultWatermark,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the YAML file at path onto cfg; keys missing from the
// file keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Merge copies the non-zero fields of o onto c.
func (c *Config) Merge(o *Config) {
	if o == nil {
		return
	}
	if o.Scene != "" {
		c.Scene = o.Scene
	}
	if o.Quality != "" {
		c.Quality = o.Quality
	}
	if o.FPS != 0 {
		c.FPS = o.FPS
	}
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.Height != 0 {
		c.Height = o.Height
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Out != "" {
		c.Out = o.Out
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.Theme != "" {
		c.Theme = o.Theme
	}
	if o.Background != "" {
		c.Background = o.Background
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.Watermark != "" {
		c.Watermark = o.Watermark
	}
	if o.Rate != "" {
		c.Rate = o.Rate
	}
}

// Resolve builds a config from the defaults, then the named scene preset (if
// any), then the file at path (if any).
func Resolve(scene, preset, path string) (*Config, error) {
	cfg := DefaultConfig()
	if scene != "" {
		cfg.Scene = scene
	}
	if preset != "" {
		p := GetPreset(cfg.Scene, preset)
		if p == nil {
			return nil, &PresetError{Scene: cfg.Scene, Preset: preset}
		}
		cfg.Merge(p)
	}
	if path != "" {
		if err := LoadInto(path, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// PresetError reports a preset missing for a scene.
type PresetError struct {
	Scene, Preset string
}

func (e *PresetError) Error() string {
	return "config: no preset " + e.Preset + " for scene " + e.Scene
}

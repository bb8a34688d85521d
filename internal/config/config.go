package config

import (
	"fmt"
	"os"
	"time"

	"github.com/richard-senior/smoothcurve/internal/logger"
	"gopkg.in/yaml.v3"
)

// DefaultSmoothing is how far control points are pulled along the tangent
const DefaultSmoothing = 0.2

// Config holds every tunable value used by the server and the CLI.
// Values are read once at startup and passed explicitly to the code that needs them.
type Config struct {
	Smoothing float64     `yaml:"smoothing"` // bezier smoothing ratio (default: 0.2)
	Log       LogConfig   `yaml:"log"`
	Store     StoreConfig `yaml:"store"`
	Chart     ChartConfig `yaml:"chart"`
	Cache     CacheConfig `yaml:"cache"`
}

type LogConfig struct {
	Level        string `yaml:"level"`        // debug, info, warn, error (default: info)
	Output       string `yaml:"output"`       // c = console, f = file, b = both (default: f)
	File         string `yaml:"file"`         // log file used by f and b
	ShowDateTime bool   `yaml:"showDateTime"` // prefix lines with date and time
}

type StoreConfig struct {
	Path string `yaml:"path"` // sqlite database location (default: :memory:)
}

type ChartConfig struct {
	Width       float64 `yaml:"width"`       // default: 800
	Height      float64 `yaml:"height"`      // default: 200
	Stroke      string  `yaml:"stroke"`      // default: grey
	StrokeWidth float64 `yaml:"strokeWidth"` // default: 2
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"` // how long rendered charts are kept (default: 5m)
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Smoothing: DefaultSmoothing,
		Log: LogConfig{
			Level:        "info",
			Output:       "f",
			File:         "/tmp/smoothcurve.log",
			ShowDateTime: true,
		},
		Store: StoreConfig{
			Path: ":memory:",
		},
		Chart: ChartConfig{
			Width:       800,
			Height:      200,
			Stroke:      "grey",
			StrokeWidth: 2,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
	}
}

// Load reads the YAML file at path over the defaults.
// An empty path returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse unmarshals YAML into cfg and validates the result
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Smoothing < 0 || c.Smoothing > 1 {
		return fmt.Errorf("smoothing must be between 0 and 1, got %v", c.Smoothing)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart dimensions must be positive, got %vx%v", c.Chart.Width, c.Chart.Height)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl cannot be negative")
	}
	switch c.Log.Output {
	case "c", "f", "b":
	default:
		return fmt.Errorf("log output must be one of c, f or b, got %q", c.Log.Output)
	}
	return nil
}

// LogOutput returns the output selector as expected by logger.SetLogOutput
func (c *Config) LogOutput() rune {
	return rune(c.Log.Output[0])
}

// ApplyLogging configures the package logger from the log section
func (c *Config) ApplyLogging() error {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	logger.SetShowDateTime(c.Log.ShowDateTime)
	if c.Log.File != "" {
		logger.SetLogFile(c.Log.File)
	}
	return logger.SetLogOutput(c.LogOutput())
}

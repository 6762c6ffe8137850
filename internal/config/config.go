package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/ivlev/letterbox/internal/edges"
)

type Config struct {
	InputPath  string `mapstructure:"-" yaml:"-"`
	OutputPath string `mapstructure:"-" yaml:"-"`

	Detector  string  `mapstructure:"detector" yaml:"detector"`
	Low       float64 `mapstructure:"low" yaml:"low"`
	High      float64 `mapstructure:"high" yaml:"high"`
	Radius    float64 `mapstructure:"radius" yaml:"radius"`
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`

	Workers  int  `mapstructure:"workers" yaml:"workers"`
	Parallel bool `mapstructure:"parallel" yaml:"parallel"`
	DPI      int  `mapstructure:"dpi" yaml:"dpi"`
	Quality  int  `mapstructure:"quality" yaml:"quality"`

	ReportPath string `mapstructure:"report" yaml:"report"`
	EdgesDir   string `mapstructure:"edges_dir" yaml:"edges_dir"`
	ShowStats  bool   `mapstructure:"stats" yaml:"stats"`
	Verbose    bool   `mapstructure:"verbose" yaml:"verbose"`
}

// EnvPrefix namespaces environment overrides, e.g. LETTERBOX_DETECTOR.
const EnvPrefix = "LETTERBOX"

// Default returns the built-in settings.
func Default() *Config {
	p := edges.DefaultParams()
	return &Config{
		Detector:  "canny",
		Low:       p.Low,
		High:      p.High,
		Radius:    p.Radius,
		Threshold: p.Threshold,
		Workers:   runtime.NumCPU(),
		DPI:       150,
		Quality:   95,
	}
}

// Load layers the defaults, the YAML file at path (if not empty) and
// LETTERBOX_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("detector", def.Detector)
	v.SetDefault("low", def.Low)
	v.SetDefault("high", def.High)
	v.SetDefault("radius", def.Radius)
	v.SetDefault("threshold", def.Threshold)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("parallel", def.Parallel)
	v.SetDefault("dpi", def.DPI)
	v.SetDefault("quality", def.Quality)
	v.SetDefault("report", def.ReportPath)
	v.SetDefault("edges_dir", def.EdgesDir)
	v.SetDefault("stats", def.ShowStats)
	v.SetDefault("verbose", def.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the ranges the pipeline depends on.
func (c *Config) Validate() error {
	if err := c.EdgeParams().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid config: workers must be positive, got %d", c.Workers)
	}
	if c.DPI < 1 {
		return fmt.Errorf("invalid config: dpi must be positive, got %d", c.DPI)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("invalid config: quality must be in 1..100, got %d", c.Quality)
	}
	return nil
}

// EdgeParams returns the detector settings.
func (c *Config) EdgeParams() edges.Params {
	return edges.Params{
		Low:       c.Low,
		High:      c.High,
		Radius:    c.Radius,
		Threshold: c.Threshold,
	}
}

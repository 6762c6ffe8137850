package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := Default()
	if cfg.Detector != def.Detector || cfg.Low != def.Low || cfg.High != def.High {
		t.Errorf("expected defaults %+v, got %+v", def, cfg)
	}
	if cfg.Workers != def.Workers || cfg.Quality != def.Quality || cfg.DPI != def.DPI {
		t.Errorf("expected defaults %+v, got %+v", def, cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letterbox.yaml")
	data := []byte("detector: sobel\nthreshold: 45\nworkers: 2\nparallel: true\nedges_dir: /tmp/edges\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Detector != "sobel" || cfg.Threshold != 45 || cfg.Workers != 2 || !cfg.Parallel {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.EdgesDir != "/tmp/edges" {
		t.Errorf("expected edges_dir /tmp/edges, got %q", cfg.EdgesDir)
	}
	// Untouched keys keep their defaults.
	if cfg.High != Default().High {
		t.Errorf("expected default high, got %f", cfg.High)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("LETTERBOX_DETECTOR", "sobel")
	t.Setenv("LETTERBOX_QUALITY", "80")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Detector != "sobel" || cfg.Quality != 80 {
		t.Errorf("environment not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("low: 0.9\nhigh: 0.1\n"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected validation error for inverted thresholds")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"workers", func(c *Config) { c.Workers = 0 }},
		{"dpi", func(c *Config) { c.DPI = 0 }},
		{"quality", func(c *Config) { c.Quality = 101 }},
		{"radius", func(c *Config) { c.Radius = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

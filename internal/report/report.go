package report

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/letterbox/internal/border"
)

// Report lists the crop decisions of one run
type Report struct {
	Version  string  `yaml:"version"`
	Detector string  `yaml:"detector"`
	Entries  []Entry `yaml:"entries"`
}

// Entry describes a single page
type Entry struct {
	Page    int            `yaml:"page"`
	Input   string         `yaml:"input"`
	Output  string         `yaml:"output"`
	Width   int            `yaml:"width"`
	Height  int            `yaml:"height"`
	Offsets border.Offsets `yaml:"offsets"`
	Crop    border.Rect    `yaml:"crop"`
	Cropped bool           `yaml:"cropped"` // false when the crop was a no-op
}

// WriteReport writes a report to a YAML file
func WriteReport(r *Report, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadReport reads a report from a YAML file
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	return &r, nil
}

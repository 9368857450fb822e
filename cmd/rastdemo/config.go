package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/math/f32"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/rast"
)

// Config describes what the demo renders. It is read from an optional YAML
// file; command-line flags override it.
type Config struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Samples int    `yaml:"samples"`
	Scene   string `yaml:"scene"`
	Filter  string `yaml:"filter"`
	Workers int    `yaml:"workers"`

	// Angle is the rotation of the first frame in degrees, Step the
	// rotation added per frame.
	Angle  float32 `yaml:"angle"`
	Step   float32 `yaml:"step"`
	Frames int     `yaml:"frames"`

	Output  string `yaml:"output"`
	Upscale int    `yaml:"upscale"`
}

// defaultConfig renders the RGB triangle at 100x100 with 4 samples,
// magnified 4 times.
func defaultConfig() Config {
	return Config{
		Width:   100,
		Height:  100,
		Samples: 4,
		Scene:   "triangle",
		Filter:  "anisotropic",
		Workers: 1,
		Step:    10,
		Frames:  1,
		Output:  "rastdemo.png",
		Upscale: 4,
	}
}

// loadConfig reads a YAML scene file over cfg. Keys missing from the file
// keep their current values.
func loadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// validate checks the fields the pipeline does not.
func (c *Config) validate() error {
	if c.Frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", c.Frames)
	}
	if c.Upscale < 1 {
		return fmt.Errorf("upscale must be at least 1, got %d", c.Upscale)
	}
	if c.Output == "" {
		return errors.New("output path is empty")
	}
	if _, err := samplePattern(c.Samples); err != nil {
		return err
	}
	return nil
}

// samplePattern returns the ordered grid for 1, 4 or 16 samples.
func samplePattern(n int) ([]f32.Vec2, error) {
	switch n {
	case 1:
		return rast.Pattern1x(), nil
	case 4:
		return rast.Pattern4x(), nil
	case 16:
		return rast.Pattern16x(), nil
	default:
		return nil, fmt.Errorf("unsupported sample count %d (want 1, 4 or 16)", n)
	}
}

// outputPath numbers the output file when rendering more than one frame:
// out.png becomes out_000.png, out_001.png and so on.
func outputPath(base string, frame, frames int) string {
	if frames <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(base, ext), frame, ext)
}

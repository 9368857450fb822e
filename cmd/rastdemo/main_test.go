package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := []byte("width: 64\nheight: 48\nsamples: 16\nscene: cube\nframes: 3\nangle: 15\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := defaultConfig()
	if err := loadConfig(path, &cfg); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Width != 64 || cfg.Height != 48 || cfg.Samples != 16 {
		t.Errorf("size/samples = %dx%d/%d, want 64x48/16", cfg.Width, cfg.Height, cfg.Samples)
	}
	if cfg.Scene != "cube" || cfg.Frames != 3 || cfg.Angle != 15 {
		t.Errorf("scene/frames/angle = %s/%d/%v", cfg.Scene, cfg.Frames, cfg.Angle)
	}
	// Missing keys keep their defaults.
	if cfg.Upscale != 4 || cfg.Output != "rastdemo.png" {
		t.Errorf("defaults lost: upscale %d, output %q", cfg.Upscale, cfg.Output)
	}

	if err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), &cfg); err == nil {
		t.Error("loadConfig of a missing file should fail")
	}
}

func TestParseFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("scene: floor\nsamples: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, verbose, err := parseFlags([]string{"-config", path, "-samples", "4", "-v"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if !verbose {
		t.Error("-v should enable verbose logging")
	}
	if cfg.Scene != "floor" {
		t.Errorf("scene = %q, want floor from the file", cfg.Scene)
	}
	if cfg.Samples != 4 {
		t.Errorf("samples = %d, want 4 from the flag", cfg.Samples)
	}

	if _, _, err := parseFlags([]string{"-samples", "3"}); err == nil {
		t.Error("3 samples should be rejected")
	}
	if _, _, err := parseFlags([]string{"-frames", "0"}); err == nil {
		t.Error("0 frames should be rejected")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		base          string
		frame, frames int
		want          string
	}{
		{"out.png", 0, 1, "out.png"},
		{"out.png", 0, 3, "out_000.png"},
		{"dir/out.jpg", 12, 20, "dir/out_012.jpg"},
		{"noext", 1, 2, "noext_001"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.base, tt.frame, tt.frames); got != tt.want {
			t.Errorf("outputPath(%q, %d, %d) = %q, want %q", tt.base, tt.frame, tt.frames, got, tt.want)
		}
	}
}

func TestUpscale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})

	if upscale(src, 1) != image.Image(src) {
		t.Error("factor 1 should return the source")
	}
	dst := upscale(src, 3)
	if b := dst.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("bounds = %v, want 6x3", b)
	}
	if r, _, _, _ := dst.At(5, 2).RGBA(); r != 0xffff {
		t.Errorf("upscaled pixel (5, 2) red = %#x, want 0xffff", r)
	}
	if r, _, _, _ := dst.At(2, 0).RGBA(); r != 0 {
		t.Errorf("upscaled pixel (2, 0) red = %#x, want 0", r)
	}
}

func TestRun_Scenes(t *testing.T) {
	for _, name := range []string{"triangle", "cube", "floor"} {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Scene = name
			cfg.Width, cfg.Height = 48, 32
			cfg.Frames = 2
			cfg.Upscale = 2
			cfg.Workers = 2
			cfg.Output = filepath.Join(t.TempDir(), name+".png")

			if err := run(cfg); err != nil {
				t.Fatalf("run: %v", err)
			}
			for i := range 2 {
				if _, err := os.Stat(outputPath(cfg.Output, i, 2)); err != nil {
					t.Errorf("frame %d not written: %v", i, err)
				}
			}
		})
	}

	cfg := defaultConfig()
	cfg.Scene = "teapot"
	cfg.Output = filepath.Join(t.TempDir(), "x.png")
	if err := run(cfg); err == nil {
		t.Error("unknown scene should fail")
	}
}

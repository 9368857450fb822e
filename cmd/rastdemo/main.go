// Command rastdemo renders sample scenes with the rast pipeline.
//
// Usage:
//
//	rastdemo [-config scene.yaml] [-scene triangle|cube|floor] [-samples 1|4|16]
//	         [-width W] [-height H] [-frames N] [-output out.png] [-upscale K]
//
// Flags override the values of the YAML file.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/draw"

	"github.com/gogpu/rast"
	intImage "github.com/gogpu/rast/internal/image"
)

func main() {
	cfg, verbose, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if verbose {
		rast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	if err := run(cfg); err != nil {
		log.Fatalf("rastdemo: %v", err)
	}
}

// parseFlags builds the configuration: defaults, then the YAML file, then
// the flags given on the command line.
func parseFlags(args []string) (Config, bool, error) {
	def := defaultConfig()
	fs := flag.NewFlagSet("rastdemo", flag.ContinueOnError)
	var (
		path    = fs.String("config", "", "YAML scene file")
		verbose = fs.Bool("v", false, "debug logging")
		width   = fs.Int("width", def.Width, "image width")
		height  = fs.Int("height", def.Height, "image height")
		samples = fs.Int("samples", def.Samples, "samples per pixel: 1, 4 or 16")
		name    = fs.String("scene", def.Scene, "scene: triangle, cube or floor")
		filter  = fs.String("filter", def.Filter, "floor texture filter: nearest, linear or anisotropic")
		workers = fs.Int("workers", def.Workers, "rasterizer workers; more than 1 renders tiles in parallel")
		angle   = fs.Float64("angle", float64(def.Angle), "rotation of the first frame in degrees")
		step    = fs.Float64("step", float64(def.Step), "rotation per frame in degrees")
		frames  = fs.Int("frames", def.Frames, "number of frames")
		output  = fs.String("output", def.Output, "output file (.png or .jpg)")
		upscale = fs.Int("upscale", def.Upscale, "nearest-neighbour magnification of the output")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, false, err
	}

	cfg := def
	if *path != "" {
		if err := loadConfig(*path, &cfg); err != nil {
			return Config{}, false, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "samples":
			cfg.Samples = *samples
		case "scene":
			cfg.Scene = *name
		case "filter":
			cfg.Filter = *filter
		case "workers":
			cfg.Workers = *workers
		case "angle":
			cfg.Angle = float32(*angle)
		case "step":
			cfg.Step = float32(*step)
		case "frames":
			cfg.Frames = *frames
		case "output":
			cfg.Output = *output
		case "upscale":
			cfg.Upscale = *upscale
		}
	})
	return cfg, *verbose, cfg.validate()
}

// run renders every frame of the configured scene and saves it.
func run(cfg Config) error {
	offsets, err := samplePattern(cfg.Samples)
	if err != nil {
		return err
	}
	state := rast.DefaultState()
	state.Width, state.Height = cfg.Width, cfg.Height
	state.SampleOffsets = offsets

	p, err := rast.NewPipeline(state, rast.WithWorkers(cfg.Workers))
	if err != nil {
		return err
	}
	defer p.Close()

	sc, err := newScene(&cfg)
	if err != nil {
		return err
	}
	if err := sc.setup(p); err != nil {
		return fmt.Errorf("scene %s: %w", cfg.Scene, err)
	}

	bar := progressbar.Default(int64(cfg.Frames), "rendering "+cfg.Scene)
	defer func() { _ = bar.Close() }()

	var total rast.Stats
	for i := range cfg.Frames {
		sc.frame(p, cfg.Angle+float32(i)*cfg.Step)
		p.Clear(sc.clearColor(), 1)
		if err := p.Render(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		img, err := p.PresentImage()
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		out := outputPath(cfg.Output, i, cfg.Frames)
		if err := intImage.SaveImage(out, upscale(img, cfg.Upscale)); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		st := p.Stats()
		total.Triangles += st.Triangles
		total.PixelsShaded += st.PixelsShaded
		_ = bar.Add(1)
	}

	log.Printf("rendered %d frame(s) of %s at %dx%d, %d samples: %d triangles, %d pixels shaded",
		cfg.Frames, cfg.Scene, cfg.Width, cfg.Height, cfg.Samples, total.Triangles, total.PixelsShaded)
	return nil
}

// upscale magnifies img by an integer factor without filtering.
func upscale(img *image.NRGBA, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

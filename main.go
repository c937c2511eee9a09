package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

func main() {
	sceneName := flag.String("scene", "default", "Preset name, path to a YAML scene, or - to read YAML from stdin")
	configPath := flag.String("config", "", "Optional render config file (gcfg)")
	width := flag.Int("width", 0, "Image width for presets (0 keeps the preset's)")
	height := flag.Int("height", 0, "Image height for presets (0 keeps the preset's)")
	outPath := flag.String("out", "", "Output file (overrides the config's Path)")
	stream := flag.Bool("stream", false, "Write 'x y r g b' lines to stdout instead of an image")
	printConfig := flag.Bool("example-config", false, "Print an example render config and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Phong Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, p := range scene.Presets() {
			fmt.Printf("  %-12s %s\n", p.Name, p.Description)
		}
		return
	}
	if *printConfig {
		fmt.Println(loaders.ExampleRenderConfig)
		return
	}

	// pixel data owns stdout in stream mode
	var logger core.Logger = renderer.NewDefaultLogger()
	if *stream {
		logger = &renderer.WriterLogger{W: os.Stderr}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, runOptions{
		scene:      *sceneName,
		configPath: *configPath,
		width:      *width,
		height:     *height,
		outPath:    *outPath,
		stream:     *stream,
	}, os.Stdin, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runOptions struct {
	scene      string
	configPath string
	width      int
	height     int
	outPath    string
	stream     bool
}

func run(ctx context.Context, opts runOptions, stdin io.Reader, stdout io.Writer, logger core.Logger) error {
	cfg := loaders.DefaultRenderConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = loaders.LoadRenderConfig(opts.configPath); err != nil {
			return err
		}
	}
	if opts.outPath != "" {
		cfg.Output.Path = opts.outPath
		if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.outPath)), "."); ext == "png" || ext == "ppm" {
			cfg.Output.Format = ext
		}
	}

	s, err := createScene(opts.scene, opts.width, opts.height, stdin)
	if err != nil {
		return err
	}
	applyConfig(s, cfg)

	camera := s.NewCamera()
	options := renderer.DefaultRenderOptions()
	options.TileSize = cfg.Render.TileSize
	options.Shuffle = cfg.Render.Shuffle
	options.NumWorkers = cfg.Render.Workers
	options = s.Rendering.Options(options)

	logger.Printf("Rendering %s at %dx%d...\n", opts.scene, camera.Width(), camera.Height())
	r := renderer.NewRenderer(camera, s.World, options, logger)

	if opts.stream {
		return streamPixels(ctx, r, stdout)
	}

	canvas := renderer.NewCanvas(camera.Width(), camera.Height())
	pixels, errs := r.RenderAsync(ctx)
	canvas.Collect(pixels)
	if err := <-errs; err != nil {
		return err
	}

	if err := writeImage(canvas, cfg.Output); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", cfg.Output.Path)
	return nil
}

// createScene resolves a preset name, a YAML file path or "-" for stdin
func createScene(name string, width, height int, stdin io.Reader) (*scene.Scene, error) {
	switch {
	case name == "":
		return nil, errors.New("no scene given")
	case name == "-":
		return scene.Parse(stdin)
	case strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml"):
		return scene.Load(name)
	}
	return scene.NewPreset(name, width, height)
}

// applyConfig lets the render config override the scene's sampling settings
func applyConfig(s *scene.Scene, cfg *loaders.RenderConfig) {
	if cfg.Render.Antialias >= 0 {
		s.Rendering.Antialias = cfg.Render.Antialias
		s.Camera.Antialias = cfg.Render.Antialias
	}
	if cfg.Render.MaxBounces >= 0 {
		s.Rendering.MaxBounces = cfg.Render.MaxBounces
		s.Camera.MaxBounces = cfg.Render.MaxBounces
	}
}

// streamPixels writes one "x y r g b" line per pixel as it completes. A
// failed write cancels the render.
func streamPixels(ctx context.Context, r *renderer.Renderer, stdout io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := bufio.NewWriter(stdout)
	pixels, errs := r.RenderAsync(ctx)

	var writeErr error
	for p := range pixels {
		if writeErr != nil {
			continue
		}
		if _, writeErr = fmt.Fprintf(out, "%d %d %g %g %g\n", p.X, p.Y, p.Color.R(), p.Color.G(), p.Color.B()); writeErr != nil {
			cancel()
		}
	}
	renderErr := <-errs
	if writeErr != nil {
		return fmt.Errorf("failed to write pixels: %w", writeErr)
	}
	if renderErr != nil {
		return renderErr
	}
	return out.Flush()
}

func writeImage(canvas *renderer.Canvas, output loaders.OutputSection) error {
	if dir := filepath.Dir(output.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(output.Path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if output.Format == "ppm" {
		err = canvas.WritePPM(file)
	} else {
		err = canvas.WritePNG(file)
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("error saving %s: %w", output.Format, err)
	}
	return nil
}

package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// RenderingSpec carries the per-scene rendering settings
type RenderingSpec struct {
	MaxBounces    int          // Recursion limit for reflection and refraction
	RandomizeRays bool         // Render tiles in random order
	Antialias     int          // Samples per pixel axis
	PartialRender []PixelCoord // When set, only these pixels are rendered
}

// DefaultRenderingSpec returns the settings used when a scene gives none
func DefaultRenderingSpec() RenderingSpec {
	return RenderingSpec{
		MaxBounces:    64,
		RandomizeRays: false,
		Antialias:     0,
	}
}

// RenderOptions configures how a frame is scheduled
type RenderOptions struct {
	TileSize   int          // Size of each square tile in pixels
	Shuffle    bool         // Render tiles in random order
	NumWorkers int          // Number of parallel workers (0 = use CPU count)
	Partial    []PixelCoord // Render only these pixels; nil renders the full frame
	Seed       int64        // Seed for tile shuffling (0 = seed from the clock)
}

// DefaultRenderOptions returns sensible default values
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		TileSize:   16,
		Shuffle:    false,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Options derives scheduling options from the scene settings
func (rs RenderingSpec) Options(base RenderOptions) RenderOptions {
	base.Shuffle = base.Shuffle || rs.RandomizeRays
	if rs.PartialRender != nil {
		base.Partial = rs.PartialRender
	}
	return base
}

// Renderer schedules the pixels of one frame over a worker pool
type Renderer struct {
	camera  *Camera
	world   *world.World
	options RenderOptions
	logger  core.Logger
}

// NewRenderer creates a renderer for a camera and world
func NewRenderer(camera *Camera, w *world.World, options RenderOptions, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if options.Seed == 0 {
		options.Seed = time.Now().UnixNano()
	}
	return &Renderer{
		camera:  camera,
		world:   w,
		options: options,
		logger:  logger,
	}
}

// Tiles returns the tile grid in the order it will be rendered
func (r *Renderer) Tiles() []*Tile {
	tiles := NewTileGrid(r.camera.Width(), r.camera.Height(), r.options.TileSize)
	if r.options.Shuffle {
		ShuffleTiles(tiles, rand.New(rand.NewSource(r.options.Seed)))
	}
	return tiles
}

// tasks returns every pixel to render in scheduling order
func (r *Renderer) tasks() ([]PixelCoord, error) {
	if r.options.Partial == nil {
		return PixelTasks(r.Tiles()), nil
	}

	tasks := make([]PixelCoord, len(r.options.Partial))
	for i, p := range r.options.Partial {
		if p.X < 0 || p.Y < 0 || p.X >= r.camera.Width() || p.Y >= r.camera.Height() {
			return nil, fmt.Errorf("partial render pixel (%d, %d) outside %dx%d image",
				p.X, p.Y, r.camera.Width(), r.camera.Height())
		}
		tasks[i] = p
	}
	if r.options.Shuffle {
		random := rand.New(rand.NewSource(r.options.Seed))
		random.Shuffle(len(tasks), func(i, j int) { tasks[i], tasks[j] = tasks[j], tasks[i] })
	}
	return tasks, nil
}

// Render renders every scheduled pixel and sends each result on out, in no
// particular order. It returns once every pixel has been delivered. If ctx
// is cancelled first, rendering stops and the context error is returned.
func (r *Renderer) Render(ctx context.Context, out chan<- Pixel) (RenderStats, error) {
	tasks, err := r.tasks()
	if err != nil {
		return RenderStats{}, err
	}

	start := time.Now()
	pool := NewWorkerPool(r.camera, r.world, r.options.NumWorkers, len(tasks))
	r.logger.Printf("Rendering %d pixels with %d workers...\n", len(tasks), pool.GetNumWorkers())

	pool.Start(ctx)
	for _, task := range tasks {
		pool.SubmitTask(task)
	}
	go pool.Stop()

	delivered := 0
	for pixel := range pool.Results() {
		select {
		case out <- pixel:
			delivered++
		case <-ctx.Done():
			r.logger.Printf("Rendering cancelled after %d of %d pixels\n", delivered, len(tasks))
			return NewRenderStats(delivered, time.Since(start)), fmt.Errorf("render cancelled: %w", ctx.Err())
		}
	}

	stats := NewRenderStats(delivered, time.Since(start))
	if delivered < len(tasks) {
		r.logger.Printf("Rendering cancelled after %d of %d pixels\n", delivered, len(tasks))
		return stats, fmt.Errorf("render cancelled: %w", ctx.Err())
	}

	r.logger.Printf("Rendered %s\n", stats)
	return stats, nil
}

// RenderAsync runs Render in the background. The pixel channel is closed
// when rendering ends; the error channel then yields at most one error.
func (r *Renderer) RenderAsync(ctx context.Context) (<-chan Pixel, <-chan error) {
	pixels := make(chan Pixel, r.options.TileSize*r.options.TileSize)
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		defer close(pixels)

		if _, err := r.Render(ctx, pixels); err != nil {
			errChan <- err
		}
	}()

	return pixels, errChan
}

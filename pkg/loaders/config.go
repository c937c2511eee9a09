package loaders

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"
)

// ExampleRenderConfig documents every key accepted by LoadRenderConfig
const ExampleRenderConfig = `[Render]

# Square tile edge in pixels. Tiles are the unit of scheduling order.
TileSize = 16

# Render tiles in random order.
Shuffle = false

# Number of render workers. 0 uses one per CPU.
Workers = 0

# Rays per pixel axis. 0 or 1 casts a single ray through the pixel centre.
# Overrides the scene's antialias setting when set.
# Antialias = 2

# Reflection and refraction recursion limit.
# Overrides the scene's max_bounces setting when set.
# MaxBounces = 8

[Output]

# File to write. The extension is ignored; Format decides the encoding.
Path = render.png

# One of png | ppm
Format = png`

// RenderSection holds scheduling settings
type RenderSection struct {
	TileSize   int
	Shuffle    bool
	Workers    int
	Antialias  int // -1 keeps the scene's value
	MaxBounces int // -1 keeps the scene's value
}

// OutputSection holds output file settings
type OutputSection struct {
	Path   string
	Format string
}

// RenderConfig is the gcfg file layout read by LoadRenderConfig
type RenderConfig struct {
	Render RenderSection
	Output OutputSection
}

// DefaultRenderConfig returns the values used for keys a file leaves out
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		Render: RenderSection{
			TileSize:   16,
			Workers:    0,
			Antialias:  -1,
			MaxBounces: -1,
		},
		Output: OutputSection{
			Path:   "render.png",
			Format: "png",
		},
	}
}

// CheckInit validates the configuration after it has been read
func (rc *RenderConfig) CheckInit() error {
	switch {
	case rc.Render.TileSize <= 0:
		return fmt.Errorf("invalid 'TileSize' value %d", rc.Render.TileSize)
	case rc.Render.Workers < 0:
		return fmt.Errorf("invalid 'Workers' value %d", rc.Render.Workers)
	case rc.Render.Antialias < -1:
		return fmt.Errorf("invalid 'Antialias' value %d", rc.Render.Antialias)
	case rc.Render.MaxBounces < -1:
		return fmt.Errorf("invalid 'MaxBounces' value %d", rc.Render.MaxBounces)
	case rc.Output.Path == "":
		return fmt.Errorf("invalid/non-existent 'Path' value")
	}

	rc.Output.Format = strings.ToLower(rc.Output.Format)
	if rc.Output.Format != "png" && rc.Output.Format != "ppm" {
		return fmt.Errorf("invalid 'Format' value %q, expected png or ppm", rc.Output.Format)
	}
	return nil
}

// LoadRenderConfig reads a gcfg render configuration file over the defaults
func LoadRenderConfig(path string) (*RenderConfig, error) {
	rc := DefaultRenderConfig()
	if err := gcfg.ReadFileInto(rc, path); err != nil {
		return nil, fmt.Errorf("failed to read render config: %w", err)
	}
	if err := rc.CheckInit(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rc, nil
}

// ParseRenderConfig reads a gcfg render configuration from a string
func ParseRenderConfig(text string) (*RenderConfig, error) {
	rc := DefaultRenderConfig()
	if err := gcfg.ReadStringInto(rc, text); err != nil {
		return nil, fmt.Errorf("failed to parse render config: %w", err)
	}
	if err := rc.CheckInit(); err != nil {
		return nil, err
	}
	return rc, nil
}

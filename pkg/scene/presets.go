package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// Preset is a scene built in code
type Preset struct {
	Name        string
	Description string
	build       func(cam renderer.CameraConfig) *Scene
}

var presets = map[string]Preset{
	"default": {
		Name:        "default",
		Description: "Two nested spheres lit by a single point light",
		build:       newDefaultScene,
	},
	"reflections": {
		Name:        "reflections",
		Description: "Glass and mirror spheres over a checkered floor with an area light",
		build:       newReflectionsScene,
	},
	"patterns": {
		Name:        "patterns",
		Description: "One object for every pattern kind",
		build:       newPatternsScene,
	},
	"cubes": {
		Name:        "cubes",
		Description: "A table of cubes in a cube room",
		build:       newCubesScene,
	},
}

// PresetNames returns the names of the built-in scenes in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presets returns the built-in scenes in name order
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, name := range PresetNames() {
		out = append(out, presets[name])
	}
	return out
}

// NewPreset builds a built-in scene rendered at width x height. Zero sizes
// keep the preset's own resolution.
func NewPreset(name string, width, height int) (*Scene, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}

	cam := renderer.DefaultCameraConfig()
	if width > 0 {
		cam.Width = width
	}
	if height > 0 {
		cam.Height = height
	}
	return p.build(cam), nil
}

func newScene(cam renderer.CameraConfig, from, to core.Tup, fov float64, w *world.World) *Scene {
	rendering := renderer.DefaultRenderingSpec()
	rendering.MaxBounces = 5

	cam.FOV = fov
	cam.Transform = core.ViewTransform(from, to, core.Vector(0, 1, 0))
	cam.MaxBounces = rendering.MaxBounces
	cam.Antialias = rendering.Antialias
	return &Scene{World: w, Camera: cam, Rendering: rendering}
}

func newDefaultScene(cam renderer.CameraConfig) *Scene {
	return newScene(cam, core.Point(0, 1.5, -5), core.Point(0, 0, 0), math.Pi/3, world.NewDefaultWorld())
}

func newReflectionsScene(cam renderer.CameraConfig) *Scene {
	w := world.NewWorld()
	w.Background = core.Color(0.1, 0.1, 0.15)

	floor := geometry.NewPlane()
	floor.Material.Pattern = material.NewCheckerPattern(core.Color(0.9, 0.9, 0.9), core.Color(0.2, 0.2, 0.2))
	floor.Material.Reflective = 0.2
	floor.Material.Specular = 0
	w.AddObject(floor)

	glass := geometry.NewGlassSphere()
	glass.SetTransform(core.Translation(-0.6, 1, 0.6))
	glass.Material.Color = core.Color(0.05, 0.05, 0.1)
	glass.Material.Diffuse = 0.1
	glass.Material.Reflective = 0.9
	glass.Material.Shininess = 300
	w.AddObject(glass)

	mirror := geometry.NewSphere()
	mirror.SetTransform(core.Chain(core.Translation(1.5, 0.5, -0.5), core.Scaling(0.5, 0.5, 0.5)))
	mirror.Material.Color = core.Color(0.1, 0.1, 0.1)
	mirror.Material.Diffuse = 0.2
	mirror.Material.Reflective = 0.95
	w.AddObject(mirror)

	red := geometry.NewSphere()
	red.SetTransform(core.Chain(core.Translation(-1.5, 0.33, -0.75), core.Scaling(0.33, 0.33, 0.33)))
	red.Material.Color = core.Color(1, 0.2, 0.1)
	red.Material.Diffuse = 0.7
	red.Material.Specular = 0.3
	w.AddObject(red)

	w.AddLight(lights.NewAreaLight(
		core.Point(-5, 8, -5),
		core.Vector(2, 0, 0), 4,
		core.Vector(0, 2, 0), 4,
		core.White,
	))

	return newScene(cam, core.Point(0, 1.5, -5), core.Point(0, 1, 0), math.Pi/3, w)
}

func newPatternsScene(cam renderer.CameraConfig) *Scene {
	w := world.NewWorld()

	floor := geometry.NewPlane()
	floor.Material.Pattern = material.NewRingPattern(core.Color(0.8, 0.8, 0.8), core.Color(0.4, 0.5, 0.6))
	floor.Material.Specular = 0
	w.AddObject(floor)

	stripe := material.NewStripePattern(core.Color(1, 0.5, 0), core.Color(0.2, 0.2, 0.8))
	stripe.SetTransform(core.Chain(core.RotationZ(math.Pi/4), core.Scaling(0.2, 0.2, 0.2)))
	gradient := material.NewGradientPattern(core.Color(1, 0, 0), core.Color(0, 0, 1))
	gradient.SetTransform(core.Chain(core.Translation(-1, 0, 0), core.Scaling(2, 1, 1)))
	checker := material.NewCheckerPattern(core.White, core.Black)
	checker.SetTransform(core.Scaling(0.25, 0.25, 0.25))
	mandelbrot := material.NewMandelbrotPattern(core.Color(0.2, 0.9, 0.4))
	mandelbrot.SetTransform(core.Chain(core.Scaling(0.75, 0.75, 0.75), core.Translation(1.33, 0, 1)))
	uv := material.NewUVPattern(material.SphericalMap, material.UVChecker{
		Width: 16, Height: 8, A: core.Color(0.9, 0.9, 0.2), B: core.Color(0.2, 0.3, 0.9),
	})

	for i, p := range []material.Pattern{stripe, gradient, checker, uv} {
		s := geometry.NewSphere()
		s.SetTransform(core.Chain(core.Translation(-2.25+float64(i)*1.5, 0.6, 0), core.Scaling(0.6, 0.6, 0.6)))
		s.Material.Pattern = p
		s.Material.Specular = 0.3
		w.AddObject(s)
	}

	panel := geometry.NewCube()
	panel.SetTransform(core.Chain(core.Translation(0, 1.5, 3), core.Scaling(3, 1.5, 0.05)))
	panel.Material.Pattern = mandelbrot
	panel.Material.Specular = 0
	w.AddObject(panel)

	w.AddLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))

	return newScene(cam, core.Point(0, 2, -6), core.Point(0, 0.75, 0), math.Pi/3, w)
}

func newCubesScene(cam renderer.CameraConfig) *Scene {
	w := world.NewWorld()

	room := geometry.NewCube()
	room.SetTransform(core.Chain(core.Translation(0, 5, 0), core.Scaling(10, 5, 10)))
	room.Material.Pattern = material.NewCheckerPattern(core.Color(0.8, 0.8, 0.8), core.Color(0.6, 0.6, 0.6))
	room.Material.Pattern.(*material.CheckerPattern).SetTransform(core.Scaling(0.05, 0.05, 0.05))
	room.Material.Specular = 0
	room.Material.Reflective = 0.05
	w.AddObject(room)

	top := geometry.NewCube()
	top.SetTransform(core.Chain(core.Translation(0, 1.55, 0), core.Scaling(1.5, 0.05, 1)))
	top.Material.Color = core.Color(0.55, 0.35, 0.2)
	top.Material.Reflective = 0.1
	w.AddObject(top)

	for _, x := range []float64{-1.4, 1.4} {
		for _, z := range []float64{-0.9, 0.9} {
			leg := geometry.NewCube()
			leg.SetTransform(core.Chain(core.Translation(x, 0.75, z), core.Scaling(0.05, 0.75, 0.05)))
			leg.Material.Color = core.Color(0.45, 0.3, 0.15)
			w.AddObject(leg)
		}
	}

	small := []struct {
		pos   core.Tup
		size  float64
		angle float64
		color core.Tup
	}{
		{core.Point(-0.8, 1.75, -0.3), 0.15, 0.3, core.Color(0.9, 0.2, 0.2)},
		{core.Point(0, 1.8, 0.2), 0.2, -0.5, core.Color(0.2, 0.8, 0.3)},
		{core.Point(0.9, 1.7, -0.4), 0.1, 1.1, core.Color(0.2, 0.3, 0.9)},
	}
	for _, c := range small {
		cube := geometry.NewCube()
		cube.SetTransform(core.Chain(
			core.Translation(c.pos.X, c.pos.Y, c.pos.Z),
			core.RotationY(c.angle),
			core.Scaling(c.size, c.size, c.size),
		))
		cube.Material.Color = c.color
		cube.Material.Reflective = 0.2
		w.AddObject(cube)
	}

	glass := geometry.NewCube()
	glass.SetTransform(core.Chain(core.Translation(0.5, 1.85, 0.6), core.RotationY(0.7), core.Scaling(0.25, 0.25, 0.25)))
	glass.Material = material.GlassMaterial()
	glass.Material.Color = core.Color(0.1, 0.1, 0.1)
	glass.Material.Diffuse = 0.1
	glass.Material.Reflective = 0.8
	w.AddObject(glass)

	w.AddLight(lights.NewPointLight(core.Point(0, 9.5, -5), core.Color(1, 1, 0.9)))

	return newScene(cam, core.Point(4, 4, -6), core.Point(0, 1.5, 0), math.Pi/3, w)
}

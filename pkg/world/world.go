package world

import (
	"cmp"
	"slices"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// ObjectID indexes World.Objects
type ObjectID int

// World is a fully resolved scene. It is read-only while rendering and may be
// shared by any number of goroutines.
type World struct {
	Objects    []*geometry.Object
	Lights     []lights.Light
	Background core.Tup

	// Sampler jitters area light samples; it must be safe for concurrent use
	Sampler core.Sampler
}

// NewWorld creates an empty world with a black background
func NewWorld() *World {
	return &World{
		Background: core.Black,
		Sampler:    core.GlobalSampler{},
	}
}

// NewDefaultWorld creates the two-sphere test world lit by a white point
// light at (-10, 10, -10)
func NewDefaultWorld() *World {
	w := NewWorld()

	outer := geometry.NewSphere()
	outer.Material.Color = core.Color(0.8, 1.0, 0.6)
	outer.Material.Diffuse = 0.7
	outer.Material.Specular = 0.2

	inner := geometry.NewSphere()
	inner.SetTransform(core.Scaling(0.5, 0.5, 0.5))

	w.AddObject(outer)
	w.AddObject(inner)
	w.AddLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))
	return w
}

// AddObject appends an object and returns its id
func (w *World) AddObject(o *geometry.Object) ObjectID {
	w.Objects = append(w.Objects, o)
	return ObjectID(len(w.Objects) - 1)
}

// AddLight appends a light
func (w *World) AddLight(l lights.Light) {
	w.Lights = append(w.Lights, l)
}

// Object returns the object with the given id
func (w *World) Object(id ObjectID) *geometry.Object {
	return w.Objects[id]
}

// Intersect tests the ray against every object and returns all hits sorted
// by ascending t. Shadow rays skip objects whose material lets light through.
func (w *World) Intersect(ray core.Ray, forShadow bool) []Intersection {
	xs := make([]Intersection, 0, len(w.Objects)*2)
	for i, o := range w.Objects {
		if forShadow && o.Material.LightThrough {
			continue
		}
		for _, h := range o.Intersect(ray) {
			xs = append(xs, Intersection{T: h.T, Object: ObjectID(i), U: h.U, V: h.V})
		}
	}

	slices.SortStableFunc(xs, func(a, b Intersection) int {
		return cmp.Compare(a.T, b.T)
	})
	return xs
}

package world

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// ShadowAt returns how much of the light is blocked at point, from 0 (fully
// lit) to 1 (fully blocked)
func (w *World) ShadowAt(point core.Tup, light lights.Light) float64 {
	switch l := light.(type) {
	case *lights.AreaLight:
		return w.areaShadow(point, l)
	default:
		return w.occlusion(point, light.Position())
	}
}

// occlusion casts a shadow ray from point toward target. The nearest
// occluder before the target blocks in proportion to its opacity.
func (w *World) occlusion(point, target core.Tup) float64 {
	v := target.Sub(point)
	distance := v.Magnitude()
	ray := core.NewRay(point, v.Normalize())

	xs := w.Intersect(ray, true)
	hit, ok := Hit(xs)
	if !ok || xs[hit].T >= distance {
		return 0
	}
	return 1 - w.Object(xs[hit].Object).Material.Transparency
}

// areaShadow averages occlusion over one jittered sample per light cell
func (w *World) areaShadow(point core.Tup, light *lights.AreaLight) float64 {
	sampler := w.Sampler
	if sampler == nil {
		sampler = core.ConstantSampler(0.5)
	}

	total := 0.0
	for v := 0; v < light.VSteps; v++ {
		for u := 0; u < light.USteps; u++ {
			target := light.PointOn(u, v, sampler.Get1D(), sampler.Get1D())
			total += w.occlusion(point, target)
		}
	}
	return total / float64(light.Samples())
}

package world

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ColorAt traces a ray into the world. remaining bounds the depth of
// reflection and refraction recursion.
func (w *World) ColorAt(ray core.Ray, remaining int) core.Tup {
	xs := w.Intersect(ray, false)
	hit, ok := Hit(xs)
	if !ok {
		return w.Background
	}
	return w.ShadeHit(w.PrepareComputations(hit, ray, xs), remaining)
}

// ShadeHit combines the direct Phong light at a hit with its reflected and
// refracted contributions. Surfaces that are both reflective and transparent
// blend the two by Schlick reflectance.
func (w *World) ShadeHit(comps Computations, remaining int) core.Tup {
	m := &comps.Object.Material

	shadows := make([]float64, len(w.Lights))
	for i, light := range w.Lights {
		shadows[i] = clamp01(w.ShadowAt(comps.Over, light) - m.Transparency)
	}
	surface := m.LightingAll(comps.Object.Inverse(), w.Lights, comps.Over, comps.Eye, comps.Normal, shadows)

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := Schlick(comps)
		return surface.
			Add(reflected.Mul(reflectance)).
			Add(refracted.Mul(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// ReflectedColor traces the mirror ray from the hit
func (w *World) ReflectedColor(comps Computations, remaining int) core.Tup {
	reflective := comps.Object.Material.Reflective
	if remaining <= 0 || reflective < core.Epsilon {
		return core.Black
	}

	ray := core.NewRay(comps.Over, comps.Reflect)
	return w.ColorAt(ray, remaining-1).Mul(reflective)
}

// RefractedColor traces the transmitted ray through the hit by Snell's law.
// Total internal reflection contributes black.
func (w *World) RefractedColor(comps Computations, remaining int) core.Tup {
	transparency := comps.Object.Material.Transparency
	if remaining <= 0 || transparency == 0 {
		return core.Black
	}

	nRatio := comps.N1 / comps.N2
	if math.IsInf(nRatio, 0) {
		return w.Background
	}

	cosI := comps.Eye.Dot(comps.Normal)
	sin2t := nRatio * nRatio * (1 - cosI*cosI)
	if sin2t > 1 || math.IsNaN(sin2t) {
		return core.Black
	}

	cosT := math.Sqrt(1 - sin2t)
	direction := comps.Normal.Mul(nRatio*cosI - cosT).Sub(comps.Eye.Mul(nRatio))
	ray := core.NewRay(comps.Under, direction)
	return w.ColorAt(ray, remaining-1).Mul(transparency)
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

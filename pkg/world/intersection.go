package world

import (
	"math"
	"slices"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
)

// surfaceOffset nudges over and under points off the surface to avoid acne
const surfaceOffset = 1e-4

// Intersection is a hit of a ray against a world object
type Intersection struct {
	T      float64
	Object ObjectID
	U, V   float64 // Barycentric coordinates for triangle hits
}

func (i Intersection) localHit() geometry.LocalHit {
	return geometry.LocalHit{T: i.T, U: i.U, V: i.V}
}

// Hit returns the index of the intersection with the smallest non-negative t.
// Negative intersections stay in the list for refraction bookkeeping.
func Hit(xs []Intersection) (int, bool) {
	index := -1
	best := math.Inf(1)
	for i, x := range xs {
		if x.T >= 0 && x.T < best {
			best = x.T
			index = i
		}
	}
	return index, index >= 0
}

// Computations holds the precomputed state needed to shade a hit
type Computations struct {
	T       float64
	ID      ObjectID
	Object  *geometry.Object
	Point   core.Tup
	Eye     core.Tup
	Normal  core.Tup
	Reflect core.Tup
	Over    core.Tup // Point nudged along the normal
	Under   core.Tup // Point nudged against the normal
	Inside  bool
	N1, N2  float64 // Refractive indices on the incoming and outgoing side
}

// PrepareComputations builds the shading state for xs[hitIndex]. xs must be
// the full sorted intersection list of ray so that n1 and n2 can be found by
// tracking which objects contain the hit.
func (w *World) PrepareComputations(hitIndex int, ray core.Ray, xs []Intersection) Computations {
	hit := xs[hitIndex]
	obj := w.Object(hit.Object)

	comps := Computations{
		T:      hit.T,
		ID:     hit.Object,
		Object: obj,
		Point:  ray.Position(hit.T),
		Eye:    ray.Direction.Neg(),
	}

	comps.Normal = obj.NormalAt(comps.Point, hit.localHit())
	if comps.Normal.Dot(comps.Eye) < 0 {
		comps.Inside = true
		comps.Normal = comps.Normal.Neg()
	}

	comps.Reflect = ray.Direction.Reflect(comps.Normal)
	comps.Over = comps.Point.Add(comps.Normal.Mul(surfaceOffset))
	comps.Under = comps.Point.Sub(comps.Normal.Mul(surfaceOffset))
	comps.N1, comps.N2 = w.refractiveIndices(hitIndex, xs)
	return comps
}

// refractiveIndices walks the intersections up to the hit, maintaining the
// stack of objects the ray is inside of
func (w *World) refractiveIndices(hitIndex int, xs []Intersection) (float64, float64) {
	n1, n2 := 1.0, 1.0
	containers := make([]ObjectID, 0, len(xs))

	top := func() float64 {
		if len(containers) == 0 {
			return 1.0
		}
		return w.Object(containers[len(containers)-1]).Material.RefractiveIndex
	}

	for i, x := range xs {
		if i == hitIndex {
			n1 = top()
		}

		if idx := slices.Index(containers, x.Object); idx >= 0 {
			containers = slices.Delete(containers, idx, idx+1)
		} else {
			containers = append(containers, x.Object)
		}

		if i == hitIndex {
			n2 = top()
			break
		}
	}
	return n1, n2
}

// Schlick approximates the Fresnel reflectance at the hit. It returns 1 under
// total internal reflection and when the outgoing index is zero.
func Schlick(comps Computations) float64 {
	if comps.N2 == 0 {
		return 1.0
	}

	cos := comps.Eye.Dot(comps.Normal)
	if comps.N1 > comps.N2 {
		n := comps.N1 / comps.N2
		sin2t := n * n * (1 - cos*cos)
		if sin2t > 1 {
			return 1.0
		}
		cos = math.Sqrt(1 - sin2t)
	}

	r0 := (comps.N1 - comps.N2) / (comps.N1 + comps.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}

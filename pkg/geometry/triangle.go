package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// triangleEpsilon is the smallest determinant treated as non-parallel
const triangleEpsilon = 1e-8

// Triangle is defined by three vertices in local space
type Triangle struct {
	P1, P2, P3 core.Tup
	E1, E2     core.Tup // Edges P2-P1 and P3-P1
	Normal     core.Tup // Flat face normal

	// Vertex normals, used when Smooth is set
	N1, N2, N3 core.Tup
	Smooth     bool
}

// NewTriangle creates a flat-shaded triangle
func NewTriangle(p1, p2, p3 core.Tup) *Triangle {
	e1 := p2.Sub(p1)
	e2 := p3.Sub(p1)
	return &Triangle{
		P1: p1, P2: p2, P3: p3,
		E1: e1, E2: e2,
		Normal: e2.Cross(e1).Normalize(),
	}
}

// NewSmoothTriangle creates a triangle whose normal is interpolated from its
// vertex normals
func NewSmoothTriangle(p1, p2, p3, n1, n2, n3 core.Tup) *Triangle {
	t := NewTriangle(p1, p2, p3)
	t.N1, t.N2, t.N3 = n1, n2, n3
	t.Smooth = true
	return t
}

func (t *Triangle) geometry() {}

// LocalIntersect uses the Möller-Trumbore algorithm and records the
// barycentric coordinates of the hit
func (t *Triangle) LocalIntersect(ray core.Ray) []LocalHit {
	dirCrossE2 := ray.Direction.Cross(t.E2)
	det := t.E1.Dot(dirCrossE2)
	if math.Abs(det) < triangleEpsilon {
		return nil
	}

	f := 1.0 / det
	p1ToOrigin := ray.Origin.Sub(t.P1)
	u := f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return nil
	}

	originCrossE1 := p1ToOrigin.Cross(t.E1)
	v := f * ray.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return nil
	}

	return []LocalHit{{T: f * t.E2.Dot(originCrossE1), U: u, V: v}}
}

// LocalNormal returns the face normal, or the barycentric blend of the vertex
// normals for a smooth triangle
func (t *Triangle) LocalNormal(_ core.Tup, hit LocalHit) core.Tup {
	if !t.Smooth {
		return t.Normal
	}
	return t.N2.Mul(hit.U).
		Add(t.N3.Mul(hit.V)).
		Add(t.N1.Mul(1 - hit.U - hit.V))
}

package geometry

import "github.com/df07/go-phong-raytracer/pkg/core"

// LocalHit is a root of a local-space intersection. U and V carry the
// barycentric coordinates of triangle hits and are zero otherwise.
type LocalHit struct {
	T, U, V float64
}

// Geometry is a primitive defined in its own canonical local space. The set
// of primitives is closed: implementations live in this package.
type Geometry interface {
	// LocalIntersect returns the roots of a local-space ray in ascending order
	LocalIntersect(ray core.Ray) []LocalHit
	// LocalNormal returns the outward normal at a local-space point
	LocalNormal(p core.Tup, hit LocalHit) core.Tup

	geometry()
}

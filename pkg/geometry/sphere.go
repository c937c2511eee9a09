package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Sphere is the unit sphere centered at the origin
type Sphere struct{}

func (s *Sphere) geometry() {}

// LocalIntersect solves the ray/sphere quadratic. A tangent ray yields two
// equal roots.
func (s *Sphere) LocalIntersect(ray core.Ray) []LocalHit {
	sphereToRay := ray.Origin.Sub(core.Point(0, 0, 0))

	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return []LocalHit{{T: t1}, {T: t2}}
}

// LocalNormal points from the center to p
func (s *Sphere) LocalNormal(p core.Tup, _ LocalHit) core.Tup {
	return core.Vector(p.X, p.Y, p.Z)
}

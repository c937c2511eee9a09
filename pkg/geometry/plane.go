package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// planeEpsilon is the smallest |direction.y| that still intersects the plane
const planeEpsilon = 1e-5

// Plane is the infinite xz plane through the origin
type Plane struct{}

func (p *Plane) geometry() {}

// LocalIntersect misses rays parallel to the plane, including rays lying in it
func (p *Plane) LocalIntersect(ray core.Ray) []LocalHit {
	if math.Abs(ray.Direction.Y) < planeEpsilon {
		return nil
	}
	return []LocalHit{{T: -ray.Origin.Y / ray.Direction.Y}}
}

// LocalNormal is constant +y
func (p *Plane) LocalNormal(_ core.Tup, _ LocalHit) core.Tup {
	return core.Vector(0, 1, 0)
}

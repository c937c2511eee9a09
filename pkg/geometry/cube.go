package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Cube is the axis-aligned cube spanning [-1,1] on every axis
type Cube struct{}

func (c *Cube) geometry() {}

// checkAxis returns the entry and exit distances of one slab
func checkAxis(origin, direction float64) (float64, float64) {
	tminNumerator := -1 - origin
	tmaxNumerator := 1 - origin

	var tmin, tmax float64
	if math.Abs(direction) >= core.Epsilon {
		tmin = tminNumerator / direction
		tmax = tmaxNumerator / direction
	} else {
		// parallel to the slab: inside it forever or never
		if origin < -1 || origin > 1 {
			return math.Inf(1), math.Inf(-1)
		}
		return math.Inf(-1), math.Inf(1)
	}

	if tmin > tmax {
		tmin, tmax = tmax, tmin
	}
	return tmin, tmax
}

// LocalIntersect intersects the three slabs
func (c *Cube) LocalIntersect(ray core.Ray) []LocalHit {
	xtmin, xtmax := checkAxis(ray.Origin.X, ray.Direction.X)
	ytmin, ytmax := checkAxis(ray.Origin.Y, ray.Direction.Y)
	ztmin, ztmax := checkAxis(ray.Origin.Z, ray.Direction.Z)

	tmin := max(xtmin, ytmin, ztmin)
	tmax := min(xtmax, ytmax, ztmax)
	if tmin > tmax {
		return nil
	}
	return []LocalHit{{T: tmin}, {T: tmax}}
}

// LocalNormal is the axis of the largest absolute component of p
func (c *Cube) LocalNormal(p core.Tup, _ LocalHit) core.Tup {
	ax, ay, az := math.Abs(p.X), math.Abs(p.Y), math.Abs(p.Z)
	maxc := max(ax, ay, az)

	switch maxc {
	case ax:
		return core.Vector(p.X, 0, 0)
	case ay:
		return core.Vector(0, p.Y, 0)
	default:
		return core.Vector(0, 0, p.Z)
	}
}

package core

// Ray represents a ray with an origin point and a direction vector
type Ray struct {
	Origin    Tup
	Direction Tup
}

// NewRay creates a new ray
func NewRay(origin, direction Tup) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Position returns the point at parameter t along the ray
func (r Ray) Position(t float64) Tup {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform returns a new ray with origin and direction multiplied by m
func (r Ray) Transform(m Mat) Ray {
	return Ray{Origin: m.MulTup(r.Origin), Direction: m.MulTup(r.Direction)}
}

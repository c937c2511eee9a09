package core

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for approximate float comparisons
const Epsilon = 1e-5

// Tup is a homogeneous 4-tuple. W=1 marks a point, W=0 a vector.
// Colors reuse the type with X, Y, Z as red, green, blue.
type Tup struct {
	X, Y, Z, W float64
}

// Point creates a point (W=1)
func Point(x, y, z float64) Tup {
	return Tup{X: x, Y: y, Z: z, W: 1}
}

// Vector creates a vector (W=0)
func Vector(x, y, z float64) Tup {
	return Tup{X: x, Y: y, Z: z, W: 0}
}

// Color creates an RGB color
func Color(r, g, b float64) Tup {
	return Tup{X: r, Y: g, Z: b, W: 0}
}

// Black is the zero color
var Black = Color(0, 0, 0)

// White is the unit color
var White = Color(1, 1, 1)

// IsPoint reports whether the tuple is a point
func (t Tup) IsPoint() bool {
	return t.W == 1
}

// IsVector reports whether the tuple is a vector
func (t Tup) IsVector() bool {
	return t.W == 0
}

// Add returns the componentwise sum
func (t Tup) Add(other Tup) Tup {
	return Tup{t.X + other.X, t.Y + other.Y, t.Z + other.Z, t.W + other.W}
}

// Sub returns the componentwise difference
func (t Tup) Sub(other Tup) Tup {
	return Tup{t.X - other.X, t.Y - other.Y, t.Z - other.Z, t.W - other.W}
}

// Mul scales every component by a scalar
func (t Tup) Mul(scalar float64) Tup {
	return Tup{t.X * scalar, t.Y * scalar, t.Z * scalar, t.W * scalar}
}

// Div divides every component by a scalar
func (t Tup) Div(scalar float64) Tup {
	return Tup{t.X / scalar, t.Y / scalar, t.Z / scalar, t.W / scalar}
}

// Hadamard returns the componentwise product, used to blend colors
func (t Tup) Hadamard(other Tup) Tup {
	return Tup{t.X * other.X, t.Y * other.Y, t.Z * other.Z, t.W * other.W}
}

// Neg returns the negated tuple
func (t Tup) Neg() Tup {
	return Tup{-t.X, -t.Y, -t.Z, -t.W}
}

// Magnitude returns the length of the tuple
func (t Tup) Magnitude() float64 {
	return math.Sqrt(t.X*t.X + t.Y*t.Y + t.Z*t.Z + t.W*t.W)
}

// Normalize divides by the magnitude. A zero-length tuple yields NaN components.
func (t Tup) Normalize() Tup {
	return t.Div(t.Magnitude())
}

// Dot returns the 3-component dot product, ignoring W
func (t Tup) Dot(other Tup) float64 {
	return t.X*other.X + t.Y*other.Y + t.Z*other.Z
}

// Cross returns the cross product of two vectors
func (t Tup) Cross(other Tup) Tup {
	return Vector(
		t.Y*other.Z-t.Z*other.Y,
		t.Z*other.X-t.X*other.Z,
		t.X*other.Y-t.Y*other.X,
	)
}

// Reflect reflects the vector about the given normal
func (t Tup) Reflect(normal Tup) Tup {
	return t.Sub(normal.Mul(2 * t.Dot(normal)))
}

// R returns the red channel
func (t Tup) R() float64 { return t.X }

// G returns the green channel
func (t Tup) G() float64 { return t.Y }

// B returns the blue channel
func (t Tup) B() float64 { return t.Z }

// Clamp returns a color with channels clamped to [minVal, maxVal]
func (t Tup) Clamp(minVal, maxVal float64) Tup {
	return Tup{
		X: max(minVal, min(maxVal, t.X)),
		Y: max(minVal, min(maxVal, t.Y)),
		Z: max(minVal, min(maxVal, t.Z)),
		W: t.W,
	}
}

// Luminance returns the perceptual luminance of an RGB color
func (t Tup) Luminance() float64 {
	return 0.299*t.X + 0.587*t.Y + 0.114*t.Z
}

// ApproxEqual compares all four components within Epsilon
func (t Tup) ApproxEqual(other Tup) bool {
	return FloatEqual(t.X, other.X) && FloatEqual(t.Y, other.Y) &&
		FloatEqual(t.Z, other.Z) && FloatEqual(t.W, other.W)
}

func (t Tup) String() string {
	return fmt.Sprintf("(%.5f, %.5f, %.5f, %.1f)", t.X, t.Y, t.Z, t.W)
}

// FloatEqual compares two floats within Epsilon
func FloatEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

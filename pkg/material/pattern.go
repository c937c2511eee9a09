package material

import (
	"math"
	"math/cmplx"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Pattern maps a point in pattern space to a color. The set of patterns is
// closed: every implementation lives in this package.
type Pattern interface {
	Transform() core.Mat
	Inverse() core.Mat
	localColor(p core.Tup) core.Tup
}

// patternSpace carries a pattern's own transform and its cached inverse
type patternSpace struct {
	transform core.Mat
	inverse   core.Mat
}

func identitySpace() patternSpace {
	return patternSpace{transform: core.IdentityMatrix(), inverse: core.IdentityMatrix()}
}

// Transform returns the pattern transform
func (ps *patternSpace) Transform() core.Mat { return ps.transform }

// Inverse returns the cached inverse of the pattern transform
func (ps *patternSpace) Inverse() core.Mat { return ps.inverse }

// SetTransform replaces the pattern transform
func (ps *patternSpace) SetTransform(m core.Mat) {
	ps.transform = m
	ps.inverse = m.Inverse()
}

// PatternAt evaluates the pattern at a point in the owning object's space
func PatternAt(p Pattern, objectPoint core.Tup) core.Tup {
	return p.localColor(p.Inverse().MulTup(objectPoint))
}

// PatternAtObject evaluates the pattern at a world-space point: world to
// object space through the object's inverse transform, then object to
// pattern space through the pattern's inverse transform
func PatternAtObject(p Pattern, objectInverse core.Mat, worldPoint core.Tup) core.Tup {
	return PatternAt(p, objectInverse.MulTup(worldPoint))
}

// floorEven reports whether floor(x) is even
func floorEven(x float64) bool {
	return int64(math.Floor(x))%2 == 0
}

// StripePattern alternates two colors along x
type StripePattern struct {
	patternSpace
	A, B core.Tup
}

// NewStripePattern creates a stripe pattern
func NewStripePattern(a, b core.Tup) *StripePattern {
	return &StripePattern{patternSpace: identitySpace(), A: a, B: b}
}

func (s *StripePattern) localColor(p core.Tup) core.Tup {
	if floorEven(p.X) {
		return s.A
	}
	return s.B
}

// GradientPattern blends linearly from A to B over each unit of x
type GradientPattern struct {
	patternSpace
	A, B core.Tup
}

// NewGradientPattern creates a gradient pattern
func NewGradientPattern(a, b core.Tup) *GradientPattern {
	return &GradientPattern{patternSpace: identitySpace(), A: a, B: b}
}

func (g *GradientPattern) localColor(p core.Tup) core.Tup {
	fraction := p.X - math.Floor(p.X)
	return g.A.Add(g.B.Sub(g.A).Mul(fraction))
}

// RingPattern alternates concentric rings in the xz plane
type RingPattern struct {
	patternSpace
	A, B core.Tup
}

// NewRingPattern creates a ring pattern
func NewRingPattern(a, b core.Tup) *RingPattern {
	return &RingPattern{patternSpace: identitySpace(), A: a, B: b}
}

func (r *RingPattern) localColor(p core.Tup) core.Tup {
	if floorEven(math.Sqrt(p.X*p.X + p.Z*p.Z)) {
		return r.A
	}
	return r.B
}

// CheckerPattern alternates unit cubes in 3D
type CheckerPattern struct {
	patternSpace
	A, B core.Tup
}

// NewCheckerPattern creates a 3D checker pattern
func NewCheckerPattern(a, b core.Tup) *CheckerPattern {
	return &CheckerPattern{patternSpace: identitySpace(), A: a, B: b}
}

func (c *CheckerPattern) localColor(p core.Tup) core.Tup {
	sum := math.Floor(p.X) + math.Floor(p.Y) + math.Floor(p.Z)
	if int64(sum)%2 == 0 {
		return c.A
	}
	return c.B
}

const (
	mandelbrotIterations = 256
	mandelbrotMinX       = -2.0
	mandelbrotMinY       = -1.5
)

// MandelbrotPattern paints the Mandelbrot set in the xz plane: points of the
// set are black, points that escape get Color. x in [0,3] maps to the real
// range [-2,1] and z in [0,3] to the imaginary range [-1.5,1.5].
type MandelbrotPattern struct {
	patternSpace
	Color core.Tup
}

// NewMandelbrotPattern creates a fractal pattern
func NewMandelbrotPattern(c core.Tup) *MandelbrotPattern {
	return &MandelbrotPattern{patternSpace: identitySpace(), Color: c}
}

func (m *MandelbrotPattern) localColor(p core.Tup) core.Tup {
	c := complex(mandelbrotMinX+p.X, mandelbrotMinY+p.Z)
	var z complex128
	for i := 0; i < mandelbrotIterations; i++ {
		if cmplx.Abs(z) > 2 {
			return m.Color
		}
		z = z*z + c
	}
	return core.Black
}

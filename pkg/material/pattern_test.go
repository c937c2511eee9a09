package material

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

var (
	white = core.White
	black = core.Black
)

func TestStripePattern(t *testing.T) {
	p := NewStripePattern(white, black)

	tests := []struct {
		name     string
		point    core.Tup
		expected core.Tup
	}{
		{"constant in y", core.Point(0, 1, 0), white},
		{"constant in z", core.Point(0, 0, 2), white},
		{"x=0.9", core.Point(0.9, 0, 0), white},
		{"x=1", core.Point(1, 0, 0), black},
		{"x=-0.1", core.Point(-0.1, 0, 0), black},
		{"x=-1", core.Point(-1, 0, 0), black},
		{"x=-1.1", core.Point(-1.1, 0, 0), white},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertColor(t, tt.expected, PatternAt(p, tt.point))
		})
	}
}

func TestPatternTransforms(t *testing.T) {
	t.Run("object transformation", func(t *testing.T) {
		p := NewStripePattern(white, black)
		inv := core.Scaling(2, 2, 2).Inverse()
		assertColor(t, white, PatternAtObject(p, inv, core.Point(1.5, 0, 0)))
	})

	t.Run("pattern transformation", func(t *testing.T) {
		p := NewStripePattern(white, black)
		p.SetTransform(core.Scaling(2, 2, 2))
		assertColor(t, white, PatternAtObject(p, core.IdentityMatrix(), core.Point(1.5, 0, 0)))
	})

	t.Run("both transformations", func(t *testing.T) {
		p := NewStripePattern(white, black)
		p.SetTransform(core.Translation(0.5, 0, 0))
		inv := core.Scaling(2, 2, 2).Inverse()
		assertColor(t, white, PatternAtObject(p, inv, core.Point(2.5, 0, 0)))
	})
}

func TestGradientPattern(t *testing.T) {
	p := NewGradientPattern(white, black)
	assertColor(t, white, PatternAt(p, core.Point(0, 0, 0)))
	assertColor(t, core.Color(0.75, 0.75, 0.75), PatternAt(p, core.Point(0.25, 0, 0)))
	assertColor(t, core.Color(0.5, 0.5, 0.5), PatternAt(p, core.Point(0.5, 0, 0)))
	assertColor(t, core.Color(0.25, 0.25, 0.25), PatternAt(p, core.Point(0.75, 0, 0)))
}

func TestRingPattern(t *testing.T) {
	p := NewRingPattern(white, black)
	assertColor(t, white, PatternAt(p, core.Point(0, 0, 0)))
	assertColor(t, black, PatternAt(p, core.Point(1, 0, 0)))
	assertColor(t, black, PatternAt(p, core.Point(0, 0, 1)))
	assertColor(t, black, PatternAt(p, core.Point(0.708, 0, 0.708)))
}

func TestCheckerPattern(t *testing.T) {
	p := NewCheckerPattern(white, black)

	tests := []struct {
		name  string
		along func(float64) core.Tup
	}{
		{"repeats in x", func(v float64) core.Tup { return core.Point(v, 0, 0) }},
		{"repeats in y", func(v float64) core.Tup { return core.Point(0, v, 0) }},
		{"repeats in z", func(v float64) core.Tup { return core.Point(0, 0, v) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertColor(t, white, PatternAt(p, tt.along(0)))
			assertColor(t, white, PatternAt(p, tt.along(0.99)))
			assertColor(t, black, PatternAt(p, tt.along(1.01)))
		})
	}
}

func TestMandelbrotPattern(t *testing.T) {
	red := core.Color(1, 0, 0)
	p := NewMandelbrotPattern(red)

	// (2, 1.5) maps to c = 0, inside the set
	assertColor(t, black, PatternAt(p, core.Point(2, 0, 1.5)))
	// (0, 0) maps to c = -2-1.5i, escapes immediately
	assertColor(t, red, PatternAt(p, core.Point(0, 0, 0)))
	// y is ignored
	assertColor(t, black, PatternAt(p, core.Point(2, 7, 1.5)))
}

func TestSphericalMap(t *testing.T) {
	tests := []struct {
		point core.Tup
		u, v  float64
	}{
		{core.Point(0, 0, -1), 0.0, 0.5},
		{core.Point(1, 0, 0), 0.25, 0.5},
		{core.Point(0, 0, 1), 0.5, 0.5},
		{core.Point(-1, 0, 0), 0.75, 0.5},
		{core.Point(0, 1, 0), 0.5, 1.0},
		{core.Point(0, -1, 0), 0.5, 0.0},
		{core.Point(math.Sqrt(2)/2, math.Sqrt(2)/2, 0), 0.25, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.point.String(), func(t *testing.T) {
			face, u, v := SphericalMap.Map(tt.point)
			assert.Equal(t, FaceNone, face)
			assert.InDelta(t, tt.u, u, 1e-5)
			assert.InDelta(t, tt.v, v, 1e-5)
		})
	}
}

func TestPlanarMap(t *testing.T) {
	tests := []struct {
		point core.Tup
		u, v  float64
	}{
		{core.Point(0.25, 0, 0.5), 0.25, 0.5},
		{core.Point(0.25, 0, -0.25), 0.25, 0.75},
		{core.Point(0.25, 0.5, -0.25), 0.25, 0.75},
		{core.Point(1.25, 0, 0.5), 0.25, 0.5},
		{core.Point(0.25, 0, -1.75), 0.25, 0.25},
		{core.Point(1, 0, -1), 0.0, 0.0},
		{core.Point(0, 0, 0), 0.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.point.String(), func(t *testing.T) {
			_, u, v := PlanarMap.Map(tt.point)
			assert.InDelta(t, tt.u, u, 1e-5)
			assert.InDelta(t, tt.v, v, 1e-5)
		})
	}
}

func TestFaceFromPoint(t *testing.T) {
	tests := []struct {
		point core.Tup
		face  Face
	}{
		{core.Point(-1, 0.5, -0.25), FaceLeft},
		{core.Point(1.1, -0.75, 0.8), FaceRight},
		{core.Point(0.1, 0.6, 0.9), FaceFront},
		{core.Point(-0.7, 0, -2), FaceBack},
		{core.Point(0.5, 1, 0.9), FaceUp},
		{core.Point(-0.2, -1.3, 1.1), FaceDown},
	}
	for _, tt := range tests {
		t.Run(tt.point.String(), func(t *testing.T) {
			assert.Equal(t, tt.face, FaceFromPoint(tt.point))
		})
	}
}

func TestCubicalMap(t *testing.T) {
	tests := []struct {
		point core.Tup
		face  Face
		u, v  float64
	}{
		{core.Point(-0.5, 0.5, 1), FaceFront, 0.25, 0.75},
		{core.Point(0.5, -0.5, 1), FaceFront, 0.75, 0.25},
		{core.Point(0.5, 0.5, -1), FaceBack, 0.25, 0.75},
		{core.Point(-1, 0.5, -0.5), FaceLeft, 0.25, 0.75},
		{core.Point(1, 0.5, 0.5), FaceRight, 0.25, 0.75},
		{core.Point(-0.5, 1, -0.5), FaceUp, 0.25, 0.75},
		{core.Point(-0.5, -1, 0.5), FaceDown, 0.25, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.point.String(), func(t *testing.T) {
			face, u, v := CubicalMap.Map(tt.point)
			assert.Equal(t, tt.face, face)
			assert.InDelta(t, tt.u, u, 1e-5)
			assert.InDelta(t, tt.v, v, 1e-5)
		})
	}
}

func TestUVChecker(t *testing.T) {
	c := UVChecker{Width: 2, Height: 2, A: black, B: white}
	assertColor(t, black, c.UVColor(FaceNone, 0, 0))
	assertColor(t, white, c.UVColor(FaceNone, 0.5, 0))
	assertColor(t, white, c.UVColor(FaceNone, 0, 0.5))
	assertColor(t, black, c.UVColor(FaceNone, 0.5, 0.5))
	assertColor(t, black, c.UVColor(FaceNone, 1, 1))
}

func TestUVPattern(t *testing.T) {
	p := NewUVPattern(SphericalMap, UVChecker{Width: 16, Height: 8, A: black, B: white})
	assertColor(t, white, PatternAt(p, core.Point(0.4315, 0.4670, 0.7719)))
	assertColor(t, black, PatternAt(p, core.Point(-0.9654, 0.2552, -0.0534)))
	assertColor(t, white, PatternAt(p, core.Point(0.1039, 0.7090, 0.6975)))
	assertColor(t, black, PatternAt(p, core.Point(-0.4986, -0.7856, -0.3663)))
}

func TestTextureSample(t *testing.T) {
	red := core.Color(1, 0, 0)
	green := core.Color(0, 1, 0)
	blue := core.Color(0, 0, 1)
	// row 0 is the top of the image
	tex := NewTexture(2, 2, []core.Tup{
		red, green,
		blue, white,
	})

	assertColor(t, blue, tex.Sample(0, 0))
	assertColor(t, white, tex.Sample(1, 0))
	assertColor(t, red, tex.Sample(0, 1))
	assertColor(t, green, tex.Sample(1, 1))

	t.Run("out of range is magenta", func(t *testing.T) {
		assertColor(t, Magenta, tex.Sample(2, 0.5))
		assertColor(t, Magenta, tex.Sample(0.5, -1))
		assertColor(t, Magenta, tex.PixelAt(-1, 0))
	})
}

func TestUVCubeImage(t *testing.T) {
	red := core.Color(1, 0, 0)
	front := NewTexture(1, 1, []core.Tup{red})
	cube := UVCubeImage{Front: front}
	p := NewUVPattern(CubicalMap, cube)

	assertColor(t, red, PatternAt(p, core.Point(0, 0, 1)))
	assertColor(t, Magenta, PatternAt(p, core.Point(0, 0, -1)))
}

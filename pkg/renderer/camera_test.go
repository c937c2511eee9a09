package renderer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

func assertTuple(t *testing.T, expected, actual core.Tup, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "x of %v", actual)
	assert.InDelta(t, expected.Y, actual.Y, delta, "y of %v", actual)
	assert.InDelta(t, expected.Z, actual.Z, delta, "z of %v", actual)
	assert.InDelta(t, expected.W, actual.W, delta, "w of %v", actual)
}

func testCamera(width, height int, fov float64, transform core.Mat) *Camera {
	return NewCamera(CameraConfig{
		Width:      width,
		Height:     height,
		FOV:        fov,
		Transform:  transform,
		MaxBounces: 5,
	})
}

func TestCameraPixelSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"horizontal canvas", 200, 125},
		{"vertical canvas", 125, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCamera(tt.width, tt.height, math.Pi/2, core.IdentityMatrix())
			assert.InDelta(t, 0.01, c.PixelSize(), 1e-9)
		})
	}
}

func TestCameraRay(t *testing.T) {
	t.Run("through centre", func(t *testing.T) {
		c := testCamera(201, 101, math.Pi/2, core.IdentityMatrix())
		r := c.Ray(100, 50, 0.5, 0.5)
		assertTuple(t, core.Point(0, 0, 0), r.Origin, 1e-9)
		assertTuple(t, core.Vector(0, 0, -1), r.Direction, 1e-5)
	})

	t.Run("through corner", func(t *testing.T) {
		c := testCamera(201, 101, math.Pi/2, core.IdentityMatrix())
		r := c.Ray(0, 0, 0.5, 0.5)
		assertTuple(t, core.Point(0, 0, 0), r.Origin, 1e-9)
		assertTuple(t, core.Vector(0.66519, 0.33259, -0.66851), r.Direction, 1e-4)
	})

	t.Run("transformed camera", func(t *testing.T) {
		transform := core.RotationY(math.Pi / 4).Mul(core.Translation(0, -2, 5))
		c := testCamera(201, 101, math.Pi/2, transform)
		r := c.Ray(100, 50, 0.5, 0.5)
		s2 := math.Sqrt(2) / 2
		assertTuple(t, core.Point(0, 2, -5), r.Origin, 1e-5)
		assertTuple(t, core.Vector(s2, 0, -s2), r.Direction, 1e-4)
	})

	t.Run("offsets move across the pixel", func(t *testing.T) {
		c := testCamera(10, 10, math.Pi/2, core.IdentityMatrix())
		left := c.Ray(4, 4, 0, 0.5)
		right := c.Ray(4, 4, 1, 0.5)
		next := c.Ray(5, 4, 0, 0.5)
		assert.Greater(t, left.Direction.X, right.Direction.X)
		assertTuple(t, right.Direction, next.Direction, 1e-12)
	})
}

func TestRenderPixel(t *testing.T) {
	w := world.NewDefaultWorld()
	view := core.ViewTransform(core.Point(0, 0, -5), core.Point(0, 0, 0), core.Vector(0, 1, 0))

	t.Run("single ray", func(t *testing.T) {
		c := testCamera(11, 11, math.Pi/2, view)
		assertTuple(t, core.Color(0.38066, 0.47583, 0.2855), c.RenderPixel(w, 5, 5), 1e-4)
	})

	t.Run("antialias one matches single ray", func(t *testing.T) {
		c := testCamera(11, 11, math.Pi/2, view)
		aa1 := NewCamera(CameraConfig{Width: 11, Height: 11, FOV: math.Pi / 2, Transform: view, Antialias: 1, MaxBounces: 5})
		assert.Equal(t, c.RenderPixel(w, 5, 5), aa1.RenderPixel(w, 5, 5))
	})

	t.Run("antialiased background", func(t *testing.T) {
		empty := world.NewWorld()
		empty.Background = core.Color(0.25, 0.5, 0.75)
		c := NewCamera(CameraConfig{Width: 4, Height: 4, FOV: math.Pi / 2, Transform: core.IdentityMatrix(), Antialias: 3})
		assertTuple(t, empty.Background, c.RenderPixel(empty, 1, 2), 1e-9)
	})

	t.Run("antialiasing averages the grid", func(t *testing.T) {
		aa := NewCamera(CameraConfig{Width: 11, Height: 11, FOV: math.Pi / 2, Transform: view, Antialias: 2, MaxBounces: 5})
		expected := core.Black
		for _, xoff := range []float64{0.25, 0.75} {
			for _, yoff := range []float64{0.25, 0.75} {
				expected = expected.Add(w.ColorAt(aa.Ray(3, 7, xoff, yoff), 5))
			}
		}
		assertTuple(t, expected.Div(4), aa.RenderPixel(w, 3, 7), 1e-9)
	})
}

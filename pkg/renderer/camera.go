package renderer

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// CameraConfig describes a pinhole camera looking down -z in camera space
type CameraConfig struct {
	Width      int      // Image width in pixels
	Height     int      // Image height in pixels
	FOV        float64  // Field of view in radians, across the wider axis
	Transform  core.Mat // View transform (world to camera)
	Antialias  int      // Samples per axis; 0 or 1 casts a single centre ray
	MaxBounces int      // Reflection and refraction recursion limit
}

// DefaultCameraConfig returns a 400x300 camera with a 60 degree field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:      400,
		Height:     300,
		FOV:        math.Pi / 3,
		Transform:  core.IdentityMatrix(),
		Antialias:  0,
		MaxBounces: 5,
	}
}

// Camera maps pixels to world rays. It is immutable after construction and
// safe to share between workers.
type Camera struct {
	config     CameraConfig
	halfWidth  float64
	halfHeight float64
	pixelSize  float64
	inverse    core.Mat
	origin     core.Tup
}

// NewCamera precomputes the canvas geometry and the inverse view transform
func NewCamera(config CameraConfig) *Camera {
	half := math.Tan(config.FOV / 2)
	aspect := float64(config.Width) / float64(config.Height)

	c := &Camera{config: config}
	if aspect >= 1 {
		c.halfWidth = half
		c.halfHeight = half / aspect
	} else {
		c.halfWidth = half * aspect
		c.halfHeight = half
	}
	c.pixelSize = c.halfWidth * 2 / float64(config.Width)
	c.inverse = config.Transform.Inverse()
	c.origin = c.inverse.MulTup(core.Point(0, 0, 0))
	return c
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.config.Width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.config.Height }

// PixelSize returns the world-space size of one pixel on the canvas at z=-1
func (c *Camera) PixelSize() float64 { return c.pixelSize }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// Ray returns the ray through pixel (x, y) at the given offset inside the
// pixel, where (0.5, 0.5) is the pixel centre
func (c *Camera) Ray(x, y int, xoff, yoff float64) core.Ray {
	worldX := c.halfWidth - (float64(x)+xoff)*c.pixelSize
	worldY := c.halfHeight - (float64(y)+yoff)*c.pixelSize

	pixel := c.inverse.MulTup(core.Point(worldX, worldY, -1))
	direction := pixel.Sub(c.origin).Normalize()
	return core.NewRay(c.origin, direction)
}

// RenderPixel computes the color of pixel (x, y). With antialiasing above 1
// it averages an aa x aa grid of rays inside the pixel.
func (c *Camera) RenderPixel(w *world.World, x, y int) core.Tup {
	aa := c.config.Antialias
	if aa <= 1 {
		return w.ColorAt(c.Ray(x, y, 0.5, 0.5), c.config.MaxBounces)
	}

	step := 1.0 / float64(aa)
	samples := float64(aa * aa)
	total := core.Black
	for i := 0; i < aa; i++ {
		xoff := float64(i)*step + step/float64(aa)
		for j := 0; j < aa; j++ {
			yoff := float64(j)*step + step/float64(aa)
			total = total.Add(w.ColorAt(c.Ray(x, y, xoff, yoff), c.config.MaxBounces))
		}
	}
	return total.Div(samples)
}

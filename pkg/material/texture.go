package material

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Magenta is returned for texture lookups outside the image
var Magenta = core.Color(1, 0, 1)

// Texture is a decoded 2D image
type Texture struct {
	Width  int
	Height int
	Pixels []core.Tup // Row-major: Pixels[y*Width + x], row 0 at the top
}

// NewTexture creates a texture from row-major pixels
func NewTexture(width, height int, pixels []core.Tup) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// PixelAt returns the pixel at (x, y), or Magenta when out of range
func (t *Texture) PixelAt(x, y int) core.Tup {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return Magenta
	}
	return t.Pixels[y*t.Width+x]
}

// Sample looks up the nearest pixel for (u, v) in [0,1]. V=0 is the bottom
// row of the image, so v is flipped into image rows.
func (t *Texture) Sample(u, v float64) core.Tup {
	x := int(math.Round(u * float64(t.Width-1)))
	y := int(math.Round((1 - v) * float64(t.Height-1)))
	return t.PixelAt(x, y)
}

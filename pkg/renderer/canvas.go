package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ppmLineLimit is the longest line written to a PPM file
const ppmLineLimit = 70

// Canvas collects rendered pixels into a frame
type Canvas struct {
	Width  int
	Height int
	pixels []core.Tup
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	pixels := make([]core.Tup, width*height)
	for i := range pixels {
		pixels[i] = core.Black
	}
	return &Canvas{Width: width, Height: height, pixels: pixels}
}

// Set stores a pixel; pixels outside the canvas are ignored
func (c *Canvas) Set(p Pixel) {
	if p.X < 0 || p.Y < 0 || p.X >= c.Width || p.Y >= c.Height {
		return
	}
	c.pixels[p.Y*c.Width+p.X] = p.Color
}

// At returns the color at (x, y)
func (c *Canvas) At(x, y int) core.Tup {
	return c.pixels[y*c.Width+x]
}

// Collect stores every pixel from the channel until it is closed and
// returns how many were received
func (c *Canvas) Collect(pixels <-chan Pixel) int {
	n := 0
	for p := range pixels {
		c.Set(p)
		n++
	}
	return n
}

// channelByte scales a channel from [0,1] to [0,255], clamping out of range values
func channelByte(v float64) uint8 {
	return uint8(math.Round(max(0, min(1, v)) * 255))
}

// ToRGBA converts a color to an opaque 8-bit RGBA value
func ToRGBA(c core.Tup) color.RGBA {
	return color.RGBA{R: channelByte(c.R()), G: channelByte(c.G()), B: channelByte(c.B()), A: 255}
}

// Image converts the canvas to an 8-bit image. No gamma correction is applied.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, ToRGBA(c.At(x, y)))
		}
	}
	return img
}

// WritePNG encodes the canvas as PNG
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// WritePPM encodes the canvas as a plain (P3) PPM file. Each image row
// starts a new line and no line exceeds 70 characters.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.Width, c.Height)

	for y := 0; y < c.Height; y++ {
		lineLen := 0
		for x := 0; x < c.Width; x++ {
			rgba := ToRGBA(c.At(x, y))
			for _, v := range [3]uint8{rgba.R, rgba.G, rgba.B} {
				s := strconv.Itoa(int(v))
				if lineLen > 0 && lineLen+1+len(s) > ppmLineLimit {
					bw.WriteByte('\n')
					lineLen = 0
				}
				if lineLen > 0 {
					bw.WriteByte(' ')
					lineLen++
				}
				bw.WriteString(s)
				lineLen += len(s)
			}
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// AverageLuminance returns the mean Rec. 709 luminance of an image in [0,1]
func AverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535
		}
	}
	return total / float64(pixels)
}

package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func ppmLines(t *testing.T, c *Canvas) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.WritePPM(&buf))
	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"))
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestCanvasPPM(t *testing.T) {
	t.Run("header and pixels", func(t *testing.T) {
		c := NewCanvas(5, 3)
		c.Set(Pixel{X: 0, Y: 0, Color: core.Color(1.5, 0, 0)})
		c.Set(Pixel{X: 2, Y: 1, Color: core.Color(0, 0.5, 0)})
		c.Set(Pixel{X: 4, Y: 2, Color: core.Color(-0.5, 0, 1)})

		lines := ppmLines(t, c)
		require.Len(t, lines, 6)
		assert.Equal(t, []string{"P3", "5 3", "255"}, lines[:3])
		assert.Equal(t, "255 0 0 0 0 0 0 0 0 0 0 0 0 0 0", lines[3])
		assert.Equal(t, "0 0 0 0 0 0 0 128 0 0 0 0 0 0 0", lines[4])
		assert.Equal(t, "0 0 0 0 0 0 0 0 0 0 0 0 0 0 255", lines[5])
	})

	t.Run("long lines wrap", func(t *testing.T) {
		c := NewCanvas(10, 2)
		for y := 0; y < 2; y++ {
			for x := 0; x < 10; x++ {
				c.Set(Pixel{X: x, Y: y, Color: core.Color(1, 0.8, 0.6)})
			}
		}

		lines := ppmLines(t, c)
		require.Len(t, lines, 7)
		assert.Equal(t, "255 204 153 255 204 153 255 204 153 255 204 153 255 204 153 255 204", lines[3])
		assert.Equal(t, "153 255 204 153 255 204 153 255 204 153 255 204 153", lines[4])
		assert.Equal(t, lines[3], lines[5])
		assert.Equal(t, lines[4], lines[6])
		for _, line := range lines {
			assert.LessOrEqual(t, len(line), 70)
		}
	})
}

func TestCanvasPNG(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(Pixel{X: 1, Y: 1, Color: core.Color(1, 0.5, 2)})
	c.Set(Pixel{X: 99, Y: 99, Color: core.White}) // ignored

	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.RGBA{R: 255, G: 128, B: 255, A: 255}, color.RGBAModel.Convert(img.At(1, 1)))
	assert.Equal(t, color.RGBA{A: 255}, color.RGBAModel.Convert(img.At(0, 0)))
}

func TestAverageLuminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	assert.InDelta(t, 0.25, AverageLuminance(img), 1e-4)
	assert.Equal(t, 0.0, AverageLuminance(image.NewRGBA(image.Rect(0, 0, 0, 0))))
}

package server

import (
	"fmt"
	"image"

	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// trackedTile accumulates the pixels of one tile until all have arrived
type trackedTile struct {
	bounds    image.Rectangle
	image     *image.RGBA // Tile-local image, origin at bounds.Min
	remaining int
}

// tileTracker maps rendered pixels to their tiles. Pixels arrive in any
// order; a tile is complete once every pixel scheduled inside it is in.
type tileTracker struct {
	width  int
	tiles  []*trackedTile
	lookup []int // pixel index to tile index
	total  int   // scheduled pixels
	active int   // tiles with at least one scheduled pixel
}

func newTileTracker(tiles []*renderer.Tile, partial []renderer.PixelCoord, width, height int) (*tileTracker, error) {
	t := &tileTracker{
		width:  width,
		tiles:  make([]*trackedTile, len(tiles)),
		lookup: make([]int, width*height),
	}

	for i, tile := range tiles {
		b := tile.Bounds
		t.tiles[i] = &trackedTile{
			bounds: b,
			image:  image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy())),
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				t.lookup[y*width+x] = i
			}
		}
	}

	if partial == nil {
		for _, tile := range t.tiles {
			tile.remaining = tile.bounds.Dx() * tile.bounds.Dy()
		}
	} else {
		for _, p := range partial {
			if p.X < 0 || p.Y < 0 || p.X >= width || p.Y >= height {
				return nil, fmt.Errorf("partial render pixel (%d, %d) outside %dx%d image", p.X, p.Y, width, height)
			}
			t.tiles[t.lookup[p.Y*width+p.X]].remaining++
		}
	}

	for _, tile := range t.tiles {
		t.total += tile.remaining
		if tile.remaining > 0 {
			t.active++
		}
	}
	return t, nil
}

// TotalTiles returns the number of tiles that will complete
func (t *tileTracker) TotalTiles() int { return t.active }

// TotalPixels returns the number of scheduled pixels
func (t *tileTracker) TotalPixels() int { return t.total }

// Add stores a pixel and reports its tile once the tile is complete
func (t *tileTracker) Add(p renderer.Pixel) (*trackedTile, bool) {
	idx := p.Y*t.width + p.X
	if p.X < 0 || p.X >= t.width || idx < 0 || idx >= len(t.lookup) {
		return nil, false
	}
	tile := t.tiles[t.lookup[idx]]
	if tile.remaining == 0 {
		return nil, false
	}

	tile.image.SetRGBA(p.X-tile.bounds.Min.X, p.Y-tile.bounds.Min.Y, renderer.ToRGBA(p.Color))
	tile.remaining--
	return tile, tile.remaining == 0
}

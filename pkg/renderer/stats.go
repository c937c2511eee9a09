package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Number of pixels delivered
	Elapsed         time.Duration // Wall time from scheduling to the last pixel
	PixelsPerSecond float64
}

// NewRenderStats derives throughput from a pixel count and elapsed time
func NewRenderStats(pixels int, elapsed time.Duration) RenderStats {
	stats := RenderStats{TotalPixels: pixels, Elapsed: elapsed}
	if elapsed > 0 {
		stats.PixelsPerSecond = float64(pixels) / elapsed.Seconds()
	}
	return stats
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels in %v (%.0f pixels/s)",
		s.TotalPixels, s.Elapsed.Round(time.Millisecond), s.PixelsPerSecond)
}

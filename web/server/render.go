package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// StartUpdate is sent once before the first tile
type StartUpdate struct {
	RenderID    string `json:"renderId"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	TotalTiles  int    `json:"totalTiles"`
	TotalPixels int    `json:"totalPixels"`
}

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"` // Pixel position of the tile's top-left corner
	TileY      int    `json:"tileY"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completed tiles so far (1-based)
	TotalTiles int    `json:"totalTiles"` // Tiles that contain scheduled pixels
}

// CompleteUpdate is sent after the last tile
type CompleteUpdate struct {
	RenderID        string  `json:"renderId"`
	TotalPixels     int     `json:"totalPixels"`
	ElapsedMs       int64   `json:"elapsedMs"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "start", "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data or a plain message
}

// RenderingPipeline contains the configured scene and renderer
type RenderingPipeline struct {
	Scene    *scene.Scene
	Camera   *renderer.Camera
	Renderer *renderer.Renderer
	Tiles    *tileTracker
}

// handleRender renders a scene and streams each finished tile via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// a single goroutine owns the response writer
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	renderID := uuid.NewString()
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(renderID, consoleChan)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()
	defer func() {
		close(consoleChan)
		<-consoleDone
	}()

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	s.sendJSON(ctx, sseEventChan, "start", StartUpdate{
		RenderID:    renderID,
		Width:       pipeline.Camera.Width(),
		Height:      pipeline.Camera.Height(),
		TotalTiles:  pipeline.Tiles.TotalTiles(),
		TotalPixels: pipeline.Tiles.TotalPixels(),
	})

	startTime := time.Now()
	pixels, errChan := pipeline.Renderer.RenderAsync(ctx)
	delivered := s.handleRenderingEvents(ctx, sseEventChan, pixels, pipeline.Tiles)

	if err := <-errChan; err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	stats := renderer.NewRenderStats(delivered, time.Since(startTime))
	s.sendJSON(ctx, sseEventChan, "complete", CompleteUpdate{
		RenderID:        renderID,
		TotalPixels:     stats.TotalPixels,
		ElapsedMs:       stats.Elapsed.Milliseconds(),
		PixelsPerSecond: stats.PixelsPerSecond,
	})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes events until the channel is closed or the client
// goes away
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if ctx.Err() != nil {
				continue
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				continue
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// drain so senders never block on a departed client
			for range sseEventChan {
			}
			return
		}
	}
}

// streamConsoleMessages forwards logger output as console events
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// setupRenderingPipeline creates the scene, camera and renderer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sc, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	camera := sc.NewCamera()
	options := s.renderOptions(req, sc)
	r := renderer.NewRenderer(camera, sc.World, options, logger)

	tiles, err := newTileTracker(r.Tiles(), options.Partial, camera.Width(), camera.Height())
	if err != nil {
		return nil, err
	}

	return &RenderingPipeline{
		Scene:    sc,
		Camera:   camera,
		Renderer: r,
		Tiles:    tiles,
	}, nil
}

// handleRenderingEvents feeds pixels into their tiles and sends every tile
// that completes. It returns the number of pixels received.
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan SSEEvent,
	pixels <-chan renderer.Pixel, tiles *tileTracker) int {

	received := 0
	completed := 0
	for p := range pixels {
		received++
		tile, done := tiles.Add(p)
		if !done {
			continue
		}
		completed++
		s.handleTileUpdate(ctx, sseEventChan, tile, completed, tiles.TotalTiles())
	}
	return received
}

// handleTileUpdate encodes a finished tile and sends it
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan SSEEvent, tile *trackedTile, number, total int) {
	if ctx.Err() != nil {
		return
	}

	tileData, err := s.imageToBase64PNG(tile.image)
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", tile.bounds.Min.X, tile.bounds.Min.Y, err)
		return
	}

	s.sendJSON(ctx, sseEventChan, "tile", TileUpdate{
		TileX:      tile.bounds.Min.X,
		TileY:      tile.bounds.Min.Y,
		Width:      tile.bounds.Dx(),
		Height:     tile.bounds.Dy(),
		ImageData:  tileData,
		TileNumber: number,
		TotalTiles: total,
	})
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendJSON marshals v and sends it as an event of the given type
func (s *Server) sendJSON(ctx context.Context, sseEventChan chan SSEEvent, eventType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

const (
	// DefaultTileSize is the tile edge used when a request gives none
	DefaultTileSize = 32

	maxUploadBytes  = 4 << 20
	maxUploads      = 64
	uploadPrefix    = "upload:"
	defaultSceneID  = "default"
	defaultWidth    = 400
	defaultHeight   = 300
	minImageSize    = 1
	maxImageSize    = 2000
	maxAntialias    = 8
	maxBounceLimit  = 64
	maxTileSizeEdge = 256
)

// Server streams renders of preset, file and uploaded scenes over SSE
type Server struct {
	port      int
	scenesDir string

	mu      sync.Mutex
	uploads map[string][]byte // uploaded YAML by id
	order   []string          // upload ids, oldest first
}

// NewServer creates a new web server. YAML scenes are listed from scenesDir.
func NewServer(port int, scenesDir string) *Server {
	return &Server{
		port:      port,
		scenesDir: scenesDir,
		uploads:   make(map[string][]byte),
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`      // Scene id: preset name, "yaml:<file>" or "upload:<id>"
	Width      int    `json:"width"`      // Image width (presets only)
	Height     int    `json:"height"`     // Image height (presets only)
	TileSize   int    `json:"tileSize"`   // Tile edge in pixels
	Shuffle    bool   `json:"shuffle"`    // Render tiles in random order
	Antialias  int    `json:"antialias"`  // Samples per axis, -1 keeps the scene's
	MaxBounces int    `json:"maxBounces"` // Recursion limit, -1 keeps the scene's
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene", s.handleUpload)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists presets and the YAML scenes in the scenes directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleUpload accepts a YAML scene in the request body, validates it and
// returns the id to render it by
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST a YAML scene"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
		return
	}

	parsed, err := scene.ParseString(string(body))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	id := uploadPrefix + uuid.NewString()
	s.storeUpload(id, body)
	log.Printf("Stored uploaded scene %s (%d objects)", id, len(parsed.World.Objects))

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      id,
		"width":   parsed.Camera.Width,
		"height":  parsed.Camera.Height,
		"objects": len(parsed.World.Objects),
	})
}

// storeUpload keeps the newest maxUploads scenes
func (s *Server) storeUpload(id string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) >= maxUploads {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.uploads, oldest)
	}
	s.uploads[id] = body
	s.order = append(s.order, id)
}

func (s *Server) upload(id string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.uploads[id]
	return body, ok
}

// createScene resolves the requested scene and applies the request's
// sampling overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	var sc *scene.Scene
	var err error
	if strings.HasPrefix(req.Scene, uploadPrefix) {
		body, ok := s.upload(req.Scene)
		if !ok {
			return nil, fmt.Errorf("unknown scene %q", req.Scene)
		}
		sc, err = scene.ParseString(string(body))
	} else {
		sc, err = scene.Resolve(req.Scene, s.scenesDir, req.Width, req.Height)
	}
	if err != nil {
		return nil, err
	}

	if req.Antialias >= 0 {
		sc.Rendering.Antialias = req.Antialias
		sc.Camera.Antialias = req.Antialias
	}
	if req.MaxBounces >= 0 {
		sc.Rendering.MaxBounces = req.MaxBounces
		sc.Camera.MaxBounces = req.MaxBounces
	}
	return sc, nil
}

// renderOptions derives scheduling options from the request and scene
func (s *Server) renderOptions(req *RenderRequest, sc *scene.Scene) renderer.RenderOptions {
	options := renderer.DefaultRenderOptions()
	options.TileSize = req.TileSize
	options.Shuffle = req.Shuffle
	return sc.Rendering.Options(options)
}

// parseSceneParams parses the parameters shared by render and inspect
func (s *Server) parseSceneParams(r *http.Request, req *RenderRequest) error {
	values := r.URL.Query()

	req.Scene = values.Get("scene")
	if req.Scene == "" {
		req.Scene = defaultSceneID
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", defaultWidth, minImageSize, maxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(values, "height", defaultHeight, minImageSize, maxImageSize); err != nil {
		return err
	}
	if req.Antialias, err = parseIntParam(values, "antialias", -1, -1, maxAntialias); err != nil {
		return err
	}
	if req.MaxBounces, err = parseIntParam(values, "maxBounces", -1, -1, maxBounceLimit); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseSceneParams(r, req); err != nil {
		return nil, err
	}

	var err error
	values := r.URL.Query()
	if req.TileSize, err = parseIntParam(values, "tileSize", DefaultTileSize, 1, maxTileSizeEdge); err != nil {
		return nil, err
	}
	if req.Shuffle, err = parseBoolParam(values, "shuffle", false); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 800*600 && req.Antialias > 2 {
		log.Printf("Render warning: Large image with heavy antialiasing may render slowly")
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

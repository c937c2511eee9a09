package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectIndex  int                    `json:"objectIndex"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Color        string                 `json:"color"` // Shaded color of the pixel centre
	Shadows      []float64              `json:"shadows"`
	Properties   map[string]interface{} `json:"properties"`
}

func triple(t core.Tup) [3]float64 {
	return [3]float64{t.X, t.Y, t.Z}
}

func hexColor(c core.Tup) string {
	rgba := renderer.ToRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// extractMaterialInfo lists the Phong parameters of a material
func extractMaterialInfo(m material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color":           hexColor(m.Color),
		"ambient":         m.Ambient,
		"diffuse":         m.Diffuse,
		"specular":        m.Specular,
		"shininess":       m.Shininess,
		"reflective":      m.Reflective,
		"transparency":    m.Transparency,
		"refractiveIndex": m.RefractiveIndex,
		"lightThrough":    m.LightThrough,
	}

	switch p := m.Pattern.(type) {
	case nil:
	case *material.StripePattern:
		properties["pattern"] = "stripe"
	case *material.GradientPattern:
		properties["pattern"] = "gradient"
	case *material.RingPattern:
		properties["pattern"] = "ring"
	case *material.CheckerPattern:
		properties["pattern"] = "checker"
	case *material.MandelbrotPattern:
		properties["pattern"] = "mandelbrot"
	case *material.UVPattern:
		properties["pattern"] = "uv"
	default:
		properties["pattern"] = fmt.Sprintf("%T", p)
	}
	return properties
}

// extractGeometryInfo describes an object's shape
func extractGeometryInfo(o *geometry.Object) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"hasNormalMap": o.NormalMap != nil,
	}

	switch g := o.Geometry.(type) {
	case *geometry.Sphere:
		properties["center"] = triple(o.Transform().MulTup(core.Point(0, 0, 0)))
		return "sphere", properties
	case *geometry.Plane:
		return "plane", properties
	case *geometry.Cube:
		return "cube", properties
	case *geometry.Triangle:
		properties["p1"] = triple(g.P1)
		properties["p2"] = triple(g.P2)
		properties["p3"] = triple(g.P3)
		properties["smooth"] = g.Smooth
		return "triangle", properties
	}
	return "unknown", properties
}

// InspectResult is the first surface seen through a pixel
type InspectResult struct {
	Hit   bool
	Comps world.Computations
	Color core.Tup
}

// inspectPixel casts the centre ray of a pixel and shades the first hit
func inspectPixel(w *world.World, ray core.Ray, maxBounces int) InspectResult {
	xs := w.Intersect(ray, false)
	hitIndex, ok := world.Hit(xs)
	if !ok {
		return InspectResult{}
	}

	comps := w.PrepareComputations(hitIndex, ray, xs)
	return InspectResult{
		Hit:   true,
		Comps: comps,
		Color: w.ShadeHit(comps, maxBounces),
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sc, err := s.createScene(inspectReq)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	camera := sc.NewCamera()
	if pixelX < 0 || pixelX >= camera.Width() || pixelY < 0 || pixelY >= camera.Height() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result := inspectPixel(sc.World, camera.Ray(pixelX, pixelY, 0.5, 0.5), sc.Camera.MaxBounces)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, ObjectIndex: -1, Color: hexColor(sc.World.Background)})
		return
	}

	c := result.Comps
	geometryType, geometryProps := extractGeometryInfo(c.Object)

	shadows := make([]float64, len(sc.World.Lights))
	for i, l := range sc.World.Lights {
		shadows[i] = sc.World.ShadowAt(c.Over, l)
		if _, ok := l.(*lights.AreaLight); ok {
			geometryProps["areaLight"] = true
		}
	}

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		ObjectIndex:  int(c.ID),
		GeometryType: geometryType,
		Point:        triple(c.Point),
		Normal:       triple(c.Normal),
		Distance:     c.T,
		Inside:       c.Inside,
		Color:        hexColor(result.Color),
		Shadows:      shadows,
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(c.Object.Material),
			"geometry": geometryProps,
		},
	})
}

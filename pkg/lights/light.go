package lights

import "github.com/df07/go-phong-raytracer/pkg/core"

// LightType names the kind of a light, as written in scene files
type LightType string

const (
	// LightTypePoint is a PointLight
	LightTypePoint LightType = "point"
	// LightTypeArea is an AreaLight
	LightTypeArea LightType = "area"
)

// Light is a source of direct illumination. Phong shading uses Position as
// the light's location; shadow evaluation dispatches on the concrete type.
type Light interface {
	Type() LightType
	Position() core.Tup
	Intensity() core.Tup
}

// PointLight emits from a single point with no size
type PointLight struct {
	Origin core.Tup
	Color  core.Tup
}

// NewPointLight creates a point light
func NewPointLight(position, intensity core.Tup) *PointLight {
	return &PointLight{Origin: position, Color: intensity}
}

// Type returns LightTypePoint
func (pl *PointLight) Type() LightType { return LightTypePoint }

// Position returns where the light sits
func (pl *PointLight) Position() core.Tup { return pl.Origin }

// Intensity returns the light's color
func (pl *PointLight) Intensity() core.Tup { return pl.Color }

// AreaLight is a rectangular light split into USteps x VSteps cells. Shadow
// rays target one jittered point per cell to produce soft shadows.
type AreaLight struct {
	Corner core.Tup // One corner of the rectangle
	UVec   core.Tup // Edge of a single cell along u
	VVec   core.Tup // Edge of a single cell along v
	USteps int
	VSteps int
	Color  core.Tup
	center core.Tup
}

// NewAreaLight creates an area light from a corner and the full u and v
// edges of the rectangle, subdivided into usteps and vsteps cells
func NewAreaLight(corner, fullU core.Tup, usteps int, fullV core.Tup, vsteps int, intensity core.Tup) *AreaLight {
	usteps = max(1, usteps)
	vsteps = max(1, vsteps)
	return &AreaLight{
		Corner: corner,
		UVec:   fullU.Div(float64(usteps)),
		VVec:   fullV.Div(float64(vsteps)),
		USteps: usteps,
		VSteps: vsteps,
		Color:  intensity,
		center: corner.Add(fullU.Div(2)).Add(fullV.Div(2)),
	}
}

// Type returns LightTypeArea
func (al *AreaLight) Type() LightType { return LightTypeArea }

// Position returns the centre of the rectangle, used for Phong shading
func (al *AreaLight) Position() core.Tup { return al.center }

// Intensity returns the light's color
func (al *AreaLight) Intensity() core.Tup { return al.Color }

// Samples returns the number of cells, and therefore shadow rays, per point
func (al *AreaLight) Samples() int {
	return al.USteps * al.VSteps
}

// PointOn returns a point inside cell (u, v) offset by the jitter values in [0, 1)
func (al *AreaLight) PointOn(u, v int, jitterU, jitterV float64) core.Tup {
	return al.Corner.
		Add(al.UVec.Mul(float64(u) + jitterU)).
		Add(al.VVec.Mul(float64(v) + jitterV))
}

package material

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// Material holds the Phong coefficients and optical properties of a surface
type Material struct {
	Color           core.Tup
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64
	Transparency    float64
	RefractiveIndex float64
	Pattern         Pattern // Overrides Color when set

	// LightThrough objects are ignored by shadow rays
	LightThrough bool
}

// DefaultMaterial returns the default white Phong material
func DefaultMaterial() Material {
	return Material{
		Color:           core.White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: 1.0,
	}
}

// GlassMaterial returns a fully transparent material with the index of glass
func GlassMaterial() Material {
	m := DefaultMaterial()
	m.Transparency = 1.0
	m.RefractiveIndex = 1.5
	return m
}

// ColorAt returns the surface color at a world point, sampling the pattern
// when there is one
func (m *Material) ColorAt(objectInverse core.Mat, worldPoint core.Tup) core.Tup {
	if m.Pattern == nil {
		return m.Color
	}
	return PatternAtObject(m.Pattern, objectInverse, worldPoint)
}

// Lighting computes the Phong color contributed by one light. shadow is the
// fraction of the light that is blocked: 0 is fully lit, 1 fully shadowed.
// Ambient light is never shadowed.
func (m *Material) Lighting(objectInverse core.Mat, light lights.Light, point, eye, normal core.Tup, shadow float64) core.Tup {
	surface := m.ColorAt(objectInverse, point)
	return m.lighting(surface, light, point, eye, normal, shadow)
}

// LightingAll sums Lighting over every light. shadows holds one value per
// light; a short slice treats the remaining lights as unshadowed.
func (m *Material) LightingAll(objectInverse core.Mat, ls []lights.Light, point, eye, normal core.Tup, shadows []float64) core.Tup {
	surface := m.ColorAt(objectInverse, point)
	total := core.Black
	for i, light := range ls {
		shadow := 0.0
		if i < len(shadows) {
			shadow = shadows[i]
		}
		total = total.Add(m.lighting(surface, light, point, eye, normal, shadow))
	}
	return total
}

func (m *Material) lighting(surface core.Tup, light lights.Light, point, eye, normal core.Tup, shadow float64) core.Tup {
	effective := surface.Hadamard(light.Intensity())
	ambient := effective.Mul(m.Ambient)

	lightv := light.Position().Sub(point).Normalize()
	lightDotNormal := lightv.Dot(normal)
	if lightDotNormal < 0 {
		// light is behind the surface
		return ambient
	}

	diffuse := effective.Mul(m.Diffuse * lightDotNormal)
	specular := core.Black
	reflectv := lightv.Neg().Reflect(normal)
	if reflectDotEye := reflectv.Dot(eye); reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity().Mul(m.Specular * factor)
	}

	lit := 1 - shadow
	return ambient.Add(diffuse.Mul(lit)).Add(specular.Mul(lit))
}

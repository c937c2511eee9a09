package material

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Face identifies a face of the unit cube for cubical mapping
type Face int

const (
	FaceNone Face = iota
	FaceLeft
	FaceRight
	FaceFront
	FaceBack
	FaceUp
	FaceDown
)

// UVMapping projects a point in pattern space onto (face, u, v)
type UVMapping int

const (
	// SphericalMap wraps longitude to u and latitude to v
	SphericalMap UVMapping = iota
	// PlanarMap tiles the xz plane with unit squares
	PlanarMap
	// CubicalMap picks a cube face from the dominant axis
	CubicalMap
)

// Map projects p with this mapping
func (m UVMapping) Map(p core.Tup) (Face, float64, float64) {
	switch m {
	case PlanarMap:
		u, v := planarUV(p)
		return FaceNone, u, v
	case CubicalMap:
		return cubicalUV(p)
	default:
		u, v := sphericalUV(p)
		return FaceNone, u, v
	}
}

// positive remainder of x / m
func wrap(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

func sphericalUV(p core.Tup) (float64, float64) {
	theta := math.Atan2(p.X, p.Z)
	radius := core.Vector(p.X, p.Y, p.Z).Magnitude()
	phi := math.Acos(p.Y / radius)
	rawU := theta / (2 * math.Pi)
	u := 1 - (rawU + 0.5)
	v := 1 - phi/math.Pi
	return u, v
}

func planarUV(p core.Tup) (float64, float64) {
	return wrap(p.X, 1), wrap(p.Z, 1)
}

// FaceFromPoint returns the cube face containing p
func FaceFromPoint(p core.Tup) Face {
	ax, ay, az := math.Abs(p.X), math.Abs(p.Y), math.Abs(p.Z)
	coord := max(ax, ay, az)
	switch {
	case coord == p.X:
		return FaceRight
	case coord == -p.X:
		return FaceLeft
	case coord == p.Y:
		return FaceUp
	case coord == -p.Y:
		return FaceDown
	case coord == p.Z:
		return FaceFront
	default:
		return FaceBack
	}
}

func cubicalUV(p core.Tup) (Face, float64, float64) {
	face := FaceFromPoint(p)
	var u, v float64
	switch face {
	case FaceFront:
		u, v = wrap(p.X+1, 2)/2, wrap(p.Y+1, 2)/2
	case FaceBack:
		u, v = wrap(1-p.X, 2)/2, wrap(p.Y+1, 2)/2
	case FaceLeft:
		u, v = wrap(p.Z+1, 2)/2, wrap(p.Y+1, 2)/2
	case FaceRight:
		u, v = wrap(1-p.Z, 2)/2, wrap(p.Y+1, 2)/2
	case FaceUp:
		u, v = wrap(p.X+1, 2)/2, wrap(1-p.Z, 2)/2
	default:
		u, v = wrap(p.X+1, 2)/2, wrap(p.Z+1, 2)/2
	}
	return face, u, v
}

// UVSource colors a point of 2D texture space
type UVSource interface {
	UVColor(face Face, u, v float64) core.Tup
}

// UVChecker is a Width x Height checkerboard over the unit square
type UVChecker struct {
	Width, Height int
	A, B          core.Tup
}

// UVColor implements UVSource
func (c UVChecker) UVColor(_ Face, u, v float64) core.Tup {
	u2 := int(math.Floor(u * float64(c.Width)))
	v2 := int(math.Floor(v * float64(c.Height)))
	if (u2+v2)%2 == 0 {
		return c.A
	}
	return c.B
}

// UVImage samples a single texture
type UVImage struct {
	Texture *Texture
}

// UVColor implements UVSource
func (i UVImage) UVColor(_ Face, u, v float64) core.Tup {
	return i.Texture.Sample(u, v)
}

// UVCubeImage samples one texture per cube face. Faces without a texture
// render as Magenta.
type UVCubeImage struct {
	Left, Right, Front, Back, Up, Down *Texture
}

// UVColor implements UVSource
func (c UVCubeImage) UVColor(face Face, u, v float64) core.Tup {
	var tex *Texture
	switch face {
	case FaceLeft:
		tex = c.Left
	case FaceRight:
		tex = c.Right
	case FaceFront:
		tex = c.Front
	case FaceBack:
		tex = c.Back
	case FaceUp:
		tex = c.Up
	case FaceDown:
		tex = c.Down
	}
	if tex == nil {
		return Magenta
	}
	return tex.Sample(u, v)
}

// UVPattern maps a point to texture space and colors it from a UV source
type UVPattern struct {
	patternSpace
	Mapping UVMapping
	Source  UVSource
}

// NewUVPattern creates a texture-mapped pattern
func NewUVPattern(mapping UVMapping, source UVSource) *UVPattern {
	return &UVPattern{patternSpace: identitySpace(), Mapping: mapping, Source: source}
}

func (p *UVPattern) localColor(pt core.Tup) core.Tup {
	face, u, v := p.Mapping.Map(pt)
	return p.Source.UVColor(face, u, v)
}

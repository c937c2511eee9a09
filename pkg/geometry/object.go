package geometry

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Object places a primitive in the world with a transform and a material
type Object struct {
	Geometry  Geometry
	Material  material.Material
	NormalMap material.Pattern // Optional; perturbs the geometric normal

	transform        core.Mat
	inverse          core.Mat
	inverseTranspose core.Mat
}

// NewObject creates an object with the identity transform
func NewObject(g Geometry, m material.Material) *Object {
	o := &Object{Geometry: g, Material: m}
	o.SetTransform(core.IdentityMatrix())
	return o
}

// NewSphere creates a unit sphere object with the default material
func NewSphere() *Object {
	return NewObject(&Sphere{}, material.DefaultMaterial())
}

// NewGlassSphere creates a unit sphere object with a glass material
func NewGlassSphere() *Object {
	return NewObject(&Sphere{}, material.GlassMaterial())
}

// NewPlane creates an xz plane object with the default material
func NewPlane() *Object {
	return NewObject(&Plane{}, material.DefaultMaterial())
}

// NewCube creates a unit cube object with the default material
func NewCube() *Object {
	return NewObject(&Cube{}, material.DefaultMaterial())
}

// SetTransform replaces the object transform and recomputes its cached
// inverse and inverse transpose. It panics on a singular transform.
func (o *Object) SetTransform(m core.Mat) {
	o.transform = m
	o.inverse = m.Inverse()
	o.inverseTranspose = o.inverse.Transpose()
}

// Transform returns the object-to-world transform
func (o *Object) Transform() core.Mat { return o.transform }

// Inverse returns the world-to-object transform
func (o *Object) Inverse() core.Mat { return o.inverse }

// Intersect transforms a world ray into local space and intersects the
// primitive
func (o *Object) Intersect(ray core.Ray) []LocalHit {
	return o.Geometry.LocalIntersect(ray.Transform(o.inverse))
}

// NormalAt returns the unit world-space normal at a world point
func (o *Object) NormalAt(worldPoint core.Tup, hit LocalHit) core.Tup {
	localPoint := o.inverse.MulTup(worldPoint)
	localNormal := o.Geometry.LocalNormal(localPoint, hit)
	if o.NormalMap != nil {
		localNormal = perturbNormal(o.NormalMap, localPoint, localNormal.Normalize())
	}

	worldNormal := o.inverseTranspose.MulTup(localNormal)
	worldNormal.W = 0
	return worldNormal.Normalize()
}

package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// perturbNormal bends a unit normal by a tangent-space sample of the normal
// map. Pattern channels in [0,1] are remapped to [-1,1]; (0.5, 0.5, 1)
// leaves the normal unchanged.
func perturbNormal(normalMap material.Pattern, localPoint, normal core.Tup) core.Tup {
	tangent, bitangent := tangentBasis(normal)

	sample := material.PatternAt(normalMap, localPoint)
	sx := sample.X*2 - 1
	sy := sample.Y*2 - 1
	sz := sample.Z*2 - 1

	perturbed := tangent.Mul(sx).Add(bitangent.Mul(sy)).Add(normal.Mul(sz))
	return perturbed.Normalize()
}

// tangentBasis builds an orthonormal tangent and bitangent around n
func tangentBasis(n core.Tup) (core.Tup, core.Tup) {
	ref := core.Vector(0, 1, 0)
	if math.Abs(n.Y) > 0.999 {
		ref = core.Vector(1, 0, 0)
	}
	tangent := ref.Cross(n).Normalize()
	bitangent := n.Cross(tangent)
	return tangent, bitangent
}

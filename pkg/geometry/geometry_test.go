package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

func ts(hits []LocalHit) []float64 {
	out := make([]float64, len(hits))
	for i, h := range hits {
		out[i] = h.T
	}
	return out
}

func assertTuple(t *testing.T, expected, actual core.Tup) {
	t.Helper()
	assert.True(t, expected.ApproxEqual(actual), "expected %v, got %v", expected, actual)
}

func TestSphereIntersect(t *testing.T) {
	tests := []struct {
		name     string
		origin   core.Tup
		expected []float64
	}{
		{"two points", core.Point(0, 0, -5), []float64{4, 6}},
		{"tangent", core.Point(0, 1, -5), []float64{5, 5}},
		{"miss", core.Point(0, 2, -5), []float64{}},
		{"inside", core.Point(0, 0, 0), []float64{-1, 1}},
		{"behind", core.Point(0, 0, 5), []float64{-6, -4}},
	}

	s := &Sphere{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := s.LocalIntersect(core.NewRay(tt.origin, core.Vector(0, 0, 1)))
			assert.Equal(t, tt.expected, ts(hits))
		})
	}
}

func TestObjectIntersectTransformed(t *testing.T) {
	r := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))

	t.Run("scaled", func(t *testing.T) {
		o := NewSphere()
		o.SetTransform(core.Scaling(2, 2, 2))
		assert.Equal(t, []float64{3, 7}, ts(o.Intersect(r)))
	})

	t.Run("translated", func(t *testing.T) {
		o := NewSphere()
		o.SetTransform(core.Translation(5, 0, 0))
		assert.Empty(t, o.Intersect(r))
	})
}

func TestSphereNormal(t *testing.T) {
	s3 := math.Sqrt(3) / 3
	o := NewSphere()

	tests := []struct {
		point    core.Tup
		expected core.Tup
	}{
		{core.Point(1, 0, 0), core.Vector(1, 0, 0)},
		{core.Point(0, 1, 0), core.Vector(0, 1, 0)},
		{core.Point(0, 0, 1), core.Vector(0, 0, 1)},
		{core.Point(s3, s3, s3), core.Vector(s3, s3, s3)},
	}
	for _, tt := range tests {
		t.Run(tt.point.String(), func(t *testing.T) {
			n := o.NormalAt(tt.point, LocalHit{})
			assertTuple(t, tt.expected, n)
			assertTuple(t, n.Normalize(), n)
		})
	}
}

func TestTransformedNormal(t *testing.T) {
	t.Run("translated sphere", func(t *testing.T) {
		o := NewSphere()
		o.SetTransform(core.Translation(0, 1, 0))
		n := o.NormalAt(core.Point(0, 1.70711, -0.70711), LocalHit{})
		assertTuple(t, core.Vector(0, 0.70711, -0.70711), n)
	})

	t.Run("scaled and rotated sphere", func(t *testing.T) {
		o := NewSphere()
		o.SetTransform(core.Scaling(1, 0.5, 1).Mul(core.RotationZ(math.Pi / 5)))
		n := o.NormalAt(core.Point(0, math.Sqrt(2)/2, -math.Sqrt(2)/2), LocalHit{})
		assertTuple(t, core.Vector(0, 0.97014, -0.24254), n)
		assert.Equal(t, 0.0, n.W)
	})
}

func TestPlane(t *testing.T) {
	p := &Plane{}

	tests := []struct {
		name      string
		origin    core.Tup
		direction core.Tup
		expected  []float64
	}{
		{"parallel", core.Point(0, 10, 0), core.Vector(0, 0, 1), []float64{}},
		{"coplanar", core.Point(0, 0, 0), core.Vector(0, 0, 1), []float64{}},
		{"from above", core.Point(0, 1, 0), core.Vector(0, -1, 0), []float64{1}},
		{"from below", core.Point(0, -1, 0), core.Vector(0, 1, 0), []float64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := p.LocalIntersect(core.NewRay(tt.origin, tt.direction))
			assert.Equal(t, tt.expected, ts(hits))
		})
	}

	for _, pt := range []core.Tup{core.Point(0, 0, 0), core.Point(10, 0, -10), core.Point(-5, 0, 150)} {
		assertTuple(t, core.Vector(0, 1, 0), p.LocalNormal(pt, LocalHit{}))
	}
}

func TestCubeIntersect(t *testing.T) {
	c := &Cube{}

	tests := []struct {
		name      string
		origin    core.Tup
		direction core.Tup
		expected  []float64
	}{
		{"+x", core.Point(5, 0.5, 0), core.Vector(-1, 0, 0), []float64{4, 6}},
		{"-x", core.Point(-5, 0.5, 0), core.Vector(1, 0, 0), []float64{4, 6}},
		{"+y", core.Point(0.5, 5, 0), core.Vector(0, -1, 0), []float64{4, 6}},
		{"-y", core.Point(0.5, -5, 0), core.Vector(0, 1, 0), []float64{4, 6}},
		{"+z", core.Point(0.5, 0, 5), core.Vector(0, 0, -1), []float64{4, 6}},
		{"-z", core.Point(0.5, 0, -5), core.Vector(0, 0, 1), []float64{4, 6}},
		{"inside", core.Point(0, 0.5, 0), core.Vector(0, 0, 1), []float64{-1, 1}},
		{"miss diagonal 1", core.Point(-2, 0, 0), core.Vector(0.2673, 0.5345, 0.8018), []float64{}},
		{"miss diagonal 2", core.Point(0, -2, 0), core.Vector(0.8018, 0.2673, 0.5345), []float64{}},
		{"miss diagonal 3", core.Point(0, 0, -2), core.Vector(0.5345, 0.8018, 0.2673), []float64{}},
		{"miss parallel z", core.Point(2, 0, 2), core.Vector(0, 0, -1), []float64{}},
		{"miss parallel y", core.Point(0, 2, 2), core.Vector(0, -1, 0), []float64{}},
		{"miss parallel x", core.Point(2, 2, 0), core.Vector(-1, 0, 0), []float64{}},
		{"along +x face", core.Point(1, 0, -5), core.Vector(0, 0, 1), []float64{4, 6}},
		{"along -x face", core.Point(-1, 0.5, -5), core.Vector(0, 0, 1), []float64{4, 6}},
		{"along +y face", core.Point(0.5, 1, 5), core.Vector(0, 0, -1), []float64{4, 6}},
		{"along -z edge", core.Point(-5, -1, -1), core.Vector(1, 0, 0), []float64{4, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := c.LocalIntersect(core.NewRay(tt.origin, tt.direction))
			assert.Equal(t, tt.expected, ts(hits))
		})
	}
}

func TestCubeNormal(t *testing.T) {
	c := &Cube{}
	tests := []struct {
		point    core.Tup
		expected core.Tup
	}{
		{core.Point(1, 0.5, -0.8), core.Vector(1, 0, 0)},
		{core.Point(-1, -0.2, 0.9), core.Vector(-1, 0, 0)},
		{core.Point(-0.4, 1, -0.1), core.Vector(0, 1, 0)},
		{core.Point(0.3, -1, -0.7), core.Vector(0, -1, 0)},
		{core.Point(-0.6, 0.3, 1), core.Vector(0, 0, 1)},
		{core.Point(0.4, 0.4, -1), core.Vector(0, 0, -1)},
		{core.Point(1, 1, 1), core.Vector(1, 0, 0)},
		{core.Point(-1, -1, -1), core.Vector(-1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.point.String(), func(t *testing.T) {
			assertTuple(t, tt.expected, c.LocalNormal(tt.point, LocalHit{}))
		})
	}
}

func TestTriangle(t *testing.T) {
	tri := NewTriangle(core.Point(0, 1, 0), core.Point(-1, 0, 0), core.Point(1, 0, 0))

	t.Run("construction", func(t *testing.T) {
		assertTuple(t, core.Vector(-1, -1, 0), tri.E1)
		assertTuple(t, core.Vector(1, -1, 0), tri.E2)
		assertTuple(t, core.Vector(0, 0, -1), tri.Normal)
	})

	t.Run("flat normal", func(t *testing.T) {
		assertTuple(t, tri.Normal, tri.LocalNormal(core.Point(0, 0.5, 0), LocalHit{}))
		assertTuple(t, tri.Normal, tri.LocalNormal(core.Point(0.5, 0.75, 0), LocalHit{}))
	})

	tests := []struct {
		name      string
		origin    core.Tup
		direction core.Tup
		expected  []float64
	}{
		{"parallel", core.Point(0, -1, -2), core.Vector(0, 1, 0), []float64{}},
		{"misses p1-p3 edge", core.Point(1, 1, -2), core.Vector(0, 0, 1), []float64{}},
		{"misses p1-p2 edge", core.Point(-1, 1, -2), core.Vector(0, 0, 1), []float64{}},
		{"misses p2-p3 edge", core.Point(0, -1, -2), core.Vector(0, 0, 1), []float64{}},
		{"strikes", core.Point(0, 0.5, -2), core.Vector(0, 0, 1), []float64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := tri.LocalIntersect(core.NewRay(tt.origin, tt.direction))
			assert.Equal(t, tt.expected, ts(hits))
		})
	}
}

func TestSmoothTriangle(t *testing.T) {
	tri := NewSmoothTriangle(
		core.Point(0, 1, 0), core.Point(-1, 0, 0), core.Point(1, 0, 0),
		core.Vector(0, 1, 0), core.Vector(-1, 0, 0), core.Vector(1, 0, 0),
	)

	t.Run("stores barycentric coordinates", func(t *testing.T) {
		hits := tri.LocalIntersect(core.NewRay(core.Point(-0.2, 0.3, -2), core.Vector(0, 0, 1)))
		require.Len(t, hits, 1)
		assert.InDelta(t, 0.45, hits[0].U, 1e-5)
		assert.InDelta(t, 0.25, hits[0].V, 1e-5)
	})

	t.Run("interpolates normal", func(t *testing.T) {
		o := NewObject(tri, material.DefaultMaterial())
		n := o.NormalAt(core.Point(0, 0, 0), LocalHit{T: 1, U: 0.45, V: 0.25})
		assertTuple(t, core.Vector(-0.5547, 0.83205, 0), n)
	})
}

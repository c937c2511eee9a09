package loaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func TestParseOBJIgnoresGibberish(t *testing.T) {
	data, err := ParseOBJ(strings.NewReader(`There was a young lady named Bright
who traveled much faster than light.
She set out one day
in a relative way,
and came back the previous night.`))
	require.NoError(t, err)
	assert.Equal(t, 5, data.Ignored)
	assert.Empty(t, data.Vertices)
}

func TestParseOBJVertices(t *testing.T) {
	data, err := ParseOBJ(strings.NewReader(`
v -1 1 0
v -1.0000 0.5000 0.0000
v 1 0 0
v 1 1 0
`))
	require.NoError(t, err)
	require.Len(t, data.Vertices, 4)
	assert.Equal(t, core.Point(-1, 1, 0), data.Vertices[0])
	assert.Equal(t, core.Point(-1, 0.5, 0), data.Vertices[1])
	assert.Equal(t, core.Point(1, 0, 0), data.Vertices[2])
	assert.Equal(t, core.Point(1, 1, 0), data.Vertices[3])
}

func TestParseOBJFaces(t *testing.T) {
	data, err := ParseOBJ(strings.NewReader(`
v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0
v 0 2 0

f 1 2 3
f 1 3 4 5
`))
	require.NoError(t, err)
	assert.Equal(t, []OBJFace{
		{V: [3]int{1, 2, 3}},
		{V: [3]int{1, 3, 4}},
		{V: [3]int{1, 4, 5}},
	}, data.Faces)

	tris := data.Triangles(core.IdentityMatrix(), false)
	require.Len(t, tris, 3)
	assert.Equal(t, data.Vertices[0], tris[0].P1)
	assert.Equal(t, data.Vertices[1], tris[0].P2)
	assert.Equal(t, data.Vertices[2], tris[0].P3)
	assert.Equal(t, data.Vertices[4], tris[2].P3)
}

func TestParseOBJNormals(t *testing.T) {
	data, err := ParseOBJ(strings.NewReader(`
v 0 1 0
v -1 0 0
v 1 0 0

vn -1 0 0
vn 1 2 3
vn 0 1 0

f 1//3 2//1 3//2
f 1/0/3 2/102/1 3/14/2
`))
	require.NoError(t, err)
	require.Len(t, data.Normals, 3)
	assert.Equal(t, core.Vector(1, 2, 3), data.Normals[1])

	expected := OBJFace{V: [3]int{1, 2, 3}, VN: [3]int{3, 1, 2}}
	assert.Equal(t, []OBJFace{expected, expected}, data.Faces)

	t.Run("smooth", func(t *testing.T) {
		tris := data.Triangles(core.IdentityMatrix(), true)
		require.Len(t, tris, 2)
		assert.True(t, tris[0].Smooth)
		assert.True(t, core.Vector(0, 1, 0).ApproxEqual(tris[0].N1))
		assert.True(t, core.Vector(-1, 0, 0).ApproxEqual(tris[0].N2))
		assert.True(t, core.Vector(1, 2, 3).Normalize().ApproxEqual(tris[0].N3))
	})

	t.Run("flat", func(t *testing.T) {
		tris := data.Triangles(core.IdentityMatrix(), false)
		require.Len(t, tris, 2)
		assert.False(t, tris[0].Smooth)
	})
}

func TestOBJTrianglesTransform(t *testing.T) {
	data, err := ParseOBJ(strings.NewReader("v 0 1 0\nv -1 0 0\nv 1 0 0\nf 1 2 3\nf 1 2 9\n"))
	require.NoError(t, err)

	tris := data.Triangles(core.Translation(0, 0, 5), false)
	require.Len(t, tris, 1, "out of range face is skipped")
	assert.True(t, core.Point(0, 1, 5).ApproxEqual(tris[0].P1))
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad number", "v 1 x 3\n"},
		{"short face", "v 0 0 0\nf 1 2\n"},
		{"bad face index", "f a b c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 1 0\nv -1 0 0\nv 1 0 0\nf 1 2 3\n"), 0o644))

	data, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Len(t, data.Faces, 1)

	_, err = LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)
}

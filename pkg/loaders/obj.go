package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
)

// OBJFace is a triangle of 1-based OBJ indices. Normal indices are zero when
// the face has no normals.
type OBJFace struct {
	V  [3]int
	VN [3]int
}

// HasNormals reports whether every vertex of the face references a normal
func (f OBJFace) HasNormals() bool {
	return f.VN[0] > 0 && f.VN[1] > 0 && f.VN[2] > 0
}

// OBJData contains the geometry parsed from a Wavefront OBJ file
type OBJData struct {
	Vertices []core.Tup // Vertex positions, index i holds OBJ index i+1
	Normals  []core.Tup // Vertex normals
	Faces    []OBJFace  // Triangles; polygons are fan-triangulated
	Ignored  int        // Lines with unsupported statements
}

// LoadOBJ loads a Wavefront OBJ file
func LoadOBJ(filename string) (*OBJData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParseOBJ reads vertices (v), normals (vn) and faces (f). Face vertices may
// be given as v, v/vt, v//vn or v/vt/vn; texture indices are ignored.
// Unknown statements are counted in Ignored.
func ParseOBJ(r io.Reader) (*OBJData, error) {
	data := &OBJData{}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseTriple(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNum, err)
			}
			data.Vertices = append(data.Vertices, core.Point(p[0], p[1], p[2]))
		case "vn":
			n, err := parseTriple(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNum, err)
			}
			data.Normals = append(data.Normals, core.Vector(n[0], n[1], n[2]))
		case "f":
			faces, err := parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNum, err)
			}
			data.Faces = append(data.Faces, faces...)
		default:
			data.Ignored++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ: %w", err)
	}
	return data, nil
}

func parseTriple(fields []string) ([3]float64, error) {
	var out [3]float64
	if len(fields) < 3 {
		return out, fmt.Errorf("expected 3 values, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return out, fmt.Errorf("invalid number %q: %w", fields[i], err)
		}
		out[i] = v
	}
	return out, nil
}

// parseFace fan-triangulates a polygon around its first vertex
func parseFace(fields []string) ([]OBJFace, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("expected at least 3 vertices, got %d", len(fields))
	}

	vs := make([]int, len(fields))
	vns := make([]int, len(fields))
	for i, field := range fields {
		parts := strings.Split(field, "/")
		v, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid vertex index %q: %w", field, err)
		}
		vs[i] = v
		if len(parts) == 3 && parts[2] != "" {
			vn, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid normal index %q: %w", field, err)
			}
			vns[i] = vn
		}
	}

	faces := make([]OBJFace, 0, len(fields)-2)
	for i := 1; i < len(fields)-1; i++ {
		faces = append(faces, OBJFace{
			V:  [3]int{vs[0], vs[i], vs[i+1]},
			VN: [3]int{vns[0], vns[i], vns[i+1]},
		})
	}
	return faces, nil
}

// Triangles builds one triangle per face with the vertices transformed into
// the model's space. With smooth set, faces that reference normals become
// smooth triangles. Faces with out of range indices are skipped.
func (d *OBJData) Triangles(transform core.Mat, smooth bool) []*geometry.Triangle {
	normalTransform := transform.Inverse().Transpose()
	vertex := func(i int) (core.Tup, bool) {
		if i < 1 || i > len(d.Vertices) {
			return core.Tup{}, false
		}
		return transform.MulTup(d.Vertices[i-1]), true
	}
	normal := func(i int) (core.Tup, bool) {
		if i < 1 || i > len(d.Normals) {
			return core.Tup{}, false
		}
		n := normalTransform.MulTup(d.Normals[i-1])
		n.W = 0
		return n.Normalize(), true
	}

	tris := make([]*geometry.Triangle, 0, len(d.Faces))
	for _, f := range d.Faces {
		p1, ok1 := vertex(f.V[0])
		p2, ok2 := vertex(f.V[1])
		p3, ok3 := vertex(f.V[2])
		if !ok1 || !ok2 || !ok3 {
			continue
		}

		if smooth && f.HasNormals() {
			n1, ok1 := normal(f.VN[0])
			n2, ok2 := normal(f.VN[1])
			n3, ok3 := normal(f.VN[2])
			if ok1 && ok2 && ok3 {
				tris = append(tris, geometry.NewSmoothTriangle(p1, p2, p3, n1, n2, n3))
				continue
			}
		}
		tris = append(tris, geometry.NewTriangle(p1, p2, p3))
	}
	return tris
}

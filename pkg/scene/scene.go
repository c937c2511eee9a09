package scene

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// Scene is a fully resolved scene: the world to trace, the camera that views
// it and the per-scene rendering settings
type Scene struct {
	World     *world.World
	Camera    renderer.CameraConfig
	Rendering renderer.RenderingSpec
}

// NewCamera builds the scene's camera
func (s *Scene) NewCamera() *renderer.Camera {
	return renderer.NewCamera(s.Camera)
}

// Load reads a YAML scene file. Relative texture and model paths are resolved
// against the file's directory.
func Load(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	defer file.Close()

	s, err := read(file, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse reads a YAML scene. Relative paths are resolved against the working
// directory.
func Parse(r io.Reader) (*Scene, error) {
	return read(r, "")
}

// ParseString is Parse for an in-memory document
func ParseString(doc string) (*Scene, error) {
	return Parse(strings.NewReader(doc))
}

func read(r io.Reader, baseDir string) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}

	f := sceneFile{Rendering: renderingSpec{MaxBounces: 64}}
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	res := &resolver{file: &f, baseDir: baseDir, textures: map[string]*material.Texture{}}
	return res.resolve()
}

// resolver turns the parsed file into a Scene, following named references.
// Reference chains are bounded so that a cycle is reported instead of
// recursing forever.
type resolver struct {
	file     *sceneFile
	baseDir  string
	textures map[string]*material.Texture // decoded textures by source key
}

const maxReferenceDepth = 32

func (r *resolver) resolve() (*Scene, error) {
	f := r.file

	cam, err := r.camera()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	rendering, err := r.rendering(cam)
	if err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}
	cam.Antialias = rendering.Antialias
	cam.MaxBounces = rendering.MaxBounces

	w := world.NewWorld()
	if w.Background, err = r.color(f.Background, 0); err != nil {
		return nil, fmt.Errorf("background_color: %w", err)
	}

	lightSpecs := f.Lights
	if f.Light != nil {
		lightSpecs = append([]lightSpec{*f.Light}, lightSpecs...)
	}
	if len(lightSpecs) == 0 {
		lightSpecs = []lightSpec{defaultLightSpec()}
	}
	for i, ls := range lightSpecs {
		l, err := r.light(ls)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		w.AddLight(l)
	}

	for i, spec := range f.Objects {
		objs, err := r.objects(spec)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, spec.Shape, err)
		}
		for _, o := range objs {
			w.AddObject(o)
		}
	}

	return &Scene{World: w, Camera: cam, Rendering: rendering}, nil
}

func (r *resolver) camera() (renderer.CameraConfig, error) {
	c := r.file.Camera
	cfg := renderer.DefaultCameraConfig()
	if c.Width <= 0 || c.Height <= 0 {
		return cfg, fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return cfg, fmt.Errorf("invalid fov %v", c.FOV)
	}
	from, err := point(c.From)
	if err != nil {
		return cfg, fmt.Errorf("from: %w", err)
	}
	to, err := point(c.To)
	if err != nil {
		return cfg, fmt.Errorf("to: %w", err)
	}
	up, err := vector(c.Up)
	if err != nil {
		return cfg, fmt.Errorf("up: %w", err)
	}

	forward := to.Sub(from)
	if forward.Magnitude() < core.Epsilon {
		return cfg, fmt.Errorf("from and to are the same point")
	}
	if up.Magnitude() < core.Epsilon || forward.Normalize().Cross(up.Normalize()).Magnitude() < core.Epsilon {
		return cfg, fmt.Errorf("up is parallel to the view direction")
	}
	view := core.ViewTransform(from, to, up)
	if _, err := view.TryInverse(); err != nil {
		return cfg, fmt.Errorf("degenerate view: %w", err)
	}

	cfg.Width = c.Width
	cfg.Height = c.Height
	cfg.FOV = core.Radians(c.FOV)
	cfg.Transform = view
	return cfg, nil
}

func (r *resolver) rendering(cam renderer.CameraConfig) (renderer.RenderingSpec, error) {
	rs := r.file.Rendering
	out := renderer.RenderingSpec{
		MaxBounces:    rs.MaxBounces,
		RandomizeRays: rs.RandomizeRays,
		Antialias:     rs.Antialias,
	}
	if rs.MaxBounces < 0 {
		return out, fmt.Errorf("invalid max_bounces %d", rs.MaxBounces)
	}
	if rs.Antialias < 0 {
		return out, fmt.Errorf("invalid antialias %d", rs.Antialias)
	}
	if rs.PartialRender != nil {
		out.PartialRender = make([]renderer.PixelCoord, 0, len(rs.PartialRender))
		for _, xy := range rs.PartialRender {
			if len(xy) != 2 {
				return out, fmt.Errorf("partial_render entries are [x, y], got %v", xy)
			}
			if xy[0] < 0 || xy[0] >= cam.Width || xy[1] < 0 || xy[1] >= cam.Height {
				return out, fmt.Errorf("partial_render pixel %v outside %dx%d", xy, cam.Width, cam.Height)
			}
			out.PartialRender = append(out.PartialRender, renderer.PixelCoord{X: xy[0], Y: xy[1]})
		}
	}
	return out, nil
}

func (r *resolver) light(ls lightSpec) (lights.Light, error) {
	intensity, err := r.color(ls.Intensity, 0)
	if err != nil {
		return nil, fmt.Errorf("intensity: %w", err)
	}

	switch strings.ToLower(ls.Kind) {
	case "", "point":
		pos, err := point(ls.Position)
		if err != nil {
			return nil, fmt.Errorf("position: %w", err)
		}
		return lights.NewPointLight(pos, intensity), nil
	case "area":
		corner, err := point(ls.Corner)
		if err != nil {
			return nil, fmt.Errorf("corner: %w", err)
		}
		uvec, err := vector(ls.UVec)
		if err != nil {
			return nil, fmt.Errorf("uvec: %w", err)
		}
		vvec, err := vector(ls.VVec)
		if err != nil {
			return nil, fmt.Errorf("vvec: %w", err)
		}
		if ls.USteps <= 0 || ls.VSteps <= 0 {
			return nil, fmt.Errorf("area light needs positive usteps and vsteps")
		}
		return lights.NewAreaLight(corner, uvec, ls.USteps, vvec, ls.VSteps, intensity), nil
	}
	return nil, fmt.Errorf("unknown light kind %q", ls.Kind)
}

func (r *resolver) objects(spec objectSpec) ([]*geometry.Object, error) {
	transform, err := r.transforms(spec.Transform, 0)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	if _, err := transform.TryInverse(); err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	mat := material.DefaultMaterial()
	if spec.Material != nil {
		if mat, err = r.material(*spec.Material, 0); err != nil {
			return nil, fmt.Errorf("material: %w", err)
		}
	}

	var normalMap material.Pattern
	if spec.NormalMap != nil {
		if normalMap, err = r.pattern(*spec.NormalMap, 0); err != nil {
			return nil, fmt.Errorf("normal_map: %w", err)
		}
	}

	single := func(g geometry.Geometry) []*geometry.Object {
		o := geometry.NewObject(g, mat)
		o.SetTransform(transform)
		o.NormalMap = normalMap
		return []*geometry.Object{o}
	}

	switch strings.ToLower(spec.Shape) {
	case "sphere":
		return single(&geometry.Sphere{}), nil
	case "plane":
		return single(&geometry.Plane{}), nil
	case "cube":
		return single(&geometry.Cube{}), nil
	case "tri", "triangle":
		p1, err1 := point(spec.P1)
		p2, err2 := point(spec.P2)
		p3, err3 := point(spec.P3)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("tri needs points p1, p2 and p3")
		}
		return single(geometry.NewTriangle(p1, p2, p3)), nil
	case "model":
		if spec.Model == nil {
			return nil, fmt.Errorf("model shape needs a model")
		}
		data, err := r.model(*spec.Model, 0)
		if err != nil {
			return nil, fmt.Errorf("model: %w", err)
		}
		// model vertices are baked into world space
		tris := data.Triangles(transform, spec.Smooth)
		objs := make([]*geometry.Object, 0, len(tris))
		for _, tri := range tris {
			o := geometry.NewObject(tri, mat)
			o.NormalMap = normalMap
			objs = append(objs, o)
		}
		return objs, nil
	}
	return nil, fmt.Errorf("unknown shape %q", spec.Shape)
}

// transforms composes a transform list the way core.Chain does: the last
// entry is applied to the object first
func (r *resolver) transforms(list []transformSpec, depth int) (core.Mat, error) {
	if depth > maxReferenceDepth {
		return core.Mat{}, fmt.Errorf("transform groups nested too deeply")
	}

	m := core.IdentityMatrix()
	for _, t := range list {
		var next core.Mat
		a := t.Args
		switch t.Op {
		case "group":
			group, ok := r.file.Groups[t.Group]
			if !ok {
				return core.Mat{}, fmt.Errorf("could not find transform group %q", t.Group)
			}
			g, err := r.transforms(group, depth+1)
			if err != nil {
				return core.Mat{}, fmt.Errorf("group %q: %w", t.Group, err)
			}
			next = g
		case "translate":
			next = core.Translation(a[0], a[1], a[2])
		case "scale":
			next = core.Scaling(a[0], a[1], a[2])
		case "rotate_x":
			next = core.RotationX(core.Radians(a[0]))
		case "rotate_y":
			next = core.RotationY(core.Radians(a[0]))
		case "rotate_z":
			next = core.RotationZ(core.Radians(a[0]))
		case "rotate":
			next = core.Chain(
				core.RotationZ(core.Radians(a[2])),
				core.RotationY(core.Radians(a[1])),
				core.RotationX(core.Radians(a[0])),
			)
		case "shear":
			next = core.Shearing(a[0], a[1], a[2], a[3], a[4], a[5])
		default:
			return core.Mat{}, fmt.Errorf("unknown transform %q", t.Op)
		}
		m = m.Mul(next)
	}
	return m, nil
}

func (r *resolver) color(c colorSpec, depth int) (core.Tup, error) {
	if c.rgb != nil {
		return core.Color(c.rgb[0], c.rgb[1], c.rgb[2]), nil
	}
	if c.ref == "" {
		return core.Black, nil
	}
	if depth > maxReferenceDepth {
		return core.Tup{}, fmt.Errorf("color %q: references nested too deeply", c.ref)
	}
	named, ok := r.file.Colors[c.ref]
	if !ok {
		return core.Tup{}, fmt.Errorf("could not find color %q", c.ref)
	}
	return r.color(named, depth+1)
}

func (r *resolver) material(ms materialSpec, depth int) (material.Material, error) {
	if ms.phong == nil {
		if depth > maxReferenceDepth {
			return material.Material{}, fmt.Errorf("material %q: references nested too deeply", ms.ref)
		}
		named, ok := r.file.Materials[ms.ref]
		if !ok {
			return material.Material{}, fmt.Errorf("could not find material %q", ms.ref)
		}
		return r.material(named, depth+1)
	}

	p := ms.phong
	color, err := r.color(p.Color, 0)
	if err != nil {
		return material.Material{}, fmt.Errorf("color: %w", err)
	}
	m := material.Material{
		Color:           color,
		Ambient:         p.Ambient,
		Diffuse:         p.Diffuse,
		Specular:        p.Specular,
		Shininess:       p.Shininess,
		Reflective:      p.Reflective,
		Transparency:    p.Transparency,
		RefractiveIndex: p.RefractiveIndex,
		LightThrough:    p.LightThrough,
	}
	if p.Pattern != nil {
		if m.Pattern, err = r.pattern(*p.Pattern, 0); err != nil {
			return material.Material{}, fmt.Errorf("pattern: %w", err)
		}
	}
	return m, nil
}

// transformable is implemented by every pattern that carries its own
// transform
type transformable interface {
	SetTransform(core.Mat)
}

func (r *resolver) pattern(ps patternSpec, depth int) (material.Pattern, error) {
	kind := strings.ToLower(ps.Type)
	if kind == "reference" {
		if depth > maxReferenceDepth {
			return nil, fmt.Errorf("pattern %q: references nested too deeply", ps.Name)
		}
		named, ok := r.file.Patterns[ps.Name]
		if !ok {
			return nil, fmt.Errorf("could not find pattern %q", ps.Name)
		}
		return r.pattern(named, depth+1)
	}

	var pat material.Pattern
	switch kind {
	case "stripe", "gradient", "ring", "checker":
		a, err := r.color(ps.ColorA, 0)
		if err != nil {
			return nil, fmt.Errorf("color_a: %w", err)
		}
		b, err := r.color(ps.ColorB, 0)
		if err != nil {
			return nil, fmt.Errorf("color_b: %w", err)
		}
		switch kind {
		case "stripe":
			pat = material.NewStripePattern(a, b)
		case "gradient":
			pat = material.NewGradientPattern(a, b)
		case "ring":
			pat = material.NewRingPattern(a, b)
		default:
			pat = material.NewCheckerPattern(a, b)
		}
	case "mandelbrot":
		c, err := r.color(ps.Color, 0)
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		pat = material.NewMandelbrotPattern(c)
	case "uv":
		uv, err := r.uvPattern(ps)
		if err != nil {
			return nil, err
		}
		pat = uv
	default:
		return nil, fmt.Errorf("unknown pattern type %q", ps.Type)
	}

	if len(ps.Transform) > 0 {
		m, err := r.transforms(ps.Transform, 0)
		if err != nil {
			return nil, fmt.Errorf("%s transform: %w", kind, err)
		}
		if _, err := m.TryInverse(); err != nil {
			return nil, fmt.Errorf("%s transform: %w", kind, err)
		}
		pat.(transformable).SetTransform(m)
	}
	return pat, nil
}

func (r *resolver) uvPattern(ps patternSpec) (*material.UVPattern, error) {
	var mapping material.UVMapping
	switch strings.ToLower(ps.Mapping) {
	case "spherical":
		mapping = material.SphericalMap
	case "planar":
		mapping = material.PlanarMap
	case "cubical":
		mapping = material.CubicalMap
	default:
		return nil, fmt.Errorf("unknown uv mapping %q", ps.Mapping)
	}
	if ps.Source == nil {
		return nil, fmt.Errorf("uv pattern needs a pattern")
	}

	src := ps.Source
	switch strings.ToLower(src.Type) {
	case "checker":
		a, err := r.color(src.ColorA, 0)
		if err != nil {
			return nil, fmt.Errorf("color_a: %w", err)
		}
		b, err := r.color(src.ColorB, 0)
		if err != nil {
			return nil, fmt.Errorf("color_b: %w", err)
		}
		if src.Width <= 0 || src.Height <= 0 {
			return nil, fmt.Errorf("uv checker needs positive width and height")
		}
		return material.NewUVPattern(mapping, material.UVChecker{Width: src.Width, Height: src.Height, A: a, B: b}), nil
	case "image":
		if src.Texture == nil {
			return nil, fmt.Errorf("uv image needs a texture")
		}
		tex, err := r.texture(*src.Texture, 0)
		if err != nil {
			return nil, fmt.Errorf("texture: %w", err)
		}
		return material.NewUVPattern(mapping, material.UVImage{Texture: tex}), nil
	case "cube_image":
		var cube material.UVCubeImage
		faces := []struct {
			name string
			spec *sourceSpec
			dst  **material.Texture
		}{
			{"left", src.Left, &cube.Left},
			{"right", src.Right, &cube.Right},
			{"front", src.Front, &cube.Front},
			{"back", src.Back, &cube.Back},
			{"top", src.Top, &cube.Up},
			{"bottom", src.Bottom, &cube.Down},
		}
		for _, face := range faces {
			if face.spec == nil {
				continue
			}
			tex, err := r.texture(*face.spec, 0)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", face.name, err)
			}
			*face.dst = tex
		}
		return material.NewUVPattern(mapping, cube), nil
	}
	return nil, fmt.Errorf("unknown uv pattern type %q", src.Type)
}

func (r *resolver) texture(ss sourceSpec, depth int) (*material.Texture, error) {
	switch {
	case ss.Name != "":
		if depth > maxReferenceDepth {
			return nil, fmt.Errorf("texture %q: references nested too deeply", ss.Name)
		}
		named, ok := r.file.Textures[ss.Name]
		if !ok {
			return nil, fmt.Errorf("could not find texture %q", ss.Name)
		}
		return r.texture(named, depth+1)
	case ss.Path != "":
		key := "path:" + ss.Path
		if tex, ok := r.textures[key]; ok {
			return tex, nil
		}
		tex, err := loaders.LoadImage(r.path(ss.Path))
		if err != nil {
			return nil, err
		}
		r.textures[key] = tex
		return tex, nil
	case ss.Data != "":
		return loaders.DecodeBase64Image(ss.Data)
	}
	return nil, fmt.Errorf("texture needs a name, path or data")
}

func (r *resolver) model(ss sourceSpec, depth int) (*loaders.OBJData, error) {
	switch {
	case ss.Name != "":
		if depth > maxReferenceDepth {
			return nil, fmt.Errorf("model %q: references nested too deeply", ss.Name)
		}
		named, ok := r.file.Models[ss.Name]
		if !ok {
			return nil, fmt.Errorf("could not find model %q", ss.Name)
		}
		return r.model(named, depth+1)
	case ss.Path != "":
		return loaders.LoadOBJ(r.path(ss.Path))
	case ss.Data != "":
		raw, err := base64.StdEncoding.DecodeString(ss.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 model: %w", err)
		}
		return loaders.ParseOBJ(bytes.NewReader(raw))
	}
	return nil, fmt.Errorf("model needs a name, path or data")
}

func (r *resolver) path(p string) string {
	if r.baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.baseDir, p)
}

func point(v []float64) (core.Tup, error) {
	if len(v) != 3 {
		return core.Tup{}, fmt.Errorf("expected [x, y, z], got %v", v)
	}
	return core.Point(v[0], v[1], v[2]), nil
}

func vector(v []float64) (core.Tup, error) {
	if len(v) != 3 {
		return core.Tup{}, fmt.Errorf("expected [x, y, z], got %v", v)
	}
	return core.Vector(v[0], v[1], v[2]), nil
}

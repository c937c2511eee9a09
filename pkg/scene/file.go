package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// sceneFile is the YAML layout of a scene. Named sections (groups, colors,
// materials, patterns, textures, models) hold entries that objects refer to
// by name.
type sceneFile struct {
	Camera     cameraSpec                 `yaml:"camera"`
	Background colorSpec                  `yaml:"background_color"`
	Light      *lightSpec                 `yaml:"light"`
	Lights     []lightSpec                `yaml:"lights"`
	Rendering  renderingSpec              `yaml:"rendering"`
	Objects    []objectSpec               `yaml:"objects"`
	Groups     map[string][]transformSpec `yaml:"groups"`
	Colors     map[string]colorSpec       `yaml:"colors"`
	Materials  map[string]materialSpec    `yaml:"materials"`
	Patterns   map[string]patternSpec     `yaml:"patterns"`
	Textures   map[string]sourceSpec      `yaml:"textures"`
	Models     map[string]sourceSpec      `yaml:"models"`
}

type cameraSpec struct {
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
	FOV    float64   `yaml:"fov"` // degrees
	From   []float64 `yaml:"from"`
	To     []float64 `yaml:"to"`
	Up     []float64 `yaml:"up"`
}

type lightSpec struct {
	Kind      string    `yaml:"kind"` // point (default) or area
	Position  []float64 `yaml:"position"`
	Intensity colorSpec `yaml:"intensity"`

	// area lights only
	Corner []float64 `yaml:"corner"`
	UVec   []float64 `yaml:"uvec"`
	VVec   []float64 `yaml:"vvec"`
	USteps int       `yaml:"usteps"`
	VSteps int       `yaml:"vsteps"`
}

func defaultLightSpec() lightSpec {
	return lightSpec{
		Kind:      "point",
		Position:  []float64{-10, 10, -10},
		Intensity: colorSpec{rgb: &[3]float64{1, 1, 1}},
	}
}

func (l *lightSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain lightSpec
	*l = defaultLightSpec()
	return unmarshal((*plain)(l))
}

type renderingSpec struct {
	MaxBounces    int     `yaml:"max_bounces"`
	RandomizeRays bool    `yaml:"randomize_rays"`
	Antialias     int     `yaml:"antialias"`
	PartialRender [][]int `yaml:"partial_render"`
}

func (r *renderingSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain renderingSpec
	*r = renderingSpec{MaxBounces: 64}
	return unmarshal((*plain)(r))
}

type objectSpec struct {
	Shape     string          `yaml:"shape"` // sphere, plane, cube, tri or model
	Transform []transformSpec `yaml:"transform"`
	Material  *materialSpec   `yaml:"material"`
	NormalMap *patternSpec    `yaml:"normal_map"`

	// tri
	P1 []float64 `yaml:"p1"`
	P2 []float64 `yaml:"p2"`
	P3 []float64 `yaml:"p3"`

	// model
	Model  *sourceSpec `yaml:"model"`
	Smooth bool        `yaml:"smooth"`
}

// materialSpec is either the name of an entry in materials or an inline
// Phong material. Inline fields left out take the default material's values.
type materialSpec struct {
	ref   string
	phong *phongSpec
}

type phongSpec struct {
	Color           colorSpec    `yaml:"color"`
	Ambient         float64      `yaml:"ambient"`
	Diffuse         float64      `yaml:"diffuse"`
	Specular        float64      `yaml:"specular"`
	Shininess       float64      `yaml:"shininess"`
	Reflective      float64      `yaml:"reflective"`
	Transparency    float64      `yaml:"transparency"`
	RefractiveIndex float64      `yaml:"refractive_index"`
	Pattern         *patternSpec `yaml:"pattern"`
	LightThrough    bool         `yaml:"light_through"`
}

func defaultPhongSpec() phongSpec {
	return phongSpec{
		Color:           colorSpec{rgb: &[3]float64{1, 1, 1}},
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		RefractiveIndex: 1,
	}
}

func (m *materialSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		m.ref = name
		return nil
	}
	p := defaultPhongSpec()
	if err := unmarshal(&p); err != nil {
		return err
	}
	m.phong = &p
	return nil
}

// patternSpec describes a pattern by its type. A pattern of type reference
// names an entry in patterns.
type patternSpec struct {
	Type      string          `yaml:"type"`
	Name      string          `yaml:"name"`
	ColorA    colorSpec       `yaml:"color_a"`
	ColorB    colorSpec       `yaml:"color_b"`
	Color     colorSpec       `yaml:"color"`
	Transform []transformSpec `yaml:"transform"`

	// uv
	Mapping string  `yaml:"mapping"` // spherical, planar or cubical
	Source  *uvSpec `yaml:"pattern"`
}

// uvSpec describes what a uv pattern draws in texture space
type uvSpec struct {
	Type    string      `yaml:"type"` // checker, image or cube_image
	ColorA  colorSpec   `yaml:"color_a"`
	ColorB  colorSpec   `yaml:"color_b"`
	Width   int         `yaml:"width"`
	Height  int         `yaml:"height"`
	Texture *sourceSpec `yaml:"texture"`
	Left    *sourceSpec `yaml:"left"`
	Right   *sourceSpec `yaml:"right"`
	Front   *sourceSpec `yaml:"front"`
	Back    *sourceSpec `yaml:"back"`
	Top     *sourceSpec `yaml:"top"`
	Bottom  *sourceSpec `yaml:"bottom"`
}

// sourceSpec locates a texture or model: a named entry, a file path or
// base64 encoded data
type sourceSpec struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Data string `yaml:"data"`
}

// colorSpec is a color given as [r, g, b], as a hex value or as the name of an
// entry in colors. A list of integers is read as 0-255 channels, any float in
// the list makes it a 0-1 list. Hex values are written 0xrrggbb or "#rrggbb".
type colorSpec struct {
	ref string
	rgb *[3]float64
}

func (c *colorSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	// replaces any default the enclosing spec was seeded with
	*c = colorSpec{}

	switch v := raw.(type) {
	case string:
		if strings.HasPrefix(v, "#") {
			hex, err := strconv.ParseUint(v[1:], 16, 32)
			if err != nil || len(v) != 7 {
				return fmt.Errorf("invalid hex color %q", v)
			}
			c.rgb = hexColor(hex)
			return nil
		}
		c.ref = v
		return nil
	case int:
		if v < 0 {
			return fmt.Errorf("invalid hex color %d", v)
		}
		c.rgb = hexColor(uint64(v))
		return nil
	case []interface{}:
		return c.fromList(v)
	}
	return fmt.Errorf("invalid color %v", raw)
}

func (c *colorSpec) fromList(list []interface{}) error {
	if len(list) != 3 {
		return fmt.Errorf("color needs 3 channels, got %d", len(list))
	}

	var rgb [3]float64
	ints := true
	for i, item := range list {
		switch n := item.(type) {
		case int:
			rgb[i] = float64(n)
		case float64:
			rgb[i] = n
			ints = false
		default:
			return fmt.Errorf("invalid color channel %v", item)
		}
	}
	if ints {
		for i := range rgb {
			if rgb[i] < 0 || rgb[i] > 255 {
				return fmt.Errorf("color channel %v out of range 0-255", rgb[i])
			}
			rgb[i] /= 255
		}
	}
	c.rgb = &rgb
	return nil
}

func hexColor(hex uint64) *[3]float64 {
	return &[3]float64{
		float64((hex>>16)&0xff) / 255,
		float64((hex>>8)&0xff) / 255,
		float64(hex&0xff) / 255,
	}
}

// transformSpec is one entry of a transform list, written as a flow
// sequence: [translate, x, y, z], [scale, x, y, z], [rotate_x, deg],
// [rotate_y, deg], [rotate_z, deg], [rotate, x, y, z], [shear, xy, xz, yx,
// yz, zx, zy] or [group, name].
type transformSpec struct {
	Op    string
	Args  []float64
	Group string
}

var transformArity = map[string]int{
	"translate": 3,
	"scale":     3,
	"rotate_x":  1,
	"rotate_y":  1,
	"rotate_z":  1,
	"rotate":    3,
	"shear":     6,
}

func (t *transformSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []interface{}
	if err := unmarshal(&list); err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("empty transform")
	}
	op, ok := list[0].(string)
	if !ok {
		return fmt.Errorf("transform must start with its name, got %v", list[0])
	}
	t.Op = op

	if op == "group" {
		if len(list) != 2 {
			return fmt.Errorf("group transform takes a name")
		}
		name, ok := list[1].(string)
		if !ok {
			return fmt.Errorf("group transform takes a name, got %v", list[1])
		}
		t.Group = name
		return nil
	}

	arity, known := transformArity[op]
	if !known {
		return fmt.Errorf("unknown transform %q", op)
	}
	if len(list)-1 != arity {
		return fmt.Errorf("%s takes %d values, got %d", op, arity, len(list)-1)
	}
	t.Args = make([]float64, arity)
	for i, item := range list[1:] {
		switch n := item.(type) {
		case int:
			t.Args[i] = float64(n)
		case float64:
			t.Args[i] = n
		default:
			return fmt.Errorf("%s: invalid number %v", op, item)
		}
	}
	return nil
}

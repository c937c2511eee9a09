package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{"cubes", "default", "patterns", "reflections"}, PresetNames())
}

func TestPresetsBuild(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			s, err := NewPreset(name, 32, 24)
			require.NoError(t, err)
			assert.Equal(t, 32, s.Camera.Width)
			assert.Equal(t, 24, s.Camera.Height)
			assert.NotEmpty(t, s.World.Objects)
			assert.NotEmpty(t, s.World.Lights)
			assert.Equal(t, s.Rendering.MaxBounces, s.Camera.MaxBounces)

			// the centre of every preset looks at something
			c := s.NewCamera().RenderPixel(s.World, 16, 12)
			assert.False(t, c.ApproxEqual(s.World.Background), "centre pixel shows only background")
		})
	}
}

func TestPresetDefaultSize(t *testing.T) {
	s, err := NewPreset("default", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 400, s.Camera.Width)
	assert.Equal(t, 300, s.Camera.Height)
}

func TestPresetErrors(t *testing.T) {
	_, err := NewPreset("nope", 10, 10)
	assert.Error(t, err)

	_, err = NewPreset("default", -1, 10)
	assert.Error(t, err)
}

func TestDefaultPresetMatchesDefaultWorld(t *testing.T) {
	s, err := NewPreset("default", 11, 11)
	require.NoError(t, err)
	require.Len(t, s.World.Objects, 2)
	assert.Equal(t, core.Color(0.8, 1.0, 0.6), s.World.Objects[0].Material.Color)
}

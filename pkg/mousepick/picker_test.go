package mousepick

import (
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var forwardRay = Ray{Direction: mgl32.Vec3{0, 0, -1}}

func TestPicker_HitBoundary(t *testing.T) {
	t.Parallel()

	const radius = float32(0.5)

	tests := []struct {
		name   string
		offset float32
		hit    bool
	}{
		{"inside", radius - 0.01, true},
		{"on the radius", radius, false},
		{"outside", radius + 0.01, false},
		{"center", 0, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, mode := range []Mode{ModeRayOrigin, ModeWorldOrigin} {
				p := Picker{Mode: mode}
				e := Sphere{ID: 1, Position: mgl32.Vec3{tt.offset, 0, -5}, Radius: radius}

				h, hit := p.Test(forwardRay, e)
				assert.Equal(t, tt.hit, hit, "mode %v", mode)
				assert.InDelta(t, tt.offset, h.Distance, 1e-6)
				assert.InDelta(t, 5, h.T, 1e-6)
				assert.Equal(t, 1, h.ID)
			}
		})
	}
}

func TestPicker_UpdateHighlights_Independent(t *testing.T) {
	t.Parallel()

	var entities []Pickable
	for i := 0; i < 8; i++ {
		entities = append(entities, Sphere{ID: i * 10, Position: mgl32.Vec3{float32(i) * 2, 0, -5}, Radius: 0.5})
	}

	for k := range entities {
		ray := Ray{
			Origin:    mgl32.Vec3{float32(k) * 2, 0, 0},
			Direction: mgl32.Vec3{0, 0, -1},
		}

		highlights := Picker{}.UpdateHighlights(ray, entities)
		require.Len(t, highlights, len(entities))

		for i, e := range entities {
			assert.Equal(t, i == k, highlights[e.PickID()], "ray over %d, entity %d", k, i)
		}

		assert.Equal(t, []int{k * 10}, highlights.Hovered())
	}
}

func TestPicker_UpdateHighlights_Overlapping(t *testing.T) {
	t.Parallel()

	entities := []Pickable{
		Sphere{ID: 1, Position: mgl32.Vec3{0, 0, -3}, Radius: 0.5},
		Sphere{ID: 2, Position: mgl32.Vec3{0.1, 0, -7}, Radius: 0.5},
		Sphere{ID: 3, Position: mgl32.Vec3{3, 0, -7}, Radius: 0.5},
	}

	hovered := Picker{}.UpdateHighlights(forwardRay, entities).Hovered()
	sort.Ints(hovered)

	assert.Equal(t, []int{1, 2}, hovered)
}

func TestPicker_Scenario(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	viewport := Viewport{Width: 1280, Height: 720}
	camera := CameraState{Position: mgl32.Vec3{0, 0, -10}}

	ray, err := ComputeRay(640, 360, viewport, camera, cfg.ProjectionMatrix(viewport))
	require.NoError(t, err)
	assert.Equal(t, camera.Position, ray.Origin)

	onAxis := Sphere{ID: 0, Position: mgl32.Vec3{0, 0, -15}, Radius: 0.25}
	offAxis := Sphere{ID: 1, Position: mgl32.Vec3{5, 0, -10}, Radius: 0.25}

	for _, mode := range []Mode{ModeRayOrigin, ModeWorldOrigin} {
		highlights := Picker{Mode: mode}.UpdateHighlights(ray, []Pickable{onAxis, offAxis})

		assert.Equal(t, Highlights{0: true, 1: false}, highlights, "mode %v", mode)
	}
}

// The two modes only agree while the ray starts at the world origin.
func TestPicker_Modes(t *testing.T) {
	t.Parallel()

	ray := Ray{Origin: mgl32.Vec3{5, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}
	e := Sphere{ID: 7, Position: mgl32.Vec3{5, 0, -3}, Radius: 0.5}

	// the zero value is the ray origin projection, not the legacy one
	assert.Equal(t, ModeRayOrigin, Picker{}.Mode)

	h, hit := Picker{}.Test(ray, e)
	assert.True(t, hit)
	assert.InDelta(t, 0, h.Distance, 1e-6)
	assert.Equal(t, mgl32.Vec3{5, 0, -3}, h.Point)

	h, hit = Picker{Mode: ModeWorldOrigin}.Test(ray, e)
	assert.False(t, hit)
	assert.InDelta(t, 5, h.Distance, 1e-6)
	assert.Equal(t, mgl32.Vec3{0, 0, -3}, h.Point)
}

func TestPicker_Nearest(t *testing.T) {
	t.Parallel()

	p := Picker{}

	_, ok := p.Nearest(forwardRay, nil)
	assert.False(t, ok)

	entities := []Pickable{
		Sphere{ID: 1, Position: mgl32.Vec3{0, 0, -7}, Radius: 0.5},
		Sphere{ID: 2, Position: mgl32.Vec3{0.2, 0, -3}, Radius: 0.5},
		Sphere{ID: 3, Position: mgl32.Vec3{0, 0, 2}, Radius: 0.5},  // behind
		Sphere{ID: 4, Position: mgl32.Vec3{4, 0, -1}, Radius: 0.5}, // miss
	}

	h, ok := p.Nearest(forwardRay, entities)
	require.True(t, ok)
	assert.Equal(t, 2, h.ID)
	assert.InDelta(t, 3, h.T, 1e-6)

	// same depth, the closer to the ray wins regardless of order
	entities = append(entities, Sphere{ID: 5, Position: mgl32.Vec3{0.1, 0, -3}, Radius: 0.5})

	h, ok = p.Nearest(forwardRay, entities)
	require.True(t, ok)
	assert.Equal(t, 5, h.ID)

	// full tie keeps the first
	entities = append(entities, Sphere{ID: 6, Position: mgl32.Vec3{0.1, 0, -3}, Radius: 0.5})

	h, ok = p.Nearest(forwardRay, entities)
	require.True(t, ok)
	assert.Equal(t, 5, h.ID)
}

func TestMode_String(t *testing.T) {
	t.Parallel()

	for _, m := range []Mode{ModeRayOrigin, ModeWorldOrigin} {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	assert.Equal(t, "unknown", Mode(42).String())

	_, err := ParseMode("sideways")
	assert.Error(t, err)
}

func TestPicker_Nearest_WorldOriginSkipsBehindCamera(t *testing.T) {
	t.Parallel()

	ray := Ray{Origin: mgl32.Vec3{0, 0, -10}, Direction: mgl32.Vec3{0, 0, -1}}
	entities := []Pickable{
		Sphere{ID: 1, Position: mgl32.Vec3{0, 0, -5}, Radius: 0.5}, // behind the camera, ahead of the world origin
		Sphere{ID: 2, Position: mgl32.Vec3{0, 0, -20}, Radius: 0.5},
	}

	p := Picker{Mode: ModeWorldOrigin}

	behind, hit := p.Test(ray, entities[0])
	require.True(t, hit)
	require.Greater(t, behind.T, float32(0))

	h, ok := p.Nearest(ray, entities)
	require.True(t, ok)
	assert.Equal(t, 2, h.ID)

	_, ok = p.Nearest(ray, entities[:1])
	assert.False(t, ok)
}

package mousepick

import (
	"bytes"
	"os"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Config holds the viewer settings that feed the ray caster and picker.
type Config struct {
	Projection ProjectionConfig `toml:"projection"`
	Viewport   Viewport         `toml:"viewport"`
	Camera     CameraConfig     `toml:"camera"`
	Picking    PickingConfig    `toml:"picking"`
	Board      BoardConfig      `toml:"board"`
}

type ProjectionConfig struct {
	// FieldOfView is the vertical field of view in degrees.
	FieldOfView float32 `toml:"fov"`
	Near        float32 `toml:"near"`
	Far         float32 `toml:"far"`
}

type CameraConfig struct {
	Position [3]float32 `toml:"position"`
	Pitch    float32    `toml:"pitch"`
	Yaw      float32    `toml:"yaw"`
}

type PickingConfig struct {
	NodeRadius float32 `toml:"node_radius"`
	// Mode is "ray-origin" or "world-origin".
	Mode string `toml:"mode"`
}

type BoardConfig struct {
	// Variant is "nine" or "twelve".
	Variant string `toml:"variant"`
}

// DefaultConfig is a 1280x720 view with a 45 degree lens looking down at the board.
func DefaultConfig() Config {
	return Config{
		Projection: ProjectionConfig{
			FieldOfView: 45,
			Near:        0.1,
			Far:         1500,
		},
		Viewport: Viewport{
			Width:  1280,
			Height: 720,
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 5, 7},
			Pitch:    35,
		},
		Picking: PickingConfig{
			NodeRadius: 0.25,
			Mode:       ModeRayOrigin.String(),
		},
		Board: BoardConfig{
			Variant: "nine",
		},
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %q", path)
	}

	cfg, err := ParseConfig(b)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to load config %q", path)
	}

	return cfg, nil
}

// ParseConfig decodes TOML over the defaults and validates the result.
// Unknown keys are rejected.
func ParseConfig(b []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the settings that would otherwise surface as degenerate rays.
func (c Config) Validate() error {
	p := c.Projection
	if !(p.FieldOfView > 0 && p.FieldOfView < 180) {
		return errors.Errorf("projection.fov must be in (0, 180), got %v", p.FieldOfView)
	}

	if !(p.Near > 0 && p.Far > p.Near) || math32.IsInf(p.Far, 0) {
		return errors.Errorf("projection needs 0 < near < far, got near=%v far=%v", p.Near, p.Far)
	}

	if !c.Viewport.valid() {
		return errors.Wrapf(ErrDegenerateViewport, "viewport %dx%d", c.Viewport.Width, c.Viewport.Height)
	}

	if !(c.Picking.NodeRadius > 0) {
		return errors.Errorf("picking.node_radius must be positive, got %v", c.Picking.NodeRadius)
	}

	if _, err := ParseMode(c.Picking.Mode); err != nil {
		return err
	}

	return nil
}

// ProjectionMatrix builds the perspective transform for viewport.
func (c Config) ProjectionMatrix(viewport Viewport) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Projection.FieldOfView), viewport.Aspect(), c.Projection.Near, c.Projection.Far)
}

// CameraState returns the configured starting camera, pitch clamped.
func (c Config) CameraState() CameraState {
	return CameraState{
		Position: mgl32.Vec3(c.Camera.Position),
		Pitch:    c.Camera.Pitch,
		Yaw:      c.Camera.Yaw,
	}.Clamped()
}

// Picker returns a Picker in the configured mode. The config must be valid.
func (c Config) Picker() Picker {
	mode, _ := ParseMode(c.Picking.Mode)

	return Picker{Mode: mode}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case ModeRayOrigin.String(), "":
		return ModeRayOrigin, nil
	case ModeWorldOrigin.String():
		return ModeWorldOrigin, nil
	}

	return 0, errors.Errorf("unknown picking mode %q", s)
}

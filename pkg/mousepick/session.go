package mousepick

import (
	"log/slog"
	"maps"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameInput is everything a frame needs to pick, gathered after the camera update.
type FrameInput struct {
	CursorX, CursorY float32
	Viewport         Viewport
	Camera           CameraState
	Projection       mgl32.Mat4
	Entities         []Pickable
}

// Frame is the result of one pick update.
type Frame struct {
	Ray        Ray
	Highlights Highlights
	Nearest    Hit
	HasNearest bool
	// Skipped is set when the inputs were degenerate and the previous
	// frame's ray and highlights were carried over.
	Skipped bool
	Err     error
}

// Session runs the ray caster and picker once per frame and remembers the last
// good frame. It is not safe for concurrent use.
type Session struct {
	Picker Picker
	Logger *slog.Logger

	last     Frame
	skipping bool
}

// NewSession returns a session that logs skipped frames to logger.
// A nil logger uses slog.Default.
func NewSession(picker Picker, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		Picker: picker,
		Logger: logger,
	}
}

// Step computes the ray for in and re-evaluates every entity. On a degenerate
// viewport or ray the pick update is skipped for this frame. Only the first
// frame of a skipped run is logged.
func (s *Session) Step(in FrameInput) Frame {
	ray, err := ComputeRay(in.CursorX, in.CursorY, in.Viewport, in.Camera, in.Projection)
	if err != nil {
		if !s.skipping {
			s.logger().Warn("skipping pick update",
				slog.String("error", err.Error()),
				slog.Int("width", in.Viewport.Width),
				slog.Int("height", in.Viewport.Height))
		}

		s.skipping = true

		f := s.last
		f.Highlights = maps.Clone(s.last.Highlights)
		f.Skipped = true
		f.Err = err

		return f
	}

	if s.skipping {
		s.logger().Info("resuming pick updates")
		s.skipping = false
	}

	f := Frame{
		Ray:        ray,
		Highlights: s.Picker.UpdateHighlights(ray, in.Entities),
	}
	f.Nearest, f.HasNearest = s.Picker.Nearest(ray, in.Entities)

	s.last = f

	return f
}

// Last returns the most recent frame that was not skipped.
func (s *Session) Last() Frame {
	return s.last
}

func (s *Session) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}

	return s.Logger
}

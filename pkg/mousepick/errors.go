package mousepick

import "github.com/pkg/errors"

var (
	// ErrDegenerateViewport is returned when the viewport has no area to unproject from.
	ErrDegenerateViewport = errors.New("degenerate viewport")
	// ErrDegenerateRay is returned when no finite unit direction can be derived.
	ErrDegenerateRay = errors.New("degenerate ray")
)

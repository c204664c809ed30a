package mousepick

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/saiko-tech/morris-picker/pkg/mousepick/collision"
)

// Pickable is a scene object that can be hovered by the cursor ray.
type Pickable interface {
	PickID() int
	PickPosition() mgl32.Vec3
	PickRadius() float32
}

// Sphere is a plain Pickable.
type Sphere struct {
	ID       int
	Position mgl32.Vec3
	Radius   float32
}

func (s Sphere) PickID() int              { return s.ID }
func (s Sphere) PickPosition() mgl32.Vec3 { return s.Position }
func (s Sphere) PickRadius() float32      { return s.Radius }

// Mode selects the point the entity position is projected from.
type Mode int

const (
	// ModeRayOrigin projects the vector from the ray origin to the entity.
	ModeRayOrigin Mode = iota
	// ModeWorldOrigin projects the raw entity position, which only agrees with
	// ModeRayOrigin while the camera sits near the world origin.
	ModeWorldOrigin
)

func (m Mode) String() string {
	switch m {
	case ModeRayOrigin:
		return "ray-origin"
	case ModeWorldOrigin:
		return "world-origin"
	}

	return "unknown"
}

// Hit is the outcome of testing one entity.
type Hit struct {
	ID int
	// T is the ray parameter of the point closest to the entity.
	T float32
	// Distance is the perpendicular distance from the entity to the ray.
	Distance float32
	Point    mgl32.Vec3
}

// Highlights maps entity IDs to whether the ray currently hovers them.
type Highlights map[int]bool

// Hovered returns the IDs that are highlighted, in no particular order.
func (h Highlights) Hovered() []int {
	var ids []int

	for id, on := range h {
		if on {
			ids = append(ids, id)
		}
	}

	return ids
}

// Picker tests rays against entities with a linear scan.
type Picker struct {
	// Mode defaults to ModeRayOrigin. The zero value is not the legacy
	// world origin projection, set ModeWorldOrigin for that.
	Mode Mode
}

// Test reports whether ray passes strictly within the entity's pick radius.
func (p Picker) Test(ray Ray, entity Pickable) (Hit, bool) {
	origin := ray.Origin
	if p.Mode == ModeWorldOrigin {
		origin = mgl32.Vec3{}
	}

	r := collision.RayClosestApproach(origin, ray.Direction, entity.PickPosition(), entity.PickRadius())

	return Hit{
		ID:       entity.PickID(),
		T:        r.T,
		Distance: r.Distance,
		Point:    r.Point,
	}, r.Hit
}

// UpdateHighlights evaluates every entity independently against ray.
// Each entity gets an entry, false on a miss.
func (p Picker) UpdateHighlights(ray Ray, entities []Pickable) Highlights {
	highlights := make(Highlights, len(entities))

	for _, e := range entities {
		_, hit := p.Test(ray, e)
		highlights[e.PickID()] = hit
	}

	return highlights
}

// Nearest returns the hit closest along the ray. Entities behind the ray origin
// are ignored in both modes, depth is always measured from ray.Origin. Equal
// depth prefers the smaller distance, then the earlier entity.
func (p Picker) Nearest(ray Ray, entities []Pickable) (Hit, bool) {
	var (
		best      Hit
		bestDepth float32
		found     bool
	)

	for _, e := range entities {
		h, hit := p.Test(ray, e)
		if !hit {
			continue
		}

		depth := e.PickPosition().Sub(ray.Origin).Dot(ray.Direction)
		if depth < 0 {
			continue
		}

		if !found || depth < bestDepth || (depth == bestDepth && h.Distance < best.Distance) {
			best = h
			bestDepth = depth
			found = true
		}
	}

	return best, found
}

package collision

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const mollerTrumboreEpsilon = float32(0.0000001)

// RayCastResult describes where a ray meets a primitive.
// T is the ray parameter of Point, i.e. Point = origin + direction*T.
// Distance is only filled in by RayClosestApproach.
type RayCastResult struct {
	T        float32
	Hit      bool
	Point    mgl32.Vec3
	Distance float32
}

// RayClosestApproach finds the point on the line through origin along direction
// that is closest to target and reports a hit if it lies strictly within radius.
// direction must be normalized.
func RayClosestApproach(origin, direction, target mgl32.Vec3, radius float32) (r RayCastResult) {
	r.T = target.Sub(origin).Dot(direction)
	r.Point = origin.Add(direction.Mul(r.T))
	r.Distance = target.Sub(r.Point).Len()
	r.Hit = r.Distance < radius

	return r
}

// RayIntersectsAxisAlignedBoundingBox determines whether ray intersects an axis-aligned bounding box.
// based on https://github.com/Galaco/kero/blob/dedc4e04e830cc2597308cbfe9e9bcbe30491fae/physics/collision/ray.go#L73
func RayIntersectsAxisAlignedBoundingBox(origin, direction, min, max mgl32.Vec3) (r RayCastResult) {
	// Any component of direction could be 0!
	// Address this by using a small number, close to
	// 0 in case any of directions components are 0
	dir := direction
	for i := range dir {
		if dir[i] == 0 {
			dir[i] = 0.00001
		}
	}

	t1 := (min[0] - origin[0]) / dir[0]
	t2 := (max[0] - origin[0]) / dir[0]
	t3 := (min[1] - origin[1]) / dir[1]
	t4 := (max[1] - origin[1]) / dir[1]
	t5 := (min[2] - origin[2]) / dir[2]
	t6 := (max[2] - origin[2]) / dir[2]

	tmin := math32.Max(math32.Max(math32.Min(t1, t2), math32.Min(t3, t4)), math32.Min(t5, t6))
	tmax := math32.Min(math32.Min(math32.Max(t1, t2), math32.Max(t3, t4)), math32.Max(t5, t6))

	// box is entirely behind the origin
	if tmax < 0 {
		return r
	}

	if tmin > tmax {
		return r
	}

	t := tmin

	// origin is inside the box, the exit point is the only one in front
	if tmin < 0 {
		t = tmax
	}

	r.Hit = true
	r.T = t
	r.Point = origin.Add(direction.Mul(t))

	return r
}

// RayIntersectsTriangle determines if a ray intersects a triangle using https://en.wikipedia.org/wiki/M%C3%B6ller%E2%80%93Trumbore_intersection_algorithm
// based on https://github.com/Galaco/kero/blob/dedc4e04e830cc2597308cbfe9e9bcbe30491fae/physics/collision/ray.go#L143
func RayIntersectsTriangle(origin, direction mgl32.Vec3, triangle [3]mgl32.Vec3) (r RayCastResult) {
	edge1 := triangle[1].Sub(triangle[0])
	edge2 := triangle[2].Sub(triangle[0])
	h := direction.Cross(edge2)
	a := edge1.Dot(h)

	if math32.Abs(a) < mollerTrumboreEpsilon {
		return r // parallel to the triangle plane
	}

	f := 1 / a
	s := origin.Sub(triangle[0])
	u := f * s.Dot(h)

	if u < 0 || u > 1 {
		return r
	}

	q := s.Cross(edge1)
	v := f * direction.Dot(q)

	if v < 0 || u+v > 1 {
		return r
	}

	t := f * edge2.Dot(q)

	// a line intersection behind the origin is not a ray intersection
	if t <= mollerTrumboreEpsilon {
		return r
	}

	r.Hit = true
	r.T = t
	r.Point = origin.Add(direction.Mul(t))

	return r
}

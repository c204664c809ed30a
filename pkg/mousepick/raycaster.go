// Package mousepick turns a cursor position into a world space ray and tests
// that ray against pickable scene objects.
package mousepick

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// minRayLength is the smallest world direction length that is still normalized.
const minRayLength = float32(1e-6)

// Viewport is the size of the drawable area in device pixels.
type Viewport struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Center returns the pixel coordinates of the middle of the viewport.
func (v Viewport) Center() (x, y float32) {
	return float32(v.Width) / 2, float32(v.Height) / 2
}

// Aspect is width over height.
func (v Viewport) Aspect() float32 {
	return float32(v.Width) / float32(v.Height)
}

func (v Viewport) valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Ray is a half-line in world space. Direction is always of unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ComputeRay unprojects the cursor (device pixels, origin top-left) through the
// projection and the camera's view transform.
// The result has no dependency on anything but its arguments.
func ComputeRay(cursorX, cursorY float32, viewport Viewport, camera CameraState, projection mgl32.Mat4) (Ray, error) {
	if !viewport.valid() {
		return Ray{}, errors.Wrapf(ErrDegenerateViewport, "viewport %dx%d", viewport.Width, viewport.Height)
	}

	ndc := toNormalizedDeviceCoordinates(cursorX, cursorY, viewport)
	clip := mgl32.Vec4{ndc[0], ndc[1], -1, 1}

	eye, err := toEyeCoordinates(clip, projection)
	if err != nil {
		return Ray{}, err
	}

	direction, err := toWorldCoordinates(eye, camera)
	if err != nil {
		return Ray{}, err
	}

	return Ray{
		Origin:    camera.Position,
		Direction: direction,
	}, nil
}

func toNormalizedDeviceCoordinates(x, y float32, viewport Viewport) mgl32.Vec2 {
	return mgl32.Vec2{
		(2*x)/float32(viewport.Width) - 1,
		(2*y)/float32(viewport.Height) - 1,
	}
}

// toEyeCoordinates points the unprojected vector down the eye's -Z and drops w,
// leaving a direction that the view transform only rotates.
func toEyeCoordinates(clip mgl32.Vec4, projection mgl32.Mat4) (mgl32.Vec4, error) {
	det := projection.Det()
	if det == 0 || math32.IsNaN(det) || math32.IsInf(det, 0) {
		return mgl32.Vec4{}, errors.Wrapf(ErrDegenerateRay, "projection is not invertible (det=%v)", det)
	}

	eye := projection.Inv().Mul4x1(clip)

	return mgl32.Vec4{eye[0], eye[1], -1, 0}, nil
}

func toWorldCoordinates(eye mgl32.Vec4, camera CameraState) (mgl32.Vec3, error) {
	world := camera.ViewMatrix().Inv().Mul4x1(eye).Vec3()

	// scale by the largest component first so squaring cannot overflow
	largest := math32.Max(math32.Abs(world[0]), math32.Max(math32.Abs(world[1]), math32.Abs(world[2])))
	if largest < minRayLength || math32.IsNaN(largest) || math32.IsInf(largest, 0) {
		return mgl32.Vec3{}, errors.Wrapf(ErrDegenerateRay, "world direction %v has largest component %v", world, largest)
	}

	scaled := world.Mul(1 / largest)

	return scaled.Mul(1 / scaled.Len()), nil
}

package mousepick

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxPitch bounds the camera pitch in degrees, looking straight up or down flips the view.
	MaxPitch = float32(89)

	lookSensitivity = float32(0.1)
	moveStep        = float32(0.4)
)

// MoveDirection is a camera translation relative to where it looks.
type MoveDirection int

const (
	MoveForward MoveDirection = iota
	MoveBackward
	MoveLeft
	MoveRight
)

// CameraState is the orientation and position of the viewer.
// Pitch and Yaw are in degrees.
type CameraState struct {
	Position mgl32.Vec3
	Pitch    float32
	Yaw      float32
}

// Clamped returns a copy of c with Pitch limited to [-MaxPitch, MaxPitch].
func (c CameraState) Clamped() CameraState {
	c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)

	return c
}

// Look turns the camera by a cursor delta in pixels.
func (c *CameraState) Look(dx, dy float32) {
	c.Yaw -= dx * lookSensitivity
	c.Pitch += dy * lookSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)
}

// Move steps the camera one unit of movement in the given direction.
func (c *CameraState) Move(direction MoveDirection) {
	look := c.LookDirection()

	switch direction {
	case MoveForward:
		c.Position = c.Position.Add(look.Mul(moveStep))
	case MoveBackward:
		c.Position = c.Position.Sub(look.Mul(moveStep))
	case MoveLeft, MoveRight:
		right := look.Cross(mgl32.Vec3{0, 1, 0})
		if right.Len() < mgl32.Epsilon {
			return
		}

		right = right.Normalize().Mul(moveStep)
		if direction == MoveLeft {
			c.Position = c.Position.Sub(right)
		} else {
			c.Position = c.Position.Add(right)
		}
	}
}

// ViewMatrix builds the world to eye transform: pitch about X, then yaw about Y,
// then the translation by the negated position.
func (c CameraState) ViewMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(c.Pitch)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(c.Yaw))).
		Mul4(mgl32.Translate3D(-c.Position[0], -c.Position[1], -c.Position[2]))
}

// LookDirection is the world space forward axis of the camera, the eye space -Z
// carried through the inverse view rotation.
func (c CameraState) LookDirection() mgl32.Vec3 {
	return c.ViewMatrix().Inv().Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3().Normalize()
}

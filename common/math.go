package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TwoPi is a full turn in radians.
const TwoPi float32 = 2 * math32.Pi

// HalfPi is a quarter turn in radians; pitch is held within [-HalfPi, HalfPi].
const HalfPi float32 = math32.Pi / 2

// RigidTransform builds a 4x4 rotation + translation matrix from a position and
// Euler angles. The rotation order is Y * X * Z (yaw-pitch-roll). The returned
// matrix is column-major with the translation stored in column 3.
//
// Parameters:
//   - position: translation in world space
//   - yaw: rotation around the Y axis in radians
//   - pitch: rotation around the X axis in radians
//   - roll: rotation around the Z axis in radians
//
// Returns:
//   - mgl32.Mat4: the rigid transform
func RigidTransform(position mgl32.Vec3, yaw, pitch, roll float32) mgl32.Mat4 {
	rotation := mgl32.HomogRotate3DY(yaw).
		Mul4(mgl32.HomogRotate3DX(pitch)).
		Mul4(mgl32.HomogRotate3DZ(roll))

	rotation.SetCol(3, position.Vec4(1))
	return rotation
}

// BasisAxes reads the local right, up and forward axes straight from the first
// three columns of a transform. No renormalization is applied, so for a rigid
// transform the axes are unit length and for a scaled one they carry the scale.
//
// Parameters:
//   - m: column-major transform
//
// Returns:
//   - right: column 0 (x axis)
//   - up: column 1 (y axis)
//   - forward: column 2 (z axis)
func BasisAxes(m mgl32.Mat4) (right, up, forward mgl32.Vec3) {
	return m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()
}

// Translation returns the translation column of a column-major transform.
//
// Parameters:
//   - m: column-major transform
//
// Returns:
//   - mgl32.Vec3: the translation component
func Translation(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}

// WrapAngle reduces an angle by whole turns using a truncating float modulo.
// The sign of the input is kept, so the result lies in (-2π, 2π) and a
// negative angle stays negative.
//
// Parameters:
//   - angle: angle in radians
//
// Returns:
//   - float32: the wrapped angle in radians
func WrapAngle(angle float32) float32 {
	return math32.Mod(angle, TwoPi)
}

// ClampPitch limits a pitch angle to [-π/2, π/2] so the camera can look straight
// up or down but never flip over.
//
// Parameters:
//   - pitch: angle in radians
//
// Returns:
//   - float32: the clamped angle in radians
func ClampPitch(pitch float32) float32 {
	return Clamp(pitch, -HalfPi, HalfPi)
}

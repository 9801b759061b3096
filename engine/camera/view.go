package camera

import (
	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// View is the spatial pose of a camera: a world-space position plus yaw, pitch
// and roll in radians. Angles are stored as given; bounding them is the job of
// Camera.Update.
type View struct {
	// Position is the world-space camera location.
	Position mgl32.Vec3

	yaw   float32
	pitch float32
	roll  float32
}

// NewView creates a View from a position and Euler angles. No validation is performed.
//
// Parameters:
//   - position: world-space camera location
//   - yaw: rotation around the Y axis in radians
//   - pitch: rotation around the X axis in radians
//   - roll: rotation around the Z axis in radians
//
// Returns:
//   - View: the new pose
func NewView(position mgl32.Vec3, yaw, pitch, roll float32) View {
	return View{
		Position: position,
		yaw:      yaw,
		pitch:    pitch,
		roll:     roll,
	}
}

// Yaw returns the rotation around the Y axis in radians.
func (v View) Yaw() float32 { return v.yaw }

// Pitch returns the rotation around the X axis in radians.
func (v View) Pitch() float32 { return v.pitch }

// Roll returns the rotation around the Z axis in radians.
func (v View) Roll() float32 { return v.roll }

// CalcMatrix returns the rigid transform for this pose: rotation built from
// yaw, pitch and roll applied in Y-X-Z order, followed by translation to Position.
//
// Returns:
//   - mgl32.Mat4: column-major camera-to-world transform
func (v View) CalcMatrix() mgl32.Mat4 {
	return common.RigidTransform(v.Position, v.yaw, v.pitch, v.roll)
}

// Aimed returns a copy of the pose turned toward target. Roll and position are kept.
// Pitch is atan2(dir.y, dir.x) and yaw is atan2(dir.z, dir.x) of the unit direction.
//
// Parameters:
//   - target: world-space point to look at
//
// Returns:
//   - View: the aimed pose, or v unchanged if target equals Position
//   - bool: false if target equals Position
func (v View) Aimed(target mgl32.Vec3) (View, bool) {
	offset := target.Sub(v.Position)
	if offset.Len() == 0 {
		return v, false
	}
	direction := offset.Normalize()
	v.pitch = math32.Atan2(direction.Y(), direction.X())
	v.yaw = math32.Atan2(direction.Z(), direction.X())
	return v, true
}

package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func newTestCamera(t *testing.T, view View, speed, sensitivity float32) (Camera, *cameraImpl) {
	t.Helper()
	cam := NewCamera(view, speed, sensitivity)
	impl, ok := cam.(*cameraImpl)
	require.True(t, ok)
	return cam, impl
}

func assertVec3InDelta(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], tol, "component %d of %v", i, actual)
	}
}

func TestNewCamera(t *testing.T) {
	view := NewView(mgl32.Vec3{1, 2, 3}, 0.5, 0.25, 0)
	cam, impl := newTestCamera(t, view, 4, 0.5)

	assert.Equal(t, view, cam.View())
	assert.Equal(t, float32(4), cam.Speed())
	assert.Equal(t, float32(0.5), cam.Sensitivity())
	assert.Zero(t, cam.Zoom())
	assert.Equal(t, movementValues{}, impl.movement)
	assert.Equal(t, rotationValues{}, impl.rotation)

	u := cam.Uniform()
	assert.Equal(t, [4]float32{1, 2, 3, 1}, u.Position)
	assert.Equal(t, [16]float32(view.CalcMatrix()), u.ViewProj)
}

func TestNewCameraLabel(t *testing.T) {
	a := NewCamera(NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)
	b := NewCamera(NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)
	assert.NotEqual(t, a.Label(), b.Label())

	named := NewCamera(NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1, WithLabel("main"))
	assert.Equal(t, "main", named.Label())
}

func TestProcessKeyboardBoundKeys(t *testing.T) {
	keys := []struct {
		key   uint32
		field func(c *cameraImpl) float32
	}{
		{common.KeyW, func(c *cameraImpl) float32 { return c.movement.forward }},
		{common.KeyS, func(c *cameraImpl) float32 { return c.movement.backward }},
		{common.KeyA, func(c *cameraImpl) float32 { return c.movement.left }},
		{common.KeyD, func(c *cameraImpl) float32 { return c.movement.right }},
		{common.KeySpace, func(c *cameraImpl) float32 { return c.movement.up }},
		{common.KeyLeftShift, func(c *cameraImpl) float32 { return c.movement.down }},
		{common.KeyQ, func(c *cameraImpl) float32 { return c.rotation.counterClockwise }},
		{common.KeyE, func(c *cameraImpl) float32 { return c.rotation.clockwise }},
	}

	for _, k := range keys {
		cam, impl := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)

		assert.True(t, cam.ProcessKeyboard(k.key, common.KeyPress), "key %d", k.key)
		assert.Equal(t, float32(1), k.field(impl), "key %d", k.key)

		assert.True(t, cam.ProcessKeyboard(k.key, common.KeyRelease), "key %d", k.key)
		assert.Equal(t, float32(0), k.field(impl), "key %d", k.key)
	}
}

func TestProcessKeyboardUnboundKey(t *testing.T) {
	cam, impl := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)

	assert.False(t, cam.ProcessKeyboard(common.KeyR, common.KeyPress))
	assert.False(t, cam.ProcessKeyboard(common.KeyRightShift, common.KeyPress))
	assert.Equal(t, movementValues{}, impl.movement)
	assert.Equal(t, rotationValues{}, impl.rotation)
}

func TestProcessKeyboardNonPressIsInactive(t *testing.T) {
	cam, impl := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)

	cam.ProcessKeyboard(common.KeyW, common.KeyPress)
	assert.True(t, cam.ProcessKeyboard(common.KeyW, common.KeyRepeat))
	assert.Equal(t, float32(0), impl.movement.forward)

	cam.ProcessKeyboard(common.KeyW, common.KeyPress)
	cam.ProcessKeyboard(common.KeyW, common.KeyAction(42))
	assert.Equal(t, float32(0), impl.movement.forward)
}

func TestProcessKeyboardDoesNotMoveView(t *testing.T) {
	view := NewView(mgl32.Vec3{1, 1, 1}, 0.3, 0.2, 0.1)
	cam, _ := newTestCamera(t, view, 1, 1)
	cam.ProcessKeyboard(common.KeyW, common.KeyPress)
	cam.ProcessKeyboard(common.KeyE, common.KeyPress)
	assert.Equal(t, view, cam.View())
}

func TestProcessMouse(t *testing.T) {
	cam, impl := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 0.5)

	cam.ProcessMouse(4, 6)
	assert.Equal(t, float32(2), impl.rotation.yaw)
	assert.Equal(t, float32(-3), impl.rotation.pitch)

	// Later deltas overwrite rather than accumulate.
	cam.ProcessMouse(-2, 0)
	assert.Equal(t, float32(-1), impl.rotation.yaw)
	assert.Equal(t, float32(0), impl.rotation.pitch)
}

func TestProcessZoomOverwrites(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)
	cam.ProcessZoom(3)
	cam.ProcessZoom(-1)
	assert.Equal(t, float32(-1), cam.Zoom())
}

func TestUpdateWithoutInput(t *testing.T) {
	view := NewView(mgl32.Vec3{5, -2, 8}, 1, 0.5, -0.3)
	cam, _ := newTestCamera(t, view, 3, 0.7)

	for range 10 {
		cam.Update(0.016)
	}
	assert.Equal(t, view, cam.View())
}

func TestUpdateForwardMovementLagsUniform(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)
	cam.ProcessKeyboard(common.KeyW, common.KeyPress)

	cam.Update(1)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, cam.View().Position)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, cam.Uniform().Position)

	cam.Update(1)
	assert.Equal(t, mgl32.Vec3{0, 0, 2}, cam.View().Position)
	assert.Equal(t, [4]float32{0, 0, 1, 1}, cam.Uniform().Position)
	assert.Equal(t, float32(1), cam.Uniform().ViewProj[14])
}

func TestUpdateMovementAxes(t *testing.T) {
	cases := []struct {
		key      uint32
		expected mgl32.Vec3
	}{
		{common.KeyW, mgl32.Vec3{0, 0, 2}},
		{common.KeyS, mgl32.Vec3{0, 0, -2}},
		{common.KeyD, mgl32.Vec3{2, 0, 0}},
		{common.KeyA, mgl32.Vec3{-2, 0, 0}},
		{common.KeySpace, mgl32.Vec3{0, -2, 0}},
		{common.KeyLeftShift, mgl32.Vec3{0, 2, 0}},
	}
	for _, c := range cases {
		cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 4, 1)
		cam.ProcessKeyboard(c.key, common.KeyPress)
		cam.Update(0.5)
		assertVec3InDelta(t, c.expected, cam.View().Position)
	}
}

func TestUpdateDiagonalIsNotNormalized(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)
	cam.ProcessKeyboard(common.KeyW, common.KeyPress)
	cam.ProcessKeyboard(common.KeyD, common.KeyPress)
	cam.Update(1)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 1}, cam.View().Position)
}

func TestUpdateOpposingKeysCancel(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)
	cam.ProcessKeyboard(common.KeyW, common.KeyPress)
	cam.ProcessKeyboard(common.KeyS, common.KeyPress)
	cam.Update(1)
	assertVec3InDelta(t, mgl32.Vec3{}, cam.View().Position)
}

func TestUpdateMovementFollowsYaw(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, common.HalfPi, 0, 0), 1, 1)
	cam.ProcessKeyboard(common.KeyW, common.KeyPress)
	cam.Update(1)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, cam.View().Position)
}

func TestUpdateHeldKeysPersist(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)
	cam.ProcessKeyboard(common.KeyW, common.KeyPress)
	cam.Update(0.5)
	cam.Update(0.5)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 1}, cam.View().Position)

	cam.ProcessKeyboard(common.KeyW, common.KeyRelease)
	cam.Update(0.5)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 1}, cam.View().Position)
}

func TestUpdateMouseYaw(t *testing.T) {
	cam, impl := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 2)
	cam.ProcessMouse(10, 0)
	cam.Update(0.5)

	// 10 * 2 (ProcessMouse) * 2 * 0.5 (Update) = 20 radians before wrapping.
	assert.InDelta(t, math.Mod(20, 2*math.Pi), cam.View().Yaw(), 1e-4)
	assert.Zero(t, impl.rotation.yaw)
	assert.Zero(t, impl.rotation.pitch)
}

func TestUpdateMousePitchIsInverted(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)
	cam.ProcessMouse(0, 10)
	cam.Update(0.1)
	assert.InDelta(t, -1, cam.View().Pitch(), tol)
}

func TestUpdateMouseDeltaIsOneShot(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)
	cam.ProcessMouse(1, 0)
	cam.Update(1)
	yaw := cam.View().Yaw()
	cam.Update(1)
	assert.Equal(t, yaw, cam.View().Yaw())
}

func TestUpdateRoll(t *testing.T) {
	cam, impl := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 2, 0.5)

	cam.ProcessKeyboard(common.KeyE, common.KeyPress)
	cam.Update(0.25)
	assert.InDelta(t, 0.25, cam.View().Roll(), tol)

	// Roll keys are held, not one-shot.
	assert.Equal(t, float32(1), impl.rotation.clockwise)
	cam.Update(0.25)
	assert.InDelta(t, 0.5, cam.View().Roll(), tol)

	cam.ProcessKeyboard(common.KeyE, common.KeyRelease)
	cam.ProcessKeyboard(common.KeyQ, common.KeyPress)
	cam.Update(1)
	assert.InDelta(t, -0.5, cam.View().Roll(), tol)
}

func TestUpdateZoom(t *testing.T) {
	for _, dt := range []float32{0, 0.25, 1, 3} {
		cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 3, 0.1)
		cam.ProcessZoom(5)
		cam.Update(dt)
		assertVec3InDelta(t, mgl32.Vec3{0, 0, 0.5}, cam.View().Position)

		// The scroll nudge is consumed by the update that applied it.
		assert.Zero(t, cam.Zoom())
		cam.Update(dt)
		assertVec3InDelta(t, mgl32.Vec3{0, 0, 0.5}, cam.View().Position)
	}
}

func TestUpdatePitchClamp(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)
	offsets := []float32{-1e4, 37, -250, 1e6, 3, -3, 12345, -9e5}
	for _, y := range offsets {
		cam.ProcessMouse(0, y)
		cam.Update(0.016)
		p := cam.View().Pitch()
		assert.GreaterOrEqual(t, p, -common.HalfPi)
		assert.LessOrEqual(t, p, common.HalfPi)
	}

	cam.ProcessMouse(0, -1e6)
	cam.Update(1)
	assert.Equal(t, common.HalfPi, cam.View().Pitch())
}

func TestUpdateYawAndRollStayWrapped(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 5, 1)
	cam.ProcessKeyboard(common.KeyQ, common.KeyPress)
	for i := range 200 {
		cam.ProcessMouse(float32(i%7)-2.5, 0)
		cam.Update(0.5)
		v := cam.View()
		assert.GreaterOrEqual(t, v.Yaw(), -common.TwoPi)
		assert.LessOrEqual(t, v.Yaw(), common.TwoPi)
		assert.GreaterOrEqual(t, v.Roll(), -common.TwoPi)
		assert.LessOrEqual(t, v.Roll(), common.TwoPi)
	}
}

func TestUpdateFullTurnOfYaw(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 1, 0, 0), 1, 1)

	// Four frames each contributing a quarter turn.
	for range 4 {
		cam.ProcessMouse(common.HalfPi, 0)
		cam.Update(1)
	}
	assert.InDelta(t, 1, cam.View().Yaw(), 1e-4)
}

func TestUpdateNegativeYawKeepsSign(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)
	cam.ProcessMouse(-7, 0)
	cam.Update(1)
	assert.InDelta(t, math.Mod(-7, 2*math.Pi), cam.View().Yaw(), 1e-4)
	assert.Less(t, cam.View().Yaw(), float32(0))
}

func TestLookAt(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 2, 1, 0.5), 1, 1)

	require.True(t, cam.LookAt(mgl32.Vec3{1, 1, 0}))
	v := cam.View()
	assert.InDelta(t, math.Pi/4, v.Pitch(), tol)
	assert.InDelta(t, 0, v.Yaw(), tol)
	assert.Equal(t, float32(0.5), v.Roll())
	assert.Equal(t, mgl32.Vec3{}, v.Position)

	require.True(t, cam.LookAt(mgl32.Vec3{0, 0, 3}))
	v = cam.View()
	assert.InDelta(t, 0, v.Pitch(), tol)
	assert.InDelta(t, math.Pi/2, v.Yaw(), tol)
}

func TestLookAtDegenerateTarget(t *testing.T) {
	view := NewView(mgl32.Vec3{4, 5, 6}, 0.3, 0.2, 0.1)
	cam, _ := newTestCamera(t, view, 1, 1)

	assert.False(t, cam.LookAt(mgl32.Vec3{4, 5, 6}))
	assert.Equal(t, view, cam.View())
}

func TestSetSpeedAndSensitivity(t *testing.T) {
	cam, _ := newTestCamera(t, NewView(mgl32.Vec3{}, 0, 0, 0), 1, 1)
	cam.SetSpeed(10)
	cam.SetSensitivity(0.25)
	assert.Equal(t, float32(10), cam.Speed())
	assert.Equal(t, float32(0.25), cam.Sensitivity())

	cam.ProcessKeyboard(common.KeyD, common.KeyPress)
	cam.Update(0.1)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, cam.View().Position)
}

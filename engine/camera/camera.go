package camera

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraCount is an atomic counter used to generate unique labels for each camera instance.
var cameraCount atomic.Uint64

// movementValues holds the held-key translation intensities, each 0 or 1.
// They stay set until the matching key is released.
type movementValues struct {
	forward  float32
	backward float32
	left     float32
	right    float32
	up       float32
	down     float32
}

// rotationValues holds the pending rotation input.
// yaw and pitch are one-shot mouse deltas cleared by every Update;
// clockwise and counterClockwise are held-key roll intensities.
type rotationValues struct {
	yaw              float32
	pitch            float32
	clockwise        float32
	counterClockwise float32
}

type cameraImpl struct {
	mu *sync.Mutex

	label string

	view     View
	movement movementValues
	rotation rotationValues

	zoom        float32
	speed       float32
	sensitivity float32

	uniform GPUCameraUniform
}

// Camera defines the interface for the free-fly camera.
// Input handlers only record pending intensities; Update integrates them into
// the View once per frame and refreshes the GPU uniform snapshot.
type Camera interface {
	// Label returns the camera's unique label, used to name its GPU resources.
	//
	// Returns:
	//   - string: the camera label
	Label() string

	// View returns a copy of the camera's current pose.
	//
	// Returns:
	//   - View: the current pose
	View() View

	// Uniform returns the uniform snapshot produced by the last Update (or by construction).
	//
	// Returns:
	//   - GPUCameraUniform: the uniform snapshot
	Uniform() GPUCameraUniform

	// Speed returns the movement speed in world units per second.
	//
	// Returns:
	//   - float32: the movement speed
	Speed() float32

	// Sensitivity returns the look and zoom sensitivity multiplier.
	//
	// Returns:
	//   - float32: the sensitivity multiplier
	Sensitivity() float32

	// Zoom returns the pending scroll offset that the next Update will apply.
	//
	// Returns:
	//   - float32: the pending zoom offset
	Zoom() float32

	// SetSpeed sets the movement speed in world units per second.
	//
	// Parameters:
	//   - speed: the new movement speed
	SetSpeed(speed float32)

	// SetSensitivity sets the look and zoom sensitivity multiplier.
	//
	// Parameters:
	//   - sensitivity: the new sensitivity multiplier
	SetSensitivity(sensitivity float32)

	// ProcessKeyboard records the state of a bound key.
	// A KeyPress sets the key's intensity to 1; any other action sets it to 0.
	// The View is never modified here.
	//
	// Parameters:
	//   - key: the virtual key code (see common.Key*)
	//   - action: the key action
	//
	// Returns:
	//   - bool: true if the key is bound to a camera control, false otherwise
	ProcessKeyboard(key uint32, action common.KeyAction) bool

	// ProcessMouse records a mouse movement as sensitivity-scaled yaw and pitch deltas.
	// Vertical motion is inverted. The deltas replace any pending ones and are consumed by the next Update.
	//
	// Parameters:
	//   - xOffset: horizontal mouse delta
	//   - yOffset: vertical mouse delta
	ProcessMouse(xOffset, yOffset float32)

	// ProcessZoom records a scroll offset. The last offset before Update wins,
	// and Update consumes it, so each scroll nudges the camera once.
	//
	// Parameters:
	//   - yOffset: vertical scroll offset
	ProcessZoom(yOffset float32)

	// LookAt points the camera at a world-space target, overriding yaw and pitch directly.
	// If the target coincides with the camera position the pose is left unchanged.
	//
	// Parameters:
	//   - target: world-space point to look at
	//
	// Returns:
	//   - bool: false if the target was degenerate and nothing changed
	LookAt(target mgl32.Vec3) bool

	// Update integrates pending input into the View and refreshes the uniform.
	// The uniform reflects the pose at the start of the call; movement applied
	// here shows up in the next call's uniform.
	//
	// Parameters:
	//   - dt: seconds elapsed since the previous frame
	Update(dt float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera from an initial pose.
// All pending input starts at zero and the uniform is computed from view.
//
// Parameters:
//   - view: the initial pose
//   - speed: movement speed in world units per second
//   - sensitivity: look and zoom sensitivity multiplier
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(view View, speed, sensitivity float32, options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		label:       "camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		view:        view,
		speed:       speed,
		sensitivity: sensitivity,
		uniform:     newGPUCameraUniform(view.CalcMatrix()),
	}
	for _, option := range options {
		option(c)
	}
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

func (c *cameraImpl) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uniform
}

func (c *cameraImpl) Speed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *cameraImpl) Sensitivity() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sensitivity
}

func (c *cameraImpl) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) SetSpeed(speed float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = speed
}

func (c *cameraImpl) SetSensitivity(sensitivity float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sensitivity = sensitivity
}

func (c *cameraImpl) ProcessKeyboard(key uint32, action common.KeyAction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	var amount float32
	if action == common.KeyPress {
		amount = 1
	}

	switch key {
	case common.KeyW:
		c.movement.forward = amount
	case common.KeyS:
		c.movement.backward = amount
	case common.KeyA:
		c.movement.left = amount
	case common.KeyD:
		c.movement.right = amount
	case common.KeySpace:
		c.movement.up = amount
	case common.KeyLeftShift:
		c.movement.down = amount
	case common.KeyQ:
		c.rotation.counterClockwise = amount
	case common.KeyE:
		c.rotation.clockwise = amount
	default:
		return false
	}
	return true
}

func (c *cameraImpl) ProcessMouse(xOffset, yOffset float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation.yaw = xOffset * c.sensitivity
	c.rotation.pitch = -yOffset * c.sensitivity
}

func (c *cameraImpl) ProcessZoom(yOffset float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = yOffset
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	view, ok := c.view.Aimed(target)
	c.view = view
	return ok
}

func (c *cameraImpl) Update(dt float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	transform := c.view.CalcMatrix()
	c.uniform = newGPUCameraUniform(transform)

	right, up, forward := common.BasisAxes(transform)
	step := c.speed * dt
	m := c.movement

	position := c.view.Position
	position = position.Add(right.Mul(step * m.right))
	position = position.Sub(right.Mul(step * m.left))
	position = position.Sub(up.Mul(step * m.up))
	position = position.Add(up.Mul(step * m.down))
	position = position.Add(forward.Mul(step * m.forward))
	position = position.Sub(forward.Mul(step * m.backward))

	// Scroll is a discrete nudge along the view axis, independent of dt.
	position = position.Add(forward.Mul(c.zoom * c.sensitivity))
	c.view.Position = position

	r := c.rotation
	c.view.yaw += r.yaw * c.sensitivity * dt
	c.view.pitch += r.pitch * c.sensitivity * dt
	c.view.roll -= r.counterClockwise * c.sensitivity * c.speed * dt
	c.view.roll += r.clockwise * c.sensitivity * c.speed * dt

	c.rotation.yaw = 0
	c.rotation.pitch = 0
	c.zoom = 0

	c.view.yaw = common.WrapAngle(c.view.yaw)
	c.view.pitch = common.ClampPitch(c.view.pitch)
	c.view.roll = common.WrapAngle(c.view.roll)
}

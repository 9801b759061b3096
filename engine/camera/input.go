package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-march/common"
)

// InputSource is the subset of window.Window the camera needs to receive input events.
type InputSource interface {
	// SetKeyCallback sets the callback for key press, repeat and release events.
	SetKeyCallback(callback func(keyCode uint32, action common.KeyAction))

	// SetMouseMoveCallback sets the callback for cursor movement in window coordinates.
	SetMouseMoveCallback(callback func(x, y float64))

	// SetScrollCallback sets the callback for vertical scroll wheel offsets.
	SetScrollCallback(callback func(delta float32))
}

// InputRouter forwards window input events to a Camera.
// Absolute cursor positions are turned into deltas; the first position seen
// only primes the tracker so the camera does not jump on the first event.
type InputRouter struct {
	mu     *sync.Mutex
	camera Camera

	primed bool
	lastX  float64
	lastY  float64
}

// BindInput registers the camera's handlers on an input source.
//
// Parameters:
//   - source: the window (or any InputSource) producing events
//   - cam: the camera receiving input
//
// Returns:
//   - *InputRouter: the router now attached to source
func BindInput(source InputSource, cam Camera) *InputRouter {
	r := &InputRouter{
		mu:     &sync.Mutex{},
		camera: cam,
	}
	source.SetKeyCallback(r.HandleKey)
	source.SetMouseMoveCallback(r.HandleMouseMove)
	source.SetScrollCallback(r.HandleScroll)
	return r
}

// HandleKey forwards a key event to the camera.
//
// Parameters:
//   - keyCode: the virtual key code
//   - action: the key action
func (r *InputRouter) HandleKey(keyCode uint32, action common.KeyAction) {
	r.camera.ProcessKeyboard(keyCode, action)
}

// HandleMouseMove converts a cursor position into a delta and forwards it to the camera.
//
// Parameters:
//   - x, y: cursor position in window coordinates
func (r *InputRouter) HandleMouseMove(x, y float64) {
	r.mu.Lock()
	if !r.primed {
		r.primed = true
		r.lastX, r.lastY = x, y
		r.mu.Unlock()
		return
	}
	dx := float32(x - r.lastX)
	dy := float32(y - r.lastY)
	r.lastX, r.lastY = x, y
	r.mu.Unlock()

	r.camera.ProcessMouse(dx, dy)
}

// HandleScroll forwards a scroll offset to the camera.
//
// Parameters:
//   - delta: vertical scroll offset
func (r *InputRouter) HandleScroll(delta float32) {
	r.camera.ProcessZoom(delta)
}

// Reset forgets the last cursor position, so the next movement only primes the tracker.
// Call it after the cursor is warped or recaptured.
func (r *InputRouter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.primed = false
}

package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNotOpen is returned by operations that need an open platform window.
var ErrNotOpen = errors.New("window is not open")

// Window is the demo's OS window: it owns the message loop, reports input as
// engine key codes and cursor positions, and exposes a WebGPU surface descriptor.
type Window interface {
	// SetUpdateCallback sets the hook run on the window thread once per message pump.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the hook run when the framebuffer size changes.
	//
	// Parameters:
	//   - callback: receives the new framebuffer width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the hook run for vertical scroll wheel input.
	//
	// Parameters:
	//   - callback: receives the scroll offset (positive = away from the user)
	SetScrollCallback(callback func(delta float32))

	// SetKeyCallback sets the hook run for key input.
	// OS auto-repeat arrives as common.KeyPress so a held key stays active.
	//
	// Parameters:
	//   - callback: receives the key code and its action
	SetKeyCallback(callback func(keyCode uint32, action common.KeyAction))

	// SetMouseMoveCallback sets the hook run for cursor movement.
	// While captured, positions are virtual and unbounded.
	//
	// Parameters:
	//   - callback: receives the cursor position
	SetMouseMoveCallback(callback func(x, y float64))

	// SetCursorCaptureCallback sets the hook run whenever the cursor is captured or released.
	//
	// Parameters:
	//   - callback: receives the new capture state
	SetCursorCaptureCallback(callback func(captured bool))

	// SetCursorCaptured hides and locks the cursor for mouse look, or gives it back.
	//
	// Parameters:
	//   - captured: true to capture, false to release
	SetCursorCaptured(captured bool)

	// CursorCaptured reports whether the cursor is captured.
	//
	// Returns:
	//   - bool: true if captured
	CursorCaptured() bool

	// SurfaceDescriptor describes the native window for wgpu.Instance.CreateSurface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil if the window is not open
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open and has not been asked to close.
	//
	// Returns:
	//   - bool: true while open
	IsRunning() bool

	// Close destroys the native window. Must be called on the window thread.
	//
	// Returns:
	//   - error: ErrNotOpen if there is no open window
	Close() error

	// ProcessMessages pumps OS events until the window closes, running the update hook after each pump.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// platform is the native window backing an engineWindow.
type platform interface {
	// poll processes pending OS events and reports whether the window should stay open.
	poll() bool
	open() bool
	setCursorCaptured(captured bool)
	surfaceDescriptor() *wgpu.SurfaceDescriptor
	destroy()
}

type engineWindow struct {
	title string

	minWidth, minHeight int
	maxWidth, maxHeight int

	// framebuffer size in pixels
	width, height int

	cursorCaptured bool

	native platform

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKey       func(keyCode uint32, action common.KeyAction)
	onMouseMove func(x, y float64)
	onCapture   func(captured bool)
}

var _ Window = &engineWindow{}

// NewWindow opens a GLFW window configured by options.
// It panics if the native window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	native, err := openGLFWWindow(w)
	if err != nil {
		panic(fmt.Sprintf("failed to open window: %v", err))
	}
	w.native = native
	native.setCursorCaptured(w.cursorCaptured)
	return w
}

// newEngineWindow applies defaults and options without opening a native window.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:          "oxy-march",
		minWidth:       320,
		minHeight:      240,
		maxWidth:       3840,
		maxHeight:      2160,
		width:          1280,
		height:         720,
		cursorCaptured: true,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) { w.onUpdate = callback }

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) { w.onScroll = callback }

func (w *engineWindow) SetKeyCallback(callback func(keyCode uint32, action common.KeyAction)) {
	w.onKey = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float64)) { w.onMouseMove = callback }

func (w *engineWindow) SetCursorCaptureCallback(callback func(captured bool)) {
	w.onCapture = callback
}

func (w *engineWindow) SetCursorCaptured(captured bool) {
	if w.cursorCaptured == captured {
		return
	}
	w.cursorCaptured = captured
	if w.native != nil {
		w.native.setCursorCaptured(captured)
	}
	if w.onCapture != nil {
		w.onCapture(captured)
	}
}

func (w *engineWindow) CursorCaptured() bool { return w.cursorCaptured }

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.native == nil {
		return nil
	}
	return w.native.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	return w.native != nil && w.native.open()
}

func (w *engineWindow) Close() error {
	if w.native == nil {
		return ErrNotOpen
	}
	w.native.destroy()
	w.native = nil
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.native != nil && w.native.poll() {
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int { return w.width }

func (w *engineWindow) Height() int { return w.height }

// handleKey applies the window's own bindings, then forwards the key.
// Escape releases a captured cursor, or closes the window when the cursor is already free.
// Returns true if the window should close.
func (w *engineWindow) handleKey(keyCode uint32, action common.KeyAction) bool {
	if keyCode == common.KeyEsc {
		if action != common.KeyPress {
			return false
		}
		if w.cursorCaptured {
			w.SetCursorCaptured(false)
			return false
		}
		return true
	}
	w.dispatchKey(keyCode, action)
	return false
}

// handleClick recaptures the cursor on a primary-button press.
func (w *engineWindow) handleClick() {
	if !w.cursorCaptured {
		w.SetCursorCaptured(true)
	}
}

// dispatchKey forwards a key event, reporting repeats as presses.
func (w *engineWindow) dispatchKey(keyCode uint32, action common.KeyAction) {
	if w.onKey == nil {
		return
	}
	if action == common.KeyRepeat {
		action = common.KeyPress
	}
	w.onKey(keyCode, action)
}

func (w *engineWindow) dispatchMouseMove(x, y float64) {
	if w.onMouseMove != nil {
		w.onMouseMove(x, y)
	}
}

func (w *engineWindow) dispatchScroll(yoff float64) {
	if w.onScroll != nil {
		w.onScroll(float32(yoff))
	}
}

// dispatchResize records the framebuffer size before forwarding it.
func (w *engineWindow) dispatchResize(width, height int) {
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

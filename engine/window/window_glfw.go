package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow is the GLFW-backed platform window.
type glfwWindow struct {
	handle  *glfw.Window
	closing bool
}

var _ platform = &glfwWindow{}

// openGLFWWindow initializes GLFW on the calling (locked) thread and opens a
// window without a client API, since WebGPU drives the surface itself.
// Input callbacks are routed to w.
func openGLFWWindow(w *engineWindow) (*glfwWindow, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	handle.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{handle: handle}

	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyUnknown {
			return
		}
		if w.handleKey(uint32(key), keyAction(action)) {
			gw.closing = true
		}
	})
	handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft && action == glfw.Press {
			w.handleClick()
		}
	})
	handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.dispatchMouseMove(x, y)
	})
	handle.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.dispatchScroll(yoff)
	})
	// Framebuffer size, not window size: they differ on high-DPI displays.
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.dispatchResize(width, height)
	})

	w.width, w.height = handle.GetFramebufferSize()
	return gw, nil
}

func keyAction(action glfw.Action) common.KeyAction {
	switch action {
	case glfw.Press:
		return common.KeyPress
	case glfw.Repeat:
		return common.KeyRepeat
	default:
		return common.KeyRelease
	}
}

func (gw *glfwWindow) poll() bool {
	glfw.PollEvents()
	return gw.open()
}

func (gw *glfwWindow) open() bool {
	return !gw.closing && !gw.handle.ShouldClose()
}

// setCursorCaptured switches between a disabled cursor (hidden, virtual unbounded
// position, raw motion where supported) and the normal cursor.
func (gw *glfwWindow) setCursorCaptured(captured bool) {
	raw := glfw.RawMouseMotionSupported()
	if captured {
		gw.handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if raw {
			gw.handle.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
		return
	}
	if raw {
		gw.handle.SetInputMode(glfw.RawMouseMotion, glfw.False)
	}
	gw.handle.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

func (gw *glfwWindow) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(gw.handle)
}

func (gw *glfwWindow) destroy() {
	gw.closing = true
	gw.handle.Destroy()
	glfw.Terminate()
}

package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87 // W key (ASCII)
	KeyA     = 65 // A key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeyD     = 68 // D key (ASCII)
	KeyQ     = 81 // Q key (ASCII)
	KeyE     = 69 // E key (ASCII)
	KeyR     = 82 // R key (ASCII)
	KeySpace = 32 // Spacebar (ASCII)

	KeyEsc = 256 // Escape key (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)

// KeyAction is the state reported alongside a key event.
// Values match glfw.Action so window code can convert with a plain cast.
type KeyAction int

const (
	// KeyRelease reports that a key was let go.
	KeyRelease KeyAction = 0
	// KeyPress reports that a key went down.
	KeyPress KeyAction = 1
	// KeyRepeat reports an OS auto-repeat while a key is held.
	KeyRepeat KeyAction = 2
)

// String returns a readable name for the action, used in log output.
func (a KeyAction) String() string {
	switch a {
	case KeyRelease:
		return "release"
	case KeyPress:
		return "press"
	case KeyRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

package engine

import (
	"github.com/Carmen-Shannon/oxy-march/engine/camera"
	"github.com/Carmen-Shannon/oxy-march/engine/window"
)

// EngineBuilderOption configures an engine before it runs.
type EngineBuilderOption func(*engine)

// WithWindow sets the window whose messages Run pumps and whose input drives the camera.
//
// Parameters:
//   - w: the window
//
// Returns:
//   - EngineBuilderOption: the option
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) { e.window = w }
}

// WithCamera sets the camera updated on every tick.
//
// Parameters:
//   - c: the camera to drive
//
// Returns:
//   - EngineBuilderOption: the option
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) { e.camera = c }
}

// WithUniformSink sets where the camera uniform is staged each render frame.
//
// Parameters:
//   - sink: the uniform destination, typically a uniform.UniformBuffer
//
// Returns:
//   - EngineBuilderOption: the option
func WithUniformSink(sink UniformSink) EngineBuilderOption {
	return func(e *engine) { e.sink = sink }
}

// WithTickRate sets the camera update rate; values <= 0 select 60Hz.
//
// Parameters:
//   - hz: ticks per second
//
// Returns:
//   - EngineBuilderOption: the option
func WithTickRate(hz float64) EngineBuilderOption {
	return func(e *engine) { e.tickPeriod.Store(int64(tickInterval(hz))) }
}

// WithRenderFrameLimit caps the render loop; 0 leaves it uncapped.
//
// Parameters:
//   - hz: maximum frames per second
//
// Returns:
//   - EngineBuilderOption: the option
func WithRenderFrameLimit(hz float64) EngineBuilderOption {
	return func(e *engine) { e.minFrameTime.Store(int64(frameLimit(hz))) }
}

// WithProfiling turns profiler logging on or off from the start.
//
// Parameters:
//   - enabled: whether to log render loop stats
//
// Returns:
//   - EngineBuilderOption: the option
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) { e.profiling.Store(enabled) }
}

package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-march/engine/camera"
	"github.com/Carmen-Shannon/oxy-march/engine/profiler"
	"github.com/Carmen-Shannon/oxy-march/engine/window"
)

// defaultTickRate is the camera update rate used when none (or a non-positive one) is given.
const defaultTickRate = 60

// UniformSink receives the marshalled camera uniform once per render frame.
// engine/renderer/uniform.UniformBuffer satisfies it.
type UniformSink interface {
	Stage(data []byte) error
}

// engine drives one camera from two goroutines: a fixed-rate tick that integrates
// input, and a render loop that snapshots the uniform. The window message loop
// runs on the caller's thread inside Run.
type engine struct {
	window window.Window
	camera camera.Camera
	input  *camera.InputRouter
	sink   UniformSink

	// Settings below may change from any goroutine while the loops run.

	// tick period in nanoseconds; tickChanged wakes the tick loop to re-arm its ticker
	tickPeriod  atomic.Int64
	tickChanged chan struct{}
	// minimum render frame duration in nanoseconds; 0 renders as fast as possible
	minFrameTime atomic.Int64

	onTick   atomic.Pointer[func(dt float32)]
	onRender atomic.Pointer[func(dt float32)]

	stats     *profiler.Profiler
	profiling atomic.Bool

	stop     chan struct{}
	stopOnce sync.Once
	loops    sync.WaitGroup
}

// Engine runs the camera demo: window events feed the camera, a tick goroutine
// advances it, and a render goroutine hands its uniform to the GPU side.
type Engine interface {
	// Window returns the window the engine pumps, or nil if headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the camera advanced on each tick.
	//
	// Returns:
	//   - camera.Camera: the camera, or nil if none was configured
	Camera() camera.Camera

	// EnableProfiler turns on periodic FPS and memory logging from the render loop.
	EnableProfiler()

	// DisableProfiler turns profiler logging off.
	DisableProfiler()

	// SetTickRate changes how often the camera is updated. Takes effect immediately while running.
	//
	// Parameters:
	//   - hz: ticks per second; values <= 0 select 60
	SetTickRate(hz float64)

	// SetTickCallback registers a hook run on the tick goroutine right after Camera.Update.
	// Safe to call while running; nil removes the hook.
	//
	// Parameters:
	//   - callback: receives the tick's delta time in seconds
	SetTickCallback(callback func(dt float32))

	// SetRenderCallback registers the per-frame hook run on the render goroutine
	// once the camera uniform has been staged. Flush the uniform and draw here.
	// Safe to call while running; nil removes the hook.
	//
	// Parameters:
	//   - callback: receives the frame's delta time in seconds
	SetRenderCallback(callback func(dt float32))

	// SetRenderFrameLimit caps the render loop. Takes effect from the next frame while running.
	//
	// Parameters:
	//   - hz: maximum frames per second; 0 or less removes the cap
	SetRenderFrameLimit(hz float64)

	// Run starts the tick and render goroutines, pumps window messages until the
	// window closes or Quit is called, then waits for both goroutines to exit.
	Run()

	// Quit asks Run to return. The window is closed from its own thread on the next
	// message pump. Repeated calls do nothing.
	Quit()
}

// NewEngine builds an Engine from options.
// A configured window and camera are wired together through a camera.InputRouter,
// which is re-primed whenever the window captures or releases the cursor.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the engine, not yet running
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickChanged: make(chan struct{}, 1),
		stats:       profiler.NewProfiler("Render"),
		stop:        make(chan struct{}),
	}
	e.tickPeriod.Store(int64(tickInterval(defaultTickRate)))
	for _, opt := range options {
		opt(e)
	}

	if e.window != nil && e.camera != nil {
		e.input = camera.BindInput(e.window, e.camera)
		// A recaptured cursor resumes from an unrelated position; re-prime instead of jumping.
		e.window.SetCursorCaptureCallback(func(bool) { e.input.Reset() })
	}
	return e
}

func (e *engine) Window() window.Window { return e.window }

func (e *engine) Camera() camera.Camera { return e.camera }

func (e *engine) EnableProfiler() { e.profiling.Store(true) }

func (e *engine) DisableProfiler() { e.profiling.Store(false) }

func (e *engine) SetTickCallback(callback func(dt float32)) { storeHook(&e.onTick, callback) }

func (e *engine) SetRenderCallback(callback func(dt float32)) { storeHook(&e.onRender, callback) }

func (e *engine) SetRenderFrameLimit(hz float64) { e.minFrameTime.Store(int64(frameLimit(hz))) }

func (e *engine) SetTickRate(hz float64) {
	e.tickPeriod.Store(int64(tickInterval(hz)))
	// A pending wake-up already covers this change.
	select {
	case e.tickChanged <- struct{}{}:
	default:
	}
}

func (e *engine) Run() {

	if e.window != nil {
		// Window calls must stay on the message thread, so Quit is observed here.
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.stop:
				if err := e.window.Close(); err != nil {
					log.Printf("[Engine] failed to close window: %v", err)
				}
			default:
			}
		})
	}

	e.loops.Add(2)
	go e.tickLoop()
	go e.renderLoop()

	if e.window != nil {
		e.window.ProcessMessages()
	}
	e.Quit()
	e.loops.Wait()
}

func (e *engine) Quit() {
	e.stopOnce.Do(func() {
		close(e.stop)
	})
}

// tickLoop advances the camera at the tick rate until stop is closed.
func (e *engine) tickLoop() {
	defer e.loops.Done()

	period := e.currentTickPeriod()
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-e.stop:
			return
		case <-e.tickChanged:
			if next := e.currentTickPeriod(); next != period {
				period = next
				ticker.Reset(period)
			}
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			e.tick(dt)
		}
	}
}

// tick integrates pending input into the camera, then runs the tick hook.
func (e *engine) tick(dt float32) {
	if e.camera != nil {
		e.camera.Update(dt)
	}
	if hook := e.onTick.Load(); hook != nil {
		(*hook)(dt)
	}
}

// renderLoop produces frames until stop is closed. A panic in a frame stops the engine.
func (e *engine) renderLoop() {
	defer e.loops.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render loop stopped after panic: %v", r)
			e.Quit()
		}
	}()

	last := time.Now()
	for {
		select {
		case <-e.stop:
			return
		default:
		}

		start := time.Now()
		dt := float32(start.Sub(last).Seconds())
		last = start

		e.renderFrame(dt)

		if limit := time.Duration(e.minFrameTime.Load()); limit > 0 {
			if wait := limit - time.Since(start); wait > 0 {
				time.Sleep(wait)
			}
		}
	}
}

// renderFrame stages the camera uniform, runs the render hook and feeds the profiler.
func (e *engine) renderFrame(dt float32) {
	if e.camera != nil && e.sink != nil {
		u := e.camera.Uniform()
		if err := e.sink.Stage(u.Marshal()); err != nil {
			log.Printf("[Engine] failed to stage camera uniform: %v", err)
		}
	}

	if hook := e.onRender.Load(); hook != nil {
		(*hook)(dt)
	}

	if e.profiling.Load() {
		e.stats.Tick()
	}
}

func (e *engine) currentTickPeriod() time.Duration {
	return time.Duration(e.tickPeriod.Load())
}

// storeHook publishes callback to the loops, clearing the slot for nil.
func storeHook(slot *atomic.Pointer[func(dt float32)], callback func(dt float32)) {
	if callback == nil {
		slot.Store(nil)
		return
	}
	slot.Store(&callback)
}

func tickInterval(hz float64) time.Duration {
	if hz <= 0 {
		hz = defaultTickRate
	}
	return time.Duration(float64(time.Second) / hz)
}

func frameLimit(hz float64) time.Duration {
	if hz <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / hz)
}

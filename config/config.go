// Package config loads the demo's YAML settings: window, engine loop and initial camera pose.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/Carmen-Shannon/oxy-march/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

const defaultTitle = "oxy-march"

// Config is the root of the settings file.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Engine EngineConfig `yaml:"engine"`
	Camera CameraConfig `yaml:"camera"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Title          string `yaml:"title"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	CursorCaptured bool   `yaml:"cursor_captured"`
}

// EngineConfig holds the engine loop settings.
type EngineConfig struct {
	// TickRate is the camera update rate in ticks per second.
	TickRate float64 `yaml:"tick_rate"`
	// RenderFrameLimit caps the render loop in frames per second; 0 means uncapped.
	RenderFrameLimit float64 `yaml:"render_frame_limit"`
	Profiling        bool    `yaml:"profiling"`
}

// CameraConfig holds the initial camera pose and its tuning scalars.
// Angles are in radians.
type CameraConfig struct {
	Position    [3]float32  `yaml:"position"`
	Yaw         float32     `yaml:"yaw"`
	Pitch       float32     `yaml:"pitch"`
	Roll        float32     `yaml:"roll"`
	Speed       float32     `yaml:"speed"`
	Sensitivity float32     `yaml:"sensitivity"`
	LookAt      *[3]float32 `yaml:"look_at,omitempty"`
}

// Default returns the settings used when no file is given.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:          defaultTitle,
			Width:          1280,
			Height:         720,
			CursorCaptured: true,
		},
		Engine: EngineConfig{
			TickRate: 60,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, -5},
			Speed:       2,
			Sensitivity: 0.1,
		},
	}
}

// Load reads and parses a settings file.
//
// Parameters:
//   - path: path to the YAML file
//
// Returns:
//   - Config: the parsed configuration, defaults filled in
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML settings on top of Default and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: error if decoding or validation fails
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Window.Title = common.Coalesce(cfg.Window.Title, defaultTitle)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable. Fields are checked in a fixed order.
//
// Returns:
//   - error: a descriptive error naming the first invalid field, or nil
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Engine.TickRate <= 0 || math.IsInf(c.Engine.TickRate, 0) || math.IsNaN(c.Engine.TickRate) {
		return fmt.Errorf("engine.tick_rate must be a positive number, got %v", c.Engine.TickRate)
	}
	if c.Engine.RenderFrameLimit < 0 {
		return fmt.Errorf("engine.render_frame_limit must not be negative, got %v", c.Engine.RenderFrameLimit)
	}

	cam := c.Camera
	scalars := []struct {
		name  string
		value float32
	}{
		{"camera.position[0]", cam.Position[0]},
		{"camera.position[1]", cam.Position[1]},
		{"camera.position[2]", cam.Position[2]},
		{"camera.yaw", cam.Yaw},
		{"camera.pitch", cam.Pitch},
		{"camera.roll", cam.Roll},
		{"camera.speed", cam.Speed},
		{"camera.sensitivity", cam.Sensitivity},
	}
	for _, s := range scalars {
		if !finite(s.value) {
			return fmt.Errorf("%s must be finite, got %v", s.name, s.value)
		}
	}
	if cam.Speed < 0 {
		return fmt.Errorf("camera.speed must not be negative, got %v", cam.Speed)
	}
	if cam.Sensitivity < 0 {
		return fmt.Errorf("camera.sensitivity must not be negative, got %v", cam.Sensitivity)
	}
	if cam.LookAt != nil {
		if *cam.LookAt == cam.Position {
			return fmt.Errorf("camera.look_at must differ from camera.position")
		}
		for i, v := range cam.LookAt {
			if !finite(v) {
				return fmt.Errorf("camera.look_at[%d] must be finite, got %v", i, v)
			}
		}
	}
	return nil
}

// View returns the initial camera pose described by the settings.
//
// Returns:
//   - camera.View: the initial pose
func (c CameraConfig) View() camera.View {
	return camera.NewView(mgl32.Vec3(c.Position), c.Yaw, c.Pitch, c.Roll)
}

// NewCamera builds a camera from the settings, aiming it at LookAt when set.
//
// Parameters:
//   - options: camera builder options passed through to camera.NewCamera
//
// Returns:
//   - camera.Camera: the configured camera
func (c CameraConfig) NewCamera(options ...camera.CameraBuilderOption) camera.Camera {
	view := c.View()
	if c.LookAt != nil {
		view, _ = view.Aimed(mgl32.Vec3(*c.LookAt))
	}
	return camera.NewCamera(view, c.Speed, c.Sensitivity, options...)
}

// Apply pushes the tunable scalars onto a running camera. The pose is left alone.
//
// Parameters:
//   - cam: the camera to update
func (c CameraConfig) Apply(cam camera.Camera) {
	cam.SetSpeed(c.Speed)
	cam.SetSensitivity(c.Sensitivity)
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

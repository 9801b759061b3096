package camera

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithLabel overrides the generated camera label.
// The label names the camera's uniform buffer on the GPU.
//
// Parameters:
//   - label: the label to use
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera label
func WithLabel(label string) CameraBuilderOption {
	return func(c *cameraImpl) {
		if label != "" {
			c.label = label
		}
	}
}

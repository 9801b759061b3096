package uniform

import "github.com/cogentcore/webgpu/wgpu"

// UniformBufferBuilderOption is a functional option for configuring a UniformBuffer.
type UniformBufferBuilderOption func(*uniformBufferImpl)

// WithLabel sets the GPU debug label of the buffer.
//
// Parameters:
//   - label: the buffer label
//
// Returns:
//   - UniformBufferBuilderOption: option function to apply
func WithLabel(label string) UniformBufferBuilderOption {
	return func(u *uniformBufferImpl) {
		u.label = label
	}
}

// WithUsage adds usage flags on top of the default Uniform | CopyDst.
//
// Parameters:
//   - usage: additional buffer usage flags
//
// Returns:
//   - UniformBufferBuilderOption: option function to apply
func WithUsage(usage wgpu.BufferUsage) UniformBufferBuilderOption {
	return func(u *uniformBufferImpl) {
		u.usage |= usage
	}
}

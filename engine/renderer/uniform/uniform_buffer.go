package uniform

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Device is the subset of *wgpu.Device used to allocate uniform buffers.
type Device interface {
	CreateBuffer(descriptor *wgpu.BufferDescriptor) (*wgpu.Buffer, error)
}

// Queue is the subset of *wgpu.Queue used to upload uniform data.
type Queue interface {
	WriteBuffer(buffer *wgpu.Buffer, bufferOffset uint64, data []byte) error
}

// BufferWrite describes a single pending GPU buffer write at a given byte offset.
type BufferWrite struct {
	Offset uint64
	Data   []byte
}

type uniformBufferImpl struct {
	mu *sync.Mutex

	label string
	size  uint64
	usage wgpu.BufferUsage

	buffer  *wgpu.Buffer
	pending *BufferWrite
	writes  uint64
}

// UniformBuffer owns a fixed-size GPU uniform buffer and the CPU-side staging for it.
// Data is staged from any goroutine and uploaded on the render thread via Flush.
type UniformBuffer interface {
	// Label returns the buffer label used for GPU debugging.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Size returns the buffer size in bytes.
	//
	// Returns:
	//   - uint64: buffer size in bytes
	Size() uint64

	// Buffer returns the underlying GPU buffer, or nil before Init.
	//
	// Returns:
	//   - *wgpu.Buffer: the GPU buffer or nil
	Buffer() *wgpu.Buffer

	// Init allocates the GPU buffer. Calling Init again releases and replaces the previous buffer.
	//
	// Parameters:
	//   - device: the device used to create the buffer
	//
	// Returns:
	//   - error: error if buffer creation fails
	Init(device Device) error

	// Stage copies data into the pending write. Only the most recent staged data is uploaded.
	//
	// Parameters:
	//   - data: the full buffer contents; must be exactly Size() bytes
	//
	// Returns:
	//   - error: error if the data size does not match the buffer size
	Stage(data []byte) error

	// Flush uploads the pending write, if any, through the queue.
	//
	// Parameters:
	//   - queue: the queue used to write the buffer
	//
	// Returns:
	//   - bool: true if data was written
	//   - error: error if the buffer is not initialized or the write fails
	Flush(queue Queue) (bool, error)

	// Writes returns how many uploads have completed.
	//
	// Returns:
	//   - uint64: number of successful flushes that wrote data
	Writes() uint64

	// Release frees the GPU buffer. Safe to call multiple times.
	Release()
}

var _ UniformBuffer = &uniformBufferImpl{}

// NewUniformBuffer creates a UniformBuffer description. The GPU buffer is allocated by Init.
//
// Parameters:
//   - size: buffer size in bytes
//   - options: functional options to configure the buffer
//
// Returns:
//   - UniformBuffer: the new uniform buffer
func NewUniformBuffer(size uint64, options ...UniformBufferBuilderOption) UniformBuffer {
	u := &uniformBufferImpl{
		mu:    &sync.Mutex{},
		label: "uniform",
		size:  size,
		usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	}
	for _, option := range options {
		option(u)
	}
	return u
}

func (u *uniformBufferImpl) Label() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.label
}

func (u *uniformBufferImpl) Size() uint64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.size
}

func (u *uniformBufferImpl) Buffer() *wgpu.Buffer {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.buffer
}

func (u *uniformBufferImpl) Init(device Device) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.release()
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            u.label,
		Size:             u.size,
		Usage:            u.usage,
		MappedAtCreation: false,
	})
	if err != nil {
		return fmt.Errorf("failed to create uniform buffer %s: %w", u.label, err)
	}
	u.buffer = buf
	return nil
}

func (u *uniformBufferImpl) Stage(data []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if uint64(len(data)) != u.size {
		return fmt.Errorf("uniform buffer %s: staged %d bytes, expected %d", u.label, len(data), u.size)
	}
	if u.pending == nil {
		u.pending = &BufferWrite{Data: make([]byte, u.size)}
	}
	copy(u.pending.Data, data)
	return nil
}

func (u *uniformBufferImpl) Flush(queue Queue) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.pending == nil {
		return false, nil
	}
	if u.buffer == nil {
		return false, fmt.Errorf("uniform buffer %s is not initialized", u.label)
	}
	if err := queue.WriteBuffer(u.buffer, u.pending.Offset, u.pending.Data); err != nil {
		return false, fmt.Errorf("failed to write uniform buffer %s: %w", u.label, err)
	}
	u.pending = nil
	u.writes++
	return true, nil
}

func (u *uniformBufferImpl) Writes() uint64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.writes
}

func (u *uniformBufferImpl) Release() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.release()
}

// release frees the GPU buffer. Caller must hold the mutex.
func (u *uniformBufferImpl) release() {
	if u.buffer != nil {
		u.buffer.Release()
		u.buffer = nil
	}
}

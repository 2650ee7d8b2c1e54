package buffers

import (
	"github.com/telrender/tel/gpu"
	"github.com/telrender/tel/logging"
)

// VertexBuffer owns one GL array buffer. It must not be copied, see Move.
type VertexBuffer struct {
	object
}

func (vb *VertexBuffer) Id() uint32 {
	return vb.id
}

// Move returns a VertexBuffer owning vb's buffer and leaves vb empty
func (vb *VertexBuffer) Move() VertexBuffer {
	return VertexBuffer{object: vb.take()}
}

// MoveFrom takes ownership of src's buffer. vb must be empty.
func (vb *VertexBuffer) MoveFrom(src *VertexBuffer) {
	vb.takeFrom(&src.object, "VertexBuffer")
}

// SetStorage creates the immutable store of the buffer from data.
// The buffer must be bound to the array buffer target.
func (vb *VertexBuffer) SetStorage(data []byte, flags StorageFlags) {
	vb.drv.BufferStorage(gpu.BufferTarget_Array, data, flags.ToGL())
}

// Delete frees the GL buffer. Calling it on an empty VertexBuffer does nothing.
func (vb *VertexBuffer) Delete() {

	if vb.id == 0 {
		return
	}

	vb.drv.DeleteBuffer(vb.id)
	vb.object = object{}
}

func NewVertexBuffer(drv gpu.Driver) VertexBuffer {

	vb := VertexBuffer{object{drv: drv}}

	vb.id = drv.GenBuffer()
	if vb.id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL buffer")
	}

	return vb
}

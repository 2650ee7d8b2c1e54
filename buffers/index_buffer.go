package buffers

import (
	"github.com/telrender/tel/gpu"
	"github.com/telrender/tel/logging"
)

// IndexBuffer owns one GL element array buffer of uint32 indices. It must not be copied.
type IndexBuffer struct {
	object
}

func (ib *IndexBuffer) Id() uint32 {
	return ib.id
}

func (ib *IndexBuffer) Move() IndexBuffer {
	return IndexBuffer{object: ib.take()}
}

// MoveFrom takes ownership of src's buffer. ib must be empty.
func (ib *IndexBuffer) MoveFrom(src *IndexBuffer) {
	ib.takeFrom(&src.object, "IndexBuffer")
}

// SetStorage uploads indices into a new immutable store.
// The buffer must be bound to the element array target (with the owning vertex array bound).
func (ib *IndexBuffer) SetStorage(indices []uint32, flags StorageFlags) {
	ib.drv.BufferStorage(gpu.BufferTarget_Element, Bytes(indices), flags.ToGL())
}

func (ib *IndexBuffer) Delete() {

	if ib.id == 0 {
		return
	}

	ib.drv.DeleteBuffer(ib.id)
	ib.object = object{}
}

func NewIndexBuffer(drv gpu.Driver) IndexBuffer {

	ib := IndexBuffer{object{drv: drv}}

	ib.id = drv.GenBuffer()
	if ib.id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL buffer")
	}

	return ib
}

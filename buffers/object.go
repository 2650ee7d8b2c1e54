package buffers

import (
	"unsafe"

	"github.com/telrender/tel/assert"
	"github.com/telrender/tel/gpu"
)

// object is a GL name plus the driver that owns it. The zero value is the empty
// sentinel that owns nothing.
//
// Types built on object are move-only: copying one leaves two owners of the same GL
// name, and deleting either invalidates the other. Use Move/MoveFrom to transfer.
type object struct {
	drv gpu.Driver
	id  uint32
}

func (o *object) take() object {
	moved := *o
	*o = object{}
	return moved
}

func (o *object) takeFrom(src *object, kind string) {

	assert.T(o.id == 0, "moving a %s into a live %s (id=%d) would leak it", kind, kind, o.id)
	if src == o {
		return
	}

	*o = src.take()
}

// Bytes views a slice of plain values as raw bytes without copying
func Bytes[T any](values []T) []byte {

	if len(values) == 0 {
		return []byte{}
	}

	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*int(unsafe.Sizeof(zero)))
}

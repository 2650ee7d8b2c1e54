package buffers

import (
	"github.com/telrender/tel/assert"
	"github.com/telrender/tel/gpu"
	"github.com/telrender/tel/logging"
)

// VertexAttrib is one configured attribute slot of a vertex array
type VertexAttrib struct {
	Slot   uint32
	Type   ElementType
	Stride int32
	// BufferId is the vertex buffer the slot reads from
	BufferId uint32
}

// VertexArray owns one GL vertex array object and remembers the layout it was given.
// It must not be copied, see Move.
type VertexArray struct {
	object
	attribs       []VertexAttrib
	indexBufferId uint32
}

func (va *VertexArray) Id() uint32 {
	return va.id
}

func (va *VertexArray) Move() VertexArray {

	moved := VertexArray{
		object:        va.take(),
		attribs:       va.attribs,
		indexBufferId: va.indexBufferId,
	}

	va.attribs = nil
	va.indexBufferId = 0
	return moved
}

// MoveFrom takes ownership of src's vertex array. va must be empty.
func (va *VertexArray) MoveFrom(src *VertexArray) {

	va.takeFrom(&src.object, "VertexArray")
	if src == va {
		return
	}

	va.attribs, src.attribs = src.attribs, nil
	va.indexBufferId, src.indexBufferId = src.indexBufferId, 0
}

// SetAttribute describes slot as tightly packed elements of type et read from vb, and enables it.
// The vertex array and vb must both be bound.
func (va *VertexArray) SetAttribute(slot uint32, vb *VertexBuffer, et ElementType) {

	assert.T(va.id != 0, "SetAttribute on an empty VertexArray")

	// NOTE: The vbo that is bound at VertexAttribPointer time is the one the slot reads from
	if et.IsInteger() {
		va.drv.VertexAttribIPointer(slot, et.CompCount(), et.GLType(), et.Size(), 0)
	} else {
		va.drv.VertexAttribPointer(slot, et.CompCount(), et.GLType(), false, et.Size(), 0)
	}
	va.drv.EnableVertexAttribArray(slot)

	a := VertexAttrib{
		Slot:     slot,
		Type:     et,
		Stride:   et.Size(),
		BufferId: vb.Id(),
	}

	for i := 0; i < len(va.attribs); i++ {
		if va.attribs[i].Slot == slot {
			va.attribs[i] = a
			return
		}
	}

	va.attribs = append(va.attribs, a)
}

// SetIndexBuffer records ib as the element buffer of this vertex array.
// GL itself records whatever is bound to the element target while the vertex array is bound,
// so ib must have been bound that way.
func (va *VertexArray) SetIndexBuffer(ib *IndexBuffer) {
	va.indexBufferId = ib.Id()
}

// IndexBufferId returns the element buffer stored in the vertex array, 0 if none
func (va *VertexArray) IndexBufferId() uint32 {
	return va.indexBufferId
}

// Attributes returns a copy of the configured slots in the order they were set
func (va *VertexArray) Attributes() []VertexAttrib {
	a := make([]VertexAttrib, len(va.attribs))
	copy(a, va.attribs)
	return a
}

func (va *VertexArray) Delete() {

	if va.id == 0 {
		return
	}

	va.drv.DeleteVertexArray(va.id)
	va.object = object{}
	va.attribs = nil
	va.indexBufferId = 0
}

func NewVertexArray(drv gpu.Driver) VertexArray {

	va := VertexArray{object: object{drv: drv}}

	va.id = drv.GenVertexArray()
	if va.id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL vertex array object")
	}

	return va
}

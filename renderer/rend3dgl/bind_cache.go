package rend3dgl

import (
	"github.com/telrender/tel/buffers"
	"github.com/telrender/tel/gpu"
)

// boundState mirrors the GL bindings this renderer has made. It is only correct as long
// as nothing else issues bind calls on the context.
// There is no texture binding: nothing in the renderer samples textures.
type boundState struct {
	vao        uint32
	arrayBuf   uint32
	elementBuf uint32
	fbo        uint32
	program    uint32
}

func vaoIds(va *buffers.VertexArray) (id, indexBufId uint32) {

	if va == nil {
		return 0, 0
	}

	return va.Id(), va.IndexBufferId()
}

// bindVertexArray binds va, or unbinds when va is nil. The element buffer binding is part
// of the vertex array state, so the cached one follows the vertex array.
func (r *Rend3DGL) bindVertexArray(va *buffers.VertexArray) {

	id, _ := vaoIds(va)
	if r.bound.vao == id {
		r.stats.BindsElided++
		return
	}

	r.forceBindVertexArray(va)
}

func (r *Rend3DGL) forceBindVertexArray(va *buffers.VertexArray) {

	id, indexBufId := vaoIds(va)

	r.drv.BindVertexArray(id)
	r.bound.vao = id
	r.bound.elementBuf = indexBufId
	r.stats.BindsIssued++
}

func (r *Rend3DGL) bindArrayBuffer(id uint32) {

	if r.bound.arrayBuf == id {
		r.stats.BindsElided++
		return
	}

	r.forceBindArrayBuffer(id)
}

func (r *Rend3DGL) forceBindArrayBuffer(id uint32) {
	r.drv.BindBuffer(gpu.BufferTarget_Array, id)
	r.bound.arrayBuf = id
	r.stats.BindsIssued++
}

func (r *Rend3DGL) bindElementBuffer(id uint32) {

	if r.bound.elementBuf == id {
		r.stats.BindsElided++
		return
	}

	r.forceBindElementBuffer(id)
}

func (r *Rend3DGL) forceBindElementBuffer(id uint32) {
	r.drv.BindBuffer(gpu.BufferTarget_Element, id)
	r.bound.elementBuf = id
	r.stats.BindsIssued++
}

func (r *Rend3DGL) bindFramebuffer(id uint32) {

	if r.bound.fbo == id {
		r.stats.BindsElided++
		return
	}

	r.forceBindFramebuffer(id)
}

func (r *Rend3DGL) forceBindFramebuffer(id uint32) {
	r.drv.BindFramebuffer(id)
	r.bound.fbo = id
	r.stats.BindsIssued++
}

func (r *Rend3DGL) bindProgram(id uint32) {

	if r.bound.program == id {
		r.stats.BindsElided++
		return
	}

	r.forceBindProgram(id)
}

func (r *Rend3DGL) forceBindProgram(id uint32) {
	r.drv.UseProgram(id)
	r.bound.program = id
	r.stats.BindsIssued++
}

// forgetMesh drops cached bindings to objects of gm, which GL reverts to 0 when they are deleted
func (r *Rend3DGL) forgetMesh(gm *GPUMesh) {

	if vaoId := gm.VertexArray.Id(); vaoId != 0 && r.bound.vao == vaoId {
		r.bound.vao = 0
		r.bound.elementBuf = 0
	}

	if ibId := gm.IndexBuffer.Id(); ibId != 0 && r.bound.elementBuf == ibId {
		r.bound.elementBuf = 0
	}

	for i := 0; i < len(gm.Attributes); i++ {
		if vbId := gm.Attributes[i].Id(); vbId != 0 && r.bound.arrayBuf == vbId {
			r.bound.arrayBuf = 0
		}
	}
}

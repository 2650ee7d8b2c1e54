package rend3dgl

import (
	"errors"

	"github.com/telrender/tel/buffers"
	"github.com/telrender/tel/logging"
	"github.com/telrender/tel/meshes"
	"github.com/telrender/tel/renderer"
	"github.com/telrender/tel/shaders"
)

// LoadMesh uploads m and returns a handle to draw it with. Invalid meshes are rejected
// with meshes.ErrInvalidMesh before anything is allocated.
//
// Every attribute column goes into its own vertex buffer at the column's slot, so shaders
// must use the slots from MeshLocations.
func (r *Rend3DGL) LoadMesh(m *meshes.Mesh) (renderer.MeshHandle, error) {

	if err := m.Validate(); err != nil {
		return 0, err
	}

	// Everything is allocated before anything is bound, so a failure leaves no GL or cache state behind
	gm := &GPUMesh{
		VertexArray: buffers.NewVertexArray(r.drv),
	}
	for i := 0; i < len(gm.Attributes); i++ {
		gm.Attributes[i] = buffers.NewVertexBuffer(r.drv)
	}
	gm.IndexBuffer = buffers.NewIndexBuffer(r.drv)

	if !gm.allocated() {
		gm.Delete()
		return 0, errors.New("failed to allocate GPU objects for mesh")
	}

	r.forceBindVertexArray(&gm.VertexArray)

	attribs := m.Attributes()
	for i := 0; i < len(attribs); i++ {

		a := &attribs[i]
		vb := &gm.Attributes[i]

		r.forceBindArrayBuffer(vb.Id())
		gm.VertexArray.SetAttribute(a.Slot, vb, a.Type)

		if a.Count == 0 {
			logging.WarnLog.Printf("Uploading empty '%s' attribute column as a zero size buffer\n", a.Name)
		}

		vb.SetStorage(a.Data, buffers.StorageFlags_None)
	}

	// Binding the index buffer while the vertex array is bound attaches it to the vertex array
	r.forceBindElementBuffer(gm.IndexBuffer.Id())
	gm.IndexBuffer.SetStorage(m.Triangles, buffers.StorageFlags_None)
	gm.VertexArray.SetIndexBuffer(&gm.IndexBuffer)
	gm.IndexCount = int32(len(m.Triangles))

	// This is needed so that if you load meshes one after the other the
	// following mesh doesn't attach its buffers to this vertex array
	r.bindVertexArray(nil)

	return r.meshes.Add(gm), nil
}

func (gm *GPUMesh) allocated() bool {

	if gm.VertexArray.Id() == 0 || gm.IndexBuffer.Id() == 0 {
		return false
	}

	for i := 0; i < len(gm.Attributes); i++ {
		if gm.Attributes[i].Id() == 0 {
			return false
		}
	}

	return true
}

// MeshLocations pins the attribute names used by meshes to the slots LoadMesh uploads them at
func MeshLocations() shaders.ProgramOptions {

	var m meshes.Mesh
	attribs := m.Attributes()

	opts := shaders.ProgramOptions{
		AttributeLocations: make(map[string]uint32, len(attribs)),
	}

	for _, a := range attribs {
		opts.AttributeLocations[a.Name] = a.Slot
	}

	return opts
}

// LoadShader compiles and links a program. Both stages are deleted whatever the outcome.
func (r *Rend3DGL) LoadShader(vertSrc, fragSrc string, opts shaders.ProgramOptions) (renderer.ProgramHandle, error) {

	vert, err := shaders.CompileShader(r.drv, shaders.ShaderType_Vertex, vertSrc)
	if err != nil {
		return 0, err
	}
	defer vert.Delete()

	frag, err := shaders.CompileShader(r.drv, shaders.ShaderType_Fragment, fragSrc)
	if err != nil {
		return 0, err
	}
	defer frag.Delete()

	prog, err := shaders.LinkProgram(r.drv, vert, frag, opts)
	if err != nil {
		return 0, err
	}

	return r.programs.Add(&prog), nil
}

func (r *Rend3DGL) Mesh(h renderer.MeshHandle) (*GPUMesh, bool) {
	return r.meshes.Find(h)
}

func (r *Rend3DGL) Program(h renderer.ProgramHandle) (*shaders.Program, bool) {
	return r.programs.Find(h)
}

// UnloadMesh frees the GPU objects of h. The handle is never issued again.
func (r *Rend3DGL) UnloadMesh(h renderer.MeshHandle) error {

	gm, err := r.meshes.Remove(h)
	if err != nil {
		return err
	}

	r.forgetMesh(gm)
	gm.Delete()
	return nil
}

func (r *Rend3DGL) UnloadProgram(h renderer.ProgramHandle) error {

	prog, err := r.programs.Remove(h)
	if err != nil {
		return err
	}

	// A program in use is only freed once it stops being current
	if r.bound.program == prog.Id {
		r.forceBindProgram(0)
	}

	prog.Delete()
	return nil
}

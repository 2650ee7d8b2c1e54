package rend3dgl

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/telrender/tel/assert"
	"github.com/telrender/tel/buffers"
	"github.com/telrender/tel/gpu"
	"github.com/telrender/tel/logging"
	"github.com/telrender/tel/meshes"
	"github.com/telrender/tel/registry"
	"github.com/telrender/tel/renderer"
	"github.com/telrender/tel/shaders"
	"go.uber.org/zap"
)

var _ renderer.Render = &Rend3DGL{}

const (
	ModelUniformName  = "model"
	CameraUniformName = "camera"
)

// GPUMesh is a mesh living in GPU memory: one vertex buffer per attribute column, an index
// buffer, and the vertex array tying them together.
type GPUMesh struct {
	IndexBuffer buffers.IndexBuffer
	IndexCount  int32
	VertexArray buffers.VertexArray
	Attributes  [meshes.AttributeCount]buffers.VertexBuffer
}

func (gm *GPUMesh) Delete() {

	gm.VertexArray.Delete()
	gm.IndexBuffer.Delete()
	for i := 0; i < len(gm.Attributes); i++ {
		gm.Attributes[i].Delete()
	}

	gm.IndexCount = 0
}

type Options struct {
	ClearColor gglm.Vec4
	// DebugOutput routes driver debug messages to the logger
	DebugOutput bool
}

func DefaultOptions() Options {
	return Options{
		ClearColor: gglm.NewVec4(0.3, 0.3, 0.5, 1),
	}
}

// Rend3DGL draws scenes with OpenGL. It must only be used from the thread owning the context,
// and it assumes it is the only code issuing bind calls on that context.
type Rend3DGL struct {
	drv  gpu.Driver
	opts Options

	meshes   *registry.Registry[renderer.MeshHandle, *GPUMesh]
	programs *registry.Registry[renderer.ProgramHandle, *shaders.Program]

	bound boundState
	stats renderer.Stats
}

func (r *Rend3DGL) RenderScene(target *buffers.Framebuffer, s *renderer.Scene) {

	r.beginFrame(target)

	camMat := s.Camera.ProjViewMat()
	for i := 0; i < len(s.Objects); i++ {

		obj := &s.Objects[i]

		gm, ok := r.meshes.Find(obj.Renderable.Mesh)
		assert.T(ok, "Scene object %d uses unknown mesh handle %d", i, obj.Renderable.Mesh)

		prog, ok := r.programs.Find(obj.Renderable.Program)
		assert.T(ok, "Scene object %d uses unknown program handle %d", i, obj.Renderable.Program)

		r.bindProgram(prog.Id)
		r.setUniformMat4(prog, ModelUniformName, &obj.Transform.Mat4)
		r.setUniformMat4(prog, CameraUniformName, &camMat)
		r.draw(gm)
	}
}

func (r *Rend3DGL) beginFrame(target *buffers.Framebuffer) {

	r.bindFramebuffer(target.Id())
	r.drv.Viewport(0, 0, target.Width(), target.Height())

	c := &r.opts.ClearColor
	r.drv.ClearColor(c.Data[0], c.Data[1], c.Data[2], c.Data[3])
	r.drv.Clear(gpu.COLOR_BUFFER_BIT | gpu.DEPTH_BUFFER_BIT)
}

// setUniformMat4 uploads m to the named uniform of the bound program.
// Uniforms the program doesn't have are skipped.
func (r *Rend3DGL) setUniformMat4(prog *shaders.Program, name string, m *gglm.Mat4) {

	loc, ok := prog.UniformLocation(name)
	if !ok {
		return
	}

	r.drv.UniformMatrix4fv(loc, &m.Data)
}

func (r *Rend3DGL) draw(gm *GPUMesh) {
	r.bindVertexArray(&gm.VertexArray)
	r.drv.DrawElements(gpu.TRIANGLES, gm.IndexCount, gpu.UNSIGNED_INT, 0)
	r.stats.DrawCalls++
}

// Stats returns the counters of the frame so far
func (r *Rend3DGL) Stats() renderer.Stats {
	return r.stats
}

// FrameEnd resets the per frame stats. Bind state is kept as GL keeps it across frames.
func (r *Rend3DGL) FrameEnd() {
	r.stats = renderer.Stats{}
}

// Delete releases every mesh and program still loaded. Handles stay retired.
func (r *Rend3DGL) Delete() {

	meshHandles := make([]renderer.MeshHandle, 0, r.meshes.Len())
	r.meshes.Each(func(h renderer.MeshHandle, _ *GPUMesh) {
		meshHandles = append(meshHandles, h)
	})

	for _, h := range meshHandles {
		if err := r.UnloadMesh(h); err != nil {
			logging.ErrLog.Println("Failed to unload mesh. Err:", err)
		}
	}

	progHandles := make([]renderer.ProgramHandle, 0, r.programs.Len())
	r.programs.Each(func(h renderer.ProgramHandle, _ *shaders.Program) {
		progHandles = append(progHandles, h)
	})

	for _, h := range progHandles {
		if err := r.UnloadProgram(h); err != nil {
			logging.ErrLog.Println("Failed to unload program. Err:", err)
		}
	}
}

func logDebugMessage(msg gpu.DebugMessage) {

	fields := []zap.Field{
		zap.Uint32("source", msg.Source),
		zap.Uint32("type", msg.Type),
		zap.Uint32("id", msg.Id),
		zap.Uint32("severity", msg.Severity),
	}

	l := logging.L()
	switch msg.Severity {
	case gpu.DEBUG_SEVERITY_HIGH:
		l.Error(msg.Message, fields...)
	case gpu.DEBUG_SEVERITY_MEDIUM:
		l.Warn(msg.Message, fields...)
	case gpu.DEBUG_SEVERITY_LOW:
		l.Info(msg.Message, fields...)
	default:
		l.Debug(msg.Message, fields...)
	}
}

// NewRend3DGL sets up the context state the renderer relies on (depth testing, and debug
// output if enabled). The driver's context must be current.
func NewRend3DGL(drv gpu.Driver, opts Options) *Rend3DGL {

	r := &Rend3DGL{
		drv:      drv,
		opts:     opts,
		meshes:   registry.New[renderer.MeshHandle, *GPUMesh](),
		programs: registry.New[renderer.ProgramHandle, *shaders.Program](),
	}

	if opts.DebugOutput {
		drv.SetDebugCallback(logDebugMessage)
	}

	drv.Enable(gpu.DEPTH_TEST)
	return r
}

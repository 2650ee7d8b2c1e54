package renderer

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/telrender/tel/buffers"
	"github.com/telrender/tel/camera"
	"github.com/telrender/tel/meshes"
	"github.com/telrender/tel/shaders"
)

// MeshHandle refers to a mesh uploaded with Render.LoadMesh.
// Handles of one kind are issued from 0 upwards and never reused.
type MeshHandle uint32

// ProgramHandle refers to a shader program loaded with Render.LoadShader
type ProgramHandle uint32

// Renderable is what an object is drawn with
type Renderable struct {
	Program ProgramHandle
	Mesh    MeshHandle
}

type SceneObject struct {
	// Transform is uploaded as the "model" uniform
	Transform  gglm.TrMat
	Renderable Renderable
}

// Scene is a flat list of objects seen through one camera. Objects are drawn in order.
type Scene struct {
	Objects []SceneObject
	Camera  camera.Camera
}

// Add appends an object with an identity transform and returns a pointer to it.
// The pointer is only valid until the next Add.
func (s *Scene) Add(r Renderable) *SceneObject {
	s.Objects = append(s.Objects, SceneObject{
		Transform:  gglm.NewTrMatId(),
		Renderable: r,
	})
	return &s.Objects[len(s.Objects)-1]
}

// Stats are counters for the current frame, reset by FrameEnd
type Stats struct {
	DrawCalls   int
	BindsIssued int
	BindsElided int
}

type Render interface {
	LoadMesh(m *meshes.Mesh) (MeshHandle, error)
	LoadShader(vertSrc, fragSrc string, opts shaders.ProgramOptions) (ProgramHandle, error)
	UnloadMesh(h MeshHandle) error
	UnloadProgram(h ProgramHandle) error

	RenderScene(target *buffers.Framebuffer, s *Scene)
	Stats() Stats
	FrameEnd()
	Delete()
}

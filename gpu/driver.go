package gpu

// Driver is the set of GL entry points used by buffers, shaders and the renderer.
//
// All calls must happen on the thread that owns the GL context. Methods map one to one
// to their GL counterparts, except the Gen*/Create* calls which return the new name,
// and the *Status/*InfoLog/Active* calls which wrap the usual query dance.
type Driver interface {
	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target BufferTarget, id uint32)
	// BufferStorage creates an immutable store sized exactly to data.
	// An empty data slice is a valid zero-size allocation.
	BufferStorage(target BufferTarget, data []byte, flags uint32)

	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	VertexAttribPointer(slot uint32, compCount int32, compType uint32, normalized bool, stride int32, offset uintptr)
	// VertexAttribIPointer keeps integer components as integers instead of converting them to float
	VertexAttribIPointer(slot uint32, compCount int32, compType uint32, stride int32, offset uintptr)
	EnableVertexAttribArray(slot uint32)

	GenFramebuffer() uint32
	DeleteFramebuffer(id uint32)
	BindFramebuffer(id uint32)

	CreateShader(shaderType uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderCompileStatus(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	BindAttribLocation(program, slot uint32, name string)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinkStatus(program uint32) bool
	ProgramInfoLog(program uint32) string
	ActiveAttributes(program uint32) []ActiveVariable
	ActiveUniforms(program uint32) []ActiveVariable
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// UniformMatrix4fv uploads one column major 4x4 matrix to the currently used program
	UniformMatrix4fv(location int32, value *[4][4]float32)

	Enable(capability uint32)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	DrawElements(mode uint32, count int32, indexType uint32, offset uintptr)

	// SetDebugCallback enables synchronous debug output and routes messages to cb.
	// A nil cb disables debug output.
	SetDebugCallback(cb func(msg DebugMessage))
}

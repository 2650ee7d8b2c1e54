// Package gldriver implements gpu.Driver with go-gl's OpenGL 4.5 core bindings.
//
// New must be called after a context was made current on the calling thread.
package gldriver

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/telrender/tel/gpu"
	"github.com/telrender/tel/logging"
)

var _ gpu.Driver = &Driver{}

type Driver struct {
	debugCb func(gpu.DebugMessage)
}

func New() (*Driver, error) {

	if err := gl.Init(); err != nil {
		return nil, err
	}

	logging.InfoLog.Printf("OpenGL version=%s; renderer=%s\n", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Driver{}, nil
}

func (d *Driver) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (d *Driver) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (d *Driver) BindBuffer(target gpu.BufferTarget, id uint32) {
	gl.BindBuffer(uint32(target), id)
}

func (d *Driver) BufferStorage(target gpu.BufferTarget, data []byte, flags uint32) {

	// glBufferStorage rejects a size of zero, but an empty mutable store is fine
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, gl.STATIC_DRAW)
		return
	}

	gl.BufferStorage(uint32(target), len(data), gl.Ptr(&data[0]), flags)
}

func (d *Driver) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (d *Driver) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (d *Driver) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (d *Driver) VertexAttribPointer(slot uint32, compCount int32, compType uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(slot, compCount, compType, normalized, stride, offset)
}

func (d *Driver) VertexAttribIPointer(slot uint32, compCount int32, compType uint32, stride int32, offset uintptr) {
	gl.VertexAttribIPointerWithOffset(slot, compCount, compType, stride, offset)
}

func (d *Driver) EnableVertexAttribArray(slot uint32) {
	gl.EnableVertexAttribArray(slot)
}

func (d *Driver) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (d *Driver) DeleteFramebuffer(id uint32) {
	gl.DeleteFramebuffers(1, &id)
}

func (d *Driver) BindFramebuffer(id uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, id)
}

func (d *Driver) CreateShader(shaderType uint32) uint32 {
	return gl.CreateShader(shaderType)
}

func (d *Driver) ShaderSource(shader uint32, src string) {
	cSrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, cSrc, nil)
}

func (d *Driver) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *Driver) ShaderCompileStatus(shader uint32) bool {
	var compiledSuccessfully int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &compiledSuccessfully)
	return compiledSuccessfully == gl.TRUE
}

func (d *Driver) ShaderInfoLog(shader uint32) string {

	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetShaderInfoLog(shader, logLength, nil, log)
	return gl.GoStr(log)
}

func (d *Driver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Driver) BindAttribLocation(program, slot uint32, name string) {
	gl.BindAttribLocation(program, slot, gl.Str(name+"\x00"))
}

func (d *Driver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Driver) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (d *Driver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *Driver) ProgramLinkStatus(program uint32) bool {
	var linked int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &linked)
	return linked == gl.TRUE
}

func (d *Driver) ProgramInfoLog(program uint32) string {

	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetProgramInfoLog(program, logLength, nil, log)
	return gl.GoStr(log)
}

func (d *Driver) ActiveAttributes(program uint32) []gpu.ActiveVariable {
	return activeVariables(program, gl.ACTIVE_ATTRIBUTES, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, gl.GetActiveAttrib)
}

func (d *Driver) ActiveUniforms(program uint32) []gpu.ActiveVariable {
	return activeVariables(program, gl.ACTIVE_UNIFORMS, gl.ACTIVE_UNIFORM_MAX_LENGTH, gl.GetActiveUniform)
}

type getActiveFunc func(program uint32, index uint32, bufSize int32, length *int32, size *int32, xtype *uint32, name *uint8)

func activeVariables(program uint32, countParam, maxLenParam uint32, getActive getActiveFunc) []gpu.ActiveVariable {

	var count, maxNameLen int32
	gl.GetProgramiv(program, countParam, &count)
	gl.GetProgramiv(program, maxLenParam, &maxNameLen)
	if count <= 0 || maxNameLen <= 0 {
		return nil
	}

	vars := make([]gpu.ActiveVariable, 0, count)
	nameBuf := make([]uint8, maxNameLen)
	for i := int32(0); i < count; i++ {

		var nameLen, size int32
		var xtype uint32
		getActive(program, uint32(i), maxNameLen, &nameLen, &size, &xtype, &nameBuf[0])

		vars = append(vars, gpu.ActiveVariable{
			Name: string(nameBuf[:nameLen]),
			Type: xtype,
			Size: size,
		})
	}

	return vars
}

func (d *Driver) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Driver) UniformMatrix4fv(location int32, value *[4][4]float32) {
	gl.UniformMatrix4fv(location, 1, false, &value[0][0])
}

func (d *Driver) Enable(capability uint32) {
	gl.Enable(capability)
}

func (d *Driver) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Driver) Clear(mask uint32) {
	gl.Clear(mask)
}

func (d *Driver) DrawElements(mode uint32, count int32, indexType uint32, offset uintptr) {
	gl.DrawElementsWithOffset(mode, count, indexType, offset)
}

func (d *Driver) SetDebugCallback(cb func(msg gpu.DebugMessage)) {

	d.debugCb = cb
	if cb == nil {
		gl.Disable(gl.DEBUG_OUTPUT)
		gl.DebugMessageCallback(nil, nil)
		return
	}

	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(d.onDebugMessage, nil)
}

func (d *Driver) onDebugMessage(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {

	if d.debugCb == nil {
		return
	}

	d.debugCb(gpu.DebugMessage{
		Source:   source,
		Type:     gltype,
		Id:       id,
		Severity: severity,
		Message:  message,
	})
}

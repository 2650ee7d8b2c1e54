// Package gputest provides an in-memory gpu.Driver that records every call and keeps
// enough GL state (bindings, vertex array state, buffer stores, shader objects) for tests
// to check what a component did without a real context.
//
// Shader compilation is simulated: a source compiles when its braces and parentheses
// balance, it has a main function and has no #error directive. Linking collects `in`
// declarations of the vertex stage as attributes and `uniform` declarations of all stages
// as uniforms.
package gputest

import (
	"fmt"
	"sort"

	"github.com/telrender/tel/gpu"
)

var _ gpu.Driver = &Driver{}

type Call struct {
	Name string
	Args []any
}

type AttribPointer struct {
	CompCount  int32
	CompType   uint32
	Normalized bool
	Stride     int32
	Offset     uintptr
	// Integer is set by VertexAttribIPointer
	Integer bool
	// Buffer is the array buffer that was bound when the pointer was set
	Buffer  uint32
	Enabled bool
}

type VertexArrayState struct {
	ElementBuffer uint32
	Attribs       map[uint32]*AttribPointer
}

type BufferStore struct {
	Data  []byte
	Flags uint32
}

type Shader struct {
	Type     uint32
	Src      string
	Compiled bool
	Log      string
}

type Program struct {
	Shaders      []uint32
	AttribBinds  map[string]uint32
	Linked       bool
	Log          string
	Attributes   []gpu.ActiveVariable
	Uniforms     []gpu.ActiveVariable
	AttribLocs   map[string]int32
	UniformLocs  map[string]int32
	UniformMat4s map[int32][4][4]float32
}

type DrawCall struct {
	Program       uint32
	VertexArray   uint32
	ElementBuffer uint32
	Framebuffer   uint32
	Mode          uint32
	Count         int32
	IndexType     uint32
}

type Driver struct {
	Calls []Call

	nextName uint32

	BoundBuffers   map[gpu.BufferTarget]uint32
	BoundVAO       uint32
	BoundFBO       uint32
	CurrentProgram uint32
	Enabled        map[uint32]bool

	ViewportRect [4]int32
	ClearRGBA    [4]float32

	Buffers      map[uint32]*BufferStore
	VertexArrays map[uint32]*VertexArrayState
	Framebuffers map[uint32]bool
	Shaders      map[uint32]*Shader
	Programs     map[uint32]*Program

	Draws []DrawCall

	// Errors collects what a real driver would report as GL errors
	Errors []string

	DebugCallback func(gpu.DebugMessage)

	// FailAllocations makes Gen*/Create* return 0, as a driver out of memory would
	FailAllocations bool

	allocLimited bool
	allocBudget  int
}

func New() *Driver {
	return &Driver{
		BoundBuffers: map[gpu.BufferTarget]uint32{},
		Enabled:      map[uint32]bool{},
		Buffers:      map[uint32]*BufferStore{},
		VertexArrays: map[uint32]*VertexArrayState{},
		Framebuffers: map[uint32]bool{},
		Shaders:      map[uint32]*Shader{},
		Programs:     map[uint32]*Program{},
	}
}

func (d *Driver) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Driver) errorf(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

// FailAllocationsAfter lets the next n Gen*/Create* calls succeed and makes every one after fail.
// A negative n removes the limit.
func (d *Driver) FailAllocationsAfter(n int) {
	d.allocLimited = n >= 0
	d.allocBudget = n
}

func (d *Driver) genName() uint32 {

	if d.FailAllocations {
		return 0
	}

	if d.allocLimited {
		if d.allocBudget == 0 {
			return 0
		}
		d.allocBudget--
	}

	d.nextName++
	return d.nextName
}

// Count returns how many times the named call was issued
func (d *Driver) Count(name string) int {

	n := 0
	for i := 0; i < len(d.Calls); i++ {
		if d.Calls[i].Name == name {
			n++
		}
	}

	return n
}

// CallsNamed returns the calls with the given name in issue order
func (d *Driver) CallsNamed(name string) []Call {

	calls := []Call{}
	for i := 0; i < len(d.Calls); i++ {
		if d.Calls[i].Name == name {
			calls = append(calls, d.Calls[i])
		}
	}

	return calls
}

// Names returns the names of all recorded calls in issue order
func (d *Driver) Names() []string {

	names := make([]string, len(d.Calls))
	for i := 0; i < len(d.Calls); i++ {
		names[i] = d.Calls[i].Name
	}

	return names
}

// ResetCalls forgets recorded calls and draws but keeps all GL state
func (d *Driver) ResetCalls() {
	d.Calls = d.Calls[:0]
	d.Draws = d.Draws[:0]
}

// LiveObjects returns the number of objects that were created and not deleted yet
func (d *Driver) LiveObjects() int {
	return len(d.Buffers) + len(d.VertexArrays) + len(d.Framebuffers) + len(d.Shaders) + len(d.Programs)
}

func (d *Driver) GenBuffer() uint32 {

	id := d.genName()
	d.record("GenBuffer", id)
	if id != 0 {
		d.Buffers[id] = &BufferStore{}
	}

	return id
}

func (d *Driver) DeleteBuffer(id uint32) {

	d.record("DeleteBuffer", id)
	if id == 0 {
		return
	}

	delete(d.Buffers, id)
	for target, bound := range d.BoundBuffers {
		if bound == id {
			d.BoundBuffers[target] = 0
		}
	}
}

func (d *Driver) BindBuffer(target gpu.BufferTarget, id uint32) {

	d.record("BindBuffer", target, id)
	if _, ok := d.Buffers[id]; id != 0 && !ok {
		d.errorf("BindBuffer: %d is not a buffer name", id)
	}

	d.BoundBuffers[target] = id
	if target == gpu.BufferTarget_Element {
		if vao, ok := d.VertexArrays[d.BoundVAO]; ok {
			vao.ElementBuffer = id
		}
	}
}

func (d *Driver) BufferStorage(target gpu.BufferTarget, data []byte, flags uint32) {

	d.record("BufferStorage", target, len(data), flags)

	id := d.BoundBuffers[target]
	store, ok := d.Buffers[id]
	if !ok {
		d.errorf("BufferStorage: no buffer bound to %s", target)
		return
	}

	if store.Data != nil {
		d.errorf("BufferStorage: buffer %d already has immutable storage", id)
		return
	}

	store.Data = append(make([]byte, 0, len(data)), data...)
	store.Flags = flags
}

func (d *Driver) GenVertexArray() uint32 {

	id := d.genName()
	d.record("GenVertexArray", id)
	if id != 0 {
		d.VertexArrays[id] = &VertexArrayState{Attribs: map[uint32]*AttribPointer{}}
	}

	return id
}

func (d *Driver) DeleteVertexArray(id uint32) {

	d.record("DeleteVertexArray", id)
	if id == 0 {
		return
	}

	delete(d.VertexArrays, id)
	if d.BoundVAO == id {
		d.BoundVAO = 0
		d.BoundBuffers[gpu.BufferTarget_Element] = 0
	}
}

func (d *Driver) BindVertexArray(id uint32) {

	d.record("BindVertexArray", id)

	vao, ok := d.VertexArrays[id]
	if id != 0 && !ok {
		d.errorf("BindVertexArray: %d is not a vertex array name", id)
		return
	}

	d.BoundVAO = id
	if ok {
		d.BoundBuffers[gpu.BufferTarget_Element] = vao.ElementBuffer
	} else {
		d.BoundBuffers[gpu.BufferTarget_Element] = 0
	}
}

func (d *Driver) VertexAttribPointer(slot uint32, compCount int32, compType uint32, normalized bool, stride int32, offset uintptr) {
	d.record("VertexAttribPointer", slot, compCount, compType, normalized, stride, offset)
	d.setAttribPointer("VertexAttribPointer", slot, compCount, compType, normalized, false, stride, offset)
}

func (d *Driver) VertexAttribIPointer(slot uint32, compCount int32, compType uint32, stride int32, offset uintptr) {

	d.record("VertexAttribIPointer", slot, compCount, compType, stride, offset)

	if compType == gpu.FLOAT {
		d.errorf("VertexAttribIPointer: slot %d: FLOAT is not an integer type", slot)
		return
	}

	d.setAttribPointer("VertexAttribIPointer", slot, compCount, compType, false, true, stride, offset)
}

func (d *Driver) setAttribPointer(call string, slot uint32, compCount int32, compType uint32, normalized, integer bool, stride int32, offset uintptr) {

	vao, ok := d.VertexArrays[d.BoundVAO]
	if !ok {
		d.errorf("%s: no vertex array bound", call)
		return
	}

	a := vao.Attribs[slot]
	if a == nil {
		a = &AttribPointer{}
		vao.Attribs[slot] = a
	}

	a.CompCount = compCount
	a.CompType = compType
	a.Normalized = normalized
	a.Integer = integer
	a.Stride = stride
	a.Offset = offset
	a.Buffer = d.BoundBuffers[gpu.BufferTarget_Array]
}

func (d *Driver) EnableVertexAttribArray(slot uint32) {

	d.record("EnableVertexAttribArray", slot)

	vao, ok := d.VertexArrays[d.BoundVAO]
	if !ok {
		d.errorf("EnableVertexAttribArray: no vertex array bound")
		return
	}

	a := vao.Attribs[slot]
	if a == nil {
		a = &AttribPointer{}
		vao.Attribs[slot] = a
	}
	a.Enabled = true
}

func (d *Driver) GenFramebuffer() uint32 {

	id := d.genName()
	d.record("GenFramebuffer", id)
	if id != 0 {
		d.Framebuffers[id] = true
	}

	return id
}

func (d *Driver) DeleteFramebuffer(id uint32) {

	d.record("DeleteFramebuffer", id)
	delete(d.Framebuffers, id)
	if d.BoundFBO == id {
		d.BoundFBO = 0
	}
}

func (d *Driver) BindFramebuffer(id uint32) {

	d.record("BindFramebuffer", id)
	if id != 0 && !d.Framebuffers[id] {
		d.errorf("BindFramebuffer: %d is not a framebuffer name", id)
	}

	d.BoundFBO = id
}

func (d *Driver) CreateShader(shaderType uint32) uint32 {

	id := d.genName()
	d.record("CreateShader", shaderType, id)
	if id != 0 {
		d.Shaders[id] = &Shader{Type: shaderType}
	}

	return id
}

func (d *Driver) ShaderSource(shader uint32, src string) {

	d.record("ShaderSource", shader, src)
	if s, ok := d.Shaders[shader]; ok {
		s.Src = src
	}
}

func (d *Driver) CompileShader(shader uint32) {

	d.record("CompileShader", shader)

	s, ok := d.Shaders[shader]
	if !ok {
		d.errorf("CompileShader: %d is not a shader name", shader)
		return
	}

	s.Log = checkSource(s.Src)
	s.Compiled = s.Log == ""
}

func (d *Driver) ShaderCompileStatus(shader uint32) bool {
	s, ok := d.Shaders[shader]
	return ok && s.Compiled
}

func (d *Driver) ShaderInfoLog(shader uint32) string {

	s, ok := d.Shaders[shader]
	if !ok {
		return ""
	}

	return s.Log
}

func (d *Driver) DeleteShader(shader uint32) {
	d.record("DeleteShader", shader)
	delete(d.Shaders, shader)
}

func (d *Driver) CreateProgram() uint32 {

	id := d.genName()
	d.record("CreateProgram", id)
	if id != 0 {
		d.Programs[id] = &Program{AttribBinds: map[string]uint32{}}
	}

	return id
}

func (d *Driver) BindAttribLocation(program, slot uint32, name string) {

	d.record("BindAttribLocation", program, slot, name)
	if p, ok := d.Programs[program]; ok {
		p.AttribBinds[name] = slot
	}
}

func (d *Driver) AttachShader(program, shader uint32) {

	d.record("AttachShader", program, shader)

	p, ok := d.Programs[program]
	if !ok {
		d.errorf("AttachShader: %d is not a program name", program)
		return
	}

	p.Shaders = append(p.Shaders, shader)
}

func (d *Driver) DetachShader(program, shader uint32) {

	d.record("DetachShader", program, shader)

	p, ok := d.Programs[program]
	if !ok {
		return
	}

	for i := 0; i < len(p.Shaders); i++ {
		if p.Shaders[i] == shader {
			p.Shaders = append(p.Shaders[:i], p.Shaders[i+1:]...)
			return
		}
	}
}

func (d *Driver) LinkProgram(program uint32) {

	d.record("LinkProgram", program)

	p, ok := d.Programs[program]
	if !ok {
		d.errorf("LinkProgram: %d is not a program name", program)
		return
	}

	p.Linked = false
	p.Log = ""

	var vert, frag *Shader
	for _, id := range p.Shaders {

		s, ok := d.Shaders[id]
		if !ok || !s.Compiled {
			p.Log = fmt.Sprintf("error: linking with uncompiled/unspecialized shader %d", id)
			return
		}

		switch s.Type {
		case gpu.VERTEX_SHADER:
			vert = s
		case gpu.FRAGMENT_SHADER:
			frag = s
		}
	}

	if vert == nil || frag == nil {
		p.Log = "error: program needs both a vertex and a fragment shader"
		return
	}

	p.Attributes, p.AttribLocs = linkAttributes(vert.Src, p.AttribBinds)
	p.Uniforms, p.UniformLocs = linkUniforms(vert.Src, frag.Src)
	p.UniformMat4s = map[int32][4][4]float32{}
	p.Linked = true
}

func (d *Driver) ProgramLinkStatus(program uint32) bool {
	p, ok := d.Programs[program]
	return ok && p.Linked
}

func (d *Driver) ProgramInfoLog(program uint32) string {

	p, ok := d.Programs[program]
	if !ok {
		return ""
	}

	return p.Log
}

func (d *Driver) ActiveAttributes(program uint32) []gpu.ActiveVariable {

	p, ok := d.Programs[program]
	if !ok || !p.Linked {
		return nil
	}

	return append([]gpu.ActiveVariable(nil), p.Attributes...)
}

func (d *Driver) ActiveUniforms(program uint32) []gpu.ActiveVariable {

	p, ok := d.Programs[program]
	if !ok || !p.Linked {
		return nil
	}

	return append([]gpu.ActiveVariable(nil), p.Uniforms...)
}

func (d *Driver) GetAttribLocation(program uint32, name string) int32 {

	p, ok := d.Programs[program]
	if !ok || !p.Linked {
		return -1
	}

	loc, ok := p.AttribLocs[name]
	if !ok {
		return -1
	}

	return loc
}

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {

	p, ok := d.Programs[program]
	if !ok || !p.Linked {
		return -1
	}

	loc, ok := p.UniformLocs[name]
	if !ok {
		return -1
	}

	return loc
}

func (d *Driver) DeleteProgram(program uint32) {

	d.record("DeleteProgram", program)
	delete(d.Programs, program)
	if d.CurrentProgram == program {
		d.CurrentProgram = 0
	}
}

func (d *Driver) UseProgram(program uint32) {

	d.record("UseProgram", program)
	if p, ok := d.Programs[program]; program != 0 && (!ok || !p.Linked) {
		d.errorf("UseProgram: %d is not a linked program", program)
	}

	d.CurrentProgram = program
}

func (d *Driver) UniformMatrix4fv(location int32, value *[4][4]float32) {

	d.record("UniformMatrix4fv", location, *value)

	p, ok := d.Programs[d.CurrentProgram]
	if !ok {
		d.errorf("UniformMatrix4fv: no program in use")
		return
	}

	p.UniformMat4s[location] = *value
}

func (d *Driver) Enable(capability uint32) {
	d.record("Enable", capability)
	d.Enabled[capability] = true
}

func (d *Driver) Viewport(x, y, width, height int32) {
	d.record("Viewport", x, y, width, height)
	d.ViewportRect = [4]int32{x, y, width, height}
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.record("ClearColor", r, g, b, a)
	d.ClearRGBA = [4]float32{r, g, b, a}
}

func (d *Driver) Clear(mask uint32) {
	d.record("Clear", mask)
}

func (d *Driver) DrawElements(mode uint32, count int32, indexType uint32, offset uintptr) {

	d.record("DrawElements", mode, count, indexType, offset)

	if d.CurrentProgram == 0 {
		d.errorf("DrawElements: no program in use")
	}

	if d.BoundVAO == 0 {
		d.errorf("DrawElements: no vertex array bound")
	}

	d.Draws = append(d.Draws, DrawCall{
		Program:       d.CurrentProgram,
		VertexArray:   d.BoundVAO,
		ElementBuffer: d.BoundBuffers[gpu.BufferTarget_Element],
		Framebuffer:   d.BoundFBO,
		Mode:          mode,
		Count:         count,
		IndexType:     indexType,
	})
}

func (d *Driver) SetDebugCallback(cb func(msg gpu.DebugMessage)) {
	d.record("SetDebugCallback", cb != nil)
	d.DebugCallback = cb
}

// EmitDebugMessage delivers msg to the registered debug callback, if any
func (d *Driver) EmitDebugMessage(msg gpu.DebugMessage) {
	if d.DebugCallback != nil {
		d.DebugCallback(msg)
	}
}

// AttribSlots returns the configured attribute slots of a vertex array in ascending order
func (d *Driver) AttribSlots(vao uint32) []uint32 {

	state, ok := d.VertexArrays[vao]
	if !ok {
		return nil
	}

	slots := make([]uint32, 0, len(state.Attribs))
	for slot := range state.Attribs {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	return slots
}

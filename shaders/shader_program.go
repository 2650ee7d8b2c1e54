package shaders

import (
	"errors"
	"sort"

	"github.com/telrender/tel/assert"
	"github.com/telrender/tel/gpu"
	"github.com/telrender/tel/logging"
)

// ProgramVariable is an active attribute or uniform of a linked program
type ProgramVariable struct {
	Name     string
	Location int32
	// Type is the GL type enum, e.g. gpu.FLOAT_MAT4
	Type uint32
	// Size is the array length, 1 for non-array variables
	Size int32
}

type ProgramOptions struct {
	// AttributeLocations pins attribute names to slots before linking.
	// Attributes not listed get whatever slot the linker picks.
	AttributeLocations map[string]uint32
}

// Program is a linked shader program. Its variable tables are fixed at link time.
type Program struct {
	drv        gpu.Driver
	Id         uint32
	attributes []ProgramVariable
	uniforms   []ProgramVariable
}

// UniformLocation returns the location of the named uniform. The bool is false if the
// program has no active uniform with that name.
func (sp *Program) UniformLocation(name string) (int32, bool) {
	return findVariable(sp.uniforms, name)
}

func (sp *Program) AttribLocation(name string) (int32, bool) {
	return findVariable(sp.attributes, name)
}

func findVariable(vars []ProgramVariable, name string) (int32, bool) {

	for i := 0; i < len(vars); i++ {
		if vars[i].Name == name {
			return vars[i].Location, true
		}
	}

	return -1, false
}

func (sp *Program) Attributes() []ProgramVariable {
	v := make([]ProgramVariable, len(sp.attributes))
	copy(v, sp.attributes)
	return v
}

func (sp *Program) Uniforms() []ProgramVariable {
	v := make([]ProgramVariable, len(sp.uniforms))
	copy(v, sp.uniforms)
	return v
}

func (sp *Program) Delete() {

	if sp.Id == 0 {
		return
	}

	sp.drv.DeleteProgram(sp.Id)
	sp.Id = 0
	sp.attributes = nil
	sp.uniforms = nil
}

// LinkProgram links a vertex and a fragment stage into a program and reads back its active
// attributes and uniforms. The stages are detached afterwards but not deleted.
// On link failure the program is deleted and a *CompileError with the link log is returned.
func LinkProgram(drv gpu.Driver, vert, frag Shader, opts ProgramOptions) (Program, error) {

	assert.T(vert.Type == ShaderType_Vertex, "LinkProgram expects a vertex shader first, got '%s'", vert.Type)
	assert.T(frag.Type == ShaderType_Fragment, "LinkProgram expects a fragment shader second, got '%s'", frag.Type)

	progId := drv.CreateProgram()
	if progId == 0 {
		return Program{}, errors.New("failed to create shader program")
	}

	// Sorted for a stable call order
	names := make([]string, 0, len(opts.AttributeLocations))
	for name := range opts.AttributeLocations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		drv.BindAttribLocation(progId, opts.AttributeLocations[name], name)
	}

	drv.AttachShader(progId, vert.Id)
	drv.AttachShader(progId, frag.Id)
	drv.LinkProgram(progId)
	drv.DetachShader(progId, vert.Id)
	drv.DetachShader(progId, frag.Id)

	if !drv.ProgramLinkStatus(progId) {

		errMsg := drv.ProgramInfoLog(progId)
		logging.ErrLog.Println("Linking of shader program with id", progId, "failed. Err:", errMsg)

		drv.DeleteProgram(progId)
		return Program{}, &CompileError{Stage: ShaderType_Program, Log: errMsg}
	}

	sp := Program{
		drv: drv,
		Id:  progId,
	}

	for _, v := range drv.ActiveAttributes(progId) {
		sp.attributes = append(sp.attributes, ProgramVariable{
			Name:     v.Name,
			Location: drv.GetAttribLocation(progId, v.Name),
			Type:     v.Type,
			Size:     v.Size,
		})
	}

	for _, v := range drv.ActiveUniforms(progId) {
		sp.uniforms = append(sp.uniforms, ProgramVariable{
			Name:     v.Name,
			Location: drv.GetUniformLocation(progId, v.Name),
			Type:     v.Type,
			Size:     v.Size,
		})
	}

	return sp, nil
}

package shaders

import (
	"github.com/telrender/tel/gpu"
	"github.com/telrender/tel/logging"
)

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment

	// ShaderType_Program is not a real stage. It is the stage reported for link failures.
	ShaderType_Program
)

func (s ShaderType) ToGl() uint32 {

	switch s {
	case ShaderType_Vertex:
		return gpu.VERTEX_SHADER
	case ShaderType_Fragment:
		return gpu.FRAGMENT_SHADER

	default:
		logging.ErrLog.Panicf("Shader type '%s' has no OpenGL stage\n", s)
		return 0
	}
}

func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Program:
		return "program"
	default:
		return "unknown"
	}
}

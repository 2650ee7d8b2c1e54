// Package gpu describes the slice of OpenGL the renderer talks to.
//
// Nothing here links against a GL library, so packages built on Driver can be
// compiled and tested without a context. gldriver provides the real implementation
// and gputest a recording one.
package gpu

// Enum values are the ones from the OpenGL 4.5 core registry
const (
	ARRAY_BUFFER         = 0x8892
	ELEMENT_ARRAY_BUFFER = 0x8893
	FRAMEBUFFER          = 0x8d40

	VERTEX_SHADER   = 0x8b31
	FRAGMENT_SHADER = 0x8b30

	BYTE           = 0x1400
	UNSIGNED_BYTE  = 0x1401
	SHORT          = 0x1402
	UNSIGNED_SHORT = 0x1403
	INT            = 0x1404
	UNSIGNED_INT   = 0x1405
	FLOAT          = 0x1406

	FLOAT_VEC2 = 0x8B50
	FLOAT_VEC3 = 0x8B51
	FLOAT_VEC4 = 0x8B52
	FLOAT_MAT4 = 0x8B5C

	TRIANGLES = 0x4

	COLOR_BUFFER_BIT   = 0x4000
	DEPTH_BUFFER_BIT   = 0x100
	STENCIL_BUFFER_BIT = 0x400

	DEPTH_TEST = 0xb71

	DEBUG_SEVERITY_HIGH         = 0x9146
	DEBUG_SEVERITY_MEDIUM       = 0x9147
	DEBUG_SEVERITY_LOW          = 0x9148
	DEBUG_SEVERITY_NOTIFICATION = 0x826b

	DYNAMIC_STORAGE_BIT = 0x0100
	MAP_READ_BIT        = 0x0001
	MAP_WRITE_BIT       = 0x0002
	CLIENT_STORAGE_BIT  = 0x0200
)

type BufferTarget uint32

const (
	BufferTarget_Array   BufferTarget = ARRAY_BUFFER
	BufferTarget_Element BufferTarget = ELEMENT_ARRAY_BUFFER
)

func (t BufferTarget) String() string {
	switch t {
	case BufferTarget_Array:
		return "ARRAY_BUFFER"
	case BufferTarget_Element:
		return "ELEMENT_ARRAY_BUFFER"
	default:
		return "UNKNOWN_BUFFER_TARGET"
	}
}

// ActiveVariable is one active attribute or uniform as reported by the linker
type ActiveVariable struct {
	Name string
	// Type is the GL type enum (e.g. FLOAT_VEC3)
	Type uint32
	// Size is the array length, 1 for non-arrays
	Size int32
}

// DebugMessage is what the driver reports through the debug output callback
type DebugMessage struct {
	Source   uint32
	Type     uint32
	Id       uint32
	Severity uint32
	Message  string
}

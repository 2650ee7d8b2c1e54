package buffers

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/telrender/tel/assert"
	"github.com/telrender/tel/gpu"
)

// ElementType is the shape of one vertex attribute element (e.g. Vec3 is 3 floats)
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeUint32
	DataTypeInt32
	DataTypeFloat32

	DataTypeVec2
	DataTypeVec3
	DataTypeVec4
)

// ElementTypeOf returns the element type of a column whose elements look like sample.
// Unsupported types give DataTypeUnknown.
func ElementTypeOf(sample any) ElementType {

	switch sample.(type) {
	case uint32:
		return DataTypeUint32
	case int32:
		return DataTypeInt32
	case float32:
		return DataTypeFloat32

	case gglm.Vec2:
		return DataTypeVec2
	case gglm.Vec3:
		return DataTypeVec3
	case gglm.Vec4:
		return DataTypeVec4

	default:
		return DataTypeUnknown
	}
}

func (dt ElementType) GLType() uint32 {

	switch dt {

	case DataTypeUint32:
		return gpu.UNSIGNED_INT
	case DataTypeInt32:
		return gpu.INT

	case DataTypeFloat32:
		fallthrough
	case DataTypeVec2:
		fallthrough
	case DataTypeVec3:
		fallthrough
	case DataTypeVec4:
		return gpu.FLOAT

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// IsInteger reports whether the components are integers, which shaders read as int/uint instead of float
func (dt ElementType) IsInteger() bool {
	return dt == DataTypeUint32 || dt == DataTypeInt32
}

// CompSize returns the size in bytes of one component of the type (e.g. for Vec2 its 4)
func (dt ElementType) CompSize() int32 {

	switch dt {

	case DataTypeUint32:
		fallthrough
	case DataTypeInt32:
		fallthrough
	case DataTypeFloat32:
		fallthrough
	case DataTypeVec2:
		fallthrough
	case DataTypeVec3:
		fallthrough
	case DataTypeVec4:
		return 4

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// CompCount returns the number of components in the element (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int32 {

	switch dt {

	case DataTypeUint32:
		fallthrough
	case DataTypeInt32:
		fallthrough
	case DataTypeFloat32:
		return 1

	case DataTypeVec2:
		return 2
	case DataTypeVec3:
		return 3
	case DataTypeVec4:
		return 4

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// Size returns the total size in bytes (e.g. for Vec3 its 3*4=12 bytes).
// Attribute columns are tightly packed, so this is also the stride.
func (dt ElementType) Size() int32 {
	return dt.CompCount() * dt.CompSize()
}

func (dt ElementType) String() string {

	switch dt {

	case DataTypeUint32:
		return "uint32"
	case DataTypeInt32:
		return "int32"
	case DataTypeFloat32:
		return "float32"

	case DataTypeVec2:
		return "Vec2"
	case DataTypeVec3:
		return "Vec3"
	case DataTypeVec4:
		return "Vec4"

	default:
		return "Unknown"
	}
}

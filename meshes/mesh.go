// Package meshes holds CPU side mesh data, ready to be streamed to the GPU by a renderer.
package meshes

import (
	"errors"
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/telrender/tel/buffers"
)

var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is an indexed triangle list with one position and one normal per vertex
type Mesh struct {
	Positions []gglm.Vec3
	Normals   []gglm.Vec3
	// Triangles holds 3 vertex indices per triangle
	Triangles []uint32
}

// Validate reports whether the mesh can be uploaded. A mesh with no triangles must have no
// vertices, and every index must point at a vertex that has both a position and a normal.
func (m *Mesh) Validate() error {

	if len(m.Positions) != len(m.Normals) {
		return fmt.Errorf("%w: %d positions but %d normals", ErrInvalidMesh, len(m.Positions), len(m.Normals))
	}

	if len(m.Triangles) == 0 {

		if len(m.Positions) != 0 {
			return fmt.Errorf("%w: %d vertices but no triangles", ErrInvalidMesh, len(m.Positions))
		}

		return nil
	}

	vertCount := min(len(m.Positions), len(m.Normals))
	for i, index := range m.Triangles {
		if int(index) >= vertCount {
			return fmt.Errorf("%w: triangle index %d at %d is out of range for %d vertices", ErrInvalidMesh, index, i, vertCount)
		}
	}

	return nil
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Join returns a new mesh holding first followed by second. The indices of second are
// offset by the vertex count of first. Neither input is modified.
func Join(first, second Mesh) Mesh {

	offset := uint32(len(first.Positions))

	combined := Mesh{
		Positions: make([]gglm.Vec3, 0, len(first.Positions)+len(second.Positions)),
		Normals:   make([]gglm.Vec3, 0, len(first.Normals)+len(second.Normals)),
		Triangles: make([]uint32, 0, len(first.Triangles)+len(second.Triangles)),
	}

	combined.Positions = append(combined.Positions, first.Positions...)
	combined.Positions = append(combined.Positions, second.Positions...)
	combined.Normals = append(combined.Normals, first.Normals...)
	combined.Normals = append(combined.Normals, second.Normals...)

	combined.Triangles = append(combined.Triangles, first.Triangles...)
	for _, index := range second.Triangles {
		combined.Triangles = append(combined.Triangles, index+offset)
	}

	return combined
}

const (
	// AttributeCount is the number of vertex attribute columns every mesh has
	AttributeCount = 2

	PositionSlot = 0
	NormalSlot   = 1

	PositionAttribName = "vertPos"
	NormalAttribName   = "vertNormal"
)

// Attribute is one vertex attribute column, as raw bytes plus the shape of each element
type Attribute struct {
	Name string
	Slot uint32
	Type buffers.ElementType
	// Count is the number of elements in Data
	Count int
	Data  []byte
}

func column[T any](name string, slot uint32, values []T) Attribute {

	var sample T
	return Attribute{
		Name:  name,
		Slot:  slot,
		Type:  buffers.ElementTypeOf(sample),
		Count: len(values),
		Data:  buffers.Bytes(values),
	}
}

// Attributes returns the vertex columns in slot order: position then normal.
// The returned bytes alias the mesh slices.
func (m *Mesh) Attributes() [AttributeCount]Attribute {
	return [AttributeCount]Attribute{
		column(PositionAttribName, PositionSlot, m.Positions),
		column(NormalAttribName, NormalSlot, m.Normals),
	}
}

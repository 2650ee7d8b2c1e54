package meshes_test

import (
	"errors"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telrender/tel/buffers"
	"github.com/telrender/tel/meshes"
)

func vecs(n int) []gglm.Vec3 {
	v := make([]gglm.Vec3, n)
	for i := range v {
		v[i] = gglm.NewVec3(float32(i), 0, 0)
	}
	return v
}

func TestValidate(t *testing.T) {

	tests := []struct {
		name  string
		mesh  meshes.Mesh
		valid bool
	}{
		{"empty", meshes.Mesh{}, true},
		{"triangle", meshes.Triangle(), true},
		{"cube", meshes.Cube(1), true},
		{"vertices without triangles", meshes.Mesh{Positions: vecs(3), Normals: vecs(3)}, false},
		{"index out of range", meshes.Mesh{Positions: vecs(3), Normals: vecs(3), Triangles: []uint32{0, 1, 3}}, false},
		{"missing normals", meshes.Mesh{Positions: vecs(3), Triangles: []uint32{0, 1, 2}}, false},
		{"fewer normals than positions", meshes.Mesh{Positions: vecs(4), Normals: vecs(3), Triangles: []uint32{0, 1, 2}}, false},
		{"last index in range", meshes.Mesh{Positions: vecs(4), Normals: vecs(4), Triangles: []uint32{3, 2, 1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			err := tt.mesh.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, meshes.ErrInvalidMesh))
		})
	}
}

func TestJoinOffsetsSecondIndices(t *testing.T) {

	a := meshes.Triangle()
	b := meshes.Mesh{Positions: vecs(4), Normals: vecs(4), Triangles: []uint32{0, 1, 2, 0, 2, 3}}

	j := meshes.Join(a, b)
	require.NoError(t, j.Validate())
	assert.Equal(t, 7, j.VertexCount())
	assert.Len(t, j.Normals, 7)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 3, 5, 6}, j.Triangles)
	assert.Equal(t, 3, j.TriangleCount())

	// Inputs are untouched
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, b.Triangles)
	assert.Len(t, a.Positions, 3)
}

func TestJoinIsAssociative(t *testing.T) {

	a := meshes.Triangle()
	b := meshes.Cube(2)
	c := meshes.Mesh{Positions: vecs(5), Normals: vecs(5), Triangles: []uint32{4, 3, 2}}

	left := meshes.Join(meshes.Join(a, b), c)
	right := meshes.Join(a, meshes.Join(b, c))

	assert.Equal(t, left.Triangles, right.Triangles)
	assert.Equal(t, left.Positions, right.Positions)
	assert.Equal(t, left.Normals, right.Normals)
}

func TestJoinWithEmpty(t *testing.T) {
	tri := meshes.Triangle()
	assert.Equal(t, tri.Triangles, meshes.Join(meshes.Mesh{}, tri).Triangles)
	assert.Equal(t, tri.Triangles, meshes.Join(tri, meshes.Mesh{}).Triangles)
}

func TestAttributesOrderAndShape(t *testing.T) {

	m := meshes.Triangle()
	attrs := m.Attributes()

	require.Len(t, attrs, meshes.AttributeCount)

	assert.Equal(t, meshes.PositionAttribName, attrs[0].Name)
	assert.Equal(t, uint32(meshes.PositionSlot), attrs[0].Slot)
	assert.Equal(t, meshes.NormalAttribName, attrs[1].Name)
	assert.Equal(t, uint32(meshes.NormalSlot), attrs[1].Slot)

	for _, a := range attrs {
		assert.Equal(t, buffers.DataTypeVec3, a.Type)
		assert.Equal(t, 3, a.Count)
		assert.Len(t, a.Data, 3*12)
	}

	empty := meshes.Mesh{}
	for _, a := range empty.Attributes() {
		assert.Equal(t, 0, a.Count)
		assert.Empty(t, a.Data)
		assert.Equal(t, buffers.DataTypeVec3, a.Type)
	}
}

func TestCubeNormalsPointOutwards(t *testing.T) {

	c := meshes.Cube(2)
	require.Len(t, c.Positions, 24)
	require.Len(t, c.Triangles, 36)

	for i := range c.Positions {
		p, n := c.Positions[i], c.Normals[i]
		dot := p.X()*n.X() + p.Y()*n.Y() + p.Z()*n.Z()
		assert.InDelta(t, 1, dot, 1e-6, "vertex %d", i)
	}
}

package meshes

import "github.com/bloeys/gglm/gglm"

// Triangle returns a single triangle in the XY plane facing +Z
func Triangle() Mesh {

	n := gglm.NewVec3(0, 0, 1)
	return Mesh{
		Positions: []gglm.Vec3{
			gglm.NewVec3(-0.5, -0.5, 0),
			gglm.NewVec3(0.5, -0.5, 0),
			gglm.NewVec3(0, 0.5, 0),
		},
		Normals:   []gglm.Vec3{n, n, n},
		Triangles: []uint32{0, 1, 2},
	}
}

// Cube returns an axis aligned cube centered on the origin with flat normals (4 vertices per face)
func Cube(size float32) Mesh {

	h := size / 2

	// Each face: normal, then two axes spanning the face so that u x v = normal
	faces := [6][3][3]float32{
		{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	}

	m := Mesh{
		Positions: make([]gglm.Vec3, 0, 24),
		Normals:   make([]gglm.Vec3, 0, 24),
		Triangles: make([]uint32, 0, 36),
	}

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range faces {

		nrm, u, v := f[0], f[1], f[2]
		base := uint32(len(m.Positions))

		for _, c := range corners {
			m.Positions = append(m.Positions, gglm.NewVec3(
				h*(nrm[0]+c[0]*u[0]+c[1]*v[0]),
				h*(nrm[1]+c[0]*u[1]+c[1]*v[1]),
				h*(nrm[2]+c[0]*u[2]+c[1]*v[2]),
			))
			m.Normals = append(m.Normals, gglm.NewVec3(nrm[0], nrm[1], nrm[2]))
		}

		m.Triangles = append(m.Triangles, base, base+1, base+2, base, base+2, base+3)
	}

	return m
}

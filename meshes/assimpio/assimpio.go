// Package assimpio imports mesh files (obj, fbx, gltf...) into meshes.Mesh using assimp.
package assimpio

import (
	"errors"
	"fmt"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/telrender/tel/logging"
	"github.com/telrender/tel/meshes"
)

var ErrImport = errors.New("failed to import mesh")

// DefaultImportFlags are always applied when importing
var DefaultImportFlags asig.PostProcess = asig.PostProcessTriangulate

// ImportFile loads every mesh in the file and folds them into one mesh with meshes.Join
func ImportFile(modelPath string) (meshes.Mesh, error) {
	return ImportFileWithFlags(modelPath, 0)
}

func ImportFileWithFlags(modelPath string, postProcessFlags asig.PostProcess) (meshes.Mesh, error) {

	scene, release, err := asig.ImportFile(modelPath, DefaultImportFlags|postProcessFlags)
	if err != nil {
		return meshes.Mesh{}, fmt.Errorf("%w '%s'. Err: %s", ErrImport, modelPath, err.Error())
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return meshes.Mesh{}, fmt.Errorf("%w '%s'. Err: no meshes found in file", ErrImport, modelPath)
	}

	var combined meshes.Mesh
	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]

		m := meshes.Mesh{
			Positions: make([]gglm.Vec3, len(sceneMesh.Vertices)),
			Normals:   make([]gglm.Vec3, len(sceneMesh.Vertices)),
			Triangles: make([]uint32, 0, len(sceneMesh.Faces)*3),
		}

		copy(m.Positions, sceneMesh.Vertices)
		if len(sceneMesh.Normals) == len(sceneMesh.Vertices) {
			copy(m.Normals, sceneMesh.Normals)
		} else {
			logging.WarnLog.Printf("Submesh %d of '%s' has no normals, using zero normals\n", i, modelPath)
		}

		skipped := 0
		for j := 0; j < len(sceneMesh.Faces); j++ {

			// Triangulation leaves points and lines as they are
			indices := sceneMesh.Faces[j].Indices
			if len(indices) != 3 {
				skipped++
				continue
			}

			m.Triangles = append(m.Triangles, uint32(indices[0]), uint32(indices[1]), uint32(indices[2]))
		}

		if skipped > 0 {
			logging.WarnLog.Printf("Skipped %d non-triangle faces in submesh %d of '%s'\n", skipped, i, modelPath)
		}

		if i == 0 {
			combined = m
			continue
		}

		combined = meshes.Join(combined, m)
	}

	if err := combined.Validate(); err != nil {
		return meshes.Mesh{}, fmt.Errorf("%w '%s'. Err: %s", ErrImport, modelPath, err.Error())
	}

	return combined, nil
}

package camera_test

import (
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/stretchr/testify/assert"
	"github.com/telrender/tel/camera"
)

func originCam(aspect float32) camera.Camera {
	pos := gglm.NewVec3(0, 0, 0)
	fwd := gglm.NewVec3(0, 0, -1)
	up := gglm.NewVec3(0, 1, 0)
	return camera.NewPerspective(&pos, &fwd, &up, 0.1, 100, 45*gglm.Deg2Rad, aspect)
}

func assertMat4InDelta(t *testing.T, want, got gglm.Mat4) {

	t.Helper()
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			assert.InDelta(t, want.Data[c][r], got.Data[c][r], 1e-5, "element [%d][%d]", c, r)
		}
	}
}

func TestViewAtOriginIsIdentity(t *testing.T) {

	cam := originCam(1)
	assertMat4InDelta(t, gglm.NewMat4Diag(1), cam.ViewMat)

	// With an identity view the combined matrix is just the projection
	assertMat4InDelta(t, cam.ProjMat, cam.ProjViewMat())
}

func TestPerspectiveAspectRatio(t *testing.T) {

	cam := originCam(16.0 / 9.0)

	f := 1 / math.Tan(float64(45*gglm.Deg2Rad)/2)
	assert.InDelta(t, f, cam.ProjMat.Data[1][1], 1e-5)
	assert.InDelta(t, f/(16.0/9.0), cam.ProjMat.Data[0][0], 1e-5)
}

func TestUpdateRecomputesOnlyWhenCalled(t *testing.T) {

	cam := originCam(1)
	before := cam.ViewMat

	cam.Pos = gglm.NewVec3(0, 0, 5)
	assert.Equal(t, before, cam.ViewMat)

	cam.Update()
	assert.NotEqual(t, before, cam.ViewMat)
}

func TestUpdateRotation(t *testing.T) {

	cam := originCam(1)

	cam.UpdateRotation(0, 0)
	assert.InDelta(t, 0, cam.Forward.X(), 1e-6)
	assert.InDelta(t, 0, cam.Forward.Y(), 1e-6)
	assert.InDelta(t, -1, cam.Forward.Z(), 1e-6)

	cam.UpdateRotation(0, 90*gglm.Deg2Rad)
	assert.InDelta(t, 1, cam.Forward.X(), 1e-6)
	assert.InDelta(t, 0, cam.Forward.Z(), 1e-6)

	cam.UpdateRotation(45*gglm.Deg2Rad, 0)
	assert.InDelta(t, math.Sqrt2/2, cam.Forward.Y(), 1e-6)
}

func TestOrthographicSymmetric(t *testing.T) {

	pos := gglm.NewVec3(0, 0, 0)
	fwd := gglm.NewVec3(0, 0, -1)
	up := gglm.NewVec3(0, 1, 0)
	cam := camera.NewOrthographic(&pos, &fwd, &up, 0.1, 10, -2, 2, 2, -2)

	assert.Equal(t, camera.Type_Orthographic, cam.Type)
	assert.InDelta(t, 0.5, cam.ProjMat.Data[0][0], 1e-5)
	assert.InDelta(t, 0.5, math.Abs(float64(cam.ProjMat.Data[1][1])), 1e-5)
}

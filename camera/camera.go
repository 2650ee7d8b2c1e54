package camera

import (
	"math"

	"github.com/bloeys/gglm/gglm"
)

type Type int32

const (
	Type_Unknown Type = iota
	Type_Perspective
	Type_Orthographic
)

// Camera produces the view and projection matrices. Fields can be changed freely, but
// the matrices are only recomputed on Update.
type Camera struct {
	Type Type

	Pos     gglm.Vec3
	Forward gglm.Vec3
	WorldUp gglm.Vec3

	NearClip float32
	FarClip  float32

	// Perspective only
	Fov         float32
	AspectRatio float32

	// Orthographic only
	Left   float32
	Right  float32
	Top    float32
	Bottom float32

	ViewMat gglm.Mat4
	ProjMat gglm.Mat4
}

// Update recalculates the view and projection matrices
func (c *Camera) Update() {

	c.ViewMat = gglm.LookAtRH(&c.Pos, c.Pos.Clone().Add(&c.Forward), &c.WorldUp).Mat4

	switch c.Type {
	case Type_Perspective:
		c.ProjMat = gglm.Perspective(c.Fov, c.AspectRatio, c.NearClip, c.FarClip)
	case Type_Orthographic:
		c.ProjMat = gglm.Ortho(c.Left, c.Right, c.Top, c.Bottom, c.NearClip, c.FarClip).Mat4
	default:
		c.ProjMat = gglm.NewMat4Diag(1)
	}
}

// UpdateRotation points the camera using pitch and yaw in radians and updates the matrices.
// Zero pitch and yaw looks down -Z.
func (c *Camera) UpdateRotation(pitch, yaw float32) {

	p, y := float64(pitch), float64(yaw)
	c.Forward = gglm.NewVec3(
		float32(math.Sin(y)*math.Cos(p)),
		float32(math.Sin(p)),
		float32(-math.Cos(y)*math.Cos(p)),
	)

	c.Update()
}

// ProjViewMat returns ProjMat * ViewMat, the matrix taking world space to clip space
func (c *Camera) ProjViewMat() gglm.Mat4 {
	return *c.ProjMat.Clone().Mul(&c.ViewMat)
}

func NewPerspective(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, fovRadians, aspectRatio float32) Camera {

	cam := Camera{
		Type:        Type_Perspective,
		Pos:         *pos,
		Forward:     *forward,
		WorldUp:     *worldUp,
		NearClip:    nearClip,
		FarClip:     farClip,
		Fov:         fovRadians,
		AspectRatio: aspectRatio,
	}

	cam.Update()
	return cam
}

func NewOrthographic(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, left, right, top, bottom float32) Camera {

	cam := Camera{
		Type:     Type_Orthographic,
		Pos:      *pos,
		Forward:  *forward,
		WorldUp:  *worldUp,
		NearClip: nearClip,
		FarClip:  farClip,
		Left:     left,
		Right:    right,
		Top:      top,
		Bottom:   bottom,
	}

	cam.Update()
	return cam
}

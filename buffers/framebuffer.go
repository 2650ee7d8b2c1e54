package buffers

import (
	"github.com/telrender/tel/assert"
	"github.com/telrender/tel/gpu"
	"github.com/telrender/tel/logging"
)

// Framebuffer is a render target: either the window's default framebuffer (id 0) or an
// off-screen framebuffer object. All attachments of a framebuffer share its size.
type Framebuffer struct {
	object
	width  int32
	height int32
}

// DefaultFramebuffer describes the framebuffer of the window. It owns nothing, and
// Delete on it does nothing.
func DefaultFramebuffer(width, height int32) Framebuffer {

	assert.T(width >= 0 && height >= 0, "invalid framebuffer size %dx%d", width, height)
	return Framebuffer{
		width:  width,
		height: height,
	}
}

func (fbo *Framebuffer) Id() uint32 {
	return fbo.id
}

func (fbo *Framebuffer) IsDefault() bool {
	return fbo.id == 0
}

func (fbo *Framebuffer) Width() int32 {
	return fbo.width
}

func (fbo *Framebuffer) Height() int32 {
	return fbo.height
}

// Resize updates the size used for the viewport, e.g. after the window was resized
func (fbo *Framebuffer) Resize(width, height int32) {
	assert.T(width >= 0 && height >= 0, "invalid framebuffer size %dx%d", width, height)
	fbo.width = width
	fbo.height = height
}

func (fbo *Framebuffer) Move() Framebuffer {

	moved := Framebuffer{
		object: fbo.take(),
		width:  fbo.width,
		height: fbo.height,
	}

	fbo.width = 0
	fbo.height = 0
	return moved
}

// MoveFrom takes ownership of src's framebuffer object. fbo must not own one.
func (fbo *Framebuffer) MoveFrom(src *Framebuffer) {

	fbo.takeFrom(&src.object, "Framebuffer")
	if src == fbo {
		return
	}

	fbo.width, src.width = src.width, 0
	fbo.height, src.height = src.height, 0
}

func (fbo *Framebuffer) Delete() {

	if fbo.id == 0 {
		return
	}

	fbo.drv.DeleteFramebuffer(fbo.id)
	fbo.object = object{}
}

func NewFramebuffer(drv gpu.Driver, width, height int32) Framebuffer {

	assert.T(width >= 0 && height >= 0, "invalid framebuffer size %dx%d", width, height)

	fbo := Framebuffer{
		object: object{drv: drv},
		width:  width,
		height: height,
	}

	fbo.id = drv.GenFramebuffer()
	if fbo.id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL framebuffer")
	}

	return fbo
}

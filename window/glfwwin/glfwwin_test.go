//go:build glfw

// Building this package needs the X11/Wayland development headers GLFW compiles against, run with: go test -tags glfw ./window/glfwwin
package glfwwin

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/telrender/tel/input"
)

func TestKeyFromGlfw(t *testing.T) {
	assert.Equal(t, input.Key_Escape, keyFromGlfw(glfw.KeyEscape))
	assert.Equal(t, input.Key_D, keyFromGlfw(glfw.KeyD))
	assert.Equal(t, input.Key_RightCtrl, keyFromGlfw(glfw.KeyRightControl))
	assert.Equal(t, input.Key_Unknown, keyFromGlfw(glfw.KeyF12))
}

func TestCursorMotionIsRelativeToLastPosition(t *testing.T) {

	input.ClearMouseState()
	input.EventLoopStart()

	w := &Window{}
	w.onCursorPos(nil, 100, 50)
	dx, dy := input.GetMouseMotion()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	w.onCursorPos(nil, 110, 45)
	dx, dy = input.GetMouseMotion()
	assert.Equal(t, int32(10), dx)
	assert.Equal(t, int32(-5), dy)

	x, y := input.GetMousePos()
	assert.Equal(t, int32(110), x)
	assert.Equal(t, int32(45), y)
}

func TestKeyActions(t *testing.T) {

	input.ClearKeyboardState()
	input.EventLoopStart()

	w := &Window{}
	w.onKey(nil, glfw.KeyW, 0, glfw.Press, 0)
	assert.True(t, input.KeyClicked(input.Key_W))

	input.EventLoopStart()
	w.onKey(nil, glfw.KeyW, 0, glfw.Repeat, 0)
	assert.False(t, input.KeyClicked(input.Key_W))
	assert.True(t, input.KeyDown(input.Key_W))

	w.onKey(nil, glfw.KeyW, 0, glfw.Release, 0)
	assert.True(t, input.KeyReleased(input.Key_W))
}

package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	ClearKeyboardState()
	ClearMouseState()
	EventLoopStart()
}

func TestKeyPressLifetime(t *testing.T) {

	reset()
	assert.True(t, KeyUp(Key_W))
	assert.False(t, KeyDown(Key_W))

	HandleKeyEvent(Key_W, true, false)
	assert.True(t, KeyClicked(Key_W))
	assert.True(t, KeyDown(Key_W))
	assert.False(t, KeyReleased(Key_W))

	// Held into the next frame
	EventLoopStart()
	HandleKeyEvent(Key_W, true, true)
	assert.False(t, KeyClicked(Key_W))
	assert.True(t, KeyDown(Key_W))

	EventLoopStart()
	HandleKeyEvent(Key_W, false, false)
	assert.True(t, KeyReleased(Key_W))
	assert.True(t, KeyUp(Key_W))

	EventLoopStart()
	assert.False(t, KeyReleased(Key_W))
	assert.True(t, KeyUp(Key_W))
}

func TestUnknownKeyIgnored(t *testing.T) {

	reset()
	HandleKeyEvent(Key_Unknown, true, false)
	assert.False(t, KeyDown(Key_Unknown))
	assert.Empty(t, keyMap)
}

func TestQuitLastsOneFrame(t *testing.T) {

	reset()
	assert.False(t, IsQuitClicked())

	HandleQuitEvent()
	assert.True(t, IsQuitClicked())

	EventLoopStart()
	assert.False(t, IsQuitClicked())
}

func TestMouse(t *testing.T) {

	reset()

	HandleMouseBtnEvent(MouseButton_Right, true, 2)
	assert.True(t, MouseClicked(MouseButton_Right))
	assert.True(t, MouseDoubleClicked(MouseButton_Right))
	assert.True(t, MouseDown(MouseButton_Right))
	assert.True(t, MouseUp(MouseButton_Left))

	HandleMouseMotionEvent(10, 20, 3, -1)
	HandleMouseMotionEvent(12, 25, 2, 5)
	x, y := GetMousePos()
	assert.Equal(t, int32(12), x)
	assert.Equal(t, int32(25), y)

	dx, dy := GetMouseMotion()
	assert.Equal(t, int32(5), dx)
	assert.Equal(t, int32(4), dy)

	HandleMouseWheelEvent(0, -3)
	assert.Equal(t, int32(-1), GetMouseWheelYNorm())

	EventLoopStart()
	dx, dy = GetMouseMotion()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.Zero(t, GetMouseWheelYNorm())
	assert.False(t, MouseClicked(MouseButton_Right))
	assert.True(t, MouseDown(MouseButton_Right))

	// Position survives the frame boundary
	x, _ = GetMousePos()
	assert.Equal(t, int32(12), x)

	HandleMouseBtnEvent(MouseButton_Right, false, 1)
	assert.True(t, MouseReleased(MouseButton_Right))
	assert.False(t, MouseDown(MouseButton_Right))
}

func TestClearState(t *testing.T) {

	reset()
	HandleKeyEvent(Key_Space, true, false)
	HandleMouseBtnEvent(MouseButton_Left, true, 1)

	ClearKeyboardState()
	ClearMouseState()
	assert.False(t, KeyDown(Key_Space))
	assert.False(t, MouseDown(MouseButton_Left))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Escape", Key_Escape.String())
	assert.Equal(t, "Unknown", Key(999).String())
}

// Package glfwwin creates a window with an OpenGL 4.5 core context through GLFW.
package glfwwin

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/telrender/tel/config"
	"github.com/telrender/tel/engine"
	"github.com/telrender/tel/gpu/gldriver"
	"github.com/telrender/tel/input"
)

var _ engine.Window = &Window{}

type Window struct {
	GlfwWin *glfw.Window
	Drv     *gldriver.Driver

	// GLFW reports absolute cursor positions, motion is derived from the last one
	lastCursorX, lastCursorY float64
	hasCursorPos             bool
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.GlfwWin.SwapBuffers()
}

func (w *Window) ShouldClose() bool {
	return w.GlfwWin.ShouldClose()
}

func (w *Window) FramebufferSize() (width, height int32) {
	fbWidth, fbHeight := w.GlfwWin.GetFramebufferSize()
	return int32(fbWidth), int32(fbHeight)
}

// Destroy destroys the window and terminates GLFW
func (w *Window) Destroy() error {
	w.GlfwWin.Destroy()
	glfw.Terminate()
	return nil
}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	input.HandleKeyEvent(keyFromGlfw(key), action != glfw.Release, action == glfw.Repeat)
}

func (w *Window) onMouseButton(_ *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	// GLFW has no click count, so double clicks aren't reported
	input.HandleMouseBtnEvent(mouseBtnFromGlfw(btn), action == glfw.Press, 1)
}

func (w *Window) onCursorPos(_ *glfw.Window, x, y float64) {

	var xRel, yRel int32
	if w.hasCursorPos {
		xRel = int32(x - w.lastCursorX)
		yRel = int32(y - w.lastCursorY)
	}

	w.lastCursorX, w.lastCursorY = x, y
	w.hasCursorPos = true

	input.HandleMouseMotionEvent(int32(x), int32(y), xRel, yRel)
}

func (w *Window) onScroll(_ *glfw.Window, xOff, yOff float64) {
	input.HandleMouseWheelEvent(int32(xOff), int32(yOff))
}

func (w *Window) onClose(_ *glfw.Window) {
	input.HandleQuitEvent()
}

func Init(cfg config.Window) error {

	// GL calls must all come from the thread that created the context
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return err
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	debug := glfw.False
	if cfg.DebugContext {
		debug = glfw.True
	}
	glfw.WindowHint(glfw.OpenGLDebugContext, debug)

	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.StencilBits, 8)

	return nil
}

// New creates a window and makes its context current. Init must be called first.
func New(cfg config.Window) (*Window, error) {

	glfwWin, err := glfw.CreateWindow(int(cfg.Width), int(cfg.Height), cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	glfwWin.MakeContextCurrent()

	win := &Window{
		GlfwWin: glfwWin,
	}

	win.Drv, err = gldriver.New()
	if err != nil {
		win.Destroy()
		return nil, err
	}

	glfwWin.SetKeyCallback(win.onKey)
	glfwWin.SetMouseButtonCallback(win.onMouseButton)
	glfwWin.SetCursorPosCallback(win.onCursorPos)
	glfwWin.SetScrollCallback(win.onScroll)
	glfwWin.SetCloseCallback(win.onClose)

	SetVSync(cfg.VSync)
	return win, nil
}

// SetVSync applies to the current context
func SetVSync(enabled bool) {

	if enabled {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func keyFromGlfw(key glfw.Key) input.Key {

	switch key {
	case glfw.KeyEscape:
		return input.Key_Escape
	case glfw.KeySpace:
		return input.Key_Space
	case glfw.KeyEnter:
		return input.Key_Enter
	case glfw.KeyLeftShift:
		return input.Key_LeftShift
	case glfw.KeyRightShift:
		return input.Key_RightShift
	case glfw.KeyLeftControl:
		return input.Key_LeftCtrl
	case glfw.KeyRightControl:
		return input.Key_RightCtrl
	case glfw.KeyUp:
		return input.Key_Up
	case glfw.KeyDown:
		return input.Key_Down
	case glfw.KeyLeft:
		return input.Key_Left
	case glfw.KeyRight:
		return input.Key_Right
	case glfw.KeyW:
		return input.Key_W
	case glfw.KeyA:
		return input.Key_A
	case glfw.KeyS:
		return input.Key_S
	case glfw.KeyD:
		return input.Key_D
	case glfw.KeyQ:
		return input.Key_Q
	case glfw.KeyE:
		return input.Key_E
	default:
		return input.Key_Unknown
	}
}

func mouseBtnFromGlfw(btn glfw.MouseButton) input.MouseButton {

	switch btn {
	case glfw.MouseButtonLeft:
		return input.MouseButton_Left
	case glfw.MouseButtonMiddle:
		return input.MouseButton_Middle
	case glfw.MouseButtonRight:
		return input.MouseButton_Right
	default:
		return input.MouseButton_Unknown
	}
}

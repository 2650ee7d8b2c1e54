// Package sdlwin creates a window with an OpenGL 4.5 core context through SDL2.
package sdlwin

import (
	"runtime"

	"github.com/telrender/tel/config"
	"github.com/telrender/tel/engine"
	"github.com/telrender/tel/gpu/gldriver"
	"github.com/telrender/tel/input"
	"github.com/telrender/tel/logging"
	"github.com/veandco/go-sdl2/sdl"
)

var _ engine.Window = &Window{}

type Window struct {
	SDLWin *sdl.Window
	GlCtx  sdl.GLContext
	Drv    *gldriver.Driver

	// EventCallbacks get every event before it is translated for the input package
	EventCallbacks []func(sdl.Event)

	shouldClose bool
}

func (w *Window) PollEvents() {

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		//Fire callbacks
		for i := 0; i < len(w.EventCallbacks); i++ {
			w.EventCallbacks[i](event)
		}

		//Internal processing
		switch e := event.(type) {

		case *sdl.KeyboardEvent:
			input.HandleKeyEvent(keyFromSdl(e.Keysym.Sym), e.State == sdl.PRESSED, e.Repeat != 0)

		case *sdl.MouseButtonEvent:
			input.HandleMouseBtnEvent(mouseBtnFromSdl(e.Button), e.State == sdl.PRESSED, int(e.Clicks))

		case *sdl.MouseMotionEvent:
			input.HandleMouseMotionEvent(e.X, e.Y, e.XRel, e.YRel)

		case *sdl.MouseWheelEvent:
			input.HandleMouseWheelEvent(e.X, e.Y)

		case *sdl.QuitEvent:
			w.shouldClose = true
			input.HandleQuitEvent()
		}
	}
}

func (w *Window) SwapBuffers() {
	w.SDLWin.GLSwap()
}

func (w *Window) ShouldClose() bool {
	return w.shouldClose
}

func (w *Window) FramebufferSize() (width, height int32) {
	return w.SDLWin.GLGetDrawableSize()
}

// Destroy deletes the context and the window, then shuts SDL down
func (w *Window) Destroy() error {

	sdl.GLDeleteContext(w.GlCtx)
	err := w.SDLWin.Destroy()
	sdl.Quit()

	return err
}

func Init(cfg config.Window) error {

	// GL calls must all come from the thread that created the context
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 5)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	if cfg.DebugContext {
		sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_DEBUG_FLAG)
	}

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)

	return nil
}

// New creates a centered, resizable window and makes its context current. Init must be called first.
func New(cfg config.Window) (*Window, error) {

	sdlWin, err := sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		cfg.Width, cfg.Height,
		sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE|sdl.WINDOW_ALLOW_HIGHDPI,
	)
	if err != nil {
		return nil, err
	}

	win := &Window{
		SDLWin:         sdlWin,
		EventCallbacks: make([]func(sdl.Event), 0),
	}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		sdlWin.Destroy()
		return nil, err
	}

	win.Drv, err = gldriver.New()
	if err != nil {
		win.Destroy()
		return nil, err
	}

	SetVSync(cfg.VSync)
	return win, nil
}

func SetVSync(enabled bool) {

	interval := 0
	if enabled {
		interval = 1
	}

	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logging.WarnLog.Println("Failed to set vsync. Err:", err)
	}
}

func keyFromSdl(kc sdl.Keycode) input.Key {

	switch kc {
	case sdl.K_ESCAPE:
		return input.Key_Escape
	case sdl.K_SPACE:
		return input.Key_Space
	case sdl.K_RETURN:
		return input.Key_Enter
	case sdl.K_LSHIFT:
		return input.Key_LeftShift
	case sdl.K_RSHIFT:
		return input.Key_RightShift
	case sdl.K_LCTRL:
		return input.Key_LeftCtrl
	case sdl.K_RCTRL:
		return input.Key_RightCtrl
	case sdl.K_UP:
		return input.Key_Up
	case sdl.K_DOWN:
		return input.Key_Down
	case sdl.K_LEFT:
		return input.Key_Left
	case sdl.K_RIGHT:
		return input.Key_Right
	case sdl.K_w:
		return input.Key_W
	case sdl.K_a:
		return input.Key_A
	case sdl.K_s:
		return input.Key_S
	case sdl.K_d:
		return input.Key_D
	case sdl.K_q:
		return input.Key_Q
	case sdl.K_e:
		return input.Key_E
	default:
		return input.Key_Unknown
	}
}

func mouseBtnFromSdl(btn uint8) input.MouseButton {

	switch btn {
	case sdl.BUTTON_LEFT:
		return input.MouseButton_Left
	case sdl.BUTTON_MIDDLE:
		return input.MouseButton_Middle
	case sdl.BUTTON_RIGHT:
		return input.MouseButton_Right
	default:
		return input.MouseButton_Unknown
	}
}

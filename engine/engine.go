package engine

import (
	"time"

	"github.com/telrender/tel/assert"
	"github.com/telrender/tel/buffers"
	"github.com/telrender/tel/input"
	"github.com/telrender/tel/logging"
	"github.com/telrender/tel/renderer"
)

var (
	isRunning = false
)

// Window is a native window with a current GL context. PollEvents must forward input
// to the input package.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	// FramebufferSize is the drawable size in pixels, which can differ from the window size on high DPI displays
	FramebufferSize() (width, height int32)
	Destroy() error
}

type Game interface {
	Init()
	// Update runs once per frame before the scene is drawn. dt is the duration of the previous frame in seconds.
	Update(dt float32)
	FrameEnd()
	DeInit()
}

// ResizeHandler can be implemented by a Game to be told about framebuffer size changes
type ResizeHandler interface {
	OnResize(width, height int32)
}

// Run calls Init then runs the main loop until the window wants to close, Quit is
// called, or Escape is pressed, and finally calls DeInit. The window and renderer
// are not destroyed.
func Run(win Window, rend renderer.Render, sc *renderer.Scene, g Game) {

	assert.T(win != nil, "engine.Run needs a window")
	assert.T(rend != nil, "engine.Run needs a renderer")
	assert.T(sc != nil, "engine.Run needs a scene")

	isRunning = true

	w, h := win.FramebufferSize()
	fb := buffers.DefaultFramebuffer(max(w, 0), max(h, 0))

	g.Init()

	lastFrame := time.Now()
	for isRunning && !win.ShouldClose() {

		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastFrame).Seconds())
		lastFrame = frameStart

		input.EventLoopStart()
		win.PollEvents()

		if input.IsQuitClicked() || input.KeyClicked(input.Key_Escape) {
			Quit()
		}

		handleResize(win, &fb, g)

		g.Update(dt)

		// Nothing to draw into while minimized
		if fb.Width() > 0 && fb.Height() > 0 {
			rend.RenderScene(&fb, sc)
			win.SwapBuffers()
		}

		g.FrameEnd()
		rend.FrameEnd()
	}

	isRunning = false
	g.DeInit()
}

func handleResize(win Window, fb *buffers.Framebuffer, g Game) {

	w, h := win.FramebufferSize()
	if w == fb.Width() && h == fb.Height() {
		return
	}

	if w <= 0 || h <= 0 {
		fb.Resize(0, 0)
		return
	}

	fb.Resize(w, h)
	if rh, ok := g.(ResizeHandler); ok {
		rh.OnResize(w, h)
	}
}

func IsRunning() bool {
	return isRunning
}

// Quit stops the main loop after the current frame
func Quit() {

	if isRunning {
		logging.InfoLog.Println("Quit requested")
	}

	isRunning = false
}

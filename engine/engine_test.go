package engine_test

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telrender/tel/camera"
	"github.com/telrender/tel/engine"
	"github.com/telrender/tel/gpu/gputest"
	"github.com/telrender/tel/input"
	"github.com/telrender/tel/meshes"
	"github.com/telrender/tel/renderer"
	"github.com/telrender/tel/renderer/rend3dgl"
)

const vertSrc = `
#version 450 core

in vec3 vertPos;
in vec3 vertNormal;

uniform mat4 model;
uniform mat4 camera;

void main()
{
	gl_Position = camera * model * vec4(vertPos, 1.0);
}
`

const fragSrc = `
#version 450 core

out vec4 fragColor;

void main()
{
	fragColor = vec4(1.0);
}
`

// fakeWindow closes itself after closeAfter polls. onPoll runs inside PollEvents, where a
// real backend would feed input events.
type fakeWindow struct {
	width, height int32

	polls      int
	swaps      int
	closeAfter int
	destroyed  bool

	onPoll func(frame int, w *fakeWindow)
}

func (w *fakeWindow) PollEvents() {
	w.polls++
	if w.onPoll != nil {
		w.onPoll(w.polls, w)
	}
}

func (w *fakeWindow) SwapBuffers() {
	w.swaps++
}

func (w *fakeWindow) ShouldClose() bool {
	return w.closeAfter > 0 && w.polls >= w.closeAfter
}

func (w *fakeWindow) FramebufferSize() (int32, int32) {
	return w.width, w.height
}

func (w *fakeWindow) Destroy() error {
	w.destroyed = true
	return nil
}

type fakeGame struct {
	inits, updates, frameEnds, deInits int

	dts     []float32
	resizes [][2]int32
}

func (g *fakeGame) Init() {
	g.inits++
}

func (g *fakeGame) Update(dt float32) {
	g.updates++
	g.dts = append(g.dts, dt)
}

func (g *fakeGame) FrameEnd() {
	g.frameEnds++
}

func (g *fakeGame) DeInit() {
	g.deInits++
}

func (g *fakeGame) OnResize(width, height int32) {
	g.resizes = append(g.resizes, [2]int32{width, height})
}

func newScene(t *testing.T) (*gputest.Driver, *rend3dgl.Rend3DGL, *renderer.Scene) {

	t.Helper()

	input.ClearKeyboardState()
	input.ClearMouseState()

	drv := gputest.New()
	rend := rend3dgl.NewRend3DGL(drv, rend3dgl.DefaultOptions())

	tri := meshes.Triangle()
	mh, err := rend.LoadMesh(&tri)
	require.NoError(t, err)

	ph, err := rend.LoadShader(vertSrc, fragSrc, rend3dgl.MeshLocations())
	require.NoError(t, err)

	pos := gglm.NewVec3(0, 0, 5)
	fwd := gglm.NewVec3(0, 0, -1)
	up := gglm.NewVec3(0, 1, 0)

	sc := &renderer.Scene{
		Camera: camera.NewPerspective(&pos, &fwd, &up, 0.1, 100, 45*gglm.Deg2Rad, 16.0/9.0),
	}
	sc.Add(renderer.Renderable{Mesh: mh, Program: ph})

	drv.ResetCalls()
	return drv, rend, sc
}

func TestRunUntilWindowCloses(t *testing.T) {

	drv, rend, sc := newScene(t)
	win := &fakeWindow{width: 640, height: 480, closeAfter: 3}
	g := &fakeGame{}

	engine.Run(win, rend, sc, g)

	assert.Equal(t, 1, g.inits)
	assert.Equal(t, 3, g.updates)
	assert.Equal(t, 3, g.frameEnds)
	assert.Equal(t, 1, g.deInits)
	assert.Equal(t, 3, win.swaps)
	assert.Len(t, drv.Draws, 3)
	assert.Empty(t, drv.Errors)
	assert.False(t, engine.IsRunning())
	assert.False(t, win.destroyed)

	for _, dt := range g.dts {
		assert.GreaterOrEqual(t, dt, float32(0))
	}

	assert.Equal(t, [4]int32{0, 0, 640, 480}, drv.ViewportRect)

	// Stats are reset at the end of every frame
	assert.Equal(t, renderer.Stats{}, rend.Stats())
	assert.Empty(t, g.resizes)
}

func TestEscapeQuits(t *testing.T) {

	drv, rend, sc := newScene(t)
	win := &fakeWindow{
		width:  100,
		height: 100,
		onPoll: func(frame int, w *fakeWindow) {
			if frame == 2 {
				input.HandleKeyEvent(input.Key_Escape, true, false)
			}
		},
	}
	g := &fakeGame{}

	engine.Run(win, rend, sc, g)

	// The frame Escape was pressed in is still finished
	assert.Equal(t, 2, win.polls)
	assert.Equal(t, 2, win.swaps)
	assert.Len(t, drv.Draws, 2)
	assert.Equal(t, 1, g.deInits)
}

func TestQuitEventQuits(t *testing.T) {

	_, rend, sc := newScene(t)
	win := &fakeWindow{
		width:  100,
		height: 100,
		onPoll: func(frame int, w *fakeWindow) {
			input.HandleQuitEvent()
		},
	}
	g := &fakeGame{}

	engine.Run(win, rend, sc, g)
	assert.Equal(t, 1, win.polls)
	assert.Equal(t, 1, g.updates)
}

func TestHeldEscapeDoesNotQuitAgain(t *testing.T) {

	// A key held from before Run started only counts as a press on the frame it went down
	_, rend, sc := newScene(t)
	input.HandleKeyEvent(input.Key_Escape, true, false)
	input.EventLoopStart()

	win := &fakeWindow{width: 100, height: 100, closeAfter: 2}
	g := &fakeGame{}

	engine.Run(win, rend, sc, g)
	assert.Equal(t, 2, win.polls)
}

func TestResize(t *testing.T) {

	drv, rend, sc := newScene(t)
	win := &fakeWindow{
		width:      800,
		height:     600,
		closeAfter: 3,
		onPoll: func(frame int, w *fakeWindow) {
			if frame == 2 {
				w.width, w.height = 1024, 768
			}
		},
	}
	g := &fakeGame{}

	engine.Run(win, rend, sc, g)

	require.Equal(t, [][2]int32{{1024, 768}}, g.resizes)

	viewports := drv.CallsNamed("Viewport")
	require.Len(t, viewports, 3)
	assert.Equal(t, []any{int32(0), int32(0), int32(800), int32(600)}, viewports[0].Args)
	assert.Equal(t, []any{int32(0), int32(0), int32(1024), int32(768)}, viewports[1].Args)
	assert.Equal(t, []any{int32(0), int32(0), int32(1024), int32(768)}, viewports[2].Args)
}

func TestMinimizedSkipsDrawing(t *testing.T) {

	drv, rend, sc := newScene(t)
	win := &fakeWindow{
		width:      800,
		height:     600,
		closeAfter: 3,
		onPoll: func(frame int, w *fakeWindow) {
			if frame == 2 {
				w.width, w.height = 0, 0
			} else if frame == 3 {
				w.width, w.height = 800, 600
			}
		},
	}
	g := &fakeGame{}

	engine.Run(win, rend, sc, g)

	assert.Equal(t, 3, g.updates)
	assert.Equal(t, 2, win.swaps)
	assert.Len(t, drv.Draws, 2)

	// Coming back from minimized is a resize
	assert.Equal(t, [][2]int32{{800, 600}}, g.resizes)
}

func TestQuitOutsideRun(t *testing.T) {
	engine.Quit()
	assert.False(t, engine.IsRunning())
}

package main

import (
	"errors"
	"flag"
	"os"

	"github.com/bloeys/gglm/gglm"
	"github.com/telrender/tel/camera"
	"github.com/telrender/tel/config"
	"github.com/telrender/tel/engine"
	"github.com/telrender/tel/gpu"
	"github.com/telrender/tel/input"
	"github.com/telrender/tel/logging"
	"github.com/telrender/tel/meshes"
	"github.com/telrender/tel/meshes/assimpio"
	"github.com/telrender/tel/renderer"
	"github.com/telrender/tel/renderer/rend3dgl"
	"github.com/telrender/tel/shaders"
	"github.com/telrender/tel/window/glfwwin"
	"github.com/telrender/tel/window/sdlwin"
)

const (
	camMoveSpeed float32 = 5
	camRotSpeed  float32 = 0.4

	// Radians per second
	spinSpeed float32 = 45 * gglm.Deg2Rad
)

var (
	configPath = flag.String("config", "./res/config.toml", "path to the TOML config file")
)

type Game struct {
	Win   engine.Window
	Rend  *rend3dgl.Rend3DGL
	Scene *renderer.Scene

	Mesh    renderer.MeshHandle
	Program renderer.ProgramHandle

	Cfg config.Config

	pitch float32
	yaw   float32
}

func main() {

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.ErrLog.Fatalln("Failed to load config. Err:", err)
		}
		logging.WarnLog.Println(err)
	}

	err = logging.Init(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init logging. Err:", err)
	}
	defer logging.Sync()

	//Create window
	win, drv, err := createWindow(cfg.Window)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err:", err)
	}
	defer win.Destroy()

	c := cfg.Render.ClearColor
	rend := rend3dgl.NewRend3DGL(drv, rend3dgl.Options{
		ClearColor:  gglm.NewVec4(c[0], c[1], c[2], c[3]),
		DebugOutput: cfg.Render.DebugOutput,
	})
	defer rend.Delete()

	game := &Game{
		Win:   win,
		Rend:  rend,
		Scene: &renderer.Scene{},
		Cfg:   cfg,
	}

	engine.Run(win, rend, game.Scene, game)
}

func createWindow(cfg config.Window) (engine.Window, gpu.Driver, error) {

	switch cfg.Backend {
	case config.Backend_GLFW:

		if err := glfwwin.Init(cfg); err != nil {
			return nil, nil, err
		}

		win, err := glfwwin.New(cfg)
		if err != nil {
			return nil, nil, err
		}

		return win, win.Drv, nil

	default:

		if err := sdlwin.Init(cfg); err != nil {
			return nil, nil, err
		}

		win, err := sdlwin.New(cfg)
		if err != nil {
			return nil, nil, err
		}

		return win, win.Drv, nil
	}
}

func (g *Game) Init() {

	var err error

	// Camera
	winWidth, winHeight := g.Win.FramebufferSize()

	camPos := gglm.NewVec3(0, 2, 6)
	camForward := gglm.NewVec3(0, 0, -1)
	camWorldUp := gglm.NewVec3(0, 1, 0)
	g.Scene.Camera = camera.NewPerspective(
		&camPos,
		&camForward,
		&camWorldUp,
		0.1, 200,
		45*gglm.Deg2Rad,
		aspectRatio(winWidth, winHeight),
	)

	// Point the camera at the origin
	g.pitch = -0.3
	g.Scene.Camera.UpdateRotation(g.pitch, g.yaw)

	//Load mesh
	mesh := g.loadMesh()
	g.Mesh, err = g.Rend.LoadMesh(&mesh)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to upload mesh. Err:", err)
	}

	//Load shader
	vertSrc, fragSrc, err := shaders.ReadCombinedShader(g.Cfg.Assets.Shader)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to read shader. Err:", err)
	}

	g.Program, err = g.Rend.LoadShader(vertSrc, fragSrc, rend3dgl.MeshLocations())
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load shader. Err:", err)
	}

	// A row of objects sharing the same mesh and program
	for i := -1; i <= 1; i++ {
		obj := g.Scene.Add(renderer.Renderable{Mesh: g.Mesh, Program: g.Program})
		obj.Transform.Translate(float32(i)*2.5, 0, 0)
	}
}

func (g *Game) loadMesh() meshes.Mesh {

	if g.Cfg.Assets.Mesh == "" {
		return meshes.Cube(1)
	}

	mesh, err := assimpio.ImportFile(g.Cfg.Assets.Mesh)
	if err != nil {
		logging.WarnLog.Printf("Failed to import mesh '%s', using a cube instead. Err: %v\n", g.Cfg.Assets.Mesh, err)
		return meshes.Cube(1)
	}

	return mesh
}

func aspectRatio(width, height int32) float32 {

	if width <= 0 || height <= 0 {
		return 1
	}

	return float32(width) / float32(height)
}

func (g *Game) OnResize(width, height int32) {
	g.Scene.Camera.AspectRatio = aspectRatio(width, height)
	g.Scene.Camera.Update()
}

func (g *Game) Update(dt float32) {

	g.updateCameraLookAround(dt)
	g.updateCameraPos(dt)

	for i := 0; i < len(g.Scene.Objects); i++ {
		g.Scene.Objects[i].Transform.Rotate(spinSpeed*dt, 0, 1, 0)
	}
}

func (g *Game) updateCameraLookAround(dt float32) {

	mouseX, mouseY := input.GetMouseMotion()
	if (mouseX == 0 && mouseY == 0) || !input.MouseDown(input.MouseButton_Right) {
		return
	}

	const MAX_MOUSE_MOVE = 300
	mouseX = gglm.Clamp(mouseX, -MAX_MOUSE_MOVE, MAX_MOUSE_MOVE)
	mouseY = gglm.Clamp(mouseY, -MAX_MOUSE_MOVE, MAX_MOUSE_MOVE)

	// Yaw
	g.yaw += float32(mouseX) * camRotSpeed * dt

	// Pitch
	g.pitch += float32(-mouseY) * camRotSpeed * dt
	if g.pitch > 1.5 {
		g.pitch = 1.5
	}

	if g.pitch < -1.5 {
		g.pitch = -1.5
	}

	g.Scene.Camera.UpdateRotation(g.pitch, g.yaw)
}

func (g *Game) updateCameraPos(dt float32) {

	cam := &g.Scene.Camera
	update := false

	var camSpeedScale float32 = 1.0
	if input.KeyDown(input.Key_LeftShift) {
		camSpeedScale = 2
	}

	// Forward and backward
	if input.KeyDown(input.Key_W) {
		cam.Pos.Add(cam.Forward.Clone().Scale(camMoveSpeed * camSpeedScale * dt))
		update = true
	} else if input.KeyDown(input.Key_S) {
		cam.Pos.Add(cam.Forward.Clone().Scale(-camMoveSpeed * camSpeedScale * dt))
		update = true
	}

	// Left and right
	if input.KeyDown(input.Key_D) {
		cross := gglm.Cross(&cam.Forward, &cam.WorldUp)
		cam.Pos.Add(cross.Normalize().Scale(camMoveSpeed * camSpeedScale * dt))
		update = true
	} else if input.KeyDown(input.Key_A) {
		cross := gglm.Cross(&cam.Forward, &cam.WorldUp)
		cam.Pos.Add(cross.Normalize().Scale(-camMoveSpeed * camSpeedScale * dt))
		update = true
	}

	if update {
		cam.Update()
	}
}

func (g *Game) FrameEnd() {
}

func (g *Game) DeInit() {
	logging.InfoLog.Println("Shutting down")
}

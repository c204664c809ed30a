// Command morrisview opens a window over the morris board and reports which
// node the cursor hovers.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/saiko-tech/morris-picker/pkg/board"
	"github.com/saiko-tech/morris-picker/pkg/mousepick"
)

const frameInterval = 1.0 / 60

func init() {
	// glfw calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML config file, defaults are used when empty")
	debug := flag.Bool("debug", false, "log every frame")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(*configPath, logger); err != nil {
		logger.Error("morrisview failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	cfg := mousepick.DefaultConfig()

	if configPath != "" {
		var err error

		cfg, err = mousepick.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}

	variant, err := board.ParseVariant(cfg.Board.Variant)
	if err != nil {
		return err
	}

	b, err := board.New(variant, cfg.Picking.NodeRadius)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize glfw")
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(cfg.Viewport.Width, cfg.Viewport.Height, "morrisview", nil, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create window")
	}
	defer window.Destroy()

	v := &viewer{
		cfg:      cfg,
		board:    b,
		camera:   cfg.CameraState(),
		session:  mousepick.NewSession(cfg.Picker(), logger),
		logger:   logger,
		hovered:  -1,
		entities: b.Pickables(),
	}

	logger.Info("viewer started",
		slog.String("variant", variant.String()),
		slog.String("mode", cfg.Picker().Mode.String()),
		slog.Float64("node_radius", float64(cfg.Picking.NodeRadius)))

	for !window.ShouldClose() {
		glfw.WaitEventsTimeout(frameInterval)
		v.frame(window)
	}

	return nil
}

type viewer struct {
	cfg      mousepick.Config
	board    *board.Board
	camera   mousepick.CameraState
	session  *mousepick.Session
	logger   *slog.Logger
	entities []mousepick.Pickable

	hovered        int
	lastX, lastY   float64
	haveLastCursor bool
}

var moveKeys = map[glfw.Key]mousepick.MoveDirection{
	glfw.KeyW: mousepick.MoveForward,
	glfw.KeyS: mousepick.MoveBackward,
	glfw.KeyA: mousepick.MoveLeft,
	glfw.KeyD: mousepick.MoveRight,
}

// frame runs camera update, ray, then picking, in that order.
func (v *viewer) frame(window *glfw.Window) {
	x, y := window.GetCursorPos()
	v.updateCamera(window, x, y)

	// cursor positions are in screen coordinates, so is the window size
	width, height := window.GetSize()
	viewport := mousepick.Viewport{Width: width, Height: height}

	var projection mgl32.Mat4
	if width > 0 && height > 0 {
		projection = v.cfg.ProjectionMatrix(viewport)
	}

	f := v.session.Step(mousepick.FrameInput{
		CursorX:    float32(x),
		CursorY:    float32(y),
		Viewport:   viewport,
		Camera:     v.camera,
		Projection: projection,
		Entities:   v.entities,
	})
	if f.Skipped {
		return
	}

	v.logger.Debug("frame",
		slog.Any("origin", f.Ray.Origin),
		slog.Any("direction", f.Ray.Direction),
		slog.Any("highlighted", f.Highlights.Hovered()))

	hovered := -1
	if f.HasNearest {
		hovered = f.Nearest.ID
	}

	if hovered == v.hovered {
		return
	}

	v.hovered = hovered

	if hovered < 0 {
		window.SetTitle("morrisview")
		v.logger.Info("hover cleared")

		return
	}

	window.SetTitle(fmt.Sprintf("morrisview - node %d", hovered))

	attrs := []any{
		slog.Int("node", hovered),
		slog.Any("mills", v.board.MillsContaining(hovered)),
	}
	if p, ok := v.board.SurfacePoint(f.Ray); ok {
		attrs = append(attrs, slog.Any("surface", p))
	}

	v.logger.Info("hover", attrs...)
}

func (v *viewer) updateCamera(window *glfw.Window, x, y float64) {
	if v.haveLastCursor && window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press {
		v.camera.Look(float32(x-v.lastX), float32(y-v.lastY))
	}

	v.lastX, v.lastY = x, y
	v.haveLastCursor = true

	for key, dir := range moveKeys {
		if window.GetKey(key) == glfw.Press {
			v.camera.Move(dir)
		}
	}
}

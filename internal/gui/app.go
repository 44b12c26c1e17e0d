package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/fluidballs/internal/control"
	"github.com/san-kum/fluidballs/internal/dynamo"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColArena   = rl.NewColor(18, 18, 18, 255)
	ColBall    = rl.NewColor(220, 220, 220, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const (
	windowHeight    = 720
	hudWidth        = 360
	margin          = 20
	telemetryLength = 300
)

// Config wires a window session.
type Config struct {
	Title   string
	Build   func() (dynamo.System, error)
	Drivers *control.Switch
	Manual  *control.ManualSensor
	Outline bool
	Logger  *log.Logger
}

type App struct {
	cfg        Config
	sim        *dynamo.Simulator
	width      float64
	height     float64
	scale      float32
	running    bool
	outline    bool
	collisions int
	telemetry  []float64
}

func NewApp(cfg Config) (*App, error) {
	a := &App{cfg: cfg, running: true, outline: cfg.Outline}
	if err := a.reset(); err != nil {
		return nil, err
	}
	return a, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}

	rl.InitWindow(app.windowSize())
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
	defer rl.CloseWindow()

	app.RunLoop()
	return nil
}

func (a *App) windowSize() (int32, int32, string) {
	w := int32(float32(a.width)*a.scale) + 2*margin + hudWidth
	return w, windowHeight, a.cfg.Title
}

func (a *App) reset() error {
	sys, err := a.cfg.Build()
	if err != nil {
		return err
	}
	a.cfg.Drivers.Reset()
	a.sim = dynamo.New(sys, a.cfg.Drivers)
	a.sim.SetLogger(a.cfg.Logger)
	a.width, a.height = sys.Bounds()
	a.scale = float32(windowHeight-2*margin) / float32(a.height)
	a.collisions = 0
	a.telemetry = a.telemetry[:0]
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

// Update reads input and advances one tick. It reports whether to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.reset(); err != nil && a.cfg.Logger != nil {
			a.cfg.Logger.Printf("reset: %v", err)
		}
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.cfg.Drivers.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyO) {
		a.outline = !a.outline
	}
	if a.cfg.Manual != nil {
		a.tilt()
	}

	if a.running || rl.IsKeyPressed(rl.KeyPeriod) {
		a.collisions = a.sim.Tick()
		a.telemetry = append(a.telemetry, dynamo.TotalKineticEnergy(a.sim.Bodies()))
		if len(a.telemetry) > telemetryLength {
			a.telemetry = a.telemetry[1:]
		}
	}
	return false
}

func (a *App) tilt() {
	m := a.cfg.Manual
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		m.Nudge(-0.1, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		m.Nudge(0.1, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		m.Nudge(0, -0.1)
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		m.Nudge(0, 0.1)
	}
	if rl.IsKeyPressed(rl.KeyZero) {
		m.Level()
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.drawArena()
	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawArena() {
	w := int32(float32(a.width) * a.scale)
	h := int32(float32(a.height) * a.scale)
	rl.DrawRectangle(margin, margin, w, h, ColArena)
	rl.DrawRectangleLines(margin, margin, w, h, ColTextDim)

	for _, b := range a.sim.Bodies() {
		x := int32(margin + float32(b.X)*a.scale)
		y := int32(margin + float32(b.Y)*a.scale)
		r := float32(b.Radius) * a.scale
		if a.outline {
			rl.DrawCircleLines(x, y, r, ColBall)
		} else {
			rl.DrawCircle(x, y, r, ColBall)
		}
	}
}

func (a *App) drawHUD() {
	x := int32(float32(a.width)*a.scale) + 2*margin
	sys := a.sim.System()
	acc := sys.Acceleration()

	rl.DrawText(a.cfg.Title, x, 30, 24, ColSelect)
	status, col := "RUNNING", ColSelect
	if !a.running {
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, x, 64, 16, col)

	lines := []string{
		fmt.Sprintf("tick        %d", a.sim.Ticks()),
		fmt.Sprintf("balls       %d", sys.Len()),
		fmt.Sprintf("collisions  %d", a.collisions),
		fmt.Sprintf("gravity     %+.2f %+.2f", acc.X, acc.Y),
		fmt.Sprintf("source      %v", a.cfg.Drivers.Source()),
		fmt.Sprintf("numeric     %s", sys.Backend()),
	}
	for i, line := range lines {
		rl.DrawText(line, x, 110+int32(i)*24, 16, ColText)
	}

	a.drawTelemetry(x, 300)
	rl.DrawText("[SPACE] PAUSE  [R] RESET  [G] GRAVITY", x, windowHeight-70, 14, ColTextDim)
	rl.DrawText("[O] OUTLINE  [ARROWS] TILT  [Q] QUIT", x, windowHeight-50, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), x, windowHeight-30, 14, ColTextDim)
}

func (a *App) drawTelemetry(rectX, rectY int32) {
	if len(a.telemetry) < 2 {
		return
	}
	const width, height = hudWidth - 2*margin, 60

	minVal, maxVal := a.telemetry[0], a.telemetry[0]
	for _, v := range a.telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.telemetry))
	for i, val := range a.telemetry {
		px := float32(rectX) + float32(i)/float32(len(a.telemetry))*width
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*height
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("KE: %.2e", a.telemetry[len(a.telemetry)-1]), rectX, rectY+height+10, 14, ColText)
}

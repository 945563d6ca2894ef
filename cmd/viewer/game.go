package main

import (
	"context"
	"fmt"
	"image/color"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tochemey/goakt/v3/actor"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/collision"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/ui"
)

const panelWidth = 240

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

// flockColors are cycled through by flock ID.
var flockColors = []color.RGBA{
	{R: 100, G: 200, B: 255, A: 255},
	{R: 255, G: 170, B: 60, A: 255},
	{R: 140, G: 255, B: 120, A: 255},
	{R: 230, G: 110, B: 220, A: 255},
}

type Game struct {
	ctx        context.Context
	worldPID   *actor.PID
	snapshotCh chan *simulation.Snapshot
	lastState  *simulation.Snapshot
	obstacles  []collision.Obstacle

	cfg *simulation.Config

	// UI Controls
	panel         *ui.Panel
	yaw           *ui.Slider
	pitch         *ui.Slider
	zoom          *ui.Slider
	showObstacles *ui.Checkbox
	showTargets   *ui.Checkbox
	showTrapped   *ui.Checkbox
	paused        bool
	stepOnce      bool

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

func NewGame(ctx context.Context, cfg *simulation.Config, world *simulation.World, system actor.ActorSystem) (*Game, error) {
	// Buffer to avoid blocking
	snapshotCh := make(chan *simulation.Snapshot, 10)
	initial := world.Snapshot()

	worldPID, err := system.Spawn(ctx, "world", simulation.NewWorldActor(snapshotCh, world))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		lastState:  initial,
		obstacles:  world.Obstacles.Obstacles(),
		cfg:        cfg,
	}

	panel := ui.NewPanel("Flock", 10, 10, panelWidth, float64(cfg.Viewer.Height)-20)
	panel.AddSection("Camera")
	g.yaw = panel.AddSlider("Yaw", -180, 180, 30)
	g.pitch = panel.AddSlider("Pitch", -89, 89, 20)
	g.zoom = panel.AddSlider("Zoom", 0.2, 4, 1)
	panel.AddSection("Visualization")
	g.showObstacles = panel.AddCheckbox("Obstacles", true)
	g.showTargets = panel.AddCheckbox("Targets", true)
	g.showTrapped = panel.AddCheckbox("Highlight trapped", false)
	panel.AddSection("Run")
	var pause *ui.Button
	pause = panel.AddButton("Pause", func() {
		g.paused = !g.paused
		pause.Label = "Pause"
		if g.paused {
			pause.Label = "Resume"
		}
	})
	panel.AddButton("Step", func() { g.stepOnce = true })
	g.panel = panel

	return g, nil
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()

	if !g.paused || g.stepOnce {
		g.stepOnce = false
		dt := simulation.Seconds(1 / float64(ebiten.TPS()))
		if _, err := actor.Ask(g.ctx, g.worldPID, simulation.Tick(dt), time.Second); err != nil {
			return err
		}
	}

	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
		// Use previous state if new one isn't ready
	}
	return nil
}

func (g *Game) camera() Camera {
	viewW := float64(g.cfg.Viewer.Width) - panelWidth - 20
	return Camera{
		Yaw:   g.yaw.Value,
		Pitch: g.pitch.Value,
		Scale: g.cfg.Viewer.Scale * g.zoom.Value,
		CX:    panelWidth + 20 + viewW/2,
		CY:    float64(g.cfg.Viewer.Height) / 2,
	}
}

// sprite is an agent ready to draw, sorted back to front.
type sprite struct {
	depth float64
	verts [3][2]float64
	clr   color.RGBA
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})
	cam := g.camera()
	project := cam.Projector()

	if g.showObstacles.Value {
		for _, o := range g.obstacles {
			drawObstacle(screen, project, o, cam.Scale)
		}
	}

	var sprites []sprite
	for _, f := range g.lastState.Flocks {
		clr := flockColors[f.ID%len(flockColors)]
		if g.showTargets.Value && f.Target != nil {
			drawCross(screen, project, *f.Target, clr)
		}
		for i, a := range f.Agents {
			c := clr
			if g.showTrapped.Value && i < len(f.Steering) && f.Steering[i].Outcome == flock.Trapped {
				c = color.RGBA{R: 255, G: 40, B: 40, A: 255}
			}
			sprites = append(sprites, agentSprite(project, a, c))
		}
	}
	sort.Slice(sprites, func(i, j int) bool { return sprites[i].depth > sprites[j].depth })
	for _, s := range sprites {
		drawTriangle(screen, s)
	}

	g.panel.Draw(screen)

	msg := fmt.Sprintf("Tick: %d\nTime: %.1fs\nAgents: %d\n\nFPS: %.2f\nTPS: %.2f\nUpdate: %.2fms\nDraw:   %.2fms",
		g.lastState.Tick,
		g.lastState.Time,
		g.lastState.AgentCount(),
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, g.cfg.Viewer.Width-150, 10)
}

func agentSprite(project func(r3.Vec) (float64, float64, float64), a flock.AgentState, clr color.RGBA) sprite {
	right := a.Rotation.Rotate(geometry.Right)
	tip := r3.Add(a.Position, r3.Scale(0.6, a.Forward))
	back := r3.Sub(a.Position, r3.Scale(0.3, a.Forward))

	s := sprite{clr: clr}
	for i, p := range []r3.Vec{tip, r3.Add(back, r3.Scale(0.25, right)), r3.Sub(back, r3.Scale(0.25, right))} {
		x, y, _ := project(p)
		s.verts[i] = [2]float64{x, y}
	}
	_, _, s.depth = project(a.Position)
	return s
}

func drawTriangle(screen *ebiten.Image, s sprite) {
	r, g, b := float32(s.clr.R)/255, float32(s.clr.G)/255, float32(s.clr.B)/255
	vertices := make([]ebiten.Vertex, 3)
	for i, v := range s.verts {
		vertices[i] = ebiten.Vertex{
			DstX: float32(v[0]), DstY: float32(v[1]),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: 1,
		}
	}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, whiteImage, &ebiten.DrawTrianglesOptions{})
}

var obstacleColor = color.RGBA{R: 120, G: 120, B: 140, A: 160}

func drawObstacle(screen *ebiten.Image, project func(r3.Vec) (float64, float64, float64), o collision.Obstacle, scale float64) {
	switch o := o.(type) {
	case collision.Sphere:
		x, y, _ := project(o.Center)
		vector.StrokeCircle(screen, float32(x), float32(y), float32(o.Radius*scale), 1, obstacleColor, true)
	case collision.Box:
		var corners [8][2]float32
		for i := range corners {
			p := o.Min
			if i&1 != 0 {
				p.X = o.Max.X
			}
			if i&2 != 0 {
				p.Y = o.Max.Y
			}
			if i&4 != 0 {
				p.Z = o.Max.Z
			}
			x, y, _ := project(p)
			corners[i] = [2]float32{float32(x), float32(y)}
		}
		// corners i and j share an edge when their indices differ by one bit
		for i := 0; i < 8; i++ {
			for _, bit := range []int{1, 2, 4} {
				if j := i | bit; j != i {
					vector.StrokeLine(screen, corners[i][0], corners[i][1], corners[j][0], corners[j][1], 1, obstacleColor, true)
				}
			}
		}
	}
}

func drawCross(screen *ebiten.Image, project func(r3.Vec) (float64, float64, float64), p r3.Vec, clr color.RGBA) {
	x, y, _ := project(p)
	fx, fy := float32(x), float32(y)
	vector.StrokeLine(screen, fx-6, fy, fx+6, fy, 2, clr, true)
	vector.StrokeLine(screen, fx, fy-6, fx, fy+6, 2, clr, true)
}

func (g *Game) Layout(w, h int) (int, int) { return g.cfg.Viewer.Width, g.cfg.Viewer.Height }

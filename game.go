package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/brush"
	"github.com/milk9111/destructible/collider"
	"github.com/milk9111/destructible/config"
	"github.com/milk9111/destructible/debris"
	"github.com/milk9111/destructible/ecs"
	"github.com/milk9111/destructible/ecs/system"
	"github.com/milk9111/destructible/prefabs"
	"github.com/milk9111/destructible/render"
	"github.com/milk9111/destructible/scene"
	"github.com/milk9111/destructible/terrain"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	panSpeed  = 0.15 // world units per tick at zoom 100
	zoomStep  = 1.1
	minZoom   = 10.0
	maxZoom   = 1000.0
	pickRange = 0.25
)

var (
	defaultBackground = color.NRGBA{R: 0x1d, G: 0x23, B: 0x30, A: 0xff}
	toolKeys          = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9}
)

type Game struct {
	cfg *config.Config
	log *zap.Logger

	collider *collider.Service
	renderer *render.TerrainRenderer
	cam      render.Camera

	assets      *scene.Assets
	world       *ecs.World
	scheduler   *ecs.Scheduler
	destruction *system.DestructionSystem
	background  color.NRGBA
	erased      int

	tool    int
	hud     *HUD
	watcher *prefabs.Watcher
	clip    clipboardState

	showOutlines bool
	showPhysics  bool
	showHUD      bool
}

func NewGame(cfg *config.Config, log *zap.Logger) (*Game, error) {
	assets, err := scene.LoadAssets()
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:      cfg,
		log:      log,
		collider: collider.NewService(),
		renderer: render.NewTerrainRenderer(),
		cam: render.Camera{
			Position: cp.Vector{X: cfg.Camera.X, Y: cfg.Camera.Y},
			Zoom:     cfg.Camera.Zoom,
			Width:    float64(cfg.Window.Width),
			Height:   float64(cfg.Window.Height),
		},
		assets:       assets,
		showOutlines: cfg.Debug.Outlines,
		showPhysics:  cfg.Debug.Physics,
		showHUD:      cfg.Debug.HUD,
	}
	if err := g.rebuild(); err != nil {
		return nil, err
	}

	if cfg.Prefabs.HotReload {
		w, err := prefabs.NewWatcher(prefabs.Dir())
		if err != nil {
			log.Warn("prefabs: hot reload disabled", zap.String("dir", prefabs.Dir()), zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// rebuild creates a fresh world from the current assets.
func (g *Game) rebuild() error {
	sc := g.assets.Scene
	pool := debris.NewPool(debris.Options{
		Prewarm: g.cfg.Simulation.PoolPrewarm,
		Expired: debris.BelowY(sc.KillY),
		Seed:    g.cfg.Simulation.DebrisSeed,
		Logger:  g.log,
	})
	var space *collider.Space
	if g.cfg.Simulation.PhysicsSpace {
		space = collider.NewSpace(sc.Gravity, g.log)
	}

	if g.world != nil {
		g.world.Clear()
	}
	g.renderer.Prune(nil)
	g.world = ecs.NewWorld(ecs.Options{
		Collider: g.collider,
		Debris:   pool,
		Space:    space,
		Logger:   g.log,
	})
	g.destruction = system.NewDestructionSystem()
	g.scheduler = ecs.NewScheduler(
		g.destruction,
		system.NewColliderSystem(),
		system.NewDebrisSystem(cp.Vector{Y: sc.Gravity}),
		system.NewCleanupSystem(),
	)
	g.background = sc.Background.NRGBA(defaultBackground)
	g.erased = 0

	if _, err := scene.Populate(g.world, sc, g.assets.Templates); err != nil {
		return err
	}
	g.world.Events().Drain()

	if g.tool >= len(g.assets.Tools) {
		g.tool = 0
	}
	g.hud = NewHUD(g, g.assets.Tools)
	g.hud.SetActive(g.tool)
	return nil
}

// Reset restores the scene to its initial state.
func (g *Game) Reset() {
	if err := g.rebuild(); err != nil {
		g.log.Error("game: reset failed", zap.Error(err))
		return
	}
	g.log.Info("game: reset", zap.String("scene", g.assets.Scene.Name))
}

func (g *Game) SelectTool(i int) {
	if i < 0 || i >= len(g.assets.Tools) {
		return
	}
	g.tool = i
	g.hud.SetActive(i)
}

func (g *Game) currentTool() *scene.Tool {
	if g.tool < 0 || g.tool >= len(g.assets.Tools) {
		return nil
	}
	return g.assets.Tools[g.tool]
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.pollReload()
	if g.showHUD {
		g.hud.ui.Update()
	}
	g.handleInput()

	g.scheduler.Step(g.world, 1/float64(ebiten.TPS()))
	g.erased += g.destruction.Erased()
	g.handleEvents()

	g.hud.SetStats(g.stats())
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				g.log.Warn("prefabs: watch error", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	assets, err := scene.LoadAssets()
	if err != nil {
		g.log.Warn("prefabs: reload failed, keeping previous assets", zap.String("file", name), zap.Error(err))
		return
	}
	g.assets = assets
	if err := g.rebuild(); err != nil {
		g.log.Error("prefabs: rebuild failed", zap.String("file", name), zap.Error(err))
		return
	}
	g.log.Info("prefabs: reloaded", zap.String("file", name), zap.Bool("script", prefabs.IsScript(name)))
}

func (g *Game) handleInput() {
	for i, key := range toolKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.SelectTool(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showOutlines = !g.showOutlines
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.showPhysics = !g.showPhysics
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	g.moveCamera()

	cx, cy := ebiten.CursorPosition()
	p := g.cam.ScreenToWorld(float64(cx), float64(cy))

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyBodyAt(p)
	}
	if g.showHUD && g.hud.Contains(cx, cy) {
		return
	}

	tool := g.currentTool()
	if tool == nil {
		return
	}
	// Radius tools erase once per click; shape tools carve while held.
	if tool.Shape == nil {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.world.Request(tool.Request(p))
		}
		return
	}
	tool.Shape.MoveTo(p)
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.world.Request(tool.Request(p))
	}
}

func (g *Game) moveCamera() {
	step := panSpeed * 100 / g.cam.Zoom
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.cam.Position.X -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.cam.Position.X += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.cam.Position.Y += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.cam.Position.Y -= step
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.cam.Zoom = math.Max(minZoom, math.Min(maxZoom, g.cam.Zoom*math.Pow(zoomStep, dy)))
	}
}

func (g *Game) handleEvents() {
	released := 0
	for _, evt := range g.world.Events().Drain() {
		switch evt.Kind {
		case ecs.EventBodySplit:
			g.log.Debug("game: body split", zap.Stringer("entity", evt.Entity), zap.Int("fragments", evt.Fragments))
		case ecs.EventBodyDestroyed:
			g.log.Debug("game: body destroyed", zap.Stringer("entity", evt.Entity))
		case ecs.EventBodyReleased:
			released++
		}
	}
	if released > 0 {
		g.renderer.Prune(func(b *terrain.Body) bool {
			_, ok := g.world.EntityOf(b)
			return ok
		})
	}
}

// bodyAt returns the body whose outline contains p, or failing that the
// body whose physics outline lies nearest.
func (g *Game) bodyAt(p cp.Vector) *terrain.Body {
	var hit *terrain.Body
	g.world.ForEach(func(e ecs.Entity, b *terrain.Body) {
		if hit != nil || b.Destroyed() || !b.WorldBounds().ContainsVect(p) {
			return
		}
		if g.collider.OverlapPoint(b.Outline(), b.Mapper(), p) {
			hit = b
		}
	})
	if hit != nil {
		return hit
	}
	return g.world.Space().BodyAt(p, pickRange)
}

func (g *Game) stats() Stats {
	s := Stats{Bodies: g.world.Len(), Erased: g.erased}
	if pool := g.world.Debris(); pool != nil {
		s.Debris = pool.ActiveCount()
		s.Pool = pool.Len()
	}
	if space := g.world.Space(); space != nil {
		g.world.ForEach(func(e ecs.Entity, b *terrain.Body) {
			s.Shapes += space.TerrainShapes(b)
		})
	}
	return s
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)

	g.world.ForEach(func(e ecs.Entity, b *terrain.Body) {
		g.renderer.DrawBody(screen, b, g.cam)
		if g.showOutlines {
			render.DrawOutline(screen, b, g.cam, colornames.Lime)
		}
	})
	render.DrawDebris(screen, g.world.Debris(), g.cam)
	if g.showPhysics {
		render.DrawPhysicsDebug(g.world.Space().Space(), g.cam, screen)
	}
	g.drawCursor(screen)

	if g.showHUD {
		g.hud.ui.Draw(screen)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f", ebiten.ActualFPS()), int(g.cam.Width)-90, 4)
}

func (g *Game) drawCursor(screen *ebiten.Image) {
	tool := g.currentTool()
	if tool == nil {
		return
	}
	cx, cy := ebiten.CursorPosition()
	clr := colornames.Orange
	switch shape := tool.Shape.(type) {
	case nil:
		r := tool.Radius * g.cam.Zoom
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 1, clr, true)
	case *brush.Circle:
		r := shape.Radius() * g.cam.Zoom
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 1, clr, true)
	case *brush.Polygon:
		drawPath(screen, g.cam, shape.Vertices(), clr)
	default:
		bb := shape.BB()
		drawPath(screen, g.cam, terrain.Path{{X: bb.L, Y: bb.B}, {X: bb.R, Y: bb.B}, {X: bb.R, Y: bb.T}, {X: bb.L, Y: bb.T}}, clr)
	}
}

func drawPath(screen *ebiten.Image, cam render.Camera, path terrain.Path, clr color.Color) {
	for i, j := 0, len(path)-1; i < len(path); j, i = i, i+1 {
		x1, y1 := cam.WorldToScreen(path[j])
		x2, y2 := cam.WorldToScreen(path[i])
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, clr, true)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.cam.Width, g.cam.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

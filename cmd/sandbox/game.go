package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/physics"
	"github.com/milk9111/rigidsync/scene"
	"github.com/milk9111/rigidsync/telemetry"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 960
	screenHeight = 540
	spawnSize    = 24
)

type Game struct {
	sceneName string
	debug     bool
	paused    bool
	frames    int

	rt       *scene.Runtime
	recorder *telemetry.Recorder
	watcher  *scene.Watcher
}

func NewGame(sceneName string, debug bool, rec *telemetry.Recorder) (*Game, error) {
	g := &Game{sceneName: sceneName, debug: debug, recorder: rec}
	if err := g.load(); err != nil {
		return nil, err
	}
	return g, nil
}

func frameTime() float64 {
	return 1 / float64(ebiten.TPS())
}

func (g *Game) load() error {
	spec, err := scene.LoadSpec(g.sceneName)
	if err != nil {
		return err
	}
	rt, err := scene.Start(spec, frameTime)
	if err != nil {
		return err
	}
	if g.recorder != nil {
		rt.Physics.OnFrame(g.recorder.Observe(rt.Physics))
	}
	g.rt.Close()
	g.rt = rt
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.recorder != nil {
		g.recorder.SetSimulated(g.rt.Physics.Driver().Simulated())
	}
	g.rt.Close()
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.load(); err != nil {
			log.Printf("sandbox: restart: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.spawn(float64(x), float64(y), physics.ShapeBox)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		g.spawn(float64(x), float64(y), physics.ShapeCircle)
	}

	if g.paused {
		return nil
	}
	g.frames++
	g.rt.Update()
	return nil
}

func (g *Game) pollWatcher() {
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
			switch {
			case scene.IsScriptFile(name):
				log.Printf("sandbox: reloading script %s", name)
				g.rt.Scripts.Reload(scene.ScriptPath(name))
			case scene.IsSceneFile(name):
				if t, ok := scene.ModTime(filepath.Base(name)); ok {
					log.Printf("sandbox: reloading scene %s (modified %s)", name, t.Format("15:04:05"))
				}
				if err := g.load(); err != nil {
					log.Printf("sandbox: reload: %v", err)
				}
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("sandbox: watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) spawn(x, y float64, shape physics.ShapeKind) {
	w := g.rt.World
	e := ecs.CreateEntity(w)
	desc := physics.DefaultDescriptor()
	desc.Shape = shape
	desc.Positioning = physics.OnCenter
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: x, Y: y, Width: spawnSize, Height: spawnSize, OriginX: spawnSize / 2, OriginY: spawnSize / 2,
	})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Descriptor: desc})
	_ = ecs.Add(w, e, component.GroupsComponent.Kind(), &component.Groups{Names: []string{"crates"}})
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	drawPhysicsDebug(g.rt.Physics, screen, g.debug)

	last := g.rt.Physics.LastFrame()
	status := ""
	if g.paused {
		status = " [paused]"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s%s  FPS: %.1f  bodies: %d  steps: %d  acc: %.4f",
		g.rt.Spec.Name, status, ebiten.ActualFPS(), g.rt.Physics.Len(), last.Steps, last.Accumulator))
	ebitenutil.DebugPrintAt(screen, "space: pause  R: restart  D: debug  click: spawn", 10, screenHeight-20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

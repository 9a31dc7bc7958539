package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/relicblade/common"
	"github.com/milk9111/relicblade/ecs"
	"github.com/milk9111/relicblade/ecs/entity"
	"github.com/milk9111/relicblade/ecs/system"
	"github.com/milk9111/relicblade/prefabs"
)

type Game struct {
	frames int
	paused bool
	debug  bool

	world   *ecs.World
	blade   ecs.Entity
	watcher *prefabs.Watcher

	hud     *hud
	pauseUI *pauseUI
}

func NewGame(debug bool) (*Game, error) {
	w := ecs.NewWorld()
	w.SetPhysics(ecs.NewPhysicsWorld())

	spawnX := float64(common.BaseWidth) / 4
	spawnY := float64(common.BaseHeight) - 120

	if _, err := entity.NewPlayer(w, spawnX, spawnY); err != nil {
		return nil, err
	}

	blade, err := entity.NewBlade(w, spawnX-10, spawnY-30)
	if err != nil {
		return nil, err
	}

	if _, err := entity.NewLodgeTarget(w, float64(common.BaseWidth)-220, float64(common.BaseHeight)-116, 3); err != nil {
		return nil, err
	}

	scriptPath := "blade_hooks.tengo"
	if spec, err := prefabs.LoadBladeSpec(); err == nil && spec.Script != "" {
		scriptPath = spec.Script
	}
	scripts := system.NewBladeScriptSystem(scriptPath)

	var watcher *prefabs.Watcher
	if wt, err := prefabs.NewWatcher("prefabs", "prefabs/scripts"); err != nil {
		log.Printf("prefab watch unavailable: %v", err)
	} else {
		watcher = wt
	}

	w.AddSystem(system.NewInputSystem())
	w.AddSystem(system.NewTuningReloadSystem(watcher, scripts))
	w.AddSystem(system.NewPlayerControllerSystem())
	w.AddSystem(system.NewBladeSystem())
	w.AddSystem(system.NewPhysicsSystem())
	w.AddSystem(scripts)

	g := &Game{
		world:   w,
		blade:   blade,
		watcher: watcher,
		debug:   debug,
	}
	g.hud = newHUD(g)
	g.pauseUI = newPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if err := g.world.Update(); err != nil {
		// A mode-engine failure means the actor is in an unknown state;
		// stop the loop rather than limp on.
		return err
	}

	if g.debug {
		g.hud.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.world)

	if g.debug {
		g.hud.Draw(screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

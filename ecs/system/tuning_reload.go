package system

import (
	"log"
	"strings"

	"github.com/milk9111/relicblade/ecs"
	"github.com/milk9111/relicblade/ecs/component"
	"github.com/milk9111/relicblade/prefabs"
)

// TuningReloadSystem drains the prefab watcher and re-applies blade
// tuning when blade.yaml changes on disk, so numbers can be dialed in
// while the game runs. Script edits invalidate the hook runtime instead.
type TuningReloadSystem struct {
	watcher *prefabs.Watcher
	scripts *BladeScriptSystem
}

func NewTuningReloadSystem(watcher *prefabs.Watcher, scripts *BladeScriptSystem) *TuningReloadSystem {
	return &TuningReloadSystem{watcher: watcher, scripts: scripts}
}

func (s *TuningReloadSystem) Update(w *ecs.World) error {
	if s.watcher == nil {
		return nil
	}
	for {
		select {
		case name, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			s.handle(w, name)
		case err, ok := <-s.watcher.Errors:
			if ok {
				log.Printf("prefab watch: %v", err)
			}
		default:
			return nil
		}
	}
}

func (s *TuningReloadSystem) handle(w *ecs.World, name string) {
	if strings.HasSuffix(name, ".tengo") {
		if s.scripts != nil {
			s.scripts.Invalidate()
			log.Printf("prefab watch: reloaded script %s", name)
		}
		return
	}

	spec, err := prefabs.LoadBladeSpec()
	if err != nil {
		log.Printf("prefab watch: reload blade spec: %v", err)
		return
	}
	tuning := spec.Tuning.ToTuning()

	ecs.ForEach(w, component.BladeComponent, func(e ecs.Entity, blade *component.Blade) {
		*blade.Tuning = *tuning
	})
	log.Printf("prefab watch: reapplied blade tuning from %s", name)
}

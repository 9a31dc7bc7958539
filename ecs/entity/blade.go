package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/relicblade/ecs"
	"github.com/milk9111/relicblade/ecs/component"
	"github.com/milk9111/relicblade/ecs/system"
	"github.com/milk9111/relicblade/fsm"
	"github.com/milk9111/relicblade/prefabs"
)

// NewBlade builds the relic blade: the proxy body, the wired mode
// engine, and the request buffer, starting sheathed at the owner's back.
func NewBlade(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadBladeSpec()
	if err != nil {
		log.Printf("entity: blade spec unavailable, using defaults: %v", err)
		spec = &prefabs.BladeSpec{
			Proxy: prefabs.ColliderSpec{Width: 12, Height: 42, Mass: 2.5},
		}
	}
	tuning := spec.Tuning.ToTuning()

	pw := spec.Proxy.Width
	ph := spec.Proxy.Height
	pm := spec.Proxy.Mass
	if pw <= 0 || ph <= 0 || pm <= 0 {
		pw, ph, pm = 12, 42, 2.5
	}

	e := w.CreateEntity()
	body, shape := w.Physics().AddBladeBody(x, y, pw, ph, pm)

	engine := system.NewBladeEngine()
	requests := fsm.NewRequests()

	blade := component.Blade{
		Engine:         engine,
		Requests:       requests,
		Tuning:         tuning,
		OwnerAvailable: true,
		ProxyValid:     true,
	}

	steps := []error{
		ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y}),
		ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
			Body:   body,
			Shape:  shape,
			Width:  pw,
			Height: ph,
			Mass:   pm,
		}),
		ecs.Add(w, e, component.BladeComponent, blade),
	}
	for _, err := range steps {
		if err != nil {
			return 0, fmt.Errorf("entity: build blade: %w", err)
		}
	}
	return e, nil
}

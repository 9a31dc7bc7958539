package system

import (
	"github.com/milk9111/relicblade/common"
	"github.com/milk9111/relicblade/ecs"
	"github.com/milk9111/relicblade/ecs/component"
)

// PhysicsSystem steps the chipmunk space one fixed tick and mirrors body
// positions into Transforms. It runs after the blade system so mode
// decisions apply to the step they were made for.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (p *PhysicsSystem) Update(w *ecs.World) error {
	pw := w.Physics()
	if pw == nil {
		return nil
	}
	pw.Step(common.FixedDelta)

	for _, e := range w.Query(component.PhysicsBodyComponent.ID(), component.TransformComponent.ID()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok || bodyComp.Body == nil {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		pos := bodyComp.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = bodyComp.Body.Angle()
		if err := ecs.Add(w, e, component.TransformComponent, t); err != nil {
			return err
		}
	}
	return nil
}

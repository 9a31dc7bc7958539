package entity

import (
	"fmt"

	"github.com/milk9111/relicblade/ecs"
	"github.com/milk9111/relicblade/ecs/component"
)

const (
	targetWidth  = 36
	targetHeight = 72
)

// NewLodgeTarget builds a static destructible dummy the blade can lodge
// into.
func NewLodgeTarget(w *ecs.World, x, y float64, hp int) (ecs.Entity, error) {
	e := w.CreateEntity()
	body, shape := w.Physics().AddTargetBody(e, x, y, targetWidth, targetHeight)

	steps := []error{
		ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y}),
		ecs.Add(w, e, component.LodgeTargetComponent, component.LodgeTarget{HP: hp}),
		ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
			Body:   body,
			Shape:  shape,
			Width:  targetWidth,
			Height: targetHeight,
			Static: true,
		}),
	}
	for _, err := range steps {
		if err != nil {
			return 0, fmt.Errorf("entity: build lodge target: %w", err)
		}
	}
	return e, nil
}

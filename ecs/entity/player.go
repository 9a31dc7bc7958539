package entity

import (
	"fmt"

	"github.com/milk9111/relicblade/ecs"
	"github.com/milk9111/relicblade/ecs/component"
)

const (
	playerWidth  = 28
	playerHeight = 56
	playerMass   = 10
)

// NewPlayer builds the blade's owner: a controllable box body.
func NewPlayer(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e := w.CreateEntity()

	body, shape := w.Physics().AddPlayerBody(x, y, playerWidth, playerHeight, playerMass)

	steps := []error{
		ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{}),
		ecs.Add(w, e, component.PlayerComponent, component.Player{
			MoveSpeed: 260,
			JumpSpeed: 600,
		}),
		ecs.Add(w, e, component.InputComponent, component.Input{}),
		ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y}),
		ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
			Body:   body,
			Shape:  shape,
			Width:  playerWidth,
			Height: playerHeight,
			Mass:   playerMass,
		}),
	}
	for _, err := range steps {
		if err != nil {
			return 0, fmt.Errorf("entity: build player: %w", err)
		}
	}
	return e, nil
}

package system

import (
	"math"

	"github.com/milk9111/relicblade/ecs"
	"github.com/milk9111/relicblade/ecs/component"
)

const groundedEpsilon = 1.0

// PlayerControllerSystem applies movement input to the owner's body and
// tracks facing, which the blade's throw and lunge directions read.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) error {
	entities := w.Query(
		component.PlayerTagComponent.ID(),
		component.PlayerComponent.ID(),
		component.InputComponent.ID(),
		component.PhysicsBodyComponent.ID(),
	)
	for _, e := range entities {
		input, ok := ecs.Get(w, e, component.InputComponent)
		if !ok {
			continue
		}
		player, ok := ecs.Get(w, e, component.PlayerComponent)
		if !ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok || bodyComp.Body == nil {
			continue
		}

		vel := bodyComp.Body.Velocity()
		vel.X = input.MoveX * player.MoveSpeed
		if input.JumpPressed && math.Abs(vel.Y) < groundedEpsilon {
			vel.Y = -player.JumpSpeed
		}
		bodyComp.Body.SetVelocityVector(vel)
		bodyComp.Body.SetAngle(0)
		bodyComp.Body.SetAngularVelocity(0)

		if input.MoveX > 0 {
			player.FacingLeft = false
		} else if input.MoveX < 0 {
			player.FacingLeft = true
		}
		if err := ecs.Add(w, e, component.PlayerComponent, player); err != nil {
			return err
		}
	}
	return nil
}

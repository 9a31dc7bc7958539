package system

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/relicblade/ecs"
	"github.com/milk9111/relicblade/ecs/component"
	"github.com/milk9111/relicblade/fsm"
)

// BladeSystem owns the weapon actor's per-tick hook: it turns input edges
// into request tokens, assembles the BladeContext closures over the live
// world, and ticks the mode engine exactly once. Engine errors abort the
// frame; the game loop decides what to do with them.
type BladeSystem struct {
	tick int
}

func NewBladeSystem() *BladeSystem {
	return &BladeSystem{}
}

func (s *BladeSystem) Update(w *ecs.World) error {
	s.tick++

	players := w.Query(component.PlayerTagComponent.ID(), component.PhysicsBodyComponent.ID())
	if len(players) == 0 {
		return nil
	}
	owner := players[0]

	for _, e := range w.Query(component.BladeComponent.ID(), component.PhysicsBodyComponent.ID()) {
		blade, ok := ecs.Get(w, e, component.BladeComponent)
		if !ok {
			continue
		}
		if err := s.updateBlade(w, owner, e, &blade); err != nil {
			return fmt.Errorf("blade %s: %w", e, err)
		}
		if err := ecs.Add(w, e, component.BladeComponent, blade); err != nil {
			return err
		}
	}
	return nil
}

func (s *BladeSystem) updateBlade(w *ecs.World, owner, e ecs.Entity, blade *component.Blade) error {
	input, _ := ecs.Get(w, owner, component.InputComponent)
	player, _ := ecs.Get(w, owner, component.PlayerComponent)
	ownerBody, ok := ecs.Get(w, owner, component.PhysicsBodyComponent)
	if !ok || ownerBody.Body == nil {
		return nil
	}
	bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
	if !ok || bodyComp.Body == nil {
		return nil
	}

	s.pushRequests(blade, input)
	s.applyDebugInput(w, blade, input)

	pw := w.Physics()
	hitEnt, hit := pw.BladeHitTarget()
	landed := pw.BladeLanded()

	ctx := &component.BladeContext{
		Tuning:   blade.Tuning,
		Requests: blade.Requests,

		OwnerPosition: func() (float64, float64) {
			p := ownerBody.Body.Position()
			return p.X, p.Y
		},
		OwnerAvailable: func() bool { return blade.OwnerAvailable },
		HandAnchor: func() (float64, float64) {
			p := ownerBody.Body.Position()
			hx := blade.Tuning.HandOffsetX
			if player.FacingLeft {
				hx = -hx
			}
			return p.X + hx, p.Y + blade.Tuning.HandOffsetY
		},
		AimDirection: func() (float64, float64) {
			if player.FacingLeft {
				return -1, 0
			}
			return 1, 0
		},

		ProxyPosition: func() (float64, float64) {
			p := bodyComp.Body.Position()
			return p.X, p.Y
		},
		SetProxyVelocity: func(x, y float64) {
			bodyComp.Body.SetVelocity(x, y)
		},
		PlaceProxy: func(x, y float64) {
			bodyComp.Body.SetPosition(cp.Vector{X: x, Y: y})
			bodyComp.Body.SetVelocity(0, 0)
		},
		ProxyValid:  func() bool { return blade.ProxyValid },
		RepairProxy: func() { blade.ProxyValid = true },

		HitDetected: func() bool { return hit },
		Landed:      func() bool { return landed },
		Lodge: func() {
			blade.LodgedIn = uint64(hitEnt)
			pw.PinBlade(bodyComp.Body)
		},
		Unlodge: func() {
			blade.LodgedIn = 0
			pw.UnpinBlade(bodyComp.Body, bodyComp.Mass, bodyComp.Width, bodyComp.Height)
		},
		LodgedTargetAlive: func() bool {
			target := ecs.Entity(blade.LodgedIn)
			return target.Valid() && w.IsAlive(target)
		},

		AttackDone:    func() bool { return blade.AttackDone },
		SetAttackDone: func(done bool) { blade.AttackDone = done },

		ChangeAnimation: func(name string) { blade.Animation = name },
	}

	blade.Engine.OnChange(func(from, to fsm.Kind) {
		blade.PushTrace(s.tick, from, to)
	})

	var err error
	if blade.Engine.CurrentKind() == fsm.KindNone {
		err = blade.Engine.Start(ctx, component.ModeSheathed)
	} else {
		err = blade.Engine.Tick(ctx)
	}
	pw.ClearBladeContacts()
	return err
}

// pushRequests converts input edges into request tokens. The buffer is
// idempotent, so a press that raced an unconsumed earlier press is a
// no-op.
func (s *BladeSystem) pushRequests(blade *component.Blade, input component.Input) {
	push := func(pressed bool, req fsm.Request) {
		if pressed {
			blade.Requests.Push(req)
		}
	}
	push(input.TogglePressed, component.RequestToggle)
	push(input.WieldPressed, component.RequestWield)
	push(input.ThrowPressed, component.RequestThrow)
	push(input.RecallPressed, component.RequestRecall)
	push(input.LungePressed, component.RequestLunge)
	push(input.SheathePressed, component.RequestSheathe)
	push(input.AttackQuickPressed, component.RequestAttackQuick)
	push(input.AttackHeavyPressed, component.RequestAttackHeavy)
	push(input.DeactivatePressed, component.RequestDeactivate)
	push(input.ReactivatePressed, component.RequestReactivate)
}

// applyDebugInput simulates the external collaborator signals: breaking
// the visual proxy, owner loss, and damage to the lodged dummy.
func (s *BladeSystem) applyDebugInput(w *ecs.World, blade *component.Blade, input component.Input) {
	if input.BreakProxyPressed {
		blade.ProxyValid = false
	}
	if input.ToggleOwnerAvailable {
		blade.OwnerAvailable = !blade.OwnerAvailable
	}
	if input.DamageTargetPressed {
		target := ecs.Entity(blade.LodgedIn)
		if !target.Valid() || !w.IsAlive(target) {
			return
		}
		lt, ok := ecs.Get(w, target, component.LodgeTargetComponent)
		if !ok {
			return
		}
		lt.HP--
		if lt.HP <= 0 {
			if bodyComp, ok := ecs.Get(w, target, component.PhysicsBodyComponent); ok && bodyComp.Body != nil {
				w.Physics().RemoveTargetBody(bodyComp.Body, bodyComp.Shape)
			}
			w.DestroyEntity(target)
			return
		}
		if err := ecs.Add(w, target, component.LodgeTargetComponent, lt); err != nil {
			return
		}
	}
}

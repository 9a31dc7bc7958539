package system

import (
	"github.com/milk9111/relicblade/ecs/component"
	"github.com/milk9111/relicblade/fsm"
)

type bladeTransition = fsm.Transition[*component.BladeContext]

// NewBladeEngine wires the blade's full mode graph. Universal transitions
// (Inactive on owner loss, Recovering on proxy breakage) pre-empt every
// specific edge; specific edges fire in the order declared here.
func NewBladeEngine() *component.BladeEngine {
	e := fsm.NewEngine[*component.BladeContext]()

	e.Register(component.ModeSheathed, func() component.BladeMode { return sheathedMode{} })
	e.Register(component.ModeStandby, func() component.BladeMode { return &standbyMode{} })
	e.Register(component.ModeWielded, func() component.BladeMode { return wieldedMode{} })
	e.Register(component.ModeRecalling, func() component.BladeMode { return &recallingMode{} })
	e.Register(component.ModeReturning, func() component.BladeMode { return &returningMode{} })
	e.Register(component.ModeWaiting, func() component.BladeMode { return &waitingMode{} })
	e.Register(component.ModeAttackingQuick, func() component.BladeMode { return &attackingQuickMode{} })
	e.Register(component.ModeAttackingHeavy, func() component.BladeMode { return &attackingHeavyMode{} })
	e.Register(component.ModeLunging, func() component.BladeMode { return &lungingMode{} })
	e.Register(component.ModeFlying, func() component.BladeMode { return flyingMode{} })
	e.Register(component.ModeLodged, func() component.BladeMode { return lodgedMode{} })
	e.Register(component.ModeInactive, func() component.BladeMode { return inactiveMode{} })
	e.Register(component.ModeRecovering, func() component.BladeMode { return &recoveringMode{} })

	consume := func(req fsm.Request) fsm.Guard[*component.BladeContext] {
		return func(ctx *component.BladeContext) bool {
			return ctx.Requests.Consume(req)
		}
	}

	// Universal edges first: losing the owner or the proxy interrupts any
	// mode, and the interrupted instance is resumed afterwards.
	e.AddTransition(bladeTransition{
		From: fsm.Any,
		To:   component.ModeInactive,
		Guard: func(ctx *component.BladeContext) bool {
			return !ctx.OwnerAvailable() || ctx.Requests.Consume(component.RequestDeactivate)
		},
	})
	e.AddTransition(bladeTransition{
		From: fsm.Any,
		To:   component.ModeRecovering,
		Guard: func(ctx *component.BladeContext) bool {
			return !ctx.ProxyValid()
		},
	})

	// Carried transitions.
	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeSheathed),
		To:    component.ModeStandby,
		Guard: consume(component.RequestToggle),
	})
	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeSheathed),
		To:    component.ModeWielded,
		Guard: consume(component.RequestWield),
	})
	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeStandby),
		To:    component.ModeSheathed,
		Guard: consume(component.RequestToggle),
	})
	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeStandby),
		To:    component.ModeWielded,
		Guard: consume(component.RequestWield),
	})
	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeStandby),
		To:    component.ModeAttackingQuick,
		Guard: consume(component.RequestAttackQuick),
	})
	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeStandby),
		To:    component.ModeAttackingHeavy,
		Guard: consume(component.RequestAttackHeavy),
	})
	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeStandby, component.ModeWielded),
		To:    component.ModeFlying,
		Guard: consume(component.RequestThrow),
	})
	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeWielded),
		To:    component.ModeStandby,
		Guard: consume(component.RequestWield),
	})

	// Attacks hand the blade back through Returning once the swing ends.
	attackDone := func(ctx *component.BladeContext) bool { return ctx.AttackDone() }
	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeAttackingQuick, component.ModeAttackingHeavy),
		To:    component.ModeReturning,
		Guard: attackDone,
		Action: func(ctx *component.BladeContext) {
			ctx.SetAttackDone(false)
		},
	})

	// Waiting decides: come home when far away or forgotten, hover again
	// when the owner walks into pickup range, rest in between. The pickup
	// edge must stay below the distance/idle edge.
	e.AddTransition(bladeTransition{
		From: fsm.ClassOf(component.ModeWaiting),
		To:   component.ModeReturning,
		Guard: func(ctx *component.BladeContext) bool {
			m, ok := e.Current().(*waitingMode)
			return ok && m.shouldReturn(ctx)
		},
	})
	e.AddTransition(bladeTransition{
		From: fsm.ClassOf(component.ModeWaiting),
		To:   component.ModeStandby,
		Guard: func(ctx *component.BladeContext) bool {
			d := ctx.Tuning.PickupDistance
			return ctx.OwnerDistanceSq() <= d*d
		},
	})

	// Recalling and Returning share their outgoing edges; their arrival
	// debounce pushes the standby request consumed here.
	homeward := fsm.ClassOf(component.ModeRecalling, component.ModeReturning)
	e.AddTransition(bladeTransition{
		From:  homeward,
		To:    component.ModeSheathed,
		Guard: consume(component.RequestSheathe),
	})
	e.AddTransition(bladeTransition{
		From:  homeward,
		To:    component.ModeStandby,
		Guard: consume(component.RequestStandby),
	})
	e.AddTransition(bladeTransition{
		From:  homeward,
		To:    component.ModeLunging,
		Guard: consume(component.RequestLunge),
	})

	hit := func(ctx *component.BladeContext) bool { return ctx.HitDetected() }
	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeFlying),
		To:    component.ModeLodged,
		Guard: hit,
	})
	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeFlying),
		To:    component.ModeWaiting,
		Guard: func(ctx *component.BladeContext) bool { return ctx.Landed() },
	})
	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeFlying, component.ModeLodged),
		To:    component.ModeRecalling,
		Guard: consume(component.RequestRecall),
	})
	e.AddTransition(bladeTransition{
		From: fsm.ClassOf(component.ModeLodged),
		To:   component.ModeWaiting,
		Guard: func(ctx *component.BladeContext) bool {
			return !ctx.LodgedTargetAlive()
		},
	})

	e.AddTransition(bladeTransition{
		From:  fsm.ClassOf(component.ModeLunging),
		To:    component.ModeLodged,
		Guard: hit,
	})
	e.AddTransition(bladeTransition{
		From: fsm.ClassOf(component.ModeLunging),
		To:   component.ModeWaiting,
		Guard: func(ctx *component.BladeContext) bool {
			m, ok := e.Current().(*lungingMode)
			return ok && m.missed(ctx)
		},
	})

	// Interruptions resume exactly where the blade left off.
	e.AddTransition(bladeTransition{
		From: fsm.ClassOf(component.ModeInactive),
		To:   fsm.ToPrevious,
		Guard: func(ctx *component.BladeContext) bool {
			return ctx.OwnerAvailable() && ctx.Requests.Consume(component.RequestReactivate)
		},
	})
	e.AddTransition(bladeTransition{
		From: fsm.ClassOf(component.ModeRecovering),
		To:   fsm.ToPrevious,
		Guard: func(ctx *component.BladeContext) bool {
			return ctx.ProxyValid()
		},
	})

	return e
}

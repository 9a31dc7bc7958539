package system

import (
	"math"

	"github.com/milk9111/relicblade/ecs/component"
	"github.com/milk9111/relicblade/fsm"
)

// Blade modes. Each activation gets a fresh struct so timers and position
// samples never leak between visits; the one exception is a resume of the
// recorded previous instance after Inactive or Recovering.

type sheathedMode struct{}

func (sheathedMode) Kind() fsm.Kind { return component.ModeSheathed }
func (sheathedMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("sheathed")
	ox, oy := ctx.OwnerPosition()
	ctx.PlaceProxy(ox+ctx.Tuning.BackOffsetX, oy+ctx.Tuning.BackOffsetY)
}
func (sheathedMode) Exit(ctx *component.BladeContext) {}
func (sheathedMode) Update(ctx *component.BladeContext) {
	ox, oy := ctx.OwnerPosition()
	ctx.PlaceProxy(ox+ctx.Tuning.BackOffsetX, oy+ctx.Tuning.BackOffsetY)
}

type standbyMode struct {
	bob int
}

func (*standbyMode) Kind() fsm.Kind { return component.ModeStandby }
func (*standbyMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("hover")
}
func (*standbyMode) Exit(ctx *component.BladeContext) {}
func (m *standbyMode) Update(ctx *component.BladeContext) {
	m.bob++
	bobTicks := ctx.Tuning.HoverBobTicks
	if bobTicks <= 0 {
		bobTicks = 1
	}
	phase := 2 * math.Pi * float64(m.bob%bobTicks) / float64(bobTicks)

	ox, oy := ctx.OwnerPosition()
	tx := ox + ctx.Tuning.HoverOffsetX
	ty := oy + ctx.Tuning.HoverOffsetY + ctx.Tuning.HoverBobAmp*math.Sin(phase)

	px, py := ctx.ProxyPosition()
	ctx.SetProxyVelocity((tx-px)*ctx.Tuning.FollowRate, (ty-py)*ctx.Tuning.FollowRate)
}

type wieldedMode struct{}

func (wieldedMode) Kind() fsm.Kind { return component.ModeWielded }
func (wieldedMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("wielded")
}
func (wieldedMode) Exit(ctx *component.BladeContext) {}
func (wieldedMode) Update(ctx *component.BladeContext) {
	hx, hy := ctx.HandAnchor()
	ctx.PlaceProxy(hx, hy)
}

type attackingQuickMode struct {
	swing int
}

func (*attackingQuickMode) Kind() fsm.Kind { return component.ModeAttackingQuick }
func (m *attackingQuickMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("attack_quick")
	ctx.SetAttackDone(false)
	m.swing = ctx.Tuning.QuickSwingTicks
}
func (*attackingQuickMode) Exit(ctx *component.BladeContext) {}
func (m *attackingQuickMode) Update(ctx *component.BladeContext) {
	hx, hy := ctx.HandAnchor()
	ctx.PlaceProxy(hx, hy)
	m.swing--
	if m.swing <= 0 {
		// Swing finished; the melee pipeline owns damage, the graph only
		// needs the completion flag.
		ctx.SetAttackDone(true)
	}
}

type attackingHeavyMode struct {
	swing int
}

func (*attackingHeavyMode) Kind() fsm.Kind { return component.ModeAttackingHeavy }
func (m *attackingHeavyMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("attack_heavy")
	ctx.SetAttackDone(false)
	m.swing = ctx.Tuning.HeavySwingTicks
}
func (*attackingHeavyMode) Exit(ctx *component.BladeContext) {}
func (m *attackingHeavyMode) Update(ctx *component.BladeContext) {
	hx, hy := ctx.HandAnchor()
	ctx.PlaceProxy(hx, hy)
	m.swing--
	if m.swing <= 0 {
		ctx.SetAttackDone(true)
	}
}

type flyingMode struct{}

func (flyingMode) Kind() fsm.Kind { return component.ModeFlying }
func (flyingMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("spin")
	ax, ay := ctx.AimDirection()
	speed := ctx.Tuning.ThrowSpeed
	ctx.SetProxyVelocity(ax*speed, ay*speed-ctx.Tuning.ThrowLift*speed)
}
func (flyingMode) Exit(ctx *component.BladeContext) {}
func (flyingMode) Update(ctx *component.BladeContext) {
	// Ballistic: the physics space integrates the proxy.
}

type lodgedMode struct{}

func (lodgedMode) Kind() fsm.Kind { return component.ModeLodged }
func (lodgedMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("lodged")
	ctx.Lodge()
}
func (lodgedMode) Exit(ctx *component.BladeContext) {
	ctx.Unlodge()
}
func (lodgedMode) Update(ctx *component.BladeContext) {}

type waitingMode struct {
	idle int
}

func (*waitingMode) Kind() fsm.Kind { return component.ModeWaiting }
func (*waitingMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("rest")
	ctx.SetProxyVelocity(0, 0)
}
func (*waitingMode) Exit(ctx *component.BladeContext) {}
func (m *waitingMode) Update(ctx *component.BladeContext) {
	m.idle++
}

func (m *waitingMode) shouldReturn(ctx *component.BladeContext) bool {
	far := ctx.OwnerDistanceSq() > ctx.Tuning.WaitDistance*ctx.Tuning.WaitDistance
	return far || m.idle > ctx.Tuning.WaitIdleTicks
}

// arrival is the shared debounce used by the recalling and returning
// modes: after a grace period, the proxy counts as arrived once the
// squared displacement between consecutive samples stays under epsilon
// for N consecutive ticks. Single-tick jitter resets the streak.
type arrival struct {
	grace   int
	still   int
	sampled bool
	lastX   float64
	lastY   float64
}

func (a *arrival) reset(graceTicks int) {
	a.grace = graceTicks
	a.still = 0
	a.sampled = false
}

func (a *arrival) observe(ctx *component.BladeContext) bool {
	if a.grace > 0 {
		a.grace--
		return false
	}
	px, py := ctx.ProxyPosition()
	if !a.sampled {
		a.sampled = true
		a.lastX, a.lastY = px, py
		return false
	}
	dx := px - a.lastX
	dy := py - a.lastY
	a.lastX, a.lastY = px, py

	eps := ctx.Tuning.ArrivalEpsilon
	if dx*dx+dy*dy < eps*eps {
		a.still++
	} else {
		a.still = 0
	}
	return a.still >= ctx.Tuning.ArrivalStillTicks
}

// steerTo drives the proxy toward (tx, ty) at the given speed, easing in
// on the final approach so the arrival samples can settle.
func steerTo(ctx *component.BladeContext, tx, ty, speed float64) {
	px, py := ctx.ProxyPosition()
	dx := tx - px
	dy := ty - py
	dist := math.Hypot(dx, dy)
	if dist < 1e-6 {
		ctx.SetProxyVelocity(0, 0)
		return
	}
	if v := dist * 10; v < speed {
		speed = v
	}
	ctx.SetProxyVelocity(dx/dist*speed, dy/dist*speed)
}

type recallingMode struct {
	arrival
}

func (*recallingMode) Kind() fsm.Kind { return component.ModeRecalling }
func (m *recallingMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("recall")
	m.reset(ctx.Tuning.ArrivalGraceTicks)
}
func (*recallingMode) Exit(ctx *component.BladeContext) {}
func (m *recallingMode) Update(ctx *component.BladeContext) {
	hx, hy := ctx.HandAnchor()
	steerTo(ctx, hx, hy, ctx.Tuning.RecallSpeed)
	if m.observe(ctx) {
		ctx.Requests.Push(component.RequestStandby)
	}
}

type returningMode struct {
	arrival
}

func (*returningMode) Kind() fsm.Kind { return component.ModeReturning }
func (m *returningMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("return")
	m.reset(ctx.Tuning.ArrivalGraceTicks)
}
func (*returningMode) Exit(ctx *component.BladeContext) {}
func (m *returningMode) Update(ctx *component.BladeContext) {
	ox, oy := ctx.OwnerPosition()
	tx := ox + ctx.Tuning.HoverOffsetX
	ty := oy + ctx.Tuning.HoverOffsetY
	steerTo(ctx, tx, ty, ctx.Tuning.ReturnSpeed)
	if m.observe(ctx) {
		ctx.Requests.Push(component.RequestStandby)
	}
}

type lungingMode struct {
	elapsed int
}

func (*lungingMode) Kind() fsm.Kind { return component.ModeLunging }
func (*lungingMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("lunge")
	ax, ay := ctx.AimDirection()
	ctx.SetProxyVelocity(ax*ctx.Tuning.LungeSpeed, ay*ctx.Tuning.LungeSpeed)
}
func (*lungingMode) Exit(ctx *component.BladeContext) {}
func (m *lungingMode) Update(ctx *component.BladeContext) {
	m.elapsed++
}

func (m *lungingMode) missed(ctx *component.BladeContext) bool {
	return m.elapsed > ctx.Tuning.LungeMaxTicks
}

type inactiveMode struct{}

func (inactiveMode) Kind() fsm.Kind { return component.ModeInactive }
func (inactiveMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("inactive")
	ctx.SetProxyVelocity(0, 0)
}
func (inactiveMode) Exit(ctx *component.BladeContext)   {}
func (inactiveMode) Update(ctx *component.BladeContext) {}

type recoveringMode struct {
	repair int
}

func (*recoveringMode) Kind() fsm.Kind { return component.ModeRecovering }
func (m *recoveringMode) Enter(ctx *component.BladeContext) {
	ctx.ChangeAnimation("recovering")
	m.repair = ctx.Tuning.RepairTicks
}
func (*recoveringMode) Exit(ctx *component.BladeContext) {}
func (m *recoveringMode) Update(ctx *component.BladeContext) {
	m.repair--
	if m.repair <= 0 && !ctx.ProxyValid() {
		ctx.RepairProxy()
	}
}

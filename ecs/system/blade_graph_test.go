package system

import (
	"testing"

	"github.com/milk9111/relicblade/ecs/component"
	"github.com/milk9111/relicblade/fsm"
)

// bladeRig drives the full blade graph against fake collaborators. The
// rig never integrates velocity; tests that need the proxy to move set
// its position directly, which keeps the arrival math exact.
type bladeRig struct {
	t   *testing.T
	eng *component.BladeEngine
	ctx *component.BladeContext

	ownerX, ownerY float64
	ownerAvail     bool
	proxyX, proxyY float64
	proxyValid     bool
	velX, velY     float64
	hit            bool
	landed         bool
	lodged         bool
	lodgedAlive    bool
	attackDone     bool
	anim           string
	repairs        int
}

func newBladeRig(t *testing.T, tuning *component.BladeTuning) *bladeRig {
	t.Helper()
	r := &bladeRig{
		t:           t,
		eng:         NewBladeEngine(),
		ownerAvail:  true,
		proxyValid:  true,
		lodgedAlive: true,
	}
	r.ctx = &component.BladeContext{
		Tuning:   tuning,
		Requests: fsm.NewRequests(),

		OwnerPosition:  func() (float64, float64) { return r.ownerX, r.ownerY },
		OwnerAvailable: func() bool { return r.ownerAvail },
		HandAnchor: func() (float64, float64) {
			return r.ownerX + tuning.HandOffsetX, r.ownerY + tuning.HandOffsetY
		},
		AimDirection: func() (float64, float64) { return 1, 0 },

		ProxyPosition:    func() (float64, float64) { return r.proxyX, r.proxyY },
		SetProxyVelocity: func(x, y float64) { r.velX, r.velY = x, y },
		PlaceProxy:       func(x, y float64) { r.proxyX, r.proxyY = x, y },
		ProxyValid:       func() bool { return r.proxyValid },
		RepairProxy: func() {
			r.proxyValid = true
			r.repairs++
		},

		HitDetected:       func() bool { return r.hit },
		Landed:            func() bool { return r.landed },
		Lodge:             func() { r.lodged = true },
		Unlodge:           func() { r.lodged = false },
		LodgedTargetAlive: func() bool { return r.lodgedAlive },

		AttackDone:    func() bool { return r.attackDone },
		SetAttackDone: func(done bool) { r.attackDone = done },

		ChangeAnimation: func(name string) { r.anim = name },
	}
	if err := r.eng.Start(r.ctx, component.ModeSheathed); err != nil {
		t.Fatalf("start: %v", err)
	}
	return r
}

func (r *bladeRig) tick() {
	r.t.Helper()
	if err := r.eng.Tick(r.ctx); err != nil {
		r.t.Fatalf("tick: %v", err)
	}
}

func (r *bladeRig) push(req fsm.Request) {
	r.ctx.Requests.Push(req)
}

func (r *bladeRig) wantMode(kind fsm.Kind) {
	r.t.Helper()
	if got := r.eng.CurrentKind(); got != kind {
		r.t.Fatalf("mode = %s, want %s", component.ModeName(got), component.ModeName(kind))
	}
}

func TestBladeToggle(t *testing.T) {
	r := newBladeRig(t, component.DefaultBladeTuning())
	r.wantMode(component.ModeSheathed)

	r.push(component.RequestToggle)
	r.tick()
	r.wantMode(component.ModeStandby)
	if r.anim != "hover" {
		t.Fatalf("anim = %q, want hover", r.anim)
	}

	r.push(component.RequestToggle)
	r.tick()
	r.wantMode(component.ModeSheathed)
}

func TestBladeThrowLodgeRecall(t *testing.T) {
	tuning := component.DefaultBladeTuning()
	r := newBladeRig(t, tuning)

	r.push(component.RequestWield)
	r.tick()
	r.wantMode(component.ModeWielded)

	r.push(component.RequestThrow)
	r.tick()
	r.wantMode(component.ModeFlying)
	if r.velX != tuning.ThrowSpeed {
		t.Fatalf("throw velX = %v, want %v", r.velX, tuning.ThrowSpeed)
	}

	r.hit = true
	r.tick()
	r.wantMode(component.ModeLodged)
	if !r.lodged {
		t.Fatal("expected Lodge to have been called")
	}

	r.hit = false
	r.push(component.RequestRecall)
	r.tick()
	r.wantMode(component.ModeRecalling)
	if r.lodged {
		t.Fatal("expected Unlodge on leaving the lodged mode")
	}
}

func TestBladeAttackHandsBackThroughReturning(t *testing.T) {
	tuning := component.DefaultBladeTuning()
	tuning.QuickSwingTicks = 3

	r := newBladeRig(t, tuning)
	r.push(component.RequestToggle)
	r.tick()

	r.push(component.RequestAttackQuick)
	r.tick()
	r.wantMode(component.ModeAttackingQuick)
	if r.attackDone {
		t.Fatal("attack flag should be reset on swing start")
	}

	r.tick()
	r.tick()
	r.wantMode(component.ModeAttackingQuick)

	r.tick()
	r.wantMode(component.ModeReturning)
	if r.attackDone {
		t.Fatal("attack flag should be cleared by the transition action")
	}
}

// The proxy sits exactly on the hover target the whole time, so the
// debounce runs as: grace ticks, one priming sample, then the still
// streak. All offsets are zeroed to keep every sample identical.
func TestBladeArrivalDebounce(t *testing.T) {
	tuning := component.DefaultBladeTuning()
	tuning.QuickSwingTicks = 1
	tuning.ArrivalGraceTicks = 2
	tuning.ArrivalStillTicks = 2
	tuning.HoverOffsetX = 0
	tuning.HoverOffsetY = 0
	tuning.HoverBobAmp = 0
	tuning.HandOffsetX = 0
	tuning.HandOffsetY = 0
	tuning.BackOffsetX = 0
	tuning.BackOffsetY = 0

	r := newBladeRig(t, tuning)
	r.push(component.RequestToggle)
	r.tick() // standby
	r.push(component.RequestAttackQuick)
	r.tick() // attacking, swing = 1
	r.tick() // swing ends, hands back
	r.wantMode(component.ModeReturning)

	// grace (2) + priming sample (1) + still streak (2) = 5 ticks home.
	for i := 0; i < 4; i++ {
		r.tick()
		r.wantMode(component.ModeReturning)
	}
	r.tick()
	r.wantMode(component.ModeStandby)
}

func TestBladeArrivalJitterResetsStreak(t *testing.T) {
	tuning := component.DefaultBladeTuning()
	tuning.QuickSwingTicks = 1
	tuning.ArrivalGraceTicks = 0
	tuning.ArrivalStillTicks = 2
	tuning.HoverOffsetX = 0
	tuning.HoverOffsetY = 0
	tuning.HoverBobAmp = 0
	tuning.HandOffsetX = 0
	tuning.HandOffsetY = 0
	tuning.BackOffsetX = 0
	tuning.BackOffsetY = 0

	r := newBladeRig(t, tuning)
	r.push(component.RequestToggle)
	r.tick()
	r.push(component.RequestAttackQuick)
	r.tick()
	r.tick()
	r.wantMode(component.ModeReturning)

	r.tick() // priming sample at (0,0)
	r.tick() // still = 1
	r.wantMode(component.ModeReturning)

	// One jolt past epsilon drops the streak back to zero.
	r.proxyX = 5
	r.tick()
	r.wantMode(component.ModeReturning)

	r.tick() // holds at 5: still = 1
	r.wantMode(component.ModeReturning)
	r.tick() // still = 2, arrives
	r.wantMode(component.ModeStandby)
}

func TestBladeRecoveringPreemptsAndResumes(t *testing.T) {
	tuning := component.DefaultBladeTuning()
	tuning.RepairTicks = 2

	r := newBladeRig(t, tuning)
	r.push(component.RequestToggle)
	r.tick()
	r.wantMode(component.ModeStandby)
	inst := r.eng.Current()

	// Breakage wins over the pending wield request; the token survives.
	r.proxyValid = false
	r.push(component.RequestWield)
	r.tick()
	r.wantMode(component.ModeRecovering)
	if got := r.ctx.Requests.Pending(); len(got) != 1 || got[0] != component.RequestWield {
		t.Fatalf("pending = %v, want the wield token intact", got)
	}

	r.tick() // repair countdown
	r.tick() // repairs, then resumes
	r.wantMode(component.ModeStandby)
	if r.repairs != 1 {
		t.Fatalf("repairs = %d, want 1", r.repairs)
	}
	if r.eng.Current() != inst {
		t.Fatal("resume should reinstall the interrupted standby instance")
	}

	// The preserved token now lands.
	r.tick()
	r.wantMode(component.ModeWielded)
}

func TestBladeDeactivateReactivate(t *testing.T) {
	r := newBladeRig(t, component.DefaultBladeTuning())
	r.push(component.RequestToggle)
	r.tick()
	inst := r.eng.Current()

	r.push(component.RequestDeactivate)
	r.tick()
	r.wantMode(component.ModeInactive)

	r.push(component.RequestReactivate)
	r.tick()
	r.wantMode(component.ModeStandby)
	if r.eng.Current() != inst {
		t.Fatal("reactivation should resume the interrupted instance")
	}
}

func TestBladeReactivateWaitsForOwner(t *testing.T) {
	r := newBladeRig(t, component.DefaultBladeTuning())
	r.push(component.RequestToggle)
	r.tick()

	r.ownerAvail = false
	r.tick()
	r.wantMode(component.ModeInactive)

	// Reactivate must not be eaten while the owner is still gone.
	r.push(component.RequestReactivate)
	r.tick()
	r.wantMode(component.ModeInactive)
	if got := r.ctx.Requests.Pending(); len(got) != 1 {
		t.Fatalf("pending = %v, want the reactivate token intact", got)
	}

	r.ownerAvail = true
	r.tick()
	r.wantMode(component.ModeStandby)
}

func TestBladeWaitingDecision(t *testing.T) {
	// Defaults: pickup radius 64, return distance 320. A landed blade is
	// collected inside the first, comes home beyond the second, and rests
	// in between.
	cases := []struct {
		name   string
		proxyX float64
		want   fsm.Kind
	}{
		{"near_picked_up", 10, component.ModeStandby},
		{"mid_range_rests", 200, component.ModeWaiting},
		{"far_returns", 1000, component.ModeReturning},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newBladeRig(t, component.DefaultBladeTuning())
			r.push(component.RequestToggle)
			r.tick()
			r.push(component.RequestThrow)
			r.tick()
			r.wantMode(component.ModeFlying)

			r.landed = true
			r.tick()
			r.wantMode(component.ModeWaiting)

			r.landed = false
			r.proxyX = c.proxyX
			r.tick()
			r.wantMode(c.want)
		})
	}
}

func TestBladeWaitingIdleTimeout(t *testing.T) {
	tuning := component.DefaultBladeTuning()
	tuning.WaitIdleTicks = 3

	r := newBladeRig(t, tuning)
	r.push(component.RequestToggle)
	r.tick()
	r.push(component.RequestThrow)
	r.tick()

	r.landed = true
	r.tick()
	r.wantMode(component.ModeWaiting)
	r.landed = false

	// Mid-range: neither pickup nor distance fires, so the idle clock
	// decides. Ticks 1-3 rest; tick 4 exceeds the timeout.
	r.proxyX = 200
	for i := 0; i < 3; i++ {
		r.tick()
		r.wantMode(component.ModeWaiting)
	}
	r.tick()
	r.wantMode(component.ModeReturning)
}

func TestBladeLodgedTargetDestroyed(t *testing.T) {
	r := newBladeRig(t, component.DefaultBladeTuning())
	r.push(component.RequestToggle)
	r.tick()
	r.push(component.RequestThrow)
	r.tick()

	r.hit = true
	r.tick()
	r.wantMode(component.ModeLodged)

	r.hit = false
	r.lodgedAlive = false
	r.tick()
	r.wantMode(component.ModeWaiting)
	if r.lodged {
		t.Fatal("expected Unlodge when the target dies under the blade")
	}
}

func TestBladeOwnerLossInterruptsFlight(t *testing.T) {
	r := newBladeRig(t, component.DefaultBladeTuning())
	r.push(component.RequestToggle)
	r.tick()
	r.push(component.RequestThrow)
	r.tick()
	r.wantMode(component.ModeFlying)

	r.ownerAvail = false
	r.tick()
	r.wantMode(component.ModeInactive)

	r.ownerAvail = true
	r.push(component.RequestReactivate)
	r.tick()
	r.wantMode(component.ModeFlying)
}

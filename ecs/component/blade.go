package component

import "github.com/milk9111/relicblade/fsm"

// Blade mode kinds. The order is load-bearing: fsm.Class packs kinds into
// a bitmask by value.
const (
	ModeSheathed fsm.Kind = iota
	ModeStandby
	ModeWielded
	ModeRecalling
	ModeReturning
	ModeWaiting
	ModeAttackingQuick
	ModeAttackingHeavy
	ModeLunging
	ModeFlying
	ModeLodged
	ModeInactive
	ModeRecovering
)

var modeNames = map[fsm.Kind]string{
	ModeSheathed:       "sheathed",
	ModeStandby:        "standby",
	ModeWielded:        "wielded",
	ModeRecalling:      "recalling",
	ModeReturning:      "returning",
	ModeWaiting:        "waiting",
	ModeAttackingQuick: "attacking_quick",
	ModeAttackingHeavy: "attacking_heavy",
	ModeLunging:        "lunging",
	ModeFlying:         "flying",
	ModeLodged:         "lodged",
	ModeInactive:       "inactive",
	ModeRecovering:     "recovering",
}

// ModeName returns a display name for a blade mode kind.
func ModeName(k fsm.Kind) string {
	if name, ok := modeNames[k]; ok {
		return name
	}
	return "unknown"
}

// Request tokens pushed by the input layer and by the modes themselves.
const (
	RequestToggle      fsm.Request = "toggle"
	RequestWield       fsm.Request = "wield"
	RequestSheathe     fsm.Request = "sheathe"
	RequestThrow       fsm.Request = "throw"
	RequestRecall      fsm.Request = "recall"
	RequestLunge       fsm.Request = "lunge"
	RequestStandby     fsm.Request = "standby"
	RequestAttackQuick fsm.Request = "attack_quick"
	RequestAttackHeavy fsm.Request = "attack_heavy"
	RequestDeactivate  fsm.Request = "deactivate"
	RequestReactivate  fsm.Request = "reactivate"
)

// BladeMode is the blade's concrete mode interface.
type BladeMode = fsm.Mode[*BladeContext]

// BladeEngine drives the blade's mode graph.
type BladeEngine = fsm.Engine[*BladeContext]

// BladeContext provides controlled access to the owner, the physical
// proxy, and the request buffer for one engine tick. It intentionally
// uses callbacks so the modes stay decoupled from the ECS and can be
// exercised with fakes.
type BladeContext struct {
	Tuning   *BladeTuning
	Requests *fsm.Requests

	OwnerPosition  func() (x, y float64)
	OwnerAvailable func() bool
	HandAnchor     func() (x, y float64)
	AimDirection   func() (x, y float64)

	ProxyPosition    func() (x, y float64)
	SetProxyVelocity func(x, y float64)
	PlaceProxy       func(x, y float64)
	ProxyValid       func() bool
	RepairProxy      func()

	HitDetected       func() bool
	Landed            func() bool
	Lodge             func()
	Unlodge           func()
	LodgedTargetAlive func() bool

	AttackDone    func() bool
	SetAttackDone func(done bool)

	ChangeAnimation func(name string)
}

// OwnerDistance returns the distance between proxy and owner, squared.
func (ctx *BladeContext) OwnerDistanceSq() float64 {
	ox, oy := ctx.OwnerPosition()
	px, py := ctx.ProxyPosition()
	dx := px - ox
	dy := py - oy
	return dx*dx + dy*dy
}

// TraceEntry records one mode change for the debug HUD.
type TraceEntry struct {
	Tick int
	From fsm.Kind
	To   fsm.Kind
}

const traceCap = 64

// Blade links the weapon actor's engine, request buffer, tuning, and the
// external signals the graph's level-triggered guards poll.
type Blade struct {
	Engine   *BladeEngine
	Requests *fsm.Requests
	Tuning   *BladeTuning

	// External collaborator signals, polled by the graph's guards.
	OwnerAvailable bool
	ProxyValid     bool
	AttackDone     bool

	// LodgedIn is the entity the blade is stuck in, when lodged.
	LodgedIn uint64

	Animation string
	Trace     []TraceEntry
}

// PushTrace appends a mode change, dropping the oldest past capacity.
func (b *Blade) PushTrace(tick int, from, to fsm.Kind) {
	b.Trace = append(b.Trace, TraceEntry{Tick: tick, From: from, To: to})
	if len(b.Trace) > traceCap {
		b.Trace = b.Trace[len(b.Trace)-traceCap:]
	}
}

var BladeComponent = NewComponent[Blade]()

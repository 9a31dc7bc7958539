package fsm

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPrevious means a ToPrevious transition fired before any mode
	// was ever replaced. A well-formed graph cannot reach this.
	ErrNoPrevious = errors.New("fsm: resume-previous fired with no previous mode")
	// ErrNotStarted means Tick ran before Start installed an initial mode.
	ErrNotStarted = errors.New("fsm: machine not started")
)

// Engine owns the single active mode instance and the transition table,
// and remembers the previously active instance so a resume-previous edge
// can reinstall it. It has exactly one caller, the owning actor's per-tick
// hook; Tick is not reentrant.
type Engine[T any] struct {
	factories map[Kind]Factory[T]

	// Universal transitions (From == Any) are evaluated before specific
	// ones; each slice keeps registration order.
	universal []Transition[T]
	specific  []Transition[T]

	current  Mode[T]
	previous Mode[T]
	disposed bool

	// onChange, if set, runs after every completed swap with the old and
	// new kinds. Used by the owning actor for display/transform updates.
	onChange func(from, to Kind)
}

func NewEngine[T any]() *Engine[T] {
	return &Engine[T]{factories: make(map[Kind]Factory[T])}
}

// Register binds a destination kind to its constructor. Every kind named
// by a transition's To must be registered before AddTransition wires it.
func (e *Engine[T]) Register(kind Kind, build Factory[T]) {
	if build == nil {
		panic(fmt.Sprintf("fsm: nil factory for kind %d", kind))
	}
	e.factories[kind] = build
}

// AddTransition appends a guarded edge. A destination kind with no
// registered factory is a wiring error and fails immediately rather than
// at fire time.
func (e *Engine[T]) AddTransition(t Transition[T]) {
	if t.Guard == nil {
		panic("fsm: transition without guard")
	}
	if t.To != ToPrevious {
		if _, ok := e.factories[t.To]; !ok {
			panic(fmt.Sprintf("fsm: transition to unregistered kind %d", t.To))
		}
	}
	if t.From == Any {
		e.universal = append(e.universal, t)
		return
	}
	e.specific = append(e.specific, t)
}

// OnChange installs the swap notification hook.
func (e *Engine[T]) OnChange(fn func(from, to Kind)) {
	e.onChange = fn
}

// Start installs the initial mode and runs its Enter hook. The initial
// instance is also recorded as the previous mode, so a resume-previous
// edge is well-defined from the first tick on.
func (e *Engine[T]) Start(ctx T, kind Kind) error {
	build, ok := e.factories[kind]
	if !ok {
		return fmt.Errorf("fsm: start: no factory for kind %d", kind)
	}
	m := build()
	e.current = m
	e.previous = m
	m.Enter(ctx)
	return nil
}

// Tick advances the machine one step: the active mode's Update, then
// transition evaluation. At most one transition fires per tick, even when
// several guards are simultaneously true. Once Dispose has been called,
// Tick returns immediately without touching the current mode.
func (e *Engine[T]) Tick(ctx T) error {
	if e.disposed {
		return nil
	}
	if e.current == nil {
		return ErrNotStarted
	}

	e.current.Update(ctx)

	if t, ok := e.match(ctx); ok {
		return e.fire(ctx, t)
	}
	return nil
}

// match scans universal transitions first, then specific ones in
// registration order, and returns the first whose source class contains
// the current kind and whose guard holds. A transition targeting the
// already-active kind is skipped before its guard runs, so a universal
// edge with a persistently true guard neither churns its own destination
// nor eats request tokens while parked there.
func (e *Engine[T]) match(ctx T) (Transition[T], bool) {
	kind := e.current.Kind()
	for _, t := range e.universal {
		if t.To == kind {
			continue
		}
		if t.Guard(ctx) {
			return t, true
		}
	}
	for _, t := range e.specific {
		if !t.From.Has(kind) || t.To == kind {
			continue
		}
		if t.Guard(ctx) {
			return t, true
		}
	}
	return Transition[T]{}, false
}

// fire runs the transition's action, then swaps modes: old Exit, record
// previous, install destination, new Enter.
func (e *Engine[T]) fire(ctx T, t Transition[T]) error {
	var next Mode[T]
	if t.To == ToPrevious {
		if e.previous == nil || e.previous == e.current {
			return ErrNoPrevious
		}
		next = e.previous
	} else {
		next = e.factories[t.To]()
	}

	if t.Action != nil {
		t.Action(ctx)
	}

	from := e.current.Kind()
	e.current.Exit(ctx)
	e.previous = e.current
	e.current = next
	next.Enter(ctx)

	if e.onChange != nil {
		e.onChange(from, next.Kind())
	}
	return nil
}

// Dispose sets the deactivation latch. There is no reset: a disposed
// engine never runs another hook or swap.
func (e *Engine[T]) Dispose() {
	e.disposed = true
}

// Disposed reports whether the latch is set.
func (e *Engine[T]) Disposed() bool {
	return e.disposed
}

// Current returns the active mode instance.
func (e *Engine[T]) Current() Mode[T] {
	return e.current
}

// CurrentKind returns the active mode's kind, or KindNone before Start.
func (e *Engine[T]) CurrentKind() Kind {
	if e.current == nil {
		return KindNone
	}
	return e.current.Kind()
}

// Previous returns the last-replaced mode instance.
func (e *Engine[T]) Previous() Mode[T] {
	return e.previous
}

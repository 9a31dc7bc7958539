package fsm

// ToPrevious is the virtual destination meaning "reinstall the last active
// mode instance" instead of constructing a new one.
const ToPrevious = KindNone

// Guard is a predicate over the machine's context. Guards must not mutate
// shared state, with one sanctioned exception: consuming request tokens,
// which is the designed side channel for edge triggering.
type Guard[T any] func(ctx T) bool

// Action is a side effect executed exactly once, before the mode swap,
// when its transition fires.
type Action[T any] func(ctx T)

// Transition is an immutable guarded edge between mode kinds. Transitions
// registered with From == Any are evaluated before all specific
// transitions; within each group, registration order decides ties.
type Transition[T any] struct {
	From   Class
	To     Kind
	Guard  Guard[T]
	Action Action[T]
}

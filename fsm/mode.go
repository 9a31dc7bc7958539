package fsm

// Kind identifies a mode variant.
type Kind int

const KindNone Kind = -1

// Class is a set of kinds a transition may originate from. Sets replace
// supertype matching: a transition registered against a class fires for
// every kind the class contains.
type Class uint64

// Any matches every kind.
const Any = ^Class(0)

// ClassOf builds a class containing exactly the given kinds.
func ClassOf(kinds ...Kind) Class {
	var c Class
	for _, k := range kinds {
		c |= 1 << uint(k)
	}
	return c
}

// Has reports whether the class contains k.
func (c Class) Has(k Kind) bool {
	if k < 0 {
		return false
	}
	return c&(1<<uint(k)) != 0
}

// Mode is one node of the machine. A fresh instance is built on every
// activation so no state leaks between visits; activation-scoped fields
// (timers, sampled positions) live on the concrete struct.
//
// Enter runs exactly once per activation, before any Update for that
// activation. Exit runs exactly once, after the last Update, before the
// next mode's Enter.
type Mode[T any] interface {
	Kind() Kind
	Enter(ctx T)
	Exit(ctx T)
	Update(ctx T)
}

// Factory constructs a fresh instance of one mode variant.
type Factory[T any] func() Mode[T]

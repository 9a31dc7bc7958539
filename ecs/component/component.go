package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID is a process-unique table key. Handles are created once at
// package init, so ids are stable for the program's lifetime.
type ComponentID uint32

var nextComponentID atomic.Uint32

// Handle is the typed key for one component table.
type Handle[T any] struct {
	id ComponentID
}

func NewComponent[T any]() Handle[T] {
	return Handle[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (h Handle[T]) ID() ComponentID {
	return h.id
}

func (h Handle[T]) Valid() bool {
	return h.id != 0
}

package ecs

import "github.com/milk9111/relicblade/ecs/component"

// Typed sugar over the world's any-valued tables.

func Add[T any](w *World, e Entity, handle component.Handle[T], value T) error {
	return w.setComponent(e, handle.ID(), value)
}

func Remove[T any](w *World, e Entity, handle component.Handle[T]) bool {
	return w.removeComponent(e, handle.ID())
}

func Has[T any](w *World, e Entity, handle component.Handle[T]) bool {
	return w.hasComponent(e, handle.ID())
}

func Get[T any](w *World, e Entity, handle component.Handle[T]) (T, bool) {
	var zero T
	value, ok := w.getComponent(e, handle.ID())
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// ForEach visits every entity holding the component, passing a pointer so
// callers can mutate in place; value-stored components are written back
// after the callback.
func ForEach[T any](w *World, handle component.Handle[T], fn func(e Entity, v *T)) {
	for _, e := range w.Query(handle.ID()) {
		value, ok := w.getComponent(e, handle.ID())
		if !ok {
			continue
		}
		if p, ok := value.(*T); ok {
			fn(e, p)
			continue
		}
		if v, ok := value.(T); ok {
			fn(e, &v)
			_ = w.setComponent(e, handle.ID(), v)
		}
	}
}

package ecs

import "github.com/milk9111/relicblade/ecs/component"

// System updates a world once per fixed tick. An error aborts the frame
// and is surfaced by the game loop; systems must not swallow mode-engine
// failures.
type System interface {
	Update(w *World) error
}

// World owns entities, component tables, and system order. It is confined
// to the game-loop goroutine; nothing here locks.
type World struct {
	entities entityStore
	tables   map[component.ComponentID]*sparseSet
	systems  []System

	physics *PhysicsWorld
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{tables: make(map[component.ComponentID]*sparseSet)}
}

// CreateEntity allocates a new entity handle.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity kills an entity and drops all of its components.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, table := range w.tables {
		table.remove(e.id())
	}
	return true
}

// IsAlive reports whether a handle is still valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func (w *World) Entities() []Entity {
	return w.entities.alive()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once, stopping at the first error.
func (w *World) Update() error {
	for _, s := range w.systems {
		if err := s.Update(w); err != nil {
			return err
		}
	}
	return nil
}

// SetPhysics attaches the chipmunk wrapper to this world.
func (w *World) SetPhysics(pw *PhysicsWorld) {
	w.physics = pw
}

// Physics returns the attached physics world, if any.
func (w *World) Physics() *PhysicsWorld {
	return w.physics
}

func (w *World) table(id component.ComponentID) *sparseSet {
	t, ok := w.tables[id]
	if !ok {
		t = &sparseSet{}
		w.tables[id] = t
	}
	return t
}

func (w *World) setComponent(e Entity, id component.ComponentID, v any) error {
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	w.table(id).set(e.id(), v)
	return nil
}

func (w *World) getComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.entities.isAlive(e) {
		return nil, false
	}
	t, ok := w.tables[id]
	if !ok {
		return nil, false
	}
	return t.get(e.id())
}

func (w *World) hasComponent(e Entity, id component.ComponentID) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	t, ok := w.tables[id]
	return ok && t.has(e.id())
}

func (w *World) removeComponent(e Entity, id component.ComponentID) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	t, ok := w.tables[id]
	if !ok {
		return false
	}
	return t.remove(e.id())
}

// Query returns every live entity holding all of the given components.
// Iteration drives off the smallest table.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if len(ids) == 0 {
		return nil
	}
	smallest := w.tables[ids[0]]
	for _, id := range ids[1:] {
		t := w.tables[id]
		if t.len() < smallest.len() {
			smallest = t
		}
	}
	if smallest.len() == 0 {
		return nil
	}

	out := make([]Entity, 0, smallest.len())
outer:
	for _, eid := range smallest.denseEntities {
		for _, id := range ids {
			if !w.tables[id].has(eid) {
				continue outer
			}
		}
		e := makeEntity(eid, w.entities.gens[eid-1])
		if w.entities.isAlive(e) {
			out = append(out, e)
		}
	}
	return out
}

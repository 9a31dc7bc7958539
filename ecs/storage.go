package ecs

// entityStore tracks entity generations and recycled ids.
type entityStore struct {
	nextID entityID
	gens   []generation
	free   []entityID
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.nextID++
		id = s.nextID
		for int(id) > len(s.gens) {
			s.gens = append(s.gens, 0)
		}
	}
	return makeEntity(id, s.gens[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	if s.gens[id-1] != e.generation() {
		return false
	}
	s.gens[id-1]++
	s.free = append(s.free, id)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	return s.gens[id-1] == e.generation()
}

func (s *entityStore) alive() []Entity {
	out := make([]Entity, 0, int(s.nextID))
	freeSet := make(map[entityID]struct{}, len(s.free))
	for _, id := range s.free {
		freeSet[id] = struct{}{}
	}
	for id := entityID(1); id <= s.nextID; id++ {
		if _, dead := freeSet[id]; dead {
			continue
		}
		out = append(out, makeEntity(id, s.gens[id-1]))
	}
	return out
}

package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/relicblade/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
			}
		})
	}
}

func TestWorldGenerationReuse(t *testing.T) {
	w := NewWorld()

	e1 := w.CreateEntity()
	if !w.DestroyEntity(e1) {
		t.Fatalf("destroy failed")
	}

	e2 := w.CreateEntity()
	if e1 == e2 {
		t.Fatalf("recycled slot should carry a new generation")
	}
	if w.IsAlive(e1) {
		t.Fatalf("stale handle should not pass IsAlive")
	}
	if !w.IsAlive(e2) {
		t.Fatalf("fresh handle should be alive")
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	hInt := component.NewComponent[int]()
	hStr := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, hInt, 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, hInt)
				if !ok || v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, hInt) },
		},
		{
			name: "add_str_to_both",
			setup: func() error {
				if err := Add(w, e1, hStr, "a"); err != nil {
					return err
				}
				return Add(w, e2, hStr, "b")
			},
			check: func(t *testing.T) {
				if !Has(w, e1, hStr) || !Has(w, e2, hStr) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, hStr) && Remove(w, e2, hStr) },
		},
		{
			name:  "overwrite_keeps_latest",
			setup: func() error { return Add(w, e1, hInt, 1) },
			check: func(t *testing.T) {
				if err := Add(w, e1, hInt, 2); err != nil {
					t.Fatalf("overwrite failed: %v", err)
				}
				v, _ := Get(w, e1, hInt)
				if v != 2 {
					t.Fatalf("expected 2 after overwrite, got %v", v)
				}
			},
			teardown: func() bool { return Remove(w, e1, hInt) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestWorldAddToDeadEntity(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e := w.CreateEntity()
	w.DestroyEntity(e)

	if err := Add(w, e, h, 1); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	if err := Add(w, e1, h, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Add(w, e3, h, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	seen := make(map[Entity]int)
	ForEach(w, h, func(e Entity, v *int) { seen[e] = *v })

	if len(seen) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(seen))
	}
	if seen[e1] != 1 || seen[e3] != 3 {
		t.Fatalf("unexpected values: %v", seen)
	}
	if _, ok := seen[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
}

func TestForEachMutation(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e := w.CreateEntity()
	if err := Add(w, e, h, 5); err != nil {
		t.Fatal(err)
	}

	ForEach(w, h, func(_ Entity, v *int) { *v = 9 })

	got, _ := Get(w, e, h)
	if got != 9 {
		t.Fatalf("mutation through ForEach pointer lost, got %d", got)
	}
}

func TestQueryIntersection(t *testing.T) {
	w := NewWorld()

	ka := component.NewComponent[int]()
	kb := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	if err := Add(w, e1, ka, 1); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, ka, 2); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, kb, "x"); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e3, kb, "y"); err != nil {
		t.Fatal(err)
	}

	got := w.Query(ka.ID(), kb.ID())
	if len(got) != 1 || got[0] != e2 {
		t.Fatalf("expected only e2, got %v", got)
	}
}

func TestQueryIgnoresDeadEntities(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponent[int]()

	e := w.CreateEntity()
	if err := Add(w, e, ka, 1); err != nil {
		t.Fatal(err)
	}
	if !w.DestroyEntity(e) {
		t.Fatal("failed to destroy entity")
	}

	if got := w.Query(ka.ID()); len(got) != 0 {
		t.Fatalf("expected empty result after destroy, got %v", got)
	}
}

type failingSystem struct{ err error }

func (s failingSystem) Update(_ *World) error { return s.err }

type countingSystem struct{ calls int }

func (s *countingSystem) Update(_ *World) error {
	s.calls++
	return nil
}

func TestUpdateStopsAtFirstError(t *testing.T) {
	w := NewWorld()

	before := &countingSystem{}
	after := &countingSystem{}
	boom := errors.New("boom")

	w.AddSystem(before)
	w.AddSystem(failingSystem{err: boom})
	w.AddSystem(after)

	if err := w.Update(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if before.calls != 1 {
		t.Fatalf("system before failure should have run once, ran %d", before.calls)
	}
	if after.calls != 0 {
		t.Fatalf("system after failure should not have run, ran %d", after.calls)
	}
}

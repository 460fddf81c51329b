package ecs

import "testing"

func TestComponentSetContainsAllIgnoresOrder(t *testing.T) {
	a := newComponentSet(3, 1, 2)
	b := newComponentSet(2, 1)

	if !a.containsAll(b) {
		t.Errorf("expected %v to contain %v regardless of insertion order", a, b)
	}
	if a.containsAll(newComponentSet(1, 2, 9)) {
		t.Errorf("containsAll should fail when a required id is missing")
	}
}

func TestComponentSetDedupsOnConstruction(t *testing.T) {
	s := newComponentSet(5, 5, 1, 1, 1)
	if len(s) != 2 {
		t.Fatalf("expected deduped set of length 2, got %v", s)
	}
}

func TestArchetypeForSetReusesExistingArchetype(t *testing.T) {
	w := NewWorld()
	pos := ComponentIDOf[Position]()
	vel := ComponentIDOf[Velocity]()

	a := w.archetypeForSet(newComponentSet(pos, vel))
	b := w.archetypeForSet(newComponentSet(vel, pos))

	if a.id != b.id {
		t.Errorf("same component set in different orders produced different archetypes: %v vs %v", a.id, b.id)
	}

	c := w.archetypeForSet(newComponentSet(pos))
	if c.id == a.id {
		t.Errorf("a strict subset should not reuse the superset's archetype")
	}
}

func TestTableSwapRemoveReportsMovedEntity(t *testing.T) {
	w := NewWorld()
	set := newComponentSet(ComponentIDOf[Position]())
	arch := w.archetypeForSet(set)

	e1 := Entity{id: 1, generation: 0}
	e2 := Entity{id: 2, generation: 0}
	e3 := Entity{id: 3, generation: 0}
	arch.appendEntity(e1)
	arch.appendEntity(e2)
	arch.appendEntity(e3)

	moved, didMove := arch.swapRemove(0)
	if !didMove || moved != e3 {
		t.Errorf("swapRemove(0) moved = %v, didMove = %v, want e3/true", moved, didMove)
	}
	if arch.Length() != 2 {
		t.Errorf("Length after swapRemove = %d, want 2", arch.Length())
	}

	_, didMove = arch.swapRemove(arch.Length() - 1)
	if didMove {
		t.Errorf("removing the last row should not report a move")
	}
}

func TestInsertRecordsAddEdgeForReuse(t *testing.T) {
	w := NewWorld()
	e1 := w.Spawn()
	e2 := w.Spawn()

	if err := Insert(w, e1, Position{X: 1}); err != nil {
		t.Fatalf("Insert e1 failed: %v", err)
	}
	empty := w.archetypeForSet(nil)
	posID := ComponentIDOf[Position]()
	target, ok := empty.getAddTarget(posID)
	if !ok {
		t.Fatalf("expected the empty archetype to record an add edge for Position after the first Insert")
	}

	if err := Insert(w, e2, Position{X: 2}); err != nil {
		t.Fatalf("Insert e2 failed: %v", err)
	}
	loc, _ := w.entities.locate(e2)
	if loc.archetype != target {
		t.Errorf("second Insert along the same edge landed in archetype %v, want the cached target %v", loc.archetype, target)
	}
}

func TestRemoveRecordsRemoveEdgeForReuse(t *testing.T) {
	w := NewWorld()
	e1 := w.Spawn()
	e2 := w.Spawn()
	Insert(w, e1, Position{X: 1})
	Insert(w, e2, Position{X: 2})
	loc, _ := w.entities.locate(e1)
	withPos := w.archetypes[loc.archetype]

	if err := Remove[Position](w, e1); err != nil {
		t.Fatalf("Remove e1 failed: %v", err)
	}
	posID := ComponentIDOf[Position]()
	target, ok := withPos.getRemoveTarget(posID)
	if !ok {
		t.Fatalf("expected the Position archetype to record a remove edge after the first Remove")
	}

	if err := Remove[Position](w, e2); err != nil {
		t.Fatalf("Remove e2 failed: %v", err)
	}
	loc2, _ := w.entities.locate(e2)
	if loc2.archetype != target {
		t.Errorf("second Remove along the same edge landed in archetype %v, want the cached target %v", loc2.archetype, target)
	}
}

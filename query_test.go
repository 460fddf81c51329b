package ecs

import "testing"

// Test component types shared across this package's test files, the same
// reuse-across-files pattern the teacher uses for Position/Velocity/Health.
type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Health struct {
	Current, Max int
}

type Name struct {
	Value string
}

func TestQuery1MatchesOnlyEntitiesWithComponent(t *testing.T) {
	w := NewWorld()

	withPos := w.Spawn()
	Insert(w, withPos, Position{X: 1})

	withoutPos := w.Spawn()
	Insert(w, withoutPos, Velocity{X: 2})

	q := NewQuery1[Position]()
	count := 0
	for e, pos := range q.Iter(w) {
		count++
		if e != withPos {
			t.Errorf("matched unexpected entity %v", e)
		}
		if pos.X != 1 {
			t.Errorf("pos.X = %v, want 1", pos.X)
		}
	}
	if count != 1 {
		t.Errorf("matched %d entities, want 1", count)
	}
}

func TestQuery2MatchesBothComponents(t *testing.T) {
	w := NewWorld()

	both := w.Spawn()
	Insert(w, both, Position{X: 1, Y: 2})
	Insert(w, both, Velocity{X: 3, Y: 4})

	onlyPos := w.Spawn()
	Insert(w, onlyPos, Position{})

	q := NewQuery2[Position, Velocity]()
	if got := q.Count(w); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}

	for e, row := range q.Iter(w) {
		if e != both {
			t.Errorf("matched unexpected entity %v", e)
		}
		row.A.X += row.B.X
		row.A.Y += row.B.Y
	}

	pos, err := Get[Position](w, both)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if pos.X != 4 || pos.Y != 6 {
		t.Errorf("Position after update = {%v, %v}, want {4, 6}", pos.X, pos.Y)
	}
}

func TestQueryWithoutExcludes(t *testing.T) {
	w := NewWorld()

	alive := w.Spawn()
	Insert(w, alive, Position{})

	dead := w.Spawn()
	Insert(w, dead, Position{})
	Insert(w, dead, Health{Current: 0})

	q := NewQuery1[Position]().Without(ComponentIDOf[Health]())
	if got := q.Count(w); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
	for e := range q.Iter(w) {
		if e != alive {
			t.Errorf("matched excluded entity %v", e)
		}
	}
}

func TestQueryPicksUpArchetypesCreatedAfterConstruction(t *testing.T) {
	w := NewWorld()
	q := NewQuery1[Position]()

	if got := q.Count(w); got != 0 {
		t.Fatalf("Count before any spawn = %d, want 0", got)
	}

	e := w.Spawn()
	Insert(w, e, Position{X: 9})
	Insert(w, e, Velocity{}) // forces a brand new archetype

	if got := q.Count(w); got != 1 {
		t.Errorf("Count after late archetype creation = %d, want 1", got)
	}
}

func TestQuery3And4Match(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	Insert(w, e, Position{})
	Insert(w, e, Velocity{})
	Insert(w, e, Health{})
	Insert(w, e, Name{Value: "hero"})

	if NewQuery3[Position, Velocity, Health]().Count(w) != 1 {
		t.Error("Query3 did not match")
	}
	if NewQuery4[Position, Velocity, Health, Name]().Count(w) != 1 {
		t.Error("Query4 did not match")
	}
}

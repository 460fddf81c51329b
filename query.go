package ecs

import "iter"

// queryState holds the component-set filters and incremental archetype
// cache shared by every concrete QueryN. New archetypes created after a
// query's last run are picked up lazily on the next Iter call, the same
// incremental-matching idea as the teacher's Cursor.Initialize, but here
// the cache survives across calls instead of being rebuilt every time.
type queryState struct {
	required  ComponentSet
	forbidden ComponentSet
	addedOf   ComponentSet
	changedOf ComponentSet

	matched     []*archetypeTable
	matchedThru int
	lastRun     Tick
}

func newQueryState(required ComponentSet) *queryState {
	return &queryState{required: required}
}

func (q *queryState) withoutIDs(ids ...ComponentID) {
	q.forbidden = newComponentSet(append(append(ComponentSet(nil), q.forbidden...), ids...)...)
}

func (q *queryState) addedIDs(ids ...ComponentID) {
	q.addedOf = newComponentSet(append(append(ComponentSet(nil), q.addedOf...), ids...)...)
}

func (q *queryState) changedIDs(ids ...ComponentID) {
	q.changedOf = newComponentSet(append(append(ComponentSet(nil), q.changedOf...), ids...)...)
}

func (q *queryState) matches(set ComponentSet) bool {
	return set.containsAll(q.required) && set.containsNone(q.forbidden)
}

// refresh scans only the archetypes created since the last call, mirroring
// the teacher's archetype-registry append-only growth.
func (q *queryState) refresh(w *World) {
	for i := q.matchedThru; i < len(w.archetypes); i++ {
		arch := w.archetypes[i]
		if arch == nil {
			continue
		}
		if q.matches(arch.set) {
			q.matched = append(q.matched, arch)
		}
	}
	q.matchedThru = len(w.archetypes)
}

// rowVisible applies the Added/Changed row filters, if any were requested.
func (q *queryState) rowVisible(arch *archetypeTable) func(row int) bool {
	if len(q.addedOf) == 0 && len(q.changedOf) == 0 {
		return func(int) bool { return true }
	}
	since := q.lastRun
	return func(row int) bool {
		for _, id := range q.addedOf {
			if col, ok := arch.columns[id]; ok && newerThan(col.addedTick(row), since) {
				return true
			}
		}
		for _, id := range q.changedOf {
			if col, ok := arch.columns[id]; ok && newerThan(col.changedTick(row), since) {
				return true
			}
		}
		return len(q.addedOf) == 0 && len(q.changedOf) == 0
	}
}

func (q *queryState) finish(w *World) {
	q.lastRun = w.tick
}

func colOf[T any](arch *archetypeTable) *reflectColumn {
	return arch.columns[ComponentIDOf[T]()].(*reflectColumn)
}

func ptrAt[T any](c *reflectColumn, row int) *T {
	return c.at(row).Interface().(*T)
}

// Row2 bundles two component pointers for one matched entity; range-over-
// func iteration in Go only carries two loop values, so queries over more
// than one component type yield (Entity, RowN) instead of (Entity, *A, *B, ...).
type Row2[A, B any] struct {
	A *A
	B *B
}

// Row3 bundles three component pointers, see Row2.
type Row3[A, B, C any] struct {
	A *A
	B *B
	C *C
}

// Row4 bundles four component pointers, see Row2.
type Row4[A, B, C, D any] struct {
	A *A
	B *B
	C *C
	D *D
}

// Query1 matches every entity carrying component A, plus whatever With/
// Without/Added/Changed filters were layered on with the builder methods.
type Query1[A any] struct{ state *queryState }

// NewQuery1 builds a query over entities that carry A.
func NewQuery1[A any]() Query1[A] {
	return Query1[A]{state: newQueryState(newComponentSet(ComponentIDOf[A]()))}
}

// With additionally requires the listed component types to be present.
func (q Query1[A]) With(ids ...ComponentID) Query1[A] {
	q.state.required = newComponentSet(append(append(ComponentSet(nil), q.state.required...), ids...)...)
	return q
}

// Without excludes entities carrying any of the listed component types.
func (q Query1[A]) Without(ids ...ComponentID) Query1[A] {
	q.state.withoutIDs(ids...)
	return q
}

// Added restricts matches to rows where one of the given components was
// added since this query's last Iter or Count call.
func (q Query1[A]) Added(ids ...ComponentID) Query1[A] {
	q.state.addedIDs(ids...)
	return q
}

// Changed restricts matches to rows where one of the given components
// changed (including having just been added) since this query's last Iter
// or Count call.
func (q Query1[A]) Changed(ids ...ComponentID) Query1[A] {
	q.state.changedIDs(ids...)
	return q
}

// Iter walks every currently-matching entity, yielding its A component by
// pointer so a system can mutate it in place.
func (q Query1[A]) Iter(w *World) iter.Seq2[Entity, *A] {
	q.state.refresh(w)
	return func(yield func(Entity, *A) bool) {
		for _, arch := range q.state.matched {
			visible := q.state.rowVisible(arch)
			col := colOf[A](arch)
			for row := 0; row < arch.Length(); row++ {
				if !visible(row) {
					continue
				}
				if !yield(arch.entities[row], ptrAt[A](col, row)) {
					q.state.finish(w)
					return
				}
			}
		}
		q.state.finish(w)
	}
}

// Count reports how many entities currently match, applying the same
// Added/Changed row filters as Iter, and, like Iter, advances the query's
// Added/Changed baseline to the current tick.
func (q Query1[A]) Count(w *World) int {
	q.state.refresh(w)
	n := 0
	for _, arch := range q.state.matched {
		visible := q.state.rowVisible(arch)
		for row := 0; row < arch.Length(); row++ {
			if visible(row) {
				n++
			}
		}
	}
	q.state.finish(w)
	return n
}

// Query2 matches entities carrying both A and B.
type Query2[A, B any] struct{ state *queryState }

func NewQuery2[A, B any]() Query2[A, B] {
	return Query2[A, B]{state: newQueryState(newComponentSet(ComponentIDOf[A](), ComponentIDOf[B]()))}
}

func (q Query2[A, B]) With(ids ...ComponentID) Query2[A, B] {
	q.state.required = newComponentSet(append(append(ComponentSet(nil), q.state.required...), ids...)...)
	return q
}

func (q Query2[A, B]) Without(ids ...ComponentID) Query2[A, B] {
	q.state.withoutIDs(ids...)
	return q
}

func (q Query2[A, B]) Added(ids ...ComponentID) Query2[A, B] {
	q.state.addedIDs(ids...)
	return q
}

func (q Query2[A, B]) Changed(ids ...ComponentID) Query2[A, B] {
	q.state.changedIDs(ids...)
	return q
}

func (q Query2[A, B]) Iter(w *World) iter.Seq2[Entity, Row2[A, B]] {
	q.state.refresh(w)
	return func(yield func(Entity, Row2[A, B]) bool) {
		for _, arch := range q.state.matched {
			visible := q.state.rowVisible(arch)
			ca, cb := colOf[A](arch), colOf[B](arch)
			for row := 0; row < arch.Length(); row++ {
				if !visible(row) {
					continue
				}
				row2 := Row2[A, B]{A: ptrAt[A](ca, row), B: ptrAt[B](cb, row)}
				if !yield(arch.entities[row], row2) {
					q.state.finish(w)
					return
				}
			}
		}
		q.state.finish(w)
	}
}

func (q Query2[A, B]) Count(w *World) int {
	q.state.refresh(w)
	n := 0
	for _, arch := range q.state.matched {
		visible := q.state.rowVisible(arch)
		for row := 0; row < arch.Length(); row++ {
			if visible(row) {
				n++
			}
		}
	}
	q.state.finish(w)
	return n
}

// Query3 matches entities carrying A, B and C.
type Query3[A, B, C any] struct{ state *queryState }

func NewQuery3[A, B, C any]() Query3[A, B, C] {
	return Query3[A, B, C]{state: newQueryState(newComponentSet(ComponentIDOf[A](), ComponentIDOf[B](), ComponentIDOf[C]()))}
}

func (q Query3[A, B, C]) With(ids ...ComponentID) Query3[A, B, C] {
	q.state.required = newComponentSet(append(append(ComponentSet(nil), q.state.required...), ids...)...)
	return q
}

func (q Query3[A, B, C]) Without(ids ...ComponentID) Query3[A, B, C] {
	q.state.withoutIDs(ids...)
	return q
}

func (q Query3[A, B, C]) Added(ids ...ComponentID) Query3[A, B, C] {
	q.state.addedIDs(ids...)
	return q
}

func (q Query3[A, B, C]) Changed(ids ...ComponentID) Query3[A, B, C] {
	q.state.changedIDs(ids...)
	return q
}

func (q Query3[A, B, C]) Iter(w *World) iter.Seq2[Entity, Row3[A, B, C]] {
	q.state.refresh(w)
	return func(yield func(Entity, Row3[A, B, C]) bool) {
		for _, arch := range q.state.matched {
			visible := q.state.rowVisible(arch)
			ca, cb, cc := colOf[A](arch), colOf[B](arch), colOf[C](arch)
			for row := 0; row < arch.Length(); row++ {
				if !visible(row) {
					continue
				}
				row3 := Row3[A, B, C]{A: ptrAt[A](ca, row), B: ptrAt[B](cb, row), C: ptrAt[C](cc, row)}
				if !yield(arch.entities[row], row3) {
					q.state.finish(w)
					return
				}
			}
		}
		q.state.finish(w)
	}
}

func (q Query3[A, B, C]) Count(w *World) int {
	q.state.refresh(w)
	n := 0
	for _, arch := range q.state.matched {
		visible := q.state.rowVisible(arch)
		for row := 0; row < arch.Length(); row++ {
			if visible(row) {
				n++
			}
		}
	}
	q.state.finish(w)
	return n
}

// Query4 matches entities carrying A, B, C and D.
type Query4[A, B, C, D any] struct{ state *queryState }

func NewQuery4[A, B, C, D any]() Query4[A, B, C, D] {
	return Query4[A, B, C, D]{
		state: newQueryState(newComponentSet(ComponentIDOf[A](), ComponentIDOf[B](), ComponentIDOf[C](), ComponentIDOf[D]())),
	}
}

func (q Query4[A, B, C, D]) With(ids ...ComponentID) Query4[A, B, C, D] {
	q.state.required = newComponentSet(append(append(ComponentSet(nil), q.state.required...), ids...)...)
	return q
}

func (q Query4[A, B, C, D]) Without(ids ...ComponentID) Query4[A, B, C, D] {
	q.state.withoutIDs(ids...)
	return q
}

func (q Query4[A, B, C, D]) Added(ids ...ComponentID) Query4[A, B, C, D] {
	q.state.addedIDs(ids...)
	return q
}

func (q Query4[A, B, C, D]) Changed(ids ...ComponentID) Query4[A, B, C, D] {
	q.state.changedIDs(ids...)
	return q
}

func (q Query4[A, B, C, D]) Iter(w *World) iter.Seq2[Entity, Row4[A, B, C, D]] {
	q.state.refresh(w)
	return func(yield func(Entity, Row4[A, B, C, D]) bool) {
		for _, arch := range q.state.matched {
			visible := q.state.rowVisible(arch)
			ca, cb, cc, cd := colOf[A](arch), colOf[B](arch), colOf[C](arch), colOf[D](arch)
			for row := 0; row < arch.Length(); row++ {
				if !visible(row) {
					continue
				}
				row4 := Row4[A, B, C, D]{A: ptrAt[A](ca, row), B: ptrAt[B](cb, row), C: ptrAt[C](cc, row), D: ptrAt[D](cd, row)}
				if !yield(arch.entities[row], row4) {
					q.state.finish(w)
					return
				}
			}
		}
		q.state.finish(w)
	}
}

func (q Query4[A, B, C, D]) Count(w *World) int {
	q.state.refresh(w)
	n := 0
	for _, arch := range q.state.matched {
		visible := q.state.rowVisible(arch)
		for row := 0; row < arch.Length(); row++ {
			if visible(row) {
				n++
			}
		}
	}
	q.state.finish(w)
	return n
}

package ecs

import (
	"log/slog"
	"reflect"
)

// World owns every entity, archetype, resource, event queue, observer and
// state registry for one simulation, the same composition root role the
// teacher's storage type plays for a single schema.
type World struct {
	entities   *entityAllocator
	archetypes []*archetypeTable
	archByKey  map[string]ArchetypeID

	tick Tick

	resources *resourceSet
	events    *eventRegistry
	observers *observerRegistry
	states    *stateRegistry

	logger *slog.Logger

	commands *Commands
}

// NewWorld builds an empty World ready to spawn entities into.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		entities:  newEntityAllocator(),
		archByKey: make(map[string]ArchetypeID),
		resources: newResourceSet(),
		events:    newEventRegistry(),
		observers: newObserverRegistry(),
		states:    newStateRegistry(),
		logger:    slog.Default(),
	}
	// archetype 0 is the empty set, always present so a bare Spawn() has
	// somewhere to live before any component is inserted.
	empty := w.archetypeForSet(nil)
	_ = empty
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WorldOption configures a World at construction time.
type WorldOption func(*World)

// WithLogger overrides the *slog.Logger a World and the systems run through
// it log through.
func WithLogger(logger *slog.Logger) WorldOption {
	return func(w *World) { w.logger = logger }
}

// CurrentTick returns the tick stamped on the most recently completed
// World.AdvanceTick call.
func (w *World) CurrentTick() Tick { return w.tick }

// AdvanceTick increments the change-detection tick counter. Called once
// per simulation step by App.Tick, after the schedule has run and deferred
// commands have been flushed, and before pending state transitions apply.
func (w *World) AdvanceTick() Tick {
	w.tick++
	return w.tick
}

func (w *World) Logger() *slog.Logger { return w.logger }

// Reserve grows entity-allocation capacity so the next n Spawn calls avoid
// reallocating the allocator's backing slices.
func (w *World) Reserve(n int) { w.entities.Reserve(n) }

// Spawn allocates a new entity with no components, placed in the empty
// archetype.
func (w *World) Spawn() Entity {
	e := w.entities.alloc()
	empty := w.archetypeForSet(nil)
	row := empty.appendEntity(e)
	w.entities.setLocation(e, entityLocation{archetype: empty.id, row: row})
	return e
}

// SpawnWith allocates a new entity and immediately attaches every given
// component value, via the same per-type archetype-move path Insert[T]
// takes, for callers that know an entity's full starting component set
// upfront rather than building it up one Insert call at a time.
func (w *World) SpawnWith(components ...any) Entity {
	e := w.Spawn()
	for _, c := range components {
		compID := componentIDFor(reflect.TypeOf(c))
		if err := insertDynamic(w, e, compID, c); err != nil {
			mustNotHappen(err)
		}
	}
	return e
}

// Alive reports whether e names a currently-live entity.
func (w *World) Alive(e Entity) bool { return w.entities.alive(e) }

// AllEntities returns every currently-live entity across every archetype,
// in archetype-then-row order.
func (w *World) AllEntities() []Entity {
	var out []Entity
	for _, arch := range w.archetypes {
		if arch == nil {
			continue
		}
		out = append(out, arch.entities...)
	}
	return out
}

// Despawn removes an entity and all of its components. Despawning a dead
// entity is a no-op, matching the teacher's DestroyEntityOperation replay
// guard (recycled-count check).
func (w *World) Despawn(e Entity) error {
	loc, ok := w.entities.locate(e)
	if !ok {
		return nil
	}
	w.observers.fireRemoveAll(w, e, w.archetypes[loc.archetype].set)
	w.removeRow(loc)
	w.entities.free(e)
	return nil
}

// DespawnExcept despawns every live entity not present in keep, walking
// archetypes in creation order and rows back-to-front so swap-remove never
// skips a row, per SPEC_FULL.md's supplement of spec.md §6's named-but-
// undetailed DespawnExcept.
func (w *World) DespawnExcept(keep map[Entity]struct{}) int {
	removed := 0
	for _, arch := range w.archetypes {
		if arch == nil {
			continue
		}
		for row := len(arch.entities) - 1; row >= 0; row-- {
			e := arch.entities[row]
			if _, keepIt := keep[e]; keepIt {
				continue
			}
			if err := w.Despawn(e); err == nil {
				removed++
			}
		}
	}
	return removed
}

// resetGameState clears every entity, archetype, and event buffer while
// leaving resources and observers untouched, the full-wipe primitive
// App.ResetToSessionCheckpoint's step 4 names -- distinct from a
// session-scoped partial restore, this forgets every entity regardless
// of when it was spawned.
func (w *World) resetGameState() {
	w.entities = newEntityAllocator()
	w.archetypes = nil
	w.archByKey = make(map[string]ArchetypeID)
	w.archetypeForSet(nil)
	w.events.clearAll()
}

func (w *World) removeRow(loc entityLocation) {
	arch := w.archetypes[loc.archetype]
	moved, didMove := arch.swapRemove(loc.row)
	if didMove {
		w.entities.locations[moved.id].row = loc.row
	}
}

// archetypeForSet returns the archetype whose component set is exactly
// set, creating it (with empty add/remove edge caches) if this is the
// first time the set has been seen.
func (w *World) archetypeForSet(set ComponentSet) *archetypeTable {
	key := set.key()
	if id, ok := w.archByKey[key]; ok {
		return w.archetypes[id]
	}
	id := ArchetypeID(len(w.archetypes))
	t := newArchetypeTable(id, set)
	for _, compID := range set {
		t.columns[compID] = newReflectColumn(compID, componentTypeOf(compID))
	}
	w.archetypes = append(w.archetypes, t)
	w.archByKey[key] = id
	return t
}

// archetypeViaEdge resolves the archetype reached by adding (isAdd=true)
// or removing (isAdd=false) compID from old's set, consulting old's
// add/remove edge cache first and falling back to a full ComponentSet
// re-intern -- recording the result on the edge for next time -- only on
// a cache miss, the transfer-edge discipline spec.md §3/§4.2 names.
func (w *World) archetypeViaEdge(old *archetypeTable, compID ComponentID, isAdd bool) *archetypeTable {
	if isAdd {
		if id, ok := old.getAddTarget(compID); ok {
			return w.archetypes[id]
		}
	} else {
		if id, ok := old.getRemoveTarget(compID); ok {
			return w.archetypes[id]
		}
	}

	var newSet ComponentSet
	if isAdd {
		newSet = old.set.with(compID)
	} else {
		newSet = old.set.without(compID)
	}
	newArch := w.archetypeForSet(newSet)

	if isAdd {
		old.setAddTarget(compID, newArch.id)
	} else {
		old.setRemoveTarget(compID, newArch.id)
	}
	return newArch
}

// moveEntity transfers e's row from its current archetype into newArch,
// copying every surviving column's value and preserving added/changed
// ticks, the same guarantee the teacher's TransferEntries/
// AddComponentWithValue pair provides.
func (w *World) moveEntity(e Entity, newArch *archetypeTable) (*archetypeTable, int) {
	loc, ok := w.entities.locate(e)
	if !ok {
		mustNotHappen(DeadEntityError{Entity: e})
	}
	oldArch := w.archetypes[loc.archetype]
	if oldArch.id == newArch.id {
		return oldArch, loc.row
	}

	newArch.entities = append(newArch.entities, e)
	newRow := len(newArch.entities) - 1
	for compID, newCol := range newArch.columns {
		if oldCol, ok := oldArch.columns[compID]; ok {
			newCol.copyRowFrom(oldCol, loc.row)
		} else {
			newCol.appendZero()
		}
	}
	moved, didMove := oldArch.swapRemove(loc.row)
	if didMove {
		w.entities.locations[moved.id].row = loc.row
	}
	w.entities.setLocation(e, entityLocation{archetype: newArch.id, row: newRow})
	return newArch, newRow
}

// --- typed component access -------------------------------------------------

// Insert attaches value to e, moving it to the archetype that adds T's
// component to its current set if it doesn't already carry T. Inserting a
// type e already has overwrites the stored value and touches its changed
// tick instead of re-triggering an archetype move.
func Insert[T any](w *World, e Entity, value T) error {
	loc, ok := w.entities.locate(e)
	if !ok {
		return DeadEntityError{Entity: e}
	}
	compID := ComponentIDOf[T]()
	arch := w.archetypes[loc.archetype]
	if col, exists := arch.columns[compID]; exists {
		rc := col.(*reflectColumn)
		rc.set(loc.row, reflect.ValueOf(value))
		rc.touch(loc.row, w.tick)
		w.observers.fireChange(w, e, compID)
		return nil
	}

	target := w.archetypeViaEdge(arch, compID, true)
	newArch, row := w.moveEntity(e, target)
	rc := newArch.columns[compID].(*reflectColumn)
	rc.set(row, reflect.ValueOf(value))
	rc.markAdded(row, w.tick)
	w.observers.fireAdd(w, e, compID)
	return nil
}

// Remove detaches T from e, moving it to the archetype for its remaining
// component set. Removing a component e doesn't carry is a no-op.
func Remove[T any](w *World, e Entity) error {
	loc, ok := w.entities.locate(e)
	if !ok {
		return DeadEntityError{Entity: e}
	}
	compID := ComponentIDOf[T]()
	arch := w.archetypes[loc.archetype]
	if _, exists := arch.columns[compID]; !exists {
		return nil
	}
	w.observers.fireRemove(w, e, compID)
	target := w.archetypeViaEdge(arch, compID, false)
	w.moveEntity(e, target)
	return nil
}

// Get returns a pointer to e's T component, or an error if e is dead or
// lacks T.
func Get[T any](w *World, e Entity) (*T, error) {
	loc, ok := w.entities.locate(e)
	if !ok {
		return nil, DeadEntityError{Entity: e}
	}
	compID := ComponentIDOf[T]()
	arch := w.archetypes[loc.archetype]
	col, exists := arch.columns[compID]
	if !exists {
		var zero T
		return nil, MissingComponentError{Entity: e, Type: reflect.TypeOf(zero).String()}
	}
	rc := col.(*reflectColumn)
	return rc.at(loc.row).Interface().(*T), nil
}

// Touch marks e's T component as changed at the current tick without
// altering its value, useful when mutation happened through a pointer
// obtained from Get and a system wants Changed[T] queries to observe it
// on a later pass.
func Touch[T any](w *World, e Entity) error {
	loc, ok := w.entities.locate(e)
	if !ok {
		return DeadEntityError{Entity: e}
	}
	compID := ComponentIDOf[T]()
	arch := w.archetypes[loc.archetype]
	col, exists := arch.columns[compID]
	if !exists {
		var zero T
		return MissingComponentError{Entity: e, Type: reflect.TypeOf(zero).String()}
	}
	col.touch(loc.row, w.tick)
	w.observers.fireChange(w, e, compID)
	return nil
}

// Has reports whether e currently carries a T component.
func Has[T any](w *World, e Entity) bool {
	loc, ok := w.entities.locate(e)
	if !ok {
		return false
	}
	_, exists := w.archetypes[loc.archetype].columns[ComponentIDOf[T]()]
	return exists
}

func (c *reflectColumn) copyToRow(dst *reflectColumn, dstRow, srcRow int) {
	dst.set(dstRow, c.at(srcRow).Elem())
	dst.added[dstRow] = c.added[srcRow]
	dst.changed[dstRow] = c.changed[srcRow]
}

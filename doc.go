/*
Package ecs provides an Entity-Component-System runtime for games and
simulations.

ecsframe offers an archetype-based storage layer that keeps entities with
identical component sets packed into the same columnar table, typed queries
with change detection, a staged scheduler with run conditions and system
sets, double-buffered events, observers tied to component lifecycle
transitions, and enum-driven state machines with deferred transitions.

Core Concepts:

  - Entity: a generational (id, generation) pair naming a game object.
  - Component: a plain data struct attached to entities, identified by a
    stable ComponentID assigned the first time its type is used.
  - Archetype: the set of component types a group of entities shares, and
    the table that stores them.
  - World: owns entities, archetypes, resources, events, observers, and
    state registries for one simulation.
  - Schedule: the ordered stages of systems that run once per App.Tick.

Basic Usage:

	w := ecs.NewWorld()

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	e := w.Spawn()
	ecs.Insert(w, e, Position{})
	ecs.Insert(w, e, Velocity{X: 1})

	q := ecs.NewQuery2[Position, Velocity]()
	for entity, row := range q.Iter(w) {
		row.A.X += row.B.X
		row.A.Y += row.B.Y
		_ = entity
	}

ecsframe is the substrate on which game-style applications compose behavior
out of plain data components and stateless systems; rendering, audio, input,
and physics are external collaborators built on top of it, not part of it.
*/
package ecs

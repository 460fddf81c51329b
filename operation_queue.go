package ecs

// Commands buffers entity and resource mutations so they can be produced
// by a system mid-iteration (while a World's archetypes must not move
// underfoot) and applied in one batch afterward, the deferred-mutation
// discipline grounded on plus3/ooftn's ecs/commands.go Flush pattern and
// the teacher's EntityOperation/operation_queue.go replay guards.
type Commands struct {
	w   *World
	ops []func(*World)
}

// Commands returns the World's single deferred-mutation buffer, creating
// it on first use. Every caller -- a system reached via Schedule.Run, an
// App reaching through to its World, or a direct caller of this method --
// shares the same buffer, so ops queued anywhere are visible to whichever
// Flush call runs next.
func (w *World) Commands() *Commands {
	if w.commands == nil {
		w.commands = &Commands{w: w}
	}
	return w.commands
}

// EntityBuilder lets a system chain component inserts onto an entity a
// Commands call has not yet placed into the world.
type EntityBuilder struct {
	cmds   *Commands
	entity Entity
}

// Entity returns the id that will name this entity once Flush runs. The
// id is valid to store and compare immediately; it just isn't queryable
// until Flush places it into an archetype.
func (b EntityBuilder) Entity() Entity { return b.entity }

// Spawn reserves a new entity id immediately and queues its placement
// into the empty archetype for the next Flush.
func (c *Commands) Spawn() EntityBuilder {
	e := c.w.entities.alloc()
	c.ops = append(c.ops, func(w *World) {
		empty := w.archetypeForSet(nil)
		row := empty.appendEntity(e)
		w.entities.setLocation(e, entityLocation{archetype: empty.id, row: row})
	})
	return EntityBuilder{cmds: c, entity: e}
}

// Despawn queues removal of e and all of its components.
func (c *Commands) Despawn(e Entity) {
	c.ops = append(c.ops, func(w *World) { _ = w.Despawn(e) })
}

// QueueInsert queues attaching value to the entity an EntityBuilder names,
// returning the same builder for chaining. Package-level because Go
// methods cannot carry their own type parameters.
func QueueInsert[T any](b EntityBuilder, value T) EntityBuilder {
	b.cmds.ops = append(b.cmds.ops, func(w *World) { _ = Insert(w, b.entity, value) })
	return b
}

// QueueRemove queues detaching T from the entity an EntityBuilder names.
func QueueRemove[T any](b EntityBuilder) EntityBuilder {
	b.cmds.ops = append(b.cmds.ops, func(w *World) { _ = Remove[T](w, b.entity) })
	return b
}

// QueueInsertOn queues attaching value to an already-live entity, for
// systems that looked e up via a query rather than building it fresh.
func QueueInsertOn[T any](c *Commands, e Entity, value T) {
	c.ops = append(c.ops, func(w *World) { _ = Insert(w, e, value) })
}

// QueueRemoveOn queues detaching T from an already-live entity.
func QueueRemoveOn[T any](c *Commands, e Entity) {
	c.ops = append(c.ops, func(w *World) { _ = Remove[T](w, e) })
}

// QueueInsertResource queues installing value as T's singleton resource.
func QueueInsertResource[T any](c *Commands, value T) {
	c.ops = append(c.ops, func(w *World) { InsertResource(w, value) })
}

// QueueSendEvent queues sending event on T's writer.
func QueueSendEvent[T any](c *Commands, event T) {
	c.ops = append(c.ops, func(w *World) {
		wr, err := Writer[T](w)
		if err != nil {
			w.logger.Error("queued event send failed", "error", err)
			return
		}
		wr.Send(event)
	})
}

// Flush applies every queued operation in order and clears the buffer.
// Safe to call with an empty queue.
func (c *Commands) Flush() {
	ops := c.ops
	c.ops = nil
	for _, op := range ops {
		op(c.w)
	}
}

// Pending reports how many operations are queued.
func (c *Commands) Pending() int { return len(c.ops) }

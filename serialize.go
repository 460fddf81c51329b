package ecs

import (
	"encoding/json"
	"reflect"
)

// serializableEntry is what RegisterSerializable records about one
// component type: its stable id, its wire name, and how to decode a JSON
// payload back into a value of that type.
type serializableEntry struct {
	id     ComponentID
	name   string
	decode func([]byte) (any, error)
}

var serializableRegistry = struct {
	byName map[string]serializableEntry
	byID   map[ComponentID]serializableEntry
}{
	byName: make(map[string]serializableEntry),
	byID:   make(map[ComponentID]serializableEntry),
}

// RegisterSerializable makes T eligible for EncodeEntity/DecodeEntity
// under the given wire name. Optional: only components an application
// registers here participate in the JSON round trip, per spec.md's
// framing of serialization as an opt-in reflection layer rather than a
// blanket dump of every component.
func RegisterSerializable[T any](name string) {
	id := ComponentIDOf[T]()
	entry := serializableEntry{
		id:   id,
		name: name,
		decode: func(data []byte) (any, error) {
			var v T
			if err := json.Unmarshal(data, &v); err != nil {
				return nil, err
			}
			return v, nil
		},
	}
	serializableRegistry.byName[name] = entry
	serializableRegistry.byID[id] = entry
}

// EncodedEntity is the wire form of one entity: a map from registered
// component wire-name to its JSON-encoded value.
type EncodedEntity struct {
	Components map[string]json.RawMessage `json:"components"`
}

// EncodeEntity marshals every registered component e carries.
// Unregistered component types present on e are silently skipped.
func EncodeEntity(w *World, e Entity) (EncodedEntity, error) {
	loc, ok := w.entities.locate(e)
	if !ok {
		return EncodedEntity{}, DeadEntityError{Entity: e}
	}
	arch := w.archetypes[loc.archetype]
	out := EncodedEntity{Components: make(map[string]json.RawMessage)}
	for compID, col := range arch.columns {
		entry, ok := serializableRegistry.byID[compID]
		if !ok {
			continue
		}
		rc := col.(*reflectColumn)
		data, err := json.Marshal(rc.at(loc.row).Interface())
		if err != nil {
			return EncodedEntity{}, SerializationError{Phase: "encode", Err: err}
		}
		out.Components[entry.name] = data
	}
	return out, nil
}

// DecodeEntity spawns a fresh entity and attaches every component present
// in enc whose wire name was registered, skipping unknown names so old
// save data with since-removed components still loads.
func DecodeEntity(w *World, enc EncodedEntity) (Entity, error) {
	e := w.Spawn()
	for name, raw := range enc.Components {
		entry, ok := serializableRegistry.byName[name]
		if !ok {
			continue
		}
		value, err := entry.decode(raw)
		if err != nil {
			return Entity{}, SerializationError{Phase: "decode", Err: err}
		}
		if err := insertDynamic(w, e, entry.id, value); err != nil {
			return Entity{}, SerializationError{Phase: "decode", Err: err}
		}
	}
	return e, nil
}

// insertDynamic attaches a reflect-erased component value by ComponentID,
// the same archetype-move path Insert[T] takes, for callers (like
// DecodeEntity) that only have a component's id and an any value rather
// than a static type parameter.
func insertDynamic(w *World, e Entity, compID ComponentID, value any) error {
	loc, ok := w.entities.locate(e)
	if !ok {
		return DeadEntityError{Entity: e}
	}
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

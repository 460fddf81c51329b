package ecs

import "reflect"

// resourceSet is a type-keyed singleton store, the resource-model
// counterpart to the teacher's storage type: instead of column-oriented
// per-entity data it holds exactly one value per Go type, for things like
// a frame clock, an asset table, or a render target that every system
// needs to reach without it being attached to any one entity.
type resourceSet struct {
	values map[reflect.Type]any
}

func newResourceSet() *resourceSet {
	return &resourceSet{values: make(map[reflect.Type]any)}
}

// InsertResource stores value as the World's singleton instance of its
// type, overwriting any previous value of that type.
func InsertResource[T any](w *World, value T) {
	w.resources.values[reflect.TypeOf(value)] = value
}

// Resource returns a pointer to a copy of the World's singleton T, or
// ok=false if none has been inserted yet. Writes through the pointer are
// not stored back; MutateResource writes its result back.
func Resource[T any](w *World) (*T, bool) {
	var zero T
	t := reflect.TypeOf(zero)
	v, ok := w.resources.values[t]
	if !ok {
		return nil, false
	}
	boxed := v.(T)
	return &boxed, true
}

// MutateResource looks up T, applies fn to it by pointer, and writes the
// (possibly modified) value back. Returns false if T was never inserted.
func MutateResource[T any](w *World, fn func(*T)) bool {
	val, ok := Resource[T](w)
	if !ok {
		return false
	}
	fn(val)
	w.resources.values[reflect.TypeOf(*val)] = *val
	return true
}

// RemoveResource deletes the World's singleton T, if any.
func RemoveResource[T any](w *World) {
	var zero T
	delete(w.resources.values, reflect.TypeOf(zero))
}

// HasResource reports whether T's singleton has been inserted.
func HasResource[T any](w *World) bool {
	var zero T
	_, ok := w.resources.values[reflect.TypeOf(zero)]
	return ok
}

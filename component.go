package ecs

import "reflect"

// ComponentID is a stable identifier assigned the first time a component
// type is registered, mirroring the teacher's schema.RowIndexFor bit
// assignment but as a plain incrementing id rather than a mask bit, since
// archetype identity here is a sorted id slice rather than a bitmask
// (see DESIGN.md).
type ComponentID uint32

// componentRegistry assigns and remembers ComponentIDs for Go types. It is
// process-global, the same way the teacher's FactoryNewElementType caches a
// table.ElementType identity per call site.
type componentRegistry struct {
	ids   map[reflect.Type]ComponentID
	types []reflect.Type // index 0 unused; id i -> type
}

var globalComponents = &componentRegistry{
	ids:   make(map[reflect.Type]ComponentID),
	types: make([]reflect.Type, 1),
}

func componentIDFor(t reflect.Type) ComponentID {
	if id, ok := globalComponents.ids[t]; ok {
		return id
	}
	id := ComponentID(len(globalComponents.types))
	globalComponents.ids[t] = id
	globalComponents.types = append(globalComponents.types, t)
	return id
}

// ComponentIDOf returns the stable ComponentID for T, registering it on
// first use.
func ComponentIDOf[T any]() ComponentID {
	return componentIDFor(reflect.TypeOf((*T)(nil)).Elem())
}

func componentTypeOf(id ComponentID) reflect.Type {
	return globalComponents.types[id]
}

func componentNameOf(id ComponentID) string {
	return componentTypeOf(id).String()
}

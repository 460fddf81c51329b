package ecs

// Parent names the entity a child belongs to. Child does not mirror the
// full relationship automatically; Children/Descendants recompute it by
// scanning, the lightweight approach spec.md calls for instead of
// maintaining a live child-list component on the parent.
type Parent struct {
	Entity Entity
}

// SetParent attaches a Parent component to child, replacing any existing
// one, grounded on the teacher's entity.go SetParent/relationships pair
// (minus its destroy-callback machinery, which DespawnRecursive below
// replaces with an explicit recursive walk).
func SetParent(w *World, child, parent Entity) error {
	return Insert(w, child, Parent{Entity: parent})
}

// ClearParent removes child's Parent component, if any.
func ClearParent(w *World, child Entity) error {
	return Remove[Parent](w, child)
}

// ParentOf returns child's parent entity and true, or the zero Entity and
// false if child has no live Parent component.
func ParentOf(w *World, child Entity) (Entity, bool) {
	p, err := Get[Parent](w, child)
	if err != nil {
		return Entity{}, false
	}
	return p.Entity, true
}

// Children returns every live entity whose Parent component points at e.
func Children(w *World, e Entity) []Entity {
	var out []Entity
	q := NewQuery1[Parent]()
	for child, p := range q.Iter(w) {
		if p.Entity == e {
			out = append(out, child)
		}
	}
	return out
}

// Descendants returns every live entity transitively parented under e,
// breadth-first.
func Descendants(w *World, e Entity) []Entity {
	var out []Entity
	frontier := []Entity{e}
	for len(frontier) > 0 {
		next := frontier[0]
		frontier = frontier[1:]
		kids := Children(w, next)
		out = append(out, kids...)
		frontier = append(frontier, kids...)
	}
	return out
}

// DespawnRecursive despawns e and every descendant beneath it, leaves
// first, so a parent never outlives a still-registered child mid-walk.
func DespawnRecursive(w *World, e Entity) error {
	descendants := Descendants(w, e)
	for i := len(descendants) - 1; i >= 0; i-- {
		if err := w.Despawn(descendants[i]); err != nil {
			return err
		}
	}
	return w.Despawn(e)
}

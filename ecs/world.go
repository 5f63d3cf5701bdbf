// Package ecs holds the scene's entities, their transform hierarchy and
// their components.
//
// A World is an arena: entities are created and destroyed only through it
// and refer to each other by EntityID. It is not safe for concurrent use.
package ecs

import (
	"github.com/google/uuid"
)

// World owns every entity and the set marked for removal.
type World struct {
	entities map[EntityID]*Entity
	order    []EntityID
	marked   map[EntityID]struct{}
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{
		entities: map[EntityID]*Entity{},
		marked:   map[EntityID]struct{}{},
	}
}

// NewEntity creates an entity under parent, or at the root when parent
// is nil.
func (w *World) NewEntity(name string, parent *Entity) *Entity {
	e := &Entity{
		Name:       name,
		Transform:  NewTransform(),
		id:         uuid.New(),
		world:      w,
		components: map[string]Component{},
	}
	w.entities[e.id] = e
	w.order = append(w.order, e.id)
	if parent != nil && parent.world == w {
		e.parent = parent.id
		parent.children = append(parent.children, e.id)
	}
	return e
}

// Entity returns the live entity with id, or nil.
func (w *World) Entity(id EntityID) *Entity {
	return w.entities[id]
}

// Entities returns every live entity in creation order.
func (w *World) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.entities[id])
	}
	return out
}

// Roots returns the entities without a parent in creation order.
func (w *World) Roots() []*Entity {
	var out []*Entity
	for _, id := range w.order {
		if e := w.entities[id]; e.parent == uuid.Nil {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) Len() int { return len(w.order) }

// Find returns the first entity with the given name, or nil.
func (w *World) Find(name string) *Entity {
	for _, id := range w.order {
		if e := w.entities[id]; e.Name == name {
			return e
		}
	}
	return nil
}

// MarkForRemoval schedules e and its subtree for the next
// DeleteMarkedEntities. Marking twice has no further effect.
func (w *World) MarkForRemoval(e *Entity) {
	if e == nil || e.world != w {
		return
	}
	w.marked[e.id] = struct{}{}
}

// IsMarked reports whether e is scheduled for removal.
func (w *World) IsMarked(e *Entity) bool {
	if e == nil || e.world != w {
		return false
	}
	_, ok := w.marked[e.id]
	return ok
}

// DeleteMarkedEntities removes marked entities together with their
// descendants and detaches them from surviving parents.
func (w *World) DeleteMarkedEntities() {
	if len(w.marked) == 0 {
		return
	}
	doomed := map[EntityID]struct{}{}
	for id := range w.marked {
		e := w.entities[id]
		if e == nil {
			continue
		}
		e.Traverse(func(d *Entity) { doomed[d.id] = struct{}{} })
	}

	for id := range doomed {
		e := w.entities[id]
		if p := e.Parent(); p != nil {
			if _, gone := doomed[p.id]; !gone {
				p.removeChild(id)
			}
		}
	}
	for id := range doomed {
		delete(w.entities, id)
	}

	kept := w.order[:0]
	for _, id := range w.order {
		if _, gone := doomed[id]; !gone {
			kept = append(kept, id)
		}
	}
	w.order = kept
	clear(w.marked)
}

// Clear drops every entity.
func (w *World) Clear() {
	clear(w.entities)
	clear(w.marked)
	w.order = nil
}

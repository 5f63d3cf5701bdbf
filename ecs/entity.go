package ecs

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// EntityID identifies an entity within its World.
type EntityID = uuid.UUID

var ErrParentCycle = errors.New("ecs: parent would create a cycle")

// Entity is a named node of the scene hierarchy. Parent and children are
// IDs resolved through the owning World.
type Entity struct {
	Name      string
	Transform Transform

	id       EntityID
	world    *World
	parent   EntityID
	children []EntityID

	components map[string]Component
	kinds      []string
}

func (e *Entity) ID() EntityID  { return e.id }
func (e *Entity) World() *World { return e.world }

// Parent returns the parent entity, or nil for a root.
func (e *Entity) Parent() *Entity {
	if e.parent == uuid.Nil {
		return nil
	}
	return e.world.Entity(e.parent)
}

// Children returns the live children in insertion order.
func (e *Entity) Children() []*Entity {
	out := make([]*Entity, 0, len(e.children))
	for _, id := range e.children {
		if c := e.world.Entity(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// SetParent moves e under p, or to the root when p is nil.
func (e *Entity) SetParent(p *Entity) error {
	if p != nil {
		if p.world != e.world {
			return fmt.Errorf("ecs: parent %q belongs to another world", p.Name)
		}
		for a := p; a != nil; a = a.Parent() {
			if a == e {
				return fmt.Errorf("%w: %q under %q", ErrParentCycle, e.Name, p.Name)
			}
		}
	}
	if old := e.Parent(); old != nil {
		old.removeChild(e.id)
	}
	e.parent = uuid.Nil
	if p != nil {
		e.parent = p.id
		p.children = append(p.children, e.id)
	}
	return nil
}

func (e *Entity) removeChild(id EntityID) {
	for i, c := range e.children {
		if c == id {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

// LocalToWorld composes the transforms from the root down to e.
// It is recomputed on every call.
func (e *Entity) LocalToWorld() mgl32.Mat4 {
	m := e.Transform.Matrix()
	for p := e.Parent(); p != nil; p = p.Parent() {
		m = p.Transform.Matrix().Mul4(m)
	}
	return m
}

// AddComponent attaches c and binds its owner to e.
func (e *Entity) AddComponent(c Component) error {
	kind := c.Kind()
	if _, dup := e.components[kind]; dup {
		return fmt.Errorf("%w: %q on %q", ErrDuplicateComponent, kind, e.Name)
	}
	e.components[kind] = c
	e.kinds = append(e.kinds, kind)
	c.bind(e)
	return nil
}

// Component returns the component of the given kind, or nil.
func (e *Entity) Component(kind string) Component {
	return e.components[kind]
}

// Components returns the attached components in the order they were added.
func (e *Entity) Components() []Component {
	out := make([]Component, 0, len(e.kinds))
	for _, k := range e.kinds {
		out = append(out, e.components[k])
	}
	return out
}

// RemoveComponent detaches the component of the given kind, if any.
func (e *Entity) RemoveComponent(kind string) {
	c, ok := e.components[kind]
	if !ok {
		return
	}
	delete(e.components, kind)
	for i, k := range e.kinds {
		if k == kind {
			e.kinds = append(e.kinds[:i], e.kinds[i+1:]...)
			break
		}
	}
	c.bind(nil)
}

// Traverse visits e and its descendants depth first.
func (e *Entity) Traverse(fn func(*Entity)) {
	fn(e)
	for _, c := range e.Children() {
		c.Traverse(fn)
	}
}

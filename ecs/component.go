package ecs

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
	"github.com/NouranFoda/CMPN205-Graphics-Project/material"
)

var (
	ErrDuplicateComponent = errors.New("ecs: entity already has a component of this kind")
	ErrUnknownComponent   = errors.New("ecs: unknown component type")
)

// Assets resolves the shared resources components refer to by key.
type Assets interface {
	Mesh(key string) (*gpu.Mesh, bool)
	Material(key string) (material.Material, bool)
}

// Component is data attached to an entity, at most one per Kind.
//
// Implementations embed ComponentBase and define Kind on a pointer receiver
// without touching the receiver, so Get can call it on a nil value.
type Component interface {
	Kind() string
	Owner() *Entity
	Deserialize(cfg config.Node, assets Assets) error

	bind(owner *Entity)
}

// ComponentBase holds the owner back-reference. The owner is resolved
// through the World, so a component of a deleted entity has no owner.
type ComponentBase struct {
	world *World
	owner EntityID
}

func (b *ComponentBase) Owner() *Entity {
	if b.world == nil {
		return nil
	}
	return b.world.Entity(b.owner)
}

func (b *ComponentBase) bind(owner *Entity) {
	if owner == nil {
		b.world, b.owner = nil, EntityID{}
		return
	}
	b.world, b.owner = owner.world, owner.id
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Component{}
)

// RegisterComponent makes kind constructible from scene files. It panics
// if kind is registered twice.
func RegisterComponent(kind string, factory func() Component) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[kind]; dup {
		panic(fmt.Sprintf("ecs: component kind %q registered twice", kind))
	}
	registry[kind] = factory
}

func NewComponent(kind string) (Component, error) {
	registryMu.RLock()
	factory, ok := registry[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, kind)
	}
	return factory(), nil
}

// RegisteredKinds lists registered component kinds in sorted order.
func RegisteredKinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Get returns e's component of type T.
func Get[T Component](e *Entity) (T, bool) {
	var zero T
	c, ok := e.components[zero.Kind()]
	if !ok {
		return zero, false
	}
	t, ok := c.(T)
	return t, ok
}

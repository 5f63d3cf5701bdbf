// Package systems holds the per-frame gameplay updates run before rendering.
package systems

import (
	"github.com/NouranFoda/CMPN205-Graphics-Project/components"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
)

// MovementSystem integrates every Movement component.
type MovementSystem struct{}

// Update advances each moving entity by dt seconds.
func (MovementSystem) Update(world *ecs.World, dt float32) {
	for _, e := range world.Entities() {
		m, ok := ecs.Get[*components.Movement](e)
		if !ok {
			continue
		}
		e.Transform.Position = e.Transform.Position.Add(m.LinearVelocity.Mul(dt))
		e.Transform.Rotation = e.Transform.Rotation.Add(m.AngularVelocity.Mul(dt))
	}
}

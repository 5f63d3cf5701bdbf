package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
)

// Movement moves its owner at a constant rate.
type Movement struct {
	ecs.ComponentBase

	LinearVelocity  mgl32.Vec3
	AngularVelocity mgl32.Vec3 // radians per second
}

func (*Movement) Kind() string { return MovementKind }

func (m *Movement) Deserialize(cfg config.Node, _ ecs.Assets) error {
	if !cfg.IsObject() {
		return nil
	}
	m.LinearVelocity = cfg.Vec3("linearVelocity", mgl32.Vec3{})
	m.AngularVelocity = ecs.Radians(cfg.Vec3("angularVelocity", mgl32.Vec3{}))
	return nil
}

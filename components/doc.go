// Package components defines the component kinds a scene file can attach
// to entities. Importing the package registers every kind with ecs.
package components

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
)

// ErrMissingAsset reports a component key that names no cached asset.
var ErrMissingAsset = errors.New("components: missing asset")

const (
	CameraKind       = "Camera"
	MeshRendererKind = "Mesh Renderer"
	LightKind        = "Light"
	CollisionKind    = "Collision"
	MovementKind     = "Movement"
)

func init() {
	ecs.RegisterComponent(CameraKind, func() ecs.Component { return NewCamera() })
	ecs.RegisterComponent(MeshRendererKind, func() ecs.Component { return &MeshRenderer{} })
	ecs.RegisterComponent(LightKind, func() ecs.Component { return NewLight() })
	ecs.RegisterComponent(CollisionKind, func() ecs.Component { return NewCollision() })
	ecs.RegisterComponent(MovementKind, func() ecs.Component { return &Movement{} })
}

// ownerMatrix is the owner's world matrix, or identity when detached.
func ownerMatrix(c ecs.Component) mgl32.Mat4 {
	if e := c.Owner(); e != nil {
		return e.LocalToWorld()
	}
	return mgl32.Ident4()
}

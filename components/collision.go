package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
)

// Response is what the collision system does with an entity that
// overlaps the target.
type Response int

const (
	ResponseNone Response = iota
	ResponseRemove
)

// Collision is a bounding sphere in the owner's local frame.
type Collision struct {
	ecs.ComponentBase

	Center   mgl32.Vec3
	Radius   float32
	Response Response
}

func NewCollision() *Collision {
	return &Collision{Radius: 1}
}

func (*Collision) Kind() string { return CollisionKind }

func (c *Collision) Deserialize(cfg config.Node, _ ecs.Assets) error {
	if !cfg.IsObject() {
		return nil
	}
	c.Center = cfg.Vec3("center", mgl32.Vec3{})
	c.Radius = cfg.Float("radius", 1)
	switch cfg.String("response", "none") {
	case "remove":
		c.Response = ResponseRemove
	default:
		c.Response = ResponseNone
	}
	return nil
}

// WorldSphere returns the sphere center offset by the owner's world origin
// and the radius scaled by the length of the owner's local scale.
func (c *Collision) WorldSphere() (mgl32.Vec3, float32) {
	e := c.Owner()
	if e == nil {
		return c.Center, c.Radius
	}
	origin := e.LocalToWorld().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	return c.Center.Add(origin), c.Radius * e.Transform.Scale.Len()
}

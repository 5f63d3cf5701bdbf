package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
)

type CameraType int

const (
	Perspective CameraType = iota
	Orthographic
)

// Camera projects the scene from its owner's placement, looking down the
// owner's local -Z axis.
type Camera struct {
	ecs.ComponentBase

	Type        CameraType
	FovY        float32 // radians
	Near, Far   float32
	OrthoHeight float32
}

func NewCamera() *Camera {
	return &Camera{
		Type:        Perspective,
		FovY:        mgl32.DegToRad(90),
		Near:        0.01,
		Far:         100,
		OrthoHeight: 1,
	}
}

func (*Camera) Kind() string { return CameraKind }

func (c *Camera) Deserialize(cfg config.Node, _ ecs.Assets) error {
	if !cfg.IsObject() {
		return nil
	}
	switch cfg.String("cameraType", "perspective") {
	case "orthographic":
		c.Type = Orthographic
	default:
		c.Type = Perspective
	}
	c.FovY = mgl32.DegToRad(cfg.Float("fovY", 90))
	c.Near = cfg.Float("near", 0.01)
	c.Far = cfg.Float("far", 100)
	c.OrthoHeight = cfg.Float("orthoHeight", 1)
	return nil
}

// Eye is the camera position in world space.
func (c *Camera) Eye() mgl32.Vec3 {
	m := ownerMatrix(c)
	return m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// Forward is the world-space viewing direction.
func (c *Camera) Forward() mgl32.Vec3 {
	m := ownerMatrix(c)
	return m.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	m := ownerMatrix(c)
	eye := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	center := m.Mul4x1(mgl32.Vec4{0, 0, -1, 1}).Vec3()
	up := m.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	return mgl32.LookAtV(eye, center, up)
}

// ProjectionMatrix uses the aspect ratio of a viewport of the given size.
func (c *Camera) ProjectionMatrix(size [2]int32) mgl32.Mat4 {
	aspect := float32(1)
	if size[1] > 0 {
		aspect = float32(size[0]) / float32(size[1])
	}
	if c.Type == Orthographic {
		h := c.OrthoHeight / 2
		w := h * aspect
		return mgl32.Ortho(-w, w, -h, h, c.Near, c.Far)
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

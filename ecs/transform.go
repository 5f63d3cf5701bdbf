package ecs

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
)

// Transform is an entity's placement relative to its parent.
// Rotation holds Euler angles in radians: X pitch, Y yaw, Z roll.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns translate * yaw * pitch * roll * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	rot := mgl32.HomogRotate3DY(t.Rotation.Y()).
		Mul4(mgl32.HomogRotate3DX(t.Rotation.X())).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Deserialize reads position, rotation (degrees) and scale. Absent keys
// keep their current value.
func (t *Transform) Deserialize(cfg config.Node) {
	if !cfg.IsObject() {
		return
	}
	t.Position = cfg.Vec3("position", t.Position)
	t.Rotation = Radians(cfg.Vec3("rotation", Degrees(t.Rotation)))
	t.Scale = cfg.Vec3("scale", t.Scale)
}

// Radians converts each component from degrees.
func Radians(v mgl32.Vec3) mgl32.Vec3 {
	return v.Mul(math32.Pi / 180)
}

// Degrees converts each component from radians.
func Degrees(v mgl32.Vec3) mgl32.Vec3 {
	return v.Mul(180 / math32.Pi)
}

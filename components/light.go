package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
)

// LightType values match the shader's light.type constants.
type LightType int32

const (
	Directional LightType = iota
	Point
	Spot
)

func (t LightType) String() string {
	switch t {
	case Point:
		return "point"
	case Spot:
		return "spot"
	}
	return "directional"
}

// Light is passive illumination data read by the renderer. Fields that do
// not apply to Type are kept but ignored.
type Light struct {
	ecs.ComponentBase

	Type      LightType
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Direction mgl32.Vec3
	// Attenuation holds the constant, linear and quadratic terms.
	Attenuation mgl32.Vec3
	// ConeAngles holds the inner and outer spot angles in radians.
	ConeAngles mgl32.Vec2
}

var defaultConeDegrees = mgl32.Vec2{15, 30}

func NewLight() *Light {
	return &Light{
		Type:        Directional,
		Diffuse:     mgl32.Vec3{1, 1, 1},
		Specular:    mgl32.Vec3{1, 1, 1},
		Direction:   mgl32.Vec3{0, -1, 0},
		Attenuation: mgl32.Vec3{0, 0, 1},
		ConeAngles:  coneRadians(defaultConeDegrees),
	}
}

func (*Light) Kind() string { return LightKind }

func (l *Light) Deserialize(cfg config.Node, _ ecs.Assets) error {
	if !cfg.IsObject() {
		return nil
	}
	switch cfg.String("lightType", "directional") {
	case "point":
		l.Type = Point
	case "spot":
		l.Type = Spot
	default:
		l.Type = Directional
	}
	l.Diffuse = cfg.Vec3("diffuse", mgl32.Vec3{1, 1, 1})
	l.Specular = cfg.Vec3("specular", mgl32.Vec3{1, 1, 1})
	l.Direction = cfg.Vec3("direction", mgl32.Vec3{0, -1, 0})
	l.Attenuation = cfg.Vec3("attenuation", mgl32.Vec3{0, 0, 1})
	l.ConeAngles = coneRadians(cfg.Vec2("cone-angles", defaultConeDegrees))
	return nil
}

// Position is the owner's world-space origin.
func (l *Light) Position() mgl32.Vec3 {
	m := ownerMatrix(l)
	return m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

func coneRadians(deg mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{mgl32.DegToRad(deg[0]), mgl32.DegToRad(deg[1])}
}

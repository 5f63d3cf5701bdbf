package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
)

// TintedMaterial multiplies the shaded color by a constant tint.
type TintedMaterial struct {
	BaseMaterial
	Tint mgl32.Vec4
}

func NewTinted() *TintedMaterial {
	return &TintedMaterial{BaseMaterial: newBase(), Tint: mgl32.Vec4{1, 1, 1, 1}}
}

func (m *TintedMaterial) Setup(dev gpu.Device) {
	m.BaseMaterial.Setup(dev)
	dev.SetVec4("tint", m.Tint)
}

func (m *TintedMaterial) Deserialize(cfg config.Node, r Resolver) error {
	if err := m.BaseMaterial.Deserialize(cfg, r); err != nil {
		return err
	}
	if !cfg.IsObject() {
		return nil
	}
	m.Tint = cfg.Vec4("tint", mgl32.Vec4{1, 1, 1, 1})
	return nil
}

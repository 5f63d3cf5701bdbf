package material

import (
	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
)

// TexturedMaterial samples one texture on unit 0 and discards fragments
// below AlphaThreshold.
type TexturedMaterial struct {
	TintedMaterial
	Texture        *gpu.Texture
	Sampler        *gpu.Sampler
	AlphaThreshold float32
}

func NewTextured() *TexturedMaterial {
	return &TexturedMaterial{TintedMaterial: *NewTinted()}
}

func (m *TexturedMaterial) Setup(dev gpu.Device) {
	m.TintedMaterial.Setup(dev)
	dev.SetFloat("alphaThreshold", m.AlphaThreshold)
	dev.ActiveTexture(0)
	dev.BindTexture(m.Texture)
	dev.BindSampler(0, m.Sampler)
	dev.SetInt("tex", 0)
}

func (m *TexturedMaterial) Deserialize(cfg config.Node, r Resolver) error {
	if err := m.TintedMaterial.Deserialize(cfg, r); err != nil {
		return err
	}
	if !cfg.IsObject() {
		return nil
	}
	m.AlphaThreshold = cfg.Float("alphaThreshold", 0)
	m.Texture = texture(cfg, r, "texture")
	m.Sampler = sampler(cfg, r)
	return nil
}

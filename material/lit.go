package material

import (
	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
)

// Texture units used by LitMaterial.
const (
	AlbedoUnit uint32 = iota
	SpecularUnit
	RoughnessUnit
	AmbientOcclusionUnit
	EmissionUnit
)

// LitMaterial feeds the lighting shader five maps sharing one sampler.
type LitMaterial struct {
	BaseMaterial
	Albedo           *gpu.Texture
	Specular         *gpu.Texture
	Roughness        *gpu.Texture
	AmbientOcclusion *gpu.Texture
	Emission         *gpu.Texture
	Sampler          *gpu.Sampler
	AlphaThreshold   float32
}

func NewLit() *LitMaterial {
	return &LitMaterial{BaseMaterial: newBase()}
}

type litSlot struct {
	unit    uint32
	uniform string
	tex     *gpu.Texture
}

func (m *LitMaterial) slots() [5]litSlot {
	return [5]litSlot{
		{AlbedoUnit, "material.albedo_tex", m.Albedo},
		{SpecularUnit, "material.specular_tex", m.Specular},
		{RoughnessUnit, "material.roughness_tex", m.Roughness},
		{AmbientOcclusionUnit, "material.ao_tex", m.AmbientOcclusion},
		{EmissionUnit, "material.emission_tex", m.Emission},
	}
}

func (m *LitMaterial) Setup(dev gpu.Device) {
	m.BaseMaterial.Setup(dev)
	dev.SetFloat("alphaThreshold", m.AlphaThreshold)
	for _, s := range m.slots() {
		dev.ActiveTexture(s.unit)
		dev.BindTexture(s.tex)
		dev.BindSampler(s.unit, m.Sampler)
		dev.SetInt(s.uniform, int32(s.unit))
	}
}

// Deserialize reads the map keys; the short "-tex" spellings are accepted
// for older scene files.
func (m *LitMaterial) Deserialize(cfg config.Node, r Resolver) error {
	if err := m.BaseMaterial.Deserialize(cfg, r); err != nil {
		return err
	}
	if !cfg.IsObject() {
		return nil
	}
	m.AlphaThreshold = cfg.Float("alphaThreshold", 0)
	m.Albedo = texture(cfg, r, "albedo-texture", "albedo-tex")
	m.Specular = texture(cfg, r, "specular-texture", "specular-tex")
	m.Roughness = texture(cfg, r, "roughness-texture", "roughness-tex")
	m.AmbientOcclusion = texture(cfg, r, "ambient-occlusion-texture", "ao-tex")
	m.Emission = texture(cfg, r, "emission-texture", "emission-tex")
	m.Sampler = sampler(cfg, r)
	return nil
}

package material

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/gputest"
)

type resources struct {
	shaders  map[string]*gpu.Program
	textures map[string]*gpu.Texture
	samplers map[string]*gpu.Sampler
}

func newResources() *resources {
	return &resources{
		shaders: map[string]*gpu.Program{
			"tinted": {Name: "tinted", Handle: 1},
			"lit":    {Name: "lit", Handle: 2},
		},
		textures: map[string]*gpu.Texture{
			"wood":  {Name: "wood", Handle: 3},
			"metal": {Name: "metal", Handle: 4},
			"glow":  {Name: "glow", Handle: 5},
			"rough": {Name: "rough", Handle: 7},
			"ao":    {Name: "ao", Handle: 8},
		},
		samplers: map[string]*gpu.Sampler{
			"linear": {Name: "linear", Handle: 6},
		},
	}
}

func (r *resources) Shader(key string) (*gpu.Program, bool) {
	p, ok := r.shaders[key]
	return p, ok
}

func (r *resources) Texture(key string) (*gpu.Texture, bool) {
	t, ok := r.textures[key]
	return t, ok
}

func (r *resources) Sampler(key string) (*gpu.Sampler, bool) {
	s, ok := r.samplers[key]
	return s, ok
}

func TestNewKinds(t *testing.T) {
	for _, kind := range []string{"tinted", "textured", "lit"} {
		m, err := New(kind)
		require.NoError(t, err, kind)
		assert.NotNil(t, m.Base())
	}
	_, err := New("toon")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Equal(t, []string{"lit", "textured", "tinted"}, Kinds())
}

func TestMissingShader(t *testing.T) {
	r := newResources()
	for _, payload := range []map[string]any{
		{},
		{"shader": "nope"},
	} {
		m := NewTinted()
		err := m.Deserialize(config.New(payload), r)
		assert.ErrorIs(t, err, ErrMissingShader)
	}
}

func TestNonObjectPayloadIsNoop(t *testing.T) {
	m := NewTextured()
	require.NoError(t, m.Deserialize(config.New("textured"), newResources()))
	assert.Equal(t, NewTextured(), m)
}

func TestTintedSetup(t *testing.T) {
	r := newResources()
	m := NewTinted()
	require.NoError(t, m.Deserialize(config.New(map[string]any{
		"shader": "tinted",
		"tint":   []any{1.0, 0.5, 0.25, 1.0},
	}), r))

	rec := gputest.New()
	m.Setup(rec)

	assert.Equal(t, r.shaders["tinted"], rec.State.Program)
	v, ok := rec.Uniform("tint")
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec4{1, 0.5, 0.25, 1}, v)
	// pipeline state first, then the program
	assert.Equal(t, "UseProgram", rec.Ops[5].Name)
}

func TestTintDefault(t *testing.T) {
	m := NewTinted()
	m.Tint = mgl32.Vec4{0, 0, 0, 0}
	require.NoError(t, m.Deserialize(config.New(map[string]any{"shader": "tinted"}), newResources()))
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, m.Tint)
	assert.False(t, m.Transparent)
}

func texturedPayload() config.Node {
	return config.New(map[string]any{
		"shader":         "tinted",
		"transparent":    true,
		"tint":           []any{0.2, 0.4, 0.6, 0.8},
		"texture":        "wood",
		"sampler":        "linear",
		"alphaThreshold": 0.3,
		"pipelineState": map[string]any{
			"blending": map[string]any{"enabled": true},
		},
	})
}

func TestTexturedDeserializeRoundTripAndIdempotent(t *testing.T) {
	r := newResources()
	m := NewTextured()
	require.NoError(t, m.Deserialize(texturedPayload(), r))

	assert.Equal(t, r.shaders["tinted"], m.Shader)
	assert.True(t, m.Transparent)
	assert.Equal(t, mgl32.Vec4{0.2, 0.4, 0.6, 0.8}, m.Tint)
	assert.Equal(t, r.textures["wood"], m.Texture)
	assert.Equal(t, r.samplers["linear"], m.Sampler)
	assert.InDelta(t, 0.3, m.AlphaThreshold, 1e-6)
	assert.True(t, m.PipelineState.Blending.Enabled)

	first := *m
	require.NoError(t, m.Deserialize(texturedPayload(), r))
	assert.Equal(t, first, *m)
}

func TestTexturedSetupBindsUnitZero(t *testing.T) {
	r := newResources()
	m := NewTextured()
	require.NoError(t, m.Deserialize(texturedPayload(), r))

	rec := gputest.New()
	m.Setup(rec)
	assert.Equal(t, uint32(0), rec.State.ActiveUnit)
	assert.Equal(t, r.textures["wood"], rec.State.Textures[0])
	assert.Equal(t, r.samplers["linear"], rec.State.Samplers[0])
	tex, _ := rec.Uniform("tex")
	assert.Equal(t, int32(0), tex)
	alpha, _ := rec.Uniform("alphaThreshold")
	assert.InDelta(t, 0.3, alpha, 1e-6)
	_, hasTint := rec.Uniform("tint")
	assert.True(t, hasTint)
}

func TestTexturedSetupUnbindsMissing(t *testing.T) {
	r := newResources()
	m := NewTextured()
	require.NoError(t, m.Deserialize(config.New(map[string]any{"shader": "tinted", "texture": "missing"}), r))
	assert.Nil(t, m.Texture)
	assert.Nil(t, m.Sampler)

	rec := gputest.New()
	rec.State.Textures[0] = r.textures["metal"]
	rec.State.Samplers[0] = r.samplers["linear"]
	m.Setup(rec)
	assert.NotContains(t, rec.State.Textures, uint32(0))
	assert.NotContains(t, rec.State.Samplers, uint32(0))
}

func TestLitSetupUnitTable(t *testing.T) {
	r := newResources()
	m := NewLit()
	require.NoError(t, m.Deserialize(config.New(map[string]any{
		"shader":           "lit",
		"albedo-texture":   "wood",
		"specular-texture": "metal",
		"emission-tex":     "glow",
		"sampler":          "linear",
		"alphaThreshold":   0.5,
	}), r))

	assert.Equal(t, r.textures["wood"], m.Albedo)
	assert.Equal(t, r.textures["metal"], m.Specular)
	assert.Nil(t, m.Roughness)
	assert.Nil(t, m.AmbientOcclusion)
	assert.Equal(t, r.textures["glow"], m.Emission)

	rec := gputest.New()
	m.Setup(rec)

	assert.Equal(t, r.shaders["lit"], rec.State.Program)
	assert.Equal(t, map[uint32]*gpu.Texture{
		AlbedoUnit:   r.textures["wood"],
		SpecularUnit: r.textures["metal"],
		EmissionUnit: r.textures["glow"],
	}, rec.State.Textures)
	for unit := uint32(0); unit < 5; unit++ {
		assert.Equal(t, r.samplers["linear"], rec.State.Samplers[unit])
	}
	for name, unit := range map[string]int32{
		"material.albedo_tex":    0,
		"material.specular_tex":  1,
		"material.roughness_tex": 2,
		"material.ao_tex":        3,
		"material.emission_tex":  4,
	} {
		v, ok := rec.Uniform(name)
		require.True(t, ok, name)
		assert.Equal(t, unit, v, name)
	}
	_, hasTint := rec.Uniform("tint")
	assert.False(t, hasTint)
}

func litPayload() config.Node {
	return config.New(map[string]any{
		"shader":                    "lit",
		"transparent":               true,
		"albedo-texture":            "wood",
		"specular-texture":          "metal",
		"roughness-texture":         "rough",
		"ambient-occlusion-texture": "ao",
		"emission-texture":          "glow",
		"sampler":                   "linear",
		"alphaThreshold":            0.25,
		"pipelineState": map[string]any{
			"depthTesting": map[string]any{"enabled": true},
		},
	})
}

func TestLitDeserializeRoundTripAndIdempotent(t *testing.T) {
	r := newResources()
	m := NewLit()
	require.NoError(t, m.Deserialize(litPayload(), r))

	assert.Equal(t, r.shaders["lit"], m.Shader)
	assert.True(t, m.Transparent)
	assert.True(t, m.PipelineState.DepthTesting.Enabled)
	assert.Equal(t, r.textures["wood"], m.Albedo)
	assert.Equal(t, r.textures["metal"], m.Specular)
	assert.Equal(t, r.textures["rough"], m.Roughness)
	assert.Equal(t, r.textures["ao"], m.AmbientOcclusion)
	assert.Equal(t, r.textures["glow"], m.Emission)
	assert.Equal(t, r.samplers["linear"], m.Sampler)
	assert.InDelta(t, 0.25, m.AlphaThreshold, 1e-6)

	first := *m
	require.NoError(t, m.Deserialize(litPayload(), r))
	assert.Equal(t, first, *m)
}

func TestTintedDeserializeIdempotent(t *testing.T) {
	payload := config.New(map[string]any{
		"shader": "tinted",
		"tint":   []any{0.1, 0.2, 0.3, 0.4},
		"pipelineState": map[string]any{
			"faceCulling": map[string]any{"enabled": true, "culledFace": "GL_FRONT"},
		},
	})
	r := newResources()
	m := NewTinted()
	require.NoError(t, m.Deserialize(payload, r))
	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 0.4}, m.Tint)
	assert.Equal(t, gpu.Front, m.PipelineState.FaceCulling.CulledFace)

	first := *m
	require.NoError(t, m.Deserialize(payload, r))
	assert.Equal(t, first, *m)
}

func TestLitNilSamplerUnbinds(t *testing.T) {
	m := NewLit()
	require.NoError(t, m.Deserialize(config.New(map[string]any{"shader": "lit"}), newResources()))

	rec := gputest.New()
	m.Setup(rec)
	assert.Empty(t, rec.State.Samplers)
	assert.Empty(t, rec.State.Textures)
	assert.Equal(t, 5, rec.Count("BindSampler"))
}

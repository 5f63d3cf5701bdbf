package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
)

type FaceCulling struct {
	Enabled    bool
	CulledFace gpu.Face
	FrontFace  gpu.Winding
}

type DepthTesting struct {
	Enabled  bool
	Function gpu.CompareFunc
}

type Blending struct {
	Enabled           bool
	Equation          gpu.BlendEquation
	SourceFactor      gpu.BlendFactor
	DestinationFactor gpu.BlendFactor
	ConstantColor     mgl32.Vec4
}

// PipelineState is the fixed-function configuration a material needs that
// shaders cannot express: culling, depth test, blending and write masks.
type PipelineState struct {
	FaceCulling  FaceCulling
	DepthTesting DepthTesting
	Blending     Blending
	ColorMask    [4]bool
	DepthMask    bool
}

// DefaultPipelineState has every group disabled and writes enabled.
func DefaultPipelineState() PipelineState {
	return PipelineState{
		FaceCulling:  FaceCulling{CulledFace: gpu.Back, FrontFace: gpu.CCW},
		DepthTesting: DepthTesting{Function: gpu.LEqual},
		Blending: Blending{
			Equation:          gpu.FuncAdd,
			SourceFactor:      gpu.SrcAlpha,
			DestinationFactor: gpu.OneMinusSrcAlpha,
		},
		ColorMask: [4]bool{true, true, true, true},
		DepthMask: true,
	}
}

// Setup applies every group to dev. Disabled groups only disable their
// capability; their parameters are left as they are on the device.
func (p *PipelineState) Setup(dev gpu.Device) {
	if p.FaceCulling.Enabled {
		dev.Enable(gpu.CullFaceCap)
		dev.CullFace(p.FaceCulling.CulledFace)
		dev.FrontFace(p.FaceCulling.FrontFace)
	} else {
		dev.Disable(gpu.CullFaceCap)
	}

	if p.DepthTesting.Enabled {
		dev.Enable(gpu.DepthTestCap)
		dev.DepthFunc(p.DepthTesting.Function)
	} else {
		dev.Disable(gpu.DepthTestCap)
	}

	if p.Blending.Enabled {
		dev.Enable(gpu.BlendCap)
		dev.BlendEquation(p.Blending.Equation)
		dev.BlendFunc(p.Blending.SourceFactor, p.Blending.DestinationFactor)
		dev.BlendColor(p.Blending.ConstantColor)
	} else {
		dev.Disable(gpu.BlendCap)
	}

	m := p.ColorMask
	dev.ColorMask(m[0], m[1], m[2], m[3])
	dev.DepthMask(p.DepthMask)
}

// Deserialize overrides the fields present in cfg. Absent fields and
// unrecognized enum names keep their current value.
func (p *PipelineState) Deserialize(cfg config.Node) {
	if !cfg.IsObject() {
		return
	}

	if fc := cfg.Get("faceCulling"); fc.IsObject() {
		p.FaceCulling.Enabled = fc.Bool("enabled", p.FaceCulling.Enabled)
		p.FaceCulling.CulledFace = enumOr(fc, "culledFace", gpu.ParseFace, p.FaceCulling.CulledFace)
		p.FaceCulling.FrontFace = enumOr(fc, "frontFace", gpu.ParseWinding, p.FaceCulling.FrontFace)
	}

	if dt := cfg.Get("depthTesting"); dt.IsObject() {
		p.DepthTesting.Enabled = dt.Bool("enabled", p.DepthTesting.Enabled)
		p.DepthTesting.Function = enumOr(dt, "function", gpu.ParseCompareFunc, p.DepthTesting.Function)
	}

	if bl := cfg.Get("blending"); bl.IsObject() {
		b := &p.Blending
		b.Enabled = bl.Bool("enabled", b.Enabled)
		b.Equation = enumOr(bl, "equation", gpu.ParseBlendEquation, b.Equation)
		b.SourceFactor = enumOr(bl, "sourceFactor", gpu.ParseBlendFactor, b.SourceFactor)
		b.DestinationFactor = enumOr(bl, "destinationFactor", gpu.ParseBlendFactor, b.DestinationFactor)
		b.ConstantColor = bl.Vec4("constantColor", b.ConstantColor)
	}

	p.ColorMask = cfg.BVec4("colorMask", p.ColorMask)
	p.DepthMask = cfg.Bool("depthMask", p.DepthMask)
}

func enumOr[T any](cfg config.Node, key string, parse func(string) (T, bool), def T) T {
	name, ok := cfg.Get(key).AsString()
	if !ok {
		return def
	}
	if v, ok := parse(name); ok {
		return v
	}
	return def
}

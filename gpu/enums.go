package gpu

import (
	"fmt"
	"strings"
)

// Enum values equal the OpenGL constants so a GL backend can pass them
// through unchanged. Names are parsed as the GL spelling ("GL_BACK"); the
// "GL_" prefix is optional and matching is case-insensitive.

// Capability is a fixed-function feature toggled with Enable/Disable.
type Capability uint32

const (
	CullFaceCap  Capability = 0x0B44
	DepthTestCap Capability = 0x0B71
	BlendCap     Capability = 0x0BE2
)

var capabilityNames = map[string]Capability{
	"CULL_FACE":  CullFaceCap,
	"DEPTH_TEST": DepthTestCap,
	"BLEND":      BlendCap,
}

func (c Capability) String() string { return nameOf(capabilityNames, c) }

// Face selects front- or back-facing polygons.
type Face uint32

const (
	Front        Face = 0x0404
	Back         Face = 0x0405
	FrontAndBack Face = 0x0408
)

var faceNames = map[string]Face{
	"FRONT":          Front,
	"BACK":           Back,
	"FRONT_AND_BACK": FrontAndBack,
}

func ParseFace(name string) (Face, bool) { return parse(faceNames, name) }
func (f Face) String() string            { return nameOf(faceNames, f) }

// Winding is the vertex order that defines a front face.
type Winding uint32

const (
	CW  Winding = 0x0900
	CCW Winding = 0x0901
)

var windingNames = map[string]Winding{
	"CW":  CW,
	"CCW": CCW,
}

func ParseWinding(name string) (Winding, bool) { return parse(windingNames, name) }
func (w Winding) String() string               { return nameOf(windingNames, w) }

// CompareFunc is a depth comparison function.
type CompareFunc uint32

const (
	Never    CompareFunc = 0x0200
	Less     CompareFunc = 0x0201
	Equal    CompareFunc = 0x0202
	LEqual   CompareFunc = 0x0203
	Greater  CompareFunc = 0x0204
	NotEqual CompareFunc = 0x0205
	GEqual   CompareFunc = 0x0206
	Always   CompareFunc = 0x0207
)

var compareNames = map[string]CompareFunc{
	"NEVER":    Never,
	"LESS":     Less,
	"EQUAL":    Equal,
	"LEQUAL":   LEqual,
	"GREATER":  Greater,
	"NOTEQUAL": NotEqual,
	"GEQUAL":   GEqual,
	"ALWAYS":   Always,
}

func ParseCompareFunc(name string) (CompareFunc, bool) { return parse(compareNames, name) }
func (f CompareFunc) String() string                   { return nameOf(compareNames, f) }

// BlendEquation combines source and destination colors.
type BlendEquation uint32

const (
	FuncAdd             BlendEquation = 0x8006
	Min                 BlendEquation = 0x8007
	Max                 BlendEquation = 0x8008
	FuncSubtract        BlendEquation = 0x800A
	FuncReverseSubtract BlendEquation = 0x800B
)

var equationNames = map[string]BlendEquation{
	"FUNC_ADD":              FuncAdd,
	"MIN":                   Min,
	"MAX":                   Max,
	"FUNC_SUBTRACT":         FuncSubtract,
	"FUNC_REVERSE_SUBTRACT": FuncReverseSubtract,
}

func ParseBlendEquation(name string) (BlendEquation, bool) { return parse(equationNames, name) }
func (e BlendEquation) String() string                     { return nameOf(equationNames, e) }

// BlendFactor scales a blend operand.
type BlendFactor uint32

const (
	Zero                  BlendFactor = 0
	One                   BlendFactor = 1
	SrcColor              BlendFactor = 0x0300
	OneMinusSrcColor      BlendFactor = 0x0301
	SrcAlpha              BlendFactor = 0x0302
	OneMinusSrcAlpha      BlendFactor = 0x0303
	DstAlpha              BlendFactor = 0x0304
	OneMinusDstAlpha      BlendFactor = 0x0305
	DstColor              BlendFactor = 0x0306
	OneMinusDstColor      BlendFactor = 0x0307
	SrcAlphaSaturate      BlendFactor = 0x0308
	ConstantColor         BlendFactor = 0x8001
	OneMinusConstantColor BlendFactor = 0x8002
	ConstantAlpha         BlendFactor = 0x8003
	OneMinusConstantAlpha BlendFactor = 0x8004
)

var factorNames = map[string]BlendFactor{
	"ZERO":                     Zero,
	"ONE":                      One,
	"SRC_COLOR":                SrcColor,
	"ONE_MINUS_SRC_COLOR":      OneMinusSrcColor,
	"SRC_ALPHA":                SrcAlpha,
	"ONE_MINUS_SRC_ALPHA":      OneMinusSrcAlpha,
	"DST_ALPHA":                DstAlpha,
	"ONE_MINUS_DST_ALPHA":      OneMinusDstAlpha,
	"DST_COLOR":                DstColor,
	"ONE_MINUS_DST_COLOR":      OneMinusDstColor,
	"SRC_ALPHA_SATURATE":       SrcAlphaSaturate,
	"CONSTANT_COLOR":           ConstantColor,
	"ONE_MINUS_CONSTANT_COLOR": OneMinusConstantColor,
	"CONSTANT_ALPHA":           ConstantAlpha,
	"ONE_MINUS_CONSTANT_ALPHA": OneMinusConstantAlpha,
}

func ParseBlendFactor(name string) (BlendFactor, bool) { return parse(factorNames, name) }
func (f BlendFactor) String() string                   { return nameOf(factorNames, f) }

// Filter is a texture minification or magnification filter.
type Filter uint32

const (
	Nearest              Filter = 0x2600
	Linear               Filter = 0x2601
	NearestMipmapNearest Filter = 0x2700
	LinearMipmapNearest  Filter = 0x2701
	NearestMipmapLinear  Filter = 0x2702
	LinearMipmapLinear   Filter = 0x2703
)

var filterNames = map[string]Filter{
	"NEAREST":                Nearest,
	"LINEAR":                 Linear,
	"NEAREST_MIPMAP_NEAREST": NearestMipmapNearest,
	"LINEAR_MIPMAP_NEAREST":  LinearMipmapNearest,
	"NEAREST_MIPMAP_LINEAR":  NearestMipmapLinear,
	"LINEAR_MIPMAP_LINEAR":   LinearMipmapLinear,
}

func ParseFilter(name string) (Filter, bool) { return parse(filterNames, name) }
func (f Filter) String() string              { return nameOf(filterNames, f) }

// Wrap is a texture coordinate wrapping mode.
type Wrap uint32

const (
	Repeat         Wrap = 0x2901
	ClampToBorder  Wrap = 0x812D
	ClampToEdge    Wrap = 0x812F
	MirroredRepeat Wrap = 0x8370
)

var wrapNames = map[string]Wrap{
	"REPEAT":          Repeat,
	"CLAMP_TO_BORDER": ClampToBorder,
	"CLAMP_TO_EDGE":   ClampToEdge,
	"MIRRORED_REPEAT": MirroredRepeat,
}

func ParseWrap(name string) (Wrap, bool) { return parse(wrapNames, name) }
func (w Wrap) String() string            { return nameOf(wrapNames, w) }

// ClearMask selects the buffers cleared by Device.Clear.
type ClearMask uint32

const (
	DepthBuffer ClearMask = 0x0100
	ColorBuffer ClearMask = 0x4000
)

func parse[T ~uint32](table map[string]T, name string) (T, bool) {
	key := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(name)), "GL_")
	v, ok := table[key]
	return v, ok
}

func nameOf[T ~uint32](table map[string]T, v T) string {
	for k, e := range table {
		if e == v {
			return "GL_" + k
		}
	}
	return fmt.Sprintf("0x%04X", uint32(v))
}

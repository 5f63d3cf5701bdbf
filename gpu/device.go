// Package gpu is the narrow command surface the renderer and materials drive.
//
// Device mirrors the immediate-mode GL calls a forward renderer issues each
// frame. Factory creates and releases the resources that the asset cache
// owns. Both run on the goroutine that owns the graphics context.
package gpu

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/core"
)

// Attribute locations shared by every shader program.
const (
	AttribPosition = 0
	AttribColor    = 1
	AttribTexCoord = 2
	AttribNormal   = 3
)

// Device issues state changes, uniform uploads and draws.
//
// Uniform setters target the program bound by the last UseProgram call.
// Unknown uniform names are ignored, as GL ignores location -1.
type Device interface {
	Enable(c Capability)
	Disable(c Capability)
	CullFace(f Face)
	FrontFace(w Winding)
	DepthFunc(f CompareFunc)
	BlendEquation(e BlendEquation)
	BlendFunc(src, dst BlendFactor)
	BlendColor(c mgl32.Vec4)
	ColorMask(r, g, b, a bool)
	DepthMask(enabled bool)

	Viewport(x, y, width, height int32)
	ClearColor(c mgl32.Vec4)
	ClearDepth(d float32)
	Clear(mask ClearMask)

	UseProgram(p *Program)
	// ActiveTexture selects the unit targeted by BindTexture.
	ActiveTexture(unit uint32)
	// BindTexture binds t to the active unit; nil unbinds.
	BindTexture(t *Texture)
	// BindSampler binds s to unit; nil unbinds.
	BindSampler(unit uint32, s *Sampler)

	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec2(name string, v mgl32.Vec2)
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
	SetMat4(name string, v mgl32.Mat4)

	DrawMesh(m *Mesh)
}

// Factory creates and destroys GPU resources.
type Factory interface {
	CreateProgram(name string, src ShaderSource) (*Program, error)
	UploadTexture(name string, img *image.RGBA, mipmaps bool) (*Texture, error)
	CreateSampler(name string, params SamplerParams) (*Sampler, error)
	UploadMesh(name string, data *core.MeshData) (*Mesh, error)

	DeleteProgram(p *Program)
	DeleteTexture(t *Texture)
	DeleteSampler(s *Sampler)
	DeleteMesh(m *Mesh)
}

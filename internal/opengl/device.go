// Package opengl implements gpu.Device and gpu.Factory on an OpenGL 4.1
// core context. Every method must be called on the goroutine that owns the
// current context.
package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/log"
)

var (
	_ gpu.Device  = (*Device)(nil)
	_ gpu.Factory = (*Device)(nil)
)

type Device struct {
	logger   *log.Logger
	programs map[uint32]*program
	current  *program
}

// New loads the GL entry points for the current context.
func New(logger *log.Logger) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	if logger == nil {
		logger = log.Nop()
	}
	logger.Info("opengl ready",
		log.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		log.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))
	return &Device{logger: logger, programs: map[uint32]*program{}}, nil
}

func (d *Device) Enable(c gpu.Capability)  { gl.Enable(uint32(c)) }
func (d *Device) Disable(c gpu.Capability) { gl.Disable(uint32(c)) }
func (d *Device) CullFace(f gpu.Face)      { gl.CullFace(uint32(f)) }
func (d *Device) FrontFace(w gpu.Winding)  { gl.FrontFace(uint32(w)) }

func (d *Device) DepthFunc(f gpu.CompareFunc)       { gl.DepthFunc(uint32(f)) }
func (d *Device) BlendEquation(e gpu.BlendEquation) { gl.BlendEquation(uint32(e)) }

func (d *Device) BlendFunc(src, dst gpu.BlendFactor) {
	gl.BlendFunc(uint32(src), uint32(dst))
}

func (d *Device) BlendColor(c mgl32.Vec4) { gl.BlendColor(c[0], c[1], c[2], c[3]) }

func (d *Device) ColorMask(r, g, b, a bool) { gl.ColorMask(r, g, b, a) }
func (d *Device) DepthMask(enabled bool)    { gl.DepthMask(enabled) }

func (d *Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (d *Device) ClearColor(c mgl32.Vec4)  { gl.ClearColor(c[0], c[1], c[2], c[3]) }
func (d *Device) ClearDepth(v float32)     { gl.ClearDepthf(v) }
func (d *Device) Clear(mask gpu.ClearMask) { gl.Clear(uint32(mask)) }

func (d *Device) UseProgram(p *gpu.Program) {
	if p == nil {
		gl.UseProgram(0)
		d.current = nil
		return
	}
	gl.UseProgram(p.Handle)
	d.current = d.programs[p.Handle]
}

// uniform returns the location of name in the bound program, or -1.
func (d *Device) uniform(name string) int32 {
	if d.current == nil {
		return -1
	}
	return d.current.location(name)
}

func (d *Device) SetInt(name string, v int32)       { gl.Uniform1i(d.uniform(name), v) }
func (d *Device) SetFloat(name string, v float32)   { gl.Uniform1f(d.uniform(name), v) }
func (d *Device) SetVec2(name string, v mgl32.Vec2) { gl.Uniform2f(d.uniform(name), v[0], v[1]) }
func (d *Device) SetVec3(name string, v mgl32.Vec3) { gl.Uniform3f(d.uniform(name), v[0], v[1], v[2]) }

func (d *Device) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(d.uniform(name), v[0], v[1], v[2], v[3])
}

func (d *Device) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(d.uniform(name), 1, false, &m[0])
}

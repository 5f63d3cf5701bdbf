// Package gputest provides a recording gpu.Device and gpu.Factory for tests.
package gputest

import (
	"errors"
	"fmt"
	"image"
	"maps"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/core"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
)

// Op is one recorded device call.
type Op struct {
	Name string
	Arg  string
}

func (o Op) String() string { return o.Name + "(" + o.Arg + ")" }

// State is the effective fixed-function and binding state.
type State struct {
	Enabled       map[gpu.Capability]bool
	CullFace      gpu.Face
	FrontFace     gpu.Winding
	DepthFunc     gpu.CompareFunc
	BlendEquation gpu.BlendEquation
	BlendSrc      gpu.BlendFactor
	BlendDst      gpu.BlendFactor
	BlendColor    mgl32.Vec4
	ColorMask     [4]bool
	DepthMask     bool

	Viewport   [4]int32
	ClearColor mgl32.Vec4
	ClearDepth float32

	Program    *gpu.Program
	ActiveUnit uint32
	Textures   map[uint32]*gpu.Texture
	Samplers   map[uint32]*gpu.Sampler
}

// Draw captures a DrawMesh call with the uniforms of the bound program.
type Draw struct {
	Program  *gpu.Program
	Mesh     *gpu.Mesh
	Uniforms map[string]any
}

// Recorder implements gpu.Device and gpu.Factory in memory.
type Recorder struct {
	Ops    []Op
	State  State
	Draws  []Draw
	Clears int

	// Uniforms holds the last value set per program and name.
	Uniforms map[*gpu.Program]map[string]any

	// FailPrograms makes CreateProgram fail for the named programs.
	FailPrograms map[string]bool

	Programs []*gpu.Program
	Textures []*gpu.Texture
	Samplers []*gpu.Sampler
	Meshes   []*gpu.Mesh
	Deleted  int

	next uint32
}

// New returns a Recorder in the GL initial state.
func New() *Recorder {
	r := &Recorder{Uniforms: map[*gpu.Program]map[string]any{}}
	r.Reset()
	return r
}

// Reset forgets recorded calls and restores the initial state.
// Created resources and uniform values are kept.
func (r *Recorder) Reset() {
	r.Ops = nil
	r.Draws = nil
	r.Clears = 0
	r.State = State{
		Enabled:       map[gpu.Capability]bool{},
		CullFace:      gpu.Back,
		FrontFace:     gpu.CCW,
		DepthFunc:     gpu.Less,
		BlendEquation: gpu.FuncAdd,
		BlendSrc:      gpu.One,
		BlendDst:      gpu.Zero,
		ColorMask:     [4]bool{true, true, true, true},
		DepthMask:     true,
		ClearDepth:    1,
		Textures:      map[uint32]*gpu.Texture{},
		Samplers:      map[uint32]*gpu.Sampler{},
	}
}

// Snapshot returns a deep copy of the effective state.
func (r *Recorder) Snapshot() State {
	s := r.State
	s.Enabled = maps.Clone(r.State.Enabled)
	s.Textures = maps.Clone(r.State.Textures)
	s.Samplers = maps.Clone(r.State.Samplers)
	return s
}

// Count returns how many ops with the given name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Uniform returns the value last set for name on the bound program.
func (r *Recorder) Uniform(name string) (any, bool) {
	v, ok := r.Uniforms[r.State.Program][name]
	return v, ok
}

func (r *Recorder) record(name string, args ...any) {
	arg := ""
	for i, a := range args {
		if i > 0 {
			arg += ", "
		}
		arg += fmt.Sprint(a)
	}
	r.Ops = append(r.Ops, Op{Name: name, Arg: arg})
}

func (r *Recorder) Enable(c gpu.Capability) {
	r.record("Enable", c)
	r.State.Enabled[c] = true
}

func (r *Recorder) Disable(c gpu.Capability) {
	r.record("Disable", c)
	r.State.Enabled[c] = false
}

func (r *Recorder) CullFace(f gpu.Face) {
	r.record("CullFace", f)
	r.State.CullFace = f
}

func (r *Recorder) FrontFace(w gpu.Winding) {
	r.record("FrontFace", w)
	r.State.FrontFace = w
}

func (r *Recorder) DepthFunc(f gpu.CompareFunc) {
	r.record("DepthFunc", f)
	r.State.DepthFunc = f
}

func (r *Recorder) BlendEquation(e gpu.BlendEquation) {
	r.record("BlendEquation", e)
	r.State.BlendEquation = e
}

func (r *Recorder) BlendFunc(src, dst gpu.BlendFactor) {
	r.record("BlendFunc", src, dst)
	r.State.BlendSrc, r.State.BlendDst = src, dst
}

func (r *Recorder) BlendColor(c mgl32.Vec4) {
	r.record("BlendColor", c)
	r.State.BlendColor = c
}

func (r *Recorder) ColorMask(red, green, blue, alpha bool) {
	r.record("ColorMask", red, green, blue, alpha)
	r.State.ColorMask = [4]bool{red, green, blue, alpha}
}

func (r *Recorder) DepthMask(enabled bool) {
	r.record("DepthMask", enabled)
	r.State.DepthMask = enabled
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
	r.State.Viewport = [4]int32{x, y, width, height}
}

func (r *Recorder) ClearColor(c mgl32.Vec4) {
	r.record("ClearColor", c)
	r.State.ClearColor = c
}

func (r *Recorder) ClearDepth(d float32) {
	r.record("ClearDepth", d)
	r.State.ClearDepth = d
}

func (r *Recorder) Clear(mask gpu.ClearMask) {
	r.record("Clear", uint32(mask))
	r.Clears++
}

func (r *Recorder) UseProgram(p *gpu.Program) {
	r.record("UseProgram", programName(p))
	r.State.Program = p
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.record("ActiveTexture", unit)
	r.State.ActiveUnit = unit
}

func (r *Recorder) BindTexture(t *gpu.Texture) {
	name := "<nil>"
	if t != nil {
		name = t.Name
	}
	r.record("BindTexture", r.State.ActiveUnit, name)
	if t == nil {
		delete(r.State.Textures, r.State.ActiveUnit)
		return
	}
	r.State.Textures[r.State.ActiveUnit] = t
}

func (r *Recorder) BindSampler(unit uint32, s *gpu.Sampler) {
	name := "<nil>"
	if s != nil {
		name = s.Name
	}
	r.record("BindSampler", unit, name)
	if s == nil {
		delete(r.State.Samplers, unit)
		return
	}
	r.State.Samplers[unit] = s
}

func (r *Recorder) setUniform(op, name string, v any) {
	r.record(op, name, v)
	u := r.Uniforms[r.State.Program]
	if u == nil {
		u = map[string]any{}
		r.Uniforms[r.State.Program] = u
	}
	u[name] = v
}

func (r *Recorder) SetInt(name string, v int32)       { r.setUniform("SetInt", name, v) }
func (r *Recorder) SetFloat(name string, v float32)   { r.setUniform("SetFloat", name, v) }
func (r *Recorder) SetVec2(name string, v mgl32.Vec2) { r.setUniform("SetVec2", name, v) }
func (r *Recorder) SetVec3(name string, v mgl32.Vec3) { r.setUniform("SetVec3", name, v) }
func (r *Recorder) SetVec4(name string, v mgl32.Vec4) { r.setUniform("SetVec4", name, v) }
func (r *Recorder) SetMat4(name string, v mgl32.Mat4) { r.setUniform("SetMat4", name, v) }

func (r *Recorder) DrawMesh(m *gpu.Mesh) {
	name := "<nil>"
	if m != nil {
		name = m.Name
	}
	r.record("DrawMesh", name)
	r.Draws = append(r.Draws, Draw{
		Program:  r.State.Program,
		Mesh:     m,
		Uniforms: maps.Clone(r.Uniforms[r.State.Program]),
	})
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) CreateProgram(name string, src gpu.ShaderSource) (*gpu.Program, error) {
	if r.FailPrograms[name] {
		return nil, fmt.Errorf("program %q: %w", name, errors.New("link failed"))
	}
	if src.Vertex == "" || src.Fragment == "" {
		return nil, fmt.Errorf("program %q: empty shader source", name)
	}
	p := &gpu.Program{Name: name, Handle: r.handle()}
	r.Programs = append(r.Programs, p)
	return p, nil
}

func (r *Recorder) UploadTexture(name string, img *image.RGBA, _ bool) (*gpu.Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("texture %q: nil image", name)
	}
	b := img.Bounds()
	t := &gpu.Texture{Name: name, Width: b.Dx(), Height: b.Dy(), Handle: r.handle()}
	r.Textures = append(r.Textures, t)
	return t, nil
}

func (r *Recorder) CreateSampler(name string, params gpu.SamplerParams) (*gpu.Sampler, error) {
	s := &gpu.Sampler{Name: name, Params: params, Handle: r.handle()}
	r.Samplers = append(r.Samplers, s)
	return s, nil
}

func (r *Recorder) UploadMesh(name string, data *core.MeshData) (*gpu.Mesh, error) {
	if data == nil || len(data.Vertices) == 0 {
		return nil, fmt.Errorf("mesh %q: no vertices", name)
	}
	m := &gpu.Mesh{
		Name:        name,
		Handle:      r.handle(),
		VertexCount: int32(len(data.Vertices)),
		IndexCount:  int32(len(data.Indices)),
	}
	r.Meshes = append(r.Meshes, m)
	return m, nil
}

func (r *Recorder) DeleteProgram(*gpu.Program) { r.Deleted++ }
func (r *Recorder) DeleteTexture(*gpu.Texture) { r.Deleted++ }
func (r *Recorder) DeleteSampler(*gpu.Sampler) { r.Deleted++ }
func (r *Recorder) DeleteMesh(*gpu.Mesh)       { r.Deleted++ }

func programName(p *gpu.Program) string {
	if p == nil {
		return "<nil>"
	}
	return p.Name
}

var (
	_ gpu.Device  = (*Recorder)(nil)
	_ gpu.Factory = (*Recorder)(nil)
)

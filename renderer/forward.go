// Package renderer turns a World into ordered GPU submissions.
package renderer

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/components"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/log"
	"github.com/NouranFoda/CMPN205-Graphics-Project/material"
)

// MaxLights is the size of the shader's light array.
const MaxLights = 8

// RenderCommand is one mesh draw gathered for the current frame.
type RenderCommand struct {
	LocalToWorld mgl32.Mat4
	// Pivot is the world-space position of the mesh's local origin.
	Pivot    mgl32.Vec3
	Mesh     *gpu.Mesh
	Material material.Material
}

// Stats describes the most recent Render call.
type Stats struct {
	Frame       uint64
	Opaque      int
	Transparent int
	Lights      int
	HasCamera   bool
}

type lightNames struct {
	typ, diffuse, specular, direction, position, attenuation, coneAngles string
}

// ForwardRenderer draws every MeshRenderer straight to the framebuffer:
// opaque commands first in gather order, then transparent commands back to
// front with per-light uniforms.
type ForwardRenderer struct {
	dev    gpu.Device
	logger *log.Logger

	opaque      []RenderCommand
	transparent []RenderCommand
	lights      []*components.Light

	names [MaxLights]lightNames
	stats Stats
}

// Option configures a ForwardRenderer.
type Option func(*ForwardRenderer)

// WithLogger sets the logger used for per-frame debug output.
func WithLogger(l *log.Logger) Option {
	return func(r *ForwardRenderer) { r.logger = l }
}

// New returns a renderer that issues its commands to dev.
func New(dev gpu.Device, opts ...Option) *ForwardRenderer {
	r := &ForwardRenderer{dev: dev, logger: log.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	for i := range r.names {
		p := fmt.Sprintf("lights[%d].", i)
		r.names[i] = lightNames{
			typ:         p + "type",
			diffuse:     p + "diffuse",
			specular:    p + "specular",
			direction:   p + "direction",
			position:    p + "position",
			attenuation: p + "attenuation",
			coneAngles:  p + "cone_angles",
		}
	}
	return r
}

// Render draws world into the viewport at origin with the given size.
// A world without a camera draws nothing.
func (r *ForwardRenderer) Render(world *ecs.World, origin, size [2]int32) {
	r.stats = Stats{Frame: r.stats.Frame + 1}

	camera := r.gather(world)
	r.stats.Lights = min(len(r.lights), MaxLights)
	if camera == nil {
		r.logger.Debug("no camera in world, skipping frame")
		return
	}
	r.stats.HasCamera = true

	forward := camera.Forward()
	sortBackToFront(r.transparent, forward)

	eye := camera.Eye()
	vp := camera.ProjectionMatrix(size).Mul4(camera.ViewMatrix())

	dev := r.dev
	dev.Viewport(origin[0], origin[1], size[0], size[1])
	dev.ClearColor(mgl32.Vec4{0, 0, 0, 1})
	dev.ClearDepth(1)
	dev.ColorMask(true, true, true, true)
	dev.DepthMask(true)
	dev.Clear(gpu.ColorBuffer | gpu.DepthBuffer)

	for i := range r.opaque {
		cmd := &r.opaque[i]
		cmd.Material.Setup(dev)
		setTransforms(dev, cmd, vp)
		dev.DrawMesh(cmd.Mesh)
	}
	r.stats.Opaque = len(r.opaque)

	for i := range r.transparent {
		cmd := &r.transparent[i]
		cmd.Material.Setup(dev)
		setTransforms(dev, cmd, vp)
		dev.SetVec3("eye", eye)
		r.bindLights()
		dev.DrawMesh(cmd.Mesh)
	}
	r.stats.Transparent = len(r.transparent)

	r.logger.Debug("frame rendered",
		log.Int("opaque", r.stats.Opaque),
		log.Int("transparent", r.stats.Transparent),
		log.Int("lights", r.stats.Lights))
}

// Stats returns the counters of the most recent Render call.
func (r *ForwardRenderer) Stats() Stats { return r.stats }

// Commands returns the scratch command lists of the most recent frame.
// The slices are reused by the next Render call.
func (r *ForwardRenderer) Commands() (opaque, transparent []RenderCommand) {
	return r.opaque, r.transparent
}

// gather rebuilds the scratch lists and returns the first camera found.
func (r *ForwardRenderer) gather(world *ecs.World) *components.Camera {
	r.opaque = r.opaque[:0]
	r.transparent = r.transparent[:0]
	clear(r.lights)
	r.lights = r.lights[:0]

	var camera *components.Camera
	for _, e := range world.Entities() {
		if l, ok := ecs.Get[*components.Light](e); ok {
			r.lights = append(r.lights, l)
		}
		if camera == nil {
			if c, ok := ecs.Get[*components.Camera](e); ok {
				camera = c
			}
		}
		mr, ok := ecs.Get[*components.MeshRenderer](e)
		if !ok {
			continue
		}
		if mr.Mesh == nil || mr.Material == nil {
			panic(fmt.Sprintf("renderer: mesh renderer on %q has no mesh or material", e.Name))
		}
		m := e.LocalToWorld()
		cmd := RenderCommand{
			LocalToWorld: m,
			Pivot:        m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3(),
			Mesh:         mr.Mesh,
			Material:     mr.Material,
		}
		if mr.Material.Base().Transparent {
			r.transparent = append(r.transparent, cmd)
		} else {
			r.opaque = append(r.opaque, cmd)
		}
	}
	return camera
}

// sortBackToFront orders commands by descending pivot.z * forward.z.
func sortBackToFront(cmds []RenderCommand, forward mgl32.Vec3) {
	fz := forward.Z()
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Pivot.Z()*fz > cmds[j].Pivot.Z()*fz
	})
}

func setTransforms(dev gpu.Device, cmd *RenderCommand, vp mgl32.Mat4) {
	dev.SetMat4("transform", cmd.LocalToWorld)
	dev.SetMat4("transform_IT", cmd.LocalToWorld.Inv().Transpose())
	dev.SetMat4("VP", vp)
}

func (r *ForwardRenderer) bindLights() {
	dev := r.dev
	n := min(len(r.lights), MaxLights)
	dev.SetInt("light_count", int32(n))
	for i, l := range r.lights[:n] {
		names := &r.names[i]
		dev.SetInt(names.typ, int32(l.Type))
		dev.SetVec3(names.diffuse, normalize(l.Diffuse))
		dev.SetVec3(names.specular, normalize(l.Specular))
		switch l.Type {
		case components.Directional:
			dev.SetVec3(names.direction, normalize(l.Direction))
		case components.Point:
			dev.SetVec3(names.position, l.Position())
			dev.SetVec3(names.attenuation, l.Attenuation)
		case components.Spot:
			dev.SetVec3(names.position, l.Position())
			dev.SetVec3(names.direction, normalize(l.Direction))
			dev.SetVec3(names.attenuation, l.Attenuation)
			dev.SetVec2(names.coneAngles, l.ConeAngles)
		}
	}
}

// normalize leaves the zero vector unchanged.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

package renderer

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NouranFoda/CMPN205-Graphics-Project/components"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/gputest"
	"github.com/NouranFoda/CMPN205-Graphics-Project/material"
)

var viewport = [2]int32{800, 600}

// assertVecNear compares with an absolute tolerance; mgl32's ApproxEqual
// turns strict when one side is exactly zero.
func assertVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5, "want %v\ngot  %v", want, got)
}

func assertMatNear(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5, "want %v\ngot  %v", want, got)
}

type scene struct {
	t      *testing.T
	world  *ecs.World
	shader *gpu.Program
	mesh   *gpu.Mesh
}

func newScene(t *testing.T) *scene {
	return &scene{
		t:      t,
		world:  ecs.NewWorld(),
		shader: &gpu.Program{Name: "tinted", Handle: 1},
		mesh:   &gpu.Mesh{Name: "cube", Handle: 2, VertexCount: 24, IndexCount: 36},
	}
}

func (s *scene) add(e *ecs.Entity, c ecs.Component) {
	s.t.Helper()
	require.NoError(s.t, e.AddComponent(c))
}

func (s *scene) camera(pos mgl32.Vec3) *ecs.Entity {
	e := s.world.NewEntity("camera", nil)
	e.Transform.Position = pos
	s.add(e, components.NewCamera())
	return e
}

func (s *scene) renderer(name string, pos mgl32.Vec3, transparent bool) *ecs.Entity {
	e := s.world.NewEntity(name, nil)
	e.Transform.Position = pos
	m := material.NewTinted()
	m.Shader = s.shader
	m.Transparent = transparent
	s.add(e, &components.MeshRenderer{Mesh: &gpu.Mesh{Name: name}, Material: m})
	return e
}

func (s *scene) light(name string, kind components.LightType, pos mgl32.Vec3) *components.Light {
	e := s.world.NewEntity(name, nil)
	e.Transform.Position = pos
	l := components.NewLight()
	l.Type = kind
	s.add(e, l)
	return l
}

func TestCameraOnlyClearsOnce(t *testing.T) {
	s := newScene(t)
	s.camera(mgl32.Vec3{0, 0, 10})

	rec := gputest.New()
	r := New(rec)
	r.Render(s.world, [2]int32{0, 0}, viewport)

	assert.Empty(t, rec.Draws)
	assert.Equal(t, 1, rec.Clears)
	assert.Equal(t, [4]int32{0, 0, 800, 600}, rec.State.Viewport)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, rec.State.ClearColor)
	assert.Equal(t, float32(1), rec.State.ClearDepth)
	assert.True(t, r.Stats().HasCamera)
}

func TestClearEnablesWritesFirst(t *testing.T) {
	s := newScene(t)
	s.camera(mgl32.Vec3{})

	rec := gputest.New()
	rec.ColorMask(false, false, false, false)
	rec.DepthMask(false)
	rec.Ops = nil
	New(rec).Render(s.world, [2]int32{}, viewport)

	names := make([]string, len(rec.Ops))
	for i, op := range rec.Ops {
		names[i] = op.Name
	}
	assert.Equal(t, []string{"Viewport", "ClearColor", "ClearDepth", "ColorMask", "DepthMask", "Clear"}, names)
	assert.Equal(t, [4]bool{true, true, true, true}, rec.State.ColorMask)
	assert.True(t, rec.State.DepthMask)
}

func TestNoCameraTouchesNothing(t *testing.T) {
	s := newScene(t)
	s.renderer("box", mgl32.Vec3{}, false)
	s.light("sun", components.Directional, mgl32.Vec3{})

	rec := gputest.New()
	r := New(rec)
	r.Render(s.world, [2]int32{}, viewport)

	assert.Empty(t, rec.Ops)
	assert.False(t, r.Stats().HasCamera)
	assert.Zero(t, r.Stats().Opaque)
}

func TestOneOpaqueRenderer(t *testing.T) {
	s := newScene(t)
	cam := s.camera(mgl32.Vec3{0, 0, 10})
	box := s.renderer("box", mgl32.Vec3{1, 2, 3}, false)

	rec := gputest.New()
	r := New(rec)
	r.Render(s.world, [2]int32{}, viewport)

	require.Len(t, rec.Draws, 1)
	st := r.Stats()
	assert.Equal(t, 1, st.Opaque)
	assert.Equal(t, 0, st.Transparent)

	d := rec.Draws[0]
	assert.Equal(t, "box", d.Mesh.Name)
	world := box.LocalToWorld()
	assert.Equal(t, world, d.Uniforms["transform"])
	assertMatNear(t, world.Inv().Transpose(), d.Uniforms["transform_IT"].(mgl32.Mat4))

	camera, _ := ecs.Get[*components.Camera](cam)
	vp := camera.ProjectionMatrix(viewport).Mul4(camera.ViewMatrix())
	assertMatNear(t, vp, d.Uniforms["VP"].(mgl32.Mat4))
	assert.Contains(t, d.Uniforms, "tint")
	assert.NotContains(t, d.Uniforms, "light_count")
}

func TestTransparentBackToFront(t *testing.T) {
	s := newScene(t)
	s.camera(mgl32.Vec3{0, 0, 10})
	s.renderer("near", mgl32.Vec3{0, 0, 5}, true)
	s.renderer("far", mgl32.Vec3{0, 0, 1}, true)
	s.renderer("solid", mgl32.Vec3{0, 0, 0}, false)

	rec := gputest.New()
	r := New(rec)
	r.Render(s.world, [2]int32{}, viewport)

	require.Len(t, rec.Draws, 3)
	assert.Equal(t, "solid", rec.Draws[0].Mesh.Name)
	assert.Equal(t, "far", rec.Draws[1].Mesh.Name)
	assert.Equal(t, "near", rec.Draws[2].Mesh.Name)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, rec.Draws[2].Uniforms["eye"])
	assert.Equal(t, 2, r.Stats().Transparent)
}

func TestSortKeyNonIncreasing(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, forward := range []mgl32.Vec3{{0, 0, -1}, {0, 0, 1}, {0.6, 0, -0.8}} {
		cmds := make([]RenderCommand, 50)
		for i := range cmds {
			cmds[i].Pivot = mgl32.Vec3{0, 0, rng.Float32()*40 - 20}
		}
		sortBackToFront(cmds, forward)
		for i := 1; i < len(cmds); i++ {
			assert.GreaterOrEqual(t, cmds[i-1].Pivot.Z()*forward.Z(), cmds[i].Pivot.Z()*forward.Z())
		}
	}
}

func TestLightCap(t *testing.T) {
	s := newScene(t)
	s.camera(mgl32.Vec3{0, 0, 10})
	for i := 0; i < 10; i++ {
		s.light("lamp", components.Point, mgl32.Vec3{float32(i), 0, 0})
	}
	s.renderer("glass", mgl32.Vec3{}, true)

	rec := gputest.New()
	r := New(rec)
	r.Render(s.world, [2]int32{}, viewport)

	require.Len(t, rec.Draws, 1)
	u := rec.Draws[0].Uniforms
	assert.Equal(t, int32(MaxLights), u["light_count"])
	for i := 0; i < MaxLights; i++ {
		n := r.names[i]
		assert.Equal(t, int32(components.Point), u[n.typ])
		assertVecNear(t, mgl32.Vec3{float32(i), 0, 0}, u[n.position].(mgl32.Vec3))
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, u[n.attenuation])
	}
	assert.NotContains(t, u, "lights[8].type")
	assert.NotContains(t, u, "lights[9].position")
	assert.Equal(t, MaxLights, r.Stats().Lights)
}

func TestLightKindUniforms(t *testing.T) {
	s := newScene(t)
	s.camera(mgl32.Vec3{0, 0, 10})
	sun := s.light("sun", components.Directional, mgl32.Vec3{})
	sun.Direction = mgl32.Vec3{0, -2, 0}
	sun.Diffuse = mgl32.Vec3{2, 0, 0}
	spot := s.light("spot", components.Spot, mgl32.Vec3{0, 3, 0})
	spot.Direction = mgl32.Vec3{0, 0, -4}
	spot.ConeAngles = mgl32.Vec2{0.1, 0.2}
	s.renderer("glass", mgl32.Vec3{}, true)

	rec := gputest.New()
	New(rec).Render(s.world, [2]int32{}, viewport)

	require.Len(t, rec.Draws, 1)
	u := rec.Draws[0].Uniforms
	assert.Equal(t, int32(2), u["light_count"])

	assert.Equal(t, int32(components.Directional), u["lights[0].type"])
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, u["lights[0].direction"])
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, u["lights[0].diffuse"])
	assert.NotContains(t, u, "lights[0].position")

	assert.Equal(t, int32(components.Spot), u["lights[1].type"])
	assertVecNear(t, mgl32.Vec3{0, 3, 0}, u["lights[1].position"].(mgl32.Vec3))
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, u["lights[1].direction"])
	assert.Equal(t, mgl32.Vec2{0.1, 0.2}, u["lights[1].cone_angles"])
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, u["lights[1].attenuation"])
}

func TestNoStaleCommandsAfterCameraLessFrame(t *testing.T) {
	s := newScene(t)
	cam := s.camera(mgl32.Vec3{0, 0, 10})
	s.renderer("a", mgl32.Vec3{}, false)
	b := s.renderer("b", mgl32.Vec3{}, true)
	s.light("sun", components.Directional, mgl32.Vec3{})

	rec := gputest.New()
	r := New(rec)
	r.Render(s.world, [2]int32{}, viewport)
	opaque, transparent := r.Commands()
	require.Len(t, opaque, 1)
	require.Len(t, transparent, 1)

	s.world.MarkForRemoval(cam)
	s.world.MarkForRemoval(b)
	s.world.DeleteMarkedEntities()
	rec.Reset()
	r.Render(s.world, [2]int32{}, viewport)

	opaque, transparent = r.Commands()
	assert.Len(t, opaque, 1)
	assert.Empty(t, transparent)
	assert.Empty(t, rec.Draws)
	assert.Equal(t, uint64(2), r.Stats().Frame)

	// lights do not accumulate across frames
	assert.Len(t, r.lights, 1)
}

func TestFirstCameraWins(t *testing.T) {
	s := newScene(t)
	s.camera(mgl32.Vec3{0, 0, 10})
	s.camera(mgl32.Vec3{0, 0, -10})
	s.renderer("glass", mgl32.Vec3{}, true)

	rec := gputest.New()
	New(rec).Render(s.world, [2]int32{}, viewport)
	require.Len(t, rec.Draws, 1)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, rec.Draws[0].Uniforms["eye"])
}

func TestMissingMaterialPanics(t *testing.T) {
	s := newScene(t)
	s.camera(mgl32.Vec3{})
	e := s.world.NewEntity("broken", nil)
	s.add(e, &components.MeshRenderer{Mesh: s.mesh})

	assert.Panics(t, func() {
		New(gputest.New()).Render(s.world, [2]int32{}, viewport)
	})
}

package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NouranFoda/CMPN205-Graphics-Project/components"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
)

// assertVecNear compares with an absolute tolerance; mgl32's ApproxEqual
// turns strict when one side is exactly zero.
func assertVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5, "want %v\ngot  %v", want, got)
}

func TestMovementIntegrates(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity("spinner", nil)
	require.NoError(t, e.AddComponent(&components.Movement{
		LinearVelocity:  mgl32.Vec3{1, 0, -2},
		AngularVelocity: mgl32.Vec3{0, 1, 0},
	}))
	still := w.NewEntity("still", nil)

	var sys MovementSystem
	sys.Update(w, 0.5)
	sys.Update(w, 0.5)

	assertVecNear(t, mgl32.Vec3{1, 0, -2}, e.Transform.Position)
	assertVecNear(t, mgl32.Vec3{0, 1, 0}, e.Transform.Rotation)
	assert.Equal(t, mgl32.Vec3{}, still.Transform.Position)
}

func collider(t *testing.T, w *ecs.World, name string, pos mgl32.Vec3, radius float32, resp components.Response) *ecs.Entity {
	t.Helper()
	e := w.NewEntity(name, nil)
	e.Transform.Position = pos
	c := components.NewCollision()
	c.Radius = radius
	c.Response = resp
	require.NoError(t, e.AddComponent(c))
	return e
}

func TestCollisionRemovesAfterScan(t *testing.T) {
	w := ecs.NewWorld()
	// scale (1,1,1) multiplies radii by sqrt(3)
	player := collider(t, w, "player", mgl32.Vec3{}, 0.5, components.ResponseNone)
	coin := collider(t, w, "coin", mgl32.Vec3{1, 0, 0}, 0.5, components.ResponseRemove)
	coin2 := collider(t, w, "coin", mgl32.Vec3{0, 1.5, 0}, 0.5, components.ResponseRemove)
	wall := collider(t, w, "wall", mgl32.Vec3{0, 0, 1}, 0.5, components.ResponseNone)
	far := collider(t, w, "far", mgl32.Vec3{10, 0, 0}, 0.5, components.ResponseRemove)

	var seen []string
	sys := &CollisionSystem{
		Target: "player",
		OnHit: func(h Hit) {
			assert.Same(t, player, h.Target)
			assert.NotNil(t, w.Entity(h.Other.ID()), "entities stay alive during the scan")
			seen = append(seen, h.Other.Name)
		},
	}
	hits := sys.Update(w)

	assert.Len(t, hits, 3)
	assert.Equal(t, []string{"coin", "coin", "wall"}, seen)
	assert.Nil(t, w.Entity(coin.ID()))
	assert.Nil(t, w.Entity(coin2.ID()))
	assert.NotNil(t, w.Entity(wall.ID()))
	assert.NotNil(t, w.Entity(far.ID()))
	assert.Equal(t, 3, w.Len())
}

func TestCollisionWithoutTarget(t *testing.T) {
	w := ecs.NewWorld()
	collider(t, w, "coin", mgl32.Vec3{}, 1, components.ResponseRemove)
	sys := &CollisionSystem{Target: "player"}
	assert.Empty(t, sys.Update(w))
	assert.Equal(t, 1, w.Len())

	w.NewEntity("player", nil)
	assert.Empty(t, sys.Update(w))
}

type fakeInput struct {
	pressed map[Action]bool
	looking bool
	cursor  mgl32.Vec2
}

func (f *fakeInput) Pressed(a Action) bool { return f.pressed[a] }
func (f *fakeInput) Looking() bool         { return f.looking }
func (f *fakeInput) Cursor() mgl32.Vec2    { return f.cursor }

func TestFreeCameraMovesAlongFacing(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity("eye", nil)
	cam := components.NewCamera()
	require.NoError(t, e.AddComponent(cam))

	sys := NewFreeCameraSystem()
	in := &fakeInput{pressed: map[Action]bool{MoveForward: true}}
	sys.Update(w, in, 0.5)
	assertVecNear(t, mgl32.Vec3{0, 0, -3}, e.Transform.Position)

	in.pressed = map[Action]bool{MoveRight: true, Sprint: true}
	sys.Update(w, in, 0.5)
	assertVecNear(t, mgl32.Vec3{9, 0, -3}, e.Transform.Position)
}

func TestFreeCameraLook(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity("eye", nil)
	cam := components.NewCamera()
	require.NoError(t, e.AddComponent(cam))

	sys := NewFreeCameraSystem()
	sys.Sensitivity = 0.01
	in := &fakeInput{pressed: map[Action]bool{}, looking: true}

	// The first sample only primes the cursor.
	sys.Update(w, in, 0.1)
	assert.Equal(t, mgl32.Vec3{}, e.Transform.Rotation)

	in.cursor = mgl32.Vec2{-50, 0}
	sys.Update(w, in, 0.1)
	assert.InDelta(t, 0.5, e.Transform.Rotation.Y(), 1e-6)

	// Pitch clamps short of straight up.
	in.cursor = mgl32.Vec2{-50, -1000}
	sys.Update(w, in, 0.1)
	assert.InDelta(t, mgl32.DegToRad(89), e.Transform.Rotation.X(), 1e-6)

	// Movement follows the same facing the camera renders with.
	start := e.Transform.Position
	in.looking = false
	in.pressed[MoveForward] = true
	sys.Update(w, in, 1)
	moved := e.Transform.Position.Sub(start).Normalize()
	assertVecNear(t, cam.Forward().Normalize(), moved)
}

func TestFreeCameraWithoutCamera(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity("thing", nil)
	NewFreeCameraSystem().Update(w, &fakeInput{pressed: map[Action]bool{MoveForward: true}}, 1)
	assert.Equal(t, mgl32.Vec3{}, e.Transform.Position)
}

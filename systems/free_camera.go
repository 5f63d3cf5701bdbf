package systems

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/components"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
)

// Action is a movement input the free camera responds to.
type Action int

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	Sprint
)

// Input is polled once per update.
type Input interface {
	Pressed(a Action) bool
	// Looking reports whether cursor motion should rotate the camera.
	Looking() bool
	Cursor() mgl32.Vec2
}

// FreeCameraSystem flies the first camera's entity: WASD-style translation
// relative to its facing plus yaw/pitch from cursor motion while looking.
// Rotation is written to the entity's Transform, yaw on Y and pitch on X.
type FreeCameraSystem struct {
	Speed       float32 // units per second
	SprintScale float32
	Sensitivity float32 // radians per cursor pixel

	last    mgl32.Vec2
	hasLast bool
}

func NewFreeCameraSystem() *FreeCameraSystem {
	return &FreeCameraSystem{
		Speed:       6,
		SprintScale: 3,
		Sensitivity: 0.003,
	}
}

var maxPitch = mgl32.DegToRad(89)

func (s *FreeCameraSystem) Update(world *ecs.World, in Input, dt float32) {
	var owner *ecs.Entity
	for _, e := range world.Entities() {
		if _, ok := ecs.Get[*components.Camera](e); ok {
			owner = e
			break
		}
	}
	if owner == nil {
		return
	}
	t := &owner.Transform

	if in.Looking() {
		cur := in.Cursor()
		if s.hasLast {
			d := cur.Sub(s.last)
			t.Rotation[1] -= d.X() * s.Sensitivity
			t.Rotation[0] = mgl32.Clamp(t.Rotation[0]-d.Y()*s.Sensitivity, -maxPitch, maxPitch)
		}
		s.last, s.hasLast = cur, true
	} else {
		s.hasLast = false
	}

	yaw, pitch := t.Rotation[1], t.Rotation[0]
	sy, cy := math32.Sincos(yaw)
	sp, cp := math32.Sincos(pitch)
	forward := mgl32.Vec3{-sy * cp, sp, -cy * cp}
	right := mgl32.Vec3{cy, 0, -sy}
	up := mgl32.Vec3{0, 1, 0}

	var move mgl32.Vec3
	for _, m := range []struct {
		a   Action
		dir mgl32.Vec3
	}{
		{MoveForward, forward},
		{MoveBackward, forward.Mul(-1)},
		{MoveRight, right},
		{MoveLeft, right.Mul(-1)},
		{MoveUp, up},
		{MoveDown, up.Mul(-1)},
	} {
		if in.Pressed(m.a) {
			move = move.Add(m.dir)
		}
	}
	speed := s.Speed
	if in.Pressed(Sprint) {
		speed *= s.SprintScale
	}
	t.Position = t.Position.Add(move.Mul(speed * dt))
}

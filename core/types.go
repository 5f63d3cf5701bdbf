package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
	ColorRed   = Color{1, 0, 0, 1}
	ColorGreen = Color{0, 1, 0, 1}
	ColorBlue  = Color{0, 0, 1, 1}
)

// Vec4 returns the color as an RGBA vector.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// Vertex is the interleaved layout uploaded to vertex buffers.
// Field order matches the attribute locations in package gpu.
type Vertex struct {
	Position mgl32.Vec3
	Color    Color
	UV       mgl32.Vec2
	Normal   mgl32.Vec3
}

type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

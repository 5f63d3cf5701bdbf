package asset

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/core"
)

// Primitive builds a named builtin mesh. Parameters are read from cfg with
// per-shape defaults: cube {size}, quad {}, plane {width, depth,
// subdivisions}, sphere {radius, segments, rings}.
func Primitive(name string, cfg config.Node) (*core.MeshData, error) {
	switch name {
	case "cube":
		return Cube(cfg.Float("size", 1)), nil
	case "quad":
		return Quad(), nil
	case "plane":
		return Plane(cfg.Float("width", 1), cfg.Float("depth", 1), cfg.Int("subdivisions", 1)), nil
	case "sphere":
		return Sphere(cfg.Float("radius", 0.5), cfg.Int("segments", 32), cfg.Int("rings", 16)), nil
	}
	return nil, fmt.Errorf("unknown primitive %q", name)
}

var cubeFaces = [6]struct{ n, u, v mgl32.Vec3 }{
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
}

// Cube is an axis-aligned cube centered at the origin with outward,
// counter-clockwise faces.
func Cube(size float32) *core.MeshData {
	s := size / 2
	data := &core.MeshData{
		Vertices: make([]core.Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	corners := [4]mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range cubeFaces {
		base := uint32(len(data.Vertices))
		for _, c := range corners {
			p := f.n.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1])).Mul(s)
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: p,
				Color:    core.ColorWhite,
				UV:       mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2},
				Normal:   f.n,
			})
		}
		data.Indices = append(data.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return data
}

// Quad is a unit square in the XY plane facing +Z.
func Quad() *core.MeshData {
	n := mgl32.Vec3{0, 0, 1}
	return &core.MeshData{
		Vertices: []core.Vertex{
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Color: core.ColorWhite, UV: mgl32.Vec2{0, 0}, Normal: n},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Color: core.ColorWhite, UV: mgl32.Vec2{1, 0}, Normal: n},
			{Position: mgl32.Vec3{0.5, 0.5, 0}, Color: core.ColorWhite, UV: mgl32.Vec2{1, 1}, Normal: n},
			{Position: mgl32.Vec3{-0.5, 0.5, 0}, Color: core.ColorWhite, UV: mgl32.Vec2{0, 1}, Normal: n},
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

// Plane is a subdivided XZ grid facing +Y.
func Plane(width, depth float32, subdivisions int) *core.MeshData {
	if subdivisions < 1 {
		subdivisions = 1
	}
	data := &core.MeshData{}
	halfW, halfD := width/2, depth/2
	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: mgl32.Vec3{-halfW + u*width, 0, -halfD + v*depth},
				Color:    core.ColorWhite,
				UV:       mgl32.Vec2{u, v},
				Normal:   mgl32.Vec3{0, 1, 0},
			})
		}
	}
	stride := uint32(subdivisions + 1)
	for z := uint32(0); z < uint32(subdivisions); z++ {
		for x := uint32(0); x < uint32(subdivisions); x++ {
			tl := z*stride + x
			tr := tl + 1
			bl := tl + stride
			br := bl + 1
			data.Indices = append(data.Indices, tl, bl, tr, tr, bl, br)
		}
	}
	return data
}

// Sphere is a UV sphere with outward, counter-clockwise triangles.
func Sphere(radius float32, segments, rings int) *core.MeshData {
	segments = max(segments, 3)
	rings = max(rings, 2)
	data := &core.MeshData{}
	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math32.Pi / float32(rings)
		sinPhi, cosPhi := math32.Sincos(phi)
		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2 * math32.Pi / float32(segments)
			sinTheta, cosTheta := math32.Sincos(theta)
			n := mgl32.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: n.Mul(radius),
				Color:    core.ColorWhite,
				UV:       mgl32.Vec2{float32(seg) / float32(segments), 1 - float32(ring)/float32(rings)},
				Normal:   n,
			})
		}
	}
	stride := uint32(segments + 1)
	for ring := uint32(0); ring < uint32(rings); ring++ {
		for seg := uint32(0); seg < uint32(segments); seg++ {
			cur := ring*stride + seg
			next := cur + stride
			data.Indices = append(data.Indices, cur, cur+1, next, cur+1, next+1, next)
		}
	}
	return data
}

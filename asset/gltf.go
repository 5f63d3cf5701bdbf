package asset

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/NouranFoda/CMPN205-Graphics-Project/core"
)

// LoadGLTF opens a .gltf or .glb file and bakes every mesh primitive
// reachable from the default scene into one mesh, with node transforms
// applied. Materials and textures inside the file are ignored; the scene
// file assigns materials.
func LoadGLTF(path string) (*core.MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	data, err := bakeGLTF(doc)
	if err != nil {
		return nil, fmt.Errorf("gltf %q: %w", path, err)
	}
	return data, nil
}

func bakeGLTF(doc *gltf.Document) (*core.MeshData, error) {
	data := &core.MeshData{}

	var visit func(idx int, parent mgl32.Mat4) error
	visit = func(idx int, parent mgl32.Mat4) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return nil
		}
		n := doc.Nodes[idx]
		world := parent.Mul4(nodeMatrix(n))
		if n.Mesh != nil && *n.Mesh < len(doc.Meshes) {
			for pi, prim := range doc.Meshes[*n.Mesh].Primitives {
				if err := appendPrimitive(doc, prim, world, data); err != nil {
					return fmt.Errorf("mesh %d primitive %d: %w", *n.Mesh, pi, err)
				}
			}
		}
		for _, c := range n.Children {
			if err := visit(c, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range gltfRoots(doc) {
		if err := visit(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	if len(data.Vertices) == 0 {
		return nil, fmt.Errorf("no geometry")
	}
	return data, nil
}

// gltfRoots returns the default scene's nodes, or every parentless node when
// the document has no default scene.
func gltfRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	for i, v := range n.MatrixOrDefault() {
		m[i] = float32(v)
	}
	if m != mgl32.Ident4() {
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, world mgl32.Mat4, data *core.MeshData) error {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("texcoords: %w", err)
		}
	}

	normalMat := world.Mat3().Inv().Transpose()
	base := uint32(len(data.Vertices))
	for i, p := range positions {
		v := core.Vertex{
			Position: world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1}).Vec3(),
			Color:    core.ColorWhite,
			Normal:   mgl32.Vec3{0, 1, 0},
		}
		if i < len(normals) {
			v.Normal = normalMat.Mul3x1(mgl32.Vec3(normals[i])).Normalize()
		}
		if i < len(uvs) {
			// glTF puts the UV origin at the top left.
			v.UV = mgl32.Vec2{uvs[i][0], 1 - uvs[i][1]}
		}
		data.Vertices = append(data.Vertices, v)
	}

	if prim.Indices == nil {
		for i := range positions {
			data.Indices = append(data.Indices, base+uint32(i))
		}
		return nil
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	for _, idx := range indices {
		data.Indices = append(data.Indices, base+idx)
	}
	return nil
}

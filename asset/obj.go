package asset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/core"
)

// objRef indexes the position, UV and normal pools; -1 marks an absent slot.
type objRef struct{ v, vt, vn int }

// LoadOBJ reads a Wavefront .obj file into a single mesh.
func LoadOBJ(path string) (*core.MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	data, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	return data, nil
}

// ParseOBJ merges every object and group of an OBJ stream into one mesh.
// Polygons are fan triangulated, vertices sharing a v/vt/vn triple are
// deduplicated, and "v x y z r g b" vertex colors are honoured. Material
// libraries are ignored. Missing normals are generated from the faces.
func ParseOBJ(r io.Reader) (*core.MeshData, error) {
	var (
		positions []mgl32.Vec3
		colors    []core.Color
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		faces     [][3]objRef
	)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			positions = append(positions, mgl32.Vec3{p[0], p[1], p[2]})
			c := core.ColorWhite
			if len(fields) >= 7 {
				if rgb, err := parseFloats(fields[4:], 3); err == nil {
					c = core.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 1}
				}
			}
			colors = append(colors, c)

		case "vn":
			n, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			normals = append(normals, mgl32.Vec3{n[0], n[1], n[2]})

		case "vt":
			t, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			uvs = append(uvs, mgl32.Vec2{t[0], t[1]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			refs := make([]objRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ref, err := parseFaceVertex(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				refs = append(refs, ref)
			}
			for i := 1; i+1 < len(refs); i++ {
				faces = append(faces, [3]objRef{refs[0], refs[i], refs[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("no geometry")
	}

	data := &core.MeshData{}
	seen := make(map[objRef]uint32)
	needNormals := false
	for _, face := range faces {
		for _, ref := range face {
			if idx, ok := seen[ref]; ok {
				data.Indices = append(data.Indices, idx)
				continue
			}
			v := core.Vertex{
				Position: positions[ref.v],
				Color:    colors[ref.v],
			}
			if ref.vt >= 0 {
				v.UV = uvs[ref.vt]
			}
			if ref.vn >= 0 {
				v.Normal = normals[ref.vn]
			} else {
				needNormals = true
			}
			idx := uint32(len(data.Vertices))
			data.Vertices = append(data.Vertices, v)
			seen[ref] = idx
			data.Indices = append(data.Indices, idx)
		}
	}
	if needNormals {
		GenerateNormals(data)
	}
	return data, nil
}

// parseFaceVertex resolves "v", "v/vt", "v//vn" or "v/vt/vn" against the
// pool sizes seen so far. Negative indices count back from the end.
func parseFaceVertex(tok string, nv, nvt, nvn int) (objRef, error) {
	ref := objRef{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")
	slots := [3]*int{&ref.v, &ref.vt, &ref.vn}
	sizes := [3]int{nv, nvt, nvn}
	for i, s := range parts {
		if i > 2 {
			break
		}
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return ref, fmt.Errorf("bad face index %q", tok)
		}
		if n < 0 {
			n += sizes[i]
		} else {
			n--
		}
		if n < 0 || n >= sizes[i] {
			return ref, fmt.Errorf("face index %q out of range", tok)
		}
		*slots[i] = n
	}
	if ref.v < 0 {
		return ref, fmt.Errorf("face vertex %q has no position", tok)
	}
	return ref, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

// GenerateNormals overwrites every vertex normal with the normalized sum of
// the area-weighted normals of the triangles that use it.
func GenerateNormals(data *core.MeshData) {
	accum := make([]mgl32.Vec3, len(data.Vertices))
	for i := 0; i+2 < len(data.Indices); i += 3 {
		i0, i1, i2 := data.Indices[i], data.Indices[i+1], data.Indices[i+2]
		p0 := data.Vertices[i0].Position
		n := data.Vertices[i1].Position.Sub(p0).Cross(data.Vertices[i2].Position.Sub(p0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i, n := range accum {
		if n.Len() > 0 {
			data.Vertices[i].Normal = n.Normalize()
		}
	}
}

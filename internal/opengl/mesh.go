package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/NouranFoda/CMPN205-Graphics-Project/core"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
)

// UploadMesh creates a VAO with one interleaved VBO laid out as core.Vertex
// and, when data has indices, an element buffer.
func (d *Device) UploadMesh(name string, data *core.MeshData) (*gpu.Mesh, error) {
	if data == nil || len(data.Vertices) == 0 {
		return nil, fmt.Errorf("mesh %q has no vertices", name)
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	m := &gpu.Mesh{
		Name:        name,
		VertexCount: int32(len(data.Vertices)),
		IndexCount:  int32(len(data.Indices)),
	}

	gl.GenVertexArrays(1, &m.Handle)
	gl.BindVertexArray(m.Handle)

	gl.GenBuffers(1, &m.VertexBuffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VertexBuffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*int(stride), gl.Ptr(data.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	for _, a := range []struct {
		loc  uint32
		size int32
		off  uintptr
	}{
		{gpu.AttribPosition, 3, unsafe.Offsetof(v.Position)},
		{gpu.AttribColor, 4, unsafe.Offsetof(v.Color)},
		{gpu.AttribTexCoord, 2, unsafe.Offsetof(v.UV)},
		{gpu.AttribNormal, 3, unsafe.Offsetof(v.Normal)},
	} {
		gl.EnableVertexAttribArray(a.loc)
		gl.VertexAttribPointerWithOffset(a.loc, a.size, gl.FLOAT, false, stride, a.off)
	}

	if m.Indexed() {
		gl.GenBuffers(1, &m.IndexBuffer)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.IndexBuffer)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return m, nil
}

func (d *Device) DeleteMesh(m *gpu.Mesh) {
	if m == nil || m.Handle == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &m.Handle)
	gl.DeleteBuffers(1, &m.VertexBuffer)
	if m.IndexBuffer != 0 {
		gl.DeleteBuffers(1, &m.IndexBuffer)
	}
	*m = gpu.Mesh{Name: m.Name}
}

func (d *Device) DrawMesh(m *gpu.Mesh) {
	gl.BindVertexArray(m.Handle)
	if m.Indexed() {
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.VertexCount)
	}
	gl.BindVertexArray(0)
}

package gpu

// ShaderSource holds the GLSL text of a program's stages.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// Program is a linked shader program.
type Program struct {
	Name   string
	Handle uint32
}

// Texture is a 2D RGBA texture.
type Texture struct {
	Name          string
	Width, Height int
	Handle        uint32
}

// SamplerParams are the filtering and wrapping parameters of a sampler.
type SamplerParams struct {
	MagFilter     Filter
	MinFilter     Filter
	WrapS         Wrap
	WrapT         Wrap
	MaxAnisotropy float32
}

// DefaultSamplerParams is trilinear filtering with repeat wrapping.
func DefaultSamplerParams() SamplerParams {
	return SamplerParams{
		MagFilter:     Linear,
		MinFilter:     LinearMipmapLinear,
		WrapS:         Repeat,
		WrapT:         Repeat,
		MaxAnisotropy: 1,
	}
}

// Sampler is a sampler object bound per texture unit.
type Sampler struct {
	Name   string
	Params SamplerParams
	Handle uint32
}

// Mesh is an uploaded vertex array with an optional index buffer.
type Mesh struct {
	Name string

	Handle       uint32 // vertex array
	VertexBuffer uint32
	IndexBuffer  uint32
	VertexCount  int32
	IndexCount   int32
}

// Indexed reports whether the mesh draws through its index buffer.
func (m *Mesh) Indexed() bool { return m.IndexCount > 0 }

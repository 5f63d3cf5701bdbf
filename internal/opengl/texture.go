package opengl

import (
	"fmt"
	"image"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
)

// textureMaxAnisotropy is GL_TEXTURE_MAX_ANISOTROPY_EXT, absent from the
// 4.1 core bindings.
const textureMaxAnisotropy = 0x84FE

func (d *Device) UploadTexture(name string, img *image.RGBA, mipmaps bool) (*gpu.Texture, error) {
	if img == nil || len(img.Pix) == 0 {
		return nil, fmt.Errorf("texture %q has no pixel data", name)
	}
	b := img.Bounds()
	if img.Stride != 4*b.Dx() {
		return nil, fmt.Errorf("texture %q: unsupported row stride %d", name, img.Stride)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(b.Dx()),
		int32(b.Dy()),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	if mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &gpu.Texture{Name: name, Width: b.Dx(), Height: b.Dy(), Handle: id}, nil
}

func (d *Device) DeleteTexture(t *gpu.Texture) {
	if t == nil || t.Handle == 0 {
		return
	}
	gl.DeleteTextures(1, &t.Handle)
	t.Handle = 0
}

func (d *Device) CreateSampler(name string, params gpu.SamplerParams) (*gpu.Sampler, error) {
	var id uint32
	gl.GenSamplers(1, &id)
	if id == 0 {
		return nil, fmt.Errorf("sampler %q: allocation failed", name)
	}
	gl.SamplerParameteri(id, gl.TEXTURE_MAG_FILTER, int32(params.MagFilter))
	gl.SamplerParameteri(id, gl.TEXTURE_MIN_FILTER, int32(params.MinFilter))
	gl.SamplerParameteri(id, gl.TEXTURE_WRAP_S, int32(params.WrapS))
	gl.SamplerParameteri(id, gl.TEXTURE_WRAP_T, int32(params.WrapT))
	if params.MaxAnisotropy > 1 {
		gl.SamplerParameterf(id, textureMaxAnisotropy, params.MaxAnisotropy)
	}
	return &gpu.Sampler{Name: name, Params: params, Handle: id}, nil
}

func (d *Device) DeleteSampler(s *gpu.Sampler) {
	if s == nil || s.Handle == 0 {
		return
	}
	gl.DeleteSamplers(1, &s.Handle)
	s.Handle = 0
}

func (d *Device) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

// BindTexture binds t, or unbinds when t is nil, on the active unit.
func (d *Device) BindTexture(t *gpu.Texture) {
	var h uint32
	if t != nil {
		h = t.Handle
	}
	gl.BindTexture(gl.TEXTURE_2D, h)
}

func (d *Device) BindSampler(unit uint32, s *gpu.Sampler) {
	var h uint32
	if s != nil {
		h = s.Handle
	}
	gl.BindSampler(unit, h)
}

package asset

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/gputest"
	"github.com/NouranFoda/CMPN205-Graphics-Project/material"
)

var _ ecs.Assets = (*Cache)(nil)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func sceneAssets(t *testing.T) (string, config.Node) {
	dir := t.TempDir()
	writeFile(t, dir, "tinted.vert", "#version 330 core\nvoid main() {}\n")
	writeFile(t, dir, "tinted.frag", "#version 330 core\nvoid main() {}\n")
	writeFile(t, dir, "quad.obj", quadOBJ)
	writePNG(t, dir, "wood.png", 4, 2)
	writePNG(t, dir, "moon.png", 8, 8)

	cfg, err := config.Parse([]byte(`{
		"shaders": {"tinted": {"vs": "tinted.vert", "fs": "tinted.frag"}},
		"textures": {"wood": "wood.png", "moon": "moon.png"},
		"samplers": {
			"pixel": {"MAG_FILTER": "GL_NEAREST", "MIN_FILTER": "GL_NEAREST", "WRAP_S": "GL_CLAMP_TO_EDGE", "MAX_ANISOTROPY": 8},
			"default": {}
		},
		"meshes": {
			"quad": "quad.obj",
			"cube": "builtin:cube",
			"ball": {"primitive": "sphere", "radius": 2}
		},
		"materials": {
			"red": {"type": "tinted", "shader": "tinted", "tint": [1, 0, 0, 1]},
			"crate": {"type": "textured", "shader": "tinted", "texture": "wood", "sampler": "pixel"}
		}
	}`), config.JSON)
	require.NoError(t, err)
	return dir, cfg
}

func TestCacheDeserialize(t *testing.T) {
	dir, cfg := sceneAssets(t)
	rec := gputest.New()
	c := NewCache(WithRoot(dir))
	require.NoError(t, c.Deserialize(context.Background(), rec, cfg))

	prog, ok := c.Shader("tinted")
	require.True(t, ok)
	assert.Equal(t, "tinted", prog.Name)

	wood, ok := c.Texture("wood")
	require.True(t, ok)
	assert.Equal(t, 4, wood.Width)
	assert.Equal(t, 2, wood.Height)
	assert.Len(t, rec.Textures, 2)

	pixel, ok := c.Sampler("pixel")
	require.True(t, ok)
	assert.Equal(t, gpu.Nearest, pixel.Params.MagFilter)
	assert.Equal(t, gpu.Nearest, pixel.Params.MinFilter)
	assert.Equal(t, gpu.ClampToEdge, pixel.Params.WrapS)
	assert.Equal(t, gpu.Repeat, pixel.Params.WrapT)
	assert.Equal(t, float32(8), pixel.Params.MaxAnisotropy)
	def, _ := c.Sampler("default")
	assert.Equal(t, gpu.DefaultSamplerParams(), def.Params)

	quad, ok := c.Mesh("quad")
	require.True(t, ok)
	assert.Equal(t, int32(4), quad.VertexCount)
	cube, _ := c.Mesh("cube")
	assert.Equal(t, int32(36), cube.IndexCount)
	_, ok = c.Mesh("ball")
	assert.True(t, ok)

	red, ok := c.Material("red")
	require.True(t, ok)
	assert.Same(t, prog, red.Base().Shader)
	crate, ok := c.Material("crate")
	require.True(t, ok)
	textured := crate.(*material.TexturedMaterial)
	assert.Same(t, wood, textured.Texture)
	assert.Same(t, pixel, textured.Sampler)
}

func TestCacheUnknownKeys(t *testing.T) {
	c := NewCache()
	for _, key := range []string{"", "missing"} {
		_, ok := c.Shader(key)
		assert.False(t, ok)
		_, ok = c.Texture(key)
		assert.False(t, ok)
		_, ok = c.Sampler(key)
		assert.False(t, ok)
		m, ok := c.Mesh(key)
		assert.False(t, ok)
		assert.Nil(t, m)
		mat, ok := c.Material(key)
		assert.False(t, ok)
		assert.Nil(t, mat)
	}
}

func TestCacheDeserializeErrors(t *testing.T) {
	dir, _ := sceneAssets(t)
	tests := map[string]struct {
		json string
		is   error
	}{
		"missing shader file": {json: `{"shaders": {"s": {"vs": "none.vert", "fs": "tinted.frag"}}}`, is: os.ErrNotExist},
		"missing fs":          {json: `{"shaders": {"s": {"vs": "tinted.vert"}}}`},
		"missing texture":     {json: `{"textures": {"t": "none.png"}}`, is: os.ErrNotExist},
		"texture not a path":  {json: `{"textures": {"t": 3}}`},
		"bad mesh":            {json: `{"meshes": {"m": "builtin:torus"}}`},
		"unknown material":    {json: `{"materials": {"m": {"type": "toon"}}}`, is: material.ErrUnknownType},
		"material shader":     {json: `{"materials": {"m": {"type": "tinted", "shader": "nope"}}}`, is: material.ErrMissingShader},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tc.json), config.JSON)
			require.NoError(t, err)
			err = NewCache(WithRoot(dir)).Deserialize(context.Background(), gputest.New(), cfg)
			require.Error(t, err)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestCacheReloadReleasesReplaced(t *testing.T) {
	dir, cfg := sceneAssets(t)
	rec := gputest.New()
	c := NewCache(WithRoot(dir))
	require.NoError(t, c.Deserialize(context.Background(), rec, cfg))
	first, _ := c.Mesh("cube")

	require.NoError(t, c.Deserialize(context.Background(), rec, cfg))
	second, _ := c.Mesh("cube")
	assert.NotSame(t, first, second)
	// 1 shader, 2 textures, 2 samplers, 3 meshes.
	assert.Equal(t, 8, rec.Deleted)
}

func TestCacheClear(t *testing.T) {
	dir, cfg := sceneAssets(t)
	rec := gputest.New()
	c := NewCache(WithRoot(dir))
	require.NoError(t, c.Deserialize(context.Background(), rec, cfg))

	c.Clear(rec)
	assert.Equal(t, 8, rec.Deleted)
	_, ok := c.Material("red")
	assert.False(t, ok)
	_, ok = c.Shader("tinted")
	assert.False(t, ok)
}

func TestCacheNonObject(t *testing.T) {
	rec := gputest.New()
	require.NoError(t, NewCache().Deserialize(context.Background(), rec, config.New("nope")))
	assert.Empty(t, rec.Ops)
}

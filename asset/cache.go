// Package asset owns the GPU resources a scene refers to by key and the
// loaders that produce them.
package asset

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/core"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/log"
	"github.com/NouranFoda/CMPN205-Graphics-Project/material"
)

// BuiltinPrefix marks a mesh entry as a generated primitive, as in
// "builtin:sphere".
const BuiltinPrefix = "builtin:"

var _ material.Resolver = (*Cache)(nil)

// Cache maps asset keys to shared GPU resources. It is not safe for
// concurrent use; all methods must run on the thread that owns the GL
// context.
type Cache struct {
	root   string
	logger *log.Logger

	shaders   map[string]*gpu.Program
	textures  map[string]*gpu.Texture
	samplers  map[string]*gpu.Sampler
	meshes    map[string]*gpu.Mesh
	materials map[string]material.Material
}

type Option func(*Cache)

// WithRoot resolves relative asset paths against dir.
func WithRoot(dir string) Option {
	return func(c *Cache) { c.root = dir }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

func NewCache(opts ...Option) *Cache {
	c := &Cache{
		logger:    log.Nop(),
		shaders:   map[string]*gpu.Program{},
		textures:  map[string]*gpu.Texture{},
		samplers:  map[string]*gpu.Sampler{},
		meshes:    map[string]*gpu.Mesh{},
		materials: map[string]material.Material{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Shader(key string) (*gpu.Program, bool)  { return lookup(c.shaders, key) }
func (c *Cache) Texture(key string) (*gpu.Texture, bool) { return lookup(c.textures, key) }
func (c *Cache) Sampler(key string) (*gpu.Sampler, bool) { return lookup(c.samplers, key) }
func (c *Cache) Mesh(key string) (*gpu.Mesh, bool)       { return lookup(c.meshes, key) }

func (c *Cache) Material(key string) (material.Material, bool) {
	return lookup(c.materials, key)
}

func lookup[T any](m map[string]T, key string) (T, bool) {
	v, ok := m[key]
	if key == "" || !ok {
		var zero T
		return zero, false
	}
	return v, true
}

// PutMaterial registers a material built outside a scene file.
func (c *Cache) PutMaterial(key string, m material.Material) {
	c.materials[key] = m
}

// Deserialize loads an "assets" section. Shaders, textures, samplers and
// meshes load first; materials load last since they resolve the others.
// Image and model files are decoded on worker goroutines; every GPU upload
// happens on the calling goroutine. Keys already present are replaced and
// their old resources released through f.
func (c *Cache) Deserialize(ctx context.Context, f gpu.Factory, cfg config.Node) error {
	if !cfg.IsObject() {
		return nil
	}
	if err := c.loadShaders(f, cfg.Get("shaders")); err != nil {
		return err
	}
	if err := c.loadTextures(ctx, f, cfg.Get("textures")); err != nil {
		return err
	}
	if err := c.loadSamplers(f, cfg.Get("samplers")); err != nil {
		return err
	}
	if err := c.loadMeshes(ctx, f, cfg.Get("meshes")); err != nil {
		return err
	}
	return c.loadMaterials(cfg.Get("materials"))
}

func (c *Cache) path(p string) string {
	if filepath.IsAbs(p) || c.root == "" {
		return p
	}
	return filepath.Join(c.root, p)
}

func (c *Cache) loadShaders(f gpu.Factory, cfg config.Node) error {
	for _, key := range cfg.Keys() {
		entry := cfg.Get(key)
		var src gpu.ShaderSource
		for _, s := range []struct {
			field string
			dst   *string
		}{{"vs", &src.Vertex}, {"fs", &src.Fragment}} {
			p := entry.String(s.field, "")
			if p == "" {
				return fmt.Errorf("shader %q: missing %q", key, s.field)
			}
			b, err := os.ReadFile(c.path(p))
			if err != nil {
				return fmt.Errorf("shader %q: %w", key, err)
			}
			*s.dst = string(b)
		}
		prog, err := f.CreateProgram(key, src)
		if err != nil {
			return fmt.Errorf("shader %q: %w", key, err)
		}
		if old, ok := c.shaders[key]; ok {
			f.DeleteProgram(old)
		}
		c.shaders[key] = prog
		c.logger.Debug("shader loaded", log.String("key", key))
	}
	return nil
}

func (c *Cache) loadTextures(ctx context.Context, f gpu.Factory, cfg config.Node) error {
	keys := cfg.Keys()
	paths := make([]string, len(keys))
	for i, key := range keys {
		p, ok := cfg.Get(key).AsString()
		if !ok {
			return fmt.Errorf("texture %q: path must be a string", key)
		}
		paths[i] = c.path(p)
	}

	images := make([]*image.RGBA, len(keys))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := LoadImage(p)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, key := range keys {
		tex, err := f.UploadTexture(key, images[i], true)
		if err != nil {
			return fmt.Errorf("texture %q: %w", key, err)
		}
		if old, ok := c.textures[key]; ok {
			f.DeleteTexture(old)
		}
		c.textures[key] = tex
		c.logger.Debug("texture loaded", log.String("key", key), log.Int("width", tex.Width), log.Int("height", tex.Height))
	}
	return nil
}

// SamplerParams reads MAG_FILTER, MIN_FILTER, WRAP_S, WRAP_T and
// MAX_ANISOTROPY over gpu.DefaultSamplerParams. Unknown enum names keep the
// default.
func SamplerParams(cfg config.Node) gpu.SamplerParams {
	p := gpu.DefaultSamplerParams()
	p.MagFilter = enumOr(cfg, "MAG_FILTER", gpu.ParseFilter, p.MagFilter)
	p.MinFilter = enumOr(cfg, "MIN_FILTER", gpu.ParseFilter, p.MinFilter)
	p.WrapS = enumOr(cfg, "WRAP_S", gpu.ParseWrap, p.WrapS)
	p.WrapT = enumOr(cfg, "WRAP_T", gpu.ParseWrap, p.WrapT)
	p.MaxAnisotropy = max(cfg.Float("MAX_ANISOTROPY", p.MaxAnisotropy), 1)
	return p
}

func enumOr[T any](cfg config.Node, key string, parse func(string) (T, bool), def T) T {
	if v, ok := parse(cfg.String(key, "")); ok {
		return v
	}
	return def
}

func (c *Cache) loadSamplers(f gpu.Factory, cfg config.Node) error {
	for _, key := range cfg.Keys() {
		s, err := f.CreateSampler(key, SamplerParams(cfg.Get(key)))
		if err != nil {
			return fmt.Errorf("sampler %q: %w", key, err)
		}
		if old, ok := c.samplers[key]; ok {
			f.DeleteSampler(old)
		}
		c.samplers[key] = s
	}
	return nil
}

// LoadMesh builds mesh data from a file path (.obj, .gltf, .glb) or a
// "builtin:" primitive name.
func LoadMesh(path string) (*core.MeshData, error) {
	if name, ok := strings.CutPrefix(path, BuiltinPrefix); ok {
		return Primitive(name, config.Node{})
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("mesh %q: unsupported format %q", path, ext)
	}
}

func (c *Cache) loadMeshes(ctx context.Context, f gpu.Factory, cfg config.Node) error {
	keys := cfg.Keys()
	data := make([]*core.MeshData, len(keys))
	paths := make([]string, len(keys))
	for i, key := range keys {
		entry := cfg.Get(key)
		if entry.IsObject() {
			// {"primitive": "sphere", "radius": 2}
			d, err := Primitive(entry.String("primitive", ""), entry)
			if err != nil {
				return fmt.Errorf("mesh %q: %w", key, err)
			}
			data[i] = d
			continue
		}
		p, ok := entry.AsString()
		if !ok {
			return fmt.Errorf("mesh %q: expected a path or primitive object", key)
		}
		if !strings.HasPrefix(p, BuiltinPrefix) {
			p = c.path(p)
		}
		paths[i] = p
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		if p == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := LoadMesh(p)
			if err != nil {
				return err
			}
			data[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, key := range keys {
		m, err := f.UploadMesh(key, data[i])
		if err != nil {
			return fmt.Errorf("mesh %q: %w", key, err)
		}
		if old, ok := c.meshes[key]; ok {
			f.DeleteMesh(old)
		}
		c.meshes[key] = m
		c.logger.Debug("mesh loaded", log.String("key", key), log.Int("vertices", int(m.VertexCount)))
	}
	return nil
}

func (c *Cache) loadMaterials(cfg config.Node) error {
	for _, key := range cfg.Keys() {
		entry := cfg.Get(key)
		m, err := material.New(entry.String("type", ""))
		if err != nil {
			return fmt.Errorf("material %q: %w", key, err)
		}
		if err := m.Deserialize(entry, c); err != nil {
			return fmt.Errorf("material %q: %w", key, err)
		}
		c.materials[key] = m
	}
	return nil
}

// Clear releases every resource through f and empties the cache.
func (c *Cache) Clear(f gpu.Factory) {
	for _, p := range c.shaders {
		f.DeleteProgram(p)
	}
	for _, t := range c.textures {
		f.DeleteTexture(t)
	}
	for _, s := range c.samplers {
		f.DeleteSampler(s)
	}
	for _, m := range c.meshes {
		f.DeleteMesh(m)
	}
	clear(c.shaders)
	clear(c.textures)
	clear(c.samplers)
	clear(c.meshes)
	clear(c.materials)
}

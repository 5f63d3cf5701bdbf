package components

import (
	"fmt"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
	"github.com/NouranFoda/CMPN205-Graphics-Project/material"
)

// MeshRenderer draws a cached mesh with a cached material at its owner's
// world transform.
type MeshRenderer struct {
	ecs.ComponentBase

	Mesh     *gpu.Mesh
	Material material.Material
}

func (*MeshRenderer) Kind() string { return MeshRendererKind }

func (r *MeshRenderer) Deserialize(cfg config.Node, assets ecs.Assets) error {
	if !cfg.IsObject() {
		return nil
	}
	meshKey := cfg.String("mesh", "")
	mesh, ok := assets.Mesh(meshKey)
	if !ok {
		return fmt.Errorf("%w: mesh %q", ErrMissingAsset, meshKey)
	}
	matKey := cfg.String("material", "")
	mat, ok := assets.Material(matKey)
	if !ok {
		return fmt.Errorf("%w: material %q", ErrMissingAsset, matKey)
	}
	r.Mesh, r.Material = mesh, mat
	return nil
}

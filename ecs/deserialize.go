package ecs

import (
	"fmt"

	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
)

// Deserialize appends the entities described by cfg, an array of entity
// objects, to the world as roots.
//
// Each entity reads "name", its transform keys, "components" (objects
// whose "type" names a registered kind) and nested "children".
func (w *World) Deserialize(cfg config.Node, assets Assets) error {
	for _, n := range cfg.Array() {
		if err := w.deserializeEntity(n, nil, assets); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) deserializeEntity(cfg config.Node, parent *Entity, assets Assets) error {
	if !cfg.IsObject() {
		return nil
	}
	e := w.NewEntity(cfg.String("name", ""), parent)
	e.Transform.Deserialize(cfg)

	for i, c := range cfg.Get("components").Array() {
		kind := c.String("type", "")
		comp, err := NewComponent(kind)
		if err != nil {
			return fmt.Errorf("entity %q component %d: %w", e.Name, i, err)
		}
		if err := e.AddComponent(comp); err != nil {
			return err
		}
		if err := comp.Deserialize(c, assets); err != nil {
			return fmt.Errorf("entity %q %s: %w", e.Name, kind, err)
		}
	}

	for _, child := range cfg.Get("children").Array() {
		if err := w.deserializeEntity(child, e, assets); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/NouranFoda/CMPN205-Graphics-Project/asset"
	_ "github.com/NouranFoda/CMPN205-Graphics-Project/components"
	"github.com/NouranFoda/CMPN205-Graphics-Project/config"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/log"
	"github.com/NouranFoda/CMPN205-Graphics-Project/systems"
)

// scene is everything loaded from one scene file.
type scene struct {
	cache     *asset.Cache
	world     *ecs.World
	collision *systems.CollisionSystem
}

// loadScene reads the "assets" and "world" sections of a scene file. An
// optional "collision" object names the target entity: {"target": "player"}.
// On error nothing loaded so far is kept.
func loadScene(ctx context.Context, f gpu.Factory, path string, logger *log.Logger) (*scene, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	cache := asset.NewCache(
		asset.WithRoot(filepath.Dir(path)),
		asset.WithLogger(logger.Named("asset")),
	)
	if err := cache.Deserialize(ctx, f, cfg.Get("assets")); err != nil {
		cache.Clear(f)
		return nil, fmt.Errorf("scene %q: %w", path, err)
	}

	world := ecs.NewWorld()
	if err := world.Deserialize(cfg.Get("world"), cache); err != nil {
		cache.Clear(f)
		return nil, fmt.Errorf("scene %q: %w", path, err)
	}

	collisionLog := logger.Named("collision")
	sc := &scene{
		cache: cache,
		world: world,
		collision: &systems.CollisionSystem{
			Target: cfg.Get("collision").String("target", "player"),
			Logger: collisionLog,
			OnHit: func(h systems.Hit) {
				collisionLog.Info("hit", log.String("target", h.Target.Name), log.String("other", h.Other.Name))
			},
		},
	}
	logger.Info("scene loaded", log.String("path", path), log.Int("entities", world.Len()))
	return sc, nil
}

func (s *scene) release(f gpu.Factory) {
	s.world.Clear()
	s.cache.Clear(f)
}

// fileWatcher signals writes to one file. The parent directory is watched
// so editors that replace the file on save are still seen. Saves that leave
// the content unchanged are not signalled.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	changed chan struct{}
}

// contentDigest remembers the xxhash of the last content it accepted.
type contentDigest struct {
	sum  uint64
	seen bool
}

// update reports whether data differs from the previous content.
func (d *contentDigest) update(data []byte) bool {
	sum := xxhash.Sum64(data)
	if d.seen && sum == d.sum {
		return false
	}
	d.sum, d.seen = sum, true
	return true
}

func watchFile(path string, logger *log.Logger) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %q: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %q: %w", path, err)
	}

	var digest contentDigest
	if data, err := os.ReadFile(abs); err == nil {
		digest.update(data)
	}

	fw := &fileWatcher{watcher: w, changed: make(chan struct{}, 1)}
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				// A partial write or a replace in progress is caught by the
				// next event.
				data, err := os.ReadFile(abs)
				if err != nil || !digest.update(data) {
					continue
				}
				select {
				case fw.changed <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("scene watcher", log.Error(err))
			}
		}
	}()
	return fw, nil
}

func (fw *fileWatcher) Close() error { return fw.watcher.Close() }

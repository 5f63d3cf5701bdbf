package systems

import (
	"github.com/NouranFoda/CMPN205-Graphics-Project/components"
	"github.com/NouranFoda/CMPN205-Graphics-Project/ecs"
	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/log"
)

// Hit is an overlap between the target and another collider.
type Hit struct {
	Target *ecs.Entity
	Other  *ecs.Entity
}

// CollisionSystem tests the named target's sphere against every other
// collider. Colliders with ResponseRemove are deleted after the scan.
type CollisionSystem struct {
	Target string
	OnHit  func(Hit)
	Logger *log.Logger
}

// Update returns the overlaps found this frame.
func (s *CollisionSystem) Update(world *ecs.World) []Hit {
	target := world.Find(s.Target)
	if target == nil {
		return nil
	}
	tc, ok := ecs.Get[*components.Collision](target)
	if !ok {
		return nil
	}
	center, radius := tc.WorldSphere()

	var hits []Hit
	for _, e := range world.Entities() {
		if e == target {
			continue
		}
		c, ok := ecs.Get[*components.Collision](e)
		if !ok {
			continue
		}
		oc, or := c.WorldSphere()
		if oc.Sub(center).Len() >= radius+or {
			continue
		}
		hit := Hit{Target: target, Other: e}
		hits = append(hits, hit)
		if s.OnHit != nil {
			s.OnHit(hit)
		}
		if c.Response == components.ResponseRemove {
			world.MarkForRemoval(e)
		}
	}

	if len(hits) > 0 && s.Logger != nil {
		s.Logger.Debug("collisions", log.String("target", s.Target), log.Int("hits", len(hits)))
	}
	world.DeleteMarkedEntities()
	return hits
}

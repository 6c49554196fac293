package world

import (
	"context"
	"math"

	"wildmark/server/internal/geom"
	"wildmark/server/internal/grid"
	"wildmark/server/logging"
	loggingwildlife "wildmark/server/logging/wildlife"
)

const (
	pushOutIterations = 5
	pushOutEpsilon    = 0.01
)

func (w *World) clampX(x, radius float64) float64 {
	return geom.Clamp(x, radius, w.config.Width-radius)
}

func (w *World) clampY(y, radius float64) float64 {
	return geom.Clamp(y, radius, w.config.Height-radius)
}

// buildColliders assembles the grid's view of every collidable entity from
// the current tables. Burrowed animals are underground and excluded;
// destroyed structures no longer block.
func (w *World) buildColliders() []grid.Collider {
	colliders := make([]grid.Collider, 0, len(w.players)+len(w.animals)+len(w.structures)+len(w.corpses))
	for id, p := range w.players {
		if p == nil || p.Dead {
			continue
		}
		colliders = append(colliders, grid.Collider{
			Kind:   grid.KindPlayer,
			ID:     id,
			Shape:  grid.ShapeCircle,
			Circle: geom.Circle{X: p.X, Y: p.Y, Radius: playerRadius},
		})
	}
	for _, a := range w.animals {
		if a == nil || a.State == StateBurrowed {
			continue
		}
		colliders = append(colliders, grid.Collider{
			Kind:   grid.KindAnimal,
			ID:     a.handle(),
			Shape:  grid.ShapeCircle,
			Circle: geom.Circle{X: a.X, Y: a.Y, Radius: animalRadius},
		})
	}
	for id, s := range w.structures {
		if s == nil || s.Destroyed {
			continue
		}
		colliders = append(colliders, grid.Collider{
			Kind:    structureGridKind(s.Kind),
			ID:      id,
			OwnerID: s.OwnerID,
			Shape:   grid.ShapeRect,
			Rect:    s.CollisionRect(),
		})
	}
	for id, c := range w.corpses {
		if c == nil {
			continue
		}
		colliders = append(colliders, grid.Collider{
			Kind:   grid.KindCorpse,
			ID:     id,
			Shape:  grid.ShapeCircle,
			Circle: geom.Circle{X: c.X, Y: c.Y, Radius: corpseRadius},
		})
	}
	return colliders
}

// RebuildSpatialIndex repopulates the per-tick grid from the current tables.
// The result is immutable until the next rebuild.
func (w *World) RebuildSpatialIndex() {
	if w == nil {
		return
	}
	w.grid.Populate(w.buildColliders())
}

// collidersNear returns nearby obstacles for an actor, with the actor itself
// and owner-exempt entries filtered out before any distance math runs.
func (w *World) collidersNear(x, y float64, selfKind grid.Kind, selfID, exemptOwner string) []grid.Collider {
	nearby := w.grid.Query(x, y)
	filtered := nearby[:0:0]
	for _, c := range nearby {
		if c.Kind == selfKind && c.ID == selfID {
			continue
		}
		if exemptOwner != "" && c.OwnerID == exemptOwner {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

// colliderOverlapsCircle reports whether an actor disc at (x, y) intersects
// the collider.
func colliderOverlapsCircle(c grid.Collider, x, y, radius float64) bool {
	if c.Shape == grid.ShapeRect {
		return geom.CircleRectOverlap(x, y, radius, c.Rect)
	}
	return geom.CirclesOverlap(geom.Circle{X: x, Y: y, Radius: radius}, c.Circle)
}

// contactNormal returns the unit normal pointing from the collider toward the
// actor position, and false for the degenerate zero-distance case.
func contactNormal(c grid.Collider, x, y float64) (geom.Vec2, bool) {
	var n geom.Vec2
	if c.Shape == grid.ShapeRect {
		closestX, closestY := geom.ClosestPointOnRect(x, y, c.Rect)
		n = geom.Vec2{X: x - closestX, Y: y - closestY}
	} else {
		n = geom.Vec2{X: x - c.Circle.X, Y: y - c.Circle.Y}
	}
	if n.IsZero() {
		return geom.Vec2{}, false
	}
	return n.Normalized(), true
}

// slideDisplacement projects the attempted displacement onto the collision
// tangent of each obstacle the proposed position would overlap, so actors
// glide along edges instead of sticking. Obstacles are applied sequentially
// in grid-return order; with two simultaneous contacts the outcome is
// order-dependent, which is accepted and pinned by a regression test.
func slideDisplacement(fromX, fromY float64, delta geom.Vec2, radius float64, obstacles []grid.Collider) geom.Vec2 {
	adjusted := delta
	for _, c := range obstacles {
		proposedX := fromX + adjusted.X
		proposedY := fromY + adjusted.Y
		if !colliderOverlapsCircle(c, proposedX, proposedY, radius) {
			continue
		}
		normal, ok := contactNormal(c, proposedX, proposedY)
		if !ok {
			continue
		}
		// Project only when moving into the obstacle; sliding away from
		// an obstacle already in contact must not be suppressed.
		into := adjusted.Dot(normal)
		if into >= 0 {
			continue
		}
		adjusted = adjusted.Sub(normal.Scale(into))
	}
	return adjusted
}

// penetrationDepth returns how far the actor disc sits inside the collider
// along the separating axis, with the axis itself. For an actor centered
// inside a rect the axis of minimum face distance is chosen and the push goes
// straight out through that face.
func penetrationDepth(c grid.Collider, x, y, radius float64) (geom.Vec2, float64, bool) {
	if c.Shape == grid.ShapeCircle {
		dx := x - c.Circle.X
		dy := y - c.Circle.Y
		dist := math.Hypot(dx, dy)
		combined := radius + c.Circle.Radius
		if dist >= combined {
			return geom.Vec2{}, 0, false
		}
		if dist == 0 {
			return geom.Vec2{X: 1, Y: 0}, combined, true
		}
		return geom.Vec2{X: dx / dist, Y: dy / dist}, combined - dist, true
	}

	r := c.Rect
	closestX, closestY := geom.ClosestPointOnRect(x, y, r)
	dx := x - closestX
	dy := y - closestY
	distSq := dx*dx + dy*dy
	if distSq == 0 {
		// Center inside the box: pick the face with minimum penetration.
		left := x - r.X
		right := r.X + r.Width - x
		top := y - r.Y
		bottom := r.Y + r.Height - y
		axis := geom.Vec2{X: -1, Y: 0}
		depth := left
		if right < depth {
			depth = right
			axis = geom.Vec2{X: 1, Y: 0}
		}
		if top < depth {
			depth = top
			axis = geom.Vec2{X: 0, Y: -1}
		}
		if bottom < depth {
			depth = bottom
			axis = geom.Vec2{X: 0, Y: 1}
		}
		return axis, depth + radius, true
	}
	dist := math.Sqrt(distSq)
	if dist >= radius {
		return geom.Vec2{}, 0, false
	}
	return geom.Vec2{X: dx / dist, Y: dy / dist}, radius - dist, true
}

// resolveOverlap iteratively separates an already-overlapping actor from
// nearby obstacles. Returns the corrected position and whether resolution
// converged within the iteration budget.
func (w *World) resolveOverlap(selfKind grid.Kind, selfID string, x, y, radius float64, exemptOwner string) (float64, float64, bool) {
	for iter := 0; iter < pushOutIterations; iter++ {
		moved := false
		for _, c := range w.collidersNear(x, y, selfKind, selfID, exemptOwner) {
			axis, depth, overlapping := penetrationDepth(c, x, y, radius)
			if !overlapping {
				continue
			}
			x += axis.X * (depth + pushOutEpsilon)
			y += axis.Y * (depth + pushOutEpsilon)
			x = w.clampX(x, radius)
			y = w.clampY(y, radius)
			moved = true
		}
		if !moved {
			return x, y, true
		}
	}
	for _, c := range w.collidersNear(x, y, selfKind, selfID, exemptOwner) {
		if colliderOverlapsCircle(c, x, y, radius) {
			return x, y, false
		}
	}
	return x, y, true
}

// moveActor advances an actor through the two-phase resolver: slide the
// attempted displacement along obstacle tangents, commit, then push out of
// any residual overlap. Never fails; an exhausted push-out budget logs a
// warning and keeps the best-effort position.
func (w *World) moveActor(selfKind grid.Kind, selfID string, x, y, dx, dy, radius float64, exemptOwner string) (float64, float64) {
	delta := geom.Vec2{X: dx, Y: dy}
	obstacles := w.collidersNear(x+dx, y+dy, selfKind, selfID, exemptOwner)
	adjusted := slideDisplacement(x, y, delta, radius, obstacles)

	newX := w.clampX(x+adjusted.X, radius)
	newY := w.clampY(y+adjusted.Y, radius)

	newX, newY, converged := w.resolveOverlap(selfKind, selfID, newX, newY, radius, exemptOwner)
	if !converged {
		loggingwildlife.PushOutExhausted(
			context.Background(),
			w.publisher,
			w.currentTick,
			w.entityRef(entityKindForGrid(selfKind), selfID),
			loggingwildlife.PushOutExhaustedPayload{Iterations: pushOutIterations, X: newX, Y: newY},
		)
	}
	return newX, newY
}

// moveActorAnimal routes an animal displacement through the shared resolver.
func (w *World) moveActorAnimal(a *AnimalState, dx, dy float64) (float64, float64) {
	return w.moveActor(grid.KindAnimal, a.handle(), a.X, a.Y, dx, dy, animalRadius, "")
}

func entityKindForGrid(kind grid.Kind) logging.EntityKind {
	switch kind {
	case grid.KindPlayer:
		return logging.EntityKindPlayer
	case grid.KindAnimal:
		return logging.EntityKindAnimal
	default:
		return logging.EntityKindWorld
	}
}

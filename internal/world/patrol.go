package world

import (
	"math"
	"time"
)

// MovementPattern selects how a patrolling animal drifts around its spawn
// anchor. Values match the catalog's pattern strings.
type MovementPattern string

const (
	PatternLoop        MovementPattern = "loop"
	PatternWander      MovementPattern = "wander"
	PatternFigureEight MovementPattern = "figure-eight"
)

const (
	wanderRepathInterval = 4 * time.Second
	wanderArriveDistance = 8.0
	patrolAngularSpeed   = 0.5 // radians per second along the loop
)

// patrolStep computes the next patrol waypoint displacement for one tick and
// applies it through the collision substrate. Candidate points on water or
// inside shelters are rejected; the animal idles for the tick instead.
func (w *World) patrolStep(a *AnimalState, stats AnimalStats, pattern MovementPattern, now time.Time, dt float64) {
	var targetX, targetY float64
	switch pattern {
	case PatternLoop:
		a.PatrolPhase += patrolAngularSpeed * dt
		targetX = a.SpawnX + math.Cos(a.PatrolPhase)*stats.PatrolRadius
		targetY = a.SpawnY + math.Sin(a.PatrolPhase)*stats.PatrolRadius
	case PatternFigureEight:
		a.PatrolPhase += patrolAngularSpeed * dt
		t := a.PatrolPhase
		targetX = a.SpawnX + math.Sin(t)*stats.PatrolRadius
		targetY = a.SpawnY + math.Sin(t)*math.Cos(t)*stats.PatrolRadius
	default: // wander
		w.ensureWanderTarget(a, stats, now)
		if !a.hasWander {
			return
		}
		targetX = a.wanderTargetX
		targetY = a.wanderTargetY
		if math.Hypot(targetX-a.X, targetY-a.Y) <= wanderArriveDistance {
			a.hasWander = false
			return
		}
	}

	if w.blockedForWildlife(targetX, targetY) {
		// Illegal waypoint this tick; wanderers repath, loopers skip ahead.
		a.hasWander = false
		return
	}
	w.moveAnimalToward(a, targetX, targetY, stats.MovementSpeed, dt)
}

// ensureWanderTarget picks a fresh random point in the patrol disc when the
// current one is stale or missing. Rejection-samples against blocked terrain.
func (w *World) ensureWanderTarget(a *AnimalState, stats AnimalStats, now time.Time) {
	if a.hasWander && now.Before(a.nextWanderAt) {
		return
	}
	rng := w.ensureRNG()
	for attempt := 0; attempt < 10; attempt++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := math.Sqrt(rng.Float64()) * stats.PatrolRadius
		x := w.clampX(a.SpawnX+math.Cos(angle)*dist, animalRadius)
		y := w.clampY(a.SpawnY+math.Sin(angle)*dist, animalRadius)
		if w.blockedForWildlife(x, y) {
			continue
		}
		a.wanderTargetX = x
		a.wanderTargetY = y
		a.hasWander = true
		a.nextWanderAt = now.Add(wanderRepathInterval)
		return
	}
	a.hasWander = false
}

// moveAnimalToward advances an animal one tick toward a point at the given
// speed, updating facing, through slide and push-out.
func (w *World) moveAnimalToward(a *AnimalState, targetX, targetY, speed, dt float64) {
	dx := targetX - a.X
	dy := targetY - a.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 || speed <= 0 || dt <= 0 {
		return
	}
	step := speed * dt
	if step > dist {
		step = dist
	}
	moveX := dx / dist * step
	moveY := dy / dist * step
	a.DirX = dx / dist
	a.DirY = dy / dist
	a.X, a.Y = w.moveActorAnimal(a, moveX, moveY)
}

// moveAnimalAway advances an animal one tick directly away from a point.
func (w *World) moveAnimalAway(a *AnimalState, fromX, fromY, speed, dt float64) {
	dx := a.X - fromX
	dy := a.Y - fromY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dx, dy, dist = 1, 0, 1
	}
	a.DirX = dx / dist
	a.DirY = dy / dist
	a.X, a.Y = w.moveActorAnimal(a, a.DirX*speed*dt, a.DirY*speed*dt)
}

package world

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"wildmark/server/internal/geom"
	loggingcombat "wildmark/server/logging/combat"
)

const (
	spittleSpeed    = 260.0
	spittleMaxRange = 240.0
	spittleLifetime = 3 * time.Second
	spittleDamage   = 6.0
)

// Projectile is one in-flight spittle glob. It tracks only its intended
// target; other actors crossing its path are ignored.
type Projectile struct {
	ID       string
	OwnerID  string
	TargetID string
	X         float64
	Y         float64
	VelX      float64
	VelY      float64
	Traveled  float64
	SpawnedAt time.Time
}

// spawnSpittle launches a venom glob from an animal at a player's current
// position. Velocity is fixed at launch; the glob does not home.
func (w *World) spawnSpittle(a *AnimalState, target *PlayerState, now time.Time) {
	if w == nil || a == nil || target == nil {
		return
	}
	dx := target.X - a.X
	dy := target.Y - a.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	p := &Projectile{
		ID:        uuid.NewString(),
		OwnerID:   a.handle(),
		TargetID:  target.ID,
		X:         a.X,
		Y:         a.Y,
		VelX:      dx / dist * spittleSpeed,
		VelY:      dy / dist * spittleSpeed,
		SpawnedAt: now,
	}
	w.projectiles[p.ID] = p
	loggingcombat.ProjectileSpawned(
		context.Background(),
		w.publisher,
		w.currentTick,
		w.animalRef(a),
		loggingcombat.ProjectilePayload{
			ProjectileID: p.ID,
			TargetID:     target.ID,
			Speed:        spittleSpeed,
			MaxRange:     spittleMaxRange,
		},
	)
	w.emitSound(SoundEvent{Type: SoundSpit, X: a.X, Y: a.Y, SourceID: a.handle()})
}

// AdvanceProjectiles integrates every projectile one tick, sweeping the
// traveled segment against the intended target's disc so fast globs cannot
// tunnel through. Hits apply damage plus a light venom rider.
func (w *World) AdvanceProjectiles(now time.Time, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	ids := make([]string, 0, len(w.projectiles))
	for id := range w.projectiles {
		ids = append(ids, id)
	}
	for _, id := range ids {
		p := w.projectiles[id]
		if p == nil {
			continue
		}
		if now.Sub(p.SpawnedAt) > spittleLifetime {
			delete(w.projectiles, id)
			continue
		}
		stepX := p.VelX * dt
		stepY := p.VelY * dt
		nextX := p.X + stepX
		nextY := p.Y + stepY
		p.Traveled += math.Hypot(stepX, stepY)

		target := w.players[p.TargetID]
		if target != nil && !target.Dead {
			if geom.SegmentCircleHit(p.X, p.Y, nextX, nextY, target.X, target.Y, playerRadius) {
				source := w.animalByHandle(p.OwnerID)
				_ = w.DamagePlayer(target.ID, spittleDamage, StatusVenomLight, source, now)
				delete(w.projectiles, id)
				continue
			}
		}

		if p.Traveled >= spittleMaxRange {
			delete(w.projectiles, id)
			continue
		}
		p.X = nextX
		p.Y = nextY
	}
}

// animalByHandle resolves the "animal-<id>" handle back to a live row, for
// projectile attribution after the shooter may have burrowed or died.
func (w *World) animalByHandle(handle string) *AnimalState {
	for _, a := range w.animals {
		if a != nil && a.handle() == handle {
			return a
		}
	}
	return nil
}

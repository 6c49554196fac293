package world

import (
	"context"
	"math"
	"time"

	loggingwildlife "wildmark/server/logging/wildlife"
)

// Vipers are ambushers: a successful strike injects venom and the viper
// immediately burrows, teleporting to a nearby point and becoming
// untargetable until it resurfaces. Against a player holding a ranged weapon
// the viper keeps moving laterally and spits venom from stand-off range
// instead of closing in.
const (
	viperBurrowMinDistance = 40.0
	viperBurrowMaxDistance = 160.0
	viperStandOffFraction  = 0.6 // of perception range, against ranged targets
)

type viperBehavior struct {
	baseBehavior
}

// ExecuteChase branches on the target's equipment. Melee targets get the
// strike-and-burrow cycle; ranged targets get strafing and spittle.
func (b *viperBehavior) ExecuteChase(w *World, a *AnimalState, target *PlayerState, now time.Time, dt float64) {
	if target.hasRangedWeapon() {
		b.executeStandOff(w, a, target, now, dt)
		return
	}
	if a.canAttack(b.stats, target.X, target.Y, now) {
		w.landAttack(a, target, b.stats.AttackDamage, StatusVenom, now)
		b.enterBurrowed(w, a, now)
		return
	}
	w.moveAnimalToward(a, target.X, target.Y, b.stats.SprintSpeed, dt)
}

// executeStandOff holds distance against a ranged attacker, strafing
// perpendicular to the sightline and spitting on the attack cooldown.
func (b *viperBehavior) executeStandOff(w *World, a *AnimalState, target *PlayerState, now time.Time, dt float64) {
	dx := target.X - a.X
	dy := target.Y - a.Y
	dist := math.Hypot(dx, dy)
	standOff := b.stats.PerceptionRange * viperStandOffFraction

	switch {
	case dist > standOff*1.15:
		w.moveAnimalToward(a, target.X, target.Y, b.stats.MovementSpeed, dt)
	case dist < standOff*0.85:
		w.moveAnimalAway(a, target.X, target.Y, b.stats.MovementSpeed, dt)
	default:
		if dist > 0 {
			// Perpendicular strafe keeps the viper a harder target while
			// staying on the stand-off ring.
			strafeX := -dy / dist
			strafeY := dx / dist
			a.DirX = dx / dist
			a.DirY = dy / dist
			a.X, a.Y = w.moveActorAnimal(a, strafeX*b.stats.MovementSpeed*dt, strafeY*b.stats.MovementSpeed*dt)
		}
	}

	if a.LastAttackAt.IsZero() || now.Sub(a.LastAttackAt) >= b.stats.AttackSpeed {
		a.LastAttackAt = now
		w.spawnSpittle(a, target, now)
	}
}

// HandleDamage burrows instead of fleeing overground.
func (b *viperBehavior) HandleDamage(w *World, a *AnimalState, attacker *PlayerState, now time.Time) {
	b.enterBurrowed(w, a, now)
}

// StartFlee is burrowing for a viper; the overground flee path is unused.
func (b *viperBehavior) StartFlee(w *World, a *AnimalState, threatX, threatY float64, now time.Time) {
	b.enterBurrowed(w, a, now)
}

// enterBurrowed teleports the viper to a legal point a bounded random
// distance from its spawn anchor and parks it underground until HideUntil.
func (b *viperBehavior) enterBurrowed(w *World, a *AnimalState, now time.Time) {
	rng := w.ensureRNG()
	destX, destY := a.SpawnX, a.SpawnY
	distance := 0.0
	for attempt := 0; attempt < 10; attempt++ {
		angle := rng.Float64() * 2 * math.Pi
		d := viperBurrowMinDistance + rng.Float64()*(viperBurrowMaxDistance-viperBurrowMinDistance)
		x := w.clampX(a.SpawnX+math.Cos(angle)*d, animalRadius)
		y := w.clampY(a.SpawnY+math.Sin(angle)*d, animalRadius)
		if w.blockedForWildlife(x, y) {
			continue
		}
		destX, destY, distance = x, y, d
		break
	}
	a.X = destX
	a.Y = destY
	a.HideUntil = now.Add(b.stats.HideDuration)
	w.setAnimalState(a, StateBurrowed, now)
	loggingwildlife.Burrowed(
		context.Background(),
		w.publisher,
		w.currentTick,
		w.animalRef(a),
		loggingwildlife.BurrowedPayload{
			X:        destX,
			Y:        destY,
			UntilMs:  a.HideUntil.UnixMilli(),
			Distance: distance,
		},
	)
	w.emitSound(SoundEvent{Type: SoundBurrow, X: destX, Y: destY, SourceID: a.handle()})
}

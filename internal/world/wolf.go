package world

import (
	"time"
)

// Wolves are relentless: any detected player provokes a chase, damage never
// makes them retreat, and their bite can open a bleed or chain straight into
// a follow-up strike. After losing a target a wolf rests before resuming its
// patrol loop.
const (
	wolfBleedChance    = 0.25
	wolfReattackChance = 0.30
)

type wolfBehavior struct {
	baseBehavior
}

// ExecuteChase bites with a bleed roll, then rolls once for an immediate
// cooldown reset so the next tick can strike again.
func (b *wolfBehavior) ExecuteChase(w *World, a *AnimalState, target *PlayerState, now time.Time, dt float64) {
	if !a.canAttack(b.stats, target.X, target.Y, now) {
		w.moveAnimalToward(a, target.X, target.Y, b.stats.SprintSpeed, dt)
		return
	}
	rng := w.ensureRNG()
	var status StatusEffectType
	if rng.Float64() < wolfBleedChance {
		status = StatusBleed
	}
	w.landAttack(a, target, b.stats.AttackDamage, status, now)
	if rng.Float64() < wolfReattackChance {
		a.LastAttackAt = time.Time{}
	}
}

// HandleDamage never flees regardless of health; being hit locks the wolf
// onto the attacker.
func (b *wolfBehavior) HandleDamage(w *World, a *AnimalState, attacker *PlayerState, now time.Time) {
	if attacker == nil {
		return
	}
	a.TargetPlayerID = attacker.ID
	if a.State != StateChasing {
		w.setAnimalState(a, StateChasing, now)
	}
}

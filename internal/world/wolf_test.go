package world

import (
	"testing"
	"time"
)

func TestWolfAlwaysChases(t *testing.T) {
	w := newTestWorld(t)
	wolf := placeAnimal(t, w, SpeciesWolf, 1000, 1000)
	behavior := w.behaviors[SpeciesWolf]

	healthy := placePlayer(t, w, "healthy", 1100, 1000)
	if !behavior.ShouldChase(w, wolf, healthy) {
		t.Fatalf("wolf declined a healthy target")
	}
}

func TestWolfNeverFleesFromDamage(t *testing.T) {
	w := newTestWorld(t)
	wolf := placeAnimal(t, w, SpeciesWolf, 1000, 1000)
	placePlayer(t, w, "p1", 1050, 1000)

	// Beat the wolf down across repeated hits; it must lock on, never run.
	now := time.Unix(10, 0)
	for wolf.Health > 15 {
		if err := w.ApplyDamageToAnimal(wolf.ID, "p1", 10, now); err != nil {
			t.Fatalf("ApplyDamageToAnimal: %v", err)
		}
		if wolf.State == StateFleeing {
			t.Fatalf("wolf fled at %v health", wolf.Health)
		}
	}
	if wolf.State != StateChasing {
		t.Fatalf("state = %v, want chasing", wolf.State)
	}
	if wolf.TargetPlayerID != "p1" {
		t.Fatalf("wolf did not lock onto its attacker")
	}
}

func TestWolfBiteAppliesDamageAndMayBleed(t *testing.T) {
	w := newTestWorld(t)
	wolf := placeAnimal(t, w, SpeciesWolf, 1000, 1000)
	p := placePlayer(t, w, "p1", 1010, 1000) // inside attack range (40)
	wolf.State = StateChasing
	wolf.TargetPlayerID = "p1"
	stats := w.behaviors[SpeciesWolf].Stats()

	now := time.Unix(10, 0)
	bled := false
	for i := 0; i < 40 && !p.Dead; i++ {
		before := p.Health
		tick(w, now)
		if p.Health < before && len(p.statusEffects) > 0 {
			if _, ok := p.statusEffects[StatusBleed]; ok {
				bled = true
				break
			}
		}
		now = now.Add(stats.AttackSpeed)
		wolf.LastAttackAt = time.Time{}
		p.Health = p.MaxHealth
	}
	if !bled {
		t.Fatalf("no bleed in 40 bites; deterministic stream should roll one")
	}
}

func TestWolfReattackResetsCooldown(t *testing.T) {
	w := newTestWorld(t)
	wolf := placeAnimal(t, w, SpeciesWolf, 1000, 1000)
	p := placePlayer(t, w, "p1", 1010, 1000)
	wolf.State = StateChasing
	wolf.TargetPlayerID = "p1"

	// Across enough bites the 30% follow-up roll must clear the cooldown
	// stamp at least once.
	now := time.Unix(10, 0)
	reattacked := false
	for i := 0; i < 60; i++ {
		wolf.LastAttackAt = time.Time{}
		p.Health = p.MaxHealth
		p.Dead = false
		tick(w, now)
		if wolf.LastAttackAt.IsZero() {
			reattacked = true
			break
		}
		now = now.Add(time.Second)
	}
	if !reattacked {
		t.Fatalf("no cooldown reset in 60 bites; deterministic stream should roll one")
	}
}

package world

import (
	"testing"
	"time"
)

func TestSpittleHitsIntendedTargetOnly(t *testing.T) {
	w := newTestWorld(t)
	viper := placeAnimal(t, w, SpeciesViper, 1000, 1000)
	target := placePlayer(t, w, "target", 1100, 1000)
	bystander := placePlayer(t, w, "bystander", 1050, 1000) // directly in the flight path

	w.spawnSpittle(viper, target, time.Unix(10, 0))
	if len(w.projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(w.projectiles))
	}

	now := time.Unix(10, 0)
	for i := 0; i < 60 && len(w.projectiles) > 0; i++ {
		now = now.Add(tickStep)
		w.AdvanceProjectiles(now, tickStep.Seconds())
	}

	if bystander.Health != bystander.MaxHealth {
		t.Fatalf("bystander hit by spittle aimed elsewhere")
	}
	if target.Health >= target.MaxHealth {
		t.Fatalf("intended target never hit")
	}
	if _, ok := target.statusEffects[StatusVenomLight]; !ok {
		t.Fatalf("spittle hit without venom-light rider")
	}
	if len(w.projectiles) != 0 {
		t.Fatalf("projectile not consumed on hit")
	}
}

func TestSpittleExpiresAtMaxRange(t *testing.T) {
	w := newTestWorld(t)
	viper := placeAnimal(t, w, SpeciesViper, 1000, 1000)
	target := placePlayer(t, w, "target", 1400, 1000) // beyond spittle range (240)

	w.spawnSpittle(viper, target, time.Unix(10, 0))

	now := time.Unix(10, 0)
	for i := 0; i < 60 && len(w.projectiles) > 0; i++ {
		now = now.Add(tickStep)
		w.AdvanceProjectiles(now, tickStep.Seconds())
	}

	if len(w.projectiles) != 0 {
		t.Fatalf("projectile outlived its range")
	}
	if target.Health != target.MaxHealth {
		t.Fatalf("target hit beyond max range")
	}
}

func TestSpittleSweptHitAtHighStep(t *testing.T) {
	w := newTestWorld(t)
	viper := placeAnimal(t, w, SpeciesViper, 1000, 1000)
	target := placePlayer(t, w, "target", 1100, 1000)

	w.spawnSpittle(viper, target, time.Unix(10, 0))

	// One huge step carries the glob far past the target; the swept segment
	// check must still land the hit instead of tunneling.
	w.AdvanceProjectiles(time.Unix(10, 1), 0.8)

	if target.Health >= target.MaxHealth {
		t.Fatalf("projectile tunneled through the target")
	}
}

func TestSpittleIgnoresDeadTarget(t *testing.T) {
	w := newTestWorld(t)
	viper := placeAnimal(t, w, SpeciesViper, 1000, 1000)
	target := placePlayer(t, w, "target", 1100, 1000)

	w.spawnSpittle(viper, target, time.Unix(10, 0))
	target.Dead = true

	now := time.Unix(10, 0)
	for i := 0; i < 60 && len(w.projectiles) > 0; i++ {
		now = now.Add(tickStep)
		w.AdvanceProjectiles(now, tickStep.Seconds())
	}
	if target.Health != target.MaxHealth {
		t.Fatalf("dead target took projectile damage")
	}
}

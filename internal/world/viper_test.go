package world

import (
	"math"
	"testing"
	"time"
)

func TestViperStrikeAppliesVenomAndBurrows(t *testing.T) {
	w := newTestWorld(t)
	viper := placeAnimal(t, w, SpeciesViper, 1000, 1000)
	p := placePlayer(t, w, "p1", 1010, 1000) // inside strike range (26)
	viper.State = StateChasing
	viper.TargetPlayerID = "p1"

	now := time.Unix(10, 0)
	tick(w, now)

	if p.Health >= p.MaxHealth {
		t.Fatalf("strike did not land")
	}
	if _, ok := p.statusEffects[StatusVenom]; !ok {
		t.Fatalf("strike did not inject venom")
	}
	if viper.State != StateBurrowed {
		t.Fatalf("state = %v, want burrowed after strike", viper.State)
	}
	if !viper.HideUntil.After(now) {
		t.Fatalf("burrow deadline not strictly in the future")
	}
}

func TestViperBurrowTeleportsWithinBounds(t *testing.T) {
	w := newTestWorld(t)
	viper := placeAnimal(t, w, SpeciesViper, 1000, 1000)
	behavior := w.behaviors[SpeciesViper].(*viperBehavior)

	behavior.enterBurrowed(w, viper, time.Unix(10, 0))

	dist := math.Hypot(viper.X-viper.SpawnX, viper.Y-viper.SpawnY)
	if dist < viperBurrowMinDistance-1e-9 || dist > viperBurrowMaxDistance+1e-9 {
		t.Fatalf("burrow distance %v outside [%v, %v]", dist, viperBurrowMinDistance, viperBurrowMaxDistance)
	}
}

func TestViperBurrowedUntargetable(t *testing.T) {
	w := newTestWorld(t)
	viper := placeAnimal(t, w, SpeciesViper, 1000, 1000)
	viper.State = StateBurrowed
	before := viper.Health

	err := w.ApplyDamageToAnimal(viper.ID, "p1", 10, time.Unix(10, 0))
	if err == nil {
		t.Fatalf("expected invalid-state error for burrowed target")
	}
	if viper.Health != before {
		t.Fatalf("burrowed viper took damage")
	}
}

func TestViperDamageTriggersBurrow(t *testing.T) {
	w := newTestWorld(t)
	viper := placeAnimal(t, w, SpeciesViper, 1000, 1000)
	placePlayer(t, w, "p1", 1050, 1000)

	if err := w.ApplyDamageToAnimal(viper.ID, "p1", 5, time.Unix(10, 0)); err != nil {
		t.Fatalf("ApplyDamageToAnimal: %v", err)
	}
	if viper.State != StateBurrowed {
		t.Fatalf("state = %v, want burrowed after damage", viper.State)
	}
}

func TestViperStandsOffAgainstRangedTarget(t *testing.T) {
	w := newTestWorld(t)
	viper := placeAnimal(t, w, SpeciesViper, 1000, 1000)
	p := placePlayer(t, w, "p1", 1010, 1000)
	p.Equipped = "bow"
	viper.State = StateChasing
	viper.TargetPlayerID = "p1"

	now := time.Unix(10, 0)
	tick(w, now)

	// Too close for comfort against a bow: the viper backs away instead of
	// striking, and spits instead of biting.
	if viper.State != StateChasing {
		t.Fatalf("state = %v, want chasing (stand-off)", viper.State)
	}
	if _, ok := p.statusEffects[StatusVenom]; ok {
		t.Fatalf("melee venom applied during stand-off")
	}
	if math.Hypot(p.X-viper.X, p.Y-viper.Y) <= 10 {
		t.Fatalf("viper failed to open distance")
	}
	if len(w.projectiles) == 0 {
		t.Fatalf("no spittle launched during stand-off")
	}
}

func TestViperSpitRespectsCooldown(t *testing.T) {
	w := newTestWorld(t)
	viper := placeAnimal(t, w, SpeciesViper, 1000, 1000)
	p := placePlayer(t, w, "p1", 1100, 1000)
	p.Equipped = "crossbow"
	viper.State = StateChasing
	viper.TargetPlayerID = "p1"
	stats := w.behaviors[SpeciesViper].Stats()

	now := time.Unix(10, 0)
	tick(w, now)
	if len(w.projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1 after first spit", len(w.projectiles))
	}

	// Next tick is inside the cooldown window.
	tick(w, now.Add(tickStep))
	if len(w.projectiles) != 1 {
		t.Fatalf("spit ignored cooldown")
	}

	tick(w, now.Add(stats.AttackSpeed+tickStep))
	if len(w.projectiles) != 2 {
		t.Fatalf("projectiles = %d, want 2 after cooldown", len(w.projectiles))
	}
}

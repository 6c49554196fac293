package world

import (
	"errors"
	"testing"
	"time"

	"wildmark/server/internal/sim"
)

func TestPlayerAttackOutOfReachRejected(t *testing.T) {
	w := newTestWorld(t)
	wolf := placeAnimal(t, w, SpeciesWolf, 1100, 1000)
	placePlayer(t, w, "p1", 1000, 1000) // 100 apart, unarmed reach is 48

	err := w.PlayerAttackAnimal("p1", wolf.ID, time.Unix(10, 0))
	if !errors.Is(err, sim.ErrInvalidState) {
		t.Fatalf("err = %v, want invalid-state", err)
	}
	if wolf.Health != wolf.MaxHealth {
		t.Fatalf("out-of-reach attack changed health: %v", wolf.Health)
	}
}

func TestPlayerAttackDamageDerivedFromEquipment(t *testing.T) {
	w := newTestWorld(t)
	wolf := placeAnimal(t, w, SpeciesWolf, 1030, 1000)
	placePlayer(t, w, "p1", 1000, 1000)

	now := time.Unix(10, 0)
	if err := w.PlayerAttackAnimal("p1", wolf.ID, now); err != nil {
		t.Fatalf("unarmed attack: %v", err)
	}
	if got := wolf.MaxHealth - wolf.Health; got != unarmedDamage {
		t.Fatalf("unarmed damage = %v, want %v", got, unarmedDamage)
	}

	w.SetPlayerEquipment("p1", "knife")
	before := wolf.Health
	if err := w.PlayerAttackAnimal("p1", wolf.ID, now); err != nil {
		t.Fatalf("knife attack: %v", err)
	}
	if got := before - wolf.Health; got != weaponDamage["knife"] {
		t.Fatalf("knife damage = %v, want %v", got, weaponDamage["knife"])
	}
}

func TestPlayerRangedWeaponExtendsReach(t *testing.T) {
	w := newTestWorld(t)
	wolf := placeAnimal(t, w, SpeciesWolf, 1150, 1000)
	placePlayer(t, w, "p1", 1000, 1000) // 150 apart

	now := time.Unix(10, 0)
	if err := w.PlayerAttackAnimal("p1", wolf.ID, now); !errors.Is(err, sim.ErrInvalidState) {
		t.Fatalf("unarmed at 150 should miss: %v", err)
	}

	w.SetPlayerEquipment("p1", "bow")
	if err := w.PlayerAttackAnimal("p1", wolf.ID, now); err != nil {
		t.Fatalf("bow at 150: %v", err)
	}
	if got := wolf.MaxHealth - wolf.Health; got != weaponDamage["bow"] {
		t.Fatalf("bow damage = %v, want %v", got, weaponDamage["bow"])
	}
}

func TestPlayerAttackRequiresLivingAttacker(t *testing.T) {
	w := newTestWorld(t)
	wolf := placeAnimal(t, w, SpeciesWolf, 1030, 1000)
	p := placePlayer(t, w, "p1", 1000, 1000)
	p.Dead = true

	err := w.PlayerAttackAnimal("p1", wolf.ID, time.Unix(10, 0))
	if !errors.Is(err, sim.ErrInvalidState) {
		t.Fatalf("err = %v, want invalid-state", err)
	}
	if wolf.Health != wolf.MaxHealth {
		t.Fatalf("dead attacker changed health: %v", wolf.Health)
	}
}

func TestPlayerAttackUnknownEntities(t *testing.T) {
	w := newTestWorld(t)
	wolf := placeAnimal(t, w, SpeciesWolf, 1030, 1000)
	placePlayer(t, w, "p1", 1000, 1000)

	now := time.Unix(10, 0)
	if err := w.PlayerAttackAnimal("ghost", wolf.ID, now); !errors.Is(err, sim.ErrNotFound) {
		t.Fatalf("unknown attacker: %v", err)
	}
	if err := w.PlayerAttackAnimal("p1", 999, now); !errors.Is(err, sim.ErrNotFound) {
		t.Fatalf("unknown animal: %v", err)
	}
}

func TestPlayerAttackBurrowedAnimalRejected(t *testing.T) {
	w := newTestWorld(t)
	viper := placeAnimal(t, w, SpeciesViper, 1030, 1000)
	placePlayer(t, w, "p1", 1000, 1000)
	viper.State = StateBurrowed

	err := w.PlayerAttackAnimal("p1", viper.ID, time.Unix(10, 0))
	if !errors.Is(err, sim.ErrInvalidState) {
		t.Fatalf("err = %v, want invalid-state", err)
	}
	if viper.Health != viper.MaxHealth {
		t.Fatalf("burrowed animal took damage: %v", viper.Health)
	}
}

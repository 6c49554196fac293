package world

import (
	"context"
	"fmt"
	"time"

	"wildmark/server/internal/sim"
	loggingcombat "wildmark/server/logging/combat"
)

// Player attack tuning. The server derives damage and reach from the equipped
// item; clients only name the target.
const (
	unarmedDamage     = 6.0
	meleeAttackReach  = 48.0
	rangedAttackReach = 220.0
)

var weaponDamage = map[string]float64{
	"knife":    12,
	"spear":    16,
	"bow":      10,
	"crossbow": 14,
	"sling":    7,
}

// landAttack applies one melee strike from an animal to a player, with an
// optional status effect rider, and stamps the attack cooldown.
func (w *World) landAttack(a *AnimalState, target *PlayerState, damage float64, status StatusEffectType, now time.Time) {
	if w == nil || a == nil || target == nil {
		return
	}
	a.LastAttackAt = now
	if err := w.DamagePlayer(target.ID, damage, status, a, now); err != nil {
		return
	}
	loggingcombat.AttackLanded(
		context.Background(),
		w.publisher,
		w.currentTick,
		w.animalRef(a),
		w.playerRef(target.ID),
		loggingcombat.AttackPayload{Species: string(a.Species), Damage: damage},
	)
	w.emitSound(SoundEvent{Type: SoundAttack, X: a.X, Y: a.Y, SourceID: a.handle()})
}

// PlayerAttackAnimal resolves a player's attack command against an animal.
// The attacker must be alive and within the reach of its equipped item;
// burrowed animals stay untargetable through the damage path.
func (w *World) PlayerAttackAnimal(playerID string, animalID uint64, now time.Time) error {
	if w == nil {
		return sim.NotFound(playerID)
	}
	attacker, ok := w.players[playerID]
	if !ok {
		return sim.NotFound(playerID)
	}
	if attacker.Dead {
		return sim.InvalidState(playerID, "dead")
	}
	a, ok := w.animals[animalID]
	if !ok {
		return sim.NotFound(fmt.Sprintf("animal-%d", animalID))
	}

	ranged := attacker.hasRangedWeapon()
	reach := meleeAttackReach
	if ranged {
		reach = rangedAttackReach
	}
	dx := a.X - attacker.X
	dy := a.Y - attacker.Y
	if dx*dx+dy*dy > reach*reach {
		return sim.InvalidState(playerID, "target out of reach")
	}

	damage := unarmedDamage
	if d, ok := weaponDamage[attacker.Equipped]; ok {
		damage = d
	}
	if err := w.ApplyDamageToAnimal(animalID, playerID, damage, now); err != nil {
		return err
	}
	loggingcombat.AttackLanded(
		context.Background(),
		w.publisher,
		w.currentTick,
		w.playerRef(playerID),
		w.animalRef(a),
		loggingcombat.AttackPayload{Damage: damage, Ranged: ranged},
	)
	return nil
}

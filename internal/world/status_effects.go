package world

import (
	"context"
	"time"

	"wildmark/server/internal/sim"
	loggingcombat "wildmark/server/logging/combat"
	loggingwildlife "wildmark/server/logging/wildlife"
)

// StatusEffectType tags a damage-over-time condition on a player.
type StatusEffectType string

const (
	StatusBleed      StatusEffectType = "bleed"
	StatusVenom      StatusEffectType = "venom"
	StatusVenomLight StatusEffectType = "venom-light"
)

// StatusEffectDefinition is the immutable tuning for one effect type.
type StatusEffectDefinition struct {
	Type          StatusEffectType
	Duration      time.Duration
	TickInterval  time.Duration
	DamagePerTick float64
}

// newStatusEffectDefinitions builds the effect registry. Venom is effectively
// permanent until cured; the near-infinite duration keeps the expiry path
// uniform instead of special-casing it.
func newStatusEffectDefinitions() map[StatusEffectType]*StatusEffectDefinition {
	defs := []*StatusEffectDefinition{
		{Type: StatusBleed, Duration: 8 * time.Second, TickInterval: time.Second, DamagePerTick: 2},
		{Type: StatusVenom, Duration: 10000 * time.Hour, TickInterval: 2 * time.Second, DamagePerTick: 1.5},
		{Type: StatusVenomLight, Duration: 30 * time.Second, TickInterval: 2 * time.Second, DamagePerTick: 1},
	}
	registry := make(map[StatusEffectType]*StatusEffectDefinition, len(defs))
	for _, def := range defs {
		registry[def.Type] = def
	}
	return registry
}

// statusEffectInstance is one live effect on a player. Re-application
// refreshes ExpiresAt rather than stacking.
type statusEffectInstance struct {
	def        *StatusEffectDefinition
	SourceID   string
	AppliedAt  time.Time
	ExpiresAt  time.Time
	NextTickAt time.Time
}

// applyStatusEffect attaches or refreshes an effect on a player. An unknown
// effect type logs a catalog miss and is skipped; the triggering attack has
// already landed.
func (w *World) applyStatusEffect(target *PlayerState, effect StatusEffectType, source *AnimalState, now time.Time) {
	def, ok := w.statusEffectDefs[effect]
	if !ok {
		loggingwildlife.CatalogMiss(
			context.Background(),
			w.publisher,
			w.currentTick,
			w.playerRef(target.ID),
			loggingwildlife.CatalogMissPayload{Lookup: "status-effect", Key: string(effect)},
		)
		return
	}
	if target.statusEffects == nil {
		target.statusEffects = make(map[StatusEffectType]*statusEffectInstance)
	}
	sourceID := ""
	if source != nil {
		sourceID = source.handle()
	}
	if existing, ok := target.statusEffects[effect]; ok {
		existing.ExpiresAt = now.Add(def.Duration)
		existing.SourceID = sourceID
	} else {
		target.statusEffects[effect] = &statusEffectInstance{
			def:        def,
			SourceID:   sourceID,
			AppliedAt:  now,
			ExpiresAt:  now.Add(def.Duration),
			NextTickAt: now.Add(def.TickInterval),
		}
	}
	actor := w.playerRef(target.ID)
	if source != nil {
		actor = w.animalRef(source)
	}
	loggingcombat.StatusApplied(
		context.Background(),
		w.publisher,
		w.currentTick,
		actor,
		w.playerRef(target.ID),
		loggingcombat.StatusPayload{
			StatusEffect: string(effect),
			SourceID:     sourceID,
			DurationMs:   def.Duration.Milliseconds(),
		},
	)
}

// AdvanceStatusEffects applies due damage ticks and expires finished effects
// across all players.
func (w *World) AdvanceStatusEffects(now time.Time) {
	if w == nil {
		return
	}
	for _, id := range w.playerIDs() {
		p := w.players[id]
		if p == nil || len(p.statusEffects) == 0 {
			continue
		}
		for effect, instance := range p.statusEffects {
			if !now.Before(instance.ExpiresAt) {
				delete(p.statusEffects, effect)
				continue
			}
			if p.Dead {
				continue
			}
			for !now.Before(instance.NextTickAt) {
				p.Health -= instance.def.DamagePerTick
				if p.Health <= 0 {
					p.Health = 0
					p.Dead = true
					break
				}
				instance.NextTickAt = instance.NextTickAt.Add(instance.def.TickInterval)
			}
		}
	}
}

// CureVenom removes venom conditions from a player, the antidote-item path.
func (w *World) CureVenom(playerID string) error {
	if w == nil {
		return sim.NotFound(playerID)
	}
	p, ok := w.players[playerID]
	if !ok {
		return sim.NotFound(playerID)
	}
	if p.statusEffects == nil {
		return nil
	}
	delete(p.statusEffects, StatusVenom)
	delete(p.statusEffects, StatusVenomLight)
	return nil
}

// ActiveStatusEffects lists the effect tags currently on a player, for
// snapshots.
func (p *PlayerState) ActiveStatusEffects() []string {
	if p == nil || len(p.statusEffects) == 0 {
		return nil
	}
	tags := make([]string, 0, len(p.statusEffects))
	for effect := range p.statusEffects {
		tags = append(tags, string(effect))
	}
	return tags
}

package world

import (
	"fmt"
	"time"

	"wildmark/server/catalog"
)

// SpeciesSource resolves species tuning documents. Satisfied by
// *catalog.Catalog; nil falls back to the embedded default catalog.
type SpeciesSource interface {
	Lookup(species string) (catalog.SpeciesDocument, bool)
}

// Behavior is a species strategy. The shared state machine drives every
// animal; behaviors supply the species-specific decisions at each hook point.
type Behavior interface {
	Stats() AnimalStats
	MovementPattern() MovementPattern

	// ShouldChase decides whether a detected player provokes a chase or a
	// retreat. Called once at detection; the decision commits.
	ShouldChase(w *World, a *AnimalState, target *PlayerState) bool

	// ExecuteChase advances one tick of pursuit, including attacks when in
	// range and off cooldown.
	ExecuteChase(w *World, a *AnimalState, target *PlayerState, now time.Time, dt float64)

	// StartFlee records the flee reference point and transitions the
	// animal into Fleeing.
	StartFlee(w *World, a *AnimalState, threatX, threatY float64, now time.Time)

	// ExecuteFlee advances one tick of retreat and reports whether the
	// flee is finished.
	ExecuteFlee(w *World, a *AnimalState, now time.Time, dt float64) bool

	// HandleDamage reacts to surviving an inbound hit.
	HandleDamage(w *World, a *AnimalState, attacker *PlayerState, now time.Time)
}

// baseBehavior carries the resolved stat block and default hook
// implementations shared by all species.
type baseBehavior struct {
	species Species
	stats   AnimalStats
	pattern MovementPattern
}

func (b *baseBehavior) Stats() AnimalStats { return b.stats }

func (b *baseBehavior) MovementPattern() MovementPattern { return b.pattern }

func (b *baseBehavior) ShouldChase(w *World, a *AnimalState, target *PlayerState) bool {
	return true
}

// ExecuteChase is the shared pursuit step: sprint at the target, strike when
// range and cooldown allow.
func (b *baseBehavior) ExecuteChase(w *World, a *AnimalState, target *PlayerState, now time.Time, dt float64) {
	if a.canAttack(b.stats, target.X, target.Y, now) {
		w.landAttack(a, target, b.stats.AttackDamage, "", now)
		return
	}
	w.moveAnimalToward(a, target.X, target.Y, b.stats.SprintSpeed, dt)
}

// StartFlee anchors the retreat on the threat position and transitions.
func (b *baseBehavior) StartFlee(w *World, a *AnimalState, threatX, threatY float64, now time.Time) {
	a.setInvestigation(threatX, threatY)
	w.setAnimalState(a, StateFleeing, now)
}

// ExecuteFlee runs away from the investigation point until out of perception
// range of it.
func (b *baseBehavior) ExecuteFlee(w *World, a *AnimalState, now time.Time, dt float64) bool {
	if !a.HasInvestigate {
		return true
	}
	w.moveAnimalAway(a, a.InvestigateX, a.InvestigateY, b.stats.SprintSpeed, dt)
	dx := a.X - a.InvestigateX
	dy := a.Y - a.InvestigateY
	return dx*dx+dy*dy >= b.stats.PerceptionRange*b.stats.PerceptionRange
}

func (b *baseBehavior) HandleDamage(w *World, a *AnimalState, attacker *PlayerState, now time.Time) {
	if attacker == nil {
		return
	}
	if a.healthFraction() <= b.stats.FleeTriggerHealthPercent {
		a.setInvestigation(attacker.X, attacker.Y)
		w.setAnimalState(a, StateFleeing, now)
		return
	}
	a.TargetPlayerID = attacker.ID
	w.setAnimalState(a, StateChasing, now)
}

// buildBehaviors resolves the catalog tuning for every species into its
// behavior strategy. A missing catalog entry is a construction error, not a
// runtime fallback.
func buildBehaviors(src SpeciesSource) (map[Species]Behavior, error) {
	if src == nil {
		loaded, err := catalog.Load("")
		if err != nil {
			return nil, err
		}
		src = loaded
	}
	behaviors := make(map[Species]Behavior, 3)
	for _, species := range []Species{SpeciesFox, SpeciesWolf, SpeciesViper} {
		doc, ok := src.Lookup(string(species))
		if !ok {
			return nil, fmt.Errorf("species %q missing from catalog", species)
		}
		base := baseBehavior{
			species: species,
			stats:   statsFromDocument(doc.Stats),
			pattern: MovementPattern(doc.Pattern),
		}
		switch species {
		case SpeciesFox:
			behaviors[species] = &foxBehavior{baseBehavior: base}
		case SpeciesWolf:
			behaviors[species] = &wolfBehavior{baseBehavior: base}
		case SpeciesViper:
			behaviors[species] = &viperBehavior{baseBehavior: base}
		}
	}
	return behaviors, nil
}

func statsFromDocument(doc catalog.StatsDocument) AnimalStats {
	return AnimalStats{
		MaxHealth:                doc.MaxHealth,
		AttackDamage:             doc.AttackDamage,
		AttackRange:              doc.AttackRange,
		AttackSpeed:              time.Duration(doc.AttackSpeedMs) * time.Millisecond,
		MovementSpeed:            doc.MovementSpeed,
		SprintSpeed:              doc.SprintSpeed,
		PerceptionRange:          doc.PerceptionRange,
		PerceptionAngle:          doc.PerceptionAngle,
		PatrolRadius:             doc.PatrolRadius,
		ChaseTriggerRange:        doc.ChaseTriggerRange,
		FleeTriggerHealthPercent: doc.FleeTriggerHealthPercent,
		HideDuration:             time.Duration(doc.HideDurationMs) * time.Millisecond,
	}
}

package world

import (
	"fmt"
	"time"

	"wildmark/server/internal/sim"
)

// Species tags a wild animal row with its behavior strategy.
type Species string

const (
	SpeciesFox   Species = "fox"
	SpeciesWolf  Species = "wolf"
	SpeciesViper Species = "viper"
)

// AIState is the single active state tag of an animal's state machine.
type AIState uint8

const (
	StatePatrolling AIState = iota
	StateAlert
	StateInvestigating
	StateChasing
	StateFleeing
	StateHiding
	StateBurrowed
)

func (s AIState) String() string {
	switch s {
	case StatePatrolling:
		return "patrolling"
	case StateAlert:
		return "alert"
	case StateInvestigating:
		return "investigating"
	case StateChasing:
		return "chasing"
	case StateFleeing:
		return "fleeing"
	case StateHiding:
		return "hiding"
	case StateBurrowed:
		return "burrowed"
	default:
		return "unknown"
	}
}

// AnimalStats is the immutable per-species tuning block. It is resolved once
// from the species catalog and read-only afterwards.
type AnimalStats struct {
	MaxHealth                float64
	AttackDamage             float64
	AttackRange              float64
	AttackSpeed              time.Duration
	MovementSpeed            float64
	SprintSpeed              float64
	PerceptionRange          float64
	PerceptionAngle          float64
	PatrolRadius             float64
	ChaseTriggerRange        float64
	FleeTriggerHealthPercent float64
	HideDuration             time.Duration
}

// AnimalState is one live wild animal row.
type AnimalState struct {
	ID        uint64
	Species   Species
	X         float64
	Y         float64
	Health    float64
	MaxHealth float64

	State          AIState
	StateChangedAt time.Time
	TargetPlayerID string

	// Investigation scratch: meaningful only in Alert, Investigating, and
	// Fleeing; cleared on every transition out of those states.
	InvestigateX   float64
	InvestigateY   float64
	HasInvestigate bool

	SpawnX float64
	SpawnY float64

	DirX        float64
	DirY        float64
	PatrolPhase float64

	LastAttackAt time.Time
	HideUntil    time.Time

	wanderTargetX float64
	wanderTargetY float64
	hasWander     bool
	nextWanderAt  time.Time
}

func (a *AnimalState) handle() string {
	if a == nil {
		return "animal"
	}
	return fmt.Sprintf("animal-%d", a.ID)
}

func (a *AnimalState) healthFraction() float64 {
	if a == nil || a.MaxHealth <= 0 {
		return 0
	}
	return a.Health / a.MaxHealth
}

func (a *AnimalState) setInvestigation(x, y float64) {
	a.InvestigateX = x
	a.InvestigateY = y
	a.HasInvestigate = true
}

func (a *AnimalState) clearInvestigation() {
	a.InvestigateX = 0
	a.InvestigateY = 0
	a.HasInvestigate = false
}

// canAttack gates attacks on range and cooldown.
func (a *AnimalState) canAttack(stats AnimalStats, targetX, targetY float64, now time.Time) bool {
	if a == nil {
		return false
	}
	dx := targetX - a.X
	dy := targetY - a.Y
	if dx*dx+dy*dy > stats.AttackRange*stats.AttackRange {
		return false
	}
	if a.LastAttackAt.IsZero() {
		return true
	}
	return now.Sub(a.LastAttackAt) >= stats.AttackSpeed
}

// SpawnAnimal creates a wild animal row anchored at (x, y) in Patrolling
// state. Unknown species is an invalid-configuration error.
func (w *World) SpawnAnimal(species Species, x, y float64) (*AnimalState, error) {
	if w == nil {
		return nil, sim.InvalidState("world", "nil world")
	}
	behavior, ok := w.behaviors[species]
	if !ok {
		return nil, sim.InvalidState(string(species), "unknown species")
	}
	stats := behavior.Stats()
	w.nextAnimalID++
	a := &AnimalState{
		ID:        w.nextAnimalID,
		Species:   species,
		X:         w.clampX(x, animalRadius),
		Y:         w.clampY(y, animalRadius),
		Health:    stats.MaxHealth,
		MaxHealth: stats.MaxHealth,
		State:     StatePatrolling,
		DirX:      1,
	}
	a.SpawnX = a.X
	a.SpawnY = a.Y
	w.animals[a.ID] = a
	return a, nil
}

// Animal returns the live row for id, or nil.
func (w *World) Animal(id uint64) *AnimalState {
	if w == nil {
		return nil
	}
	return w.animals[id]
}

// AnimalCount reports how many animals are alive.
func (w *World) AnimalCount() int {
	if w == nil {
		return 0
	}
	return len(w.animals)
}

// animalIDs snapshots the live ids so the tick can mutate rows by id without
// mutating the table mid-iteration.
func (w *World) animalIDs() []uint64 {
	ids := make([]uint64, 0, len(w.animals))
	for id := range w.animals {
		ids = append(ids, id)
	}
	return ids
}

// spawnInitialWildlife places the configured animal population at random
// legal points.
func (w *World) spawnInitialWildlife() {
	counts := []struct {
		species Species
		count   int
	}{
		{SpeciesFox, w.config.FoxCount},
		{SpeciesWolf, w.config.WolfCount},
		{SpeciesViper, w.config.ViperCount},
	}
	rng := w.subsystemRNG("wildlife.spawn")
	for _, entry := range counts {
		for i := 0; i < entry.count; i++ {
			placed := false
			for attempt := 0; attempt < 20 && !placed; attempt++ {
				x := animalRadius + rng.Float64()*(w.config.Width-2*animalRadius)
				y := animalRadius + rng.Float64()*(w.config.Height-2*animalRadius)
				if w.blockedForWildlife(x, y) {
					continue
				}
				if _, err := w.SpawnAnimal(entry.species, x, y); err == nil {
					placed = true
				}
			}
		}
	}
}

// ApplyDamageToAnimal is the inbound damage path from player attacks.
// Burrowed animals are untargetable; missing rows report NotFound.
func (w *World) ApplyDamageToAnimal(animalID uint64, attackerID string, amount float64, now time.Time) error {
	if w == nil {
		return sim.NotFound("world")
	}
	a, ok := w.animals[animalID]
	if !ok {
		return sim.NotFound(fmt.Sprintf("animal-%d", animalID))
	}
	if a.State == StateBurrowed {
		return sim.InvalidState(a.handle(), "burrowed")
	}
	if amount > 0 {
		a.Health -= amount
	}
	if a.Health <= 0 {
		w.killAnimal(a, now)
		return nil
	}
	behavior, ok := w.behaviors[a.Species]
	if !ok {
		return nil
	}
	attacker := w.players[attackerID]
	behavior.HandleDamage(w, a, attacker, now)
	return nil
}

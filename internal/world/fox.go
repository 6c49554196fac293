package world

import (
	"math"
	"time"
)

// Foxes are opportunists: they commit to chasing only players already below
// the weakness threshold, otherwise they bolt a fixed distance and resume
// patrolling. A fox never hides.
const (
	foxWeakPreyThreshold = 0.4
	foxFleeDistance      = 800.0
)

type foxBehavior struct {
	baseBehavior
}

// ShouldChase commits at detection time: weak prey is chased, healthy prey is
// fled from. The decision does not re-evaluate as the target heals or drops.
func (b *foxBehavior) ShouldChase(w *World, a *AnimalState, target *PlayerState) bool {
	return target.healthFraction() < foxWeakPreyThreshold
}

// ExecuteFlee runs toward a point exactly foxFleeDistance away from the
// threat, chosen once when the flee started, and finishes on arrival.
func (b *foxBehavior) ExecuteFlee(w *World, a *AnimalState, now time.Time, dt float64) bool {
	if !a.HasInvestigate {
		return true
	}
	// InvestigateX/Y holds the flee destination, not the threat position;
	// startFoxFlee resolves the destination when the transition happens.
	w.moveAnimalToward(a, a.InvestigateX, a.InvestigateY, b.stats.SprintSpeed, dt)
	return math.Hypot(a.InvestigateX-a.X, a.InvestigateY-a.Y) <= wanderArriveDistance
}

func (b *foxBehavior) HandleDamage(w *World, a *AnimalState, attacker *PlayerState, now time.Time) {
	if attacker == nil {
		return
	}
	b.StartFlee(w, a, attacker.X, attacker.Y, now)
}

// StartFlee sets the flee destination foxFleeDistance directly opposite the
// threat and transitions. A threat at the fox's exact position picks an
// arbitrary fixed direction.
func (b *foxBehavior) StartFlee(w *World, a *AnimalState, threatX, threatY float64, now time.Time) {
	dx := a.X - threatX
	dy := a.Y - threatY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dx, dy, dist = 1, 0, 1
	}
	destX := w.clampX(a.X+dx/dist*foxFleeDistance, animalRadius)
	destY := w.clampY(a.Y+dy/dist*foxFleeDistance, animalRadius)
	a.setInvestigation(destX, destY)
	w.setAnimalState(a, StateFleeing, now)
}

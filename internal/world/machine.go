package world

import (
	"context"
	"math"
	"time"

	loggingwildlife "wildmark/server/logging/wildlife"
)

const (
	// chaseCommitMultiplier widens the give-up radius relative to the chase
	// trigger, so an animal that committed to a chase does not flicker at
	// the boundary.
	chaseCommitMultiplier = 1.5

	// alertDuration is how long an animal studies a detection before
	// walking toward it.
	alertDuration = 1200 * time.Millisecond

	// investigateArriveDistance ends an investigation when the animal is
	// close enough to the recorded point.
	investigateArriveDistance = 12.0
)

// AdvanceWildlife runs one tick of the animal state machine for every animal.
// Rows are addressed by id from a snapshot so kills and spawns during the
// tick never corrupt iteration.
func (w *World) AdvanceWildlife(now time.Time, dt float64) error {
	if w == nil {
		return nil
	}
	for _, id := range w.animalIDs() {
		a := w.animals[id]
		if a == nil {
			continue
		}
		w.stepAnimal(a, now, dt)
	}
	return nil
}

func (w *World) stepAnimal(a *AnimalState, now time.Time, dt float64) {
	behavior, ok := w.behaviors[a.Species]
	if !ok {
		loggingwildlife.CatalogMiss(
			context.Background(),
			w.publisher,
			w.currentTick,
			w.animalRef(a),
			loggingwildlife.CatalogMissPayload{Lookup: "behavior", Key: string(a.Species)},
		)
		return
	}
	stats := behavior.Stats()

	switch a.State {
	case StatePatrolling:
		w.stepPatrolling(a, behavior, stats, now, dt)
	case StateAlert:
		w.stepAlert(a, behavior, stats, now, dt)
	case StateInvestigating:
		w.stepInvestigating(a, behavior, stats, now, dt)
	case StateChasing:
		w.stepChasing(a, behavior, stats, now, dt)
	case StateFleeing:
		if behavior.ExecuteFlee(w, a, now, dt) {
			w.setAnimalState(a, StatePatrolling, now)
		}
	case StateHiding:
		if !now.Before(a.HideUntil) {
			w.setAnimalState(a, StatePatrolling, now)
		}
	case StateBurrowed:
		if !now.Before(a.HideUntil) {
			w.setAnimalState(a, StatePatrolling, now)
		}
	}
}

// stepPatrolling drifts along the species pattern and promotes detections.
// A player inside the chase trigger skips Alert and commits immediately; a
// player merely inside perception raises Alert first.
func (w *World) stepPatrolling(a *AnimalState, behavior Behavior, stats AnimalStats, now time.Time, dt float64) {
	if target, dist := w.nearestVisiblePlayer(a, stats); target != nil {
		if dist <= stats.ChaseTriggerRange {
			w.commitDetection(a, behavior, target, now)
			return
		}
		a.setInvestigation(target.X, target.Y)
		w.setAnimalState(a, StateAlert, now)
		return
	}
	w.patrolStep(a, stats, behavior.MovementPattern(), now, dt)
}

// stepAlert faces the detection point and waits out the alert dwell. Seeing
// the player inside the chase trigger commits; losing sight long enough
// downgrades to Investigating the last known point.
func (w *World) stepAlert(a *AnimalState, behavior Behavior, stats AnimalStats, now time.Time, dt float64) {
	if target, dist := w.nearestVisiblePlayer(a, stats); target != nil {
		a.setInvestigation(target.X, target.Y)
		if dist <= stats.ChaseTriggerRange {
			w.commitDetection(a, behavior, target, now)
			return
		}
		// Track the contact by facing it while holding position.
		dx := target.X - a.X
		dy := target.Y - a.Y
		if d := math.Hypot(dx, dy); d > 0 {
			a.DirX = dx / d
			a.DirY = dy / d
		}
	}
	if now.Sub(a.StateChangedAt) >= alertDuration {
		if a.HasInvestigate {
			w.setAnimalState(a, StateInvestigating, now)
		} else {
			w.setAnimalState(a, StatePatrolling, now)
		}
	}
}

// stepInvestigating walks to the recorded point. Re-acquiring the player
// re-enters the detection pipeline; arriving with nothing found resumes
// patrol.
func (w *World) stepInvestigating(a *AnimalState, behavior Behavior, stats AnimalStats, now time.Time, dt float64) {
	if target, dist := w.nearestVisiblePlayer(a, stats); target != nil && dist <= stats.ChaseTriggerRange {
		w.commitDetection(a, behavior, target, now)
		return
	}
	if !a.HasInvestigate {
		w.setAnimalState(a, StatePatrolling, now)
		return
	}
	if math.Hypot(a.InvestigateX-a.X, a.InvestigateY-a.Y) <= investigateArriveDistance {
		w.setAnimalState(a, StatePatrolling, now)
		return
	}
	w.moveAnimalToward(a, a.InvestigateX, a.InvestigateY, stats.MovementSpeed, dt)
}

// stepChasing pursues the committed target until it dies, despawns, or
// escapes past the widened give-up radius.
func (w *World) stepChasing(a *AnimalState, behavior Behavior, stats AnimalStats, now time.Time, dt float64) {
	target := w.players[a.TargetPlayerID]
	if target == nil || target.Dead {
		w.disengage(a, stats, now)
		return
	}
	giveUp := stats.ChaseTriggerRange * chaseCommitMultiplier
	dx := target.X - a.X
	dy := target.Y - a.Y
	if dx*dx+dy*dy > giveUp*giveUp {
		w.disengage(a, stats, now)
		return
	}
	behavior.ExecuteChase(w, a, target, now, dt)
}

// commitDetection runs the species chase-or-flee decision once and locks it
// in for the duration of the resulting state.
func (w *World) commitDetection(a *AnimalState, behavior Behavior, target *PlayerState, now time.Time) {
	if behavior.ShouldChase(w, a, target) {
		a.TargetPlayerID = target.ID
		w.setAnimalState(a, StateChasing, now)
		return
	}
	behavior.StartFlee(w, a, target.X, target.Y, now)
}

// disengage ends a chase. Wolves rest in Hiding for their catalog hide
// duration before resuming; everyone else returns straight to Patrolling.
func (w *World) disengage(a *AnimalState, stats AnimalStats, now time.Time) {
	if a.Species == SpeciesWolf {
		a.HideUntil = now.Add(stats.HideDuration)
		w.setAnimalState(a, StateHiding, now)
		return
	}
	w.setAnimalState(a, StatePatrolling, now)
}

// setAnimalState is the single transition point. Scratch data tied to the
// outgoing state is cleared here so no stale target or investigation point
// leaks across states, and every transition is logged.
func (w *World) setAnimalState(a *AnimalState, next AIState, now time.Time) {
	if a == nil || a.State == next {
		return
	}
	prev := a.State

	switch prev {
	case StateAlert, StateInvestigating, StateFleeing:
		if next != StateAlert && next != StateInvestigating && next != StateFleeing {
			a.clearInvestigation()
		}
	}
	if next == StatePatrolling {
		a.TargetPlayerID = ""
		a.hasWander = false
	}

	a.State = next
	a.StateChangedAt = now

	loggingwildlife.StateChanged(
		context.Background(),
		w.publisher,
		w.currentTick,
		w.animalRef(a),
		loggingwildlife.StateChangedPayload{
			Species:  string(a.Species),
			From:     prev.String(),
			To:       next.String(),
			TargetID: a.TargetPlayerID,
		},
	)
}

package world

import (
	"context"
	"time"

	"github.com/google/uuid"

	loggingwildlife "wildmark/server/logging/wildlife"
)

// Corpse is the static collidable left behind by a dead animal. It persists
// until harvested or decayed; decay is the host's job.
type Corpse struct {
	ID      string    `json:"id"`
	Species Species   `json:"species"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	DiedAt  time.Time `json:"diedAt"`
}

// CreateCorpse inserts a corpse row and returns its id.
func (w *World) CreateCorpse(species Species, x, y float64, diedAt time.Time) string {
	if w == nil {
		return ""
	}
	c := &Corpse{
		ID:      uuid.NewString(),
		Species: species,
		X:       x,
		Y:       y,
		DiedAt:  diedAt,
	}
	w.corpses[c.ID] = c
	return c.ID
}

// RemoveCorpse deletes a corpse row, the harvest path.
func (w *World) RemoveCorpse(id string) bool {
	if w == nil {
		return false
	}
	if _, ok := w.corpses[id]; !ok {
		return false
	}
	delete(w.corpses, id)
	return true
}

// killAnimal retires a dead animal row: the row leaves the table, a corpse
// takes its place, and the death is announced.
func (w *World) killAnimal(a *AnimalState, now time.Time) {
	if w == nil || a == nil {
		return
	}
	delete(w.animals, a.ID)
	corpseID := w.CreateCorpse(a.Species, a.X, a.Y, now)
	loggingwildlife.CorpseCreated(
		context.Background(),
		w.publisher,
		w.currentTick,
		w.animalRef(a),
		loggingwildlife.CorpseCreatedPayload{
			CorpseID: corpseID,
			Species:  string(a.Species),
			X:        a.X,
			Y:        a.Y,
		},
	)
	w.emitSound(SoundEvent{Type: SoundDeath, X: a.X, Y: a.Y, SourceID: a.handle()})
}

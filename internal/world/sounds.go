package world

import (
	"context"

	"wildmark/server/logging"
	loggingcombat "wildmark/server/logging/combat"
)

// SoundType tags a positional audio cue for clients.
type SoundType string

const (
	SoundAttack SoundType = "attack"
	SoundDeath  SoundType = "death"
	SoundBurrow SoundType = "burrow"
	SoundSpit   SoundType = "spit"
)

// SoundEvent is a fire-and-forget positional cue.
type SoundEvent struct {
	Type     SoundType `json:"type"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	SourceID string    `json:"sourceId,omitempty"`
}

// SoundEmitter delivers sound cues to whatever transport the host wires in.
// Emission failures never affect simulation state.
type SoundEmitter interface {
	Emit(event SoundEvent) error
}

// SoundEmitterFunc adapts a plain function to SoundEmitter.
type SoundEmitterFunc func(event SoundEvent) error

func (f SoundEmitterFunc) Emit(event SoundEvent) error {
	if f == nil {
		return nil
	}
	return f(event)
}

// NopSoundEmitter discards every cue.
func NopSoundEmitter() SoundEmitter {
	return SoundEmitterFunc(nil)
}

// emitSound dispatches a cue and logs delivery failures without propagating
// them.
func (w *World) emitSound(event SoundEvent) {
	if w == nil || w.sounds == nil {
		return
	}
	if err := w.sounds.Emit(event); err != nil {
		loggingcombat.SoundFailed(
			context.Background(),
			w.publisher,
			w.currentTick,
			w.entityRef(logging.EntityKindWorld, event.SourceID),
			loggingcombat.SoundFailedPayload{Sound: string(event.Type), Error: err.Error()},
		)
	}
}

package main

import (
	"encoding/json"

	"wildmark/server/internal/world"
	"wildmark/server/logging"
)

// joinResponse is the HTTP reply to /join: the assigned id plus the first
// full frame.
type joinResponse struct {
	ID       string         `json:"id"`
	Seed     string         `json:"seed"`
	Snapshot world.Snapshot `json:"snapshot"`
}

// stateMessage is the per-tick broadcast frame.
type stateMessage struct {
	Type     string         `json:"type"`
	Snapshot world.Snapshot `json:"snapshot"`
}

// soundMessage pushes a positional audio cue to clients.
type soundMessage struct {
	Type  string           `json:"type"`
	Sound world.SoundEvent `json:"sound"`
}

// clientMessage is the single inbound envelope; Type selects which fields
// are meaningful.
type clientMessage struct {
	Type string `json:"type"`

	// move
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`

	// equip
	Item string `json:"item,omitempty"`

	// attack; damage and reach are derived server-side from the player's
	// equipment, never taken from the wire.
	AnimalID uint64 `json:"animalId,omitempty"`

	// heartbeat
	SentAtMs int64 `json:"sentAtMs,omitempty"`
}

// diagnosticsResponse summarizes live server health for /diagnostics.
type diagnosticsResponse struct {
	Tick        uint64              `json:"tick"`
	Players     int                 `json:"players"`
	Animals     int                 `json:"animals"`
	Subscribers int                 `json:"subscribers"`
	Logging     logging.RouterStats `json:"logging"`
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

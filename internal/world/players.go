package world

import (
	"math"
	"time"

	"wildmark/server/internal/grid"
	"wildmark/server/internal/sim"
)

// Player is the wire-visible slice of a player row.
type Player struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Dead      bool    `json:"dead,omitempty"`
	Equipped  string  `json:"equipped,omitempty"`
}

// PlayerState is the live row: wire fields plus server-side bookkeeping.
type PlayerState struct {
	Player
	IntentX       float64
	IntentY       float64
	LastInput     time.Time
	LastHeartbeat time.Time
	LastRTT       time.Duration

	statusEffects map[StatusEffectType]*statusEffectInstance
}

const (
	PlayerMaxHealth = 100.0
	playerMoveSpeed = 160.0
)

// Equipment items that count as ranged weapons for viper stand-off behavior.
var rangedEquipment = map[string]bool{
	"bow":      true,
	"crossbow": true,
	"sling":    true,
}

func (p *PlayerState) hasRangedWeapon() bool {
	if p == nil {
		return false
	}
	return rangedEquipment[p.Equipped]
}

func (p *PlayerState) healthFraction() float64 {
	if p == nil || p.MaxHealth <= 0 {
		return 0
	}
	return p.Health / p.MaxHealth
}

// AddPlayer inserts a new player row at the given spawn point.
func (w *World) AddPlayer(id string, x, y float64, now time.Time) *PlayerState {
	if w == nil || id == "" {
		return nil
	}
	player := &PlayerState{
		Player: Player{
			ID:        id,
			X:         w.clampX(x, playerRadius),
			Y:         w.clampY(y, playerRadius),
			Health:    PlayerMaxHealth,
			MaxHealth: PlayerMaxHealth,
		},
		LastHeartbeat: now,
	}
	w.players[id] = player
	return player
}

// RemovePlayer deletes a player row. Shelters owned by the player stay.
func (w *World) RemovePlayer(id string) {
	if w == nil {
		return
	}
	delete(w.players, id)
}

// Player returns the live row for id, or nil.
func (w *World) Player(id string) *PlayerState {
	if w == nil {
		return nil
	}
	return w.players[id]
}

// SetPlayerIntent stores the latest normalized movement vector for a player.
func (w *World) SetPlayerIntent(id string, dx, dy float64, now time.Time) bool {
	if w == nil {
		return false
	}
	state, ok := w.players[id]
	if !ok {
		return false
	}
	length := math.Hypot(dx, dy)
	if length > 1 {
		dx /= length
		dy /= length
	}
	state.IntentX = dx
	state.IntentY = dy
	state.LastInput = now
	return true
}

// SetPlayerEquipment records the player's active equipment for ranged-weapon
// detection.
func (w *World) SetPlayerEquipment(id, item string) bool {
	if w == nil {
		return false
	}
	state, ok := w.players[id]
	if !ok {
		return false
	}
	state.Equipped = item
	return true
}

// MovePlayers applies stored intents through the shared collision substrate:
// slide against nearby obstacles, then push-out, then world-bounds clamp.
func (w *World) MovePlayers(now time.Time, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	ids := w.playerIDs()
	for _, id := range ids {
		state := w.players[id]
		if state == nil || state.Dead {
			continue
		}
		if state.IntentX == 0 && state.IntentY == 0 {
			continue
		}
		dx := state.IntentX * playerMoveSpeed * dt
		dy := state.IntentY * playerMoveSpeed * dt
		state.X, state.Y = w.moveActor(grid.KindPlayer, id, state.X, state.Y, dx, dy, playerRadius, id)
	}
}

// playerIDs snapshots the current player ids so mutation never happens while
// ranging over the table.
func (w *World) playerIDs() []string {
	ids := make([]string, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	return ids
}

// PlayerCount reports how many players are in the table, dead or alive.
func (w *World) PlayerCount() int {
	if w == nil {
		return 0
	}
	return len(w.players)
}

// RecordHeartbeat stamps liveness for a connection.
func (w *World) RecordHeartbeat(id string, rtt time.Duration, now time.Time) bool {
	if w == nil {
		return false
	}
	state, ok := w.players[id]
	if !ok {
		return false
	}
	state.LastHeartbeat = now
	state.LastRTT = rtt
	return true
}

// PruneStalePlayers removes players whose heartbeat is older than the
// timeout and returns the removed ids.
func (w *World) PruneStalePlayers(now time.Time, timeout time.Duration) []string {
	if w == nil || timeout <= 0 {
		return nil
	}
	var removed []string
	for _, id := range w.playerIDs() {
		state := w.players[id]
		if state == nil {
			continue
		}
		if now.Sub(state.LastHeartbeat) > timeout {
			delete(w.players, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// DamagePlayer applies damage from an animal attack, with an optional status
// effect rider. Dead players stay in the table flagged dead; removal is the
// host's concern.
func (w *World) DamagePlayer(id string, amount float64, status StatusEffectType, source *AnimalState, now time.Time) error {
	if w == nil {
		return sim.NotFound(id)
	}
	target, ok := w.players[id]
	if !ok {
		return sim.NotFound(id)
	}
	if target.Dead {
		return sim.InvalidState(id, "already dead")
	}
	if amount > 0 {
		target.Health -= amount
		if target.Health <= 0 {
			target.Health = 0
			target.Dead = true
		}
	}
	if status != "" && !target.Dead {
		w.applyStatusEffect(target, status, source, now)
	}
	return nil
}

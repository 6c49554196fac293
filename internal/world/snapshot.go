package world

import "sort"

// WildAnimal is the wire-visible slice of an animal row. Burrowed animals
// are included with their state tag so clients can hide the sprite.
type WildAnimal struct {
	ID        uint64  `json:"id"`
	Species   string  `json:"species"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	State     string  `json:"state"`
	DirX      float64 `json:"dirX"`
	DirY      float64 `json:"dirY"`
}

// WireProjectile is the wire-visible slice of a projectile row.
type WireProjectile struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// WirePlayer extends the player wire fields with active conditions.
type WirePlayer struct {
	Player
	StatusEffects []string `json:"statusEffects,omitempty"`
}

// Snapshot is one complete broadcast frame.
type Snapshot struct {
	Tick        uint64           `json:"tick"`
	Players     []WirePlayer     `json:"players"`
	Animals     []WildAnimal     `json:"animals"`
	Structures  []Structure      `json:"structures"`
	Corpses     []Corpse         `json:"corpses"`
	Projectiles []WireProjectile `json:"projectiles,omitempty"`
}

// Snapshot assembles the current frame in stable order, copying rows out of
// the live tables so the caller can serialize without holding the world.
func (w *World) Snapshot() Snapshot {
	if w == nil {
		return Snapshot{}
	}
	snap := Snapshot{
		Tick:        w.currentTick,
		Players:     make([]WirePlayer, 0, len(w.players)),
		Animals:     make([]WildAnimal, 0, len(w.animals)),
		Structures:  make([]Structure, 0, len(w.structures)),
		Corpses:     make([]Corpse, 0, len(w.corpses)),
		Projectiles: make([]WireProjectile, 0, len(w.projectiles)),
	}
	for _, p := range w.players {
		if p == nil {
			continue
		}
		snap.Players = append(snap.Players, WirePlayer{
			Player:        p.Player,
			StatusEffects: p.ActiveStatusEffects(),
		})
	}
	sort.Slice(snap.Players, func(i, j int) bool { return snap.Players[i].ID < snap.Players[j].ID })

	for _, a := range w.animals {
		if a == nil {
			continue
		}
		snap.Animals = append(snap.Animals, WildAnimal{
			ID:        a.ID,
			Species:   string(a.Species),
			X:         a.X,
			Y:         a.Y,
			Health:    a.Health,
			MaxHealth: a.MaxHealth,
			State:     a.State.String(),
			DirX:      a.DirX,
			DirY:      a.DirY,
		})
	}
	sort.Slice(snap.Animals, func(i, j int) bool { return snap.Animals[i].ID < snap.Animals[j].ID })

	for _, s := range w.structures {
		if s == nil || s.Destroyed {
			continue
		}
		snap.Structures = append(snap.Structures, *s)
	}
	sort.Slice(snap.Structures, func(i, j int) bool { return snap.Structures[i].ID < snap.Structures[j].ID })

	for _, c := range w.corpses {
		if c == nil {
			continue
		}
		snap.Corpses = append(snap.Corpses, *c)
	}
	sort.Slice(snap.Corpses, func(i, j int) bool { return snap.Corpses[i].ID < snap.Corpses[j].ID })

	for _, p := range w.projectiles {
		if p == nil {
			continue
		}
		snap.Projectiles = append(snap.Projectiles, WireProjectile{ID: p.ID, X: p.X, Y: p.Y})
	}
	sort.Slice(snap.Projectiles, func(i, j int) bool { return snap.Projectiles[i].ID < snap.Projectiles[j].ID })

	return snap
}

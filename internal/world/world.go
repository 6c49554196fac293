package world

import (
	"math/rand"

	"wildmark/server/internal/grid"
	"wildmark/server/logging"
)

const (
	playerRadius = 14.0
	animalRadius = 12.0
	corpseRadius = 16.0

	// Cell size must stay at or above the largest collision radius so a
	// 3x3 neighborhood query covers every possible contact.
	gridCellSize = 64.0
)

// Deps bundles runtime dependencies required to construct a World instance.
type Deps struct {
	Publisher logging.Publisher
	RNG       RNGFactory
	Terrain   Terrain
	Sounds    SoundEmitter
	Species   SpeciesSource
}

// World owns every simulation table plus the per-tick spatial index. All
// mutating entry points are serialized by the caller; the world itself holds
// no locks.
type World struct {
	config Config
	seed   string

	publisher  logging.Publisher
	rngFactory RNGFactory
	rng        *rand.Rand
	terrain    Terrain
	sounds     SoundEmitter

	currentTick uint64

	players     map[string]*PlayerState
	animals     map[uint64]*AnimalState
	structures  map[string]*Structure
	corpses     map[string]*Corpse
	projectiles map[string]*Projectile

	grid             *grid.Grid
	behaviors        map[Species]Behavior
	statusEffectDefs map[StatusEffectType]*StatusEffectDefinition

	nextAnimalID    uint64
	nextStructureID uint64
}

// New constructs a world with normalized configuration, seeded RNG, resolved
// species behaviors, and generated structures and wildlife.
func New(cfg Config, deps Deps) (*World, error) {
	normalized := cfg.normalized()

	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	factory := deps.RNG
	if factory == nil {
		factory = NewDeterministicRNG
	}
	terrain := deps.Terrain
	if terrain == nil {
		terrain = NoWater()
	}
	sounds := deps.Sounds
	if sounds == nil {
		sounds = NopSoundEmitter()
	}

	w := &World{
		config:           normalized,
		seed:             normalized.Seed,
		publisher:        publisher,
		rngFactory:       factory,
		terrain:          terrain,
		sounds:           sounds,
		players:          make(map[string]*PlayerState),
		animals:          make(map[uint64]*AnimalState),
		structures:       make(map[string]*Structure),
		corpses:          make(map[string]*Corpse),
		projectiles:      make(map[string]*Projectile),
		grid:             grid.New(gridCellSize),
		statusEffectDefs: newStatusEffectDefinitions(),
	}
	w.rng = w.subsystemRNG("world")

	behaviors, err := buildBehaviors(deps.Species)
	if err != nil {
		return nil, err
	}
	w.behaviors = behaviors

	w.generateStructures()
	w.spawnInitialWildlife()
	return w, nil
}

// Config returns the normalized configuration captured at construction time.
func (w *World) Config() Config {
	if w == nil {
		return Config{}
	}
	return w.config
}

// Seed reports the deterministic seed applied to the world RNG hierarchy.
func (w *World) Seed() string {
	if w == nil {
		return ""
	}
	return w.seed
}

// CurrentTick reports the tick set by the most recent BeginTick.
func (w *World) CurrentTick() uint64 {
	if w == nil {
		return 0
	}
	return w.currentTick
}

// BeginTick advances the tick counter and rebuilds the spatial index from the
// current table snapshot. Every query for the rest of the tick sees this
// consistent view, even as rows are updated.
func (w *World) BeginTick(tick uint64) {
	if w == nil {
		return
	}
	w.currentTick = tick
	w.RebuildSpatialIndex()
}

func (w *World) entityRef(kind logging.EntityKind, id string) logging.EntityRef {
	return logging.EntityRef{ID: id, Kind: kind}
}

func (w *World) animalRef(a *AnimalState) logging.EntityRef {
	return w.entityRef(logging.EntityKindAnimal, a.handle())
}

func (w *World) playerRef(id string) logging.EntityRef {
	return w.entityRef(logging.EntityKindPlayer, id)
}

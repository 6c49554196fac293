package world

import (
	"context"
	"sync"
	"testing"
	"time"

	"wildmark/server/logging"
)

// recordingPublisher captures events synchronously for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []logging.Event
}

func (r *recordingPublisher) Publish(_ context.Context, event logging.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingPublisher) byType(eventType logging.EventType) []logging.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []logging.Event
	for _, e := range r.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// newTestWorld builds an empty deterministic world: no structures, no
// wildlife, no water. Tests place exactly what they need.
func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := New(Config{Seed: "test"}, Deps{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func newTestWorldWithPublisher(t *testing.T, pub logging.Publisher) *World {
	t.Helper()
	w, err := New(Config{Seed: "test"}, Deps{Publisher: pub})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

// placeAnimal spawns an animal at an exact position and reindexes.
func placeAnimal(t *testing.T, w *World, species Species, x, y float64) *AnimalState {
	t.Helper()
	a, err := w.SpawnAnimal(species, x, y)
	if err != nil {
		t.Fatalf("SpawnAnimal(%s): %v", species, err)
	}
	a.X, a.Y = x, y
	w.RebuildSpatialIndex()
	return a
}

// placePlayer adds a player at an exact position and reindexes.
func placePlayer(t *testing.T, w *World, id string, x, y float64) *PlayerState {
	t.Helper()
	p := w.AddPlayer(id, x, y, time.Unix(0, 0))
	if p == nil {
		t.Fatalf("AddPlayer(%s) returned nil", id)
	}
	p.X, p.Y = x, y
	w.RebuildSpatialIndex()
	return p
}

const tickStep = time.Second / 15

// tick runs one full state-machine step at a fixed timestep.
func tick(w *World, now time.Time) {
	w.BeginTick(w.CurrentTick() + 1)
	_ = w.AdvanceWildlife(now, 1.0/15)
}

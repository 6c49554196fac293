package world

import (
	"fmt"

	"wildmark/server/internal/geom"
	"wildmark/server/internal/grid"
)

// StructureKind tags the static world geometry tables.
type StructureKind string

const (
	StructureTree          StructureKind = "tree"
	StructureStone         StructureKind = "stone"
	StructureStorageBox    StructureKind = "storage-box"
	StructureShelter       StructureKind = "shelter"
	StructureRainCollector StructureKind = "rain-collector"
)

// Structure is one placed world object. X/Y is the foot position (where the
// sprite anchors to the ground); the collision box is derived from it via the
// per-kind footprint.
type Structure struct {
	ID        string        `json:"id"`
	Kind      StructureKind `json:"kind"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	OwnerID   string        `json:"ownerId,omitempty"`
	Destroyed bool          `json:"destroyed,omitempty"`
}

// footprint describes a kind's collision box relative to its foot position.
// CenterOffsetY lifts the box center above the foot to approximate the
// sprite-anchor vs visual-footprint split. These values must match the
// renderer's constants.
type footprint struct {
	Width         float64
	Height        float64
	CenterOffsetY float64
}

var structureFootprints = map[StructureKind]footprint{
	StructureTree:          {Width: 44, Height: 36, CenterOffsetY: 14},
	StructureStone:         {Width: 40, Height: 30, CenterOffsetY: 10},
	StructureStorageBox:    {Width: 36, Height: 28, CenterOffsetY: 8},
	StructureShelter:       {Width: 120, Height: 90, CenterOffsetY: 24},
	StructureRainCollector: {Width: 30, Height: 24, CenterOffsetY: 6},
}

// CollisionRect returns the structure's axis-aligned collision box.
func (s *Structure) CollisionRect() geom.Rect {
	fp := structureFootprints[s.Kind]
	centerY := s.Y - fp.CenterOffsetY
	return geom.Rect{
		X:      s.X - fp.Width/2,
		Y:      centerY - fp.Height/2,
		Width:  fp.Width,
		Height: fp.Height,
	}
}

// AddStructure inserts a structure row and returns it.
func (w *World) AddStructure(kind StructureKind, x, y float64, ownerID string) *Structure {
	if w == nil {
		return nil
	}
	w.nextStructureID++
	s := &Structure{
		ID:      fmt.Sprintf("%s-%d", kind, w.nextStructureID),
		Kind:    kind,
		X:       x,
		Y:       y,
		OwnerID: ownerID,
	}
	w.structures[s.ID] = s
	return s
}

// Structure returns the live row for id, or nil.
func (w *World) Structure(id string) *Structure {
	if w == nil {
		return nil
	}
	return w.structures[id]
}

// insideShelterFootprint reports whether a point lies inside any intact
// shelter's collision box. Used to reject illegal wildlife move targets.
func (w *World) insideShelterFootprint(x, y float64) bool {
	for _, s := range w.structures {
		if s.Kind != StructureShelter || s.Destroyed {
			continue
		}
		r := s.CollisionRect()
		if x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height {
			return true
		}
	}
	return false
}

// generateStructures scatters the configured static geometry around the map,
// avoiding overlaps and water.
func (w *World) generateStructures() {
	counts := []struct {
		kind  StructureKind
		count int
	}{
		{StructureTree, w.config.TreeCount},
		{StructureStone, w.config.StoneCount},
		{StructureStorageBox, w.config.StorageBoxCount},
		{StructureRainCollector, w.config.RainCollectorCount},
	}
	rng := w.subsystemRNG("structures")
	for _, entry := range counts {
		if entry.count <= 0 {
			continue
		}
		fp := structureFootprints[entry.kind]
		margin := fp.Width/2 + 10
		attempts := 0
		placed := 0
		maxAttempts := entry.count * 20
		for placed < entry.count && attempts < maxAttempts {
			attempts++
			x := margin + rng.Float64()*(w.config.Width-2*margin)
			y := margin + rng.Float64()*(w.config.Height-2*margin)
			if w.terrain.IsWater(x, y) {
				continue
			}
			candidate := Structure{Kind: entry.kind, X: x, Y: y}
			if w.overlapsExistingStructure(candidate.CollisionRect()) {
				continue
			}
			w.AddStructure(entry.kind, x, y, "")
			placed++
		}
	}
}

func (w *World) overlapsExistingStructure(r geom.Rect) bool {
	for _, s := range w.structures {
		if geom.RectsOverlap(r, s.CollisionRect(), playerRadius) {
			return true
		}
	}
	return false
}

func structureGridKind(kind StructureKind) grid.Kind {
	switch kind {
	case StructureTree:
		return grid.KindTree
	case StructureStone:
		return grid.KindStone
	case StructureStorageBox:
		return grid.KindStorageBox
	case StructureShelter:
		return grid.KindShelter
	case StructureRainCollector:
		return grid.KindRainCollector
	default:
		return grid.Kind(kind)
	}
}

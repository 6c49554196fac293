package world

import "math"

// nearestVisiblePlayer scans the player table for the closest living player
// inside the animal's perception cone. Returns nil when nothing is visible.
//
// The cone opens around the animal's facing direction; a perception angle of
// 360 or more, or a zero facing vector, degenerates to omnidirectional
// sensing.
func (w *World) nearestVisiblePlayer(a *AnimalState, stats AnimalStats) (*PlayerState, float64) {
	if w == nil || a == nil {
		return nil, 0
	}
	var (
		best     *PlayerState
		bestDist = math.MaxFloat64
	)
	rangeSq := stats.PerceptionRange * stats.PerceptionRange
	omni := stats.PerceptionAngle >= 360 || (a.DirX == 0 && a.DirY == 0)
	halfAngle := stats.PerceptionAngle * math.Pi / 360 // half the cone, in radians

	for _, p := range w.players {
		if p == nil || p.Dead {
			continue
		}
		dx := p.X - a.X
		dy := p.Y - a.Y
		distSq := dx*dx + dy*dy
		if distSq > rangeSq || distSq >= bestDist*bestDist {
			continue
		}
		if !omni && distSq > 0 {
			dist := math.Sqrt(distSq)
			facingLen := math.Hypot(a.DirX, a.DirY)
			cos := (dx*a.DirX + dy*a.DirY) / (dist * facingLen)
			cos = math.Max(-1, math.Min(1, cos))
			if math.Acos(cos) > halfAngle {
				continue
			}
		}
		best = p
		bestDist = math.Sqrt(distSq)
	}
	if best == nil {
		return nil, 0
	}
	return best, bestDist
}

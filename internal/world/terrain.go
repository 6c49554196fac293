package world

// Terrain answers tile predicates owned by the world-generation collaborator.
// The simulation core only ever asks boolean questions of it.
type Terrain interface {
	IsWater(x, y float64) bool
}

// TerrainFunc adapts a plain function to the Terrain interface.
type TerrainFunc func(x, y float64) bool

func (f TerrainFunc) IsWater(x, y float64) bool {
	if f == nil {
		return false
	}
	return f(x, y)
}

// NoWater returns a terrain with no water anywhere, for tests and default
// wiring.
func NoWater() Terrain {
	return TerrainFunc(nil)
}

// blockedForWildlife reports whether a point is an illegal wildlife move
// target: open water or inside a shelter footprint.
func (w *World) blockedForWildlife(x, y float64) bool {
	if w == nil {
		return false
	}
	if w.terrain != nil && w.terrain.IsWater(x, y) {
		return true
	}
	return w.insideShelterFootprint(x, y)
}

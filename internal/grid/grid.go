package grid

import (
	"math"

	"wildmark/server/internal/geom"
)

// Kind tags the table a collider handle came from.
type Kind string

const (
	KindPlayer        Kind = "player"
	KindAnimal        Kind = "animal"
	KindTree          Kind = "tree"
	KindStone         Kind = "stone"
	KindStorageBox    Kind = "storage-box"
	KindShelter       Kind = "shelter"
	KindCorpse        Kind = "corpse"
	KindRainCollector Kind = "rain-collector"
)

// Shape selects which geometry field of a Collider is meaningful.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeRect
)

// Collider is the grid's view of one collidable entity: enough geometry to
// resolve collisions without another table lookup.
type Collider struct {
	Kind    Kind
	ID      string
	OwnerID string
	Shape   Shape
	Circle  geom.Circle
	Rect    geom.Rect
}

// Center returns the bucketing position for the collider.
func (c Collider) Center() (float64, float64) {
	if c.Shape == ShapeRect {
		return c.Rect.X + c.Rect.Width/2, c.Rect.Y + c.Rect.Height/2
	}
	return c.Circle.X, c.Circle.Y
}

type cellKey struct {
	X int
	Y int
}

// Grid is a uniform bucket index rebuilt once per tick. Cell size must be at
// least the largest collision radius in play so the 3x3 neighborhood around a
// query point covers every possible contact.
type Grid struct {
	cellSize    float64
	invCellSize float64
	cells       map[cellKey][]Collider
}

// New creates an empty grid with the given cell size.
func New(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cells:       make(map[cellKey][]Collider),
	}
}

// CellSize reports the configured cell edge length.
func (g *Grid) CellSize() float64 {
	if g == nil {
		return 0
	}
	return g.cellSize
}

// Populate rebuilds the buckets from the supplied colliders. Any previous
// contents are discarded; the grid never carries state across ticks.
func (g *Grid) Populate(colliders []Collider) {
	if g == nil {
		return
	}
	g.cells = make(map[cellKey][]Collider, len(colliders))
	for _, c := range colliders {
		for _, key := range g.cellsFor(c) {
			g.cells[key] = append(g.cells[key], c)
		}
	}
}

// cellsFor returns every cell a collider's bounding box touches. Rect
// colliders can span several cells; circles are inserted by bounding box too
// so large discs stay queryable.
func (g *Grid) cellsFor(c Collider) []cellKey {
	var minX, minY, maxX, maxY float64
	if c.Shape == ShapeRect {
		minX, minY = c.Rect.X, c.Rect.Y
		maxX, maxY = c.Rect.X+c.Rect.Width, c.Rect.Y+c.Rect.Height
	} else {
		minX, minY = c.Circle.X-c.Circle.Radius, c.Circle.Y-c.Circle.Radius
		maxX, maxY = c.Circle.X+c.Circle.Radius, c.Circle.Y+c.Circle.Radius
	}
	minCol := g.coordToCell(minX)
	minRow := g.coordToCell(minY)
	maxCol := g.coordToCell(maxX)
	maxRow := g.coordToCell(maxY)
	keys := make([]cellKey, 0, (maxCol-minCol+1)*(maxRow-minRow+1))
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			keys = append(keys, cellKey{X: col, Y: row})
		}
	}
	return keys
}

func (g *Grid) coordToCell(value float64) int {
	return int(math.Floor(value * g.invCellSize))
}

// Query returns the colliders bucketed in the cell containing (x, y) and its
// 8 neighbors. Duplicates from multi-cell colliders are collapsed. An empty
// result is a valid answer.
func (g *Grid) Query(x, y float64) []Collider {
	if g == nil {
		return nil
	}
	col := g.coordToCell(x)
	row := g.coordToCell(y)
	seen := make(map[string]struct{})
	var out []Collider
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			bucket := g.cells[cellKey{X: col + dx, Y: row + dy}]
			for _, c := range bucket {
				key := string(c.Kind) + "/" + c.ID
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, c)
			}
		}
	}
	return out
}

// QueryRadius returns colliders from every cell overlapping the disc around
// (x, y), for callers whose reach exceeds one cell.
func (g *Grid) QueryRadius(x, y, radius float64) []Collider {
	if g == nil {
		return nil
	}
	if radius <= g.cellSize {
		return g.Query(x, y)
	}
	minCol := g.coordToCell(x - radius)
	maxCol := g.coordToCell(x + radius)
	minRow := g.coordToCell(y - radius)
	maxRow := g.coordToCell(y + radius)
	seen := make(map[string]struct{})
	var out []Collider
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, c := range g.cells[cellKey{X: col, Y: row}] {
				key := string(c.Kind) + "/" + c.ID
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, c)
			}
		}
	}
	return out
}

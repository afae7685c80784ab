package systems

import (
	"math"
	"slices"

	"github.com/pthm-cable/aisim/components"
)

// SpatialGrid buckets unit indices into square cells. Queries return indices
// in ascending order, so callers see the same candidates in the same order as
// a linear scan over the unit slice.
type SpatialGrid struct {
	origin   components.Vec2
	cellSize float64
	cols     int
	rows     int
	cells    [][]int
}

// NewSpatialGrid creates a grid covering bounds. Positions outside the bounds
// are clamped into the edge cells.
func NewSpatialGrid(bounds components.Bounds, cellSize float64) *SpatialGrid {
	cols := int((bounds.Max.X-bounds.Min.X)/cellSize) + 1
	rows := int((bounds.Max.Y-bounds.Min.Y)/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 4)
	}

	return &SpatialGrid{
		origin:   bounds.Min,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all indices from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Rebuild clears the grid and inserts every unit by its slice index.
func (g *SpatialGrid) Rebuild(units []*components.Unit) {
	g.Clear()
	for i, u := range units {
		g.Insert(i, u.Position)
	}
}

// Insert adds index i at position p.
func (g *SpatialGrid) Insert(i int, p components.Vec2) {
	col, row := g.cell(p.X, p.Y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], i)
}

// QueryInto appends to dst the indices of every cell overlapping the square
// of half-width radius around p, sorted ascending. Candidates still need an
// exact distance check.
func (g *SpatialGrid) QueryInto(dst []int, p components.Vec2, radius float64) []int {
	start := len(dst)
	minCol, minRow := g.cell(p.X-radius, p.Y-radius)
	maxCol, maxRow := g.cell(p.X+radius, p.Y+radius)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	slices.Sort(dst[start:])
	return dst
}

// cell returns the clamped column and row for a position.
func (g *SpatialGrid) cell(x, y float64) (int, int) {
	x -= g.origin.X
	y -= g.origin.Y
	col, row := 0, 0
	if x > 0 {
		col = int(math.Min(x/g.cellSize, float64(g.cols)))
	}
	if y > 0 {
		row = int(math.Min(y/g.cellSize, float64(g.rows)))
	}
	return clampInt(col, 0, g.cols-1), clampInt(row, 0, g.rows-1)
}

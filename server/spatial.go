package main

const (
	SpatialCellSize = 64.0 // about twice a small enemy sprite
)

// EntityRef identifies an entity in the grid
type EntityRef struct {
	Kind byte // 'e'=enemy, 'f'=friendly projectile, 'h'=hostile projectile, 'k'=pickup
	Idx  int  // index into the corresponding population snapshot
}

// SpatialGrid is a uniform grid over the play area for broad-phase queries.
// Entities outside the area are clamped into the border cells.
type SpatialGrid struct {
	cols, rows int
	cells      [][]EntityRef
}

// NewSpatialGrid sizes a grid to cover a width x height play area
func NewSpatialGrid(width, height float64) *SpatialGrid {
	cols := int(width/SpatialCellSize) + 1
	rows := int(height/SpatialCellSize) + 1
	return &SpatialGrid{
		cols:  cols,
		rows:  rows,
		cells: make([][]EntityRef, cols*rows),
	}
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) span(r Rect) (minCX, maxCX, minCY, maxCY int) {
	minCX = g.clampCol(int(floorDiv(r.Left(), SpatialCellSize)))
	maxCX = g.clampCol(int(floorDiv(r.Right(), SpatialCellSize)))
	minCY = g.clampRow(int(floorDiv(r.Top(), SpatialCellSize)))
	maxCY = g.clampRow(int(floorDiv(r.Bottom(), SpatialCellSize)))
	return
}

func (g *SpatialGrid) clampCol(cx int) int {
	if cx < 0 {
		return 0
	}
	if cx >= g.cols {
		return g.cols - 1
	}
	return cx
}

func (g *SpatialGrid) clampRow(cy int) int {
	if cy < 0 {
		return 0
	}
	if cy >= g.rows {
		return g.rows - 1
	}
	return cy
}

// Insert adds an entity reference to all cells overlapping its rectangle
func (g *SpatialGrid) Insert(r Rect, ref EntityRef) {
	minCX, maxCX, minCY, maxCY := g.span(r)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			idx := cy*g.cols + cx
			g.cells[idx] = append(g.cells[idx], ref)
		}
	}
}

// QueryBuf appends the refs of every cell overlapping r to buf. A ref that
// spans several cells appears once per cell; callers dedupe.
func (g *SpatialGrid) QueryBuf(r Rect, buf []EntityRef) []EntityRef {
	minCX, maxCX, minCY, maxCY := g.span(r)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			buf = append(buf, g.cells[cy*g.cols+cx]...)
		}
	}
	return buf
}

// Query returns all entity refs in cells that overlap r
func (g *SpatialGrid) Query(r Rect) []EntityRef {
	return g.QueryBuf(r, nil)
}

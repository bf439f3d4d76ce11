package main

import "sort"

// Cell is a (row, col) grid coordinate
type Cell struct {
	Row, Col int
}

// Formation is a 4-connected cluster of identical symbols
type Formation struct {
	Symbol         rune
	Cells          []Cell
	MinRow, MaxRow int
	MinCol, MaxCol int
	Area           int // number of cells, never more than the bounding box
}

// WidthCells is the bounding-box width in grid columns
func (f *Formation) WidthCells() int {
	return f.MaxCol - f.MinCol + 1
}

// HeightCells is the bounding-box height in grid rows
func (f *Formation) HeightCells() int {
	return f.MaxRow - f.MinRow + 1
}

var neighbours = [4]Cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// ExtractFormations finds every connected region of same-symbol, non-blank
// cells. Results are ordered by MinRow; formations starting on the same row
// keep row-major discovery order.
func ExtractFormations(g *Grid, symbols SymbolConfig) []*Formation {
	if g == nil || g.Height() == 0 || g.Width == 0 {
		return nil
	}
	visited := make([][]bool, g.Height())
	for r := range visited {
		visited[r] = make([]bool, g.Width)
	}

	var out []*Formation
	var stack []Cell
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width; c++ {
			ch := g.At(r, c)
			if visited[r][c] || symbols.IsBlank(ch) {
				continue
			}
			f := &Formation{Symbol: ch, MinRow: r, MaxRow: r, MinCol: c, MaxCol: c}
			visited[r][c] = true
			stack = append(stack[:0], Cell{r, c})
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				f.add(cur)
				for _, d := range neighbours {
					nr, nc := cur.Row+d.Row, cur.Col+d.Col
					if !g.InBounds(nr, nc) || visited[nr][nc] || g.At(nr, nc) != ch {
						continue
					}
					visited[nr][nc] = true
					stack = append(stack, Cell{nr, nc})
				}
			}
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MinRow < out[j].MinRow })
	return out
}

func (f *Formation) add(c Cell) {
	f.Cells = append(f.Cells, c)
	f.Area++
	if c.Row < f.MinRow {
		f.MinRow = c.Row
	}
	if c.Row > f.MaxRow {
		f.MaxRow = c.Row
	}
	if c.Col < f.MinCol {
		f.MinCol = c.Col
	}
	if c.Col > f.MaxCol {
		f.MaxCol = c.Col
	}
}

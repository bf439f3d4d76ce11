package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Grid is a rectangular level layout, one string per row. Every row holds
// exactly Width runes; short rows are right-padded with the blank symbol.
type Grid struct {
	Rows  [][]rune
	Width int
}

// ParseGrid reads one row per line and normalizes the row widths
func ParseGrid(r io.Reader, pad rune) (*Grid, error) {
	var lines [][]rune
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		lines = append(lines, []rune(strings.TrimRight(sc.Text(), "\r")))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grid: scan: %w", err)
	}
	return NewGrid(lines, pad), nil
}

// NewGrid builds a grid from raw rows, padding each row to the widest one
func NewGrid(lines [][]rune, pad rune) *Grid {
	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	rows := make([][]rune, len(lines))
	for i, l := range lines {
		row := make([]rune, width)
		copy(row, l)
		for c := len(l); c < width; c++ {
			row[c] = pad
		}
		rows[i] = row
	}
	return &Grid{Rows: rows, Width: width}
}

// GridFromStrings is a convenience for tests and embedded levels
func GridFromStrings(pad rune, rows ...string) *Grid {
	lines := make([][]rune, len(rows))
	for i, r := range rows {
		lines[i] = []rune(r)
	}
	return NewGrid(lines, pad)
}

// LoadGrid opens and parses a level file
func LoadGrid(path string, pad rune) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("grid: open %s: %w", path, err)
	}
	defer f.Close()
	g, err := ParseGrid(f, pad)
	if err != nil {
		return nil, fmt.Errorf("grid: %s: %w", path, err)
	}
	return g, nil
}

// Height is the number of rows
func (g *Grid) Height() int {
	return len(g.Rows)
}

// At returns the symbol at (row, col)
func (g *Grid) At(row, col int) rune {
	return g.Rows[row][col]
}

// InBounds reports whether (row, col) lies inside the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < len(g.Rows) && col >= 0 && col < g.Width
}

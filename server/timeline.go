package main

import (
	"math"
	"time"
)

// SpawnEvent is the one-time release of a formation into the world
type SpawnEvent struct {
	TriggerRow  int
	X, Y        float64 // spawn centre, above the top edge
	WidthCells  int
	HeightCells int
	Area        int
	Symbol      rune
	Spawned     bool
}

// Timeline releases formations row by row at a fixed cadence.
//
// States: filling until the row clock has passed every grid row, then
// exhausted. SafeZoneReady is derived from the exhaustion time on every call.
type Timeline struct {
	cfg       SpawnConfig
	events    []*SpawnEvent
	rows      int
	cellWidth float64

	elapsed     time.Duration
	rowIndex    int
	done        bool
	exhaustedAt time.Duration
}

// NewTimeline builds one spawn event per formation of the grid
func NewTimeline(g *Grid, cfg Config) *Timeline {
	t := &Timeline{cfg: cfg.Spawn}
	cols := 0
	if g != nil {
		t.rows = g.Height()
		cols = g.Width
	}
	t.cellWidth = cfg.ScreenWidth / math.Max(1, float64(cols))

	for _, f := range ExtractFormations(g, cfg.Symbols) {
		centerCol := float64(f.MinCol+f.MaxCol+1) / 2
		h := f.HeightCells()
		t.events = append(t.events, &SpawnEvent{
			TriggerRow:  f.MinRow,
			X:           math.Floor(centerCol * t.cellWidth),
			Y:           -math.Floor(float64(h)*cfg.Spawn.CellHeight) - cfg.Spawn.SpawnMargin,
			WidthCells:  f.WidthCells(),
			HeightCells: h,
			Area:        f.Area,
			Symbol:      f.Symbol,
		})
	}

	if t.rows == 0 {
		t.done = true
	}
	return t
}

// Update advances the row clock by dt and returns the events released by the
// rows that completed, in top-to-bottom order. A large dt may complete
// several rows at once; none are skipped.
func (t *Timeline) Update(dt time.Duration) []*SpawnEvent {
	t.elapsed += dt
	var ready []*SpawnEvent
	for !t.done && t.elapsed >= t.cfg.RowDuration*time.Duration(t.rowIndex+1) {
		t.rowIndex++
		completed := t.rowIndex - 1
		for _, ev := range t.events {
			if !ev.Spawned && ev.TriggerRow == completed {
				ev.Spawned = true
				ready = append(ready, ev)
			}
		}
		if t.rowIndex >= t.rows {
			t.done = true
			t.exhaustedAt = t.elapsed
		}
	}
	return ready
}

// DoneSpawning reports whether every row has been consumed
func (t *Timeline) DoneSpawning() bool {
	return t.done
}

// SafeZoneReady reports whether the tail delay after exhaustion has elapsed
func (t *Timeline) SafeZoneReady() bool {
	return t.done && t.elapsed-t.exhaustedAt >= t.cfg.SafeZoneTail
}

// RowIndex is the number of rows the clock has completed
func (t *Timeline) RowIndex() int {
	return t.rowIndex
}

// Rows is the number of grid rows driving the clock
func (t *Timeline) Rows() int {
	return t.rows
}

// Events exposes the spawn events for inspection
func (t *Timeline) Events() []*SpawnEvent {
	return t.events
}

// CellWidth is the horizontal pixel size of one grid column
func (t *Timeline) CellWidth() float64 {
	return t.cellWidth
}

// Pending counts events not yet released
func (t *Timeline) Pending() int {
	n := 0
	for _, ev := range t.events {
		if !ev.Spawned {
			n++
		}
	}
	return n
}

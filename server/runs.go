package main

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

const maxRuns = 100

// ErrTooManyRuns is returned when the server already hosts maxRuns runs
var ErrTooManyRuns = errors.New("too many active runs")

// Run is one independent single-player game hosted by the server
type Run struct {
	ID        string
	Game      *Game
	StartedAt time.Time
}

// RunInfo is used in the active run list
type RunInfo struct {
	ID      string  `json:"id"`
	Level   int     `json:"level"`
	Outcome string  `json:"outcome"`
	Age     float64 `json:"age"` // wall seconds since start
}

// RunManager handles creation and lookup of runs
type RunManager struct {
	mu        sync.RWMutex
	runs      map[string]*Run
	cfg       Config
	levels    *LevelLibrary
	recorder  RunRecorder
	analytics *Analytics
	newRand   func() *rand.Rand

	defaultStart int // level index used when a start request names none
}

// NewRunManager creates a RunManager. db and analytics may be nil.
func NewRunManager(cfg Config, levels *LevelLibrary, db *DB, analytics *Analytics) *RunManager {
	rm := &RunManager{
		runs:      make(map[string]*Run),
		cfg:       cfg,
		levels:    levels,
		analytics: analytics,
		newRand:   NewRand,
	}
	if db != nil {
		rm.recorder = db
	}
	return rm
}

// SetConfig replaces the tuning used by runs started from now on
func (rm *RunManager) SetConfig(cfg Config) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.cfg = cfg
}

// Config returns the tuning for new runs
func (rm *RunManager) Config() Config {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.cfg
}

// DefaultStart is the level index for start requests without one
func (rm *RunManager) DefaultStart() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.defaultStart
}

// SetDefaultStart changes the level index used by default
func (rm *RunManager) SetDefaultStart(start int) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.defaultStart = start
}

// StartRun creates a run at level index start and starts its loop
func (rm *RunManager) StartRun(start int) (*Run, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if len(rm.runs) >= maxRuns {
		return nil, ErrTooManyRuns
	}
	session, err := NewLevelSession(rm.levels.Levels(), start, rm.cfg, rm.newRand())
	if err != nil {
		return nil, err
	}
	id := GenerateUUID()
	run := &Run{
		ID:        id,
		Game:      NewGame(id, session, rm.cfg, rm.recorder, rm.analytics),
		StartedAt: time.Now(),
	}
	rm.runs[id] = run
	rm.analytics.SetActiveRuns(len(rm.runs))

	go func() {
		run.Game.Run()
		rm.remove(id)
	}()
	return run, nil
}

// GetRun returns a run by ID
func (rm *RunManager) GetRun(id string) *Run {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.runs[id]
}

// EndRun stops a run and forgets it
func (rm *RunManager) EndRun(id string) {
	rm.mu.RLock()
	run, ok := rm.runs[id]
	rm.mu.RUnlock()
	if !ok {
		return
	}
	run.Game.Stop()
	rm.remove(id)
}

func (rm *RunManager) remove(id string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	delete(rm.runs, id)
	rm.analytics.SetActiveRuns(len(rm.runs))
}

// Count returns the number of active runs
func (rm *RunManager) Count() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.runs)
}

// ListRuns returns info about all active runs
func (rm *RunManager) ListRuns() []RunInfo {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	list := make([]RunInfo, 0, len(rm.runs))
	for _, run := range rm.runs {
		snap := run.Game.Snapshot()
		list = append(list, RunInfo{
			ID:      run.ID,
			Level:   snap.Level,
			Outcome: snap.Outcome,
			Age:     round1(time.Since(run.StartedAt).Seconds()),
		})
	}
	return list
}

// StopAll stops every run, used on shutdown
func (rm *RunManager) StopAll() {
	rm.mu.RLock()
	runs := make([]*Run, 0, len(rm.runs))
	for _, r := range rm.runs {
		runs = append(runs, r)
	}
	rm.mu.RUnlock()
	for _, r := range runs {
		r.Game.Stop()
	}
}

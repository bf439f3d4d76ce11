package main

import (
	"fmt"
	"math/rand"
	"time"
)

// Outcome is the terminal state of a level session
type Outcome int

const (
	OutcomeNone Outcome = 0 // still playing
	OutcomeWon  Outcome = 1 // safe zone reached on the last level
	OutcomeLost Outcome = 2 // lives fell below the floor
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "playing"
	}
}

// LevelSession plays a queue of levels in order on one World. It advances
// on the safe zone and stops for good on a win or a loss.
type LevelSession struct {
	World   *World
	levels  []Level
	index   int
	outcome Outcome
	cleared int
	kills   int
	hits    int
}

// NewLevelSession starts at levels[start]
func NewLevelSession(levels []Level, start int, cfg Config, rng *rand.Rand) (*LevelSession, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	if start < 0 || start >= len(levels) {
		return nil, fmt.Errorf("session: start level %d out of range [0, %d)", start, len(levels))
	}
	s := &LevelSession{
		World:  NewWorld(cfg, rng),
		levels: levels,
		index:  start,
	}
	s.World.LoadLevel(levels[start].Grid)
	return s, nil
}

// Step advances one frame. It is a no-op once the session has ended.
func (s *LevelSession) Step(dt time.Duration, in ClientInput) FrameReport {
	if s.outcome != OutcomeNone {
		return FrameReport{}
	}
	rep := s.World.Step(dt, in)
	s.kills += rep.Kills
	if rep.PlayerHit {
		s.hits++
	}
	switch {
	case rep.Lost:
		s.outcome = OutcomeLost
	case rep.ReachedEnd:
		s.advance()
	}
	return rep
}

func (s *LevelSession) advance() {
	s.cleared++
	if s.index+1 >= len(s.levels) {
		s.outcome = OutcomeWon
		return
	}
	s.index++
	s.World.LoadLevel(s.levels[s.index].Grid)
	s.World.Player.Reset()
}

// Outcome is OutcomeNone until the session ends
func (s *LevelSession) Outcome() Outcome {
	return s.outcome
}

// Done reports whether the session has reached a terminal state
func (s *LevelSession) Done() bool {
	return s.outcome != OutcomeNone
}

// Level returns the level being played
func (s *LevelSession) Level() Level {
	return s.levels[s.index]
}

// LevelIndex is the position of the current level in the queue
func (s *LevelSession) LevelIndex() int {
	return s.index
}

// LevelCount is the length of the queue
func (s *LevelSession) LevelCount() int {
	return len(s.levels)
}

// Cleared counts levels whose safe zone was reached
func (s *LevelSession) Cleared() int {
	return s.cleared
}

// Kills counts enemies destroyed across all levels
func (s *LevelSession) Kills() int {
	return s.kills
}

// Hits counts damage the player took across all levels
func (s *LevelSession) Hits() int {
	return s.hits
}

package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"sync"
)

//go:embed levels/*.txt
var builtinLevels embed.FS

// ErrNoLevels is returned when a level source holds no level files
var ErrNoLevels = errors.New("no level files found")

var levelName = regexp.MustCompile(`^level(\d+)\.txt$`)

// Level is one authored grid, numbered by its file suffix
type Level struct {
	Number int
	Name   string
	Grid   *Grid
}

// LoadLevelsFS reads every level<N>.txt at the root of fsys, ordered by N
func LoadLevelsFS(fsys fs.FS, pad rune) ([]Level, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: read dir: %w", err)
	}
	var levels []Level
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := levelName.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", e.Name(), err)
		}
		f, err := fsys.Open(e.Name())
		if err != nil {
			return nil, fmt.Errorf("levels: open %s: %w", e.Name(), err)
		}
		g, err := ParseGrid(f, pad)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", e.Name(), err)
		}
		levels = append(levels, Level{Number: n, Name: e.Name(), Grid: g})
	}
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	sort.SliceStable(levels, func(i, j int) bool { return levels[i].Number < levels[j].Number })
	return levels, nil
}

// DiscoverLevels loads the level files of dir
func DiscoverLevels(dir string, pad rune) ([]Level, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	levels, err := LoadLevelsFS(os.DirFS(dir), pad)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", dir, err)
	}
	return levels, nil
}

// BuiltinLevels loads the levels compiled into the binary
func BuiltinLevels(pad rune) ([]Level, error) {
	sub, err := fs.Sub(builtinLevels, "levels")
	if err != nil {
		return nil, fmt.Errorf("levels: builtin: %w", err)
	}
	return LoadLevelsFS(sub, pad)
}

// LevelLibrary holds the current level set. Runs take a copy when they
// start, so a reload never changes a level under a running session.
type LevelLibrary struct {
	mu     sync.RWMutex
	dir    string // empty means builtin levels
	pad    rune
	levels []Level
}

// NewLevelLibrary loads levels from dir, or the builtin set if dir is empty
func NewLevelLibrary(dir string, pad rune) (*LevelLibrary, error) {
	lib := &LevelLibrary{dir: dir, pad: pad}
	if err := lib.Reload(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Reload re-reads the level source. On error the previous set is kept.
func (l *LevelLibrary) Reload() error {
	l.mu.RLock()
	pad := l.pad
	l.mu.RUnlock()
	return l.load(pad)
}

// SetPad re-parses the levels with a new padding symbol, as needed when the
// blank symbols change. On error the previous set and padding are kept.
func (l *LevelLibrary) SetPad(pad rune) error {
	l.mu.RLock()
	same := l.pad == pad
	l.mu.RUnlock()
	if same {
		return nil
	}
	return l.load(pad)
}

func (l *LevelLibrary) load(pad rune) error {
	var levels []Level
	var err error
	if l.dir == "" {
		levels, err = BuiltinLevels(pad)
	} else {
		levels, err = DiscoverLevels(l.dir, pad)
	}
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.levels = levels
	l.pad = pad
	l.mu.Unlock()
	return nil
}

// Pad is the symbol short rows are padded with
func (l *LevelLibrary) Pad() rune {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pad
}

// Levels returns a snapshot of the current set
func (l *LevelLibrary) Levels() []Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Level, len(l.levels))
	copy(out, l.levels)
	return out
}

// Dir is the watched directory, empty for builtin levels
func (l *LevelLibrary) Dir() string {
	return l.dir
}

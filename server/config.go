package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Config holds every tuning value the simulation reads. It is built once
// (DefaultConfig, optionally overlaid with a YAML file) and handed to each
// component by value, so tests can vary it per scenario.
type Config struct {
	ScreenWidth   float64 `yaml:"screen_width"`
	ScreenHeight  float64 `yaml:"screen_height"`
	TickRate      int     `yaml:"tick_rate"`      // simulation ticks per second
	BroadcastRate int     `yaml:"broadcast_rate"` // frame states per second

	Player  PlayerConfig `yaml:"player"`
	Enemy   EnemyConfig  `yaml:"enemy"`
	Big     BigConfig    `yaml:"big"`
	Spawn   SpawnConfig  `yaml:"spawn"`
	Drops   DropConfig   `yaml:"drops"`
	Effects EffectConfig `yaml:"effects"`
	Symbols SymbolConfig `yaml:"symbols"`
}

// PlayerConfig tunes the player ship and its weapons
type PlayerConfig struct {
	Speed       float64 `yaml:"speed"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	StartX      float64 `yaml:"start_x"`
	StartY      float64 `yaml:"start_y"`
	StartLives  int     `yaml:"start_lives"`
	LifeFloor   int     `yaml:"life_floor"` // run is lost once lives drop below this
	MaxLives    int     `yaml:"max_lives"`
	StartAmmo   int     `yaml:"start_ammo"`
	AmmoPerDrop int     `yaml:"ammo_per_drop"`
	AmmoCap     int     `yaml:"ammo_cap"`

	BulletSpeed    float64       `yaml:"bullet_speed"`
	BulletWidth    float64       `yaml:"bullet_width"`
	BulletHeight   float64       `yaml:"bullet_height"`
	ShootCooldown  time.Duration `yaml:"shoot_cooldown"`
	TripleOffset   float64       `yaml:"triple_offset"`   // lateral offset of the side shots
	DiagonalSpread float64       `yaml:"diagonal_spread"` // vx = ±spread * bullet speed

	Invulnerability           time.Duration `yaml:"invulnerability"`
	TransitionInvulnerability time.Duration `yaml:"transition_invulnerability"`
	BuffDuration              time.Duration `yaml:"buff_duration"`

	// FreezeOnHit pins the ship at its pre-damage spot until invulnerability ends
	FreezeOnHit bool `yaml:"freeze_on_hit"`
}

// EnemyConfig tunes the small enemy kinds
type EnemyConfig struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	HP     int     `yaml:"hp"`

	ShooterHP        int           `yaml:"shooter_hp"`
	ShooterFireMin   time.Duration `yaml:"shooter_fire_min"`
	ShooterFireMax   time.Duration `yaml:"shooter_fire_max"`
	ShooterTrackGain float64       `yaml:"shooter_track_gain"` // vx per pixel of offset
	ShooterTrackMax  float64       `yaml:"shooter_track_max"`
	BulletSpeed      float64       `yaml:"bullet_speed"`

	KamikazeSpeed     float64 `yaml:"kamikaze_speed"`
	KamikazeWidth     float64 `yaml:"kamikaze_width"`
	KamikazeHeight    float64 `yaml:"kamikaze_height"`
	KamikazeHP        int     `yaml:"kamikaze_hp"`
	KamikazeLockDX    float64 `yaml:"kamikaze_lock_dx"`
	KamikazeLockDY    float64 `yaml:"kamikaze_lock_dy"`
	KamikazeLockBoost float64 `yaml:"kamikaze_lock_boost"`
}

// BigConfig tunes enemies built from multi-cell formations
type BigConfig struct {
	FillRatio      float64 `yaml:"fill_ratio"`
	MinWidth       float64 `yaml:"min_width"`
	MinHeight      float64 `yaml:"min_height"`
	MaxWidth       float64 `yaml:"max_width"`
	MaxHeight      float64 `yaml:"max_height"`
	BaselineWidth  float64 `yaml:"baseline_width"` // shooter sprite size from the asset loader
	BaselineHeight float64 `yaml:"baseline_height"`
	BaselineMargin float64 `yaml:"baseline_margin"`
	HPFloor        int     `yaml:"hp_floor"`
	SpeedFactor    float64 `yaml:"speed_factor"`
	RequireSymbol  bool    `yaml:"require_symbol"`
}

// SpawnConfig tunes the row clock and the safe zone
type SpawnConfig struct {
	RowDuration  time.Duration `yaml:"row_duration"`
	SafeZoneTail time.Duration `yaml:"safe_zone_tail"`
	SafeZoneY    float64       `yaml:"safe_zone_y"`
	CellHeight   float64       `yaml:"cell_height"`
	SpawnMargin  float64       `yaml:"spawn_margin"`
}

// DropWeight is one entry of the weighted pickup table
type DropWeight struct {
	Kind   PickupKind `yaml:"kind"`
	Weight int        `yaml:"weight"`
}

// DropConfig tunes pickup drops
type DropConfig struct {
	Chance    float64      `yaml:"chance"`
	Weights   []DropWeight `yaml:"weights"`
	FallSpeed float64      `yaml:"fall_speed"`
	Size      float64      `yaml:"size"`
}

// EffectConfig carries explosion animation data from the asset loader
type EffectConfig struct {
	ExplosionFrames int           `yaml:"explosion_frames"`
	FrameDuration   time.Duration `yaml:"frame_duration"`
	ExplosionSize   float64       `yaml:"explosion_size"`
}

// SymbolConfig maps level-file characters to enemy kinds
type SymbolConfig struct {
	Shooter  string `yaml:"shooter"`
	Kamikaze string `yaml:"kamikaze"`
	Big      string `yaml:"big"`
	Blank    string `yaml:"blank"` // every character counted as empty
}

// DefaultConfig returns the stock tuning for an 800x600 play area
func DefaultConfig() Config {
	return Config{
		ScreenWidth:   800,
		ScreenHeight:  600,
		TickRate:      60,
		BroadcastRate: 30,
		Player: PlayerConfig{
			Speed:                     300,
			Width:                     28,
			Height:                    28,
			StartX:                    400,
			StartY:                    530,
			StartLives:                5,
			LifeFloor:                 0,
			MaxLives:                  9,
			StartAmmo:                 9999,
			AmmoPerDrop:               50,
			AmmoCap:                   9999,
			BulletSpeed:               600,
			BulletWidth:               4,
			BulletHeight:              10,
			ShootCooldown:             150 * time.Millisecond,
			TripleOffset:              10,
			DiagonalSpread:            0.35,
			Invulnerability:           2 * time.Second,
			TransitionInvulnerability: 1500 * time.Millisecond,
			BuffDuration:              10 * time.Second,
		},
		Enemy: EnemyConfig{
			Speed:             120,
			Width:             28,
			Height:            22,
			HP:                2,
			ShooterHP:         3,
			ShooterFireMin:    1200 * time.Millisecond,
			ShooterFireMax:    2400 * time.Millisecond,
			ShooterTrackGain:  1.5,
			ShooterTrackMax:   90,
			BulletSpeed:       300,
			KamikazeSpeed:     160,
			KamikazeWidth:     24,
			KamikazeHeight:    20,
			KamikazeHP:        2,
			KamikazeLockDX:    40,
			KamikazeLockDY:    220,
			KamikazeLockBoost: 120,
		},
		Big: BigConfig{
			FillRatio:      0.9,
			MinWidth:       32,
			MinHeight:      28,
			MaxWidth:       320,
			MaxHeight:      200,
			BaselineWidth:  28,
			BaselineHeight: 22,
			BaselineMargin: 4,
			HPFloor:        4,
			SpeedFactor:    0.75,
		},
		Spawn: SpawnConfig{
			RowDuration:  800 * time.Millisecond,
			SafeZoneTail: 5 * time.Second,
			SafeZoneY:    520,
			CellHeight:   28,
			SpawnMargin:  20,
		},
		Drops: DropConfig{
			Chance: 0.35,
			Weights: []DropWeight{
				{Kind: PickupHealth, Weight: 3},
				{Kind: PickupAmmo, Weight: 3},
				{Kind: PickupTripleShot, Weight: 2},
				{Kind: PickupDiagonalShot, Weight: 2},
			},
			FallSpeed: 60,
			Size:      16,
		},
		Effects: EffectConfig{
			ExplosionFrames: 8,
			FrameDuration:   50 * time.Millisecond,
			ExplosionSize:   32,
		},
		Symbols: SymbolConfig{
			Shooter:  "S",
			Kamikaze: "K",
			Big:      "B",
			Blank:    " .\t",
		},
	}
}

// LoadConfig overlays the YAML file at path on DefaultConfig. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with
func (c Config) Validate() error {
	var errs []error
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		errs = append(errs, errors.New("screen size must be positive"))
	}
	if c.TickRate <= 0 {
		errs = append(errs, errors.New("tick_rate must be positive"))
	}
	if c.BroadcastRate <= 0 || c.BroadcastRate > c.TickRate {
		errs = append(errs, errors.New("broadcast_rate must be in (0, tick_rate]"))
	}
	if c.Spawn.RowDuration <= 0 {
		errs = append(errs, errors.New("spawn.row_duration must be positive"))
	}
	if c.Enemy.ShooterFireMin <= 0 || c.Enemy.ShooterFireMin > c.Enemy.ShooterFireMax {
		errs = append(errs, errors.New("enemy shooter fire range must satisfy 0 < min <= max"))
	}
	if c.Drops.Chance < 0 || c.Drops.Chance > 1 {
		errs = append(errs, errors.New("drops.chance must be within [0, 1]"))
	}
	total := 0
	for _, w := range c.Drops.Weights {
		if w.Weight < 0 {
			errs = append(errs, fmt.Errorf("drops: negative weight for %q", w.Kind))
		}
		if !w.Kind.Valid() {
			errs = append(errs, fmt.Errorf("drops: unknown pickup kind %q", w.Kind))
		}
		total += w.Weight
	}
	if c.Drops.Chance > 0 && total <= 0 {
		errs = append(errs, errors.New("drops: weights must sum to a positive value"))
	}
	if c.Big.MinWidth > c.Big.MaxWidth || c.Big.MinHeight > c.Big.MaxHeight {
		errs = append(errs, errors.New("big: min size exceeds max size"))
	}
	if c.Player.StartLives < c.Player.LifeFloor {
		errs = append(errs, errors.New("player.start_lives is below player.life_floor"))
	}
	if c.Effects.ExplosionFrames < 0 {
		errs = append(errs, errors.New("effects.explosion_frames must not be negative"))
	}
	return errors.Join(errs...)
}

// TickDuration is the fixed frame delta for the run loop
func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// BroadcastEvery is the number of ticks between frame-state broadcasts
func (c Config) BroadcastEvery() uint64 {
	n := c.TickRate / c.BroadcastRate
	if n < 1 {
		n = 1
	}
	return uint64(n)
}

// IsBlank reports whether ch is an empty grid cell
func (s SymbolConfig) IsBlank(ch rune) bool {
	return strings.ContainsRune(s.Blank, ch)
}

// Pad is the rune used to right-pad short grid rows
func (s SymbolConfig) Pad() rune {
	for _, r := range s.Blank {
		return r
	}
	return ' '
}

func symbolIs(ch rune, symbol string) bool {
	for _, r := range symbol {
		return unicode.ToUpper(ch) == unicode.ToUpper(r)
	}
	return false
}

package main

import (
	"math"
	"math/rand"
	"time"
)

// EnemyKind selects the movement rule of an enemy
type EnemyKind int

const (
	EnemyBasic    EnemyKind = 0 // straight descent
	EnemyShooter  EnemyKind = 1 // tracks the player horizontally and fires down
	EnemyKamikaze EnemyKind = 2 // pursues the player, boosts once locked on
	EnemyBig      EnemyKind = 3 // multi-cell formation, slow and tough
)

func (k EnemyKind) String() string {
	switch k {
	case EnemyShooter:
		return "shooter"
	case EnemyKamikaze:
		return "kamikaze"
	case EnemyBig:
		return "big"
	default:
		return "basic"
	}
}

// Enemy is one materialized formation
type Enemy struct {
	ID     uint32
	Kind   EnemyKind
	Symbol rune
	X, Y   float64 // centre
	VX, VY float64
	W, H   float64
	Speed  float64 // descent speed, or forward speed for kamikazes
	HP     int
	MaxHP  int
	FireCD time.Duration
	Locked bool // kamikaze lock-on, never reverts
	Alive  bool
}

// ClassifyFormation maps a spawn event to an enemy kind
func ClassifyFormation(ev *SpawnEvent, cfg Config) EnemyKind {
	multi := ev.Area > 1
	switch {
	case symbolIs(ev.Symbol, cfg.Symbols.Big):
		return EnemyBig
	case multi && !cfg.Big.RequireSymbol:
		return EnemyBig
	case multi:
		// oversized cluster without the big marker
		return EnemyBasic
	case symbolIs(ev.Symbol, cfg.Symbols.Shooter):
		return EnemyShooter
	case symbolIs(ev.Symbol, cfg.Symbols.Kamikaze):
		return EnemyKamikaze
	}
	return EnemyBasic
}

// BigSize computes the sprite size of a big enemy from its formation box
func BigSize(widthCells, heightCells int, cellWidth float64, cfg Config) (float64, float64) {
	b := cfg.Big
	w := math.Floor(float64(widthCells) * cellWidth * b.FillRatio)
	h := math.Floor(float64(heightCells) * cfg.Spawn.CellHeight * b.FillRatio)
	w = math.Max(w, math.Max(b.MinWidth, b.BaselineWidth+b.BaselineMargin))
	h = math.Max(h, math.Max(b.MinHeight, b.BaselineHeight+b.BaselineMargin))
	return math.Min(w, b.MaxWidth), math.Min(h, b.MaxHeight)
}

// BigHP scales hit points with formation area
func BigHP(area, floor int) int {
	hp := floor + area/2
	if hp < floor {
		hp = floor
	}
	return hp
}

// NewEnemy materializes a spawn event
func NewEnemy(ev *SpawnEvent, cellWidth float64, cfg Config, rng *rand.Rand) *Enemy {
	ec := cfg.Enemy
	e := &Enemy{
		Kind:   ClassifyFormation(ev, cfg),
		Symbol: ev.Symbol,
		X:      ev.X,
		Y:      ev.Y,
		W:      ec.Width,
		H:      ec.Height,
		Speed:  ec.Speed,
		HP:     ec.HP,
		Alive:  true,
	}
	switch e.Kind {
	case EnemyShooter:
		e.HP = ec.ShooterHP
		e.FireCD = randDuration(rng, ec.ShooterFireMin, ec.ShooterFireMax)
	case EnemyKamikaze:
		e.W, e.H = ec.KamikazeWidth, ec.KamikazeHeight
		e.HP = ec.KamikazeHP
		e.Speed = ec.KamikazeSpeed
	case EnemyBig:
		e.W, e.H = BigSize(ev.WidthCells, ev.HeightCells, cellWidth, cfg)
		e.HP = BigHP(ev.Area, cfg.Big.HPFloor)
		e.Speed = ec.Speed * cfg.Big.SpeedFactor
	}
	e.MaxHP = e.HP
	return e
}

// Rect returns the bounding rectangle
func (e *Enemy) Rect() Rect {
	return RectFromCenter(e.X, e.Y, e.W, e.H)
}

// Update moves the enemy one tick. Returns true if it wants to fire.
func (e *Enemy) Update(dt time.Duration, target *Player, bounds Rect, cfg EnemyConfig, rng *rand.Rand) bool {
	if !e.Alive {
		return false
	}
	secs := dt.Seconds()
	wantFire := false

	switch e.Kind {
	case EnemyShooter:
		e.VY = e.Speed
		if target != nil {
			e.VX = Clamp((target.X-e.X)*cfg.ShooterTrackGain, -cfg.ShooterTrackMax, cfg.ShooterTrackMax)
		}
		e.FireCD -= dt
		if e.FireCD <= 0 {
			e.FireCD = randDuration(rng, cfg.ShooterFireMin, cfg.ShooterFireMax)
			wantFire = true
		}
	case EnemyKamikaze:
		e.steer(target, cfg)
	default:
		e.VX = 0
		e.VY = e.Speed
	}

	e.X += e.VX * secs
	e.Y += e.VY * secs

	r := e.Rect()
	if r.Top() > bounds.Bottom() {
		e.Alive = false
	}
	if e.Kind == EnemyKamikaze && (r.Right() < bounds.Left() || r.Left() > bounds.Right()) {
		e.Alive = false
	}
	return wantFire
}

// steer points a kamikaze at the player's current position
func (e *Enemy) steer(target *Player, cfg EnemyConfig) {
	if target == nil {
		e.VX = 0
		e.VY = e.Speed
		return
	}
	dx := target.X - e.X
	dy := target.Y - e.Y
	if !e.Locked && math.Abs(dx) <= cfg.KamikazeLockDX && dy > 0 && dy <= cfg.KamikazeLockDY {
		e.Locked = true
	}
	speed := e.Speed
	if e.Locked {
		speed += cfg.KamikazeLockBoost
	}
	d := math.Max(1, math.Hypot(dx, dy))
	e.VX = dx / d * speed
	e.VY = dy / d * speed
}

// TakeDamage reduces HP and returns true if the enemy died on this hit
func (e *Enemy) TakeDamage(dmg int) bool {
	if !e.Alive {
		return false
	}
	e.HP -= dmg
	if e.HP <= 0 {
		e.HP = 0
		e.Alive = false
		return true
	}
	return false
}

// ToState converts to protocol state
func (e *Enemy) ToState() EnemyState {
	return EnemyState{
		ID:     e.ID,
		Kind:   e.Kind.String(),
		X:      round1(e.X),
		Y:      round1(e.Y),
		W:      e.W,
		H:      e.H,
		HP:     e.HP,
		MaxHP:  e.MaxHP,
		Locked: e.Locked,
	}
}

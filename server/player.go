package main

import (
	"math"
	"time"
)

// Player is the single player ship of a run. It persists across level
// transitions; only its position and invulnerability are reset.
type Player struct {
	X, Y   float64 // centre
	VX, VY float64
	W, H   float64
	Lives  int
	Ammo   int

	Invuln        time.Duration // never negative
	TripleUntil   time.Duration // sim-clock expiry of the triple-shot buff
	DiagonalUntil time.Duration // sim-clock expiry of the diagonal-shot buff
	NextShot      time.Duration // sim-clock time the gun is ready again

	cfg          PlayerConfig
	lastX, lastY float64 // position before this frame's movement
	frozen       bool
}

// NewPlayer creates a player at its spawn point
func NewPlayer(cfg PlayerConfig) *Player {
	return &Player{
		X:     cfg.StartX,
		Y:     cfg.StartY,
		W:     cfg.Width,
		H:     cfg.Height,
		Lives: cfg.StartLives,
		Ammo:  cfg.StartAmmo,
		cfg:   cfg,
		lastX: cfg.StartX,
		lastY: cfg.StartY,
	}
}

// Rect returns the bounding rectangle
func (p *Player) Rect() Rect {
	return RectFromCenter(p.X, p.Y, p.W, p.H)
}

// Update moves the player one tick from the movement vector and ticks the
// invulnerability timer down. The ship is kept inside bounds.
func (p *Player) Update(dt time.Duration, in ClientInput, bounds Rect) {
	secs := dt.Seconds()
	p.lastX, p.lastY = p.X, p.Y

	mx, my := in.MX, in.MY
	if p.frozen {
		mx, my = 0, 0
	}
	if l := math.Hypot(mx, my); l > 1 {
		mx /= l
		my /= l
	}
	p.VX = mx * p.cfg.Speed
	p.VY = my * p.cfg.Speed
	p.X += p.VX * secs
	p.Y += p.VY * secs

	r := p.Rect().Clamp(bounds)
	p.X, p.Y = r.Center()

	if p.Invuln > 0 {
		p.Invuln -= dt
		if p.Invuln < 0 {
			p.Invuln = 0
		}
	}
	if p.Invuln == 0 {
		p.frozen = false
	}
}

// Shoot fires the current pattern if the cooldown allows it. The triple and
// diagonal buffs compose: both active means five projectiles.
func (p *Player) Shoot(now time.Duration) []*Projectile {
	if now < p.NextShot {
		return nil
	}
	p.NextShot = now + p.cfg.ShootCooldown

	x, y := p.X, p.Rect().Top()
	var shots []*Projectile
	if p.TripleActive(now) {
		off := p.cfg.TripleOffset
		shots = append(shots,
			NewPlayerProjectile(x-off, y, 0, p.cfg),
			NewPlayerProjectile(x, y, 0, p.cfg),
			NewPlayerProjectile(x+off, y, 0, p.cfg),
		)
	} else {
		shots = append(shots, NewPlayerProjectile(x, y, 0, p.cfg))
	}
	if p.DiagonalActive(now) {
		vx := p.cfg.DiagonalSpread * p.cfg.BulletSpeed
		shots = append(shots,
			NewPlayerProjectile(x, y, -vx, p.cfg),
			NewPlayerProjectile(x, y, vx, p.cfg),
		)
	}
	return shots
}

// TripleActive reports whether the triple-shot buff is running at now
func (p *Player) TripleActive(now time.Duration) bool {
	return now < p.TripleUntil
}

// DiagonalActive reports whether the diagonal-shot buff is running at now
func (p *Player) DiagonalActive(now time.Duration) bool {
	return now < p.DiagonalUntil
}

// ApplyPickup applies a collected pickup's effect. Buffs are refreshed to
// now+duration and never shortened.
func (p *Player) ApplyPickup(kind PickupKind, now time.Duration) {
	switch kind {
	case PickupHealth:
		p.Lives++
		if p.Lives > p.cfg.MaxLives {
			p.Lives = p.cfg.MaxLives
		}
	case PickupAmmo:
		p.Ammo += p.cfg.AmmoPerDrop
		if p.Ammo > p.cfg.AmmoCap {
			p.Ammo = p.cfg.AmmoCap
		}
	case PickupTripleShot:
		p.TripleUntil = maxDuration(p.TripleUntil, now+p.cfg.BuffDuration)
	case PickupDiagonalShot:
		p.DiagonalUntil = maxDuration(p.DiagonalUntil, now+p.cfg.BuffDuration)
	}
}

// Vulnerable reports whether damage can currently land
func (p *Player) Vulnerable() bool {
	return p.Invuln <= 0
}

// TakeHit costs one life, restores the pre-hit position and starts the
// invulnerability window. With FreezeOnHit the ship also ignores movement
// until the window ends. Returns true once lives fall below the floor.
func (p *Player) TakeHit() bool {
	p.Lives--
	p.X, p.Y = p.lastX, p.lastY
	p.VX, p.VY = 0, 0
	p.Invuln = p.cfg.Invulnerability
	p.frozen = p.cfg.FreezeOnHit
	return p.Lives < p.cfg.LifeFloor
}

// Reset puts the ship back at its spawn point for a new level
func (p *Player) Reset() {
	p.X, p.Y = p.cfg.StartX, p.cfg.StartY
	p.lastX, p.lastY = p.X, p.Y
	p.VX, p.VY = 0, 0
	p.Invuln = p.cfg.TransitionInvulnerability
	p.frozen = false
}

// Blink is the renderer hint to hide the sprite while invulnerable. The
// sprite shows on even tenths of the remaining time and hides on odd ones.
func (p *Player) Blink() bool {
	if p.Invuln <= 0 {
		return false
	}
	return int(p.Invuln.Seconds()*10)%2 != 0
}

// ToState converts to protocol state
func (p *Player) ToState() PlayerState {
	return PlayerState{
		X:      round1(p.X),
		Y:      round1(p.Y),
		W:      p.W,
		H:      p.H,
		Lives:  p.Lives,
		Blink:  p.Blink(),
		Invuln: p.Invuln > 0,
	}
}

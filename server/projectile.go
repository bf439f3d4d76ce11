package main

// Projectile is a bullet fired by the player (Friendly) or by an enemy
type Projectile struct {
	ID       uint32
	X, Y     float64 // centre
	VX, VY   float64 // pixels/s
	W, H     float64
	Friendly bool
	Alive    bool
}

// NewPlayerProjectile creates an upward friendly bullet at (x, y)
func NewPlayerProjectile(x, y, vx float64, cfg PlayerConfig) *Projectile {
	return &Projectile{
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       -cfg.BulletSpeed,
		W:        cfg.BulletWidth,
		H:        cfg.BulletHeight,
		Friendly: true,
		Alive:    true,
	}
}

// NewEnemyProjectile creates a hostile bullet travelling straight down
func NewEnemyProjectile(x, y float64, cfg Config) *Projectile {
	return &Projectile{
		X:     x,
		Y:     y,
		VY:    cfg.Enemy.BulletSpeed,
		W:     cfg.Player.BulletWidth,
		H:     cfg.Player.BulletHeight,
		Alive: true,
	}
}

// Rect returns the bounding rectangle
func (p *Projectile) Rect() Rect {
	return RectFromCenter(p.X, p.Y, p.W, p.H)
}

// Update moves the projectile one tick and kills it once it leaves the play area
func (p *Projectile) Update(dt float64, bounds Rect) {
	if !p.Alive {
		return
	}
	p.X += p.VX * dt
	p.Y += p.VY * dt

	r := p.Rect()
	if r.Bottom() < bounds.Top() || r.Top() > bounds.Bottom() ||
		r.Right() < bounds.Left() || r.Left() > bounds.Right() {
		p.Alive = false
	}
}

// ToState converts to protocol state
func (p *Projectile) ToState() ProjectileState {
	return ProjectileState{
		ID: p.ID,
		X:  round1(p.X),
		Y:  round1(p.Y),
		VX: round1(p.VX),
		VY: round1(p.VY),
	}
}

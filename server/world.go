package main

import (
	"math/rand"
	"time"
)

// FrameReport summarizes what one Step did, for the level session
type FrameReport struct {
	Spawned    int
	Kills      int
	PlayerHit  bool
	Lost       bool // lives fell below the floor this frame
	ReachedEnd bool // player crossed the safe-zone line after it opened
}

// World owns the entity populations of one level and steps them. It is not
// safe for concurrent use; Game serializes access.
type World struct {
	cfg    Config
	rng    *rand.Rand
	bounds Rect

	Player   *Player
	Enemies  []*Enemy
	Friendly []*Projectile
	Hostile  []*Projectile
	Pickups  []*Pickup
	Effects  []*Effect

	timeline *Timeline
	clock    time.Duration // sim time since the run started
	nextID   uint32

	spatial  *SpatialGrid
	queryBuf []EntityRef
	hitBuf   []int
}

// NewWorld creates an empty world with a fresh player
func NewWorld(cfg Config, rng *rand.Rand) *World {
	return &World{
		cfg:      cfg,
		rng:      rng,
		bounds:   Rect{W: cfg.ScreenWidth, H: cfg.ScreenHeight},
		Player:   NewPlayer(cfg.Player),
		timeline: NewTimeline(nil, cfg),
		spatial:  NewSpatialGrid(cfg.ScreenWidth, cfg.ScreenHeight),
	}
}

// LoadLevel installs a new timeline and clears enemies, hostile projectiles
// and pickups. Friendly projectiles and effects carry over.
func (w *World) LoadLevel(g *Grid) {
	w.timeline = NewTimeline(g, w.cfg)
	w.Enemies = w.Enemies[:0]
	w.Hostile = w.Hostile[:0]
	w.Pickups = w.Pickups[:0]
}

// Timeline exposes the spawn timeline of the current level
func (w *World) Timeline() *Timeline {
	return w.timeline
}

// Clock is the simulated time since the world was created
func (w *World) Clock() time.Duration {
	return w.clock
}

// Bounds is the play area
func (w *World) Bounds() Rect {
	return w.bounds
}

func (w *World) id() uint32 {
	w.nextID++
	return w.nextID
}

// Step advances the world by dt: movement and spawning first, then the
// combat phases in their fixed order.
func (w *World) Step(dt time.Duration, in ClientInput) FrameReport {
	var rep FrameReport
	w.clock += dt
	secs := dt.Seconds()

	w.Player.Update(dt, in, w.bounds)
	if in.Fire {
		for _, pr := range w.Player.Shoot(w.clock) {
			pr.ID = w.id()
			w.Friendly = append(w.Friendly, pr)
		}
	}

	for _, ev := range w.timeline.Update(dt) {
		e := NewEnemy(ev, w.timeline.CellWidth(), w.cfg, w.rng)
		e.ID = w.id()
		w.Enemies = append(w.Enemies, e)
		rep.Spawned++
	}

	enemies := w.Enemies
	for _, e := range enemies {
		if e.Update(dt, w.Player, w.bounds, w.cfg.Enemy, w.rng) {
			pr := NewEnemyProjectile(e.X, e.Rect().Bottom(), w.cfg)
			pr.ID = w.id()
			w.Hostile = append(w.Hostile, pr)
		}
	}
	for _, p := range w.Friendly {
		p.Update(secs, w.bounds)
	}
	for _, p := range w.Hostile {
		p.Update(secs, w.bounds)
	}
	for _, p := range w.Pickups {
		p.Update(secs, w.bounds)
	}
	for _, fx := range w.Effects {
		fx.Update(dt)
	}
	w.compact()

	rep.Kills = w.resolveFriendlyHits()
	w.compact()

	rep.PlayerHit, rep.Lost = w.resolvePlayerContact()
	w.compact()
	if rep.Lost {
		return rep
	}

	w.resolvePickups()
	w.compact()

	rep.ReachedEnd = w.safeZoneReached()
	return rep
}

// SafeZoneActive reports whether the win line is open
func (w *World) SafeZoneActive() bool {
	return w.timeline.SafeZoneReady()
}

func (w *World) spawnExplosion(x, y float64) {
	fx := NewExplosion(x, y, w.cfg.Effects)
	fx.ID = w.id()
	w.Effects = append(w.Effects, fx)
}

func (w *World) spawnPickup(x, y float64, kind PickupKind) {
	pk := NewPickup(x, y, kind, w.cfg.Drops)
	pk.ID = w.id()
	w.Pickups = append(w.Pickups, pk)
}

// compact drops every dead entity. Order within a population is kept.
func (w *World) compact() {
	w.Enemies = compactAlive(w.Enemies, func(e *Enemy) bool { return e.Alive })
	w.Friendly = compactAlive(w.Friendly, func(p *Projectile) bool { return p.Alive })
	w.Hostile = compactAlive(w.Hostile, func(p *Projectile) bool { return p.Alive })
	w.Pickups = compactAlive(w.Pickups, func(p *Pickup) bool { return p.Alive })
	w.Effects = compactAlive(w.Effects, func(fx *Effect) bool { return fx.Alive })
}

func compactAlive[T any](s []T, alive func(T) bool) []T {
	n := 0
	for _, v := range s {
		if alive(v) {
			s[n] = v
			n++
		}
	}
	var zero T
	for i := n; i < len(s); i++ {
		s[i] = zero
	}
	return s[:n]
}

// Counts returns population sizes for the debug HUD
func (w *World) Counts() DebugCounts {
	return DebugCounts{
		Enemies:  len(w.Enemies),
		Friendly: len(w.Friendly),
		Hostile:  len(w.Hostile),
		Pickups:  len(w.Pickups),
		Effects:  len(w.Effects),
		Pending:  w.timeline.Pending(),
	}
}

package main

import "time"

// Effect is a visual-only explosion left behind by a death or a hit on the
// player. It never takes part in collisions.
type Effect struct {
	ID     uint32
	X, Y   float64
	Size   float64
	Frames int
	Age    time.Duration
	Life   time.Duration
	Alive  bool
}

// NewExplosion spawns an explosion at (x, y) lasting one pass of its frames
func NewExplosion(x, y float64, cfg EffectConfig) *Effect {
	return &Effect{
		X:      x,
		Y:      y,
		Size:   cfg.ExplosionSize,
		Frames: cfg.ExplosionFrames,
		Life:   time.Duration(cfg.ExplosionFrames) * cfg.FrameDuration,
		Alive:  true,
	}
}

// Update ages the effect and expires it after its last frame
func (e *Effect) Update(dt time.Duration) {
	if !e.Alive {
		return
	}
	e.Age += dt
	if e.Age >= e.Life {
		e.Alive = false
	}
}

// Frame is the animation frame to draw
func (e *Effect) Frame() int {
	if e.Frames <= 0 || e.Life <= 0 {
		return 0
	}
	f := int(int64(e.Age) * int64(e.Frames) / int64(e.Life))
	if f >= e.Frames {
		f = e.Frames - 1
	}
	return f
}

// ToState converts to protocol state
func (e *Effect) ToState() EffectState {
	return EffectState{
		ID:    e.ID,
		X:     round1(e.X),
		Y:     round1(e.Y),
		Size:  e.Size,
		Frame: e.Frame(),
	}
}

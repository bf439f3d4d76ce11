package main

// PickupKind names a drop type
type PickupKind string

const (
	PickupHealth       PickupKind = "health"
	PickupAmmo         PickupKind = "ammo"
	PickupTripleShot   PickupKind = "triple"   // weapon upgrade A
	PickupDiagonalShot PickupKind = "diagonal" // weapon upgrade B
)

// Valid reports whether k is a known pickup kind
func (k PickupKind) Valid() bool {
	switch k {
	case PickupHealth, PickupAmmo, PickupTripleShot, PickupDiagonalShot:
		return true
	}
	return false
}

// Pickup is a drop that drifts down until the player collects it
type Pickup struct {
	ID    uint32
	Kind  PickupKind
	X, Y  float64
	VY    float64
	Size  float64
	Alive bool
}

// NewPickup drops a pickup of the given kind at (x, y)
func NewPickup(x, y float64, kind PickupKind, cfg DropConfig) *Pickup {
	return &Pickup{
		Kind:  kind,
		X:     x,
		Y:     y,
		VY:    cfg.FallSpeed,
		Size:  cfg.Size,
		Alive: true,
	}
}

// Rect returns the bounding rectangle
func (p *Pickup) Rect() Rect {
	return RectFromCenter(p.X, p.Y, p.Size, p.Size)
}

// Update drifts the pickup down and removes it past the bottom edge
func (p *Pickup) Update(dt float64, bounds Rect) {
	if !p.Alive {
		return
	}
	p.Y += p.VY * dt
	if p.Rect().Top() > bounds.Bottom() {
		p.Alive = false
	}
}

// ToState converts to protocol state
func (p *Pickup) ToState() PickupState {
	return PickupState{
		ID:   p.ID,
		Kind: string(p.Kind),
		X:    round1(p.X),
		Y:    round1(p.Y),
	}
}

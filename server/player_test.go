package main

import (
	"math"
	"testing"
	"time"
)

var testBounds = Rect{W: 800, H: 600}

func TestNewPlayerDefaults(t *testing.T) {
	cfg := DefaultConfig().Player
	p := NewPlayer(cfg)
	if p.X != 400 || p.Y != 530 {
		t.Errorf("expected spawn (400,530), got (%v,%v)", p.X, p.Y)
	}
	if p.Lives != 5 {
		t.Errorf("expected 5 lives, got %d", p.Lives)
	}
	if p.Ammo != cfg.StartAmmo {
		t.Errorf("expected %d ammo, got %d", cfg.StartAmmo, p.Ammo)
	}
	if !p.Vulnerable() {
		t.Error("new player should be vulnerable")
	}
}

func TestPlayerMovement(t *testing.T) {
	p := NewPlayer(DefaultConfig().Player)
	p.Update(time.Second, ClientInput{MX: 1}, testBounds)
	if p.X != 700 {
		t.Errorf("expected x 700 after 1s at 300px/s, got %v", p.X)
	}

	// diagonals are normalized
	p = NewPlayer(DefaultConfig().Player)
	p.Update(time.Second, ClientInput{MX: 1, MY: -1}, testBounds)
	step := 300 / math.Sqrt2
	if math.Abs(p.X-(400+step)) > 1e-6 || math.Abs(p.Y-(530-step)) > 1e-6 {
		t.Errorf("expected diagonal move of %.2f, got (%v,%v)", step, p.X, p.Y)
	}
}

func TestPlayerClampedToScreen(t *testing.T) {
	p := NewPlayer(DefaultConfig().Player)
	p.Update(2*time.Second, ClientInput{MX: -1}, testBounds)
	if p.X != 14 {
		t.Errorf("expected x clamped to half width 14, got %v", p.X)
	}
	p.Update(time.Second, ClientInput{MY: 1}, testBounds)
	if p.Y != 586 {
		t.Errorf("expected y clamped to 586, got %v", p.Y)
	}
}

func TestPlayerShootCooldown(t *testing.T) {
	p := NewPlayer(DefaultConfig().Player)
	shots := p.Shoot(0)
	if len(shots) != 1 {
		t.Fatalf("expected 1 shot, got %d", len(shots))
	}
	if shots[0].X != 400 || shots[0].Y != p.Rect().Top() || shots[0].VY != -600 {
		t.Errorf("unexpected shot %+v", shots[0])
	}
	if p.Shoot(100*time.Millisecond) != nil {
		t.Error("cooldown should block a shot at 100ms")
	}
	if len(p.Shoot(150*time.Millisecond)) != 1 {
		t.Error("shot at exactly the cooldown should succeed")
	}
}

func TestPlayerShotPatterns(t *testing.T) {
	p := NewPlayer(DefaultConfig().Player)
	p.ApplyPickup(PickupTripleShot, 0)
	shots := p.Shoot(0)
	if len(shots) != 3 {
		t.Fatalf("expected 3 shots with triple, got %d", len(shots))
	}
	if shots[0].X != 390 || shots[1].X != 400 || shots[2].X != 410 {
		t.Errorf("unexpected triple offsets %v %v %v", shots[0].X, shots[1].X, shots[2].X)
	}

	p.ApplyPickup(PickupDiagonalShot, time.Second)
	shots = p.Shoot(time.Second)
	if len(shots) != 5 {
		t.Fatalf("expected 5 shots with both buffs, got %d", len(shots))
	}
	left, right := shots[3], shots[4]
	if math.Abs(left.VX+210) > 1e-9 || math.Abs(right.VX-210) > 1e-9 {
		t.Errorf("expected diagonal vx ±210, got %v and %v", left.VX, right.VX)
	}
	for _, s := range shots {
		if !s.Friendly {
			t.Error("player shots must be friendly")
		}
	}

	// expired buff falls back to a single shot
	shots = p.Shoot(12 * time.Second)
	if len(shots) != 1 {
		t.Errorf("expected 1 shot after buffs expire, got %d", len(shots))
	}
}

func TestPlayerBuffRefresh(t *testing.T) {
	p := NewPlayer(DefaultConfig().Player)
	p.ApplyPickup(PickupTripleShot, time.Second)
	if p.TripleUntil != 11*time.Second {
		t.Fatalf("expected expiry 11s, got %v", p.TripleUntil)
	}
	p.ApplyPickup(PickupTripleShot, 2*time.Second)
	if p.TripleUntil != 12*time.Second {
		t.Errorf("refresh should reset to now+10s (12s), got %v", p.TripleUntil)
	}

	p.DiagonalUntil = 30 * time.Second
	p.ApplyPickup(PickupDiagonalShot, time.Second)
	if p.DiagonalUntil != 30*time.Second {
		t.Errorf("refresh must never shorten a buff, got %v", p.DiagonalUntil)
	}
}

func TestPlayerPickupCaps(t *testing.T) {
	cfg := DefaultConfig().Player
	p := NewPlayer(cfg)
	p.ApplyPickup(PickupHealth, 0)
	if p.Lives != 6 {
		t.Errorf("expected 6 lives, got %d", p.Lives)
	}
	p.Lives = cfg.MaxLives
	p.ApplyPickup(PickupHealth, 0)
	if p.Lives != cfg.MaxLives {
		t.Errorf("lives should cap at %d, got %d", cfg.MaxLives, p.Lives)
	}

	p.Ammo = 100
	p.ApplyPickup(PickupAmmo, 0)
	if p.Ammo != 150 {
		t.Errorf("expected 150 ammo, got %d", p.Ammo)
	}
	p.Ammo = cfg.AmmoCap - 10
	p.ApplyPickup(PickupAmmo, 0)
	if p.Ammo != cfg.AmmoCap {
		t.Errorf("ammo should cap at %d, got %d", cfg.AmmoCap, p.Ammo)
	}
}

func TestPlayerTakeHit(t *testing.T) {
	p := NewPlayer(DefaultConfig().Player)
	p.Update(500*time.Millisecond, ClientInput{MX: 1}, testBounds)
	if p.X != 550 {
		t.Fatalf("expected x 550, got %v", p.X)
	}
	if p.TakeHit() {
		t.Error("first hit should not lose the run")
	}
	if p.Lives != 4 {
		t.Errorf("expected 4 lives, got %d", p.Lives)
	}
	if p.X != 400 || p.VX != 0 {
		t.Errorf("expected pre-frame position 400 and zero velocity, got x=%v vx=%v", p.X, p.VX)
	}
	if p.Invuln != 2*time.Second || p.Vulnerable() {
		t.Errorf("expected 2s invulnerability, got %v", p.Invuln)
	}
}

func TestPlayerFreezeOnHit(t *testing.T) {
	cfg := DefaultConfig().Player
	cfg.FreezeOnHit = true
	p := NewPlayer(cfg)
	p.TakeHit()

	p.Update(500*time.Millisecond, ClientInput{MX: 1}, testBounds)
	if p.X != 400 || p.VX != 0 {
		t.Fatalf("frozen ship moved: x=%v vx=%v", p.X, p.VX)
	}
	p.Update(1500*time.Millisecond, ClientInput{MX: 1}, testBounds)
	if p.X != 400 || p.Invuln != 0 {
		t.Fatalf("expected ship still at 400 as the window closes, got x=%v invuln=%v", p.X, p.Invuln)
	}
	p.Update(500*time.Millisecond, ClientInput{MX: 1}, testBounds)
	if p.X != 550 {
		t.Errorf("expected movement after the window, got x=%v", p.X)
	}
}

func TestPlayerLossBelowFloor(t *testing.T) {
	p := NewPlayer(DefaultConfig().Player)
	p.Lives = 1
	if p.TakeHit() {
		t.Error("reaching the floor (0) is not yet a loss")
	}
	if !p.TakeHit() {
		t.Error("dropping below the floor should lose the run")
	}
}

func TestPlayerInvulnerabilityFloor(t *testing.T) {
	p := NewPlayer(DefaultConfig().Player)
	p.Invuln = 50 * time.Millisecond
	p.Update(100*time.Millisecond, ClientInput{}, testBounds)
	if p.Invuln != 0 {
		t.Errorf("invulnerability should floor at 0, got %v", p.Invuln)
	}
	if !p.Vulnerable() {
		t.Error("player should be vulnerable again")
	}
}

func TestPlayerBlink(t *testing.T) {
	p := NewPlayer(DefaultConfig().Player)
	if p.Blink() {
		t.Error("vulnerable player should never blink")
	}
	p.Invuln = 2050 * time.Millisecond
	if p.Blink() {
		t.Error("expected visible frame at 2.05s")
	}
	p.Invuln = 1950 * time.Millisecond
	if !p.Blink() {
		t.Error("expected hidden frame at 1.95s")
	}
}

func TestPlayerReset(t *testing.T) {
	p := NewPlayer(DefaultConfig().Player)
	p.Update(time.Second, ClientInput{MX: -1, MY: -1}, testBounds)
	p.Lives = 2
	p.Reset()
	if p.X != 400 || p.Y != 530 {
		t.Errorf("expected start position, got (%v,%v)", p.X, p.Y)
	}
	if p.Invuln != 1500*time.Millisecond {
		t.Errorf("expected 1.5s transition invulnerability, got %v", p.Invuln)
	}
	if p.Lives != 2 {
		t.Error("reset must keep lives")
	}
}

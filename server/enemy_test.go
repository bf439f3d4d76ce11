package main

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestClassifyFormation(t *testing.T) {
	permissive := DefaultConfig()
	strict := DefaultConfig()
	strict.Big.RequireSymbol = true

	tests := []struct {
		name   string
		symbol rune
		area   int
		cfg    Config
		want   EnemyKind
	}{
		{"shooter", 'S', 1, permissive, EnemyShooter},
		{"lowercase shooter", 's', 1, permissive, EnemyShooter},
		{"kamikaze", 'K', 1, permissive, EnemyKamikaze},
		{"single big marker", 'B', 1, permissive, EnemyBig},
		{"other symbol", 'X', 1, permissive, EnemyBasic},
		{"multi-cell cluster", 'S', 4, permissive, EnemyBig},
		{"multi-cell cluster strict", 'X', 4, strict, EnemyBasic},
		{"multi-cell shooter strict", 'S', 2, strict, EnemyBasic},
		{"big marker strict", 'B', 9, strict, EnemyBig},
	}
	for _, tt := range tests {
		ev := &SpawnEvent{Symbol: tt.symbol, Area: tt.area}
		if got := ClassifyFormation(ev, tt.cfg); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestBigHP(t *testing.T) {
	if hp := BigHP(9, 4); hp != 8 {
		t.Errorf("3x3 block: expected 8, got %d", hp)
	}
	if hp := BigHP(1, 4); hp != 4 {
		t.Errorf("single cell: expected floor 4, got %d", hp)
	}
	if hp := BigHP(0, 4); hp != 4 {
		t.Errorf("zero area: expected floor 4, got %d", hp)
	}
}

func TestBigSize(t *testing.T) {
	cfg := DefaultConfig()

	w, h := BigSize(3, 3, 40, cfg)
	if w != 108 || h != 75 {
		t.Errorf("3x3 at 40px: expected 108x75, got %.0fx%.0f", w, h)
	}

	// tiny cells fall back to the minimum and baseline floors
	w, h = BigSize(1, 1, 20, cfg)
	if w != 32 || h != 28 {
		t.Errorf("1x1 at 20px: expected 32x28, got %.0fx%.0f", w, h)
	}
	if w < cfg.Big.BaselineWidth+cfg.Big.BaselineMargin || h < cfg.Big.BaselineHeight+cfg.Big.BaselineMargin {
		t.Error("big enemy not larger than the baseline sprite")
	}

	w, h = BigSize(100, 100, 40, cfg)
	if w != cfg.Big.MaxWidth || h != cfg.Big.MaxHeight {
		t.Errorf("expected cap %vx%v, got %vx%v", cfg.Big.MaxWidth, cfg.Big.MaxHeight, w, h)
	}
}

func TestNewEnemyBig(t *testing.T) {
	cfg := DefaultConfig()
	ev := &SpawnEvent{Symbol: 'B', WidthCells: 3, HeightCells: 3, Area: 9, X: 300, Y: -100}
	e := NewEnemy(ev, 40, cfg, testRand())
	if e.Kind != EnemyBig {
		t.Fatalf("expected big, got %s", e.Kind)
	}
	if e.HP != 8 || e.MaxHP != 8 {
		t.Errorf("expected hp 8, got %d/%d", e.HP, e.MaxHP)
	}
	if e.Speed != 90 {
		t.Errorf("expected reduced speed 90, got %v", e.Speed)
	}
	if e.X != 300 || e.Y != -100 {
		t.Errorf("expected spawn at event position, got (%v,%v)", e.X, e.Y)
	}
}

func TestBasicEnemyDescends(t *testing.T) {
	cfg := DefaultConfig()
	bounds := Rect{W: cfg.ScreenWidth, H: cfg.ScreenHeight}
	e := NewEnemy(&SpawnEvent{Symbol: 'X', Area: 1, X: 100, Y: -50}, 40, cfg, testRand())
	e.Update(time.Second, nil, bounds, cfg.Enemy, testRand())
	if e.Y != 70 || e.X != 100 {
		t.Errorf("expected (100,70), got (%v,%v)", e.X, e.Y)
	}
	if !e.Alive {
		t.Error("enemy above the top edge should stay alive")
	}

	e.Y = cfg.ScreenHeight + e.H
	e.Update(time.Millisecond, nil, bounds, cfg.Enemy, testRand())
	if e.Alive {
		t.Error("enemy past the bottom edge should be removed")
	}
}

func TestShooterTracksAndFires(t *testing.T) {
	cfg := DefaultConfig()
	bounds := Rect{W: cfg.ScreenWidth, H: cfg.ScreenHeight}
	rng := testRand()
	e := NewEnemy(&SpawnEvent{Symbol: 'S', Area: 1, X: 100, Y: 100}, 40, cfg, rng)
	if e.HP != cfg.Enemy.ShooterHP {
		t.Errorf("expected shooter hp %d, got %d", cfg.Enemy.ShooterHP, e.HP)
	}
	if e.FireCD < cfg.Enemy.ShooterFireMin || e.FireCD > cfg.Enemy.ShooterFireMax {
		t.Errorf("initial cooldown %v outside range", e.FireCD)
	}

	p := NewPlayer(cfg.Player) // x 400, far to the right
	e.FireCD = 10 * time.Millisecond
	fired := e.Update(100*time.Millisecond, p, bounds, cfg.Enemy, rng)
	if !fired {
		t.Error("shooter should fire when its cooldown runs out")
	}
	if e.VX != cfg.Enemy.ShooterTrackMax {
		t.Errorf("expected clamped vx %v, got %v", cfg.Enemy.ShooterTrackMax, e.VX)
	}
	if e.FireCD < cfg.Enemy.ShooterFireMin || e.FireCD > cfg.Enemy.ShooterFireMax {
		t.Errorf("redrawn cooldown %v outside range", e.FireCD)
	}
	if e.Update(100*time.Millisecond, p, bounds, cfg.Enemy, rng) {
		t.Error("shooter should not fire again right away")
	}

	// small offsets track proportionally
	e.X = p.X - 20
	e.Update(time.Millisecond, p, bounds, cfg.Enemy, rng)
	if math.Abs(e.VX-30) > 1e-9 {
		t.Errorf("expected vx 30, got %v", e.VX)
	}
}

func TestKamikazeLockOn(t *testing.T) {
	cfg := DefaultConfig()
	bounds := Rect{W: cfg.ScreenWidth, H: cfg.ScreenHeight}
	p := NewPlayer(cfg.Player)

	far := NewEnemy(&SpawnEvent{Symbol: 'K', Area: 1, X: 400, Y: 100}, 40, cfg, testRand())
	far.Update(time.Millisecond, p, bounds, cfg.Enemy, testRand())
	if far.Locked {
		t.Error("kamikaze 430px above the player should not lock")
	}
	if s := math.Hypot(far.VX, far.VY); math.Abs(s-cfg.Enemy.KamikazeSpeed) > 1e-6 {
		t.Errorf("expected speed %v, got %v", cfg.Enemy.KamikazeSpeed, s)
	}

	near := NewEnemy(&SpawnEvent{Symbol: 'K', Area: 1, X: 420, Y: 330}, 40, cfg, testRand())
	near.Update(time.Millisecond, p, bounds, cfg.Enemy, testRand())
	if !near.Locked {
		t.Fatal("aligned kamikaze within range should lock")
	}
	want := cfg.Enemy.KamikazeSpeed + cfg.Enemy.KamikazeLockBoost
	if s := math.Hypot(near.VX, near.VY); math.Abs(s-want) > 1e-6 {
		t.Errorf("expected boosted speed %v, got %v", want, s)
	}
	if near.VX >= 0 || near.VY <= 0 {
		t.Error("kamikaze should steer toward the player")
	}

	// moving the player away never unlocks
	p.X, p.Y = 50, 50
	near.Update(time.Millisecond, p, bounds, cfg.Enemy, testRand())
	if !near.Locked {
		t.Error("lock-on must be one-way")
	}
}

func TestKamikazeLeavesSideEdge(t *testing.T) {
	cfg := DefaultConfig()
	bounds := Rect{W: cfg.ScreenWidth, H: cfg.ScreenHeight}
	e := NewEnemy(&SpawnEvent{Symbol: 'K', Area: 1, X: -30, Y: 300}, 40, cfg, testRand())
	e.Update(time.Millisecond, nil, bounds, cfg.Enemy, testRand())
	if e.Alive {
		t.Error("kamikaze past the left edge should be removed")
	}
}

func TestEnemyTakeDamage(t *testing.T) {
	e := &Enemy{HP: 2, MaxHP: 2, Alive: true}
	if e.TakeDamage(1) {
		t.Error("should survive the first hit")
	}
	if !e.TakeDamage(1) {
		t.Error("should die on the second hit")
	}
	if e.Alive || e.HP != 0 {
		t.Errorf("expected dead with hp 0, got alive=%v hp=%d", e.Alive, e.HP)
	}
	if e.TakeDamage(1) {
		t.Error("dead enemy should not die twice")
	}
}

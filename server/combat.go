package main

// Combat phases run after movement, in this order: friendly projectiles vs
// enemies, hostile contact vs player, pickups vs player, safe-zone line.

// resolveFriendlyHits lets each friendly projectile damage every enemy it
// overlaps. A projectile that hits anything is consumed. Returns kills.
func (w *World) resolveFriendlyHits() int {
	if len(w.Enemies) == 0 || len(w.Friendly) == 0 {
		return 0
	}
	w.spatial.Clear()
	enemies := w.Enemies
	for i, e := range enemies {
		w.spatial.Insert(e.Rect(), EntityRef{Kind: 'e', Idx: i})
	}

	kills := 0
	for _, pr := range w.Friendly {
		if !pr.Alive {
			continue
		}
		r := pr.Rect()
		w.queryBuf = w.spatial.QueryBuf(r, w.queryBuf[:0])
		w.hitBuf = w.hitBuf[:0]
		for _, ref := range w.queryBuf {
			if ref.Kind != 'e' || containsInt(w.hitBuf, ref.Idx) {
				continue
			}
			e := enemies[ref.Idx]
			if e.Alive && e.Rect().Intersects(r) {
				w.hitBuf = append(w.hitBuf, ref.Idx)
			}
		}
		if len(w.hitBuf) == 0 {
			continue
		}
		pr.Alive = false
		for _, idx := range w.hitBuf {
			e := enemies[idx]
			if e.TakeDamage(1) {
				kills++
				w.onEnemyDestroyed(e)
			}
		}
	}
	return kills
}

// onEnemyDestroyed is the single death side effect of an enemy
func (w *World) onEnemyDestroyed(e *Enemy) {
	w.spawnExplosion(e.X, e.Y)
	if kind, ok := RollDrop(w.rng, w.cfg.Drops); ok {
		w.spawnPickup(e.X, e.Y, kind)
	}
}

// resolvePlayerContact applies at most one hit per frame from hostile
// projectiles or enemy bodies. Skipped entirely while invulnerable.
func (w *World) resolvePlayerContact() (hit, lost bool) {
	p := w.Player
	if !p.Vulnerable() {
		return false, false
	}
	pr := p.Rect()
	touched := false
	for _, b := range w.Hostile {
		if b.Alive && b.Rect().Intersects(pr) {
			touched = true
			break
		}
	}
	if !touched {
		for _, e := range w.Enemies {
			if e.Alive && e.Rect().Intersects(pr) {
				touched = true
				break
			}
		}
	}
	if !touched {
		return false, false
	}

	for _, b := range w.Hostile {
		if b.Alive && b.Rect().Intersects(pr) {
			b.Alive = false
		}
	}
	w.spawnExplosion(p.X, p.Y)
	return true, p.TakeHit()
}

// resolvePickups consumes every pickup overlapping the player
func (w *World) resolvePickups() {
	pr := w.Player.Rect()
	for _, pk := range w.Pickups {
		if pk.Alive && pk.Rect().Intersects(pr) {
			pk.Alive = false
			w.Player.ApplyPickup(pk.Kind, w.clock)
		}
	}
}

// safeZoneReached reports whether the player's top edge has crossed the
// safe-zone line once the zone is open
func (w *World) safeZoneReached() bool {
	return w.timeline.SafeZoneReady() && w.Player.Rect().Top() <= w.cfg.Spawn.SafeZoneY
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

package main

import "math/rand"

// RollDrop decides whether a destroyed enemy leaves a pickup, and which. The
// chance is rolled first; the kind is then drawn from the weighted table.
func RollDrop(rng *rand.Rand, cfg DropConfig) (PickupKind, bool) {
	if cfg.Chance <= 0 || rng.Float64() >= cfg.Chance {
		return "", false
	}
	return pickWeighted(rng, cfg.Weights)
}

func pickWeighted(rng *rand.Rand, table []DropWeight) (PickupKind, bool) {
	total := 0
	for _, w := range table {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	if total <= 0 {
		return "", false
	}
	n := rng.Intn(total)
	for _, w := range table {
		if w.Weight <= 0 {
			continue
		}
		if n < w.Weight {
			return w.Kind, true
		}
		n -= w.Weight
	}
	return "", false
}

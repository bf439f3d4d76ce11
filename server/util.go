package main

import (
	"crypto/rand"
	"encoding/hex"
	"math"
	mrand "math/rand"
	"time"

	"github.com/google/uuid"
)

// GenerateID returns a random hex string of the given byte length
func GenerateID(byteLen int) string {
	b := make([]byte, byteLen)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// GenerateUUID returns a random (v4) UUID string used for run IDs
func GenerateUUID() string {
	return uuid.NewString()
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Distance returns the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

func floorDiv(a, b float64) float64 {
	return math.Floor(a / b)
}

// randDuration draws uniformly from [min, max]
func randDuration(rng *mrand.Rand, min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rng.Int63n(int64(max-min)+1))
}

// NewRand returns a pseudo-random source seeded from the wall clock
func NewRand() *mrand.Rand {
	return mrand.New(mrand.NewSource(time.Now().UnixNano()))
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

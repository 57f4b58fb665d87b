// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathx

const (
	randMultiplier = 0x5DEECE66D
	randAddend     = 0xB
	randMask       = (1 << 48) - 1
)

// Rand is a 48-bit linear congruential generator (multiplier 0x5DEECE66D,
// increment 11). Unlike math/rand its sequence is fixed forever, so seeds
// produce the same fields across Go releases.
// The zero value is seeded with 0.
type Rand struct {
	state uint64
}

// NewRand returns a Rand seeded with seed.
func NewRand(seed int64) *Rand {
	r := new(Rand)
	r.Seed(seed)
	return r
}

// Seed resets the generator.
func (r *Rand) Seed(seed int64) {
	r.state = (uint64(seed) ^ randMultiplier) & randMask
}

func (r *Rand) next(bits uint) int32 {
	r.state = (r.state*randMultiplier + randAddend) & randMask
	return int32(r.state >> (48 - bits))
}

// Int63 returns a non-negative pseudo-random int64.
func (r *Rand) Int63() int64 {
	return (int64(r.next(32))<<32 + int64(r.next(32))) & (1<<63 - 1)
}

// Intn returns a pseudo-random int in [0,n). n must be positive.
func (r *Rand) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

// Bool returns a pseudo-random bool.
func (r *Rand) Bool() bool {
	return r.next(1) != 0
}

// Float64 returns a pseudo-random float64 in [0,1).
func (r *Rand) Float64() float64 {
	return float64(int64(r.next(26))<<27+int64(r.next(27))) / (1 << 53)
}

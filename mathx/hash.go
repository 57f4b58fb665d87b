// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathx

import "math"

// Hash returns a pseudo-random value in [0,1) for a seed and coordinates.
// It is a pure function: the same inputs always give the same output,
// regardless of call order or goroutine. Every generator draws its randomness
// from Hash.
func Hash(seed int64, coords ...float64) float64 {
	var r Rand
	r.Seed(seed)

	// Per-dimension multipliers in [31,58) decorrelate the axes.
	var acc float64
	for _, c := range coords {
		acc += c
		acc *= 27*r.Float64() + 31
	}

	n := foldInt32(acc)
	n = (n << 13) ^ n
	m := (n*(n*n*15731+789221) + 1376312589) & 0x7fffffff
	return float64(m) / (1 << 31)
}

// HashSeed derives a non-negative child seed from a seed and coordinates.
// Hash alone only lets the seed perturb its axis multipliers, so the first
// output of a Rand seeded with seed is mixed in to keep every seed bit.
func HashSeed(seed int64, coords ...float64) int64 {
	return NewRand(seed).Int63() ^ int64(Hash(seed, coords...)*(1<<62))
}

// foldInt32 truncates toward zero and keeps the low 32 bits, so large
// coordinates still vary instead of saturating.
func foldInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(uint32(int64(math.Mod(math.Trunc(f), 1<<32))))
}

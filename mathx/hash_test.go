// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathx

import (
	"math"
	"testing"
)

func TestHash_Deterministic(t *testing.T) {
	for seed := int64(-3); seed < 3; seed++ {
		first := Hash(seed, 10, 20, 30)
		for i := 0; i < 100; i++ {
			if h := Hash(seed, 10, 20, 30); h != first {
				t.Fatalf("Hash(%d, 10, 20, 30) not deterministic: %v then %v", seed, first, h)
			}
		}
	}
}

func TestHash_Range(t *testing.T) {
	for x := -200; x < 200; x++ {
		for y := -20; y < 20; y++ {
			h := Hash(99, float64(x), float64(y))
			if h < 0 || h >= 1 {
				t.Fatalf("Hash(99, %d, %d) = %v out of [0,1)", x, y, h)
			}
		}
	}
}

func TestHash_DifferentInputs(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
	}{
		{"x", Hash(42, 1, 0), Hash(42, 2, 0)},
		{"y", Hash(42, 0, 1), Hash(42, 0, 2)},
		{"seed", Hash(100, 1, 1), Hash(200, 1, 1)},
		{"swap", Hash(42, 1, 2), Hash(42, 2, 1)},
	}

	for _, test := range tests {
		if test.a == test.b {
			t.Errorf("%s: expected different hashes, both %v", test.name, test.a)
		}
	}
}

// Sweeping one coordinate must not show a trend.
func TestHash_NoMonotonicBias(t *testing.T) {
	const n = 20000

	var sum, sumSq, cross float64
	increases := 0
	prev := Hash(7, 0, 5)
	for x := 1; x <= n; x++ {
		h := Hash(7, float64(x), 5)
		sum += h
		sumSq += h * h
		cross += h * prev
		if h > prev {
			increases++
		}
		prev = h
	}

	mean := sum / n
	if math.Abs(mean-0.5) > 0.02 {
		t.Errorf("mean %v, expected about 0.5", mean)
	}

	variance := sumSq/n - mean*mean
	if correlation := (cross/n - mean*mean) / variance; math.Abs(correlation) > 0.05 {
		t.Errorf("lag-1 correlation %v, expected about 0", correlation)
	}

	if ratio := float64(increases) / n; math.Abs(ratio-0.5) > 0.03 {
		t.Errorf("%v of steps increase, expected about half", ratio)
	}
}

func TestHashSeed(t *testing.T) {
	seen := make(map[int64]bool)
	for octave := 0; octave < 16; octave++ {
		s := HashSeed(1234, float64(octave))
		if s < 0 {
			t.Errorf("HashSeed(1234, %d) = %d, expected non-negative", octave, s)
		}
		if seen[s] {
			t.Errorf("HashSeed(1234, %d) = %d repeated", octave, s)
		}
		seen[s] = true
	}
}

func TestHashSeed_SeedsDiffer(t *testing.T) {
	const n = 10000
	for _, coord := range []float64{0, 1, 5} {
		seen := make(map[int64]int64, n)
		for seed := int64(0); seed < n; seed++ {
			s := HashSeed(seed, coord)
			if prev, ok := seen[s]; ok {
				t.Fatalf("HashSeed(%d, %v) == HashSeed(%d, %v) == %d", seed, coord, prev, coord, s)
			}
			seen[s] = seed
		}
	}
}

func TestRand_Sequence(t *testing.T) {
	a := NewRand(5)
	b := NewRand(5)
	for i := 0; i < 100; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("step %d: %v != %v", i, x, y)
		}
	}

	r := NewRand(11)
	for i := 0; i < 1000; i++ {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v out of [0,1)", f)
		}
		if n := r.Intn(7); n < 0 || n >= 7 {
			t.Fatalf("Intn(7) = %d", n)
		}
	}
}

func TestWrapClamp(t *testing.T) {
	tests := []struct {
		value, min, max, wrap, clamp int
	}{
		{0, 0, 9, 0, 0},
		{10, 0, 9, 0, 9},
		{-1, 0, 9, 9, 0},
		{-11, 0, 9, 9, 0},
		{25, 0, 9, 5, 9},
		{3, 5, 8, 7, 5},
	}

	for _, test := range tests {
		if w := Wrap(test.value, test.min, test.max); w != test.wrap {
			t.Errorf("Wrap(%d, %d, %d) = %d, expected %d", test.value, test.min, test.max, w, test.wrap)
		}
		if c := Clamp(test.value, test.min, test.max); c != test.clamp {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", test.value, test.min, test.max, c, test.clamp)
		}
	}
}

func TestFade(t *testing.T) {
	if Fade(0) != 0 || Fade(1) != 1 || Fade(0.5) != 0.5 {
		t.Errorf("Fade endpoints: %v %v %v", Fade(0), Fade(1), Fade(0.5))
	}
}

func BenchmarkHash(b *testing.B) {
	var acc float64
	for i := 0; i < b.N; i++ {
		acc += Hash(int64(i), float64(i&1023), float64(i>>10))
	}
	_ = acc
}

func TestHash_LargeCoordinates(t *testing.T) {
	seen := make(map[float64]bool)
	for i := 1000; i < 1100; i++ {
		seen[Hash(3, float64(i), 17, 1)] = true
	}
	if len(seen) < 95 {
		t.Errorf("only %d distinct hashes for 100 large coordinates", len(seen))
	}
}

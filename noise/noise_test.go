// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"errors"
	"math"
	"testing"

	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/interp"
	"github.com/SoftbearStudios/noisefield/mathx"
	"github.com/SoftbearStudios/noisefield/parallel"
)

var parallelGenerators = map[string]ParallelGenerator{
	"white":       White{},
	"value":       Value{PeriodX: 8, PeriodY: 5},
	"value-cubic": Value{PeriodX: 7, PeriodY: 7, Kernel: interp.Kernel{Kind: interp.Cubic}},
	"hermite":     Value{PeriodX: 4, PeriodY: 6, Kernel: interp.Kernel{Kind: interp.Hermite, Tension: 0.3, Bias: -0.2}},
	"gradient":    Gradient{PeriodX: 16, PeriodY: 16},
	"lookup":      Lookup{PeriodX: 8, PeriodY: 8},
	"classic":     NewClassic(32, 32),
	"simplex":     Simplex{PeriodX: 16, PeriodY: 16},
	"fractal":     Fractal{Base: Gradient{}, FineOctave: 1, BroadOctave: 5, Persistence: 0.5},
}

func TestParallelMatchesSerial(t *testing.T) {
	pool := parallel.NewPool(4)
	defer pool.Close()

	for name, g := range parallelGenerators {
		serial := field.New(61, 37)
		if err := g.Fill(serial, 42); err != nil {
			t.Errorf("%s: Fill: %v", name, err)
			continue
		}

		par := field.New(61, 37)
		if err := g.FillParallel(par, 42, pool); err != nil {
			t.Errorf("%s: FillParallel: %v", name, err)
			continue
		}

		if !serial.Equal(par) {
			t.Errorf("%s: parallel result differs from serial", name)
		}
	}
}

func TestGenerators_Deterministic(t *testing.T) {
	for name, g := range parallelGenerators {
		a := field.New(20, 20)
		b := field.New(20, 20)
		if err := g.Fill(a, 7); err != nil {
			t.Fatal(err)
		}
		if err := g.Fill(b, 7); err != nil {
			t.Fatal(err)
		}
		if !a.Equal(b) {
			t.Errorf("%s: same seed gave different fields", name)
		}

		c := field.New(20, 20)
		if err := g.Fill(c, 8); err != nil {
			t.Fatal(err)
		}
		if a.Equal(c) {
			t.Errorf("%s: different seeds gave the same field", name)
		}
	}
}

func TestGenerators_InvalidPeriod(t *testing.T) {
	tests := map[string]Generator{
		"value":    Value{PeriodX: 0, PeriodY: 4},
		"gradient": Gradient{PeriodX: 4, PeriodY: -1},
		"lookup":   Lookup{},
		"classic":  NewClassic(0, 1),
		"simplex":  Simplex{PeriodX: 1},
	}

	for name, g := range tests {
		err := g.Fill(field.New(4, 4), 1)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: got %v, expected ErrInvalidParameter", name, err)
		}
	}
}

func TestClassic_Octaves(t *testing.T) {
	c := NewClassic(8, 8)
	c.N = 2
	if err := c.Fill(field.New(4, 4), 1); err != nil {
		t.Errorf("n 2: %v", err)
	}
	for _, n := range []int{0, maxClassicOctaves + 1} {
		c.N = n
		if err := c.Fill(field.New(4, 4), 1); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("n %d: got %v, expected ErrInvalidParameter", n, err)
		}
	}
}

func TestGenerators_NilField(t *testing.T) {
	if err := (White{}).Fill(nil, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, expected ErrInvalidParameter", err)
	}
}

func TestWhite_Hash(t *testing.T) {
	f := field.New(5, 3)
	if err := (White{}).Fill(f, 99); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if got, expected := f.Get(x, y), mathx.Hash(99, float64(x), float64(y)); got != expected {
				t.Errorf("(%d, %d) = %v, expected %v", x, y, got, expected)
			}
		}
	}
}

func TestValue_LatticePoints(t *testing.T) {
	const period = 4
	for _, kind := range []interp.Kind{interp.Linear, interp.Cosine} {
		f := field.New(16, 16)
		g := Value{PeriodX: period, PeriodY: period, Kernel: interp.Kernel{Kind: kind}}
		if err := g.Fill(f, 3); err != nil {
			t.Fatal(err)
		}

		for j := 0; j < 4; j++ {
			for i := 0; i < 4; i++ {
				got := f.Get(i*period, j*period)
				expected := mathx.Hash(3, float64(i), float64(j))
				if math.Abs(got-expected) > 1e-12 {
					t.Errorf("%s: lattice (%d, %d) = %v, expected %v", kind, i, j, got, expected)
				}
			}
		}
	}
}

func TestValue_Range(t *testing.T) {
	f := field.New(32, 32)
	if err := (Value{PeriodX: 5, PeriodY: 3}).Fill(f, 11); err != nil {
		t.Fatal(err)
	}
	for _, v := range f.Values() {
		if v < 0 || v >= 1 {
			t.Fatalf("linear value noise %v outside [0,1)", v)
		}
	}
}

func TestGradient_ZeroOnLattice(t *testing.T) {
	f := field.New(32, 32)
	if err := (Gradient{PeriodX: 8, PeriodY: 8}).Fill(f, 5); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 32; y += 8 {
		for x := 0; x < 32; x += 8 {
			if v := f.Get(x, y); v != 0 {
				t.Errorf("(%d, %d) = %v, expected 0", x, y, v)
			}
		}
	}

	min, max, _ := f.MinMax()
	if min == max {
		t.Error("gradient noise is constant")
	}
}

func TestGradient_Tiles(t *testing.T) {
	// 32 is a whole number of lattice cells, so wrapping the field continues
	// the noise smoothly: the step across the seam is no larger than any step
	// inside.
	f := field.New(32, 32)
	if err := (Gradient{PeriodX: 8, PeriodY: 8}).Fill(f, 12); err != nil {
		t.Fatal(err)
	}

	var maxStep float64
	for y := 0; y < 32; y++ {
		for x := 0; x < 31; x++ {
			maxStep = math.Max(maxStep, math.Abs(f.Get(x+1, y)-f.Get(x, y)))
		}
	}
	for y := 0; y < 32; y++ {
		if step := math.Abs(f.Get(0, y) - f.Get(31, y)); step > maxStep*1.5 {
			t.Errorf("row %d: seam step %v, largest inner step %v", y, step, maxStep)
		}
	}
}

func TestLookup_ZeroOnLattice(t *testing.T) {
	f := field.New(16, 16)
	if err := (Lookup{PeriodX: 4, PeriodY: 4}).Fill(f, 5); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 16; y += 4 {
		for x := 0; x < 16; x += 4 {
			if v := f.Get(x, y); v != 0 {
				t.Errorf("(%d, %d) = %v, expected 0", x, y, v)
			}
		}
	}
}

func TestFillWith(t *testing.T) {
	pool := parallel.NewPool(2)
	defer pool.Close()

	a := field.New(16, 16)
	if err := FillWith(Gradient{PeriodX: 4, PeriodY: 4}, a, 1, pool); err != nil {
		t.Fatal(err)
	}
	b := field.New(16, 16)
	if err := FillWith(Gradient{PeriodX: 4, PeriodY: 4}, b, 1, nil); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("FillWith with and without pool differ")
	}

	// Midpoint is not parallel and must still work with a pool.
	c := field.New(8, 8)
	if err := FillWith(Midpoint{Amplitude: 1, Persistence: 0.5}, c, 1, pool); err != nil {
		t.Error(err)
	}
}

func TestOffsetBounds(t *testing.T) {
	// Generators address the field relative to its origin.
	a := field.New(10, 10)
	b := field.NewBounds(-5, 100, 4, 109)
	g := Value{PeriodX: 3, PeriodY: 3}
	if err := g.Fill(a, 2); err != nil {
		t.Fatal(err)
	}
	if err := g.Fill(b, 2); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if a.GetRelative(x, y) != b.GetRelative(x, y) {
				t.Fatalf("(%d, %d) differs", x, y)
			}
		}
	}
}

func BenchmarkGradient(b *testing.B) {
	f := field.New(512, 512)
	g := Gradient{PeriodX: 32, PeriodY: 32}
	for i := 0; i < b.N; i++ {
		_ = g.Fill(f, int64(i))
	}
}

func BenchmarkGradientParallel(b *testing.B) {
	pool := parallel.NewPool(0)
	defer pool.Close()

	f := field.New(512, 512)
	g := Gradient{PeriodX: 32, PeriodY: 32}
	for i := 0; i < b.N; i++ {
		_ = g.FillParallel(f, int64(i), pool)
	}
}

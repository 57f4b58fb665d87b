// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package field

import (
	"math"
	"testing"
)

func TestField_SetGet(t *testing.T) {
	f := New(4, 3)
	f.Amplitude = 2
	f.Offset = 0.5

	f.Set(1, 2, 3)
	if v := f.Get(1, 2); v != 3*2+0.5 {
		t.Errorf("Get(1, 2) = %v, expected %v", v, 3*2+0.5)
	}
}

func TestField_Wrap(t *testing.T) {
	f := New(5, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			f.Set(x, y, float64(x*10+y))
		}
	}

	for y := -4; y < 8; y++ {
		for x := -5; x < 10; x++ {
			if f.Get(x+f.Width(), y) != f.Get(x, y) {
				t.Errorf("Get(%d+width, %d) != Get(%d, %d)", x, y, x, y)
			}
			if f.Get(x, y+f.Height()) != f.Get(x, y) {
				t.Errorf("Get(%d, %d+height) != Get(%d, %d)", x, y, x, y)
			}
		}
	}

	if v := f.Get(-1, 0); v != 40 {
		t.Errorf("Get(-1, 0) = %v, expected 40", v)
	}
}

func TestField_Clamp(t *testing.T) {
	f := New(5, 4)
	f.WrapX = false
	f.WrapY = false
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			f.Set(x, y, float64(x*10+y))
		}
	}

	for y := 0; y < 4; y++ {
		if f.Get(-1, y) != f.Get(0, y) {
			t.Errorf("Get(-1, %d) = %v, expected %v", y, f.Get(-1, y), f.Get(0, y))
		}
		if f.Get(100, y) != f.Get(4, y) {
			t.Errorf("Get(100, %d) = %v, expected %v", y, f.Get(100, y), f.Get(4, y))
		}
	}
	if f.Get(-3, -3) != f.Get(0, 0) {
		t.Error("corner clamp failed")
	}
}

func TestField_Relative(t *testing.T) {
	f := NewBounds(10, 20, 13, 22)
	if f.Width() != 4 || f.Height() != 3 {
		t.Fatalf("size %dx%d, expected 4x3", f.Width(), f.Height())
	}

	f.SetRelative(1, 1, 7)
	if v := f.Get(11, 21); v != 7 {
		t.Errorf("Get(11, 21) = %v, expected 7", v)
	}
	if v := f.GetRelative(1, 1); v != 7 {
		t.Errorf("GetRelative(1, 1) = %v, expected 7", v)
	}
}

func TestField_Normalize(t *testing.T) {
	f := New(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			f.Set(x, y, math.Sin(float64(x*y))*5-3)
		}
	}

	if !f.Normalize() {
		t.Fatal("Normalize() = false on a varying field")
	}

	min, max, ok := f.MinMax()
	if !ok || math.Abs(min) > 1e-12 || math.Abs(max-1) > 1e-12 {
		t.Errorf("after Normalize min = %v, max = %v", min, max)
	}
}

func TestField_NormalizeConstant(t *testing.T) {
	f := New(6, 3)
	f.Fill(42)

	if f.Normalize() {
		t.Error("Normalize() = true on a constant field")
	}
	for i, v := range f.Values() {
		if v != 0 {
			t.Fatalf("value %d = %v, expected 0", i, v)
		}
	}
}

func TestField_NormalizeNonFinite(t *testing.T) {
	f := New(3, 1)
	f.Set(0, 0, 2)
	f.Set(1, 0, math.Inf(1))
	f.Set(2, 0, 4)

	f.Normalize()
	expected := []float64{0, 0, 1}
	for i, v := range f.Values() {
		if v != expected[i] {
			t.Errorf("value %d = %v, expected %v", i, v, expected[i])
		}
	}
}

func TestField_Resize(t *testing.T) {
	f := New(4, 4)
	f.Fill(1)

	f.Resize(2, 3)
	if f.Width() != 2 || f.Height() != 3 || len(f.Values()) != 6 {
		t.Fatalf("Resize(2, 3) gave %dx%d with %d values", f.Width(), f.Height(), len(f.Values()))
	}
	for _, v := range f.Values() {
		if v != 0 {
			t.Fatal("Resize did not zero contents")
		}
	}

	f.Resize(10, 10)
	if len(f.Values()) != 100 {
		t.Errorf("Resize(10, 10) gave %d values", len(f.Values()))
	}
}

func TestField_CloneEqual(t *testing.T) {
	f := New(3, 3)
	f.Set(1, 1, 5)

	c := f.Clone()
	if !c.Equal(f) {
		t.Error("clone not equal")
	}
	c.Set(0, 0, 1)
	if c.Equal(f) {
		t.Error("clone shares storage")
	}
}

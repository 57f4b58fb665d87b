// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"errors"
	"math"
	"testing"

	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/mathx"
)

func TestMidpoint_ZeroPersistence(t *testing.T) {
	for _, size := range []int{8, 16} {
		f := field.New(size, size)
		m := Midpoint{Amplitude: 0.8, Persistence: 0}
		if err := m.Fill(f, 31); err != nil {
			t.Fatal(err)
		}

		corner := 0.5 + (mathx.Hash(31, 0, 0)-0.5)*2*0.8
		for i, v := range f.Values() {
			if v != corner {
				t.Fatalf("%dx%d: sample %d = %v, expected corner value %v", size, size, i, v, corner)
			}
		}
	}
}

func TestMidpoint_Deterministic(t *testing.T) {
	a := field.New(32, 32)
	b := field.New(32, 32)
	m := Midpoint{Amplitude: 1, Persistence: 0.6}
	if err := m.Fill(a, 4); err != nil {
		t.Fatal(err)
	}
	if err := m.Fill(b, 4); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("same seed gave different fields")
	}

	min, max, _ := a.MinMax()
	if min == max {
		t.Error("midpoint displacement is constant")
	}
}

func TestMidpoint_Seeded(t *testing.T) {
	f := field.New(16, 16)
	f.Fill(Unset())
	f.Set(8, 8, 0.25)
	f.Set(3, 12, 0.75)
	f.Set(0, 0, 0.5)

	m := Midpoint{Amplitude: 1, Persistence: 0.5, Seeded: true}
	if err := m.Fill(f, 2); err != nil {
		t.Fatal(err)
	}

	if f.Get(8, 8) != 0.25 || f.Get(3, 12) != 0.75 || f.Get(0, 0) != 0.5 {
		t.Errorf("constraints overwritten: %v %v %v", f.Get(8, 8), f.Get(3, 12), f.Get(0, 0))
	}
	for i, v := range f.Values() {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("sample %d left unset: %v", i, v)
		}
	}
}

func TestMidpoint_Invalid(t *testing.T) {
	tests := []Midpoint{
		{Amplitude: -1, Persistence: 0.5},
		{Amplitude: math.NaN(), Persistence: 0.5},
		{Amplitude: 1, Persistence: 3},
		{Amplitude: 1, Persistence: -0.1},
	}
	for _, m := range tests {
		if err := m.Fill(field.New(4, 4), 1); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%+v: got %v, expected ErrInvalidParameter", m, err)
		}
	}
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"math"

	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/mathx"
)

// Midpoint is diamond-square midpoint displacement. It works on the
// smallest power of two square covering the field and relies on the field's
// wrapping for the parts that stick out.
//
// In Seeded mode, cells that do not hold Unset are treated as constraints
// and never overwritten; fill the field with Unset first and set the
// constraints.
type Midpoint struct {
	// Amplitude of the first displacement.
	Amplitude float64
	// Persistence scales the displacement at each finer level.
	Persistence float64
	Seeded      bool
}

func (m Midpoint) validate() error {
	if math.IsNaN(m.Amplitude) || math.IsInf(m.Amplitude, 0) || m.Amplitude < 0 {
		return Invalid("amplitude %v", m.Amplitude)
	}
	if math.IsNaN(m.Persistence) || m.Persistence < 0 || m.Persistence > 2 {
		return Invalid("persistence %v outside [0,2]", m.Persistence)
	}
	return nil
}

func (m Midpoint) Fill(f *field.Field, seed int64) error {
	if err := validateField(f); err != nil {
		return err
	}
	if err := m.validate(); err != nil {
		return err
	}

	if !m.Seeded || IsUnset(f.GetRelative(0, 0)) {
		f.SetRelative(0, 0, 0.5+(mathx.Hash(seed, 0, 0)-0.5)*2*m.Amplitude)
	}

	size := 2
	for size < f.Width() || size < f.Height() {
		size *= 2
	}

	amplitude := m.Amplitude * m.Persistence
	for half := size / 2; half > 0; half /= 2 {
		for x := half; x < size; x += half * 2 {
			for y := half; y < size; y += half * 2 {
				m.square(f, seed, x, y, half, amplitude)
			}
		}
		for x := half; x < size; x += half * 2 {
			for y := half; y < size; y += half * 2 {
				m.diamond(f, seed, x-half, y, half, amplitude)
				m.diamond(f, seed, x, y-half, half, amplitude)
			}
		}
		amplitude *= m.Persistence
	}
	return nil
}

func (m Midpoint) displace(f *field.Field, seed int64, x, y int, average, amplitude float64) {
	if m.Seeded && !IsUnset(f.GetRelative(x, y)) {
		return
	}
	if amplitude != 0 {
		average += (mathx.Hash(seed, float64(x), float64(y)) - 0.5) * 2 * amplitude
	}
	f.SetRelative(x, y, average)
}

// square sets the center of a square from its corners.
func (m Midpoint) square(f *field.Field, seed int64, x, y, half int, amplitude float64) {
	average := (f.GetRelative(x-half, y-half) +
		f.GetRelative(x+half, y-half) +
		f.GetRelative(x-half, y+half) +
		f.GetRelative(x+half, y+half)) / 4
	m.displace(f, seed, x, y, average, amplitude)
}

// diamond sets an edge midpoint from its four neighbours.
func (m Midpoint) diamond(f *field.Field, seed int64, x, y, half int, amplitude float64) {
	average := (f.GetRelative(x-half, y) +
		f.GetRelative(x+half, y) +
		f.GetRelative(x, y-half) +
		f.GetRelative(x, y+half)) / 4
	m.displace(f, seed, x, y, average, amplitude)
}

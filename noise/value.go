// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/interp"
	"github.com/SoftbearStudios/noisefield/mathx"
	"github.com/SoftbearStudios/noisefield/parallel"
)

// Value interpolates a lattice of hashed values spaced PeriodX by PeriodY
// samples apart. The lattice wraps, so the output tiles.
type Value struct {
	PeriodX int
	PeriodY int
	Kernel  interp.Kernel
}

func (v Value) Fill(f *field.Field, seed int64) error {
	return v.fill(f, seed, nil)
}

func (v Value) FillParallel(f *field.Field, seed int64, pool *parallel.Pool) error {
	return v.fill(f, seed, pool)
}

func (v Value) Octave(octave int) Generator {
	v.PeriodX = OctavePeriod(octave)
	v.PeriodY = v.PeriodX
	return v
}

// lattice hashes one value per lattice point into a wrapping field.
func (v Value) lattice(f *field.Field, seed int64) *field.Field {
	lattice := field.New(mathx.CeilDiv(f.Width(), v.PeriodX), mathx.CeilDiv(f.Height(), v.PeriodY))
	for j := 0; j < lattice.Height(); j++ {
		for i := 0; i < lattice.Width(); i++ {
			lattice.Set(i, j, mathx.Hash(seed, float64(i), float64(j)))
		}
	}
	return lattice
}

func (v Value) fill(f *field.Field, seed int64, pool *parallel.Pool) error {
	if err := validateField(f); err != nil {
		return err
	}
	if err := validatePeriod(v.PeriodX, v.PeriodY); err != nil {
		return err
	}

	lattice := v.lattice(f, seed)
	kernel := v.Kernel
	px, py := v.PeriodX, v.PeriodY
	height := f.Height()

	if kernel.Taps() == 2 {
		Columns(f, pool, func(x int) {
			i := x / px
			blendX := float64(x%px) / float64(px)

			for y := 0; y < height; y++ {
				j := y / py
				blendY := float64(y%py) / float64(py)

				bottom := kernel.Interpolate2(lattice.Get(i, j), lattice.Get(i, j+1), blendY)
				top := kernel.Interpolate2(lattice.Get(i+1, j), lattice.Get(i+1, j+1), blendY)
				f.SetRelative(x, y, kernel.Interpolate2(bottom, top, blendX))
			}
		})
		return nil
	}

	Columns(f, pool, func(x int) {
		i := x / px
		blendX := float64(x%px) / float64(px)

		var columns [4]float64
		for y := 0; y < height; y++ {
			j := y / py
			blendY := float64(y%py) / float64(py)

			for c := range columns {
				ci := i + c - 1
				columns[c] = kernel.Interpolate4(
					lattice.Get(ci, j-1),
					lattice.Get(ci, j),
					lattice.Get(ci, j+1),
					lattice.Get(ci, j+2),
					blendY,
				)
			}
			f.SetRelative(x, y, kernel.Interpolate4(columns[0], columns[1], columns[2], columns[3], blendX))
		}
	})
	return nil
}

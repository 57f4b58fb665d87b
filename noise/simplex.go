// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/parallel"
	"github.com/ojrac/opensimplex-go"
)

// Simplex samples OpenSimplex noise at (x/PeriodX, y/PeriodY), in [-1,1].
// It does not tile.
type Simplex struct {
	PeriodX int
	PeriodY int
}

func (s Simplex) Fill(f *field.Field, seed int64) error {
	return s.fill(f, seed, nil)
}

func (s Simplex) FillParallel(f *field.Field, seed int64, pool *parallel.Pool) error {
	return s.fill(f, seed, pool)
}

func (s Simplex) Octave(octave int) Generator {
	s.PeriodX = OctavePeriod(octave)
	s.PeriodY = s.PeriodX
	return s
}

func (s Simplex) fill(f *field.Field, seed int64, pool *parallel.Pool) error {
	if err := validateField(f); err != nil {
		return err
	}
	if err := validatePeriod(s.PeriodX, s.PeriodY); err != nil {
		return err
	}

	n := opensimplex.New(seed)
	scaleX := 1 / float64(s.PeriodX)
	scaleY := 1 / float64(s.PeriodY)
	height := f.Height()

	Columns(f, pool, func(x int) {
		for y := 0; y < height; y++ {
			f.SetRelative(x, y, n.Eval2(float64(x)*scaleX, float64(y)*scaleY))
		}
	})
	return nil
}

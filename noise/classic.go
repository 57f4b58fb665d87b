// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/parallel"
	"github.com/aquilax/go-perlin"
)

// Classic samples github.com/aquilax/go-perlin at (x/PeriodX, y/PeriodY).
// Alpha is the weight divisor and Beta the frequency multiplier between the
// library's own N octaves. It does not tile.
type Classic struct {
	Alpha   float64
	Beta    float64
	N       int
	PeriodX int
	PeriodY int
}

// maxClassicOctaves bounds N, which is summed for every sample.
const maxClassicOctaves = 16

// NewClassic returns Classic with the usual coastline parameters.
func NewClassic(periodX, periodY int) Classic {
	return Classic{Alpha: 1.5, Beta: 2, N: 4, PeriodX: periodX, PeriodY: periodY}
}

func (c Classic) Fill(f *field.Field, seed int64) error {
	return c.fill(f, seed, nil)
}

func (c Classic) FillParallel(f *field.Field, seed int64, pool *parallel.Pool) error {
	return c.fill(f, seed, pool)
}

func (c Classic) Octave(octave int) Generator {
	c.PeriodX = OctavePeriod(octave)
	c.PeriodY = c.PeriodX
	return c
}

func (c Classic) fill(f *field.Field, seed int64, pool *parallel.Pool) error {
	if err := validateField(f); err != nil {
		return err
	}
	if err := validatePeriod(c.PeriodX, c.PeriodY); err != nil {
		return err
	}
	if c.N < 1 || c.N > maxClassicOctaves || c.Alpha == 0 {
		return Invalid("perlin alpha %v, n %d", c.Alpha, c.N)
	}

	// Read only after construction, so workers can share it.
	p := perlin.NewPerlin(c.Alpha, c.Beta, c.N, seed)
	scaleX := 1 / float64(c.PeriodX)
	scaleY := 1 / float64(c.PeriodY)
	height := f.Height()

	Columns(f, pool, func(x int) {
		for y := 0; y < height; y++ {
			f.SetRelative(x, y, p.Noise2D(float64(x)*scaleX, float64(y)*scaleY))
		}
	})
	return nil
}

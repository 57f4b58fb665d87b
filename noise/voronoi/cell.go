// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package voronoi

import (
	"math"

	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/mathx"
	"github.com/SoftbearStudios/noisefield/noise"
	"github.com/SoftbearStudios/noisefield/parallel"
)

// Cell is Voronoi noise with one hashed point in every PeriodX by PeriodY
// cell. The cells wrap, so the output tiles. Distances are measured in cell
// units and the result is normalized.
type Cell struct {
	PeriodX  int
	PeriodY  int
	Distance DistanceFunction
	Combine  CombineFunction
}

func (c Cell) Fill(f *field.Field, seed int64) error {
	return c.fill(f, seed, nil)
}

func (c Cell) FillParallel(f *field.Field, seed int64, pool *parallel.Pool) error {
	return c.fill(f, seed, pool)
}

func (c Cell) Octave(octave int) noise.Generator {
	c.PeriodX = noise.OctavePeriod(octave)
	c.PeriodY = c.PeriodX
	return c
}

func (c Cell) validate() error {
	if c.PeriodX < 1 || c.PeriodY < 1 {
		return noise.Invalid("period %dx%d", c.PeriodX, c.PeriodY)
	}
	if err := c.Distance.validate(); err != nil {
		return err
	}
	return c.Combine.validate()
}

// reach is how many cells around its own a sample must look at.
func (c Cell) reach() int {
	if c.Distance == Minkowski || c.Combine.Count() > 2 {
		return 2
	}
	return 1
}

func (c Cell) fill(f *field.Field, seed int64, pool *parallel.Pool) error {
	if f == nil || f.Width() < 1 || f.Height() < 1 {
		return noise.Invalid("empty field")
	}
	if err := c.validate(); err != nil {
		return err
	}

	width := mathx.CeilDiv(f.Width(), c.PeriodX)
	height := mathx.CeilDiv(f.Height(), c.PeriodY)
	pointsX := field.New(width, height)
	pointsY := field.New(width, height)
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			pointsX.Set(i, j, mathx.Hash(seed, float64(i), float64(j), 0))
			pointsY.Set(i, j, mathx.Hash(seed, float64(i), float64(j), 1))
		}
	}

	px, py := c.PeriodX, c.PeriodY
	count := c.Combine.Count()
	reach := c.reach()
	fieldHeight := f.Height()

	noise.Columns(f, pool, func(x int) {
		cellX := x / px
		fracX := float64(x%px) / float64(px)

		var buf [MaxCount]float64
		best := buf[:count]
		for y := 0; y < fieldHeight; y++ {
			cellY := y / py
			fracY := float64(y%py) / float64(py)

			for i := range best {
				best[i] = math.Inf(1)
			}
			for i := -reach; i <= reach; i++ {
				for j := -reach; j <= reach; j++ {
					pointX := pointsX.Get(cellX+i, cellY+j) + float64(i)
					pointY := pointsY.Get(cellX+i, cellY+j) + float64(j)
					insert(best, c.Distance.Distance(fracX, fracY, pointX, pointY))
				}
			}
			for i, d := range best {
				best[i] = c.Distance.final(d)
			}
			f.SetRelative(x, y, c.Combine.Combine(best))
		}
	})

	f.Normalize()
	return nil
}

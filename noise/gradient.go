// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"math"

	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/mathx"
	"github.com/SoftbearStudios/noisefield/parallel"
)

// Gradient is Perlin noise: a lattice of hashed unit gradients spaced
// PeriodX by PeriodY samples apart, blended with the quintic fade.
// The lattice wraps, so the output tiles.
// Output is roughly in [-0.7,0.7] and 0 on lattice points.
type Gradient struct {
	PeriodX int
	PeriodY int
}

func (g Gradient) Fill(f *field.Field, seed int64) error {
	return g.fill(f, seed, nil)
}

func (g Gradient) FillParallel(f *field.Field, seed int64, pool *parallel.Pool) error {
	return g.fill(f, seed, pool)
}

func (g Gradient) Octave(octave int) Generator {
	g.PeriodX = OctavePeriod(octave)
	g.PeriodY = g.PeriodX
	return g
}

type vec2 struct {
	x, y float64
}

func (v vec2) dot(x, y float64) float64 {
	return v.x*x + v.y*y
}

type gradientLattice struct {
	width, height int
	gradients     []vec2
}

func newGradientLattice(width, height int, seed int64) *gradientLattice {
	l := &gradientLattice{
		width:     width,
		height:    height,
		gradients: make([]vec2, width*height),
	}
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			angle := mathx.Hash(seed, float64(i), float64(j)) * 2 * math.Pi
			l.gradients[j*width+i] = vec2{x: math.Cos(angle), y: math.Sin(angle)}
		}
	}
	return l
}

func (l *gradientLattice) at(i, j int) vec2 {
	i = mathx.Wrap(i, 0, l.width-1)
	j = mathx.Wrap(j, 0, l.height-1)
	return l.gradients[j*l.width+i]
}

func (g Gradient) fill(f *field.Field, seed int64, pool *parallel.Pool) error {
	if err := validateField(f); err != nil {
		return err
	}
	if err := validatePeriod(g.PeriodX, g.PeriodY); err != nil {
		return err
	}

	px, py := g.PeriodX, g.PeriodY
	lattice := newGradientLattice(mathx.CeilDiv(f.Width(), px), mathx.CeilDiv(f.Height(), py), seed)
	height := f.Height()

	Columns(f, pool, func(x int) {
		i := x / px
		fracX := float64(x%px) / float64(px)
		u := mathx.Fade(fracX)

		for y := 0; y < height; y++ {
			j := y / py
			fracY := float64(y%py) / float64(py)

			d00 := lattice.at(i, j).dot(fracX, fracY)
			d10 := lattice.at(i+1, j).dot(fracX-1, fracY)
			d01 := lattice.at(i, j+1).dot(fracX, fracY-1)
			d11 := lattice.at(i+1, j+1).dot(fracX-1, fracY-1)

			v := mathx.Fade(fracY)
			f.SetRelative(x, y, mathx.Lerp(mathx.Lerp(d00, d10, u), mathx.Lerp(d01, d11, u), v))
		}
	})
	return nil
}

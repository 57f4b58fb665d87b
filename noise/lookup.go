// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"math"

	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/mathx"
	"github.com/SoftbearStudios/noisefield/parallel"
)

const (
	permutationSize = 64
	permutationMask = permutationSize - 1
	lookupGradients = 16
)

// gradientTable holds lookupGradients unit vectors evenly spaced around the
// circle.
var gradientTable = func() (table [lookupGradients]vec2) {
	for i := range table {
		theta := float64(i) * 2 * math.Pi / lookupGradients
		table[i] = vec2{x: math.Cos(theta), y: math.Sin(theta)}
	}
	return
}()

// Lookup is Perlin noise that picks gradients from a fixed table through a
// seeded permutation instead of hashing every lattice point. It tiles when
// the lattice size divides 64.
type Lookup struct {
	PeriodX int
	PeriodY int
}

func (l Lookup) Fill(f *field.Field, seed int64) error {
	return l.fill(f, seed, nil)
}

func (l Lookup) FillParallel(f *field.Field, seed int64, pool *parallel.Pool) error {
	return l.fill(f, seed, pool)
}

func (l Lookup) Octave(octave int) Generator {
	l.PeriodX = OctavePeriod(octave)
	l.PeriodY = l.PeriodX
	return l
}

type permutation [permutationSize]int

func newPermutation(seed int64) *permutation {
	var p permutation
	for i := range p {
		p[i] = i
	}
	for i := range p {
		j := int(mathx.Hash(seed, float64(i)) * permutationSize)
		p[i], p[j] = p[j], p[i]
	}
	return &p
}

func (p *permutation) gradient(i, j int) vec2 {
	return gradientTable[p[(i+p[j&permutationMask])&permutationMask]&(lookupGradients-1)]
}

func (l Lookup) fill(f *field.Field, seed int64, pool *parallel.Pool) error {
	if err := validateField(f); err != nil {
		return err
	}
	if err := validatePeriod(l.PeriodX, l.PeriodY); err != nil {
		return err
	}

	px, py := l.PeriodX, l.PeriodY
	perm := newPermutation(seed)
	height := f.Height()

	Columns(f, pool, func(x int) {
		i := x / px
		fracX := float64(x%px) / float64(px)
		u := mathx.Fade(fracX)

		for y := 0; y < height; y++ {
			j := y / py
			fracY := float64(y%py) / float64(py)

			d00 := perm.gradient(i, j).dot(fracX, fracY)
			d10 := perm.gradient(i+1, j).dot(fracX-1, fracY)
			d01 := perm.gradient(i, j+1).dot(fracX, fracY-1)
			d11 := perm.gradient(i+1, j+1).dot(fracX-1, fracY-1)

			v := mathx.Fade(fracY)
			f.SetRelative(x, y, mathx.Lerp(mathx.Lerp(d00, d10, u), mathx.Lerp(d01, d11, u), v))
		}
	})
	return nil
}

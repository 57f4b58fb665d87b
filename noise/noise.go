// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package noise fills fields with deterministic procedural noise.
//
// Every generator is a value type holding its shape parameters. Fill writes
// the whole field, addressed relative to its origin, and gives the same
// result for the same seed, parameters and field size. Generators that
// implement ParallelGenerator give bit-identical results on a pool.
package noise

import (
	"fmt"
	"math"

	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/interp"
	"github.com/SoftbearStudios/noisefield/parallel"
)

// ErrInvalidParameter is wrapped by every parameter validation error. It is
// the same value as interp.ErrInvalidParameter.
var ErrInvalidParameter = interp.ErrInvalidParameter

// Unset returns the value marking cells that Midpoint should fill in seeded
// mode.
func Unset() float64 {
	return math.Inf(1)
}

// IsUnset reports whether v marks a cell for Midpoint to fill.
func IsUnset(v float64) bool {
	return math.IsInf(v, 1)
}

// Generator fills a field.
type Generator interface {
	Fill(f *field.Field, seed int64) error
}

// ParallelGenerator can split a fill into columns across a pool.
// FillParallel must not be called from a task running on the same pool.
type ParallelGenerator interface {
	Generator
	FillParallel(f *field.Field, seed int64, pool *parallel.Pool) error
}

// OctaveGenerator can produce itself at lattice period 2^octave, which is
// what Fractal needs from a base generator.
type OctaveGenerator interface {
	Generator
	Octave(octave int) Generator
}

// MaxOctave is the largest octave whose period fits in an int on every
// platform.
const MaxOctave = 30

// Invalid returns an error wrapping ErrInvalidParameter.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func validatePeriod(periodX, periodY int) error {
	if periodX < 1 {
		return Invalid("periodX %d < 1", periodX)
	}
	if periodY < 1 {
		return Invalid("periodY %d < 1", periodY)
	}
	return nil
}

func validateField(f *field.Field) error {
	if f == nil {
		return Invalid("nil field")
	}
	if f.Width() < 1 || f.Height() < 1 {
		return Invalid("field size %dx%d", f.Width(), f.Height())
	}
	return nil
}

// Columns calls column for every relative x of f. With a pool, columns are
// claimed one at a time by the workers and Columns returns once all of them
// are done. Columns must write only their own column.
func Columns(f *field.Field, pool *parallel.Pool, column func(x int)) {
	width := f.Width()
	if pool == nil {
		for x := 0; x < width; x++ {
			column(x)
		}
		return
	}

	pool.AddGlobalTask(parallel.NewRangeTask(0, width-1, column))
	pool.StartAndWait()
}

// FillWith uses pool when g supports it and falls back to Fill otherwise.
func FillWith(g Generator, f *field.Field, seed int64, pool *parallel.Pool) error {
	if pg, ok := g.(ParallelGenerator); ok && pool != nil {
		return pg.FillParallel(f, seed, pool)
	}
	return g.Fill(f, seed)
}

// OctavePeriod returns 2^octave, or 0 for an octave outside [0,MaxOctave].
func OctavePeriod(octave int) int {
	if octave < 0 || octave > MaxOctave {
		// Rejected by validatePeriod.
		return 0
	}
	return 1 << octave
}

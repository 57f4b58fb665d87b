// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"math"

	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/logger"
	"github.com/SoftbearStudios/noisefield/mathx"
	"github.com/SoftbearStudios/noisefield/parallel"
)

// Fractal sums Base at every octave from BroadOctave down to FineOctave.
// Each octave is weighted by Persistence times the weight of the octave
// above it, starting at 1, and the sum is divided by the total weight.
type Fractal struct {
	Base        OctaveGenerator
	FineOctave  int
	BroadOctave int
	Persistence float64
}

// OctaveSeed derives the seed Fractal passes to Base at an octave.
func OctaveSeed(seed int64, octave int) int64 {
	return mathx.HashSeed(seed, float64(octave))
}

func (fr Fractal) Validate() error {
	if fr.Base == nil {
		return Invalid("nil fractal base")
	}
	if fr.FineOctave < 0 || fr.BroadOctave > MaxOctave {
		return Invalid("octaves [%d,%d] outside [0,%d]", fr.FineOctave, fr.BroadOctave, MaxOctave)
	}
	if fr.FineOctave > fr.BroadOctave {
		return Invalid("fine octave %d > broad octave %d", fr.FineOctave, fr.BroadOctave)
	}
	if math.IsNaN(fr.Persistence) || fr.Persistence < 0 || fr.Persistence > 2 {
		return Invalid("persistence %v outside [0,2]", fr.Persistence)
	}
	return nil
}

func (fr Fractal) Fill(f *field.Field, seed int64) error {
	return fr.fill(f, seed, nil)
}

// FillParallel computes each octave as its own pool task, then combines them
// column by column.
func (fr Fractal) FillParallel(f *field.Field, seed int64, pool *parallel.Pool) error {
	return fr.fill(f, seed, pool)
}

func (fr Fractal) fill(f *field.Field, seed int64, pool *parallel.Pool) error {
	if err := validateField(f); err != nil {
		return err
	}
	if err := fr.Validate(); err != nil {
		return err
	}

	// Index 0 is the broad octave.
	count := fr.BroadOctave - fr.FineOctave + 1
	octaves := make([]*field.Field, count)
	weights := make([]float64, count)
	errs := make([]error, count)

	var total float64
	weight := 1.0
	for i := range octaves {
		octave := fr.BroadOctave - i
		o := field.New(f.Width(), f.Height())
		o.WrapX, o.WrapY = f.WrapX, f.WrapY
		octaves[i] = o

		weights[i] = weight
		total += weight
		weight *= fr.Persistence

		generator := fr.Base.Octave(octave)
		octaveSeed := OctaveSeed(seed, octave)
		i := i
		fillOctave := func() {
			errs[i] = generator.Fill(o, octaveSeed)
		}

		if pool == nil {
			fillOctave()
		} else {
			pool.AddTask(parallel.TaskFunc(fillOctave))
		}
	}

	if pool != nil {
		logger.Get().Debug("fractal octaves queued", "octaves", count, "workers", pool.Workers())
		pool.StartAndWait()
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	height := f.Height()
	Columns(f, pool, func(x int) {
		for y := 0; y < height; y++ {
			var value float64
			for i, o := range octaves {
				value += o.GetRelative(x, y) * weights[i]
			}
			f.SetRelative(x, y, value/total)
		}
	})
	return nil
}

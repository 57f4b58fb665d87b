// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package voronoi

import (
	"math"

	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/logger"
	"github.com/SoftbearStudios/noisefield/noise"
)

// Advanced is Voronoi noise over arbitrary sources. Distances spread out
// from each source's seed centers one ring of neighbours per round, and a
// sample only passes a source on to its neighbours while that source is
// among its nearest. Sources are in coordinates relative to the field origin.
//
// Fill is single threaded.
type Advanced struct {
	Distance DistanceFunction
	Combine  CombineFunction
	// Raw skips normalization.
	Raw bool
}

// location is a (sample, source) pair. Two sources at the same sample are
// different locations.
type location struct {
	cell   int32
	source int32
}

type wavefront struct {
	width, height int
	wrapX, wrapY  bool
	count         int
	distance      DistanceFunction
	sources       []Source

	best     []float64
	settled  []uint64
	words    int
	frontier []location
	next     []location
}

func newWavefront(a Advanced, f *field.Field, sources []Source) *wavefront {
	width, height := f.Width(), f.Height()
	cells := width * height
	words := (cells + 63) / 64

	w := &wavefront{
		width:    width,
		height:   height,
		wrapX:    f.WrapX,
		wrapY:    f.WrapY,
		count:    a.Combine.Count(),
		distance: a.Distance,
		sources:  sources,
		settled:  make([]uint64, words*len(sources)),
		words:    words,
	}
	w.best = make([]float64, cells*w.count)
	for i := range w.best {
		w.best[i] = math.Inf(1)
	}
	return w
}

// settle marks l and reports whether it was new.
func (w *wavefront) settle(l location) bool {
	word := int(l.source)*w.words + int(l.cell)/64
	bit := uint64(1) << (uint(l.cell) % 64)
	if w.settled[word]&bit != 0 {
		return false
	}
	w.settled[word] |= bit
	return true
}

func (w *wavefront) seed() {
	for s, source := range w.sources {
		for _, p := range source.Shape.SeedCenters(w.width, w.height) {
			l := location{cell: int32(p.Y*w.width + p.X), source: int32(s)}
			if w.settle(l) {
				w.frontier = append(w.frontier, l)
			}
		}
	}
}

// neighbour addresses (x, y) the way the field does, wrapping or clamping
// each axis.
func (w *wavefront) neighbour(x, y int) int {
	if w.wrapX {
		x = (x%w.width + w.width) % w.width
	} else if x < 0 {
		x = 0
	} else if x >= w.width {
		x = w.width - 1
	}
	if w.wrapY {
		y = (y%w.height + w.height) % w.height
	} else if y < 0 {
		y = 0
	} else if y >= w.height {
		y = w.height - 1
	}
	return y*w.width + x
}

func (w *wavefront) visit(l location) {
	cell := int(l.cell)
	x, y := cell%w.width, cell/w.width

	d := w.sources[l.source].distanceTo(float64(x), float64(y), w.distance)
	if !insert(w.best[cell*w.count:(cell+1)*w.count], d) {
		return
	}

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := location{cell: int32(w.neighbour(x+dx, y+dy)), source: l.source}
			if w.settle(n) {
				w.next = append(w.next, n)
			}
		}
	}
}

// run spreads until no location is left and returns the number of rounds.
func (w *wavefront) run() int {
	rounds := 0
	for len(w.frontier) > 0 {
		rounds++
		w.next = w.next[:0]
		for _, l := range w.frontier {
			w.visit(l)
		}
		w.frontier, w.next = w.next, w.frontier
	}
	return rounds
}

func (a Advanced) validate(f *field.Field, sources []Source) error {
	if f == nil || f.Width() < 1 || f.Height() < 1 {
		return noise.Invalid("empty field")
	}
	if err := a.Distance.validate(); err != nil {
		return err
	}
	if err := a.Combine.validate(); err != nil {
		return err
	}
	for _, s := range sources {
		if err := s.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Distances returns the Combine.Count() nearest distances of every sample,
// row major relative to the field origin, nearest first. Samples that too
// few sources reached hold +Inf.
func (a Advanced) Distances(f *field.Field, sources []Source) ([]float64, error) {
	if err := a.validate(f, sources); err != nil {
		return nil, err
	}

	w := newWavefront(a, f, sources)
	w.seed()
	rounds := w.run()
	logger.Get().Debug("voronoi wavefront done", "sources", len(sources), "rounds", rounds)

	for i, d := range w.best {
		w.best[i] = a.Distance.final(d)
	}
	return w.best, nil
}

// Fill writes the combined distances of every sample, normalized unless Raw.
func (a Advanced) Fill(f *field.Field, sources []Source) error {
	best, err := a.Distances(f, sources)
	if err != nil {
		return err
	}

	count := a.Combine.Count()
	width := f.Width()
	for cell := 0; cell*count < len(best); cell++ {
		f.SetRelative(cell%width, cell/width, a.Combine.Combine(best[cell*count:(cell+1)*count]))
	}

	if !a.Raw {
		f.Normalize()
	}
	return nil
}

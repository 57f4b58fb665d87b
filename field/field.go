// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package field provides Field, the 2D grid of float64 samples every
// generator reads and writes.
package field

import (
	"math"

	"github.com/SoftbearStudios/noisefield/mathx"
)

// Field is a 2D grid of samples with inclusive bounds.
// Out of range coordinates wrap on axes with WrapX/WrapY set and clamp to
// the nearest edge otherwise.
// Writes are transformed by Amplitude and Offset; reads are not.
//
// Concurrent Set calls are safe as long as they address different cells.
type Field struct {
	MinX, MinY int
	MaxX, MaxY int
	WrapX      bool
	WrapY      bool
	// Amplitude multiplies incoming values.
	Amplitude float64
	// Offset is added to incoming values after Amplitude.
	Offset float64

	data []float64 // row major
}

// New creates a width x height field that wraps on both axes.
func New(width, height int) *Field {
	return NewBounds(0, 0, width-1, height-1)
}

// NewBounds creates a field spanning [minX,maxX] x [minY,maxY].
func NewBounds(minX, minY, maxX, maxY int) *Field {
	f := &Field{
		WrapX:     true,
		WrapY:     true,
		Amplitude: 1,
	}
	f.SetBounds(minX, minY, maxX, maxY)
	return f
}

// SetBounds changes the bounds, growing the storage if needed.
// Contents are zeroed.
func (f *Field) SetBounds(minX, minY, maxX, maxY int) {
	f.MinX, f.MinY, f.MaxX, f.MaxY = minX, minY, maxX, maxY

	n := f.Width() * f.Height()
	if n < 0 {
		n = 0
	}
	if cap(f.data) < n {
		f.data = make([]float64, n)
		return
	}
	f.data = f.data[:n]
	for i := range f.data {
		f.data[i] = 0
	}
}

// Resize sets the bounds to [0,width-1] x [0,height-1].
func (f *Field) Resize(width, height int) {
	f.SetBounds(0, 0, width-1, height-1)
}

func (f *Field) Width() int {
	return f.MaxX - f.MinX + 1
}

func (f *Field) Height() int {
	return f.MaxY - f.MinY + 1
}

// Index returns the storage index of a coordinate after wrapping/clamping.
func (f *Field) Index(x, y int) int {
	if f.WrapX {
		x = mathx.Wrap(x, f.MinX, f.MaxX)
	} else {
		x = mathx.Clamp(x, f.MinX, f.MaxX)
	}
	if f.WrapY {
		y = mathx.Wrap(y, f.MinY, f.MaxY)
	} else {
		y = mathx.Clamp(y, f.MinY, f.MaxY)
	}
	return (y-f.MinY)*f.Width() + (x - f.MinX)
}

func (f *Field) Get(x, y int) float64 {
	return f.data[f.Index(x, y)]
}

// Set stores value*Amplitude + Offset.
func (f *Field) Set(x, y int, value float64) {
	f.data[f.Index(x, y)] = value*f.Amplitude + f.Offset
}

// GetRelative reads relative to (MinX, MinY).
func (f *Field) GetRelative(x, y int) float64 {
	return f.Get(x+f.MinX, y+f.MinY)
}

// SetRelative writes relative to (MinX, MinY).
func (f *Field) SetRelative(x, y int, value float64) {
	f.Set(x+f.MinX, y+f.MinY, value)
}

// Fill stores value in every cell, bypassing Amplitude and Offset.
func (f *Field) Fill(value float64) {
	for i := range f.data {
		f.data[i] = value
	}
}

// MinMax returns the smallest and largest finite values.
// ok is false if there are none.
func (f *Field) MinMax() (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range f.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		ok = true
	}
	return
}

// Normalize rescales the field so its minimum is 0 and its maximum is 1.
// A constant (or entirely non-finite) field becomes all zero and Normalize
// returns false. Non-finite values become 0.
func (f *Field) Normalize() bool {
	min, max, ok := f.MinMax()
	if !ok || min == max {
		f.Fill(0)
		return false
	}

	scale := 1 / (max - min)
	for i, v := range f.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			f.data[i] = 0
			continue
		}
		f.data[i] = (v - min) * scale
	}
	return true
}

// Values returns the row major backing slice.
func (f *Field) Values() []float64 {
	return f.data
}

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	c := *f
	c.data = append([]float64(nil), f.data...)
	return &c
}

// Equal reports whether both fields have the same bounds and bit-identical
// samples.
func (f *Field) Equal(other *Field) bool {
	if f.MinX != other.MinX || f.MinY != other.MinY || f.MaxX != other.MaxX || f.MaxY != other.MaxY {
		return false
	}
	for i, v := range f.data {
		if math.Float64bits(v) != math.Float64bits(other.data[i]) {
			return false
		}
	}
	return true
}

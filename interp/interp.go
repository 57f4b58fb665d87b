// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package interp contains 1D reconstruction kernels used to smooth lattices.
package interp

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is wrapped by parameter errors here and in the
// generator packages, which re-export it.
var ErrInvalidParameter = errors.New("invalid parameter")

// Kind selects an interpolation function.
type Kind uint8

const (
	// Linear is continuous, its derivative is not.
	Linear Kind = iota
	// Cosine is smoother than Linear but still only C0.
	Cosine
	// Cubic needs 4 samples and is C1.
	Cubic
	// CatmullRom needs 4 samples and is C1, tighter than Cubic.
	CatmullRom
	// Hermite needs 4 samples and takes tension and bias.
	Hermite
	kindCount
)

var kindNames = [...]string{
	Linear:     "linear",
	Cosine:     "cosine",
	Cubic:      "cubic",
	CatmullRom: "catmull-rom",
	Hermite:    "hermite",
}

// Kinds returns every Kind in order.
func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown interpolation %q", ErrInvalidParameter, name)
}

// Taps returns how many samples the kind reads: 2 or 4.
func (k Kind) Taps() int {
	switch k {
	case Cubic, CatmullRom, Hermite:
		return 4
	default:
		return 2
	}
}

// Kernel is a Kind with the Hermite parameters.
// Tension and Bias are ignored by the other kinds.
type Kernel struct {
	Kind    Kind
	Tension float64
	Bias    float64
}

func (k Kernel) Taps() int {
	return k.Kind.Taps()
}

// Interpolate2 blends bottom (at 0) and top (at 1). 4-tap kinds fall back to
// linear.
func (k Kernel) Interpolate2(bottom, top, mu float64) float64 {
	if k.Kind == Cosine {
		mu = (1 - math.Cos(mu*math.Pi)) / 2
	}
	return bottom*(1-mu) + top*mu
}

// Interpolate4 blends bottom (at 0) and top (at 1) using past (at -1) and
// future (at 2). 2-tap kinds ignore past and future.
func (k Kernel) Interpolate4(past, bottom, top, future, mu float64) float64 {
	mu2 := mu * mu

	switch k.Kind {
	case Cubic:
		a0 := (future - top) - (past - bottom)
		a1 := (past - bottom) - a0
		a2 := top - past
		a3 := bottom
		return a0*mu*mu2 + a1*mu2 + a2*mu + a3
	case CatmullRom:
		a0 := -0.5*past + 1.5*bottom - 1.5*top + 0.5*future
		a1 := past - 2.5*bottom + 2*top - 0.5*future
		a2 := 0.5 * (top - past)
		a3 := bottom
		return a0*mu*mu2 + a1*mu2 + a2*mu + a3
	case Hermite:
		mu3 := mu2 * mu
		t := (1 - k.Tension) / 2

		m0 := (bottom-past)*(1+k.Bias)*t + (top-bottom)*(1-k.Bias)*t
		m1 := (top-bottom)*(1+k.Bias)*t + (future-top)*(1-k.Bias)*t

		a0 := 2*mu3 - 3*mu2 + 1
		a1 := mu3 - 2*mu2 + mu
		a2 := mu3 - mu2
		a3 := -2*mu3 + 3*mu2
		return a0*bottom + a1*m0 + a2*m1 + a3*top
	default:
		return k.Interpolate2(bottom, top, mu)
	}
}

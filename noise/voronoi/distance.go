// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voronoi fills fields with distances to the nearest sources.
package voronoi

import (
	"fmt"
	"math"

	"github.com/SoftbearStudios/noisefield/noise"
)

// DistanceFunction is the metric used to compare samples with sources.
type DistanceFunction uint8

const (
	Euclidean DistanceFunction = iota
	EuclideanSquared
	Manhattan
	Chebyshev
	Minkowski
	distanceFunctionCount
)

var distanceNames = [distanceFunctionCount]string{
	"euclidean",
	"euclidean-squared",
	"manhattan",
	"chebyshev",
	"minkowski-0.5",
}

func DistanceFunctions() []DistanceFunction {
	fns := make([]DistanceFunction, distanceFunctionCount)
	for i := range fns {
		fns[i] = DistanceFunction(i)
	}
	return fns
}

func (fn DistanceFunction) String() string {
	if fn >= distanceFunctionCount {
		return fmt.Sprintf("distance(%d)", uint8(fn))
	}
	return distanceNames[fn]
}

func ParseDistanceFunction(name string) (DistanceFunction, error) {
	for i, n := range distanceNames {
		if n == name {
			return DistanceFunction(i), nil
		}
	}
	return 0, noise.Invalid("unknown distance function %q", name)
}

func (fn DistanceFunction) validate() error {
	if fn >= distanceFunctionCount {
		return noise.Invalid("distance function %d", uint8(fn))
	}
	return nil
}

// Distance returns the distance between two points as it is stored while
// searching: both Euclidean metrics give the squared distance.
func (fn DistanceFunction) Distance(x1, y1, x2, y2 float64) float64 {
	dx := math.Abs(x1 - x2)
	dy := math.Abs(y1 - y2)

	switch fn {
	case Manhattan:
		return dx + dy
	case Chebyshev:
		return math.Max(dx, dy)
	case Minkowski:
		s := math.Sqrt(dx) + math.Sqrt(dy)
		return s * s
	default:
		return dx*dx + dy*dy
	}
}

func (fn DistanceFunction) squared() bool {
	return fn == Euclidean || fn == EuclideanSquared
}

// Linear converts a stored distance back to units of length.
func (fn DistanceFunction) Linear(stored float64) float64 {
	if fn.squared() {
		return math.Sqrt(stored)
	}
	return stored
}

// Stored is the inverse of Linear for non-negative distances.
func (fn DistanceFunction) Stored(linear float64) float64 {
	if fn.squared() {
		return linear * linear
	}
	return linear
}

// convert maps a distance stored by fn into the storage of to.
func (fn DistanceFunction) convert(stored float64, to DistanceFunction) float64 {
	if fn.squared() == to.squared() {
		return stored
	}
	return to.Stored(fn.Linear(stored))
}

// final is applied to each of a sample's nearest distances before they are
// combined. Only Euclidean takes the root; EuclideanSquared stays squared.
func (fn DistanceFunction) final(stored float64) float64 {
	if fn == Euclidean {
		return math.Sqrt(stored)
	}
	return stored
}

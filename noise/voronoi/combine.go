// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package voronoi

import (
	"fmt"
	"math"

	"github.com/SoftbearStudios/noisefield/noise"
)

// CombineFunction turns the nearest distances of a sample into its value.
// F1 is the nearest, F2 the second nearest and F3 the third.
type CombineFunction uint8

const (
	F1 CombineFunction = iota
	F2
	F2MinusF1
	F3
	F3MinusF1
	F3MinusF2
	F3MinusF2PlusF1
	combineFunctionCount
)

// MaxCount is the most distances any CombineFunction needs.
const MaxCount = 3

var combineNames = [combineFunctionCount]string{
	"f1",
	"f2",
	"f2-f1",
	"f3",
	"f3-f1",
	"f3-f2",
	"f3-f2-f1",
}

func CombineFunctions() []CombineFunction {
	fns := make([]CombineFunction, combineFunctionCount)
	for i := range fns {
		fns[i] = CombineFunction(i)
	}
	return fns
}

func (fn CombineFunction) String() string {
	if fn >= combineFunctionCount {
		return fmt.Sprintf("combine(%d)", uint8(fn))
	}
	return combineNames[fn]
}

func ParseCombineFunction(name string) (CombineFunction, error) {
	for i, n := range combineNames {
		if n == name {
			return CombineFunction(i), nil
		}
	}
	return 0, noise.Invalid("unknown combine function %q", name)
}

func (fn CombineFunction) validate() error {
	if fn >= combineFunctionCount {
		return noise.Invalid("combine function %d", uint8(fn))
	}
	return nil
}

// Count is how many of the nearest distances Combine reads.
func (fn CombineFunction) Count() int {
	switch fn {
	case F1:
		return 1
	case F2, F2MinusF1:
		return 2
	default:
		return 3
	}
}

// Combine reads the first Count sorted distances. If any of them is
// infinite, because too few sources reached the sample, the result is 0.
func (fn CombineFunction) Combine(distances []float64) float64 {
	for _, d := range distances[:fn.Count()] {
		if math.IsInf(d, 0) {
			return 0
		}
	}

	switch fn {
	case F2:
		return distances[1]
	case F2MinusF1:
		return distances[1] - distances[0]
	case F3:
		return distances[2]
	case F3MinusF1:
		return distances[2] - distances[0]
	case F3MinusF2:
		return distances[2] - distances[1]
	case F3MinusF2PlusF1:
		return distances[2] - distances[1] + distances[0]
	default:
		return distances[0]
	}
}

// insert puts d into the ascending list best, dropping the largest entry.
// It reports whether d made the list.
func insert(best []float64, d float64) bool {
	last := len(best) - 1
	if d > best[last] {
		return false
	}

	i := last
	for ; i > 0 && best[i-1] >= d; i-- {
		best[i] = best[i-1]
	}
	best[i] = d
	return true
}

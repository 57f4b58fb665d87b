// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathx

// Wrap maps value into [min,max] modulo the range size.
func Wrap(value, min, max int) int {
	size := max - min + 1
	value = (value - min) % size
	if value < 0 {
		value += size
	}
	return value + min
}

// Clamp clips value into [min,max].
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func Lerp(a, b, factor float64) float64 {
	return a + (b-a)*factor
}

// Fade is the quintic 6t^5 - 15t^4 + 10t^3.
func Fade(t float64) float64 {
	t3 := t * t * t
	t4 := t3 * t
	return 6*t4*t - 15*t4 + 10*t3
}

// CeilDiv returns ceil(a/b) for positive b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

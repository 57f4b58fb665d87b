// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package voronoi

import (
	"github.com/SoftbearStudios/noisefield/mathx"
)

// RandomSources returns n points, circles and segments scattered over a
// width by height field. Circles have radius 10 to 59 and are filled or
// rings at random.
func RandomSources(seed int64, n, width, height int) []Source {
	r := mathx.NewRand(seed)
	sources := make([]Source, 0, n)

	point := func() Point {
		return Point{X: r.Intn(width), Y: r.Intn(height)}
	}

	for i := 0; i < n; i++ {
		var shape Shape
		switch r.Intn(3) {
		case 0:
			shape = point()
		case 1:
			shape = Circle{
				Center: point(),
				Radius: float64(int(r.Float64()*50) + 10),
				Filled: r.Bool(),
			}
		default:
			shape = Segment{A: point(), B: point()}
		}
		sources = append(sources, Source{Shape: shape})
	}
	return sources
}

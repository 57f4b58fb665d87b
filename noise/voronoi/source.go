// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package voronoi

import (
	"math"

	"github.com/SoftbearStudios/noisefield/noise"
)

// Point is a sample position relative to the field origin.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) in(width, height int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height
}

// Shape is the geometry of a Source.
type Shape interface {
	// DistanceTo returns the distance from (x, y) to the shape, stored the
	// way fn stores distances.
	DistanceTo(x, y float64, fn DistanceFunction) float64
	// SeedCenters returns the samples inside a width by height field where
	// the search for this shape starts.
	SeedCenters(width, height int) []Point
	Validate() error
}

// Source is a shape with an optional distance function of its own.
type Source struct {
	Shape Shape
	// Distance overrides the fill's distance function for this source if not
	// nil.
	Distance *DistanceFunction
}

// WithDistance returns s using fn instead of the fill's distance function.
func (s Source) WithDistance(fn DistanceFunction) Source {
	s.Distance = &fn
	return s
}

func (s Source) validate() error {
	if s.Shape == nil {
		return noise.Invalid("source without shape")
	}
	if s.Distance != nil {
		if err := s.Distance.validate(); err != nil {
			return err
		}
	}
	return s.Shape.Validate()
}

// distanceTo measures with the personal distance function, if any, and
// returns the result stored the way fn stores distances.
func (s Source) distanceTo(x, y float64, fn DistanceFunction) float64 {
	if s.Distance == nil {
		return s.Shape.DistanceTo(x, y, fn)
	}
	personal := *s.Distance
	return personal.convert(s.Shape.DistanceTo(x, y, personal), fn)
}

func (p Point) DistanceTo(x, y float64, fn DistanceFunction) float64 {
	return fn.Distance(float64(p.X), float64(p.Y), x, y)
}

func (p Point) SeedCenters(width, height int) []Point {
	if !p.in(width, height) {
		return nil
	}
	return []Point{p}
}

func (Point) Validate() error {
	return nil
}

// Circle is a disc when Filled, otherwise a ring.
type Circle struct {
	Center Point
	Radius float64
	Filled bool
}

func (c Circle) Validate() error {
	if math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) || c.Radius < 0 {
		return noise.Invalid("circle radius %v", c.Radius)
	}
	return nil
}

// DistanceTo subtracts the radius from the distance to the center, in units
// of length. Inside, a disc is at distance 0 and a ring at the distance to
// its edge.
func (c Circle) DistanceTo(x, y float64, fn DistanceFunction) float64 {
	d := fn.Linear(fn.Distance(float64(c.Center.X), float64(c.Center.Y), x, y)) - c.Radius
	if d < 0 {
		if c.Filled {
			return 0
		}
		d = -d
	}
	return fn.Stored(d)
}

// SeedCenters samples the perimeter about once per unit of arc.
func (c Circle) SeedCenters(width, height int) []Point {
	if c.Radius < 0.5 {
		return c.Center.SeedCenters(width, height)
	}

	steps := int(math.Ceil(2 * math.Pi * c.Radius))
	centers := make([]Point, 0, steps)
	previous := Point{X: math.MinInt, Y: math.MinInt}
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		p := Point{
			X: c.Center.X + int(math.Round(math.Cos(theta)*c.Radius)),
			Y: c.Center.Y + int(math.Round(math.Sin(theta)*c.Radius)),
		}
		if p == previous || !p.in(width, height) {
			continue
		}
		centers = append(centers, p)
		previous = p
	}
	return centers
}

// Segment is the line segment from A to B.
type Segment struct {
	A, B Point
}

func (Segment) Validate() error {
	return nil
}

func (s Segment) DistanceTo(x, y float64, fn DistanceFunction) float64 {
	ax, ay := float64(s.A.X), float64(s.A.Y)
	dx, dy := float64(s.B.X-s.A.X), float64(s.B.Y-s.A.Y)

	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return fn.Distance(x, y, ax, ay)
	}

	t := ((x-ax)*dx + (y-ay)*dy) / lengthSq
	switch {
	case t <= 0:
		return fn.Distance(x, y, ax, ay)
	case t >= 1:
		return fn.Distance(x, y, float64(s.B.X), float64(s.B.Y))
	default:
		return fn.Distance(x, y, ax+dx*t, ay+dy*t)
	}
}

// SeedCenters samples the segment at unit spacing, both ends included.
func (s Segment) SeedCenters(width, height int) []Point {
	dx, dy := float64(s.B.X-s.A.X), float64(s.B.Y-s.A.Y)
	steps := int(math.Ceil(math.Hypot(dx, dy)))
	if steps == 0 {
		return s.A.SeedCenters(width, height)
	}

	centers := make([]Point, 0, steps+1)
	previous := Point{X: math.MinInt, Y: math.MinInt}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := Point{
			X: s.A.X + int(math.Round(dx*t)),
			Y: s.A.Y + int(math.Round(dy*t)),
		}
		if p == previous || !p.in(width, height) {
			continue
		}
		centers = append(centers, p)
		previous = p
	}
	return centers
}

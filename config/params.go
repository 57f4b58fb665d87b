// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config turns JSON parameter documents into filled fields.
package config

import (
	"fmt"
	"io"
	"math"

	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/interp"
	"github.com/SoftbearStudios/noisefield/noise"
	"github.com/SoftbearStudios/noisefield/noise/voronoi"
	"github.com/SoftbearStudios/noisefield/parallel"
)

const (
	// MaxSize bounds field width and height.
	MaxSize = 4096

	// MaxSources bounds listed plus random voronoi sources.
	MaxSources = 1024

	// Source coordinates and radii stay within this distance of the origin.
	maxSourceExtent = 4 * MaxSize
)

// Kind selects a generator.
type Kind uint8

const (
	White Kind = iota
	Value
	Gradient
	Lookup
	Cell
	Voronoi
	Midpoint
	Fractal
	Classic
	Simplex
	kindCount
)

var kindNames = [kindCount]string{
	"white",
	"value",
	"gradient",
	"lookup",
	"cell",
	"voronoi",
	"midpoint",
	"fractal",
	"classic",
	"simplex",
}

func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, noise.Invalid("unknown kind %q", name)
}

// Params describes one field and the generator that fills it. Fields a
// generator does not use are ignored.
type Params struct {
	Kind   Kind  `json:"kind"`
	Seed   int64 `json:"seed"`
	Width  int   `json:"width,omitempty"`
	Height int   `json:"height,omitempty"`
	// Clamp addresses past the edges by clamping instead of wrapping.
	Clamp bool `json:"clamp,omitempty"`

	PeriodX int `json:"periodX,omitempty"`
	PeriodY int `json:"periodY,omitempty"`

	Interp  interp.Kind `json:"interp"`
	Tension float64     `json:"tension,omitempty"`
	Bias    float64     `json:"bias,omitempty"`

	Distance voronoi.DistanceFunction `json:"distance"`
	Combine  voronoi.CombineFunction  `json:"combine"`
	// Raw skips normalizing voronoi output.
	Raw           bool           `json:"raw,omitempty"`
	Sources       []SourceParams `json:"sources,omitempty"`
	RandomSources int            `json:"randomSources,omitempty"`

	// Midpoint and fractal.
	Amplitude   float64 `json:"amplitude,omitempty"`
	Persistence float64 `json:"persistence,omitempty"`
	Seeded      bool    `json:"seeded,omitempty"`
	// Constraints are fixed samples of a seeded midpoint field.
	Constraints []Constraint `json:"constraints,omitempty"`

	FineOctave  int     `json:"fineOctave,omitempty"`
	BroadOctave int     `json:"broadOctave,omitempty"`
	Base        *Params `json:"base,omitempty"`

	// Classic.
	Alpha float64 `json:"alpha,omitempty"`
	Beta  float64 `json:"beta,omitempty"`
	N     int     `json:"n,omitempty"`
}

// SourceParams is one voronoi source. Type is "point", "circle" or
// "segment"; segments run from (x, y) to (x2, y2).
type SourceParams struct {
	Type     string                    `json:"type"`
	X        int                       `json:"x"`
	Y        int                       `json:"y"`
	X2       int                       `json:"x2,omitempty"`
	Y2       int                       `json:"y2,omitempty"`
	Radius   float64                   `json:"radius,omitempty"`
	Filled   bool                      `json:"filled,omitempty"`
	Distance *voronoi.DistanceFunction `json:"distance,omitempty"`
}

// Constraint fixes the sample at (x, y) before seeded midpoint displacement.
type Constraint struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Value float64 `json:"value"`
}

func (s SourceParams) validate() error {
	for _, c := range [...]int{s.X, s.Y, s.X2, s.Y2} {
		if c < -maxSourceExtent || c > maxSourceExtent {
			return noise.Invalid("source coordinate %d outside [%d,%d]", c, -maxSourceExtent, maxSourceExtent)
		}
	}
	if s.Radius > maxSourceExtent {
		return noise.Invalid("source radius %v over %d", s.Radius, maxSourceExtent)
	}
	return nil
}

func (s SourceParams) Source() (voronoi.Source, error) {
	if err := s.validate(); err != nil {
		return voronoi.Source{}, err
	}
	var source voronoi.Source
	switch s.Type {
	case "point", "":
		source.Shape = voronoi.Point{X: s.X, Y: s.Y}
	case "circle":
		source.Shape = voronoi.Circle{Center: voronoi.Point{X: s.X, Y: s.Y}, Radius: s.Radius, Filled: s.Filled}
	case "segment":
		source.Shape = voronoi.Segment{A: voronoi.Point{X: s.X, Y: s.Y}, B: voronoi.Point{X: s.X2, Y: s.Y2}}
	default:
		return source, noise.Invalid("unknown source type %q", s.Type)
	}
	source.Distance = s.Distance
	return source, source.Shape.Validate()
}

// Default is a 256 by 256 gradient field.
func Default() Params {
	return Params{
		Kind:        Gradient,
		Width:       256,
		Height:      256,
		PeriodX:     32,
		PeriodY:     32,
		Amplitude:   1,
		Persistence: 0.5,
		BroadOctave: 5,
		Alpha:       1.5,
		Beta:        2,
		N:           4,
	}
}

// Load decodes a document over Default, so missing fields keep their
// defaults.
func Load(r io.Reader) (Params, error) {
	p := Default()
	if err := JSON.NewDecoder(r).Decode(&p); err != nil {
		return p, fmt.Errorf("decoding params: %w", err)
	}
	return p, nil
}

func (p Params) Validate() error {
	if p.Width < 1 || p.Height < 1 || p.Width > MaxSize || p.Height > MaxSize {
		return noise.Invalid("size %dx%d outside [1,%d]", p.Width, p.Height, MaxSize)
	}
	if p.RandomSources < 0 || len(p.Sources)+p.RandomSources > MaxSources {
		return noise.Invalid("%d listed and %d random sources, over %d", len(p.Sources), p.RandomSources, MaxSources)
	}
	if p.Seeded && p.Kind != Midpoint {
		return noise.Invalid("seeded %s", p.Kind)
	}
	if len(p.Constraints) > 0 && !p.Seeded {
		return noise.Invalid("constraints without seeded")
	}
	for _, c := range p.Constraints {
		if c.X < 0 || c.Y < 0 || c.X >= p.Width || c.Y >= p.Height {
			return noise.Invalid("constraint (%d, %d) outside %dx%d", c.X, c.Y, p.Width, p.Height)
		}
		if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
			return noise.Invalid("constraint value %v", c.Value)
		}
	}
	_, err := p.Generator()
	return err
}

// NewField returns an empty field of the configured size and addressing.
// A seeded field starts unset except for its constraints.
func (p Params) NewField() *field.Field {
	f := field.New(p.Width, p.Height)
	if p.Clamp {
		f.WrapX, f.WrapY = false, false
	}
	if p.Seeded {
		f.Fill(noise.Unset())
		for _, c := range p.Constraints {
			f.Set(c.X, c.Y, c.Value)
		}
	}
	return f
}

// Generator builds the configured generator. Fractal bases are built from
// Base with missing library parameters taken from Default.
func (p Params) Generator() (noise.Generator, error) {
	kernel := interp.Kernel{Kind: p.Interp, Tension: p.Tension, Bias: p.Bias}

	switch p.Kind {
	case White:
		return noise.White{}, nil
	case Value:
		return noise.Value{PeriodX: p.PeriodX, PeriodY: p.PeriodY, Kernel: kernel}, nil
	case Gradient:
		return noise.Gradient{PeriodX: p.PeriodX, PeriodY: p.PeriodY}, nil
	case Lookup:
		return noise.Lookup{PeriodX: p.PeriodX, PeriodY: p.PeriodY}, nil
	case Cell:
		return voronoi.Cell{PeriodX: p.PeriodX, PeriodY: p.PeriodY, Distance: p.Distance, Combine: p.Combine}, nil
	case Voronoi:
		return p.scene()
	case Midpoint:
		return noise.Midpoint{Amplitude: p.Amplitude, Persistence: p.Persistence, Seeded: p.Seeded}, nil
	case Fractal:
		return p.fractal()
	case Classic:
		return noise.Classic{Alpha: p.Alpha, Beta: p.Beta, N: p.N, PeriodX: p.PeriodX, PeriodY: p.PeriodY}, nil
	case Simplex:
		return noise.Simplex{PeriodX: p.PeriodX, PeriodY: p.PeriodY}, nil
	default:
		return nil, noise.Invalid("kind %d", uint8(p.Kind))
	}
}

func (p Params) fractal() (noise.Generator, error) {
	if p.Base == nil {
		return nil, noise.Invalid("fractal without base")
	}

	base := *p.Base
	defaults := Default()
	if base.Alpha == 0 {
		base.Alpha = defaults.Alpha
	}
	if base.Beta == 0 {
		base.Beta = defaults.Beta
	}
	if base.N == 0 {
		base.N = defaults.N
	}

	g, err := base.Generator()
	if err != nil {
		return nil, fmt.Errorf("fractal base: %w", err)
	}
	octave, ok := g.(noise.OctaveGenerator)
	if !ok {
		return nil, noise.Invalid("%s cannot be a fractal base", base.Kind)
	}

	fr := noise.Fractal{
		Base:        octave,
		FineOctave:  p.FineOctave,
		BroadOctave: p.BroadOctave,
		Persistence: p.Persistence,
	}
	return fr, fr.Validate()
}

func (p Params) scene() (noise.Generator, error) {
	s := scene{
		advanced: voronoi.Advanced{Distance: p.Distance, Combine: p.Combine, Raw: p.Raw},
		random:   p.RandomSources,
	}
	for i, sp := range p.Sources {
		source, err := sp.Source()
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		s.sources = append(s.sources, source)
	}
	return s, nil
}

// scene adapts voronoi.Advanced to noise.Generator. The seed places the
// random sources, which follow the listed ones.
type scene struct {
	advanced voronoi.Advanced
	sources  []voronoi.Source
	random   int
}

func (s scene) Fill(f *field.Field, seed int64) error {
	sources := s.sources
	if s.random > 0 {
		sources = append(sources[:len(sources):len(sources)], voronoi.RandomSources(seed, s.random, f.Width(), f.Height())...)
	}
	return s.advanced.Fill(f, sources)
}

// Generate validates p and fills a new field, on pool when the generator
// supports it.
func Generate(p Params, pool *parallel.Pool) (*field.Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g, err := p.Generator()
	if err != nil {
		return nil, err
	}
	f := p.NewField()
	if err := noise.FillWith(g, f, p.Seed, pool); err != nil {
		return nil, err
	}
	return f, nil
}

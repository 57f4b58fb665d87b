// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render draws fields as images.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/noise"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Ramp maps a sample, normally in [0,1], to a colour.
type Ramp func(v float32) ColorVec

var terrainColors = [...]ColorVec{
	RGB(0, 50, 115),
	RGB(0, 75, 130),
	RGB(194, 178, 128),
	RGB(90, 180, 30),
	RGB(105, 110, 115),
	GrayColor(220),
}

// Terrain levels, as fractions of the sample range.
const (
	OceanLevel = 0.45
	SandLevel  = 0.5
	GrassLevel = 0.7
	RockLevel  = 0.85
)

// Grayscale maps 0 to black and 1 to white.
func Grayscale(v float32) ColorVec {
	v = clamp(v)
	return ColorVec{v, v, v}
}

// Terrain treats samples as heights: ocean, sand, grass, rock and snow.
func Terrain(v float32) ColorVec {
	c := terrainColors
	switch {
	case v <= OceanLevel:
		return c[0].Lerp(c[1], clamp(v/OceanLevel))
	case v <= SandLevel:
		return c[2]
	case v <= GrassLevel:
		return c[2].Lerp(c[3], clamp((v-SandLevel)/(GrassLevel-SandLevel)))
	case v <= RockLevel:
		return c[3].Lerp(c[4], clamp((v-GrassLevel)/(RockLevel-GrassLevel)))
	default:
		return c[4].Lerp(c[5], clamp((v-RockLevel)/(1-RockLevel)))
	}
}

// ParseRamp returns "gray" or "terrain".
func ParseRamp(name string) (Ramp, error) {
	switch name {
	case "gray", "grey", "grayscale":
		return Grayscale, nil
	case "terrain":
		return Terrain, nil
	default:
		return nil, noise.Invalid("unknown ramp %q", name)
	}
}

// Field draws f through ramp, one pixel per sample. Non-finite samples are
// drawn as 0.
func Field(f *field.Field, ramp Ramp) *image.RGBA {
	width, height := f.Width(), f.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			img.SetRGBA(i, j, ramp(sample(f, i, j)).Color())
		}
	}
	return img
}

// Gray draws f in 8 bit grayscale.
func Gray(f *field.Field) *image.Gray {
	width, height := f.Width(), f.Height()
	img := image.NewGray(image.Rect(0, 0, width, height))

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			img.SetGray(i, j, color.Gray{Y: floatToByte(sample(f, i, j))})
		}
	}
	return img
}

// Scale enlarges img by factor, with bilinear filtering if smooth.
func Scale(img image.Image, factor int, smooth bool) image.Image {
	if factor <= 1 {
		return img
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	var scaler draw.Scaler = draw.NearestNeighbor
	if smooth {
		scaler = draw.BiLinear
	}
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Fit resamples img with Lanczos filtering so its longer side is size
// pixels.
func Fit(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size < 1 || b.Empty() {
		return img
	}
	if b.Dx() >= b.Dy() {
		return resize.Resize(uint(size), 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, uint(size), img, resize.Lanczos3)
}

func sample(f *field.Field, x, y int) float32 {
	v := f.GetRelative(x, y)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return float32(v)
}

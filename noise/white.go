// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/noisefield/field"
	"github.com/SoftbearStudios/noisefield/mathx"
	"github.com/SoftbearStudios/noisefield/parallel"
)

// White writes an independent hash per sample.
type White struct{}

func (w White) Fill(f *field.Field, seed int64) error {
	return w.fill(f, seed, nil)
}

func (w White) FillParallel(f *field.Field, seed int64, pool *parallel.Pool) error {
	return w.fill(f, seed, pool)
}

func (White) fill(f *field.Field, seed int64, pool *parallel.Pool) error {
	if err := validateField(f); err != nil {
		return err
	}

	height := f.Height()
	Columns(f, pool, func(x int) {
		for y := 0; y < height; y++ {
			f.SetRelative(x, y, mathx.Hash(seed, float64(x), float64(y)))
		}
	})
	return nil
}

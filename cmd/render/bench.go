// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/SoftbearStudios/noisefield/config"
	"github.com/SoftbearStudios/noisefield/logger"
	"github.com/SoftbearStudios/noisefield/noise"
	"github.com/SoftbearStudios/noisefield/parallel"
)

// benchmark times n fills without and then with the pool. Both runs must
// produce the same field.
func benchmark(p config.Params, pool *parallel.Pool, n int, csvFile string) error {
	g, err := p.Generator()
	if err != nil {
		return err
	}

	serial := p.NewField()
	start := time.Now()
	for i := 0; i < n; i++ {
		if err := g.Fill(serial, p.Seed); err != nil {
			return err
		}
	}
	serialTime := time.Since(start) / time.Duration(n)

	pooled := p.NewField()
	start = time.Now()
	for i := 0; i < n; i++ {
		if err := noise.FillWith(g, pooled, p.Seed, pool); err != nil {
			return err
		}
	}
	pooledTime := time.Since(start) / time.Duration(n)

	if !serial.Equal(pooled) {
		return fmt.Errorf("%s: pooled fill differs from serial fill", p.Kind)
	}

	workers := 0
	if pool != nil {
		workers = pool.Workers()
	}
	speedup := float64(serialTime) / float64(pooledTime)
	logger.Get().Info("benchmark", "kind", p.Kind, "serial", serialTime, "pooled", pooledTime, "workers", workers, "speedup", speedup)
	fmt.Printf("%s %dx%d: serial %v, pooled %v (%d workers, %.2fx)\n", p.Kind, p.Width, p.Height, serialTime, pooledTime, workers, speedup)

	if csvFile == "" {
		return nil
	}
	return appendLog(csvFile, []interface{}{
		time.Now().Unix(),
		p.Kind,
		p.Width,
		p.Height,
		workers,
		serialTime.Seconds() * 1000,
		pooledTime.Seconds() * 1000,
		speedup,
	})
}

// appendLog appends one CSV record, formatting floats with two decimals.
func appendLog(filename string, fields []interface{}) (err error) {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	record := make([]string, 0, len(fields))
	for _, field := range fields {
		switch v := field.(type) {
		case float32, float64:
			record = append(record, fmt.Sprintf("%.2f", v))
		default:
			record = append(record, fmt.Sprint(v))
		}
	}

	w := csv.NewWriter(f)
	if err = w.Write(record); err != nil {
		return
	}
	w.Flush()
	return w.Error()
}

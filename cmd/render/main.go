// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command render fills a field and writes it as a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/SoftbearStudios/noisefield/config"
	"github.com/SoftbearStudios/noisefield/logger"
	"github.com/SoftbearStudios/noisefield/parallel"
	"github.com/SoftbearStudios/noisefield/render"
)

type options struct {
	configFile string
	kind       string
	seed       int64
	width      int
	height     int
	period     int
	ramp       string
	scale      int
	fit        int
	out        string
	workers    int
	bench      int
	csv        string
	logLevel   string
}

func main() {
	var (
		o          options
		cpuProfile string
	)

	flag.StringVar(&o.configFile, "config", "", "read params from JSON `file`")
	flag.StringVar(&o.kind, "kind", "", "generator kind, overrides the config")
	flag.Int64Var(&o.seed, "seed", 0, "seed, overrides the config if not 0")
	flag.IntVar(&o.width, "width", 0, "field width, overrides the config if not 0")
	flag.IntVar(&o.height, "height", 0, "field height, overrides the config if not 0")
	flag.IntVar(&o.period, "period", 0, "lattice period, overrides the config if not 0")
	flag.StringVar(&o.ramp, "ramp", "gray", "colour ramp (gray or terrain)")
	flag.IntVar(&o.scale, "scale", 1, "pixels per sample")
	flag.IntVar(&o.fit, "fit", 0, "resample so the longer side is `n` pixels, after scaling")
	flag.StringVar(&o.out, "out", "out.png", "output PNG `file`")
	flag.IntVar(&o.workers, "workers", 0, "pool workers (0 for one per CPU, -1 for no pool)")
	flag.IntVar(&o.bench, "bench", 0, "time `n` serial and n pooled fills instead of writing an image")
	flag.StringVar(&o.csv, "csv", "", "append benchmark results to CSV `file`")
	flag.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.Parse()

	logger.Set(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logger.ParseLevel(o.logLevel)})))

	if err := execute(o, cpuProfile); err != nil {
		log.Fatal(err)
	}
}

// execute runs the command. It returns instead of exiting so the profile is
// flushed and the pool closed on failure.
func execute(o options, cpuProfile string) error {
	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	p, err := o.params()
	if err != nil {
		return err
	}

	var pool *parallel.Pool
	if o.workers >= 0 {
		pool = parallel.NewPool(o.workers)
		defer pool.Close()
	}

	if o.bench > 0 {
		return benchmark(p, pool, o.bench, o.csv)
	}
	return run(p, pool, o)
}

// params loads the config file, or the defaults, and applies the flags.
func (o options) params() (config.Params, error) {
	p := config.Default()
	if o.configFile != "" {
		file, err := os.Open(o.configFile)
		if err != nil {
			return p, err
		}
		defer file.Close()

		if p, err = config.Load(file); err != nil {
			return p, err
		}
	}

	if o.kind != "" {
		kind, err := config.ParseKind(o.kind)
		if err != nil {
			return p, err
		}
		p.Kind = kind
	}
	if o.seed != 0 {
		p.Seed = o.seed
	}
	if o.width != 0 {
		p.Width = o.width
	}
	if o.height != 0 {
		p.Height = o.height
	}
	if o.period != 0 {
		p.PeriodX, p.PeriodY = o.period, o.period
	}
	return p, p.Validate()
}

func run(p config.Params, pool *parallel.Pool, o options) error {
	ramp, err := render.ParseRamp(o.ramp)
	if err != nil {
		return err
	}

	f, err := config.Generate(p, pool)
	if err != nil {
		return err
	}

	var img image.Image = render.Field(f, ramp)
	img = render.Scale(img, o.scale, false)
	if o.fit > 0 {
		img = render.Fit(img, o.fit)
	}

	file, err := os.Create(o.out)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return err
	}
	logger.Get().Info("wrote field", "kind", p.Kind, "width", p.Width, "height", p.Height, "file", o.out)
	return nil
}

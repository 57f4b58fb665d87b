// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command server serves field previews.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/SoftbearStudios/noisefield/logger"
	"github.com/SoftbearStudios/noisefield/parallel"
	"github.com/SoftbearStudios/noisefield/server"
	"golang.org/x/net/netutil"
)

func main() {
	var (
		port           int
		maxConnections int
		workers        int
		logLevel       string
	)

	flag.IntVar(&port, "port", 8192, "http service port")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.IntVar(&workers, "workers", 0, "pool workers (0 for one per CPU)")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flag.Parse()

	if maxConnections < 1 {
		log.Fatal("invalid argument max-connections: ", maxConnections)
	}

	logger.Set(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logger.ParseLevel(logLevel)})))

	pool := parallel.NewPool(workers)
	defer pool.Close()

	l, err := net.Listen("tcp", fmt.Sprint(":", port))
	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, maxConnections)

	logger.Get().Info("preview server started", "addr", l.Addr().String(), "workers", pool.Workers())
	log.Fatal("Serve: ", http.Serve(l, server.New(pool).Handler()))
}

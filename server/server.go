// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server serves field previews over HTTP and websockets.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/SoftbearStudios/noisefield/config"
	"github.com/SoftbearStudios/noisefield/interp"
	"github.com/SoftbearStudios/noisefield/logger"
	"github.com/SoftbearStudios/noisefield/noise"
	"github.com/SoftbearStudios/noisefield/noise/voronoi"
	"github.com/SoftbearStudios/noisefield/parallel"
	"github.com/SoftbearStudios/noisefield/render"
)

const (
	// MaxSize bounds preview width and height.
	MaxSize = 1024

	// Maximum scale factor of a preview.
	maxScale = 8

	// Maximum size of a params document.
	maxRequestSize = 1 << 16
)

// Request is a params document plus how to draw it.
type Request struct {
	config.Params
	// Ramp is "gray" (default) or "terrain".
	Ramp  string `json:"ramp,omitempty"`
	Scale int    `json:"scale,omitempty"`
}

type index struct {
	Kinds     []string      `json:"kinds"`
	Interp    []string      `json:"interp"`
	Distance  []string      `json:"distance"`
	Combine   []string      `json:"combine"`
	Default   config.Params `json:"default"`
	Generated int64         `json:"generated"`
}

// names lists enum names. Enum slices would otherwise encode as base64 bytes.
func names[T fmt.Stringer](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

type errorReply struct {
	Error string `json:"error"`
}

// Server renders previews on a shared pool, one at a time.
type Server struct {
	pool      *parallel.Pool
	mu        sync.Mutex
	generated atomic.Int64
}

func New(pool *parallel.Pool) *Server {
	return &Server{pool: pool}
}

// Handler routes /, /field.png and /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.ServeIndex)
	mux.HandleFunc("/field.png", s.ServeField)
	mux.HandleFunc("/ws", s.ServeSocket)
	return mux
}

// DecodeRequest reads a document over the defaults.
func DecodeRequest(r io.Reader) (Request, error) {
	req := Request{Params: config.Default()}
	if err := config.JSON.NewDecoder(io.LimitReader(r, maxRequestSize)).Decode(&req); err != nil {
		return req, err
	}
	return req, nil
}

// Render generates and encodes one preview as PNG.
func (s *Server) Render(req Request) ([]byte, error) {
	if req.Width > MaxSize || req.Height > MaxSize {
		return nil, noise.Invalid("preview size %dx%d over %d", req.Width, req.Height, MaxSize)
	}
	if req.Scale < 0 || req.Scale > maxScale {
		return nil, noise.Invalid("scale %d", req.Scale)
	}
	ramp := render.Grayscale
	if req.Ramp != "" {
		var err error
		if ramp, err = render.ParseRamp(req.Ramp); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	f, err := config.Generate(req.Params, s.pool)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.generated.Add(1)

	var buf bytes.Buffer
	if err := png.Encode(&buf, render.Scale(render.Field(f, ramp), req.Scale, false)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	buf, err := config.JSON.Marshal(index{
		Kinds:     names(config.Kinds()),
		Interp:    names(interp.Kinds()),
		Distance:  names(voronoi.DistanceFunctions()),
		Combine:   names(voronoi.CombineFunctions()),
		Default:   config.Default(),
		Generated: s.generated.Load(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(buf)
}

// ServeField takes the document from a POST body or the q query parameter.
func (s *Server) ServeField(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	var body io.Reader
	switch r.Method {
	case http.MethodPost:
		body = r.Body
	case http.MethodGet:
		body = strings.NewReader(r.URL.Query().Get("q"))
		if r.URL.Query().Get("q") == "" {
			body = strings.NewReader("{}")
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := DecodeRequest(body)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	buf, err := s.Render(req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, noise.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		writeError(w, err, status)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf)
}

func writeError(w http.ResponseWriter, err error, status int) {
	logger.Get().Debug("preview rejected", "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = config.JSON.NewEncoder(w).Encode(errorReply{Error: err.Error()})
}

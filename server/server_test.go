// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SoftbearStudios/noisefield/config"
	"github.com/SoftbearStudios/noisefield/parallel"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	pool := parallel.NewPool(2)
	t.Cleanup(pool.Close)

	ts := httptest.NewServer(New(pool).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestServeField_Get(t *testing.T) {
	ts := newTestServer(t)

	q := url.QueryEscape(`{"kind":"value","width":40,"height":30,"periodX":8,"periodY":8,"ramp":"terrain","scale":2}`)
	resp, err := http.Get(ts.URL + "/field.png?q=" + q)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Errorf("bounds %v, expected 80x60", b)
	}
}

func TestServeField_Post(t *testing.T) {
	ts := newTestServer(t)

	body := `{"kind":"voronoi","width":32,"height":32,"randomSources":5,"combine":"f2-f1"}`
	resp, err := http.Post(ts.URL+"/field.png", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if _, err := png.Decode(resp.Body); err != nil {
		t.Error(err)
	}
}

func TestServeField_Invalid(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []string{
		`{"kind":"gradient","periodX":0}`,
		`{"kind":"plasma"}`,
		`{"width":100000}`,
		`{"ramp":"rainbow"}`,
	} {
		resp, err := http.Post(ts.URL+"/field.png", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest && resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("%s: status %d", body, resp.StatusCode)
		}
	}
}

func TestServeIndex(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	for _, expected := range []string{`"kinds":["white",`, `"simplex"`, `"catmull-rom"`, `"minkowski-0.5"`, `"f3-f2-f1"`} {
		if !strings.Contains(buf.String(), expected) {
			t.Errorf("index missing %s", expected)
		}
	}

	resp, err = http.Get(ts.URL + "/missing")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status %d, expected 404", resp.StatusCode)
	}
}

func TestServeSocket(t *testing.T) {
	ts := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"kind":"simplex","width":16,"height":16}`)); err != nil {
		t.Fatal(err)
	}
	messageType, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if messageType != websocket.BinaryMessage {
		t.Fatalf("message type %d, expected binary", messageType)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Error(err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"kind":"fractal"}`)); err != nil {
		t.Fatal(err)
	}
	messageType, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var reply errorReply
	if messageType != websocket.TextMessage || config.JSON.Unmarshal(data, &reply) != nil || reply.Error == "" {
		t.Errorf("expected error reply, got %d %s", messageType, data)
	}
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/SoftbearStudios/noisefield/config"
	"github.com/SoftbearStudios/noisefield/logger"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 8) / 10

	// Replies queued before the client counts as unresponsive.
	socketBufferSize = 4
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: time.Second,
	ReadBufferSize:   1024,
	WriteBufferSize:  4096,
}

// reply is a PNG, or a JSON error if png is nil.
type reply struct {
	png []byte
	err []byte
}

// socketClient renders each text message it receives and sends the preview
// back as a binary message.
type socketClient struct {
	server *Server
	conn   *websocket.Conn
	send   chan reply
	once   sync.Once
}

func (s *Server) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Get().Warn("upgrade error", "err", err)
		return
	}

	client := &socketClient{
		server: s,
		conn:   conn,
		send:   make(chan reply, socketBufferSize),
	}
	go client.writePump()
	go client.readPump()
}

func (client *socketClient) destroy() {
	client.once.Do(func() {
		_ = client.conn.Close()
	})
}

func (client *socketClient) readPump() {
	defer close(client.send)
	defer client.destroy()

	client.conn.SetReadLimit(maxRequestSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, r, err := client.conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Get().Info("close error", "err", err)
			}
			return
		}

		var out reply
		req, err := DecodeRequest(r)
		if err == nil {
			out.png, err = client.server.Render(req)
		}
		if err != nil {
			out.err, _ = config.JSON.Marshal(errorReply{Error: err.Error()})
		}

		select {
		case client.send <- out:
		default:
			logger.Get().Info("socket client is not responsive")
			return
		}
	}
}

func (client *socketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)
	defer func() {
		pingTicker.Stop()
		client.destroy()
	}()

	for {
		select {
		case out, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}

			var err error
			if out.png != nil {
				err = client.conn.WriteMessage(websocket.BinaryMessage, out.png)
			} else {
				err = client.conn.WriteMessage(websocket.TextMessage, out.err)
			}
			if err != nil {
				logger.Get().Debug("send error", "err", err)
				return
			}
		case <-pingTicker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

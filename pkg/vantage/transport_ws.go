// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketConfig configures a WebSocketTransport.
type WebSocketConfig struct {
	// URL of the serial bridge, ws:// or wss://.
	URL string
	// Username and Password enable HTTP Basic auth when both are set.
	Username string
	Password string
	// SkipTLSVerify disables certificate verification for wss:// bridges
	// with self-signed certificates.
	SkipTLSVerify bool
}

// WebSocketTransport reaches a console through a serial-over-WebSocket
// bridge. Binary messages carry raw console bytes in both directions.
type WebSocketTransport struct {
	streamTransport
	cfg WebSocketConfig
}

// wsByteStream adapts a websocket connection to an io.ReadWriteCloser by
// buffering incoming binary messages.
type wsByteStream struct {
	conn      *websocket.Conn
	buf       []byte
	bufOffset int
}

func (w *wsByteStream) Read(p []byte) (int, error) {
	if w.bufOffset < len(w.buf) {
		n := copy(p, w.buf[w.bufOffset:])
		w.bufOffset += n
		return n, nil
	}

	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		if messageType != websocket.BinaryMessage {
			continue
		}
		w.buf = data
		w.bufOffset = 0
		n := copy(p, w.buf)
		w.bufOffset = n
		return n, nil
	}
}

func (w *wsByteStream) Write(p []byte) (int, error) {
	if err := w.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *wsByteStream) Close() error {
	return w.conn.Close()
}

// NewWebSocketTransport builds a WebSocket transport. The connection is not
// established until Open is called.
func NewWebSocketTransport(cfg WebSocketConfig) (*WebSocketTransport, error) {
	if cfg.URL == "" {
		return nil, ErrMissingDevicePath
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}
	switch u.Scheme {
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	t := &WebSocketTransport{cfg: cfg}
	t.dial = func() (io.ReadWriteCloser, error) {
		dialer := websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		}
		if u.Scheme == "wss" {
			dialer.TLSClientConfig = &tls.Config{
				InsecureSkipVerify: cfg.SkipTLSVerify,
			}
		}

		headers := http.Header{}
		if cfg.Username != "" && cfg.Password != "" {
			credentials := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
			headers.Set("Authorization", "Basic "+credentials)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		conn, resp, err := dialer.DialContext(ctx, cfg.URL, headers)
		if err != nil {
			if resp != nil {
				return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %v", resp.StatusCode, err)
			}
			return nil, fmt.Errorf("WebSocket connection failed: %v", err)
		}
		return &wsByteStream{conn: conn}, nil
	}
	return t, nil
}

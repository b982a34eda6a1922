// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

import (
	"fmt"
	"io"
	"net"
	"time"
)

// DefaultTCPPort is the port WeatherLink IP loggers listen on. They expose
// the exact serial console protocol over a plain TCP stream.
const DefaultTCPPort = 22222

// TCPTransport connects to a console through a WeatherLink IP logger or a
// serial-over-TCP bridge.
type TCPTransport struct {
	streamTransport
	addr string
}

// NewTCPTransport builds a TCP transport for addr ("host:port"). The
// connection is not established until Open is called.
func NewTCPTransport(addr string) (*TCPTransport, error) {
	if addr == "" {
		return nil, ErrMissingDevicePath
	}

	t := &TCPTransport{addr: addr}
	t.dial = func() (io.ReadWriteCloser, error) {
		conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %v", addr, err)
		}
		return conn, nil
	}
	return t, nil
}

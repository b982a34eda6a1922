// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// SerialConfig configures a SerialTransport.
type SerialConfig struct {
	// Path is the serial device, e.g. /dev/ttyUSB0 or COM3.
	Path string
	// BaudRate defaults to 19200, the console's factory setting.
	BaudRate int
}

// SerialTransport connects to a console over an RS-232/USB serial link.
type SerialTransport struct {
	streamTransport
	cfg SerialConfig
}

// NewSerialTransport builds a serial transport. The port is not opened
// until Open is called.
func NewSerialTransport(cfg SerialConfig) (*SerialTransport, error) {
	if cfg.Path == "" {
		return nil, ErrMissingDevicePath
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}

	t := &SerialTransport{cfg: cfg}
	t.dial = func() (io.ReadWriteCloser, error) {
		mode := &serial.Mode{
			BaudRate: cfg.BaudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
		port, err := serial.Open(cfg.Path, mode)
		if err != nil {
			return nil, fmt.Errorf("failed to open serial port %s: %v", cfg.Path, err)
		}
		return port, nil
	}
	return t, nil
}

// Path returns the configured serial device path.
func (t *SerialTransport) Path() string {
	return t.cfg.Path
}

// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Harry Dehix

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/harrydehix/vantgo/pkg/vantage"
)

// openTransport builds the byte transport selected by the connection flags.
// At least one of --port, --addr and --url must be given; when several are,
// --url takes precedence over --addr, and --addr over --port.
func openTransport() (vantage.Transport, string, error) {
	if wsURL != "" {
		transport, err := vantage.NewWebSocketTransport(vantage.WebSocketConfig{
			URL:           wsURL,
			Username:      wsUsername,
			Password:      os.Getenv("VANTGO_PASSWORD"),
			SkipTLSVerify: wsNoSSLVerify,
		})
		if err != nil {
			return nil, "", err
		}
		return transport, fmt.Sprintf("WebSocket: %s", wsURL), nil
	}

	if tcpAddr != "" {
		transport, err := vantage.NewTCPTransport(tcpAddr)
		if err != nil {
			return nil, "", err
		}
		return transport, fmt.Sprintf("TCP: %s", tcpAddr), nil
	}

	if portName != "" {
		transport, err := vantage.NewSerialTransport(vantage.SerialConfig{
			Path:     portName,
			BaudRate: baudRate,
		})
		if err != nil {
			return nil, "", err
		}
		return transport, fmt.Sprintf("Serial: %s @ %d baud", portName, baudRate), nil
	}

	return nil, "", fmt.Errorf("one of --port, --addr or --url must be specified")
}

// openDevice builds and opens a device from the connection and model flags.
func openDevice(ctx context.Context) (*vantage.Device, error) {
	model, err := vantage.ParseModel(modelName)
	if err != nil {
		return nil, err
	}

	transport, description, err := openTransport()
	if err != nil {
		return nil, err
	}

	log := newLogger()
	log.Infof("connecting to %s", description)

	device := vantage.NewDevice(model, transport, vantage.WithLogger(log))
	if err := device.Open(ctx); err != nil {
		return nil, fmt.Errorf("failed to open device: %w", err)
	}
	return device, nil
}

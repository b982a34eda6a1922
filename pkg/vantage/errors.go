// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

import "errors"

// The closed set of failure kinds surfaced by this package. Callers match
// them with errors.Is. Parser failures wrap ErrParser together with the
// underlying kind, e.g. ErrInvalidSchema.
var (
	// ErrClosedConnection is returned when an operation is attempted on a
	// transport that is not open, or when a close interrupts a pending read.
	ErrClosedConnection = errors.New("connection to console is closed")

	// ErrFailedToSendCommand is returned when the console answers a command
	// with something other than an ACK (notably NAK or CANCEL), or when the
	// wake-up handshake fails after all retries.
	ErrFailedToSendCommand = errors.New("failed to send command to console")

	// ErrMalformedData is returned when a framed response fails its CRC
	// check or does not have the expected shape.
	ErrMalformedData = errors.New("malformed data received from console")

	// ErrParser is returned when the binary parser fails on a payload.
	ErrParser = errors.New("parser error")

	// ErrInvalidSchema is returned for schemas whose copy-of or depends-on
	// targets cannot be resolved. This is a programmer error.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrSerialConnection is returned when the underlying transport fails
	// to open or close. Write failures are reported as ErrFailedToWrite.
	ErrSerialConnection = errors.New("serial connection error")

	// ErrFailedToWrite is returned when writing to the transport fails.
	ErrFailedToWrite = errors.New("failed to write to console")

	// ErrDeviceStillConnected is returned when opening a device that has
	// not been closed first.
	ErrDeviceStillConnected = errors.New("device is still connected")

	// ErrUnsupportedDeviceModel is returned when an operation is not
	// available on the configured console model.
	ErrUnsupportedDeviceModel = errors.New("operation not supported by this device model")

	// ErrMissingDevicePath is returned when no serial path is configured.
	ErrMissingDevicePath = errors.New("missing device path")

	// ErrTimeout is returned when the console does not answer in time.
	ErrTimeout = errors.New("timed out waiting for console")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

// Package vantage implements the host side of the Davis Instruments Vantage
// console protocol (Vantage Pro, Pro 2 and Vue) over a serial or TCP byte
// transport.
//
// The package has three layers: a byte Transport abstraction, a Console that
// frames command/response exchanges (wake-up, ACK discipline, CRC-16
// validation), and a declarative binary parser that decodes the console's
// packed little-endian records (LOOP, LOOP2, highs/lows) into typed values.
// Device variants select which operations a given console model supports.
package vantage

import "time"

// Console control bytes
const (
	ACK    = 0x06
	NAK    = 0x15
	CANCEL = 0x18
	LF     = 0x0A
	CR     = 0x0D
)

// Wire commands understood by the console. Commands are ASCII and terminated
// by a line feed.
const (
	cmdWakeUp           = "\n"
	cmdTest             = "TEST\n"
	cmdFirmwareDateCode = "VER\n"
	cmdFirmwareVersion  = "NVER\n"
	cmdLOOP1            = "LPS 1 1\n"
	cmdLOOP2            = "LPS 2 1\n"
	cmdHighsAndLows     = "HILOWS\n"
)

// Framed response sizes in bytes, including the leading ACK and the trailing
// big-endian CRC.
const (
	loopFrameSize    = 1 + 99 + 2
	hilowsFrameSize  = 1 + 436 + 2
	wakeUpReplySize  = 2
	frameOverhead    = 3
	maxWakeUpRetries = 3
)

// Timing. The console auto-sleeps after roughly two minutes of inactivity
// and needs a wake-up sequence before each burst of commands.
const (
	DefaultBaudRate    = 19200
	defaultReadTimeout = 2 * time.Second
	wakeUpReplyTimeout = 1200 * time.Millisecond
	wakeUpRetryDelay   = 500 * time.Millisecond
)

// firmwareLOOP2Cutoff is the last firmware build date without LOOP2 support:
// firmware dated after it answers "LPS 2 1", firmware of this date or older
// only speaks LOOP1.
var firmwareLOOP2Cutoff = time.Date(2002, time.April, 24, 0, 0, 0, 0, time.UTC)

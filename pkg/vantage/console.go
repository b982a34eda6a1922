// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Console is the command/response layer over a Transport. It owns the
// half-duplex turn discipline: exactly one command is outstanding at a time,
// enforced by a mutex because the console physically cannot multiplex.
type Console struct {
	transport   Transport
	log         *zap.SugaredLogger
	readTimeout time.Duration
	rainSize    RainCollectorSize

	mu sync.Mutex
}

// ConsoleOption customizes a Console.
type ConsoleOption func(*Console)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) ConsoleOption {
	return func(c *Console) { c.log = log }
}

// WithReadTimeout overrides the per-read deadline (default 2s).
func WithReadTimeout(d time.Duration) ConsoleOption {
	return func(c *Console) { c.readTimeout = d }
}

// WithRainCollector selects the tipping-bucket size used by the rain
// transforms (default 0.01 in).
func WithRainCollector(size RainCollectorSize) ConsoleOption {
	return func(c *Console) { c.rainSize = size }
}

// NewConsole builds a console on top of transport.
func NewConsole(transport Transport, opts ...ConsoleOption) *Console {
	c := &Console{
		transport:   transport,
		log:         zap.NewNop().Sugar(),
		readTimeout: defaultReadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transport returns the underlying byte transport.
func (c *Console) Transport() Transport {
	return c.transport
}

// Open opens the underlying transport.
func (c *Console) Open() error {
	return c.transport.Open()
}

// Close closes the underlying transport.
func (c *Console) Close() error {
	return c.transport.Close()
}

// guard fails when the transport is not open. Every public operation checks
// this before touching the wire.
func (c *Console) guard() error {
	if !c.transport.IsOpen() {
		return ErrClosedConnection
	}
	return nil
}

// WakeUp rouses a sleeping console. The console auto-sleeps after about two
// minutes of inactivity; the host sends a bare line feed and the console
// answers with LF CR once it is listening. Up to three attempts are made.
func (c *Console) WakeUp(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wakeUp(ctx)
}

func (c *Console) wakeUp(ctx context.Context) error {
	if err := c.guard(); err != nil {
		return err
	}

	for attempt := 1; attempt <= maxWakeUpRetries; attempt++ {
		c.transport.Read() // drop stale bytes
		if err := c.transport.Write([]byte(cmdWakeUp)); err != nil {
			return err
		}

		reply, err := c.transport.WaitForBuffer(ctx, wakeUpReplyTimeout)
		if err == nil && len(reply) >= wakeUpReplySize && reply[0] == LF && reply[1] == CR {
			c.log.Debugw("console awake", "attempt", attempt)
			return nil
		}

		c.log.Debugw("wake-up attempt failed", "attempt", attempt, "reply", reply, "err", err)
		select {
		case <-time.After(wakeUpRetryDelay):
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrFailedToSendCommand, ctx.Err())
		}
	}
	return fmt.Errorf("%w: console did not wake up after %d attempts", ErrFailedToSendCommand, maxWakeUpRetries)
}

// ValidateConnection verifies the link by sending "TEST" and checking that
// the console echoes it back.
func (c *Console) ValidateConnection(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	reply, err := c.exchange(ctx, cmdTest)
	if err != nil {
		return err
	}
	if len(reply) < 6 || string(reply[2:6]) != "TEST" {
		return fmt.Errorf("%w: unexpected TEST reply %q", ErrMalformedData, reply)
	}
	return nil
}

// FirmwareDateCode returns the console firmware's build date as the console
// prints it, e.g. "Apr 24 2002".
func (c *Console) FirmwareDateCode(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.textCommand(ctx, cmdFirmwareDateCode)
}

// FirmwareVersion returns the console firmware version, e.g. "v3.80".
// Only consoles with April 2006 or later firmware answer NVER.
func (c *Console) FirmwareVersion(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	version, err := c.textCommand(ctx, cmdFirmwareVersion)
	if err != nil {
		return "", err
	}
	return "v" + version, nil
}

// SupportsLOOP2 reports whether the console firmware is recent enough to
// answer "LPS 2 1" requests.
func (c *Console) SupportsLOOP2(ctx context.Context) (bool, error) {
	code, err := c.FirmwareDateCode(ctx)
	if err != nil {
		return false, err
	}
	date, err := time.Parse("Jan 2 2006", strings.Join(strings.Fields(code), " "))
	if err != nil {
		return false, fmt.Errorf("%w: unparseable firmware date code %q", ErrMalformedData, code)
	}
	return date.After(firmwareLOOP2Cutoff), nil
}

// LOOP1 fetches and parses one LOOP packet.
func (c *Console) LOOP1(ctx context.Context) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload, err := c.framedCommand(ctx, cmdLOOP1, loopFrameSize)
	if err != nil {
		return nil, err
	}
	if payload[4] != 0 {
		return nil, fmt.Errorf("%w: expected a LOOP1 packet, got package type %d", ErrMalformedData, payload[4])
	}
	return Parse(LOOP1Schema(c.rainSize), payload, 0)
}

// LOOP2 fetches and parses one LOOP2 packet. The console transmits LOOP2 in
// two serial bursts with a short gap; the reassembly is transparent here.
func (c *Console) LOOP2(ctx context.Context) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload, err := c.framedCommand(ctx, cmdLOOP2, loopFrameSize)
	if err != nil {
		return nil, err
	}
	if payload[4] == 0 {
		return nil, fmt.Errorf("%w: expected a LOOP2 packet, got package type %d", ErrMalformedData, payload[4])
	}
	return Parse(LOOP2Schema(c.rainSize), payload, 0)
}

// HighsAndLows fetches and parses the console's highs-and-lows summary.
func (c *Console) HighsAndLows(ctx context.Context) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload, err := c.framedCommand(ctx, cmdHighsAndLows, hilowsFrameSize)
	if err != nil {
		return nil, err
	}
	return Parse(HighsAndLowsSchema(c.rainSize), payload, 0)
}

// exchange writes a command and returns the first reply buffer.
func (c *Console) exchange(ctx context.Context, cmd string) ([]byte, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	c.transport.Read() // drop stale bytes
	if err := c.transport.Write([]byte(cmd)); err != nil {
		return nil, err
	}
	return c.transport.WaitForBuffer(ctx, c.readTimeout)
}

// textCommand runs a command with a textual reply and returns the trimmed
// payload after the console's "OK" line.
func (c *Console) textCommand(ctx context.Context, cmd string) (string, error) {
	reply, err := c.exchange(ctx, cmd)
	if err != nil {
		return "", err
	}

	text := string(reply)
	idx := strings.Index(text, "OK")
	if idx < 0 {
		return "", fmt.Errorf("%w: reply %q carries no OK marker", ErrMalformedData, text)
	}
	return strings.Trim(text[idx+2:], "\n\r \t"), nil
}

// framedCommand runs a command with an ACK+CRC framed reply of a known size,
// reassembling multi-burst responses, and returns the bare payload.
func (c *Console) framedCommand(ctx context.Context, cmd string, frameSize int) ([]byte, error) {
	frame, err := c.exchange(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if len(frame) > 0 && frame[0] != ACK {
		return nil, ackError(frame[0])
	}

	// Responses may arrive split across several readable events (LOOP2
	// always does, the OS serial buffer sometimes splits the rest). Keep
	// collecting until the frame is complete.
	for len(frame) < frameSize {
		chunk, err := c.transport.WaitForBuffer(ctx, c.readTimeout)
		if err != nil {
			return nil, err
		}
		frame = append(frame, chunk...)
	}

	return splitFrame(frame[:frameSize])
}

// splitFrame validates the ACK byte and the trailing big-endian CRC, and
// returns the payload between them.
func splitFrame(frame []byte) ([]byte, error) {
	if len(frame) < frameOverhead {
		return nil, fmt.Errorf("%w: frame of %d bytes is too short", ErrMalformedData, len(frame))
	}
	if frame[0] != ACK {
		return nil, ackError(frame[0])
	}

	payload := frame[1 : len(frame)-2]
	expected := binary.BigEndian.Uint16(frame[len(frame)-2:])
	if !VerifyCRC(payload, expected) {
		return nil, fmt.Errorf("%w: CRC mismatch (expected 0x%04X, got 0x%04X)", ErrMalformedData, ComputeCRC(payload), expected)
	}
	return payload, nil
}

func ackError(b byte) error {
	switch b {
	case NAK:
		return fmt.Errorf("%w: console answered NAK", ErrFailedToSendCommand)
	case CANCEL:
		return fmt.Errorf("%w: console cancelled the command", ErrFailedToSendCommand)
	default:
		return fmt.Errorf("%w: expected ACK, got 0x%02X", ErrFailedToSendCommand, b)
	}
}

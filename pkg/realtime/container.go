// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

// Package realtime supervises a Vantage console, refreshing its realtime
// record on a fixed interval and surfacing an observable update lifecycle.
// The container owns exactly one live device at a time, recovers from
// transport faults with a one-shot reconnect backoff, and delivers its
// events strictly in order per connection generation.
package realtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/harrydehix/vantgo/pkg/vantage"
)

// DefaultUpdateInterval is the fetch period used when the settings leave it
// unset.
const DefaultUpdateInterval = 60 * time.Second

// reconnectDelay bounds how quickly a failed connection is retried.
const reconnectDelay = 15 * time.Second

// Station is the slice of a device the container drives. The production
// implementation wraps vantage.Device; tests substitute their own.
type Station interface {
	Open(ctx context.Context) error
	WakeUp(ctx context.Context) error
	Fetch(ctx context.Context) (vantage.Record, error)
	Close() error
}

// StationFactory builds a fresh station for a connection generation.
type StationFactory func() (Station, error)

// deviceStation adapts vantage.Device to the Station interface, fetching
// the richest record the model supports.
type deviceStation struct {
	device *vantage.Device
}

func (s deviceStation) Open(ctx context.Context) error   { return s.device.Open(ctx) }
func (s deviceStation) WakeUp(ctx context.Context) error { return s.device.WakeUp(ctx) }
func (s deviceStation) Close() error                     { return s.device.Close() }

func (s deviceStation) Fetch(ctx context.Context) (vantage.Record, error) {
	if s.device.Model() == vantage.ModelVantagePro2 {
		return s.device.RichRealtimeRecord(ctx)
	}
	return s.device.LOOP1(ctx)
}

// NewDeviceStation wraps a device in the Station interface. Combine with
// WithStationFactory to supervise a console reached over a non-serial
// transport.
func NewDeviceStation(device *vantage.Device) Station {
	return deviceStation{device: device}
}

// Container periodically fetches realtime data from a console and emits
// lifecycle events.
type Container struct {
	settings   Settings
	log        *zap.SugaredLogger
	newStation StationFactory
	events     *emitter

	// cycleMu serializes fetch cycles: a new cycle never starts before the
	// previous one's events have been emitted.
	cycleMu sync.Mutex

	mu         sync.Mutex
	station    Station
	stop       chan struct{}
	reconnect  *time.Timer
	running    bool
	record     vantage.Record
	recordTime time.Time
}

// Option customizes a Container.
type Option func(*Container)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Container) { c.log = log }
}

// WithStationFactory replaces how the container builds its device. Used by
// tests and by callers that reach the console over TCP or WebSocket.
func WithStationFactory(f StationFactory) Option {
	return func(c *Container) { c.newStation = f }
}

// New validates settings and builds a container. Nothing is opened yet.
func New(settings Settings, opts ...Option) (*Container, error) {
	if settings.UpdateInterval <= 0 {
		settings.UpdateInterval = DefaultUpdateInterval
	}
	if settings.Device.BaudRate == 0 {
		settings.Device.BaudRate = vantage.DefaultBaudRate
	}

	c := &Container{
		settings: settings,
		log:      zap.NewNop().Sugar(),
		events:   newEmitter(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.newStation == nil {
		if settings.Device.Path == "" {
			return nil, vantage.ErrMissingDevicePath
		}
		c.newStation = func() (Station, error) {
			transport, err := vantage.NewSerialTransport(vantage.SerialConfig{
				Path:     settings.Device.Path,
				BaudRate: settings.Device.BaudRate,
			})
			if err != nil {
				return nil, err
			}
			return deviceStation{device: vantage.NewDevice(settings.Device.Model, transport)}, nil
		}
	}
	return c, nil
}

// On registers a handler for an event kind. Handlers run on the container's
// update goroutine and must not block.
func (c *Container) On(ev Event, fn func(err error)) {
	c.events.on(ev, fn)
}

// WaitForUpdate blocks until the next update event and returns its error
// argument (nil for a successful cycle).
func (c *Container) WaitForUpdate(ctx context.Context) error {
	ch := c.events.wait(EventUpdate)
	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitForValidUpdate blocks until the next successful update.
func (c *Container) WaitForValidUpdate(ctx context.Context) error {
	ch := c.events.wait(EventValidUpdate)
	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LatestRecord returns the most recent realtime record and when it was
// fetched. The record is nil until the first valid update.
func (c *Container) LatestRecord() (vantage.Record, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record, c.recordTime
}

// Open starts a new connection generation. Any previous generation is
// closed first, so exactly one device is ever live. How long Open blocks is
// governed by the OnCreate gate.
func (c *Container) Open(ctx context.Context) error {
	c.Close()

	station, err := c.newStation()
	if err != nil {
		return err
	}

	stop := make(chan struct{})
	c.mu.Lock()
	c.station = station
	c.stop = stop
	c.running = true
	c.mu.Unlock()

	switch c.settings.OnCreate {
	case DoNothing:
		go c.start(station, stop)
		return nil

	case WaitUntilOpen:
		ch := c.events.wait(EventOpen)
		go c.start(station, stop)
		select {
		case <-ch:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}

	case WaitForFirstValidUpdate:
		ch := c.events.wait(EventValidUpdate)
		go c.start(station, stop)
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}

	default: // WaitForFirstUpdate
		ch := c.events.wait(EventUpdate)
		go c.start(station, stop)
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// start opens the station, runs the first cycle and enters the periodic
// loop. Open failures follow the same error path as a failed cycle so that
// the reconnect machinery and the update(err) contract hold from the very
// first attempt.
func (c *Container) start(station Station, stop chan struct{}) {
	ctx, cancel := c.cycleContext()
	err := station.Open(ctx)
	cancel()
	if err != nil {
		c.log.Warnw("failed to open device", "err", err)
		c.onConnectionError(station)
		c.events.emit(EventUpdate, err)
	} else {
		c.events.emit(EventOpen, nil)
		c.runCycle(station)
	}

	// The periodic loop runs for the whole generation; while the transport
	// is down its cycles fail fast and the reconnect timer does the work.
	go c.loop(station, stop)
}

func (c *Container) loop(station Station, stop chan struct{}) {
	ticker := time.NewTicker(c.settings.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.runCycle(station)
		}
	}
}

func (c *Container) cycleContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.settings.UpdateInterval)
}

// runCycle performs one fetch: wake, fetch, store, emit. On failure the
// connection is torn down, a reconnect is scheduled and the update event
// carries the error; the valid-update event is suppressed.
func (c *Container) runCycle(station Station) {
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()

	c.mu.Lock()
	running := c.running
	c.mu.Unlock()
	if !running {
		return
	}

	ctx, cancel := c.cycleContext()
	defer cancel()

	record, err := c.fetch(ctx, station)
	if err != nil {
		c.log.Warnw("update cycle failed", "err", err)
		c.onConnectionError(station)
		c.events.emit(EventUpdate, err)
		return
	}

	c.mu.Lock()
	c.record = record
	c.recordTime = time.Now()
	c.mu.Unlock()

	c.events.emit(EventUpdate, nil)
	c.events.emit(EventValidUpdate, nil)
}

func (c *Container) fetch(ctx context.Context, station Station) (vantage.Record, error) {
	if err := station.WakeUp(ctx); err != nil {
		return nil, err
	}
	return station.Fetch(ctx)
}

// onConnectionError is the default reconnect policy: close the transport
// and schedule a one-shot reopen after a bounded delay.
func (c *Container) onConnectionError(station Station) {
	station.Close()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || c.reconnect != nil {
		return
	}
	stop := c.stop
	c.reconnect = time.AfterFunc(reconnectDelay, func() {
		c.mu.Lock()
		c.reconnect = nil
		running := c.running
		c.mu.Unlock()
		if !running {
			return
		}
		c.reopen(station, stop)
	})
}

func (c *Container) reopen(station Station, stop chan struct{}) {
	select {
	case <-stop:
		return
	default:
	}

	ctx, cancel := c.cycleContext()
	err := station.Open(ctx)
	cancel()
	if err != nil {
		c.log.Warnw("reconnect failed", "err", err)
		c.mu.Lock()
		running := c.running
		c.mu.Unlock()
		if running {
			c.onConnectionError(station)
			c.events.emit(EventUpdate, err)
		}
		return
	}

	c.log.Infow("reconnected to device")
	c.events.emit(EventOpen, nil)
	c.runCycle(station)
}

// Close stops the timers, closes the transport and delivers the close
// event. It is safe to call in any state; closing a closed container is a
// no-op. Pending Wait* calls resolve with ErrClosedConnection.
func (c *Container) Close() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = false
	close(c.stop)
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	station := c.station
	c.station = nil
	c.mu.Unlock()

	// Let an in-flight cycle finish emitting before the close event; no new
	// cycle can start once the stop channel is closed.
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()

	var err error
	if station != nil {
		err = station.Close()
	}
	c.events.emit(EventClose, nil)
	c.events.failWaiters(vantage.ErrClosedConnection)
	if err != nil {
		return fmt.Errorf("failed to close device: %w", err)
	}
	return nil
}

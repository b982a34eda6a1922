// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

import (
	"context"
	"fmt"
	"strings"
)

// Model identifies a console model. The models share one wire protocol but
// differ in which commands their firmware answers.
type Model int

const (
	// ModelVantagePro is the original Vantage Pro.
	ModelVantagePro Model = iota
	// ModelVantagePro2 is the Vantage Pro 2, the only model with LOOP2 and
	// rich realtime records.
	ModelVantagePro2
	// ModelVantageVue is the Vantage Vue.
	ModelVantageVue
)

func (m Model) String() string {
	switch m {
	case ModelVantagePro:
		return "Vantage Pro"
	case ModelVantagePro2:
		return "Vantage Pro 2"
	case ModelVantageVue:
		return "Vantage Vue"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseModel maps a configuration string to a Model.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "pro", "vantagepro":
		return ModelVantagePro, nil
	case "pro2", "vantagepro2":
		return ModelVantagePro2, nil
	case "vue", "vantagevue":
		return ModelVantageVue, nil
	default:
		return 0, fmt.Errorf("%w: unknown model %q", ErrUnsupportedDeviceModel, s)
	}
}

// Device is a model-aware console handle. Operations the model's firmware
// does not implement fail with ErrUnsupportedDeviceModel without touching
// the wire.
type Device struct {
	model   Model
	console *Console
}

// NewDevice builds a device of the given model on top of transport.
func NewDevice(model Model, transport Transport, opts ...ConsoleOption) *Device {
	return &Device{
		model:   model,
		console: NewConsole(transport, opts...),
	}
}

// Model returns the configured console model.
func (d *Device) Model() Model {
	return d.model
}

// Console exposes the underlying protocol engine.
func (d *Device) Console() *Console {
	return d.console
}

// Open opens the transport and wakes the console. Opening an already-open
// device fails with ErrDeviceStillConnected; close it first.
func (d *Device) Open(ctx context.Context) error {
	if d.console.Transport().IsOpen() {
		return ErrDeviceStillConnected
	}
	if err := d.console.Open(); err != nil {
		return err
	}
	if err := d.console.WakeUp(ctx); err != nil {
		d.console.Close()
		return err
	}
	return nil
}

// Close closes the transport. Closing a closed device is a no-op.
func (d *Device) Close() error {
	return d.console.Close()
}

// WakeUp rouses a sleeping console.
func (d *Device) WakeUp(ctx context.Context) error {
	return d.console.WakeUp(ctx)
}

// ValidateConnection checks the link with the TEST command.
func (d *Device) ValidateConnection(ctx context.Context) error {
	return d.console.ValidateConnection(ctx)
}

// FirmwareDateCode returns the firmware build date string.
func (d *Device) FirmwareDateCode(ctx context.Context) (string, error) {
	return d.console.FirmwareDateCode(ctx)
}

// FirmwareVersion returns the firmware version string. Supported on the
// Vantage Pro 2 and Vue.
func (d *Device) FirmwareVersion(ctx context.Context) (string, error) {
	if d.model == ModelVantagePro {
		return "", fmt.Errorf("%w: %s does not answer NVER", ErrUnsupportedDeviceModel, d.model)
	}
	return d.console.FirmwareVersion(ctx)
}

// LOOP1 fetches one LOOP packet.
func (d *Device) LOOP1(ctx context.Context) (Record, error) {
	return d.console.LOOP1(ctx)
}

// LOOP2 fetches one LOOP2 packet. Vantage Pro 2 only.
func (d *Device) LOOP2(ctx context.Context) (Record, error) {
	if d.model != ModelVantagePro2 {
		return nil, fmt.Errorf("%w: %s does not answer LPS 2", ErrUnsupportedDeviceModel, d.model)
	}
	return d.console.LOOP2(ctx)
}

// HighsAndLows fetches the highs-and-lows summary.
func (d *Device) HighsAndLows(ctx context.Context) (Record, error) {
	return d.console.HighsAndLows(ctx)
}

// RichRealtimeRecord fetches LOOP1 and LOOP2 back to back and merges them
// into one record carrying the union of both packets' readings. Vantage
// Pro 2 only.
func (d *Device) RichRealtimeRecord(ctx context.Context) (Record, error) {
	if d.model != ModelVantagePro2 {
		return nil, fmt.Errorf("%w: rich realtime records need LOOP2: %s", ErrUnsupportedDeviceModel, d.model)
	}

	loop1, err := d.console.LOOP1(ctx)
	if err != nil {
		return nil, err
	}
	loop2, err := d.console.LOOP2(ctx)
	if err != nil {
		return nil, err
	}
	return MergeRealtimeRecords(loop1, loop2), nil
}

// MergeRealtimeRecords builds the rich realtime record from one LOOP1 and
// one LOOP2 record. LOOP1 contributes its exclusive sections (extra sensors,
// forecast, battery telemetry), LOOP2 everything it measures better; on
// conflicts LOOP2 wins. The two rain substructures are unified separately so
// neither packet's exclusive rain windows are lost.
func MergeRealtimeRecords(loop1, loop2 Record) Record {
	base := loop1.Without("alarms", "packageType", "nextArchiveRecord", "rain")
	overlay := loop2.Without("et", "packageType", "graphPointers", "rain")

	rich := DeepMerge(base, overlay)
	rich["rain"] = DeepMerge(loop1.Child("rain"), loop2.Child("rain"))
	return rich
}

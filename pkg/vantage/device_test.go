// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

import (
	"context"
	"errors"
	"testing"
)

// ============================================================
// Model selection
// ============================================================

func TestParseModel(t *testing.T) {
	tests := []struct {
		input    string
		expected Model
	}{
		{"pro", ModelVantagePro},
		{"Vantage Pro", ModelVantagePro},
		{"pro2", ModelVantagePro2},
		{"vantagepro2", ModelVantagePro2},
		{"vue", ModelVantageVue},
		{"Vantage Vue", ModelVantageVue},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			model, err := ParseModel(tt.input)
			if err != nil {
				t.Fatalf("ParseModel(%q) failed: %v", tt.input, err)
			}
			if model != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, model)
			}
		})
	}

	if _, err := ParseModel("monitor II"); !errors.Is(err, ErrUnsupportedDeviceModel) {
		t.Errorf("expected ErrUnsupportedDeviceModel, got %v", err)
	}
}

// ============================================================
// Per-model operation support
// ============================================================

func TestDevice_UnsupportedOperations(t *testing.T) {
	ctx := context.Background()

	pro := NewDevice(ModelVantagePro, newMockTransport())
	if _, err := pro.FirmwareVersion(ctx); !errors.Is(err, ErrUnsupportedDeviceModel) {
		t.Errorf("Pro FirmwareVersion: expected ErrUnsupportedDeviceModel, got %v", err)
	}
	if _, err := pro.LOOP2(ctx); !errors.Is(err, ErrUnsupportedDeviceModel) {
		t.Errorf("Pro LOOP2: expected ErrUnsupportedDeviceModel, got %v", err)
	}
	if _, err := pro.RichRealtimeRecord(ctx); !errors.Is(err, ErrUnsupportedDeviceModel) {
		t.Errorf("Pro RichRealtimeRecord: expected ErrUnsupportedDeviceModel, got %v", err)
	}

	vue := NewDevice(ModelVantageVue, newMockTransport())
	if _, err := vue.LOOP2(ctx); !errors.Is(err, ErrUnsupportedDeviceModel) {
		t.Errorf("Vue LOOP2: expected ErrUnsupportedDeviceModel, got %v", err)
	}
	if _, err := vue.RichRealtimeRecord(ctx); !errors.Is(err, ErrUnsupportedDeviceModel) {
		t.Errorf("Vue RichRealtimeRecord: expected ErrUnsupportedDeviceModel, got %v", err)
	}
}

func TestDevice_VueSupportsFirmwareVersion(t *testing.T) {
	transport := newMockTransport()
	transport.reply([]byte("\n\rOK\n\r4.12\n\r"))
	vue := NewDevice(ModelVantageVue, transport)

	version, err := vue.FirmwareVersion(context.Background())
	if err != nil {
		t.Fatalf("FirmwareVersion failed: %v", err)
	}
	if version != "v4.12" {
		t.Errorf("expected v4.12, got %q", version)
	}
}

func TestDevice_OpenWhileConnected(t *testing.T) {
	transport := newMockTransport()
	device := NewDevice(ModelVantagePro2, transport)

	if err := device.Open(context.Background()); !errors.Is(err, ErrDeviceStillConnected) {
		t.Errorf("expected ErrDeviceStillConnected on an open transport, got %v", err)
	}
}

// ============================================================
// Rich realtime records
// ============================================================

func TestDevice_RichRealtimeRecord(t *testing.T) {
	transport := newMockTransport()
	transport.reply(frameReply(loop1Payload(t)))
	transport.reply(frameReply(loop2Payload(t)))
	device := NewDevice(ModelVantagePro2, transport)

	rec, err := device.RichRealtimeRecord(context.Background())
	if err != nil {
		t.Fatalf("RichRealtimeRecord failed: %v", err)
	}

	// LOOP2 wins on conflicts.
	if rec.Child("temperature")["out"] != 73.1 {
		t.Errorf("temperature.out should come from LOOP2, got %v", rec.Child("temperature")["out"])
	}
	// LOOP1 exclusives survive.
	if rec.Child("forecast")["rule"] != int64(45) {
		t.Errorf("forecast.rule should come from LOOP1, got %v", rec.Child("forecast"))
	}
	if _, ok := rec.Child("temperature")["extra"]; !ok {
		t.Error("LOOP1 extra temperatures should survive the merge")
	}
	// LOOP2 exclusives arrive.
	if rec.Child("wind").Child("gust")["speed"] != 11.0 {
		t.Errorf("gust should come from LOOP2, got %v", rec.Child("wind"))
	}
	// Dropped sections stay out.
	if _, ok := rec["alarms"]; ok {
		t.Error("alarms must be dropped from the rich record")
	}
	if _, ok := rec["packageType"]; ok {
		t.Error("packageType must be dropped from the rich record")
	}
	if _, ok := rec["graphPointers"]; ok {
		t.Error("graphPointers must be dropped from the rich record")
	}
	// Unified rain: LOOP2 wins where both report, each side's exclusive
	// windows survive.
	rain := rec.Child("rain")
	if rain["day"] != 0.27 {
		t.Errorf("rain.day should come from LOOP2, got %v", rain["day"])
	}
	if rain["year"] != 12.34 {
		t.Errorf("rain.year only exists in LOOP1, got %v", rain["year"])
	}
	if rain["last15min"] != 0.02 {
		t.Errorf("rain.last15min only exists in LOOP2, got %v", rain["last15min"])
	}
}

func TestMergeRealtimeRecords(t *testing.T) {
	loop1 := Record{
		"packageType": int64(0),
		"temperature": Record{"out": 72.0, "extra": []any{nil, 55.0}},
		"rain":        Record{"day": 0.25, "storm": nil},
		"alarms":      Record{"time": int64(0)},
	}
	loop2 := Record{
		"packageType":   int64(1),
		"temperature":   Record{"out": 99.0},
		"rain":          Record{"rate": 0.10},
		"graphPointers": Record{"nextRainStorm": int64(3)},
	}

	rich := MergeRealtimeRecords(loop1, loop2)

	if rich.Child("temperature")["out"] != 99.0 {
		t.Errorf("temperature.out: expected 99.0 (LOOP2 wins), got %v", rich.Child("temperature")["out"])
	}
	rain := rich.Child("rain")
	if rain["day"] != 0.25 {
		t.Errorf("rain.day: expected 0.25 (LOOP1 only), got %v", rain["day"])
	}
	if rain["rate"] != 0.10 {
		t.Errorf("rain.rate: expected 0.10 (LOOP2 only), got %v", rain["rate"])
	}
	if _, ok := rich["alarms"]; ok {
		t.Error("alarms must not survive")
	}
	if _, ok := rich["graphPointers"]; ok {
		t.Error("graphPointers must not survive")
	}

	// The inputs themselves stay untouched.
	if _, ok := loop1["alarms"]; !ok {
		t.Error("merge must not mutate its inputs")
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package realtime

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrydehix/vantgo/pkg/vantage"
)

// Gate selects how far Open blocks before returning.
type Gate int

const (
	// WaitForFirstUpdate blocks until the first update event, successful
	// or not. It is the zero value, so it is the default gate.
	WaitForFirstUpdate Gate = iota
	// DoNothing returns immediately; the transport opens in the background
	// and operations fail with ErrClosedConnection until the open event.
	DoNothing
	// WaitUntilOpen blocks until the transport is open.
	WaitUntilOpen
	// WaitForFirstValidUpdate blocks until the first successful update.
	WaitForFirstValidUpdate
)

func (g Gate) String() string {
	switch g {
	case DoNothing:
		return "do-nothing"
	case WaitUntilOpen:
		return "wait-until-open"
	case WaitForFirstUpdate:
		return "wait-for-first-update"
	case WaitForFirstValidUpdate:
		return "wait-for-first-valid-update"
	default:
		return fmt.Sprintf("Unknown(%d)", int(g))
	}
}

// ParseGate maps a configuration string to a Gate.
func ParseGate(s string) (Gate, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wait-for-first-update":
		return WaitForFirstUpdate, nil
	case "do-nothing":
		return DoNothing, nil
	case "wait-until-open":
		return WaitUntilOpen, nil
	case "wait-for-first-valid-update":
		return WaitForFirstValidUpdate, nil
	default:
		return 0, fmt.Errorf("unknown startup gate %q", s)
	}
}

// DeviceSettings describes the console the container supervises.
type DeviceSettings struct {
	// Path is the serial device path (required unless a custom station
	// factory is installed).
	Path string
	// BaudRate defaults to 19200.
	BaudRate int
	// Model selects the device variant.
	Model vantage.Model
}

// Settings configures a Container.
type Settings struct {
	Device DeviceSettings
	// UpdateInterval is the period between fetch cycles (default 60s).
	UpdateInterval time.Duration
	// OnCreate gates how long Open blocks (default WaitForFirstUpdate).
	OnCreate Gate
}

// settingsFile is the YAML shape of a settings document:
//
//	device:
//	  path: /dev/ttyUSB0
//	  baudRate: 19200
//	  model: pro2
//	updateInterval: 60s
//	onCreate: wait-for-first-valid-update
type settingsFile struct {
	Device struct {
		Path     string `yaml:"path"`
		BaudRate int    `yaml:"baudRate"`
		Model    string `yaml:"model"`
	} `yaml:"device"`
	UpdateInterval string `yaml:"updateInterval"`
	OnCreate       string `yaml:"onCreate"`
}

// LoadSettings reads and validates a YAML settings file.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var raw settingsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}

	model, err := vantage.ParseModel(raw.Device.Model)
	if err != nil {
		return Settings{}, err
	}

	gate, err := ParseGate(raw.OnCreate)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		Device: DeviceSettings{
			Path:     raw.Device.Path,
			BaudRate: raw.Device.BaudRate,
			Model:    model,
		},
		OnCreate: gate,
	}
	if raw.UpdateInterval != "" {
		s.UpdateInterval, err = time.ParseDuration(raw.UpdateInterval)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid updateInterval: %w", err)
		}
	}
	return s, nil
}

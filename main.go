// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix
//
// vantctl - Davis Vantage console tool
//
// A CLI for talking to Davis Instruments Vantage Pro, Pro 2 and Vue weather
// consoles over serial, TCP (WeatherLink IP) or WebSocket bridges.

package main

import (
	"os"

	"github.com/harrydehix/vantgo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Harry Dehix

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// TCP connection flags (WeatherLink IP)
	tcpAddr string

	// WebSocket bridge flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Device flags
	modelName string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "vantctl",
	Short: "Davis Vantage console tool",
	Long: `vantctl - A CLI for Davis Instruments Vantage weather consoles.

Talks the Vantage serial protocol to Pro, Pro 2 and Vue consoles: firmware
queries, realtime LOOP/LOOP2 records, highs-and-lows summaries and a live
dashboard.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 19200]
  TCP:       --addr 192.168.1.50:22222 (WeatherLink IP)
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the VANTGO_PASSWORD
environment variable. The --password flag is intentionally not provided to
avoid leaking credentials in shell history.`,
	Version: "1.0.0",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 19200, "Baud rate (serial only)")

	rootCmd.PersistentFlags().StringVar(&tcpAddr, "addr", "", "TCP address of a WeatherLink IP logger (host:port)")

	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "pro2", "Console model (pro, pro2, vue)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger builds the CLI logger honoring --verbose.
func newLogger() *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

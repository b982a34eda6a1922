// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Harry Dehix

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrydehix/vantgo/pkg/vantage"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Query console firmware information",
	Long: `Wakes the console and prints its firmware build date, firmware
version (where the model supports the NVER query) and whether the firmware
answers LOOP2 requests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		device, err := openDevice(ctx)
		if err != nil {
			return err
		}
		defer device.Close()

		if err := device.ValidateConnection(ctx); err != nil {
			return fmt.Errorf("connection check failed: %w", err)
		}

		dateCode, err := device.FirmwareDateCode(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Model:              %s\n", device.Model())
		fmt.Printf("Firmware date code: %s\n", dateCode)

		version, err := device.FirmwareVersion(ctx)
		switch {
		case err == nil:
			fmt.Printf("Firmware version:   %s\n", version)
		case errors.Is(err, vantage.ErrUnsupportedDeviceModel):
			fmt.Printf("Firmware version:   n/a on this model\n")
		default:
			return err
		}

		loop2, err := device.Console().SupportsLOOP2(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("LOOP2 support:      %v\n", loop2)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

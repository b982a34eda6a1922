// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Harry Dehix

package cmd

import (
	"github.com/spf13/cobra"
)

var hilowsCmd = &cobra.Command{
	Use:   "hilows",
	Short: "Fetch the highs-and-lows summary and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		device, err := openDevice(ctx)
		if err != nil {
			return err
		}
		defer device.Close()

		record, err := device.HighsAndLows(ctx)
		if err != nil {
			return err
		}
		return printJSON(record)
	},
}

func init() {
	rootCmd.AddCommand(hilowsCmd)
}

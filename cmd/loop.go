// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Harry Dehix

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrydehix/vantgo/pkg/vantage"
)

var loopKind string

var loopCmd = &cobra.Command{
	Use:   "loop",
	Short: "Fetch one realtime record and print it as JSON",
	Long: `Wakes the console, fetches a single realtime record and prints it
as indented JSON.

The --kind flag selects the packet: "1" for LOOP1, "2" for LOOP2
(Vantage Pro 2 only) or "rich" for the merged LOOP1+LOOP2 record
(Vantage Pro 2 only).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		device, err := openDevice(ctx)
		if err != nil {
			return err
		}
		defer device.Close()

		var record vantage.Record
		switch loopKind {
		case "1":
			record, err = device.LOOP1(ctx)
		case "2":
			record, err = device.LOOP2(ctx)
		case "rich":
			record, err = device.RichRealtimeRecord(ctx)
		default:
			return fmt.Errorf("unknown --kind %q (use 1, 2 or rich)", loopKind)
		}
		if err != nil {
			return err
		}

		return printJSON(record)
	},
}

func printJSON(record vantage.Record) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(record)
}

func init() {
	loopCmd.Flags().StringVarP(&loopKind, "kind", "k", "1", "Record kind: 1, 2 or rich")
	rootCmd.AddCommand(loopCmd)
}

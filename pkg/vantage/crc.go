// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

import "github.com/sigurn/crc16"

// The console checksums every framed payload with CRC-16-CCITT, polynomial
// 0x1021, initial register 0x0000, no final XOR, bytes processed in
// transmission order. That parameter set is CRC-16/XMODEM.
var crcTable = crc16.MakeTable(crc16.CRC16_XMODEM)

// ComputeCRC computes the console's CRC-16 over data.
func ComputeCRC(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}

// VerifyCRC reports whether data checksums to expected.
func VerifyCRC(data []byte, expected uint16) bool {
	return ComputeCRC(data) == expected
}

// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

import (
	"encoding/binary"
	"testing"
)

// ============================================================
// Frame and payload builders shared by the protocol tests
// ============================================================

func le16(p []byte, pos int, v uint16) {
	binary.LittleEndian.PutUint16(p[pos:], v)
}

// frameReply wraps a payload the way the console does: ACK, payload, CRC
// big-endian over the payload.
func frameReply(payload []byte) []byte {
	crc := ComputeCRC(payload)
	frame := make([]byte, 0, len(payload)+3)
	frame = append(frame, ACK)
	frame = append(frame, payload...)
	frame = append(frame, byte(crc>>8), byte(crc))
	return frame
}

// packStormDate encodes the console's storm-start date word.
func packStormDate(year int, month int, day int) uint16 {
	return uint16(month)<<12 | uint16(day)<<7 | uint16(year-2000)
}

// loop1Payload builds a plausible 99-byte LOOP1 payload.
func loop1Payload(t *testing.T) []byte {
	t.Helper()

	p := make([]byte, 99)
	copy(p, "LOO")
	p[3] = 0xEC // trend -20, falling slowly
	p[4] = 0    // package type LOOP1
	le16(p, 5, 27)

	le16(p, 7, 29920) // 29.920 inHg
	le16(p, 9, 725)   // inside 72.5 F
	p[11] = 45        // inside humidity
	le16(p, 12, 720)  // outside 72.0 F
	p[14] = 5         // wind 5 mph
	p[15] = 6
	le16(p, 16, 270)

	for i := 18; i <= 32; i++ {
		p[i] = 0xFF // extra, soil and leaf temps absent
	}
	p[33] = 40 // outside humidity
	for i := 34; i <= 40; i++ {
		p[i] = 0xFF
	}

	le16(p, 41, 10) // rain rate 0.10 in/h
	p[43] = 0xFF    // no UV sensor
	le16(p, 44, 0x7FFF)
	le16(p, 46, 100) // storm rain 1.00 in
	le16(p, 48, packStormDate(2026, 6, 15))
	le16(p, 50, 25) // day rain 0.25 in
	le16(p, 52, 125)
	le16(p, 54, 1234)

	le16(p, 56, 12) // ET
	le16(p, 58, 34)
	le16(p, 60, 56)

	for i := 62; i <= 69; i++ {
		p[i] = 0xFF
	}

	p[71] = 0x01 // high rain rate alarm

	p[86] = 0
	le16(p, 87, 782) // console battery 4.58 V
	p[89] = 8
	p[90] = 45
	le16(p, 91, 547)  // sunrise 05:47
	le16(p, 93, 1832) // sunset 18:32

	p[95] = LF
	p[96] = CR
	return p
}

// loop2Payload builds a plausible 99-byte LOOP2 payload.
func loop2Payload(t *testing.T) []byte {
	t.Helper()

	p := make([]byte, 99)
	copy(p, "LOO")
	p[3] = 0x14 // trend +20, rising slowly
	p[4] = 1    // package type LOOP2

	le16(p, 7, 29935)
	le16(p, 9, 726)
	p[11] = 44
	le16(p, 12, 731) // outside 73.1 F
	p[14] = 7
	le16(p, 16, 265)
	le16(p, 18, 62) // 10-min average 6.2 mph
	le16(p, 20, 58)
	le16(p, 22, 110) // gust 11.0 mph
	le16(p, 24, 280)

	le16(p, 30, 55) // dew point
	p[33] = 41
	le16(p, 35, 74) // heat index
	le16(p, 37, 72) // wind chill
	le16(p, 39, 75) // thsw

	le16(p, 41, 12) // rain rate 0.12 in/h
	p[43] = 0xFF
	le16(p, 44, 0x7FFF)
	le16(p, 46, 102)
	le16(p, 48, packStormDate(2026, 6, 15))
	le16(p, 50, 27) // day rain 0.27 in
	le16(p, 52, 2)  // last 15 min
	le16(p, 54, 8)  // last hour
	le16(p, 56, 12) // ET day
	le16(p, 58, 31) // last 24 h

	le16(p, 67, 29512)
	le16(p, 69, 29928)

	p[95] = LF
	p[96] = CR
	return p
}

// hilowsPayload builds a 436-byte highs-and-lows payload with a handful of
// recognizable extremes.
func hilowsPayload(t *testing.T) []byte {
	t.Helper()

	p := make([]byte, 436)

	le16(p, 0, 29850) // pressure day low
	le16(p, 2, 29990) // pressure day high
	le16(p, 4, 29700)
	le16(p, 6, 30110)
	le16(p, 8, 29500)
	le16(p, 10, 30340)
	le16(p, 12, 1404) // low at 14:04
	le16(p, 14, 809)  // high at 08:09

	p[16] = 22        // wind day high
	le16(p, 17, 1130) // at 11:30
	p[19] = 30
	p[20] = 45

	le16(p, 21, 760) // inside temp day high 76.0
	le16(p, 23, 681) // day low 68.1
	le16(p, 25, 1501)
	le16(p, 27, 621)
	le16(p, 29, 640)
	le16(p, 31, 790)
	le16(p, 33, 580)
	le16(p, 35, 820)

	// Outside temp day low null: its timestamp must null out with it.
	le16(p, 47, 0x7FFF)
	le16(p, 49, 884) // day high 88.4
	le16(p, 51, 623)
	le16(p, 53, 1544)

	// Station 2 of the extra temps has a day low of 12 F at 06:15.
	for i := 126; i <= 275; i++ {
		p[i] = 0xFF
	}
	p[126+1] = 102 // 12 F after the -90 offset
	le16(p, 156+2, 615)

	for i := 276; i <= 435; i++ {
		p[i] = 0xFF
	}
	return p
}

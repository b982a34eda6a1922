// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

import (
	"fmt"
	"math"
	"time"
)

// Transforms convert the console's raw register values into engineering
// units. They run inside field pipelines after nullable masking, so they
// never see a nil value.

func asFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

// Scale multiplies the value by factor, widening to float64. A factor that
// is the reciprocal of a whole number (0.1, 0.01, 1/1000) is applied as a
// division by that number, so 731 tenths read as 73.1 rather than
// 73.10000000000001.
func Scale(factor float64) Transform {
	if factor != 0 && math.Abs(factor) < 1 {
		if divisor := 1 / factor; divisor == math.Trunc(divisor) {
			return func(v any) any {
				return asFloat(v) / divisor
			}
		}
	}
	return func(v any) any {
		return asFloat(v) * factor
	}
}

// Offset adds delta to the value, widening to float64.
func Offset(delta float64) Transform {
	return func(v any) any {
		return asFloat(v) + delta
	}
}

// RainCollectorSize selects the tipping-bucket size the console is fitted
// with. Rain registers count bucket tips ("clicks").
type RainCollectorSize int

const (
	RainCollectorInch01 RainCollectorSize = iota // 0.01 in
	RainCollectorMM02                            // 0.2 mm
	RainCollectorMM01                            // 0.1 mm
)

// RainClicks converts a click count to inches or millimeters depending on
// the bucket size.
func RainClicks(size RainCollectorSize) Transform {
	switch size {
	case RainCollectorMM02:
		return Scale(0.2)
	case RainCollectorMM01:
		return Scale(0.1)
	default:
		return Scale(0.01)
	}
}

// StormStartDate decodes the console's packed storm-start date word:
// month in the top four bits, day in the next five, year-offset-2000 in the
// low seven.
func StormStartDate() Transform {
	return func(v any) any {
		raw := uint16(asFloat(v))
		year := int(raw&0x007f) + 2000
		month := time.Month(raw & 0xf000 >> 12)
		day := int(raw & 0x0f80 >> 7)
		return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	}
}

// TimeOfDay decodes the console's hour*100+minute time encoding (used for
// sunrise, sunset and highs/lows timestamps) into "HH:MM".
func TimeOfDay() Transform {
	return func(v any) any {
		raw := int(asFloat(v))
		return fmt.Sprintf("%02d:%02d", raw/100, raw%100)
	}
}

// ConsoleBatteryVolts decodes the console battery telemetry word.
func ConsoleBatteryVolts() Transform {
	return func(v any) any {
		raw := int64(asFloat(v))
		return float64(raw*300/512) / 100
	}
}

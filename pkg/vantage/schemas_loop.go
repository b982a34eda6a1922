// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

// Schemas for the console's 99-byte LOOP and LOOP2 payloads. Positions are
// byte offsets into the bare payload (ACK and CRC stripped). The tables
// follow Davis's "Serial Communication Reference" field maps.

// Common nullable sentinels.
const (
	nullU8  = 0xFF
	nullI16 = 0x7FFF
	nullU16 = 0xFFFF
)

// trendText maps the 3-hour barometric trend register to the console's
// display strings. The register reads 'P' (0x50) on old firmware revisions
// that do not measure a trend, which the schema masks as a nullable.
func trendText(v any) any {
	switch int(asFloat(v)) {
	case -60:
		return "Falling Rapidly"
	case -20:
		return "Falling Slowly"
	case 0:
		return "Steady"
	case 20:
		return "Rising Slowly"
	case 60:
		return "Rising Rapidly"
	default:
		return "Unknown"
	}
}

// pressureTrendSchema decodes the trend register twice: once as the raw
// signed value and once, via a copy, as the display text.
func pressureTrendSchema() Object {
	return Object{
		"value": Field{Type: I8, Position: 3, Nullables: []int64{'P'}},
		"text":  CopyOf{Source: "value", Nullables: []int64{'P'}, Transform: []Transform{trendText}},
	}
}

// extraAlarmEntrySchema reads one per-station alarm byte as named bits. The
// console packs alarm flags LSB-first; Bit positions count MSB-first.
func extraAlarmEntrySchema(base float64) Object {
	return Object{
		"lowTemperature":  Field{Type: Bit, Position: base + 0.875},
		"highTemperature": Field{Type: Bit, Position: base + 0.75},
		"lowHumidity":     Field{Type: Bit, Position: base + 0.625},
		"highHumidity":    Field{Type: Bit, Position: base + 0.5},
	}
}

// LOOP1Schema describes the LOOP packet (package type 0).
func LOOP1Schema(rain RainCollectorSize) Object {
	return Object{
		"packageType":       Field{Type: U8, Position: 4},
		"nextArchiveRecord": Field{Type: U16LE, Position: 5},

		"pressure": Object{
			"current": Field{Type: U16LE, Position: 7, Nullables: []int64{0}, Transform: []Transform{Scale(1.0 / 1000)}},
			"trend":   pressureTrendSchema(),
		},

		"temperature": Object{
			"in":    Field{Type: I16LE, Position: 9, Nullables: []int64{nullI16}, Transform: []Transform{Scale(0.1)}},
			"out":   Field{Type: I16LE, Position: 12, Nullables: []int64{nullI16}, Transform: []Transform{Scale(0.1)}},
			"extra": Array{Element: Field{Type: U8, Position: 18, Nullables: []int64{nullU8}, Transform: []Transform{Offset(-90)}}, Length: 7, Kind: PropertyBased},
		},
		"soilTemps": Array{Element: Field{Type: U8, Position: 25, Nullables: []int64{nullU8}, Transform: []Transform{Offset(-90)}}, Length: 4, Kind: PropertyBased},
		"leafTemps": Array{Element: Field{Type: U8, Position: 29, Nullables: []int64{nullU8}, Transform: []Transform{Offset(-90)}}, Length: 4, Kind: PropertyBased},

		"humidity": Object{
			"in":    Field{Type: U8, Position: 11, Nullables: []int64{nullU8}},
			"out":   Field{Type: U8, Position: 33, Nullables: []int64{nullU8}},
			"extra": Array{Element: Field{Type: U8, Position: 34, Nullables: []int64{nullU8}}, Length: 7, Kind: PropertyBased},
		},

		"wind": Object{
			"current":   Field{Type: U8, Position: 14, Nullables: []int64{nullU8}},
			"avg10min":  Field{Type: U8, Position: 15, Nullables: []int64{nullU8}},
			"direction": Field{Type: U16LE, Position: 16, Nullables: []int64{0}},
		},

		"rain": Object{
			"rate":           Field{Type: U16LE, Position: 41, Transform: []Transform{RainClicks(rain)}},
			"storm":          Field{Type: U16LE, Position: 46, Transform: []Transform{RainClicks(rain)}, DependsOn: "stormStartDate"},
			"stormStartDate": Field{Type: U16LE, Position: 48, Nullables: []int64{nullU16}, Transform: []Transform{StormStartDate()}},
			"day":            Field{Type: U16LE, Position: 50, Transform: []Transform{RainClicks(rain)}},
			"month":          Field{Type: U16LE, Position: 52, Transform: []Transform{RainClicks(rain)}},
			"year":           Field{Type: U16LE, Position: 54, Transform: []Transform{RainClicks(rain)}},
		},

		"et": Object{
			"day":   Field{Type: U16LE, Position: 56, Nullables: []int64{nullI16}, Transform: []Transform{Scale(1.0 / 1000)}},
			"month": Field{Type: U16LE, Position: 58, Nullables: []int64{nullI16}, Transform: []Transform{Scale(1.0 / 100)}},
			"year":  Field{Type: U16LE, Position: 60, Nullables: []int64{nullI16}, Transform: []Transform{Scale(1.0 / 100)}},
		},

		"soilMoistures": Array{Element: Field{Type: U8, Position: 62, Nullables: []int64{nullU8}}, Length: 4, Kind: PropertyBased},
		"leafWetnesses": Array{Element: Field{Type: U8, Position: 66, Nullables: []int64{nullU8}}, Length: 4, Kind: PropertyBased},

		"uv":             Field{Type: U8, Position: 43, Nullables: []int64{nullU8}, Transform: []Transform{Scale(0.1)}},
		"solarRadiation": Field{Type: U16LE, Position: 44, Nullables: []int64{nullI16}},

		"alarms": Object{
			"fallingBarTrend": Field{Type: Bit, Position: 70.875},
			"risingBarTrend":  Field{Type: Bit, Position: 70.75},
			"lowInsideTemp":   Field{Type: Bit, Position: 70.625},
			"highInsideTemp":  Field{Type: Bit, Position: 70.5},
			"lowInsideHum":    Field{Type: Bit, Position: 70.375},
			"highInsideHum":   Field{Type: Bit, Position: 70.25},
			"time":            Field{Type: Bit, Position: 70.125},
			"rain": Object{
				"highRate":       Field{Type: Bit, Position: 71.875},
				"fifteenMin":     Field{Type: Bit, Position: 71.75},
				"twentyFourHour": Field{Type: Bit, Position: 71.625},
				"stormTotal":     Field{Type: Bit, Position: 71.5},
				"dailyET":        Field{Type: Bit, Position: 71.375},
			},
			"lowOutsideTemp":  Field{Type: Bit, Position: 72.875},
			"highOutsideTemp": Field{Type: Bit, Position: 72.75},
			"windSpeed":       Field{Type: Bit, Position: 72.625},
			"tenMinAvgSpeed":  Field{Type: Bit, Position: 72.5},
			"lowDewpoint":     Field{Type: Bit, Position: 72.375},
			"highDewpoint":    Field{Type: Bit, Position: 72.25},
			"highHeat":        Field{Type: Bit, Position: 72.125},
			"lowWindChill":    Field{Type: Bit, Position: 72.0},
			"highThsw":        Field{Type: Bit, Position: 73.875},
			"highSolar":       Field{Type: Bit, Position: 73.75},
			"highUV":          Field{Type: Bit, Position: 73.625},
			// One alarm byte per extra sensor station; the entry stride
			// advances the whole element, the bit offsets stay put.
			"extraStations": Array{Element: extraAlarmEntrySchema(74), Length: 8, Kind: EntryBased, Stride: 1},
			"soilLeaf":      Array{Element: extraAlarmEntrySchema(82), Length: 4, Kind: EntryBased, Stride: 1},
		},

		"transmitterBatteryStatus": Field{Type: U8, Position: 86},
		"consoleBatteryVoltage":    Field{Type: U16LE, Position: 87, Transform: []Transform{ConsoleBatteryVolts()}},

		"forecast": Object{
			"icons": Field{Type: U8, Position: 89},
			"rule":  Field{Type: U8, Position: 90},
		},

		"sunrise": Field{Type: U16LE, Position: 91, Nullables: []int64{nullI16, nullU16}, Transform: []Transform{TimeOfDay()}},
		"sunset":  Field{Type: U16LE, Position: 93, Nullables: []int64{nullI16, nullU16}, Transform: []Transform{TimeOfDay()}},
	}
}

// LOOP2Schema describes the LOOP2 packet (package type 1). LOOP2 trades the
// extra-sensor sections for derived readings (dew point, wind chill, gusts)
// and finer rain windows.
func LOOP2Schema(rain RainCollectorSize) Object {
	return Object{
		"packageType": Field{Type: U8, Position: 4},

		"pressure": Object{
			"current":   Field{Type: U16LE, Position: 7, Nullables: []int64{0}, Transform: []Transform{Scale(1.0 / 1000)}},
			"trend":     pressureTrendSchema(),
			"absolute":  Field{Type: U16LE, Position: 67, Nullables: []int64{0}, Transform: []Transform{Scale(1.0 / 1000)}},
			"altimeter": Field{Type: U16LE, Position: 69, Nullables: []int64{0}, Transform: []Transform{Scale(1.0 / 1000)}},
		},

		"temperature": Object{
			"in":        Field{Type: I16LE, Position: 9, Nullables: []int64{nullI16}, Transform: []Transform{Scale(0.1)}},
			"out":       Field{Type: I16LE, Position: 12, Nullables: []int64{nullI16}, Transform: []Transform{Scale(0.1)}},
			"dewPoint":  Field{Type: I16LE, Position: 30, Nullables: []int64{255}},
			"heatIndex": Field{Type: I16LE, Position: 35, Nullables: []int64{255}},
			"windChill": Field{Type: I16LE, Position: 37, Nullables: []int64{255}},
			"thsw":      Field{Type: I16LE, Position: 39, Nullables: []int64{255}},
		},

		"humidity": Object{
			"in":  Field{Type: U8, Position: 11, Nullables: []int64{nullU8}},
			"out": Field{Type: U8, Position: 33, Nullables: []int64{nullU8}},
		},

		"wind": Object{
			"current":   Field{Type: U8, Position: 14, Nullables: []int64{nullU8}},
			"direction": Field{Type: U16LE, Position: 16, Nullables: []int64{0}},
			"avg10min":  Field{Type: U16LE, Position: 18, Nullables: []int64{nullU16}, Transform: []Transform{Scale(0.1)}},
			"avg2min":   Field{Type: U16LE, Position: 20, Nullables: []int64{nullU16}, Transform: []Transform{Scale(0.1)}},
			"gust": Object{
				"speed":     Field{Type: U16LE, Position: 22, Nullables: []int64{nullU16}, Transform: []Transform{Scale(0.1)}},
				"direction": Field{Type: U16LE, Position: 24, Nullables: []int64{0}},
			},
		},

		"rain": Object{
			"rate":           Field{Type: U16LE, Position: 41, Transform: []Transform{RainClicks(rain)}},
			"storm":          Field{Type: U16LE, Position: 46, Transform: []Transform{RainClicks(rain)}, DependsOn: "stormStartDate"},
			"stormStartDate": Field{Type: U16LE, Position: 48, Nullables: []int64{nullU16}, Transform: []Transform{StormStartDate()}},
			"day":            Field{Type: U16LE, Position: 50, Transform: []Transform{RainClicks(rain)}},
			"last15min":      Field{Type: U16LE, Position: 52, Transform: []Transform{RainClicks(rain)}},
			"lastHour":       Field{Type: U16LE, Position: 54, Transform: []Transform{RainClicks(rain)}},
			"last24h":        Field{Type: U16LE, Position: 58, Transform: []Transform{RainClicks(rain)}},
		},

		"et": Object{
			"day": Field{Type: U16LE, Position: 56, Nullables: []int64{nullI16}, Transform: []Transform{Scale(1.0 / 1000)}},
		},

		"uv":             Field{Type: U8, Position: 43, Nullables: []int64{nullU8}, Transform: []Transform{Scale(0.1)}},
		"solarRadiation": Field{Type: U16LE, Position: 44, Nullables: []int64{nullI16}},

		"graphPointers": Object{
			"next10minWindSpeed": Field{Type: U8, Position: 73},
			"next15minWindSpeed": Field{Type: U8, Position: 74},
			"nextHourWindSpeed":  Field{Type: U8, Position: 75},
			"nextDailyWindSpeed": Field{Type: U8, Position: 76},
			"nextMinuteRain":     Field{Type: U8, Position: 77},
			"nextRainStorm":      Field{Type: U8, Position: 78},
			"minuteInHourOfRain": Field{Type: U8, Position: 79},
			"nextMonthlyRain":    Field{Type: U8, Position: 80},
			"nextYearlyRain":     Field{Type: U8, Position: 81},
			"nextSeasonalRain":   Field{Type: U8, Position: 82},
		},
	}
}

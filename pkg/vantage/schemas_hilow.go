// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

// Schema for the console's 436-byte highs-and-lows payload. Every extreme
// travels with the time of day it was recorded at; a timestamp is
// meaningless without its reading, so time fields depend on their value
// siblings and null out together.

func tempExtremesSchema(lowDay, highDay, lowTime, highTime, highMonth, lowMonth, highYear, lowYear float64) Object {
	return Object{
		"day": Object{
			"low":      Field{Type: I16LE, Position: lowDay, Nullables: []int64{nullI16}, Transform: []Transform{Scale(0.1)}},
			"high":     Field{Type: I16LE, Position: highDay, Nullables: []int64{nullI16}, Transform: []Transform{Scale(0.1)}},
			"lowTime":  Field{Type: U16LE, Position: lowTime, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "low"},
			"highTime": Field{Type: U16LE, Position: highTime, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "high"},
		},
		"month": Object{
			"low":  Field{Type: I16LE, Position: lowMonth, Nullables: []int64{nullI16}, Transform: []Transform{Scale(0.1)}},
			"high": Field{Type: I16LE, Position: highMonth, Nullables: []int64{nullI16}, Transform: []Transform{Scale(0.1)}},
		},
		"year": Object{
			"low":  Field{Type: I16LE, Position: lowYear, Nullables: []int64{nullI16}, Transform: []Transform{Scale(0.1)}},
			"high": Field{Type: I16LE, Position: highYear, Nullables: []int64{nullI16}, Transform: []Transform{Scale(0.1)}},
		},
	}
}

// HighsAndLowsSchema describes the HILOWS payload.
func HighsAndLowsSchema(rain RainCollectorSize) Object {
	inHg := Scale(1.0 / 1000)

	return Object{
		"pressure": Object{
			"day": Object{
				"low":      Field{Type: U16LE, Position: 0, Nullables: []int64{0}, Transform: []Transform{inHg}},
				"high":     Field{Type: U16LE, Position: 2, Nullables: []int64{0}, Transform: []Transform{inHg}},
				"lowTime":  Field{Type: U16LE, Position: 12, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "low"},
				"highTime": Field{Type: U16LE, Position: 14, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "high"},
			},
			"month": Object{
				"low":  Field{Type: U16LE, Position: 4, Nullables: []int64{0}, Transform: []Transform{inHg}},
				"high": Field{Type: U16LE, Position: 6, Nullables: []int64{0}, Transform: []Transform{inHg}},
			},
			"year": Object{
				"low":  Field{Type: U16LE, Position: 8, Nullables: []int64{0}, Transform: []Transform{inHg}},
				"high": Field{Type: U16LE, Position: 10, Nullables: []int64{0}, Transform: []Transform{inHg}},
			},
		},

		"wind": Object{
			"day": Object{
				"high":     Field{Type: U8, Position: 16, Nullables: []int64{0}},
				"highTime": Field{Type: U16LE, Position: 17, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "high"},
			},
			"month": Object{
				"high": Field{Type: U8, Position: 19, Nullables: []int64{0}},
			},
			"year": Object{
				"high": Field{Type: U8, Position: 20, Nullables: []int64{0}},
			},
		},

		"temperature": Object{
			"in":  tempExtremesSchema(23, 21, 27, 25, 31, 29, 35, 33),
			"out": tempExtremesSchema(47, 49, 51, 53, 55, 57, 59, 61),
		},

		"humidity": Object{
			"in": Object{
				"day": Object{
					"high":     Field{Type: U8, Position: 37, Nullables: []int64{nullU8}},
					"low":      Field{Type: U8, Position: 38, Nullables: []int64{nullU8}},
					"highTime": Field{Type: U16LE, Position: 39, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "high"},
					"lowTime":  Field{Type: U16LE, Position: 41, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "low"},
				},
				"month": Object{
					"high": Field{Type: U8, Position: 43, Nullables: []int64{nullU8}},
					"low":  Field{Type: U8, Position: 44, Nullables: []int64{nullU8}},
				},
				"year": Object{
					"high": Field{Type: U8, Position: 45, Nullables: []int64{nullU8}},
					"low":  Field{Type: U8, Position: 46, Nullables: []int64{nullU8}},
				},
			},
		},

		"dewPoint": Object{
			"day": Object{
				"low":      Field{Type: I16LE, Position: 63, Nullables: []int64{nullI16}},
				"high":     Field{Type: I16LE, Position: 65, Nullables: []int64{nullI16}},
				"lowTime":  Field{Type: U16LE, Position: 67, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "low"},
				"highTime": Field{Type: U16LE, Position: 69, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "high"},
			},
			"month": Object{
				"high": Field{Type: I16LE, Position: 71, Nullables: []int64{nullI16}},
				"low":  Field{Type: I16LE, Position: 73, Nullables: []int64{nullI16}},
			},
			"year": Object{
				"high": Field{Type: I16LE, Position: 75, Nullables: []int64{nullI16}},
				"low":  Field{Type: I16LE, Position: 77, Nullables: []int64{nullI16}},
			},
		},

		"windChill": Object{
			"day": Object{
				"low":     Field{Type: I16LE, Position: 79, Nullables: []int64{nullI16}},
				"lowTime": Field{Type: U16LE, Position: 81, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "low"},
			},
			"month": Object{
				"low": Field{Type: I16LE, Position: 83, Nullables: []int64{nullI16}},
			},
			"year": Object{
				"low": Field{Type: I16LE, Position: 85, Nullables: []int64{nullI16}},
			},
		},

		"heatIndex": Object{
			"day": Object{
				"high":     Field{Type: I16LE, Position: 87, Nullables: []int64{nullI16}},
				"highTime": Field{Type: U16LE, Position: 89, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "high"},
			},
			"month": Object{
				"high": Field{Type: I16LE, Position: 91, Nullables: []int64{nullI16}},
			},
			"year": Object{
				"high": Field{Type: I16LE, Position: 93, Nullables: []int64{nullI16}},
			},
		},

		"thsw": Object{
			"day": Object{
				"high":     Field{Type: I16LE, Position: 95, Nullables: []int64{nullI16}},
				"highTime": Field{Type: U16LE, Position: 97, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "high"},
			},
			"month": Object{
				"high": Field{Type: I16LE, Position: 99, Nullables: []int64{nullI16}},
			},
			"year": Object{
				"high": Field{Type: I16LE, Position: 101, Nullables: []int64{nullI16}},
			},
		},

		"solarRadiation": Object{
			"day": Object{
				"high":     Field{Type: U16LE, Position: 103, Nullables: []int64{nullI16}},
				"highTime": Field{Type: U16LE, Position: 105, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "high"},
			},
			"month": Object{
				"high": Field{Type: U16LE, Position: 107, Nullables: []int64{nullI16}},
			},
			"year": Object{
				"high": Field{Type: U16LE, Position: 109, Nullables: []int64{nullI16}},
			},
		},

		"uv": Object{
			"day": Object{
				"high":     Field{Type: U8, Position: 111, Nullables: []int64{nullU8}, Transform: []Transform{Scale(0.1)}},
				"highTime": Field{Type: U16LE, Position: 112, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "high"},
			},
			"month": Object{
				"high": Field{Type: U8, Position: 114, Nullables: []int64{nullU8}, Transform: []Transform{Scale(0.1)}},
			},
			"year": Object{
				"high": Field{Type: U8, Position: 115, Nullables: []int64{nullU8}, Transform: []Transform{Scale(0.1)}},
			},
		},

		"rainRate": Object{
			"day": Object{
				"high":     Field{Type: U16LE, Position: 116, Transform: []Transform{RainClicks(rain)}},
				"highTime": Field{Type: U16LE, Position: 118, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "high"},
			},
			"hour": Object{
				"high": Field{Type: U16LE, Position: 120, Transform: []Transform{RainClicks(rain)}},
			},
			"month": Object{
				"high": Field{Type: U16LE, Position: 122, Transform: []Transform{RainClicks(rain)}},
			},
			"year": Object{
				"high": Field{Type: U16LE, Position: 124, Transform: []Transform{RainClicks(rain)}},
			},
		},

		// Per-station extremes for the fifteen optional temperature stations.
		// The section is laid out column-major (all day-lows, then all
		// day-highs, ...), which is exactly what property-based striding
		// walks: each field advances by its own width per station.
		"extraTemps": Array{
			Element: Object{
				"dayLow":    Field{Type: U8, Position: 126, Nullables: []int64{nullU8}, Transform: []Transform{Offset(-90)}},
				"dayHigh":   Field{Type: U8, Position: 141, Nullables: []int64{nullU8}, Transform: []Transform{Offset(-90)}},
				"lowTime":   Field{Type: U16LE, Position: 156, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "dayLow"},
				"highTime":  Field{Type: U16LE, Position: 186, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "dayHigh"},
				"monthHigh": Field{Type: U8, Position: 216, Nullables: []int64{nullU8}, Transform: []Transform{Offset(-90)}},
				"monthLow":  Field{Type: U8, Position: 231, Nullables: []int64{nullU8}, Transform: []Transform{Offset(-90)}},
				"yearHigh":  Field{Type: U8, Position: 246, Nullables: []int64{nullU8}, Transform: []Transform{Offset(-90)}},
				"yearLow":   Field{Type: U8, Position: 261, Nullables: []int64{nullU8}, Transform: []Transform{Offset(-90)}},
			},
			Length: 15,
			Kind:   PropertyBased,
		},

		"soilMoistures": Array{
			Element: Object{
				"dayHigh":   Field{Type: U8, Position: 276, Nullables: []int64{nullU8}},
				"highTime":  Field{Type: U16LE, Position: 280, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "dayHigh"},
				"dayLow":    Field{Type: U8, Position: 288, Nullables: []int64{nullU8}},
				"lowTime":   Field{Type: U16LE, Position: 292, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "dayLow"},
				"monthLow":  Field{Type: U8, Position: 300, Nullables: []int64{nullU8}},
				"monthHigh": Field{Type: U8, Position: 304, Nullables: []int64{nullU8}},
				"yearLow":   Field{Type: U8, Position: 308, Nullables: []int64{nullU8}},
				"yearHigh":  Field{Type: U8, Position: 312, Nullables: []int64{nullU8}},
			},
			Length: 4,
			Kind:   PropertyBased,
		},

		"leafWetnesses": Array{
			Element: Object{
				"dayHigh":   Field{Type: U8, Position: 316, Nullables: []int64{nullU8}},
				"highTime":  Field{Type: U16LE, Position: 320, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "dayHigh"},
				"dayLow":    Field{Type: U8, Position: 328, Nullables: []int64{nullU8}},
				"lowTime":   Field{Type: U16LE, Position: 332, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "dayLow"},
				"monthLow":  Field{Type: U8, Position: 340, Nullables: []int64{nullU8}},
				"monthHigh": Field{Type: U8, Position: 344, Nullables: []int64{nullU8}},
				"yearLow":   Field{Type: U8, Position: 348, Nullables: []int64{nullU8}},
				"yearHigh":  Field{Type: U8, Position: 352, Nullables: []int64{nullU8}},
			},
			Length: 4,
			Kind:   PropertyBased,
		},

		"outsideHumidity": Object{
			"day": Object{
				"low":      Field{Type: U8, Position: 356, Nullables: []int64{nullU8}},
				"high":     Field{Type: U8, Position: 364, Nullables: []int64{nullU8}},
				"lowTime":  Field{Type: U16LE, Position: 372, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "low"},
				"highTime": Field{Type: U16LE, Position: 388, Nullables: []int64{nullU16}, Transform: []Transform{TimeOfDay()}, DependsOn: "high"},
			},
			"month": Object{
				"high": Field{Type: U8, Position: 404, Nullables: []int64{nullU8}},
				"low":  Field{Type: U8, Position: 412, Nullables: []int64{nullU8}},
			},
			"year": Object{
				"high": Field{Type: U8, Position: 420, Nullables: []int64{nullU8}},
				"low":  Field{Type: U8, Position: 428, Nullables: []int64{nullU8}},
			},
		},
	}
}

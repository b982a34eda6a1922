// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

import (
	"errors"
	"reflect"
	"testing"
)

// ============================================================
// Primitive reads
// ============================================================

func TestParse_Primitives(t *testing.T) {
	buf := []byte{0x12, 0x34, 0x56, 0x78, 0xFF, 0x80}

	tests := []struct {
		name     string
		field    Field
		expected int64
	}{
		{"u8", Field{Type: U8, Position: 0}, 0x12},
		{"u16le", Field{Type: U16LE, Position: 0}, 0x3412},
		{"u16be", Field{Type: U16BE, Position: 0}, 0x1234},
		{"u32le", Field{Type: U32LE, Position: 0}, 0x78563412},
		{"u32be", Field{Type: U32BE, Position: 0}, 0x12345678},
		{"i8 negative", Field{Type: I8, Position: 5}, -128},
		{"i16le", Field{Type: I16LE, Position: 4}, -32513}, // 0x80FF as int16
		{"bit msb", Field{Type: Bit, Position: 5.0}, 1},
		{"bit lsb", Field{Type: Bit, Position: 5.875}, 0},
		{"bit mid", Field{Type: Bit, Position: 0.75}, 1}, // 0x12 bit 6 (MSB-first) is 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse(Object{"v": tt.field}, buf, 0)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if rec["v"] != tt.expected {
				t.Errorf("expected %d, got %v", tt.expected, rec["v"])
			}
		})
	}
}

func TestParse_OffsetShiftsBase(t *testing.T) {
	buf := []byte{0x06, 0x42}
	rec, err := Parse(Object{"v": Field{Type: U8, Position: 0}}, buf, 1)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if rec["v"] != int64(0x42) {
		t.Errorf("expected 0x42, got %v", rec["v"])
	}
}

func TestParse_OutOfRangeReadsNull(t *testing.T) {
	rec, err := Parse(Object{"v": Field{Type: U16LE, Position: 3}}, []byte{0x01, 0x02}, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if rec["v"] != nil {
		t.Errorf("expected nil for out-of-range read, got %v", rec["v"])
	}
}

// ============================================================
// Nullables and transforms
// ============================================================

func TestParse_NullableSentinels(t *testing.T) {
	schema := Object{"v": Field{Type: U8, Position: 0, Nullables: []int64{0xFF}}}

	rec, err := Parse(schema, []byte{0xFF}, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if rec["v"] != nil {
		t.Errorf("sentinel value should parse to nil, got %v", rec["v"])
	}

	rec, err = Parse(schema, []byte{0x2A}, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if rec["v"] != int64(42) {
		t.Errorf("non-sentinel value should survive, got %v", rec["v"])
	}
}

func TestParse_TransformsComposeLeftToRight(t *testing.T) {
	schema := Object{
		"v": Field{Type: U8, Position: 0, Transform: []Transform{Scale(0.1), Offset(-1)}},
	}
	rec, err := Parse(schema, []byte{100}, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if rec["v"] != 9.0 {
		t.Errorf("expected 9.0, got %v", rec["v"])
	}
}

func TestParse_TransformsSkippedOnNull(t *testing.T) {
	exploded := false
	boom := func(v any) any {
		exploded = true
		return v
	}
	schema := Object{
		"v": Field{Type: U8, Position: 0, Nullables: []int64{0xFF}, Transform: []Transform{boom}},
	}
	rec, err := Parse(schema, []byte{0xFF}, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if rec["v"] != nil || exploded {
		t.Errorf("transform must not run on null (value %v, ran %v)", rec["v"], exploded)
	}
}

// ============================================================
// Copy-of
// ============================================================

func TestParse_CopyOfAdoptsRawValue(t *testing.T) {
	schema := Object{
		"raw":    Field{Type: U8, Position: 0, Transform: []Transform{Scale(10)}},
		"scaled": CopyOf{Source: "raw", Transform: []Transform{Scale(0.5)}},
	}
	rec, err := Parse(schema, []byte{8}, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	// The copy sees the pre-transform raw value, not the source's result.
	if rec["raw"] != 80.0 {
		t.Errorf("source: expected 80.0, got %v", rec["raw"])
	}
	if rec["scaled"] != 4.0 {
		t.Errorf("copy: expected 4.0, got %v", rec["scaled"])
	}
}

func TestParse_CopyOfOwnNullables(t *testing.T) {
	schema := Object{
		"value": Field{Type: U8, Position: 0},
		"text":  CopyOf{Source: "value", Nullables: []int64{0x50}},
	}
	rec, err := Parse(schema, []byte{0x50}, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if rec["value"] != int64(0x50) {
		t.Errorf("source keeps its value, got %v", rec["value"])
	}
	if rec["text"] != nil {
		t.Errorf("copy applies its own nullables, got %v", rec["text"])
	}
}

func TestParse_CopyOfUnresolvedTarget(t *testing.T) {
	schema := Object{
		"orphan": CopyOf{Source: "nowhere"},
	}
	_, err := Parse(schema, []byte{0x00}, 0)
	if !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("expected ErrInvalidSchema, got %v", err)
	}
	if !errors.Is(err, ErrParser) {
		t.Errorf("schema faults should also wrap ErrParser, got %v", err)
	}
}

// ============================================================
// Dependencies
// ============================================================

func TestParse_DependsOnNullPropagates(t *testing.T) {
	schema := Object{
		"date":  Field{Type: U8, Position: 0, Nullables: []int64{0xFF}},
		"total": Field{Type: U8, Position: 1, DependsOn: "date"},
	}

	rec, err := Parse(schema, []byte{0xFF, 0x09}, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if rec["total"] != nil {
		t.Errorf("dependent field must null out with its dependency, got %v", rec["total"])
	}

	rec, err = Parse(schema, []byte{0x01, 0x09}, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if rec["total"] != int64(9) {
		t.Errorf("dependent field should keep its value, got %v", rec["total"])
	}
}

func TestParse_DependsOnUnresolvedTarget(t *testing.T) {
	schema := Object{
		"v": Field{Type: U8, Position: 0, DependsOn: "ghost"},
	}
	_, err := Parse(schema, []byte{0x01}, 0)
	if !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestParse_DependsOnResolvesWithinNestingLevel(t *testing.T) {
	schema := Object{
		"outer": Field{Type: U8, Position: 0, Nullables: []int64{0}},
		"nested": Object{
			"anchor": Field{Type: U8, Position: 1, Nullables: []int64{0}},
			"leaf":   Field{Type: U8, Position: 2, DependsOn: "anchor"},
		},
	}
	rec, err := Parse(schema, []byte{0x01, 0x00, 0x07}, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	nested := rec["nested"].(Record)
	if nested["leaf"] != nil {
		t.Errorf("dependency must resolve against the sibling level, got %v", nested["leaf"])
	}
}

// ============================================================
// Arrays
// ============================================================

func TestParse_PropertyBasedArrayStride(t *testing.T) {
	buf := []byte{10, 20, 30, 40}
	schema := Object{
		"temps": Array{Element: Field{Type: U8, Position: 0}, Length: 4, Kind: PropertyBased},
	}
	rec, err := Parse(schema, buf, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	expected := []any{int64(10), int64(20), int64(30), int64(40)}
	if !reflect.DeepEqual(rec["temps"], expected) {
		t.Errorf("expected %v, got %v", expected, rec["temps"])
	}
}

func TestParse_PropertyBasedArrayAdvancesByFieldWidth(t *testing.T) {
	// Column-major layout: two U8 columns and one U16 column, each field
	// advancing by its own width per entry.
	buf := []byte{
		1, 2, // lows
		11, 12, // highs
		0x10, 0x00, 0x20, 0x00, // times (LE)
	}
	schema := Object{
		"entries": Array{
			Element: Object{
				"low":  Field{Type: U8, Position: 0},
				"high": Field{Type: U8, Position: 2},
				"time": Field{Type: U16LE, Position: 4},
			},
			Length: 2,
			Kind:   PropertyBased,
		},
	}
	rec, err := Parse(schema, buf, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	entries := rec["entries"].([]any)
	second := entries[1].(Record)
	if second["low"] != int64(2) || second["high"] != int64(12) || second["time"] != int64(0x20) {
		t.Errorf("unexpected second entry: %v", second)
	}
}

func TestParse_EntryBasedArrayStride(t *testing.T) {
	// Array of two-byte records at stride 3: the third byte of each entry
	// is padding the schema never touches.
	buf := []byte{
		1, 2, 0xEE,
		3, 4, 0xEE,
	}
	schema := Object{
		"pairs": Array{
			Element: Object{
				"a": Field{Type: U8, Position: 0},
				"b": Field{Type: U8, Position: 1},
			},
			Length: 2,
			Kind:   EntryBased,
			Stride: 3,
		},
	}
	rec, err := Parse(schema, buf, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	pairs := rec["pairs"].([]any)
	second := pairs[1].(Record)
	if second["a"] != int64(3) || second["b"] != int64(4) {
		t.Errorf("unexpected second entry: %v", second)
	}
}

func TestParse_EntryBasedBitArray(t *testing.T) {
	// One alarm byte per station, bits read MSB-first.
	buf := []byte{0x80, 0x00, 0x10}
	schema := Object{
		"stations": Array{
			Element: Object{
				"first":  Field{Type: Bit, Position: 0.0},
				"fourth": Field{Type: Bit, Position: 0.375},
			},
			Length: 3,
			Kind:   EntryBased,
			Stride: 1,
		},
	}
	rec, err := Parse(schema, buf, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	stations := rec["stations"].([]any)
	if stations[0].(Record)["first"] != int64(1) {
		t.Errorf("station 0 bit 0 should be set: %v", stations[0])
	}
	if stations[2].(Record)["fourth"] != int64(1) {
		t.Errorf("station 2 bit 3 should be set: %v", stations[2])
	}
	if stations[1].(Record)["first"] != int64(0) {
		t.Errorf("station 1 should be clear: %v", stations[1])
	}
}

// ============================================================
// Whole-schema properties
// ============================================================

func TestParse_Idempotent(t *testing.T) {
	payload := loop1Payload(t)
	first, err := Parse(LOOP1Schema(RainCollectorInch01), payload, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	second, err := Parse(LOOP1Schema(RainCollectorInch01), payload, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same buffer twice should yield equal records")
	}
}

func TestParse_NoPendingLeaks(t *testing.T) {
	payload := loop1Payload(t)
	rec, err := Parse(LOOP1Schema(RainCollectorInch01), payload, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	assertNoPending(t, rec)
}

func assertNoPending(t *testing.T, v any) {
	t.Helper()
	switch node := v.(type) {
	case pending:
		t.Errorf("pending value leaked into result: %+v", node)
	case Record:
		for _, child := range node {
			assertNoPending(t, child)
		}
	case []any:
		for _, child := range node {
			assertNoPending(t, child)
		}
	}
}

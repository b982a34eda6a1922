// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Record is a parsed binary record: a tree of typed leaves mirroring the
// schema tree. Leaves are int64, float64, string, time.Time or nil; arrays
// are []any; nested records are Records.
type Record map[string]any

// pending wraps a value whose final resolution depends on a sibling. The
// parser emits pending nodes during its first pass and rewrites them in a
// dedicated resolver pass, which keeps parsing linear and cycle-free.
type pending struct {
	value     any
	dependsOn string
}

// parseContext carries the per-parse state threaded through the schema walk.
type parseContext struct {
	buf  []byte
	base int
	// index and kind implement the array stride rules: PropertyBased arrays
	// advance each repeated field by sizeof(type)*index, EntryBased arrays
	// advance the element base instead (already folded into base).
	index int
	kind  ArrayKind
}

// Parse interprets schema against buf, reading fields relative to offset.
// Callers hand the parser a bare payload (ACK and CRC already stripped) with
// offset 0, or a full frame with offset 1 to skip the ACK byte.
func Parse(schema Object, buf []byte, offset int) (Record, error) {
	ctx := parseContext{buf: buf, base: offset}
	rec, err := parseObject(schema, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParser, err)
	}
	if err := resolveDependencies(rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParser, err)
	}
	return rec, nil
}

func parseObject(schema Object, ctx parseContext) (Record, error) {
	rec := make(Record, len(schema))
	raw := make(map[string]any, len(schema))

	// Copies are deferred to the end of the level, since map iteration gives
	// no guarantee that a copy's source is visited first, and resolved in a
	// single pass. Sources are plain fields; a copy whose source is missing
	// or is itself a copy fails with ErrInvalidSchema.
	var deferred []string

	for name, node := range schema {
		switch n := node.(type) {
		case Field:
			r, v := parseField(n, ctx)
			raw[name] = r
			rec[name] = v
		case CopyOf:
			deferred = append(deferred, name)
		case Array:
			entries, err := parseArray(n, ctx)
			if err != nil {
				return nil, err
			}
			rec[name] = entries
		case Object:
			nested, err := parseObject(n, ctx)
			if err != nil {
				return nil, err
			}
			rec[name] = nested
		default:
			return nil, fmt.Errorf("%w: unknown node kind %T", ErrInvalidSchema, node)
		}
	}

	for _, name := range deferred {
		c := schema[name].(CopyOf)
		src, ok := raw[c.Source]
		if !ok {
			return nil, fmt.Errorf("%w: copyof target %q not found", ErrInvalidSchema, c.Source)
		}
		rec[name] = finishValue(src, c.Nullables, c.Transform, c.DependsOn)
	}

	return rec, nil
}

// parseField reads a field's raw value and runs its pipeline. It returns the
// pre-transform raw value (for copy-of siblings) and the finished value.
func parseField(f Field, ctx parseContext) (any, any) {
	advance := 0
	if ctx.kind == PropertyBased {
		advance = f.Type.Size() * ctx.index
	}
	pos := f.Position + float64(ctx.base+advance)

	v, ok := readPrimitive(ctx.buf, f.Type, pos)
	if !ok {
		// Reads past the end of the buffer map to nil rather than failing;
		// the console omits trailing sections on some firmware revisions.
		return nil, finishValue(nil, f.Nullables, f.Transform, f.DependsOn)
	}
	return v, finishValue(v, f.Nullables, f.Transform, f.DependsOn)
}

// finishValue applies nullable masking, then the transform pipeline, then
// wraps the result as pending when a dependency is declared.
func finishValue(raw any, nullables []int64, transforms []Transform, dependsOn string) any {
	v := raw
	if rv, ok := raw.(int64); ok {
		for _, sentinel := range nullables {
			if rv == sentinel {
				v = nil
				break
			}
		}
	}
	if v != nil {
		for _, t := range transforms {
			v = t(v)
		}
	}
	if dependsOn != "" {
		return pending{value: v, dependsOn: dependsOn}
	}
	return v
}

func parseArray(a Array, ctx parseContext) ([]any, error) {
	entries := make([]any, 0, a.Length)
	for i := 0; i < a.Length; i++ {
		entryCtx := ctx
		entryCtx.index = i
		entryCtx.kind = a.Kind
		if a.Kind == EntryBased {
			entryCtx.base = ctx.base + a.Stride*i
		}

		switch el := a.Element.(type) {
		case Field:
			_, v := parseField(el, entryCtx)
			entries = append(entries, v)
		case Object:
			rec, err := parseObject(el, entryCtx)
			if err != nil {
				return nil, err
			}
			entries = append(entries, rec)
		default:
			return nil, fmt.Errorf("%w: array element must be a field or object, got %T", ErrInvalidSchema, a.Element)
		}
	}
	return entries, nil
}

// readPrimitive reads one primitive at pos. The boolean result is false when
// the read would run past the end of the buffer.
func readPrimitive(buf []byte, t PrimitiveType, pos float64) (int64, bool) {
	bytePos := int(pos)
	if bytePos < 0 || bytePos+t.Size() > len(buf) {
		return 0, false
	}

	switch t {
	case U8:
		return int64(buf[bytePos]), true
	case I8:
		return int64(int8(buf[bytePos])), true
	case U16LE:
		return int64(binary.LittleEndian.Uint16(buf[bytePos:])), true
	case U16BE:
		return int64(binary.BigEndian.Uint16(buf[bytePos:])), true
	case I16LE:
		return int64(int16(binary.LittleEndian.Uint16(buf[bytePos:]))), true
	case I16BE:
		return int64(int16(binary.BigEndian.Uint16(buf[bytePos:]))), true
	case U32LE:
		return int64(binary.LittleEndian.Uint32(buf[bytePos:])), true
	case U32BE:
		return int64(binary.BigEndian.Uint32(buf[bytePos:])), true
	case I32LE:
		return int64(int32(binary.LittleEndian.Uint32(buf[bytePos:]))), true
	case I32BE:
		return int64(int32(binary.BigEndian.Uint32(buf[bytePos:]))), true
	case Bit:
		// The fractional position selects the bit, MSB-first: position 10.0
		// is the high bit of byte 10, position 10.875 the low bit.
		bit := int(math.Round((pos - float64(bytePos)) * 8))
		return int64(buf[bytePos] >> (7 - bit) & 1), true
	default:
		return 0, false
	}
}

// resolveDependencies walks the result tree and rewrites pending nodes:
// a node whose dependency resolved to nil becomes nil, every other pending
// node unwraps to its bare value. Dependencies resolve within the same
// nesting level.
func resolveDependencies(rec Record) error {
	for name, v := range rec {
		switch node := v.(type) {
		case pending:
			resolved, err := lookupDependency(rec, node.dependsOn)
			if err != nil {
				return err
			}
			if resolved == nil {
				rec[name] = nil
			} else {
				rec[name] = node.value
			}
		case Record:
			if err := resolveDependencies(node); err != nil {
				return err
			}
		case []any:
			if err := resolveArrayDependencies(node, rec); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveArrayDependencies(entries []any, scope Record) error {
	for i, e := range entries {
		switch node := e.(type) {
		case pending:
			resolved, err := lookupDependency(scope, node.dependsOn)
			if err != nil {
				return err
			}
			if resolved == nil {
				entries[i] = nil
			} else {
				entries[i] = node.value
			}
		case Record:
			if err := resolveDependencies(node); err != nil {
				return err
			}
		}
	}
	return nil
}

func lookupDependency(scope Record, name string) (any, error) {
	target, ok := scope[name]
	if !ok {
		return nil, fmt.Errorf("%w: dependson target %q not found", ErrInvalidSchema, name)
	}
	if p, isPending := target.(pending); isPending {
		return p.value, nil
	}
	return target, nil
}

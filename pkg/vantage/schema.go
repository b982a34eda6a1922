// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

// The console's records are described by declarative schemas instead of
// hand-written offset arithmetic. A schema is a tree of four node kinds:
// plain fields, copies of sibling fields, repeated sub-structures and nested
// objects. The parser interprets a schema against a payload buffer.

// PrimitiveType identifies how a field's raw bytes are read.
type PrimitiveType int

const (
	U8 PrimitiveType = iota
	U16LE
	U16BE
	U32LE
	U32BE
	I8
	I16LE
	I16BE
	I32LE
	I32BE
	// Bit reads a single bit. The field position's integer part selects the
	// byte, the fractional part times eight (rounded) selects the bit,
	// counted MSB-first.
	Bit
)

// Size returns the number of bytes a primitive occupies in the buffer.
// Bit fields occupy a single byte for stride purposes.
func (t PrimitiveType) Size() int {
	switch t {
	case U8, I8, Bit:
		return 1
	case U16LE, U16BE, I16LE, I16BE:
		return 2
	case U32LE, U32BE, I32LE, I32BE:
		return 4
	default:
		return 0
	}
}

// Transform maps a parsed value to its final representation. Transforms
// compose left to right and only ever see non-nil values. A transform may
// widen the type, e.g. from a raw integer to a float, string or time.Time.
type Transform func(v any) any

// ArrayKind selects how repeated elements advance through the buffer.
type ArrayKind int

const (
	// PropertyBased advances each repeated field by sizeof(type) * index.
	// Used for arrays whose fields are laid out run-length style.
	PropertyBased ArrayKind = iota
	// EntryBased advances the whole element's base offset by the declared
	// stride * index. Used for records whose fields are non-contiguous.
	EntryBased
)

// Node is the sum type of schema tree nodes: Field, CopyOf, Array or Object.
type Node interface {
	schemaNode()
}

// Field reads a primitive at a byte offset relative to the buffer base.
type Field struct {
	Type     PrimitiveType
	Position float64 // fractional part used by Bit only
	// Nullables lists raw sentinel values the console uses for "no reading".
	// A raw read equal to any of them parses to nil.
	Nullables []int64
	Transform []Transform
	// DependsOn names a sibling; if that sibling resolves to nil, this field
	// resolves to nil regardless of its own raw bytes.
	DependsOn string
}

// CopyOf adopts the raw value of an already-parsed sibling field, then runs
// its own nullable and transform pipeline. Copy sources are always plain
// fields, never copies themselves.
type CopyOf struct {
	Source    string
	Nullables []int64
	Transform []Transform
	DependsOn string
}

// Array repeats an element schema Length times. For EntryBased arrays the
// Stride gives the per-entry base advance in bytes.
type Array struct {
	Element Node
	Length  int
	Kind    ArrayKind
	Stride  int
}

// Object is a schema mapping composed recursively.
type Object map[string]Node

func (Field) schemaNode()  {}
func (CopyOf) schemaNode() {}
func (Array) schemaNode()  {}
func (Object) schemaNode() {}

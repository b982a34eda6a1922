// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Harry Dehix

package vantage

// Without returns a shallow copy of the record with the named top-level
// properties removed. The receiver is not modified.
func (r Record) Without(keys ...string) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Child returns the named nested record, or nil when the property is absent
// or not a record.
func (r Record) Child(name string) Record {
	child, _ := r[name].(Record)
	return child
}

// DeepMerge merges overlay into base, returning a fresh record. Nested
// records merge recursively; on every other conflict the overlay wins.
// Neither input is modified.
func DeepMerge(base, overlay Record) Record {
	out := make(Record, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		baseRec, baseIsRec := out[k].(Record)
		overlayRec, overlayIsRec := v.(Record)
		if baseIsRec && overlayIsRec {
			out[k] = DeepMerge(baseRec, overlayRec)
			continue
		}
		out[k] = v
	}
	return out
}

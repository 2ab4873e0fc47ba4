// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import "encoding/json"

// RawValue is whatever the host instrumentation source stores in a local
// slot, a global slot, or an aggregate position. The tracer treats it
// opaquely except through the Aggregate interface.
type RawValue interface{}

// Kind classifies a heap-tracked aggregate (or the transparent tuple
// container, which is walked for reachability but never itself recorded).
type Kind int

const (
	KindList Kind = iota
	KindMap
	KindRecord
	KindTuple
)

// Child is one (key, value) pair reachable from an Aggregate. For a List
// or Tuple, Key is the decimal string of the element's index; for a Map
// or Record, Key is the map key or member name.
type Child struct {
	Key string
	Val RawValue
}

// Aggregate is implemented by host raw values that are heap-tracked
// objects (lists, maps, records) or transparent tuples. Primitives and
// nil need not implement it.
type Aggregate interface {
	Kind() Kind
	// Identity returns a stable per-object integer, unique for the
	// object's lifetime within one trace. Meaningless for KindTuple.
	Identity() int
	// TypeName is "dict" for a Map, the class name for a Record, and
	// unused (empty) for List and Tuple.
	TypeName() string
	Children() []Child
}

// Value is the atomic cell stored in a local, a global, or an aggregate
// position, encoded per the rules in the data model: nil becomes a null
// reference, tuples become an opaque sentinel reference, primitives are
// stored by value, and everything else is a reference to a heap identity.
type Value struct {
	IsRef bool
	Val   interface{} // int64 identity when IsRef; primitive otherwise
}

// Equal is structural equality on both fields, the law that drives every
// "did it change?" decision in the diff engine.
func (v Value) Equal(o Value) bool {
	return v.IsRef == o.IsRef && v.Val == o.Val
}

// MarshalJSON encodes a Value as the canonical two-element array
// [isRef, val].
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{v.IsRef, v.Val})
}

var nullValue = Value{IsRef: true, Val: int64(0)}
var tupleValue = Value{IsRef: true, Val: int64(-1)}

// Encode classifies a raw host value into its compact two-field
// encoding. It is the only place the tracer decides primitive-vs-reference.
func Encode(raw RawValue) Value {
	if raw == nil {
		return nullValue
	}
	switch v := raw.(type) {
	case int64:
		return Value{IsRef: false, Val: v}
	case float64:
		return Value{IsRef: false, Val: v}
	case string:
		return Value{IsRef: false, Val: v}
	case bool:
		return Value{IsRef: false, Val: v}
	case Aggregate:
		if v.Kind() == KindTuple {
			return tupleValue
		}
		return Value{IsRef: true, Val: int64(v.Identity())}
	default:
		// Any other host-supplied value we don't recognize has no
		// identity the tracer can read, so it is encoded as a null
		// reference (val 0), the same as nil; no heap object is recorded
		// for it. Hosts are expected to only ever hand the tracer the
		// types above or an Aggregate, so this path exists for robustness
		// rather than regular use.
		return Value{IsRef: true, Val: int64(0)}
	}
}

// IsPrimitive reports whether raw would encode with IsRef == false.
func IsPrimitive(raw RawValue) bool {
	switch raw.(type) {
	case int64, float64, string, bool:
		return true
	default:
		return false
	}
}

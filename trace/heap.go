// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import "sort"

// HeapObject is a tracked aggregate, keyed by its identity in a Heap
// snapshot. Exactly one of List or Members is populated, selected by Kind.
type HeapObject struct {
	Kind     Kind
	TypeName string // "dict" for Map, class name for Record; unused for List
	List     []Value
	Members  map[string]Value
}

func (o *HeapObject) clone() *HeapObject {
	c := &HeapObject{Kind: o.Kind, TypeName: o.TypeName}
	if o.List != nil {
		c.List = append([]Value(nil), o.List...)
	}
	if o.Members != nil {
		c.Members = make(map[string]Value, len(o.Members))
		for k, v := range o.Members {
			c.Members[k] = v
		}
	}
	return c
}

// Heap is an identity-keyed snapshot of the transitive closure of
// aggregates reachable from a set of roots.
type Heap map[int]*HeapObject

// Snapshot walks roots transitively and returns the set of reachable
// aggregates keyed by identity. Tuples are walked through for reachability
// but never themselves recorded. Children are visited in natural order
// (list index order, map/record child order as reported by Children())
// so that two runs over equal input produce byte-identical snapshots.
func Snapshot(roots []RawValue) Heap {
	h := make(Heap)
	var walk func(v RawValue)
	walk = func(v RawValue) {
		if v == nil {
			return
		}
		agg, ok := v.(Aggregate)
		if !ok {
			return // primitive: stop
		}
		if agg.Kind() == KindTuple {
			for _, c := range agg.Children() {
				walk(c.Val)
			}
			return
		}
		id := agg.Identity()
		if _, seen := h[id]; seen {
			return // cycle guard: identity already being walked
		}
		children := agg.Children()
		obj := &HeapObject{Kind: agg.Kind(), TypeName: agg.TypeName()}
		switch agg.Kind() {
		case KindList:
			obj.List = make([]Value, len(children))
			for i, c := range children {
				obj.List[i] = Encode(c.Val)
			}
		default: // KindMap, KindRecord
			obj.Members = make(map[string]Value, len(children))
			for _, c := range children {
				obj.Members[c.Key] = Encode(c.Val)
			}
		}
		h[id] = obj // record before recursing, so cycles terminate
		for _, c := range children {
			walk(c.Val)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return h
}

// Equal reports whether two heaps hold identical objects under identical
// identities.
func (h Heap) Equal(o Heap) bool {
	if len(h) != len(o) {
		return false
	}
	for id, obj := range h {
		other, ok := o[id]
		if !ok || !obj.equal(other) {
			return false
		}
	}
	return true
}

func (o *HeapObject) equal(other *HeapObject) bool {
	if o.Kind != other.Kind || o.TypeName != other.TypeName {
		return false
	}
	if len(o.List) != len(other.List) || len(o.Members) != len(other.Members) {
		return false
	}
	for i, v := range o.List {
		if !v.Equal(other.List[i]) {
			return false
		}
	}
	for k, v := range o.Members {
		ov, ok := other.Members[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// sortedIDs returns the heap's identities in ascending order, used
// wherever the diff engine or serializer needs deterministic iteration.
func (h Heap) sortedIDs() []int {
	ids := make([]int, 0, len(h))
	for id := range h {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

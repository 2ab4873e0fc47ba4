// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace_test

import (
	"testing"
	"time"

	"github.com/gotutor/gotutor/trace"
)

func TestSnapshotBasic(t *testing.T) {
	l := &fakeList{id: 1, elems: []trace.RawValue{int64(1), int64(2), int64(3)}}
	h := trace.Snapshot([]trace.RawValue{l})
	if len(h) != 1 {
		t.Fatalf("len(h) = %d, want 1", len(h))
	}
	obj, ok := h[1]
	if !ok {
		t.Fatal("missing object id 1")
	}
	if len(obj.List) != 3 {
		t.Fatalf("len(obj.List) = %d, want 3", len(obj.List))
	}
}

func TestSnapshotIgnoresPrimitiveRoots(t *testing.T) {
	h := trace.Snapshot([]trace.RawValue{int64(1), "x", nil, true})
	if len(h) != 0 {
		t.Fatalf("len(h) = %d, want 0", len(h))
	}
}

func TestSnapshotTupleIsTransparent(t *testing.T) {
	inner := &fakeList{id: 2, elems: []trace.RawValue{int64(9)}}
	tup := &fakeTuple{elems: []trace.RawValue{int64(1), inner}}
	h := trace.Snapshot([]trace.RawValue{tup})
	if len(h) != 1 {
		t.Fatalf("len(h) = %d, want 1 (only the inner list, never the tuple)", len(h))
	}
	if _, ok := h[2]; !ok {
		t.Fatal("expected the tuple's inner list to be reachable")
	}
}

func TestSnapshotCycleTerminates(t *testing.T) {
	a := newFakeRecord(1, "Node", "next")
	b := newFakeRecord(2, "Node", "next")
	a.set("next", b)
	b.set("next", a)

	done := make(chan trace.Heap, 1)
	go func() { done <- trace.Snapshot([]trace.RawValue{a}) }()
	select {
	case h := <-done:
		if len(h) != 2 {
			t.Fatalf("len(h) = %d, want 2", len(h))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Snapshot did not terminate on a cyclic graph")
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	m := newFakeMap(1)
	m.set("a", int64(1))
	m.set("b", int64(2))
	h1 := trace.Snapshot([]trace.RawValue{m})
	h2 := trace.Snapshot([]trace.RawValue{m})
	if !h1.Equal(h2) {
		t.Fatal("two snapshots of the same unchanged graph should be equal")
	}
}

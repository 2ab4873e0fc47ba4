// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace_test

import (
	"strconv"

	"github.com/gotutor/gotutor/trace"
)

// fakeList, fakeMap, fakeRecord and fakeTuple are minimal trace.Aggregate
// stand-ins shared across this package's tests, so trace itself can be
// exercised without depending on any concrete host implementation (lang,
// in this module, plays that role in the scenario tests instead).

type fakeList struct {
	id    int
	elems []trace.RawValue
}

func (f *fakeList) Kind() trace.Kind { return trace.KindList }
func (f *fakeList) Identity() int    { return f.id }
func (f *fakeList) TypeName() string { return "" }
func (f *fakeList) Children() []trace.Child {
	cs := make([]trace.Child, len(f.elems))
	for i, e := range f.elems {
		cs[i] = trace.Child{Key: strconv.Itoa(i), Val: e}
	}
	return cs
}

type fakeMap struct {
	id    int
	keys  []string
	elems map[string]trace.RawValue
}

func newFakeMap(id int) *fakeMap {
	return &fakeMap{id: id, elems: make(map[string]trace.RawValue)}
}

func (f *fakeMap) set(k string, v trace.RawValue) {
	if _, ok := f.elems[k]; !ok {
		f.keys = append(f.keys, k)
	}
	f.elems[k] = v
}

func (f *fakeMap) Kind() trace.Kind { return trace.KindMap }
func (f *fakeMap) Identity() int    { return f.id }
func (f *fakeMap) TypeName() string { return "dict" }
func (f *fakeMap) Children() []trace.Child {
	cs := make([]trace.Child, len(f.keys))
	for i, k := range f.keys {
		cs[i] = trace.Child{Key: k, Val: f.elems[k]}
	}
	return cs
}

type fakeRecord struct {
	id     int
	class  string
	keys   []string
	fields map[string]trace.RawValue
}

func newFakeRecord(id int, class string, fields ...string) *fakeRecord {
	r := &fakeRecord{id: id, class: class, fields: make(map[string]trace.RawValue)}
	for _, f := range fields {
		r.keys = append(r.keys, f)
		r.fields[f] = nil
	}
	return r
}

func (f *fakeRecord) set(k string, v trace.RawValue) { f.fields[k] = v }

func (f *fakeRecord) Kind() trace.Kind { return trace.KindRecord }
func (f *fakeRecord) Identity() int    { return f.id }
func (f *fakeRecord) TypeName() string { return f.class }
func (f *fakeRecord) Children() []trace.Child {
	cs := make([]trace.Child, len(f.keys))
	for i, k := range f.keys {
		cs[i] = trace.Child{Key: k, Val: f.fields[k]}
	}
	return cs
}

type fakeTuple struct {
	elems []trace.RawValue
}

func (f *fakeTuple) Kind() trace.Kind { return trace.KindTuple }
func (f *fakeTuple) Identity() int    { return 0 }
func (f *fakeTuple) TypeName() string { return "" }
func (f *fakeTuple) Children() []trace.Child {
	cs := make([]trace.Child, len(f.elems))
	for i, e := range f.elems {
		cs[i] = trace.Child{Key: strconv.Itoa(i), Val: e}
	}
	return cs
}

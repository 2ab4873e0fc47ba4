// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lang

import (
	"strconv"

	"github.com/gotutor/gotutor/trace"
)

// Object is any runtime value: nil, int64, float64, string, bool, or a
// pointer to one of ListObj, MapObj, RecordObj, TupleObj.
type Object = trace.RawValue

// ListObj is a heap-allocated, mutable, ordered sequence.
type ListObj struct {
	id    int
	Elems []Object
}

func (o *ListObj) Kind() trace.Kind { return trace.KindList }
func (o *ListObj) Identity() int    { return o.id }
func (o *ListObj) TypeName() string { return "" }
func (o *ListObj) Children() []trace.Child {
	cs := make([]trace.Child, len(o.Elems))
	for i, e := range o.Elems {
		cs[i] = trace.Child{Key: strconv.Itoa(i), Val: e}
	}
	return cs
}

// MapObj is a heap-allocated, mutable, insertion-ordered string-keyed map.
type MapObj struct {
	id    int
	order []string
	vals  map[string]Object
}

func newMapObj(id int) *MapObj {
	return &MapObj{id: id, vals: make(map[string]Object)}
}

func (o *MapObj) Kind() trace.Kind { return trace.KindMap }
func (o *MapObj) Identity() int    { return o.id }
func (o *MapObj) TypeName() string { return "dict" }

func (o *MapObj) Children() []trace.Child {
	cs := make([]trace.Child, len(o.order))
	for i, k := range o.order {
		cs[i] = trace.Child{Key: k, Val: o.vals[k]}
	}
	return cs
}

func (o *MapObj) Get(key string) (Object, bool) {
	v, ok := o.vals[key]
	return v, ok
}

func (o *MapObj) Set(key string, val Object) {
	if _, ok := o.vals[key]; !ok {
		o.order = append(o.order, key)
	}
	o.vals[key] = val
}

func (o *MapObj) Delete(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.order {
		if k == key {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// RecordObj is a heap-allocated instance of a user-defined class: a
// class/type name plus a mapping from member name to value.
type RecordObj struct {
	id     int
	Class  string
	order  []string
	fields map[string]Object
}

func newRecordObj(id int, class string, fieldOrder []string) *RecordObj {
	r := &RecordObj{id: id, Class: class, fields: make(map[string]Object)}
	for _, f := range fieldOrder {
		r.order = append(r.order, f)
		r.fields[f] = nil
	}
	return r
}

func (o *RecordObj) Kind() trace.Kind { return trace.KindRecord }
func (o *RecordObj) Identity() int    { return o.id }
func (o *RecordObj) TypeName() string { return o.Class }

func (o *RecordObj) Children() []trace.Child {
	cs := make([]trace.Child, len(o.order))
	for i, k := range o.order {
		cs[i] = trace.Child{Key: k, Val: o.fields[k]}
	}
	return cs
}

func (o *RecordObj) Get(name string) (Object, bool) {
	v, ok := o.fields[name]
	return v, ok
}

func (o *RecordObj) Set(name string, val Object) {
	if _, ok := o.fields[name]; !ok {
		o.order = append(o.order, name)
	}
	o.fields[name] = val
}

// TupleObj is an immutable, transparent aggregate: never itself recorded
// as a heap object, but its elements are walked for reachability.
type TupleObj struct {
	Elems []Object
}

func (o *TupleObj) Kind() trace.Kind { return trace.KindTuple }
func (o *TupleObj) Identity() int    { return 0 } // tuples have no identity
func (o *TupleObj) TypeName() string { return "" }

func (o *TupleObj) Children() []trace.Child {
	cs := make([]trace.Child, len(o.Elems))
	for i, e := range o.Elems {
		cs[i] = trace.Child{Key: strconv.Itoa(i), Val: e}
	}
	return cs
}

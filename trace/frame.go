// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

// Locals is an insertion-ordered collection of local bindings. Ordering
// only matters for deterministic replay of newLocal/updateLocal events;
// lookups are still O(1).
type Locals struct {
	order []string
	vals  map[string]RawValue
}

// NewLocals returns an empty, ready-to-use Locals.
func NewLocals() *Locals {
	return &Locals{vals: make(map[string]RawValue)}
}

// Set records name=val, appending name to the order the first time it is
// seen.
func (l *Locals) Set(name string, val RawValue) {
	if _, ok := l.vals[name]; !ok {
		l.order = append(l.order, name)
	}
	l.vals[name] = val
}

// Get returns the binding for name, if any.
func (l *Locals) Get(name string) (RawValue, bool) {
	v, ok := l.vals[name]
	return v, ok
}

// Names returns the bound names in insertion order.
func (l *Locals) Names() []string {
	return l.order
}

// Clone returns a shallow copy: a new Locals whose map and order slice are
// independent, but whose values (including pointers to heap aggregates)
// are shared. This is what lets a Frame snapshot survive later mutation
// of the live frame it was copied from.
func (l *Locals) Clone() *Locals {
	c := &Locals{
		order: append([]string(nil), l.order...),
		vals:  make(map[string]RawValue, len(l.vals)),
	}
	for k, v := range l.vals {
		c.vals[k] = v
	}
	return c
}

// Frame is a per-call record: the function's name, the line currently
// executing, and its local bindings at the instant of capture.
type Frame struct {
	Function string
	Line     int
	Locals   *Locals
}

// NewFrame builds a Frame from the given function name, line, and locals;
// the Locals are cloned so later mutation of the caller's copy is inert.
func NewFrame(function string, line int, locals *Locals) *Frame {
	if locals == nil {
		locals = NewLocals()
	}
	return &Frame{Function: function, Line: line, Locals: locals.Clone()}
}

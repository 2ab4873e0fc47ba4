// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

// State is the full machine state the tracer observes: the call stack,
// filtered globals, and the live heap snapshot. Only frames whose
// ancestry includes a call to the entry point named "main" are ever
// pushed here; the host is responsible for that main-scoping check
// before it calls into History.
type State struct {
	frames  []*Frame // bottom (oldest) first; top is frames[len-1]
	globals map[string]RawValue
	heap    Heap
}

// NewState returns an empty State.
func NewState() *State {
	return &State{globals: make(map[string]RawValue), heap: make(Heap)}
}

// PushFrame pushes f as the new top of the call stack.
func (s *State) PushFrame(f *Frame) {
	s.frames = append(s.frames, f)
}

// PopFrame removes the top of the call stack.
func (s *State) PopFrame() {
	s.frames = s.frames[:len(s.frames)-1]
}

// ReplaceTop overwrites the current top frame, used when a line event
// reports the frame's new line and locals without a call/return.
func (s *State) ReplaceTop(f *Frame) {
	s.frames[len(s.frames)-1] = f
}

// SetGlobals replaces the tracked (already name-filtered) globals.
func (s *State) SetGlobals(g map[string]RawValue) {
	s.globals = g
}

// ActiveFrame returns the top of the call stack.
func (s *State) ActiveFrame() *Frame {
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of frames currently on the stack.
func (s *State) Depth() int {
	return len(s.frames)
}

// ReachableRoots returns, oldest frame to newest, the concatenation of
// each frame's local values: the root set for a heap snapshot.
func (s *State) ReachableRoots() []RawValue {
	var roots []RawValue
	for _, f := range s.frames {
		for _, name := range f.Locals.Names() {
			v, _ := f.Locals.Get(name)
			roots = append(roots, v)
		}
	}
	return roots
}

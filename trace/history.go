// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"errors"
	"strings"
	"time"
)

// ErrTimeout is the distinguished signal a Host method returns once the
// wall-clock budget configured on the History has been exceeded. The
// runner is expected to recognize it with errors.Is and translate it into
// a timeout-typed error envelope, preserving whatever log was recorded so
// far.
var ErrTimeout = errors.New("trace: wall-clock budget exceeded")

// DefaultTimeout is the wall-clock ceiling applied when a History is
// constructed with a non-positive budget.
const DefaultTimeout = 2 * time.Second

// GlobalSuffix is the hard convention separating user-intentional globals
// from framework noise: only globals whose name ends in this suffix are
// observed.
const GlobalSuffix = "_g"

// Host is the contract an instrumentation source (an interpreter, a
// bytecode rewriter, a VM hook) drives a tracer through. Every method may
// return ErrTimeout, at which point the host must stop executing the
// traced program and propagate the error; the log recorded up to that
// point remains valid.
type Host interface {
	OnCall(f *Frame) error
	OnLine(f *Frame, globals map[string]RawValue) error
	OnReturn(ret RawValue) error
	OnException(err error) error
}

// History is the event-driven driver: on each callback it updates State,
// recomputes the live heap, diffs it against the previous snapshot, and
// appends the result to an append-only log. It implements Host.
type History struct {
	state    *State
	log      []Event
	start    time.Time
	budget   time.Duration
	frozen   bool
	lastHeap Heap
}

// NewHistory returns a History ready to trace a run, with its wall clock
// starting now. A non-positive budget selects DefaultTimeout.
func NewHistory(budget time.Duration) *History {
	if budget <= 0 {
		budget = DefaultTimeout
	}
	return &History{
		state:    NewState(),
		start:    time.Now(),
		budget:   budget,
		lastHeap: make(Heap),
	}
}

// Frozen reports whether an exception has permanently suppressed further
// events.
func (h *History) Frozen() bool {
	return h.frozen
}

// Log returns the accumulated event log. The slice is owned by History;
// callers must not mutate it.
func (h *History) Log() []Event {
	return h.log
}

func (h *History) checkDeadline() error {
	if time.Since(h.start) > h.budget {
		return ErrTimeout
	}
	return nil
}

func (h *History) appendBatch(edits []HeapEdit) {
	if ev, ok := batchEvent(edits); ok {
		h.log = append(h.log, ev)
	}
}

func (h *History) recomputeHeap(roots []RawValue) {
	cur := Snapshot(roots)
	h.appendBatch(Diff(h.lastHeap, cur))
	h.lastHeap = cur
}

// OnCall handles a call event: pushes the host-built Frame f, appends
// pushFrame, then snapshots/diffs the heap from the now-larger root set.
func (h *History) OnCall(f *Frame) error {
	if err := h.checkDeadline(); err != nil {
		return err
	}
	if h.frozen {
		return nil
	}
	h.state.PushFrame(f)
	h.log = append(h.log, pushFrameEvent(f))
	h.recomputeHeap(h.state.ReachableRoots())
	return nil
}

// OnLine handles a line event. Ordering is mandatory: globals, then
// locals, then the heap diff, then the line marker itself, so a replayer
// sees the machine state as of *after* the previous line by the time the
// line marker highlights the next one.
func (h *History) OnLine(f *Frame, globals map[string]RawValue) error {
	if err := h.checkDeadline(); err != nil {
		return err
	}
	if h.frozen || h.state.Depth() == 0 {
		return nil
	}

	filtered := filterGlobals(globals)
	for name, val := range filtered {
		old, existed := h.state.globals[name]
		if !existed {
			h.log = append(h.log, globalEvent("newGlobal", name, val))
		} else if old != val {
			h.log = append(h.log, globalEvent("updateGlobal", name, val))
		}
	}

	active := h.state.ActiveFrame()
	for _, name := range f.Locals.Names() {
		val, _ := f.Locals.Get(name)
		old, existed := active.Locals.Get(name)
		if !existed {
			h.log = append(h.log, localEvent("newLocal", name, Encode(val)))
		} else if old != val {
			h.log = append(h.log, localEvent("updateLocal", name, Encode(val)))
		}
	}

	h.state.ReplaceTop(f)
	h.state.SetGlobals(filtered)

	h.recomputeHeap(h.state.ReachableRoots())
	h.log = append(h.log, lineEvent(f.Line))
	return nil
}

// OnReturn handles a return event: the returned value (and, for an
// __init__ call, the constructed "self") are added to the root set before
// the final heap snapshot of the returning frame is taken, then the frame
// is popped.
func (h *History) OnReturn(ret RawValue) error {
	if err := h.checkDeadline(); err != nil {
		return err
	}
	if h.frozen {
		return nil
	}

	roots := h.state.ReachableRoots()
	roots = append(roots, ret)
	active := h.state.ActiveFrame()
	if active.Function == "__init__" {
		if self, ok := active.Locals.Get("self"); ok {
			roots = append(roots, self)
		}
	}
	h.recomputeHeap(roots)

	h.state.PopFrame()
	h.log = append(h.log, returnEvent(ret))
	h.log = append(h.log, popFrameEvent())
	return nil
}

// OnException freezes the history: no further events are ever recorded,
// and the log accumulated so far remains valid and replayable.
func (h *History) OnException(err error) error {
	if derr := h.checkDeadline(); derr != nil {
		return derr
	}
	h.frozen = true
	return nil
}

func filterGlobals(globals map[string]RawValue) map[string]RawValue {
	out := make(map[string]RawValue, len(globals))
	for name, v := range globals {
		if strings.HasSuffix(name, GlobalSuffix) {
			out[name] = v
		}
	}
	return out
}

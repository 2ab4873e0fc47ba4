// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import "encoding/json"

// Event is one entry in the log: a tagged operation plus its
// already-shaped, JSON-ready payload. Keeping Info pre-shaped (rather
// than a generic tuple decoded at serialization time) mirrors the
// per-op info column of the log shape table directly.
type Event struct {
	Op   string
	Info interface{}
}

// MarshalJSON writes the canonical {"op": ..., "info": ...} shape.
func (e Event) MarshalJSON() ([]byte, error) {
	type wire struct {
		Op   string      `json:"op"`
		Info interface{} `json:"info"`
	}
	return json.Marshal(wire{Op: e.Op, Info: e.Info})
}

func lineEvent(line int) Event {
	return Event{Op: "line", Info: line}
}

func localEvent(op, name string, v Value) Event {
	return Event{Op: op, Info: []interface{}{name, v}}
}

// Globals are reported raw, not encoded: the _g convention means they are
// user-facing scalars, and the replayer shows them verbatim.
func globalEvent(op, name string, raw RawValue) Event {
	return Event{Op: op, Info: []interface{}{name, raw}}
}

func pushFrameEvent(f *Frame) Event {
	locals := make(map[string]Value, len(f.Locals.Names()))
	for _, name := range f.Locals.Names() {
		v, _ := f.Locals.Get(name)
		locals[name] = Encode(v)
	}
	return Event{Op: "pushFrame", Info: map[string]interface{}{
		"function": f.Function,
		"locals":   locals,
		"line":     f.Line,
	}}
}

func popFrameEvent() Event {
	return Event{Op: "popFrame", Info: nil}
}

func returnEvent(ret RawValue) Event {
	return Event{Op: "return", Info: Encode(ret)}
}

func batchEvent(edits []HeapEdit) (Event, bool) {
	if len(edits) == 0 {
		return Event{}, false
	}
	events := make([]Event, len(edits))
	for i, e := range edits {
		events[i] = heapEditEvent(e)
	}
	return Event{Op: "batch", Info: events}, true
}

func heapEditEvent(e HeapEdit) Event {
	switch e.Op {
	case OpDelete:
		return Event{Op: string(e.Op), Info: e.ID}
	case OpNew:
		return Event{Op: string(e.Op), Info: []interface{}{e.ID, serializeObject(e.Obj)}}
	case OpRemoveKey:
		return Event{Op: string(e.Op), Info: []interface{}{e.ID, e.Key}}
	case OpAddKey, OpModifyKey:
		return Event{Op: string(e.Op), Info: []interface{}{e.ID, e.Key, e.Val}}
	case OpModifyPos:
		return Event{Op: string(e.Op), Info: []interface{}{e.ID, e.Index, e.Val}}
	case OpReset:
		return Event{Op: string(e.Op), Info: []interface{}{e.ID, e.List}}
	default:
		panic("trace: unknown heap edit op " + string(e.Op))
	}
}

// serializeObject renders a HeapObject the way a "new" event or a replay
// tool expects to see a full object: a raw list for List, or
// {type, members} for Map/Record.
func serializeObject(o HeapObject) interface{} {
	if o.Kind == KindList {
		return o.List
	}
	return map[string]interface{}{
		"type":    o.TypeName,
		"members": o.Members,
	}
}

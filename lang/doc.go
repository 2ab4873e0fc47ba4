// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lang implements the instrumentation source: a lexer, parser and
// tree-walking interpreter for a small dynamically-typed imperative
// language ("gotutor source"). It is the concrete stand-in for the
// per-event callback stream spec.md treats as an external collaborator —
// the "structured interpreter" alternative to a bytecode rewriter or VM
// hook called out in that spec's design notes.
//
// Every heap-allocated value (list, map, record, tuple) is a pointer to
// one of ListObj, MapObj, RecordObj or TupleObj, each of which implements
// trace.Aggregate so the tracer can walk reachability without reflection.
// Object identity is assigned once, at allocation, by a monotonically
// increasing counter owned by the Interp that never recycles within a run.
package lang

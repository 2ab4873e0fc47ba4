// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace implements the state-differential execution tracer: a
// model of program state (call frames, globals, and a virtual heap of
// aggregates) plus a diffing engine that, on every instrumentation event,
// computes the minimal set of changes since the last event and appends
// them to a monotonic, replayable log.
//
// trace is host-agnostic: it knows nothing about the language being
// interpreted. The instrumentation source (an interpreter, a bytecode
// rewriter, a VM hook) drives it through the Host contract and supplies
// raw values through the Aggregate interface so the tracer can walk
// reachable lists, maps and records without reflection.
package trace

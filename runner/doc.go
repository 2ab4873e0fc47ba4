// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runner wires analyze, lang and trace together: analyze a source
// file, run it against a trace.History, and produce the {error, log,
// infer} envelope a replayer consumes.
package runner

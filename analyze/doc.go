// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analyze performs a static pass over a parsed gotutor program
// before it is ever run: a reserved-name safety check, and extraction of
// "##"-docstring hints that tell a replayer how to visually render a
// value (an array indexed by named variables, a record with pointer
// members) without having to guess from runtime shape alone.
package analyze

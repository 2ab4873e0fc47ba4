// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analyze

import (
	"github.com/gotutor/gotutor/lang"
)

// Error is the pre-run failure envelope: a syntax error from the lang
// front-end, or a security violation from Check.
type Error struct {
	Type string `json:"type"`
	Line int    `json:"line,omitempty"`
	Msg  string `json:"msg"`
}

// Analyze parses src, extracts docstring inferences, and rejects reserved
// identifiers, all before a single statement of the program runs. A
// non-nil *Error means the program never reaches the interpreter.
func Analyze(src string) (*Error, []Inference) {
	prog, err := lang.Parse(src)
	if err != nil {
		if serr, ok := err.(*lang.SyntaxError); ok {
			return &Error{Type: "syntax_error", Line: serr.Line, Msg: serr.Error()}, nil
		}
		return &Error{Type: "syntax_error", Msg: err.Error()}, nil
	}

	infs := Infer(prog)

	if err := Check(prog); err != nil {
		if serr, ok := err.(*SecurityError); ok {
			return &Error{Type: "security", Line: serr.Line, Msg: serr.Error()}, infs
		}
		return &Error{Type: "security", Msg: err.Error()}, infs
	}

	return nil, infs
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"errors"
	"time"

	"github.com/gotutor/gotutor/analyze"
	"github.com/gotutor/gotutor/lang"
	"github.com/gotutor/gotutor/trace"
)

// Output is the full JSON envelope a run produces: the terminal error (if
// any), the event log recorded up to that point, and the static
// inferences extracted before execution started.
type Output struct {
	Error *analyze.Error      `json:"error"`
	Log   []trace.Event       `json:"log"`
	Infer []analyze.Inference `json:"infer"`
}

// Run analyzes and, absent a syntax or security error, executes src with a
// fresh trace.History budgeted at budget (a non-positive budget selects
// trace.DefaultTimeout). It never panics: every failure mode — a bad
// parse, a disallowed identifier, a runtime fault, or running past the
// wall-clock budget — is reported through Output.Error.
func Run(src string, budget time.Duration) *Output {
	errOut, infs := analyze.Analyze(src)
	if infs == nil {
		infs = []analyze.Inference{}
	}
	if errOut != nil {
		return &Output{Error: errOut, Log: []trace.Event{}, Infer: infs}
	}

	prog, err := lang.Parse(src)
	if err != nil {
		return &Output{
			Error: &analyze.Error{Type: "syntax_error", Msg: err.Error()},
			Log:   []trace.Event{},
			Infer: infs,
		}
	}

	if budget <= 0 {
		budget = trace.DefaultTimeout
	}
	hist := trace.NewHistory(budget)

	done := make(chan error, 1)
	go func() {
		interp := lang.NewInterp(prog, hist)
		_, runErr := interp.Run()
		done <- runErr
	}()

	select {
	case runErr := <-done:
		if runErr == nil {
			return &Output{Log: hist.Log(), Infer: infs}
		}
		if errors.Is(runErr, trace.ErrTimeout) {
			return &Output{
				Error: &analyze.Error{Type: "timeout", Msg: "code timed out"},
				Log:   hist.Log(),
				Infer: infs,
			}
		}
		return &Output{
			Error: &analyze.Error{Type: "runtime", Msg: runErr.Error()},
			Log:   hist.Log(),
			Infer: infs,
		}
	case <-time.After(budget):
		// The interpreter goroutine is abandoned here: it has no way to
		// suspend mid-statement, so it runs until its own checkDeadline
		// catches up and it exits on its own. That narrow overlap window
		// is the one place this package accepts a benign data race on
		// hist's internal slices in exchange for never blocking on a
		// runaway program — see DESIGN.md.
		return &Output{
			Error: &analyze.Error{Type: "timeout", Msg: "code timed out"},
			Log:   hist.Log(),
			Infer: infs,
		}
	}
}

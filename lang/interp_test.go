// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lang

import (
	"testing"

	"github.com/gotutor/gotutor/trace"
)

// recordingHost is a minimal trace.Host that only counts callbacks, so
// interpreter tests can assert on call/line/return shape without pulling
// in the full event-log machinery of trace.History.
type recordingHost struct {
	calls      int
	lines      int
	returns    []Object
	exceptions []error
}

func (h *recordingHost) OnCall(f *trace.Frame) error { h.calls++; return nil }
func (h *recordingHost) OnLine(f *trace.Frame, g map[string]trace.RawValue) error {
	h.lines++
	return nil
}
func (h *recordingHost) OnReturn(ret trace.RawValue) error {
	h.returns = append(h.returns, ret)
	return nil
}
func (h *recordingHost) OnException(err error) error {
	h.exceptions = append(h.exceptions, err)
	return nil
}

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return prog
}

func TestInterpFactorial(t *testing.T) {
	prog := mustParse(t, `
func fact(n) {
    if n <= 1 {
        return 1
    }
    return n * fact(n - 1)
}

func main() {
    return fact(5)
}
`)
	host := &recordingHost{}
	ret, err := NewInterp(prog, host).Run()
	if err != nil {
		t.Fatal(err)
	}
	if ret != int64(120) {
		t.Errorf("fact(5) = %v, want 120", ret)
	}
	if host.calls == 0 || host.lines == 0 {
		t.Error("expected OnCall/OnLine to have fired")
	}
}

func TestInterpGlobalMutation(t *testing.T) {
	prog := mustParse(t, `
var total_g = 0

func bump() {
    total_g = total_g + 1
}

func main() {
    bump()
    bump()
    bump()
    return total_g
}
`)
	ret, err := NewInterp(prog, &recordingHost{}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if ret != int64(3) {
		t.Errorf("total_g = %v, want 3", ret)
	}
}

func TestInterpListAppendIsInPlace(t *testing.T) {
	prog := mustParse(t, `
func main() {
    let v = [1, 2]
    append(v, 3)
    return v
}
`)
	ret, err := NewInterp(prog, &recordingHost{}).Run()
	if err != nil {
		t.Fatal(err)
	}
	lst, ok := ret.(*ListObj)
	if !ok {
		t.Fatalf("got %T, want *ListObj", ret)
	}
	if len(lst.Elems) != 3 {
		t.Fatalf("len(lst.Elems) = %d, want 3", len(lst.Elems))
	}
}

func TestInterpClassInitAndFieldAccess(t *testing.T) {
	prog := mustParse(t, `
class Box {
    value
    func __init__(self, value) {
        self.value = value
    }
}

func main() {
    let b = new Box(42)
    return b.value
}
`)
	ret, err := NewInterp(prog, &recordingHost{}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if ret != int64(42) {
		t.Errorf("b.value = %v, want 42", ret)
	}
}

func TestInterpRuntimeErrorReportsException(t *testing.T) {
	prog := mustParse(t, `
func main() {
    let v = [1, 2]
    return v[5]
}
`)
	host := &recordingHost{}
	_, err := NewInterp(prog, host).Run()
	if err == nil {
		t.Fatal("expected a runtime error for an out-of-range index")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("got %T, want *RuntimeError", err)
	}
	if len(host.exceptions) != 1 {
		t.Fatalf("OnException called %d times, want exactly 1", len(host.exceptions))
	}
}

func TestInterpSliceCreatesNewIdentity(t *testing.T) {
	prog := mustParse(t, `
func main() {
    let v = [1, 2, 3, 4]
    let w = v[1:3]
    return w
}
`)
	ret, err := NewInterp(prog, &recordingHost{}).Run()
	if err != nil {
		t.Fatal(err)
	}
	w := ret.(*ListObj)
	if len(w.Elems) != 2 || w.Elems[0] != int64(2) || w.Elems[1] != int64(3) {
		t.Fatalf("v[1:3] = %v, want [2 3]", w.Elems)
	}
}

func TestInterpForInOverList(t *testing.T) {
	prog := mustParse(t, `
func main() {
    let v = [10, 20, 30]
    let total = 0
    for x in v {
        total = total + x
    }
    return total
}
`)
	ret, err := NewInterp(prog, &recordingHost{}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if ret != int64(60) {
		t.Errorf("total = %v, want 60", ret)
	}
}

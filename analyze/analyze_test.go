// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analyze

import (
	"testing"

	"github.com/gotutor/gotutor/lang"
)

func TestCheckRejectsReservedCall(t *testing.T) {
	prog, err := lang.Parse(`
func main() {
    let x = eval("1+1")
}
`)
	if err != nil {
		t.Fatal(err)
	}
	err = Check(prog)
	if err == nil {
		t.Fatal("expected Check to reject a call to eval")
	}
	if _, ok := err.(*SecurityError); !ok {
		t.Fatalf("got %T, want *SecurityError", err)
	}
}

func TestCheckAllowsOrdinaryProgram(t *testing.T) {
	prog, err := lang.Parse(`
func add(a, b) {
    return a + b
}
func main() {
    return add(1, 2)
}
`)
	if err != nil {
		t.Fatal(err)
	}
	if err := Check(prog); err != nil {
		t.Fatalf("unexpected security error: %v", err)
	}
}

func TestInferArrayIndexHint(t *testing.T) {
	prog, err := lang.Parse(`
## index: v[i][j]
func get(v, i, j) {
    return v[i][j]
}
func main() {}
`)
	if err != nil {
		t.Fatal(err)
	}
	infs := Infer(prog)
	if len(infs) != 2 {
		t.Fatalf("got %d inferences, want 2", len(infs))
	}
	d0 := infs[0].Data.(arrayIndexData)
	if d0.FuncName != "get" || d0.Array != "v" || d0.Var != "i" || d0.Index != 0 {
		t.Errorf("got %+v, want {get v i 0}", d0)
	}
	d1 := infs[1].Data.(arrayIndexData)
	if d1.Var != "j" || d1.Index != 1 {
		t.Errorf("got %+v, want var=j index=1", d1)
	}
}

func TestInferMemberPointerHint(t *testing.T) {
	prog, err := lang.Parse(`
## pointers: left, right
class TreeNode {
    left
    right
    func __init__(self) {
        self.left = nil
        self.right = nil
    }
}
func main() {}
`)
	if err != nil {
		t.Fatal(err)
	}
	infs := Infer(prog)
	if len(infs) != 2 {
		t.Fatalf("got %d inferences, want 2", len(infs))
	}
	for _, inf := range infs {
		if inf.Type != "memberPointer" {
			t.Errorf("got type %q, want memberPointer", inf.Type)
		}
	}
}

func TestAnalyzeSyntaxError(t *testing.T) {
	errOut, infs := Analyze(`func main( { }`)
	if errOut == nil {
		t.Fatal("expected a syntax_error")
	}
	if errOut.Type != "syntax_error" {
		t.Errorf("got type %q, want syntax_error", errOut.Type)
	}
	if infs != nil {
		t.Errorf("expected no inferences on a syntax error, got %v", infs)
	}
}

func TestAnalyzeSecurityError(t *testing.T) {
	errOut, _ := Analyze(`
func main() {
    let x = open("secret")
}
`)
	if errOut == nil || errOut.Type != "security" {
		t.Fatalf("got %+v, want type security", errOut)
	}
}

func TestAnalyzeCleanProgram(t *testing.T) {
	errOut, infs := Analyze(`
## index: v[i]
func get(v, i) {
    return v[i]
}
func main() {
    return get([1,2,3], 0)
}
`)
	if errOut != nil {
		t.Fatalf("unexpected error: %+v", errOut)
	}
	if len(infs) != 1 {
		t.Fatalf("got %d inferences, want 1", len(infs))
	}
}

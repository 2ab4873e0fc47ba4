// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lang

import "testing"

func TestParseFunctionAndCall(t *testing.T) {
	prog, err := Parse(`
func add(a, b) {
    return a + b
}

func main() {
    let x = add(1, 2)
}
`)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := prog.Funcs["add"]; !ok {
		t.Fatal("expected a function named add")
	}
	if _, ok := prog.Funcs["main"]; !ok {
		t.Fatal("expected a function named main")
	}
}

func TestParseClassWithInit(t *testing.T) {
	prog, err := Parse(`
class Box {
    value
    func __init__(self, value) {
        self.value = value
    }
}

func main() {
    let b = new Box(5)
}
`)
	if err != nil {
		t.Fatal(err)
	}
	cls, ok := prog.Classes["Box"]
	if !ok {
		t.Fatal("expected class Box")
	}
	if len(cls.Fields) != 1 || cls.Fields[0] != "value" {
		t.Fatalf("got fields %v, want [value]", cls.Fields)
	}
	if _, ok := cls.Methods["__init__"]; !ok {
		t.Fatal("expected __init__ method")
	}
}

func TestParseDocComment(t *testing.T) {
	prog, err := Parse(`
## index: v[i]
func get(v, i) {
    return v[i]
}
func main() {}
`)
	if err != nil {
		t.Fatal(err)
	}
	fn := prog.Funcs["get"]
	if len(fn.Doc) != 1 || fn.Doc[0] != "index: v[i]" {
		t.Fatalf("got doc %v, want [\"index: v[i]\"]", fn.Doc)
	}
}

func TestParseTupleLiteral(t *testing.T) {
	prog, err := Parse(`
func main() {
    let t = (1, 2, 3)
}
`)
	if err != nil {
		t.Fatal(err)
	}
	main := prog.Funcs["main"]
	let := main.Body[0].(*LetStmt)
	tup, ok := let.Init.(*TupleLit)
	if !ok {
		t.Fatalf("got %T, want *TupleLit", let.Init)
	}
	if len(tup.Elems) != 3 {
		t.Fatalf("len(tup.Elems) = %d, want 3", len(tup.Elems))
	}
}

func TestParseParenthesizedExprIsNotATuple(t *testing.T) {
	prog, err := Parse(`
func main() {
    let x = (1 + 2) * 3
}
`)
	if err != nil {
		t.Fatal(err)
	}
	main := prog.Funcs["main"]
	let := main.Body[0].(*LetStmt)
	if _, ok := let.Init.(*BinaryExpr); !ok {
		t.Fatalf("got %T, want *BinaryExpr", let.Init)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(`func main( { }`)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("got %T, want *SyntaxError", err)
	}
}

func TestParseForInRange(t *testing.T) {
	prog, err := Parse(`
func main() {
    for i in range(3) {
        let x = i
    }
}
`)
	if err != nil {
		t.Fatal(err)
	}
	main := prog.Funcs["main"]
	if _, ok := main.Body[0].(*ForInStmt); !ok {
		t.Fatalf("got %T, want *ForInStmt", main.Body[0])
	}
}

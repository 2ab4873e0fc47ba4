// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analyze

import (
	"fmt"

	"github.com/gotutor/gotutor/lang"
)

// SecurityError reports use of a reserved, disallowed identifier —
// anything that could let traced source reach outside the sandboxed
// interpreter (there is no "import", no reflective getattr/setattr, no
// eval/exec, no filesystem access in gotutor source; the allow-list exists
// so a program cannot merely declare its own function under one of these
// names and call it expecting special meaning).
type SecurityError struct {
	Line int
	Name string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("line %d: use of reserved name %q is not allowed", e.Line, e.Name)
}

var reserved = map[string]bool{
	"import":     true,
	"exec":       true,
	"eval":       true,
	"getattr":    true,
	"setattr":    true,
	"open":       true,
	"compile":    true,
	"globals":    true,
	"locals":     true,
	"dir":        true,
	"__import__": true,
}

// Check walks prog and returns the first use of a reserved identifier,
// whether as a declared name or as a call target.
func Check(prog *lang.Program) error {
	for _, g := range prog.Globals {
		if err := checkName(g.Name, g.Line); err != nil {
			return err
		}
		if err := checkExpr(g.Init); err != nil {
			return err
		}
	}
	for _, fn := range prog.Funcs {
		if err := checkFunc(fn); err != nil {
			return err
		}
	}
	for _, cls := range prog.Classes {
		if err := checkName(cls.Name, cls.Line); err != nil {
			return err
		}
		for _, f := range cls.Fields {
			if err := checkName(f, cls.Line); err != nil {
				return err
			}
		}
		for _, m := range cls.Methods {
			if err := checkFunc(m); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkFunc(fn *lang.FuncDecl) error {
	if err := checkName(fn.Name, fn.Line); err != nil {
		return err
	}
	for _, p := range fn.Params {
		if err := checkName(p, fn.Line); err != nil {
			return err
		}
	}
	return checkStmts(fn.Body)
}

func checkName(name string, line int) error {
	if reserved[name] {
		return &SecurityError{Line: line, Name: name}
	}
	return nil
}

func checkStmts(stmts []lang.Stmt) error {
	for _, st := range stmts {
		if err := checkStmt(st); err != nil {
			return err
		}
	}
	return nil
}

func checkStmt(st lang.Stmt) error {
	switch s := st.(type) {
	case *lang.LetStmt:
		if err := checkName(s.Name, s.Line); err != nil {
			return err
		}
		return checkExpr(s.Init)
	case *lang.AssignStmt:
		if err := checkExpr(s.Target); err != nil {
			return err
		}
		return checkExpr(s.Value)
	case *lang.ExprStmt:
		return checkExpr(s.X)
	case *lang.IfStmt:
		if err := checkExpr(s.Cond); err != nil {
			return err
		}
		if err := checkStmts(s.Then); err != nil {
			return err
		}
		return checkStmts(s.Else)
	case *lang.ForStmt:
		if s.Init != nil {
			if err := checkStmt(s.Init); err != nil {
				return err
			}
		}
		if s.Cond != nil {
			if err := checkExpr(s.Cond); err != nil {
				return err
			}
		}
		if s.Post != nil {
			if err := checkStmt(s.Post); err != nil {
				return err
			}
		}
		return checkStmts(s.Body)
	case *lang.ForInStmt:
		if err := checkName(s.Var, s.Line); err != nil {
			return err
		}
		if err := checkExpr(s.Iter); err != nil {
			return err
		}
		return checkStmts(s.Body)
	case *lang.ReturnStmt:
		if s.Value != nil {
			return checkExpr(s.Value)
		}
	}
	return nil
}

func checkExpr(ex lang.Expr) error {
	switch x := ex.(type) {
	case nil:
		return nil
	case *lang.Ident:
		return checkName(x.Name, x.Line)
	case *lang.ListLit:
		return checkExprs(x.Elems)
	case *lang.TupleLit:
		return checkExprs(x.Elems)
	case *lang.MapLit:
		if err := checkExprs(x.Keys); err != nil {
			return err
		}
		return checkExprs(x.Values)
	case *lang.NewExpr:
		if err := checkName(x.Class, x.Line); err != nil {
			return err
		}
		return checkExprs(x.Args)
	case *lang.IndexExpr:
		if err := checkExpr(x.X); err != nil {
			return err
		}
		return checkExpr(x.Index)
	case *lang.SliceExpr:
		if err := checkExpr(x.X); err != nil {
			return err
		}
		if x.Low != nil {
			if err := checkExpr(x.Low); err != nil {
				return err
			}
		}
		if x.High != nil {
			return checkExpr(x.High)
		}
		return nil
	case *lang.MemberExpr:
		return checkExpr(x.X)
	case *lang.CallExpr:
		if id, ok := x.Fn.(*lang.Ident); ok {
			if err := checkName(id.Name, id.Line); err != nil {
				return err
			}
		} else if err := checkExpr(x.Fn); err != nil {
			return err
		}
		return checkExprs(x.Args)
	case *lang.UnaryExpr:
		return checkExpr(x.X)
	case *lang.BinaryExpr:
		if err := checkExpr(x.L); err != nil {
			return err
		}
		return checkExpr(x.R)
	}
	return nil
}

func checkExprs(exprs []lang.Expr) error {
	for _, e := range exprs {
		if err := checkExpr(e); err != nil {
			return err
		}
	}
	return nil
}

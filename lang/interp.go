// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lang

import (
	"fmt"

	"github.com/gotutor/gotutor/trace"
)

// RuntimeError is a gotutor-source fault (an out-of-range index, an
// undefined variable, division by zero) — the toy language's analogue of
// an uncaught exception, reported to the tracer's OnException and then
// surfaced to the runner as a {type: "runtime"} error.
type RuntimeError struct {
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ctrl threads a pending return value out of nested statement execution.
type ctrl struct {
	isReturn bool
	retVal   Object
}

// Interp is a tree-walking evaluator for a parsed Program. It owns object
// identity (a monotonically increasing counter handed out at allocation
// time, never recycled within a run) and drives a trace.Host at every
// call, line, return and exception.
type Interp struct {
	prog              *Program
	host              trace.Host
	globals           *orderedVars
	nextID            int
	exceptionReported bool
}

// NewInterp returns an Interp ready to run prog against host.
func NewInterp(prog *Program, host trace.Host) *Interp {
	return &Interp{prog: prog, host: host, globals: newOrderedVars(), nextID: 1}
}

// Run evaluates top-level globals (untraced, mirroring module import
// before any frame is on the stack) and then calls main.
func (in *Interp) Run() (Object, error) {
	topEnv := newEnv()
	host := in.host
	in.host = untracedHost{}
	for _, g := range in.prog.Globals {
		val, err := in.eval(g.Init, topEnv)
		if err != nil {
			in.host = host
			return nil, err
		}
		in.globals.set(g.Name, val)
	}
	in.host = host
	main, ok := in.prog.Funcs["main"]
	if !ok {
		return nil, &RuntimeError{Line: 0, Msg: "no main function defined"}
	}
	return in.call(main, nil)
}

// untracedHost discards every callback; Run installs it while top-level
// globals are evaluated, so calls made by a global initializer are not
// traced.
type untracedHost struct{}

func (untracedHost) OnCall(*trace.Frame) error                            { return nil }
func (untracedHost) OnLine(*trace.Frame, map[string]trace.RawValue) error { return nil }
func (untracedHost) OnReturn(trace.RawValue) error                        { return nil }
func (untracedHost) OnException(error) error                              { return nil }

func (in *Interp) allocID() int {
	id := in.nextID
	in.nextID++
	return id
}

func (in *Interp) rtErr(line int, format string, args ...interface{}) error {
	return &RuntimeError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (in *Interp) globalsSnapshot() map[string]trace.RawValue {
	m := make(map[string]trace.RawValue, len(in.globals.vals))
	for k, v := range in.globals.vals {
		m[k] = v
	}
	return m
}

func toTraceLocals(v *orderedVars) *trace.Locals {
	l := trace.NewLocals()
	for _, name := range v.order {
		l.Set(name, v.vals[name])
	}
	return l
}

// call invokes fn with args already evaluated, running OnCall before the
// body and OnReturn after. A runtime fault is reported to OnException
// exactly once, at the frame where it originates.
func (in *Interp) call(fn *FuncDecl, args []Object) (Object, error) {
	e := newEnv()
	for i, p := range fn.Params {
		var v Object
		if i < len(args) {
			v = args[i]
		}
		e.locals.set(p, v)
	}

	line := fn.Line
	if len(fn.Body) > 0 {
		line = fn.Body[0].stmtLine()
	}
	frame := trace.NewFrame(fn.Name, line, toTraceLocals(e.locals))
	if err := in.host.OnCall(frame); err != nil {
		return nil, err
	}

	c, err := in.execBlock(fn.Body, e, fn.Name)
	if err != nil {
		if err != trace.ErrTimeout && !in.exceptionReported {
			in.exceptionReported = true
			if oerr := in.host.OnException(err); oerr != nil {
				return nil, oerr
			}
		}
		return nil, err
	}

	var ret Object
	if c.isReturn {
		ret = c.retVal
	}
	if err := in.host.OnReturn(ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (in *Interp) execBlock(stmts []Stmt, e *env, fnName string) (ctrl, error) {
	for _, st := range stmts {
		frame := trace.NewFrame(fnName, st.stmtLine(), toTraceLocals(e.locals))
		if err := in.host.OnLine(frame, in.globalsSnapshot()); err != nil {
			return ctrl{}, err
		}
		c, err := in.execStmt(st, e, fnName)
		if err != nil {
			return ctrl{}, err
		}
		if c.isReturn {
			return c, nil
		}
	}
	return ctrl{}, nil
}

func (in *Interp) execStmt(st Stmt, e *env, fnName string) (ctrl, error) {
	switch s := st.(type) {
	case *LetStmt, *AssignStmt, *ExprStmt:
		if err := in.doSimple(st, e); err != nil {
			return ctrl{}, err
		}
		return ctrl{}, nil
	case *IfStmt:
		v, err := in.eval(s.Cond, e)
		if err != nil {
			return ctrl{}, err
		}
		b, ok := v.(bool)
		if !ok {
			return ctrl{}, in.rtErr(s.Line, "if condition must be boolean")
		}
		if b {
			return in.execBlock(s.Then, e, fnName)
		}
		if s.Else != nil {
			return in.execBlock(s.Else, e, fnName)
		}
		return ctrl{}, nil
	case *ForStmt:
		return in.execFor(s, e, fnName)
	case *ForInStmt:
		return in.execForIn(s, e, fnName)
	case *ReturnStmt:
		if s.Value == nil {
			return ctrl{isReturn: true}, nil
		}
		v, err := in.eval(s.Value, e)
		if err != nil {
			return ctrl{}, err
		}
		return ctrl{isReturn: true, retVal: v}, nil
	}
	return ctrl{}, in.rtErr(st.stmtLine(), "unsupported statement")
}

func (in *Interp) doSimple(st Stmt, e *env) error {
	switch s := st.(type) {
	case *LetStmt:
		v, err := in.eval(s.Init, e)
		if err != nil {
			return err
		}
		e.locals.set(s.Name, v)
		return nil
	case *AssignStmt:
		v, err := in.eval(s.Value, e)
		if err != nil {
			return err
		}
		return in.assign(s.Target, v, e)
	case *ExprStmt:
		_, err := in.eval(s.X, e)
		return err
	}
	return in.rtErr(st.stmtLine(), "unsupported statement in this position")
}

func (in *Interp) execFor(s *ForStmt, e *env, fnName string) (ctrl, error) {
	if s.Init != nil {
		if err := in.doSimple(s.Init, e); err != nil {
			return ctrl{}, err
		}
	}
	for {
		if s.Cond != nil {
			v, err := in.eval(s.Cond, e)
			if err != nil {
				return ctrl{}, err
			}
			b, ok := v.(bool)
			if !ok {
				return ctrl{}, in.rtErr(s.Line, "for condition must be boolean")
			}
			if !b {
				break
			}
		}
		frame := trace.NewFrame(fnName, s.Line, toTraceLocals(e.locals))
		if err := in.host.OnLine(frame, in.globalsSnapshot()); err != nil {
			return ctrl{}, err
		}
		c, err := in.execBlock(s.Body, e, fnName)
		if err != nil {
			return ctrl{}, err
		}
		if c.isReturn {
			return c, nil
		}
		if s.Post != nil {
			if err := in.doSimple(s.Post, e); err != nil {
				return ctrl{}, err
			}
		}
	}
	return ctrl{}, nil
}

func (in *Interp) execForIn(s *ForInStmt, e *env, fnName string) (ctrl, error) {
	if call, ok := s.Iter.(*CallExpr); ok {
		if id, ok2 := call.Fn.(*Ident); ok2 && id.Name == "range" {
			return in.execRangeFor(s, call, e, fnName)
		}
	}
	iterVal, err := in.eval(s.Iter, e)
	if err != nil {
		return ctrl{}, err
	}
	lst, ok := iterVal.(*ListObj)
	if !ok {
		return ctrl{}, in.rtErr(s.Line, "for-in requires a list")
	}
	for _, elem := range append([]Object(nil), lst.Elems...) {
		e.locals.set(s.Var, elem)
		frame := trace.NewFrame(fnName, s.Line, toTraceLocals(e.locals))
		if err := in.host.OnLine(frame, in.globalsSnapshot()); err != nil {
			return ctrl{}, err
		}
		c, err := in.execBlock(s.Body, e, fnName)
		if err != nil {
			return ctrl{}, err
		}
		if c.isReturn {
			return c, nil
		}
	}
	return ctrl{}, nil
}

func (in *Interp) execRangeFor(s *ForInStmt, call *CallExpr, e *env, fnName string) (ctrl, error) {
	var lo, hi int64
	switch len(call.Args) {
	case 1:
		v, err := in.eval(call.Args[0], e)
		if err != nil {
			return ctrl{}, err
		}
		n, ok := v.(int64)
		if !ok {
			return ctrl{}, in.rtErr(s.Line, "range expects an integer")
		}
		hi = n
	case 2:
		v0, err := in.eval(call.Args[0], e)
		if err != nil {
			return ctrl{}, err
		}
		v1, err := in.eval(call.Args[1], e)
		if err != nil {
			return ctrl{}, err
		}
		l, ok := v0.(int64)
		if !ok {
			return ctrl{}, in.rtErr(s.Line, "range expects integers")
		}
		h, ok := v1.(int64)
		if !ok {
			return ctrl{}, in.rtErr(s.Line, "range expects integers")
		}
		lo, hi = l, h
	default:
		return ctrl{}, in.rtErr(s.Line, "range expects 1 or 2 arguments")
	}
	for i := lo; i < hi; i++ {
		e.locals.set(s.Var, i)
		frame := trace.NewFrame(fnName, s.Line, toTraceLocals(e.locals))
		if err := in.host.OnLine(frame, in.globalsSnapshot()); err != nil {
			return ctrl{}, err
		}
		c, err := in.execBlock(s.Body, e, fnName)
		if err != nil {
			return ctrl{}, err
		}
		if c.isReturn {
			return c, nil
		}
	}
	return ctrl{}, nil
}

func (in *Interp) assign(target Expr, val Object, e *env) error {
	switch t := target.(type) {
	case *Ident:
		if _, ok := e.locals.get(t.Name); ok {
			e.locals.set(t.Name, val)
			return nil
		}
		if _, ok := in.globals.get(t.Name); ok {
			in.globals.set(t.Name, val)
			return nil
		}
		return in.rtErr(t.Line, "assignment to undeclared variable %q (use let)", t.Name)
	case *IndexExpr:
		container, err := in.eval(t.X, e)
		if err != nil {
			return err
		}
		idx, err := in.eval(t.Index, e)
		if err != nil {
			return err
		}
		switch c := container.(type) {
		case *ListObj:
			i, ok := idx.(int64)
			if !ok || i < 0 || int(i) >= len(c.Elems) {
				return in.rtErr(t.Line, "list index out of range")
			}
			c.Elems[i] = val
			return nil
		case *MapObj:
			k, ok := idx.(string)
			if !ok {
				return in.rtErr(t.Line, "map key must be a string")
			}
			c.Set(k, val)
			return nil
		}
		return in.rtErr(t.Line, "cannot index-assign into this value")
	case *MemberExpr:
		xv, err := in.eval(t.X, e)
		if err != nil {
			return err
		}
		rec, ok := xv.(*RecordObj)
		if !ok {
			return in.rtErr(t.Line, "member assignment requires a record")
		}
		rec.Set(t.Field, val)
		return nil
	}
	return in.rtErr(target.exprLine(), "invalid assignment target")
}

func (in *Interp) eval(expr Expr, e *env) (Object, error) {
	switch x := expr.(type) {
	case *IntLit:
		return x.Val, nil
	case *FloatLit:
		return x.Val, nil
	case *StringLit:
		return x.Val, nil
	case *BoolLit:
		return x.Val, nil
	case *NilLit:
		return nil, nil
	case *Ident:
		if v, ok := e.locals.get(x.Name); ok {
			return v, nil
		}
		if v, ok := in.globals.get(x.Name); ok {
			return v, nil
		}
		return nil, in.rtErr(x.Line, "undefined variable %q", x.Name)
	case *ListLit:
		lst := &ListObj{id: in.allocID()}
		for _, el := range x.Elems {
			v, err := in.eval(el, e)
			if err != nil {
				return nil, err
			}
			lst.Elems = append(lst.Elems, v)
		}
		return lst, nil
	case *TupleLit:
		tup := &TupleObj{}
		for _, el := range x.Elems {
			v, err := in.eval(el, e)
			if err != nil {
				return nil, err
			}
			tup.Elems = append(tup.Elems, v)
		}
		return tup, nil
	case *MapLit:
		m := newMapObj(in.allocID())
		for i, k := range x.Keys {
			kv, err := in.eval(k, e)
			if err != nil {
				return nil, err
			}
			ks, ok := kv.(string)
			if !ok {
				return nil, in.rtErr(x.Line, "map keys must be strings")
			}
			vv, err := in.eval(x.Values[i], e)
			if err != nil {
				return nil, err
			}
			m.Set(ks, vv)
		}
		return m, nil
	case *NewExpr:
		return in.evalNew(x, e)
	case *IndexExpr:
		return in.evalIndex(x, e)
	case *SliceExpr:
		return in.evalSlice(x, e)
	case *MemberExpr:
		xv, err := in.eval(x.X, e)
		if err != nil {
			return nil, err
		}
		rec, ok := xv.(*RecordObj)
		if !ok {
			return nil, in.rtErr(x.Line, "member access requires a record")
		}
		v, ok := rec.Get(x.Field)
		if !ok {
			return nil, in.rtErr(x.Line, "record %s has no field %q", rec.Class, x.Field)
		}
		return v, nil
	case *CallExpr:
		return in.evalCall(x, e)
	case *UnaryExpr:
		return in.evalUnary(x, e)
	case *BinaryExpr:
		return in.evalBinary(x, e)
	}
	return nil, in.rtErr(expr.exprLine(), "unsupported expression")
}

func (in *Interp) evalNew(x *NewExpr, e *env) (Object, error) {
	class, ok := in.prog.Classes[x.Class]
	if !ok {
		return nil, in.rtErr(x.Line, "undefined class %q", x.Class)
	}
	rec := newRecordObj(in.allocID(), class.Name, class.Fields)
	if initFn, ok := class.Methods["__init__"]; ok {
		args := make([]Object, 0, len(x.Args)+1)
		args = append(args, rec)
		for _, a := range x.Args {
			v, err := in.eval(a, e)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		if _, err := in.call(initFn, args); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func (in *Interp) evalIndex(x *IndexExpr, e *env) (Object, error) {
	xv, err := in.eval(x.X, e)
	if err != nil {
		return nil, err
	}
	iv, err := in.eval(x.Index, e)
	if err != nil {
		return nil, err
	}
	switch c := xv.(type) {
	case *ListObj:
		i, ok := iv.(int64)
		if !ok || i < 0 || int(i) >= len(c.Elems) {
			return nil, in.rtErr(x.Line, "list index out of range")
		}
		return c.Elems[i], nil
	case *MapObj:
		k, ok := iv.(string)
		if !ok {
			return nil, in.rtErr(x.Line, "map key must be a string")
		}
		v, ok := c.Get(k)
		if !ok {
			return nil, in.rtErr(x.Line, "missing key %q", k)
		}
		return v, nil
	case string:
		i, ok := iv.(int64)
		if !ok || i < 0 || int(i) >= len(c) {
			return nil, in.rtErr(x.Line, "string index out of range")
		}
		return string(c[i]), nil
	}
	return nil, in.rtErr(x.Line, "cannot index this value")
}

func (in *Interp) evalSlice(x *SliceExpr, e *env) (Object, error) {
	xv, err := in.eval(x.X, e)
	if err != nil {
		return nil, err
	}
	lst, ok := xv.(*ListObj)
	if !ok {
		return nil, in.rtErr(x.Line, "slicing requires a list")
	}
	lo, hi := int64(0), int64(len(lst.Elems))
	if x.Low != nil {
		v, err := in.eval(x.Low, e)
		if err != nil {
			return nil, err
		}
		n, ok := v.(int64)
		if !ok {
			return nil, in.rtErr(x.Line, "slice bound must be an integer")
		}
		lo = n
	}
	if x.High != nil {
		v, err := in.eval(x.High, e)
		if err != nil {
			return nil, err
		}
		n, ok := v.(int64)
		if !ok {
			return nil, in.rtErr(x.Line, "slice bound must be an integer")
		}
		hi = n
	}
	if lo < 0 || hi > int64(len(lst.Elems)) || lo > hi {
		return nil, in.rtErr(x.Line, "slice out of range")
	}
	out := &ListObj{id: in.allocID()}
	out.Elems = append(out.Elems, lst.Elems[lo:hi]...)
	return out, nil
}

func (in *Interp) evalCall(x *CallExpr, e *env) (Object, error) {
	id, ok := x.Fn.(*Ident)
	if !ok {
		return nil, in.rtErr(x.Line, "call target must be a function name")
	}
	args := make([]Object, len(x.Args))
	for i, a := range x.Args {
		v, err := in.eval(a, e)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	switch id.Name {
	case "len":
		return in.builtinLen(x.Line, args)
	case "append":
		return in.builtinAppend(x.Line, args)
	}
	fn, ok := in.prog.Funcs[id.Name]
	if !ok {
		return nil, in.rtErr(x.Line, "undefined function %q", id.Name)
	}
	return in.call(fn, args)
}

func (in *Interp) builtinLen(line int, args []Object) (Object, error) {
	if len(args) != 1 {
		return nil, in.rtErr(line, "len expects exactly one argument")
	}
	switch v := args[0].(type) {
	case *ListObj:
		return int64(len(v.Elems)), nil
	case *MapObj:
		return int64(len(v.order)), nil
	case string:
		return int64(len(v)), nil
	}
	return nil, in.rtErr(line, "len expects a list, dict or string")
}

func (in *Interp) builtinAppend(line int, args []Object) (Object, error) {
	if len(args) != 2 {
		return nil, in.rtErr(line, "append expects exactly two arguments")
	}
	lst, ok := args[0].(*ListObj)
	if !ok {
		return nil, in.rtErr(line, "append expects a list")
	}
	lst.Elems = append(lst.Elems, args[1])
	return lst, nil
}

func (in *Interp) evalUnary(x *UnaryExpr, e *env) (Object, error) {
	v, err := in.eval(x.X, e)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case TokMinus:
		switch n := v.(type) {
		case int64:
			return -n, nil
		case float64:
			return -n, nil
		}
		return nil, in.rtErr(x.Line, "unary - requires a number")
	case TokNot:
		b, ok := v.(bool)
		if !ok {
			return nil, in.rtErr(x.Line, "unary ! requires a boolean")
		}
		return !b, nil
	}
	return nil, in.rtErr(x.Line, "unsupported unary operator")
}

func (in *Interp) evalBinary(x *BinaryExpr, e *env) (Object, error) {
	if x.Op == TokAnd || x.Op == TokOr {
		lv, err := in.eval(x.L, e)
		if err != nil {
			return nil, err
		}
		lb, ok := lv.(bool)
		if !ok {
			return nil, in.rtErr(x.Line, "operand must be boolean")
		}
		if x.Op == TokAnd && !lb {
			return false, nil
		}
		if x.Op == TokOr && lb {
			return true, nil
		}
		rv, err := in.eval(x.R, e)
		if err != nil {
			return nil, err
		}
		rb, ok := rv.(bool)
		if !ok {
			return nil, in.rtErr(x.Line, "operand must be boolean")
		}
		return rb, nil
	}

	lv, err := in.eval(x.L, e)
	if err != nil {
		return nil, err
	}
	rv, err := in.eval(x.R, e)
	if err != nil {
		return nil, err
	}

	switch x.Op {
	case TokEq:
		return lv == rv, nil
	case TokNeq:
		return lv != rv, nil
	}

	switch l := lv.(type) {
	case int64:
		if r, ok := rv.(int64); ok {
			return intArith(x.Op, l, r, in, x.Line)
		}
		if r, ok := rv.(float64); ok {
			return floatArith(x.Op, float64(l), r, in, x.Line)
		}
	case float64:
		if r, ok := rv.(float64); ok {
			return floatArith(x.Op, l, r, in, x.Line)
		}
		if r, ok := rv.(int64); ok {
			return floatArith(x.Op, l, float64(r), in, x.Line)
		}
	case string:
		if r, ok := rv.(string); ok && x.Op == TokPlus {
			return l + r, nil
		}
	}
	return nil, in.rtErr(x.Line, "type mismatch in binary expression")
}

func intArith(op TokKind, l, r int64, in *Interp, line int) (Object, error) {
	switch op {
	case TokPlus:
		return l + r, nil
	case TokMinus:
		return l - r, nil
	case TokStar:
		return l * r, nil
	case TokSlash:
		if r == 0 {
			return nil, in.rtErr(line, "division by zero")
		}
		return l / r, nil
	case TokPercent:
		if r == 0 {
			return nil, in.rtErr(line, "division by zero")
		}
		return l % r, nil
	case TokLt:
		return l < r, nil
	case TokGt:
		return l > r, nil
	case TokLe:
		return l <= r, nil
	case TokGe:
		return l >= r, nil
	}
	return nil, in.rtErr(line, "unsupported integer operator")
}

func floatArith(op TokKind, l, r float64, in *Interp, line int) (Object, error) {
	switch op {
	case TokPlus:
		return l + r, nil
	case TokMinus:
		return l - r, nil
	case TokStar:
		return l * r, nil
	case TokSlash:
		return l / r, nil
	case TokLt:
		return l < r, nil
	case TokGt:
		return l > r, nil
	case TokLe:
		return l <= r, nil
	case TokGe:
		return l >= r, nil
	}
	return nil, in.rtErr(line, "unsupported float operator")
}

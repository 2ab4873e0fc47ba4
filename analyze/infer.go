// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analyze

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gotutor/gotutor/lang"
)

// Inference is a rendering hint surfaced to the replayer, distinguished by
// Type ("arrayIndex" or "memberPointer").
type Inference struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type arrayIndexData struct {
	FuncName string `json:"funcName"`
	Array    string `json:"array"`
	Var      string `json:"var"`
	Index    int    `json:"index"`
}

type memberPointerData struct {
	ClassName string `json:"className"`
	Member    string `json:"member"`
}

var (
	arrayNameRe = regexp.MustCompile(`(\w+)(?:\[\w+\])+`)
	bracketRe   = regexp.MustCompile(`\[(\w+)\]`)
)

// Infer scans every function and class doc comment for "##"-style hints
// and returns the inferences they describe, in declaration-name order so
// output is deterministic despite map-keyed storage upstream.
//
// Two hint forms are recognized, one per line:
//
//	index: v[i][j]        (on a function) — v is indexed by i then j
//	pointers: left, right  (on a class)    — these members point to
//	                                          instances of the same class
func Infer(prog *lang.Program) []Inference {
	var out []Inference

	funcNames := make([]string, 0, len(prog.Funcs))
	for name := range prog.Funcs {
		funcNames = append(funcNames, name)
	}
	sort.Strings(funcNames)
	for _, name := range funcNames {
		out = append(out, arrayIndexInferences(name, prog.Funcs[name].Doc)...)
	}

	classNames := make([]string, 0, len(prog.Classes))
	for name := range prog.Classes {
		classNames = append(classNames, name)
	}
	sort.Strings(classNames)
	for _, name := range classNames {
		cls := prog.Classes[name]
		out = append(out, memberPointerInferences(name, cls.Doc)...)

		methodNames := make([]string, 0, len(cls.Methods))
		for m := range cls.Methods {
			methodNames = append(methodNames, m)
		}
		sort.Strings(methodNames)
		for _, m := range methodNames {
			out = append(out, arrayIndexInferences(m, cls.Methods[m].Doc)...)
		}
	}

	return out
}

func arrayIndexInferences(funcName string, doc []string) []Inference {
	var out []Inference
	for _, line := range doc {
		if !strings.Contains(line, ":") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		iType, iValue := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if iType != "index" {
			continue
		}
		m := arrayNameRe.FindStringSubmatch(iValue)
		if m == nil {
			continue
		}
		array := m[1]
		for i, bm := range bracketRe.FindAllStringSubmatch(iValue, -1) {
			out = append(out, Inference{
				Type: "arrayIndex",
				Data: arrayIndexData{FuncName: funcName, Array: array, Var: bm[1], Index: i},
			})
		}
	}
	return out
}

func memberPointerInferences(className string, doc []string) []Inference {
	var out []Inference
	for _, line := range doc {
		if !strings.Contains(line, ":") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		iType, iValue := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if iType != "pointers" {
			continue
		}
		for _, mem := range strings.Split(iValue, ",") {
			out = append(out, Inference{
				Type: "memberPointer",
				Data: memberPointerData{ClassName: className, Member: strings.TrimSpace(mem)},
			})
		}
	}
	return out
}

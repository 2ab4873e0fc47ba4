// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import "sort"

// EditOp names one kind of minimal heap edit.
type EditOp string

const (
	OpDelete    EditOp = "delete"
	OpNew       EditOp = "new"
	OpRemoveKey EditOp = "removeKey"
	OpAddKey    EditOp = "addKey"
	OpModifyKey EditOp = "modifyKey"
	OpModifyPos EditOp = "modifyPos"
	OpReset     EditOp = "reset"
)

// HeapEdit is one entry in the minimal edit list produced by Diff.
type HeapEdit struct {
	Op    EditOp
	ID    int
	Key   string     // removeKey, addKey, modifyKey
	Index int        // modifyPos
	Val   Value      // addKey, modifyKey, modifyPos
	List  []Value    // reset
	Obj   HeapObject // new
}

// Diff computes the minimal edit list transforming prev into cur.
// Deletions are emitted before creations, and creations/mutations are
// emitted in ascending identity order, so the result is deterministic and
// tests may rely on the ordering.
func Diff(prev, cur Heap) []HeapEdit {
	var edits []HeapEdit

	prevIDs := prev.sortedIDs()
	for _, id := range prevIDs {
		if _, ok := cur[id]; !ok {
			edits = append(edits, HeapEdit{Op: OpDelete, ID: id})
		}
	}

	curIDs := cur.sortedIDs()
	for _, id := range curIDs {
		curObj := cur[id]
		prevObj, existed := prev[id]
		if !existed {
			edits = append(edits, HeapEdit{Op: OpNew, ID: id, Obj: *curObj.clone()})
			continue
		}
		switch curObj.Kind {
		case KindList:
			edits = append(edits, listDiff(id, prevObj.List, curObj.List)...)
		default: // KindMap, KindRecord
			edits = append(edits, memberDiff(id, prevObj.Members, curObj.Members)...)
		}
	}
	return edits
}

func memberDiff(id int, prev, cur map[string]Value) []HeapEdit {
	var edits []HeapEdit
	removed := make([]string, 0)
	for k := range prev {
		if _, ok := cur[k]; !ok {
			removed = append(removed, k)
		}
	}
	sort.Strings(removed)
	for _, k := range removed {
		edits = append(edits, HeapEdit{Op: OpRemoveKey, ID: id, Key: k})
	}

	var added, modified []string
	for k, cv := range cur {
		if pv, ok := prev[k]; !ok {
			added = append(added, k)
		} else if !pv.Equal(cv) {
			modified = append(modified, k)
		}
	}
	sort.Strings(added)
	for _, k := range added {
		edits = append(edits, HeapEdit{Op: OpAddKey, ID: id, Key: k, Val: cur[k]})
	}
	sort.Strings(modified)
	for _, k := range modified {
		edits = append(edits, HeapEdit{Op: OpModifyKey, ID: id, Key: k, Val: cur[k]})
	}
	return edits
}

func listDiff(id int, prev, cur []Value) []HeapEdit {
	var edits []HeapEdit
	switch {
	case len(prev) == len(cur):
		for i := range cur {
			if !prev[i].Equal(cur[i]) {
				edits = append(edits, HeapEdit{Op: OpModifyPos, ID: id, Index: i, Val: cur[i]})
			}
		}
	case len(cur) == len(prev)+1 && sameList(prev, cur[:len(prev)]):
		edits = append(edits, HeapEdit{Op: OpModifyPos, ID: id, Index: len(cur) - 1, Val: cur[len(cur)-1]})
	default:
		edits = append(edits, HeapEdit{Op: OpReset, ID: id, List: append([]Value(nil), cur...)})
	}
	return edits
}

func sameList(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

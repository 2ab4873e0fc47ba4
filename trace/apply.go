// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

// Apply reconstructs the post-diff heap from a pre-diff heap and an edit
// list, for verifying diff minimality: Apply(prev, Diff(prev, cur)) must
// equal cur. prev is not mutated.
func Apply(prev Heap, edits []HeapEdit) Heap {
	out := make(Heap, len(prev))
	for id, obj := range prev {
		out[id] = obj.clone()
	}
	for _, e := range edits {
		switch e.Op {
		case OpDelete:
			delete(out, e.ID)
		case OpNew:
			obj := e.Obj.clone()
			out[e.ID] = obj
		case OpRemoveKey:
			delete(out[e.ID].Members, e.Key)
		case OpAddKey, OpModifyKey:
			out[e.ID].Members[e.Key] = e.Val
		case OpModifyPos:
			// An append emits modifyPos at one past the old end.
			if e.Index == len(out[e.ID].List) {
				out[e.ID].List = append(out[e.ID].List, e.Val)
			} else {
				out[e.ID].List[e.Index] = e.Val
			}
		case OpReset:
			out[e.ID].List = append([]Value(nil), e.List...)
		}
	}
	return out
}

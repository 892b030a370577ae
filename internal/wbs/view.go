package wbs

import "sync"

// ViewState is the transient UI state layered over the tree: which nodes are
// expanded and which single node is selected. It lives outside the Node
// records so view concerns never leak into the domain model.
type ViewState struct {
	mu       sync.Mutex
	expanded map[NodeID]bool
	selected *NodeID
}

// NewViewState returns an empty view state: nothing expanded, nothing
// selected.
func NewViewState() *ViewState {
	return &ViewState{expanded: make(map[NodeID]bool)}
}

// ToggleExpanded flips expansion on a single node. It never cascades to
// descendants.
func (v *ViewState) ToggleExpanded(id NodeID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.expanded[id] = !v.expanded[id]
	return v.expanded[id]
}

// IsExpanded reports whether the node is expanded.
func (v *ViewState) IsExpanded(id NodeID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.expanded[id]
}

// ToggleSelect selects id, implicitly deselecting any previous selection.
// Re-clicking the current selection clears it. Returns the new selection.
func (v *ViewState) ToggleSelect(id NodeID) *NodeID {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selected != nil && *v.selected == id {
		v.selected = nil
		return nil
	}
	sel := id
	v.selected = &sel
	return &sel
}

// Selected returns the currently selected node id, or nil. The add-child
// flow reads this as the parent target at submit time.
func (v *ViewState) Selected() *NodeID {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selected == nil {
		return nil
	}
	sel := *v.selected
	return &sel
}

// Deselect clears the selection unconditionally.
func (v *ViewState) Deselect() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = nil
}

// Forget drops view state for ids that no longer exist, typically after a
// cascade delete.
func (v *ViewState) Forget(ids ...NodeID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, id := range ids {
		delete(v.expanded, id)
		if v.selected != nil && *v.selected == id {
			v.selected = nil
		}
	}
}

// VisibleRows flattens the tree in root/child display order, descending only
// into expanded nodes. This is the row list a tree table renders.
func (v *ViewState) VisibleRows(t *Tree) []*Node {
	var out []*Node
	var rec func(id NodeID)
	rec = func(id NodeID) {
		n, err := t.Get(id)
		if err != nil {
			return
		}
		out = append(out, n)
		if v.IsExpanded(id) {
			for _, c := range n.Children {
				rec(c)
			}
		}
	}
	for _, r := range t.Roots() {
		rec(r)
	}
	return out
}

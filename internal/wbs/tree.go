package wbs

import (
	"sync"
	"time"

	apperr "github.com/sirtis/backoffice/pkg/errors"
)

// Tree is the owning store for all nodes: an arena (id → record) plus an
// ordered root id list. All other components only read it. Safe for
// concurrent use; every mutation holds the write lock for its whole
// traversal so invariants hold at every observable point.
type Tree struct {
	mu    sync.RWMutex
	nodes map[NodeID]*Node
	roots []NodeID

	now func() time.Time
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{
		nodes: make(map[NodeID]*Node),
		now:   time.Now,
	}
}

// NewTreeWithClock is used by tests that need deterministic timestamps.
func NewTreeWithClock(now func() time.Time) *Tree {
	t := NewTree()
	t.now = now
	return t
}

// CreateNode builds a new node from form data and inserts it under parentID,
// or as a root when parentID is nil. The new node's level is the parent's
// level + 1 (0 for roots) and its id is appended to the parent's children,
// so a freshly created node is never unreferenced. Name uniqueness is
// deliberately not enforced.
func (t *Tree) CreateNode(parentID *NodeID, form FormData) (*Node, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var parent *Node
	if parentID != nil {
		var ok bool
		parent, ok = t.nodes[*parentID]
		if !ok {
			return nil, apperr.Newf(apperr.CodeNotFound, "parent node %s not found", *parentID)
		}
	}

	now := t.now()
	n := &Node{
		ID:             NewNodeID(),
		Name:           form.Name,
		Description:    form.Description,
		Type:           form.Type,
		Status:         form.Status,
		Assignee:       form.Assignee,
		EstimatedHours: form.EstimatedHours,
		ActualHours:    form.ActualHours,
		EstimatedCost:  form.EstimatedCost,
		ActualCost:     form.ActualCost,
		StartDate:      form.StartDate,
		EndDate:        form.EndDate,
		Progress:       form.Progress,
		Priority:       form.Priority,
		Deliverables:   append([]string(nil), form.Deliverables...),
		Risks:          append([]string(nil), form.Risks...),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if n.Status == "" {
		n.Status = StatusNotStarted
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}

	if parent != nil {
		pid := parent.ID
		n.ParentID = &pid
		n.Level = parent.Level + 1
		parent.Children = append(parent.Children, n.ID)
	} else {
		t.roots = append(t.roots, n.ID)
	}

	t.nodes[n.ID] = n
	return n.Clone(), nil
}

// UpdateNode shallow-merges non-nil patch fields into the node. Level,
// parent and children cannot change. Unknown ids fail with not_found rather
// than silently succeeding.
func (t *Tree) UpdateNode(id NodeID, patch NodePatch) (*Node, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.nodes[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "node %s not found", id)
	}

	merged := *n
	applyPatch(&merged, patch)
	if !merged.StartDate.IsZero() && !merged.EndDate.IsZero() && merged.EndDate.Before(merged.StartDate) {
		return nil, apperr.New(apperr.CodeInvalid, "end date precedes start date")
	}
	if merged.Progress < 0 || merged.Progress > 100 {
		return nil, apperr.New(apperr.CodeInvalid, "progress must be between 0 and 100")
	}

	merged.UpdatedAt = t.now()
	*n = merged
	return n.Clone(), nil
}

// DeleteNode removes a node and its entire descendant subtree. The caller
// supplies the confirmation step: it receives the target and its descendant
// count, and the delete proceeds only if it returns true (spec'd as an
// explicit step in place of an interactive dialog). Returns the number of
// nodes removed; a declined confirmation removes zero and is not an error.
func (t *Tree) DeleteNode(id NodeID, confirm func(n *Node, descendants int) bool) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.nodes[id]
	if !ok {
		return 0, apperr.Newf(apperr.CodeNotFound, "node %s not found", id)
	}

	doomed := t.collectSubtree(id)
	if confirm != nil && !confirm(n.Clone(), len(doomed)-1) {
		return 0, nil
	}

	for _, did := range doomed {
		delete(t.nodes, did)
	}
	// Detach from the parent's children or from the root list, and drop any
	// dependency edges pointing into the removed subtree.
	if n.ParentID != nil {
		if p, ok := t.nodes[*n.ParentID]; ok {
			p.Children = removeID(p.Children, id)
		}
	} else {
		t.roots = removeID(t.roots, id)
	}
	gone := make(map[NodeID]bool, len(doomed))
	for _, did := range doomed {
		gone[did] = true
	}
	for _, rest := range t.nodes {
		kept := rest.Dependencies[:0]
		for _, d := range rest.Dependencies {
			if !gone[d] {
				kept = append(kept, d)
			}
		}
		rest.Dependencies = kept
	}

	return len(doomed), nil
}

// AddDependency records that `from` depends on `to`. Self-edges, duplicates
// and edges that would close a cycle in the dependency graph are rejected.
func (t *Tree) AddDependency(from, to NodeID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	src, ok := t.nodes[from]
	if !ok {
		return apperr.Newf(apperr.CodeNotFound, "node %s not found", from)
	}
	if _, ok := t.nodes[to]; !ok {
		return apperr.Newf(apperr.CodeNotFound, "node %s not found", to)
	}
	if from == to {
		return apperr.New(apperr.CodeInvalid, "node cannot depend on itself")
	}
	if src.HasDependency(to) {
		return apperr.New(apperr.CodeConflict, "dependency already exists")
	}
	if t.dependencyPathExists(to, from) {
		return apperr.New(apperr.CodeInvalid, "dependency would create a cycle")
	}

	src.Dependencies = append(src.Dependencies, to)
	src.UpdatedAt = t.now()
	return nil
}

// SetDependencies replaces a node's outgoing edges wholesale. Every edge is
// validated the way AddDependency validates before anything is written, so
// the node's edges are untouched when an error comes back. The draft submit
// path uses this to commit its edited dependency list in one step.
func (t *Tree) SetDependencies(id NodeID, deps []NodeID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.nodes[id]
	if !ok {
		return apperr.Newf(apperr.CodeNotFound, "node %s not found", id)
	}
	seen := make(map[NodeID]bool, len(deps))
	clean := make([]NodeID, 0, len(deps))
	for _, dep := range deps {
		if dep == id {
			return apperr.New(apperr.CodeInvalid, "node cannot depend on itself")
		}
		if _, ok := t.nodes[dep]; !ok {
			return apperr.Newf(apperr.CodeNotFound, "node %s not found", dep)
		}
		if seen[dep] {
			continue
		}
		seen[dep] = true
		clean = append(clean, dep)
	}

	// Cycle-check against the graph as it will look: the node's old edges
	// replaced by the new set, one edge at a time.
	old := n.Dependencies
	n.Dependencies = nil
	for _, dep := range clean {
		if t.dependencyPathExists(dep, id) {
			n.Dependencies = old
			return apperr.New(apperr.CodeInvalid, "dependency would create a cycle")
		}
		n.Dependencies = append(n.Dependencies, dep)
	}
	n.UpdatedAt = t.now()
	return nil
}

// RemoveDependency drops the edge from → to if present.
func (t *Tree) RemoveDependency(from, to NodeID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	src, ok := t.nodes[from]
	if !ok {
		return apperr.Newf(apperr.CodeNotFound, "node %s not found", from)
	}
	if !src.HasDependency(to) {
		return apperr.New(apperr.CodeNotFound, "dependency not found")
	}
	src.Dependencies = removeID(src.Dependencies, to)
	src.UpdatedAt = t.now()
	return nil
}

// Get returns a copy of the node, or not_found.
func (t *Tree) Get(id NodeID) (*Node, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "node %s not found", id)
	}
	return n.Clone(), nil
}

// Roots returns the root ids in display order.
func (t *Tree) Roots() []NodeID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]NodeID(nil), t.roots...)
}

// Len reports the number of nodes in the store.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Walk visits every node depth-first in root/child display order with copies
// the caller may retain.
func (t *Tree) Walk(visit func(n *Node)) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var rec func(id NodeID)
	rec = func(id NodeID) {
		n, ok := t.nodes[id]
		if !ok {
			return
		}
		visit(n.Clone())
		for _, c := range n.Children {
			rec(c)
		}
	}
	for _, r := range t.roots {
		rec(r)
	}
}

// All returns every node in depth-first display order.
func (t *Tree) All() []*Node {
	var out []*Node
	t.Walk(func(n *Node) { out = append(out, n) })
	return out
}

// collectSubtree returns id plus all descendants. Caller holds the lock.
func (t *Tree) collectSubtree(id NodeID) []NodeID {
	out := []NodeID{id}
	for i := 0; i < len(out); i++ {
		if n, ok := t.nodes[out[i]]; ok {
			out = append(out, n.Children...)
		}
	}
	return out
}

// dependencyPathExists reports whether `to` is reachable from `from` along
// dependency edges. Caller holds the lock.
func (t *Tree) dependencyPathExists(from, to NodeID) bool {
	seen := map[NodeID]bool{}
	stack := []NodeID{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == to {
			return true
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if n, ok := t.nodes[cur]; ok {
			stack = append(stack, n.Dependencies...)
		}
	}
	return false
}

func validateForm(f FormData) error {
	if f.Name == "" {
		return apperr.New(apperr.CodeInvalid, "name is required")
	}
	if f.Progress < 0 || f.Progress > 100 {
		return apperr.New(apperr.CodeInvalid, "progress must be between 0 and 100")
	}
	if f.EstimatedHours < 0 || f.ActualHours < 0 || f.EstimatedCost < 0 || f.ActualCost < 0 {
		return apperr.New(apperr.CodeInvalid, "hours and costs must be non-negative")
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.EndDate.Before(f.StartDate) {
		return apperr.New(apperr.CodeInvalid, "end date precedes start date")
	}
	return nil
}

func applyPatch(n *Node, p NodePatch) {
	if p.Name != nil {
		n.Name = *p.Name
	}
	if p.Description != nil {
		n.Description = *p.Description
	}
	if p.Type != nil {
		n.Type = *p.Type
	}
	if p.Status != nil {
		n.Status = *p.Status
	}
	if p.Assignee != nil {
		n.Assignee = *p.Assignee
	}
	if p.EstimatedHours != nil {
		n.EstimatedHours = *p.EstimatedHours
	}
	if p.ActualHours != nil {
		n.ActualHours = *p.ActualHours
	}
	if p.EstimatedCost != nil {
		n.EstimatedCost = *p.EstimatedCost
	}
	if p.ActualCost != nil {
		n.ActualCost = *p.ActualCost
	}
	if p.StartDate != nil {
		n.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		n.EndDate = *p.EndDate
	}
	if p.Progress != nil {
		n.Progress = *p.Progress
	}
	if p.Priority != nil {
		n.Priority = *p.Priority
	}
	if p.Deliverables != nil {
		n.Deliverables = append([]string(nil), (*p.Deliverables)...)
	}
	if p.Risks != nil {
		n.Risks = append([]string(nil), (*p.Risks)...)
	}
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

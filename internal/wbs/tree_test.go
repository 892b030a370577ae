package wbs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	apperr "github.com/sirtis/backoffice/pkg/errors"
)

func confirmYes(*Node, int) bool { return true }

func mustCreate(t *testing.T, tr *Tree, parent *NodeID, name string) *Node {
	t.Helper()
	n, err := tr.CreateNode(parent, FormData{Name: name, Type: TypeTask})
	require.NoError(t, err)
	return n
}

func TestCreateRootNode(t *testing.T) {
	tr := NewTree()
	n, err := tr.CreateNode(nil, FormData{Name: "Phase 1", Type: TypePhase, EstimatedHours: 400})
	require.NoError(t, err)

	assert.Equal(t, 0, n.Level)
	assert.Nil(t, n.ParentID)
	assert.Equal(t, 400.0, n.EstimatedHours)
	assert.Equal(t, StatusNotStarted, n.Status, "status defaults when unset")
	assert.Equal(t, PriorityMedium, n.Priority)
	assert.Equal(t, []NodeID{n.ID}, tr.Roots())
	assert.Equal(t, 1, tr.Len())
}

func TestCreateChildUnderSelectedRoot(t *testing.T) {
	tr := NewTree()
	root := mustCreate(t, tr, nil, "Project")
	child, err := tr.CreateNode(&root.ID, FormData{Name: "Design", Type: TypeWorkPackage})
	require.NoError(t, err)

	assert.Equal(t, 1, child.Level)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	got, err := tr.Get(root.ID)
	require.NoError(t, err)
	assert.Contains(t, got.Children, child.ID)
}

func TestCreateUnderMissingParent(t *testing.T) {
	tr := NewTree()
	bogus := NewNodeID()
	_, err := tr.CreateNode(&bogus, FormData{Name: "orphan", Type: TypeTask})
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestCreateValidation(t *testing.T) {
	tr := NewTree()
	cases := []struct {
		name string
		form FormData
	}{
		{"empty name", FormData{Type: TypeTask}},
		{"negative hours", FormData{Name: "x", Type: TypeTask, EstimatedHours: -1}},
		{"progress over 100", FormData{Name: "x", Type: TypeTask, Progress: 101}},
		{"end before start", FormData{
			Name: "x", Type: TypeTask,
			StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tr.CreateNode(nil, tc.form)
			assert.True(t, apperr.IsCode(err, apperr.CodeInvalid))
		})
	}
}

func TestUpdateNodeMergesPartialFields(t *testing.T) {
	tr := NewTree()
	n := mustCreate(t, tr, nil, "Task")

	desc := "updated"
	progress := 40
	got, err := tr.UpdateNode(n.ID, NodePatch{Description: &desc, Progress: &progress})
	require.NoError(t, err)

	assert.Equal(t, "Task", got.Name, "unpatched fields survive")
	assert.Equal(t, "updated", got.Description)
	assert.Equal(t, 40, got.Progress)
	assert.Equal(t, n.Level, got.Level)
}

func TestUpdateMissingNodeFailsLoudly(t *testing.T) {
	tr := NewTree()
	name := "x"
	_, err := tr.UpdateNode(NewNodeID(), NodePatch{Name: &name})
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestDeleteCascadesFully(t *testing.T) {
	tr := NewTree()
	root := mustCreate(t, tr, nil, "root")
	c1 := mustCreate(t, tr, &root.ID, "c1")
	mustCreate(t, tr, &c1.ID, "g1")
	mustCreate(t, tr, &root.ID, "c2")
	other := mustCreate(t, tr, nil, "other")

	removed, err := tr.DeleteNode(root.ID, confirmYes)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, []NodeID{other.ID}, tr.Roots())

	_, err = tr.Get(c1.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestDeleteDetachesFromParentChildren(t *testing.T) {
	tr := NewTree()
	root := mustCreate(t, tr, nil, "root")
	keep := mustCreate(t, tr, &root.ID, "keep")
	drop := mustCreate(t, tr, &root.ID, "drop")

	_, err := tr.DeleteNode(drop.ID, confirmYes)
	require.NoError(t, err)

	got, err := tr.Get(root.ID)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{keep.ID}, got.Children)
}

func TestDeleteDeclinedConfirmationIsNoop(t *testing.T) {
	tr := NewTree()
	root := mustCreate(t, tr, nil, "root")
	mustCreate(t, tr, &root.ID, "child")

	var sawDescendants int
	removed, err := tr.DeleteNode(root.ID, func(n *Node, descendants int) bool {
		sawDescendants = descendants
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 1, sawDescendants)
	assert.Equal(t, 2, tr.Len())
}

func TestDeletePrunesDanglingDependencies(t *testing.T) {
	tr := NewTree()
	a := mustCreate(t, tr, nil, "a")
	b := mustCreate(t, tr, nil, "b")
	require.NoError(t, tr.AddDependency(a.ID, b.ID))

	_, err := tr.DeleteNode(b.ID, confirmYes)
	require.NoError(t, err)

	got, err := tr.Get(a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Dependencies)
}

func TestDependencyCycleRejected(t *testing.T) {
	tr := NewTree()
	a := mustCreate(t, tr, nil, "a")
	b := mustCreate(t, tr, nil, "b")
	c := mustCreate(t, tr, nil, "c")

	require.NoError(t, tr.AddDependency(a.ID, b.ID))
	require.NoError(t, tr.AddDependency(b.ID, c.ID))

	err := tr.AddDependency(c.ID, a.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalid), "closing a cycle must fail")

	assert.True(t, apperr.IsCode(tr.AddDependency(a.ID, a.ID), apperr.CodeInvalid))
	assert.True(t, apperr.IsCode(tr.AddDependency(a.ID, b.ID), apperr.CodeConflict))
}

func TestRemoveDependency(t *testing.T) {
	tr := NewTree()
	a := mustCreate(t, tr, nil, "a")
	b := mustCreate(t, tr, nil, "b")
	require.NoError(t, tr.AddDependency(a.ID, b.ID))
	require.NoError(t, tr.RemoveDependency(a.ID, b.ID))
	assert.True(t, apperr.IsCode(tr.RemoveDependency(a.ID, b.ID), apperr.CodeNotFound))
}

func TestWalkVisitsDisplayOrder(t *testing.T) {
	tr := NewTree()
	r1 := mustCreate(t, tr, nil, "r1")
	c1 := mustCreate(t, tr, &r1.ID, "c1")
	mustCreate(t, tr, &c1.ID, "g1")
	mustCreate(t, tr, &r1.ID, "c2")
	mustCreate(t, tr, nil, "r2")

	var names []string
	tr.Walk(func(n *Node) { names = append(names, n.Name) })
	assert.Equal(t, []string{"r1", "c1", "g1", "c2", "r2"}, names)
}

// checkIntegrity asserts the §-level structural invariants: every child
// reference resolves, every non-root parent reference resolves, and every
// node is reachable from exactly one parent or the root list.
func checkIntegrity(t interface{ Fatalf(string, ...any) }, tr *Tree) {
	byID := map[NodeID]*Node{}
	tr.Walk(func(n *Node) { byID[n.ID] = n })

	if len(byID) != tr.Len() {
		t.Fatalf("unreachable nodes: walked %d of %d", len(byID), tr.Len())
	}
	referenced := map[NodeID]int{}
	for _, r := range tr.Roots() {
		referenced[r]++
	}
	for _, n := range byID {
		for _, c := range n.Children {
			if _, ok := byID[c]; !ok {
				t.Fatalf("dangling child reference %s on %s", c, n.ID)
			}
			referenced[c]++
		}
		if n.ParentID != nil {
			if _, ok := byID[*n.ParentID]; !ok {
				t.Fatalf("dangling parent reference %s on %s", *n.ParentID, n.ID)
			}
		}
		for _, d := range n.Dependencies {
			if _, ok := byID[d]; !ok {
				t.Fatalf("dangling dependency %s on %s", d, n.ID)
			}
		}
	}
	for id, count := range referenced {
		if count != 1 {
			t.Fatalf("node %s referenced %d times", id, count)
		}
	}
}

func TestTreeIntegrityUnderRandomOps(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := NewTree()
		var ids []NodeID

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0: // create root
				n, err := tr.CreateNode(nil, FormData{Name: "n", Type: TypeTask})
				if err != nil {
					rt.Fatalf("create root: %v", err)
				}
				ids = append(ids, n.ID)
			case 1, 2: // create child under a random live node
				if len(ids) == 0 {
					continue
				}
				parent := ids[rapid.IntRange(0, len(ids)-1).Draw(rt, "parent")]
				n, err := tr.CreateNode(&parent, FormData{Name: "c", Type: TypeTask})
				if err != nil {
					if apperr.IsCode(err, apperr.CodeNotFound) {
						continue // parent was deleted earlier
					}
					rt.Fatalf("create child: %v", err)
				}
				ids = append(ids, n.ID)
			case 3: // delete a random node (may already be gone)
				if len(ids) == 0 {
					continue
				}
				victim := ids[rapid.IntRange(0, len(ids)-1).Draw(rt, "victim")]
				if _, err := tr.DeleteNode(victim, confirmYes); err != nil && !apperr.IsCode(err, apperr.CodeNotFound) {
					rt.Fatalf("delete: %v", err)
				}
			}
			checkIntegrity(rt, tr)
		}
	})
}

func TestDeleteRemovesExactlyDescendantsPlusOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := NewTree()
		root := rapidBuildSubtree(rt, tr, nil, 3)

		var descendants int
		before := tr.Len()
		removed, err := tr.DeleteNode(root, func(_ *Node, d int) bool {
			descendants = d
			return true
		})
		if err != nil {
			rt.Fatalf("delete: %v", err)
		}
		if removed != descendants+1 {
			rt.Fatalf("removed %d, expected descendants+1 = %d", removed, descendants+1)
		}
		if tr.Len() != before-removed {
			rt.Fatalf("store shrank by %d, expected %d", before-tr.Len(), removed)
		}
		checkIntegrity(rt, tr)
	})
}

func rapidBuildSubtree(rt *rapid.T, tr *Tree, parent *NodeID, depth int) NodeID {
	n, err := tr.CreateNode(parent, FormData{Name: "n", Type: TypeTask})
	if err != nil {
		rt.Fatalf("create: %v", err)
	}
	if depth > 0 {
		kids := rapid.IntRange(0, 3).Draw(rt, "kids")
		for i := 0; i < kids; i++ {
			rapidBuildSubtree(rt, tr, &n.ID, depth-1)
		}
	}
	return n.ID
}

func TestClockIsUsedForTimestamps(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	tr := NewTreeWithClock(func() time.Time { return fixed })
	n := mustCreate(t, tr, nil, "stamped")
	assert.Equal(t, fixed, n.CreatedAt)
	assert.Equal(t, fixed, n.UpdatedAt)
}

func TestSetDependenciesIsAllOrNothing(t *testing.T) {
	tr := NewTree()
	a := mustCreate(t, tr, nil, "a")
	b := mustCreate(t, tr, nil, "b")
	c := mustCreate(t, tr, nil, "c")
	require.NoError(t, tr.AddDependency(a.ID, b.ID))

	// one bad edge rejects the whole set and keeps the old edges
	err := tr.SetDependencies(a.ID, []NodeID{c.ID, NodeID("missing")})
	require.Error(t, err)
	got, err := tr.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{b.ID}, got.Dependencies)

	// a cycle anywhere in the set is rejected the same way
	require.NoError(t, tr.AddDependency(c.ID, a.ID))
	err = tr.SetDependencies(a.ID, []NodeID{b.ID, c.ID})
	require.Error(t, err)
	got, err = tr.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{b.ID}, got.Dependencies)

	// duplicates collapse; order of first occurrence is kept
	require.NoError(t, tr.RemoveDependency(c.ID, a.ID))
	require.NoError(t, tr.SetDependencies(a.ID, []NodeID{c.ID, b.ID, c.ID}))
	got, err = tr.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{c.ID, b.ID}, got.Dependencies)
}

package wbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleExpansionRoundTrips(t *testing.T) {
	v := NewViewState()
	id := NewNodeID()

	assert.False(t, v.IsExpanded(id))
	v.ToggleExpanded(id)
	assert.True(t, v.IsExpanded(id))
	v.ToggleExpanded(id)
	assert.False(t, v.IsExpanded(id), "double toggle restores original state")
}

func TestSingleSelectionModel(t *testing.T) {
	v := NewViewState()
	a, b := NewNodeID(), NewNodeID()

	v.ToggleSelect(a)
	require.NotNil(t, v.Selected())
	assert.Equal(t, a, *v.Selected())

	// Selecting another node implicitly deselects the first.
	v.ToggleSelect(b)
	assert.Equal(t, b, *v.Selected())

	// Re-clicking the current selection clears it.
	v.ToggleSelect(b)
	assert.Nil(t, v.Selected())
}

func TestForgetClearsDeletedSelection(t *testing.T) {
	v := NewViewState()
	a := NewNodeID()
	v.ToggleSelect(a)
	v.ToggleExpanded(a)
	v.Forget(a)
	assert.Nil(t, v.Selected())
	assert.False(t, v.IsExpanded(a))
}

func TestVisibleRowsFollowExpansion(t *testing.T) {
	tr := NewTree()
	root := mustCreate(t, tr, nil, "root")
	child := mustCreate(t, tr, &root.ID, "child")
	mustCreate(t, tr, &child.ID, "grandchild")

	v := NewViewState()
	rows := v.VisibleRows(tr)
	require.Len(t, rows, 1, "collapsed tree shows roots only")

	v.ToggleExpanded(root.ID)
	rows = v.VisibleRows(tr)
	require.Len(t, rows, 2)
	assert.Equal(t, "child", rows[1].Name)

	v.ToggleExpanded(child.ID)
	rows = v.VisibleRows(tr)
	require.Len(t, rows, 3)
	assert.Equal(t, "grandchild", rows[2].Name)

	// Collapsing the middle node hides its subtree but not its siblings.
	v.ToggleExpanded(child.ID)
	assert.Len(t, v.VisibleRows(tr), 2)
}

package wbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/sirtis/backoffice/pkg/errors"
)

func TestDraftCreateFlow(t *testing.T) {
	tr := NewTree()
	root := mustCreate(t, tr, nil, "root")

	d := NewDraft()
	require.NoError(t, d.BeginCreate(&root.ID))
	assert.Equal(t, DraftCreating, d.State())

	require.NoError(t, d.SetFields(FormData{Name: "Design", Type: TypeWorkPackage}))
	require.NoError(t, d.AddDeliverable("wireframes"))
	require.NoError(t, d.AddDeliverable("style guide"))

	n, err := d.Submit(tr)
	require.NoError(t, err)
	assert.Equal(t, DraftClosed, d.State())
	assert.Equal(t, 1, n.Level)
	assert.Equal(t, []string{"wireframes", "style guide"}, n.Deliverables)
}

func TestDraftEditNoopRoundTrip(t *testing.T) {
	tr := NewTree()
	orig, err := tr.CreateNode(nil, FormData{
		Name: "Phase 1", Type: TypePhase, Assignee: "R. Dube",
		EstimatedHours: 400, Progress: 30,
		Deliverables: []string{"report"}, Risks: []string{"slippage"},
	})
	require.NoError(t, err)

	// Load, submit unchanged, re-read: field-for-field equality.
	d := NewDraft()
	require.NoError(t, d.BeginEdit(orig))
	updated, err := d.Submit(tr)
	require.NoError(t, err)

	got, err := tr.Get(orig.ID)
	require.NoError(t, err)
	for _, n := range []*Node{updated, got} {
		assert.Equal(t, orig.Name, n.Name)
		assert.Equal(t, orig.Type, n.Type)
		assert.Equal(t, orig.Assignee, n.Assignee)
		assert.Equal(t, orig.EstimatedHours, n.EstimatedHours)
		assert.Equal(t, orig.Progress, n.Progress)
		assert.Equal(t, orig.Deliverables, n.Deliverables)
		assert.Equal(t, orig.Risks, n.Risks)
		assert.Equal(t, orig.Level, n.Level)
	}
}

func TestDraftCancelDiscardsWithoutMutating(t *testing.T) {
	tr := NewTree()
	orig := mustCreate(t, tr, nil, "untouched")

	d := NewDraft()
	require.NoError(t, d.BeginEdit(orig))
	name := "changed"
	require.NoError(t, d.SetFields(FormData{Name: name, Type: TypeTask}))
	d.Cancel()

	assert.Equal(t, DraftClosed, d.State())
	got, err := tr.Get(orig.ID)
	require.NoError(t, err)
	assert.Equal(t, "untouched", got.Name)
}

func TestDraftArrayRemovePreservesOrder(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.BeginCreate(nil))
	for _, s := range []string{"a", "b", "c", "d"} {
		require.NoError(t, d.AddDeliverable(s))
	}
	require.NoError(t, d.RemoveDeliverableAt(1))
	assert.Equal(t, []string{"a", "c", "d"}, d.Form().Deliverables)

	assert.True(t, apperr.IsCode(d.RemoveDeliverableAt(7), apperr.CodeInvalid))
}

func TestDraftStateMachineGuards(t *testing.T) {
	tr := NewTree()
	d := NewDraft()

	// Submit while closed.
	_, err := d.Submit(tr)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalid))

	// Double open.
	require.NoError(t, d.BeginCreate(nil))
	assert.True(t, apperr.IsCode(d.BeginCreate(nil), apperr.CodeInvalid))

	// Failed submit reopens for correction instead of discarding.
	_, err = d.Submit(tr) // empty name
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalid))
	assert.Equal(t, DraftCreating, d.State())

	require.NoError(t, d.SetFields(FormData{Name: "ok", Type: TypeTask}))
	_, err = d.Submit(tr)
	require.NoError(t, err)
	assert.Equal(t, DraftClosed, d.State())
}

func TestDraftEditMissingNodeSurfacesNotFound(t *testing.T) {
	tr := NewTree()
	n := mustCreate(t, tr, nil, "doomed")
	d := NewDraft()
	require.NoError(t, d.BeginEdit(n))

	_, err := tr.DeleteNode(n.ID, confirmYes)
	require.NoError(t, err)

	_, err = d.Submit(tr)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestDraftDependencyEditing(t *testing.T) {
	tr := NewTree()
	a := mustCreate(t, tr, nil, "a")
	b := mustCreate(t, tr, nil, "b")
	c := mustCreate(t, tr, nil, "c")

	d := NewDraft()
	require.NoError(t, d.BeginCreate(nil))
	require.NoError(t, d.SetFields(FormData{Name: "d", Type: TypeTask}))
	require.NoError(t, d.AddDependencyOn(a.ID))
	require.NoError(t, d.AddDependencyOn(b.ID))
	require.NoError(t, d.AddDependencyOn(c.ID))

	// duplicates are caught in the draft itself
	err := d.AddDependencyOn(a.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	// remove-at-index keeps the remaining order
	require.NoError(t, d.RemoveDependencyAt(1))
	assert.Equal(t, []NodeID{a.ID, c.ID}, d.Dependencies())
	require.Error(t, d.RemoveDependencyAt(5))

	n, err := d.Submit(tr)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{a.ID, c.ID}, n.Dependencies)
	assert.Equal(t, DraftClosed, d.State())
}

func TestDraftEditLoadsAndRewritesDependencies(t *testing.T) {
	tr := NewTree()
	a := mustCreate(t, tr, nil, "a")
	b := mustCreate(t, tr, nil, "b")
	c := mustCreate(t, tr, nil, "c")
	require.NoError(t, tr.AddDependency(a.ID, b.ID))

	loaded, err := tr.Get(a.ID)
	require.NoError(t, err)

	d := NewDraft()
	require.NoError(t, d.BeginEdit(loaded))
	assert.Equal(t, []NodeID{b.ID}, d.Dependencies())

	require.NoError(t, d.RemoveDependencyAt(0))
	require.NoError(t, d.AddDependencyOn(c.ID))
	n, err := d.Submit(tr)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{c.ID}, n.Dependencies)
}

func TestDraftSubmitRejectsUnknownAndCyclicDependencies(t *testing.T) {
	tr := NewTree()
	a := mustCreate(t, tr, nil, "a")
	b := mustCreate(t, tr, nil, "b")
	require.NoError(t, tr.AddDependency(b.ID, a.ID))

	// unknown edge on create: nothing is created
	d := NewDraft()
	require.NoError(t, d.BeginCreate(nil))
	require.NoError(t, d.SetFields(FormData{Name: "x", Type: TypeTask}))
	require.NoError(t, d.AddDependencyOn(NodeID("missing")))
	_, err := d.Submit(tr)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	assert.Equal(t, DraftCreating, d.State())
	assert.Equal(t, 2, tr.Len())
	d.Cancel()

	// cyclic edge on edit: the node's edges stay as they were
	loaded, err := tr.Get(a.ID)
	require.NoError(t, err)
	require.NoError(t, d.BeginEdit(loaded))
	require.NoError(t, d.AddDependencyOn(b.ID))
	_, err = d.Submit(tr)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalid))
	assert.Equal(t, DraftEditing, d.State())

	got, err := tr.Get(a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Dependencies)
}

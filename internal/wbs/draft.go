package wbs

import (
	apperr "github.com/sirtis/backoffice/pkg/errors"
)

// DraftState is where the editing flow currently is.
type DraftState string

const (
	DraftClosed     DraftState = "closed"
	DraftCreating   DraftState = "creating"
	DraftEditing    DraftState = "editing"
	DraftSubmitting DraftState = "submitting"
)

// Draft is the form-binding layer: an uncommitted copy of a record being
// created or edited, decoupled from the tree until Submit. Field setters
// replace one field at a time on the draft's own copy; the store is never
// touched before a successful submit, and Cancel discards everything.
type Draft struct {
	state    DraftState
	form     FormData
	deps     []NodeID // dependency edges, committed wholesale on submit
	parentID *NodeID  // create target, nil for roots
	editID   *NodeID  // set when editing an existing node
}

// NewDraft returns a closed draft.
func NewDraft() *Draft {
	return &Draft{state: DraftClosed}
}

// State returns the current editing-flow state.
func (d *Draft) State() DraftState { return d.state }

// Form returns a copy of the current draft fields.
func (d *Draft) Form() FormData {
	f := d.form
	f.Deliverables = append([]string(nil), d.form.Deliverables...)
	f.Risks = append([]string(nil), d.form.Risks...)
	return f
}

// EditingID returns the id being edited, or nil in create mode.
func (d *Draft) EditingID() *NodeID {
	if d.editID == nil {
		return nil
	}
	id := *d.editID
	return &id
}

// BeginCreate opens the draft for a new node under parentID (nil for a
// root). The selected node is the usual parent target.
func (d *Draft) BeginCreate(parentID *NodeID) error {
	if d.state != DraftClosed {
		return apperr.New(apperr.CodeInvalid, "draft already open")
	}
	d.state = DraftCreating
	d.form = FormData{}
	d.deps = nil
	d.parentID = parentID
	d.editID = nil
	return nil
}

// BeginEdit opens the draft loaded from an existing node.
func (d *Draft) BeginEdit(n *Node) error {
	if d.state != DraftClosed {
		return apperr.New(apperr.CodeInvalid, "draft already open")
	}
	if n == nil {
		return apperr.New(apperr.CodeInvalid, "no node to edit")
	}
	d.state = DraftEditing
	d.form = FormData{
		Name:           n.Name,
		Description:    n.Description,
		Type:           n.Type,
		Status:         n.Status,
		Assignee:       n.Assignee,
		EstimatedHours: n.EstimatedHours,
		ActualHours:    n.ActualHours,
		EstimatedCost:  n.EstimatedCost,
		ActualCost:     n.ActualCost,
		StartDate:      n.StartDate,
		EndDate:        n.EndDate,
		Progress:       n.Progress,
		Priority:       n.Priority,
		Deliverables:   append([]string(nil), n.Deliverables...),
		Risks:          append([]string(nil), n.Risks...),
	}
	d.deps = append([]NodeID(nil), n.Dependencies...)
	id := n.ID
	d.editID = &id
	d.parentID = nil
	return nil
}

// SetFields merges the provided form fields into the draft wholesale; the
// HTTP flow binds a complete form on each change, so per-field setters are
// only needed for the ordered arrays below.
func (d *Draft) SetFields(f FormData) error {
	if d.state != DraftCreating && d.state != DraftEditing {
		return apperr.New(apperr.CodeInvalid, "draft not open")
	}
	arrays := struct {
		deliverables []string
		risks        []string
	}{d.form.Deliverables, d.form.Risks}
	d.form = f
	if f.Deliverables == nil {
		d.form.Deliverables = arrays.deliverables
	}
	if f.Risks == nil {
		d.form.Risks = arrays.risks
	}
	return nil
}

// AddDeliverable appends one deliverable to the draft.
func (d *Draft) AddDeliverable(s string) error {
	if d.state != DraftCreating && d.state != DraftEditing {
		return apperr.New(apperr.CodeInvalid, "draft not open")
	}
	d.form.Deliverables = append(d.form.Deliverables, s)
	return nil
}

// RemoveDeliverableAt removes the deliverable at index i, preserving the
// order of the remaining entries.
func (d *Draft) RemoveDeliverableAt(i int) error {
	if d.state != DraftCreating && d.state != DraftEditing {
		return apperr.New(apperr.CodeInvalid, "draft not open")
	}
	if i < 0 || i >= len(d.form.Deliverables) {
		return apperr.New(apperr.CodeInvalid, "deliverable index out of range")
	}
	d.form.Deliverables = append(d.form.Deliverables[:i:i], d.form.Deliverables[i+1:]...)
	return nil
}

// AddRisk appends one risk entry to the draft.
func (d *Draft) AddRisk(s string) error {
	if d.state != DraftCreating && d.state != DraftEditing {
		return apperr.New(apperr.CodeInvalid, "draft not open")
	}
	d.form.Risks = append(d.form.Risks, s)
	return nil
}

// RemoveRiskAt removes the risk at index i, preserving remaining order.
func (d *Draft) RemoveRiskAt(i int) error {
	if d.state != DraftCreating && d.state != DraftEditing {
		return apperr.New(apperr.CodeInvalid, "draft not open")
	}
	if i < 0 || i >= len(d.form.Risks) {
		return apperr.New(apperr.CodeInvalid, "risk index out of range")
	}
	d.form.Risks = append(d.form.Risks[:i:i], d.form.Risks[i+1:]...)
	return nil
}

// AddDependencyOn appends one dependency edge to the draft. Duplicates are
// rejected here; existence and cycles are validated against the tree at
// submit time.
func (d *Draft) AddDependencyOn(id NodeID) error {
	if d.state != DraftCreating && d.state != DraftEditing {
		return apperr.New(apperr.CodeInvalid, "draft not open")
	}
	for _, dep := range d.deps {
		if dep == id {
			return apperr.New(apperr.CodeConflict, "dependency already in draft")
		}
	}
	d.deps = append(d.deps, id)
	return nil
}

// RemoveDependencyAt removes the dependency at index i, preserving the
// order of the remaining edges.
func (d *Draft) RemoveDependencyAt(i int) error {
	if d.state != DraftCreating && d.state != DraftEditing {
		return apperr.New(apperr.CodeInvalid, "draft not open")
	}
	if i < 0 || i >= len(d.deps) {
		return apperr.New(apperr.CodeInvalid, "dependency index out of range")
	}
	d.deps = append(d.deps[:i:i], d.deps[i+1:]...)
	return nil
}

// Dependencies returns a copy of the draft's dependency edges.
func (d *Draft) Dependencies() []NodeID {
	return append([]NodeID(nil), d.deps...)
}

// Cancel discards the draft from any open state without touching the tree.
func (d *Draft) Cancel() {
	d.state = DraftClosed
	d.form = FormData{}
	d.deps = nil
	d.parentID = nil
	d.editID = nil
}

// Submit commits the draft: create when no editing id is set, otherwise an
// update of every bound field. Double submits are rejected while the first
// is in flight. On success the draft closes; on failure it returns to its
// open state so the user can correct and resubmit.
func (d *Draft) Submit(t *Tree) (*Node, error) {
	if d.state != DraftCreating && d.state != DraftEditing {
		return nil, apperr.New(apperr.CodeInvalid, "draft not open")
	}
	prev := d.state
	d.state = DraftSubmitting

	var (
		n   *Node
		err error
	)
	if d.editID == nil {
		// Unknown edges fail before anything is created; a fresh node has
		// no dependents, so attaching afterwards cannot introduce a cycle.
		for _, dep := range d.deps {
			if _, err := t.Get(dep); err != nil {
				d.state = prev
				return nil, err
			}
		}
		n, err = t.CreateNode(d.parentID, d.Form())
		if err == nil && len(d.deps) > 0 {
			if err = t.SetDependencies(n.ID, d.deps); err == nil {
				n, err = t.Get(n.ID)
			}
		}
	} else {
		var before *Node
		before, err = t.Get(*d.editID)
		if err != nil {
			d.state = prev
			return nil, err
		}
		if err = t.SetDependencies(*d.editID, d.deps); err != nil {
			d.state = prev
			return nil, err
		}
		f := d.form
		deliverables := append([]string(nil), f.Deliverables...)
		risks := append([]string(nil), f.Risks...)
		n, err = t.UpdateNode(*d.editID, NodePatch{
			Name:           &f.Name,
			Description:    &f.Description,
			Type:           &f.Type,
			Status:         &f.Status,
			Assignee:       &f.Assignee,
			EstimatedHours: &f.EstimatedHours,
			ActualHours:    &f.ActualHours,
			EstimatedCost:  &f.EstimatedCost,
			ActualCost:     &f.ActualCost,
			StartDate:      &f.StartDate,
			EndDate:        &f.EndDate,
			Progress:       &f.Progress,
			Priority:       &f.Priority,
			Deliverables:   &deliverables,
			Risks:          &risks,
		})
		if err != nil {
			// a rejected patch must not leave the edited edge set behind
			_ = t.SetDependencies(*d.editID, before.Dependencies)
		}
	}
	if err != nil {
		d.state = prev
		return nil, err
	}
	d.Cancel()
	return n, nil
}

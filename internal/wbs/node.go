// Package wbs implements the work-breakdown-structure engine: an in-memory
// node tree with cascade deletes, expansion/selection view state, timeline
// bar layout, filter projections, and the form draft used by create/edit
// flows.
package wbs

import (
	"time"

	"github.com/google/uuid"
)

// NodeID identifies a node in the tree.
type NodeID string

// NewNodeID returns a fresh unique node id.
func NewNodeID() NodeID { return NodeID(uuid.NewString()) }

// NodeType describes where a node sits in the decomposition. Purely
// descriptive; it drives icon choice in clients, nothing here branches on it.
type NodeType string

const (
	TypeProject     NodeType = "project"
	TypePhase       NodeType = "phase"
	TypeWorkPackage NodeType = "work_package"
	TypeTask        NodeType = "task"
	TypeMilestone   NodeType = "milestone"
)

// Status is the user-set progress state of a node. It is never derived from
// children or from the progress percentage.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
)

// Priority of a node.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Node is one work item in the breakdown structure. Level is assigned at
// creation (parent's level + 1, 0 for roots) and never recomputed;
// re-parenting is unsupported so it stays consistent. Children order is
// insertion order and doubles as display order. Expansion state deliberately
// lives outside the record, in ViewState.
type Node struct {
	ID          NodeID  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Level       int     `json:"level"`
	ParentID    *NodeID `json:"parentId,omitempty"`
	Children    []NodeID `json:"children"`

	Type     NodeType `json:"type"`
	Status   Status   `json:"status"`
	Assignee string   `json:"assignee"`

	EstimatedHours float64 `json:"estimatedHours"`
	ActualHours    float64 `json:"actualHours"`
	EstimatedCost  float64 `json:"estimatedCost"`
	ActualCost     float64 `json:"actualCost"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	Progress int      `json:"progress"`
	Priority Priority `json:"priority"`

	Deliverables []string `json:"deliverables"`
	Dependencies []NodeID `json:"dependencies"`
	Risks        []string `json:"risks"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the node. Readers get clones so projections
// can never mutate the store.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.ParentID != nil {
		pid := *n.ParentID
		c.ParentID = &pid
	}
	c.Children = append([]NodeID(nil), n.Children...)
	c.Deliverables = append([]string(nil), n.Deliverables...)
	c.Dependencies = append([]NodeID(nil), n.Dependencies...)
	c.Risks = append([]string(nil), n.Risks...)
	return &c
}

// HasDependency reports whether dep is already an edge of n.
func (n *Node) HasDependency(dep NodeID) bool {
	for _, d := range n.Dependencies {
		if d == dep {
			return true
		}
	}
	return false
}

// FormData is the shape bound by the create/edit form. Validation tags are
// enforced at the API boundary; the tree additionally normalizes on write.
type FormData struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`

	Type     NodeType `json:"type" validate:"required,oneof=project phase work_package task milestone"`
	Status   Status   `json:"status" validate:"omitempty,oneof=not_started in_progress completed on_hold"`
	Assignee string   `json:"assignee"`

	EstimatedHours float64 `json:"estimatedHours" validate:"gte=0"`
	ActualHours    float64 `json:"actualHours" validate:"gte=0"`
	EstimatedCost  float64 `json:"estimatedCost" validate:"gte=0"`
	ActualCost     float64 `json:"actualCost" validate:"gte=0"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	Progress int      `json:"progress" validate:"gte=0,lte=100"`
	Priority Priority `json:"priority" validate:"omitempty,oneof=low medium high critical"`

	Deliverables []string `json:"deliverables"`
	Risks        []string `json:"risks"`
}

// NodePatch is a partial update. Nil fields are left untouched; Level,
// ParentID and Children are not patchable because re-parenting is
// unsupported.
type NodePatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`

	Type     *NodeType `json:"type"`
	Status   *Status   `json:"status"`
	Assignee *string   `json:"assignee"`

	EstimatedHours *float64 `json:"estimatedHours"`
	ActualHours    *float64 `json:"actualHours"`
	EstimatedCost  *float64 `json:"estimatedCost"`
	ActualCost     *float64 `json:"actualCost"`

	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`

	Progress *int      `json:"progress"`
	Priority *Priority `json:"priority"`

	Deliverables *[]string `json:"deliverables"`
	Risks        *[]string `json:"risks"`
}

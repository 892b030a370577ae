package models

import (
	"time"

	"github.com/google/uuid"
)

// ResourceKind categorizes a resource.
type ResourceKind string

const (
	ResourceHuman     ResourceKind = "human"
	ResourceEquipment ResourceKind = "equipment"
	ResourceMaterial  ResourceKind = "material"
	ResourceFinancial ResourceKind = "financial"
)

// Allocation assigns a share of a resource to a work item for a date range.
type Allocation struct {
	NodeID  string    `json:"nodeId" validate:"required"`
	Percent int       `json:"percent" validate:"gte=0,lte=100"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}

// Resource is a person, piece of equipment, material or budget line that can
// be allocated to work items. Availability is the unallocated share in
// percent; it is user-maintained, not derived from allocations.
type Resource struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name" validate:"required"`
	Kind         ResourceKind `json:"kind" validate:"required,oneof=human equipment material financial"`
	Role         string       `json:"role"`
	Department   string       `json:"department"`
	Availability int          `json:"availability" validate:"gte=0,lte=100"`
	CostPerHour  float64      `json:"costPerHour" validate:"gte=0"`
	Allocations  []Allocation `json:"allocations"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

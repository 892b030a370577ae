package models

import (
	"time"

	"github.com/google/uuid"
)

// CaseStatus is the lifecycle state of a call-centre case.
type CaseStatus string

const (
	CaseOpen       CaseStatus = "open"
	CaseInProgress CaseStatus = "in_progress"
	CaseResolved   CaseStatus = "resolved"
	CaseClosed     CaseStatus = "closed"
)

// Case is a call-centre record. ResolvedAt is set when the status moves to
// resolved or closed and feeds the resolution-time analytics.
type Case struct {
	ID         uuid.UUID  `json:"id"`
	Subject    string     `json:"subject" validate:"required"`
	Category   string     `json:"category"`
	Priority   string     `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Status     CaseStatus `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Caller     string     `json:"caller"`
	Assignee   string     `json:"assignee"`
	Notes      string     `json:"notes"`
	OpenedAt   time.Time  `json:"openedAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

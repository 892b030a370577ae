package models

import (
	"time"

	"github.com/google/uuid"
)

// LeaveStatus is the approval state of a leave application.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveApplication is an HR leave request. Approve/reject transitions
// require a decision comment and only apply to pending applications.
type LeaveApplication struct {
	ID              uuid.UUID   `json:"id"`
	Applicant       string      `json:"applicant" validate:"required"`
	Type            string      `json:"type" validate:"required,oneof=annual sick maternity study unpaid"`
	From            time.Time   `json:"from"`
	To              time.Time   `json:"to"`
	Reason          string      `json:"reason" validate:"required"`
	Status          LeaveStatus `json:"status"`
	DecisionBy      string      `json:"decisionBy,omitempty"`
	DecisionComment string      `json:"decisionComment,omitempty"`
	SubmittedAt     time.Time   `json:"submittedAt"`
	DecidedAt       *time.Time  `json:"decidedAt,omitempty"`
}

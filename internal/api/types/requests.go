package types

import (
	"github.com/sirtis/backoffice/internal/wbs"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NodeCreateRequest is a node form plus an optional parent target; absent
// parentId creates a root. The client's selected node is the usual parent.
type NodeCreateRequest struct {
	ParentID *wbs.NodeID `json:"parentId"`
	wbs.FormData
}

// AdminUserRequest is the action-discriminated admin endpoint body.
type AdminUserRequest struct {
	Action string `json:"action" validate:"required,oneof=create_user toggle_status reset_password delete_user"`

	// create_user fields
	Email      string `json:"email" validate:"required_if=Action create_user,omitempty,email"`
	Name       string `json:"name" validate:"required_if=Action create_user"`
	Role       string `json:"role" validate:"required_if=Action create_user,omitempty,oneof=admin manager agent employee"`
	Department string `json:"department"`

	// create_user and reset_password
	Password string `json:"password" validate:"required_if=Action create_user,required_if=Action reset_password"`

	// everything except create_user
	UserID string `json:"user_id" validate:"required_unless=Action create_user,omitempty,uuid4"`
}

// LeaveDecisionRequest carries the mandatory reason-for-decision text.
type LeaveDecisionRequest struct {
	Comment string `json:"comment" validate:"required"`
	Decider string `json:"decider"`
}

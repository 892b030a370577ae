package models

import (
	"time"

	"github.com/google/uuid"
)

// Risk is a register entry. Score is derived as likelihood×impact and is
// recomputed on every write rather than stored by the client.
type Risk struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title" validate:"required"`
	Category   string    `json:"category"`
	Likelihood int       `json:"likelihood" validate:"gte=1,lte=5"`
	Impact     int       `json:"impact" validate:"gte=1,lte=5"`
	Score      int       `json:"score"`
	Owner      string    `json:"owner"`
	Mitigation string    `json:"mitigation"`
	Status     string    `json:"status" validate:"omitempty,oneof=identified assessed mitigated closed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Appraisal is a performance review for one employee over a period.
// OverallScore is the mean of the competency ratings, recomputed on write.
type Appraisal struct {
	ID           uuid.UUID      `json:"id"`
	Employee     string         `json:"employee" validate:"required"`
	Period       string         `json:"period" validate:"required"`
	Ratings      map[string]int `json:"ratings" validate:"dive,gte=1,lte=5"`
	OverallScore float64        `json:"overallScore"`
	Comments     string         `json:"comments"`
	Status       string         `json:"status" validate:"omitempty,oneof=draft submitted reviewed"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/models"
)

// RiskFilter narrows risk-register listings.
type RiskFilter struct {
	Search   string
	Category string
	Status   string
}

type RiskRepository interface {
	BaseRepository[models.Risk]
	ListFiltered(ctx context.Context, f RiskFilter) ([]models.Risk, error)
}

type riskRepository struct {
	BaseRepository[models.Risk]
}

func NewRiskRepository() RiskRepository {
	return &riskRepository{
		BaseRepository: NewBaseRepository(
			func(r *models.Risk) uuid.UUID { return r.ID },
			func(r *models.Risk, id uuid.UUID) { r.ID = id },
		),
	}
}

func (r *riskRepository) ListFiltered(ctx context.Context, f RiskFilter) ([]models.Risk, error) {
	risks, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Risk, 0, len(risks))
	for _, rk := range risks {
		if q := strings.ToLower(f.Search); q != "" &&
			!strings.Contains(strings.ToLower(rk.Title), q) &&
			!strings.Contains(strings.ToLower(rk.Mitigation), q) {
			continue
		}
		if f.Category != "" && f.Category != "all" && rk.Category != f.Category {
			continue
		}
		if f.Status != "" && f.Status != "all" && rk.Status != f.Status {
			continue
		}
		out = append(out, rk)
	}
	return out, nil
}

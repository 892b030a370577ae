package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/models"
)

// AppraisalFilter narrows appraisal listings.
type AppraisalFilter struct {
	Employee string
	Status   string
	Period   string
}

type AppraisalRepository interface {
	BaseRepository[models.Appraisal]
	ListFiltered(ctx context.Context, f AppraisalFilter) ([]models.Appraisal, error)
}

type appraisalRepository struct {
	BaseRepository[models.Appraisal]
}

func NewAppraisalRepository() AppraisalRepository {
	return &appraisalRepository{
		BaseRepository: NewBaseRepository(
			func(a *models.Appraisal) uuid.UUID { return a.ID },
			func(a *models.Appraisal, id uuid.UUID) { a.ID = id },
		),
	}
}

func (r *appraisalRepository) ListFiltered(ctx context.Context, f AppraisalFilter) ([]models.Appraisal, error) {
	apps, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Appraisal, 0, len(apps))
	for _, a := range apps {
		if f.Employee != "" && !strings.EqualFold(a.Employee, f.Employee) {
			continue
		}
		if f.Status != "" && f.Status != "all" && a.Status != f.Status {
			continue
		}
		if f.Period != "" && a.Period != f.Period {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

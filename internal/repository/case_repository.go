package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/models"
)

// CaseFilter narrows call-centre case listings.
type CaseFilter struct {
	Search   string
	Status   string
	Category string
	Assignee string
}

type CaseRepository interface {
	BaseRepository[models.Case]
	ListFiltered(ctx context.Context, f CaseFilter) ([]models.Case, error)
}

type caseRepository struct {
	BaseRepository[models.Case]
}

func NewCaseRepository() CaseRepository {
	return &caseRepository{
		BaseRepository: NewBaseRepository(
			func(c *models.Case) uuid.UUID { return c.ID },
			func(c *models.Case, id uuid.UUID) { c.ID = id },
		),
	}
}

func (r *caseRepository) ListFiltered(ctx context.Context, f CaseFilter) ([]models.Case, error) {
	cases, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Case, 0, len(cases))
	for _, c := range cases {
		if q := strings.ToLower(f.Search); q != "" &&
			!strings.Contains(strings.ToLower(c.Subject), q) &&
			!strings.Contains(strings.ToLower(c.Caller), q) {
			continue
		}
		if f.Status != "" && f.Status != "all" && string(c.Status) != f.Status {
			continue
		}
		if f.Category != "" && f.Category != "all" && c.Category != f.Category {
			continue
		}
		if f.Assignee != "" && f.Assignee != "all" && c.Assignee != f.Assignee {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

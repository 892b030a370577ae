package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/models"
)

// ResourceFilter narrows resource listings.
type ResourceFilter struct {
	Search     string
	Kind       string
	Department string
}

type ResourceRepository interface {
	BaseRepository[models.Resource]
	ListFiltered(ctx context.Context, f ResourceFilter) ([]models.Resource, error)
}

type resourceRepository struct {
	BaseRepository[models.Resource]
}

func NewResourceRepository() ResourceRepository {
	return &resourceRepository{
		BaseRepository: NewBaseRepository(
			func(r *models.Resource) uuid.UUID { return r.ID },
			func(r *models.Resource, id uuid.UUID) { r.ID = id },
		),
	}
}

// ListFiltered applies the AND of all active predicates. Search also covers
// role and department, matching the resource screen's behavior.
func (r *resourceRepository) ListFiltered(ctx context.Context, f ResourceFilter) ([]models.Resource, error) {
	resources, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Resource, 0, len(resources))
	for _, res := range resources {
		if q := strings.ToLower(f.Search); q != "" &&
			!strings.Contains(strings.ToLower(res.Name), q) &&
			!strings.Contains(strings.ToLower(res.Role), q) &&
			!strings.Contains(strings.ToLower(res.Department), q) {
			continue
		}
		if f.Kind != "" && f.Kind != "all" && string(res.Kind) != f.Kind {
			continue
		}
		if f.Department != "" && f.Department != "all" && res.Department != f.Department {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

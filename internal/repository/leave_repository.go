package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/models"
)

// LeaveFilter narrows leave-application listings.
type LeaveFilter struct {
	Status    string
	Applicant string
}

type LeaveRepository interface {
	BaseRepository[models.LeaveApplication]
	ListFiltered(ctx context.Context, f LeaveFilter) ([]models.LeaveApplication, error)
}

type leaveRepository struct {
	BaseRepository[models.LeaveApplication]
}

func NewLeaveRepository() LeaveRepository {
	return &leaveRepository{
		BaseRepository: NewBaseRepository(
			func(l *models.LeaveApplication) uuid.UUID { return l.ID },
			func(l *models.LeaveApplication, id uuid.UUID) { l.ID = id },
		),
	}
}

func (r *leaveRepository) ListFiltered(ctx context.Context, f LeaveFilter) ([]models.LeaveApplication, error) {
	apps, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.LeaveApplication, 0, len(apps))
	for _, a := range apps {
		if f.Status != "" && f.Status != "all" && string(a.Status) != f.Status {
			continue
		}
		if f.Applicant != "" && !strings.EqualFold(a.Applicant, f.Applicant) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/models"
	apperr "github.com/sirtis/backoffice/pkg/errors"
)

// UserFilter narrows user listings; empty or "all" fields match everything.
type UserFilter struct {
	Search string
	Role   string
	Active *bool
}

type UserRepository interface {
	BaseRepository[models.User]
	GetByEmail(ctx context.Context, email string, dest *models.User) error
	ListFiltered(ctx context.Context, f UserFilter) ([]models.User, error)
}

type userRepository struct {
	BaseRepository[models.User]
}

func NewUserRepository() UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(
			func(u *models.User) uuid.UUID { return u.ID },
			func(u *models.User, id uuid.UUID) { u.ID = id },
		),
	}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			*dest = users[i]
			return nil
		}
	}
	return apperr.Newf(apperr.CodeNotFound, "user %s not found", email)
}

func (r *userRepository) ListFiltered(ctx context.Context, f UserFilter) ([]models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if q := strings.ToLower(f.Search); q != "" &&
			!strings.Contains(strings.ToLower(u.Name), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) {
			continue
		}
		if f.Role != "" && f.Role != "all" && u.Role != f.Role {
			continue
		}
		if f.Active != nil && u.Active != *f.Active {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

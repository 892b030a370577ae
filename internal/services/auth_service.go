package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sirtis/backoffice/internal/models"
	"github.com/sirtis/backoffice/internal/repository"
	apperr "github.com/sirtis/backoffice/pkg/errors"
)

// AuthService issues session tokens. User provisioning itself happens on the
// admin surface; this only authenticates.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

type authService struct {
	users      repository.UserRepository
	hmacSecret []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.UserRepository, secret []byte) AuthService {
	return &authService{users: users, hmacSecret: secret, tokenTTL: 24 * time.Hour}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.users.GetByEmail(ctx, email, &user); err != nil {
		return "", nil, apperr.New(apperr.CodeUnauthorized, "invalid credentials")
	}
	if !user.Active {
		return "", nil, apperr.New(apperr.CodeForbidden, "account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.CodeUnauthorized, "invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	})
	tokenString, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", nil, apperr.Wrap(err, apperr.CodeInternal, "sign token")
	}
	return tokenString, &user, nil
}

// HashPassword is used by the admin create_user and reset_password actions.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", apperr.New(apperr.CodeInvalid, "password must be at least 8 characters")
	}
	ph, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeInternal, "hash password")
	}
	return string(ph), nil
}

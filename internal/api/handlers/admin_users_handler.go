package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/api/types"
	"github.com/sirtis/backoffice/internal/api/ws"
	"github.com/sirtis/backoffice/internal/models"
	"github.com/sirtis/backoffice/internal/repository"
	"github.com/sirtis/backoffice/internal/services"
	apperr "github.com/sirtis/backoffice/pkg/errors"
)

// AdminUsersHandler serves the admin user-management screen. Mutations go
// through a single POST with an action discriminator, matching the admin
// endpoint shape the clients already speak.
type AdminUsersHandler struct {
	repo repository.UserRepository
	hub  *ws.Hub
}

func NewAdminUsersHandler(repo repository.UserRepository, hub *ws.Hub) *AdminUsersHandler {
	return &AdminUsersHandler{repo: repo, hub: hub}
}

func (h *AdminUsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.UserFilter{
		Search: q.Get("search"),
		Role:   q.Get("role"),
	}
	switch q.Get("status") {
	case "active":
		active := true
		f.Active = &active
	case "disabled":
		active := false
		f.Active = &active
	}
	users, err := h.repo.ListFiltered(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, users)
}

// Act dispatches on the request's action field.
func (h *AdminUsersHandler) Act(w http.ResponseWriter, r *http.Request) {
	var req types.AdminUserRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	switch req.Action {
	case "create_user":
		h.createUser(w, r, req)
	case "toggle_status":
		h.toggleStatus(w, r, req)
	case "reset_password":
		h.resetPassword(w, r, req)
	case "delete_user":
		h.deleteUser(w, r, req)
	default:
		writeError(w, apperr.Newf(apperr.CodeInvalid, "unknown action %q", req.Action))
	}
}

func (h *AdminUsersHandler) createUser(w http.ResponseWriter, r *http.Request, req types.AdminUserRequest) {
	var existing models.User
	if err := h.repo.GetByEmail(r.Context(), req.Email, &existing); err == nil {
		writeError(w, apperr.New(apperr.CodeConflict, "email already exists"))
		return
	}
	hash, err := services.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	u := models.User{
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		Department:   req.Department,
		Active:       true,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := h.repo.Create(r.Context(), &u); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("user", "created", u.ID.String())
	writeCreated(w, u)
}

func (h *AdminUsersHandler) toggleStatus(w http.ResponseWriter, r *http.Request, req types.AdminUserRequest) {
	u, err := h.loadUser(r, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	u.Active = !u.Active
	u.UpdatedAt = time.Now()
	if err := h.repo.Update(r.Context(), u); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("user", "updated", u.ID.String())
	writeOK(w, u)
}

func (h *AdminUsersHandler) resetPassword(w http.ResponseWriter, r *http.Request, req types.AdminUserRequest) {
	u, err := h.loadUser(r, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	hash, err := services.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	if err := h.repo.Update(r.Context(), u); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("user", "updated", u.ID.String())
	writeOK(w, u)
}

func (h *AdminUsersHandler) deleteUser(w http.ResponseWriter, r *http.Request, req types.AdminUserRequest) {
	u, err := h.loadUser(r, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.repo.Delete(r.Context(), u.ID); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("user", "deleted", u.ID.String())
	writeOK(w, nil)
}

func (h *AdminUsersHandler) loadUser(r *http.Request, idStr string) (*models.User, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, apperr.New(apperr.CodeInvalid, "invalid user_id")
	}
	var u models.User
	if err := h.repo.GetByID(r.Context(), id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

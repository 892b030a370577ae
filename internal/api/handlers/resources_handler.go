package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/api/ws"
	"github.com/sirtis/backoffice/internal/models"
	"github.com/sirtis/backoffice/internal/repository"
	apperr "github.com/sirtis/backoffice/pkg/errors"
)

type ResourcesHandler struct {
	repo repository.ResourceRepository
	hub  *ws.Hub
}

func NewResourcesHandler(repo repository.ResourceRepository, hub *ws.Hub) *ResourcesHandler {
	return &ResourcesHandler{repo: repo, hub: hub}
}

func (h *ResourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.repo.ListFiltered(r.Context(), repository.ResourceFilter{
		Search:     q.Get("search"),
		Kind:       q.Get("kind"),
		Department: q.Get("department"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, items)
}

func (h *ResourcesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var res models.Resource
	if err := decodeValid(r, &res); err != nil {
		writeError(w, err)
		return
	}
	res.ID = uuid.Nil // ids are assigned here, not by clients
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	if err := h.repo.Create(r.Context(), &res); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("resource", "created", res.ID.String())
	writeCreated(w, res)
}

func (h *ResourcesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var res models.Resource
	if err := h.repo.GetByID(r.Context(), id, &res); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, res)
}

func (h *ResourcesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var res models.Resource
	if err := decodeValid(r, &res); err != nil {
		writeError(w, err)
		return
	}
	var existing models.Resource
	if err := h.repo.GetByID(r.Context(), id, &existing); err != nil {
		writeError(w, err)
		return
	}
	res.ID = id
	res.CreatedAt = existing.CreatedAt
	res.UpdatedAt = time.Now()
	if err := h.repo.Update(r.Context(), &res); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("resource", "updated", id.String())
	writeOK(w, res)
}

func (h *ResourcesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("resource", "deleted", id.String())
	writeOK(w, nil)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.CodeInvalid, "invalid id")
	}
	return id, nil
}

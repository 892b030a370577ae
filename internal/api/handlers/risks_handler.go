package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/api/ws"
	"github.com/sirtis/backoffice/internal/models"
	"github.com/sirtis/backoffice/internal/repository"
)

type RisksHandler struct {
	repo repository.RiskRepository
	hub  *ws.Hub
}

func NewRisksHandler(repo repository.RiskRepository, hub *ws.Hub) *RisksHandler {
	return &RisksHandler{repo: repo, hub: hub}
}

func (h *RisksHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.repo.ListFiltered(r.Context(), repository.RiskFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, items)
}

func (h *RisksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rk models.Risk
	if err := decodeValid(r, &rk); err != nil {
		writeError(w, err)
		return
	}
	rk.ID = uuid.Nil
	rk.Score = rk.Likelihood * rk.Impact
	if rk.Status == "" {
		rk.Status = "identified"
	}
	rk.CreatedAt = time.Now()
	rk.UpdatedAt = rk.CreatedAt
	if err := h.repo.Create(r.Context(), &rk); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("risk", "created", rk.ID.String())
	writeCreated(w, rk)
}

func (h *RisksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var rk models.Risk
	if err := h.repo.GetByID(r.Context(), id, &rk); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, rk)
}

func (h *RisksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var rk models.Risk
	if err := decodeValid(r, &rk); err != nil {
		writeError(w, err)
		return
	}
	var existing models.Risk
	if err := h.repo.GetByID(r.Context(), id, &existing); err != nil {
		writeError(w, err)
		return
	}
	rk.ID = id
	rk.Score = rk.Likelihood * rk.Impact
	rk.CreatedAt = existing.CreatedAt
	rk.UpdatedAt = time.Now()
	if err := h.repo.Update(r.Context(), &rk); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("risk", "updated", id.String())
	writeOK(w, rk)
}

func (h *RisksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("risk", "deleted", id.String())
	writeOK(w, nil)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/api/ws"
	"github.com/sirtis/backoffice/internal/models"
	"github.com/sirtis/backoffice/internal/repository"
)

type AppraisalsHandler struct {
	repo repository.AppraisalRepository
	hub  *ws.Hub
}

func NewAppraisalsHandler(repo repository.AppraisalRepository, hub *ws.Hub) *AppraisalsHandler {
	return &AppraisalsHandler{repo: repo, hub: hub}
}

func overallScore(ratings map[string]int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum int
	for _, v := range ratings {
		sum += v
	}
	return float64(sum) / float64(len(ratings))
}

func (h *AppraisalsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.repo.ListFiltered(r.Context(), repository.AppraisalFilter{
		Employee: q.Get("employee"),
		Status:   q.Get("status"),
		Period:   q.Get("period"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, items)
}

func (h *AppraisalsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var a models.Appraisal
	if err := decodeValid(r, &a); err != nil {
		writeError(w, err)
		return
	}
	a.ID = uuid.Nil
	a.OverallScore = overallScore(a.Ratings)
	if a.Status == "" {
		a.Status = "draft"
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	if err := h.repo.Create(r.Context(), &a); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("appraisal", "created", a.ID.String())
	writeCreated(w, a)
}

func (h *AppraisalsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var a models.Appraisal
	if err := h.repo.GetByID(r.Context(), id, &a); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, a)
}

func (h *AppraisalsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var a models.Appraisal
	if err := decodeValid(r, &a); err != nil {
		writeError(w, err)
		return
	}
	var existing models.Appraisal
	if err := h.repo.GetByID(r.Context(), id, &existing); err != nil {
		writeError(w, err)
		return
	}
	a.ID = id
	a.OverallScore = overallScore(a.Ratings)
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now()
	if err := h.repo.Update(r.Context(), &a); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("appraisal", "updated", id.String())
	writeOK(w, a)
}

func (h *AppraisalsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("appraisal", "deleted", id.String())
	writeOK(w, nil)
}

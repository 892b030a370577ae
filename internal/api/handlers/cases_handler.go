package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/api/ws"
	"github.com/sirtis/backoffice/internal/export"
	"github.com/sirtis/backoffice/internal/models"
	"github.com/sirtis/backoffice/internal/repository"
)

type CasesHandler struct {
	repo repository.CaseRepository
	hub  *ws.Hub
}

func NewCasesHandler(repo repository.CaseRepository, hub *ws.Hub) *CasesHandler {
	return &CasesHandler{repo: repo, hub: hub}
}

func (h *CasesHandler) filterFromQuery(r *http.Request) repository.CaseFilter {
	q := r.URL.Query()
	return repository.CaseFilter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Assignee: q.Get("assignee"),
	}
}

func (h *CasesHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.ListFiltered(r.Context(), h.filterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, items)
}

func (h *CasesHandler) Export(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.ListFiltered(r.Context(), h.filterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := export.CasesCSV(items)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="cases.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *CasesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Case
	if err := decodeValid(r, &c); err != nil {
		writeError(w, err)
		return
	}
	c.ID = uuid.Nil
	if c.Status == "" {
		c.Status = models.CaseOpen
	}
	now := time.Now()
	if c.OpenedAt.IsZero() {
		c.OpenedAt = now
	}
	c.UpdatedAt = now
	if err := h.repo.Create(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("case", "created", c.ID.String())
	writeCreated(w, c)
}

func (h *CasesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var c models.Case
	if err := h.repo.GetByID(r.Context(), id, &c); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, c)
}

func (h *CasesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var c models.Case
	if err := decodeValid(r, &c); err != nil {
		writeError(w, err)
		return
	}
	var existing models.Case
	if err := h.repo.GetByID(r.Context(), id, &existing); err != nil {
		writeError(w, err)
		return
	}
	c.ID = id
	c.OpenedAt = existing.OpenedAt
	c.UpdatedAt = time.Now()
	// Stamp resolution time on the transition into a resolved state; keep
	// the original stamp on later edits.
	switch c.Status {
	case models.CaseResolved, models.CaseClosed:
		if existing.ResolvedAt != nil {
			c.ResolvedAt = existing.ResolvedAt
		} else {
			now := time.Now()
			c.ResolvedAt = &now
		}
	default:
		c.ResolvedAt = nil
	}
	if err := h.repo.Update(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("case", "updated", id.String())
	writeOK(w, c)
}

func (h *CasesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("case", "deleted", id.String())
	writeOK(w, nil)
}

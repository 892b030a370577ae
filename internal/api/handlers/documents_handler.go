package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/api/ws"
	"github.com/sirtis/backoffice/internal/export"
	"github.com/sirtis/backoffice/internal/models"
	"github.com/sirtis/backoffice/internal/repository"
	"github.com/sirtis/backoffice/pkg/utils"
)

type DocumentsHandler struct {
	repo repository.DocumentRepository
	hub  *ws.Hub
}

func NewDocumentsHandler(repo repository.DocumentRepository, hub *ws.Hub) *DocumentsHandler {
	return &DocumentsHandler{repo: repo, hub: hub}
}

func (h *DocumentsHandler) filterFromQuery(r *http.Request) repository.DocumentFilter {
	q := r.URL.Query()
	return repository.DocumentFilter{
		Search:         q.Get("search"),
		Classification: q.Get("classification"),
		SortBy:         models.DocumentSortKey(q.Get("sort")),
	}
}

func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.ListFiltered(r.Context(), h.filterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, items)
}

// Export renders the current projection (same filters and sort as List) as
// a CSV attachment.
func (h *DocumentsHandler) Export(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.ListFiltered(r.Context(), h.filterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := export.DocumentsCSV(items)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="documents.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *DocumentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var doc models.Document
	if err := decodeValid(r, &doc); err != nil {
		writeError(w, err)
		return
	}
	doc.ID = uuid.Nil
	now := time.Now()
	doc.UploadDate = now
	doc.LastModified = now
	if doc.Checksum == "" {
		doc.Checksum = utils.ChecksumSHA256(fmt.Appendf(nil, "%s|%s|%d", doc.Title, doc.Description, doc.SizeBytes))
	}
	if err := h.repo.Create(r.Context(), &doc); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("document", "created", doc.ID.String())
	writeCreated(w, doc)
}

func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var doc models.Document
	if err := h.repo.GetByID(r.Context(), id, &doc); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, doc)
}

func (h *DocumentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var doc models.Document
	if err := decodeValid(r, &doc); err != nil {
		writeError(w, err)
		return
	}
	var existing models.Document
	if err := h.repo.GetByID(r.Context(), id, &existing); err != nil {
		writeError(w, err)
		return
	}
	doc.ID = id
	doc.UploadDate = existing.UploadDate
	doc.LastModified = time.Now()
	if err := h.repo.Update(r.Context(), &doc); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("document", "updated", id.String())
	writeOK(w, doc)
}

func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("document", "deleted", id.String())
	writeOK(w, nil)
}

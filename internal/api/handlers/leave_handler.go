package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sirtis/backoffice/internal/api/types"
	"github.com/sirtis/backoffice/internal/api/ws"
	"github.com/sirtis/backoffice/internal/models"
	"github.com/sirtis/backoffice/internal/repository"
	apperr "github.com/sirtis/backoffice/pkg/errors"
)

type LeaveHandler struct {
	repo repository.LeaveRepository
	hub  *ws.Hub
}

func NewLeaveHandler(repo repository.LeaveRepository, hub *ws.Hub) *LeaveHandler {
	return &LeaveHandler{repo: repo, hub: hub}
}

func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.repo.ListFiltered(r.Context(), repository.LeaveFilter{
		Status:    q.Get("status"),
		Applicant: q.Get("applicant"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, items)
}

func (h *LeaveHandler) Create(w http.ResponseWriter, r *http.Request) {
	var app models.LeaveApplication
	if err := decodeValid(r, &app); err != nil {
		writeError(w, err)
		return
	}
	if !app.To.IsZero() && app.To.Before(app.From) {
		writeError(w, apperr.New(apperr.CodeInvalid, "leave end precedes start"))
		return
	}
	app.ID = uuid.Nil
	app.Status = models.LeavePending
	app.SubmittedAt = time.Now()
	app.DecidedAt = nil
	app.DecisionBy = ""
	app.DecisionComment = ""
	if err := h.repo.Create(r.Context(), &app); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("leave", "created", app.ID.String())
	writeCreated(w, app)
}

func (h *LeaveHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var app models.LeaveApplication
	if err := h.repo.GetByID(r.Context(), id, &app); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, app)
}

func (h *LeaveHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.LeaveApproved)
}

func (h *LeaveHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.LeaveRejected)
}

// decide applies an approval decision. Only pending applications can move,
// and the reason-for-decision text is mandatory.
func (h *LeaveHandler) decide(w http.ResponseWriter, r *http.Request, to models.LeaveStatus) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.LeaveDecisionRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var app models.LeaveApplication
	if err := h.repo.GetByID(r.Context(), id, &app); err != nil {
		writeError(w, err)
		return
	}
	if app.Status != models.LeavePending {
		writeError(w, apperr.Newf(apperr.CodeConflict, "application already %s", app.Status))
		return
	}

	now := time.Now()
	app.Status = to
	app.DecisionComment = req.Comment
	app.DecisionBy = req.Decider
	app.DecidedAt = &now
	if err := h.repo.Update(r.Context(), &app); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("leave", "updated", id.String())
	writeOK(w, app)
}

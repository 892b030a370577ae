package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sirtis/backoffice/internal/api/types"
	"github.com/sirtis/backoffice/internal/api/ws"
	"github.com/sirtis/backoffice/internal/wbs"
	apperr "github.com/sirtis/backoffice/pkg/errors"
)

// NodesHandler serves the work-breakdown tree: CRUD, dependencies, the
// expansion/selection view and the Gantt layout.
type NodesHandler struct {
	tree *wbs.Tree
	view *wbs.ViewState
	hub  *ws.Hub
}

func NewNodesHandler(tree *wbs.Tree, view *wbs.ViewState, hub *ws.Hub) *NodesHandler {
	return &NodesHandler{tree: tree, view: view, hub: hub}
}

// List returns the filtered flat projection in display order.
func (h *NodesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := wbs.Filter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Type:     q.Get("type"),
		Assignee: q.Get("assignee"),
	}
	nodes := f.Apply(h.tree.All())
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    nodes,
		Meta:    &types.Meta{Total: int64(len(nodes))},
	})
}

func (h *NodesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.NodeCreateRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	n, err := h.tree.CreateNode(req.ParentID, req.FormData)
	if err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("node", "created", string(n.ID))
	writeCreated(w, n)
}

func (h *NodesHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.tree.Get(wbs.NodeID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, n)
}

func (h *NodesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch wbs.NodePatch
	if err := decodeValid(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	n, err := h.tree.UpdateNode(wbs.NodeID(chi.URLParam(r, "id")), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("node", "updated", string(n.ID))
	writeOK(w, n)
}

// Delete cascades through the subtree. The interactive confirmation dialog
// becomes an explicit ?confirm=true; without it nothing is removed.
func (h *NodesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := wbs.NodeID(chi.URLParam(r, "id"))
	confirmed := r.URL.Query().Get("confirm") == "true"

	removed, err := h.tree.DeleteNode(id, func(n *wbs.Node, descendants int) bool {
		return confirmed
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if !confirmed {
		writeError(w, apperr.New(apperr.CodeInvalid, "deletion requires confirm=true"))
		return
	}
	h.view.Forget(id)
	h.hub.Publish("node", "deleted", string(id))
	writeOK(w, map[string]int{"removed": removed})
}

func (h *NodesHandler) AddDependency(w http.ResponseWriter, r *http.Request) {
	from := wbs.NodeID(chi.URLParam(r, "id"))
	to := wbs.NodeID(chi.URLParam(r, "dep"))
	if err := h.tree.AddDependency(from, to); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("node", "updated", string(from))
	writeCreated(w, nil)
}

func (h *NodesHandler) RemoveDependency(w http.ResponseWriter, r *http.Request) {
	from := wbs.NodeID(chi.URLParam(r, "id"))
	to := wbs.NodeID(chi.URLParam(r, "dep"))
	if err := h.tree.RemoveDependency(from, to); err != nil {
		writeError(w, err)
		return
	}
	h.hub.Publish("node", "updated", string(from))
	writeOK(w, nil)
}

// ToggleExpand flips one node's expansion; no cascade.
func (h *NodesHandler) ToggleExpand(w http.ResponseWriter, r *http.Request) {
	id := wbs.NodeID(chi.URLParam(r, "id"))
	if _, err := h.tree.Get(id); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]bool{"expanded": h.view.ToggleExpanded(id)})
}

// ToggleSelect selects the node, or clears the selection when re-clicked.
func (h *NodesHandler) ToggleSelect(w http.ResponseWriter, r *http.Request) {
	id := wbs.NodeID(chi.URLParam(r, "id"))
	if _, err := h.tree.Get(id); err != nil {
		writeError(w, err)
		return
	}
	sel := h.view.ToggleSelect(id)
	writeOK(w, map[string]any{"selected": sel})
}

// Rows returns the visible tree-table rows under the current expansion
// state.
func (h *NodesHandler) Rows(w http.ResponseWriter, r *http.Request) {
	writeOK(w, h.view.VisibleRows(h.tree))
}

// ganttRow pairs a node with its bar geometry.
type ganttRow struct {
	Node      *wbs.Node `json:"node"`
	Span      wbs.Span  `json:"span"`
	Milestone bool      `json:"milestone"`
	Marker    float64   `json:"marker,omitempty"`
}

// Gantt lays out every node within the requested window (default: two
// months back, four ahead). Bars overflowing the right edge are flagged,
// not truncated.
func (h *NodesHandler) Gantt(w http.ResponseWriter, r *http.Request) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	window := wbs.DefaultWindow(today)

	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			writeError(w, err)
			return
		}
		window.Start = t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			writeError(w, err)
			return
		}
		window.End = t
	}
	if !window.End.After(window.Start) {
		writeError(w, apperr.New(apperr.CodeInvalid, "window end must be after start"))
		return
	}

	var rows []ganttRow
	h.tree.Walk(func(n *wbs.Node) {
		row := ganttRow{Node: n}
		if n.Type == wbs.TypeMilestone || n.StartDate.Equal(n.EndDate) {
			row.Milestone = true
			row.Marker = wbs.Milestone(window, n.StartDate)
		} else {
			row.Span = wbs.Layout(window, n.StartDate, n.EndDate)
		}
		rows = append(rows, row)
	})

	writeOK(w, map[string]any{
		"window": window,
		"today":  wbs.TodayMarker(window, today),
		"rows":   rows,
	})
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Newf(apperr.CodeInvalid, "invalid date %q", s)
}

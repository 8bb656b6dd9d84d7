package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"bazaar-engine/internal/view"
)

type ViewsHandler struct {
	Session *view.Session
}

func (h ViewsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"views": h.Session.Views()})
}

// ByPath dispatches /views/{name} and /views/{name}/{action}.
func (h ViewsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/views/")
	name, action, _ := strings.Cut(rest, "/")
	if name == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "missing view name")
		return
	}

	c := h.Session.Get(name)
	if c == nil {
		WriteError(w, r, http.StatusNotFound, "unknown_view", "no such view: "+name)
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		writeJSON(w, c.Snapshot())
	case action == "activate" && r.Method == http.MethodPost:
		c = h.Session.Activate(r.Context(), name)
		writeJSON(w, c.Snapshot())
	case action == "refresh" && r.Method == http.MethodPost:
		c.Refresh(r.Context())
		writeJSON(w, map[string]any{"ok": true})
	case action == "filters" && r.Method == http.MethodPost:
		h.setFilter(w, r, c)
	case action == "filters/clear" && r.Method == http.MethodPost:
		c.ClearFilters(r.Context())
		writeJSON(w, c.Snapshot())
	case action == "search" && r.Method == http.MethodPost:
		h.setSearch(w, r, c)
	case action == "sort" && r.Method == http.MethodPost:
		h.setSort(w, r, c)
	case action == "page" && r.Method == http.MethodPost:
		h.setPage(w, r, c)
	default:
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported view operation")
	}
}

type setFilterReq struct {
	Field string   `json:"field"`
	Value string   `json:"value,omitempty"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Clear bool     `json:"clear,omitempty"`
}

func (h ViewsHandler) setFilter(w http.ResponseWriter, r *http.Request, c *view.Controller) {
	var req setFilterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Field == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "expected {field, value|min+max|clear}")
		return
	}
	switch {
	case req.Min != nil && req.Max != nil:
		c.SetRangeFilter(r.Context(), req.Field, *req.Min, *req.Max)
	case req.Clear:
		c.ClearRangeFilter(r.Context(), req.Field)
		c.SetFilter(r.Context(), req.Field, "")
	default:
		c.SetFilter(r.Context(), req.Field, req.Value)
	}
	writeJSON(w, c.Snapshot())
}

func (h ViewsHandler) setSearch(w http.ResponseWriter, r *http.Request, c *view.Controller) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "expected {text}")
		return
	}
	c.SetSearchText(r.Context(), req.Text)
	writeJSON(w, c.Snapshot())
}

func (h ViewsHandler) setSort(w http.ResponseWriter, r *http.Request, c *view.Controller) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "expected {key}")
		return
	}
	c.SetSortKey(req.Key)
	writeJSON(w, c.Snapshot())
}

func (h ViewsHandler) setPage(w http.ResponseWriter, r *http.Request, c *view.Controller) {
	var req struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "expected {page}")
		return
	}
	c.SetPage(req.Page)
	writeJSON(w, c.Snapshot())
}

package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"

	"bazaar-engine/internal/store"
	"bazaar-engine/internal/view"
)

type SourcesHandler struct {
	Session *view.Session
	DB      *sql.DB
}

func (h SourcesHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Session.SourceSnapshots())
}

func (h SourcesHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	runs, err := store.ListHistory(r.Context(), h.DB, q.Get("source"), limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "journal_error", err.Error())
		return
	}
	if runs == nil {
		runs = []store.FetchRun{}
	}
	writeJSON(w, map[string]any{"runs": runs})
}

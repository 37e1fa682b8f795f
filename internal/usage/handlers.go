package usage

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/genum-ai/genum/internal/api"
	"github.com/genum-ai/genum/internal/provider"
)

// Handler exposes the usage ledger over HTTP
type Handler struct {
	store Store
}

// NewHandler creates a usage Handler
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// ListRunsResponse is the response of the run listing
type ListRunsResponse struct {
	Runs []Record `json:"runs"`
	api.Pagination
}

// SummaryResponse is the response of the usage summary
type SummaryResponse struct {
	Rows []SummaryRow `json:"rows"`
}

// FilterFromQuery reads vendor, model, since (RFC 3339) and limit from the query string
func FilterFromQuery(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	f := Filter{
		Vendor: provider.Vendor(q.Get("vendor")),
		Model:  q.Get("model"),
	}
	if s := q.Get("since"); s != "" {
		since, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return f, fmt.Errorf("invalid since: %w", err)
		}
		f.Since = since
	}
	if l := q.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 0 {
			return f, fmt.Errorf("invalid limit %q", l)
		}
		f.Limit = limit
	}
	return f, nil
}

// ListRunsHTTPHandler lists recorded runs
func (h *Handler) ListRunsHTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := FilterFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		runs, err := h.store.List(r.Context(), f)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to list runs: %v", err), http.StatusInternalServerError)
			return
		}
		if runs == nil {
			runs = []Record{}
		}

		w.Header().Set("Content-Type", "application/json")
		response := ListRunsResponse{
			Runs: runs,
			Pagination: api.Pagination{
				Page:    1,
				PerPage: len(runs),
				Total:   len(runs),
			},
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
			return
		}
	}
}

// SummaryHTTPHandler aggregates usage per vendor and model
func (h *Handler) SummaryHTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := FilterFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rows, err := h.store.Summary(r.Context(), f)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to summarize usage: %v", err), http.StatusInternalServerError)
			return
		}
		if rows == nil {
			rows = []SummaryRow{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(SummaryResponse{Rows: rows}); err != nil {
			http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
			return
		}
	}
}

package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/genum-ai/genum/internal/provider"
)

// RunHandler exposes the runner over HTTP
type RunHandler struct {
	runner Runner
}

// NewRunHandler creates a RunHandler
func NewRunHandler(runner Runner) *RunHandler {
	return &RunHandler{runner: runner}
}

// HandleRun executes the posted RunRequest
func (h *RunHandler) HandleRun() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RunRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("failed to decode request: %v", err), http.StatusBadRequest)
			return
		}
		if req.Request.Model == "" {
			http.Error(w, "request.model is required", http.StatusBadRequest)
			return
		}

		result, err := h.runner.Run(r.Context(), req)
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, provider.ErrUnknownVendor) {
				status = http.StatusNotFound
			}
			http.Error(w, fmt.Sprintf("failed to run prompt: %v", err), status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
			return
		}
	}
}

package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sevigo/print-relay/internal/core"
	"github.com/sevigo/print-relay/internal/storage"
)

// StatusHandler serves the queue state and the job journal.
type StatusHandler struct {
	inspector core.QueueInspector
	journal   core.JobJournal
	logger    *slog.Logger
}

func NewStatusHandler(inspector core.QueueInspector, journal core.JobJournal, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{inspector: inspector, journal: journal, logger: logger}
}

// JobsResponse is the body of GET /api/v1/jobs.
type JobsResponse struct {
	Jobs []*core.JobRecord `json:"jobs"`
}

func (h *StatusHandler) Queue(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.inspector.Status())
}

func (h *StatusHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	limit := storage.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = storage.ClampLimit(n)
	}

	records, err := h.journal.RecentJobs(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list jobs", "error", err)
		http.Error(w, "Failed to list jobs", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []*core.JobRecord{}
	}
	writeJSON(w, http.StatusOK, JobsResponse{Jobs: records})
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"notion-intel/internal/contextutil"
	"notion-intel/internal/service"
	"notion-intel/internal/storage"
)

// HistoryHandler lists recorded scrape runs.
type HistoryHandler struct {
	scrapeService service.ScrapeService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(scrapeService service.ScrapeService) *HistoryHandler {
	return &HistoryHandler{scrapeService: scrapeService}
}

// HistoryEntry is one scrape run in the history response.
type HistoryEntry struct {
	ScrapeID       string     `json:"scrape_id"`
	Status         string     `json:"status"`
	PagesRequested int        `json:"pages_requested"`
	PagesScraped   int        `json:"pages_scraped"`
	TotalChunks    int        `json:"total_chunks"`
	Failed         int        `json:"failed"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

// HistoryResponse represents the HTTP response payload for scrape history.
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
}

// ServeHTTP handles GET /api/history?limit=.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = v
	}

	runs, err := h.scrapeService.History(ctx, limit)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list scrape history")
		return
	}

	writeJSON(ctx, w, http.StatusOK, HistoryResponse{History: toHistoryEntries(runs)})
}

func toHistoryEntries(runs []storage.ScrapeRecord) []HistoryEntry {
	entries := make([]HistoryEntry, len(runs))
	for i, run := range runs {
		entries[i] = HistoryEntry{
			ScrapeID:       run.ID,
			Status:         run.Status,
			PagesRequested: run.PagesRequested,
			PagesScraped:   run.PagesScraped,
			TotalChunks:    run.TotalChunks,
			Failed:         run.Failed,
			StartedAt:      run.StartedAt,
			FinishedAt:     run.FinishedAt,
		}
	}
	return entries
}

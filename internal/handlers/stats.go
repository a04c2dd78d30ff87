package handlers

import (
	"net/http"

	"notion-intel/internal/service"
)

// StatsHandler reports corpus statistics.
type StatsHandler struct {
	scrapeService service.ScrapeService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(scrapeService service.ScrapeService) *StatsHandler {
	return &StatsHandler{scrapeService: scrapeService}
}

// ServeHTTP handles GET /api/stats.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := h.scrapeService.Stats(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to compute stats")
		return
	}

	writeJSON(ctx, w, http.StatusOK, stats)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"notion-intel/internal/contextutil"
	"notion-intel/internal/service"
)

// PageHandler scrapes a single page and returns its record.
type PageHandler struct {
	scrapeService service.ScrapeService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(scrapeService service.ScrapeService) *PageHandler {
	return &PageHandler{scrapeService: scrapeService}
}

// ServeHTTP handles GET /api/pages/{pageID}. With ?embed=true the page is also indexed.
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	embed := false
	if raw := r.URL.Query().Get("embed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "embed must be a boolean")
			return
		}
		embed = v
	}

	rec, err := h.scrapeService.Page(ctx, service.PageRequest{
		PageID: chi.URLParam(r, "pageID"),
		Embed:  embed,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to scrape page")
		return
	}

	writeJSON(ctx, w, http.StatusOK, rec)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"notion-intel/internal/contextutil"
	"notion-intel/internal/service"
)

// ScrapeHandler handles HTTP requests for multi-document scrapes.
type ScrapeHandler struct {
	scrapeService service.ScrapeService
}

// NewScrapeHandler creates a new ScrapeHandler.
func NewScrapeHandler(scrapeService service.ScrapeService) *ScrapeHandler {
	return &ScrapeHandler{scrapeService: scrapeService}
}

// ScrapeRequest represents the HTTP request payload for a scrape.
// Omitted numeric fields use the server defaults.
type ScrapeRequest struct {
	PageIDs             []string `json:"page_ids"`
	DatabaseID          string   `json:"database_id"`
	WorkspaceRootPageID string   `json:"workspace_root_page_id"`
	MaxDepth            *int     `json:"max_depth"`
	ChunkSize           *int     `json:"chunk_size"`
	ChunkOverlap        *int     `json:"chunk_overlap"`
	GenerateEmbeddings  *bool    `json:"generate_embeddings"`
}

// ServeHTTP handles POST /api/scrape.
func (h *ScrapeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ScrapeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.scrapeService.Scrape(ctx, service.ScrapeRequest{
		PageIDs:             req.PageIDs,
		DatabaseID:          req.DatabaseID,
		WorkspaceRootPageID: req.WorkspaceRootPageID,
		MaxDepth:            req.MaxDepth,
		ChunkSize:           req.ChunkSize,
		ChunkOverlap:        req.ChunkOverlap,
		GenerateEmbeddings:  req.GenerateEmbeddings,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to scrape")
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"notion-intel/internal/contextutil"
	"notion-intel/internal/search"
)

// SearchHandler handles semantic search over stored chunks.
type SearchHandler struct {
	engine search.Engine
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(engine search.Engine) *SearchHandler {
	return &SearchHandler{engine: engine}
}

// SearchResponse represents the HTTP response payload for a search.
type SearchResponse struct {
	Query   string       `json:"query"`
	Results []search.Hit `json:"results"`
}

// ServeHTTP handles GET /api/search?q=&k=&document_id=.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	k := 0
	if raw := q.Get("k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > search.MaxK {
			writeError(w, http.StatusBadRequest, "k must be an integer between 1 and "+strconv.Itoa(search.MaxK))
			return
		}
		k = v
	}

	hits, err := h.engine.Search(ctx, search.Request{
		Query:      query,
		K:          k,
		DocumentID: strings.TrimSpace(q.Get("document_id")),
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to search")
		return
	}
	if hits == nil {
		hits = []search.Hit{}
	}

	writeJSON(ctx, w, http.StatusOK, SearchResponse{Query: query, Results: hits})
}

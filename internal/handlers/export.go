package handlers

import (
	"encoding/json"
	"net/http"

	"notion-intel/internal/contextutil"
	"notion-intel/internal/indexer"
	"notion-intel/internal/service"
)

// ExportHandler streams every stored document and its chunks as
// newline-delimited JSON, one document per line.
type ExportHandler struct {
	scrapeService service.ScrapeService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(scrapeService service.ScrapeService) *ExportHandler {
	return &ExportHandler{scrapeService: scrapeService}
}

// ServeHTTP handles GET /api/export.
//
// A failure before the first document is reported with an error status. After
// that the status is already sent, so the stream just ends early.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	rc := http.NewResponseController(w)
	enc := json.NewEncoder(w)
	written := 0

	err := h.scrapeService.Export(ctx, func(doc indexer.ExportDocument) error {
		if written == 0 {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusOK)
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
		written++
		// Not every ResponseWriter can flush; the data still goes out at the end.
		_ = rc.Flush()
		return nil
	})

	switch {
	case err != nil && written == 0:
		handleServiceError(ctx, w, err, "Failed to export")
	case err != nil:
		logger.ErrorContext(ctx, "export interrupted", "documents", written, "error", err)
	case written == 0:
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)
	default:
		logger.InfoContext(ctx, "export completed", "documents", written)
	}
}

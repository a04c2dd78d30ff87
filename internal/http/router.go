package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notion-intel/internal/handlers"
	"notion-intel/internal/search"
	"notion-intel/internal/service"
	"notion-intel/internal/vectorstore"
)

// scrapeTimeout bounds a single request; multi-document scrapes can take minutes.
const scrapeTimeout = 10 * time.Minute

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ScrapeService     service.ScrapeService
	SearchEngine      search.Engine
	VectorStore       vectorstore.VectorStore
	CollectionName    string
	EmbeddingsEnabled bool
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(middleware.Timeout(scrapeTimeout))

	scrapeHandler := handlers.NewScrapeHandler(deps.ScrapeService)
	pageHandler := handlers.NewPageHandler(deps.ScrapeService)
	previewHandler := handlers.NewPreviewHandler(deps.ScrapeService)
	historyHandler := handlers.NewHistoryHandler(deps.ScrapeService)
	statsHandler := handlers.NewStatsHandler(deps.ScrapeService)
	exportHandler := handlers.NewExportHandler(deps.ScrapeService)
	searchHandler := handlers.NewSearchHandler(deps.SearchEngine)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.CollectionName, deps.EmbeddingsEnabled)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/scrape", scrapeHandler)
		r.Method(http.MethodGet, "/pages/{pageID}", pageHandler)
		r.Method(http.MethodGet, "/pages/{pageID}/preview", previewHandler)
		r.Method(http.MethodGet, "/search", searchHandler)
		r.Method(http.MethodGet, "/history", historyHandler)
		r.Method(http.MethodGet, "/stats", statsHandler)
		r.Method(http.MethodGet, "/export", exportHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}

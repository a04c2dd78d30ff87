package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_scraper.go -package=mocks notion-intel/internal/service Scraper
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_scrape_service.go -package=mocks -mock_names=ScrapeService=MockScrapeService notion-intel/internal/service ScrapeService

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"notion-intel/internal/config"
	"notion-intel/internal/contextutil"
	"notion-intel/internal/document"
	"notion-intel/internal/indexer"
	"notion-intel/internal/notion"
	"notion-intel/internal/storage"
)

// MaxHistoryLimit caps how many scrape runs History returns.
const MaxHistoryLimit = 500

// Scraper is the indexing pipeline as seen from the service layer.
type Scraper interface {
	ScrapeAll(ctx context.Context, req indexer.Request) (*indexer.ScrapeResult, error)
	ScrapePage(ctx context.Context, pageID string, opts indexer.Options) (*document.Record, error)
	Index(ctx context.Context, rec *document.Record, embed bool) (indexer.IndexResult, error)
	History(ctx context.Context, limit int) ([]storage.ScrapeRecord, error)
	Stats(ctx context.Context) (*indexer.CorpusStats, error)
	Export(ctx context.Context, fn func(indexer.ExportDocument) error) error
}

// Defaults are the scrape parameters used when a request leaves them unset.
type Defaults struct {
	MaxDepth     int
	ChunkSize    int
	ChunkOverlap int
}

// ScrapeRequest represents a scrape request in the domain layer.
// Nil overrides fall back to Defaults; GenerateEmbeddings defaults to true.
type ScrapeRequest struct {
	PageIDs             []string
	DatabaseID          string
	WorkspaceRootPageID string
	MaxDepth            *int
	ChunkSize           *int
	ChunkOverlap        *int
	GenerateEmbeddings  *bool
}

// PageRequest asks for a single page. With Embed set the page is also indexed.
type PageRequest struct {
	PageID string
	Embed  bool
}

// ScrapeService provides scraping, history and corpus statistics.
type ScrapeService interface {
	// Scrape runs a multi-document scrape and indexes the results.
	Scrape(ctx context.Context, req ScrapeRequest) (*indexer.ScrapeResult, error)
	// Page scrapes one page.
	Page(ctx context.Context, req PageRequest) (*document.Record, error)
	// History returns recorded scrape runs, newest first.
	History(ctx context.Context, limit int) ([]storage.ScrapeRecord, error)
	// Stats summarizes the stored corpus.
	Stats(ctx context.Context) (*indexer.CorpusStats, error)
	// Export streams every stored document with its chunks to fn.
	Export(ctx context.Context, fn func(indexer.ExportDocument) error) error
}

type scrapeService struct {
	scraper  Scraper
	defaults Defaults
}

// NewScrapeService creates a new ScrapeService.
func NewScrapeService(scraper Scraper, defaults Defaults) ScrapeService {
	return &scrapeService{
		scraper:  scraper,
		defaults: defaults,
	}
}

// ValidateScrapeRequest checks req against the configured bounds and resolves
// it into a pipeline request.
func ValidateScrapeRequest(req ScrapeRequest, defaults Defaults) (indexer.Request, error) {
	var pageIDs []string
	for _, id := range req.PageIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return indexer.Request{}, &ValidationError{Field: "page_ids", Message: "must not contain empty ids"}
		}
		pageIDs = append(pageIDs, id)
	}

	databaseID := strings.TrimSpace(req.DatabaseID)
	rootID := strings.TrimSpace(req.WorkspaceRootPageID)
	if len(pageIDs) == 0 && databaseID == "" && rootID == "" {
		return indexer.Request{}, &ValidationError{
			Field:   "page_ids",
			Message: "provide at least one of page_ids, database_id or workspace_root_page_id",
		}
	}

	opts := indexer.Options{
		MaxDepth:     defaults.MaxDepth,
		ChunkSize:    defaults.ChunkSize,
		ChunkOverlap: defaults.ChunkOverlap,
		Embed:        true,
	}
	if req.MaxDepth != nil {
		opts.MaxDepth = *req.MaxDepth
	}
	if req.ChunkSize != nil {
		opts.ChunkSize = *req.ChunkSize
	}
	if req.ChunkOverlap != nil {
		opts.ChunkOverlap = *req.ChunkOverlap
	}
	if req.GenerateEmbeddings != nil {
		opts.Embed = *req.GenerateEmbeddings
	}

	if err := checkRange("max_depth", opts.MaxDepth, config.MinMaxDepth, config.MaxMaxDepth); err != nil {
		return indexer.Request{}, err
	}
	if err := checkRange("chunk_size", opts.ChunkSize, config.MinChunkSize, config.MaxChunkSize); err != nil {
		return indexer.Request{}, err
	}
	if err := checkRange("chunk_overlap", opts.ChunkOverlap, config.MinChunkOverlap, config.MaxChunkOverlap); err != nil {
		return indexer.Request{}, err
	}

	return indexer.Request{
		PageIDs:             pageIDs,
		DatabaseID:          databaseID,
		WorkspaceRootPageID: rootID,
		Options:             opts,
	}, nil
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d", lo, hi)}
	}
	return nil
}

func (s *scrapeService) Scrape(ctx context.Context, req ScrapeRequest) (*indexer.ScrapeResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	resolved, err := ValidateScrapeRequest(req, s.defaults)
	if err != nil {
		logger.WarnContext(ctx, "invalid scrape request", "error", err)
		return nil, err
	}

	result, err := s.scraper.ScrapeAll(ctx, resolved)
	if err != nil {
		logger.ErrorContext(ctx, "scrape failed", "error", err)
		return nil, WrapError(err, "failed to scrape")
	}
	return result, nil
}

func (s *scrapeService) Page(ctx context.Context, req PageRequest) (*document.Record, error) {
	logger := contextutil.LoggerFromContext(ctx)

	pageID := strings.TrimSpace(req.PageID)
	if pageID == "" {
		return nil, &ValidationError{Field: "page_id", Message: "cannot be empty"}
	}

	opts := indexer.Options{
		MaxDepth:     s.defaults.MaxDepth,
		ChunkSize:    s.defaults.ChunkSize,
		ChunkOverlap: s.defaults.ChunkOverlap,
		Embed:        req.Embed,
	}
	rec, err := s.scraper.ScrapePage(ctx, pageID, opts)
	if err != nil {
		logger.ErrorContext(ctx, "failed to scrape page", "page_id", pageID, "error", err)
		return nil, classifyRemote(err)
	}

	if req.Embed {
		if _, err := s.scraper.Index(ctx, rec, true); err != nil {
			logger.ErrorContext(ctx, "failed to index page", "page_id", pageID, "error", err)
			return nil, WrapError(err, "failed to index page")
		}
	}
	return rec, nil
}

func (s *scrapeService) History(ctx context.Context, limit int) ([]storage.ScrapeRecord, error) {
	if limit < 0 || limit > MaxHistoryLimit {
		return nil, &ValidationError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", MaxHistoryLimit)}
	}
	runs, err := s.scraper.History(ctx, limit)
	if err != nil {
		return nil, WrapError(err, "failed to list scrape history")
	}
	return runs, nil
}

func (s *scrapeService) Stats(ctx context.Context) (*indexer.CorpusStats, error) {
	stats, err := s.scraper.Stats(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to compute stats")
	}
	return stats, nil
}

func (s *scrapeService) Export(ctx context.Context, fn func(indexer.ExportDocument) error) error {
	if err := s.scraper.Export(ctx, fn); err != nil {
		return WrapError(err, "failed to export")
	}
	return nil
}

// classifyRemote maps Notion failures onto the service sentinels.
// ScrapePage only talks to Notion, so anything but a 404 or cancellation is an upstream failure.
func classifyRemote(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var statusErr *notion.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrExternalService, err)
}

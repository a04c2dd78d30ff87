package indexer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"notion-intel/internal/contextutil"
	"notion-intel/internal/document"
	"notion-intel/internal/storage"
)

// Scrape run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusPartial   = "partial"
	StatusFailed    = "failed"
)

// Request selects the documents of one scrape run. Targets are scraped in the
// order page ids, database pages, workspace root.
type Request struct {
	PageIDs             []string
	DatabaseID          string
	WorkspaceRootPageID string
	Options
}

// StorageSummary describes where a run's chunks went.
type StorageSummary struct {
	Backend      string `json:"backend"`
	ChunksStored int    `json:"chunks_stored"` // vectors written
	Namespace    string `json:"namespace"`
}

// DocumentError is a per-document failure within a run.
type DocumentError struct {
	DocumentID string `json:"document_id"`
	Error      string `json:"error"`
}

// ScrapeResult is the outcome of ScrapeAll.
type ScrapeResult struct {
	ScrapeID       string             `json:"scrape_id"`
	Status         string             `json:"status"`
	PagesRequested int                `json:"pages_requested"`
	PagesScraped   int                `json:"pages_scraped"`
	TotalChunks    int                `json:"total_chunks"`
	Failed         int                `json:"failed"`
	Documents      []*document.Record `json:"documents"`
	VectorStorage  StorageSummary     `json:"vector_storage"`
	Errors         []DocumentError    `json:"errors,omitempty"`
	Timestamp      time.Time          `json:"timestamp"`
}

type outcome struct {
	rec     *document.Record
	vectors int
	err     error
}

// ScrapeAll scrapes and indexes every requested document with at most
// p.workers documents in flight. A failed document is logged and counted;
// it never affects the others. The run is recorded in scrape history.
func (p *Pipeline) ScrapeAll(ctx context.Context, req Request) (*ScrapeResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	started := p.now().UTC()
	run := &storage.ScrapeRecord{
		ID:        started.Format("scrape_20060102_150405"),
		Status:    StatusRunning,
		StartedAt: started,
	}

	result := &ScrapeResult{
		ScrapeID:  run.ID,
		Documents: []*document.Record{},
		VectorStorage: StorageSummary{
			Backend:   p.vectorStore.Backend(),
			Namespace: p.collection,
		},
	}

	targets := append([]string{}, req.PageIDs...)
	if req.DatabaseID != "" {
		ids, err := p.DatabasePageIDs(ctx, req.DatabaseID)
		if err != nil {
			logger.ErrorContext(ctx, "failed to query database", "database_id", req.DatabaseID, "error", err)
			result.Failed++
			result.Errors = append(result.Errors, DocumentError{DocumentID: req.DatabaseID, Error: err.Error()})
		}
		targets = append(targets, ids...)
	}
	if req.WorkspaceRootPageID != "" {
		targets = append(targets, req.WorkspaceRootPageID)
	}
	// A page requested twice, directly or through the database, is scraped once.
	if unique := uniqueIDs(targets); len(unique) != len(targets) {
		logger.DebugContext(ctx, "dropped duplicate targets", "requested", len(targets), "unique", len(unique))
		targets = unique
	}
	result.PagesRequested = len(targets)
	run.PagesRequested = len(targets)

	if err := p.scrapes.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record scrape: %w", err)
	}

	logger.InfoContext(ctx, "scrape started", "scrape_id", run.ID, "targets", len(targets), "workers", p.workers)

	outcomes := make([]outcome, len(targets))
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, pageID := range targets {
		g.Go(func() error {
			rec, err := p.ScrapePage(ctx, pageID, req.Options)
			if err != nil {
				outcomes[i] = outcome{err: err}
				return nil
			}
			res, err := p.Index(ctx, rec, req.Embed)
			outcomes[i] = outcome{rec: rec, vectors: res.VectorsStored, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, o := range outcomes {
		if o.err != nil {
			logger.ErrorContext(ctx, "failed to scrape document", "page_id", targets[i], "error", o.err)
			result.Failed++
			result.Errors = append(result.Errors, DocumentError{DocumentID: targets[i], Error: o.err.Error()})
			continue
		}
		result.Documents = append(result.Documents, o.rec)
		result.PagesScraped++
		result.TotalChunks += len(o.rec.Chunks)
		result.VectorStorage.ChunksStored += o.vectors
	}

	switch {
	case result.Failed == 0:
		result.Status = StatusCompleted
	case result.PagesScraped > 0:
		result.Status = StatusPartial
	default:
		result.Status = StatusFailed
	}

	finished := p.now().UTC()
	result.Timestamp = finished
	run.Status = result.Status
	run.PagesScraped = result.PagesScraped
	run.TotalChunks = result.TotalChunks
	run.Failed = result.Failed
	run.FinishedAt = &finished

	// The run is finished even if the caller went away.
	if err := p.scrapes.Finish(context.WithoutCancel(ctx), run); err != nil {
		logger.ErrorContext(ctx, "failed to record scrape result", "scrape_id", run.ID, "error", err)
	}

	logger.InfoContext(ctx, "scrape finished",
		"scrape_id", run.ID,
		"status", result.Status,
		"pages_scraped", result.PagesScraped,
		"failed", result.Failed,
		"total_chunks", result.TotalChunks,
		"duration", finished.Sub(started),
	)
	return result, nil
}

// DatabasePageIDs pages through a database query and returns the ids of its pages.
func (p *Pipeline) DatabasePageIDs(ctx context.Context, databaseID string) ([]string, error) {
	var ids []string
	cursor := ""
	for {
		page, err := p.notion.QueryDatabase(ctx, databaseID, cursor)
		if err != nil {
			return ids, err
		}
		for _, result := range page.Results {
			ids = append(ids, result.ID)
		}
		if !page.HasMore {
			return ids, nil
		}
		cursor = page.Cursor()
		if cursor == "" {
			return ids, fmt.Errorf("database %s: has_more without next_cursor", databaseID)
		}
	}
}

// uniqueIDs returns ids without repeats, keeping the first occurrence of each.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// History returns up to limit recorded runs, newest first.
func (p *Pipeline) History(ctx context.Context, limit int) ([]storage.ScrapeRecord, error) {
	return p.scrapes.List(ctx, limit)
}

package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_scrape_store.go -package=mocks notion-intel/internal/storage ScrapeStore

import (
	"context"
	"database/sql"
	"fmt"
)

// ScrapeStore records scrape runs.
type ScrapeStore interface {
	// Create stores a new run, typically with status "running".
	Create(ctx context.Context, s *ScrapeRecord) error
	// Finish stores the final counts, status and finish time of a run.
	Finish(ctx context.Context, s *ScrapeRecord) error
	// List returns up to limit runs, newest first.
	List(ctx context.Context, limit int) ([]ScrapeRecord, error)
}

// ScrapeRepo implements ScrapeStore on SQLite.
type ScrapeRepo struct {
	db *sql.DB
}

// NewScrapeRepo creates a new ScrapeRepo.
func NewScrapeRepo(db *sql.DB) *ScrapeRepo {
	return &ScrapeRepo{db: db}
}

func (r *ScrapeRepo) Create(ctx context.Context, s *ScrapeRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO scrapes (id, status, pages_requested, pages_scraped, total_chunks, failed, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Status, s.PagesRequested, s.PagesScraped, s.TotalChunks, s.Failed, formatTime(s.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert scrape: %w", err)
	}
	return nil
}

func (r *ScrapeRepo) Finish(ctx context.Context, s *ScrapeRecord) error {
	var finished any
	if s.FinishedAt != nil {
		finished = formatTime(*s.FinishedAt)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE scrapes SET status = ?, pages_requested = ?, pages_scraped = ?, total_chunks = ?, failed = ?, finished_at = ?
		 WHERE id = ?`,
		s.Status, s.PagesRequested, s.PagesScraped, s.TotalChunks, s.Failed, finished, s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update scrape: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ScrapeRepo) List(ctx context.Context, limit int) ([]ScrapeRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, status, pages_requested, pages_scraped, total_chunks, failed, started_at, finished_at
		 FROM scrapes ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scrapes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	out := []ScrapeRecord{}
	for rows.Next() {
		var (
			s        ScrapeRecord
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Status, &s.PagesRequested, &s.PagesScraped, &s.TotalChunks, &s.Failed, &started, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan scrape: %w", err)
		}
		if s.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if finished.Valid {
			t, err := parseTime(finished.String)
			if err != nil {
				return nil, err
			}
			s.FinishedAt = &t
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

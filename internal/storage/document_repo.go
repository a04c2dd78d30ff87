package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks notion-intel/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Upsert inserts a document or replaces the stored summary of an existing one.
	Upsert(ctx context.Context, doc *DocumentRecord) error
	// GetByID returns ErrNotFound if the document was never scraped.
	GetByID(ctx context.Context, id string) (*DocumentRecord, error)
	// List returns all documents, most recently captured first.
	List(ctx context.Context) ([]DocumentRecord, error)
}

// DocumentRepo implements DocumentStore on SQLite.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Upsert inserts a document or replaces the stored summary of an existing one.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *DocumentRecord) error {
	if doc.ID == "" {
		return fmt.Errorf("document id is required")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, url, last_edited_time, checksum, captured_at, block_count, chunk_count, rag_ready)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 title = excluded.title, url = excluded.url, last_edited_time = excluded.last_edited_time,
		 checksum = excluded.checksum, captured_at = excluded.captured_at, block_count = excluded.block_count,
		 chunk_count = excluded.chunk_count, rag_ready = excluded.rag_ready`,
		doc.ID, doc.Title, doc.URL, doc.LastEditedTime, doc.Checksum, formatTime(doc.CapturedAt),
		doc.BlockCount, doc.ChunkCount, doc.RAGReady,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// GetByID returns ErrNotFound if the document was never scraped.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, url, last_edited_time, checksum, captured_at, block_count, chunk_count, rag_ready
		 FROM documents WHERE id = ?`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return doc, nil
}

// List returns all documents, most recently captured first.
func (r *DocumentRepo) List(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, url, last_edited_time, checksum, captured_at, block_count, chunk_count, rag_ready
		 FROM documents ORDER BY captured_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	docs := []DocumentRecord{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return docs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*DocumentRecord, error) {
	var (
		doc        DocumentRecord
		url        sql.NullString
		lastEdited sql.NullString
		capturedAt string
	)
	if err := row.Scan(&doc.ID, &doc.Title, &url, &lastEdited, &doc.Checksum, &capturedAt,
		&doc.BlockCount, &doc.ChunkCount, &doc.RAGReady); err != nil {
		return nil, err
	}
	doc.URL = url.String
	doc.LastEditedTime = lastEdited.String

	var err error
	if doc.CapturedAt, err = parseTime(capturedAt); err != nil {
		return nil, err
	}
	return &doc, nil
}

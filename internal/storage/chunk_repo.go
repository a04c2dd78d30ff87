package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks notion-intel/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ChunkStore defines the interface for chunk storage operations.
type ChunkStore interface {
	// ReplaceForDocument atomically swaps a document's stored chunks for chunks.
	ReplaceForDocument(ctx context.Context, documentID string, chunks []ChunkRecord) error
	// ListByDocument returns a document's chunks ordered by ordinal.
	ListByDocument(ctx context.Context, documentID string) ([]ChunkRecord, error)
	// GetByPointID returns ErrNotFound if no chunk has the point id.
	GetByPointID(ctx context.Context, pointID string) (*ChunkRecord, error)
	// ListLengthEstimates returns the length estimate of every stored chunk.
	ListLengthEstimates(ctx context.Context) ([]int, error)
}

// ChunkRepo implements ChunkStore on SQLite.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

const chunkColumns = "point_id, id, document_id, ordinal, content, char_start, char_end, length_estimate, block_ids, embedded"

// ReplaceForDocument deletes every chunk of documentID and inserts chunks in one transaction.
// The document row must already exist.
func (r *ChunkRepo) ReplaceForDocument(ctx context.Context, documentID string, chunks []ChunkRecord) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("failed to delete chunks by document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO chunks ("+chunkColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i := range chunks {
		c := &chunks[i]
		if c.DocumentID != documentID {
			return fmt.Errorf("chunk %s belongs to document %s, not %s", c.ID, c.DocumentID, documentID)
		}
		blockIDs, mErr := json.Marshal(c.BlockIDs)
		if mErr != nil {
			return fmt.Errorf("failed to encode block ids: %w", mErr)
		}
		if _, err = stmt.ExecContext(ctx, c.PointID, c.ID, c.DocumentID, c.Ordinal, c.Content,
			c.CharStart, c.CharEnd, c.LengthEstimate, string(blockIDs), c.Embedded); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunks: %w", err)
	}
	return nil
}

// ListByDocument returns a document's chunks ordered by ordinal.
// Returns an empty slice if the document has no chunks.
func (r *ChunkRepo) ListByDocument(ctx context.Context, documentID string) ([]ChunkRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+chunkColumns+" FROM chunks WHERE document_id = ? ORDER BY ordinal", documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	chunks := []ChunkRecord{}
	for rows.Next() {
		c, err := scanChunk(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return chunks, nil
}

// GetByPointID returns ErrNotFound if no chunk has the point id.
func (r *ChunkRepo) GetByPointID(ctx context.Context, pointID string) (*ChunkRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+chunkColumns+" FROM chunks WHERE point_id = ?", pointID)
	c, err := scanChunk(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk: %w", err)
	}
	return c, nil
}

// ListLengthEstimates returns the length estimate of every stored chunk.
func (r *ChunkRepo) ListLengthEstimates(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT length_estimate FROM chunks")
	if err != nil {
		return nil, fmt.Errorf("failed to query length estimates: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan length estimate: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

func scanChunk(row rowScanner) (*ChunkRecord, error) {
	var (
		c        ChunkRecord
		blockIDs string
	)
	if err := row.Scan(&c.PointID, &c.ID, &c.DocumentID, &c.Ordinal, &c.Content,
		&c.CharStart, &c.CharEnd, &c.LengthEstimate, &blockIDs, &c.Embedded); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(blockIDs), &c.BlockIDs); err != nil {
		return nil, fmt.Errorf("failed to decode block ids: %w", err)
	}
	return &c, nil
}

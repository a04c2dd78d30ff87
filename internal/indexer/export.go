package indexer

import (
	"context"
	"fmt"
	"time"

	"notion-intel/internal/storage"
)

// ExportDocument is one stored document with its chunks.
type ExportDocument struct {
	DocumentID     string        `json:"document_id"`
	Title          string        `json:"title"`
	URL            string        `json:"url"`
	LastEditedTime string        `json:"last_edited_time"`
	Checksum       string        `json:"checksum"`
	CapturedAt     time.Time     `json:"capture_timestamp"`
	RAGReady       bool          `json:"rag_ready"`
	Chunks         []ExportChunk `json:"chunks"`
}

// ExportChunk is one stored chunk. PointID is the id of its vector, if any.
type ExportChunk struct {
	PointID        string   `json:"point_id"`
	ChunkID        string   `json:"chunk_id"`
	Ordinal        int      `json:"ordinal"`
	Content        string   `json:"content"`
	CharStart      int      `json:"char_start"`
	CharEnd        int      `json:"char_end"`
	LengthEstimate int      `json:"length_estimate"`
	BlockIDs       []string `json:"block_ids"`
	Embedded       bool     `json:"embedded"`
}

// Export calls fn once per stored document, newest capture first, with its
// chunks in ordinal order. It stops at the first error from fn or from storage.
func (p *Pipeline) Export(ctx context.Context, fn func(ExportDocument) error) error {
	docs, err := p.documents.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		chunks, err := p.chunks.ListByDocument(ctx, d.ID)
		if err != nil {
			return fmt.Errorf("failed to list chunks of %s: %w", d.ID, err)
		}

		doc := ExportDocument{
			DocumentID:     d.ID,
			Title:          d.Title,
			URL:            d.URL,
			LastEditedTime: d.LastEditedTime,
			Checksum:       d.Checksum,
			CapturedAt:     d.CapturedAt,
			RAGReady:       d.RAGReady,
			Chunks:         toExportChunks(chunks),
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}

func toExportChunks(chunks []storage.ChunkRecord) []ExportChunk {
	out := make([]ExportChunk, len(chunks))
	for i, c := range chunks {
		out[i] = ExportChunk{
			PointID:        c.PointID,
			ChunkID:        c.ID,
			Ordinal:        c.Ordinal,
			Content:        c.Content,
			CharStart:      c.CharStart,
			CharEnd:        c.CharEnd,
			LengthEstimate: c.LengthEstimate,
			BlockIDs:       c.BlockIDs,
			Embedded:       c.Embedded,
		}
	}
	return out
}

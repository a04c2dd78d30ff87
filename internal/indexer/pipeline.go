package indexer

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"notion-intel/internal/chunker"
	"notion-intel/internal/contextutil"
	"notion-intel/internal/document"
	"notion-intel/internal/notion"
	"notion-intel/internal/provenance"
	"notion-intel/internal/storage"
	"notion-intel/internal/vectorstore"
	"notion-intel/internal/walker"
)

// NotionClient is the part of the Notion API the pipeline needs.
type NotionClient interface {
	walker.ChildLister
	GetPage(ctx context.Context, pageID string) (*notion.Page, error)
	QueryDatabase(ctx context.Context, databaseID, cursor string) (*notion.QueryPage, error)
}

// Embedder turns chunk text into vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Options are the per-scrape walk and chunking parameters.
type Options struct {
	MaxDepth     int
	ChunkSize    int
	ChunkOverlap int
	// Embed requests vectors for the chunks. It is ignored when no embedder is configured.
	Embed bool
}

// IndexResult describes what Index persisted for one document.
type IndexResult struct {
	ChunksStored  int // chunk rows written to sqlite
	VectorsStored int
}

// Pipeline scrapes Notion documents into chunk records and persists them
// to SQLite and the vector store.
type Pipeline struct {
	notion      NotionClient
	walker      *walker.Walker
	stamper     *provenance.Stamper
	embedder    Embedder
	documents   storage.DocumentStore
	chunks      storage.ChunkStore
	scrapes     storage.ScrapeStore
	vectorStore vectorstore.VectorStore
	collection  string
	workers     int
	now         func() time.Time
}

// NewPipeline creates a new scrape pipeline. embedder may be nil, in which case
// chunks are stored without vectors. workers bounds concurrent document scrapes.
func NewPipeline(
	client NotionClient,
	embedder Embedder,
	documents storage.DocumentStore,
	chunks storage.ChunkStore,
	scrapes storage.ScrapeStore,
	vectorStore vectorstore.VectorStore,
	collection string,
	workers int,
) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		notion:      client,
		walker:      walker.New(client),
		stamper:     provenance.NewStamper(),
		embedder:    embedder,
		documents:   documents,
		chunks:      chunks,
		scrapes:     scrapes,
		vectorStore: vectorStore,
		collection:  collection,
		workers:     workers,
		now:         time.Now,
	}
}

// EmbeddingsEnabled reports whether Index can produce vectors.
func (p *Pipeline) EmbeddingsEnabled() bool {
	return p.embedder != nil
}

// Backend names the vector store chunks are written to.
func (p *Pipeline) Backend() string {
	return p.vectorStore.Backend()
}

// ScrapePage fetches one page, walks its block tree and chunks the flattened text.
// Nothing is persisted.
func (p *Pipeline) ScrapePage(ctx context.Context, pageID string, opts Options) (*document.Record, error) {
	logger := contextutil.LoggerFromContext(ctx)

	page, err := p.notion.GetPage(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get page %s: %w", pageID, err)
	}

	meta := document.Page{
		ID:             page.ID,
		Title:          notion.PageTitle(page),
		URL:            page.URL,
		CreatedTime:    page.CreatedTime,
		LastEditedTime: page.LastEditedTime,
		ParentType:     page.Parent.Type,
		ParentID:       page.Parent.ID(),
	}
	if meta.ID == "" {
		meta.ID = pageID
	}

	blocks, err := p.walker.Walk(ctx, pageID, opts.MaxDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to walk page %s: %w", pageID, err)
	}

	chunks := chunker.New(opts.ChunkSize, opts.ChunkOverlap).Chunk(blocks, meta.ID, meta.Title)

	rec := &document.Record{
		Page:       meta,
		Blocks:     blocks,
		Chunks:     chunks,
		Provenance: p.stamper.Stamp(meta, blocks),
		Stats:      computeStats(blocks, chunks),
		RAGReady:   ragReady(chunks),
	}

	logger.InfoContext(ctx, "scraped page",
		"page_id", meta.ID,
		"title", meta.Title,
		"blocks", rec.Stats.BlockCount,
		"chunks", rec.Stats.ChunkCount,
		"max_depth", rec.Stats.MaxDepth,
	)
	return rec, nil
}

// Index persists a scraped record, replacing whatever was stored for the document.
// When embed is set and an embedder is configured, chunk vectors are generated and
// upserted. Embedding failures are logged and the chunks are stored without vectors.
func (p *Pipeline) Index(ctx context.Context, rec *document.Record, embed bool) (IndexResult, error) {
	logger := contextutil.LoggerFromContext(ctx)
	docID := rec.Page.ID

	embedded := false
	switch {
	case !embed:
	case p.embedder == nil:
		logger.DebugContext(ctx, "embeddings disabled, storing chunks without vectors", "document_id", docID)
	case len(rec.Chunks) > 0:
		if err := p.embed(ctx, rec.Chunks); err != nil {
			logger.WarnContext(ctx, "failed to generate embeddings, storing chunks without vectors",
				"document_id", docID, "error", err)
		} else {
			embedded = true
		}
	}
	rec.RAGReady = ragReady(rec.Chunks)

	// Point ids are derived from (document, ordinal), so stale vectors must go
	// before the new chunk set is written.
	if err := p.vectorStore.DeleteByDocument(ctx, p.collection, docID); err != nil {
		return IndexResult{}, fmt.Errorf("failed to delete old vectors: %w", err)
	}

	var vectors int
	if embedded {
		points := make([]vectorstore.Point, len(rec.Chunks))
		for i, c := range rec.Chunks {
			points[i] = vectorstore.Point{
				ID:  vectorstore.PointID(docID, c.Ordinal),
				Vec: c.Embedding,
				Meta: map[string]any{
					vectorstore.KeyChunkID:       c.ID,
					vectorstore.KeyDocumentID:    docID,
					vectorstore.KeyDocumentTitle: c.DocumentTitle,
					vectorstore.KeyOrdinal:       c.Ordinal,
					vectorstore.KeyContent:       c.Content,
				},
			}
		}
		if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
			return IndexResult{}, fmt.Errorf("failed to upsert vectors: %w", err)
		}
		vectors = len(points)
	}

	if err := p.documents.Upsert(ctx, &storage.DocumentRecord{
		ID:             docID,
		Title:          rec.Page.Title,
		URL:            rec.Page.URL,
		LastEditedTime: rec.Page.LastEditedTime,
		Checksum:       rec.Provenance.Checksum,
		CapturedAt:     rec.Provenance.CapturedAt,
		BlockCount:     rec.Stats.BlockCount,
		ChunkCount:     rec.Stats.ChunkCount,
		RAGReady:       rec.RAGReady,
	}); err != nil {
		return IndexResult{}, fmt.Errorf("failed to upsert document: %w", err)
	}

	records := make([]storage.ChunkRecord, len(rec.Chunks))
	for i, c := range rec.Chunks {
		records[i] = storage.ChunkRecord{
			PointID:        vectorstore.PointID(docID, c.Ordinal),
			ID:             c.ID,
			DocumentID:     docID,
			Ordinal:        c.Ordinal,
			Content:        c.Content,
			CharStart:      c.CharStart,
			CharEnd:        c.CharEnd,
			LengthEstimate: c.LengthEstimate,
			BlockIDs:       c.BlockIDs,
			Embedded:       c.Embedding != nil,
		}
	}
	if err := p.chunks.ReplaceForDocument(ctx, docID, records); err != nil {
		return IndexResult{}, fmt.Errorf("failed to store chunks: %w", err)
	}

	logger.InfoContext(ctx, "indexed document", "document_id", docID, "chunks", len(records), "vectors", vectors)
	return IndexResult{ChunksStored: len(records), VectorsStored: vectors}, nil
}

func (p *Pipeline) embed(ctx context.Context, chunks []document.Chunk) error {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(vectors))
	}

	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}
	return nil
}

// ragReady reports whether every chunk carries an embedding.
func ragReady(chunks []document.Chunk) bool {
	for _, c := range chunks {
		if c.Embedding == nil {
			return false
		}
	}
	return true
}

func computeStats(blocks []*document.Block, chunks []document.Chunk) document.Stats {
	stats := document.Stats{
		BlockCount: document.CountBlocks(blocks),
		ChunkCount: len(chunks),
	}
	for _, c := range chunks {
		stats.TotalChars += utf8.RuneCountInString(c.Content)
	}
	document.Walk(blocks, func(_ *document.Block, depth int) {
		stats.MaxDepth = max(stats.MaxDepth, depth)
	})
	return stats
}

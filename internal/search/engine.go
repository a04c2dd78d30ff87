package search

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks notion-intel/internal/search Engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"notion-intel/internal/contextutil"
	"notion-intel/internal/storage"
	"notion-intel/internal/vectorstore"
)

// ErrEmbeddingsDisabled is returned when no embedder is configured.
var ErrEmbeddingsDisabled = errors.New("embeddings are disabled")

const (
	DefaultK = 10
	MaxK     = 50

	// candidateFactor widens the vector search so reranking has something to reorder.
	candidateFactor = 3
)

// Embedder turns text into vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Request is a semantic search over stored chunks.
type Request struct {
	Query string
	// K is the number of hits to return. Zero means DefaultK; values above MaxK are capped.
	K int
	// DocumentID restricts the search to one document when set.
	DocumentID string
}

// Hit is one ranked chunk.
type Hit struct {
	ChunkID       string   `json:"chunk_id"`
	DocumentID    string   `json:"document_id"`
	DocumentTitle string   `json:"document_title"`
	Ordinal       int      `json:"ordinal"`
	Content       string   `json:"content"`
	BlockIDs      []string `json:"block_ids"`
	CharStart     int      `json:"char_start"`
	CharEnd       int      `json:"char_end"`
	ScoreVector   float32  `json:"score_vector"`
	ScoreLexical  float32  `json:"score_lexical"`
	Score         float32  `json:"score"`
}

// Engine searches stored chunks.
type Engine interface {
	Search(ctx context.Context, req Request) ([]Hit, error)
}

type engine struct {
	embedder   Embedder
	store      vectorstore.VectorStore
	collection string
	chunks     storage.ChunkStore
}

// NewEngine creates a search Engine. A nil embedder makes every search fail with ErrEmbeddingsDisabled.
func NewEngine(embedder Embedder, store vectorstore.VectorStore, collection string, chunks storage.ChunkStore) Engine {
	return &engine{
		embedder:   embedder,
		store:      store,
		collection: collection,
		chunks:     chunks,
	}
}

func (e *engine) Search(ctx context.Context, req Request) ([]Hit, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if e.embedder == nil {
		return nil, ErrEmbeddingsDisabled
	}

	k := req.K
	if k <= 0 {
		k = DefaultK
	}
	k = min(k, MaxK)

	vectors, err := e.embedder.EmbedTexts(ctx, []string{req.Query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	var filters map[string]string
	if req.DocumentID != "" {
		filters = map[string]string{vectorstore.KeyDocumentID: req.DocumentID}
	}

	results, err := e.store.Search(ctx, e.collection, vectors[0], k*candidateFactor, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}
	logger.DebugContext(ctx, "vector search completed", "candidates", len(results), "k", k)

	hits := make([]Hit, 0, len(results))
	for _, result := range results {
		chunk, err := e.chunks.GetByPointID(ctx, result.PointID)
		if errors.Is(err, storage.ErrNotFound) {
			// Vectors can outlive their rows until the next scrape of the document.
			logger.WarnContext(ctx, "search hit has no stored chunk", "point_id", result.PointID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load chunk %s: %w", result.PointID, err)
		}

		title, _ := result.Meta[vectorstore.KeyDocumentTitle].(string)
		lexical := lexicalScore(req.Query, chunk.Content, title)
		hits = append(hits, Hit{
			ChunkID:       chunk.ID,
			DocumentID:    chunk.DocumentID,
			DocumentTitle: title,
			Ordinal:       chunk.Ordinal,
			Content:       chunk.Content,
			BlockIDs:      chunk.BlockIDs,
			CharStart:     chunk.CharStart,
			CharEnd:       chunk.CharEnd,
			ScoreVector:   result.Score,
			ScoreLexical:  lexical,
			Score:         result.Score + lexical,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > k {
		hits = hits[:k]
	}

	logger.InfoContext(ctx, "search completed", "query_length", len(req.Query), "hits", len(hits))
	return hits, nil
}

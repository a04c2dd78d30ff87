package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/philippgille/chromem-go"

	"notion-intel/internal/contextutil"
)

var errNoEmbeddingFunc = errors.New("chromem: points must carry precomputed vectors")

// ChromemStore implements VectorStore with an embedded chromem-go database.
// It is used when no Qdrant instance is available.
type ChromemStore struct {
	db *chromem.DB

	mu    sync.Mutex
	sizes map[string]int // vector size per collection, set by EnsureCollection
}

// NewChromemStore opens a chromem database. An empty path keeps everything in memory.
func NewChromemStore(path string) (*ChromemStore, error) {
	db := chromem.NewDB()
	if path != "" {
		var err error
		db, err = chromem.NewPersistentDB(path, false)
		if err != nil {
			return nil, fmt.Errorf("failed to open chromem database: %w", err)
		}
	}
	return &ChromemStore{db: db, sizes: make(map[string]int)}, nil
}

// Backend returns "chromem".
func (s *ChromemStore) Backend() string { return "chromem" }

func noEmbedding(context.Context, string) ([]float32, error) {
	return nil, errNoEmbeddingFunc
}

func (s *ChromemStore) collection(name string) (*chromem.Collection, error) {
	c := s.db.GetCollection(name, noEmbedding)
	if c == nil {
		return nil, fmt.Errorf("collection %s does not exist", name)
	}
	return c, nil
}

// EnsureCollection creates the collection if needed. Vector size is enforced on Upsert.
func (s *ChromemStore) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	if _, err := s.db.GetOrCreateCollection(collection, nil, noEmbedding); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	s.mu.Lock()
	s.sizes[collection] = vectorSize
	s.mu.Unlock()

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "collection ready", "backend", "chromem", "collection", collection, "vector_size", vectorSize)
	return nil
}

// CollectionExists reports whether the collection exists.
func (s *ChromemStore) CollectionExists(_ context.Context, collection string) (bool, error) {
	return s.db.GetCollection(collection, noEmbedding) != nil, nil
}

// Upsert adds or replaces points. The content payload becomes the document text,
// all other payload values are stored as string metadata.
func (s *ChromemStore) Upsert(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	c, err := s.collection(collection)
	if err != nil {
		return err
	}

	s.mu.Lock()
	size := s.sizes[collection]
	s.mu.Unlock()

	docs := make([]chromem.Document, 0, len(points))
	for _, p := range points {
		if size > 0 && len(p.Vec) != size {
			return fmt.Errorf("point %s has vector size %d, expected %d", p.ID, len(p.Vec), size)
		}
		doc := chromem.Document{
			ID:        p.ID,
			Embedding: p.Vec,
			Metadata:  make(map[string]string, len(p.Meta)),
		}
		for k, v := range p.Meta {
			if k == KeyContent {
				doc.Content = fmt.Sprint(v)
				continue
			}
			doc.Metadata[k] = fmt.Sprint(v)
		}
		docs = append(docs, doc)
	}

	if err := c.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	return nil
}

// Search returns up to k most similar points matching filters.
func (s *ChromemStore) Search(ctx context.Context, collection string, query []float32, k int, filters map[string]string) ([]SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	c, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	// chromem rejects nResults larger than the collection.
	n := min(k, c.Count())
	if n == 0 {
		return []SearchResult{}, nil
	}

	var where map[string]string
	for key, value := range filters {
		if value == "" {
			continue
		}
		if where == nil {
			where = make(map[string]string)
		}
		where[key] = value
	}

	found, err := c.QueryEmbedding(ctx, query, n, where, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	results := make([]SearchResult, 0, len(found))
	for _, r := range found {
		meta := make(map[string]any, len(r.Metadata)+1)
		for key, value := range r.Metadata {
			meta[key] = value
		}
		meta[KeyContent] = r.Content
		results = append(results, SearchResult{PointID: r.ID, Score: r.Similarity, Meta: meta})
	}
	return results, nil
}

// Delete removes points by their IDs.
func (s *ChromemStore) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	c, err := s.collection(collection)
	if err != nil {
		return err
	}
	if err := c.Delete(ctx, nil, nil, ids...); err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}
	return nil
}

// DeleteByDocument removes all points of a document.
func (s *ChromemStore) DeleteByDocument(ctx context.Context, collection string, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("document id is required")
	}
	c, err := s.collection(collection)
	if err != nil {
		return err
	}
	if err := c.Delete(ctx, map[string]string{KeyDocumentID: documentID}, nil); err != nil {
		return fmt.Errorf("failed to delete points of document %s: %w", documentID, err)
	}
	return nil
}

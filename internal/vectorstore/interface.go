package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks notion-intel/internal/vectorstore VectorStore

import (
	"context"
	"strconv"

	"github.com/google/uuid"
)

// Payload keys written with every chunk point.
const (
	KeyChunkID       = "chunk_id"
	KeyDocumentID    = "document_id"
	KeyDocumentTitle = "document_title"
	KeyOrdinal       = "ordinal"
	KeyContent       = "content"
)

var pointNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("notion-intel/chunks"))

// PointID returns the stable point identifier of a document's chunk.
// Chunk ids alone are not unique across documents, so the document id is part of the key.
func PointID(documentID string, ordinal int) string {
	return uuid.NewSHA1(pointNamespace, []byte(documentID+"/"+strconv.Itoa(ordinal))).String()
}

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns up to k nearest points. filters are exact matches on payload keys.
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]string) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error

	// DeleteByDocument removes every point belonging to a document.
	DeleteByDocument(ctx context.Context, collection string, documentID string) error

	// EnsureCollection creates the collection if needed and validates its vector size.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// CollectionExists reports whether the collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// Backend names the implementation, e.g. "qdrant".
	Backend() string
}

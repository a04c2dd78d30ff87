package indexer

import (
	"context"
	"fmt"
	"math"
	"sort"

	"notion-intel/internal/chunker"
)

// CorpusStats summarizes everything stored so far.
type CorpusStats struct {
	Documents         int         `json:"documents"`
	RAGReady          int         `json:"rag_ready_documents"`
	Chunks            int         `json:"chunks"`
	LengthEstimate    LengthStats `json:"length_estimate"`
	ChunkStrategy     string      `json:"chunk_strategy"`
	Backend           string      `json:"vector_backend"`
	EmbeddingsEnabled bool        `json:"embeddings_enabled"`
}

// LengthStats describes the distribution of chunk length estimates.
type LengthStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// Stats computes corpus statistics from the stored documents and chunks.
func (p *Pipeline) Stats(ctx context.Context) (*CorpusStats, error) {
	docs, err := p.documents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	lengths, err := p.chunks.ListLengthEstimates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunk lengths: %w", err)
	}

	stats := &CorpusStats{
		Documents:         len(docs),
		Chunks:            len(lengths),
		LengthEstimate:    computeLengthStats(lengths),
		ChunkStrategy:     chunker.Strategy,
		Backend:           p.vectorStore.Backend(),
		EmbeddingsEnabled: p.EmbeddingsEnabled(),
	}
	for _, d := range docs {
		if d.RAGReady {
			stats.RAGReady++
		}
	}
	return stats, nil
}

// computeLengthStats computes min, max, mean and p95 of lengths.
func computeLengthStats(lengths []int) LengthStats {
	if len(lengths) == 0 {
		return LengthStats{}
	}

	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Ints(sorted)

	sum := 0
	for _, n := range sorted {
		sum += n
	}
	mean := float64(sum) / float64(len(sorted))

	p95Index := int(math.Ceil(float64(len(sorted))*0.95)) - 1
	p95Index = max(0, min(p95Index, len(sorted)-1))

	return LengthStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}

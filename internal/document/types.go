package document

import "time"

// Block represents one node of a remote content tree.
type Block struct {
	ID          string   `json:"block_id"`
	Kind        Kind     `json:"-"`
	Type        string   `json:"block_type"` // Raw type tag as reported by the API
	Content     string   `json:"content"`    // Extracted plain text, possibly empty
	HasChildren bool     `json:"has_children"`
	Children    []*Block `json:"children,omitempty"`
	ParentID    string   `json:"parent_id"`
}

// Chunk is one retrieval-ready unit of flattened document text.
// CharStart and CharEnd are character offsets into the flattened stream (half-open).
type Chunk struct {
	ID             string    `json:"chunk_id"`
	Content        string    `json:"content"`
	DocumentID     string    `json:"source_document_id"`
	DocumentTitle  string    `json:"source_document_title"`
	BlockIDs       []string  `json:"block_ids"`
	CharStart      int       `json:"char_start"`
	CharEnd        int       `json:"char_end"`
	LengthEstimate int       `json:"length_estimate"`
	Ordinal        int       `json:"ordinal"`
	Embedding      []float32 `json:"embedding,omitempty"`
}

// Page holds metadata of the document a block tree was scraped from.
type Page struct {
	ID             string `json:"page_id"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	CreatedTime    string `json:"created_time"`
	LastEditedTime string `json:"last_edited_time"`
	ParentType     string `json:"parent_type"`
	ParentID       string `json:"parent_id,omitempty"`
}

// Provenance binds a chunk set back to its source document.
type Provenance struct {
	SourceType       string    `json:"source_type"`
	DocumentID       string    `json:"source_document_id"`
	Title            string    `json:"title"`
	Checksum         string    `json:"checksum"` // 16 hex chars of SHA-256 over block text
	CapturedAt       time.Time `json:"capture_timestamp"`
	LastEditedTime   string    `json:"last_edited_time,omitempty"`
	ExtractionMethod string    `json:"extraction_method"`
	ChunkStrategy    string    `json:"chunk_strategy"`
}

// Stats summarizes one scraped document.
type Stats struct {
	BlockCount int `json:"block_count"`
	ChunkCount int `json:"chunk_count"`
	TotalChars int `json:"total_chars"`
	MaxDepth   int `json:"max_depth"`
}

// Record pairs one document's block tree with its chunks and provenance.
type Record struct {
	Page       Page       `json:"page"`
	Blocks     []*Block   `json:"blocks"`
	Chunks     []Chunk    `json:"chunks"`
	Provenance Provenance `json:"provenance"`
	Stats      Stats      `json:"statistics"`
	RAGReady   bool       `json:"rag_ready"`
}

// CountBlocks returns the number of blocks in the given trees, descendants included.
func CountBlocks(blocks []*Block) int {
	n := 0
	for _, b := range blocks {
		n += 1 + CountBlocks(b.Children)
	}
	return n
}

// Walk visits blocks depth-first in reading order.
func Walk(blocks []*Block, fn func(b *Block, depth int)) {
	walk(blocks, 1, fn)
}

func walk(blocks []*Block, depth int, fn func(b *Block, depth int)) {
	for _, b := range blocks {
		fn(b, depth)
		walk(b.Children, depth+1, fn)
	}
}

package provenance

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"notion-intel/internal/chunker"
	"notion-intel/internal/document"
)

const (
	SourceType       = "notion"
	ExtractionMethod = "notion_api_v1"
)

// Checksum returns the first 16 hex characters of the SHA-256 of the top-level
// blocks' content, concatenated in order. Children are not hashed, so the value
// does not depend on how deep the tree was walked.
func Checksum(blocks []*document.Block) string {
	h := sha256.New()
	for _, b := range blocks {
		h.Write([]byte(b.Content))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Stamper builds provenance records.
type Stamper struct {
	now func() time.Time
}

// NewStamper creates a Stamper using the wall clock in UTC.
func NewStamper() *Stamper {
	return &Stamper{now: func() time.Time { return time.Now().UTC() }}
}

// NewStamperWithClock creates a Stamper with a custom clock.
func NewStamperWithClock(now func() time.Time) *Stamper {
	return &Stamper{now: now}
}

// Stamp records where blocks came from and when they were captured.
func (s *Stamper) Stamp(page document.Page, blocks []*document.Block) document.Provenance {
	return document.Provenance{
		SourceType:       SourceType,
		DocumentID:       page.ID,
		Title:            page.Title,
		Checksum:         Checksum(blocks),
		CapturedAt:       s.now(),
		LastEditedTime:   page.LastEditedTime,
		ExtractionMethod: ExtractionMethod,
		ChunkStrategy:    chunker.Strategy,
	}
}

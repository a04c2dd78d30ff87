package storage

import "time"

// DocumentRecord is the stored summary of one scraped document.
type DocumentRecord struct {
	ID             string
	Title          string
	URL            string
	LastEditedTime string
	Checksum       string // provenance checksum of the last scrape
	CapturedAt     time.Time
	BlockCount     int
	ChunkCount     int
	RAGReady       bool
}

// ChunkRecord is one stored chunk. PointID is the primary key and equals the
// vector store point id; ID is the chunk id, unique only within its document.
type ChunkRecord struct {
	PointID        string
	ID             string
	DocumentID     string
	Ordinal        int
	Content        string
	CharStart      int
	CharEnd        int
	LengthEstimate int
	BlockIDs       []string
	Embedded       bool
}

// ScrapeRecord is one scrape run.
type ScrapeRecord struct {
	ID             string
	Status         string
	PagesRequested int
	PagesScraped   int
	TotalChunks    int
	Failed         int
	StartedAt      time.Time
	FinishedAt     *time.Time
}

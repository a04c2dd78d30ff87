package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDocumentRepo_UpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewDocumentRepo(db)

	captured := time.Date(2024, 3, 1, 12, 30, 0, 500, time.UTC)
	doc := &DocumentRecord{
		ID:             "doc-1",
		Title:          "Roadmap",
		URL:            "https://www.notion.so/doc-1",
		LastEditedTime: "2024-02-28T10:00:00.000Z",
		Checksum:       "aaaaaaaaaaaaaaaa",
		CapturedAt:     captured,
		BlockCount:     12,
		ChunkCount:     3,
		RAGReady:       true,
	}
	if err := repo.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "doc-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Roadmap" || got.URL != doc.URL || got.BlockCount != 12 || got.ChunkCount != 3 || !got.RAGReady {
		t.Errorf("GetByID() = %+v", got)
	}
	if !got.CapturedAt.Equal(captured) {
		t.Errorf("CapturedAt = %v, want %v", got.CapturedAt, captured)
	}

	// Upsert again replaces the summary.
	doc.Title = "Roadmap v2"
	doc.Checksum = "bbbbbbbbbbbbbbbb"
	doc.RAGReady = false
	if err := repo.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	got, err = repo.GetByID(ctx, "doc-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Roadmap v2" || got.Checksum != "bbbbbbbbbbbbbbbb" || got.RAGReady {
		t.Errorf("GetByID() after second upsert = %+v", got)
	}
}

func TestDocumentRepo_Upsert_RequiresID(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepo(db)

	if err := repo.Upsert(context.Background(), &DocumentRecord{Title: "x"}); err == nil {
		t.Error("Upsert() without id should return error")
	}
}

func TestDocumentRepo_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestDocumentRepo_List(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewDocumentRepo(db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "new"} {
		err := repo.Upsert(ctx, &DocumentRecord{
			ID:         id,
			Title:      id,
			Checksum:   "c",
			CapturedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "old" {
		t.Errorf("List() = %+v, want new then old", got)
	}
}

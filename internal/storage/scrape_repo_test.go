package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestScrapeRepo_CreateFinishList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewScrapeRepo(db)

	started := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	first := &ScrapeRecord{ID: "scrape_20240501_090000", Status: "running", PagesRequested: 2, StartedAt: started}
	second := &ScrapeRecord{ID: "scrape_20240501_100000", Status: "running", PagesRequested: 1, StartedAt: started.Add(time.Hour)}

	for _, s := range []*ScrapeRecord{first, second} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	finished := started.Add(time.Minute)
	first.Status = "partial"
	first.PagesScraped = 1
	first.Failed = 1
	first.TotalChunks = 4
	first.FinishedAt = &finished
	if err := repo.Finish(ctx, first); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	got, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d runs, want 2", len(got))
	}
	if got[0].ID != second.ID {
		t.Errorf("List()[0].ID = %q, want newest %q", got[0].ID, second.ID)
	}
	if got[0].FinishedAt != nil {
		t.Errorf("unfinished run has FinishedAt = %v", got[0].FinishedAt)
	}

	run := got[1]
	if run.Status != "partial" || run.PagesScraped != 1 || run.Failed != 1 || run.TotalChunks != 4 {
		t.Errorf("finished run = %+v", run)
	}
	if run.FinishedAt == nil || !run.FinishedAt.Equal(finished) {
		t.Errorf("FinishedAt = %v, want %v", run.FinishedAt, finished)
	}
}

func TestScrapeRepo_Finish_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewScrapeRepo(db)

	err := repo.Finish(context.Background(), &ScrapeRecord{ID: "missing", Status: "completed"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Finish() error = %v, want ErrNotFound", err)
	}
}

func TestScrapeRepo_List_Limit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewScrapeRepo(db)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		s := &ScrapeRecord{ID: base.Add(time.Duration(i) * time.Second).Format("scrape_20060102_150405"), Status: "completed", StartedAt: base.Add(time.Duration(i) * time.Second)}
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("List(2) returned %d runs", len(got))
	}
}

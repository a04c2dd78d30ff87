package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"notion-intel/internal/indexer"
	"notion-intel/internal/service"
	"notion-intel/internal/service/mocks"
	"notion-intel/internal/storage"
)

func TestHistoryHandler_ServeHTTP(t *testing.T) {
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	finished := started.Add(time.Minute)
	runs := []storage.ScrapeRecord{
		{ID: "scrape_20240501_120000", Status: indexer.StatusPartial, PagesRequested: 3, PagesScraped: 2, TotalChunks: 7, Failed: 1, StartedAt: started, FinishedAt: &finished},
		{ID: "scrape_20240501_110000", Status: indexer.StatusRunning, StartedAt: started.Add(-time.Hour)},
	}

	tests := []struct {
		name       string
		query      string
		mockSetup  func(*mocks.MockScrapeService)
		wantStatus int
		wantLen    int
	}{
		{
			name: "default limit",
			mockSetup: func(m *mocks.MockScrapeService) {
				m.EXPECT().History(gomock.Any(), 0).Return(runs, nil)
			},
			wantStatus: http.StatusOK,
			wantLen:    2,
		},
		{
			name:  "explicit limit",
			query: "?limit=1",
			mockSetup: func(m *mocks.MockScrapeService) {
				m.EXPECT().History(gomock.Any(), 1).Return(runs[:1], nil)
			},
			wantStatus: http.StatusOK,
			wantLen:    1,
		},
		{
			name:       "limit not a number",
			query:      "?limit=all",
			mockSetup:  func(*mocks.MockScrapeService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "limit out of range",
			query: "?limit=-1",
			mockSetup: func(m *mocks.MockScrapeService) {
				m.EXPECT().History(gomock.Any(), -1).Return(nil, &service.ValidationError{Field: "limit", Message: "out of range"})
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockScrapeService(ctrl)
			tt.mockSetup(mockService)
			handler := NewHistoryHandler(mockService)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history"+tt.query, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("ServeHTTP() status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if w.Code != http.StatusOK {
				return
			}

			var resp HistoryResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if len(resp.History) != tt.wantLen {
				t.Fatalf("history = %d entries, want %d", len(resp.History), tt.wantLen)
			}
			first := resp.History[0]
			if first.ScrapeID != runs[0].ID || first.Failed != 1 || first.FinishedAt == nil || !first.FinishedAt.Equal(finished) {
				t.Errorf("first entry = %+v", first)
			}
		})
	}
}

func TestHistoryHandler_EmptyHistoryIsAList(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockScrapeService(ctrl)
	mockService.EXPECT().History(gomock.Any(), 0).Return(nil, nil)

	w := httptest.NewRecorder()
	NewHistoryHandler(mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Body.String(); got != "{\"history\":[]}\n" {
		t.Errorf("body = %q", got)
	}
}

func TestStatsHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockScrapeService(ctrl)
	handler := NewStatsHandler(mockService)

	mockService.EXPECT().Stats(gomock.Any()).Return(&indexer.CorpusStats{
		Documents:      2,
		RAGReady:       1,
		Chunks:         5,
		LengthEstimate: indexer.LengthStats{Min: 10, Max: 90, Mean: 42.5, P95: 90},
		ChunkStrategy:  "semantic_paragraphs",
		Backend:        "chromem",
	}, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var stats indexer.CorpusStats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.Documents != 2 || stats.Chunks != 5 || stats.LengthEstimate.P95 != 90 || stats.Backend != "chromem" {
		t.Errorf("stats = %+v", stats)
	}

	mockService.EXPECT().Stats(gomock.Any()).Return(nil, errors.New("locked"))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/stats", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

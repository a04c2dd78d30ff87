package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"notion-intel/internal/document"
	"notion-intel/internal/indexer"
	searchmocks "notion-intel/internal/search/mocks"
	"notion-intel/internal/service"
	servicemocks "notion-intel/internal/service/mocks"
	vectormocks "notion-intel/internal/vectorstore/mocks"
)

func newTestRouter(t *testing.T) (http.Handler, *servicemocks.MockScrapeService, *searchmocks.MockEngine, *vectormocks.MockVectorStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	scrapeService := servicemocks.NewMockScrapeService(ctrl)
	engine := searchmocks.NewMockEngine(ctrl)
	store := vectormocks.NewMockVectorStore(ctrl)

	router := NewRouter(&Deps{
		ScrapeService:  scrapeService,
		SearchEngine:   engine,
		VectorStore:    store,
		CollectionName: "notion",
	})
	return router, scrapeService, engine, store
}

func TestNewRouter(t *testing.T) {
	router, _, _, _ := newTestRouter(t)
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	router, scrapeService, engine, store := newTestRouter(t)

	scrapeService.EXPECT().History(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	scrapeService.EXPECT().Stats(gomock.Any()).Return(&indexer.CorpusStats{}, nil).AnyTimes()
	scrapeService.EXPECT().Export(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	engine.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	store.EXPECT().Backend().Return("chromem").AnyTimes()
	store.EXPECT().CollectionExists(gomock.Any(), "notion").Return(true, nil).AnyTimes()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"POST /api/scrape exists", http.MethodPost, "/api/scrape", http.StatusBadRequest}, // empty body, but route exists
		{"GET /api/scrape method not allowed", http.MethodGet, "/api/scrape", http.StatusMethodNotAllowed},
		{"GET /api/search without query", http.MethodGet, "/api/search", http.StatusBadRequest},
		{"GET /api/search", http.MethodGet, "/api/search?q=x", http.StatusOK},
		{"GET /api/history", http.MethodGet, "/api/history", http.StatusOK},
		{"GET /api/stats", http.MethodGet, "/api/stats", http.StatusOK},
		{"GET /api/export", http.MethodGet, "/api/export", http.StatusOK},
		{"POST /api/export method not allowed", http.MethodPost, "/api/export", http.StatusMethodNotAllowed},
		{"GET /api/health", http.MethodGet, "/api/health", http.StatusOK},
		{"POST /api/health method not allowed", http.MethodPost, "/api/health", http.StatusMethodNotAllowed},
		{"OPTIONS preflight", http.MethodOptions, "/api/scrape", http.StatusNoContent},
		{"unknown route", http.MethodGet, "/api/ask", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_PageIDFromPath(t *testing.T) {
	router, scrapeService, _, _ := newTestRouter(t)

	rec := &document.Record{Page: document.Page{ID: "abc123", Title: "Notes"}}
	gomock.InOrder(
		scrapeService.EXPECT().Page(gomock.Any(), service.PageRequest{PageID: "abc123", Embed: true}).Return(rec, nil),
		scrapeService.EXPECT().Page(gomock.Any(), service.PageRequest{PageID: "abc123"}).Return(rec, nil),
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pages/abc123?embed=1", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /api/pages/abc123 status = %v, want %v", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pages/abc123/preview", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /api/pages/abc123/preview status = %v, want %v", w.Code, http.StatusOK)
	}
}

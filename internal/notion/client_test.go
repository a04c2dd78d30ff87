package notion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_GetChildren(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blocks/page-1/children" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != DefaultVersion {
			t.Errorf("Notion-Version = %q", got)
		}
		if got := r.URL.Query().Get("page_size"); got != "100" {
			t.Errorf("page_size = %q, want 100", got)
		}

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("start_cursor") == "" {
			_, _ = w.Write([]byte(`{
				"object": "list",
				"results": [
					{"object":"block","id":"b1","type":"paragraph","has_children":true,
					 "paragraph":{"rich_text":[{"plain_text":"Hello"}]}}
				],
				"has_more": true,
				"next_cursor": "cur-2"
			}`))
			return
		}
		_, _ = w.Write([]byte(`{"object":"list","results":[],"has_more":false,"next_cursor":null}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", "", 0)

	first, err := client.GetChildren(context.Background(), "page-1", "")
	if err != nil {
		t.Fatalf("GetChildren() error = %v", err)
	}
	if len(first.Results) != 1 || !first.HasMore || first.Cursor() != "cur-2" {
		t.Fatalf("unexpected first page: %+v", first)
	}
	b := first.Results[0]
	if b.ID != "b1" || b.Type != "paragraph" || !b.HasChildren {
		t.Errorf("unexpected block header: %+v", b)
	}
	var payload struct {
		RichText []RichText `json:"rich_text"`
	}
	if err := json.Unmarshal(b.Payload, &payload); err != nil || PlainText(payload.RichText) != "Hello" {
		t.Errorf("payload = %s, err = %v", b.Payload, err)
	}

	second, err := client.GetChildren(context.Background(), "page-1", "cur-2")
	if err != nil {
		t.Fatalf("GetChildren() error = %v", err)
	}
	if second.HasMore || second.Cursor() != "" {
		t.Errorf("unexpected second page: %+v", second)
	}
}

func TestClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"object":"error","code":"object_not_found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", "", 0)
	_, err := client.GetPage(context.Background(), "missing")

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound || se.Op != "get page" {
		t.Errorf("StatusError = %+v", se)
	}
}

func TestClient_QueryDatabase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/databases/db-1/query" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["page_size"] != float64(PageSize) {
			t.Errorf("page_size = %v", body["page_size"])
		}
		if body["start_cursor"] != "next" {
			t.Errorf("start_cursor = %v", body["start_cursor"])
		}
		_, _ = w.Write([]byte(`{"results":[{"id":"p1","url":"https://notion.so/p1",
			"parent":{"type":"database_id","database_id":"db-1"},
			"properties":{"Name":{"type":"title","title":[{"plain_text":"Launch"}]}}}],
			"has_more":false,"next_cursor":null}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", "", 0)
	res, err := client.QueryDatabase(context.Background(), "db-1", "next")
	if err != nil {
		t.Fatalf("QueryDatabase() error = %v", err)
	}
	if len(res.Results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(res.Results))
	}
	p := res.Results[0]
	if PageTitle(&p) != "Launch" || p.Parent.ID() != "db-1" {
		t.Errorf("unexpected page: %+v", p)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "secret", "", 3)
	if _, err := client.GetChildren(ctx, "x", ""); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestPageTitle(t *testing.T) {
	tests := []struct {
		name string
		page *Page
		want string
	}{
		{name: "nil page", page: nil, want: "Untitled"},
		{name: "no title property", page: &Page{Properties: map[string]Property{"Tags": {Type: "multi_select"}}}, want: "Untitled"},
		{name: "empty title", page: &Page{Properties: map[string]Property{"Name": {Type: "title"}}}, want: "Untitled"},
		{
			name: "joined runs",
			page: &Page{Properties: map[string]Property{"Name": {Type: "title", Title: []RichText{{PlainText: "Q3 "}, {PlainText: "Plan"}}}}},
			want: "Q3 Plan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageTitle(tt.page); got != tt.want {
				t.Errorf("PageTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlock_RoundTrip(t *testing.T) {
	in := Block{ID: "b", Type: "equation", Payload: json.RawMessage(`{"expression":"x"}`)}
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var out Block
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out.ID != "b" || out.Type != "equation" || string(out.Payload) != `{"expression":"x"}` {
		t.Errorf("round trip = %+v (%s)", out, out.Payload)
	}
}

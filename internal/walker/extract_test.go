package walker

import (
	"testing"

	"notion-intel/internal/notion"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		payload string
		want    string
	}{
		{
			name:    "paragraph joins runs",
			typ:     "paragraph",
			payload: `{"rich_text":[{"plain_text":"Hello "},{"plain_text":"world."}]}`,
			want:    "Hello world.",
		},
		{
			name:    "heading",
			typ:     "heading_2",
			payload: `{"rich_text":[{"plain_text":"Setup"}]}`,
			want:    "Setup",
		},
		{
			name:    "to_do",
			typ:     "to_do",
			payload: `{"rich_text":[{"plain_text":"ship it"}],"checked":false}`,
			want:    "ship it",
		},
		{
			name:    "code is fenced with language",
			typ:     "code",
			payload: `{"rich_text":[{"plain_text":"fmt.Println(1)"}],"language":"go"}`,
			want:    "```go\nfmt.Println(1)\n```",
		},
		{
			name:    "equation",
			typ:     "equation",
			payload: `{"expression":"e=mc^2"}`,
			want:    "$$e=mc^2$$",
		},
		{
			name:    "bookmark",
			typ:     "bookmark",
			payload: `{"url":"https://example.com"}`,
			want:    "[Bookmark: https://example.com]",
		},
		{
			name:    "embed",
			typ:     "embed",
			payload: `{"url":"https://example.com/e"}`,
			want:    "[Link: https://example.com/e]",
		},
		{
			name:    "image prefers caption",
			typ:     "image",
			payload: `{"type":"external","external":{"url":"https://img"},"caption":[{"plain_text":"Diagram"}]}`,
			want:    "[Image: Diagram]",
		},
		{
			name:    "image falls back to url",
			typ:     "image",
			payload: `{"type":"file","file":{"url":"https://s3/img.png"},"caption":[]}`,
			want:    "[Image: https://s3/img.png]",
		},
		{
			name:    "pdf",
			typ:     "pdf",
			payload: `{"type":"external","external":{"url":"https://doc.pdf"}}`,
			want:    "[PDF: https://doc.pdf]",
		},
		{
			name:    "child page",
			typ:     "child_page",
			payload: `{"title":"Roadmap"}`,
			want:    "[Child Page: Roadmap]",
		},
		{
			name:    "child database without title",
			typ:     "child_database",
			payload: `{"title":""}`,
			want:    "[Child Database: Untitled]",
		},
		{
			name:    "table row",
			typ:     "table_row",
			payload: `{"cells":[[{"plain_text":"a"}],[{"plain_text":"b"},{"plain_text":"c"}]]}`,
			want:    "a | bc",
		},
		{name: "divider", typ: "divider", payload: `{}`, want: ""},
		{name: "unknown type", typ: "synced_block", payload: `{"synced_from":null}`, want: ""},
		{name: "malformed payload", typ: "paragraph", payload: `{"rich_text":"oops"}`, want: ""},
		{name: "missing payload", typ: "quote", payload: ``, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := notion.Block{ID: "x", Type: tt.typ}
			if tt.payload != "" {
				b.Payload = []byte(tt.payload)
			}
			if got := Extract(b); got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

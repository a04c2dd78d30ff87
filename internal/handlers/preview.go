package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"notion-intel/internal/chunker"
	"notion-intel/internal/contextutil"
	"notion-intel/internal/service"
)

// PreviewHandler renders the flattened text of a page as an HTML document.
// Raw HTML in page content is escaped, not passed through.
type PreviewHandler struct {
	scrapeService service.ScrapeService
	markdown      goldmark.Markdown
	template      *template.Template
}

type previewPageData struct {
	Title      string
	URL        string
	Checksum   string
	CapturedAt string
	Blocks     int
	Chunks     int
	Content    template.HTML
}

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
      color: #1f2937;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #e5e7eb;
      padding-bottom: 1rem;
    }
    h1 {
      margin-top: 0;
    }
    pre {
      background: #f3f4f6;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 8px;
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
    }
    .meta {
      color: #6b7280;
      font-size: 0.9rem;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">
      {{if .URL}}<a href="{{.URL}}">Open in Notion</a> &middot; {{end}}{{.Blocks}} blocks &middot; {{.Chunks}} chunks &middot; checksum {{.Checksum}} &middot; captured {{.CapturedAt}}
    </p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

// NewPreviewHandler creates a new PreviewHandler.
func NewPreviewHandler(scrapeService service.ScrapeService) *PreviewHandler {
	return &PreviewHandler{
		scrapeService: scrapeService,
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: previewTemplate,
	}
}

// ServeHTTP handles GET /api/pages/{pageID}/preview.
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	rec, err := h.scrapeService.Page(ctx, service.PageRequest{PageID: chi.URLParam(r, "pageID")})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to scrape page")
		return
	}

	text, _ := chunker.Flatten(rec.Blocks)
	content, err := h.render([]byte(text))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render page", "page_id", rec.Page.ID, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err = h.template.Execute(&buf, previewPageData{
		Title:      rec.Page.Title,
		URL:        rec.Page.URL,
		Checksum:   rec.Provenance.Checksum,
		CapturedAt: rec.Provenance.CapturedAt.Format("2006-01-02 15:04:05 MST"),
		Blocks:     rec.Stats.BlockCount,
		Chunks:     rec.Stats.ChunkCount,
		Content:    template.HTML(content),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to execute preview template", "page_id", rec.Page.ID, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *PreviewHandler) render(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

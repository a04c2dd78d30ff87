package walker

import (
	"encoding/json"
	"strings"

	"notion-intel/internal/document"
	"notion-intel/internal/notion"
)

type richTextPayload struct {
	RichText []notion.RichText `json:"rich_text"`
}

type codePayload struct {
	RichText []notion.RichText `json:"rich_text"`
	Language string            `json:"language"`
}

type equationPayload struct {
	Expression string `json:"expression"`
}

type linkPayload struct {
	URL string `json:"url"`
}

type fileRef struct {
	URL string `json:"url"`
}

type mediaPayload struct {
	Type     string            `json:"type"`
	External *fileRef          `json:"external,omitempty"`
	File     *fileRef          `json:"file,omitempty"`
	Caption  []notion.RichText `json:"caption"`
}

func (m mediaPayload) url() string {
	switch {
	case m.Type == "external" && m.External != nil:
		return m.External.URL
	case m.Type == "file" && m.File != nil:
		return m.File.URL
	case m.External != nil:
		return m.External.URL
	case m.File != nil:
		return m.File.URL
	}
	return ""
}

type titlePayload struct {
	Title string `json:"title"`
}

type tableRowPayload struct {
	Cells [][]notion.RichText `json:"cells"`
}

var mediaLabels = map[document.Kind]string{
	document.KindImage: "Image",
	document.KindVideo: "Video",
	document.KindFile:  "File",
	document.KindPDF:   "PDF",
	document.KindAudio: "Audio",
}

// Extract returns the plain-text content of a raw block.
// Unsupported or malformed blocks yield "".
func Extract(b notion.Block) string {
	kind := document.ParseKind(b.Type)

	switch {
	case kind.IsRichText():
		var p richTextPayload
		if !decode(b.Payload, &p) {
			return ""
		}
		return notion.PlainText(p.RichText)

	case kind == document.KindCode:
		var p codePayload
		if !decode(b.Payload, &p) {
			return ""
		}
		return "```" + p.Language + "\n" + notion.PlainText(p.RichText) + "\n```"

	case kind == document.KindEquation:
		var p equationPayload
		if !decode(b.Payload, &p) {
			return ""
		}
		return "$$" + p.Expression + "$$"

	case kind == document.KindBookmark:
		var p linkPayload
		if !decode(b.Payload, &p) {
			return ""
		}
		return "[Bookmark: " + p.URL + "]"

	case kind == document.KindEmbed, kind == document.KindLinkPreview:
		var p linkPayload
		if !decode(b.Payload, &p) {
			return ""
		}
		return "[Link: " + p.URL + "]"

	case kind.IsMedia():
		var p mediaPayload
		if !decode(b.Payload, &p) {
			return ""
		}
		label := notion.PlainText(p.Caption)
		if label == "" {
			label = p.url()
		}
		return "[" + mediaLabels[kind] + ": " + label + "]"

	case kind == document.KindChildPage, kind == document.KindChildDatabase:
		var p titlePayload
		if !decode(b.Payload, &p) {
			return ""
		}
		title := p.Title
		if title == "" {
			title = "Untitled"
		}
		if kind == document.KindChildPage {
			return "[Child Page: " + title + "]"
		}
		return "[Child Database: " + title + "]"

	case kind == document.KindTableRow:
		var p tableRowPayload
		if !decode(b.Payload, &p) {
			return ""
		}
		cells := make([]string, len(p.Cells))
		for i, cell := range p.Cells {
			cells[i] = notion.PlainText(cell)
		}
		return strings.Join(cells, " | ")

	default:
		// divider, table, unknown
		return ""
	}
}

func decode(raw json.RawMessage, v any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

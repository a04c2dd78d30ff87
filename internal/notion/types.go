package notion

import (
	"encoding/json"
	"fmt"
)

// RichText is one run of a Notion rich-text array.
type RichText struct {
	Type      string `json:"type,omitempty"`
	PlainText string `json:"plain_text"`
	Href      string `json:"href,omitempty"`
}

// PlainText concatenates the literal strings of all runs.
func PlainText(runs []RichText) string {
	switch len(runs) {
	case 0:
		return ""
	case 1:
		return runs[0].PlainText
	}
	var n int
	for _, r := range runs {
		n += len(r.PlainText)
	}
	buf := make([]byte, 0, n)
	for _, r := range runs {
		buf = append(buf, r.PlainText...)
	}
	return string(buf)
}

// Block is a block object as returned by the children listing.
// The type-specific object (e.g. "paragraph": {...}) is kept raw in Payload.
type Block struct {
	ID          string
	Type        string
	HasChildren bool
	Payload     json.RawMessage
}

// UnmarshalJSON decodes the common block fields and captures the object keyed by the block's type.
func (b *Block) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode block: %w", err)
	}

	var head struct {
		ID          string `json:"id"`
		Type        string `json:"type"`
		HasChildren bool   `json:"has_children"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("decode block header: %w", err)
	}

	b.ID = head.ID
	b.Type = head.Type
	b.HasChildren = head.HasChildren
	b.Payload = nil
	if head.Type != "" {
		b.Payload = fields[head.Type]
	}
	return nil
}

// MarshalJSON encodes the block in the API's shape.
func (b Block) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"object":       "block",
		"id":           b.ID,
		"type":         b.Type,
		"has_children": b.HasChildren,
	}
	if b.Type != "" && len(b.Payload) > 0 {
		out[b.Type] = b.Payload
	}
	return json.Marshal(out)
}

// ChildrenPage is one page of a block children listing.
type ChildrenPage struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Cursor returns the continuation cursor, or "" when none was sent.
func (p *ChildrenPage) Cursor() string {
	if p.NextCursor == nil {
		return ""
	}
	return *p.NextCursor
}

// Parent identifies the container of a page.
type Parent struct {
	Type       string `json:"type"`
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	BlockID    string `json:"block_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

// ID returns the identifier of the parent object, empty for workspace parents.
func (p Parent) ID() string {
	switch p.Type {
	case "page_id":
		return p.PageID
	case "database_id":
		return p.DatabaseID
	case "block_id":
		return p.BlockID
	default:
		return ""
	}
}

// Property is the subset of a page property the scraper reads.
type Property struct {
	ID    string     `json:"id,omitempty"`
	Type  string     `json:"type"`
	Title []RichText `json:"title,omitempty"`
}

// Page is a page object.
type Page struct {
	ID             string              `json:"id"`
	URL            string              `json:"url"`
	CreatedTime    string              `json:"created_time"`
	LastEditedTime string              `json:"last_edited_time"`
	Archived       bool                `json:"archived"`
	Parent         Parent              `json:"parent"`
	Properties     map[string]Property `json:"properties"`
}

// QueryPage is one page of a database query.
type QueryPage struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Cursor returns the continuation cursor, or "" when none was sent.
func (p *QueryPage) Cursor() string {
	if p.NextCursor == nil {
		return ""
	}
	return *p.NextCursor
}

// PageTitle returns the plain text of the page's title property, or "Untitled".
func PageTitle(page *Page) string {
	if page == nil {
		return "Untitled"
	}
	for _, prop := range page.Properties {
		if prop.Type != "title" {
			continue
		}
		if title := PlainText(prop.Title); title != "" {
			return title
		}
		return "Untitled"
	}
	return "Untitled"
}

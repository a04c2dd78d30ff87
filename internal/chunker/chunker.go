package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"notion-intel/internal/document"
)

const (
	// DefaultSize is the chunk budget used when a non-positive size is requested.
	DefaultSize = 1000
	// Strategy names the splitting approach in provenance records.
	Strategy = "semantic_paragraphs"
)

// Span records where a block's text landed in the flattened stream, in runes, half-open.
type Span struct {
	BlockID string
	Start   int
	End     int
}

// Flatten concatenates top-level blocks and their direct children into one stream.
// Top-level content is followed by a blank line, child content is indented two
// spaces and followed by a single newline. Deeper descendants are not included.
func Flatten(blocks []*document.Block) (string, []Span) {
	var sb strings.Builder
	spans := make([]Span, 0, len(blocks))
	pos := 0

	appendText := func(id, text string) {
		start := pos
		sb.WriteString(text)
		pos += utf8.RuneCountInString(text)
		spans = append(spans, Span{BlockID: id, Start: start, End: pos})
	}

	for _, b := range blocks {
		text := ""
		if b.Content != "" {
			text = b.Content + "\n\n"
		}
		appendText(b.ID, text)

		for _, child := range b.Children {
			text := ""
			if child.Content != "" {
				text = "  " + child.Content + "\n"
			}
			appendText(child.ID, text)
		}
	}
	return sb.String(), spans
}

// Chunker splits flattened text into overlapping, paragraph-aligned chunks.
type Chunker struct {
	size    int
	overlap int
}

// New creates a Chunker. size <= 0 selects DefaultSize, overlap is clamped to [0, size-1].
func New(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}
	return &Chunker{size: size, overlap: overlap}
}

// Size returns the effective chunk budget in characters.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the effective overlap in characters.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk flattens blocks and splits the result.
func (c *Chunker) Chunk(blocks []*document.Block, docID, title string) []document.Chunk {
	text, spans := Flatten(blocks)
	return c.Split(text, spans, docID, title)
}

// Split packs paragraphs of text into chunks of at most size characters.
// A paragraph is never split, so a single paragraph longer than size forms its own chunk.
// Each new chunk after the first is seeded with the last overlap characters of the previous one.
func (c *Chunker) Split(text string, spans []Span, docID, title string) []document.Chunk {
	chunks := []document.Chunk{}
	if strings.TrimSpace(text) == "" {
		return chunks
	}

	var (
		buf    []rune
		start  int
		cursor int
	)

	emit := func() {
		content := strings.TrimSpace(string(buf))
		if content == "" {
			return
		}
		end := start + len(buf)
		ordinal := len(chunks)
		chunks = append(chunks, document.Chunk{
			ID:             ChunkID(docID, ordinal),
			Content:        content,
			DocumentID:     docID,
			DocumentTitle:  title,
			BlockIDs:       blocksIn(spans, start, end),
			CharStart:      start,
			CharEnd:        end,
			LengthEstimate: EstimateLength(content),
			Ordinal:        ordinal,
		})
	}

	for _, para := range paragraphs([]rune(text)) {
		if len(buf)+len(para) <= c.size {
			buf = append(buf, para...)
		} else {
			emit()
			seed := buf[len(buf)-min(c.overlap, len(buf)):]
			next := make([]rune, 0, len(seed)+len(para))
			next = append(next, seed...)
			buf = append(next, para...)
			start = cursor - len(seed)
		}
		cursor += len(para)
	}
	emit()

	return chunks
}

// paragraphs splits text after every run of two or more newlines. Each element
// keeps its own separator, so the elements concatenate back to text exactly.
func paragraphs(text []rune) [][]rune {
	var out [][]rune
	begin := 0
	for i := 0; i < len(text); {
		if text[i] != '\n' {
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] == '\n' {
			j++
		}
		if j-i >= 2 {
			out = append(out, text[begin:j])
			begin = j
		}
		i = j
	}
	if begin < len(text) {
		out = append(out, text[begin:])
	}
	return out
}

func blocksIn(spans []Span, start, end int) []string {
	ids := []string{}
	for _, s := range spans {
		if s.Start < end && s.End > start {
			ids = append(ids, s.BlockID)
		}
	}
	return ids
}

// ChunkID derives a stable chunk identifier from the document id and ordinal.
func ChunkID(docID string, ordinal int) string {
	prefix := docID
	if utf8.RuneCountInString(prefix) > 8 {
		prefix = string([]rune(prefix)[:8])
	}
	return fmt.Sprintf("chunk_%s_%04d", prefix, ordinal)
}

// EstimateLength approximates the token count of text as one token per four characters.
func EstimateLength(text string) int {
	return utf8.RuneCountInString(text) / 4
}

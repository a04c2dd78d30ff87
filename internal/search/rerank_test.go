package search

import (
	"math"
	"strings"
	"testing"
)

func TestLexicalScore(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		content string
		title   string
		want    func(float32) bool
	}{
		{
			name:    "basic match",
			query:   "Project updates",
			content: "The project timeline lists recent updates for the project. These updates cover scope.",
			want:    func(s float32) bool { return s > 0 && s <= maxLexicalScore },
		},
		{
			name:    "title bonus only",
			query:   "roadmap",
			content: "General context without the keyword.",
			title:   "Q3 Roadmap",
			want:    func(s float32) bool { return math.Abs(float64(s-titleMatchBonus)) < 0.0001 },
		},
		{
			name:    "stopwords only",
			query:   "the and of",
			content: "the and of",
			want:    func(s float32) bool { return s == 0 },
		},
		{
			name:    "long content stays positive",
			query:   "project",
			content: "project " + strings.Repeat(" filler", 200),
			want:    func(s float32) bool { return s > 0 && s < maxLexicalScore },
		},
		{
			name:    "clamped",
			query:   "alpha",
			content: "alpha alpha alpha",
			title:   "alpha",
			want:    func(s float32) bool { return s == maxLexicalScore },
		},
		{
			name:  "empty content",
			query: "alpha",
			want:  func(s float32) bool { return s == 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexicalScore(tt.query, tt.content, tt.title)
			if !tt.want(got) {
				t.Errorf("lexicalScore(%q) = %f", tt.query, got)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("Hello, World! v2.0")
	want := []string{"hello", "world", "v2", "0"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("tokenize() = %v, want %v", got, want)
	}
}

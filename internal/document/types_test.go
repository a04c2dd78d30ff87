package document

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"paragraph", KindParagraph},
		{"heading_2", KindHeading2},
		{"code", KindCode},
		{"child_database", KindChildDatabase},
		{"synced_block", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ParseKind(tt.tag); got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	if got := KindToDo.String(); got != "to_do" {
		t.Errorf("KindToDo.String() = %q, want to_do", got)
	}
	if got := KindUnknown.String(); got != "unknown" {
		t.Errorf("KindUnknown.String() = %q, want unknown", got)
	}
}

func TestKind_Classes(t *testing.T) {
	if !KindQuote.IsRichText() {
		t.Error("quote should be rich text")
	}
	if KindCode.IsRichText() {
		t.Error("code should not be treated as plain rich text")
	}
	if !KindPDF.IsMedia() {
		t.Error("pdf should be media")
	}
	if KindBookmark.IsMedia() {
		t.Error("bookmark should not be media")
	}
}

func TestCountBlocksAndWalk(t *testing.T) {
	tree := []*Block{
		{ID: "a", Children: []*Block{
			{ID: "a1", Children: []*Block{{ID: "a1x"}}},
			{ID: "a2"},
		}},
		{ID: "b"},
	}

	if got := CountBlocks(tree); got != 5 {
		t.Errorf("CountBlocks() = %d, want 5", got)
	}

	var order []string
	var depths []int
	Walk(tree, func(b *Block, depth int) {
		order = append(order, b.ID)
		depths = append(depths, depth)
	})

	wantOrder := []string{"a", "a1", "a1x", "a2", "b"}
	wantDepths := []int{1, 2, 3, 2, 1}
	for i := range wantOrder {
		if order[i] != wantOrder[i] || depths[i] != wantDepths[i] {
			t.Fatalf("Walk() visited %v at depths %v, want %v at %v", order, depths, wantOrder, wantDepths)
		}
	}
}

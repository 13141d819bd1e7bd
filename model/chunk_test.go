package model

import "testing"

func glyph(text string, top, left, width, height float64) *TextElement {
	return NewTextElement(top, left, width, height, "F1", 10, text, 5)
}

func TestTextChunkText(t *testing.T) {
	tc := NewTextChunk(glyph("H", 0, 0, 5, 10))
	tc.Add(glyph("i", 0, 5, 5, 10))
	if got := tc.Text(); got != "Hi" {
		t.Errorf("Text() = %q, want %q", got, "Hi")
	}
}

func TestTextChunkAddExpandsBounds(t *testing.T) {
	tc := NewTextChunk(glyph("a", 0, 0, 5, 10))
	tc.Add(glyph("b", 0, 5, 5, 10))
	if got := tc.Right(); got != 10 {
		t.Errorf("Right() = %v, want 10", got)
	}
	if got := tc.Width; got != 10 {
		t.Errorf("Width = %v, want 10", got)
	}
}

func TestTextChunkIsSameChar(t *testing.T) {
	sp := NewTextChunk(glyph(" ", 0, 0, 5, 10))
	sp.Add(glyph(" ", 0, 5, 5, 10))
	if !sp.IsSameChar(WhitespaceChars) {
		t.Error("all-space chunk should be same-char whitespace")
	}

	word := NewTextChunk(glyph("a", 0, 0, 5, 10))
	if word.IsSameChar(WhitespaceChars) {
		t.Error("letter chunk should not be whitespace")
	}

	empty := &TextChunk{}
	if empty.IsSameChar(WhitespaceChars) {
		t.Error("empty chunk should not count as whitespace")
	}
}

func TestTextChunkLtrDominant(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  int
	}{
		{"latin", []string{"a", "b"}, 1},
		{"hebrew", []string{"א", "ב"}, -1},
		{"digits are neutral", []string{"1", "2"}, 0},
		{"mixed tie", []string{"a", "א"}, 0},
		{"latin outnumbers", []string{"a", "b", "א"}, 1},
	}
	for _, tt := range tests {
		tc := NewTextChunk(glyph(tt.texts[0], 0, 0, 5, 10))
		for i, s := range tt.texts[1:] {
			tc.Add(glyph(s, 0, float64(5*(i+1)), 5, 10))
		}
		if got := tc.LtrDominant(); got != tt.want {
			t.Errorf("%s: LtrDominant() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestGroupByDirectionalityLTR(t *testing.T) {
	tc := NewTextChunk(glyph("a", 0, 0, 5, 10))
	tc.Add(glyph("b", 0, 5, 5, 10))
	out := tc.GroupByDirectionality(true)
	if got := out.Text(); got != "ab" {
		t.Errorf("LTR chunk reordered: %q", got)
	}
}

func TestGroupByDirectionalityRTL(t *testing.T) {
	// an RTL run (with the neutral digit attached) followed by an LTR run;
	// an RTL-dominant chunk reads its runs right to left
	tc := NewTextChunk(glyph("א", 0, 0, 5, 10))
	tc.Add(glyph("1", 0, 5, 5, 10))
	tc.Add(glyph("a", 0, 10, 5, 10))
	out := tc.GroupByDirectionality(false)
	if got := out.Text(); got != "aא1" {
		t.Errorf("GroupByDirectionality(false) = %q, want %q", got, "aא1")
	}
	if out.Rect != tc.Rect {
		t.Error("regrouping must preserve bounds")
	}
}

func TestTextChunkMergeWith(t *testing.T) {
	left := NewTextChunk(glyph("a", 0, 0, 5, 10))
	right := NewTextChunk(glyph("b", 0, 50, 5, 10))

	merged := left.MergeWith(right)
	if got := merged.Text(); got != "ab" {
		t.Errorf("merge left-to-right = %q, want %q", got, "ab")
	}
	if got := merged.Right(); got != 55 {
		t.Errorf("merged Right() = %v, want 55", got)
	}

	// merging the visually earlier chunk into the later one prepends
	c := NewTextChunk(glyph("c", 0, 100, 5, 10))
	d := NewTextChunk(glyph("d", 0, 90, 5, 10))
	if got := c.MergeWith(d).Text(); got != "dc" {
		t.Errorf("merge right-to-left = %q, want %q", got, "dc")
	}
}

func TestLineAddChunk(t *testing.T) {
	var l Line
	l.AddChunk(NewTextChunk(glyph("a", 0, 0, 5, 10)))
	l.AddChunk(NewTextChunk(glyph("b", 0, 20, 5, 10)))
	if got := len(l.Chunks()); got != 2 {
		t.Errorf("len(Chunks()) = %d, want 2", got)
	}
	if got := l.Right(); got != 25 {
		t.Errorf("line Right() = %v, want 25", got)
	}
}

package model

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// WhitespaceChars are the characters a chunk may consist of and still be
// considered blank for table-placement purposes.
const WhitespaceChars = " \t\r\n\f"

// TextChunk is an ordered run of glyphs recognized as one visual word,
// together with their enclosing rectangle. Chunks are built by the word
// merger and later placed into table cells.
type TextChunk struct {
	Rect

	elements []*TextElement
}

// Empty is the sentinel returned for absent table cells. Callers must treat
// it as read-only.
var Empty = &TextChunk{}

// NewTextChunk creates a chunk containing the single glyph te.
func NewTextChunk(te *TextElement) *TextChunk {
	return &TextChunk{Rect: te.Rect, elements: []*TextElement{te}}
}

// Elements returns the chunk's glyphs in reading order.
func (tc *TextChunk) Elements() []*TextElement { return tc.elements }

// Add appends a glyph and expands the chunk's bounds to cover it.
func (tc *TextChunk) Add(te *TextElement) {
	if len(tc.elements) == 0 {
		tc.Rect = te.Rect
	} else {
		tc.Merge(te.Rect)
	}
	tc.elements = append(tc.elements, te)
}

// MergeWith combines other into tc: the glyph lists are concatenated in
// reading order (other's glyphs are prepended when other visually precedes
// tc) and the bounds grow to the union. Returns tc.
func (tc *TextChunk) MergeWith(other *TextChunk) *TextChunk {
	hadElements := len(tc.elements) > 0
	if CompareVisual(tc, other) < 0 {
		tc.elements = append(tc.elements, other.elements...)
	} else {
		tc.elements = append(append([]*TextElement{}, other.elements...), tc.elements...)
	}
	if hadElements {
		tc.Merge(other.Rect)
	} else {
		tc.Rect = other.Rect
	}
	return tc
}

// Text returns the concatenated text of the chunk's glyphs.
func (tc *TextChunk) Text() string {
	var sb strings.Builder
	for _, te := range tc.elements {
		sb.WriteString(te.text)
	}
	return sb.String()
}

// IsSameChar reports whether the chunk's text is non-empty and consists
// solely of characters from the given set.
func (tc *TextChunk) IsSameChar(set string) bool {
	t := tc.Text()
	return t != "" && strings.Trim(t, set) == ""
}

// LtrDominant reports the chunk's dominant reading direction: +1 when
// left-to-right glyphs outnumber right-to-left ones, -1 for the reverse,
// 0 on a tie or when the chunk holds only neutral characters.
func (tc *TextChunk) LtrDominant() int {
	ltr, rtl := 0, 0
	for _, te := range tc.elements {
		for _, r := range te.text {
			switch runeDirection(r) {
			case bidi.L:
				ltr++
			case bidi.R:
				rtl++
			}
		}
	}
	switch {
	case ltr > rtl:
		return 1
	case rtl > ltr:
		return -1
	default:
		return 0
	}
}

// runeDirection maps a rune to bidi.L, bidi.R or bidi.ON (neutral).
func runeDirection(r rune) bidi.Class {
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.L:
		return bidi.L
	case bidi.R, bidi.AL:
		return bidi.R
	default:
		return bidi.ON
	}
}

// GroupByDirectionality reorders the chunk's glyphs so that its text reads
// in logical order. Glyphs are grouped into maximal runs of one strong
// direction (neutral characters attach to the run in progress); for a
// left-to-right dominant chunk the runs keep their visual order, for a
// right-to-left dominant chunk the run order is reversed. A new chunk with
// the same bounds is returned; a chunk of at most one glyph is returned as is.
func (tc *TextChunk) GroupByDirectionality(ltrDominant bool) *TextChunk {
	if len(tc.elements) <= 1 {
		return tc
	}

	var runs [][]*TextElement
	var run []*TextElement
	runClass := bidi.ON

	for _, te := range tc.elements {
		cls := elementDirection(te)
		switch {
		case len(run) == 0:
			run = append(run, te)
			runClass = cls
		case cls == runClass || cls == bidi.ON:
			run = append(run, te)
		case runClass == bidi.ON:
			run = append(run, te)
			runClass = cls
		default:
			runs = append(runs, run)
			run = []*TextElement{te}
			runClass = cls
		}
	}
	runs = append(runs, run)

	if !ltrDominant {
		for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
			runs[i], runs[j] = runs[j], runs[i]
		}
	}

	out := &TextChunk{Rect: tc.Rect}
	for _, g := range runs {
		out.elements = append(out.elements, g...)
	}
	return out
}

// elementDirection returns the strong bidi class of the first strong rune in
// the element's text, or bidi.ON when every rune is neutral.
func elementDirection(te *TextElement) bidi.Class {
	for _, r := range te.text {
		if cls := runeDirection(r); cls != bidi.ON {
			return cls
		}
	}
	return bidi.ON
}

// Line is a horizontal band of chunks: the enclosing rectangle plus the
// chunks that fall in it, left to right.
type Line struct {
	Rect

	chunks []*TextChunk
}

// Chunks returns the line's chunks.
func (l *Line) Chunks() []*TextChunk { return l.chunks }

// AddChunk appends a chunk and expands the line's bounds to cover it.
func (l *Line) AddChunk(tc *TextChunk) {
	if len(l.chunks) == 0 {
		l.Rect = tc.Rect
	} else {
		l.Merge(tc.Rect)
	}
	l.chunks = append(l.chunks, tc)
}

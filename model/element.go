package model

import "strings"

// FontID is an opaque handle identifying a font resource. The content-stream
// walker assigns them; the core only ever compares them for equality.
type FontID string

// TextElement is a single positioned glyph: its box on the page, the decoded
// unicode text (typically one grapheme), the font it was set in, and the
// walker's estimate of the width of a space in that font. Elements are
// immutable once constructed.
type TextElement struct {
	Rect

	text         string
	font         FontID
	fontSize     float64
	widthOfSpace float64
	direction    float64
}

// NewTextElement creates a glyph record at the given box.
func NewTextElement(top, left, width, height float64, font FontID, fontSize float64, text string, widthOfSpace float64) *TextElement {
	return NewTextElementWithDirection(top, left, width, height, font, fontSize, text, widthOfSpace, 0)
}

// NewTextElementWithDirection creates a glyph record carrying the text
// direction, in degrees, reported by the walker.
func NewTextElementWithDirection(top, left, width, height float64, font FontID, fontSize float64, text string, widthOfSpace, direction float64) *TextElement {
	return &TextElement{
		Rect:         NewRect(top, left, width, height),
		text:         text,
		font:         font,
		fontSize:     fontSize,
		widthOfSpace: widthOfSpace,
		direction:    direction,
	}
}

// Text returns the glyph's unicode text.
func (te *TextElement) Text() string { return te.text }

// Font returns the opaque font handle.
func (te *TextElement) Font() FontID { return te.font }

// FontSize returns the font size in points.
func (te *TextElement) FontSize() float64 { return te.fontSize }

// WidthOfSpace returns the walker's estimate of the width of a space glyph
// in this element's font, used for word-boundary decisions.
func (te *TextElement) WidthOfSpace() float64 { return te.widthOfSpace }

// Direction returns the text direction tag in degrees.
func (te *TextElement) Direction() float64 { return te.direction }

// IsWhitespace reports whether the glyph's text is entirely whitespace.
func (te *TextElement) IsWhitespace() bool {
	return strings.TrimSpace(te.text) == ""
}

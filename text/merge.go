package text

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/tablex/model"
	"github.com/tsawler/tablex/rulings"
)

// MergeConfig holds the spacing tolerances used by the word merger.
type MergeConfig struct {
	// AvgCharTol scales the running average character width into the gap a
	// word break must exceed.
	AvgCharTol float64

	// WordSpacingTol scales the font's space width into the same gap.
	WordSpacingTol float64
}

// DefaultMergeConfig returns the tolerances tuned on the reference corpus.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		AvgCharTol:     0.3,
		WordSpacingTol: 0.5,
	}
}

// MergeWords groups a reading-ordered glyph stream into chunks, one per
// visual word. See MergeWordsWith for the rules.
func MergeWords(glyphs []*model.TextElement, verticalRulings []rulings.Ruling) []*model.TextChunk {
	return MergeWordsWith(DefaultMergeConfig(), glyphs, verticalRulings)
}

// MergeWordsWith walks the glyph stream and decides, for each glyph against
// the tail of the current chunk, whether it continues the word, starts a new
// one, or should be preceded by a synthetic space. The expected start of the
// next word is learned from the smaller of the font's space width and the
// running average character width. A vertical ruling passing between two
// glyphs always breaks the word, regardless of spacing.
//
// The input slice is never mutated; the merger works on a copy.
func MergeWordsWith(cfg MergeConfig, glyphs []*model.TextElement, verticalRulings []rulings.Ruling) []*model.TextChunk {
	var chunks []*model.TextChunk
	if len(glyphs) == 0 {
		return chunks
	}

	// work on a copy: callers rely on the glyph stream surviving the merge
	elements := make([]*model.TextElement, len(glyphs))
	copy(elements, glyphs)

	first := model.NewTextChunk(elements[0])
	chunks = append(chunks, first)

	previousAvgCharWidth := first.Width
	endOfLastTextX := first.Right()
	maxBottomForLine := first.Bottom()
	maxHeightForLine := first.Height
	lastWordSpacing := -1.0

	for _, chr := range elements[1:] {
		currentChunk := chunks[len(chunks)-1]
		tail := currentChunk.Elements()
		prevChar := tail[len(tail)-1]

		// a re-drawn glyph: same text, mostly the same place
		if chr.Text() == prevChar.Text() && prevChar.OverlapRatio(chr.Rect) > 0.5 {
			continue
		}

		// a space stamped on top of the previous glyph
		if chr.Text() == " " && model.Feq(prevChar.Left, chr.Left) && model.Feq(prevChar.Top, chr.Top) {
			continue
		}

		// font or size changed: the average character width no longer applies
		if chr.Font() != prevChar.Font() || !model.Feq(chr.FontSize(), prevChar.FontSize()) {
			previousAvgCharWidth = -1
		}

		acrossVerticalRuling := false
		for _, vr := range verticalRulings {
			if crossesRuling(prevChar, chr, vr) {
				acrossVerticalRuling = true
				break
			}
		}

		wordSpacing := chr.WidthOfSpace()
		var deltaSpace float64
		switch {
		case math.IsNaN(wordSpacing) || wordSpacing == 0:
			deltaSpace = math.Inf(1)
		case lastWordSpacing < 0:
			deltaSpace = wordSpacing * cfg.WordSpacingTol
		default:
			deltaSpace = (wordSpacing + lastWordSpacing) / 2 * cfg.WordSpacingTol
		}

		charWidth := chr.Width / float64(utf8.RuneCountInString(chr.Text()))
		var avgCharWidth float64
		if previousAvgCharWidth < 0 {
			avgCharWidth = charWidth
		} else {
			avgCharWidth = (previousAvgCharWidth + charWidth) / 2
		}
		deltaCharWidth := avgCharWidth * cfg.AvgCharTol

		expectedStartOfNextWordX := math.Inf(-1)
		if endOfLastTextX != -1 {
			expectedStartOfNextWordX = endOfLastTextX + math.Min(deltaCharWidth, deltaSpace)
		}

		sameLine := true
		if !model.Overlap(chr.Bottom(), chr.Height, maxBottomForLine, maxHeightForLine) {
			endOfLastTextX = -1
			expectedStartOfNextWordX = math.Inf(-1)
			maxBottomForLine = math.Inf(-1)
			maxHeightForLine = -1
			sameLine = false
		}

		endOfLastTextX = chr.Right()

		var sp *model.TextElement
		if !acrossVerticalRuling && sameLine &&
			expectedStartOfNextWordX < chr.Left &&
			!strings.HasSuffix(prevChar.Text(), " ") {
			sp = model.NewTextElement(
				prevChar.Top,
				prevChar.Left,
				expectedStartOfNextWordX-prevChar.Left,
				prevChar.Height,
				prevChar.Font(),
				prevChar.FontSize(),
				" ",
				prevChar.WidthOfSpace(),
			)
			currentChunk.Add(sp)
		}

		maxBottomForLine = math.Max(chr.Bottom(), maxBottomForLine)
		maxHeightForLine = math.Max(maxHeightForLine, chr.Height)

		var dist float64
		if sp != nil {
			dist = chr.Left - sp.Right()
		} else {
			dist = chr.Left - prevChar.Right()
		}

		join := false
		if !acrossVerticalRuling && sameLine {
			if dist < 0 {
				join = currentChunk.VerticallyOverlaps(chr.Rect)
			} else {
				join = dist < wordSpacing
			}
		}
		if join {
			currentChunk.Add(chr)
		} else {
			chunks = append(chunks, model.NewTextChunk(chr))
		}

		lastWordSpacing = wordSpacing
		if sp != nil {
			previousAvgCharWidth = (avgCharWidth + sp.Width) / 2
		} else {
			previousAvgCharWidth = avgCharWidth
		}
	}

	// regroup each chunk by directionality; a chunk whose left-to-right
	// count does not lose to its right-to-left count reads LTR, and purely
	// neutral chunks count as LTR too
	out := make([]*model.TextChunk, 0, len(chunks))
	for _, chunk := range chunks {
		ltrDominant := chunk.LtrDominant() != -1
		out = append(out, chunk.GroupByDirectionality(ltrDominant))
	}
	return out
}

// crossesRuling reports whether the vertical ruling vr separates the two
// glyphs: it overlaps both vertically and its position lies strictly between
// them horizontally, in either reading order.
func crossesRuling(a, b *model.TextElement, vr rulings.Ruling) bool {
	if !verticallyOverlapsRuling(a, vr) || !verticallyOverlapsRuling(b, vr) {
		return false
	}
	pos := vr.Position()
	return (a.Left < pos && b.Left > pos) || (a.Left > pos && b.Left < pos)
}

func verticallyOverlapsRuling(te *model.TextElement, vr rulings.Ruling) bool {
	return math.Min(te.Bottom(), vr.Y2)-math.Max(te.Top, vr.Y1) > 0
}

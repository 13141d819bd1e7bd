package tables

import (
	"sort"

	"github.com/tsawler/tablex/model"
	"github.com/tsawler/tablex/pages"
	"github.com/tsawler/tablex/rulings"
	"github.com/tsawler/tablex/text"
)

// StreamExtractor recovers tables from text alignment alone. Words are
// banded into lines, column boundaries are inferred from how words stack
// across lines (or taken from injected vertical rulings), and every word is
// placed at its (line, column) position in a single page-sized table.
type StreamExtractor struct {
	config Config

	// verticalRulings, when set, both gate word merging and fix the column
	// boundaries instead of inferring them.
	verticalRulings []rulings.Ruling
}

// NewStreamExtractor creates a stream extractor with default configuration.
func NewStreamExtractor() *StreamExtractor {
	return &StreamExtractor{config: DefaultConfig()}
}

// NewStreamExtractorWithRulings creates a stream extractor that honors the
// given vertical rulings as column barriers and boundaries.
func NewStreamExtractorWithRulings(verticalRulings []rulings.Ruling) *StreamExtractor {
	return &StreamExtractor{config: DefaultConfig(), verticalRulings: verticalRulings}
}

// Name returns the extraction-method tag ("stream").
func (e *StreamExtractor) Name() string { return "stream" }

// Configure sets the extractor configuration.
func (e *StreamExtractor) Configure(config Config) { e.config = config }

// ExtractWithPositions runs the extractor with explicit column boundary x
// positions; each position becomes a full-height vertical ruling.
func (e *StreamExtractor) ExtractWithPositions(page *pages.Page, xs []float64) []*model.Table {
	vs := make([]rulings.Ruling, 0, len(xs))
	for _, x := range xs {
		vs = append(vs, rulings.NewFromBox(page.Top, x, 0, page.Height))
	}
	sub := *e
	sub.verticalRulings = vs
	return sub.Extract(page)
}

// Extract produces a single table covering the page. A page with no glyphs
// yields the empty sentinel table.
func (e *StreamExtractor) Extract(page *pages.Page) []*model.Table {
	glyphs := page.Glyphs()
	if len(glyphs) == 0 {
		return []*model.Table{model.EmptyTable()}
	}

	chunks := text.MergeWordsWith(e.config.Merge, glyphs, e.verticalRulings)
	lines := text.GroupByLines(chunks)

	var columns []float64
	if e.verticalRulings != nil {
		vs := make([]rulings.Ruling, len(e.verticalRulings))
		copy(vs, e.verticalRulings)
		sort.SliceStable(vs, func(i, j int) bool {
			return vs[i].Left() < vs[j].Left()
		})
		columns = make([]float64, 0, len(vs))
		for _, vr := range vs {
			columns = append(columns, vr.Left())
		}
	} else {
		columns = ColumnPositions(lines)
	}

	table := model.NewTable(e.Name())
	table.Rect = page.Rect
	table.SetPageNumber(page.Number())

	for i, line := range lines {
		chunks := line.Chunks()
		sort.SliceStable(chunks, func(a, b int) bool {
			return chunks[a].Left < chunks[b].Left
		})

		for _, tc := range chunks {
			if tc.IsSameChar(model.WhitespaceChars) {
				continue
			}

			// place the chunk in the first column whose boundary reaches
			// past its left edge, or in a trailing catch-all column
			col := len(columns)
			for j, boundary := range columns {
				if tc.Left <= boundary {
					col = j
					break
				}
			}
			table.Add(tc, i, col)
		}
	}

	return []*model.Table{table}
}

// ColumnPositions infers column boundary x coordinates from banded lines.
// The non-blank chunks of the first line seed one region each; every later
// line's chunks are merged into the first region they horizontally overlap,
// and leftover chunks open new regions. The right edges of the regions,
// ascending, are the boundaries.
func ColumnPositions(lines []*model.Line) []float64 {
	var regions []*model.Rect
	for _, tc := range lines[0].Chunks() {
		if tc.IsSameChar(model.WhitespaceChars) {
			continue
		}
		r := tc.Rect
		regions = append(regions, &r)
	}

	for _, line := range lines[1:] {
		var residual []*model.TextChunk
		for _, tc := range line.Chunks() {
			if !tc.IsSameChar(model.WhitespaceChars) {
				residual = append(residual, tc)
			}
		}

		for _, region := range regions {
			// collect first, merge after: merging mid-scan would grow the
			// region and capture chunks it did not originally overlap
			var overlaps, remaining []*model.TextChunk
			for _, tc := range residual {
				if region.HorizontallyOverlaps(tc.Rect) {
					overlaps = append(overlaps, tc)
				} else {
					remaining = append(remaining, tc)
				}
			}
			for _, tc := range overlaps {
				region.Merge(tc.Rect)
			}
			residual = remaining
		}

		for _, tc := range residual {
			r := tc.Rect
			regions = append(regions, &r)
		}
	}

	out := make([]float64, 0, len(regions))
	for _, region := range regions {
		out = append(out, region.Right())
	}
	sort.Float64s(out)
	return out
}

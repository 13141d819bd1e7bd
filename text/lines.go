package text

import (
	"sort"

	"github.com/tsawler/tablex/model"
)

// GroupByLines bands chunks into visual lines. A new line opens whenever the
// next chunk's vertical band no longer overlaps the running band of the
// current line, the same criterion the word merger uses to detect a line
// break. Within each line chunks are sorted by their left edge. The input
// slice is not modified.
func GroupByLines(chunks []*model.TextChunk) []*model.Line {
	if len(chunks) == 0 {
		return nil
	}

	sorted := make([]*model.TextChunk, len(chunks))
	copy(sorted, chunks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Top < sorted[j].Top
	})

	var lines []*model.Line
	current := &model.Line{}
	current.AddChunk(sorted[0])
	maxBottom := sorted[0].Bottom()
	maxHeight := sorted[0].Height

	for _, tc := range sorted[1:] {
		if !model.Overlap(tc.Bottom(), tc.Height, maxBottom, maxHeight) {
			lines = append(lines, current)
			current = &model.Line{}
			maxBottom = tc.Bottom()
			maxHeight = tc.Height
		} else {
			if b := tc.Bottom(); b > maxBottom {
				maxBottom = b
			}
			if tc.Height > maxHeight {
				maxHeight = tc.Height
			}
		}
		current.AddChunk(tc)
	}
	lines = append(lines, current)

	for _, l := range lines {
		cs := l.Chunks()
		sort.SliceStable(cs, func(i, j int) bool {
			return cs[i].Left < cs[j].Left
		})
	}
	return lines
}

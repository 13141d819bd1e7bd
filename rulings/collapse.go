package rulings

import (
	"math"
	"sort"

	"github.com/tsawler/tablex/model"
)

// CollapseOriented merges a list of same-orientation rulings: fragments at
// the same position whose extents nearly touch are fused into one ruling,
// and zero-length fragments are dropped. PDF producers routinely draw one
// visual line as many short strokes; collapsing recovers the visual line.
//
// The input order is not preserved; the result is sorted by ascending
// position, then start. The input slice itself is left untouched.
func CollapseOriented(lines []Ruling) []Ruling {
	return CollapseOrientedWith(lines, ColinearExpand)
}

// CollapseOrientedWith is CollapseOriented with a caller-chosen expansion
// amount for the touch test.
func CollapseOrientedWith(lines []Ruling, expandAmount float64) []Ruling {
	sorted := make([]Ruling, 0, len(lines))
	for _, l := range lines {
		// zero-length fragments have no orientation, so they leave before
		// the sort that reads their position
		if l.Length() > 0 {
			sorted = append(sorted, l)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if d := sorted[i].Position() - sorted[j].Position(); d != 0 {
			return d < 0
		}
		return sorted[i].Start() < sorted[j].Start()
	})

	var out []Ruling
	for _, next := range sorted {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if model.Feq(next.Position(), last.Position()) && last.NearlyIntersectsWith(next, expandAmount) {
				lastStart, lastEnd := last.Start(), last.End()
				lastFlipped := lastStart > lastEnd
				nextFlipped := next.Start() > next.End()

				nextS, nextE := next.Start(), next.End()
				if nextFlipped != lastFlipped {
					nextS, nextE = nextE, nextS
				}

				newStart := math.Min(nextS, lastStart)
				newEnd := math.Max(nextE, lastEnd)
				if lastFlipped {
					newStart = math.Max(nextS, lastStart)
					newEnd = math.Min(nextE, lastEnd)
				}
				last.setStartEnd(newStart, newEnd)
				continue
			}
		}
		if next.Length() == 0 {
			continue
		}
		out = append(out, next)
	}
	return out
}

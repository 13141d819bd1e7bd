package tables

import (
	"sort"

	"github.com/tsawler/tablex/model"
	"github.com/tsawler/tablex/pages"
	"github.com/tsawler/tablex/rulings"
	"github.com/tsawler/tablex/text"
)

// LatticeExtractor recovers tables from the ruling lines drawn on a page.
// Only pages whose tables have all four cell edges drawn produce output;
// cells for incomplete grids are intentionally not synthesized.
type LatticeExtractor struct {
	config Config
}

// NewLatticeExtractor creates a lattice extractor with default configuration.
func NewLatticeExtractor() *LatticeExtractor {
	return &LatticeExtractor{config: DefaultConfig()}
}

// Name returns the extraction-method tag ("lattice").
func (e *LatticeExtractor) Name() string { return "lattice" }

// Configure sets the extractor configuration.
func (e *LatticeExtractor) Configure(config Config) { e.config = config }

// Extract finds ruled tables on the page, see ExtractTables.
func (e *LatticeExtractor) Extract(page *pages.Page) []*model.Table {
	withRulings := e.ExtractTables(page)
	out := make([]*model.Table, len(withRulings))
	for i, t := range withRulings {
		out[i] = t.Table
	}
	return out
}

// ExtractTables runs the full lattice pipeline: partition and collapse the
// page's rulings, discover cells at their intersections, assemble adjacent
// cells into table regions, then fill each cell with the words found inside
// it. The produced tables carry the rulings crossing their region and are
// ordered top-to-bottom, left-to-right.
func (e *LatticeExtractor) ExtractTables(page *pages.Page) []*TableWithRulingLines {
	return e.extractWithRulings(page, page.Rulings())
}

// ExtractTablesWithRulings is ExtractTables with a caller-supplied ruling
// list replacing the page's own.
func (e *LatticeExtractor) ExtractTablesWithRulings(page *pages.Page, rs []rulings.Ruling) []*TableWithRulingLines {
	return e.extractWithRulings(page, rs)
}

func (e *LatticeExtractor) extractWithRulings(page *pages.Page, rs []rulings.Ruling) []*TableWithRulingLines {
	var horizontal, vertical []rulings.Ruling
	for _, r := range rs {
		switch {
		case r.Horizontal():
			horizontal = append(horizontal, r)
		case r.Vertical():
			vertical = append(vertical, r)
		}
	}
	horizontal = rulings.CollapseOriented(horizontal)
	vertical = rulings.CollapseOriented(vertical)

	cells := FindCells(horizontal, vertical)
	regions := FindTableRegions(cells)

	var out []*TableWithRulingLines
	for _, region := range regions {
		var overlapping []*model.Cell
		for _, c := range cells {
			if c.Intersects(region) {
				c.SetChunks(text.MergeWordsWith(e.config.Merge, page.TextIn(c.Rect), nil))
				overlapping = append(overlapping, c)
			}
		}

		var hOverlap, vOverlap []rulings.Ruling
		for _, hr := range horizontal {
			if hr.IntersectsRect(region) {
				hOverlap = append(hOverlap, hr)
			}
		}
		for _, vr := range vertical {
			if vr.IntersectsRect(region) {
				vOverlap = append(vOverlap, vr)
			}
		}

		out = append(out, newTableWithRulingLines(region, overlapping, hOverlap, vOverlap, e.Name(), page.Number()))
	}

	model.SortVisual(out)
	return out
}

// IsTabular reports whether the page reads as a ruled table. Both strategies
// are run over the minimal rectangle containing the page's text, and the
// page counts as tabular when their row and column counts agree within the
// configured ratio.
func (e *LatticeExtractor) IsTabular(page *pages.Page) bool {
	if len(page.Glyphs()) == 0 {
		return false
	}

	minimal := page.Area(page.TextBounds())

	latticeTables := e.Extract(minimal)
	if len(latticeTables) == 0 {
		return false
	}
	byLines := latticeTables[0]

	streamTables := NewStreamExtractor().Extract(minimal)
	if len(streamTables) == 0 {
		return false
	}
	byAlignment := streamTables[0]

	if byAlignment.RowCount() == 0 || byAlignment.ColCount() == 0 {
		return false
	}

	ratio := (float64(byLines.ColCount())/float64(byAlignment.ColCount()) +
		float64(byLines.RowCount())/float64(byAlignment.RowCount())) / 2

	return ratio > e.config.HeuristicRatio && ratio < 1/e.config.HeuristicRatio
}

// FindCells discovers the atomic cells of a ruled grid. For each
// intersection point taken as a candidate top-left corner, the nearest pair
// of a point below on the same vertical edge and a point to the right on the
// same horizontal edge whose opposite corner is also present closes the
// smallest cell anchored at that corner. Edge identity is checked by
// structural equality of the expanded rulings recorded in the intersection
// map.
func FindCells(horizontal, vertical []rulings.Ruling) []*model.Cell {
	var found []*model.Cell
	intersections := rulings.FindIntersections(horizontal, vertical)
	points := rulings.SortedIntersectionPoints(intersections)

	for i, topLeft := range points {
		hv := intersections[topLeft]

		var below, right []model.Point
		for _, p := range points[i:] {
			if p.X == topLeft.X && p.Y > topLeft.Y {
				below = append(below, p)
			}
			if p.Y == topLeft.Y && p.X > topLeft.X {
				right = append(right, p)
			}
		}

	search:
		for _, xPoint := range below {
			// the candidate bottom edge must hang off the same vertical
			if intersections[xPoint].Vertical != hv.Vertical {
				continue
			}
			for _, yPoint := range right {
				// and the candidate right edge off the same horizontal
				if intersections[yPoint].Horizontal != hv.Horizontal {
					continue
				}
				bottomRight := model.Point{X: yPoint.X, Y: xPoint.Y}
				br, ok := intersections[bottomRight]
				if ok &&
					br.Horizontal == intersections[xPoint].Horizontal &&
					br.Vertical == intersections[yPoint].Vertical {
					found = append(found, model.NewCell(topLeft, bottomRight))
					break search
				}
			}
		}
	}

	return found
}

// FindTableRegions assembles cells into table regions. The corner points of
// all cells are XOR-ed (a point shared by an even number of cells is
// interior and cancels out), the surviving points are paired into horizontal
// and vertical edges, and closed polygons are walked out of the edge maps by
// alternating directions. Each polygon's bounding box is one region.
//
// Inputs whose surviving point set cannot be paired (an odd point count, or
// a dangling edge during the walk) are malformed, the result of cells that
// are not grid-aligned, and produce no regions.
func FindTableRegions(cells []*model.Cell) []model.Rect {
	if len(cells) == 0 {
		return nil
	}

	unique := make([]*model.Cell, 0, len(cells))
	seen := make(map[model.Rect]bool, len(cells))
	for _, c := range cells {
		if !seen[c.Rect] {
			seen[c.Rect] = true
			unique = append(unique, c)
		}
	}
	model.SortVisual(unique)

	pointSet := make(map[model.Point]bool)
	for _, cell := range unique {
		for _, pt := range cell.Points() {
			rp := model.RoundedPoint(pt)
			if pointSet[rp] {
				delete(pointSet, rp)
			} else {
				pointSet[rp] = true
			}
		}
	}
	if len(pointSet)%2 == 1 {
		return nil
	}

	pointsSortX := make([]model.Point, 0, len(pointSet))
	for p := range pointSet {
		pointsSortX = append(pointsSortX, p)
	}
	pointsSortY := make([]model.Point, len(pointsSortX))
	copy(pointsSortY, pointsSortX)
	sort.Slice(pointsSortX, func(i, j int) bool {
		return model.ComparePointsXFirst(pointsSortX[i], pointsSortX[j]) < 0
	})
	sort.Slice(pointsSortY, func(i, j int) bool {
		return model.ComparePointsYFirst(pointsSortY[i], pointsSortY[j]) < 0
	})

	edgesH := make(map[model.Point]model.Point)
	edgesV := make(map[model.Point]model.Point)
	for i := 0; i < len(pointsSortY); i += 2 {
		a, b := pointsSortY[i], pointsSortY[i+1]
		if !model.Feq(a.Y, b.Y) {
			return nil
		}
		edgesH[a] = b
		edgesH[b] = a
	}
	for i := 0; i < len(pointsSortX); i += 2 {
		a, b := pointsSortX[i], pointsSortX[i+1]
		if !model.Feq(a.X, b.X) {
			return nil
		}
		edgesV[a] = b
		edgesV[b] = a
	}

	var regions []model.Rect
	for len(edgesH) > 0 {
		first := smallestPoint(edgesH)
		polygon := []model.Point{first}
		horizontal := true
		delete(edgesH, first)

		for {
			curr := polygon[len(polygon)-1]
			var next model.Point
			var ok bool
			if horizontal {
				next, ok = edgesV[curr]
				delete(edgesV, curr)
			} else {
				next, ok = edgesH[curr]
				delete(edgesH, curr)
			}
			if !ok {
				return nil
			}
			horizontal = !horizontal
			if next == polygon[0] {
				break
			}
			polygon = append(polygon, next)
		}

		for _, pt := range polygon {
			delete(edgesH, pt)
			delete(edgesV, pt)
		}

		top, left := polygon[0].Y, polygon[0].X
		bottom, right := top, left
		for _, pt := range polygon[1:] {
			if pt.Y < top {
				top = pt.Y
			}
			if pt.Y > bottom {
				bottom = pt.Y
			}
			if pt.X < left {
				left = pt.X
			}
			if pt.X > right {
				right = pt.X
			}
		}
		regions = append(regions, model.NewRect(top, left, right-left, bottom-top))
	}

	return regions
}

func smallestPoint(edges map[model.Point]model.Point) model.Point {
	var best model.Point
	first := true
	for p := range edges {
		if first || model.ComparePointsYFirst(p, best) < 0 {
			best = p
			first = false
		}
	}
	return best
}

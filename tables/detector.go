package tables

import (
	"github.com/tsawler/tablex/model"
	"github.com/tsawler/tablex/pages"
	"github.com/tsawler/tablex/rulings"
)

// DetectRegions finds the regions of the page covered by ruled tables
// without extracting any cell text. It runs the cell-discovery half of the
// lattice pipeline and returns the assembled regions top-to-bottom.
func DetectRegions(page *pages.Page) []model.Rect {
	horizontal := rulings.CollapseOriented(page.HorizontalRulings())
	vertical := rulings.CollapseOriented(page.VerticalRulings())

	cells := FindCells(horizontal, vertical)
	regions := FindTableRegions(cells)

	model.SortVisual(regions)
	return regions
}

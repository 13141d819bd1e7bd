// Package tablex recovers tabular data from vector-drawn PDF pages. Given
// the positioned glyphs and line segments emitted by a PDF content-stream
// walker, it reconstructs logical tables: a grid of cells, each holding the
// text that visually belongs inside it, in reading order.
//
// Basic usage:
//
//	page := pages.New(cropBox, 1, glyphs, segments)
//	results := tablex.ExtractTables(page)
//	for _, t := range results {
//	    rows := t.GetRows()
//	    // ...
//	}
//
// The extraction strategy is chosen per page: pages whose drawn rulings form
// a grid that agrees with the text layout are extracted by following the
// lines ("lattice"), everything else by text alignment alone ("stream").
// Both strategies are also available directly in the tables package.
package tablex

import (
	"github.com/tsawler/tablex/model"
	"github.com/tsawler/tablex/pages"
	"github.com/tsawler/tablex/tables"
)

// ExtractTables extracts every table from the page, picking the extraction
// method with the tabular-page heuristic.
func ExtractTables(page *pages.Page) []*model.Table {
	lattice := tables.NewLatticeExtractor()
	if lattice.IsTabular(page) {
		return lattice.Extract(page)
	}
	return tables.NewStreamExtractor().Extract(page)
}

// ExtractWithMethod extracts with a named method ("lattice" or "stream").
// Unknown names return nil.
func ExtractWithMethod(page *pages.Page, method string) []*model.Table {
	e := tables.GetExtractor(method)
	if e == nil {
		return nil
	}
	return e.Extract(page)
}

package tables

import (
	"sort"

	"github.com/tsawler/tablex/index"
	"github.com/tsawler/tablex/model"
	"github.com/tsawler/tablex/rulings"
)

// TableWithRulingLines is a lattice table together with the cells it was
// assembled from and the rulings crossing its region.
type TableWithRulingLines struct {
	*model.Table

	cells             []*model.Cell
	horizontalRulings []rulings.Ruling
	verticalRulings   []rulings.Ruling
}

// Cells returns the discovered cells inside the table region.
func (t *TableWithRulingLines) Cells() []*model.Cell { return t.cells }

// HorizontalRulings returns the collapsed horizontal rulings crossing the
// table region.
func (t *TableWithRulingLines) HorizontalRulings() []rulings.Ruling {
	return t.horizontalRulings
}

// VerticalRulings returns the collapsed vertical rulings crossing the table
// region.
func (t *TableWithRulingLines) VerticalRulings() []rulings.Ruling {
	return t.verticalRulings
}

func newTableWithRulingLines(area model.Rect, cells []*model.Cell, horizontal, vertical []rulings.Ruling, method string, pageNumber int) *TableWithRulingLines {
	table := model.NewTable(method)
	table.Rect = area
	table.SetPageNumber(pageNumber)

	t := &TableWithRulingLines{
		Table:             table,
		cells:             cells,
		horizontalRulings: horizontal,
		verticalRulings:   vertical,
	}
	t.addCells(cells)
	return t
}

// addCells assigns row and column indices to the cells. Cells are grouped
// into rows by fuzzy-equal tops; within a row the starting column is the
// widest row of cells found entirely to the left of the row's first cell,
// so that rows indented past missing leading cells keep their columns.
func (t *TableWithRulingLines) addCells(cells []*model.Cell) {
	if len(cells) == 0 {
		return
	}

	si := index.New[*model.Cell]()
	for _, c := range cells {
		si.Add(c)
	}

	for i, row := range rowsOfCells(cells) {
		first := row[0]
		leftBand := model.NewRect(first.Top, t.Left, first.Left-t.Left, first.Height)
		startColumn := 0
		for _, r := range rowsOfCells(si.Contains(leftBand)) {
			if len(r) > startColumn {
				startColumn = len(r)
			}
		}
		for _, c := range row {
			t.Add(c.Chunk(), i, startColumn)
			startColumn++
		}
	}
}

// rowsOfCells groups cells into rows of fuzzy-equal top coordinates. Cells
// are ordered by top then left; the input slice is not modified.
func rowsOfCells(cells []*model.Cell) [][]*model.Cell {
	if len(cells) == 0 {
		return nil
	}

	sorted := make([]*model.Cell, len(cells))
	copy(sorted, cells)
	sort.SliceStable(sorted, func(i, j int) bool {
		if model.Feq(sorted[i].Top, sorted[j].Top) {
			return sorted[i].Left < sorted[j].Left
		}
		return sorted[i].Top < sorted[j].Top
	})

	rows := [][]*model.Cell{{sorted[0]}}
	lastTop := sorted[0].Top
	for _, c := range sorted[1:] {
		if !model.Feq(c.Top, lastTop) {
			rows = append(rows, nil)
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], c)
		lastTop = c.Top
	}
	return rows
}

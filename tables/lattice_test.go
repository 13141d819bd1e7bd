package tables

import (
	"strings"
	"testing"

	"github.com/tsawler/tablex/model"
	"github.com/tsawler/tablex/pages"
	"github.com/tsawler/tablex/rulings"
)

func horiz(y, x1, x2 float64) rulings.Ruling {
	return rulings.New(model.Point{X: x1, Y: y}, model.Point{X: x2, Y: y})
}

func vert(x, y1, y2 float64) rulings.Ruling {
	return rulings.New(model.Point{X: x, Y: y1}, model.Point{X: x, Y: y2})
}

// grid3x3 is a full 3x3 grid: horizontals at y in {100,150,200,250} and
// verticals at x in {50,100,150,200}, all spanning the grid.
func grid3x3() []rulings.Ruling {
	var rs []rulings.Ruling
	for _, y := range []float64{100, 150, 200, 250} {
		rs = append(rs, horiz(y, 50, 200))
	}
	for _, x := range []float64{50, 100, 150, 200} {
		rs = append(rs, vert(x, 100, 250))
	}
	return rs
}

func TestFindCellsGrid(t *testing.T) {
	var hs, vs []rulings.Ruling
	for _, r := range grid3x3() {
		if r.Horizontal() {
			hs = append(hs, r)
		} else {
			vs = append(vs, r)
		}
	}
	cells := FindCells(hs, vs)
	if len(cells) != 9 {
		t.Fatalf("3x3 grid produced %d cells, want 9", len(cells))
	}

	// each returned cell's corners must all be present in the intersection
	// map with matching ruling identities
	intersections := rulings.FindIntersections(hs, vs)
	for _, c := range cells {
		corners := c.Points()
		tl, ok1 := intersections[model.RoundedPoint(corners[0])]
		tr, ok2 := intersections[model.RoundedPoint(corners[1])]
		br, ok3 := intersections[model.RoundedPoint(corners[2])]
		bl, ok4 := intersections[model.RoundedPoint(corners[3])]
		if !ok1 || !ok2 || !ok3 || !ok4 {
			t.Fatalf("cell %+v has a corner missing from the intersection map", c.Rect)
		}
		if tl.Horizontal != tr.Horizontal {
			t.Error("top corners disagree on the horizontal edge")
		}
		if tl.Vertical != bl.Vertical {
			t.Error("left corners disagree on the vertical edge")
		}
		if br.Horizontal != bl.Horizontal {
			t.Error("bottom corners disagree on the horizontal edge")
		}
		if br.Vertical != tr.Vertical {
			t.Error("right corners disagree on the vertical edge")
		}
	}

	// cells are the atomic ones, 50 units on a side
	for _, c := range cells {
		if c.Width != 50 || c.Height != 50 {
			t.Errorf("cell %+v is not atomic", c.Rect)
		}
	}
}

func TestFindCellsIncompleteGrid(t *testing.T) {
	// three horizontals but only one vertical: no closed rectangle
	hs := []rulings.Ruling{
		horiz(100, 50, 200),
		horiz(150, 50, 200),
		horiz(200, 50, 200),
	}
	vs := []rulings.Ruling{
		vert(50, 100, 200),
	}
	if cells := FindCells(hs, vs); len(cells) != 0 {
		t.Errorf("incomplete grid produced %d cells, want 0", len(cells))
	}
}

func TestFindCellsBrokenHorizontal(t *testing.T) {
	// a horizontal drawn as two fragments fuses during collapse and still
	// closes two cells
	hs := rulings.CollapseOriented([]rulings.Ruling{
		horiz(100, 50, 99),
		horiz(100, 101, 150),
		horiz(200, 50, 150),
	})
	vs := rulings.CollapseOriented([]rulings.Ruling{
		vert(50, 100, 200),
		vert(100, 100, 200),
		vert(150, 100, 200),
	})

	cells := FindCells(hs, vs)
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
}

func TestFindTableRegionsSingleGrid(t *testing.T) {
	var hs, vs []rulings.Ruling
	for _, r := range grid3x3() {
		if r.Horizontal() {
			hs = append(hs, r)
		} else {
			vs = append(vs, r)
		}
	}
	regions := FindTableRegions(FindCells(hs, vs))
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	want := model.NewRect(100, 50, 150, 150)
	if regions[0] != want {
		t.Errorf("region = %+v, want %+v", regions[0], want)
	}
}

func TestFindTableRegionsTwoComponents(t *testing.T) {
	cells := []*model.Cell{
		// component one: two adjacent cells
		model.NewCell(model.Point{X: 0, Y: 0}, model.Point{X: 10, Y: 10}),
		model.NewCell(model.Point{X: 10, Y: 0}, model.Point{X: 20, Y: 10}),
		// component two: a lone cell far away
		model.NewCell(model.Point{X: 100, Y: 100}, model.Point{X: 120, Y: 130}),
	}
	regions := FindTableRegions(cells)
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	wantA := model.NewRect(0, 0, 20, 10)
	wantB := model.NewRect(100, 100, 20, 30)
	seenA, seenB := false, false
	for _, r := range regions {
		switch r {
		case wantA:
			seenA = true
		case wantB:
			seenB = true
		}
	}
	if !seenA || !seenB {
		t.Errorf("regions = %+v, want %+v and %+v", regions, wantA, wantB)
	}
}

func TestFindTableRegionsDeduplicates(t *testing.T) {
	cell := model.NewCell(model.Point{X: 0, Y: 0}, model.Point{X: 10, Y: 10})
	dup := model.NewCell(model.Point{X: 0, Y: 0}, model.Point{X: 10, Y: 10})
	regions := FindTableRegions([]*model.Cell{cell, dup})
	if len(regions) != 1 {
		t.Fatalf("duplicate cells produced %d regions, want 1", len(regions))
	}
}

func TestFindTableRegionsEmpty(t *testing.T) {
	if got := FindTableRegions(nil); got != nil {
		t.Errorf("no cells should produce no regions, got %v", got)
	}
}

func TestLatticeExtractGrid(t *testing.T) {
	var glyphs []*model.TextElement
	labels := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			glyphs = append(glyphs, letter(labels[r*3+c], float64(115+50*r), float64(70+50*c), 10, 10))
		}
	}
	page := pages.New(model.NewRect(0, 0, 612, 792), 1, glyphs, grid3x3())

	got := NewLatticeExtractor().ExtractTables(page)
	if len(got) != 1 {
		t.Fatalf("got %d tables, want 1", len(got))
	}
	table := got[0]
	if table.ExtractionMethod() != "lattice" {
		t.Errorf("method = %q, want lattice", table.ExtractionMethod())
	}
	if table.RowCount() != 3 || table.ColCount() != 3 {
		t.Fatalf("table is %dx%d, want 3x3", table.RowCount(), table.ColCount())
	}
	want := model.NewRect(100, 50, 150, 150)
	if table.Rect != want {
		t.Errorf("table rect = %+v, want %+v", table.Rect, want)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			wantText := labels[r*3+c]
			if got := strings.TrimSpace(table.GetCell(r, c).Text()); got != wantText {
				t.Errorf("cell (%d, %d) = %q, want %q", r, c, got, wantText)
			}
		}
	}
	if len(table.HorizontalRulings()) != 4 || len(table.VerticalRulings()) != 4 {
		t.Errorf("table carries %d horizontal and %d vertical rulings, want 4 and 4",
			len(table.HorizontalRulings()), len(table.VerticalRulings()))
	}
}

func TestLatticeExtractBrokenLine(t *testing.T) {
	rs := []rulings.Ruling{
		horiz(100, 50, 99),
		horiz(100, 101, 150),
		horiz(200, 50, 150),
		vert(50, 100, 200),
		vert(100, 100, 200),
		vert(150, 100, 200),
	}
	page := pages.New(model.NewRect(0, 0, 612, 792), 1, nil, rs)

	got := NewLatticeExtractor().ExtractTables(page)
	if len(got) != 1 {
		t.Fatalf("got %d tables, want 1", len(got))
	}
	if len(got[0].Cells()) != 2 {
		t.Errorf("got %d cells, want 2", len(got[0].Cells()))
	}
	if got[0].RowCount() != 1 || got[0].ColCount() != 2 {
		t.Errorf("table is %dx%d, want 1x2", got[0].RowCount(), got[0].ColCount())
	}
}

func TestLatticeExtractNoRulings(t *testing.T) {
	page := pages.New(model.NewRect(0, 0, 612, 792), 1, nil, nil)
	if got := NewLatticeExtractor().Extract(page); len(got) != 0 {
		t.Errorf("page without rulings produced %d tables, want 0", len(got))
	}
}

func TestLatticeIgnoresOblique(t *testing.T) {
	rs := append(grid3x3(), rulings.New(model.Point{X: 0, Y: 0}, model.Point{X: 300, Y: 300}))
	page := pages.New(model.NewRect(0, 0, 612, 792), 1, nil, rs)

	got := NewLatticeExtractor().ExtractTables(page)
	if len(got) != 1 {
		t.Fatalf("oblique ruling changed the result: %d tables", len(got))
	}
	if got[0].RowCount() != 3 || got[0].ColCount() != 3 {
		t.Errorf("table is %dx%d, want 3x3", got[0].RowCount(), got[0].ColCount())
	}
}

func TestDetectRegions(t *testing.T) {
	page := pages.New(model.NewRect(0, 0, 612, 792), 1, nil, grid3x3())
	regions := DetectRegions(page)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	want := model.NewRect(100, 50, 150, 150)
	if regions[0] != want {
		t.Errorf("region = %+v, want %+v", regions[0], want)
	}
}

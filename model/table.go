package model

import "sort"

// Cell is an axis-aligned rectangle bounded by ruling intersections: its
// top-left and bottom-right corners are both intersection points of a
// horizontal and a vertical ruling. The text content is filled in after
// discovery.
type Cell struct {
	Rect

	chunks []*TextChunk
}

// NewCell creates a cell spanning from topLeft to bottomRight.
func NewCell(topLeft, bottomRight Point) *Cell {
	return &Cell{Rect: NewRect(topLeft.Y, topLeft.X, bottomRight.X-topLeft.X, bottomRight.Y-topLeft.Y)}
}

// Chunks returns the chunks found inside the cell.
func (c *Cell) Chunks() []*TextChunk { return c.chunks }

// SetChunks replaces the cell's text content.
func (c *Cell) SetChunks(chunks []*TextChunk) { c.chunks = chunks }

// Text returns the concatenated text of the cell's chunks.
func (c *Cell) Text() string {
	var out string
	for _, tc := range c.chunks {
		out += tc.Text()
	}
	return out
}

// Chunk flattens the cell into a single chunk covering the cell's rectangle,
// suitable for placement into a Table.
func (c *Cell) Chunk() *TextChunk {
	out := &TextChunk{Rect: c.Rect}
	for _, tc := range c.chunks {
		out.elements = append(out.elements, tc.elements...)
	}
	return out
}

// Equal reports structural equality on the cell's corner coordinates.
func (c *Cell) Equal(other *Cell) bool {
	return c.Rect == other.Rect
}

// CellPosition addresses a table cell by row and column. Positions order
// row-first, which defines table iteration order.
type CellPosition struct {
	Row, Col int
}

// Compare orders positions row-first, then by column.
func (p CellPosition) Compare(other CellPosition) int {
	if p.Row != other.Row {
		return p.Row - other.Row
	}
	return p.Col - other.Col
}

// Table is a grid of text chunks recovered from a page region. Cell storage
// is sparse: only occupied positions appear in the map, and materializing
// rows fills the gaps with the Empty sentinel.
type Table struct {
	Rect

	method     string
	pageNumber int
	rowCount   int
	colCount   int
	cells      map[CellPosition]*TextChunk

	memoizedRows [][]*TextChunk
}

// NewTable creates an empty table tagged with the extraction method that
// produced it ("lattice" or "stream").
func NewTable(method string) *Table {
	return &Table{method: method, cells: make(map[CellPosition]*TextChunk)}
}

// EmptyTable returns the sentinel table produced for pages with no text.
func EmptyTable() *Table {
	return NewTable("")
}

// ExtractionMethod returns the tag of the algorithm that built the table.
func (t *Table) ExtractionMethod() string { return t.method }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return t.rowCount }

// ColCount returns the number of columns.
func (t *Table) ColCount() int { return t.colCount }

// PageNumber returns the 1-based page the table was found on.
func (t *Table) PageNumber() int { return t.pageNumber }

// SetPageNumber records the 1-based page the table was found on.
func (t *Table) SetPageNumber(n int) { t.pageNumber = n }

// Add places chunk at (row, col), growing the row and column counts to cover
// the position. The table's bounds expand to include the chunk. If the
// position is already occupied the new chunk absorbs the old one, merging
// geometry and concatenating glyphs in reading order.
func (t *Table) Add(chunk *TextChunk, row, col int) {
	t.Merge(chunk.Rect)

	if row+1 > t.rowCount {
		t.rowCount = row + 1
	}
	if col+1 > t.colCount {
		t.colCount = col + 1
	}

	pos := CellPosition{Row: row, Col: col}
	if old, ok := t.cells[pos]; ok {
		chunk.MergeWith(old)
	}
	t.cells[pos] = chunk

	t.memoizedRows = nil
}

// GetCell returns the chunk at (row, col), or the Empty sentinel when the
// position is vacant. It never returns nil.
func (t *Table) GetCell(row, col int) *TextChunk {
	if c, ok := t.cells[CellPosition{Row: row, Col: col}]; ok {
		return c
	}
	return Empty
}

// GetRows materializes the full row matrix: RowCount rows of ColCount
// entries each, with vacant positions holding the Empty sentinel. The matrix
// is memoized until the next Add.
func (t *Table) GetRows() [][]*TextChunk {
	if t.memoizedRows == nil {
		t.memoizedRows = t.computeRows()
	}
	return t.memoizedRows
}

func (t *Table) computeRows() [][]*TextChunk {
	rows := make([][]*TextChunk, t.rowCount)
	for i := 0; i < t.rowCount; i++ {
		row := make([]*TextChunk, t.colCount)
		for j := 0; j < t.colCount; j++ {
			row[j] = t.GetCell(i, j)
		}
		rows[i] = row
	}
	return rows
}

// Positions returns the occupied cell positions in row-major order.
func (t *Table) Positions() []CellPosition {
	positions := make([]CellPosition, 0, len(t.cells))
	for pos := range t.cells {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Compare(positions[j]) < 0
	})
	return positions
}

package index

import (
	"github.com/tidwall/rtree"

	"github.com/tsawler/tablex/model"
)

// RectIndex is an R-tree of page objects keyed by their bounding rectangles.
type RectIndex[T model.Visual] struct {
	tree  rtree.RTreeG[T]
	items []T
}

// New creates an empty index.
func New[T model.Visual]() *RectIndex[T] {
	return &RectIndex[T]{}
}

// Add inserts an item into the index.
func (ix *RectIndex[T]) Add(item T) {
	b := item.Bounds()
	ix.items = append(ix.items, item)
	ix.tree.Insert([2]float64{b.Left, b.Top}, [2]float64{b.Right(), b.Bottom()}, item)
}

// Len returns the number of indexed items.
func (ix *RectIndex[T]) Len() int { return len(ix.items) }

// Intersects returns every item whose envelope intersects r. The result is
// a candidate set: items touching r only at an edge are included, and no
// ordering is guaranteed.
func (ix *RectIndex[T]) Intersects(r model.Rect) []T {
	var out []T
	ix.tree.Search(
		[2]float64{r.Left, r.Top},
		[2]float64{r.Right(), r.Bottom()},
		func(_, _ [2]float64, item T) bool {
			out = append(out, item)
			return true
		},
	)
	return out
}

// Contains returns the items lying entirely inside r, in visual order.
func (ix *RectIndex[T]) Contains(r model.Rect) []T {
	candidates := ix.Intersects(r)
	out := make([]T, 0, len(candidates))
	for _, item := range candidates {
		if r.Contains(item.Bounds()) {
			out = append(out, item)
		}
	}
	model.SortVisual(out)
	return out
}

// Bounds returns the bounding box of everything added to the index. It
// panics when the index is empty.
func (ix *RectIndex[T]) Bounds() model.Rect {
	rects := make([]model.Rect, len(ix.items))
	for i, item := range ix.items {
		rects[i] = item.Bounds()
	}
	return model.BoundingBoxOf(rects)
}

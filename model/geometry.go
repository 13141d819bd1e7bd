package model

import (
	"math"
	"sort"
)

// Eps is the tolerance underlying all fuzzy coordinate comparisons.
const Eps = 0.01

// RoundDecimals is the number of decimal places coordinates are rounded to
// when they are used as map keys or compared for point identity.
const RoundDecimals = 2

// VerticalComparisonThreshold is the vertical overlap ratio above which two
// rectangles are considered to be on the same visual row by CompareVisual.
const VerticalComparisonThreshold = 0.4

// Feq reports whether two coordinates are equal within Eps.
func Feq(a, b float64) bool {
	return math.Abs(a-b) < Eps
}

// Within reports whether second lies within variance of first.
func Within(first, second, variance float64) bool {
	return second < first+variance && second > first-variance
}

// Round rounds v to the given number of decimal places, half away from zero.
func Round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// Overlap reports whether two vertical bands overlap. Each band is given by
// its bottom coordinate and its height, measured upward. A small variance
// absorbs baseline jitter between glyphs of the same visual line.
func Overlap(bottom1, height1, bottom2, height2 float64) bool {
	return Within(bottom1, bottom2, 0.1) ||
		(bottom2 <= bottom1 && bottom2 >= bottom1-height1) ||
		(bottom1 <= bottom2 && bottom1 >= bottom2-height2)
}

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// RoundedPoint returns p with both coordinates rounded to RoundDecimals
// places, suitable for use as a map key.
func RoundedPoint(p Point) Point {
	return Point{X: Round(p.X, RoundDecimals), Y: Round(p.Y, RoundDecimals)}
}

// ComparePointsYFirst orders points by rounded y, then rounded x. It is the
// row-major iteration order for ruling intersections.
func ComparePointsYFirst(a, b Point) int {
	if c := compareRounded(a.Y, b.Y); c != 0 {
		return c
	}
	return compareRounded(a.X, b.X)
}

// ComparePointsXFirst orders points by rounded x, then rounded y.
func ComparePointsXFirst(a, b Point) int {
	if c := compareRounded(a.X, b.X); c != 0 {
		return c
	}
	return compareRounded(a.Y, b.Y)
}

func compareRounded(a, b float64) int {
	ra, rb := Round(a, RoundDecimals), Round(b, RoundDecimals)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// Rect is a mutable axis-aligned rectangle in y-down page coordinates.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// NewRect creates a rectangle from its top-left corner and dimensions.
func NewRect(top, left, width, height float64) Rect {
	return Rect{Top: top, Left: left, Width: width, Height: height}
}

// Right returns the right edge x coordinate.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge y coordinate.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Area returns width times height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Bounds returns the rectangle itself; it exists so that types embedding
// Rect satisfy the spatial interfaces used by the index and sort routines.
func (r Rect) Bounds() Rect { return r }

// LtrDominant reports the dominant reading direction of the content inside
// the rectangle: -1 for right-to-left, +1 for left-to-right, 0 when unknown.
// A bare rectangle has no content and reports 0; containers override this.
func (r Rect) LtrDominant() int { return 0 }

// VerticalOverlap returns the length of the vertical interval shared with
// other, or 0 when the rectangles do not overlap vertically.
func (r Rect) VerticalOverlap(other Rect) float64 {
	return math.Max(0, math.Min(r.Bottom(), other.Bottom())-math.Max(r.Top, other.Top))
}

// VerticallyOverlaps reports whether the shared vertical interval is positive.
func (r Rect) VerticallyOverlaps(other Rect) bool {
	return r.VerticalOverlap(other) > 0
}

// HorizontalOverlap returns the length of the horizontal interval shared
// with other, or 0 when the rectangles do not overlap horizontally.
func (r Rect) HorizontalOverlap(other Rect) float64 {
	return math.Max(0, math.Min(r.Right(), other.Right())-math.Max(r.Left, other.Left))
}

// HorizontallyOverlaps reports whether the shared horizontal interval is positive.
func (r Rect) HorizontallyOverlaps(other Rect) bool {
	return r.HorizontalOverlap(other) > 0
}

// VerticalOverlapRatio returns the shared vertical interval normalized by
// the smaller of the two heights, in [0, 1].
func (r Rect) VerticalOverlapRatio(other Rect) float64 {
	delta := math.Min(r.Height, other.Height)
	if delta <= 0 {
		return 0
	}
	return r.VerticalOverlap(other) / delta
}

// OverlapRatio returns the intersection-over-union of the two rectangles.
func (r Rect) OverlapRatio(other Rect) float64 {
	interW := math.Max(0, math.Min(r.Right(), other.Right())-math.Max(r.Left, other.Left))
	interH := math.Max(0, math.Min(r.Bottom(), other.Bottom())-math.Max(r.Top, other.Top))
	inter := interW * interH
	union := r.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// Intersects reports whether the two rectangles share any area or edge.
func (r Rect) Intersects(other Rect) bool {
	return r.Left <= other.Right() && other.Left <= r.Right() &&
		r.Top <= other.Bottom() && other.Top <= r.Bottom()
}

// Contains reports whether other lies entirely inside r.
func (r Rect) Contains(other Rect) bool {
	return other.Left >= r.Left && other.Right() <= r.Right() &&
		other.Top >= r.Top && other.Bottom() <= r.Bottom()
}

// ContainsPoint reports whether p lies inside r (edges inclusive).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// Merge expands r in place to the union of r and other and returns r.
func (r *Rect) Merge(other Rect) *Rect {
	left := math.Min(r.Left, other.Left)
	top := math.Min(r.Top, other.Top)
	right := math.Max(r.Right(), other.Right())
	bottom := math.Max(r.Bottom(), other.Bottom())
	r.Left, r.Top, r.Width, r.Height = left, top, right-left, bottom-top
	return r
}

// Points returns the four corners in clockwise order starting at top-left.
func (r Rect) Points() [4]Point {
	return [4]Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right(), Y: r.Top},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.Left, Y: r.Bottom()},
	}
}

// BoundingBoxOf returns the smallest rectangle enclosing every rectangle in
// rects. It panics when rects is empty; the bounding box of nothing is
// undefined.
func BoundingBoxOf(rects []Rect) Rect {
	if len(rects) == 0 {
		panic("model: bounding box of empty set")
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, r := range rects {
		minX = math.Min(minX, r.Left)
		minY = math.Min(minY, r.Top)
		maxX = math.Max(maxX, r.Right())
		maxY = math.Max(maxY, r.Bottom())
	}
	return NewRect(minY, minX, maxX-minX, maxY-minY)
}

// Visual is anything occupying a rectangle on the page with a dominant
// reading direction. Rect itself satisfies it, as do all the containers.
type Visual interface {
	Bounds() Rect
	LtrDominant() int
}

// CompareVisual orders two page objects for rendering top-to-bottom,
// left-to-right. When the vertical overlap ratio of the two rectangles
// exceeds VerticalComparisonThreshold they are treated as the same visual
// row and ordered by x, descending when both read right-to-left; otherwise
// they are ordered by bottom edge.
//
// This is not a mathematical total order: it can be intransitive for
// partially overlapping rectangles. SortVisual tolerates that; do not feed
// it to a sort routine that verifies its comparator.
func CompareVisual(a, b Visual) int {
	ra, rb := a.Bounds(), b.Bounds()
	if ra == rb {
		return 0
	}
	if ra.VerticalOverlapRatio(rb) > VerticalComparisonThreshold {
		if a.LtrDominant() == -1 && b.LtrDominant() == -1 {
			return -compareFloat(ra.Left, rb.Left)
		}
		return compareFloat(ra.Left, rb.Left)
	}
	return compareFloat(ra.Bottom(), rb.Bottom())
}

// SortVisual stably sorts items by CompareVisual. The stable merge sort used
// by the standard library never inspects comparator consistency, so the
// intransitivity of CompareVisual cannot crash it.
func SortVisual[T Visual](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return CompareVisual(items[i], items[j]) < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

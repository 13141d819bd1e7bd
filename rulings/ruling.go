package rulings

import (
	"math"

	"github.com/tsawler/tablex/model"
)

// Expansion amounts, in page units, used by the fuzzy intersection tests.
// Perpendicular pairs tolerate more slack than colinear ones because the
// latter are expanded on both sides.
const (
	PerpendicularExpand = 2
	ColinearExpand      = 1
)

// NormalizeAngleTol is the angular tolerance, in degrees, within which a
// segment is snapped to strict horizontal or vertical by Normalize.
const NormalizeAngleTol = 1.0

// MinLength is the shortest segment the walker is expected to emit; page
// ingestion treats segments no longer than this as degenerate and drops them.
const MinLength = 0.01

// Ruling is a line segment between (X1, Y1) and (X2, Y2) in y-down page
// coordinates. After Normalize exactly one of Horizontal, Vertical or
// Oblique holds; only the first two participate in cell finding.
type Ruling struct {
	X1, Y1, X2, Y2 float64
}

// New creates a ruling between the two points and normalizes it.
func New(p1, p2 model.Point) Ruling {
	r := Ruling{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y}
	r.Normalize()
	return r
}

// NewFromBox creates a normalized ruling from a top-left corner and extents,
// mirroring how the walker reports rectangular strokes collapsed to lines.
func NewFromBox(top, left, width, height float64) Ruling {
	return New(model.Point{X: left, Y: top}, model.Point{X: left + width, Y: top + height})
}

// Normalize snaps a segment whose angle is within NormalizeAngleTol of the
// horizontal to y2 = y1, and within the tolerance of the vertical to
// x2 = x1. Anything else is left alone and stays oblique. Normalizing twice
// is a no-op.
func (r *Ruling) Normalize() {
	angle := r.Angle()
	switch {
	case model.Within(angle, 0, NormalizeAngleTol) || model.Within(angle, 180, NormalizeAngleTol) || model.Within(angle, 360, NormalizeAngleTol):
		r.Y2 = r.Y1
	case model.Within(angle, 90, NormalizeAngleTol) || model.Within(angle, 270, NormalizeAngleTol):
		r.X2 = r.X1
	}
}

// Angle returns the segment's angle with the x axis in degrees, in [0, 360).
func (r Ruling) Angle() float64 {
	angle := math.Atan2(r.Y2-r.Y1, r.X2-r.X1) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return angle
}

// Length returns the Euclidean length of the segment.
func (r Ruling) Length() float64 {
	return math.Hypot(r.X1-r.X2, r.Y1-r.Y2)
}

// Vertical reports whether the ruling is strictly vertical with positive length.
func (r Ruling) Vertical() bool {
	return r.Length() > 0 && model.Feq(r.X1, r.X2)
}

// Horizontal reports whether the ruling is strictly horizontal with positive length.
func (r Ruling) Horizontal() bool {
	return r.Length() > 0 && model.Feq(r.Y1, r.Y2)
}

// Oblique reports whether the ruling is neither horizontal nor vertical.
func (r Ruling) Oblique() bool {
	return !r.Vertical() && !r.Horizontal()
}

// Top, Left, Bottom and Right give the endpoint coordinates without implying
// any ordering between them.
func (r Ruling) Top() float64    { return r.Y1 }
func (r Ruling) Left() float64   { return r.X1 }
func (r Ruling) Bottom() float64 { return r.Y2 }
func (r Ruling) Right() float64  { return r.X2 }

// Position returns the fixed coordinate of a non-oblique ruling: x for a
// vertical, y for a horizontal. It panics on an oblique ruling; callers must
// partition by orientation first.
func (r Ruling) Position() float64 {
	if r.Oblique() {
		panic("rulings: Position on oblique ruling")
	}
	if r.Vertical() {
		return r.Left()
	}
	return r.Top()
}

// Start returns the varying coordinate of the first endpoint (top for a
// vertical, left for a horizontal). Panics on an oblique ruling.
func (r Ruling) Start() float64 {
	if r.Oblique() {
		panic("rulings: Start on oblique ruling")
	}
	if r.Vertical() {
		return r.Top()
	}
	return r.Left()
}

// End returns the varying coordinate of the second endpoint (bottom for a
// vertical, right for a horizontal). Panics on an oblique ruling.
func (r Ruling) End() float64 {
	if r.Oblique() {
		panic("rulings: End on oblique ruling")
	}
	if r.Vertical() {
		return r.Bottom()
	}
	return r.Right()
}

func (r *Ruling) setStart(v float64) {
	if r.Vertical() {
		r.Y1 = v
	} else {
		r.X1 = v
	}
}

func (r *Ruling) setEnd(v float64) {
	if r.Vertical() {
		r.Y2 = v
	} else {
		r.X2 = v
	}
}

func (r *Ruling) setStartEnd(start, end float64) {
	if r.Oblique() {
		panic("rulings: setStartEnd on oblique ruling")
	}
	r.setStart(start)
	r.setEnd(end)
}

// Expand returns a copy of the ruling grown by amount at both ends along its
// own direction. The receiver is unchanged.
func (r Ruling) Expand(amount float64) Ruling {
	out := r
	out.setStart(r.Start() - amount)
	out.setEnd(r.End() + amount)
	return out
}

// PerpendicularTo reports whether one ruling is vertical and the other
// horizontal.
func (r Ruling) PerpendicularTo(other Ruling) bool {
	return r.Vertical() == other.Horizontal()
}

// IntersectsLine reports whether the two segments strictly intersect.
func (r Ruling) IntersectsLine(other Ruling) bool {
	return segmentsIntersect(r.X1, r.Y1, r.X2, r.Y2, other.X1, other.Y1, other.X2, other.Y2)
}

// NearlyIntersects reports whether the rulings intersect after tolerance
// expansion: a perpendicular pair is tested with this ruling grown by
// PerpendicularExpand, while a colinear or parallel pair is tested with both
// grown by ColinearExpand.
func (r Ruling) NearlyIntersects(other Ruling) bool {
	return r.NearlyIntersectsWith(other, ColinearExpand)
}

// NearlyIntersectsWith is NearlyIntersects with a caller-chosen expansion for
// the colinear/parallel case.
func (r Ruling) NearlyIntersectsWith(other Ruling, colinearExpand float64) bool {
	if r.IntersectsLine(other) {
		return true
	}
	if r.PerpendicularTo(other) {
		return r.Expand(PerpendicularExpand).IntersectsLine(other)
	}
	return r.Expand(colinearExpand).IntersectsLine(other.Expand(colinearExpand))
}

// IntersectionPoint returns the crossing point of a perpendicular pair after
// expanding both by PerpendicularExpand. The second result is false when the
// expanded segments do not cross. It panics when both rulings have the same
// orientation.
func (r Ruling) IntersectionPoint(other Ruling) (model.Point, bool) {
	var horizontal, vertical Ruling
	switch {
	case r.Horizontal() && other.Vertical():
		horizontal, vertical = r, other
	case r.Vertical() && other.Horizontal():
		vertical, horizontal = r, other
	default:
		panic("rulings: intersection point of parallel rulings")
	}

	he := horizontal.Expand(PerpendicularExpand)
	ve := vertical.Expand(PerpendicularExpand)
	if !he.IntersectsLine(ve) {
		return model.Point{}, false
	}
	return model.Point{X: ve.Left(), Y: he.Top()}, true
}

// IntersectsRect reports whether any part of the ruling lies inside rect.
func (r Ruling) IntersectsRect(rect model.Rect) bool {
	_, ok := r.Clip(rect)
	return ok
}

// CropToArea drops rulings that lie entirely outside area and clips the rest
// to it.
func CropToArea(rs []Ruling, area model.Rect) []Ruling {
	out := make([]Ruling, 0, len(rs))
	for _, r := range rs {
		if clipped, ok := r.Clip(area); ok {
			out = append(out, clipped)
		}
	}
	return out
}

// segmentsIntersect reports whether segment p1-p2 intersects segment p3-p4,
// endpoints included.
func segmentsIntersect(x1, y1, x2, y2, x3, y3, x4, y4 float64) bool {
	d1 := cross(x3, y3, x4, y4, x1, y1)
	d2 := cross(x3, y3, x4, y4, x2, y2)
	d3 := cross(x1, y1, x2, y2, x3, y3)
	d4 := cross(x1, y1, x2, y2, x4, y4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(x3, y3, x4, y4, x1, y1)) ||
		(d2 == 0 && onSegment(x3, y3, x4, y4, x2, y2)) ||
		(d3 == 0 && onSegment(x1, y1, x2, y2, x3, y3)) ||
		(d4 == 0 && onSegment(x1, y1, x2, y2, x4, y4))
}

// cross returns the cross product of (b-a) and (p-a).
func cross(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// onSegment assumes p is colinear with a-b and reports whether it lies
// within the segment's bounding box.
func onSegment(ax, ay, bx, by, px, py float64) bool {
	return math.Min(ax, bx) <= px && px <= math.Max(ax, bx) &&
		math.Min(ay, by) <= py && py <= math.Max(ay, by)
}

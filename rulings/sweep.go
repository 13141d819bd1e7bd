package rulings

import (
	"sort"

	"github.com/tsawler/tablex/model"
)

// RulingPair is the pair of rulings meeting at an intersection point. Both
// are the PerpendicularExpand-grown copies used when the intersection was
// detected; cell discovery compares them structurally to decide whether two
// points sit on the same edge.
type RulingPair struct {
	Horizontal Ruling
	Vertical   Ruling
}

type eventKind int

// Event kinds for the sweep. At equal positions a vertical sorts after an
// incoming horizontal edge and before an outgoing one, so a vertical that
// touches a horizontal's endpoint still sees it as active.
const (
	eventHLeft eventKind = iota
	eventHRight
	eventVertical
)

type sweepEvent struct {
	kind     eventKind
	position float64
	ruling   Ruling
}

func compareEvents(a, b sweepEvent) int {
	if model.Feq(a.position, b.position) {
		switch {
		case a.kind == eventVertical && b.kind == eventHLeft:
			return 1
		case a.kind == eventVertical && b.kind == eventHRight:
			return -1
		case a.kind == eventHLeft && b.kind == eventVertical:
			return -1
		case a.kind == eventHRight && b.kind == eventVertical:
			return 1
		}
	}
	switch {
	case a.position < b.position:
		return -1
	case a.position > b.position:
		return 1
	default:
		return 0
	}
}

// FindIntersections locates every crossing of a horizontal and a vertical
// ruling with a left-to-right sweep. Horizontals enter the active set at
// left-PerpendicularExpand and leave at right+PerpendicularExpand; each
// vertical event checks the whole active set. The result maps the rounded
// crossing point to the expanded copies of the two rulings that produced it.
func FindIntersections(horizontals, verticals []Ruling) map[model.Point]RulingPair {
	events := make([]sweepEvent, 0, 2*len(horizontals)+len(verticals))
	for _, h := range horizontals {
		events = append(events,
			sweepEvent{kind: eventHLeft, position: h.Left() - PerpendicularExpand, ruling: h},
			sweepEvent{kind: eventHRight, position: h.Right() + PerpendicularExpand, ruling: h},
		)
	}
	for _, v := range verticals {
		events = append(events, sweepEvent{kind: eventVertical, position: v.Left(), ruling: v})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return compareEvents(events[i], events[j]) < 0
	})

	// active horizontals, keyed and ordered by top edge
	var active []Ruling
	result := make(map[model.Point]RulingPair)

	for _, ev := range events {
		switch ev.kind {
		case eventHLeft:
			idx := sort.Search(len(active), func(i int) bool {
				return active[i].Top() >= ev.ruling.Top()
			})
			if idx < len(active) && active[idx].Top() == ev.ruling.Top() {
				continue // an active horizontal already owns this key
			}
			active = append(active, Ruling{})
			copy(active[idx+1:], active[idx:])
			active[idx] = ev.ruling
		case eventHRight:
			idx := sort.Search(len(active), func(i int) bool {
				return active[i].Top() >= ev.ruling.Top()
			})
			if idx < len(active) && active[idx].Top() == ev.ruling.Top() {
				active = append(active[:idx], active[idx+1:]...)
			}
		case eventVertical:
			for _, h := range active {
				p, ok := h.IntersectionPoint(ev.ruling)
				if !ok {
					continue
				}
				result[model.RoundedPoint(p)] = RulingPair{
					Horizontal: h.Expand(PerpendicularExpand),
					Vertical:   ev.ruling.Expand(PerpendicularExpand),
				}
			}
		}
	}
	return result
}

// SortedIntersectionPoints returns the keys of an intersection map in
// row-major order (y first, then x).
func SortedIntersectionPoints(intersections map[model.Point]RulingPair) []model.Point {
	points := make([]model.Point, 0, len(intersections))
	for p := range intersections {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		return model.ComparePointsYFirst(points[i], points[j]) < 0
	})
	return points
}

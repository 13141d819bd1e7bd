// Package rulings models the straight line segments drawn on a page and the
// batch operations the lattice extractor needs: snapping near-axis segments
// to strict horizontal/vertical, collapsing runs of colinear fragments into
// single rulings, clipping to rectangles, and finding every
// horizontal-vertical intersection with a sweep line.
package rulings

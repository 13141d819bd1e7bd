// Package tables recovers logical tables from a page.
//
// Two extraction strategies are provided. The lattice extractor follows the
// ruling lines drawn on the page: it collapses line fragments, finds every
// horizontal-vertical intersection with a sweep line, discovers cells as
// closed rectangles among the intersections, and assembles adjacent cells
// into table regions. The stream extractor uses no lines at all: it merges
// glyphs into words, bands words into lines, and infers column boundaries
// from the horizontal alignment of words across lines.
//
// A page can be probed with IsTabular, which runs both strategies over the
// page's text bounds and compares their row/column counts.
package tables

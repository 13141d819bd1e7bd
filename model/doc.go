// Package model defines the data model shared by the extraction pipeline:
// geometric primitives (Point, Rect), positioned glyphs (TextElement),
// glyph containers (TextChunk, Line), and the Table assembled from them.
//
// All coordinates are in a y-down page space with the origin at the upper
// left of the page, matching the output of the PDF content-stream walker.
package model

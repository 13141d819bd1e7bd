// Package text turns the walker's raw glyph stream into words and lines:
// MergeWords groups glyphs into chunks using learned spacing, injecting
// synthetic spaces and honoring vertical rulings as column barriers, and
// GroupByLines bands chunks into visual lines.
package text

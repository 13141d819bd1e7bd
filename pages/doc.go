// Package pages holds the per-page working set handed to the extractors:
// the filtered glyph stream, the normalized rulings, the crop box, and a
// spatial index over the glyphs. A Page is assembled once from the walker's
// output and is read-only afterwards, so pages can be processed in parallel
// by the caller without locking.
package pages

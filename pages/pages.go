package pages

import (
	"log/slog"
	"math"

	"github.com/tsawler/tablex/index"
	"github.com/tsawler/tablex/model"
	"github.com/tsawler/tablex/rulings"
)

// nbsp is the no-break space; producers stamp it where a plain space belongs.
const nbsp = "\u00a0"

var logger = slog.Default()

// SetLogger replaces the package logger. Pass slog.New with a discarding
// handler to silence ingestion diagnostics.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Config holds the ingestion filters applied to the walker's glyph stream.
type Config struct {
	// AvgHeightMult rejects a blank glyph whose height is at least this
	// multiple of the running average glyph height.
	AvgHeightMult float64

	// MinBlankFontSize and MaxBlankFontSize bound the font size of blank
	// glyphs; blanks set in absurd sizes are artifacts of the producer.
	MinBlankFontSize float64
	MaxBlankFontSize float64

	// RulingMinLength drops degenerate segments.
	RulingMinLength float64
}

// DefaultConfig returns the ingestion defaults.
func DefaultConfig() Config {
	return Config{
		AvgHeightMult:    6.0,
		MinBlankFontSize: 2.0,
		MaxBlankFontSize: 40.0,
		RulingMinLength:  rulings.MinLength,
	}
}

// Page is the per-page working set: crop box, page number, filtered glyphs
// in scan order, normalized rulings, and a spatial index over the glyphs.
type Page struct {
	model.Rect

	number        int
	glyphs        []*model.TextElement
	segments      []rulings.Ruling
	glyphIndex    *index.RectIndex[*model.TextElement]
	minCharWidth  float64
	minCharHeight float64
}

// New assembles a page from the walker's output using the default ingestion
// config. Glyphs failing the printability and blank filters are dropped,
// non-breaking spaces are replaced with plain spaces, coordinates are
// rounded, and segments are normalized.
func New(cropBox model.Rect, number int, glyphs []*model.TextElement, segments []rulings.Ruling) *Page {
	return NewWithConfig(DefaultConfig(), cropBox, number, glyphs, segments)
}

// NewWithConfig is New with explicit ingestion filters.
func NewWithConfig(cfg Config, cropBox model.Rect, number int, glyphs []*model.TextElement, segments []rulings.Ruling) *Page {
	p := &Page{
		Rect:          cropBox,
		number:        number,
		glyphIndex:    index.New[*model.TextElement](),
		minCharWidth:  math.Inf(1),
		minCharHeight: math.Inf(1),
	}

	var heights heightStats
	dropped := 0
	for _, g := range glyphs {
		te, ok := ingestGlyph(cfg, g, &heights)
		if !ok {
			dropped++
			continue
		}
		p.minCharWidth = math.Min(p.minCharWidth, te.Width)
		p.minCharHeight = math.Min(p.minCharHeight, te.Height)
		p.glyphs = append(p.glyphs, te)
		p.glyphIndex.Add(te)
	}

	droppedSegments := 0
	for _, s := range segments {
		s.Normalize()
		if s.Length() <= cfg.RulingMinLength {
			droppedSegments++
			continue
		}
		p.segments = append(p.segments, s)
	}

	if dropped > 0 || droppedSegments > 0 {
		logger.Debug("page ingestion dropped input",
			"page", number, "glyphs", dropped, "segments", droppedSegments)
	}
	return p
}

// heightStats tracks the running average glyph height across every
// printable glyph inspected, including ones later rejected.
type heightStats struct {
	total float64
	count int
}

func (h *heightStats) observe(height float64) float64 {
	h.total += height
	h.count++
	return h.total / float64(h.count)
}

// ingestGlyph applies the printability, NBSP and blank-glyph filters and
// returns the cleaned element.
func ingestGlyph(cfg Config, g *model.TextElement, heights *heightStats) (*model.TextElement, bool) {
	text := g.Text()
	if !isPrintable(text) {
		return nil, false
	}
	if text == nbsp {
		text = " "
	}

	te := model.NewTextElementWithDirection(
		model.Round(g.Top, model.RoundDecimals),
		model.Round(g.Left, model.RoundDecimals),
		model.Round(g.Width, model.RoundDecimals),
		model.Round(g.Height, model.RoundDecimals),
		g.Font(), g.FontSize(), text, g.WidthOfSpace(), g.Direction(),
	)

	avgHeight := heights.observe(te.Height)

	if te.IsWhitespace() {
		if avgHeight > 0 && te.Height >= avgHeight*cfg.AvgHeightMult {
			return nil, false
		}
		if g.FontSize() > cfg.MaxBlankFontSize || g.FontSize() < cfg.MinBlankFontSize {
			return nil, false
		}
	}
	return te, true
}

// isPrintable reports whether s contains at least one rune that is neither a
// control character nor a Unicode specials-block placeholder.
func isPrintable(s string) bool {
	for _, r := range s {
		if r >= 0xFFF0 && r <= 0xFFFF {
			continue
		}
		if r == 0x7F || r < 0x20 || (r >= 0x80 && r <= 0x9F) {
			continue
		}
		return true
	}
	return false
}

// Number returns the 1-based page number.
func (p *Page) Number() int { return p.number }

// Glyphs returns the filtered glyph stream in scan order. Callers must not
// modify the returned slice.
func (p *Page) Glyphs() []*model.TextElement { return p.glyphs }

// Rulings returns every normalized ruling on the page.
func (p *Page) Rulings() []rulings.Ruling { return p.segments }

// HorizontalRulings returns the strictly horizontal rulings.
func (p *Page) HorizontalRulings() []rulings.Ruling {
	var out []rulings.Ruling
	for _, r := range p.segments {
		if r.Horizontal() {
			out = append(out, r)
		}
	}
	return out
}

// VerticalRulings returns the strictly vertical rulings.
func (p *Page) VerticalRulings() []rulings.Ruling {
	var out []rulings.Ruling
	for _, r := range p.segments {
		if r.Vertical() {
			out = append(out, r)
		}
	}
	return out
}

// Index returns the glyph spatial index.
func (p *Page) Index() *index.RectIndex[*model.TextElement] {
	return p.glyphIndex
}

// TextIn returns the glyphs lying entirely inside r, in visual order.
func (p *Page) TextIn(r model.Rect) []*model.TextElement {
	return p.glyphIndex.Contains(r)
}

// TextBounds returns the minimal rectangle containing every glyph on the
// page. It panics when the page has no glyphs.
func (p *Page) TextBounds() model.Rect {
	return p.glyphIndex.Bounds()
}

// MinCharWidth returns the smallest glyph width seen during ingestion.
func (p *Page) MinCharWidth() float64 { return p.minCharWidth }

// MinCharHeight returns the smallest glyph height seen during ingestion.
func (p *Page) MinCharHeight() float64 { return p.minCharHeight }

// Area returns a sub-page view clipped to r: its glyphs are the ones
// entirely inside r and its rulings are cropped to r. The view has its own
// spatial index; the parent page is unchanged.
func (p *Page) Area(r model.Rect) *Page {
	sub := &Page{
		Rect:          r,
		number:        p.number,
		glyphIndex:    index.New[*model.TextElement](),
		minCharWidth:  math.Inf(1),
		minCharHeight: math.Inf(1),
	}
	for _, te := range p.TextIn(r) {
		sub.minCharWidth = math.Min(sub.minCharWidth, te.Width)
		sub.minCharHeight = math.Min(sub.minCharHeight, te.Height)
		sub.glyphs = append(sub.glyphs, te)
		sub.glyphIndex.Add(te)
	}
	sub.segments = rulings.CropToArea(p.segments, r)
	return sub
}

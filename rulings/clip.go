package rulings

import "github.com/tsawler/tablex/model"

// Cohen-Sutherland outcodes.
const (
	csInside = 0
	csLeft   = 1 << iota
	csRight
	csBottom
	csTop
)

func outcode(clip model.Rect, x, y float64) int {
	code := csInside
	if x < clip.Left {
		code |= csLeft
	} else if x > clip.Right() {
		code |= csRight
	}
	if y < clip.Top {
		code |= csTop
	} else if y > clip.Bottom() {
		code |= csBottom
	}
	return code
}

// Clip intersects the ruling with an axis-aligned rectangle using
// Cohen-Sutherland clipping. It returns the clipped ruling and true when any
// part of the segment lies inside clip (the ruling itself when fully
// inside), or the zero Ruling and false when the segment is entirely
// outside.
func (r Ruling) Clip(clip model.Rect) (Ruling, bool) {
	x1, y1, x2, y2 := r.X1, r.Y1, r.X2, r.Y2
	code1 := outcode(clip, x1, y1)
	code2 := outcode(clip, x2, y2)

	for {
		switch {
		case code1|code2 == csInside:
			// trivially accepted; keep the original when nothing was cut
			if x1 == r.X1 && y1 == r.Y1 && x2 == r.X2 && y2 == r.Y2 {
				return r, true
			}
			return New(model.Point{X: x1, Y: y1}, model.Point{X: x2, Y: y2}), true
		case code1&code2 != csInside:
			return Ruling{}, false
		}

		// at least one endpoint is outside; move it to the clip boundary
		codeOut := code1
		if codeOut == csInside {
			codeOut = code2
		}

		var x, y float64
		switch {
		case codeOut&csBottom != 0:
			x = x1 + (x2-x1)*(clip.Bottom()-y1)/(y2-y1)
			y = clip.Bottom()
		case codeOut&csTop != 0:
			x = x1 + (x2-x1)*(clip.Top-y1)/(y2-y1)
			y = clip.Top
		case codeOut&csRight != 0:
			y = y1 + (y2-y1)*(clip.Right()-x1)/(x2-x1)
			x = clip.Right()
		default:
			y = y1 + (y2-y1)*(clip.Left-x1)/(x2-x1)
			x = clip.Left
		}

		if codeOut == code1 {
			x1, y1 = x, y
			code1 = outcode(clip, x1, y1)
		} else {
			x2, y2 = x, y
			code2 = outcode(clip, x2, y2)
		}
	}
}

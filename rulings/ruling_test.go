package rulings

import (
	"math"
	"testing"

	"github.com/tsawler/tablex/model"
)

func horiz(y, x1, x2 float64) Ruling {
	return New(model.Point{X: x1, Y: y}, model.Point{X: x2, Y: y})
}

func vert(x, y1, y2 float64) Ruling {
	return New(model.Point{X: x, Y: y1}, model.Point{X: x, Y: y2})
}

func TestNormalizeSnapsNearHorizontal(t *testing.T) {
	r := New(model.Point{X: 0, Y: 10}, model.Point{X: 100, Y: 10.5})
	if !r.Horizontal() {
		t.Fatalf("segment within 1 degree of horizontal should snap: %+v", r)
	}
	if r.Y2 != r.Y1 {
		t.Errorf("snap should set y2 = y1, got y1=%v y2=%v", r.Y1, r.Y2)
	}
}

func TestNormalizeSnapsNearVertical(t *testing.T) {
	r := New(model.Point{X: 10, Y: 0}, model.Point{X: 10.5, Y: 100})
	if !r.Vertical() {
		t.Fatalf("segment within 1 degree of vertical should snap: %+v", r)
	}
	if r.X2 != r.X1 {
		t.Errorf("snap should set x2 = x1, got x1=%v x2=%v", r.X1, r.X2)
	}
}

func TestNormalizeLeavesOblique(t *testing.T) {
	r := New(model.Point{X: 0, Y: 0}, model.Point{X: 100, Y: 100})
	if !r.Oblique() {
		t.Errorf("diagonal should stay oblique: %+v", r)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	segments := []Ruling{
		New(model.Point{X: 0, Y: 10}, model.Point{X: 100, Y: 10.8}),
		New(model.Point{X: 10, Y: 0}, model.Point{X: 10.8, Y: 100}),
		New(model.Point{X: 0, Y: 0}, model.Point{X: 50, Y: 70}),
	}
	for _, r := range segments {
		again := r
		again.Normalize()
		if again != r {
			t.Errorf("normalize not idempotent: %+v != %+v", again, r)
		}
	}
}

func TestExactlyOneOrientation(t *testing.T) {
	segments := []Ruling{
		horiz(10, 0, 100),
		vert(10, 0, 100),
		New(model.Point{X: 0, Y: 0}, model.Point{X: 30, Y: 40}),
	}
	for _, r := range segments {
		n := 0
		if r.Horizontal() {
			n++
		}
		if r.Vertical() {
			n++
		}
		if r.Oblique() {
			n++
		}
		if n != 1 {
			t.Errorf("ruling %+v satisfies %d orientations, want exactly 1", r, n)
		}
	}
}

func TestDirectionalAccessors(t *testing.T) {
	h := horiz(10, 20, 80)
	if h.Position() != 10 || h.Start() != 20 || h.End() != 80 {
		t.Errorf("horizontal accessors = (%v, %v, %v), want (10, 20, 80)",
			h.Position(), h.Start(), h.End())
	}

	v := vert(30, 5, 95)
	if v.Position() != 30 || v.Start() != 5 || v.End() != 95 {
		t.Errorf("vertical accessors = (%v, %v, %v), want (30, 5, 95)",
			v.Position(), v.Start(), v.End())
	}
}

func TestDirectionalAccessorsPanicOnOblique(t *testing.T) {
	r := New(model.Point{X: 0, Y: 0}, model.Point{X: 30, Y: 40})
	for name, f := range map[string]func() float64{
		"Position": r.Position,
		"Start":    r.Start,
		"End":      r.End,
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s on oblique ruling should panic", name)
				}
			}()
			f()
		}()
	}
}

func TestExpand(t *testing.T) {
	h := horiz(10, 20, 80)
	e := h.Expand(2)
	if e.Left() != 18 || e.Right() != 82 {
		t.Errorf("Expand = [%v, %v], want [18, 82]", e.Left(), e.Right())
	}
	if h.Left() != 20 {
		t.Error("Expand must not modify the receiver")
	}
}

func TestNearlyIntersectsPerpendicular(t *testing.T) {
	h := horiz(50, 0, 100)
	v := vert(101.5, 0, 100) // just past the horizontal's right end

	if !h.NearlyIntersects(v) {
		t.Error("vertical within the perpendicular expansion should nearly intersect")
	}

	far := vert(105, 0, 100)
	if h.NearlyIntersects(far) {
		t.Error("vertical beyond the expansion should not nearly intersect")
	}
}

func TestNearlyIntersectsColinear(t *testing.T) {
	a := horiz(50, 0, 49)
	b := horiz(50, 50.5, 100) // gap of 1.5, each side expands by 1

	if !a.NearlyIntersects(b) {
		t.Error("colinear fragments within the expansion should nearly intersect")
	}

	c := horiz(50, 53, 100)
	if a.NearlyIntersects(c) {
		t.Error("colinear fragments beyond the expansion should not nearly intersect")
	}
}

func TestIntersectionPoint(t *testing.T) {
	h := horiz(50, 0, 100)
	v := vert(30, 0, 100)

	p, ok := h.IntersectionPoint(v)
	if !ok {
		t.Fatal("crossing rulings should intersect")
	}
	want := model.Point{X: 30, Y: 50}
	if p != want {
		t.Errorf("IntersectionPoint = %+v, want %+v", p, want)
	}

	// order independence
	p2, ok2 := v.IntersectionPoint(h)
	if !ok2 || p2 != want {
		t.Errorf("reversed IntersectionPoint = %+v ok=%v, want %+v", p2, ok2, want)
	}
}

func TestIntersectionPointNearMiss(t *testing.T) {
	h := horiz(50, 0, 100)
	v := vert(101, 0, 100) // within the 2-unit expansion

	if _, ok := h.IntersectionPoint(v); !ok {
		t.Error("vertical within the expansion should produce an intersection point")
	}

	far := vert(105, 0, 100)
	if _, ok := h.IntersectionPoint(far); ok {
		t.Error("vertical beyond the expansion should not intersect")
	}
}

func TestIntersectionPointParallelPanics(t *testing.T) {
	a := horiz(50, 0, 100)
	b := horiz(50, 20, 120)
	defer func() {
		if recover() == nil {
			t.Error("intersection of two crossing horizontals should panic")
		}
	}()
	a.IntersectionPoint(b)
}

func TestClipInside(t *testing.T) {
	clip := model.NewRect(0, 0, 100, 100)
	r := horiz(50, 10, 90)
	got, ok := r.Clip(clip)
	if !ok {
		t.Fatal("fully inside segment should survive clipping")
	}
	if got != r {
		t.Errorf("fully inside segment should be unchanged, got %+v", got)
	}
}

func TestClipCrossing(t *testing.T) {
	clip := model.NewRect(0, 0, 100, 100)
	r := horiz(50, -50, 150)
	got, ok := r.Clip(clip)
	if !ok {
		t.Fatal("crossing segment should survive clipping")
	}
	if got.Left() != 0 || got.Right() != 100 || got.Top() != 50 {
		t.Errorf("clipped = %+v, want x in [0, 100] at y=50", got)
	}
}

func TestClipOutside(t *testing.T) {
	clip := model.NewRect(0, 0, 100, 100)
	r := horiz(200, 0, 100)
	if _, ok := r.Clip(clip); ok {
		t.Error("segment outside the clip should be rejected")
	}
}

func TestClipDiagonal(t *testing.T) {
	clip := model.NewRect(0, 0, 100, 100)
	r := Ruling{X1: -50, Y1: -50, X2: 150, Y2: 150}
	got, ok := r.Clip(clip)
	if !ok {
		t.Fatal("diagonal through the clip should survive")
	}
	if math.Abs(got.X1) > 1e-9 || math.Abs(got.Y1) > 1e-9 ||
		math.Abs(got.X2-100) > 1e-9 || math.Abs(got.Y2-100) > 1e-9 {
		t.Errorf("clipped diagonal = %+v, want (0,0)-(100,100)", got)
	}
}

func TestCropToArea(t *testing.T) {
	area := model.NewRect(0, 0, 100, 100)
	rs := []Ruling{
		horiz(50, 10, 90),   // inside
		horiz(50, -50, 150), // crossing
		horiz(200, 0, 100),  // outside
	}
	got := CropToArea(rs, area)
	if len(got) != 2 {
		t.Fatalf("CropToArea kept %d rulings, want 2", len(got))
	}
	if got[1].Left() != 0 || got[1].Right() != 100 {
		t.Errorf("crossing ruling not clipped: %+v", got[1])
	}
}

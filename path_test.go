package markup

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestMatrix(t *testing.T) {
	p := Point{1.0, 0.0}
	test.T(t, Identity.Translate(2.0, 3.0).Dot(p), Point{3.0, 3.0})
	test.T(t, Identity.Scale(2.0, -1.0).Dot(Point{1.0, 1.0}), Point{2.0, -1.0})
	test.T(t, Identity.Rotate(math.Pi/2.0).Dot(p), Point{0.0, 1.0})
	test.T(t, Identity.Translate(10.0, 0.0).Rotate(math.Pi).Dot(p), Point{9.0, 0.0})
	test.T(t, Identity.ScaleAbout(2.0, 2.0, 10.0, 10.0).Dot(Point{11.0, 12.0}), Point{12.0, 14.0})
}

func TestPoint(t *testing.T) {
	p := Point{3.0, 4.0}
	test.Float(t, p.Length(), 5.0)
	test.T(t, p.Norm(10.0), Point{6.0, 8.0})
	test.T(t, p.Rot90CCW(), Point{-4.0, 3.0})
	test.Float(t, p.PerpDot(Point{1.0, 0.0}), -4.0)
	test.T(t, p.Interpolate(Point{5.0, 6.0}, 0.5), Point{4.0, 5.0})
	test.T(t, Point{}.Norm(1.0), Point{})
}

func TestRect(t *testing.T) {
	r := RectFromPoints(Point{10.0, 20.0}, Point{0.0, 5.0}, Point{4.0, 30.0})
	test.T(t, r, Rect{0.0, 5.0, 10.0, 25.0})
	test.That(t, r.Contains(Point{10.0, 30.0}))
	test.That(t, !r.Contains(Point{10.1, 30.0}))
	test.T(t, r.Center(), Point{5.0, 17.5})
}

func TestPathSVG(t *testing.T) {
	var tts = []struct {
		orig string
		svg  string
	}{
		{"M0 0L10 0L10 10z", "M0 0L10 0L10 10z"},
		{"M0,0 L10.50,0 Q 10 10 0 10", "M0 0L10.5 0Q10 10 0 10"},
		{"M0 0C1 2 3 4 5 6", "M0 0C1 2 3 4 5 6"},
		{"M0 0L1 1 2 2", "M0 0L1 1L2 2"},
		{"M.5 -.25", "M.5 -.25"},
	}
	for _, tt := range tts {
		t.Run(tt.orig, func(t *testing.T) {
			p, err := ParseSVG(tt.orig)
			test.Error(t, err)
			test.String(t, p.ToSVG(), tt.svg)
		})
	}

	_, err := ParseSVG("M0 0A1 1 0 0 0 1 1")
	test.That(t, err != nil, "arcs are not supported")
	_, err = ParseSVG("M0 0L1")
	test.That(t, err != nil, "missing coordinate")
}

func TestPathFlatten(t *testing.T) {
	polys := MustParseSVG("M0 0L10 0L10 10zM20 0L30 0").Flatten(Tolerance)
	test.T(t, len(polys), 2)
	test.That(t, polys[0].Closed())
	test.T(t, polys[0].Coords(), []Point{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}, {0.0, 0.0}})
	test.That(t, !polys[1].Closed())

	// flattened curves end on the end point
	polys = MustParseSVG("M0 0Q10 10 20 0").Flatten(0.1)
	coords := polys[0].Coords()
	test.That(t, 2 < len(coords))
	test.T(t, coords[len(coords)-1], Point{20.0, 0.0})
}

func TestPathInterior(t *testing.T) {
	var tts = []struct {
		p        string
		x, y     float64
		fillRule FillRule
		interior bool
	}{
		{"M0 0L10 0L10 10L0 10z", 5.0, 5.0, NonZero, true},
		{"M0 0L10 0L10 10L0 10z", 15.0, 5.0, NonZero, false},
		{"M0 0L10 0L10 10L0 10zM2 2L8 2L8 8L2 8z", 5.0, 5.0, NonZero, true},
		{"M0 0L10 0L10 10L0 10zM2 2L8 2L8 8L2 8z", 5.0, 5.0, EvenOdd, false},
		{"M0 0L10 0L10 10L0 10zM2 2L8 2L8 8L2 8z", 1.0, 5.0, EvenOdd, true},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, MustParseSVG(tt.p).Interior(tt.x, tt.y, tt.fillRule), tt.interior)
		})
	}
}

func TestPathStrokeContains(t *testing.T) {
	p := Line(0.0, 0.0, 100.0, 0.0)
	test.That(t, p.StrokeContains(Point{50.0, 4.0}, 10.0))
	test.That(t, !p.StrokeContains(Point{50.0, 6.0}, 10.0))
	test.That(t, !p.StrokeContains(Point{-1.0, 0.0}, 10.0), "butt cap")
	test.That(t, !p.StrokeContains(Point{50.0, 0.0}, 0.0))

	// outer corner of a bevel join
	p = Polygon([]Point{{0.0, 0.0}, {100.0, 0.0}, {100.0, 100.0}}, false)
	test.That(t, p.StrokeContains(Point{101.0, -1.0}, 10.0))
	test.That(t, !p.StrokeContains(Point{104.0, -4.0}, 10.0))
}

func TestShapesGeometry(t *testing.T) {
	test.T(t, Rectangle(0.0, 0.0, 10.0, 5.0), MustParseSVG("M0 0L10 0L10 5L0 5z"))
	test.That(t, Rectangle(5.0, 5.0, 0.0, 0.0).Empty())
	test.T(t, Polygon([]Point{{0.0, 0.0}, {1.0, 0.0}}, true), MustParseSVG("M0 0L1 0"))
	test.T(t, Polygon([]Point{{0.0, 0.0}, {1.0, 0.0}, {1.0, 1.0}}, true), MustParseSVG("M0 0L1 0L1 1z"))
	test.T(t, SmoothStroke([][]Point{{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}}, {{50.0, 50.0}}}), MustParseSVG("M0 0L5 0Q10 0 10 5L10 10"))

	b := Ellipse(10.0, 10.0, 5.0, 2.0).Bounds()
	test.Float(t, b.X, 5.0)
	test.Float(t, b.W, 10.0)
	test.Float(t, b.H, 4.0)

	test.That(t, ArrowHead(Point{0.0, 0.0}, Point{0.0, 0.0}, 12.0).Empty())
	head := ArrowHead(Point{0.0, 0.0}, Point{100.0, 0.0}, 10.0).Bounds()
	test.Float(t, head.X+head.W, 108.0)
}

func TestLabelAngle(t *testing.T) {
	test.Float(t, LabelAngle(0.0), 0.0)
	test.Float(t, LabelAngle(math.Pi), 2.0*math.Pi)
	test.Float(t, LabelAngle(-math.Pi/4.0), 1.75*math.Pi)
	test.Float(t, LabelAngle(math.Pi*0.75), math.Pi*1.75)
}

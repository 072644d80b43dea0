package markup

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestNewShape(t *testing.T) {
	pt := Point{10.0, 20.0}
	var tts = []struct {
		kind  Kind
		count int
		open  bool
	}{
		{LineKind, 2, false},
		{RulerBaseKind, 2, false},
		{TextKind, 2, false},
		{RectKind, 4, false},
		{AreaRectKind, 4, false},
		{RulerPolygonKind, 1, true},
		{AreaPolygonKind, 1, true},
		{PenKind, 1, false},
		{AreaFreehandKind, 1, false},
	}
	for _, tt := range tts {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s := NewShape(tt.kind, pt, Style{})
			test.T(t, s.Count(), tt.count)
			test.T(t, s.Open(), tt.open)
			test.T(t, s.State, NewState)
			test.That(t, strings.HasPrefix(s.ID, "N"), s.ID)
			for _, p := range s.Points[0] {
				test.T(t, p, pt)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		test.T(t, len(id), 18)
		test.That(t, !seen[id], "duplicate id", id)
		seen[id] = true
	}
}

func TestShapeExtend(t *testing.T) {
	s := NewShape(LineKind, Point{0.0, 0.0}, Style{})
	s.Extend(Point{10.0, 5.0})
	s.Extend(Point{20.0, 5.0})
	test.T(t, s.Points, [][]Point{{{0.0, 0.0}, {20.0, 5.0}}})

	s = NewShape(RectKind, Point{0.0, 0.0}, Style{})
	s.Extend(Point{10.0, 5.0})
	test.T(t, s.Points, [][]Point{{{0.0, 0.0}, {10.0, 0.0}, {0.0, 5.0}, {10.0, 5.0}}})

	s = NewShape(AreaPolygonKind, Point{0.0, 0.0}, Style{})
	s.AppendPoint(Point{10.0, 0.0})
	s.Extend(Point{10.0, 10.0})
	test.T(t, s.Points, [][]Point{{{0.0, 0.0}, {10.0, 10.0}}})
	s.RevertVertex()
	s.RevertVertex()
	test.T(t, s.Points, [][]Point{{{0.0, 0.0}}})

	s = NewShape(PenKind, Point{0.0, 0.0}, Style{})
	s.Extend(Point{1.0, 1.0})
	s.AppendPoint(Point{5.0, 5.0})
	s.Extend(Point{6.0, 6.0})
	test.T(t, s.Points, [][]Point{{{0.0, 0.0}, {1.0, 1.0}}, {{5.0, 5.0}, {6.0, 6.0}}})

	s = NewShape(RulerFreehandKind, Point{0.0, 0.0}, Style{})
	s.AppendPoint(Point{5.0, 5.0})
	test.T(t, s.Points, [][]Point{{{0.0, 0.0}, {5.0, 5.0}}})
}

func TestShapeShouldPersist(t *testing.T) {
	var tts = []struct {
		kind    Kind
		moves   []Point
		persist bool
	}{
		{LineKind, nil, false},
		{LineKind, []Point{{10.0, 0.0}}, true},
		{LineKind, []Point{{10.0, 0.0}, {0.0, 0.0}}, false},
		{RectKind, nil, false},
		{RectKind, []Point{{10.0, 10.0}}, true},
		{OvalKind, []Point{{10.0, 0.0}}, true},
		{PenKind, nil, false},
		{PenKind, []Point{{1.0, 1.0}}, true},
		{RulerFreehandKind, []Point{{1.0, 1.0}}, true},
		{AreaFreehandKind, []Point{{1.0, 1.0}}, false},
		{AreaFreehandKind, []Point{{1.0, 1.0}, {2.0, 0.0}}, true},
		{TextKind, []Point{{10.0, 10.0}}, false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i, tt.kind), func(t *testing.T) {
			s := NewShape(tt.kind, Point{0.0, 0.0}, Style{})
			for _, pt := range tt.moves {
				s.Extend(pt)
			}
			test.T(t, s.ShouldPersist(), tt.persist)
		})
	}

	s := NewShape(AreaPolygonKind, Point{0.0, 0.0}, Style{})
	s.AppendPoint(Point{10.0, 0.0})
	test.That(t, !s.ShouldPersist(), "two vertices")
	s.AppendPoint(Point{10.0, 10.0})
	test.That(t, s.ShouldPersist(), "three vertices")

	s = NewShape(TextKind, Point{0.0, 0.0}, Style{})
	s.Text = NewTextRun("  ", 12.0)
	test.That(t, !s.ShouldPersist(), "blank text")
	s.Text = NewTextRun("note", 12.0)
	test.That(t, s.ShouldPersist())
}

func calibrated(t *testing.T, base, length float64) Calibration {
	t.Helper()
	s := NewShape(RulerBaseKind, Point{0.0, 0.0}, Style{})
	s.Extend(Point{base, 0.0})
	s.Number = &length
	return CalibrationFrom(s)
}

func TestShapeRecomputeMeasurement(t *testing.T) {
	cal := calibrated(t, 100.0, 50.0) // 0.5 units per pixel
	var tts = []struct {
		kind   Kind
		points []Point
		number float64
	}{
		{RulerLineKind, []Point{{0.0, 0.0}, {40.0, 0.0}}, 20.0},
		{RulerFreehandKind, []Point{{0.0, 0.0}, {40.0, 0.0}, {40.0, 30.0}}, 35.0},
		{RulerPolygonKind, []Point{{0.0, 0.0}, {40.0, 0.0}, {40.0, 30.0}}, 60.0},
		{RulerRectKind, []Point{{0.0, 0.0}, {40.0, 0.0}, {0.0, 20.0}, {40.0, 20.0}}, 60.0},
		{AreaRectKind, []Point{{0.0, 0.0}, {4000.0, 0.0}, {0.0, 2000.0}, {4000.0, 2000.0}}, 2.0},
		{AreaPolygonKind, []Point{{0.0, 0.0}, {4000.0, 0.0}, {4000.0, 2000.0}}, 1.0},
	}
	for _, tt := range tts {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s := &Shape{Kind: tt.kind, Points: [][]Point{tt.points}}
			s.RecomputeMeasurement(cal)
			test.That(t, s.Number != nil)
			test.Float(t, *s.Number, tt.number)
		})
	}

	// an open ruler polygon is measured without its closing edge
	s := NewShape(RulerPolygonKind, Point{0.0, 0.0}, Style{})
	s.AppendPoint(Point{40.0, 0.0})
	s.AppendPoint(Point{40.0, 30.0})
	s.RecomputeMeasurement(cal)
	test.Float(t, *s.Number, 35.0)

	s = &Shape{Kind: RulerLineKind, Points: [][]Point{{{0.0, 0.0}, {40.0, 0.0}}}}
	s.RecomputeMeasurement(Calibration{})
	test.That(t, s.Number == nil, "uncalibrated")

	line := &Shape{Kind: LineKind, Points: [][]Point{{{0.0, 0.0}, {40.0, 0.0}}}}
	line.RecomputeMeasurement(cal)
	test.That(t, line.Number == nil, "not a measurement")
}

func TestShapeLabel(t *testing.T) {
	v := 12.34
	s := &Shape{Kind: RulerLineKind, Number: &v}
	test.String(t, s.Label("mm", "㎡"), "12.3mm")
	s.Kind = AreaPolygonKind
	test.String(t, s.Label("mm", "㎡"), "12.3㎡")
	s.Number = nil
	test.String(t, s.Label("mm", "㎡"), "")
}

func TestShapeHandlePoint(t *testing.T) {
	line := &Shape{Kind: RulerLineKind, Points: [][]Point{{{0.0, 0.0}, {10.0, 0.0}}}}
	pt, ok := line.HandlePoint(EndHandle)
	test.That(t, ok)
	test.T(t, pt, Point{10.0, 0.0})
	pt, _ = line.HandlePoint(BottomLeftHandle)
	test.T(t, pt, Point{0.0, 0.0})
	_, ok = line.HandlePoint(CenterLeftHandle)
	test.That(t, !ok)

	rect := &Shape{Kind: RectKind, Points: [][]Point{{{0.0, 0.0}, {10.0, 0.0}, {0.0, 5.0}, {10.0, 5.0}}}}
	pt, _ = rect.HandlePoint(BottomLeftHandle)
	test.T(t, pt, Point{0.0, 5.0})

	poly := &Shape{Kind: AreaPolygonKind, Points: [][]Point{{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}}}}
	pt, _ = poly.HandlePoint(Vertex(2))
	test.T(t, pt, Point{10.0, 10.0})
	_, ok = poly.HandlePoint(Vertex(3))
	test.That(t, !ok)
}

func TestShapeResize(t *testing.T) {
	line := &Shape{Kind: LineKind, Points: [][]Point{{{0.0, 0.0}, {10.0, 0.0}}}}
	test.That(t, line.Resize(EndHandle, Point{5.0, 5.0}, 50.0))
	test.T(t, line.Points[0], []Point{{0.0, 0.0}, {15.0, 5.0}})
	test.That(t, !line.Resize(UpperLeftHandle, Point{5.0, 5.0}, 50.0), "corner handle on a line")
	test.That(t, !line.Resize(EndHandle, Point{}, 50.0), "no movement")

	ruler := &Shape{Kind: RulerLineKind, Points: [][]Point{{{0.0, 0.0}, {10.0, 0.0}}}}
	test.That(t, ruler.Resize(UpperLeftHandle, Point{-5.0, 0.0}, 50.0))
	test.T(t, ruler.Points[0], []Point{{-5.0, 0.0}, {10.0, 0.0}})

	rect := &Shape{Kind: RectKind, Points: [][]Point{{{0.0, 0.0}, {10.0, 0.0}, {0.0, 10.0}, {10.0, 10.0}}}}
	test.That(t, rect.Resize(BottomRightHandle, Point{5.0, 10.0}, 50.0))
	test.T(t, rect.Points[0], []Point{{0.0, 0.0}, {15.0, 0.0}, {0.0, 20.0}, {15.0, 20.0}})
	test.That(t, rect.Resize(UpperLeftHandle, Point{-5.0, -5.0}, 50.0))
	test.T(t, rect.Points[0], []Point{{-5.0, -5.0}, {15.0, -5.0}, {-5.0, 20.0}, {15.0, 20.0}})

	// a vertex move that makes an area polygon cross itself is refused
	area := &Shape{Kind: AreaPolygonKind, Points: [][]Point{{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}, {0.0, 10.0}}}}
	test.That(t, !area.Resize(Vertex(3), Point{20.0, -5.0}, 50.0))
	test.T(t, area.Points[0][3], Point{0.0, 10.0})
	test.That(t, area.Resize(Vertex(3), Point{-5.0, 0.0}, 50.0))
	test.T(t, area.Points[0][3], Point{-5.0, 10.0})

	ruler = &Shape{Kind: RulerPolygonKind, Points: [][]Point{{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}, {0.0, 10.0}}}}
	test.That(t, ruler.Resize(Vertex(3), Point{20.0, -5.0}, 50.0), "rulers may cross")
}

func TestShapeRescale(t *testing.T) {
	pen := &Shape{Kind: PenKind, Points: [][]Point{{{0.0, 0.0}, {100.0, 100.0}}}}
	test.That(t, pen.Resize(BottomRightHandle, Point{100.0, 0.0}, 50.0))
	test.T(t, pen.Points[0], []Point{{0.0, 0.0}, {200.0, 100.0}})

	test.That(t, pen.Resize(UpperLeftHandle, Point{100.0, 40.0}, 50.0))
	test.T(t, pen.Points[0][0], Point{100.0, 40.0})
	test.T(t, pen.Points[0][1], Point{200.0, 100.0})

	// shrinking below the spacing is refused
	test.That(t, !pen.Resize(UpperLeftHandle, Point{80.0, 20.0}, 50.0))
	test.T(t, pen.Points[0][0], Point{100.0, 40.0})
	test.T(t, pen.Points[0][1], Point{200.0, 100.0})

	test.That(t, !pen.Resize(CenterLeftHandle, Point{10.0, 10.0}, 50.0))
}

func TestShapeSnapshot(t *testing.T) {
	v := 3.0
	s := NewShape(RulerLineKind, Point{0.0, 0.0}, Style{Opacity: 1.0})
	s.Extend(Point{10.0, 0.0})
	s.Number = &v

	snap := s.Snapshot(4)
	test.T(t, snap.ID(), s.ID)
	test.T(t, snap.Kind(), RulerLineKind)
	test.T(t, snap.Index(), 4)

	s.Points[0][1] = Point{20.0, 0.0}
	*s.Number = 6.0
	test.T(t, snap.Shape().Points[0][1], Point{10.0, 0.0})
	test.Float(t, *snap.Shape().Number, 3.0)

	s.Restore(snap)
	test.T(t, s.Points[0][1], Point{10.0, 0.0})
	test.Float(t, *s.Number, 3.0)

	s.Points[0][0] = Point{1.0, 1.0}
	test.T(t, snap.Shape().Points[0][0], Point{0.0, 0.0})
}

func TestShapeHit(t *testing.T) {
	line := &Shape{Kind: LineKind, Points: [][]Point{{{0.0, 0.0}, {100.0, 0.0}}}}
	var tts = []struct {
		pt   Point
		zoom float64
		hit  bool
	}{
		{Point{50.0, 0.0}, 1.0, true},
		{Point{50.0, 14.0}, 1.0, true},
		{Point{50.0, 16.0}, 1.0, false},
		{Point{50.0, 3.0}, 4.0, true},
		{Point{50.0, 5.0}, 4.0, false}, // 20 screen pixels away

		// the tolerance is in screen pixels: 5px on screen is a hit at any zoom
		{Point{50.0, 5.0}, 1.0, true},
		{Point{50.0, 5.0 / 4.0}, 4.0, true},
		{Point{150.0, 0.0}, 1.0, false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, line.Hit(tt.pt, tt.zoom, nil), tt.hit)
		})
	}

	area := &Shape{Kind: AreaRectKind, Points: [][]Point{{{0.0, 0.0}, {100.0, 0.0}, {0.0, 100.0}, {100.0, 100.0}}}}
	test.That(t, area.Hit(Point{50.0, 50.0}, 1.0, nil), "inside area")
	rect := &Shape{Kind: RectKind, Points: [][]Point{{{0.0, 0.0}, {100.0, 0.0}, {0.0, 100.0}, {100.0, 100.0}}}}
	test.That(t, !rect.Hit(Point{50.0, 50.0}, 1.0, nil), "inside box")
	test.That(t, rect.Hit(Point{50.0, 99.0}, 1.0, nil), "on box")

	text := &Shape{Kind: TextKind, Text: NewTextRun("a", 12.0), Points: [][]Point{{{0.0, 0.0}, {100.0, 20.0}}}}
	test.That(t, text.Hit(Point{50.0, 10.0}, 1.0, nil))
}

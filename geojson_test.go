package markup

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestShapeGeometry(t *testing.T) {
	var tts = []struct {
		shape *Shape
		geom  orb.Geometry
	}{
		{wireShape(LineKind, Point{0.0, 0.0}, Point{10.0, 5.0}),
			orb.LineString{{0.0, 0.0}, {10.0, 5.0}}},
		{wireShape(RectKind, Point{0.0, 0.0}, Point{10.0, 0.0}, Point{0.0, 5.0}, Point{10.0, 5.0}),
			orb.Polygon{{{0.0, 0.0}, {10.0, 0.0}, {10.0, 5.0}, {0.0, 5.0}, {0.0, 0.0}}}},
		{wireShape(AreaPolygonKind, Point{0.0, 0.0}, Point{10.0, 0.0}, Point{10.0, 10.0}),
			orb.Polygon{{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}, {0.0, 0.0}}}},
		{wireShape(RulerPolygonKind, Point{0.0, 0.0}, Point{10.0, 0.0}, Point{10.0, 10.0}),
			orb.LineString{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}, {0.0, 0.0}}},
		{wireShape(RulerFreehandKind, Point{0.0, 0.0}, Point{10.0, 0.0}, Point{10.0, 10.0}),
			orb.LineString{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}}},
		{wireShape(TextKind, Point{5.0, 6.0}, Point{50.0, 20.0}),
			orb.Point{5.0, 6.0}},
		{&Shape{Kind: LineKind}, nil},
	}
	for _, tt := range tts {
		t.Run(tt.shape.Kind.String(), func(t *testing.T) {
			test.T(t, tt.shape.Geometry(), tt.geom)
		})
	}

	pen := wireShape(PenKind, Point{0.0, 0.0}, Point{1.0, 1.0})
	pen.Points = append(pen.Points, []Point{{5.0, 5.0}, {6.0, 6.0}})
	test.T(t, pen.Geometry(), orb.MultiLineString{{{0.0, 0.0}, {1.0, 1.0}}, {{5.0, 5.0}, {6.0, 6.0}}})

	// an open polygon is not yet a ring
	open := NewShape(RulerPolygonKind, Point{0.0, 0.0}, Style{})
	open.AppendPoint(Point{10.0, 0.0})
	open.AppendPoint(Point{10.0, 10.0})
	test.T(t, open.Geometry(), orb.LineString{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}})
}

func TestShapeFeature(t *testing.T) {
	number := 12.3
	s := wireShape(RulerLineKind, Point{0.0, 0.0}, Point{10.0, 0.0})
	s.Number = &number
	f := s.Feature(nil)
	test.T(t, f.ID, s.ID)
	test.T(t, f.Properties["kind"], "rulerLine")
	test.T(t, f.Properties["strokeColor"], "#FF0000")
	test.T(t, f.Properties["measurement"], 12.3)
	test.T(t, f.Properties["label"], "12.3mm")
	_, ok := f.Properties["fillColor"]
	test.That(t, !ok)

	text := wireShape(TextKind, Point{0.0, 0.0}, Point{10.0, 10.0})
	text.Text = NewTextRun("note", 14.0)
	f = text.Feature(&Options{Unit: "cm", AreaUnit: "cm²"})
	test.T(t, f.Properties["text"], "note")
	test.T(t, f.Properties["fontSize"], 14.0)

	test.That(t, (&Shape{Kind: TextKind}).Feature(nil) == nil)
}

func TestFeatureCollection(t *testing.T) {
	doc := NewDocument(Size{100.0, 100.0})
	doc.Append(wireShape(LineKind, Point{0.0, 0.0}, Point{10.0, 5.0}))
	doc.Append(wireShape(OvalKind, Point{0.0, 0.0}, Point{10.0, 0.0}, Point{0.0, 5.0}, Point{10.0, 5.0}))
	doc.Append(&Shape{ID: "empty", Kind: PenKind})

	fc := doc.FeatureCollection(nil)
	test.T(t, len(fc.Features), 2)
	test.T(t, fc.Features[1].Geometry.GeoJSONType(), "Polygon")

	b, err := fc.MarshalJSON()
	test.Error(t, err)
	test.That(t, strings.Contains(string(b), `"FeatureCollection"`))
	test.That(t, strings.Contains(string(b), `"kind":"oval"`))
}

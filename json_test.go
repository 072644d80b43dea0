package markup

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tdewolff/test"
)

const legacyJSON = `{
	"width": 500,
	"height": 500,
	"shapes": [
		{"id": "e1", "type": "ellipse", "a": [0, 0], "b": [100, 50], "strokeColor": "#0000ff"},
		{"id": "f1", "type": "freehand", "segments": [{"a": [0, 0], "b": [10, 10]}, {"a": [10, 10], "b": [20, 0]}]},
		{"id": "t1", "type": "text", "boundingRect": [[10, 10], [100, 20]], "text": "hi", "fontSize": 12},
		{"id": "s1", "type": "star", "points": [[[0, 0], [10, 10]]]},
		{"id": "l1", "type": "line", "points": [[[5, 5], [5, 5]]]}
	]
}`

func TestParseJSON(t *testing.T) {
	shapes, skipped, err := ParseJSON(strings.NewReader(legacyJSON), Size{1000.0, 1000.0})
	test.Error(t, err)
	test.T(t, skipped, 2)
	test.T(t, len(shapes), 3)

	oval := shapes[0]
	test.T(t, oval.ID, "e1")
	test.T(t, oval.Kind, OvalKind)
	test.T(t, oval.StrokeColor, Blue)
	test.Float(t, oval.BaseLineWidth, 5.0)
	test.T(t, oval.Points[0], []Point{{0.0, 0.0}, {200.0, 0.0}, {0.0, 100.0}, {200.0, 100.0}})

	pen := shapes[1]
	test.T(t, pen.Kind, FreehandKind)
	test.T(t, pen.StrokeColor, Red)
	test.T(t, pen.LineCap, RoundCap)
	test.T(t, pen.Points[0], []Point{{0.0, 0.0}, {20.0, 20.0}, {40.0, 0.0}})

	text := shapes[2]
	test.T(t, text.Kind, TextKind)
	test.String(t, text.Text.Value, "hi")
	test.T(t, text.FillColor, Black)
	test.T(t, text.StrokeColor, Transparent)
	test.T(t, text.Points[0], []Point{{20.0, 20.0}, {220.0, 60.0}})

	_, _, err = ParseJSON(strings.NewReader(`{"shapes": [`), Size{})
	test.That(t, err != nil)
}

func TestJSONRoundTrip(t *testing.T) {
	number := 12.5
	ruler := &Shape{
		ID:     "r1",
		Kind:   RulerPolygonKind,
		Points: [][]Point{{{0.0, 0.0}, {100.0, 0.0}, {100.0, 50.0}}},
		Number: &number,
		Style:  Style{StrokeColor: Red, FillColor: Transparent, BaseLineWidth: 2.0, LineWidth: 2.0, Opacity: 1.0, LineCap: ButtCap},
	}
	pen := &Shape{
		ID:     "p1",
		Kind:   PenKind,
		Points: [][]Point{{{0.0, 0.0}, {10.0, 10.0}}, {{20.0, 20.0}, {30.0, 30.0}}},
		Style:  Style{StrokeColor: Blue, FillColor: Transparent, BaseLineWidth: 3.0, LineWidth: 3.0, Opacity: 1.0, LineCap: RoundCap},
	}
	text := &Shape{
		ID:     "t1",
		Kind:   TextKind,
		Text:   NewTextRun("note", 16.0),
		Points: [][]Point{{{10.0, 10.0}, {60.0, 30.0}}},
		Style:  Style{StrokeColor: Transparent, FillColor: Blue, BaseLineWidth: 1.0, LineWidth: 1.0, Opacity: 1.0, LineCap: ButtCap},
	}
	orig := []*Shape{ruler, pen, text}

	b, err := MarshalJSON(orig, Size{800.0, 600.0})
	test.Error(t, err)
	shapes, skipped, err := ParseJSON(bytes.NewReader(b), Size{800.0, 600.0})
	test.Error(t, err)
	test.T(t, skipped, 0)
	if diff := cmp.Diff(orig, shapes, cmpopts.IgnoreUnexported(Shape{})); diff != "" {
		t.Errorf("shapes mismatch (-want +got):\n%s", diff)
	}
}

func TestCanvasLoadJSON(t *testing.T) {
	c := New(Size{1000.0, 1000.0}, nil)
	skipped, err := c.LoadJSON(strings.NewReader(legacyJSON))
	test.Error(t, err)
	test.T(t, skipped, 2)
	test.T(t, len(c.Shapes()), 3)
	test.That(t, !c.ShouldSave())

	_, err = c.LoadJSON(strings.NewReader(`[]`))
	test.That(t, err != nil)
	test.T(t, len(c.Shapes()), 3)
}

func TestJSONMalformedPoint(t *testing.T) {
	_, skipped, err := ParseJSON(strings.NewReader(`{"shapes": [{"type": "ellipse", "a": [0], "b": [1, 1]}]}`), Size{})
	test.Error(t, err)
	test.T(t, skipped, 1)

	var doc JSONDocument
	doc.Shapes = []JSONShape{{Type: "text", Text: "x"}}
	shapes, skipped, err := doc.ToShapes(Size{})
	test.Error(t, err)
	test.T(t, len(shapes), 0)
	test.T(t, skipped, 1)

	_, err = (JSONShape{Type: "ellipse", A: []float64{0.0}}).toShape()
	test.That(t, errors.Is(err, ErrMalformedWireData))
}

func TestJSONPathData(t *testing.T) {
	doc := `{"shapes": [
		{"id": "a", "type": "areaPolygon", "path": "M0 0L100 0L100 100z"},
		{"id": "p", "type": "pen", "path": "M0 0L10 10M20 20L30 30"},
		{"id": "x", "type": "pen", "path": "M0 0A1 1 0 0 0 1 1"}
	]}`
	shapes, skipped, err := ParseJSON(strings.NewReader(doc), Size{})
	test.Error(t, err)
	test.T(t, skipped, 1)
	test.T(t, len(shapes), 2)

	// the closing point of a polygon is implicit
	test.T(t, shapes[0].Points, [][]Point{{{0.0, 0.0}, {100.0, 0.0}, {100.0, 100.0}}})
	test.T(t, shapes[1].Points, [][]Point{{{0.0, 0.0}, {10.0, 10.0}}, {{20.0, 20.0}, {30.0, 30.0}}})
}

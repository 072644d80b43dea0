package markup

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestPolylineLength(t *testing.T) {
	var tts = []struct {
		points    []Point
		closeLoop bool
		length    float64
		ok        bool
	}{
		{nil, false, 0.0, false},
		{[]Point{{5.0, 5.0}}, true, 0.0, false},
		{[]Point{{0.0, 0.0}, {3.0, 4.0}}, false, 5.0, true},
		{[]Point{{0.0, 0.0}, {3.0, 4.0}}, true, 5.0, true},
		{[]Point{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}}, false, 20.0, true},
		{[]Point{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}, {0.0, 10.0}}, true, 40.0, true},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			length, ok := PolylineLength(tt.points, tt.closeLoop)
			test.T(t, ok, tt.ok)
			test.Float(t, length, tt.length)
		})
	}
}

func TestBezierArcLength(t *testing.T) {
	// straight
	test.Float(t, BezierArcLength(Point{0.0, 0.0}, Point{10.0, 0.0}, Point{5.0, 0.0}), 10.0)

	// closed form of 1/20 ∫ sqrt(100+u²) du over [0,20]
	want := (10.0*math.Sqrt(500.0) + 50.0*math.Asinh(2.0)) / 20.0
	test.Float(t, BezierArcLength(Point{0.0, 0.0}, Point{10.0, 0.0}, Point{5.0, 10.0}), want)
}

func TestPixelsPerUnit(t *testing.T) {
	length := 50.0
	zero := 0.0
	base := []Point{{0.0, 0.0}, {100.0, 0.0}}

	ppu, ok := PixelsPerUnit(base, &length)
	test.That(t, ok)
	test.Float(t, ppu, 0.5)

	_, ok = PixelsPerUnit(base, nil)
	test.That(t, !ok, "absent length")

	_, ok = PixelsPerUnit([]Point{{10.0, 10.0}, {10.0, 10.0}}, &length)
	test.That(t, !ok, "zero-length base")

	ppu, ok = PixelsPerUnit(base, &zero)
	test.That(t, ok)
	test.Float(t, ppu, 0.0)
}

func TestLength(t *testing.T) {
	v, ok := Length([]Point{{0.0, 0.0}, {40.0, 0.0}}, false, 0.5)
	test.That(t, ok)
	test.Float(t, v, 20.0)

	// truncated, not rounded
	v, ok = Length([]Point{{0.0, 0.0}, {10.0, 0.0}}, false, 0.1299)
	test.That(t, ok)
	test.Float(t, v, 1.2)

	_, ok = Length([]Point{{0.0, 0.0}}, false, 1.0)
	test.That(t, !ok)
}

func TestRectMeasurements(t *testing.T) {
	r := Rect{10.0, 10.0, 200.0, 100.0}
	test.Float(t, RectLength(r, 0.5), 300.0)
	test.Float(t, RectLength(Rect{10.0, 10.0, -200.0, -100.0}, 0.5), 300.0)
	test.Float(t, RectArea(r, 10.0), 2.0)
	test.Float(t, RectArea(Rect{0.0, 0.0, 1000.0, 1500.0}, 1.0), 1.5)
}

func TestArea(t *testing.T) {
	square := []Point{{0.0, 0.0}, {1000.0, 0.0}, {1000.0, 1000.0}, {0.0, 1000.0}}
	v, ok := Area(square, 1.0)
	test.That(t, ok)
	test.Float(t, v, 1.0)

	v, ok = Area(square, 2.0)
	test.That(t, ok)
	test.Float(t, v, 4.0)

	_, ok = Area(square[:2], 1.0)
	test.That(t, !ok, "two points")
}

func TestHasSelfIntersection(t *testing.T) {
	var tts = []struct {
		points []Point
		self   bool
	}{
		{[]Point{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}}, false},
		{[]Point{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}, {0.0, 10.0}}, false},
		{[]Point{{0.0, 0.0}, {10.0, 0.0}, {0.0, 10.0}, {10.0, 10.0}}, true}, // bowtie
		{[]Point{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}, {5.0, -5.0}, {0.0, 10.0}}, true},
		{[]Point{{0.0, 0.0}, {10.0, 0.0}, {10.0, 10.0}, {5.0, 5.0}, {0.0, 10.0}}, false}, // concave
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, HasSelfIntersection(tt.points), tt.self)
		})
	}
}

func TestCalibration(t *testing.T) {
	var cal Calibration
	test.That(t, !cal.Valid())
	_, err := cal.Require()
	test.That(t, errors.Is(err, ErrMissingCalibration))

	base := NewShape(RulerBaseKind, Point{0.0, 0.0}, Style{})
	base.Extend(Point{0.0, 200.0})
	cal = CalibrationFrom(base)
	test.That(t, !cal.Valid(), "no length")
	_, err = cal.Require()
	test.That(t, errors.Is(err, ErrMissingCalibration))

	length := 100.0
	base.Number = &length
	cal = CalibrationFrom(base)
	ppu, err := cal.Require()
	test.Error(t, err)
	test.Float(t, ppu, 0.5)

	test.That(t, !CalibrationFrom(NewShape(RulerLineKind, Point{}, Style{})).Valid(), "not a base")
}

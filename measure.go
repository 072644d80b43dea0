package markup

import (
	"math"
)

// PolylineLength returns the summed distance between consecutive points. When closeLoop is set and there are more than two points, the distance from the last point back to the first is added. It returns false for fewer than two points.
func PolylineLength(points []Point, closeLoop bool) (float64, bool) {
	if len(points) < 2 {
		return 0.0, false
	}
	d := NewPolyline(points).Length()
	if closeLoop && 2 < len(points) {
		d += points[len(points)-1].Sub(points[0]).Length()
	}
	return d, true
}

// BezierArcLength returns the arc length of the quadratic Bézier from start to end with the given control point.
func BezierArcLength(start, end, control Point) float64 {
	// see http://www.malczak.linuxpl.com/blog/quadratic-bezier-curve-length/
	a := start.Sub(control.Mul(2.0)).Add(end)
	b := control.Sub(start).Mul(2.0)
	A := 4.0 * a.Dot(a)
	B := 4.0 * a.Dot(b)
	C := b.Dot(b)
	if A < Epsilon {
		return end.Sub(start).Length()
	}

	Sabc := 2.0 * math.Sqrt(A+B+C)
	A2 := math.Sqrt(A)
	A32 := 2.0 * A * A2
	C2 := 2.0 * math.Sqrt(C)
	BA := B / A2
	if BA+C2 <= Epsilon {
		// control point lies on the line beyond one of the end points
		speed := func(t float64) float64 {
			return a.Mul(2.0 * t).Add(b).Length()
		}
		return integrate(gaussLegendre7, speed, 0.0, 1.0, 16)
	}
	return (A32*Sabc + A2*B*(Sabc-C2) + (4.0*C*A-B*B)*math.Log((2.0*A2+BA+Sabc)/(BA+C2))) / (4.0 * A32)
}

// PixelsPerUnit returns the real-world length represented by one pixel, given the calibration base end points and its real length. It returns false if the real length is absent or the base has zero length.
func PixelsPerUnit(base []Point, realLength *float64) (float64, bool) {
	if realLength == nil || len(base) < 2 {
		return 0.0, false
	}
	d := base[len(base)-1].Sub(base[0]).Length()
	if equal(d, 0.0) {
		return 0.0, false
	}
	return *realLength / d, true
}

// Length returns the scaled polyline length truncated at one decimal.
func Length(points []Point, closeLoop bool, ppu float64) (float64, bool) {
	d, ok := PolylineLength(points, closeLoop)
	if !ok {
		return 0.0, false
	}
	return truncate(d * ppu), true
}

// RectLength returns the scaled perimeter of r truncated at one decimal.
func RectLength(r Rect, ppu float64) float64 {
	return truncate((math.Abs(r.W)*ppu + math.Abs(r.H)*ppu) * 2.0)
}

// RectArea returns the scaled area of r in square meters truncated at one decimal.
func RectArea(r Rect, ppu float64) float64 {
	return truncate(math.Abs(r.W) * ppu * math.Abs(r.H) * ppu / 1e6)
}

// Area returns the scaled area of the closed polygon in square meters truncated at one decimal. It returns false for fewer than three points.
func Area(points []Point, ppu float64) (float64, bool) {
	if len(points) < 3 {
		return 0.0, false
	}
	return truncate(NewPolyline(points).Area() * ppu * ppu / 1e6), true
}

// HasSelfIntersection returns true if the polygon through points has two non-adjacent edges that intersect.
func HasSelfIntersection(points []Point) bool {
	return (&Polyline{points}).SelfIntersects()
}

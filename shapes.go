package markup

import (
	"math"
)

// Line returns a line segment from (x0,y0) to (x1,y1).
func Line(x0, y0, x1, y1 float64) *Path {
	p := &Path{}
	p.MoveTo(x0, y0)
	p.LineTo(x1, y1)
	return p
}

// Rectangle returns a rectangle with origin (x,y) and width w and height h. Negative dimensions extend the rectangle to the left or upwards.
func Rectangle(x, y, w, h float64) *Path {
	if equal(w, 0.0) && equal(h, 0.0) {
		return &Path{}
	}

	p := &Path{}
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	return p
}

// Ellipse returns an ellipse centered at (cx,cy) with radii rx and ry, approximated by four cubic Béziers.
func Ellipse(cx, cy, rx, ry float64) *Path {
	if equal(rx, 0.0) && equal(ry, 0.0) {
		return &Path{}
	}

	// see https://spencermortensen.com/articles/bezier-circle/
	const k = 0.5522847498
	kx, ky := k*rx, k*ry

	p := &Path{}
	p.MoveTo(cx+rx, cy)
	p.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.Close()
	return p
}

// Polygon returns a path through the given points, closed if requested.
func Polygon(points []Point, closed bool) *Path {
	p := &Path{}
	for i, pt := range points {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
		} else {
			p.LineTo(pt.X, pt.Y)
		}
	}
	if closed && 2 < len(points) {
		p.Close()
	}
	return p
}

// ArrowHead returns the closed arrow head at the end of the line from start to end. The head extends 0.8*size beyond the end point and is size wide.
func ArrowHead(start, end Point, size float64) *Path {
	v := end.Sub(start)
	c := v.Length()
	if equal(c, 0.0) {
		return &Path{}
	}

	phi := v.Angle()
	tip := start.Add(Point{math.Cos(phi), math.Sin(phi)}.Mul(c + size*0.8))

	c1 := math.Hypot(c, size/2.0)
	dphi := math.Acos(c / c1)
	left := start.Add(Point{math.Cos(phi - dphi), math.Sin(phi - dphi)}.Mul(c1 - size/3.0))
	right := start.Add(Point{math.Cos(phi + dphi), math.Sin(phi + dphi)}.Mul(c1 - size/3.0))

	p := &Path{}
	p.MoveTo(end.X, end.Y)
	p.LineTo(right.X, right.Y)
	p.LineTo(tip.X, tip.Y)
	p.LineTo(left.X, left.Y)
	p.Close()
	return p
}

// RulerTick returns a tick of half-length h through pt, perpendicular to the direction with angle phi.
func RulerTick(pt Point, phi, h float64) *Path {
	d := Point{-math.Sin(phi), math.Cos(phi)}.Mul(h)
	a, b := pt.Sub(d), pt.Add(d)
	return Line(a.X, a.Y, b.X, b.Y)
}

// RulerTicks returns the ticks at both end points of the segment from start to end. If slanted is set a second tick rotated by 30 degrees is added at each end, which marks the calibration base.
func RulerTicks(start, end Point, h float64, slanted bool) *Path {
	phi := start.Sub(end).Angle()
	if phi < 0.0 {
		phi += 2.0 * math.Pi
	}

	p := &Path{}
	for _, pt := range []Point{start, end} {
		p.Append(RulerTick(pt, phi, h))
		if slanted {
			p.Append(RulerTick(pt, phi+math.Pi/6.0, h))
		}
	}
	return p
}

// SmoothStroke returns the stroke through the given points smoothed by quadratic Béziers between the segment midpoints, with the original points as control points. Groups of a single point are skipped.
func SmoothStroke(groups [][]Point) *Path {
	p := &Path{}
	for _, pts := range groups {
		if len(pts) < 2 {
			continue
		}
		p.MoveTo(pts[0].X, pts[0].Y)
		mid := pts[0].Interpolate(pts[1], 0.5)
		p.LineTo(mid.X, mid.Y)
		for j := 2; j < len(pts); j++ {
			mid = pts[j-1].Interpolate(pts[j], 0.5)
			p.QuadTo(pts[j-1].X, pts[j-1].Y, mid.X, mid.Y)
		}
		last := pts[len(pts)-1]
		p.LineTo(last.X, last.Y)
	}
	return p
}

// LabelAngle returns the rotation for a label along the direction phi so that it is never upside down.
func LabelAngle(phi float64) float64 {
	if phi < 0.0 {
		phi += 2.0 * math.Pi
	}
	if math.Pi/2.0 <= phi && phi <= math.Pi*1.5 {
		phi += math.Pi
	}
	return phi
}

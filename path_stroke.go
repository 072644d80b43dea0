package markup

import "math"

// StrokeContains returns true if q lies inside the outline of the path stroked with the given width. Stroke ends use butt caps and segments are connected by bevel joins, which is the most conservative outline for touch hit testing.
func (p *Path) StrokeContains(q Point, width float64) bool {
	r := width / 2.0
	if r <= 0.0 {
		return false
	}
	for _, poly := range p.Flatten(Tolerance) {
		coords := poly.coords
		n := len(coords)
		for i := 1; i < n; i++ {
			if segmentContains(coords[i-1], coords[i], q, r) {
				return true
			}
		}
		for i := 1; i < n-1; i++ {
			if bevelContains(coords[i-1], coords[i], coords[i+1], q, r) {
				return true
			}
		}
		if poly.Closed() && 3 < n {
			if bevelContains(coords[n-2], coords[0], coords[1], q, r) {
				return true
			}
		}
	}
	return false
}

// segmentContains returns true if q lies within distance r of segment AB, with the ends cut off perpendicularly.
func segmentContains(a, b, q Point, r float64) bool {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < Epsilon {
		return false
	}
	t := q.Sub(a).Dot(ab) / l2
	if t < 0.0 || 1.0 < t {
		return false
	}
	return math.Abs(ab.PerpDot(q.Sub(a)))/math.Sqrt(l2) <= r
}

// bevelContains returns true if q lies in the bevel join at B between segments AB and BC.
func bevelContains(a, b, c, q Point, r float64) bool {
	n0 := b.Sub(a).Rot90CCW().Norm(r)
	n1 := c.Sub(b).Rot90CCW().Norm(r)
	if n0.IsZero() || n1.IsZero() {
		return false
	}
	return triangleContains(b, b.Add(n0), b.Add(n1), q) || triangleContains(b, b.Sub(n0), b.Sub(n1), q)
}

func triangleContains(a, b, c, q Point) bool {
	if math.Abs(b.Sub(a).PerpDot(c.Sub(a))) < Epsilon {
		return false
	}
	d1 := b.Sub(a).PerpDot(q.Sub(a))
	d2 := c.Sub(b).PerpDot(q.Sub(b))
	d3 := a.Sub(c).PerpDot(q.Sub(c))
	neg := d1 < 0.0 || d2 < 0.0 || d3 < 0.0
	pos := 0.0 < d1 || 0.0 < d2 || 0.0 < d3
	return !(neg && pos)
}

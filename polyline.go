package markup

import "math"

// Polyline defines a list of points in 2D space that form a polyline. If the last coordinate equals the first coordinate, we assume the polyline to close itself.
type Polyline struct {
	coords []Point
}

// NewPolyline returns a polyline over a copy of the given points.
func NewPolyline(points []Point) *Polyline {
	return &Polyline{append([]Point{}, points...)}
}

// Empty returns true if the polyline is empty.
func (p *Polyline) Empty() bool {
	return len(p.coords) < 2
}

// Close adds a new point equal to the first, closing the polyline.
func (p *Polyline) Close() *Polyline {
	if 0 < len(p.coords) && !p.Closed() {
		p.coords = append(p.coords, p.coords[0])
	}
	return p
}

// Closed returns true if the last point coincides with the first.
func (p *Polyline) Closed() bool {
	return 1 < len(p.coords) && p.coords[0].Equals(p.coords[len(p.coords)-1])
}

// Coords returns the list of coordinates of the polyline.
func (p *Polyline) Coords() []Point {
	return p.coords
}

// ToPath converts the polyline to a path. If the last coordinate equals the first one, we close the path.
func (p *Polyline) ToPath() *Path {
	if len(p.coords) < 2 {
		return &Path{}
	}

	q := &Path{}
	q.MoveTo(p.coords[0].X, p.coords[0].Y)
	for _, coord := range p.coords[1 : len(p.coords)-1] {
		q.LineTo(coord.X, coord.Y)
	}
	if p.Closed() {
		q.Close()
	} else {
		q.LineTo(p.coords[len(p.coords)-1].X, p.coords[len(p.coords)-1].Y)
	}
	return q
}

// Length returns the sum of the segment lengths. The closing segment is included for closed polylines.
func (p *Polyline) Length() float64 {
	d := 0.0
	for i := 1; i < len(p.coords); i++ {
		d += p.coords[i].Sub(p.coords[i-1]).Length()
	}
	return d
}

// FillCount returns the number of times the test point is enclosed by the polyline. Counter clockwise enclosures are counted positively and clockwise enclosures negatively. An open polyline is treated as implicitly closed.
func (p *Polyline) FillCount(x, y float64) int {
	if len(p.coords) < 3 {
		return 0
	}
	test := Point{x, y}
	count := 0
	prevCoord := p.coords[len(p.coords)-1]
	for _, coord := range p.coords {
		// see https://wrf.ecse.rpi.edu//Research/Short_Notes/pnpoly.html
		if (test.Y < coord.Y) != (test.Y < prevCoord.Y) &&
			test.X < (prevCoord.X-coord.X)*(test.Y-coord.Y)/(prevCoord.Y-coord.Y)+coord.X {
			if prevCoord.Y < coord.Y {
				count--
			} else {
				count++
			}
		}
		prevCoord = coord
	}
	return count
}

// Interior is true when the point (x,y) is in the interior of the polyline, i.e. gets filled. This depends on the FillRule.
func (p *Polyline) Interior(x, y float64, fillRule FillRule) bool {
	fillCount := p.FillCount(x, y)
	if fillRule == NonZero {
		return fillCount != 0
	}
	return fillCount%2 != 0
}

// Area returns the polygon's area, treating the polyline as closed.
func (p *Polyline) Area() float64 {
	n := len(p.coords)
	if p.Closed() {
		n--
	}
	a := 0.0
	for i := 0; i < n; i++ {
		a += p.coords[i].PerpDot(p.coords[(i+1)%n])
	}
	return math.Abs(a / 2.0)
}

// SelfIntersects returns true if any two non-adjacent edges of the polygon cross, including the implicit closing edge.
func (p *Polyline) SelfIntersects() bool {
	coords := p.coords
	if p.Closed() {
		coords = coords[:len(coords)-1]
	}
	n := len(coords)
	if n <= 3 {
		return false
	}
	for i := 0; i <= n-4; i++ {
		for j := i + 2; j <= n-2; j++ {
			if intersectionSegmentSegment(coords[i], coords[i+1], coords[j], coords[j+1]) {
				return true
			}
		}
	}
	for i := 1; i <= n-3; i++ {
		if intersectionSegmentSegment(coords[0], coords[n-1], coords[i], coords[i+1]) {
			return true
		}
	}
	return false
}

// intersectionSegmentSegment returns true if segments A0A1 and B0B1 touch or cross. Parallel segments never intersect.
func intersectionSegmentSegment(a0, a1, b0, b1 Point) bool {
	da := a1.Sub(a0)
	db := b1.Sub(b0)
	div := da.PerpDot(db)
	if div == 0.0 {
		return false
	}
	w := b0.Sub(a0)
	u := w.PerpDot(db) / div
	v := w.PerpDot(da) / div
	return 0.0 <= u && u <= 1.0 && 0.0 <= v && v <= 1.0
}

package markup

import (
	"fmt"
	"math"
)

// Epsilon is the smallest number below which we assume the value to be zero.
const Epsilon = 1e-10

// equal returns true if a and b are equal with tolerance Epsilon.
func equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// truncate truncates v toward zero at one decimal.
func truncate(v float64) float64 {
	return math.Trunc(v*10.0) / 10.0
}

// clamp returns v limited to the range [lower,upper].
func clamp(v, lower, upper float64) float64 {
	return math.Max(lower, math.Min(v, upper))
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in 2D space. OP refers to the line that goes through the origin (0,0) and this point (x,y).
type Point struct {
	X, Y float64
}

// IsZero returns true if P is exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0.0 && p.Y == 0.0
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return equal(p.X, q.X) && equal(p.Y, q.Y)
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies x and y by f.
func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y}
}

// Rot90CCW rotates the line OP by 90 degrees CCW.
func (p Point) Rot90CCW() Point {
	return Point{-p.Y, p.X}
}

// Dot returns the dot product between OP and OQ, ie. zero if perpendicular and |OP|*|OQ| if aligned.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// PerpDot returns the perp dot product between OP and OQ, ie. zero if aligned and |OP|*|OQ| if perpendicular.
func (p Point) PerpDot(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of OP.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Angle returns the angle between the x-axis and OP.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Norm normalized OP to be of certain length.
func (p Point) Norm(length float64) Point {
	d := p.Length()
	if equal(d, 0.0) {
		return Point{}
	}
	return Point{p.X / d * length, p.Y / d * length}
}

// Interpolate returns a point on PQ that is linearly interpolated by t, ie. t=0 returns P and t=1 returns Q.
func (p Point) Interpolate(q Point, t float64) Point {
	return Point{(1-t)*p.X + t*q.X, (1-t)*p.Y + t*q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("[%g; %g]", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Size is the width and height of a canvas or image.
type Size struct {
	W, H float64
}

// Empty returns true if either dimension is zero or negative.
func (s Size) Empty() bool {
	return s.W <= 0.0 || s.H <= 0.0
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.W, s.H)
}

////////////////////////////////////////////////////////////////

// Rect is an axis-aligned rectangle with origin (X,Y) at its upper-left corner.
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints returns the bounding rectangle of the given points.
func RectFromPoints(points ...Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	x0, y0 := points[0].X, points[0].Y
	x1, y1 := x0, y0
	for _, p := range points[1:] {
		x0 = math.Min(x0, p.X)
		y0 = math.Min(y0, p.Y)
		x1 = math.Max(x1, p.X)
		y1 = math.Max(y1, p.Y)
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Contains returns true if p lies inside or on the border of the rectangle.
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X <= r.X+r.W && r.Y <= p.Y && p.Y <= r.Y+r.H
}

// Max returns the lower-right corner.
func (r Rect) Max() Point {
	return Point{r.X + r.W, r.Y + r.H}
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2.0, r.Y + r.H/2.0}
}

// ToPath returns the rectangle as a closed path.
func (r Rect) ToPath() *Path {
	return Rectangle(r.X, r.Y, r.W, r.H)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g; %g]--[%g; %g]", r.X, r.Y, r.X+r.W, r.Y+r.H)
}

////////////////////////////////////////////////////////////////

// Matrix is used for affine transformations. Be aware that concatenating transformation function will be evaluated right-to-left! So in Identity.Scale(2,2).Translate(20,0) will first translate 20 points horizontally and then scale.
type Matrix [2][3]float64

// Identity is the identity affine transformation matrix, i.e. transforms any point to itself.
var Identity = Matrix{
	{1.0, 0.0, 0.0},
	{0.0, 1.0, 0.0},
}

// Mul multiplies the current matrix by the given matrix, i.e. combining transformations.
func (m Matrix) Mul(q Matrix) Matrix {
	return Matrix{{
		m[0][0]*q[0][0] + m[0][1]*q[1][0],
		m[0][0]*q[0][1] + m[0][1]*q[1][1],
		m[0][0]*q[0][2] + m[0][1]*q[1][2] + m[0][2],
	}, {
		m[1][0]*q[0][0] + m[1][1]*q[1][0],
		m[1][0]*q[0][1] + m[1][1]*q[1][1],
		m[1][0]*q[0][2] + m[1][1]*q[1][2] + m[1][2],
	}}
}

// Dot returns the dot product between the matrix and the given vector, i.e. applying the transformation.
func (m Matrix) Dot(p Point) Point {
	return Point{
		m[0][0]*p.X + m[0][1]*p.Y + m[0][2],
		m[1][0]*p.X + m[1][1]*p.Y + m[1][2],
	}
}

// Translate adds a translation in x and y.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Mul(Matrix{
		{1.0, 0.0, x},
		{0.0, 1.0, y},
	})
}

// Scale adds a scaling transformation in sx and sy. When scale is negative it will flip those axes.
func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Mul(Matrix{
		{sx, 0.0, 0.0},
		{0.0, sy, 0.0},
	})
}

// Rotate adds a rotation transformation with rot in radians.
func (m Matrix) Rotate(rot float64) Matrix {
	sin, cos := math.Sincos(rot)
	return m.Mul(Matrix{
		{cos, -sin, 0.0},
		{sin, cos, 0.0},
	})
}

// ScaleAbout adds a scaling transformation around point (x,y).
func (m Matrix) ScaleAbout(sx, sy, x, y float64) Matrix {
	return m.Translate(x, y).Scale(sx, sy).Translate(-x, -y)
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%g %g; %g %g] + [%g %g]", m[0][0], m[0][1], m[1][0], m[1][1], m[0][2], m[1][2])
}

////////////////////////////////////////////////////////////////

type gaussLegendreFunc func(func(float64) float64, float64, float64) float64

// Gauss-Legendre quadrature integration from a to b with n=7
// see https://pomax.github.io/bezierinfo/legendre-gauss.html for more values
func gaussLegendre7(f func(float64) float64, a, b float64) float64 {
	c := (b - a) / 2.0
	d := (a + b) / 2.0
	Qd1 := f(-0.949108*c + d)
	Qd2 := f(-0.741531*c + d)
	Qd3 := f(-0.405845*c + d)
	Qd4 := f(d)
	Qd5 := f(0.405845*c + d)
	Qd6 := f(0.741531*c + d)
	Qd7 := f(0.949108*c + d)
	return c * (0.129485*(Qd1+Qd7) + 0.279705*(Qd2+Qd6) + 0.381830*(Qd3+Qd5) + 0.417959*Qd4)
}

// integrate splits [a,b] into n intervals and sums the quadrature over each.
func integrate(gaussLegendre gaussLegendreFunc, f func(float64) float64, a, b float64, n int) float64 {
	sum := 0.0
	dt := (b - a) / float64(n)
	for i := 0; i < n; i++ {
		sum += gaussLegendre(f, a+float64(i)*dt, a+float64(i+1)*dt)
	}
	return sum
}

package markup

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/minify/v2"
	parseStrconv "github.com/tdewolff/parse/v2/strconv"
)

// Tolerance is the maximum deviation from the original path in content units when e.g. flattening.
var Tolerance = 0.01

// FillRule is the algorithm to specify which area is to be filled and which not, in particular when multiple subpaths overlap.
type FillRule int

// see FillRule
const (
	NonZero FillRule = iota
	EvenOdd
)

func (fillRule FillRule) String() string {
	switch fillRule {
	case NonZero:
		return "NonZero"
	case EvenOdd:
		return "EvenOdd"
	}
	return fmt.Sprintf("FillRule(%d)", int(fillRule))
}

// PathCmd is a path command.
type PathCmd int

// see PathCmd
const (
	MoveToCmd PathCmd = iota
	LineToCmd
	QuadToCmd
	CubeToCmd
	CloseCmd
)

func cmdLen(cmd PathCmd) int {
	switch cmd {
	case MoveToCmd, LineToCmd:
		return 2
	case QuadToCmd:
		return 4
	case CubeToCmd:
		return 6
	}
	return 0
}

// Path is the abstract geometry handed to renderers. It consists of move, line, quadratic and cubic Bézier and close commands. All values are stored as coordinate pairs, so any affine transformation can be applied to the data directly.
type Path struct {
	cmds []PathCmd
	d    []float64
	x0   float64
	y0   float64
}

// Empty returns true if p is an empty path or consists of only MoveTos and Closes.
func (p *Path) Empty() bool {
	for _, cmd := range p.cmds {
		if cmd != MoveToCmd && cmd != CloseCmd {
			return false
		}
	}
	return true
}

// Copy returns a copy of p.
func (p *Path) Copy() *Path {
	return &Path{
		cmds: append([]PathCmd{}, p.cmds...),
		d:    append([]float64{}, p.d...),
		x0:   p.x0,
		y0:   p.y0,
	}
}

// Append appends path q to p.
func (p *Path) Append(q *Path) *Path {
	if q == nil || len(q.cmds) == 0 {
		return p
	}
	p.cmds = append(p.cmds, q.cmds...)
	p.d = append(p.d, q.d...)
	p.x0, p.y0 = q.x0, q.y0
	return p
}

// Translate translates the path by (x,y).
func (p *Path) Translate(x, y float64) *Path {
	return p.Transform(Identity.Translate(x, y))
}

// Transform transforms the path by the given transformation matrix.
func (p *Path) Transform(m Matrix) *Path {
	for i := 0; i+1 < len(p.d); i += 2 {
		q := m.Dot(Point{p.d[i], p.d[i+1]})
		p.d[i], p.d[i+1] = q.X, q.Y
	}
	q := m.Dot(Point{p.x0, p.y0})
	p.x0, p.y0 = q.X, q.Y
	return p
}

////////////////////////////////////////////////////////////////

// MoveTo moves the path to (x,y) without connecting the path. It starts a new independent subpath.
func (p *Path) MoveTo(x, y float64) {
	p.cmds = append(p.cmds, MoveToCmd)
	p.d = append(p.d, x, y)
	p.x0, p.y0 = x, y
}

// LineTo adds a linear path to (x,y).
func (p *Path) LineTo(x, y float64) {
	if len(p.cmds) == 0 {
		p.MoveTo(0.0, 0.0)
	}
	p.cmds = append(p.cmds, LineToCmd)
	p.d = append(p.d, x, y)
}

// QuadTo adds a quadratic Bézier path with control point (cpx,cpy) and end point (x,y).
func (p *Path) QuadTo(cpx, cpy, x, y float64) {
	if len(p.cmds) == 0 {
		p.MoveTo(0.0, 0.0)
	}
	p.cmds = append(p.cmds, QuadToCmd)
	p.d = append(p.d, cpx, cpy, x, y)
}

// CubeTo adds a cubic Bézier path with control points (cpx1,cpy1) and (cpx2,cpy2) and end point (x,y).
func (p *Path) CubeTo(cpx1, cpy1, cpx2, cpy2, x, y float64) {
	if len(p.cmds) == 0 {
		p.MoveTo(0.0, 0.0)
	}
	p.cmds = append(p.cmds, CubeToCmd)
	p.d = append(p.d, cpx1, cpy1, cpx2, cpy2, x, y)
}

// Close closes a (sub)path with a LineTo to the start of the path (the most recent MoveTo command).
func (p *Path) Close() {
	if len(p.cmds) == 0 || p.cmds[len(p.cmds)-1] == CloseCmd {
		return
	}
	p.cmds = append(p.cmds, CloseCmd)
}

////////////////////////////////////////////////////////////////

// PathScanner iterates over the commands of a path.
type PathScanner struct {
	p          *Path
	i, j       int
	cmd        PathCmd
	values     []float64
	start, end Point
	closeTo    Point
}

// Scanner returns a path scanner.
func (p *Path) Scanner() *PathScanner {
	return &PathScanner{p: p}
}

// Scan scans a new path segment and should be called before the other methods.
func (s *PathScanner) Scan() bool {
	if len(s.p.cmds) <= s.i {
		return false
	}
	s.cmd = s.p.cmds[s.i]
	n := cmdLen(s.cmd)
	s.values = s.p.d[s.j : s.j+n]
	s.start = s.end
	switch s.cmd {
	case MoveToCmd:
		s.end = Point{s.values[0], s.values[1]}
		s.closeTo = s.end
	case CloseCmd:
		s.end = s.closeTo
	default:
		s.end = Point{s.values[n-2], s.values[n-1]}
	}
	s.i++
	s.j += n
	return true
}

// Cmd returns the current path segment command.
func (s *PathScanner) Cmd() PathCmd {
	return s.cmd
}

// Values returns the current path segment values.
func (s *PathScanner) Values() []float64 {
	return s.values
}

// Start returns the current path segment start position.
func (s *PathScanner) Start() Point {
	return s.start
}

// CP1 returns the first control point for quadratic and cubic Béziers.
func (s *PathScanner) CP1() Point {
	if s.cmd != QuadToCmd && s.cmd != CubeToCmd {
		panic("must be quadratic or cubic Bézier")
	}
	return Point{s.values[0], s.values[1]}
}

// CP2 returns the second control point for cubic Béziers.
func (s *PathScanner) CP2() Point {
	if s.cmd != CubeToCmd {
		panic("must be cubic Bézier")
	}
	return Point{s.values[2], s.values[3]}
}

// End returns the current path segment end position.
func (s *PathScanner) End() Point {
	return s.end
}

////////////////////////////////////////////////////////////////

func quadraticBezierPos(p0, p1, p2 Point, t float64) Point {
	p0 = p0.Mul(1.0 - 2.0*t + t*t)
	p1 = p1.Mul(2.0*t - 2.0*t*t)
	p2 = p2.Mul(t * t)
	return p0.Add(p1).Add(p2)
}

func cubicBezierPos(p0, p1, p2, p3 Point, t float64) Point {
	p0 = p0.Mul(1.0 - 3.0*t + 3.0*t*t - t*t*t)
	p1 = p1.Mul(3.0*t - 6.0*t*t + 3.0*t*t*t)
	p2 = p2.Mul(3.0*t*t - 3.0*t*t*t)
	p3 = p3.Mul(t * t * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

// flattenSteps returns the number of linear segments needed to stay within tolerance, see Wang's formula.
func flattenSteps(degree int, ctrl []Point, tolerance float64) int {
	dd := 0.0
	for i := 2; i < len(ctrl); i++ {
		dd = math.Max(dd, ctrl[i].Sub(ctrl[i-1].Mul(2.0)).Add(ctrl[i-2]).Length())
	}
	n := math.Ceil(math.Sqrt(float64(degree*(degree-1)) / 8.0 * dd / tolerance))
	return int(clamp(n, 1.0, 1000.0))
}

// Flatten returns the subpaths of p approximated by polylines within the given tolerance. Closed subpaths end on their starting point.
func (p *Path) Flatten(tolerance float64) []*Polyline {
	var polys []*Polyline
	var cur *Polyline
	s := p.Scanner()
	for s.Scan() {
		switch s.Cmd() {
		case MoveToCmd:
			cur = &Polyline{}
			polys = append(polys, cur)
			cur.coords = append(cur.coords, s.End())
		case LineToCmd:
			cur.coords = append(cur.coords, s.End())
		case QuadToCmd:
			p0, p1, p2 := s.Start(), s.CP1(), s.End()
			n := flattenSteps(2, []Point{p0, p1, p2}, tolerance)
			for i := 1; i <= n; i++ {
				cur.coords = append(cur.coords, quadraticBezierPos(p0, p1, p2, float64(i)/float64(n)))
			}
		case CubeToCmd:
			p0, p1, p2, p3 := s.Start(), s.CP1(), s.CP2(), s.End()
			n := flattenSteps(3, []Point{p0, p1, p2, p3}, tolerance)
			for i := 1; i <= n; i++ {
				cur.coords = append(cur.coords, cubicBezierPos(p0, p1, p2, p3, float64(i)/float64(n)))
			}
		case CloseCmd:
			cur.Close()
		}
	}
	return polys
}

// Bounds returns the bounding box of the path.
func (p *Path) Bounds() Rect {
	var coords []Point
	for _, poly := range p.Flatten(Tolerance) {
		coords = append(coords, poly.coords...)
	}
	return RectFromPoints(coords...)
}

// Interior is true when the point (x,y) is in the interior of the path, i.e. gets filled. This depends on the FillRule.
func (p *Path) Interior(x, y float64, fillRule FillRule) bool {
	count := 0
	for _, poly := range p.Flatten(Tolerance) {
		count += poly.FillCount(x, y)
	}
	if fillRule == NonZero {
		return count != 0
	}
	return count%2 != 0
}

////////////////////////////////////////////////////////////////

// dec formats f with at most prec decimals and strips superfluous characters, such as trailing zeros and the leading zero of fractions.
func dec(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	return string(minify.Decimal([]byte(s), len(s))) // keep all digits
}

// ToSVG returns a string that represents the path in the SVG path data format with minification.
func (p *Path) ToSVG() string {
	sb := strings.Builder{}
	s := p.Scanner()
	for s.Scan() {
		switch s.Cmd() {
		case MoveToCmd:
			fmt.Fprintf(&sb, "M%s %s", dec(s.End().X, 4), dec(s.End().Y, 4))
		case LineToCmd:
			fmt.Fprintf(&sb, "L%s %s", dec(s.End().X, 4), dec(s.End().Y, 4))
		case QuadToCmd:
			cp := s.CP1()
			fmt.Fprintf(&sb, "Q%s %s %s %s", dec(cp.X, 4), dec(cp.Y, 4), dec(s.End().X, 4), dec(s.End().Y, 4))
		case CubeToCmd:
			cp1, cp2 := s.CP1(), s.CP2()
			fmt.Fprintf(&sb, "C%s %s %s %s %s %s", dec(cp1.X, 4), dec(cp1.Y, 4), dec(cp2.X, 4), dec(cp2.Y, 4), dec(s.End().X, 4), dec(s.End().Y, 4))
		case CloseCmd:
			sb.WriteString("z")
		}
	}
	return sb.String()
}

func (p *Path) String() string {
	return p.ToSVG()
}

// Equals returns true if p and q are equal within tolerance Epsilon.
func (p *Path) Equals(q *Path) bool {
	if len(p.cmds) != len(q.cmds) || len(p.d) != len(q.d) {
		return false
	}
	for i := range p.cmds {
		if p.cmds[i] != q.cmds[i] {
			return false
		}
	}
	for i := range p.d {
		if !equal(p.d[i], q.d[i]) {
			return false
		}
	}
	return true
}

////////////////////////////////////////////////////////////////

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

func parseNum(path []byte) (float64, int, error) {
	i := skipCommaWhitespace(path)
	f, n := parseStrconv.ParseFloat(path[i:])
	if n == 0 {
		return 0.0, 0, fmt.Errorf("bad number at %q", path)
	}
	return f, i + n, nil
}

// ParseSVG parses an absolute SVG path data string using the M, L, Q, C and Z commands.
func ParseSVG(s string) (*Path, error) {
	path := []byte(s)
	p := &Path{}
	var nums [6]float64
	var prevCmd byte
	i := 0
	for {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		}
		cmd := prevCmd
		if 'A' <= path[i] {
			cmd = path[i]
			i++
		} else if cmd == 'Z' || cmd == 'z' {
			return nil, fmt.Errorf("unexpected number after close at %d", i)
		}

		var n int
		switch cmd {
		case 'M', 'L':
			n = 2
		case 'Q':
			n = 4
		case 'C':
			n = 6
		case 'Z', 'z':
			p.Close()
			prevCmd = cmd
			continue
		default:
			return nil, fmt.Errorf("unsupported path command %q", cmd)
		}
		for k := 0; k < n; k++ {
			f, m, err := parseNum(path[i:])
			if err != nil {
				return nil, err
			}
			nums[k] = f
			i += m
		}
		switch cmd {
		case 'M':
			p.MoveTo(nums[0], nums[1])
		case 'L':
			p.LineTo(nums[0], nums[1])
		case 'Q':
			p.QuadTo(nums[0], nums[1], nums[2], nums[3])
		case 'C':
			p.CubeTo(nums[0], nums[1], nums[2], nums[3], nums[4], nums[5])
		}
		prevCmd = cmd
	}
	return p, nil
}

// MustParseSVG parses an SVG path data string and panics if it fails.
func MustParseSVG(s string) *Path {
	p, err := ParseSVG(s)
	if err != nil {
		panic(err)
	}
	return p
}

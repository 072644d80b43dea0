package markup

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"
	"time"
)

// Style holds the paint attributes of a shape. LineWidth is derived from BaseLineWidth and the view scale and is never persisted.
type Style struct {
	StrokeColor   color.RGBA
	FillColor     color.RGBA
	BaseLineWidth float64
	LineWidth     float64
	Opacity       float64
	LineCap       LineCap
}

// Shape is a single annotation on the canvas. Points holds one or more groups of points whose arity depends on the family of its kind:
//   - point-pair kinds have one group of two points,
//   - four-corner kinds have one group of four points in upper-left, upper-right, bottom-left, bottom-right order,
//   - polygon and freehand kinds have one group of any number of points, only stroke kinds may have several groups,
//   - text has one group with the upper-left and bottom-right corner of its box.
type Shape struct {
	ID     string
	Kind   Kind
	Points [][]Point
	Text   *TextRun
	Number *float64 // measurement, nil when uncalibrated
	Style
	State Lifecycle

	open bool // polygon still being drawn
}

var lastID struct {
	sync.Mutex
	ms int64
}

// NewID returns a new shape identifier made of "N" and a timestamp with milliseconds. Identifiers are unique within the process.
func NewID() string {
	lastID.Lock()
	ms := time.Now().UnixMilli()
	if ms <= lastID.ms {
		ms = lastID.ms + 1
	}
	lastID.ms = ms
	lastID.Unlock()

	t := time.UnixMilli(ms).UTC()
	return fmt.Sprintf("N%s%03d", t.Format("20060102150405"), t.Nanosecond()/1e6)
}

// NewShape returns a new shape of the given kind anchored at pt, with as many duplicates of pt as the kind requires.
func NewShape(kind Kind, pt Point, style Style) *Shape {
	s := &Shape{
		ID:    NewID(),
		Kind:  kind,
		Style: style,
		State: NewState,
	}
	switch kind.Family() {
	case PointPairFamily, TextFamily:
		s.Points = [][]Point{{pt, pt}}
	case FourCornerFamily:
		s.Points = [][]Point{{pt, pt, pt, pt}}
	case PolygonFamily:
		s.Points = [][]Point{{pt}}
		s.open = true
	default:
		s.Points = [][]Point{{pt}}
	}
	return s
}

// Copy returns a deep copy of the shape.
func (s *Shape) Copy() *Shape {
	t := *s
	t.Points = make([][]Point, len(s.Points))
	for i, g := range s.Points {
		t.Points[i] = append([]Point{}, g...)
	}
	t.Text = s.Text.copy()
	if s.Number != nil {
		number := *s.Number
		t.Number = &number
	}
	return &t
}

func (s *Shape) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "%s(%s", s.Kind, s.ID)
	for _, g := range s.Points {
		sb.WriteString(" [")
		for i, pt := range g {
			if i != 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(pt.String())
		}
		sb.WriteString("]")
	}
	if s.Number != nil {
		fmt.Fprintf(&sb, " =%g", *s.Number)
	}
	sb.WriteString(")")
	return sb.String()
}

// Open returns true while a polygon awaits more vertices.
func (s *Shape) Open() bool {
	return s.open
}

// Close finishes an open polygon.
func (s *Shape) Close() {
	s.open = false
}

// Count returns the total number of points.
func (s *Shape) Count() int {
	n := 0
	for _, g := range s.Points {
		n += len(g)
	}
	return n
}

func (s *Shape) group() []Point {
	if len(s.Points) == 0 {
		return nil
	}
	return s.Points[len(s.Points)-1]
}

// Extend moves the terminal point(s) of an in-progress shape to pt. Point-pair kinds move their second point, four-corner kinds span the box between the first corner and pt, polygons move their last vertex and freehand kinds append pt to their last group.
func (s *Shape) Extend(pt Point) {
	g := s.group()
	if len(g) == 0 {
		return
	}
	switch s.Kind.Family() {
	case PointPairFamily, TextFamily:
		g[1] = pt
	case FourCornerFamily:
		g[1] = Point{pt.X, g[0].Y}
		g[2] = Point{g[0].X, pt.Y}
		g[3] = pt
	case PolygonFamily:
		g[len(g)-1] = pt
	case FreehandFamily:
		s.Points[len(s.Points)-1] = append(g, pt)
	}
}

// AppendPoint adds a vertex to a polygon or starts a new group for a stroke. Other kinds are extended to pt.
func (s *Shape) AppendPoint(pt Point) {
	switch s.Kind.Family() {
	case PolygonFamily:
		s.Points[0] = append(s.Points[0], pt)
	case FreehandFamily:
		if s.Kind.IsStroke() {
			s.Points = append(s.Points, []Point{pt})
		} else {
			s.Points[0] = append(s.Points[0], pt)
		}
	default:
		s.Extend(pt)
	}
}

// RevertVertex removes the last vertex of a polygon.
func (s *Shape) RevertVertex() {
	if s.Kind.Family() == PolygonFamily && 0 < len(s.Points) && 1 < len(s.Points[0]) {
		s.Points[0] = s.Points[0][:len(s.Points[0])-1]
	}
}

// Translate moves all points by d.
func (s *Shape) Translate(d Point) {
	for _, g := range s.Points {
		for i := range g {
			g[i] = g[i].Add(d)
		}
	}
}

// Transform applies m to all points.
func (s *Shape) Transform(m Matrix) {
	for _, g := range s.Points {
		for i := range g {
			g[i] = m.Dot(g[i])
		}
	}
}

// Bounds returns the bounding box of all points.
func (s *Shape) Bounds() Rect {
	var pts []Point
	for _, g := range s.Points {
		pts = append(pts, g...)
	}
	return RectFromPoints(pts...)
}

// stripShortGroups removes groups that cannot be drawn.
func (s *Shape) stripShortGroups() {
	groups := s.Points[:0]
	for _, g := range s.Points {
		if 1 < len(g) {
			groups = append(groups, g)
		}
	}
	s.Points = groups
}

// ShouldPersist returns true if the shape has enough distinct points to be kept.
func (s *Shape) ShouldPersist() bool {
	if s.Kind == TextKind {
		return !s.Text.Empty()
	} else if len(s.Points) == 0 {
		return false
	}
	g := s.Points[0]
	switch s.Kind.Family() {
	case PointPairFamily:
		return len(s.Points) == 1 && len(g) == 2 && !g[0].Equals(g[1])
	case FourCornerFamily:
		return len(s.Points) == 1 && len(g) == 4 && !g[0].Equals(g[3])
	case PolygonFamily, FreehandFamily:
		if s.Kind.IsArea() {
			return 2 < len(g)
		}
		return 1 < len(g)
	}
	return false
}

// cornerRect returns the box spanned by the first and last corner of a four-corner shape.
func (s *Shape) cornerRect() Rect {
	g := s.Points[0]
	return Rect{g[0].X, g[0].Y, g[len(g)-1].X - g[0].X, g[len(g)-1].Y - g[0].Y}
}

// RecomputeMeasurement updates the measurement of a ruler or area shape from its geometry. Without calibration the measurement is cleared. The calibration base keeps its measurement.
func (s *Shape) RecomputeMeasurement(cal Calibration) {
	if !s.Kind.IsMeasure() || s.Kind == RulerBaseKind {
		return
	}
	ppu, ok := cal.PixelsPerUnit()
	if !ok || len(s.Points) == 0 || len(s.Points[0]) == 0 {
		s.Number = nil
		return
	}

	g := s.Points[0]
	v := 0.0
	switch s.Kind {
	case RulerLineKind, RulerFreehandKind:
		v, ok = Length(g, false, ppu)
	case RulerPolygonKind:
		v, ok = Length(g, !s.open, ppu)
	case RulerRectKind:
		v = RectLength(s.cornerRect(), ppu)
	case AreaRectKind:
		v = RectArea(s.cornerRect(), ppu)
	case AreaPolygonKind, AreaFreehandKind:
		v, ok = Area(g, ppu)
	}
	if !ok {
		s.Number = nil
		return
	}
	s.Number = &v
}

// updateLineWidth derives the displayed line width from the base width. Highlighter widths are fixed at creation.
func (s *Shape) updateLineWidth(contentScale, zoomOffset float64) {
	if s.Kind == HighlighterKind || zoomOffset <= 0.0 {
		s.LineWidth = s.BaseLineWidth
		return
	}
	s.LineWidth = s.BaseLineWidth * contentScale / zoomOffset
}

// HandlePoint returns the point that a handle grips.
func (s *Shape) HandlePoint(h Handle) (Point, bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}
	g := s.Points[0]
	i := -1
	switch {
	case h.IsVertex():
		i = int(h)
	case s.Kind.Family() == PointPairFamily:
		switch h {
		case StartHandle, UpperLeftHandle, BottomLeftHandle:
			i = 0
		case EndHandle, UpperRightHandle, BottomRightHandle:
			i = 1
		}
	default:
		switch h {
		case StartHandle, UpperLeftHandle:
			i = 0
		case EndHandle, UpperRightHandle:
			i = 1
		case BottomLeftHandle:
			i = 2
		case BottomRightHandle:
			i = 3
		}
	}
	if i < 0 || len(g) <= i {
		return Point{}, false
	}
	return g[i], true
}

// Resize moves the handle h by d. Spacing is the smallest box that freehand kinds may be rescaled to. It returns false if nothing changed.
func (s *Shape) Resize(h Handle, d Point, spacing float64) bool {
	if len(s.Points) == 0 || len(s.Points[0]) == 0 || d.IsZero() {
		return false
	}

	g := s.Points[0]
	switch s.Kind.Family() {
	case PointPairFamily:
		if len(g) != 2 {
			return false
		}
		start, end := h == StartHandle, h == EndHandle
		if s.Kind.IsMeasure() {
			start = start || h == UpperLeftHandle || h == BottomLeftHandle
			end = end || h == UpperRightHandle || h == BottomRightHandle
		}
		if start {
			g[0] = g[0].Add(d)
		} else if end {
			g[1] = g[1].Add(d)
		} else {
			return false
		}
	case FourCornerFamily:
		if len(g) != 4 {
			return false
		}
		switch h {
		case UpperLeftHandle:
			g[0] = g[0].Add(d)
			g[1].Y += d.Y
			g[2].X += d.X
		case UpperRightHandle:
			g[0].Y += d.Y
			g[1] = g[1].Add(d)
			g[3].X += d.X
		case BottomLeftHandle:
			g[0].X += d.X
			g[2] = g[2].Add(d)
			g[3].Y += d.Y
		case BottomRightHandle:
			g[1].X += d.X
			g[2].Y += d.Y
			g[3] = g[3].Add(d)
		default:
			return false
		}
	case PolygonFamily:
		if !h.IsVertex() || len(g) <= int(h) {
			return false
		}
		i := int(h)
		prev := g[i]
		g[i] = g[i].Add(d)
		if s.Kind == AreaPolygonKind && HasSelfIntersection(g) {
			g[i] = prev
			return false
		}
	case FreehandFamily:
		return s.rescale(h, d, spacing)
	case TextFamily:
		if len(g) != 2 {
			return false
		}
		charWidth := 0.0
		if s.Text != nil {
			charWidth = s.Text.CharWidth()
		}
		switch h {
		case CenterLeftHandle:
			if g[1].X-(g[0].X+d.X) < charWidth {
				return false
			}
			g[0].X += d.X
		case CenterRightHandle:
			if (g[1].X+d.X)-g[0].X < charWidth {
				return false
			}
			g[1].X += d.X
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// rescale scales all points of a freehand shape away from the corner opposite to h. An axis is left untouched when its extent is zero or when the drag would shrink the box to less than spacing.
func (s *Shape) rescale(h Handle, d Point, spacing float64) bool {
	var left, top bool
	switch h {
	case UpperLeftHandle:
		left, top = true, true
	case UpperRightHandle:
		top = true
	case BottomLeftHandle:
		left = true
	case BottomRightHandle:
	default:
		return false
	}

	r := s.Bounds()
	minX, minY, maxX, maxY := r.X, r.Y, r.X+r.W, r.Y+r.H
	sx, sy := 1.0, 1.0
	ax, ay := minX, minY
	if left {
		ax = maxX
		if r.W != 0.0 && !(0.0 <= d.X && maxX <= minX+d.X+spacing) {
			sx = 1.0 - d.X/r.W
		}
	} else if r.W != 0.0 && !(d.X <= 0.0 && maxX+d.X-spacing <= minX) {
		sx = 1.0 + d.X/r.W
	}
	if top {
		ay = maxY
		if r.H != 0.0 && !(0.0 <= d.Y && maxY <= minY+d.Y+spacing) {
			sy = 1.0 - d.Y/r.H
		}
	} else if r.H != 0.0 && !(d.Y <= 0.0 && maxY+d.Y-spacing <= minY) {
		sy = 1.0 + d.Y/r.H
	}
	if sx == 1.0 && sy == 1.0 {
		return false
	}
	s.Transform(Identity.ScaleAbout(sx, sy, ax, ay))
	return true
}

// fitText shrinks the box of a text shape to the width of its text.
func (s *Shape) fitText() {
	if s.Kind != TextKind || s.Text == nil || len(s.Points) == 0 || len(s.Points[0]) != 2 {
		return
	}
	w, _, err := s.Text.Measure()
	if err != nil {
		Logger().Warn("measure text", "id", s.ID, "err", err)
		return
	}
	g := s.Points[0]
	if w < g[1].X-g[0].X {
		g[1].X = g[0].X + math.Ceil(w)
	}
}

// Label returns the measurement with its unit, or an empty string when uncalibrated.
func (s *Shape) Label(unit, areaUnit string) string {
	if s.Number == nil || !s.Kind.IsMeasure() {
		return ""
	}
	if s.Kind.IsArea() {
		unit = areaUnit
	}
	return fmt.Sprintf("%.1f%s", *s.Number, unit)
}

////////////////////////////////////////////////////////////////

// Snapshot is an immutable copy of a shape together with its position in the collection.
type Snapshot struct {
	shape *Shape
	index int
}

// Snapshot returns an independent copy of the shape at position index.
func (s *Shape) Snapshot(index int) Snapshot {
	return Snapshot{s.Copy(), index}
}

// ID returns the identifier of the captured shape.
func (s Snapshot) ID() string {
	return s.shape.ID
}

// Kind returns the kind of the captured shape.
func (s Snapshot) Kind() Kind {
	return s.shape.Kind
}

// Index returns the position of the shape at capture time.
func (s Snapshot) Index() int {
	return s.index
}

// Shape returns a copy of the captured shape.
func (s Snapshot) Shape() *Shape {
	return s.shape.Copy()
}

// Restore overwrites all fields of the shape from the snapshot.
func (s *Shape) Restore(snap Snapshot) {
	*s = *snap.shape.Copy()
}

package markup

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	parseStrconv "github.com/tdewolff/parse/v2/strconv"
)

// Wire categories.
const (
	StrokeCategory  = 2 // freehand, pen, highlighter
	BasicCategory   = 3 // line, arrow, rect, oval, cross
	TextCategory    = 4
	MeasureCategory = 5 // rulers and areas
)

// Record is a shape in the compact wire format. Coordinates are normalized to 0-1000 of the canvas width and height so that records are independent of the resolution.
type Record struct {
	Category   int
	Type       int
	Properties string // comma-separated key=value tokens
	Path       string // geometry
}

func (r Record) String() string {
	return fmt.Sprintf("%d/%d[%s] %q", r.Category, r.Type, r.Properties, r.Path)
}

var wireTypes = map[Kind][2]int{
	FreehandKind:      {StrokeCategory, 1},
	PenKind:           {StrokeCategory, 1},
	HighlighterKind:   {StrokeCategory, 2},
	ArrowKind:         {BasicCategory, 2},
	RectKind:          {BasicCategory, 3},
	OvalKind:          {BasicCategory, 4},
	LineKind:          {BasicCategory, 5},
	CrossKind:         {BasicCategory, 6},
	TextKind:          {TextCategory, 1},
	RulerBaseKind:     {MeasureCategory, 1},
	RulerLineKind:     {MeasureCategory, 2},
	RulerRectKind:     {MeasureCategory, 3},
	RulerFreehandKind: {MeasureCategory, 5},
	AreaRectKind:      {MeasureCategory, 6},
	AreaPolygonKind:   {MeasureCategory, 7},
	AreaFreehandKind:  {MeasureCategory, 9},
	RulerPolygonKind:  {MeasureCategory, 10},
}

// wireKind returns the kind of a category and type.
func wireKind(category, typ int) (Kind, bool) {
	if category == StrokeCategory && typ == 1 {
		return PenKind, true // freehand is stored as pen
	}
	for kind, ct := range wireTypes {
		if ct[0] == category && ct[1] == typ && kind != FreehandKind && kind != PenKind {
			return kind, true
		}
	}
	return DefaultKind, false
}

////////////////////////////////////////////////////////////////

// wireDec formats f like dec but keeps the leading zero of fractions.
func wireDec(f float64, prec int) string {
	s := dec(f, prec)
	if strings.HasPrefix(s, ".") {
		return "0" + s
	} else if strings.HasPrefix(s, "-.") {
		return "-0" + s[1:]
	}
	return s
}

type wireEncoder struct {
	size Size
}

func (e wireEncoder) point(p Point) string {
	return wireDec(p.X/e.size.W*1000.0, 3) + "," + wireDec(p.Y/e.size.H*1000.0, 3)
}

func (e wireEncoder) points(pts []Point) string {
	tokens := make([]string, len(pts))
	for i, p := range pts {
		tokens[i] = e.point(p)
	}
	return strings.Join(tokens, "|")
}

// box returns the normalized origin and signed size of the box from p0 to p1.
func (e wireEncoder) box(p0, p1 Point) (float64, float64, float64, float64) {
	x0, y0 := p0.X/e.size.W*1000.0, p0.Y/e.size.H*1000.0
	x1, y1 := p1.X/e.size.W*1000.0, p1.Y/e.size.H*1000.0
	return x0, y0, x1 - x0, y1 - y0
}

func (e wireEncoder) width(s *Shape) string {
	return wireDec(s.BaseLineWidth/e.size.H*1000.0, 3)
}

// Encode returns the wire record of a shape on a canvas of the given size. It returns false for shapes that have no wire form, such as shapes that do not have the required number of points or text shapes without text.
func Encode(s *Shape, size Size) (Record, bool) {
	ct, ok := wireTypes[s.Kind]
	if !ok || size.Empty() || len(s.Points) == 0 {
		return Record{}, false
	}
	rec := Record{Category: ct[0], Type: ct[1]}

	e := wireEncoder{size}
	sc := "sc=" + Hex(s.StrokeColor)
	fc := "fc=" + Hex(s.FillColor)
	w := "w=" + e.width(s)
	lc := "lc=" + s.LineCap.Code()
	o := "o=" + wireDec(s.Opacity, 3)
	if s.Kind.IsArea() {
		fc = "fc=" + Hex(s.StrokeColor)
	}
	props := []string{sc, w, lc, o}
	if s.Kind == ArrowKind || s.Kind.IsArea() {
		props = []string{sc, fc, w, lc, o}
	}

	g := s.Points[0]
	switch s.Kind.Family() {
	case PointPairFamily:
		if len(s.Points) != 1 || len(g) != 2 {
			return Record{}, false
		}
		if s.Kind == RulerBaseKind {
			number := 0.0
			if s.Number != nil {
				number = *s.Number
			}
			rec.Path = strings.Join([]string{Hex(s.StrokeColor), e.width(s), s.LineCap.Code(), wireDec(s.Opacity, 3), e.point(g[0]), e.point(g[1]), wireDec(number, 3)}, "|")
			return rec, true
		}
		rec.Path = e.points(g)
	case FourCornerFamily:
		if len(s.Points) != 1 || len(g) != 4 {
			return Record{}, false
		}
		x, y, w, h := e.box(g[0], g[3])
		switch s.Kind {
		case OvalKind:
			rx, ry := w/2.0, h/2.0
			rec.Path = fmt.Sprintf("%s,%s,%s,%s", wireDec(x+rx, 3), wireDec(y+ry, 3), wireDec(rx, 3), wireDec(ry, 3))
		case CrossKind:
			rec.Path = e.points([]Point{g[0], g[3]}) + "\n" + e.points([]Point{g[1], g[2]})
		default:
			rec.Path = fmt.Sprintf("%s,%s,%s,%s", wireDec(x, 3), wireDec(y, 3), wireDec(w, 3), wireDec(h, 3))
		}
	case PolygonFamily, FreehandFamily:
		if s.Kind.IsStroke() {
			if s.Kind != HighlighterKind {
				props = []string{sc, w, lc}
			}
			sb := strings.Builder{}
			for _, group := range s.Points {
				if 1 < len(group) {
					sb.WriteString(e.points(group))
					sb.WriteString("\n")
				}
			}
			if sb.Len() == 0 {
				return Record{}, false
			}
			rec.Path = sb.String()
		} else {
			if len(g) < 2 || s.Kind.IsArea() && len(g) < 3 {
				return Record{}, false
			}
			rec.Path = e.points(g)
		}
	case TextFamily:
		if s.Text.Empty() || len(g) != 2 {
			return Record{}, false
		}
		props = []string{"sc=" + Hex(s.FillColor), "fs=" + wireDec(s.Text.FontSize/size.H*1000.0, 3)}
		x, y, w, h := e.box(g[0], g[1])
		rec.Path = strings.Join([]string{wireDec(x, 3), wireDec(y, 3), wireDec(math.Ceil(w), 3), wireDec(math.Ceil(h), 3), wireDec(size.W, 3), wireDec(size.H, 3), s.Text.Value}, ",")
	}
	rec.Properties = strings.Join(props, ",")
	return rec, true
}

////////////////////////////////////////////////////////////////

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedWireData, fmt.Sprintf(format, args...))
}

// parseNumber parses a numeric token, which must be consumed entirely.
func parseNumber(s string) (float64, error) {
	f, n := parseStrconv.ParseFloat([]byte(s))
	if n == 0 || n != len(s) {
		return 0.0, malformed("bad number %q", s)
	}
	return f, nil
}

func parseNumbers(s string, count int) ([]float64, error) {
	tokens := strings.Split(s, ",")
	if len(tokens) != count {
		return nil, malformed("expected %d numbers in %q", count, s)
	}
	fs := make([]float64, count)
	for i, token := range tokens {
		var err error
		if fs[i], err = parseNumber(token); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

type wireDecoder struct {
	size Size
}

func (d wireDecoder) denorm(x, y float64) Point {
	return Point{x / 1000.0 * d.size.W, y / 1000.0 * d.size.H}
}

func (d wireDecoder) point(s string) (Point, error) {
	xy, err := parseNumbers(s, 2)
	if err != nil {
		return Point{}, err
	}
	return d.denorm(xy[0], xy[1]), nil
}

// points parses points separated by |. If count is positive exactly count points are required.
func (d wireDecoder) points(s string, count int) ([]Point, error) {
	tokens := strings.Split(s, "|")
	if 0 < count && len(tokens) != count {
		return nil, malformed("expected %d points in %q", count, s)
	}
	pts := make([]Point, len(tokens))
	for i, token := range tokens {
		var err error
		if pts[i], err = d.point(token); err != nil {
			return nil, err
		}
	}
	return pts, nil
}

// corners parses x,y,w,h into the four corners of a box.
func (d wireDecoder) corners(s string) ([]Point, error) {
	v, err := parseNumbers(s, 4)
	if err != nil {
		return nil, err
	}
	x, y, w, h := v[0], v[1], v[2], v[3]
	return []Point{d.denorm(x, y), d.denorm(x+w, y), d.denorm(x, y+h), d.denorm(x+w, y+h)}, nil
}

type wireProperties struct {
	stroke, fill color.RGBA
	width        float64
	cap          LineCap
	opacity      float64
	fontSize     float64
}

func parseProperties(s string) (wireProperties, error) {
	props := wireProperties{
		stroke:  Black,
		fill:    Transparent,
		cap:     RoundCap,
		opacity: 1.0,
	}
	if s == "" {
		return props, nil
	}
	for _, token := range strings.Split(s, ",") {
		key, val, ok := strings.Cut(token, "=")
		if !ok {
			return props, malformed("bad property %q", token)
		}
		var err error
		switch key {
		case "sc":
			props.stroke, err = ParseHex(val)
		case "fc":
			props.fill, err = ParseHex(val)
		case "w":
			props.width, err = parseNumber(val)
		case "lc":
			if lc, ok := parseLineCap(val); ok {
				props.cap = lc
			}
		case "o":
			props.opacity, err = parseNumber(val)
		case "fs":
			props.fontSize, err = parseNumber(val)
		}
		if err != nil {
			return props, err
		}
	}
	return props, nil
}

// Decode returns the shape of a wire record on a canvas of the given size. It returns an error wrapping ErrMalformedWireData if a numeric token does not parse or the geometry does not have the arity of the kind, and ErrUnknownKind for unknown categories or types.
func Decode(rec Record, size Size) (*Shape, error) {
	if size.Empty() {
		return nil, malformed("empty canvas %v", size)
	}
	kind, ok := wireKind(rec.Category, rec.Type)
	if !ok {
		return nil, fmt.Errorf("%w: category %d type %d", ErrUnknownKind, rec.Category, rec.Type)
	}
	props, err := parseProperties(rec.Properties)
	if err != nil {
		return nil, err
	}

	s := &Shape{
		ID:   NewID(),
		Kind: kind,
		Style: Style{
			StrokeColor:   props.stroke,
			FillColor:     Transparent,
			BaseLineWidth: props.width / 1000.0 * size.H,
			Opacity:       props.opacity,
			LineCap:       props.cap,
		},
	}

	d := wireDecoder{size}
	switch rec.Category {
	case StrokeCategory:
		s.Opacity = 1.0
		if kind == HighlighterKind {
			s.Opacity = DefaultOptions.HighlighterOpacity
		}
		for _, row := range strings.Split(rec.Path, "\n") {
			if row == "" {
				continue
			}
			pts, err := d.points(row, 0)
			if err != nil {
				return nil, err
			}
			if 1 < len(pts) {
				s.Points = append(s.Points, pts)
			}
		}
		if len(s.Points) == 0 {
			return nil, malformed("no strokes")
		}
	case BasicCategory:
		if kind == ArrowKind {
			s.FillColor = props.fill
		}
		var pts []Point
		switch kind {
		case LineKind, ArrowKind:
			pts, err = d.points(rec.Path, 2)
		case RectKind:
			pts, err = d.corners(rec.Path)
		case OvalKind:
			var v []float64
			if v, err = parseNumbers(rec.Path, 4); err == nil {
				cx, cy, rx, ry := v[0], v[1], v[2], v[3]
				pts = []Point{d.denorm(cx-rx, cy-ry), d.denorm(cx+rx, cy-ry), d.denorm(cx-rx, cy+ry), d.denorm(cx+rx, cy+ry)}
			}
		case CrossKind:
			rows := strings.Split(rec.Path, "\n")
			if len(rows) != 2 {
				return nil, malformed("expected 2 rows in %q", rec.Path)
			}
			var row0, row1 []Point
			if row0, err = d.points(rows[0], 2); err != nil {
				return nil, err
			} else if row1, err = d.points(rows[1], 2); err != nil {
				return nil, err
			}
			pts = []Point{row0[0], row1[0], row1[1], row0[1]}
		}
		if err != nil {
			return nil, err
		}
		s.Points = [][]Point{pts}
	case TextCategory:
		tokens := strings.Split(rec.Path, ",")
		if len(tokens) < 7 {
			return nil, malformed("expected text geometry in %q", rec.Path)
		}
		v, err := parseNumbers(strings.Join(tokens[:4], ","), 4)
		if err != nil {
			return nil, err
		}
		fontSize := props.fontSize / 1000.0 * size.H
		if fontSize <= 0.0 {
			fontSize = 1.0
		}
		s.Text = NewTextRun(strings.Join(tokens[6:], ","), fontSize)
		if s.Text.Empty() {
			return nil, malformed("empty text")
		}
		s.StrokeColor, s.FillColor = Transparent, props.stroke
		s.BaseLineWidth, s.Opacity = 1.0, 1.0
		s.Points = [][]Point{{d.denorm(v[0], v[1]), d.denorm(v[0]+v[2], v[1]+v[3])}}
	case MeasureCategory:
		var pts []Point
		switch kind {
		case RulerBaseKind:
			tokens := strings.Split(rec.Path, "|")
			if len(tokens) != 7 {
				return nil, malformed("expected 7 base fields in %q", rec.Path)
			}
			if s.StrokeColor, err = ParseHex(tokens[0]); err != nil {
				return nil, err
			}
			var w, o, number float64
			if w, err = parseNumber(tokens[1]); err != nil {
				return nil, err
			} else if o, err = parseNumber(tokens[3]); err != nil {
				return nil, err
			} else if number, err = parseNumber(tokens[6]); err != nil {
				return nil, err
			}
			if lc, ok := parseLineCap(tokens[2]); ok {
				s.LineCap = lc
			}
			s.BaseLineWidth, s.Opacity = w/1000.0*size.H, o
			if number != 0.0 {
				s.Number = &number
			}
			pts, err = d.points(strings.Join(tokens[4:6], "|"), 2)
		case RulerLineKind:
			pts, err = d.points(rec.Path, 2)
		case RulerRectKind, AreaRectKind:
			pts, err = d.corners(rec.Path)
		default:
			if pts, err = d.points(rec.Path, 0); err == nil {
				if kind.IsArea() && len(pts) < 3 || len(pts) < 2 {
					return nil, malformed("too few points for %v", kind)
				}
			}
		}
		if err != nil {
			return nil, err
		}
		s.Points = [][]Point{pts}
	}
	s.LineWidth = s.BaseLineWidth
	return s, nil
}

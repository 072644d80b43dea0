package markup

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
)

// JSONDocument is the JSON shape-list document of a drawing provider.
type JSONDocument struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Shapes []JSONShape `json:"shapes"`
}

// JSONSegment is a segment of a legacy freehand shape.
type JSONSegment struct {
	A     []float64 `json:"a"`
	B     []float64 `json:"b"`
	Width float64   `json:"width,omitempty"`
}

// JSONShape is a shape of a JSONDocument. Legacy documents use the types ellipse (A and B corners), freehand (Segments) and text (BoundingRect as [[x,y],[w,h]]). Any kind name is accepted as type together with Points, or with Path whose subpaths are flattened into point groups.
type JSONShape struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	A            []float64      `json:"a,omitempty"`
	B            []float64      `json:"b,omitempty"`
	Segments     []JSONSegment  `json:"segments,omitempty"`
	Points       [][][2]float64 `json:"points,omitempty"`
	Path         string         `json:"path,omitempty"` // SVG path data, used when Points is empty
	BoundingRect [][]float64    `json:"boundingRect,omitempty"`
	StrokeColor  string         `json:"strokeColor,omitempty"`
	FillColor    string         `json:"fillColor,omitempty"`
	StrokeWidth  float64        `json:"strokeWidth,omitempty"`
	Opacity      *float64       `json:"opacity,omitempty"`
	LineCap      string         `json:"lineCap,omitempty"`
	FontSize     float64        `json:"fontSize,omitempty"`
	Text         string         `json:"text,omitempty"`
	Number       *float64       `json:"number,omitempty"`
}

const legacyLineWidth = 5.0

// ParseJSON decodes a JSON shape-list document and converts its shapes to a canvas of the given size. Shapes that cannot be converted are skipped and their number is returned.
func ParseJSON(r io.Reader, size Size) ([]*Shape, int, error) {
	var doc JSONDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, 0, fmt.Errorf("parse json: %w", err)
	}
	return doc.ToShapes(size)
}

// ToShapes converts the shapes of the document to a canvas of the given size. Shapes that cannot be converted are skipped and their number is returned.
func (doc JSONDocument) ToShapes(size Size) ([]*Shape, int, error) {
	m := Identity
	if 0.0 < doc.Width && 0.0 < doc.Height && !size.Empty() {
		m = m.Scale(size.W/doc.Width, size.H/doc.Height)
	}

	skipped := 0
	shapes := make([]*Shape, 0, len(doc.Shapes))
	for i, js := range doc.Shapes {
		s, err := js.toShape()
		if err != nil {
			Logger().Warn("skipped json shape", "index", i, "id", js.ID, "err", err)
			skipped++
			continue
		}
		s.Transform(m)
		shapes = append(shapes, s)
	}
	return shapes, skipped, nil
}

func parseColor(s string, def color.RGBA) (color.RGBA, error) {
	if s == "" {
		return def, nil
	}
	return ParseHex(s)
}

func jsonPoint(v []float64) (Point, error) {
	if len(v) != 2 {
		return Point{}, fmt.Errorf("%w: point %v", ErrMalformedWireData, v)
	}
	return Point{v[0], v[1]}, nil
}

func (js JSONShape) toShape() (*Shape, error) {
	s := &Shape{
		ID: js.ID,
		Style: Style{
			FillColor:     Transparent,
			BaseLineWidth: js.StrokeWidth,
			Opacity:       1.0,
			LineCap:       ButtCap,
		},
	}
	if s.ID == "" {
		s.ID = NewID()
	}
	if js.Opacity != nil {
		s.Opacity = *js.Opacity
	}
	if js.Number != nil {
		number := *js.Number
		s.Number = &number
	}

	var err error
	if s.StrokeColor, err = parseColor(js.StrokeColor, Red); err != nil {
		return nil, err
	} else if s.FillColor, err = parseColor(js.FillColor, Transparent); err != nil {
		return nil, err
	}

	switch js.Type {
	case "ellipse":
		s.Kind = OvalKind
		a, err := jsonPoint(js.A)
		if err != nil {
			return nil, err
		}
		b, err := jsonPoint(js.B)
		if err != nil {
			return nil, err
		}
		s.Points = [][]Point{{a, {b.X, a.Y}, {a.X, b.Y}, b}}
		if s.BaseLineWidth == 0.0 {
			s.BaseLineWidth = legacyLineWidth
		}
	case "freehand":
		if 0 < len(js.Points) {
			break
		}
		s.Kind = FreehandKind
		s.LineCap = RoundCap
		var pts []Point
		for i, seg := range js.Segments {
			if i == 0 {
				a, err := jsonPoint(seg.A)
				if err != nil {
					return nil, err
				}
				pts = append(pts, a)
			}
			b, err := jsonPoint(seg.B)
			if err != nil {
				return nil, err
			}
			pts = append(pts, b)
		}
		s.Points = [][]Point{pts}
		if s.BaseLineWidth == 0.0 {
			s.BaseLineWidth = legacyLineWidth
		}
	case "text":
		if len(js.BoundingRect) == 0 && 0 < len(js.Points) {
			break
		} else if len(js.BoundingRect) != 2 {
			return nil, fmt.Errorf("%w: text without bounding rect", ErrMalformedWireData)
		}
		origin, err := jsonPoint(js.BoundingRect[0])
		if err != nil {
			return nil, err
		}
		size, err := jsonPoint(js.BoundingRect[1])
		if err != nil {
			return nil, err
		}
		s.Kind = TextKind
		s.Text = NewTextRun(js.Text, js.FontSize)
		if s.FillColor, err = parseColor(js.FillColor, Black); err != nil {
			return nil, err
		}
		s.StrokeColor, s.BaseLineWidth = Transparent, 1.0
		s.Points = [][]Point{{origin, origin.Add(size)}}
	}

	if s.Kind == DefaultKind {
		if s.Kind, err = ParseKind(js.Type); err != nil {
			return nil, err
		}
		for _, group := range js.Points {
			pts := make([]Point, len(group))
			for i, xy := range group {
				pts[i] = Point{xy[0], xy[1]}
			}
			s.Points = append(s.Points, pts)
		}
		if len(js.Points) == 0 && js.Path != "" {
			p, err := ParseSVG(js.Path)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedWireData, err)
			}
			for _, poly := range p.Flatten(Tolerance) {
				pts := poly.Coords()
				if poly.Closed() && !s.Kind.IsStroke() {
					pts = pts[:len(pts)-1]
				}
				s.Points = append(s.Points, pts)
			}
		}
		if s.Kind == TextKind {
			s.Text = NewTextRun(js.Text, js.FontSize)
			s.StrokeColor = Transparent
		}
		if lc, ok := parseLineCap(js.LineCap); ok {
			s.LineCap = lc
		} else if s.Kind.Family() == FreehandFamily {
			s.LineCap = RoundCap
		}
		if s.BaseLineWidth == 0.0 {
			s.BaseLineWidth = 1.0
		}
	}
	if !s.ShouldPersist() {
		return nil, fmt.Errorf("%w: %v %s", ErrDegenerateShape, s.Kind, s.ID)
	}
	s.LineWidth = s.BaseLineWidth
	return s, nil
}

// MarshalJSON returns the shapes as a JSON shape-list document of the given size, which can be read back by ParseJSON.
func MarshalJSON(shapes []*Shape, size Size) ([]byte, error) {
	doc := JSONDocument{
		Width:  size.W,
		Height: size.H,
		Shapes: make([]JSONShape, 0, len(shapes)),
	}
	for _, s := range shapes {
		js := JSONShape{
			ID:          s.ID,
			Type:        s.Kind.String(),
			StrokeWidth: s.BaseLineWidth,
			LineCap:     s.LineCap.Code(),
		}
		if s.StrokeColor.A != 0 {
			js.StrokeColor = Hex(s.StrokeColor)
		}
		if s.FillColor.A != 0 {
			js.FillColor = Hex(s.FillColor)
		}
		opacity := s.Opacity
		js.Opacity = &opacity
		if s.Number != nil {
			number := *s.Number
			js.Number = &number
		}
		if s.Text != nil {
			js.Text, js.FontSize = s.Text.Value, s.Text.FontSize
		}
		for _, group := range s.Points {
			pts := make([][2]float64, len(group))
			for i, p := range group {
				pts[i] = [2]float64{p.X, p.Y}
			}
			js.Points = append(js.Points, pts)
		}
		doc.Shapes = append(doc.Shapes, js)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// LoadJSON replaces the shapes of the canvas by those of a JSON shape-list document. It returns the number of skipped shapes.
func (c *Canvas) LoadJSON(r io.Reader) (int, error) {
	shapes, skipped, err := ParseJSON(r, c.Size())
	if err != nil {
		return 0, err
	}
	c.Load(shapes)
	return skipped, nil
}

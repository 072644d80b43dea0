package markup

import (
	"image/color"
	"io"
)

// AreaFillOpacity is the opacity of the interior of area shapes relative to their stroke color.
const AreaFillOpacity = 0.1

// RenderStyle is the resolved paint of a path. Colors are alpha premultiplied and include the opacity of the shape. A transparent color disables the fill or stroke.
type RenderStyle struct {
	Fill        color.RGBA
	FillRule    FillRule
	Stroke      color.RGBA
	StrokeWidth float64
	LineCap     LineCap
	RoundJoin   bool
}

// HasFill returns true if the style has a fill.
func (style RenderStyle) HasFill() bool {
	return style.Fill.A != 0
}

// HasStroke returns true if the style has a stroke.
func (style RenderStyle) HasStroke() bool {
	return style.Stroke.A != 0 && 0.0 < style.StrokeWidth
}

// Renderer is an output backend. All coordinates are in content units with the origin at the top-left and the y-axis pointing down.
type Renderer interface {
	Size() Size
	RenderPath(path *Path, style RenderStyle)
	RenderText(text *TextRun, box Rect, col color.RGBA)
	RenderLabel(label string, pos Point, angle, fontSize float64, col color.RGBA)
}

// Writer writes a document in an output format.
type Writer func(w io.Writer, doc *Document, opts *Options) error

// Render draws all shapes of the document in z-order.
func (d *Document) Render(r Renderer, opts *Options) {
	if opts == nil {
		opts = &DefaultOptions
	}
	for _, s := range d.shapes {
		s.Render(r, opts)
	}
}

// Render draws the shape: its area interior, its outline and its measurement label.
func (s *Shape) Render(r Renderer, opts *Options) {
	if opts == nil {
		opts = &DefaultOptions
	}
	width := s.LineWidth
	if width == 0.0 {
		width = s.BaseLineWidth
	}

	if s.Kind == TextKind {
		if !s.Text.Empty() {
			r.RenderText(s.Text, s.Bounds(), WithOpacity(s.FillColor, s.Opacity))
		}
		return
	}

	if region := s.Region(); region != nil {
		r.RenderPath(region, RenderStyle{
			Fill:     WithOpacity(s.StrokeColor, AreaFillOpacity*s.Opacity),
			FillRule: EvenOdd,
		})
	}

	style := RenderStyle{
		Stroke:      WithOpacity(s.StrokeColor, s.Opacity),
		StrokeWidth: width,
		LineCap:     s.LineCap,
		RoundJoin:   s.Kind.Family() == FreehandFamily,
	}
	if !s.Kind.IsArea() && !s.open {
		style.Fill = WithOpacity(s.FillColor, s.Opacity)
	}
	outline := s.Outline(opts)
	if !outline.Empty() {
		r.RenderPath(outline, style)
	}

	if s.Kind == RulerBaseKind {
		return
	}
	if label := s.Label(opts.Unit, opts.AreaUnit); label != "" {
		pos, angle := s.labelPlacement()
		r.RenderLabel(label, pos, angle, opts.LabelFontSize*width, style.Stroke)
	}
}

// labelPlacement returns the position and rotation of the measurement label. Labels of rulers are centered on and rotated along the ruler, other labels are centered on the shape.
func (s *Shape) labelPlacement() (Point, float64) {
	g := s.Points[0]
	if s.Kind.Family() == PointPairFamily && len(g) == 2 {
		phi := g[0].Sub(g[1]).Angle()
		return g[0].Interpolate(g[1], 0.5), LabelAngle(phi)
	}
	return s.Bounds().Center(), 0.0
}

// LabelPath returns the glyph outlines of a label centered at pos and rotated by angle in radians.
func LabelPath(label string, pos Point, angle, fontSize float64) (*Path, error) {
	p, w, err := TextPath(label, fontSize)
	if err != nil {
		return nil, err
	}
	// vertically centered on the x-height
	m := Identity.Translate(pos.X, pos.Y).Rotate(angle).Translate(-w/2.0, fontSize*0.35)
	return p.Transform(m), nil
}

package pdf

import (
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/ownpainting/markup"
)

// Options are the PDF renderer options.
type Options struct {
	Compress bool
	Title    string
	Creator  string
}

// DefaultOptions are the default options of the PDF renderer.
var DefaultOptions = Options{
	Compress: true,
	Creator:  "markup",
}

// PDF is a portable document format renderer. One content unit is one point.
type PDF struct {
	w    io.Writer
	f    *gofpdf.Fpdf
	size markup.Size
}

// New returns a portable document format (PDF) renderer with a single page of the given size.
func New(w io.Writer, size markup.Size, opts *Options) *PDF {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}

	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: size.W, Ht: size.H},
	})
	f.SetMargins(0.0, 0.0, 0.0)
	f.SetAutoPageBreak(false, 0.0)
	f.SetCompression(opts.Compress)
	if opts.Title != "" {
		f.SetTitle(opts.Title, true)
	}
	if opts.Creator != "" {
		f.SetCreator(opts.Creator, true)
	}
	f.AddPage()
	return &PDF{
		w:    w,
		f:    f,
		size: size,
	}
}

// Close writes the document.
func (r *PDF) Close() error {
	return r.f.Output(r.w)
}

// Size returns the size of the page in content units.
func (r *PDF) Size() markup.Size {
	return r.size
}

func rgb(col color.RGBA) (int, int, int, float64) {
	c, ok := colorful.MakeColor(col)
	if !ok {
		return 0, 0, 0, 0.0
	}
	red, green, blue := c.RGB255()
	return int(red), int(green), int(blue), float64(col.A) / 255.0
}

func (r *PDF) writePath(path *markup.Path) {
	s := path.Scanner()
	for s.Scan() {
		end := s.End()
		switch s.Cmd() {
		case markup.MoveToCmd:
			r.f.MoveTo(end.X, end.Y)
		case markup.LineToCmd:
			r.f.LineTo(end.X, end.Y)
		case markup.QuadToCmd:
			cp := s.CP1()
			r.f.CurveTo(cp.X, cp.Y, end.X, end.Y)
		case markup.CubeToCmd:
			cp1, cp2 := s.CP1(), s.CP2()
			r.f.CurveBezierCubicTo(cp1.X, cp1.Y, cp2.X, cp2.Y, end.X, end.Y)
		case markup.CloseCmd:
			r.f.ClosePath()
		}
	}
}

func (r *PDF) fill(path *markup.Path, col color.RGBA, fillRule markup.FillRule) {
	red, green, blue, alpha := rgb(col)
	r.f.SetFillColor(red, green, blue)
	r.f.SetAlpha(alpha, "Normal")
	r.writePath(path)
	if fillRule == markup.EvenOdd {
		r.f.DrawPath("F*")
	} else {
		r.f.DrawPath("F")
	}
}

// RenderPath renders a path to the page using a style. Fill and stroke are drawn separately since their opacity may differ.
func (r *PDF) RenderPath(path *markup.Path, style markup.RenderStyle) {
	if style.HasFill() {
		r.fill(path, style.Fill, style.FillRule)
	}
	if style.HasStroke() {
		red, green, blue, alpha := rgb(style.Stroke)
		r.f.SetDrawColor(red, green, blue)
		r.f.SetAlpha(alpha, "Normal")
		r.f.SetLineWidth(style.StrokeWidth)
		r.f.SetLineCapStyle(style.LineCap.String())
		if style.RoundJoin {
			r.f.SetLineJoinStyle("round")
		} else {
			r.f.SetLineJoinStyle("miter")
		}
		r.writePath(path)
		r.f.DrawPath("D")
	}
}

// RenderText renders a text run as glyph outlines.
func (r *PDF) RenderText(text *markup.TextRun, box markup.Rect, col color.RGBA) {
	p, err := text.ToPath(box)
	if err != nil {
		markup.Logger().Warn("text not rendered", "text", text, "err", err)
		return
	}
	r.fill(p, col, markup.NonZero)
}

// RenderLabel renders a measurement label as glyph outlines.
func (r *PDF) RenderLabel(label string, pos markup.Point, angle, fontSize float64, col color.RGBA) {
	p, err := markup.LabelPath(label, pos, angle, fontSize)
	if err != nil {
		markup.Logger().Warn("label not rendered", "label", label, "err", err)
		return
	}
	r.fill(p, col, markup.NonZero)
}

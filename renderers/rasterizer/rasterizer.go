package rasterizer

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/ownpainting/markup"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// PNGWriter writes the document as a PNG file with scale pixels per content unit.
func PNGWriter(scale float64) markup.Writer {
	return func(w io.Writer, doc *markup.Document, opts *markup.Options) error {
		img := Draw(doc, opts, scale)
		return png.Encode(w, img)
	}
}

// Draw draws the document on a new transparent image with scale pixels per content unit.
func Draw(doc *markup.Document, opts *markup.Options, scale float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(doc.Size.W*scale+0.5), int(doc.Size.H*scale+0.5)))
	doc.Render(New(img, scale), opts)
	return img
}

// Rasterizer is a rasterizing renderer. Fills are rasterized by x/image/vector and strokes by rasterx.
type Rasterizer struct {
	img   draw.Image
	scale float64
}

// New returns a renderer that draws to a rasterized image with scale pixels per content unit.
func New(img draw.Image, scale float64) *Rasterizer {
	if scale <= 0.0 {
		scale = 1.0
	}
	return &Rasterizer{
		img:   img,
		scale: scale,
	}
}

// Size returns the size of the canvas in content units.
func (r *Rasterizer) Size() markup.Size {
	size := r.img.Bounds().Size()
	return markup.Size{W: float64(size.X) / r.scale, H: float64(size.Y) / r.scale}
}

// RenderPath renders a path to the canvas using a style.
func (r *Rasterizer) RenderPath(path *markup.Path, style markup.RenderStyle) {
	size := r.img.Bounds().Size()
	if style.HasFill() {
		if style.FillRule == markup.EvenOdd {
			scanner := rasterx.NewScannerGV(size.X, size.Y, r.img, r.img.Bounds())
			filler := rasterx.NewFiller(size.X, size.Y, scanner)
			filler.SetWinding(false)
			filler.SetColor(style.Fill)
			r.add(filler, path)
			filler.Draw()
		} else {
			r.fill(path, style.Fill)
		}
	}
	if style.HasStroke() {
		join := rasterx.Miter
		if style.RoundJoin {
			join = rasterx.Round
		}
		capper := rasterx.ButtCap
		switch style.LineCap {
		case markup.RoundCap:
			capper = rasterx.RoundCap
		case markup.SquareCap:
			capper = rasterx.SquareCap
		}

		scanner := rasterx.NewScannerGV(size.X, size.Y, r.img, r.img.Bounds())
		stroker := rasterx.NewStroker(size.X, size.Y, scanner)
		width := fixed.Int26_6(math.Round(style.StrokeWidth * r.scale * 64.0))
		stroker.SetStroke(width, fixed.I(4), capper, capper, rasterx.RoundGap, join)
		stroker.SetColor(style.Stroke)
		r.add(stroker, path)
		stroker.Draw()
	}
}

// RenderText renders a text run as glyph outlines.
func (r *Rasterizer) RenderText(text *markup.TextRun, box markup.Rect, col color.RGBA) {
	p, err := text.ToPath(box)
	if err != nil {
		markup.Logger().Warn("text not rendered", "text", text, "err", err)
		return
	}
	r.fill(p, col)
}

// RenderLabel renders a measurement label as glyph outlines.
func (r *Rasterizer) RenderLabel(label string, pos markup.Point, angle, fontSize float64, col color.RGBA) {
	p, err := markup.LabelPath(label, pos, angle, fontSize)
	if err != nil {
		markup.Logger().Warn("label not rendered", "label", label, "err", err)
		return
	}
	r.fill(p, col)
}

// fill rasterizes path with the nonzero winding rule.
func (r *Rasterizer) fill(path *markup.Path, col color.RGBA) {
	size := r.img.Bounds().Size()
	ras := vector.NewRasterizer(size.X, size.Y)
	scale := float32(r.scale)
	s := path.Scanner()
	for s.Scan() {
		end := s.End()
		switch s.Cmd() {
		case markup.MoveToCmd:
			ras.MoveTo(float32(end.X)*scale, float32(end.Y)*scale)
		case markup.LineToCmd:
			ras.LineTo(float32(end.X)*scale, float32(end.Y)*scale)
		case markup.QuadToCmd:
			cp := s.CP1()
			ras.QuadTo(float32(cp.X)*scale, float32(cp.Y)*scale, float32(end.X)*scale, float32(end.Y)*scale)
		case markup.CubeToCmd:
			cp1, cp2 := s.CP1(), s.CP2()
			ras.CubeTo(float32(cp1.X)*scale, float32(cp1.Y)*scale, float32(cp2.X)*scale, float32(cp2.Y)*scale, float32(end.X)*scale, float32(end.Y)*scale)
		case markup.CloseCmd:
			ras.ClosePath()
		}
	}
	ras.Draw(r.img, r.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (r *Rasterizer) point(p markup.Point) fixed.Point26_6 {
	return rasterx.ToFixedP(p.X*r.scale, p.Y*r.scale)
}

// add feeds path to a rasterx filler or stroker.
func (r *Rasterizer) add(a rasterx.Adder, path *markup.Path) {
	open := false
	s := path.Scanner()
	for s.Scan() {
		switch s.Cmd() {
		case markup.MoveToCmd:
			if open {
				a.Stop(false)
			}
			a.Start(r.point(s.End()))
			open = true
		case markup.LineToCmd:
			a.Line(r.point(s.End()))
		case markup.QuadToCmd:
			a.QuadBezier(r.point(s.CP1()), r.point(s.End()))
		case markup.CubeToCmd:
			a.CubeBezier(r.point(s.CP1()), r.point(s.CP2()), r.point(s.End()))
		case markup.CloseCmd:
			a.Stop(true)
			open = false
		}
	}
	if open {
		a.Stop(false)
	}
}

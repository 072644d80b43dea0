package svg

import (
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/ownpainting/markup"
	"github.com/tdewolff/minify/v2"
	minifySVG "github.com/tdewolff/minify/v2/svg"
)

// Options are the SVG renderer options. Compression is a gzip level, zero disables compression. Minify runs the document through an SVG minifier before writing it.
type Options struct {
	Compression int
	Minify      bool
	FontFamily  string
}

// DefaultOptions are the default options of the SVG renderer.
var DefaultOptions = Options{
	FontFamily: "sans-serif",
}

// SVG is a scalable vector graphics renderer.
type SVG struct {
	w    io.Writer
	out  io.Writer
	buf  *bytes.Buffer
	gz   *gzip.Writer
	size markup.Size
	opts *Options
}

// New returns a scalable vector graphics (SVG) renderer of a canvas of the given size in content units.
func New(w io.Writer, size markup.Size, opts *Options) *SVG {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}

	r := &SVG{
		w:    w,
		out:  w,
		size: size,
		opts: opts,
	}
	if opts.Compression != 0 {
		if opts.Compression < gzip.HuffmanOnly || gzip.BestCompression < opts.Compression {
			opts.Compression = -1
		}
		r.gz, _ = gzip.NewWriterLevel(w, opts.Compression)
		r.out, r.w = r.gz, r.gz
	}
	if opts.Minify {
		r.buf = &bytes.Buffer{}
		r.w = r.buf
	}

	fmt.Fprintf(r.w, `<svg version="1.1" width="%v" height="%v" viewBox="0 0 %v %v" xmlns="http://www.w3.org/2000/svg">`, dec(size.W), dec(size.H), dec(size.W), dec(size.H))
	return r
}

// Close finishes and closes the SVG. It does not close the underlying writer.
func (r *SVG) Close() error {
	if _, err := fmt.Fprintf(r.w, "</svg>"); err != nil {
		return err
	}
	if r.buf != nil {
		m := minify.New()
		m.AddFunc("image/svg+xml", minifySVG.Minify)
		if err := m.Minify("image/svg+xml", r.out, r.buf); err != nil {
			return fmt.Errorf("minify svg: %w", err)
		}
	}
	if r.gz != nil {
		return r.gz.Close()
	}
	return nil
}

// Size returns the size of the canvas in content units.
func (r *SVG) Size() markup.Size {
	return r.size
}

// RenderPath renders a path to the canvas using a style.
func (r *SVG) RenderPath(path *markup.Path, style markup.RenderStyle) {
	b := &strings.Builder{}
	if style.HasFill() {
		hex, alpha := paint(style.Fill)
		if hex != "#000000" {
			fmt.Fprintf(b, ";fill:%s", hex)
		}
		if alpha != 1.0 {
			fmt.Fprintf(b, ";fill-opacity:%v", dec(alpha))
		}
		if style.FillRule == markup.EvenOdd {
			fmt.Fprintf(b, ";fill-rule:evenodd")
		}
	} else {
		fmt.Fprintf(b, ";fill:none")
	}
	if style.HasStroke() {
		hex, alpha := paint(style.Stroke)
		fmt.Fprintf(b, ";stroke:%s", hex)
		if alpha != 1.0 {
			fmt.Fprintf(b, ";stroke-opacity:%v", dec(alpha))
		}
		if style.StrokeWidth != 1.0 {
			fmt.Fprintf(b, ";stroke-width:%v", dec(style.StrokeWidth))
		}
		if style.LineCap != markup.ButtCap {
			fmt.Fprintf(b, ";stroke-linecap:%s", style.LineCap)
		}
		if style.RoundJoin {
			fmt.Fprintf(b, ";stroke-linejoin:round")
		}
	}

	fmt.Fprintf(r.w, `<path d="%s`, path.ToSVG())
	if 0 < b.Len() {
		fmt.Fprintf(r.w, `" style="%s`, b.String()[1:])
	}
	fmt.Fprintf(r.w, `"/>`)
}

func (r *SVG) writeText(s string) {
	_ = xml.EscapeText(r.w, []byte(s))
}

func (r *SVG) writeFill(col color.RGBA) {
	hex, alpha := paint(col)
	fmt.Fprintf(r.w, ` fill="%s"`, hex)
	if alpha != 1.0 {
		fmt.Fprintf(r.w, ` fill-opacity="%v"`, dec(alpha))
	}
}

// RenderText renders the lines of a text run from the top of its box.
func (r *SVG) RenderText(text *markup.TextRun, box markup.Rect, col color.RGBA) {
	lines := text.Lines()
	lineHeight := box.H / float64(len(lines))
	fmt.Fprintf(r.w, `<text font-family="%s" font-size="%v"`, r.opts.FontFamily, dec(text.FontSize))
	r.writeFill(col)
	fmt.Fprintf(r.w, `>`)
	for i, line := range lines {
		// baseline at 80% of the line height
		y := box.Y + lineHeight*(float64(i)+0.8)
		fmt.Fprintf(r.w, `<tspan x="%v" y="%v">`, dec(box.X), dec(y))
		r.writeText(line)
		fmt.Fprintf(r.w, `</tspan>`)
	}
	fmt.Fprintf(r.w, `</text>`)
}

// RenderLabel renders a measurement label centered at pos and rotated by angle in radians.
func (r *SVG) RenderLabel(label string, pos markup.Point, angle, fontSize float64, col color.RGBA) {
	fmt.Fprintf(r.w, `<text x="%v" y="%v" font-family="%s" font-size="%v" text-anchor="middle" dominant-baseline="central"`, dec(pos.X), dec(pos.Y), r.opts.FontFamily, dec(fontSize))
	if deg := angle * 180.0 / math.Pi; deg != 0.0 {
		fmt.Fprintf(r.w, ` transform="rotate(%v %v %v)"`, dec(deg), dec(pos.X), dec(pos.Y))
	}
	r.writeFill(col)
	fmt.Fprintf(r.w, `>`)
	r.writeText(label)
	fmt.Fprintf(r.w, `</text>`)
}

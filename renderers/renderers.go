package renderers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ownpainting/markup"
	"github.com/ownpainting/markup/renderers/pdf"
	"github.com/ownpainting/markup/renderers/rasterizer"
	"github.com/ownpainting/markup/renderers/svg"
)

// Scale is the number of pixels per content unit of raster output.
type Scale float64

// Options are the options of all renderers.
type Options struct {
	Scale
	SVG *svg.Options
	PDF *pdf.Options
}

// Extensions are the supported file extensions.
var Extensions = []string{".png", ".svg", ".svgz", ".pdf"}

// Writer returns the writer for a file extension. Accepted options are Scale, *svg.Options and *pdf.Options.
func Writer(ext string, opts ...interface{}) (markup.Writer, error) {
	options := Options{
		Scale: 1.0,
	}
	for _, opt := range opts {
		switch o := opt.(type) {
		case Scale:
			options.Scale = o
		case *svg.Options:
			options.SVG = o
		case *pdf.Options:
			options.PDF = o
		default:
			return nil, fmt.Errorf("unknown option: %v", opt)
		}
	}

	switch ext = strings.ToLower(ext); ext {
	case ".png":
		return rasterizer.PNGWriter(float64(options.Scale)), nil
	case ".svg", ".svgz":
		svgOpts := svg.DefaultOptions
		if options.SVG != nil {
			svgOpts = *options.SVG
		}
		if ext == ".svgz" && svgOpts.Compression == 0 {
			svgOpts.Compression = -1
		}
		return func(w io.Writer, doc *markup.Document, opts *markup.Options) error {
			r := svg.New(w, doc.Size, &svgOpts)
			doc.Render(r, opts)
			return r.Close()
		}, nil
	case ".pdf":
		return func(w io.Writer, doc *markup.Document, opts *markup.Options) error {
			r := pdf.New(w, doc.Size, options.PDF)
			doc.Render(r, opts)
			return r.Close()
		}, nil
	}
	return nil, fmt.Errorf("unknown file extension: %v", ext)
}

// Write renders the document to a file whose format is given by its extension.
func Write(filename string, doc *markup.Document, opts *markup.Options, extra ...interface{}) error {
	writer, err := Writer(filepath.Ext(filename), extra...)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := writer(f, doc, opts); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", filename, err)
	}
	return f.Close()
}

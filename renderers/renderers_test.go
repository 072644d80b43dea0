package renderers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ownpainting/markup"
	"github.com/ownpainting/markup/renderers/svg"
	"github.com/tdewolff/test"
)

func testDocument() *markup.Document {
	doc := markup.NewDocument(markup.Size{W: 100.0, H: 50.0})
	oval := markup.NewShape(markup.OvalKind, markup.Point{X: 10.0, Y: 10.0}, markup.Style{
		StrokeColor:   markup.Red,
		BaseLineWidth: 2.0,
		Opacity:       1.0,
	})
	oval.Extend(markup.Point{X: 60.0, Y: 40.0})
	doc.Append(oval)
	return doc
}

func TestWriter(t *testing.T) {
	for _, ext := range Extensions {
		_, err := Writer(strings.ToUpper(ext))
		test.Error(t, err, ext)
	}

	_, err := Writer(".eps")
	test.That(t, err != nil)
	_, err = Writer(".png", 2.0)
	test.That(t, err != nil, "untyped scale")
	_, err = Writer(".png", Scale(2.0))
	test.Error(t, err)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	doc := testDocument()
	for _, name := range []string{"out.svg", "out.svgz", "out.png", "out.pdf"} {
		filename := filepath.Join(dir, name)
		test.Error(t, Write(filename, doc, nil, &svg.Options{FontFamily: "serif"}), name)
		info, err := os.Stat(filename)
		test.Error(t, err)
		test.That(t, 0 < info.Size(), name)
	}

	b, err := os.ReadFile(filepath.Join(dir, "out.svg"))
	test.Error(t, err)
	test.That(t, strings.HasPrefix(string(b), "<svg"))

	test.That(t, Write(filepath.Join(dir, "out.txt"), doc, nil) != nil)
}

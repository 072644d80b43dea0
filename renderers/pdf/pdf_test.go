package pdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ownpainting/markup"
	"github.com/tdewolff/test"
)

func TestPDF(t *testing.T) {
	doc := markup.NewDocument(markup.Size{W: 200.0, H: 100.0})
	number := 25.0
	ruler := markup.NewShape(markup.RulerLineKind, markup.Point{X: 10.0, Y: 50.0}, markup.Style{
		StrokeColor:   markup.Red,
		BaseLineWidth: 2.0,
		Opacity:       1.0,
	})
	ruler.Extend(markup.Point{X: 190.0, Y: 50.0})
	ruler.Number = &number
	doc.Append(ruler)

	buf := &bytes.Buffer{}
	r := New(buf, doc.Size, &Options{Title: "plan"})
	test.T(t, r.Size(), doc.Size)
	doc.Render(r, nil)
	test.Error(t, r.Close())

	s := buf.String()
	test.That(t, strings.HasPrefix(s, "%PDF-"))
	test.That(t, strings.Contains(s, "%%EOF"))
	test.That(t, strings.Contains(s, "/Title"))
}

func TestRGB(t *testing.T) {
	red, green, blue, alpha := rgb(markup.Blue)
	test.T(t, []int{red, green, blue}, []int{0, 0, 255})
	test.Float(t, alpha, 1.0)

	_, _, _, alpha = rgb(markup.Transparent)
	test.Float(t, alpha, 0.0)
}

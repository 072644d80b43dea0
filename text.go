package markup

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// TextRun is the text of a text shape. Its value is stored in Unicode normalization form C.
type TextRun struct {
	Value    string
	FontSize float64
}

// NewTextRun returns a text run for s, normalized to NFC.
func NewTextRun(s string, fontSize float64) *TextRun {
	return &TextRun{
		Value:    norm.NFC.String(s),
		FontSize: fontSize,
	}
}

// Empty returns true if there is no visible text.
func (t *TextRun) Empty() bool {
	return t == nil || strings.TrimSpace(t.Value) == ""
}

// Lines returns the lines of the text.
func (t *TextRun) Lines() []string {
	return strings.Split(t.Value, "\n")
}

func (t *TextRun) String() string {
	return fmt.Sprintf("%q@%g", t.Value, t.FontSize)
}

func (t *TextRun) copy() *TextRun {
	if t == nil {
		return nil
	}
	u := *t
	return &u
}

////////////////////////////////////////////////////////////////

var parseGoRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// FontFace returns a face of the built-in sans-serif font at the given size in content units. The face must be closed after use.
func FontFace(size float64) (font.Face, error) {
	f, err := parseGoRegular()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func fromI26_6(f fixed.Int26_6) float64 {
	return float64(f) / 64.0
}

// Measure returns the width and height of the text box, being the widest line and the line height times the number of lines.
func (t *TextRun) Measure() (float64, float64, error) {
	if t.FontSize <= 0.0 {
		return 0.0, 0.0, nil
	}
	face, err := FontFace(t.FontSize)
	if err != nil {
		return 0.0, 0.0, err
	}
	defer face.Close()

	lines := t.Lines()
	w := 0.0
	for _, line := range lines {
		w = math.Max(w, fromI26_6(font.MeasureString(face, line)))
	}
	h := fromI26_6(face.Metrics().Height) * float64(len(lines))
	return w, h, nil
}

// CharWidth returns the average character advance of the longest line, used as minimum width of a text box.
func (t *TextRun) CharWidth() float64 {
	n := 0
	for _, line := range t.Lines() {
		n = max(n, utf8.RuneCountInString(line))
	}
	w, _, err := t.Measure()
	if n == 0 || err != nil || w == 0.0 {
		return t.FontSize
	}
	return w / float64(n)
}

func fromPoint26_6(p fixed.Point26_6) Point {
	return Point{fromI26_6(p.X), fromI26_6(p.Y)}
}

// TextPath returns the glyph outlines of a single line of text with its baseline at y=0 and starting at x=0, together with its advance width.
func TextPath(s string, fontSize float64) (*Path, float64, error) {
	f, err := parseGoRegular()
	if err != nil {
		return nil, 0.0, err
	}
	ppem := fixed.Int26_6(math.Round(fontSize * 64.0))

	var buf sfnt.Buffer
	p := &Path{}
	x := 0.0
	prev := sfnt.GlyphIndex(0)
	for i, r := range s {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return nil, 0.0, fmt.Errorf("glyph %q: %w", r, err)
		}
		if 0 < i {
			if kern, err := f.Kern(&buf, prev, idx, ppem, font.HintingNone); err == nil {
				x += fromI26_6(kern)
			}
		}
		segments, err := f.LoadGlyph(&buf, idx, ppem, nil)
		if err != nil {
			return nil, 0.0, fmt.Errorf("glyph %q: %w", r, err)
		}
		for _, seg := range segments {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if !p.Empty() {
					p.Close()
				}
				end := fromPoint26_6(seg.Args[0])
				p.MoveTo(x+end.X, end.Y)
			case sfnt.SegmentOpLineTo:
				end := fromPoint26_6(seg.Args[0])
				p.LineTo(x+end.X, end.Y)
			case sfnt.SegmentOpQuadTo:
				cp, end := fromPoint26_6(seg.Args[0]), fromPoint26_6(seg.Args[1])
				p.QuadTo(x+cp.X, cp.Y, x+end.X, end.Y)
			case sfnt.SegmentOpCubeTo:
				cp1, cp2, end := fromPoint26_6(seg.Args[0]), fromPoint26_6(seg.Args[1]), fromPoint26_6(seg.Args[2])
				p.CubeTo(x+cp1.X, cp1.Y, x+cp2.X, cp2.Y, x+end.X, end.Y)
			}
		}
		if 0 < len(segments) {
			p.Close()
		}

		advance, err := f.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err != nil {
			return nil, 0.0, fmt.Errorf("glyph %q: %w", r, err)
		}
		x += fromI26_6(advance)
		prev = idx
	}
	return p, x, nil
}

// ToPath returns the glyph outlines of the text with its lines stacked from the top of box.
func (t *TextRun) ToPath(box Rect) (*Path, error) {
	f, err := parseGoRegular()
	if err != nil {
		return nil, err
	}
	var buf sfnt.Buffer
	metrics, err := f.Metrics(&buf, fixed.Int26_6(math.Round(t.FontSize*64.0)), font.HintingNone)
	if err != nil {
		return nil, err
	}
	ascent, lineHeight := fromI26_6(metrics.Ascent), fromI26_6(metrics.Height)

	p := &Path{}
	for i, line := range t.Lines() {
		q, _, err := TextPath(line, t.FontSize)
		if err != nil {
			return nil, err
		}
		p.Append(q.Translate(box.X, box.Y+ascent+float64(i)*lineHeight))
	}
	return p, nil
}

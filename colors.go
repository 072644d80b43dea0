package markup

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB returns a color given by red, green, and blue ∈ [0,255].
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// RGBA returns a color given by red, green, and blue ∈ [0,255] (non alpha premultiplied) and alpha ∈ [0,1].
func RGBA(r, g, b uint8, a float64) color.RGBA {
	a = clamp(a, 0.0, 1.0)
	return color.RGBA{
		uint8(math.Round(a * float64(r))),
		uint8(math.Round(a * float64(g))),
		uint8(math.Round(a * float64(b))),
		uint8(math.Round(a * 255.0)),
	}
}

// WithOpacity returns the opaque color c multiplied by opacity ∈ [0,1], alpha premultiplied.
func WithOpacity(c color.RGBA, opacity float64) color.RGBA {
	if c.A == 0 {
		return Transparent
	}
	cf, _ := colorful.MakeColor(c)
	r, g, b := cf.RGB255()
	return RGBA(r, g, b, float64(c.A)/255.0*opacity)
}

// Hex returns the opaque part of the color in the upper-case #RRGGBB notation. Transparent colors are written as black.
func Hex(c color.RGBA) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return strings.ToUpper(cf.Hex())
}

// ParseHex parses a hexadecimal color such as #FF0000 or #f00 into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %v", ErrMalformedWireData, err)
	}
	r, g, b := cf.RGB255()
	return RGB(r, g, b), nil
}

// Transparent when used as a fill or stroke color will indicate that the fill or stroke will not be drawn.
var Transparent = color.RGBA{0x00, 0x00, 0x00, 0x00} // rgba(0, 0, 0, 0)

// see https://www.w3.org/TR/css-color-3/#svg-color
var (
	Black          = color.RGBA{0x00, 0x00, 0x00, 0xff} // rgb(0, 0, 0)
	White          = color.RGBA{0xff, 0xff, 0xff, 0xff} // rgb(255, 255, 255)
	Red            = color.RGBA{0xff, 0x00, 0x00, 0xff} // rgb(255, 0, 0)
	Blue           = color.RGBA{0x00, 0x00, 0xff, 0xff} // rgb(0, 0, 255)
	Yellow         = color.RGBA{0xff, 0xff, 0x00, 0xff} // rgb(255, 255, 0)
	Cornflowerblue = color.RGBA{0x64, 0x95, 0xed, 0xff} // rgb(100, 149, 237)
)

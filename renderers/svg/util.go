package svg

import (
	"image/color"
	"strconv"

	"github.com/ownpainting/markup"
	"github.com/tdewolff/minify/v2"
)

// Precision is the number of decimals of coordinates and lengths.
var Precision = 3

type dec float64

func (f dec) String() string {
	s := strconv.FormatFloat(float64(f), 'f', Precision, 64)
	return string(minify.Decimal([]byte(s), len(s)))
}

// paint returns the opaque color in hexadecimal notation and its alpha.
func paint(col color.RGBA) (string, float64) {
	return markup.Hex(col), float64(col.A) / 255.0
}

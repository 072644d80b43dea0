package markup

import (
	"image/color"
	"time"
)

// Options configures a canvas. The zero value is not usable, start from DefaultOptions.
type Options struct {
	ContentScale       float64       `toml:"content_scale"`        // device pixels per content unit
	MinimumZoomScale   float64       `toml:"minimum_zoom_scale"`   // lower bound of the zoom used to derive line widths
	HitTolerance       float64       `toml:"hit_tolerance"`        // touch tolerance in screen pixels
	LineWidth          float64       `toml:"line_width"`           // initial tool line width
	Color              color.RGBA    `toml:"-"`                    // initial tool color
	DrawingOpacity     float64       `toml:"drawing_opacity"`      // opacity of freehand and pen strokes while drawing
	HighlighterOpacity float64       `toml:"highlighter_opacity"`  // opacity of highlighter strokes
	HighlighterWidth   float64       `toml:"highlighter_width"`    // highlighter width in screen pixels
	FadeStep           float64       `toml:"fade_step"`            // opacity added per fade tick
	FadeInterval       time.Duration `toml:"fade_interval"`        // time between fade ticks
	ResizeSpacing      float64       `toml:"resize_spacing"`       // minimum bounding box size when rescaling strokes
	ArrowHeadSize      float64       `toml:"arrow_head_size"`      // arrow head width
	RulerTickHeight    float64       `toml:"ruler_tick_height"`    // half-length of ruler ticks per unit of line width
	LabelFontSize      float64       `toml:"label_font_size"`      // measurement label size per unit of line width
	Unit               string        `toml:"unit"`                 // length unit of measurement labels
	AreaUnit           string        `toml:"area_unit"`            // area unit of measurement labels
}

// DefaultOptions are the default options of a canvas.
var DefaultOptions = Options{
	ContentScale:       1.0,
	MinimumZoomScale:   1.0,
	HitTolerance:       15.0,
	LineWidth:          5.0,
	Color:              Red,
	DrawingOpacity:     0.6,
	HighlighterOpacity: 0.3,
	HighlighterWidth:   10.0,
	FadeStep:           0.01,
	FadeInterval:       10 * time.Millisecond,
	ResizeSpacing:      50.0,
	ArrowHeadSize:      12.0,
	RulerTickHeight:    25.0,
	LabelFontSize:      20.0,
	Unit:               "mm",
	AreaUnit:           "㎡",
}

// zoomOffset returns the zoom used for line width derivation, limited to [MinimumZoomScale,1].
func (o *Options) zoomOffset(zoom float64) float64 {
	lower := o.MinimumZoomScale
	if 1.0 < lower {
		lower = 1.0
	}
	if zoom <= 0.0 {
		zoom = 1.0
	}
	return clamp(zoom, lower, 1.0)
}

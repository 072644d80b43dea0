package markup

import "fmt"

// Calibration is the measurement reference defined by the calibration base. The zero value is uncalibrated.
type Calibration struct {
	Base   []Point  // end points of the base ruler
	Length *float64 // real-world length of the base in units
}

// CalibrationFrom returns the calibration defined by a rulerBase shape. Any other shape, or nil, gives an uncalibrated context.
func CalibrationFrom(base *Shape) Calibration {
	if base == nil || base.Kind != RulerBaseKind || len(base.Points) == 0 || len(base.Points[0]) != 2 {
		return Calibration{}
	}
	cal := Calibration{
		Base: []Point{base.Points[0][0], base.Points[0][1]},
	}
	if base.Number != nil {
		length := *base.Number
		cal.Length = &length
	}
	return cal
}

// PixelsPerUnit returns the real-world length per content unit.
func (c Calibration) PixelsPerUnit() (float64, bool) {
	return PixelsPerUnit(c.Base, c.Length)
}

// Valid returns true if measurements can be computed.
func (c Calibration) Valid() bool {
	_, ok := c.PixelsPerUnit()
	return ok
}

// Require returns the pixels-per-unit scale or ErrMissingCalibration.
func (c Calibration) Require() (float64, error) {
	ppu, ok := c.PixelsPerUnit()
	if !ok {
		if c.Length == nil {
			return 0.0, fmt.Errorf("%w: base length not set", ErrMissingCalibration)
		}
		return 0.0, fmt.Errorf("%w: base has zero length", ErrMissingCalibration)
	}
	return ppu, nil
}

func (c Calibration) String() string {
	if ppu, ok := c.PixelsPerUnit(); ok {
		return fmt.Sprintf("Calibration(%g/px)", ppu)
	}
	return "Calibration(none)"
}

package markup

import "errors"

// ErrMalformedWireData is returned when a wire record cannot be decoded, either because a numeric token does not parse or because the geometry does not match the arity of the kind.
var ErrMalformedWireData = errors.New("malformed wire data")

// ErrSelfIntersectingPolygon is reported through the draw-completed event when an area polygon crosses itself.
var ErrSelfIntersectingPolygon = errors.New("self-intersecting polygon")

// ErrDegenerateShape is returned when a shape does not have enough distinct points to be kept.
var ErrDegenerateShape = errors.New("degenerate shape")

// ErrMissingCalibration is returned when a measurement is requested without a usable calibration base.
var ErrMissingCalibration = errors.New("missing calibration")

// ErrUnknownKind is returned for unknown kind names or wire categories.
var ErrUnknownKind = errors.New("unknown kind")

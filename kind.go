package markup

import (
	"fmt"
)

// Kind is the tool or shape kind. DefaultKind is the selection tool and is never persisted.
type Kind int

// see Kind
const (
	DefaultKind Kind = iota
	FreehandKind
	PenKind
	HighlighterKind
	LineKind
	ArrowKind
	RectKind
	OvalKind
	CrossKind
	TextKind
	RulerBaseKind
	RulerLineKind
	RulerRectKind
	RulerPolygonKind
	RulerFreehandKind
	AreaRectKind
	AreaPolygonKind
	AreaFreehandKind
)

var kindNames = [...]string{
	DefaultKind:       "default",
	FreehandKind:      "freehand",
	PenKind:           "pen",
	HighlighterKind:   "highlighter",
	LineKind:          "line",
	ArrowKind:         "arrow",
	RectKind:          "rect",
	OvalKind:          "oval",
	CrossKind:         "cross",
	TextKind:          "text",
	RulerBaseKind:     "rulerBase",
	RulerLineKind:     "rulerLine",
	RulerRectKind:     "rulerRect",
	RulerPolygonKind:  "rulerPolygon",
	RulerFreehandKind: "rulerFreehand",
	AreaRectKind:      "areaRect",
	AreaPolygonKind:   "areaPolygon",
	AreaFreehandKind:  "areaFreehand",
}

// Kinds lists all persisted kinds.
var Kinds = []Kind{FreehandKind, PenKind, HighlighterKind, LineKind, ArrowKind, RectKind, OvalKind, CrossKind, TextKind, RulerBaseKind, RulerLineKind, RulerRectKind, RulerPolygonKind, RulerFreehandKind, AreaRectKind, AreaPolygonKind, AreaFreehandKind}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the kind by its name.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s && Kind(k) != DefaultKind {
			return Kind(k), nil
		}
	}
	return DefaultKind, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	var err error
	*k, err = ParseKind(string(b))
	return err
}

// Family groups kinds sharing the same geometry arity.
type Family int

// see Family
const (
	NoFamily Family = iota
	PointPairFamily
	FourCornerFamily
	PolygonFamily
	FreehandFamily
	TextFamily
)

func (f Family) String() string {
	switch f {
	case PointPairFamily:
		return "PointPair"
	case FourCornerFamily:
		return "FourCorner"
	case PolygonFamily:
		return "Polygon"
	case FreehandFamily:
		return "Freehand"
	case TextFamily:
		return "Text"
	}
	return "None"
}

// Family returns the geometry family of the kind.
func (k Kind) Family() Family {
	switch k {
	case LineKind, ArrowKind, RulerBaseKind, RulerLineKind:
		return PointPairFamily
	case RectKind, OvalKind, CrossKind, RulerRectKind, AreaRectKind:
		return FourCornerFamily
	case RulerPolygonKind, AreaPolygonKind:
		return PolygonFamily
	case FreehandKind, PenKind, HighlighterKind, RulerFreehandKind, AreaFreehandKind:
		return FreehandFamily
	case TextKind:
		return TextFamily
	}
	return NoFamily
}

// IsMeasure returns true for ruler and area kinds, including the calibration base.
func (k Kind) IsMeasure() bool {
	return RulerBaseKind <= k && k <= AreaFreehandKind
}

// IsArea returns true for kinds that report an enclosed area.
func (k Kind) IsArea() bool {
	return k == AreaRectKind || k == AreaPolygonKind || k == AreaFreehandKind
}

// IsStroke returns true for the hand-drawn stroke kinds that may hold several point groups.
func (k Kind) IsStroke() bool {
	return k == FreehandKind || k == PenKind || k == HighlighterKind
}

// UsesToolWidth returns true for kinds whose base line width follows the tool line width.
func (k Kind) UsesToolWidth() bool {
	switch k {
	case FreehandKind, LineKind, ArrowKind, RectKind, OvalKind, CrossKind:
		return true
	}
	return false
}

// Fades returns true for kinds whose completion is delayed by an opacity fade.
func (k Kind) Fades() bool {
	return k == FreehandKind || k == PenKind
}

////////////////////////////////////////////////////////////////

// Lifecycle tracks how a shape must be persisted on the next save.
type Lifecycle int

// see Lifecycle
const (
	UnchangedState Lifecycle = iota
	NewState
	EditedState
	DeletedState
)

func (l Lifecycle) String() string {
	switch l {
	case NewState:
		return "new"
	case EditedState:
		return "edited"
	case DeletedState:
		return "deleted"
	}
	return "unchanged"
}

// markEdited returns Edited unless the shape has never been persisted.
func (l Lifecycle) markEdited() Lifecycle {
	if l == NewState {
		return NewState
	}
	return EditedState
}

////////////////////////////////////////////////////////////////

// LineCap is the stroke end style.
type LineCap int

// see LineCap
const (
	ButtCap LineCap = iota
	RoundCap
	SquareCap
)

// Code returns the single letter used in the wire format.
func (c LineCap) Code() string {
	switch c {
	case RoundCap:
		return "r"
	case SquareCap:
		return "s"
	}
	return "b"
}

func (c LineCap) String() string {
	switch c {
	case RoundCap:
		return "round"
	case SquareCap:
		return "square"
	}
	return "butt"
}

func parseLineCap(s string) (LineCap, bool) {
	switch s {
	case "r":
		return RoundCap, true
	case "s":
		return SquareCap, true
	case "b":
		return ButtCap, true
	}
	return ButtCap, false
}

////////////////////////////////////////////////////////////////

// Handle identifies the grip of a shape being resized. Non-negative values address polygon vertices.
type Handle int

// see Handle
const (
	StartHandle Handle = -1 - iota
	EndHandle
	UpperLeftHandle
	UpperRightHandle
	BottomLeftHandle
	BottomRightHandle
	CenterLeftHandle
	CenterRightHandle
)

// Vertex returns the handle of the i-th polygon vertex.
func Vertex(i int) Handle {
	return Handle(i)
}

// IsVertex returns true for polygon vertex handles.
func (h Handle) IsVertex() bool {
	return 0 <= h
}

func (h Handle) String() string {
	switch h {
	case StartHandle:
		return "start"
	case EndHandle:
		return "end"
	case UpperLeftHandle:
		return "upperLeft"
	case UpperRightHandle:
		return "upperRight"
	case BottomLeftHandle:
		return "bottomLeft"
	case BottomRightHandle:
		return "bottomRight"
	case CenterLeftHandle:
		return "centerLeft"
	case CenterRightHandle:
		return "centerRight"
	}
	return fmt.Sprintf("vertex%d", int(h))
}

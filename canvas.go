package markup

import (
	"image/color"
	"slices"
	"sync"
)

// Canvas is an annotation surface. It owns the shape collection, the current tool and style, the selection and the undo history, and turns touch input into shape mutations. All methods are safe for concurrent use. Listeners registered with On are called after the canvas is unlocked, in the order the events happened.
type Canvas struct {
	mu   sync.Mutex
	opts Options

	doc  *Document
	undo UndoEngine

	tool         Kind
	color        color.RGBA
	lineWidth    float64
	zoom         float64
	contentScale float64

	selection []string

	// touch state
	drawing    *Shape    // shape being drawn, part of doc
	baseBefore *Snapshot // calibration base as it was before being redrawn
	dragging   bool
	dragMoved  bool
	last       Point

	resizing     bool
	resizeHandle Handle

	scheduler  Scheduler
	fadeGen    int
	fadeCancel func()

	listeners map[EventType][]EventListener
	pending   []Event
}

// New returns an empty canvas of the given size in content units. Nil options use DefaultOptions.
func New(size Size, opts *Options) *Canvas {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}
	return &Canvas{
		opts:         *opts,
		doc:          NewDocument(size),
		color:        opts.Color,
		lineWidth:    opts.LineWidth,
		zoom:         1.0,
		contentScale: opts.ContentScale,
		scheduler:    TimeScheduler,
		listeners:    map[EventType][]EventListener{},
	}
}

// SetScheduler replaces the scheduler of the freehand fade.
func (c *Canvas) SetScheduler(s Scheduler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelFade()
	c.scheduler = s
}

// Options returns the options of the canvas.
func (c *Canvas) Options() Options {
	return c.opts
}

// Size returns the size of the canvas.
func (c *Canvas) Size() Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Size
}

// Shapes returns copies of all shapes in z-order.
func (c *Canvas) Shapes() []*Shape {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyShapes(c.doc.Shapes())
}

// Shape returns a copy of the shape with the given id, or nil.
func (c *Canvas) Shape(id string) *Shape {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.doc.Find(id); s != nil {
		return s.Copy()
	}
	return nil
}

// Document returns a copy of the document.
func (c *Canvas) Document() *Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Calibration returns the current calibration.
func (c *Canvas) Calibration() Calibration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Calibration()
}

// Tool returns the active tool.
func (c *Canvas) Tool() Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tool
}

// Selection returns the ids of the selected shapes.
func (c *Canvas) Selection() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.selection)
}

// UndoCount returns the size of the undo stack.
func (c *Canvas) UndoCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.undo.UndoCount()
}

// RedoCount returns the size of the redo stack.
func (c *Canvas) RedoCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.undo.RedoCount()
}

// ShouldSave returns true if there are unsaved changes.
func (c *Canvas) ShouldSave() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Modified()
}

// Select replaces the selection by the given shapes. Unknown ids are ignored.
func (c *Canvas) Select(ids ...string) {
	c.mu.Lock()
	defer c.unlock()
	c.commitPending()
	var sel []string
	for _, id := range ids {
		if c.doc.Find(id) != nil && !slices.Contains(sel, id) {
			sel = append(sel, id)
		}
	}
	if len(sel) == 0 {
		c.clearSelection()
		return
	}
	c.selection = sel
	c.queue(EventSelect, c.selected()...)
}

// Deselect clears the selection.
func (c *Canvas) Deselect() {
	c.mu.Lock()
	defer c.unlock()
	c.clearSelection()
}

// Undo reverts the most recent change. It returns false if there is nothing to undo.
func (c *Canvas) Undo() bool {
	return c.history(true)
}

// Redo re-applies the most recently undone change. It returns false if there is nothing to redo.
func (c *Canvas) Redo() bool {
	return c.history(false)
}

func (c *Canvas) history(undo bool) bool {
	c.mu.Lock()
	defer c.unlock()
	c.commitPending()
	c.clearSelection()

	u, r := c.undo.UndoCount(), c.undo.RedoCount()
	var e Entry
	var ok bool
	if undo {
		e, ok = c.undo.Undo(c.doc)
	} else {
		e, ok = c.undo.Redo(c.doc)
	}
	if !ok {
		return false
	}
	c.updateLineWidths()
	c.queueStacks(u, r)
	c.queue(EventShapeChanged, e.Snapshots[0].shape)
	return true
}

// Reinitialize removes all shapes and clears the history and trash map.
func (c *Canvas) Reinitialize() {
	c.mu.Lock()
	defer c.unlock()
	c.cancelFade()
	c.drawing = nil
	c.baseBefore = nil
	c.dragging = false
	c.resizing = false
	c.clearSelection()

	u, r := c.undo.UndoCount(), c.undo.RedoCount()
	c.doc.Reset()
	c.undo.Clear()
	c.queueStacks(u, r)
}

////////////////////////////////////////////////////////////////

// selected returns the selected shapes in selection order. Must be called with the lock held.
func (c *Canvas) selected() []*Shape {
	shapes := make([]*Shape, 0, len(c.selection))
	for _, id := range c.selection {
		if s := c.doc.Find(id); s != nil {
			shapes = append(shapes, s)
		}
	}
	return shapes
}

func (c *Canvas) clearSelection() {
	if len(c.selection) != 0 {
		c.selection = nil
		c.queue(EventDeselect)
	}
}

// record logs an entry and emits stack events for the stacks whose size changed.
func (c *Canvas) record(op Operation, snaps []Snapshot) {
	u, r := c.undo.UndoCount(), c.undo.RedoCount()
	if c.undo.Record(Entry{op, snaps}) {
		c.queueStacks(u, r)
	}
}

func (c *Canvas) queueStacks(undoCount, redoCount int) {
	if n := c.undo.UndoCount(); n != undoCount {
		c.queueEvent(Event{Type: EventUndoStack, Count: n})
	}
	if n := c.undo.RedoCount(); n != redoCount {
		c.queueEvent(Event{Type: EventRedoStack, Count: n})
	}
}

// markEdited records one Update entry for the shapes and marks them edited.
func (c *Canvas) markEdited(shapes ...*Shape) {
	ids := make([]string, len(shapes))
	for i, s := range shapes {
		ids[i] = s.ID
	}
	c.record(UpdateOp, c.doc.Snapshots(ids...))
	for _, s := range shapes {
		s.State = s.State.markEdited()
	}
}

func (c *Canvas) zoomOffset() float64 {
	return c.opts.zoomOffset(c.zoom)
}

func (c *Canvas) updateLineWidths() {
	for _, s := range c.doc.Shapes() {
		s.updateLineWidth(c.contentScale, c.zoomOffset())
	}
}

// newStyle returns the style of a new shape drawn with the current tool settings.
func (c *Canvas) newStyle(kind Kind) Style {
	style := Style{
		StrokeColor:   c.color,
		FillColor:     Transparent,
		BaseLineWidth: 1.0,
		Opacity:       1.0,
		LineCap:       ButtCap,
	}
	if kind.Family() == FreehandFamily {
		style.LineCap = RoundCap
	}
	switch kind {
	case HighlighterKind:
		zoom := c.zoom
		if zoom <= 0.0 {
			zoom = 1.0
		}
		style.BaseLineWidth = c.opts.HighlighterWidth * c.contentScale / zoom
		style.Opacity = c.opts.HighlighterOpacity
	case ArrowKind:
		style.FillColor = c.color
	case TextKind:
		style.FillColor = c.color
		style.StrokeColor = Transparent
	}
	if kind.UsesToolWidth() {
		style.BaseLineWidth = c.lineWidth
	}
	if kind.Fades() {
		style.Opacity = c.opts.DrawingOpacity
	}
	return style
}

// defaultOpacity is the opacity of a committed shape.
func (c *Canvas) defaultOpacity(kind Kind) float64 {
	if kind == HighlighterKind {
		return c.opts.HighlighterOpacity
	}
	return 1.0
}

// clampPoint keeps pt inside the canvas.
func (c *Canvas) clampPoint(pt Point) Point {
	size := c.doc.Size
	if size.Empty() {
		return pt
	}
	return Point{clamp(pt.X, 0.0, size.W), clamp(pt.Y, 0.0, size.H)}
}

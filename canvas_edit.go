package markup

import (
	"image/color"
	"math"
	"slices"
)

// SetTool activates a tool. The shape being drawn is committed and the selection is cleared when switching to a drawing tool.
func (c *Canvas) SetTool(kind Kind) {
	c.mu.Lock()
	defer c.unlock()
	c.commitPending()
	if kind != DefaultKind {
		c.clearSelection()
	}
	c.tool = kind
}

// SetColor sets the tool color and recolors the selection. Text is recolored through its fill, arrows through both stroke and fill.
func (c *Canvas) SetColor(col color.RGBA) {
	c.mu.Lock()
	defer c.unlock()
	c.color = col

	shapes := c.selected()
	if len(shapes) == 0 {
		return
	}
	c.markEdited(shapes...)
	for _, s := range shapes {
		switch s.Kind {
		case TextKind:
			s.FillColor = col
		case ArrowKind:
			s.StrokeColor, s.FillColor = col, col
		default:
			s.StrokeColor, s.FillColor = col, Transparent
		}
	}
	c.queue(EventShapeChanged, shapes...)
}

// Color returns the tool color.
func (c *Canvas) Color() color.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.color
}

// SetLineWidth sets the tool line width and applies it to the selected shapes that use it.
func (c *Canvas) SetLineWidth(w float64) {
	c.mu.Lock()
	defer c.unlock()
	c.lineWidth = w

	var shapes []*Shape
	for _, s := range c.selected() {
		if s.Kind.UsesToolWidth() {
			shapes = append(shapes, s)
		}
	}
	if len(shapes) == 0 {
		return
	}
	c.markEdited(shapes...)
	for _, s := range shapes {
		s.BaseLineWidth = w
		s.updateLineWidth(c.contentScale, c.zoomOffset())
	}
	c.queue(EventShapeChanged, shapes...)
}

// LineWidth returns the tool line width.
func (c *Canvas) LineWidth() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lineWidth
}

// SetZoom sets the zoom scale of the view, which changes the displayed line widths.
func (c *Canvas) SetZoom(zoom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = zoom
	c.updateLineWidths()
}

// Zoom returns the zoom scale of the view.
func (c *Canvas) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

// SetContentScale sets the number of device pixels per content unit.
func (c *Canvas) SetContentScale(scale float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contentScale = scale
	c.updateLineWidths()
}

// SetBaseLength sets the real-world length of the calibration base and recomputes all measurements. Nil removes the calibration. If the length changes while shapes are selected, the change is recorded together with the selection.
func (c *Canvas) SetBaseLength(length *float64) {
	c.mu.Lock()
	defer c.unlock()
	base := c.doc.Base()
	if base == nil {
		return
	}

	changed := (base.Number == nil) != (length == nil) || (base.Number != nil && *base.Number != *length)
	if changed && 0 < len(c.selection) {
		ids := slices.Clone(c.selection)
		if !slices.Contains(ids, base.ID) {
			ids = append(ids, base.ID)
		}
		c.record(UpdateOp, c.doc.Snapshots(ids...))
	}
	if length != nil {
		v := *length
		base.Number = &v
	} else {
		base.Number = nil
	}
	base.State = base.State.markEdited()
	c.doc.RecalculateAll()
	c.queue(EventMeasureChanged, base)
}

////////////////////////////////////////////////////////////////

// BeginResize starts resizing the selection by handle h and records the state before resizing. It returns false if nothing is selected.
func (c *Canvas) BeginResize(h Handle) bool {
	c.mu.Lock()
	defer c.unlock()
	shapes := c.selected()
	if len(shapes) == 0 {
		return false
	}
	c.markEdited(shapes...)
	c.resizing, c.resizeHandle = true, h
	if pt, ok := shapes[0].HandlePoint(h); ok && shapes[0].Kind.IsMeasure() {
		c.queueEvent(Event{Type: EventLoupeShow, Point: pt})
	}
	return true
}

// Resize moves the handle of the resize in progress by d.
func (c *Canvas) Resize(d Point) {
	c.mu.Lock()
	defer c.unlock()
	if !c.resizing {
		return
	}

	for _, s := range c.selected() {
		if !s.Resize(c.resizeHandle, d, c.opts.ResizeSpacing) {
			continue
		}
		if s.Kind == RulerBaseKind {
			c.doc.RecalculateAll()
		} else {
			s.RecomputeMeasurement(c.doc.Calibration())
		}
		if pt, ok := s.HandlePoint(c.resizeHandle); ok && s.Kind.IsMeasure() {
			c.queueEvent(Event{Type: EventLoupeMove, Point: pt})
		}
	}
}

// EndResize finishes the resize in progress.
func (c *Canvas) EndResize() {
	c.mu.Lock()
	defer c.unlock()
	if !c.resizing {
		return
	}
	c.resizing = false

	measured := false
	for _, s := range c.selected() {
		s.fitText()
		measured = measured || s.Kind.IsMeasure()
	}
	if measured {
		c.queueEvent(Event{Type: EventLoupeHide})
		c.queue(EventMeasureChanged, c.selected()...)
	}
}

////////////////////////////////////////////////////////////////

// DeleteSelection deletes the selected shapes.
func (c *Canvas) DeleteSelection() {
	c.mu.Lock()
	defer c.unlock()
	c.commitPending()
	c.delete(c.selection)
}

// DeleteAll deletes all shapes.
func (c *Canvas) DeleteAll() {
	c.mu.Lock()
	defer c.unlock()
	c.commitPending()
	ids := make([]string, 0, c.doc.Len())
	for _, s := range c.doc.Shapes() {
		ids = append(ids, s.ID)
	}
	c.delete(ids)
}

// delete removes shapes with a single Delete entry. Shapes that were persisted before go to the trash map.
func (c *Canvas) delete(ids []string) {
	snaps := c.doc.Snapshots(ids...)
	if len(snaps) == 0 {
		return
	}
	c.clearSelection()
	c.record(DeleteOp, snaps)

	recalc := false
	for _, snap := range snaps {
		s, _ := c.doc.Remove(snap.ID())
		if s.State != NewState {
			c.doc.Trash(s)
		}
		recalc = recalc || s.Kind == RulerBaseKind
	}
	if recalc {
		c.doc.RecalculateAll()
	}
	Logger().Debug("deleted shapes", "count", len(snaps))
}

////////////////////////////////////////////////////////////////

// CommitText finishes text input. If id is the single selected text shape it is updated, otherwise a new text shape is created with its upper-left corner at the origin of r. The box is sized to the text, falling back to r when the font cannot be measured. Empty text creates nothing and deletes an edited shape.
func (c *Canvas) CommitText(id, text string, fontSize float64, col color.RGBA, r Rect) {
	c.mu.Lock()
	defer c.unlock()
	c.commitPending()

	run := NewTextRun(text, fontSize)
	w, h, err := run.Measure()
	if err != nil || w == 0.0 {
		w, h = r.W, r.H
	}
	box := []Point{{r.X, r.Y}, {r.X + math.Ceil(w), r.Y + math.Ceil(h)}}

	var edit *Shape
	if shapes := c.selected(); len(shapes) == 1 && shapes[0].ID == id && shapes[0].Kind == TextKind {
		edit = shapes[0]
	}
	if edit != nil {
		if run.Empty() {
			c.delete([]string{edit.ID})
			return
		}
		c.markEdited(edit)
		edit.Text = run
		edit.FillColor = col
		edit.Points = [][]Point{box}
		c.clearSelection()
		c.queue(EventDrawEnd, edit)
		return
	}

	if run.Empty() {
		c.queue(EventDrawEnd)
		return
	}
	style := c.newStyle(TextKind)
	style.FillColor = col
	s := NewShape(TextKind, box[0], style)
	s.Text = run
	s.Points = [][]Point{box}
	s.updateLineWidth(c.contentScale, c.zoomOffset())
	c.doc.Append(s)
	c.record(CreateOp, []Snapshot{s.Snapshot(c.doc.Len() - 1)})
	c.queue(EventDrawEnd, s)
}

////////////////////////////////////////////////////////////////

// Load replaces the shapes of the canvas by loaded shapes, which are considered saved. Only the first calibration base is kept. The history and trash map are cleared.
func (c *Canvas) Load(shapes []*Shape) {
	c.mu.Lock()
	defer c.unlock()
	c.cancelFade()
	c.drawing = nil
	c.baseBefore = nil
	c.clearSelection()

	u, r := c.undo.UndoCount(), c.undo.RedoCount()
	c.doc.Reset()
	c.undo.Clear()
	hasBase := false
	for _, s := range shapes {
		if s.Kind == RulerBaseKind {
			if hasBase {
				Logger().Warn("dropped duplicate calibration base", "id", s.ID)
				continue
			}
			hasBase = true
		}
		s = s.Copy()
		s.State = UnchangedState
		s.updateLineWidth(c.contentScale, c.zoomOffset())
		c.doc.Append(s)
	}
	c.doc.RecalculateAll()
	c.queueStacks(u, r)
}

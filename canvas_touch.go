package markup

// TouchPhase is the phase of a touch event.
type TouchPhase int

// see TouchPhase
const (
	TouchBegan TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

func (p TouchPhase) String() string {
	switch p {
	case TouchBegan:
		return "began"
	case TouchMoved:
		return "moved"
	case TouchEnded:
		return "ended"
	case TouchCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Touch handles a touch event at the given points in content coordinates. Events with more than one touch are ignored and points are clamped to the canvas. A cancelled touch is handled as an ended one.
func (c *Canvas) Touch(phase TouchPhase, touches ...Point) {
	if len(touches) != 1 {
		return
	}

	c.mu.Lock()
	defer c.unlock()
	pt := c.clampPoint(touches[0])
	if c.tool == DefaultKind {
		switch phase {
		case TouchBegan:
			c.selectBegan(pt)
		case TouchMoved:
			c.selectMoved(pt)
		case TouchEnded, TouchCancelled:
			c.selectEnded()
		}
		return
	}

	switch phase {
	case TouchBegan:
		c.drawBegan(pt)
	case TouchMoved:
		c.drawMoved(pt)
	case TouchEnded, TouchCancelled:
		c.drawEnded()
	}
}

// TouchDown handles the start of a single touch.
func (c *Canvas) TouchDown(pt Point) {
	c.Touch(TouchBegan, pt)
}

// TouchMove handles the movement of a single touch.
func (c *Canvas) TouchMove(pt Point) {
	c.Touch(TouchMoved, pt)
}

// TouchUp handles the end of a single touch.
func (c *Canvas) TouchUp(pt Point) {
	c.Touch(TouchEnded, pt)
}

// TouchCancel handles the cancellation of a single touch.
func (c *Canvas) TouchCancel(pt Point) {
	c.Touch(TouchCancelled, pt)
}

////////////////////////////////////////////////////////////////

// hits returns the shapes under pt, top-most first.
func (c *Canvas) hits(pt Point) []*Shape {
	var hits []*Shape
	shapes := c.doc.Shapes()
	for i := len(shapes) - 1; 0 <= i; i-- {
		if shapes[i].Hit(pt, c.zoom, &c.opts) {
			hits = append(hits, shapes[i])
		}
	}
	return hits
}

func (c *Canvas) selectBegan(pt Point) {
	c.dragging, c.dragMoved = false, false
	hits := c.hits(pt)
	if len(hits) == 0 {
		c.clearSelection()
		return
	}

	for _, s := range hits {
		for _, id := range c.selection {
			if s.ID == id {
				c.queue(EventTouch, c.selected()...)
				c.dragging, c.last = true, pt
				return
			}
		}
	}
	c.selection = []string{hits[0].ID}
	c.queue(EventSelect, hits[0])
	c.dragging, c.last = true, pt
}

func (c *Canvas) selectMoved(pt Point) {
	if !c.dragging || len(c.selection) == 0 {
		return
	}
	shapes := c.selected()
	if !c.dragMoved {
		c.markEdited(shapes...)
		c.dragMoved = true
	}
	d := pt.Sub(c.last)
	c.last = pt
	for _, s := range shapes {
		s.Translate(d)
	}
}

func (c *Canvas) selectEnded() {
	if c.dragging && len(c.selection) == 1 {
		c.queue(EventSelect, c.selected()...)
	}
	if c.dragMoved {
		Logger().Debug("moved shapes", "ids", c.selection)
	}
	c.dragging, c.dragMoved = false, false
}

////////////////////////////////////////////////////////////////

func (c *Canvas) drawBegan(pt Point) {
	if c.tool == TextKind {
		c.queueEvent(Event{Type: EventTextRequest, Point: pt})
		return
	}

	if s := c.drawing; s != nil && s.Kind == c.tool {
		if c.fading() {
			// continue the stroke with a new group
			c.cancelFade()
			s.Opacity = c.newStyle(s.Kind).Opacity
			s.AppendPoint(pt)
			return
		} else if s.Open() {
			s.AppendPoint(pt)
			s.RecomputeMeasurement(c.doc.Calibration())
			c.queueEvent(Event{Type: EventLoupeShow, Point: pt})
			return
		}
		// a gesture that never ended is extended
		c.drawMoved(pt)
		return
	}
	c.commitPending()

	if c.tool == RulerBaseKind {
		if base := c.doc.Base(); base != nil {
			snap := base.Snapshot(c.doc.Index(base.ID))
			c.baseBefore = &snap
			base.Points = [][]Point{{pt, pt}}
			c.drawing = base
			c.queueEvent(Event{Type: EventLoupeShow, Point: pt})
			return
		}
	}

	s := NewShape(c.tool, pt, c.newStyle(c.tool))
	s.updateLineWidth(c.contentScale, c.zoomOffset())
	c.doc.Append(s)
	c.drawing = s
	if s.Kind.IsMeasure() {
		c.queueEvent(Event{Type: EventLoupeShow, Point: pt})
	}
}

func (c *Canvas) drawMoved(pt Point) {
	s := c.drawing
	if s == nil || c.fading() {
		return
	}
	s.Extend(pt)
	if s.Kind.IsMeasure() {
		s.RecomputeMeasurement(c.doc.Calibration())
		c.queueEvent(Event{Type: EventLoupeMove, Point: pt})
	}
}

func (c *Canvas) drawEnded() {
	s := c.drawing
	if s == nil || c.fading() {
		return
	}
	if s.Kind.IsMeasure() {
		c.queueEvent(Event{Type: EventLoupeHide})
	}

	switch {
	case s.Kind.Fades():
		c.startFade()
	case s.Open():
		if s.Kind == AreaPolygonKind && HasSelfIntersection(s.Points[0]) {
			s.RevertVertex()
			Logger().Warn("rejected vertex", "id", s.ID, "err", ErrSelfIntersectingPolygon)
			c.queueEvent(Event{Type: EventDrawEnd, Err: ErrSelfIntersectingPolygon})
		}
		s.RecomputeMeasurement(c.doc.Calibration())
	default:
		c.endPaint()
	}
}

// EndPolygon commits the polygon being drawn.
func (c *Canvas) EndPolygon() {
	c.mu.Lock()
	defer c.unlock()
	if c.drawing != nil && c.drawing.Open() {
		c.endPaint()
	}
}

// commitPending commits the shape being drawn, skipping a running fade. Must be called with the lock held.
func (c *Canvas) commitPending() {
	c.cancelFade()
	if c.drawing != nil {
		c.endPaint()
	}
}

// endPaint commits the shape being drawn: it is dropped when degenerate or self-intersecting, otherwise it becomes a new shape with a Create entry.
func (c *Canvas) endPaint() {
	s := c.drawing
	c.drawing = nil
	if s == nil {
		return
	}
	s.Close()
	s.stripShortGroups()

	if c.baseBefore != nil {
		before := *c.baseBefore
		c.baseBefore = nil
		if !s.ShouldPersist() {
			s.Restore(before)
			c.queue(EventDrawEnd)
			return
		}
		c.record(UpdateOp, []Snapshot{before})
		s.State = before.shape.State.markEdited()
		c.doc.RecalculateAll()
		c.queue(EventDrawEnd, s)
		c.queue(EventMeasureChanged, s)
		return
	}

	if !s.ShouldPersist() {
		c.doc.Remove(s.ID)
		Logger().Debug("discarded shape", "id", s.ID, "kind", s.Kind, "err", ErrDegenerateShape)
		c.queue(EventDrawEnd)
		return
	} else if s.Kind == AreaPolygonKind && HasSelfIntersection(s.Points[0]) {
		c.doc.Remove(s.ID)
		Logger().Warn("rejected shape", "id", s.ID, "kind", s.Kind, "err", ErrSelfIntersectingPolygon)
		c.queueEvent(Event{Type: EventDrawEnd, Err: ErrSelfIntersectingPolygon})
		return
	}

	s.RecomputeMeasurement(c.doc.Calibration())
	s.Opacity = c.defaultOpacity(s.Kind)
	s.State = NewState
	c.record(CreateOp, []Snapshot{s.Snapshot(c.doc.Index(s.ID))})
	Logger().Debug("committed shape", "id", s.ID, "kind", s.Kind)
	c.queue(EventDrawEnd, s)
	if s.Kind.IsMeasure() {
		c.queue(EventMeasureChanged, s)
	}
}

package markup

// Outline returns the stroked geometry of the shape, including the arrow head of arrows and the end ticks of rulers.
func (s *Shape) Outline(opts *Options) *Path {
	if opts == nil {
		opts = &DefaultOptions
	}
	if len(s.Points) == 0 || len(s.Points[0]) == 0 {
		return &Path{}
	}

	g := s.Points[0]
	switch s.Kind.Family() {
	case PointPairFamily:
		if len(g) != 2 {
			return &Path{}
		}
		p := Line(g[0].X, g[0].Y, g[1].X, g[1].Y)
		switch s.Kind {
		case ArrowKind:
			p.Append(ArrowHead(g[0], g[1], opts.ArrowHeadSize))
		case RulerBaseKind, RulerLineKind:
			h := opts.RulerTickHeight * s.LineWidth
			p.Append(RulerTicks(g[0], g[1], h, s.Kind == RulerBaseKind))
		}
		return p
	case FourCornerFamily:
		if len(g) != 4 {
			return &Path{}
		}
		r := s.cornerRect()
		switch s.Kind {
		case OvalKind:
			c := r.Center()
			return Ellipse(c.X, c.Y, r.W/2.0, r.H/2.0)
		case CrossKind:
			p := Line(g[0].X, g[0].Y, g[3].X, g[3].Y)
			p.Append(Line(g[1].X, g[1].Y, g[2].X, g[2].Y))
			return p
		}
		return r.ToPath()
	case PolygonFamily:
		closed := !s.open
		if s.Kind == AreaPolygonKind {
			closed = true
		}
		return Polygon(g, closed)
	case FreehandFamily:
		if s.Kind.IsStroke() {
			return SmoothStroke(s.Points)
		}
		return Polygon(g, s.Kind == AreaFreehandKind)
	case TextFamily:
		return s.Bounds().ToPath()
	}
	return &Path{}
}

// Region returns the closed interior of area shapes, or nil for other kinds.
func (s *Shape) Region() *Path {
	if !s.Kind.IsArea() || len(s.Points) == 0 {
		return nil
	}
	g := s.Points[0]
	if s.Kind == AreaRectKind {
		if len(g) != 4 {
			return nil
		}
		return s.cornerRect().ToPath()
	} else if len(g) < 3 {
		return nil
	}
	return Polygon(g, true)
}

// Hit returns true if pt touches the shape. The tolerance is given in screen pixels and is divided by the zoom, so that the touch area stays the same on screen. Area shapes are also hit inside their region and text shapes inside their box.
func (s *Shape) Hit(pt Point, zoom float64, opts *Options) bool {
	if opts == nil {
		opts = &DefaultOptions
	}
	if zoom <= 0.0 {
		zoom = 1.0
	}
	laxness := opts.HitTolerance / zoom

	if s.Kind == TextKind && s.Bounds().Contains(pt) {
		return true
	} else if s.Outline(opts).StrokeContains(pt, laxness*2.0) {
		return true
	} else if region := s.Region(); region != nil {
		return region.Interior(pt.X, pt.Y, EvenOdd)
	}
	return false
}

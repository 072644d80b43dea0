package markup

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func orbPoints(pts []Point) []orb.Point {
	ps := make([]orb.Point, len(pts))
	for i, p := range pts {
		ps[i] = orb.Point{p.X, p.Y}
	}
	return ps
}

func orbRing(pts []Point) orb.Ring {
	ring := orb.Ring(orbPoints(pts))
	if 0 < len(ring) && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// Geometry returns the shape as a planar geometry in content coordinates. Lines and rulers are line strings, boxes and areas are polygons, closed ruler polygons are closed line strings, strokes are multi line strings and text is its upper-left point.
func (s *Shape) Geometry() orb.Geometry {
	if len(s.Points) == 0 || len(s.Points[0]) == 0 {
		return nil
	}
	g := s.Points[0]
	switch s.Kind.Family() {
	case PointPairFamily:
		return orb.LineString(orbPoints(g))
	case FourCornerFamily:
		if len(g) != 4 {
			return nil
		}
		return orb.Polygon{orbRing([]Point{g[0], g[1], g[3], g[2]})}
	case PolygonFamily, FreehandFamily:
		switch {
		case s.Kind.IsStroke():
			mls := orb.MultiLineString{}
			for _, group := range s.Points {
				mls = append(mls, orb.LineString(orbPoints(group)))
			}
			return mls
		case s.Kind.IsArea():
			return orb.Polygon{orbRing(g)}
		case s.Kind == RulerPolygonKind && !s.open:
			return orb.LineString(orbRing(g))
		}
		return orb.LineString(orbPoints(g))
	case TextFamily:
		return orb.Point{g[0].X, g[0].Y}
	}
	return nil
}

// Feature returns the shape as a GeoJSON feature with its style and measurement as properties.
func (s *Shape) Feature(opts *Options) *geojson.Feature {
	if opts == nil {
		opts = &DefaultOptions
	}
	geom := s.Geometry()
	if geom == nil {
		return nil
	}

	f := geojson.NewFeature(geom)
	f.ID = s.ID
	f.Properties["kind"] = s.Kind.String()
	f.Properties["strokeColor"] = Hex(s.StrokeColor)
	if s.FillColor.A != 0 {
		f.Properties["fillColor"] = Hex(s.FillColor)
	}
	f.Properties["width"] = s.BaseLineWidth
	f.Properties["opacity"] = s.Opacity
	if s.Number != nil {
		f.Properties["measurement"] = *s.Number
		f.Properties["label"] = s.Label(opts.Unit, opts.AreaUnit)
	}
	if s.Text != nil {
		f.Properties["text"] = s.Text.Value
		f.Properties["fontSize"] = s.Text.FontSize
	}
	return f
}

// FeatureCollection returns the shapes of the document as a GeoJSON feature collection.
func (d *Document) FeatureCollection(opts *Options) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, s := range d.shapes {
		if f := s.Feature(opts); f != nil {
			fc.Append(f)
		}
	}
	return fc
}

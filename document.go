package markup

import (
	"maps"
	"slices"
)

// Document is the ordered collection of shapes, bottom-most first, together with the trash map of deleted shapes that were persisted before and must be hard-deleted on the next save.
type Document struct {
	Size   Size
	shapes []*Shape
	trash  map[string]*Shape
}

// NewDocument returns an empty document of the given size.
func NewDocument(size Size) *Document {
	return &Document{
		Size:  size,
		trash: map[string]*Shape{},
	}
}

// Shapes returns the shapes in z-order. The slice must not be modified.
func (d *Document) Shapes() []*Shape {
	return d.shapes
}

// Len returns the number of shapes.
func (d *Document) Len() int {
	return len(d.shapes)
}

// Index returns the position of the shape with the given id, or -1.
func (d *Document) Index(id string) int {
	return slices.IndexFunc(d.shapes, func(s *Shape) bool {
		return s.ID == id
	})
}

// Find returns the shape with the given id, or nil.
func (d *Document) Find(id string) *Shape {
	if i := d.Index(id); i != -1 {
		return d.shapes[i]
	}
	return nil
}

// Append adds a shape on top.
func (d *Document) Append(s *Shape) {
	d.shapes = append(d.shapes, s)
}

// Insert adds a shape at position i, clamped to the collection.
func (d *Document) Insert(i int, s *Shape) {
	i = max(0, min(i, len(d.shapes)))
	d.shapes = slices.Insert(d.shapes, i, s)
}

// Remove removes the shape with the given id and returns it with its former position.
func (d *Document) Remove(id string) (*Shape, int) {
	i := d.Index(id)
	if i == -1 {
		return nil, -1
	}
	s := d.shapes[i]
	d.shapes = slices.Delete(d.shapes, i, i+1)
	return s, i
}

// Snapshots returns snapshots of the shapes with the given ids in z-order. Unknown ids are skipped.
func (d *Document) Snapshots(ids ...string) []Snapshot {
	var snaps []Snapshot
	for i, s := range d.shapes {
		if slices.Contains(ids, s.ID) {
			snaps = append(snaps, s.Snapshot(i))
		}
	}
	return snaps
}

// Base returns the calibration base, or nil.
func (d *Document) Base() *Shape {
	for _, s := range d.shapes {
		if s.Kind == RulerBaseKind {
			return s
		}
	}
	return nil
}

// Calibration returns the calibration defined by the base.
func (d *Document) Calibration() Calibration {
	return CalibrationFrom(d.Base())
}

// RecalculateAll recomputes the measurement of every ruler and area shape.
func (d *Document) RecalculateAll() {
	cal := d.Calibration()
	for _, s := range d.shapes {
		s.RecomputeMeasurement(cal)
	}
}

// Trash stores a copy of s as deleted.
func (d *Document) Trash(s *Shape) {
	t := s.Copy()
	t.State = DeletedState
	d.trash[t.ID] = t
}

// Untrash drops the shape with the given id from the trash map.
func (d *Document) Untrash(id string) {
	delete(d.trash, id)
}

// Trashed returns the sorted ids of the trash map.
func (d *Document) Trashed() []string {
	return slices.Sorted(maps.Keys(d.trash))
}

// ClearTrash empties the trash map.
func (d *Document) ClearTrash() {
	clear(d.trash)
}

// Modified returns true if the document differs from its last saved state.
func (d *Document) Modified() bool {
	if 0 < len(d.trash) {
		return true
	}
	for _, s := range d.shapes {
		if s.State == NewState || s.State == EditedState {
			return true
		}
	}
	return false
}

// Reset removes all shapes and empties the trash map.
func (d *Document) Reset() {
	d.shapes = nil
	clear(d.trash)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	e := NewDocument(d.Size)
	e.shapes = make([]*Shape, len(d.shapes))
	for i, s := range d.shapes {
		e.shapes[i] = s.Copy()
	}
	for id, s := range d.trash {
		e.trash[id] = s.Copy()
	}
	return e
}

package markup

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ExportRecord is the wire record of one shape together with its identity.
type ExportRecord struct {
	ID    string
	Kind  Kind
	State Lifecycle
	Record
}

// ExportSet is everything a persistence layer needs to store a canvas: the wire records of all live shapes and the ids of the persisted shapes that were deleted since the last save.
type ExportSet struct {
	ID        uuid.UUID
	Size      Size
	Records   []ExportRecord
	Deleted   []string
	CreatedAt time.Time
}

// Export returns the export set of a document. Shapes without wire form are left out.
func Export(doc *Document) ExportSet {
	set := ExportSet{
		ID:        uuid.New(),
		Size:      doc.Size,
		Deleted:   doc.Trashed(),
		CreatedAt: time.Now(),
	}
	for _, s := range doc.Shapes() {
		rec, ok := Encode(s, doc.Size)
		if !ok {
			Logger().Debug("shape not exported", "id", s.ID, "kind", s.Kind)
			continue
		}
		set.Records = append(set.Records, ExportRecord{
			ID:     s.ID,
			Kind:   s.Kind,
			State:  s.State,
			Record: rec,
		})
	}
	return set
}

// Saver stores an export set.
type Saver interface {
	Save(context.Context, ExportSet) error
}

// SaverFunc is a function that implements Saver.
type SaverFunc func(context.Context, ExportSet) error

// Save implements Saver.
func (f SaverFunc) Save(ctx context.Context, set ExportSet) error {
	return f(ctx, set)
}

// Save commits the shape being drawn and stores a copy of the canvas through saver on its own goroutine, so that input is not blocked. On success the saved shapes that were not changed in the meantime become unchanged, the saved deletions leave the trash map and the history is cleared. The returned channel receives the result and is closed.
func (c *Canvas) Save(ctx context.Context, saver Saver) <-chan error {
	c.mu.Lock()
	c.commitPending()
	doc := c.doc.Clone()
	c.unlock()

	done := make(chan error, 1)
	go func() {
		defer close(done)
		if err := ctx.Err(); err != nil {
			done <- err
			return
		}
		set := Export(doc)
		if err := saver.Save(ctx, set); err != nil {
			done <- err
			return
		}
		c.saved(set)
		done <- nil
	}()
	return done
}

// saved makes the state of a stored export set the new baseline.
func (c *Canvas) saved(set ExportSet) {
	c.mu.Lock()
	defer c.unlock()
	for _, rec := range set.Records {
		// shapes changed while saving keep their state
		s := c.doc.Find(rec.ID)
		if s == nil || s.State != rec.State {
			continue
		} else if live, ok := Encode(s, c.doc.Size); !ok || live != rec.Record {
			continue
		}
		s.State = UnchangedState
	}
	for _, id := range set.Deleted {
		if s := c.doc.Find(id); s != nil {
			// restored while saving, the store no longer has it
			s.State = NewState
			continue
		}
		c.doc.Untrash(id)
	}

	u, r := c.undo.UndoCount(), c.undo.RedoCount()
	c.undo.Clear()
	c.queueStacks(u, r)
	Logger().Info("saved", "set", set.ID, "shapes", len(set.Records), "deleted", len(set.Deleted))
}

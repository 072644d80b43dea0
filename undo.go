package markup

import (
	"cmp"
	"slices"
)

// Operation is the kind of mutation recorded by an undo entry.
type Operation int

// see Operation
const (
	CreateOp Operation = iota
	UpdateOp
	DeleteOp
)

func (op Operation) String() string {
	switch op {
	case CreateOp:
		return "create"
	case UpdateOp:
		return "update"
	case DeleteOp:
		return "delete"
	}
	return "unknown"
}

// Entry is one reversible step: the snapshots of all shapes affected by a single operation. For Create and Delete entries the snapshots hold the shapes as created or before deletion, for Update entries the state before the update.
type Entry struct {
	Op        Operation
	Snapshots []Snapshot
}

// involvesBase returns true if the calibration base is part of the entry.
func (e Entry) involvesBase() bool {
	return slices.ContainsFunc(e.Snapshots, func(s Snapshot) bool {
		return s.Kind() == RulerBaseKind
	})
}

// UndoEngine keeps the undo and redo stacks of a canvas.
type UndoEngine struct {
	undo, redo []Entry
}

// Record pushes an entry onto the undo stack and clears the redo stack. Entries without snapshots are ignored.
func (u *UndoEngine) Record(e Entry) bool {
	if len(e.Snapshots) == 0 {
		return false
	}
	u.undo = append(u.undo, e)
	u.redo = u.redo[:0]
	return true
}

// UndoCount returns the size of the undo stack.
func (u *UndoEngine) UndoCount() int {
	return len(u.undo)
}

// RedoCount returns the size of the redo stack.
func (u *UndoEngine) RedoCount() int {
	return len(u.redo)
}

// Clear empties both stacks.
func (u *UndoEngine) Clear() {
	u.undo = nil
	u.redo = nil
}

// Undo reverts the most recent entry on doc and moves its inverse onto the redo stack. It returns false if there is nothing to undo.
func (u *UndoEngine) Undo(doc *Document) (Entry, bool) {
	if len(u.undo) == 0 {
		return Entry{}, false
	}
	e := u.undo[len(u.undo)-1]
	u.undo = u.undo[:len(u.undo)-1]
	u.redo = append(u.redo, apply(doc, e, true))
	Logger().Debug("undo", "op", e.Op, "shapes", len(e.Snapshots))
	return e, true
}

// Redo re-applies the most recently undone entry on doc and moves it back onto the undo stack. It returns false if there is nothing to redo.
func (u *UndoEngine) Redo(doc *Document) (Entry, bool) {
	if len(u.redo) == 0 {
		return Entry{}, false
	}
	e := u.redo[len(u.redo)-1]
	u.redo = u.redo[:len(u.redo)-1]
	u.undo = append(u.undo, apply(doc, e, false))
	Logger().Debug("redo", "op", e.Op, "shapes", len(e.Snapshots))
	return e, true
}

// apply reverts (undo) or re-applies (redo) the entry on doc and returns the entry for the opposite stack.
func apply(doc *Document, e Entry, undo bool) Entry {
	inverse := Entry{Op: e.Op}
	switch {
	case e.Op == UpdateOp:
		for _, snap := range e.Snapshots {
			i := doc.Index(snap.ID())
			if i == -1 {
				continue
			}
			s := doc.shapes[i]
			inverse.Snapshots = append(inverse.Snapshots, s.Snapshot(i))
			s.Restore(snap)
		}
	case (e.Op == CreateOp) == undo:
		// remove created shapes on undo, deleted shapes on redo
		for _, snap := range e.Snapshots {
			if i := doc.Index(snap.ID()); i != -1 {
				inverse.Snapshots = append(inverse.Snapshots, doc.shapes[i].Snapshot(i))
			}
		}
		slices.SortFunc(inverse.Snapshots, func(a, b Snapshot) int {
			return cmp.Compare(a.index, b.index)
		})
		for _, snap := range inverse.Snapshots {
			s, _ := doc.Remove(snap.ID())
			if e.Op == DeleteOp && s.State != NewState {
				doc.Trash(s)
			}
		}
	default:
		// insert deleted shapes on undo, created shapes on redo
		snaps := slices.Clone(e.Snapshots)
		slices.SortFunc(snaps, func(a, b Snapshot) int {
			return cmp.Compare(a.index, b.index)
		})
		for _, snap := range snaps {
			doc.Insert(snap.index, snap.Shape())
			doc.Untrash(snap.ID())
		}
		inverse.Snapshots = snaps
	}
	if e.involvesBase() {
		doc.RecalculateAll()
	}
	return inverse
}

package markup

import "fmt"

// EventType identifies a canvas notification.
type EventType int

const (
	EventSelect         EventType = iota // a shape was selected, or a drag ended with a single selection
	EventDeselect                        // the selection was cleared
	EventTouch                           // the selection was touched without changing
	EventUndoStack                       // the undo stack size changed
	EventRedoStack                       // the redo stack size changed
	EventShapeChanged                    // an undo or redo was applied
	EventMeasureChanged                  // a measurement shape was committed or changed
	EventLoupeShow
	EventLoupeMove
	EventLoupeHide
	EventDrawEnd     // a shape was committed or rejected, Err is set on rejection
	EventTextRequest // text input is requested at Point
)

func (t EventType) String() string {
	switch t {
	case EventSelect:
		return "Select"
	case EventDeselect:
		return "Deselect"
	case EventTouch:
		return "Touch"
	case EventUndoStack:
		return "UndoStack"
	case EventRedoStack:
		return "RedoStack"
	case EventShapeChanged:
		return "ShapeChanged"
	case EventMeasureChanged:
		return "MeasureChanged"
	case EventLoupeShow:
		return "LoupeShow"
	case EventLoupeMove:
		return "LoupeMove"
	case EventLoupeHide:
		return "LoupeHide"
	case EventDrawEnd:
		return "DrawEnd"
	case EventTextRequest:
		return "TextRequest"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is a notification from the canvas to its host. Shapes are copies and may be retained.
type Event struct {
	Type   EventType
	Shapes []*Shape
	Point  Point
	Count  int // stack size for stack events
	Err    error
}

func (e Event) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%v(%d shapes, %v)", e.Type, len(e.Shapes), e.Err)
	}
	return fmt.Sprintf("%v(%d shapes)", e.Type, len(e.Shapes))
}

// EventListener is called when an event occurs.
type EventListener func(Event)

// On registers an event listener for the specified event type.
func (c *Canvas) On(t EventType, listener EventListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners[t] = append(c.listeners[t], listener)
}

// queue adds an event to be emitted once the canvas is unlocked. Must be called with the lock held.
func (c *Canvas) queue(t EventType, shapes ...*Shape) {
	c.queueEvent(Event{Type: t, Shapes: copyShapes(shapes)})
}

func (c *Canvas) queueEvent(e Event) {
	c.pending = append(c.pending, e)
}

// unlock releases the canvas and emits the queued events, so that listeners may call back into the canvas.
func (c *Canvas) unlock() {
	events := c.pending
	c.pending = nil
	listeners := make([][]EventListener, len(events))
	for i, e := range events {
		listeners[i] = c.listeners[e.Type]
	}
	c.mu.Unlock()

	for i, e := range events {
		for _, listener := range listeners[i] {
			listener(e)
		}
	}
}

func copyShapes(shapes []*Shape) []*Shape {
	if len(shapes) == 0 {
		return nil
	}
	cp := make([]*Shape, len(shapes))
	for i, s := range shapes {
		cp[i] = s.Copy()
	}
	return cp
}

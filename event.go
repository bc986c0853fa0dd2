package flatui

import "strings"

// Event is a bitmask of what happened to an element this frame.
type Event uint32

const (
	EventNone       Event = 0
	EventWentUp     Event = 1 << 0 // Pointer released over the element that got the press
	EventWentDown   Event = 1 << 1 // Pointer pressed over the element
	EventIsDown     Event = 1 << 2 // Pointer held on the element that got the press
	EventStartDrag  Event = 1 << 3 // Drag started from the element
	EventEndDrag    Event = 1 << 4 // Drag of the element ended
	EventIsDragging Event = 1 << 5 // Element is being dragged
	EventHover      Event = 1 << 6 // Pointer over the element, or element focused
)

var eventNames = []struct {
	ev   Event
	name string
}{
	{EventWentUp, "WentUp"},
	{EventWentDown, "WentDown"},
	{EventIsDown, "IsDown"},
	{EventStartDrag, "StartDrag"},
	{EventEndDrag, "EndDrag"},
	{EventIsDragging, "IsDragging"},
	{EventHover, "Hover"},
}

func (e Event) String() string {
	if e == EventNone {
		return "None"
	}
	var parts []string
	for _, n := range eventNames {
		if e&n.ev != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Has reports whether all bits of other are set.
func (e Event) Has(other Event) bool {
	return e&other == other && other != EventNone
}

// CheckEvent marks the current group interactive and returns its events.
//
// While measuring it only records interest and returns EventNone. While
// placing, pointers are tested against the group's rectangle; the focused
// element gets the gamepad event. With dragOnly set, press and release are
// not reported but drags still are.
func (ctx *Context) CheckEvent(dragOnly bool) Event {
	el := ctx.currentElement()
	if el == nil {
		return EventNone
	}
	if ctx.measuring {
		el.Interactive = true
		return EventNone
	}
	if !el.Interactive || el.ID == sentinelID {
		return EventNone
	}
	return ctx.arbitrate(el.ID, Rect{Pos: ctx.cur.position, Size: ctx.cur.size}, dragOnly)
}

// arbitrate resolves the pointer and focus events of element id.
func (ctx *Context) arbitrate(id ID, rect Rect, dragOnly bool) Event {
	p := ctx.p
	for i := 0; i <= ctx.maxPointer; i++ {
		ptr := &ctx.input.Pointers[i]
		btn := ptr.Button

		if p.dragging(i, id) {
			if btn.WentUp() || !btn.IsDown() {
				p.clearDrag()
				ctx.claim(i)
				return EventEndDrag
			}
			ctx.claim(i)
			return EventIsDragging
		}

		hit := ctx.CanReceivePointerEvent(id) && ctx.clipPointerInside[i] && rect.Contains(ptr.Pos)
		if !hit && !ctx.IsPointerCaptured(id) {
			continue
		}

		ev := EventNone
		if !dragOnly {
			if btn.WentDown() {
				p.pointerElement[i] = id
				ev |= EventWentDown
			}
			if btn.WentUp() && p.pointerElement[i] == id {
				ev |= EventWentUp
			} else if btn.IsDown() && p.pointerElement[i] == id {
				ev |= EventIsDown
				if p.focus != id {
					ctx.ReleaseInput()
					uiLogger.Debug("focus moved by pointer", "from", p.focus, "to", id, "pointer", i)
					p.focus = id
				}
			}
		}

		if p.draggingPointer != i {
			if btn.WentDown() {
				p.dragStart = ptr.Pos
			}
			thr := ctx.dragThreshold
			if btn.IsDown() && rect.Contains(p.dragStart) &&
				!InRange(ptr.Pos, p.dragStart.Sub(thr), p.dragStart.Add(thr)) {
				ev |= EventStartDrag
				uiLogger.Debug("drag start", "id", id, "pointer", i, "from", p.dragStart)
				p.dragStart = ptr.Pos
				p.draggingPointer = i
				p.dragElement = id
			}
		}

		if ev == EventNone {
			ev = EventHover
		}
		ctx.claim(i)
		return ev
	}

	if p.focus == id {
		ctx.gamepadHasFocus = true
		return ctx.gamepadEvent
	}
	return EventNone
}

// resetPresses forgets the previous press of every pointer pressed this
// frame, so a press outside all elements does not keep an older element's
// press or drag origin alive.
func (ctx *Context) resetPresses() {
	p := ctx.p
	for i := 0; i <= ctx.maxPointer; i++ {
		ptr := ctx.input.Pointers[i]
		if !ptr.Button.WentDown() {
			continue
		}
		p.pointerElement[i] = NoID
		if p.draggingPointer < 0 {
			p.dragStart = ptr.Pos
		}
	}
}

// claim records that pointer i produced the current event.
func (ctx *Context) claim(i int) {
	ctx.gamepadHasFocus = true
	ctx.currentPointer = i
}

// CapturePointer routes all pointer events to id until released.
// The pointer that produced the last event is bound to id.
func (ctx *Context) CapturePointer(id ID) {
	if ctx.p.pointerCapture != id {
		uiLogger.Debug("pointer capture", "from", ctx.p.pointerCapture, "to", id)
	}
	ctx.p.pointerCapture = id
	if ctx.currentPointer >= 0 {
		ctx.p.pointerElement[ctx.currentPointer] = id
	}
}

// ReleasePointer ends pointer capture.
func (ctx *Context) ReleasePointer() {
	ctx.CapturePointer(NoID)
}

// CanReceivePointerEvent reports whether id may get pointer events: nobody
// holds the capture, or id does.
func (ctx *Context) CanReceivePointerEvent(id ID) bool {
	return ctx.p.pointerCapture == NoID || ctx.p.pointerCapture == id
}

// IsPointerCaptured reports whether id holds the pointer capture.
func (ctx *Context) IsPointerCaptured(id ID) bool {
	return id != NoID && ctx.p.pointerCapture == id
}

// CaptureInput routes text input to id and starts recording text events.
// Capturing NoID releases input.
func (ctx *Context) CaptureInput(id ID) {
	if id == NoID {
		ctx.ReleaseInput()
		return
	}
	uiLogger.Debug("input capture", "from", ctx.p.inputCapture, "to", id)
	ctx.p.inputCapture = id
	if !ctx.input.IsRecordingTextInput() {
		ctx.input.RecordTextInput(true)
	}
	ctx.input.StartTextInput()
}

// ReleaseInput commits any edit in progress, drops focus and stops text
// input.
func (ctx *Context) ReleaseInput() {
	if s := ctx.p.session; s != nil && s.Active() {
		s.Commit()
	}
	if ctx.p.inputCapture != NoID {
		uiLogger.Debug("input released", "id", ctx.p.inputCapture)
	}
	ctx.p.inputCapture = NoID
	ctx.p.focus = NoID
	ctx.input.RecordTextInput(false)
	ctx.input.StopTextInput()
}

// IsInputCaptured reports whether id receives text input.
func (ctx *Context) IsInputCaptured(id ID) bool {
	return id != NoID && ctx.p.inputCapture == id
}

// Focus returns the focused element.
func (ctx *Context) Focus() ID {
	return ctx.p.focus
}

// SetFocus moves focus to id.
func (ctx *Context) SetFocus(id ID) {
	ctx.p.focus = id
}

// PointerPosition returns the position of the pointer that produced the
// last event, or of the mouse.
func (ctx *Context) PointerPosition() Vec2i {
	i := max(ctx.currentPointer, 0)
	return ctx.input.Pointers[i].Pos
}

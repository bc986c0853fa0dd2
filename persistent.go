package flatui

// persistentState is the interaction state that survives across frames.
// It is owned by the Engine; each frame's Context mutates it in place.
type persistentState struct {
	// Element that last received a press, per pointer.
	pointerElement [MaxPointers]ID

	focus          ID // Keyboard/gamepad focus
	inputCapture   ID // Element receiving text input
	pointerCapture ID // Element receiving all pointer events

	// An activate button pressed while input was captured. Its events are
	// dropped until every activate button is up again.
	activateHeld bool

	dragStart       Vec2i
	draggingPointer int // -1 while no drag is active
	dragElement     ID

	session EditSession
}

func newPersistentState(session EditSession) persistentState {
	p := persistentState{session: session}
	p.clearDrag()
	return p
}

// clearDrag forgets the active drag, if any.
func (p *persistentState) clearDrag() {
	p.dragStart = Vec2i{X: -1, Y: -1}
	p.draggingPointer = -1
	p.dragElement = NoID
}

// dragging reports whether element id is being dragged by pointer i.
func (p *persistentState) dragging(i int, id ID) bool {
	return p.draggingPointer == i && p.dragElement == id
}

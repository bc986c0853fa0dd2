package flatui

// MaxPointers is the number of simultaneous pointers tracked.
// Pointer 0 is the mouse; the rest are touch contacts.
const MaxPointers = 10

// Button holds the level and edge state of one button for the current frame.
type Button struct {
	down     bool
	wentDown bool
	wentUp   bool
}

// Set updates the level and derives the edges.
func (b *Button) Set(down bool) {
	if down && !b.down {
		b.wentDown = true
	}
	if !down && b.down {
		b.wentUp = true
	}
	b.down = down
}

// IsDown returns true while the button is held.
func (b Button) IsDown() bool { return b.down }

// WentDown returns true on the frame the button was pressed.
func (b Button) WentDown() bool { return b.wentDown }

// WentUp returns true on the frame the button was released.
func (b Button) WentUp() bool { return b.wentUp }

func (b *Button) clearEdges() {
	b.wentDown = false
	b.wentUp = false
}

// Pointer is one mouse or touch contact.
type Pointer struct {
	Pos    Vec2i
	Delta  Vec2i // Movement since the previous frame
	Button Button
}

// active reports whether the pointer did anything this frame.
func (p Pointer) active() bool {
	return p.Button.IsDown() || p.Button.WentDown() || p.Button.WentUp()
}

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyDelete
	KeyBackspace
	KeyEnter
	KeyEscape
	KeyTab

	// Editing commands; adapters map the platform shortcuts to them.
	KeyCopy
	KeyCut
	KeyPaste

	KeyCount
)

// GamepadButton is a button on a gamepad.
type GamepadButton int

const (
	GamepadLeft GamepadButton = iota
	GamepadRight
	GamepadA
	GamepadButtonCount
)

// Gamepad holds the buttons of one connected gamepad.
type Gamepad struct {
	Buttons [GamepadButtonCount]Button
}

// TextEventKind distinguishes raw text-input events.
type TextEventKind uint8

const (
	TextEventText        TextEventKind = iota // Committed characters
	TextEventComposition                      // IME composition in progress
	TextEventKey                              // Editing key
)

// TextEvent is one raw text-input event.
type TextEvent struct {
	Kind TextEventKind
	Text string // Characters or composition string

	// Composition cursor range within Text.
	Start, Length int

	Key   Key
	Shift bool
}

// InputState holds input state for the current frame.
// This is typically populated by the application from GLFW or similar.
type InputState struct {
	Pointers [MaxPointers]Pointer

	// Mouse wheel, in notches. Positive Y scrolls content up (wheel turned
	// toward the user).
	Wheel Vec2i

	keys     [KeyCount]Button
	Gamepads []Gamepad

	// Raw text-input queue, filled only while recording
	textEvents []TextEvent
	recording  bool

	// IME state requested by the GUI
	textInputActive bool
	TextInputRect   Rect
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{
		textEvents: make([]TextEvent, 0, 16),
	}
}

// Reset clears per-frame input state.
// Call this at the start of each frame before collecting input.
func (s *InputState) Reset() {
	for i := range s.Pointers {
		s.Pointers[i].Button.clearEdges()
		s.Pointers[i].Delta = Vec2i{}
	}
	for i := range s.keys {
		s.keys[i].clearEdges()
	}
	for g := range s.Gamepads {
		for b := range s.Gamepads[g].Buttons {
			s.Gamepads[g].Buttons[b].clearEdges()
		}
	}
	s.Wheel = Vec2i{}
}

// SetPointerPos moves a pointer and accumulates its delta.
func (s *InputState) SetPointerPos(i int, x, y int) {
	if i < 0 || i >= MaxPointers {
		return
	}
	p := &s.Pointers[i]
	p.Delta = p.Delta.Add(Vec2i{X: x, Y: y}.Sub(p.Pos))
	p.Pos = Vec2i{X: x, Y: y}
}

// SetPointerButton sets the button state of a pointer.
func (s *InputState) SetPointerButton(i int, down bool) {
	if i < 0 || i >= MaxPointers {
		return
	}
	s.Pointers[i].Button.Set(down)
}

// Pointer returns pointer i.
func (s *InputState) Pointer(i int) Pointer {
	if i < 0 || i >= MaxPointers {
		return Pointer{}
	}
	return s.Pointers[i]
}

// SetWheel sets the mouse wheel delta.
func (s *InputState) SetWheel(x, y int) {
	s.Wheel = Vec2i{X: x, Y: y}
}

// SetKey sets key state.
func (s *InputState) SetKey(key Key, down bool) {
	if key <= KeyNone || key >= KeyCount {
		return
	}
	s.keys[key].Set(down)
}

// Key returns the state of a key.
func (s *InputState) Key(key Key) Button {
	if key <= KeyNone || key >= KeyCount {
		return Button{}
	}
	return s.keys[key]
}

// SetGamepadButton sets a button on gamepad pad, growing the list as needed.
func (s *InputState) SetGamepadButton(pad int, b GamepadButton, down bool) {
	if pad < 0 || b < 0 || b >= GamepadButtonCount {
		return
	}
	for len(s.Gamepads) <= pad {
		s.Gamepads = append(s.Gamepads, Gamepad{})
	}
	s.Gamepads[pad].Buttons[b].Set(down)
}

// RecordTextInput starts or stops queueing text events.
func (s *InputState) RecordTextInput(on bool) {
	s.recording = on
	if !on {
		s.textEvents = s.textEvents[:0]
	}
}

// IsRecordingTextInput returns true while text events are queued.
func (s *InputState) IsRecordingTextInput() bool {
	return s.recording
}

// AddTextEvent queues a text event. It is dropped unless recording.
func (s *InputState) AddTextEvent(ev TextEvent) {
	if !s.recording {
		return
	}
	s.textEvents = append(s.textEvents, ev)
}

// TextEvents returns the queued text events.
func (s *InputState) TextEvents() []TextEvent {
	return s.textEvents
}

// ClearTextEvents empties the text event queue.
func (s *InputState) ClearTextEvents() {
	s.textEvents = s.textEvents[:0]
}

// StartTextInput asks the platform to enable the IME.
func (s *InputState) StartTextInput() { s.textInputActive = true }

// StopTextInput asks the platform to disable the IME.
func (s *InputState) StopTextInput() { s.textInputActive = false }

// TextInputActive returns true while the GUI wants IME input.
func (s *InputState) TextInputActive() bool { return s.textInputActive }

// SetTextInputRect tells the platform where the composition is drawn.
func (s *InputState) SetTextInputRect(r Rect) { s.TextInputRect = r }

// maxActivePointer returns the highest pointer index that needs checking.
// The mouse is always checked.
func (s *InputState) maxActivePointer() int {
	highest := 0
	for i := 1; i < MaxPointers; i++ {
		if s.Pointers[i].active() {
			highest = i
		}
	}
	return highest
}

package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/flatui"
)

// GLFWInputAdapter adapts GLFW input to flatui.InputState.
// The mouse drives pointer 0; connected gamepads follow the GLFW joystick
// order.
type GLFWInputAdapter struct {
	window *glfw.Window
	input  *flatui.InputState
}

// NewGLFWInputAdapter creates a new GLFW input adapter.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window: window,
		input:  flatui.NewInputState(),
	}

	// Setup callbacks
	window.SetKeyCallback(adapter.keyCallback)
	window.SetCharCallback(adapter.charCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)

	return adapter
}

// Update starts a new frame of input: it clears the previous frame's edges,
// then polls events and gamepads. Call it once per frame, before Run.
func (a *GLFWInputAdapter) Update() *flatui.InputState {
	a.input.Reset()
	glfw.PollEvents()
	a.pollGamepads()
	return a.input
}

// Input returns the current input state.
func (a *GLFWInputAdapter) Input() *flatui.InputState {
	return a.input
}

func (a *GLFWInputAdapter) pollGamepads() {
	pad := 0
	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if !joy.IsGamepad() {
			continue
		}
		state := joy.GetGamepadState()
		if state == nil {
			continue
		}
		a.input.SetGamepadButton(pad, flatui.GamepadLeft, state.Buttons[glfw.ButtonDpadLeft] == glfw.Press)
		a.input.SetGamepadButton(pad, flatui.GamepadRight, state.Buttons[glfw.ButtonDpadRight] == glfw.Press)
		a.input.SetGamepadButton(pad, flatui.GamepadA, state.Buttons[glfw.ButtonA] == glfw.Press)
		pad++
	}
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if mods&(glfw.ModControl|glfw.ModSuper) != 0 && action == glfw.Press {
		// Shortcuts only feed the text queue; they have no key level.
		if cmd := glfwShortcut(key); cmd != flatui.KeyNone {
			a.input.AddTextEvent(flatui.TextEvent{Kind: flatui.TextEventKey, Key: cmd})
			return
		}
	}

	uiKey := glfwKeyToKey(key)
	if uiKey == flatui.KeyNone {
		return
	}

	switch action {
	case glfw.Press, glfw.Repeat:
		if action == glfw.Press {
			a.input.SetKey(uiKey, true)
		}
		// Editing keys also go to the text queue, repeats included.
		a.input.AddTextEvent(flatui.TextEvent{
			Kind:  flatui.TextEventKey,
			Key:   uiKey,
			Shift: mods&glfw.ModShift != 0,
		})
	case glfw.Release:
		a.input.SetKey(uiKey, false)
	}
}

func (a *GLFWInputAdapter) charCallback(w *glfw.Window, char rune) {
	a.input.AddTextEvent(flatui.TextEvent{
		Kind: flatui.TextEventText,
		Text: string(char),
	})
}

func (a *GLFWInputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}

	switch action {
	case glfw.Press:
		a.input.SetPointerButton(0, true)
	case glfw.Release:
		a.input.SetPointerButton(0, false)
	}
}

func (a *GLFWInputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	// GLFW reports wheel-down as negative.
	wheel := a.input.Wheel
	a.input.SetWheel(wheel.X-int(xoff), wheel.Y-int(yoff))
}

func (a *GLFWInputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	// Cursor positions are in screen coordinates; the UI works in
	// framebuffer pixels.
	ww, _ := w.GetSize()
	fw, _ := w.GetFramebufferSize()
	scale := 1.0
	if ww > 0 {
		scale = float64(fw) / float64(ww)
	}
	a.input.SetPointerPos(0, int(xpos*scale), int(ypos*scale))
}

// glfwShortcut maps Ctrl (or Cmd) shortcuts to editing commands.
func glfwShortcut(key glfw.Key) flatui.Key {
	switch key {
	case glfw.KeyC:
		return flatui.KeyCopy
	case glfw.KeyX:
		return flatui.KeyCut
	case glfw.KeyV:
		return flatui.KeyPaste
	default:
		return flatui.KeyNone
	}
}

// GLFWClipboard is a flatui.Clipboard backed by the window's clipboard.
type GLFWClipboard struct {
	window *glfw.Window
}

// NewGLFWClipboard creates a clipboard for window.
func NewGLFWClipboard(window *glfw.Window) *GLFWClipboard {
	return &GLFWClipboard{window: window}
}

func (c *GLFWClipboard) Text() string {
	return c.window.GetClipboardString()
}

func (c *GLFWClipboard) SetText(text string) {
	c.window.SetClipboardString(text)
}

// glfwKeyToKey maps GLFW keys to flatui keys.
func glfwKeyToKey(key glfw.Key) flatui.Key {
	switch key {
	case glfw.KeyTab:
		return flatui.KeyTab
	case glfw.KeyLeft:
		return flatui.KeyLeft
	case glfw.KeyRight:
		return flatui.KeyRight
	case glfw.KeyUp:
		return flatui.KeyUp
	case glfw.KeyDown:
		return flatui.KeyDown
	case glfw.KeyHome:
		return flatui.KeyHome
	case glfw.KeyEnd:
		return flatui.KeyEnd
	case glfw.KeyDelete:
		return flatui.KeyDelete
	case glfw.KeyBackspace:
		return flatui.KeyBackspace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return flatui.KeyEnter
	case glfw.KeyEscape:
		return flatui.KeyEscape
	default:
		return flatui.KeyNone
	}
}

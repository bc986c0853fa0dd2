package flatui

// Clipboard abstracts system clipboard access.
//
// For GLFW, opengl.GLFWClipboard wraps the window's clipboard string.
type Clipboard interface {
	// Text retrieves text from the clipboard.
	// Returns empty string if the clipboard is empty or holds non-text data.
	Text() string

	// SetText copies text to the clipboard.
	SetText(text string)
}

// MemoryClipboard is a process-local Clipboard for tools and tests.
type MemoryClipboard struct {
	text string
}

func (c *MemoryClipboard) Text() string { return c.text }

func (c *MemoryClipboard) SetText(text string) { c.text = text }

// SetClipboard connects the session to a clipboard. Without one, copy, cut
// and paste keys are ignored.
func (e *TextEdit) SetClipboard(c Clipboard) {
	e.clipboard = c
}

// clipboardKey applies KeyCopy, KeyCut or KeyPaste. The session has no
// selection, so copy and cut act on the whole working text.
func (e *TextEdit) clipboardKey(k Key) {
	if e.clipboard == nil {
		return
	}
	switch k {
	case KeyCopy:
		e.clipboard.SetText(e.text)
	case KeyCut:
		e.clipboard.SetText(e.text)
		e.text = ""
		e.caret = 0
	case KeyPaste:
		e.insert(e.clipboard.Text())
	}
}

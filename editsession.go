package flatui

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// EditMode selects single- or multi-line editing.
type EditMode uint8

const (
	EditSingleLine EditMode = iota
	EditMultipleLines
)

// Span is a rune range of the editing text.
type Span struct {
	Start, Length int
}

// EditSession is the text-editing collaborator behind Edit widgets. At most
// one edit is in progress at a time; it works on a copy of the target
// string and writes it back on Commit.
//
// Caret indices count runes of EditingText, which includes any IME
// composition in progress.
type EditSession interface {
	// Initialize starts editing *text.
	Initialize(id ID, text *string, mode EditMode)

	// Active reports whether an edit is in progress.
	Active() bool

	// ID returns the element being edited, or NoID.
	ID() ID

	// SetBuffer hands the session the current layout of EditingText.
	SetBuffer(buf TextBuffer)

	// SetWindowSize sets the visible size of the edit field in pixels.
	SetWindowSize(size Vec2i)

	// Window returns the visible part of the buffer, kept around the caret.
	Window() Rect

	// SetLanguage sets the language of the edited text.
	SetLanguage(tag language.Tag)

	// Pick returns the caret index nearest to p, in buffer coordinates.
	Pick(p Vec2i) int

	// SetCaret moves the caret.
	SetCaret(index int)

	// Caret returns the caret index.
	Caret() int

	// EditingText returns the working copy with any composition inserted.
	EditingText() (string, bool)

	// InputRegions returns the composition span and its focused part.
	InputRegions() (input, focus Span, ok bool)

	// HandleInputEvents applies text events. It returns true once editing
	// finished, either committed or cancelled.
	HandleInputEvents(events []TextEvent) bool

	// Commit writes the working copy back and ends the edit.
	Commit()
}

// TextEdit is the stock EditSession. Caret movement and deletion step by
// grapheme cluster, and committed text is NFC-normalized.
type TextEdit struct {
	id     ID
	target *string
	mode   EditMode
	text   string
	caret  int // Rune index into text

	composition string
	compFocus   Span // Within composition

	lang       language.Tag
	buffer     TextBuffer
	windowSize Vec2i
	scroll     Vec2i

	clipboard Clipboard
}

// NewTextEdit creates an idle session.
func NewTextEdit() *TextEdit {
	return &TextEdit{lang: language.Und}
}

func (e *TextEdit) Initialize(id ID, text *string, mode EditMode) {
	e.id = id
	e.target = text
	e.mode = mode
	e.text = *text
	e.caret = utf8.RuneCountInString(e.text)
	e.composition = ""
	e.compFocus = Span{}
	e.buffer = nil
	e.scroll = Vec2i{}
	uiLogger.Debug("edit started", "id", id, "mode", mode, "language", e.lang)
}

func (e *TextEdit) Active() bool { return e.id != NoID }

func (e *TextEdit) ID() ID { return e.id }

func (e *TextEdit) SetLanguage(tag language.Tag) { e.lang = tag }

// Language returns the language of the edited text.
func (e *TextEdit) Language() language.Tag { return e.lang }

func (e *TextEdit) SetBuffer(buf TextBuffer) {
	e.buffer = buf
	e.follow()
}

func (e *TextEdit) SetWindowSize(size Vec2i) {
	e.windowSize = size
	e.follow()
}

func (e *TextEdit) Window() Rect {
	return Rect{Pos: e.scroll, Size: e.windowSize}
}

func (e *TextEdit) Pick(p Vec2i) int {
	if e.buffer == nil || e.composition != "" {
		return e.Caret()
	}
	return e.buffer.IndexAt(p)
}

func (e *TextEdit) SetCaret(index int) {
	e.caret = max(0, min(index, utf8.RuneCountInString(e.text)))
	e.follow()
}

func (e *TextEdit) Caret() int {
	if e.composition != "" {
		return e.caret + e.compFocus.Start
	}
	return e.caret
}

func (e *TextEdit) EditingText() (string, bool) {
	if !e.Active() {
		return "", false
	}
	if e.composition == "" {
		return e.text, true
	}
	at := runeOffset(e.text, e.caret)
	return e.text[:at] + e.composition + e.text[at:], true
}

func (e *TextEdit) InputRegions() (input, focus Span, ok bool) {
	if e.composition == "" {
		return Span{}, Span{}, false
	}
	input = Span{Start: e.caret, Length: utf8.RuneCountInString(e.composition)}
	focus = Span{Start: e.caret + e.compFocus.Start, Length: e.compFocus.Length}
	return input, focus, true
}

func (e *TextEdit) HandleInputEvents(events []TextEvent) bool {
	if !e.Active() {
		return false
	}
	for _, ev := range events {
		switch ev.Kind {
		case TextEventText:
			e.composition = ""
			e.compFocus = Span{}
			e.insert(ev.Text)
		case TextEventComposition:
			e.composition = ev.Text
			e.compFocus = Span{Start: ev.Start, Length: ev.Length}
		case TextEventKey:
			if e.composition != "" {
				// The IME owns editing keys while composing.
				continue
			}
			if e.key(ev.Key) {
				return true
			}
		}
	}
	e.follow()
	return false
}

// key applies an editing key and reports whether editing finished.
func (e *TextEdit) key(k Key) bool {
	switch k {
	case KeyLeft:
		e.caret = e.prevBoundary(e.caret)
	case KeyRight:
		e.caret = e.nextBoundary(e.caret)
	case KeyHome:
		e.caret = e.lineStart(e.caret)
	case KeyEnd:
		e.caret = e.lineEnd(e.caret)
	case KeyUp, KeyDown:
		e.moveLine(k)
	case KeyBackspace:
		if prev := e.prevBoundary(e.caret); prev < e.caret {
			e.delete(prev, e.caret)
			e.caret = prev
		}
	case KeyDelete:
		if next := e.nextBoundary(e.caret); next > e.caret {
			e.delete(e.caret, next)
		}
	case KeyEnter:
		if e.mode == EditMultipleLines {
			e.insert("\n")
			return false
		}
		e.Commit()
		return true
	case KeyEscape:
		e.Cancel()
		return true
	case KeyCopy, KeyCut, KeyPaste:
		e.clipboardKey(k)
	}
	return false
}

// Commit writes the working copy back and ends the edit.
func (e *TextEdit) Commit() {
	if !e.Active() {
		return
	}
	*e.target = norm.NFC.String(e.text)
	uiLogger.Debug("edit committed", "id", e.id, "runes", utf8.RuneCountInString(*e.target))
	e.end()
}

// Cancel ends the edit without writing back.
func (e *TextEdit) Cancel() {
	if !e.Active() {
		return
	}
	uiLogger.Debug("edit cancelled", "id", e.id)
	e.end()
}

func (e *TextEdit) end() {
	e.id = NoID
	e.target = nil
	e.composition = ""
	e.compFocus = Span{}
	e.buffer = nil
}

func (e *TextEdit) insert(s string) {
	if e.mode == EditSingleLine {
		s = strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' {
				return -1
			}
			return r
		}, s)
	}
	if s == "" {
		return
	}
	at := runeOffset(e.text, e.caret)
	e.text = e.text[:at] + s + e.text[at:]
	e.caret += utf8.RuneCountInString(s)
}

// delete removes runes [from, to).
func (e *TextEdit) delete(from, to int) {
	a, b := runeOffset(e.text, from), runeOffset(e.text, to)
	e.text = e.text[:a] + e.text[b:]
}

// boundaries returns the rune indices of grapheme cluster boundaries,
// including 0 and the rune count.
func (e *TextEdit) boundaries() []int {
	bounds := []int{0}
	n := 0
	g := uniseg.NewGraphemes(e.text)
	for g.Next() {
		n += len(g.Runes())
		bounds = append(bounds, n)
	}
	return bounds
}

func (e *TextEdit) prevBoundary(i int) int {
	prev := 0
	for _, b := range e.boundaries() {
		if b >= i {
			break
		}
		prev = b
	}
	return prev
}

func (e *TextEdit) nextBoundary(i int) int {
	bounds := e.boundaries()
	for _, b := range bounds {
		if b > i {
			return b
		}
	}
	return bounds[len(bounds)-1]
}

func (e *TextEdit) lineStart(i int) int {
	if e.mode == EditSingleLine {
		return 0
	}
	runes := []rune(e.text)
	for i > 0 && runes[i-1] != '\n' {
		i--
	}
	return i
}

func (e *TextEdit) lineEnd(i int) int {
	runes := []rune(e.text)
	if e.mode == EditSingleLine {
		return len(runes)
	}
	for i < len(runes) && runes[i] != '\n' {
		i++
	}
	return i
}

// moveLine moves the caret one laid-out line up or down.
func (e *TextEdit) moveLine(k Key) {
	if e.mode == EditSingleLine || e.buffer == nil {
		return
	}
	pos := e.buffer.CaretPosition(e.caret)
	if k == KeyUp {
		pos.Y -= e.buffer.LineHeight()
	} else {
		pos.Y += e.buffer.LineHeight()
	}
	// Caret positions sit on the baseline; aim inside the target line.
	pos.Y -= e.buffer.LineHeight() / 2
	if pos.Y < 0 {
		return
	}
	e.caret = max(0, min(e.buffer.IndexAt(pos), utf8.RuneCountInString(e.text)))
}

// follow scrolls the window so the caret stays visible.
func (e *TextEdit) follow() {
	if e.buffer == nil || e.windowSize == (Vec2i{}) {
		return
	}
	c := e.buffer.CaretPosition(e.Caret())
	lh := e.buffer.LineHeight()
	if c.X < e.scroll.X {
		e.scroll.X = c.X
	} else if c.X > e.scroll.X+e.windowSize.X-1 {
		e.scroll.X = c.X - e.windowSize.X + 1
	}
	top := c.Y - lh + lh/4
	if top < e.scroll.Y {
		e.scroll.Y = top
	} else if c.Y+lh/4 > e.scroll.Y+e.windowSize.Y {
		e.scroll.Y = c.Y + lh/4 - e.windowSize.Y
	}
	extra := e.buffer.Size().Sub(e.windowSize)
	e.scroll = clampScroll(e.scroll, Vec2i{X: extra.X + 1, Y: extra.Y})
}

// runeOffset returns the byte offset of rune index i in s.
func runeOffset(s string, i int) int {
	for off := range s {
		if i == 0 {
			return off
		}
		i--
	}
	return len(s)
}

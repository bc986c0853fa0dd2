package flatui

import (
	"math"
	"time"
)

const (
	caretHeightFactor     = 0.8
	underlineOffsetFactor = 0.2
	inputUnderlineWidth   = 1
	focusUnderlineWidth   = 3
)

// Edit draws an editable text field fontSize virtual units high and
// returns true while it is being edited.
//
// size.X of 0 sizes the field to its text; size.Y of 0 (or fontSize) makes
// it single-line. Pressing the field, or activating it while focused,
// starts an edit; Enter commits a single-line edit, Escape cancels, and
// losing focus commits. Only press and release edges start an edit, so a
// key still held from a commit does not reopen it.
func (ctx *Context) Edit(fontSize float32, size Vec2, id ID, text *string) bool {
	ctx.StartGroup(DirHorizontal, AlignBottom, 0, id)
	p := ctx.p
	s := p.session
	editing := s != nil && p.focus == id && p.inputCapture == id && s.ID() == id

	ev := ctx.CheckEvent(false)
	focused := p.focus == id
	activate := s != nil && focused && !editing &&
		ev&(EventWentDown|EventWentUp) != 0

	pixels := ctx.toPixels(fontSize)
	fieldSize := ctx.VirtualToPhysical(size)
	mode := EditMultipleLines
	if fieldSize.Y == 0 || fieldSize.Y == pixels {
		fieldSize.Y = pixels
		mode = EditSingleLine
	}

	shown := *text
	if editing {
		if t, ok := s.EditingText(); ok {
			shown = t
		}
	}
	buf := ctx.shaper().Buffer(shown, pixels, fieldSize, mode == EditMultipleLines)
	if fieldSize.X == 0 {
		fieldSize.X = buf.Size().X
	}

	window := Rect{Size: fieldSize}
	if editing {
		s.SetBuffer(buf)
		s.SetWindowSize(fieldSize)
		window = s.Window()
		window.Size = fieldSize
	}
	origin := ctx.label(id.Child("text"), buf, window)

	if ctx.measuring || !(editing || activate) {
		ctx.EndGroup()
		return editing
	}

	if activate {
		s.Initialize(id, text, mode)
		s.SetLanguage(ctx.engine.config.languageTag())
		s.SetBuffer(buf)
		s.SetWindowSize(fieldSize)
		ctx.CaptureInput(id)
	}
	if ev&EventWentDown != 0 {
		s.SetCaret(s.Pick(ctx.PointerPosition().Sub(origin)))
	}

	if input, focus, ok := s.InputRegions(); ok && input.Length > 0 {
		ctx.underline(buf, origin, input, pixels, inputUnderlineWidth)
		target := input
		if focus.Length > 0 {
			ctx.underline(buf, origin, focus, pixels, focusUnderlineWidth)
			target = focus
		}
		a := origin.Add(buf.CaretPosition(target.Start))
		b := origin.Add(buf.CaretPosition(target.Start + target.Length))
		ctx.input.SetTextInputRect(Rect{Pos: a, Size: b.Sub(a)})
	}

	ctx.drawCaret(buf, origin, window, s.Caret(), pixels)

	finished := s.HandleInputEvents(ctx.input.TextEvents())
	ctx.input.ClearTextEvents()
	if finished {
		ctx.ReleaseInput()
	}

	ctx.EndGroup()
	return true
}

// underline draws a line under the runes of span.
func (ctx *Context) underline(buf TextBuffer, origin Vec2i, span Span, fontSize, width int) {
	start := buf.CaretPosition(span.Start)
	end := buf.CaretPosition(span.Start + span.Length)
	start.Y += int(float32(fontSize) * underlineOffsetFactor)
	size := Vec2i{X: end.X - start.X, Y: width}
	ctx.drawList.AddRect(origin.Add(start), size, ColorWhite)
}

// drawCaret draws a blinking caret at index when it is inside window.
func (ctx *Context) drawCaret(buf TextBuffer, origin Vec2i, window Rect, index, fontSize int) {
	c := buf.CaretPosition(index)
	height := int(float32(fontSize) * caretHeightFactor)
	if c.X < window.Pos.X || c.X > window.Pos.X+window.Size.X ||
		c.Y < window.Pos.Y || c.Y-height > window.Pos.Y+window.Size.Y {
		return
	}
	if !ctx.caretVisible() {
		return
	}
	ctx.drawList.AddRect(Vec2i{X: origin.X + c.X, Y: origin.Y + c.Y - height}, Vec2i{X: 1, Y: height}, ctx.textColor)
}

// caretVisible reports the blink phase at the engine clock.
func (ctx *Context) caretVisible() bool {
	ms := float64(ctx.engine.clock() / time.Millisecond)
	return math.Sin(ms*ctx.engine.config.CaretBlinkRate) > 0
}

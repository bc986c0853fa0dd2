package flatui

import "fmt"

// StartSlider makes the current group a slider along dir. value, in [0, 1],
// follows the pointer while the group is pressed or dragged. The knob is
// assumed square, as thick as the bar.
//
// Call it right after StartGroup; draw the bar and knob, then EndSlider.
func (ctx *Context) StartSlider(dir Direction, value *float32) {
	if dir != DirHorizontal && dir != DirVertical {
		panic(fmt.Errorf("%w: slider needs horizontal or vertical, got %v", ErrInvalidDirection, dir))
	}
	ev := ctx.CheckEvent(false)
	if ctx.measuring {
		return
	}
	el := ctx.currentElement()
	if el == nil {
		return
	}

	if ev&EventStartDrag != 0 {
		ctx.CapturePointer(el.ID)
	} else if ev&EventEndDrag != 0 {
		ctx.ReleasePointer()
	}
	if ev&(EventIsDragging|EventWentDown|EventIsDown) == 0 {
		return
	}

	ptr := ctx.PointerPosition()
	pos, size := ctx.cur.position, ctx.cur.size
	along := float32(ptr.X-pos.X) - float32(size.Y)*0.5
	travel := float32(size.X - size.Y)
	if dir == DirVertical {
		along = float32(ptr.Y-pos.Y) - float32(size.X)*0.5
		travel = float32(size.Y - size.X)
	}

	v := float32(0)
	if travel > 0 {
		v = clampf(along/travel, 0, 1)
	}
	if v != *value {
		uiLogger.Debug("slider value changed", "id", el.ID, "value", v)
	}
	*value = v
}

// EndSlider closes the slider opened by StartSlider.
func (ctx *Context) EndSlider() {}

// Slider opens a group holding a slider and returns a function that runs
// body (which draws the bar and knob) inside it.
func (ctx *Context) Slider(dir Direction, value *float32, id ID) func(body func()) {
	ctx.StartGroup(DirOverlay, AlignCenter, 0, id)
	ctx.StartSlider(dir, value)
	return func(body func()) {
		body()
		ctx.EndSlider()
		ctx.EndGroup()
	}
}

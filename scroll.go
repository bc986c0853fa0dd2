package flatui

import (
	"fmt"
	"math"
)

// StartScroll turns the current group into a scroll area of the given
// virtual size. offset is the caller-owned scroll position in pixels; it is
// updated by pointer drags and the wheel and clamped to the content.
//
// Call it right after StartGroup and pair it with EndScroll before the
// EndGroup. Scroll areas do not nest.
func (ctx *Context) StartScroll(size Vec2, offset *Vec2i) {
	psize := ctx.VirtualToPhysical(size)
	if ctx.measuring {
		if ctx.inScroll {
			panic(fmt.Errorf("%w: StartScroll inside a scroll area", ErrNestedScroll))
		}
		ctx.inScroll = true
		ctx.scrollViewport = psize
		return
	}

	ctx.inScroll = true
	ctx.clipRect = Rect{Pos: ctx.cur.position, Size: psize}
	ctx.drawList.PushClipRect(ctx.clipRect)
	ctx.cur.size = psize

	el := ctx.currentElement()
	if el != nil && el.ID != sentinelID {
		ctx.scrollEvents(el, offset)
	}

	for i := 0; i <= ctx.maxPointer; i++ {
		if !ctx.clipRect.Contains(ctx.input.Pointers[i].Pos) {
			ctx.clipPointerInside[i] = false
		}
	}
	ctx.cur.position = ctx.cur.position.Sub(*offset)
}

// scrollEvents applies drag and wheel input to offset.
func (ctx *Context) scrollEvents(el *Element, offset *Vec2i) {
	// Scroll areas always take drags, whether or not their content called
	// CheckEvent.
	interactive := el.Interactive
	el.Interactive = true
	ev := ctx.CheckEvent(true)
	el.Interactive = interactive

	if ev&EventStartDrag != 0 {
		ctx.CapturePointer(el.ID)
	}

	var delta Vec2i
	speed := ctx.scrollSpeedDrag
	mouse := ctx.input.Pointers[0]
	switch {
	case ctx.IsPointerCaptured(el.ID):
		if ev&EventEndDrag != 0 {
			ctx.ReleasePointer()
		}
		delta = ctx.input.Pointers[max(ctx.currentPointer, 0)].Delta
	case ctx.CanReceivePointerEvent(el.ID) && ctx.clipRect.Contains(mouse.Pos):
		delta = ctx.input.Wheel
		speed = -ctx.scrollSpeedWheel
	}

	if delta != (Vec2i{}) {
		*offset = offset.Sub(scaleDelta(delta, speed))
	}
	*offset = clampScroll(*offset, el.ExtraSize)
}

// EndScroll closes the scroll area opened by StartScroll.
func (ctx *Context) EndScroll() {
	if ctx.measuring {
		if el := ctx.currentElement(); el != nil {
			el.ExtraSize = ctx.cur.size.Sub(ctx.scrollViewport).Max(Vec2i{})
		}
		ctx.cur.size = ctx.scrollViewport
		ctx.inScroll = false
		return
	}
	for i := range ctx.clipPointerInside {
		ctx.clipPointerInside[i] = true
	}
	ctx.drawList.PopClipRect()
	ctx.inScroll = false
}

// clampScroll keeps offset within [0, extra] on both axes.
func clampScroll(offset, extra Vec2i) Vec2i {
	return offset.Max(Vec2i{}).Min(extra.Max(Vec2i{}))
}

func scaleDelta(d Vec2i, speed float32) Vec2i {
	return Vec2i{
		X: int(math.Round(float64(float32(d.X) * speed))),
		Y: int(math.Round(float64(float32(d.Y) * speed))),
	}
}

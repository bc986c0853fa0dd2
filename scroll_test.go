package flatui_test

import (
	"testing"

	"github.com/go-theft-auto/flatui"
)

// scrollList is a 100x100 scroll area over ten 100x50 rows.
func scrollList(offset *flatui.Vec2i, rowPos *[]flatui.Vec2i) func(ctx *flatui.Context) {
	return func(ctx *flatui.Context) {
		ctx.Group(flatui.LayoutVerticalLeft, 0, flatui.HashID("list"))(func() {
			ctx.StartScroll(flatui.Vec2{X: 100, Y: 100}, offset)
			for i := range 10 {
				ctx.CustomElement(flatui.Vec2{X: 100, Y: 50}, flatui.IntID(i), func(pos, _ flatui.Vec2i) {
					if rowPos != nil {
						*rowPos = append(*rowPos, pos)
					}
				})
			}
			ctx.EndScroll()
		})
	}
}

func TestScrollMeasuresViewport(t *testing.T) {
	ui, _ := newTestEngine(t)
	var offset flatui.Vec2i

	frame := run(t, ui, flatui.NewInputState(), scrollList(&offset, nil))
	list := frame.Measure.Elements[0]
	if list.Size != (flatui.Vec2i{X: 100, Y: 100}) {
		t.Errorf("scroll area size %v, want viewport 100x100", list.Size)
	}
	if list.ExtraSize != (flatui.Vec2i{Y: 400}) {
		t.Errorf("extra size %v, want 0x400", list.ExtraSize)
	}
}

func TestScrollWheelClamps(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()
	var offset flatui.Vec2i
	var rows []flatui.Vec2i
	build := scrollList(&offset, &rows)

	input.SetPointerPos(0, 50, 50)
	input.SetWheel(0, 1)
	run(t, ui, input, build)
	if offset != (flatui.Vec2i{Y: 16}) {
		t.Fatalf("one notch: offset %v, want 0x16", offset)
	}

	rows = rows[:0]
	input.Reset()
	run(t, ui, input, build)
	if len(rows) == 0 || rows[0] != (flatui.Vec2i{Y: -16}) {
		t.Errorf("first row at %v, want shifted by the offset", rows)
	}

	input.Reset()
	input.SetWheel(0, 100)
	run(t, ui, input, build)
	if offset != (flatui.Vec2i{Y: 400}) {
		t.Errorf("offset %v, want clamped to 0x400", offset)
	}

	input.Reset()
	input.SetWheel(0, -100)
	run(t, ui, input, build)
	if offset != (flatui.Vec2i{}) {
		t.Errorf("offset %v, want clamped to 0", offset)
	}
}

func TestScrollWheelNeedsPointerInside(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()
	var offset flatui.Vec2i

	input.SetPointerPos(0, 500, 500)
	input.SetWheel(0, 3)
	run(t, ui, input, scrollList(&offset, nil))
	if offset != (flatui.Vec2i{}) {
		t.Errorf("offset %v, want unchanged", offset)
	}
}

func TestScrollDrag(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()
	offset := flatui.Vec2i{Y: 100}
	build := scrollList(&offset, nil)

	input.SetPointerPos(0, 10, 10)
	input.SetPointerButton(0, true)
	run(t, ui, input, build)
	if offset.Y != 100 {
		t.Fatalf("press scrolled to %v", offset)
	}

	// 20 pixels down, past the threshold: the drag starts and the content
	// follows at twice the pointer speed.
	input.Reset()
	input.SetPointerPos(0, 10, 30)
	run(t, ui, input, build)
	if offset.Y != 60 {
		t.Fatalf("offset %v after drag, want 0x60", offset)
	}
	if ui.PointerCapture() != flatui.HashID("list") {
		t.Fatalf("scroll area did not capture the pointer")
	}

	// Still captured outside the viewport.
	input.Reset()
	input.SetPointerPos(0, 10, 500)
	run(t, ui, input, build)
	if offset.Y != 0 {
		t.Errorf("offset %v, want clamped to 0", offset)
	}

	input.Reset()
	input.SetPointerButton(0, false)
	run(t, ui, input, build)
	if ui.PointerCapture() != flatui.NoID {
		t.Errorf("capture %v not released", ui.PointerCapture())
	}
}

func TestScrollExcludesPointerOutsideViewport(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()
	offset := flatui.Vec2i{}

	// Row 3 sits at y=150..200, below the 100 pixel viewport.
	var ev flatui.Event
	build := func(ctx *flatui.Context) {
		ctx.Group(flatui.LayoutVerticalLeft, 0, flatui.HashID("list"))(func() {
			ctx.StartScroll(flatui.Vec2{X: 100, Y: 100}, &offset)
			for i := range 10 {
				e := box(ctx, flatui.IntID(i), 100, 50)
				if i == 3 && !ctx.Measuring() {
					ev = e
				}
			}
			ctx.EndScroll()
		})
	}

	input.SetPointerPos(0, 10, 160)
	run(t, ui, input, build)
	if ev != flatui.EventNone {
		t.Errorf("row outside the viewport got %v, want None", ev)
	}
}

func TestNestedScrollPanics(t *testing.T) {
	ui, _ := newTestEngine(t)
	var a, b flatui.Vec2i

	expectPanic(t, flatui.ErrNestedScroll, func() {
		_, _ = ui.Run(flatui.NewInputState(), func(ctx *flatui.Context) {
			ctx.Group(flatui.LayoutVerticalLeft, 0, idA)(func() {
				ctx.StartScroll(flatui.Vec2{X: 100, Y: 100}, &a)
				ctx.Group(flatui.LayoutVerticalLeft, 0, idB)(func() {
					ctx.StartScroll(flatui.Vec2{X: 50, Y: 50}, &b)
					ctx.EndScroll()
				})
				ctx.EndScroll()
			})
		})
	})
}

package flatui_test

import (
	"testing"

	"github.com/go-theft-auto/flatui"
)

func TestSliderFollowsPointer(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()
	id := flatui.HashID("volume")

	// A 110x10 bar: the knob is 10 wide, so the value spans x 5..105.
	value := float32(0.25)
	build := func(ctx *flatui.Context) {
		ctx.Slider(flatui.DirHorizontal, &value, id)(func() {
			ctx.CustomElement(flatui.Vec2{X: 110, Y: 10}, id.Child("bar"), nil)
		})
	}

	input.SetPointerPos(0, 500, 500)
	run(t, ui, input, build)
	if value != 0.25 {
		t.Fatalf("value changed without input: %v", value)
	}

	input.Reset()
	input.SetPointerPos(0, 55, 5)
	input.SetPointerButton(0, true)
	run(t, ui, input, build)
	if value != 0.5 {
		t.Errorf("press at the middle: value %v, want 0.5", value)
	}

	input.Reset()
	input.SetPointerPos(0, 105, 5)
	run(t, ui, input, build)
	if value != 1 {
		t.Errorf("drag to the end: value %v, want 1", value)
	}
	if ui.PointerCapture() != id {
		t.Errorf("slider did not capture the pointer on drag")
	}

	// Captured: the pointer may leave the bar.
	input.Reset()
	input.SetPointerPos(0, -50, 300)
	run(t, ui, input, build)
	if value != 0 {
		t.Errorf("drag past the start: value %v, want 0", value)
	}

	input.Reset()
	input.SetPointerPos(0, 80, 5)
	input.SetPointerButton(0, false)
	run(t, ui, input, build)
	if value != 0 {
		t.Errorf("release changed the value to %v", value)
	}
	if ui.PointerCapture() != flatui.NoID {
		t.Errorf("capture %v not released", ui.PointerCapture())
	}
}

func TestVerticalSlider(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()
	id := flatui.HashID("pitch")

	var value float32
	build := func(ctx *flatui.Context) {
		ctx.Slider(flatui.DirVertical, &value, id)(func() {
			ctx.CustomElement(flatui.Vec2{X: 20, Y: 220}, id.Child("bar"), nil)
		})
	}

	input.SetPointerPos(0, 10, 60)
	input.SetPointerButton(0, true)
	run(t, ui, input, build)
	if value != 0.25 {
		t.Errorf("value %v, want 0.25", value)
	}
}

func TestSliderRejectsOverlay(t *testing.T) {
	ui, _ := newTestEngine(t)
	var value float32

	expectPanic(t, flatui.ErrInvalidDirection, func() {
		_, _ = ui.Run(flatui.NewInputState(), func(ctx *flatui.Context) {
			ctx.Slider(flatui.DirOverlay, &value, idA)(func() {})
		})
	})
}

package flatui_test

import (
	"errors"
	"image"
	"slices"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/go-theft-auto/flatui"
)

// mockRenderer is a test renderer that doesn't render anything.
type mockRenderer struct {
	size         flatui.Vec2i
	renderCalls  int
	atlasUploads int
	lastQuads    int
	err          error
}

func (m *mockRenderer) Render(dl *flatui.DrawList) error {
	m.renderCalls++
	m.lastQuads = dl.QuadCount()
	return m.err
}

func (m *mockRenderer) ViewportSize() flatui.Vec2i {
	return m.size
}

func (m *mockRenderer) FontTextureID() uint32 {
	return 1
}

func (m *mockRenderer) UpdateFontAtlas(atlas *image.Alpha) {
	m.atlasUploads++
}

// newTestEngine returns an engine on a 1000x1000 viewport, so one virtual
// unit is one pixel, shaping text with the 7x13 bitmap face.
func newTestEngine(t *testing.T, opts ...flatui.EngineOption) (*flatui.Engine, *mockRenderer) {
	t.Helper()
	renderer := &mockRenderer{size: flatui.Vec2i{X: 1000, Y: 1000}}
	shaper := flatui.NewFaceShaper(flatui.FixedFace(basicfont.Face7x13), 256)
	opts = append([]flatui.EngineOption{flatui.WithShaper(shaper)}, opts...)
	ui, err := flatui.New(renderer, opts...)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return ui, renderer
}

func run(t *testing.T, ui *flatui.Engine, input *flatui.InputState, build func(ctx *flatui.Context)) flatui.Frame {
	t.Helper()
	frame, err := ui.Run(input, build)
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	return frame
}

// box is an interactive group holding a single w x h element.
func box(ctx *flatui.Context, id flatui.ID, w, h float32) flatui.Event {
	ctx.StartGroup(flatui.DirHorizontal, flatui.AlignStart, 0, id)
	ev := ctx.CheckEvent(false)
	ctx.CustomElement(flatui.Vec2{X: w, Y: h}, id.Child("body"), nil)
	ctx.EndGroup()
	return ev
}

// expectPanic runs fn and checks it panics with an error wrapping target.
func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic %v does not wrap %v", r, target)
		}
	}()
	fn()
}

var (
	idA = flatui.HashID("a")
	idB = flatui.HashID("b")
	idC = flatui.HashID("c")
)

func TestEngineBasicUsage(t *testing.T) {
	ui, renderer := newTestEngine(t)
	input := flatui.NewInputState()

	passes := 0
	frame := run(t, ui, input, func(ctx *flatui.Context) {
		passes++
		ctx.Group(flatui.LayoutVerticalLeft, 10, flatui.HashID("root"))(func() {
			ctx.Label("Hello World", 20)
		})
	})

	if passes != 2 {
		t.Errorf("build called %d times, want 2", passes)
	}
	if renderer.renderCalls != 1 {
		t.Errorf("expected 1 render call, got %d", renderer.renderCalls)
	}
	if frame.Number != 1 || frame.Scale != 1 {
		t.Errorf("frame %d scale %v, want 1 and 1", frame.Number, frame.Scale)
	}
	if len(frame.Measure.Elements) != 2 {
		t.Fatalf("measured %d elements, want 2", len(frame.Measure.Elements))
	}
	// "Hello World" is 11 runes of the 7x13 face.
	if got, want := frame.Measure.Elements[1].Size, (flatui.Vec2i{X: 77, Y: 13}); got != want {
		t.Errorf("label size %v, want %v", got, want)
	}
	if len(frame.Place.Placed) != 2 {
		t.Errorf("placed %v, want both elements", frame.Place.Placed)
	}
	if renderer.lastQuads == 0 {
		t.Error("label drew no glyph quads")
	}
}

func TestVerticalGroupScenario(t *testing.T) {
	ui, _ := newTestEngine(t)

	var positions []flatui.Vec2i
	record := func(pos, size flatui.Vec2i) { positions = append(positions, pos) }

	frame := run(t, ui, flatui.NewInputState(), func(ctx *flatui.Context) {
		positions = positions[:0]
		ctx.Group(flatui.LayoutVerticalCenter, 5, idA)(func() {
			ctx.CustomElement(flatui.Vec2{X: 100, Y: 20}, idB, record)
			ctx.CustomElement(flatui.Vec2{X: 60, Y: 40}, idC, record)
		})
	})

	if got, want := frame.Measure.Size, (flatui.Vec2i{X: 100, Y: 65}); got != want {
		t.Errorf("group size %v, want %v", got, want)
	}
	want := []flatui.Vec2i{{X: 0, Y: 0}, {X: 20, Y: 25}}
	if !slices.Equal(positions, want) {
		t.Errorf("children at %v, want %v", positions, want)
	}
}

func TestMarginsAndPositionUI(t *testing.T) {
	ui, _ := newTestEngine(t)

	var pos flatui.Vec2i
	frame := run(t, ui, flatui.NewInputState(), func(ctx *flatui.Context) {
		ctx.PositionUI(1000, flatui.AlignCenter, flatui.AlignEnd)
		ctx.Group(flatui.LayoutHorizontalTop, 0, idA)(func() {
			ctx.SetMargin(flatui.Margin{Left: 10, Top: 20, Right: 30, Bottom: 40})
			ctx.CustomElement(flatui.Vec2{X: 60, Y: 40}, idB, func(p, _ flatui.Vec2i) { pos = p })
		})
	})

	if got, want := frame.Measure.Size, (flatui.Vec2i{X: 100, Y: 100}); got != want {
		t.Fatalf("root size %v, want %v", got, want)
	}
	// Root centered horizontally and bottom-aligned in 1000x1000.
	if want := (flatui.Vec2i{X: 450 + 10, Y: 900 + 20}); pos != want {
		t.Errorf("child at %v, want %v", pos, want)
	}
}

func TestScaleFollowsViewport(t *testing.T) {
	ui, renderer := newTestEngine(t)
	renderer.size = flatui.Vec2i{X: 2000, Y: 500}

	var size flatui.Vec2i
	frame := run(t, ui, flatui.NewInputState(), func(ctx *flatui.Context) {
		ctx.PositionUI(1000, flatui.AlignStart, flatui.AlignStart)
		size = ctx.VirtualToPhysical(flatui.Vec2{X: 101, Y: 3})
	})

	if frame.Scale != 0.5 {
		t.Errorf("scale %v, want 0.5", frame.Scale)
	}
	// 50.5 and 1.5 round half up.
	if want := (flatui.Vec2i{X: 51, Y: 2}); size != want {
		t.Errorf("VirtualToPhysical = %v, want %v", size, want)
	}
}

func TestMeasuringIsIdempotent(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()

	build := func(ctx *flatui.Context) {
		ctx.Group(flatui.LayoutHorizontalCenter, 8, flatui.HashID("row"))(func() {
			box(ctx, idA, 50, 50)
			ctx.Label("label", 20)
			box(ctx, idB, 30, 70)
		})
	}

	first := run(t, ui, input, build)
	second := run(t, ui, input, build)
	if !slices.Equal(first.Measure.Elements, second.Measure.Elements) {
		t.Errorf("ledgers differ:\n%v\n%v", first.Measure.Elements, second.Measure.Elements)
	}
	if first.Measure.Size != second.Measure.Size {
		t.Errorf("sizes differ: %v vs %v", first.Measure.Size, second.Measure.Size)
	}
}

// twoBoxes lays out A at (0,0) and B at (60,0), both 50x50, and records
// their placing-pass events.
func twoBoxes(evA, evB *flatui.Event) func(ctx *flatui.Context) {
	return func(ctx *flatui.Context) {
		ctx.Group(flatui.LayoutHorizontalTop, 10, flatui.HashID("row"))(func() {
			a := box(ctx, idA, 50, 50)
			b := box(ctx, idB, 50, 50)
			if !ctx.Measuring() {
				*evA, *evB = a, b
			}
		})
	}
}

func TestPressScenario(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()
	var evA, evB flatui.Event
	build := twoBoxes(&evA, &evB)

	input.SetPointerPos(0, 10, 10)
	input.SetPointerButton(0, true)
	frame := run(t, ui, input, build)
	if evA != flatui.EventWentDown|flatui.EventIsDown {
		t.Errorf("press: A got %v, want WentDown|IsDown", evA)
	}
	if evB != flatui.EventNone {
		t.Errorf("press: B got %v, want None", evB)
	}
	if frame.Place.Focus != idA {
		t.Errorf("focus %v, want A", frame.Place.Focus)
	}

	input.Reset()
	run(t, ui, input, build)
	if evA != flatui.EventIsDown {
		t.Errorf("hold: A got %v, want IsDown", evA)
	}

	input.Reset()
	input.SetPointerButton(0, false)
	run(t, ui, input, build)
	if evA != flatui.EventWentUp {
		t.Errorf("release: A got %v, want WentUp", evA)
	}

	// A keeps focus from the press, so it still hovers.
	input.Reset()
	input.SetPointerPos(0, 70, 10)
	run(t, ui, input, build)
	if evA != flatui.EventHover || evB != flatui.EventHover {
		t.Errorf("hover: A got %v, B got %v; want Hover for both", evA, evB)
	}
}

func TestReleaseElsewhereIsNotAClick(t *testing.T) {
	ui, _ := newTestEngine(t, flatui.WithConfig(withThreshold(1000)))
	input := flatui.NewInputState()
	var evA, evB flatui.Event
	build := twoBoxes(&evA, &evB)

	input.SetPointerPos(0, 10, 10)
	input.SetPointerButton(0, true)
	run(t, ui, input, build)

	input.Reset()
	input.SetPointerPos(0, 70, 10)
	input.SetPointerButton(0, false)
	run(t, ui, input, build)
	if evA&flatui.EventWentUp != 0 || evB&flatui.EventWentUp != 0 {
		t.Errorf("release over B: A got %v, B got %v; want no WentUp", evA, evB)
	}
}

func withThreshold(px int) flatui.Config {
	cfg := flatui.DefaultConfig()
	cfg.DragStartThreshold = px
	return cfg
}

func TestDragScenario(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()

	var ev flatui.Event
	build := func(ctx *flatui.Context) {
		e := box(ctx, idA, 100, 100)
		if !ctx.Measuring() {
			ev = e
		}
	}

	input.SetPointerPos(0, 5, 5)
	input.SetPointerButton(0, true)
	run(t, ui, input, build)
	if ev&flatui.EventStartDrag != 0 {
		t.Fatalf("drag started on press: %v", ev)
	}

	// Inside the threshold box of 8 pixels.
	input.Reset()
	input.SetPointerPos(0, 12, 12)
	run(t, ui, input, build)
	if ev != flatui.EventIsDown {
		t.Fatalf("small move: got %v, want IsDown", ev)
	}

	input.Reset()
	input.SetPointerPos(0, 14, 14)
	run(t, ui, input, build)
	if !ev.Has(flatui.EventStartDrag) {
		t.Fatalf("past threshold: got %v, want StartDrag", ev)
	}

	// Dragging continues outside the element.
	input.Reset()
	input.SetPointerPos(0, 400, 400)
	run(t, ui, input, build)
	if ev != flatui.EventIsDragging {
		t.Fatalf("dragging: got %v, want IsDragging", ev)
	}

	input.Reset()
	input.SetPointerButton(0, false)
	run(t, ui, input, build)
	if ev != flatui.EventEndDrag {
		t.Fatalf("release: got %v, want EndDrag", ev)
	}

	input.Reset()
	run(t, ui, input, build)
	if ev&(flatui.EventStartDrag|flatui.EventIsDragging|flatui.EventEndDrag) != 0 {
		t.Errorf("after drag: got %v, want no drag events", ev)
	}
}

func TestPressOutsideElementsResetsPress(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()

	var ev flatui.Event
	build := func(ctx *flatui.Context) {
		e := box(ctx, idA, 50, 50)
		if !ctx.Measuring() {
			ev = e
		}
	}

	input.SetPointerPos(0, 10, 10)
	input.SetPointerButton(0, true)
	run(t, ui, input, build)
	input.Reset()
	input.SetPointerButton(0, false)
	run(t, ui, input, build)
	if ev != flatui.EventWentUp {
		t.Fatalf("click: got %v, want WentUp", ev)
	}

	// Press on empty space, then slide into A with the button held.
	input.Reset()
	input.SetPointerPos(0, 500, 500)
	input.SetPointerButton(0, true)
	run(t, ui, input, build)
	input.Reset()
	input.SetPointerPos(0, 30, 30)
	run(t, ui, input, build)
	if ev != flatui.EventHover {
		t.Errorf("entering A after an outside press: got %v, want Hover", ev)
	}
}

func TestPointerCaptureIsExclusive(t *testing.T) {
	ui, _ := newTestEngine(t, flatui.WithConfig(withThreshold(1000)))
	input := flatui.NewInputState()

	var evA, evB flatui.Event
	build := func(ctx *flatui.Context) {
		twoBoxes(&evA, &evB)(ctx)
		if ctx.Measuring() {
			return
		}
		if evA&flatui.EventWentDown != 0 {
			ctx.CapturePointer(idA)
		}
		if evA&flatui.EventWentUp != 0 {
			ctx.ReleasePointer()
		}
	}

	input.SetPointerPos(0, 10, 10)
	input.SetPointerButton(0, true)
	run(t, ui, input, build)
	if ui.PointerCapture() != idA {
		t.Fatalf("capture = %v, want A", ui.PointerCapture())
	}

	input.Reset()
	input.SetPointerPos(0, 70, 10)
	run(t, ui, input, build)
	if evA != flatui.EventIsDown {
		t.Errorf("captured A outside its rect got %v, want IsDown", evA)
	}
	if evB != flatui.EventNone {
		t.Errorf("B got %v while A holds the capture", evB)
	}

	input.Reset()
	input.SetPointerButton(0, false)
	run(t, ui, input, build)
	if evA != flatui.EventWentUp || evB != flatui.EventNone {
		t.Errorf("release: A got %v, B got %v", evA, evB)
	}
	if ui.PointerCapture() != flatui.NoID {
		t.Errorf("capture not released: %v", ui.PointerCapture())
	}
}

func TestOverlayCoversEarlierChildren(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()

	var evA, evB flatui.Event
	build := func(ctx *flatui.Context) {
		ctx.Group(flatui.LayoutOverlayCenter, 0, flatui.HashID("stack"))(func() {
			a := box(ctx, idA, 100, 100)
			b := box(ctx, idB, 50, 50)
			if !ctx.Measuring() {
				evA, evB = a, b
			}
		})
	}

	// Outside B, over the covered part of A.
	input.SetPointerPos(0, 5, 5)
	frame := run(t, ui, input, build)
	for _, el := range frame.Measure.Elements {
		if el.ID == idA && el.Interactive {
			t.Error("covered element still interactive")
		}
		if el.ID == idB && !el.Interactive {
			t.Error("top element not interactive")
		}
	}
	if evA != flatui.EventNone {
		t.Errorf("covered A got %v", evA)
	}

	input.Reset()
	input.SetPointerPos(0, 50, 50)
	run(t, ui, input, build)
	if evB != flatui.EventHover {
		t.Errorf("B got %v, want Hover", evB)
	}
}

func TestNavigationAndFocusSnap(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()
	input.SetPointerPos(0, 900, 900)

	events := map[flatui.ID]flatui.Event{}
	build := func(ctx *flatui.Context) {
		ctx.Group(flatui.LayoutHorizontalTop, 10, flatui.HashID("row"))(func() {
			for _, id := range []flatui.ID{idA, idB, idC} {
				ev := box(ctx, id, 50, 50)
				if !ctx.Measuring() {
					events[id] = ev
				}
			}
		})
	}

	frame := run(t, ui, input, build)
	if frame.Place.Focus != idA {
		t.Fatalf("focus snapped to %v, want A", frame.Place.Focus)
	}

	// Focus moves when the key is released.
	input.Reset()
	input.SetKey(flatui.KeyRight, true)
	run(t, ui, input, build)
	input.Reset()
	input.SetKey(flatui.KeyRight, false)
	frame = run(t, ui, input, build)
	if frame.Place.Focus != idB {
		t.Fatalf("focus %v after Right, want B", frame.Place.Focus)
	}
	if events[idB] != flatui.EventHover || events[idA] != flatui.EventNone {
		t.Errorf("focused B got %v, A got %v", events[idB], events[idA])
	}

	input.Reset()
	input.SetKey(flatui.KeyEnter, true)
	run(t, ui, input, build)
	if events[idB] != flatui.EventWentDown|flatui.EventIsDown {
		t.Errorf("Enter down: B got %v", events[idB])
	}
	input.Reset()
	input.SetKey(flatui.KeyEnter, false)
	run(t, ui, input, build)
	if events[idB] != flatui.EventWentUp {
		t.Errorf("Enter up: B got %v", events[idB])
	}

	// Gamepad left wraps back past A to C.
	for _, down := range []bool{true, false} {
		input.Reset()
		input.SetGamepadButton(0, flatui.GamepadLeft, down)
		frame = run(t, ui, input, build)
	}
	if frame.Place.Focus != idA {
		t.Fatalf("focus %v after gamepad Left, want A", frame.Place.Focus)
	}
	for _, down := range []bool{true, false} {
		input.Reset()
		input.SetGamepadButton(0, flatui.GamepadLeft, down)
		frame = run(t, ui, input, build)
	}
	if frame.Place.Focus != idC {
		t.Errorf("focus %v after wrapping Left, want C", frame.Place.Focus)
	}
}

func TestFocusSnapsWhenFocusedElementDisappears(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()
	input.SetPointerPos(0, 900, 900)

	showA := true
	build := func(ctx *flatui.Context) {
		ctx.Group(flatui.LayoutHorizontalTop, 10, flatui.HashID("row"))(func() {
			if showA {
				box(ctx, idA, 50, 50)
			}
			box(ctx, idB, 50, 50)
		})
	}

	if frame := run(t, ui, input, build); frame.Place.Focus != idA {
		t.Fatalf("focus %v, want A", frame.Place.Focus)
	}
	showA = false
	if frame := run(t, ui, input, build); frame.Place.Focus != idB {
		t.Errorf("focus %v after A vanished, want B", frame.Place.Focus)
	}
}

func TestElementAddedWhilePlacingIsSkipped(t *testing.T) {
	ui, _ := newTestEngine(t)

	frame := run(t, ui, flatui.NewInputState(), func(ctx *flatui.Context) {
		ctx.Group(flatui.LayoutVerticalLeft, 0, flatui.HashID("col"))(func() {
			if !ctx.Measuring() {
				// Appears only in the placing pass.
				box(ctx, idA, 10, 10)
			}
			ctx.CustomElement(flatui.Vec2{X: 10, Y: 10}, idB, nil)
		})
	})

	if slices.Contains(frame.Place.Placed, idA) {
		t.Error("unmeasured group was placed")
	}
	if !slices.Contains(frame.Place.Placed, idB) {
		t.Error("element after the unmeasured group was not placed")
	}
}

func TestNestedRunPanics(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()

	expectPanic(t, flatui.ErrFrameActive, func() {
		_, _ = ui.Run(input, func(ctx *flatui.Context) {
			_, _ = ui.Run(input, func(*flatui.Context) {})
		})
	})

	// The guard is released once the panicking frame unwinds.
	run(t, ui, input, func(*flatui.Context) {})
}

func TestUnbalancedGroupsPanic(t *testing.T) {
	ui, _ := newTestEngine(t)
	input := flatui.NewInputState()

	expectPanic(t, flatui.ErrUnbalancedGroup, func() {
		_, _ = ui.Run(input, func(ctx *flatui.Context) {
			ctx.StartGroup(flatui.DirVertical, flatui.AlignStart, 0, idA)
		})
	})
	expectPanic(t, flatui.ErrUnbalancedGroup, func() {
		_, _ = ui.Run(input, func(ctx *flatui.Context) {
			ctx.EndGroup()
		})
	})
}

func TestUnknownTexturePanics(t *testing.T) {
	ui, _ := newTestEngine(t, flatui.WithTexture("known", flatui.Texture{ID: 7, Size: flatui.Vec2i{X: 20, Y: 10}}))
	input := flatui.NewInputState()

	frame := run(t, ui, input, func(ctx *flatui.Context) {
		ctx.Image("known", 50)
	})
	if got, want := frame.Measure.Elements[0].Size, (flatui.Vec2i{X: 100, Y: 50}); got != want {
		t.Errorf("image size %v, want %v", got, want)
	}

	expectPanic(t, flatui.ErrUnknownTexture, func() {
		_, _ = ui.Run(input, func(ctx *flatui.Context) {
			ctx.Image("missing", 50)
		})
	})
}

func TestRenderErrorIsWrapped(t *testing.T) {
	ui, renderer := newTestEngine(t)
	renderer.err = errors.New("device lost")

	frame, err := ui.Run(flatui.NewInputState(), func(*flatui.Context) {})
	if !errors.Is(err, renderer.err) {
		t.Fatalf("Run() error %v does not wrap %v", err, renderer.err)
	}
	if frame.Number != 1 {
		t.Errorf("frame number %d, want 1", frame.Number)
	}
}

func TestAtlasUploadedOnlyWhenChanged(t *testing.T) {
	ui, renderer := newTestEngine(t)
	input := flatui.NewInputState()
	build := func(ctx *flatui.Context) { ctx.Label("abc", 20) }

	run(t, ui, input, build)
	uploads := renderer.atlasUploads
	if uploads == 0 {
		t.Fatal("atlas never uploaded")
	}
	run(t, ui, input, build)
	if renderer.atlasUploads != uploads {
		t.Errorf("atlas uploaded again without new glyphs")
	}
	run(t, ui, input, func(ctx *flatui.Context) { ctx.Label("xyz", 20) })
	if renderer.atlasUploads != uploads+1 {
		t.Errorf("new glyphs uploaded %d times, want once", renderer.atlasUploads-uploads)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := flatui.DefaultConfig()
	cfg.VirtualResolution = 0
	if _, err := flatui.New(&mockRenderer{}, flatui.WithConfig(cfg)); err == nil {
		t.Error("New accepted a zero virtual resolution")
	}
}

func TestEventString(t *testing.T) {
	if got := (flatui.EventWentDown | flatui.EventIsDown).String(); got != "WentDown|IsDown" {
		t.Errorf("String() = %q", got)
	}
	if flatui.EventNone.String() != "None" {
		t.Errorf("None prints as %q", flatui.EventNone.String())
	}
	if !(flatui.EventHover | flatui.EventIsDown).Has(flatui.EventHover) || flatui.EventHover.Has(flatui.EventNone) {
		t.Error("Has mismatch")
	}
}
